package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/user/ajar/internal/model"
	"github.com/user/ajar/internal/query"
	"github.com/user/ajar/internal/service"
)

var (
	trackingSearch string
	trackingStatus string
	trackingSort   string

	trackingInput service.OrderInput
	trackingNote  string
)

var trackingCmd = &cobra.Command{
	Use:     "tracking",
	Aliases: []string{"do"},
	Short:   "Delivery orders",
	Long: `Create delivery orders (DO) and follow their shipping journey.

DO numbers have the form DO<year>-<counter>, e.g. DO2025-0007, numbered
sequentially within each year.`,
}

var trackingListCmd = &cobra.Command{
	Use:   "list",
	Short: "List delivery orders, newest first",
	Long: `List delivery orders. Without --sort the newest DO number comes first.

Examples:
  ajar tracking list
  ajar tracking list --status "Dalam Perjalanan"
  ajar tracking list --search rina --sort nama-asc`,
	Args: cobra.NoArgs,
	RunE: runTrackingList,
}

var trackingShowCmd = &cobra.Command{
	Use:   "show <nomorDO>",
	Short: "Show a delivery order and its journey",
	Args:  cobra.ExactArgs(1),
	RunE:  runTrackingShow,
}

var trackingNextCmd = &cobra.Command{
	Use:   "next",
	Short: "Print the DO number the next order would get",
	Args:  cobra.NoArgs,
	RunE:  runTrackingNext,
}

var trackingCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a delivery order",
	Long: `Create a delivery order for a package. The order total is the package
price; the first journey entry records the initial status.

Examples:
  ajar tracking create --nim 123456789 --nama "Rina Wulandari" \
    --ekspedisi JNE --paket PAKET-UT-001 --tanggal 2025-08-25`,
	Args: cobra.NoArgs,
	RunE: runTrackingCreate,
}

var trackingStatusCmd = &cobra.Command{
	Use:   "status <nomorDO> <status>",
	Short: "Change the status of a delivery order",
	Long: `Change the status of a delivery order and append a journey entry.

Statuses: Diterima, Diproses, Dalam Perjalanan, Dikirim, Selesai.

Examples:
  ajar tracking status DO2025-0001 "Dalam Perjalanan" --note "Tiba di Hub Jakarta"`,
	Args: cobra.ExactArgs(2),
	RunE: runTrackingStatus,
}

func init() {
	trackingListCmd.Flags().StringVar(&trackingSearch, "search", "", "Search nomorDO, nim or nama")
	trackingListCmd.Flags().StringVar(&trackingStatus, "status", "", "Filter by status")
	trackingListCmd.Flags().StringVar(&trackingSort, "sort", "", "Sort directive field-asc|field-desc")

	trackingCreateCmd.Flags().StringVar(&trackingInput.NIM, "nim", "", "Student number")
	trackingCreateCmd.Flags().StringVar(&trackingInput.Nama, "nama", "", "Student name")
	trackingCreateCmd.Flags().StringVar(&trackingInput.Ekspedisi, "ekspedisi", "", "Courier")
	trackingCreateCmd.Flags().StringVar(&trackingInput.PaketKode, "paket", "", "Package code")
	trackingCreateCmd.Flags().StringVar(&trackingInput.TanggalKirim, "tanggal", "", "Ship date YYYY-MM-DD (default: today)")
	trackingCreateCmd.Flags().StringVar(&trackingInput.Status, "status", "", "Initial status (default: Diproses)")

	trackingStatusCmd.Flags().StringVar(&trackingNote, "note", "", "Journey note (default: the status change)")

	trackingCmd.AddCommand(trackingListCmd, trackingShowCmd, trackingNextCmd, trackingCreateCmd, trackingStatusCmd)
	rootCmd.AddCommand(trackingCmd)
}

func runTrackingList(cmd *cobra.Command, args []string) error {
	a, _, err := openSession()
	if err != nil {
		HandleError(err)
		return nil
	}
	defer a.Close()

	spec := query.Spec{
		Search:       trackingSearch,
		SearchFields: []string{"nomorDO", "nim", "nama"},
		Sort:         query.ParseSort(trackingSort),
	}
	if trackingStatus != "" {
		status, ok := model.NormalizeStatus(trackingStatus)
		if !ok {
			ExitValidationError(fmt.Sprintf("unknown status '%s'", trackingStatus),
				map[string]interface{}{"field": "status"})
			return nil
		}
		spec = spec.Where("status", status)
	}

	orders := a.svc.ListOrders(spec)

	if GetJSONOutput() {
		return printJSON(orders)
	}

	if len(orders) == 0 {
		fmt.Fprintln(stdout, "No delivery orders found.")
		return nil
	}

	t := newTable("NOMOR DO", "NIM", "NAMA", "STATUS", "EKSPEDISI", "TANGGAL", "TOTAL")
	t.badgeCol = 3
	for _, d := range orders {
		t.add(d.NomorDO, d.NIM, d.Nama, d.Status, d.Ekspedisi, d.TanggalKirim, rupiah(d.Total))
	}
	t.render(stdout)

	fmt.Fprintf(stdout, "\nTotal: %d order(s)\n", len(orders))
	return nil
}

func runTrackingShow(cmd *cobra.Command, args []string) error {
	a, _, err := openSession()
	if err != nil {
		HandleError(err)
		return nil
	}
	defer a.Close()

	d, err := a.svc.FindOrder(args[0])
	if err != nil {
		HandleError(err)
		return nil
	}

	if GetJSONOutput() {
		return printJSON(d)
	}
	printOrder(a.svc, d)
	return nil
}

func printOrder(svc *service.Service, d model.DeliveryOrder) {
	printField(stdout, "Nomor DO", d.NomorDO)
	printField(stdout, "NIM", d.NIM)
	printField(stdout, "Nama", d.Nama)
	printField(stdout, "Status", badge(d.Status))
	printField(stdout, "Ekspedisi", d.Ekspedisi)
	printField(stdout, "Tanggal", d.TanggalKirim)
	printField(stdout, "Paket", d.Paket)
	printField(stdout, "Total", rupiah(d.Total))

	if pkg, err := svc.PackageByCode(d.PaketKode); err == nil && len(pkg.Isi) > 0 {
		fmt.Fprintln(stdout, "Isi paket:")
		for _, kode := range pkg.Isi {
			fmt.Fprintf(stdout, "  - %s  %s\n", kode, svc.CourseTitle(kode))
		}
	}

	fmt.Fprintln(stdout, "Perjalanan:")
	if len(d.Perjalanan) == 0 {
		fmt.Fprintln(stdout, "  (belum ada)")
		return
	}
	for _, e := range d.Perjalanan {
		fmt.Fprintf(stdout, "  %s  %s\n", e.Waktu.Format("2006-01-02 15:04"), e.Keterangan)
	}
}

func runTrackingNext(cmd *cobra.Command, args []string) error {
	a, _, err := openSession()
	if err != nil {
		HandleError(err)
		return nil
	}
	defer a.Close()

	next := a.svc.NextOrderNumber(now())
	if GetJSONOutput() {
		return printJSON(map[string]string{"nomorDO": next})
	}
	fmt.Fprintln(stdout, next)
	return nil
}

func runTrackingCreate(cmd *cobra.Command, args []string) error {
	a, _, err := openSession()
	if err != nil {
		HandleError(err)
		return nil
	}
	defer a.Close()

	in := trackingInput
	t := now()
	if strings.TrimSpace(in.TanggalKirim) == "" {
		in.TanggalKirim = t.Format(model.DateLayout)
	}

	d, err := a.svc.CreateOrder(in, t)
	if err != nil {
		HandleError(err)
		return nil
	}

	if GetJSONOutput() {
		return printJSON(d)
	}
	fmt.Fprintf(stdout, "Created %s (%s, %s)\n", d.NomorDO, d.Paket, rupiah(d.Total))
	return nil
}

func runTrackingStatus(cmd *cobra.Command, args []string) error {
	a, _, err := openSession()
	if err != nil {
		HandleError(err)
		return nil
	}
	defer a.Close()

	d, err := a.svc.UpdateOrderStatus(args[0], args[1], trackingNote, now())
	if err != nil {
		HandleError(err)
		return nil
	}

	if GetJSONOutput() {
		return printJSON(d)
	}
	if !IsQuiet() {
		fmt.Fprintf(stdout, "%s is now %s\n", d.NomorDO, badge(d.Status))
	}
	return nil
}
