package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/user/ajar/internal/model"
	"github.com/user/ajar/internal/service"
	"github.com/user/ajar/internal/watch"
)

var (
	stockSearch   string
	stockKategori string
	stockUpbjj    string
	stockSort     string
	stockWatch    bool

	stockAddInput model.Stock
	stockSetFlags []string
)

var stockCmd = &cobra.Command{
	Use:   "stock",
	Short: "Teaching-material stock",
	Long: `Browse and maintain the teaching-material stock.

Each entry is keyed by its course code (4 letters + 4 digits, e.g. EKMA4116).
The status column shows Habis (empty), Stok Rendah (below safety stock)
or Tersedia (available).`,
}

var stockListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stock entries",
	Long: `List stock entries, optionally searched, filtered and sorted.

Running without flags resets every filter and shows all entries in
data source order.

  --search TERM      Case-insensitive match on kode or judul
  --kategori NAME    Only this kategori
  --upbjj NAME       Only this UPBJJ
  --sort FIELD-DIR   Sort, e.g. judul-asc, qty-desc, harga-asc
  --watch            Re-render when the data file or journal changes

Examples:
  ajar stock list
  ajar stock list --search pengantar --sort judul-asc
  ajar stock list --kategori "MK Wajib" --upbjj Jakarta
  ajar stock list --sort qty-desc --json`,
	Args: cobra.NoArgs,
	RunE: runStockList,
}

var stockShowCmd = &cobra.Command{
	Use:   "show <kode>",
	Short: "Show one stock entry",
	Args:  cobra.ExactArgs(1),
	RunE:  runStockShow,
}

var stockAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a stock entry",
	Long: `Add a stock entry. All fields except --safety and --catatan are required.

Examples:
  ajar stock add --kode PAUD4401 --judul "Perkembangan Anak" \
    --kategori "MK Pilihan" --upbjj Jakarta --rak R4-A1 \
    --harga 70000 --qty 10 --safety 5`,
	Args: cobra.NoArgs,
	RunE: runStockAdd,
}

var stockEditCmd = &cobra.Command{
	Use:   "edit <kode>",
	Short: "Edit fields of a stock entry",
	Long: `Edit fields of a stock entry with --set field=value (repeatable).

Editable fields: judul, kategori, upbjj, lokasiRak, harga, qty, safety,
catatanHTML. The kode cannot be changed.

Examples:
  ajar stock edit EKMA4116 --set qty=40
  ajar stock edit EKMA4116 --set harga=70000 --set lokasiRak=R1-A5`,
	Args: cobra.ExactArgs(1),
	RunE: runStockEdit,
}

func init() {
	stockListCmd.Flags().StringVar(&stockSearch, "search", "", "Search kode or judul")
	stockListCmd.Flags().StringVar(&stockKategori, "kategori", "", "Filter by kategori")
	stockListCmd.Flags().StringVar(&stockUpbjj, "upbjj", "", "Filter by UPBJJ")
	stockListCmd.Flags().StringVar(&stockSort, "sort", "", "Sort directive field-asc|field-desc")
	stockListCmd.Flags().BoolVar(&stockWatch, "watch", false, "Re-render on data changes")

	stockAddCmd.Flags().StringVar(&stockAddInput.Kode, "kode", "", "Course code, e.g. EKMA4116")
	stockAddCmd.Flags().StringVar(&stockAddInput.Judul, "judul", "", "Title")
	stockAddCmd.Flags().StringVar(&stockAddInput.Kategori, "kategori", "", "Kategori")
	stockAddCmd.Flags().StringVar(&stockAddInput.Upbjj, "upbjj", "", "UPBJJ")
	stockAddCmd.Flags().StringVar(&stockAddInput.LokasiRak, "rak", "", "Shelf location")
	stockAddCmd.Flags().Float64Var(&stockAddInput.Harga, "harga", 0, "Price")
	stockAddCmd.Flags().IntVar(&stockAddInput.Qty, "qty", 0, "Quantity in stock")
	stockAddCmd.Flags().IntVar(&stockAddInput.Safety, "safety", 0, "Safety stock level")
	stockAddCmd.Flags().StringVar(&stockAddInput.CatatanHTML, "catatan", "", "Note (HTML allowed)")

	stockEditCmd.Flags().StringArrayVar(&stockSetFlags, "set", nil, "Set field=value (can be repeated)")

	stockCmd.AddCommand(stockListCmd, stockShowCmd, stockAddCmd, stockEditCmd)
	rootCmd.AddCommand(stockCmd)
}

// stockView is the JSON form of a stock entry.
type stockView struct {
	model.Stock
	Status  string `json:"status"`
	Warning string `json:"warning,omitempty"`
	Catatan string `json:"catatan,omitempty"`
}

func viewStock(s model.Stock) stockView {
	return stockView{
		Stock:   s,
		Status:  s.Status(),
		Warning: s.Warning(),
		Catatan: model.PlainText(s.CatatanHTML),
	}
}

func stockFilter() service.StockFilter {
	return service.StockFilter{
		Search:   stockSearch,
		Kategori: stockKategori,
		Upbjj:    stockUpbjj,
		Sort:     stockSort,
	}
}

func runStockList(cmd *cobra.Command, args []string) error {
	a, _, err := openSession()
	if err != nil {
		HandleError(err)
		return nil
	}

	if err := renderStockList(stdout, a.svc); err != nil {
		a.Close()
		return err
	}
	a.Close()

	if !stockWatch {
		return nil
	}
	return watchStockList(cmd.Context())
}

func renderStockList(w io.Writer, svc *service.Service) error {
	stocks := svc.ListStock(stockFilter().Spec())

	if GetJSONOutput() {
		views := make([]stockView, len(stocks))
		for i, s := range stocks {
			views[i] = viewStock(s)
		}
		return printJSON(views)
	}

	if len(stocks) == 0 {
		fmt.Fprintln(w, "No stock entries found.")
		return nil
	}

	t := newTable("KODE", "JUDUL", "KATEGORI", "UPBJJ", "RAK", "HARGA", "QTY", "SAFETY", "STATUS")
	t.badgeCol = 8
	for _, s := range stocks {
		t.add(s.Kode, s.Judul, s.Kategori, s.Upbjj, s.LokasiRak, rupiah(s.Harga),
			strconv.Itoa(s.Qty), strconv.Itoa(s.Safety), s.Status())
	}
	t.render(w)

	fmt.Fprintf(w, "\nTotal: %d item(s)\n", len(stocks))
	return nil
}

// watchStockList re-renders the list whenever the data file or the journal
// changes, until interrupted.
func watchStockList(parent context.Context) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt)
	defer stop()

	initial, err := openApp()
	if err != nil {
		HandleError(err)
		return nil
	}
	journal := initial.store.JournalPath()
	initial.Close()

	w, err := watch.NewWatcher([]string{cfg.DataFile, journal}, func(paths []string) error {
		logger.Debug("Reloading stock list", zap.Strings("paths", paths))
		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.Close()
		fmt.Fprintf(stdout, "\n-- %s --\n", now().Format("15:04:05"))
		return renderStockList(stdout, a.svc)
	}, logger, time.Duration(cfg.DebounceMS)*time.Millisecond)
	if err != nil {
		return fmt.Errorf("failed to start watcher: %w", err)
	}
	if err := w.Start(); err != nil {
		w.Close()
		return fmt.Errorf("failed to start watcher: %w", err)
	}
	defer w.Close()

	if !IsQuiet() {
		fmt.Fprintf(stderr, "Watching %s for changes (Ctrl+C to stop)...\n", strings.Join(w.Files(), ", "))
	}
	<-ctx.Done()
	return nil
}

func runStockShow(cmd *cobra.Command, args []string) error {
	a, _, err := openSession()
	if err != nil {
		HandleError(err)
		return nil
	}
	defer a.Close()

	s, err := a.svc.GetStock(args[0])
	if err != nil {
		HandleError(err)
		return nil
	}

	v := viewStock(s)
	if GetJSONOutput() {
		return printJSON(v)
	}

	printField(stdout, "Kode", s.Kode)
	printField(stdout, "Judul", s.Judul)
	printField(stdout, "Kategori", s.Kategori)
	printField(stdout, "UPBJJ", s.Upbjj)
	printField(stdout, "Lokasi Rak", s.LokasiRak)
	printField(stdout, "Harga", rupiah(s.Harga))
	printField(stdout, "Qty", strconv.Itoa(s.Qty))
	printField(stdout, "Safety", strconv.Itoa(s.Safety))
	printField(stdout, "Status", badge(v.Status))
	if v.Warning != "" {
		fmt.Fprintln(stdout, styleWarn.Render(v.Warning))
	}
	if v.Catatan != "" {
		fmt.Fprintln(stdout, "Catatan:")
		for _, line := range strings.Split(v.Catatan, "\n") {
			fmt.Fprintf(stdout, "  %s\n", line)
		}
	}
	return nil
}

func runStockAdd(cmd *cobra.Command, args []string) error {
	a, _, err := openSession()
	if err != nil {
		HandleError(err)
		return nil
	}
	defer a.Close()

	rec := stockAddInput
	rec.Kode = strings.TrimSpace(rec.Kode)
	if err := a.svc.AddStock(rec); err != nil {
		HandleError(err)
		return nil
	}

	return printStockSaved("Added", rec)
}

func runStockEdit(cmd *cobra.Command, args []string) error {
	set := make(map[string]string, len(stockSetFlags))
	for _, kv := range stockSetFlags {
		field, value, ok := strings.Cut(kv, "=")
		field = strings.TrimSpace(field)
		if !ok || field == "" {
			ExitValidationError(fmt.Sprintf("invalid --set value '%s' (expected field=value)", kv),
				map[string]interface{}{"field": "set"})
			return nil
		}
		set[field] = value
	}
	if len(set) == 0 {
		ExitValidationError("nothing to change (use --set field=value)",
			map[string]interface{}{"field": "set"})
		return nil
	}

	a, _, err := openSession()
	if err != nil {
		HandleError(err)
		return nil
	}
	defer a.Close()

	rec, err := a.svc.EditStock(args[0], set)
	if err != nil {
		HandleError(err)
		return nil
	}

	return printStockSaved("Updated", rec)
}

func printStockSaved(verb string, rec model.Stock) error {
	if GetJSONOutput() {
		return printJSON(viewStock(rec))
	}
	if !IsQuiet() {
		fmt.Fprintf(stdout, "%s %s (%s)\n", verb, rec.Kode, badge(rec.Status()))
	}
	if w := rec.Warning(); w != "" {
		fmt.Fprintln(stderr, w)
	}
	return nil
}
