package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var packageCmd = &cobra.Command{
	Use:     "package",
	Aliases: []string{"paket"},
	Short:   "Material packages",
}

var packageListCmd = &cobra.Command{
	Use:   "list",
	Short: "List packages with their contents",
	Args:  cobra.NoArgs,
	RunE:  runPackageList,
}

func init() {
	packageCmd.AddCommand(packageListCmd)
	rootCmd.AddCommand(packageCmd)
}

type packageItem struct {
	Kode  string `json:"kode"`
	Judul string `json:"judul"`
}

type packageView struct {
	Kode  string        `json:"kode"`
	Nama  string        `json:"nama"`
	Harga float64       `json:"harga"`
	Isi   []packageItem `json:"isi"`
}

func runPackageList(cmd *cobra.Command, args []string) error {
	a, _, err := openSession()
	if err != nil {
		HandleError(err)
		return nil
	}
	defer a.Close()

	packages := a.svc.Packages()
	views := make([]packageView, 0, len(packages))
	for _, p := range packages {
		v := packageView{Kode: p.Kode, Nama: p.Nama, Harga: p.Harga, Isi: []packageItem{}}
		for _, kode := range p.Isi {
			v.Isi = append(v.Isi, packageItem{Kode: kode, Judul: a.svc.CourseTitle(kode)})
		}
		views = append(views, v)
	}

	if GetJSONOutput() {
		return printJSON(views)
	}

	if len(views) == 0 {
		fmt.Fprintln(stdout, "No packages found.")
		return nil
	}

	for i, v := range views {
		if i > 0 {
			fmt.Fprintln(stdout)
		}
		fmt.Fprintf(stdout, "%s  %s  %s\n", styleHeading.Render(v.Kode), v.Nama, rupiah(v.Harga))
		for _, item := range v.Isi {
			fmt.Fprintf(stdout, "  - %s  %s\n", item.Kode, strings.TrimSpace(item.Judul))
		}
	}
	return nil
}
