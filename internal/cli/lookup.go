package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/user/ajar/internal/service"
)

var regionsCmd = &cobra.Command{
	Use:   "regions",
	Short: "List UPBJJ regions",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runLookup((*service.Service).Regions)
	},
}

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List material categories",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runLookup((*service.Service).Categories)
	},
}

func init() {
	rootCmd.AddCommand(regionsCmd)
	rootCmd.AddCommand(categoriesCmd)
}

func runLookup(list func(*service.Service) []string) error {
	a, _, err := openSession()
	if err != nil {
		HandleError(err)
		return nil
	}
	defer a.Close()

	values := list(a.svc)
	if GetJSONOutput() {
		if values == nil {
			values = []string{}
		}
		return printJSON(values)
	}
	for _, v := range values {
		fmt.Fprintln(stdout, v)
	}
	return nil
}
