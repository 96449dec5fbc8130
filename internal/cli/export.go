package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/user/ajar/internal/storage"
)

var exportForce bool

var exportCmd = &cobra.Command{
	Use:   "export <file>",
	Short: "Write the current state as a data source file",
	Long: `Export stock, packages, delivery orders, lookups and users as a data
source file. The format follows the extension: .yaml/.yml for YAML,
anything else for JSON. The result can be used as --data for a fresh
state directory.

Examples:
  ajar export backup.json
  ajar export snapshot.yaml --force`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

func init() {
	exportCmd.Flags().BoolVarP(&exportForce, "force", "f", false, "Overwrite existing file without warning")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	outputFile := args[0]

	if !exportForce {
		if _, err := os.Stat(outputFile); err == nil {
			ExitWithError(1, ErrCodeValidation,
				fmt.Sprintf("file '%s' already exists (use --force to overwrite)", outputFile),
				map[string]interface{}{"path": outputFile})
			return nil
		}
	}

	a, _, err := openSession()
	if err != nil {
		HandleError(err)
		return nil
	}
	defer a.Close()

	snap := a.svc.Snapshot()
	if err := storage.WriteSnapshot(outputFile, snap); err != nil {
		HandleError(err)
		return nil
	}

	if GetJSONOutput() {
		return printJSON(map[string]interface{}{
			"path":     outputFile,
			"stok":     len(snap.Stok),
			"tracking": len(snap.Tracking),
		})
	}
	if !IsQuiet() {
		fmt.Fprintf(stdout, "Exported %d stock entries and %d delivery orders to %s\n",
			len(snap.Stok), len(snap.Tracking), outputFile)
	}
	return nil
}
