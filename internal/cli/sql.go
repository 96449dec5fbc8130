package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/user/ajar/internal/model"
)

var sqlCmd = &cobra.Command{
	Use:   "sql <select>",
	Short: "Run a read-only SQL query against the mirror",
	Long: `Execute a SELECT query against the SQLite mirror of the current state.

Only SELECT statements are allowed. The mirror is rebuilt from the data
source and the journal before every query. With --verbose, the mirror
path and its sync time are printed to stderr.

Tables:
  stock           kode, judul, kategori, upbjj, lokasi_rak, harga, qty, safety, status, catatan
  delivery_order  nomor_do, nim, nama, status, ekspedisi, tanggal_kirim, paket, paket_kode, total
  journey         nomor_do, seq, waktu, keterangan

Examples:
  ajar sql "SELECT upbjj, SUM(qty) FROM stock GROUP BY upbjj"
  ajar sql "SELECT status, COUNT(*) FROM delivery_order GROUP BY status" --json`,
	Args: cobra.ExactArgs(1),
	RunE: runSQL,
}

func init() {
	rootCmd.AddCommand(sqlCmd)
}

// isSelectQuery checks if the query is a SELECT statement (read-only).
func isSelectQuery(query string) bool {
	normalized := strings.TrimSpace(strings.ToUpper(query))

	if !strings.HasPrefix(normalized, "SELECT") {
		return false
	}

	// Modification keywords are rejected even inside subqueries
	dangerousKeywords := []string{
		"INSERT", "UPDATE", "DELETE", "DROP", "ALTER", "CREATE",
		"TRUNCATE", "REPLACE", "ATTACH", "DETACH", "PRAGMA",
	}

	for _, keyword := range dangerousKeywords {
		if strings.Contains(" "+normalized+" ", " "+keyword+" ") {
			return false
		}
	}

	return true
}

func runSQL(cmd *cobra.Command, args []string) error {
	query := args[0]

	if !isSelectQuery(query) {
		ExitInvalidSQL("only SELECT queries are allowed", query)
		return nil
	}

	a, _, err := openSession()
	if err != nil {
		HandleError(err)
		return nil
	}
	defer a.Close()

	if err := a.svc.SyncMirror(); err != nil {
		HandleError(err)
		return nil
	}
	if IsVerbose() {
		last, err := a.store.GetLastSyncTime()
		if err != nil {
			HandleError(err)
			return nil
		}
		fmt.Fprintf(stderr, "Mirror %s synced at %s\n", a.store.MirrorPath(), last.Format(time.RFC3339))
	}

	rows, columns, err := a.store.RawQuery(query)
	if err != nil {
		HandleError(fmt.Errorf("%w: %v", model.ErrInvalidSQL, err))
		return nil
	}

	if GetJSONOutput() {
		if rows == nil {
			rows = []map[string]interface{}{}
		}
		return printJSON(rows)
	}

	if len(rows) == 0 {
		fmt.Fprintln(stdout, "No results.")
		return nil
	}

	t := newTable(columns...)
	for _, row := range rows {
		cells := make([]string, len(columns))
		for i, col := range columns {
			if row[col] == nil {
				cells[i] = "NULL"
				continue
			}
			cells[i] = model.Text(row[col])
		}
		t.add(cells...)
	}
	t.render(stdout)

	fmt.Fprintf(stdout, "\n%d row(s)\n", len(rows))
	return nil
}
