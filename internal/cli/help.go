package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// helpTopicsCmd is a parent command for help topics
var helpTopicsCmd = &cobra.Command{
	Use:   "help-topic",
	Short: "Extended help topics",
	Long:  `Extended help topics for ajar. Use 'ajar help-topic <topic>' to view.`,
}

var helpJSONCmd = &cobra.Command{
	Use:   "json",
	Short: "JSON output format and exit codes",
	Long: `JSON Output Format and Exit Codes

Every command accepts --json and then prints machine-readable output on
stdout.

STOCK JSON FORMAT
─────────────────
  ajar stock list --json

  [
    {
      "kode": "EKMA4116",
      "judul": "Pengantar Manajemen",
      "kategori": "MK Wajib",
      "upbjj": "Jakarta",
      "lokasiRak": "R1-A3",
      "harga": 65000,
      "qty": 28,
      "safety": 20,
      "status": "Tersedia"
    }
  ]

"status" is derived from qty and safety (Habis, Stok Rendah, Tersedia);
"warning" is present when qty is below safety.

DELIVERY ORDER JSON FORMAT
──────────────────────────
  ajar tracking show DO2025-0001 --json

  {
    "nomorDO": "DO2025-0001",
    "nim": "123456789",
    "nama": "Rina Wulandari",
    "status": "Dalam Perjalanan",
    "ekspedisi": "JNE",
    "tanggalKirim": "2025-08-25",
    "paket": "PAKET-UT-001 - PAKET IPS Dasar",
    "paketKode": "PAKET-UT-001",
    "total": 120000,
    "perjalanan": [
      {"waktu": "2025-08-25T10:12:20Z", "keterangan": "Penerimaan di Loket"}
    ]
  }

Empty lists are returned as [].

EXIT CODES
──────────
  0  Success
  1  Record not found, or unexpected failure
  2  Validation error, unknown package, or rejected SQL
  3  Duplicate key
  4  Not logged in, or wrong credentials
  5  Journal entry failed its hash check

ERROR RESPONSES
───────────────
When --json is used and an error occurs, a structured error is returned:

  {
    "error": true,
    "code": "VALIDATION_ERROR",
    "message": "harga must be greater than 0",
    "details": {"field": "harga"}
  }`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(stdout, cmd.Long)
	},
}

var helpDataCmd = &cobra.Command{
	Use:   "data",
	Short: "Data source file and state directory",
	Long: `Data Source and State Directory

DATA SOURCE
───────────
The data source (--data, $AJAR_DATA, or dataBahanAjar.json) is read at the
start of every command and never written. It may be JSON or YAML
(.yaml/.yml) with these top-level keys:

  upbjjList     list of UPBJJ region names
  kategoriList  list of material categories
  pengguna      users allowed to log in (email, password, nama, role, lokasi)
  paket         packages: kode, nama, isi (course codes), harga
  stok          stock entries keyed by "kode"
  tracking      delivery orders, either [{"DO2025-0001": {...}}] or
                {"DO2025-0001": {...}}

STATE DIRECTORY
───────────────
Changes go to the state directory (--state-dir, $AJAR_STATE_DIR, or .ajar):

  session.json   the logged-in user
  journal.jsonl  one hashed entry per saved change, replayed on start
  mirror.db      SQLite mirror used by 'ajar sql'

Deleting the state directory returns to the data source as-is. Use
'ajar export' to fold the journal into a new data source file.

CONFIGURATION
─────────────
.ajar.json (JSON with comments) in the working directory, or --config:

  {
    "data_file": "dataBahanAjar.json",
    "state_dir": ".ajar",
    "order_prefix": "DO",
    "locale": "id",
    "debounce_ms": 200,
  }`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(stdout, cmd.Long)
	},
}

func init() {
	helpTopicsCmd.AddCommand(helpJSONCmd)
	helpTopicsCmd.AddCommand(helpDataCmd)
	rootCmd.AddCommand(helpTopicsCmd)
}
