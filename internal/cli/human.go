package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var humanCmd = &cobra.Command{
	Use:   "human",
	Short: "Show essential commands",
	Long: `Display a curated list of everyday ajar commands.

For the full command list, use: ajar --help`,
	Args: cobra.NoArgs,
	Run:  runHuman,
}

func init() {
	rootCmd.AddCommand(humanCmd)
}

func runHuman(cmd *cobra.Command, args []string) {
	fmt.Fprint(stdout, `ajar - Essential Commands
For all commands: ajar --help

Session:
  login <email> -p <pw>  Log in as a user from the data source
  whoami                 Show the current user and greeting
  logout                 End the session

Stock:
  stock list             List stock (--search, --kategori, --upbjj, --sort)
  stock list --watch     Re-render when the data file or journal changes
  stock show <kode>      Show one entry with status and notes
  stock add --kode ...   Add an entry
  stock edit <kode> --set qty=10

Delivery Orders:
  tracking list          List orders, newest first
  tracking show <DO>     Show an order and its journey
  tracking create ...    Create an order for a package
  tracking status <DO> <status> --note "..."

Lookups & Reports:
  package list           Packages and their contents
  regions / categories   UPBJJ and kategori lists
  sql "SELECT ..."       Read-only SQL over the mirror
  export <file>          Write the current state as a data file

Quick Examples:
  ajar login rina@ut.ac.id -p rina123
  ajar stock list --kategori MK --sort qty-asc
  ajar tracking create --nim 123456789 --nama "Rina" --ekspedisi JNE --paket PAKET-UT-001
  ajar sql "SELECT upbjj, SUM(qty) FROM stock GROUP BY upbjj"
`)
}
