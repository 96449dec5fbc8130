// Command ajar tracks teaching-material stock and delivery orders.
package main

import "github.com/user/ajar/internal/cli"

func main() {
	cli.Execute()
}
