// Command furnimart is the project binary: it serves the storefront and
// back-office API and carries the operational sub-commands (migrations,
// seeding, workers, route listing).
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Imported so their init() funcs register migrations and seeders.
	_ "github.com/thanhvudev/furnimart/database/migrations"
	_ "github.com/thanhvudev/furnimart/database/seeders"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "furnimart",
	Short: "Furnimart furniture storefront and back office",
	Long:  "Furnimart serves the customer storefront and the admin back office, and manages the database and background workers.",
}

func init() {
	// Server
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(routeListCmd)

	// Database
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(migrateRollbackCmd)
	rootCmd.AddCommand(migrateStatusCmd)
	rootCmd.AddCommand(seedCmd)

	// Workers
	rootCmd.AddCommand(queueWorkCmd)
	rootCmd.AddCommand(scheduleRunCmd)
}
