package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/thanhvudev/furnimart/config"
	"github.com/thanhvudev/furnimart/database/seeders"
	"github.com/thanhvudev/furnimart/pkg/app"
	"github.com/thanhvudev/furnimart/pkg/database"
)

// bootDB loads config and opens the database connection.
func bootDB() error {
	if err := config.Load(); err != nil {
		return err
	}
	return database.Connect()
}

// furnimart migrate
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run all pending database migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println("Running migrations...")
		return app.Migrate()
	},
}

// furnimart migrate:rollback
var migrateRollbackCmd = &cobra.Command{
	Use:   "migrate:rollback",
	Short: "Rollback the last batch of migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println("Rolling back last batch...")
		return app.MigrateRollback()
	},
}

// furnimart migrate:status
var migrateStatusCmd = &cobra.Command{
	Use:   "migrate:status",
	Short: "Show the status of each migration",
	RunE: func(cmd *cobra.Command, args []string) error {
		return app.MigrateStatus()
	},
}

// furnimart seed
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Run all database seeders",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := bootDB(); err != nil {
			return err
		}
		fmt.Println("Running seeders...")
		return seeders.RunAll(database.DB)
	},
}
