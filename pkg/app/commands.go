package app

import (
	"fmt"

	"github.com/thanhvudev/furnimart/config"
	"github.com/thanhvudev/furnimart/pkg/database"
	"github.com/thanhvudev/furnimart/pkg/migration"
)

// Serve boots the shared infrastructure and starts the HTTP and gRPC
// servers.
func (a *Application) Serve() error { return startServer(a) }

// Migrate runs all pending migrations.
func Migrate() error {
	if err := bootDB(); err != nil {
		return err
	}
	return migration.New(database.DB).Run()
}

// MigrateRollback reverses the last migration batch.
func MigrateRollback() error {
	if err := bootDB(); err != nil {
		return err
	}
	return migration.New(database.DB).Rollback()
}

// MigrateStatus prints each migration and whether it has run.
func MigrateStatus() error {
	if err := bootDB(); err != nil {
		return err
	}
	return migration.New(database.DB).Status()
}

// bootDB loads config and connects to the database. The migrate commands run
// without the full server boot.
func bootDB() error {
	if err := config.Load(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return database.Connect()
}
