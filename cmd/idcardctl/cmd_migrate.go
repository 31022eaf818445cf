package main

import (
	"github.com/spf13/cobra"

	"idcard/internal/db"
)

// migrateCmd creates or updates the templates and records tables.
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the store schema",
	Args:  cobra.NoArgs,
	RunE:  runMigrate,
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	e, err := open()
	if err != nil {
		return err
	}
	defer e.close()

	ctx, cancel := withTimeout(cmd)
	defer cancel()

	if err := db.Migrate(ctx, e.db); err != nil {
		return err
	}
	e.log.WithField("driver", e.cfg.Database.Driver).Info("schema up to date")
	return nil
}
