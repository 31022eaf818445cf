package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

// dropIndexCmd removes a stale index, e.g. a unique index left on a column
// that no longer needs one.
var dropIndexCmd = &cobra.Command{
	Use:   "drop-index <table> <index>",
	Short: "Drop an index if it exists",
	Long: `Drop an index from a table, listing the table's indexes before and after.

A missing index is reported and treated as success.`,
	Args: cobra.ExactArgs(2),
	RunE: runDropIndex,
}

func runDropIndex(cmd *cobra.Command, args []string) error {
	table, index := args[0], args[1]

	e, err := open()
	if err != nil {
		return err
	}
	defer e.close()

	ctx, cancel := withTimeout(cmd)
	defer cancel()
	gdb := e.db.WithContext(ctx)

	before, err := indexNames(gdb, table)
	if err != nil {
		return err
	}
	e.log.WithField("table", table).WithField("indexes", before).Info("indexes before")

	m := gdb.Migrator()
	if !m.HasIndex(table, index) {
		e.log.WithField("table", table).WithField("index", index).Warn("index not found, nothing to drop")
		return nil
	}
	if err := m.DropIndex(table, index); err != nil {
		return fmt.Errorf("drop index %s on %s: %w", index, table, err)
	}

	after, err := indexNames(gdb, table)
	if err != nil {
		return err
	}
	e.log.WithField("table", table).WithField("indexes", after).Info("index dropped")
	return nil
}

func indexNames(gdb *gorm.DB, table string) ([]string, error) {
	indexes, err := gdb.Migrator().GetIndexes(table)
	if err != nil {
		return nil, fmt.Errorf("list indexes on %s: %w", table, err)
	}
	names := make([]string, 0, len(indexes))
	for _, idx := range indexes {
		names = append(names, idx.Name())
	}
	return names, nil
}
