// Command idcardctl runs maintenance tasks against the ID card store.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"idcard/internal/config"
	"idcard/internal/db"
	"idcard/internal/logger"
)

var (
	verbose bool
	timeout time.Duration
)

var rootCmd = &cobra.Command{
	Use:           "idcardctl",
	Short:         "Maintenance tasks for the ID card store",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 5*time.Minute, "Operation timeout")

	seedCmd.Flags().StringVarP(&seedFile, "file", "f", "", "Seed file path or http(s) URL (.json, .yaml, .yml)")
	_ = seedCmd.MarkFlagRequired("file")

	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(dropIndexCmd)
	rootCmd.AddCommand(seedCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// env is what every subcommand needs: config, a logger and an open store.
type env struct {
	cfg *config.Config
	log *logrus.Logger
	db  *gorm.DB
}

func open() (*env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if verbose {
		cfg.Log.Level = "debug"
	}
	log := logger.New(cfg.Log)

	gdb, err := db.Open(cfg.Database, log)
	if err != nil {
		return nil, fmt.Errorf("open %s store: %w", cfg.Database.Driver, err)
	}
	return &env{cfg: cfg, log: log, db: gdb}, nil
}

func (e *env) close() {
	if err := db.Close(e.db); err != nil {
		e.log.WithError(err).Warn("close store")
	}
}

func withTimeout(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return context.WithTimeout(cmd.Context(), timeout)
}
