package main

import (
	"github.com/spf13/cobra"

	"idcard/internal/cache"
	"idcard/internal/db"
	"idcard/internal/repository"
	"idcard/internal/seed"
	"idcard/internal/service"
)

var seedFile string

// seedCmd loads templates and records from a seed file.
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load templates and records from a seed file",
	Long: `Load templates and records from a JSON or YAML seed file.

Templates are upserted by name, so running the same file twice keeps one
template per name. Records are always created. Invalid entries are skipped
with a warning.`,
	Args: cobra.NoArgs,
	RunE: runSeed,
}

func runSeed(cmd *cobra.Command, _ []string) error {
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

	f, err := seed.Load(ctx, seedFile)
	if err != nil {
		return err
	}
	e.log.WithField("source", seedFile).
		WithField("templates", len(f.Templates)).
		WithField("records", len(f.Records)).
		Info("seed file loaded")

	// Upserts invalidate cached templates the running server may hold.
	cacheClient := cache.New(e.cfg.Redis)
	defer func() { _ = cacheClient.Close() }()

	templateRepo := repository.NewTemplateRepository(e.db)
	templates := service.NewTemplateService(templateRepo, cacheClient, e.log)
	records := service.NewRecordService(
		repository.NewRecordRepository(e.db),
		service.NewResolver(templateRepo, templates, e.log),
		e.log,
	)

	res, err := seed.Apply(ctx, templates, records, e.log, f)
	if err != nil {
		return err
	}
	e.log.WithField("templates", res.Templates).
		WithField("records", res.Records).
		WithField("skipped", res.Skipped).
		Info("seed completed")
	return nil
}
