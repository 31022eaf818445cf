package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/labstack/echo/v4"

	_ "idcard/docs" // swagger docs

	"idcard/internal/cache"
	"idcard/internal/config"
	"idcard/internal/db"
	"idcard/internal/handler"
	"idcard/internal/logger"
	"idcard/internal/repository"
	"idcard/internal/router"
	"idcard/internal/service"
)

// @title ID Card Studio API
// @version 1.0
// @description Templates and records for printable ID cards.
// @host localhost:8080
// @BasePath /api
// @schemes http
func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.New(config.LogConfig{}).WithError(err).Fatal("load config")
	}
	log := logger.New(cfg.Log)

	gormDB, err := db.Open(cfg.Database, log)
	if err != nil {
		log.WithError(err).WithField("driver", cfg.Database.Driver).Fatal("database init")
	}
	defer func() { _ = db.Close(gormDB) }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := db.Migrate(ctx, gormDB); err != nil {
		log.WithError(err).Fatal("auto-migrate")
	}

	cacheClient := cache.New(cfg.Redis)
	defer func() { _ = cacheClient.Close() }()
	if err := cacheClient.Ping(ctx); err != nil {
		log.WithError(err).Warn("redis unreachable, template cache disabled until it recovers")
	}

	// Initialize repositories
	templateRepo := repository.NewTemplateRepository(gormDB)
	recordRepo := repository.NewRecordRepository(gormDB)

	// Initialize services
	templateService := service.NewTemplateService(templateRepo, cacheClient, log)
	resolver := service.NewResolver(templateRepo, templateService, log)
	recordService := service.NewRecordService(recordRepo, resolver, log)

	e := echo.New()
	e.Server.ReadTimeout = cfg.Server.ReadTimeout
	e.Server.WriteTimeout = cfg.Server.WriteTimeout

	router.Register(
		e,
		cfg,
		log,
		gormDB,
		handler.NewTemplateHandler(templateService),
		handler.NewRecordHandler(recordService),
	)

	go func() {
		log.WithField("addr", cfg.Server.Address()).Info("server listening")
		if err := e.Start(cfg.Server.Address()); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("server start")
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("graceful shutdown")
	}
}
