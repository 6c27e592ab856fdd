package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/jlindqvist/stocklist/api/routes"
	"github.com/jlindqvist/stocklist/internal/backup"
	"github.com/jlindqvist/stocklist/internal/checkout"
	"github.com/jlindqvist/stocklist/internal/engine"
	"github.com/jlindqvist/stocklist/internal/groups"
	"github.com/jlindqvist/stocklist/internal/items"
	"github.com/jlindqvist/stocklist/internal/projection"
	"github.com/jlindqvist/stocklist/internal/selection"
	"github.com/jlindqvist/stocklist/internal/trash"
	"github.com/jlindqvist/stocklist/pkg/config"
	"github.com/jlindqvist/stocklist/pkg/db"
	"github.com/jlindqvist/stocklist/pkg/logger"
	"github.com/jlindqvist/stocklist/pkg/metrics"
	"github.com/jlindqvist/stocklist/pkg/migrate"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRun(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run migrations", err)
		os.Exit(1)
	}

	eng, err := engine.New(engine.Params{
		DB:      dbClient,
		Log:     logg,
		Metrics: metrics.NewEngineMetrics(prometheus.DefaultRegisterer),
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create engine", err)
		os.Exit(1)
	}

	itemRepo := items.NewRepository(eng.DB())
	groupRepo := groups.NewRepository(eng.DB())
	settingsRepo := groups.NewSettingsRepository(eng.DB())

	itemsService, err := items.NewService(items.ServiceParams{
		Tx:   eng,
		Repo: itemRepo,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create items service", err)
		os.Exit(1)
	}

	groupsService, err := groups.NewService(groups.ServiceParams{
		Tx:       eng,
		Repo:     groupRepo,
		Settings: settingsRepo,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create groups service", err)
		os.Exit(1)
	}

	projectionService, err := projection.NewService(projection.ServiceParams{
		Read: eng,
		Repo: projection.NewRepository(eng.DB()),
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create projection service", err)
		os.Exit(1)
	}

	selectionService, err := selection.NewService(selection.ServiceParams{
		Tx:   eng,
		Repo: selection.NewRepository(eng.DB()),
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create selection service", err)
		os.Exit(1)
	}

	trashService, err := trash.NewService(trash.ServiceParams{
		Tx:    eng,
		Repo:  trash.NewRepository(eng.DB()),
		Items: itemRepo,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create trash service", err)
		os.Exit(1)
	}

	checkoutService, err := checkout.NewService(checkout.ServiceParams{
		Tx:    eng,
		Repo:  checkout.NewRepository(eng.DB()),
		Items: itemRepo,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create checkout service", err)
		os.Exit(1)
	}

	backupService, err := backup.NewService(backup.ServiceParams{
		Tx:       eng,
		Items:    itemRepo,
		Groups:   groupRepo,
		Settings: settingsRepo,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create backup service", err)
		os.Exit(1)
	}

	if err := groupsService.Bootstrap(context.Background()); err != nil {
		logg.Error(context.Background(), "failed to bootstrap store", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(cfg, logg, dbClient, routes.Services{
			Items:      itemsService,
			Groups:     groupsService,
			Projection: projectionService,
			Selection:  selectionService,
			Trash:      trashService,
			Checkout:   checkoutService,
			Backup:     backupService,
		}),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
