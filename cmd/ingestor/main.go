package main

import (
	"context"
	"database/sql"
	"os/signal"
	"syscall"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"

	"hotel_reviews/internal/adapters/observability"
	"hotel_reviews/internal/app"
	"hotel_reviews/internal/ingest"
	"hotel_reviews/internal/parser"
	"hotel_reviews/internal/shared"
	"hotel_reviews/internal/storage/memory"
	mysqlrepo "hotel_reviews/internal/storage/mysql"
)

func main() {
	cfg := shared.Load()
	shared.BindFlags(pflag.CommandLine, &cfg)
	pflag.Parse()

	// 1) initialize global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv, cfg.LogLevel)
	if ms := observability.Serve(cfg.MetricsAddr, observability.InitRegistry()); ms != nil {
		defer ms.Close()
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Info().
		Str("reviews", cfg.ReviewsDir).
		Str("hotels", cfg.HotelsFile).
		Int("workers", cfg.Workers).
		Msg("ingestor starting")

	// 2) catalog (optional)
	cat := memory.NewCatalog()
	if cfg.HotelsFile != "" {
		hs, err := parser.LoadHotels(cfg.HotelsFile)
		if err != nil {
			log.Fatal().Err(err).Msg("hotels file unusable")
		}
		cat.Put(hs...)
		log.Info().Int("hotels", cat.Len()).Msg("catalog loaded")
	}

	// 3) reviews
	store := memory.NewStore()
	ing := ingest.New(store, observability.Component(log.Logger, "ingest"))
	if err := ing.Ingest(cfg.ReviewsDir, cfg.Workers); err != nil {
		log.Fatal().Err(err).Msg("ingestion failed")
	}

	// 4) persistence (optional)
	if cfg.MySQLDSN == "" {
		log.Info().Msg("MYSQL_DSN empty, skipping export")
		return
	}
	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("sql.Open failed")
	}
	defer db.Close()
	if err := db.PingContext(ctx); err != nil {
		log.Fatal().Err(err).Msg("db.Ping failed")
	}
	log.Info().Msg("db ping ok")

	exp := app.NewExportService(store, cat, mysqlrepo.New(db), cfg.ExportWorkers)
	if err := exp.Export(ctx); err != nil {
		log.Error().Err(err).Msg("export incomplete")
		return
	}
	rep := ing.LastReport()
	log.Info().Int("hotels", len(store.HotelIDs())).Int64("reviews", rep.Accepted).Msg("export completed")
}
