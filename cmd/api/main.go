package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"
	"golang.org/x/sync/errgroup"

	server "hotel_reviews/internal/adapters/http_server"
	"hotel_reviews/internal/adapters/observability"
	redisad "hotel_reviews/internal/adapters/redis"
	"hotel_reviews/internal/app"
	"hotel_reviews/internal/domain"
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

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv, cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// data
	cat := memory.NewCatalog()
	if cfg.HotelsFile != "" {
		hs, err := parser.LoadHotels(cfg.HotelsFile)
		if err != nil {
			log.Fatal().Err(err).Msg("hotels file unusable")
		}
		cat.Put(hs...)
	}
	store := memory.NewStore()
	if err := ingest.New(store, observability.Component(log.Logger, "ingest")).Ingest(cfg.ReviewsDir, cfg.Workers); err != nil {
		log.Fatal().Err(err).Msg("ingestion failed")
	}

	// deps (both optional)
	var likes domain.LikeCounter
	if cfg.MySQLDSN != "" {
		db, err := sql.Open("mysql", cfg.MySQLDSN)
		if err != nil {
			log.Fatal().Err(err).Msg("sql.Open failed")
		}
		defer db.Close()
		if err := db.PingContext(ctx); err != nil {
			log.Fatal().Err(err).Msg("db.Ping failed")
		}
		log.Info().Msg("database connection ok")
		likes = mysqlrepo.New(db)
	}
	var cache domain.Cache
	if cfg.RedisAddr != "" {
		rc := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
		defer rc.Close()
		if err := rc.Ping(ctx); err != nil {
			log.Warn().Err(err).Msg("redis unreachable, serving without cache")
		} else {
			cache = rc
		}
	}
	q := app.NewQueryService(store, cat, likes, cache, cfg.CacheTTL)

	// http
	srv := server.New(server.Options{RPS: cfg.APIRPS, Logger: observability.Component(log.Logger, "http")})
	reg := observability.InitRegistry()
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(&server.Handlers{Q: q})

	httpSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: srv.Mux(), ReadHeaderTimeout: 5 * time.Second}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info().Str("addr", cfg.HTTPAddr).Msg("API listening")
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		log.Info().Msg("shutting down")
		return httpSrv.Shutdown(shutdownCtx)
	})
	if err := g.Wait(); err != nil {
		log.Fatal().Err(err).Msg("http server failed")
	}
}
