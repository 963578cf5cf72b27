package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/dotapulse/imp-api/internal/config"
	"github.com/dotapulse/imp-api/internal/handlers"
	"github.com/dotapulse/imp-api/internal/logic"
	"github.com/dotapulse/imp-api/internal/provider"
	"github.com/dotapulse/imp-api/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	var logger *zap.Logger
	if cfg.Env == "production" {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	sugar := logger.Sugar()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Postgres
	pg, err := pgxpool.New(ctx, cfg.PostgresURL)
	if err != nil {
		sugar.Fatalw("Postgres connection failed", "error", err)
	}
	defer pg.Close()

	// ClickHouse
	chOpts, err := clickhouse.ParseDSN(cfg.ClickHouseURL)
	if err != nil {
		sugar.Fatalw("Invalid ClickHouse DSN", "error", err)
	}
	ch, err := clickhouse.Open(chOpts)
	if err != nil {
		sugar.Fatalw("ClickHouse connection failed", "error", err)
	}
	defer ch.Close()

	// Redis
	redisOpts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		sugar.Fatalw("Invalid Redis URL", "error", err)
	}
	rdb := redis.NewClient(redisOpts)
	defer rdb.Close()

	// Coefficient book: loaded once, immutable for the process lifetime.
	book, err := logic.LoadCoefficients(cfg.CoefficientsPath)
	if err != nil {
		sugar.Fatalw("Coefficient book rejected", "path", cfg.CoefficientsPath, "error", err)
	}

	// Providers: OpenDota primary, Stratz secondary on rate limits.
	opendota := provider.NewOpenDota(cfg.OpenDotaBaseURL, cfg.ProviderTimeout, logger)
	stratz := provider.NewStratz(cfg.StratzURL, cfg.StratzToken, cfg.ProviderTimeout, logger)
	orchestrator := provider.NewOrchestrator(opendota, stratz, logger)

	benchmarks := logic.NewBenchmarkService(orchestrator, rdb, cfg.BenchmarkCacheTTL, logger)
	engine := logic.NewEngine(book)
	scores := logic.NewScoreService(orchestrator, benchmarks, engine, logger)
	history := logic.NewHistoryService(ch)
	tracking := logic.NewTrackingService(pg, rdb)

	var tracker *worker.Tracker
	if cfg.TrackerEnabled {
		tracker = worker.NewTracker(worker.TrackerConfig{
			Interval:  cfg.TrackerInterval,
			Providers: orchestrator,
			Scores:    scores,
			History:   history,
			Tracking:  tracking,
			Logger:    logger,
		})
		tracker.Start(ctx)
	}

	h := handlers.New(handlers.Config{
		Postgres:   pg,
		ClickHouse: ch,
		Redis:      rdb,
		Logger:     logger,
		Providers:  orchestrator,
		Fallbacks:  orchestrator,
		Scores:     scores,
		History:    history,
		Tracking:   tracking,
	})

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/health", h.Health)
	r.Get("/ready", h.Ready)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/score", h.ScoreParticipant)
		r.Get("/matches/{matchId}/scorecard", h.GetMatchScorecard)

		r.Route("/players/{accountId}", func(r chi.Router) {
			r.Get("/", h.GetPlayer)
			r.Get("/recent", h.GetPlayerRecentMatches)
			r.Get("/peers", h.GetPlayerPeers)
			r.Get("/wl", h.GetPlayerWinLoss)
			r.Get("/scores", h.GetPlayerScores)
		})

		r.Get("/tracked", h.ListTrackedPlayers)
		r.Post("/tracked", h.TrackPlayer)
		r.Delete("/tracked/{accountId}", h.UntrackPlayer)

		r.Get("/system/fallbacks", h.GetFallbacks)
		r.Post("/system/fallbacks/reset", h.ResetFallbacks)
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		sugar.Infow("Server starting", "port", cfg.Port, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			sugar.Fatalw("Server failed", "error", err)
		}
	}()

	<-ctx.Done()
	sugar.Info("Shutting down...")

	if tracker != nil {
		tracker.Stop()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		sugar.Errorw("Graceful shutdown failed", "error", err)
	}
	sugar.Info("Server stopped")
}
