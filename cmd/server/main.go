package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	activityhandler "parlo/internal/activity/handler"
	activitymetrics "parlo/internal/activity/metrics"
	activityservice "parlo/internal/activity/service"
	activitystore "parlo/internal/activity/store"
	libraryhandler "parlo/internal/library/handler"
	libraryservice "parlo/internal/library/service"
	librarystore "parlo/internal/library/store"
	"parlo/internal/platform/config"
	"parlo/internal/platform/database"
	"parlo/internal/platform/httpserver"
	"parlo/internal/platform/logger"
	"parlo/internal/platform/middleware"
	platformredis "parlo/internal/platform/redis"
	"parlo/internal/token"
)

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in the internal service
// packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New()

	var (
		libraryStore libraryservice.Store
		eventStore   activityservice.EventStore
		recencyStore activityservice.RecencyStore
	)

	if cfg.DatabaseURL != "" {
		db, err := database.Connect(cfg.DatabaseURL)
		if err != nil {
			log.Error("database connection failed", "error", err.Error())
			os.Exit(1)
		}
		defer db.Close()
		libraryStore = librarystore.NewPostgres(db)
		eventStore = activitystore.NewPostgres(db)
	} else {
		log.Warn("DATABASE_URL not set, using in-memory stores")
		mem := librarystore.NewMemory()
		libraryStore = mem
		eventStore = activitystore.NewMemory(mem)
	}

	redisClient, err := platformredis.New(cfg.Redis)
	if err != nil {
		log.Error("redis connection failed", "error", err.Error())
		os.Exit(1)
	}
	if redisClient != nil {
		defer redisClient.Close()
		recencyStore = activitystore.NewRedisRecency(redisClient.Client, config.RecencyTTL)
	} else {
		recencyStore = activitystore.NewMemoryRecency()
	}

	tokens := token.NewManager(cfg.JWTSigningKey, "parlo")
	auth := middleware.RequireUser(tokens, cfg.TrustUserHeader, log)

	activitySvc := activityservice.New(eventStore, log,
		activityservice.WithRecency(recencyStore),
		activityservice.WithMetrics(activitymetrics.New()),
	)
	librarySvc := libraryservice.New(libraryStore)

	router := chi.NewRouter()
	router.Use(middleware.Recovery(log))
	router.Use(middleware.RequestID)
	router.Use(middleware.RequestTime)
	router.Use(middleware.Logger(log))
	router.Use(middleware.Timeout(30 * time.Second))
	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	activityhandler.New(activitySvc, log, auth).Register(router)
	libraryhandler.New(librarySvc, log, auth).Register(router)

	srv := httpserver.New(cfg.Addr, router)

	metricsMux := http.NewServeMux()
	metricsMux.Handle("/metrics", promhttp.Handler())
	metricsSrv := httpserver.New(cfg.MetricsAddr, metricsMux)

	log.Info("starting parlo", "addr", cfg.Addr, "metrics_addr", cfg.MetricsAddr)

	go func() {
		if err := metricsSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("metrics server error", "error", err.Error())
		}
	}()
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err.Error())
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = metricsSrv.Shutdown(ctx)
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("graceful shutdown failed", "error", err.Error())
		os.Exit(1)
	}
}
