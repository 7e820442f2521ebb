package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/geocoder89/memberhub/internal/config"
	"github.com/geocoder89/memberhub/internal/notifications"
	"github.com/geocoder89/memberhub/internal/observability"
	"github.com/geocoder89/memberhub/internal/queue/redisclient"
	queueworker "github.com/geocoder89/memberhub/internal/queue/worker"
	"github.com/geocoder89/memberhub/internal/worker"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()

	log := observability.NewLogger(cfg.Env)

	ctx, stop := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
	)

	defer stop()

	rdb := redisclient.New(redisclient.Config{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	defer func() { _ = rdb.Close() }()

	prom := observability.NewProm(prometheus.NewRegistry())

	notifier := notifications.NewProtectedNotifier(
		notifications.NewLogNotifier(log),
		notifications.ProtectedNotifierConfig{},
	)

	w := queueworker.New(queueworker.Config{
		QueueKey:   cfg.QueueKey,
		PopTimeout: 5 * time.Second,
	}, rdb, notifier, prom, log)

	// health endpoints for the worker process
	var shuttingDown atomic.Bool

	healthMux := http.NewServeMux()
	healthMux.Handle("/healthz", worker.HealthHandler())
	healthMux.Handle("/readyz", worker.ReadyHandler(rdb, shuttingDown.Load))

	healthSrv := &http.Server{
		Addr:              ":9091",
		Handler:           healthMux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		if err := healthSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("worker health server failed", "err", err)
		}
	}()

	log.Info("worker started", "queue", cfg.QueueKey)

	if err := w.Run(ctx); err != nil {
		log.Error("worker stopped with error", "err", err)
	}

	shuttingDown.Store(true)

	shutdownCtx, cancel := config.WithTimeout(5 * time.Second)
	defer cancel()
	_ = healthSrv.Shutdown(shutdownCtx)

	log.Info("worker shutdown complete")
}
