// Command minicache serves a fixed-capacity LRU cache over HTTP.
//
// Configuration comes from the environment (and an optional .env file):
// CAPACITY (default 100), HOST (127.0.0.1), PORT (3000), MAX_VALUE_BYTES,
// DEBUG_ENDPOINT, LOG_LEVEL, LOG_FORMAT, SHUTDOWN_TIMEOUT, METRICS_NAMESPACE.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/IvanBrykalov/minicache/cache"
	"github.com/IvanBrykalov/minicache/internal/api"
	"github.com/IvanBrykalov/minicache/internal/config"
	"github.com/IvanBrykalov/minicache/internal/logger"
	"github.com/IvanBrykalov/minicache/internal/server"
	"github.com/IvanBrykalov/minicache/metrics/prom"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "minicache:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log := logger.New(os.Stdout, cfg.LogLevel, logger.Format(cfg.LogFormat), "minicache")
	slog.SetDefault(log)

	// Own registry so only this process's collectors are exported.
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics := prom.New(reg, cfg.MetricsNS, "cache", nil)
	metrics.SetCapacity(cfg.Capacity)

	store := cache.NewShared(cache.Options{
		Capacity: cfg.Capacity,
		Metrics:  metrics,
	})

	router := api.NewRouter(store, log,
		api.WithMaxValueBytes(cfg.MaxValueBytes),
		api.WithDebugEndpoint(cfg.DebugEndpoint),
		api.WithMetricsHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info("starting",
		slog.String("addr", cfg.Addr()),
		slog.Int("capacity", cfg.Capacity),
		slog.Bool("debug_endpoint", cfg.DebugEndpoint),
	)
	if err := server.New(cfg.Addr(), router, log, cfg.ShutdownTimeout).Run(ctx); err != nil {
		log.Error("server stopped", logger.Error(err))
		return err
	}

	st := store.Stats()
	log.Info("stopped",
		slog.Uint64("hits", st.Hits),
		slog.Uint64("misses", st.Misses),
		slog.Uint64("evictions", st.Evictions),
		slog.Int("entries", st.Len),
	)
	return nil
}
