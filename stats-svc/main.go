package main

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"tableside/config"
	"tableside/pkg/httpserver"
	"tableside/pkg/logger"
	"tableside/stats-svc/internal/service"
	"tableside/stats-svc/internal/storage"

	"github.com/gorilla/mux"
)

const (
	serviceName   = "stats-svc"
	consumerGroup = "stats-svc"
)

func main() {
	cfg := config.Load()
	log := logger.New(logger.Config{Service: serviceName, Level: cfg.LogLevel, Format: cfg.LogFormat})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("stats-svc exited", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, log *slog.Logger) error {
	if !cfg.KafkaEnabled() {
		return errors.New("KAFKA_BROKER is required")
	}
	if !cfg.RedisEnabled() {
		return errors.New("REDIS_HOST is required")
	}

	rdb := config.MustInitRedis(cfg)
	defer rdb.Close()

	reader := config.NewKafkaReader(cfg, consumerGroup)
	defer reader.Close()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	serveErr := make(chan error, 1)
	go func() {
		err := httpserver.Serve(ctx, cfg.StatsAddr, newRouter(log), log)
		if err != nil {
			log.Error("ops server failed", "error", err)
			cancel()
		}
		serveErr <- err
	}()

	consumer := service.NewConsumer(reader, storage.NewStore(rdb, cfg.StatsTTL), cfg.Location(), log)
	err := consumer.Start(ctx)
	cancel()
	if serr := <-serveErr; err == nil {
		err = serr
	}
	return err
}

// newRouter serves only /health and /metrics.
func newRouter(log *slog.Logger) http.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{
			"status":  "healthy",
			"service": serviceName,
		})
	}).Methods("GET")
	return httpserver.Wrap(serviceName, r, log)
}
