package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpapi "tableside/analytics-svc/internal/api/http"
	"tableside/analytics-svc/internal/service"
	"tableside/config"
	"tableside/pkg/httpserver"
	"tableside/pkg/logger"

	"github.com/redis/go-redis/v9"
)

const serviceName = "analytics-svc"

func main() {
	cfg := config.Load()
	log := logger.New(logger.Config{Service: serviceName, Level: cfg.LogLevel, Format: cfg.LogFormat})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	handler, cleanup, err := buildApp(cfg, log)
	if err != nil {
		log.Error("analytics-svc failed to start", "error", err)
		os.Exit(1)
	}
	defer cleanup()

	if err := httpserver.Serve(ctx, cfg.AnalyticsAddr, handler, log); err != nil {
		log.Error("analytics-svc exited", "error", err)
		os.Exit(1)
	}
}

// buildApp connects to redis and, with the postgres backend, to the
// orders database used as fallback.
func buildApp(cfg config.Config, log *slog.Logger) (http.Handler, func(), error) {
	if !cfg.RedisEnabled() && cfg.StoreBackend != "postgres" {
		return nil, nil, errors.New("analytics needs REDIS_HOST or STORE_BACKEND=postgres")
	}

	var (
		rdb *redis.Client
		db  *sql.DB
	)
	if cfg.RedisEnabled() {
		rdb = config.MustInitRedis(cfg)
	} else {
		log.Warn("redis not configured, every request reads postgres")
	}
	if cfg.StoreBackend == "postgres" {
		db = config.MustInitPostgres(cfg)
	}

	cleanup := func() {
		if rdb != nil {
			rdb.Close()
		}
		if db != nil {
			db.Close()
		}
	}

	svc := service.NewAnalyticsService(rdb, db, cfg.Location(), time.Now, log)
	return httpapi.NewRouter(httpapi.NewHandler(svc, log)), cleanup, nil
}
