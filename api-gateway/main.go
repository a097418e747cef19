package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tableside/api-gateway/internal/gateway"
	"tableside/config"
	"tableside/pkg/httpserver"
	"tableside/pkg/logger"
)

const upstreamTimeout = 30 * time.Second

func main() {
	cfg := config.Load()
	log := logger.New(logger.Config{Service: "api-gateway", Level: cfg.LogLevel, Format: cfg.LogFormat})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := httpserver.Serve(ctx, cfg.GatewayAddr, newHandler(cfg, log), log); err != nil {
		log.Error("api-gateway exited", "error", err)
		os.Exit(1)
	}
}

func newHandler(cfg config.Config, log *slog.Logger) http.Handler {
	gw := gateway.NewGateway(gateway.Config{
		DiningSvcURL:    cfg.DiningSvcURL,
		AnalyticsSvcURL: cfg.AnalyticsSvcURL,
	}, &http.Client{Timeout: upstreamTimeout}, log)

	return httpserver.Wrap("api-gateway", gw.SetupRoutes(), log)
}
