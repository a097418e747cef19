package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tableside/config"
	httpapi "tableside/dining-svc/internal/api/http"
	"tableside/dining-svc/internal/identity"
	"tableside/dining-svc/internal/service"
	"tableside/dining-svc/internal/storage"
	"tableside/pkg/httpserver"
	"tableside/pkg/logger"

	"github.com/spf13/cobra"
)

const serviceName = "dining-svc"

// webhookMarkerTTL bounds how long a delivery id is remembered.
const webhookMarkerTTL = 24 * time.Hour

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           serviceName,
		Short:         "Restaurant menu, ordering, reservation and table service",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newServeCommand(), newMigrateCommand())
	return root
}

func newServeCommand() *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			if addr != "" {
				cfg.HTTPAddr = addr
			}
			log := newLogger(cfg)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			handler, cleanup, err := buildApp(ctx, cfg, log)
			if err != nil {
				return err
			}
			defer cleanup()

			return httpserver.Serve(ctx, cfg.HTTPAddr, handler, log)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address, overrides HTTP_ADDR")
	return cmd
}

func newMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the Postgres schema and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			log := newLogger(cfg)

			db := config.MustInitPostgres(cfg)
			defer db.Close()

			if err := storage.NewPostgresRepository(db).EnsureSchema(cmd.Context()); err != nil {
				return err
			}
			log.Info("schema is up to date")
			return nil
		},
	}
}

func newLogger(cfg config.Config) *slog.Logger {
	return logger.New(logger.Config{
		Service: serviceName,
		Level:   cfg.LogLevel,
		Format:  cfg.LogFormat,
	})
}

// buildApp wires storage, collaborators and services into the HTTP handler.
// The returned cleanup releases every connection it opened.
func buildApp(ctx context.Context, cfg config.Config, log *slog.Logger) (http.Handler, func(), error) {
	var closers []func() error
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			if err := closers[i](); err != nil {
				log.Warn("shutdown cleanup failed", "error", err)
			}
		}
	}

	var repos service.Repositories
	switch cfg.StoreBackend {
	case "memory":
		log.Warn("using in-memory store, data is lost on restart")
		repos = storage.Repositories(storage.NewMemoryStore())
	case "postgres":
		db := config.MustInitPostgres(cfg)
		closers = append(closers, db.Close)
		pg := storage.NewPostgresRepository(db)
		if err := pg.EnsureSchema(ctx); err != nil {
			cleanup()
			return nil, nil, err
		}
		repos = storage.Repositories(pg)
	default:
		return nil, nil, fmt.Errorf("unknown STORE_BACKEND %q", cfg.StoreBackend)
	}

	var (
		cache  service.MenuCache
		marker service.MessageMarker
	)
	if cfg.RedisEnabled() {
		client := config.MustInitRedis(cfg)
		closers = append(closers, client.Close)
		cache = storage.NewRedisCache(client, cfg.MenuCacheTTL)
		marker = storage.NewRedisMarker(client, webhookMarkerTTL)
	} else {
		log.Info("redis not configured, menu cache and webhook dedupe disabled")
	}

	var publisher service.EventPublisher
	if cfg.KafkaEnabled() {
		writer := config.NewKafkaWriter(cfg)
		closers = append(closers, writer.Close)
		publisher = storage.NewKafkaPublisher(writer)
	} else {
		log.Info("kafka not configured, domain events are not published")
	}

	var (
		media      service.MediaStore
		uploadsDir string
	)
	switch cfg.MediaBackend {
	case "gcs":
		gcsStore, err := storage.NewGCSMediaStore(ctx, cfg.GCSBucket, cfg.GCSCredentialsFile)
		if err != nil {
			cleanup()
			return nil, nil, err
		}
		closers = append(closers, gcsStore.Close)
		media = gcsStore
	default:
		media = storage.NewLocalMediaStore(cfg.MediaDir, cfg.MediaURLPrefix)
		uploadsDir = cfg.MediaDir
	}

	var verifier *identity.Verifier
	if cfg.WebhookSecret != "" {
		v, err := identity.NewVerifier(cfg.WebhookSecret, identity.DefaultTolerance, time.Now)
		if err != nil {
			cleanup()
			return nil, nil, err
		}
		verifier = v
	} else {
		log.Warn("IDENTITY_WEBHOOK_SECRET not set, identity webhook disabled")
	}

	clock := service.SystemClock{}
	reconciler := service.NewReconciler(repos, clock, cfg.Location())
	qr := service.DefaultQRGenerator{BaseURL: cfg.PublicBaseURL}

	handler := httpapi.NewHandler(
		service.NewTableService(repos, reconciler, qr, publisher, clock, log),
		service.NewOrderService(repos, reconciler, publisher, clock, cfg.OrderCancelWindow, log),
		service.NewReservationService(repos, reconciler, publisher, clock, log),
		service.NewMenuService(repos, cache, media, clock, log),
		service.NewUserService(repos, marker, clock, log),
		verifier,
		log,
	)
	handler.UploadsDir = uploadsDir

	return httpapi.NewRouter(handler), cleanup, nil
}
