package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/campusdocs/webharvester/internal/api"
	"github.com/campusdocs/webharvester/internal/clock/system"
	"github.com/campusdocs/webharvester/internal/config"
	"github.com/campusdocs/webharvester/internal/crawler"
	"github.com/campusdocs/webharvester/internal/engine"
	"github.com/campusdocs/webharvester/internal/extractor"
	collyfetcher "github.com/campusdocs/webharvester/internal/fetcher/colly"
	"github.com/campusdocs/webharvester/internal/hash/sha256"
	"github.com/campusdocs/webharvester/internal/id/uuid"
	"github.com/campusdocs/webharvester/internal/logging"
	"github.com/campusdocs/webharvester/internal/metrics"
	pubsubpublisher "github.com/campusdocs/webharvester/internal/publisher/pubsub"
	"github.com/campusdocs/webharvester/internal/store/memory"
	"github.com/campusdocs/webharvester/internal/store/postgres"
	"github.com/campusdocs/webharvester/internal/tracker"
)

func main() {
	cfgPath := flag.String("config", "", "Path to config file")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config failed: %v\n", err)
		os.Exit(1)
	}
	logger, err := logging.New(cfg.Logging.Development)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger init failed: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		if syncErr := logger.Sync(); syncErr != nil {
			fmt.Fprintf(os.Stderr, "logger sync failed: %v\n", syncErr)
		}
	}()
	zap.ReplaceGlobals(logger)
	metrics.Init()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var store crawler.DocumentStore
	var ready func(ctx context.Context) error
	switch cfg.Store.Backend {
	case config.StoreBackendPostgres:
		pgStore, closeStore, err := postgres.New(ctx, cfg.Store.DSN)
		if err != nil {
			logger.Fatal("postgres store init failed", zap.Error(err))
		}
		defer closeStore()
		store = pgStore
		ready = func(ctx context.Context) error {
			_, err := pgStore.Exists(ctx, "readiness-probe")
			return err
		}
	default:
		store = memory.NewDocumentStore()
	}

	var publisher crawler.Publisher
	if cfg.PubSub.Enabled {
		pub, err := pubsubpublisher.New(ctx, cfg.PubSub.ProjectID)
		if err != nil {
			logger.Fatal("pubsub publisher init failed", zap.Error(err))
		}
		defer func() {
			if closeErr := pub.Close(); closeErr != nil {
				logger.Warn("pubsub close failed", zap.Error(closeErr))
			}
		}()
		publisher = pub
	}

	fetcher := collyfetcher.New(collyfetcher.Config{
		UserAgent: cfg.Fetch.UserAgent,
		Timeout:   cfg.FetchTimeout(),
	})
	clock := system.New()
	trk := tracker.New(clock, logger.Named("tracker"))

	eng := engine.New(engine.Deps{
		Store:     store,
		Extractor: extractor.New(fetcher, logger.Named("extractor")),
		Tracker:   trk,
		Publisher: publisher,
		Hasher:    sha256.New(),
		Clock:     clock,
		IDs:       uuid.New(),
		Logger:    logger.Named("engine"),
	}, engine.Options{
		Workers: cfg.Crawler.Workers,
		Topic:   cfg.PubSub.TopicName,
	})

	apiServer := api.NewServer(eng, trk, cfg, logger.Named("api"), ready)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           apiServer.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("http server started", zap.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutdown initiated")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", zap.Error(err))
	}
	eng.Shutdown()
	logger.Info("shutdown complete")
}
