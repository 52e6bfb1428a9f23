package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/srgjo27/staybook/internal/adapter/broker/kafka"
	"github.com/srgjo27/staybook/internal/adapter/handler"
	"github.com/srgjo27/staybook/internal/adapter/repository/memory"
	"github.com/srgjo27/staybook/internal/adapter/repository/postgres"
	"github.com/srgjo27/staybook/internal/config"
	"github.com/srgjo27/staybook/internal/core/ports"
	"github.com/srgjo27/staybook/internal/core/services"
	"github.com/srgjo27/staybook/internal/platform/database"
	"github.com/srgjo27/staybook/internal/platform/logger"
)

func main() {
	envFile := flag.String("env-file", ".env", "optional .env file")
	flag.Parse()

	cfg, err := config.LoadWithFile(*envFile)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Env, cfg.LogLevel)

	if err := run(cfg, log); err != nil {
		log.Error("server stopped with error", "error", err)
		os.Exit(1)
	}
	log.Info("server exiting")
}

func run(cfg *config.Config, log *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	policy, err := config.LoadPolicy(cfg.PolicyPath)
	if err != nil {
		return err
	}

	repo, closeRepo, err := openRepository(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeRepo()

	var cache *redis.Client
	if cfg.RedisAddr != "" {
		log.Info("connecting to redis", "addr", cfg.RedisAddr)
		cache = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, DB: 0})
		if err := cache.Ping(ctx).Err(); err != nil {
			return err
		}
		defer cache.Close()
		log.Info("redis connected")
	}

	var publisher ports.EventPublisher
	if len(cfg.KafkaBrokers) > 0 {
		pub, err := kafka.NewPublisher(cfg.KafkaBrokers, cfg.KafkaTopic, nil)
		if err != nil {
			return err
		}
		defer pub.Close()
		publisher = pub
		log.Info("publishing booking events", "topic", cfg.KafkaTopic)
	}

	resource := services.NewBookingResource(repo, cache, publisher, log).WithCacheTTL(cfg.RedisCacheTTL)

	router := handler.NewRouter(
		handler.RouterConfig{Env: cfg.Env, CORSOrigins: cfg.CORSOrigins},
		handler.Middleware{Logger: log},
		handler.HealthHandlers{Ready: resource.Ping},
		handler.NewBookingHandler(resource, policy.FormRules(), log),
	)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server starting", "addr", cfg.HTTPAddr, "store", cfg.StoreDriver)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return server.Shutdown(shutdownCtx)
}

func openRepository(ctx context.Context, cfg *config.Config, log *slog.Logger) (ports.BookingRepository, func(), error) {
	if cfg.StoreDriver == config.StoreMemory {
		log.Warn("using in-memory booking store; data is lost on restart")
		return memory.NewBookingRepository(), func() {}, nil
	}

	db, err := database.NewPostgresDB(ctx, cfg.Database, log)
	if err != nil {
		return nil, nil, err
	}

	repo := postgres.NewBookingRepository(db)
	if cfg.AutoMigrate {
		if err := repo.EnsureSchema(ctx); err != nil {
			db.Close()
			return nil, nil, err
		}
	}
	return repo, func() { db.Close() }, nil
}
