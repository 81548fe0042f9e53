package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"

	httpadapter "github.com/couchcryptid/agroverse-service/internal/adapter/http"
	kafkaadapter "github.com/couchcryptid/agroverse-service/internal/adapter/kafka"
	"github.com/couchcryptid/agroverse-service/internal/config"
	"github.com/couchcryptid/agroverse-service/internal/domain"
	"github.com/couchcryptid/agroverse-service/internal/game"
	"github.com/couchcryptid/agroverse-service/internal/observability"
	"github.com/couchcryptid/agroverse-service/internal/session"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Session storage (SESSION_BACKEND=memory|redis).
	var (
		store       session.Store
		redisClient *redis.Client
	)
	switch cfg.SessionBackend {
	case config.SessionBackendRedis:
		redisClient, err = session.Dial(ctx, cfg.RedisURL, cfg.RedisDialTimeout)
		if err != nil {
			logger.Error("failed to connect to redis", "error", err)
			os.Exit(1)
		}
		store = session.NewRedisStore(redisClient, cfg.SessionTTL, domain.SnapshotKey)
		logger.Info("redis session store enabled", "ttl", cfg.SessionTTL)
	default:
		store = session.NewMemoryStore(cfg.SessionMaxEntries, cfg.SessionTTL, nil)
		logger.Info("memory session store enabled", "max_entries", cfg.SessionMaxEntries, "ttl", cfg.SessionTTL)
	}

	// Event publishing (feature-flagged via KAFKA_ENABLED).
	var (
		publisher game.EventPublisher
		kafkaPub  *kafkaadapter.Publisher
	)
	if cfg.KafkaEnabled {
		kafkaPub = kafkaadapter.NewPublisher(cfg, logger)
		publisher = kafkaPub
		metrics.EventsEnabled.Set(1)
		logger.Info("simulation event publishing enabled", "brokers", cfg.KafkaBrokers, "topic", cfg.KafkaTopic)
	} else {
		logger.Info("simulation event publishing disabled")
	}

	svc := game.New(store, publisher, logger, metrics, game.Options{
		Delay: cfg.SimulationDelay,
		Seed:  cfg.DatasetSeed,
	})

	srv := httpadapter.NewServer(cfg.HTTPAddr, svc, logger)

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if kafkaPub != nil {
		if err := kafkaPub.Close(); err != nil {
			logger.Error("kafka publisher close error", "error", err)
		}
	}
	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			logger.Error("redis close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}
