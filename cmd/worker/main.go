package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	"github.com/careline/social-api/config"
	"github.com/careline/social-api/internal/repository/postgres"
	"github.com/careline/social-api/pkg/logger"
	"github.com/careline/social-api/pkg/messaging/redis"
	"github.com/careline/social-api/pkg/metrics"
	"github.com/careline/social-api/pkg/worker"
)

// The worker drains the outbox and publishes social activity events to
// Redis for downstream consumers.
func main() {
	logger.Setup(nil)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	broker, err := redis.NewRedisBroker(redis.Config{
		URL:          cfg.Redis.URL,
		MaxRetries:   cfg.Redis.MaxRetries,
		RetryBackoff: cfg.Redis.RetryBackoff,
		PoolSize:     cfg.Redis.PoolSize,
		MinIdleConns: cfg.Redis.MinIdleConns,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to Redis")
	}
	defer broker.Close()

	outboxRepo := postgres.NewOutboxRepository(db)
	appMetrics := metrics.NewMetrics("careline", "worker")

	processor := worker.NewOutboxProcessor(outboxRepo, broker, appMetrics, worker.OutboxProcessorConfig{
		BatchSize:    cfg.Outbox.BatchSize,
		PollInterval: cfg.Outbox.PollInterval,
	})

	ctx, cancel := context.WithCancel(context.Background())
	go processor.Start(ctx)
	log.Info().Msg("outbox worker started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	cancel()
	log.Info().Msg("worker exited properly")
}
