package worker

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/careline/social-api/internal/repository"
	"github.com/careline/social-api/pkg/messaging"
	"github.com/careline/social-api/pkg/metrics"
)

type OutboxProcessorConfig struct {
	BatchSize    int
	PollInterval time.Duration
}

// OutboxProcessor drains pending outbox events and publishes them on the
// broker, one channel per event type (e.g. social.message_sent).
type OutboxProcessor struct {
	repo    repository.OutboxRepository
	broker  messaging.Broker
	metrics *metrics.Metrics
	cfg     OutboxProcessorConfig
}

func NewOutboxProcessor(repo repository.OutboxRepository, broker messaging.Broker, m *metrics.Metrics, cfg OutboxProcessorConfig) *OutboxProcessor {
	if cfg.BatchSize == 0 {
		cfg.BatchSize = 100
	}
	if cfg.PollInterval == 0 {
		cfg.PollInterval = 5 * time.Second
	}
	return &OutboxProcessor{repo: repo, broker: broker, metrics: m, cfg: cfg}
}

func (p *OutboxProcessor) Start(ctx context.Context) {
	ticker := time.NewTicker(p.cfg.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("outbox processor stopping")
			return
		case <-ticker.C:
			if err := p.processBatch(ctx); err != nil {
				log.Error().Err(err).Msg("failed to process outbox batch")
			}
		}
	}
}

func (p *OutboxProcessor) processBatch(ctx context.Context) error {
	events, err := p.repo.ListPending(ctx, p.cfg.BatchSize)
	if err != nil {
		return err
	}
	p.metrics.OutboxQueueSize.Set(float64(len(events)))

	for _, event := range events {
		channel := "social." + strings.ToLower(event.EventType)
		if err := p.broker.Publish(ctx, channel, event.Payload); err != nil {
			log.Error().Err(err).
				Str("event_id", event.ID.String()).
				Str("event_type", event.EventType).
				Msg("failed to publish outbox event")
			p.metrics.OutboxEventsFailed.Inc()
			if err := p.repo.MarkFailed(ctx, event.ID); err != nil {
				log.Error().Err(err).Str("event_id", event.ID.String()).Msg("failed to mark outbox event failed")
			}
			continue
		}

		if err := p.repo.MarkPublished(ctx, event.ID); err != nil {
			log.Error().Err(err).Str("event_id", event.ID.String()).Msg("failed to mark outbox event published")
			continue
		}
		p.metrics.OutboxEventsProcessed.Inc()
	}

	return nil
}
