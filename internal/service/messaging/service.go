package messaging

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/careline/social-api/internal/model"
	"github.com/careline/social-api/internal/repository"
	"github.com/careline/social-api/pkg/metrics"
)

// Service handles direct messages and their unread-notification markers.
type Service interface {
	Send(ctx context.Context, fromID, toID uuid.UUID, text string) (*model.Message, error)
	Conversation(ctx context.Context, callerID, withID uuid.UUID) (*model.Conversation, error)
	Notifications(ctx context.Context, callerID uuid.UUID) ([]*model.MessageNotification, error)
}

type service struct {
	messageRepo      repository.MessageRepository
	notificationRepo repository.NotificationRepository
	profileRepo      repository.ProfileRepository
	outboxRepo       repository.OutboxRepository
	metrics          *metrics.Metrics
}

func NewService(messageRepo repository.MessageRepository, notificationRepo repository.NotificationRepository,
	profileRepo repository.ProfileRepository, outboxRepo repository.OutboxRepository, m *metrics.Metrics) Service {
	return &service{
		messageRepo:      messageRepo,
		notificationRepo: notificationRepo,
		profileRepo:      profileRepo,
		outboxRepo:       outboxRepo,
		metrics:          m,
	}
}

// Send creates the message and makes sure exactly one unread marker exists
// for the (sender, recipient) pair.
func (s *service) Send(ctx context.Context, fromID, toID uuid.UUID, text string) (*model.Message, error) {
	if _, err := s.profileRepo.Get(ctx, toID); err != nil {
		return nil, err
	}

	message := &model.Message{
		ID:            uuid.New(),
		FromProfileID: fromID,
		ToProfileID:   toID,
		Text:          text,
	}
	if err := s.messageRepo.Create(ctx, message); err != nil {
		return nil, fmt.Errorf("failed to create message: %w", err)
	}
	s.metrics.MessagesSent.Inc()

	exists, err := s.notificationRepo.Exists(ctx, fromID, toID)
	if err != nil {
		return nil, fmt.Errorf("failed to check notification: %w", err)
	}
	if !exists {
		n := &model.MessageNotification{
			ID:            uuid.New(),
			FromProfileID: fromID,
			ToProfileID:   toID,
		}
		if err := s.notificationRepo.Create(ctx, n); err != nil {
			return nil, fmt.Errorf("failed to create notification: %w", err)
		}
		s.metrics.NotificationsCreated.Inc()
	}

	s.emitEvent(ctx, model.EventMessageSent, message)
	return message, nil
}

// Conversation returns the bidirectional history with the other profile and
// clears the marker saying the caller has unread messages from them. The
// reverse-direction marker is untouched.
func (s *service) Conversation(ctx context.Context, callerID, withID uuid.UUID) (*model.Conversation, error) {
	if _, err := s.profileRepo.Get(ctx, withID); err != nil {
		return nil, err
	}

	messages, err := s.messageRepo.ListBetween(ctx, callerID, withID)
	if err != nil {
		return nil, fmt.Errorf("failed to load conversation: %w", err)
	}

	if err := s.notificationRepo.DeletePair(ctx, withID, callerID); err != nil {
		log.Error().Err(err).
			Str("from", withID.String()).
			Str("to", callerID.String()).
			Msg("failed to clear unread marker")
	} else {
		s.metrics.NotificationsCleared.Inc()
	}

	return &model.Conversation{WithProfileID: withID, Messages: messages}, nil
}

func (s *service) Notifications(ctx context.Context, callerID uuid.UUID) ([]*model.MessageNotification, error) {
	return s.notificationRepo.ListForRecipient(ctx, callerID)
}

func (s *service) emitEvent(ctx context.Context, eventType string, payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		log.Error().Err(err).Str("event_type", eventType).Msg("failed to marshal event payload")
		return
	}
	if err := s.outboxRepo.Create(ctx, &model.OutboxEvent{
		EventType: eventType,
		Payload:   data,
	}); err != nil {
		log.Error().Err(err).Str("event_type", eventType).Msg("failed to create outbox event")
	}
}
