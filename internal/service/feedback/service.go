package feedback

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

// Service handles feedback submission and the asymmetric listing policy.
type Service interface {
	Submit(ctx context.Context, authorID, estimatedID uuid.UUID, req *model.CreateFeedbackRequest) (*model.Feedback, error)
	ListForProfile(ctx context.Context, profile *model.Profile) ([]*model.Feedback, error)
}

type service struct {
	repo        repository.FeedbackRepository
	profileRepo repository.ProfileRepository
	outboxRepo  repository.OutboxRepository
	metrics     *metrics.Metrics
}

func NewService(repo repository.FeedbackRepository, profileRepo repository.ProfileRepository,
	outboxRepo repository.OutboxRepository, m *metrics.Metrics) Service {
	return &service{
		repo:        repo,
		profileRepo: profileRepo,
		outboxRepo:  outboxRepo,
		metrics:     m,
	}
}

func (s *service) Submit(ctx context.Context, authorID, estimatedID uuid.UUID, req *model.CreateFeedbackRequest) (*model.Feedback, error) {
	if _, err := s.profileRepo.Get(ctx, estimatedID); err != nil {
		return nil, err
	}

	feedback := &model.Feedback{
		ID:          uuid.New(),
		AuthorID:    authorID,
		EstimatedID: estimatedID,
		Text:        req.Text,
		Rating:      req.Rating,
	}
	if err := s.repo.Create(ctx, feedback); err != nil {
		s.metrics.FeedbackSubmitted.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("failed to create feedback: %w", err)
	}
	s.metrics.FeedbackSubmitted.WithLabelValues("created").Inc()

	if data, err := json.Marshal(feedback); err == nil {
		if err := s.outboxRepo.Create(ctx, &model.OutboxEvent{
			EventType: model.EventFeedbackCreated,
			Payload:   data,
		}); err != nil {
			log.Error().Err(err).Msg("failed to create outbox event")
		}
	}

	return feedback, nil
}

// ListForProfile applies the visibility rule: a doctor page shows feedback
// about the doctor, a patient page shows feedback the patient authored.
func (s *service) ListForProfile(ctx context.Context, profile *model.Profile) ([]*model.Feedback, error) {
	if profile.IsDoctor {
		return s.repo.ListByEstimated(ctx, profile.ID)
	}
	return s.repo.ListByAuthor(ctx, profile.ID)
}
