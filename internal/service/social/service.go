package social

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/careline/social-api/internal/model"
	"github.com/careline/social-api/internal/repository"
	"github.com/careline/social-api/pkg/metrics"
)

// Service handles the follow graph. Both operations are set-membership
// mutations: repeating them never errors.
type Service interface {
	Follow(ctx context.Context, followerID, followingID uuid.UUID) error
	Unfollow(ctx context.Context, followerID, followingID uuid.UUID) error
	ListFollowing(ctx context.Context, followerID uuid.UUID) ([]*model.Profile, error)
}

type service struct {
	repo        repository.FollowRepository
	profileRepo repository.ProfileRepository
	outboxRepo  repository.OutboxRepository
	metrics     *metrics.Metrics
}

func NewService(repo repository.FollowRepository, profileRepo repository.ProfileRepository,
	outboxRepo repository.OutboxRepository, m *metrics.Metrics) Service {
	return &service{
		repo:        repo,
		profileRepo: profileRepo,
		outboxRepo:  outboxRepo,
		metrics:     m,
	}
}

func (s *service) Follow(ctx context.Context, followerID, followingID uuid.UUID) error {
	if _, err := s.profileRepo.Get(ctx, followingID); err != nil {
		return err
	}

	existed, err := s.repo.Exists(ctx, followerID, followingID)
	if err != nil {
		return err
	}

	if err := s.repo.Add(ctx, followerID, followingID); err != nil {
		return err
	}
	s.metrics.FollowChanges.WithLabelValues("follow").Inc()

	if !existed {
		s.emitFollowEvent(ctx, followerID, followingID)
	}
	return nil
}

func (s *service) Unfollow(ctx context.Context, followerID, followingID uuid.UUID) error {
	if _, err := s.profileRepo.Get(ctx, followingID); err != nil {
		return err
	}

	if err := s.repo.Remove(ctx, followerID, followingID); err != nil {
		return err
	}
	s.metrics.FollowChanges.WithLabelValues("unfollow").Inc()
	return nil
}

func (s *service) ListFollowing(ctx context.Context, followerID uuid.UUID) ([]*model.Profile, error) {
	return s.repo.ListFollowing(ctx, followerID)
}

func (s *service) emitFollowEvent(ctx context.Context, followerID, followingID uuid.UUID) {
	data, err := json.Marshal(map[string]string{
		"follower_id":  followerID.String(),
		"following_id": followingID.String(),
	})
	if err != nil {
		return
	}
	if err := s.outboxRepo.Create(ctx, &model.OutboxEvent{
		EventType: model.EventProfileFollowed,
		Payload:   data,
	}); err != nil {
		log.Error().Err(err).Msg("failed to create outbox event")
	}
}
