package profile

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"

	"github.com/careline/social-api/internal/model"
	"github.com/careline/social-api/internal/repository"
)

const (
	cacheTTL     = 5 * time.Minute
	cacheCleanup = 10 * time.Minute
)

// Service handles profile reads, role-variant edits and the search listings.
type Service interface {
	Get(ctx context.Context, id uuid.UUID) (*model.Profile, error)
	GetView(ctx context.Context, id uuid.UUID) (*model.ProfileView, error)
	Update(ctx context.Context, id uuid.UUID, edit *model.ProfileEdit) (*model.Profile, error)
	SearchByUsername(ctx context.Context, fragment string) ([]*model.Profile, error)
	ListDoctors(ctx context.Context) ([]*model.Profile, error)
	ListPatients(ctx context.Context) ([]*model.Profile, error)
}

type service struct {
	repo         repository.ProfileRepository
	feedbackRepo repository.FeedbackRepository
	cache        *gocache.Cache
}

func NewService(repo repository.ProfileRepository, feedbackRepo repository.FeedbackRepository) Service {
	return &service{
		repo:         repo,
		feedbackRepo: feedbackRepo,
		cache:        gocache.New(cacheTTL, cacheCleanup),
	}
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*model.Profile, error) {
	if cached, ok := s.cache.Get(id.String()); ok {
		return cached.(*model.Profile), nil
	}

	profile, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	s.cache.Set(id.String(), profile, gocache.DefaultExpiration)
	return profile, nil
}

// GetView loads the profile page: for a doctor the feedback written about
// them, for a patient the feedback they wrote. The asymmetry is the intended
// product behavior.
func (s *service) GetView(ctx context.Context, id uuid.UUID) (*model.ProfileView, error) {
	profile, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	var feedbacks []*model.Feedback
	if profile.IsDoctor {
		feedbacks, err = s.feedbackRepo.ListByEstimated(ctx, profile.ID)
	} else {
		feedbacks, err = s.feedbackRepo.ListByAuthor(ctx, profile.ID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load feedback: %w", err)
	}

	return &model.ProfileView{Profile: profile, Feedbacks: feedbacks}, nil
}

// Update applies an edit. Bio is always written; the doctor-only fields are
// written only when the profile is a doctor, so a patient submission cannot
// smuggle them in.
func (s *service) Update(ctx context.Context, id uuid.UUID, edit *model.ProfileEdit) (*model.Profile, error) {
	profile, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	profile.AboutMe = edit.AboutMe
	if profile.IsDoctor {
		profile.Qualification = edit.Qualification
		profile.Education = edit.Education
		profile.Workplace = edit.Workplace
	}

	if err := s.repo.Update(ctx, profile); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	s.cache.Delete(id.String())
	return profile, nil
}

func (s *service) SearchByUsername(ctx context.Context, fragment string) ([]*model.Profile, error) {
	return s.repo.SearchByUsername(ctx, fragment)
}

func (s *service) ListDoctors(ctx context.Context) ([]*model.Profile, error) {
	return s.repo.ListByRole(ctx, true)
}

func (s *service) ListPatients(ctx context.Context) ([]*model.Profile, error) {
	return s.repo.ListByRole(ctx, false)
}
