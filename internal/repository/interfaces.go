package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/careline/social-api/internal/model"
)

// All repository interfaces in one file
type (
	// UserRepository handles login accounts
	UserRepository interface {
		Create(ctx context.Context, user *model.User) error
		Get(ctx context.Context, id uuid.UUID) (*model.User, error)
		GetByUsername(ctx context.Context, username string) (*model.User, error)
	}

	// ProfileRepository handles the profile records extending accounts
	ProfileRepository interface {
		Create(ctx context.Context, profile *model.Profile) error
		Get(ctx context.Context, id uuid.UUID) (*model.Profile, error)
		GetByUserID(ctx context.Context, userID uuid.UUID) (*model.Profile, error)
		Update(ctx context.Context, profile *model.Profile) error
		SearchByUsername(ctx context.Context, fragment string) ([]*model.Profile, error)
		ListByRole(ctx context.Context, isDoctor bool) ([]*model.Profile, error)
	}

	// FollowRepository handles the directed follow graph with set semantics
	FollowRepository interface {
		Add(ctx context.Context, followerID, followingID uuid.UUID) error
		Remove(ctx context.Context, followerID, followingID uuid.UUID) error
		Exists(ctx context.Context, followerID, followingID uuid.UUID) (bool, error)
		ListFollowing(ctx context.Context, followerID uuid.UUID) ([]*model.Profile, error)
	}

	FeedbackRepository interface {
		Create(ctx context.Context, feedback *model.Feedback) error
		ListByEstimated(ctx context.Context, estimatedID uuid.UUID) ([]*model.Feedback, error)
		ListByAuthor(ctx context.Context, authorID uuid.UUID) ([]*model.Feedback, error)
	}

	MessageRepository interface {
		Create(ctx context.Context, message *model.Message) error
		ListBetween(ctx context.Context, a, b uuid.UUID) ([]*model.Message, error)
	}

	// NotificationRepository handles unread-message markers
	NotificationRepository interface {
		Create(ctx context.Context, n *model.MessageNotification) error
		Exists(ctx context.Context, fromID, toID uuid.UUID) (bool, error)
		DeletePair(ctx context.Context, fromID, toID uuid.UUID) error
		ListForRecipient(ctx context.Context, toID uuid.UUID) ([]*model.MessageNotification, error)
	}

	OutboxRepository interface {
		Create(ctx context.Context, event *model.OutboxEvent) error
		ListPending(ctx context.Context, limit int) ([]*model.OutboxEvent, error)
		MarkPublished(ctx context.Context, id uuid.UUID) error
		MarkFailed(ctx context.Context, id uuid.UUID) error
	}
)
