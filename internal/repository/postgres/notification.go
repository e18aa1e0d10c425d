package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/careline/social-api/internal/model"
	"github.com/careline/social-api/internal/repository"
)

type notificationRepository struct {
	db *sqlx.DB
}

func NewNotificationRepository(db *sqlx.DB) repository.NotificationRepository {
	return &notificationRepository{db: db}
}

// Create inserts the marker. The (from, to) pair is unique, so a concurrent
// duplicate insert collapses to a no-op instead of erroring.
func (r *notificationRepository) Create(ctx context.Context, n *model.MessageNotification) error {
	query := `
		INSERT INTO message_notifications (id, from_profile_id, to_profile_id, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (from_profile_id, to_profile_id) DO NOTHING
	`
	n.CreatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query, n.ID, n.FromProfileID, n.ToProfileID, n.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create notification: %w", err)
	}
	return nil
}

func (r *notificationRepository) Exists(ctx context.Context, fromID, toID uuid.UUID) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM message_notifications
		WHERE from_profile_id = $1 AND to_profile_id = $2)`
	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, fromID, toID); err != nil {
		return false, fmt.Errorf("failed to check notification: %w", err)
	}
	return exists, nil
}

func (r *notificationRepository) DeletePair(ctx context.Context, fromID, toID uuid.UUID) error {
	query := `DELETE FROM message_notifications WHERE from_profile_id = $1 AND to_profile_id = $2`
	_, err := r.db.ExecContext(ctx, query, fromID, toID)
	if err != nil {
		return fmt.Errorf("failed to delete notification: %w", err)
	}
	return nil
}

func (r *notificationRepository) ListForRecipient(ctx context.Context, toID uuid.UUID) ([]*model.MessageNotification, error) {
	query := `SELECT id, from_profile_id, to_profile_id, created_at
		FROM message_notifications WHERE to_profile_id = $1 ORDER BY created_at`
	var notifications []*model.MessageNotification
	err := r.db.SelectContext(ctx, &notifications, query, toID)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	return notifications, nil
}
