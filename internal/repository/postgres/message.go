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

type messageRepository struct {
	db *sqlx.DB
}

func NewMessageRepository(db *sqlx.DB) repository.MessageRepository {
	return &messageRepository{db: db}
}

func (r *messageRepository) Create(ctx context.Context, message *model.Message) error {
	query := `
		INSERT INTO messages (id, from_profile_id, to_profile_id, text, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	message.CreatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		message.ID,
		message.FromProfileID,
		message.ToProfileID,
		message.Text,
		message.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create message: %w", err)
	}
	return nil
}

// ListBetween returns both directions of the conversation in creation order.
func (r *messageRepository) ListBetween(ctx context.Context, a, b uuid.UUID) ([]*model.Message, error) {
	query := `SELECT id, from_profile_id, to_profile_id, text, created_at
		FROM messages
		WHERE (from_profile_id = $1 AND to_profile_id = $2)
		   OR (from_profile_id = $2 AND to_profile_id = $1)
		ORDER BY created_at`
	var messages []*model.Message
	err := r.db.SelectContext(ctx, &messages, query, a, b)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	return messages, nil
}
