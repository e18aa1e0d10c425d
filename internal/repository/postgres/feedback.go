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

type feedbackRepository struct {
	db *sqlx.DB
}

func NewFeedbackRepository(db *sqlx.DB) repository.FeedbackRepository {
	return &feedbackRepository{db: db}
}

func (r *feedbackRepository) Create(ctx context.Context, feedback *model.Feedback) error {
	query := `
		INSERT INTO feedbacks (id, author_id, estimated_id, text, rating, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	feedback.CreatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		feedback.ID,
		feedback.AuthorID,
		feedback.EstimatedID,
		feedback.Text,
		feedback.Rating,
		feedback.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create feedback: %w", err)
	}
	return nil
}

func (r *feedbackRepository) ListByEstimated(ctx context.Context, estimatedID uuid.UUID) ([]*model.Feedback, error) {
	query := `SELECT id, author_id, estimated_id, text, rating, created_at
		FROM feedbacks WHERE estimated_id = $1 ORDER BY created_at`
	var feedbacks []*model.Feedback
	err := r.db.SelectContext(ctx, &feedbacks, query, estimatedID)
	if err != nil {
		return nil, fmt.Errorf("failed to list feedback by estimated: %w", err)
	}
	return feedbacks, nil
}

func (r *feedbackRepository) ListByAuthor(ctx context.Context, authorID uuid.UUID) ([]*model.Feedback, error) {
	query := `SELECT id, author_id, estimated_id, text, rating, created_at
		FROM feedbacks WHERE author_id = $1 ORDER BY created_at`
	var feedbacks []*model.Feedback
	err := r.db.SelectContext(ctx, &feedbacks, query, authorID)
	if err != nil {
		return nil, fmt.Errorf("failed to list feedback by author: %w", err)
	}
	return feedbacks, nil
}
