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

type followRepository struct {
	db *sqlx.DB
}

func NewFollowRepository(db *sqlx.DB) repository.FollowRepository {
	return &followRepository{db: db}
}

// Add inserts the edge; re-following is a no-op via the pair uniqueness.
func (r *followRepository) Add(ctx context.Context, followerID, followingID uuid.UUID) error {
	query := `
		INSERT INTO follows (follower_id, following_id, created_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (follower_id, following_id) DO NOTHING
	`
	_, err := r.db.ExecContext(ctx, query, followerID, followingID, time.Now())
	if err != nil {
		return fmt.Errorf("failed to add follow edge: %w", err)
	}
	return nil
}

func (r *followRepository) Remove(ctx context.Context, followerID, followingID uuid.UUID) error {
	query := `DELETE FROM follows WHERE follower_id = $1 AND following_id = $2`
	_, err := r.db.ExecContext(ctx, query, followerID, followingID)
	if err != nil {
		return fmt.Errorf("failed to remove follow edge: %w", err)
	}
	return nil
}

func (r *followRepository) Exists(ctx context.Context, followerID, followingID uuid.UUID) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM follows WHERE follower_id = $1 AND following_id = $2)`
	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, followerID, followingID); err != nil {
		return false, fmt.Errorf("failed to check follow edge: %w", err)
	}
	return exists, nil
}

func (r *followRepository) ListFollowing(ctx context.Context, followerID uuid.UUID) ([]*model.Profile, error) {
	query := `SELECT ` + profileColumns + `
		FROM follows f
		JOIN profiles p ON p.id = f.following_id
		JOIN users u ON u.id = p.user_id
		WHERE f.follower_id = $1
		ORDER BY f.created_at`
	var profiles []*model.Profile
	err := r.db.SelectContext(ctx, &profiles, query, followerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list following: %w", err)
	}
	return profiles, nil
}
