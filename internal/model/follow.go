package model

import (
	"time"

	"github.com/google/uuid"
)

// Follow is a directed edge in the follow graph. The pair is unique, so
// adding an existing edge or removing an absent one is a no-op.
type Follow struct {
	FollowerID  uuid.UUID `json:"follower_id" db:"follower_id"`
	FollowingID uuid.UUID `json:"following_id" db:"following_id"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}
