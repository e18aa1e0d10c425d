package model

import (
	"time"

	"github.com/google/uuid"
)

// Message is a point-to-point text message between two profiles.
// Immutable once created; conversation order is creation order.
type Message struct {
	ID            uuid.UUID `json:"id" db:"id"`
	FromProfileID uuid.UUID `json:"from_profile_id" db:"from_profile_id"`
	ToProfileID   uuid.UUID `json:"to_profile_id" db:"to_profile_id"`
	Text          string    `json:"text" db:"text"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
}

type SendMessageRequest struct {
	Text string `json:"text" binding:"required,max=4096"`
}

// Conversation is the bidirectional history between the caller and another
// profile, chronological by creation.
type Conversation struct {
	WithProfileID uuid.UUID  `json:"with_profile_id"`
	Messages      []*Message `json:"messages"`
}
