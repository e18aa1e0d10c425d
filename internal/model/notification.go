package model

import (
	"time"

	"github.com/google/uuid"
)

// MessageNotification marks that the recipient has at least one unread
// message from the sender. At most one marker exists per ordered pair;
// it is deleted when the recipient opens the conversation with the sender.
type MessageNotification struct {
	ID            uuid.UUID `json:"id" db:"id"`
	FromProfileID uuid.UUID `json:"from_profile_id" db:"from_profile_id"`
	ToProfileID   uuid.UUID `json:"to_profile_id" db:"to_profile_id"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
}
