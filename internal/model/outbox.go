package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Outbox event types emitted by the social services.
const (
	EventMessageSent     = "MESSAGE_SENT"
	EventFeedbackCreated = "FEEDBACK_CREATED"
	EventProfileFollowed = "PROFILE_FOLLOWED"
)

type OutboxStatus string

const (
	OutboxStatusPending   OutboxStatus = "pending"
	OutboxStatusPublished OutboxStatus = "published"
	OutboxStatusFailed    OutboxStatus = "failed"
)

// OutboxEvent is written in the same transaction scope as a domain mutation
// and drained by the worker, which publishes it to the message broker.
type OutboxEvent struct {
	ID          uuid.UUID       `json:"id" db:"id"`
	EventType   string          `json:"event_type" db:"event_type"`
	Payload     json.RawMessage `json:"payload" db:"payload"`
	Status      OutboxStatus    `json:"status" db:"status"`
	RetryCount  int             `json:"retry_count" db:"retry_count"`
	CreatedAt   time.Time       `json:"created_at" db:"created_at"`
	PublishedAt *time.Time      `json:"published_at,omitempty" db:"published_at"`
}
