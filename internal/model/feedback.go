package model

import (
	"time"

	"github.com/google/uuid"
)

// Feedback is a rating/comment authored by one profile about another
// (the "estimated" party). Immutable once created.
type Feedback struct {
	ID          uuid.UUID `json:"id" db:"id"`
	AuthorID    uuid.UUID `json:"author_id" db:"author_id"`
	EstimatedID uuid.UUID `json:"estimated_id" db:"estimated_id"`
	Text        string    `json:"text" db:"text"`
	Rating      int       `json:"rating" db:"rating"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

type CreateFeedbackRequest struct {
	Text   string `json:"text" binding:"required,max=2048"`
	Rating int    `json:"rating" binding:"omitempty,min=1,max=5"`
}
