package project

import (
	"time"

	"marketplace_web/internal/lib/isotime"
	"marketplace_web/internal/models/rating"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
	StatusClosed    Status = "closed"
)

type Project struct {
	Id            int64         `json:"id"`
	Title         string        `json:"title"`
	Description   string        `json:"description"`
	Status        Status        `json:"status"`
	Deadline      *isotime.Time `json:"deadline"`
	DelegatorName string        `json:"delegator_name"`
	DelegateName  *string       `json:"delegate_name"`
	QuoteCount    int           `json:"quote_count"`
	CreatedAt     isotime.Time  `json:"created_at"`

	// Recipient listings only.
	HasQuoted       bool            `json:"has_quoted,omitempty"`
	DelegatorRating *rating.Summary `json:"delegator_rating,omitempty"`

	// History listings only.
	CompletedAt *isotime.Time `json:"completed_at,omitempty"`
}

// ProjectRequest is the create body; an empty deadline is omitted.
type ProjectRequest struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Deadline    *time.Time `json:"deadline,omitempty"`
}

// ProjectPatchRequest is the update body; a nil deadline is sent as null
// and clears it.
type ProjectPatchRequest struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Deadline    *time.Time `json:"deadline"`
}
