package quote

import (
	"marketplace_web/internal/lib/isotime"
	"marketplace_web/internal/models/rating"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusAccepted Status = "accepted"
	StatusRejected Status = "rejected"
)

type ProposalFile struct {
	Id               int64        `json:"id"`
	OriginalFilename string       `json:"original_filename"`
	Filename         string       `json:"filename"`
	CreatedAt        isotime.Time `json:"created_at"`
}

type Quote struct {
	Id              int64          `json:"id"`
	ProjectId       int64          `json:"project_id"`
	RecipientName   string         `json:"recipient_name"`
	Amount          float64        `json:"amount"`
	Message         string         `json:"message"`
	Status          Status         `json:"status"`
	ProposalFile    *ProposalFile  `json:"proposal_file"`
	CreatedAt       isotime.Time   `json:"created_at"`
	RecipientRating rating.Summary `json:"recipient_rating"`
}

// QuoteRequest carries a nil Amount when the entered value is not a number;
// it is sent as null and rejected by the server.
type QuoteRequest struct {
	Amount  *float64 `json:"amount"`
	Message string   `json:"message"`
}

type SelectDelegateRequest struct {
	QuoteId int64 `json:"quote_id"`
}

// Proposal is a file chosen for upload with a quote.
type Proposal struct {
	Filename string `validate:"required,pdf"`
	Size     int64
}
