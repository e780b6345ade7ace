package rating

import "marketplace_web/internal/lib/isotime"

// Review is one past review as embedded in a rating summary.
type Review struct {
	Average   float64      `json:"average"`
	Comment   string       `json:"comment"`
	CreatedAt isotime.Time `json:"created_at"`
}

// Summary is the aggregate rating attached to a user.
type Summary struct {
	Average float64  `json:"average"`
	Count   int      `json:"count"`
	Reviews []Review `json:"reviews"`
}

// ReviewRequest is the body of POST /api/projects/{id}/review.
// Scores are passed through as entered; the server parses them.
type ReviewRequest struct {
	Dimension1 string `json:"dimension_1"`
	Dimension2 string `json:"dimension_2"`
	Dimension3 string `json:"dimension_3"`
	Comment    string `json:"comment"`
}
