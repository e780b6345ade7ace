package marketplace

import (
	"context"
	"fmt"
	"net/http"

	"marketplace_web/internal/models/rating"
)

func (s *Storage) SaveReview(ctx context.Context, projectId int64, req rating.ReviewRequest) error {
	const op = "storage.marketplace.SaveReview"

	path := fmt.Sprintf("/api/projects/%d/review", projectId)
	if _, err := s.sendJSON(ctx, http.MethodPost, "/api/projects/{id}/review", path, req); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
