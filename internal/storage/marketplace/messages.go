package marketplace

import (
	"context"
	"fmt"
	"net/http"

	"marketplace_web/internal/models/message"
)

func (s *Storage) ReadMessages(ctx context.Context, projectId int64) ([]message.Message, error) {
	const op = "storage.marketplace.ReadMessages"

	var messages []message.Message
	path := fmt.Sprintf("/api/projects/%d/messages", projectId)
	if err := s.getJSON(ctx, "/api/projects/{id}/messages", path, &messages); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return messages, nil
}

func (s *Storage) SaveMessage(ctx context.Context, projectId int64, content string) error {
	const op = "storage.marketplace.SaveMessage"

	path := fmt.Sprintf("/api/projects/%d/messages", projectId)
	req := message.MessageRequest{Content: content}
	if _, err := s.sendJSON(ctx, http.MethodPost, "/api/projects/{id}/messages", path, req); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
