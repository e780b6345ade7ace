package marketplace

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"marketplace_web/internal/models/quote"
)

func (s *Storage) ReadQuotes(ctx context.Context, projectId int64) ([]quote.Quote, error) {
	const op = "storage.marketplace.ReadQuotes"

	var quotes []quote.Quote
	path := fmt.Sprintf("/api/projects/%d/quotes", projectId)
	if err := s.getJSON(ctx, "/api/projects/{id}/quotes", path, &quotes); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return quotes, nil
}

// SaveQuote submits a quote and returns the id assigned to it.
func (s *Storage) SaveQuote(ctx context.Context, projectId int64, req quote.QuoteRequest) (int64, error) {
	const op = "storage.marketplace.SaveQuote"

	path := fmt.Sprintf("/api/projects/%d/quote", projectId)
	res, err := s.sendJSON(ctx, http.MethodPost, "/api/projects/{id}/quote", path, req)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return res.QuoteId, nil
}

func (s *Storage) UploadProposal(ctx context.Context, quoteId int64, filename string, file io.Reader) (int64, error) {
	const op = "storage.marketplace.UploadProposal"

	path := fmt.Sprintf("/api/quotes/%d/upload_proposal", quoteId)
	res, err := s.upload(ctx, "/api/quotes/{id}/upload_proposal", path, filename, file)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return res.FileId, nil
}

func (s *Storage) SelectDelegate(ctx context.Context, projectId, quoteId int64) error {
	const op = "storage.marketplace.SelectDelegate"

	path := fmt.Sprintf("/api/projects/%d/select_delegate", projectId)
	req := quote.SelectDelegateRequest{QuoteId: quoteId}
	if _, err := s.sendJSON(ctx, http.MethodPost, "/api/projects/{id}/select_delegate", path, req); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
