package marketplace

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"marketplace_web/internal/models/closure"
)

func (s *Storage) ReadClosureFiles(ctx context.Context, projectId int64) ([]closure.File, error) {
	const op = "storage.marketplace.ReadClosureFiles"

	var files []closure.File
	path := fmt.Sprintf("/api/projects/%d/closure_files", projectId)
	if err := s.getJSON(ctx, "/api/projects/{id}/closure_files", path, &files); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return files, nil
}

// UploadClosure uploads a deliverable and returns the version the server
// assigned to it.
func (s *Storage) UploadClosure(ctx context.Context, projectId int64, filename string, file io.Reader) (int, error) {
	const op = "storage.marketplace.UploadClosure"

	path := fmt.Sprintf("/api/projects/%d/upload_closure", projectId)
	res, err := s.upload(ctx, "/api/projects/{id}/upload_closure", path, filename, file)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return res.Version, nil
}

func (s *Storage) CloseProject(ctx context.Context, projectId int64, req closure.CloseRequest) error {
	const op = "storage.marketplace.CloseProject"

	path := fmt.Sprintf("/api/projects/%d/close", projectId)
	if _, err := s.sendJSON(ctx, http.MethodPost, "/api/projects/{id}/close", path, req); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Download opens a proposal or closure file. The caller must close the
// response body.
func (s *Storage) Download(ctx context.Context, fileId int64, fileType string) (*http.Response, error) {
	const op = "storage.marketplace.Download"

	path := fmt.Sprintf("/api/files/%d/download?file_type=%s", fileId, url.QueryEscape(fileType))
	resp, err := s.do(ctx, http.MethodGet, "/api/files/{id}/download", path, nil, "")
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if resp.StatusCode >= 400 {
		defer resp.Body.Close()
		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("%s: %w: read body: %v", op, ErrTransport, err)
		}
		return nil, fmt.Errorf("%s: %w", op, rejection(resp.StatusCode, data))
	}
	return resp, nil
}
