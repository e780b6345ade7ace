package marketplace

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
	"time"

	"marketplace_web/internal/lib/metrics"
	"marketplace_web/internal/lib/requestid"
	"marketplace_web/internal/models/user"
)

// SessionCookie is the backend's session cookie, forwarded verbatim.
const SessionCookie = "access_token"

var (
	// ErrTransport covers failed requests and bodies that are not JSON.
	ErrTransport = errors.New("marketplace transport failure")
)

// AppError is a failure reported by the backend itself: success:false or a
// non-2xx status with an error envelope. Message may be empty.
type AppError struct {
	Status  int
	Message string
}

func (e *AppError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("marketplace: request rejected (status %d)", e.Status)
	}
	return fmt.Sprintf("marketplace: %s (status %d)", e.Message, e.Status)
}

// Result is the decoded envelope of a mutating call.
type Result struct {
	Success   bool       `json:"success"`
	Error     string     `json:"error"`
	Detail    detail     `json:"detail"`
	Message   string     `json:"message"`
	ProjectId int64      `json:"project_id"`
	QuoteId   int64      `json:"quote_id"`
	FileId    int64      `json:"file_id"`
	MessageId int64      `json:"message_id"`
	Version   int        `json:"version"`
	User      *user.User `json:"user"`

	Cookies []*http.Cookie `json:"-"`
}

func (r Result) failure() string {
	switch {
	case r.Error != "":
		return r.Error
	case r.Detail != "":
		return string(r.Detail)
	}
	return r.Message
}

// detail accepts both a plain string and a list of {msg} validation entries.
type detail string

func (d *detail) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*d = detail(s)
		return nil
	}
	var items []struct {
		Msg string `json:"msg"`
	}
	if err := json.Unmarshal(b, &items); err == nil {
		msgs := make([]string, 0, len(items))
		for _, it := range items {
			if it.Msg != "" {
				msgs = append(msgs, it.Msg)
			}
		}
		*d = detail(strings.Join(msgs, "; "))
		return nil
	}
	*d = detail(strings.TrimSpace(string(b)))
	return nil
}

type sessionKey struct{}

// WithSession attaches the user's backend session token to ctx.
func WithSession(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, sessionKey{}, token)
}

func sessionFrom(ctx context.Context) string {
	token, _ := ctx.Value(sessionKey{}).(string)
	return token
}

// Storage talks to the marketplace REST backend. It holds no entity state.
type Storage struct {
	baseURL string
	client  *http.Client
	log     *slog.Logger
}

func New(log *slog.Logger, baseURL string, timeout time.Duration) *Storage {
	return &Storage{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
		log:     log,
	}
}

// do sends one request. endpoint is the route template used as metric label.
func (s *Storage) do(ctx context.Context, method, endpoint, path string, body io.Reader, contentType string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, s.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")
	if id := requestid.FromContext(ctx); id != "" {
		req.Header.Set(requestid.Header, id)
	}
	if token := sessionFrom(ctx); token != "" {
		req.AddCookie(&http.Cookie{Name: SessionCookie, Value: token})
	}

	start := time.Now()
	resp, err := s.client.Do(req)
	if err != nil {
		metrics.RecordUpstream(endpoint, "error", time.Since(start))
		s.log.Error("marketplace request failed",
			slog.String("endpoint", endpoint),
			slog.String("request_id", requestid.FromContext(ctx)),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("%w: %s %s: %v", ErrTransport, method, endpoint, err)
	}
	metrics.RecordUpstream(endpoint, strconv.Itoa(resp.StatusCode), time.Since(start))

	if resp.StatusCode >= 400 {
		s.log.Warn("marketplace returned error status",
			slog.String("endpoint", endpoint),
			slog.Int("status", resp.StatusCode),
			slog.String("request_id", requestid.FromContext(ctx)),
		)
	}
	return resp, nil
}

// getJSON fetches a list or record into out.
func (s *Storage) getJSON(ctx context.Context, endpoint, path string, out any) error {
	resp, err := s.do(ctx, http.MethodGet, endpoint, path, nil, "")
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: read body: %v", ErrTransport, err)
	}

	if resp.StatusCode >= 400 {
		return rejection(resp.StatusCode, data)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%w: decode %s: %v", ErrTransport, endpoint, err)
	}
	return nil
}

// sendJSON issues a mutating call with a JSON body (nil for none) and
// branches on the envelope's success flag.
func (s *Storage) sendJSON(ctx context.Context, method, endpoint, path string, in any) (Result, error) {
	var body io.Reader
	contentType := ""
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return Result{}, fmt.Errorf("encode body: %w", err)
		}
		body = bytes.NewReader(b)
		contentType = "application/json"
	}

	resp, err := s.do(ctx, method, endpoint, path, body, contentType)
	if err != nil {
		return Result{}, err
	}
	return decodeResult(resp, endpoint)
}

// upload posts a single multipart "file" field.
func (s *Storage) upload(ctx context.Context, endpoint, path, filename string, file io.Reader) (Result, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return Result{}, fmt.Errorf("create form file: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return Result{}, fmt.Errorf("copy file: %w", err)
	}
	if err := mw.Close(); err != nil {
		return Result{}, fmt.Errorf("close multipart: %w", err)
	}

	resp, err := s.do(ctx, http.MethodPost, endpoint, path, &buf, mw.FormDataContentType())
	if err != nil {
		return Result{}, err
	}
	return decodeResult(resp, endpoint)
}

func decodeResult(resp *http.Response, endpoint string) (Result, error) {
	defer resp.Body.Close()

	var res Result
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		return Result{}, fmt.Errorf("%w: decode %s: %v", ErrTransport, endpoint, err)
	}
	res.Cookies = resp.Cookies()

	if !res.Success {
		return res, &AppError{Status: resp.StatusCode, Message: res.failure()}
	}
	return res, nil
}

func rejection(status int, data []byte) error {
	var res Result
	if err := json.Unmarshal(data, &res); err != nil {
		return fmt.Errorf("%w: status %d with non-JSON body", ErrTransport, status)
	}
	return &AppError{Status: status, Message: res.failure()}
}

// FailureMessage returns the server-supplied message carried by err, or
// fallback when there is none.
func FailureMessage(err error, fallback string) string {
	var appErr *AppError
	if errors.As(err, &appErr) && appErr.Message != "" {
		return appErr.Message
	}
	return fallback
}

// Ping reports whether the backend answers at all.
func (s *Storage) Ping(ctx context.Context) error {
	const op = "storage.marketplace.Ping"

	resp, err := s.do(ctx, http.MethodGet, "/", "/", nil, "")
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode >= 500 {
		return fmt.Errorf("%s: %w", op, &AppError{Status: resp.StatusCode})
	}
	return nil
}
