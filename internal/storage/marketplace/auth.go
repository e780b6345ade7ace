package marketplace

import (
	"context"
	"fmt"
	"net/http"

	"marketplace_web/internal/models/user"
)

// LoginResult carries the logged-in user and the session cookies the
// backend issued, to be relayed to the browser.
type LoginResult struct {
	User    user.User
	Message string
	Cookies []*http.Cookie
}

func (s *Storage) Login(ctx context.Context, req user.LoginRequest) (LoginResult, error) {
	const op = "storage.marketplace.Login"

	res, err := s.sendJSON(ctx, http.MethodPost, "/login", "/login", req)
	if err != nil {
		return LoginResult{}, fmt.Errorf("%s: %w", op, err)
	}

	out := LoginResult{Message: res.Message, Cookies: res.Cookies}
	if res.User != nil {
		out.User = *res.User
	}
	return out, nil
}

func (s *Storage) Register(ctx context.Context, req user.RegisterRequest) (string, error) {
	const op = "storage.marketplace.Register"

	res, err := s.sendJSON(ctx, http.MethodPost, "/register", "/register", req)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return res.Message, nil
}
