package action

import (
	"context"
	"log/slog"

	"marketplace_web/internal/models/user"
	"marketplace_web/internal/storage/marketplace"
)

// Login signs in against the backend. On success the result carries the
// session cookies to relay and Alert holds the server's greeting.
func (d *Dispatcher) Login(ctx context.Context, req user.LoginRequest) (marketplace.LoginResult, Outcome) {
	const op = "ui.action.Login"
	const name = "login"

	log := d.log.With(slog.String("op", op), slog.String("username", req.Username))

	res, err := d.backend.Login(ctx, req)
	if err != nil {
		return marketplace.LoginResult{}, d.fail(log, name, err, "登入失敗，請重試。", "登入失敗，請重試。")
	}

	log.Info("user logged in", slog.String("role", string(res.User.Role)))

	return res, d.ok(name, Outcome{Alert: res.Message})
}

func (d *Dispatcher) Register(ctx context.Context, req user.RegisterRequest) Outcome {
	const op = "ui.action.Register"
	const name = "register"

	log := d.log.With(slog.String("op", op), slog.String("username", req.Username))

	msg, err := d.backend.Register(ctx, req)
	if err != nil {
		return d.fail(log, name, err, "註冊失敗，請重試。", "註冊失敗，請重試。")
	}

	log.Info("user registered", slog.String("role", string(req.Role)))

	return d.ok(name, Outcome{Alert: msg})
}
