// Package auth serves the login and register pages and keeps the two
// cookies the site relies on: the backend's session token, relayed as is,
// and the signed-in user's role.
package auth

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"

	"marketplace_web/internal/lib/errors"
	"marketplace_web/internal/lib/logger/sl"
	"marketplace_web/internal/models/user"
	"marketplace_web/internal/storage/marketplace"
	"marketplace_web/internal/ui/action"
	"marketplace_web/internal/ui/render"
	"marketplace_web/internal/ui/view"

	chirender "github.com/go-chi/render"
)

// RoleCookie remembers which dashboard /dashboard leads to.
const RoleCookie = "role"

const sessionMaxAge = 86400

type Renderer interface {
	Login(w io.Writer, p render.AuthPage) error
	Register(w io.Writer, p render.AuthPage) error
}

type Authenticator interface {
	Login(ctx context.Context, req user.LoginRequest) (marketplace.LoginResult, action.Outcome)
}

type Registrar interface {
	Register(ctx context.Context, req user.RegisterRequest) action.Outcome
}

func NewLoginPage(log *slog.Logger, renderer Renderer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.auth.NewLoginPage"
		page(w, r, log.With(slog.String("op", op)), http.StatusOK, renderer.Login, render.AuthPage{})
	}
}

func NewLogin(log *slog.Logger, authenticator Authenticator, renderer Renderer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.auth.NewLogin"
		log := log.With(slog.String("op", op))

		res, out := authenticator.Login(r.Context(), user.LoginRequest{
			Username: r.FormValue("username"),
			Password: r.FormValue("password"),
		})
		if !out.OK {
			page(w, r, log, http.StatusUnauthorized, renderer.Login, render.AuthPage{Message: out.Alert})
			return
		}

		for _, c := range res.Cookies {
			if c.Name != marketplace.SessionCookie {
				continue
			}
			http.SetCookie(w, &http.Cookie{
				Name:     c.Name,
				Value:    c.Value,
				Path:     "/",
				MaxAge:   orDefault(c.MaxAge, sessionMaxAge),
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
		}
		http.SetCookie(w, &http.Cookie{
			Name:     RoleCookie,
			Value:    string(res.User.Role),
			Path:     "/",
			MaxAge:   sessionMaxAge,
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})

		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
	}
}

func NewRegisterPage(log *slog.Logger, renderer Renderer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.auth.NewRegisterPage"
		page(w, r, log.With(slog.String("op", op)), http.StatusOK, renderer.Register, render.AuthPage{})
	}
}

// NewRegister creates the account; on success the login form is shown with
// the server's confirmation.
func NewRegister(log *slog.Logger, registrar Registrar, renderer Renderer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.auth.NewRegister"
		log := log.With(slog.String("op", op))

		out := registrar.Register(r.Context(), user.RegisterRequest{
			Username: r.FormValue("username"),
			Email:    r.FormValue("email"),
			Password: r.FormValue("password"),
			Role:     user.Role(r.FormValue("role")),
		})
		if !out.OK {
			page(w, r, log, http.StatusBadRequest, renderer.Register, render.AuthPage{Message: out.Alert})
			return
		}

		page(w, r, log, http.StatusOK, renderer.Login, render.AuthPage{Message: out.Alert, Success: true})
	}
}

func NewLogout(log *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.auth.NewLogout"
		log.With(slog.String("op", op)).Debug("logout")

		for _, name := range []string{marketplace.SessionCookie, RoleCookie} {
			http.SetCookie(w, &http.Cookie{Name: name, Value: "", Path: "/", MaxAge: -1})
		}
		http.Redirect(w, r, "/", http.StatusSeeOther)
	}
}

// NewHome sends signed-in users to their dashboard and everyone else to the
// login page.
func NewHome(log *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !SignedIn(r) {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
	}
}

// NewDashboard redirects to the dashboard of the signed-in user's role.
func NewDashboard(log *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.auth.NewDashboard"

		cfg, ok := RoleFrom(r)
		if !SignedIn(r) || !ok {
			log.With(slog.String("op", op)).Debug("not signed in")
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		http.Redirect(w, r, cfg.Path, http.StatusSeeOther)
	}
}

func SignedIn(r *http.Request) bool {
	c, err := r.Cookie(marketplace.SessionCookie)
	return err == nil && c.Value != ""
}

// RoleFrom returns the dashboard configuration of the role cookie.
func RoleFrom(r *http.Request) (view.RoleConfig, bool) {
	c, err := r.Cookie(RoleCookie)
	if err != nil {
		return view.RoleConfig{}, false
	}
	return view.ForRole(user.Role(c.Value))
}

func page(w http.ResponseWriter, r *http.Request, log *slog.Logger, status int, tmpl func(io.Writer, render.AuthPage) error, p render.AuthPage) {
	var buf bytes.Buffer
	if err := tmpl(&buf, p); err != nil {
		log.Error("failed to render page", sl.Err(err))
		chirender.Status(r, http.StatusInternalServerError)
		chirender.JSON(w, r, errors.NewHttpError("failed to render page"))
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	w.Write(buf.Bytes())
}

func orDefault(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}
