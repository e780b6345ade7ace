package dashboard

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"

	"marketplace_web/internal/http-server/handlers/auth"
	"marketplace_web/internal/lib/errors"
	"marketplace_web/internal/lib/logger/sl"
	"marketplace_web/internal/ui/page"
	"marketplace_web/internal/ui/view"

	"github.com/go-chi/render"
)

type Builder interface {
	Build(ctx context.Context, st view.State) page.Dashboard
}

type Renderer interface {
	Dashboard(w io.Writer, d page.Dashboard) error
}

// New serves the dashboard of one role. The whole page state comes from the
// query string, so every load starts from what the URL says.
func New(log *slog.Logger, cfg view.RoleConfig, builder Builder, renderer Renderer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.dashboard.New"
		log := log.With(slog.String("op", op), slog.String("role", string(cfg.Role)))

		if !auth.SignedIn(r) {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		if other, ok := auth.RoleFrom(r); ok && other.Role != cfg.Role {
			http.Redirect(w, r, other.Path, http.StatusSeeOther)
			return
		}

		st := view.Parse(cfg, r.URL.Query())
		if d, ok := takeDraft(w, r); ok {
			st = st.WithDraft(d)
		}
		d := builder.Build(r.Context(), st)

		var buf bytes.Buffer
		if err := renderer.Dashboard(&buf, d); err != nil {
			log.Error("failed to render dashboard", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, errors.NewHttpError("failed to render dashboard"))
			return
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Header().Set("Cache-Control", "no-store")
		w.Write(buf.Bytes())
	}
}
