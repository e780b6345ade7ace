package ping

import (
	"context"
	"log/slog"
	"net/http"

	"marketplace_web/internal/lib/errors"
	"marketplace_web/internal/lib/logger/sl"

	"github.com/go-chi/render"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

// New answers "ok" while the marketplace backend is reachable.
func New(log *slog.Logger, pinger Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.api.ping.New"

		log := log.With(slog.String("op", op))
		log.Debug("ping request")

		if err := pinger.Ping(r.Context()); err != nil {
			log.Error("backend unreachable", sl.Err(err))
			render.Status(r, http.StatusServiceUnavailable)
			render.JSON(w, r, errors.NewHttpError("backend unavailable"))
			return
		}

		render.PlainText(w, r, "ok")
	}
}
