package files

import (
	"context"
	serrors "errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"marketplace_web/internal/lib/errors"
	"marketplace_web/internal/lib/logger/sl"
	"marketplace_web/internal/storage/marketplace"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

type Downloader interface {
	Download(ctx context.Context, fileId int64, fileType string) (*http.Response, error)
}

var passHeaders = []string{"Content-Type", "Content-Disposition", "Content-Length", "Last-Modified"}

// NewDownload streams a proposal or closure file from the backend.
func NewDownload(log *slog.Logger, downloader Downloader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.files.NewDownload"
		log := log.With(slog.String("op", op))

		fileId, err := strconv.ParseInt(chi.URLParam(r, "fileId"), 10, 64)
		if err != nil {
			log.Error("Incorrect file id")
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, errors.NewHttpError("Incorrect file id"))
			return
		}

		fileType := r.URL.Query().Get("file_type")
		if err := validate.Var(fileType, "required,oneof=proposal closure"); err != nil {
			log.Error("Incorrect file type", slog.String("file_type", fileType))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, errors.NewHttpError("Incorrect file type"))
			return
		}

		resp, err := downloader.Download(r.Context(), fileId, fileType)
		if err != nil {
			log.Error("Failed to download file", slog.Int64("file_id", fileId), sl.Err(err))

			var appErr *marketplace.AppError
			if serrors.As(err, &appErr) {
				render.Status(r, appErr.Status)
			} else {
				render.Status(r, http.StatusBadGateway)
			}
			render.JSON(w, r, errors.NewHttpError(marketplace.FailureMessage(err, "下載文件時出錯")))
			return
		}
		defer resp.Body.Close()

		for _, h := range passHeaders {
			if v := resp.Header.Get(h); v != "" {
				w.Header().Set(h, v)
			}
		}
		w.WriteHeader(resp.StatusCode)
		if _, err := io.Copy(w, resp.Body); err != nil {
			log.Warn("download interrupted", slog.Int64("file_id", fileId), sl.Err(err))
		}
	}
}
