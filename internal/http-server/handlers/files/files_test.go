package files

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"marketplace_web/internal/storage/marketplace"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
)

func newRouter(t *testing.T, backend http.HandlerFunc) http.Handler {
	t.Helper()
	srv := httptest.NewServer(backend)
	t.Cleanup(srv.Close)

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	r := chi.NewRouter()
	r.Get("/files/{fileId}/download", NewDownload(log, marketplace.New(log, srv.URL, 5*time.Second)))
	return r
}

func TestDownload_Streams(t *testing.T) {
	r := newRouter(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/files/5/download", r.URL.Path)
		assert.Equal(t, "proposal", r.URL.Query().Get("file_type"))
		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", `attachment; filename="plan.pdf"`)
		w.Write([]byte("%PDF-1.4"))
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/files/5/download?file_type=proposal", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="plan.pdf"`, rec.Header().Get("Content-Disposition"))
	assert.Equal(t, "%PDF-1.4", rec.Body.String())
}

func TestDownload_BadRequests(t *testing.T) {
	r := newRouter(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("backend must not be called")
	})

	for _, target := range []string{"/files/x/download?file_type=closure", "/files/5/download", "/files/5/download?file_type=avatar"} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
		assert.Equal(t, http.StatusBadRequest, rec.Code, target)
	}
}

func TestDownload_BackendRejection(t *testing.T) {
	r := newRouter(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"detail":"File not found"}`))
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/files/5/download?file_type=closure", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"success":false,"error":"File not found"}`, rec.Body.String())
}
