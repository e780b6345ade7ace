package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"marketplace_web/internal/config"
	"marketplace_web/internal/http-server/handlers/actions"
	"marketplace_web/internal/http-server/handlers/api/ping"
	"marketplace_web/internal/http-server/handlers/auth"
	"marketplace_web/internal/http-server/handlers/dashboard"
	"marketplace_web/internal/http-server/handlers/files"
	mwlocal "marketplace_web/internal/http-server/middleware"
	"marketplace_web/internal/lib/logger/sl"
	"marketplace_web/internal/storage/marketplace"
	"marketplace_web/internal/ui/action"
	"marketplace_web/internal/ui/page"
	"marketplace_web/internal/ui/render"
	"marketplace_web/internal/ui/view"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	envErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", sl.Err(err))
		os.Exit(1)
	}

	log := setupLogger(cfg.Env, cfg.LogLevel)
	if envErr != nil {
		log.Debug("no .env loaded", sl.Err(envErr))
	}
	log.Info("starting marketplace web", slog.String("env", cfg.Env), slog.String("backend", cfg.BackendURL))

	storage := marketplace.New(log, cfg.BackendURL, cfg.BackendTimeout)

	renderer, err := render.New(cfg.Location)
	if err != nil {
		log.Error("failed to parse templates", sl.Err(err))
		os.Exit(1)
	}
	builder := page.NewBuilder(log, storage)
	dispatcher := action.New(log, storage, cfg.Location)

	router := chi.NewRouter()
	router.Use(mwlocal.RequestID)
	router.Use(middleware.RealIP)
	router.Use(mwlocal.Logger(log))
	router.Use(middleware.Recoverer)
	router.Use(mwlocal.Session)

	router.Get("/", auth.NewHome(log))
	router.Get("/login", auth.NewLoginPage(log, renderer))
	router.Post("/login", auth.NewLogin(log, dispatcher, renderer))
	router.Get("/register", auth.NewRegisterPage(log, renderer))
	router.Post("/register", auth.NewRegister(log, dispatcher, renderer))
	router.Get("/logout", auth.NewLogout(log))
	router.Get("/dashboard", auth.NewDashboard(log))

	router.Get(view.Delegator.Path, dashboard.New(log, view.Delegator, builder, renderer))
	router.Get(view.Recipient.Path, dashboard.New(log, view.Recipient, builder, renderer))

	router.Route("/actions", func(r chi.Router) {
		r.Post("/save_project", actions.NewSaveProject(log, dispatcher))
		r.Post("/delete_project", actions.NewDeleteProject(log, dispatcher))
		r.Post("/submit_quote", actions.NewSubmitQuote(log, dispatcher))
		r.Post("/select_delegate", actions.NewSelectDelegate(log, dispatcher))
		r.Post("/send_message", actions.NewSendMessage(log, dispatcher))
		r.Post("/upload_closure", actions.NewUploadClosure(log, dispatcher))
		r.Post("/close_project", actions.NewCloseProject(log, dispatcher))
		r.Post("/accept_closure", actions.NewAcceptClosure(log, dispatcher))
		r.Post("/return_closure", actions.NewReturnClosure(log, dispatcher))
		r.Post("/submit_review", actions.NewSubmitReview(log, dispatcher))
	})

	router.Get("/files/{fileId}/download", files.NewDownload(log, storage))
	router.Get("/api/ping", ping.New(log, storage))
	router.Handle("/metrics", promhttp.Handler())

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("failed to start the server", sl.Err(err))
			done <- syscall.SIGTERM
		}
	}()

	log.Info("server started", slog.String("addr", cfg.HTTPAddr))
	<-done
	log.Info("stopping server")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("failed to stop server", sl.Err(err))
		return
	}
	log.Info("server stopped")
}

func setupLogger(env, level string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(level)}

	switch env {
	case config.EnvLocal:
		return slog.New(slog.NewTextHandler(os.Stdout, opts))
	default:
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
}

func parseLevel(s string) slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.ToUpper(s))); err != nil {
		return slog.LevelInfo
	}
	return l
}
