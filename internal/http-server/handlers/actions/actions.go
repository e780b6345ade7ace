// Package actions serves the dashboard's form posts. Every handler runs one
// action and redirects back to the page the form came from, with the
// action's outcome applied to that page's state.
package actions

import (
	"context"
	serrors "errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"marketplace_web/internal/http-server/handlers/dashboard"
	"marketplace_web/internal/lib/errors"
	"marketplace_web/internal/models/rating"
	"marketplace_web/internal/ui/action"
	"marketplace_web/internal/ui/view"

	"github.com/go-chi/render"
)

const maxFormMemory = 32 << 20

type ProjectSaver interface {
	SaveProject(ctx context.Context, form action.ProjectForm) action.Outcome
}

type ProjectDeleter interface {
	DeleteProject(ctx context.Context, projectId int64) action.Outcome
}

type QuoteSubmitter interface {
	SubmitQuote(ctx context.Context, form action.QuoteForm) action.Outcome
}

type DelegateSelector interface {
	SelectDelegate(ctx context.Context, projectId, quoteId int64) action.Outcome
}

type MessageSender interface {
	SendMessage(ctx context.Context, projectId int64, content string) action.Outcome
}

type ClosureUploader interface {
	UploadClosure(ctx context.Context, projectId int64, file action.File) action.Outcome
}

type ProjectCloser interface {
	CloseProject(ctx context.Context, projectId int64) action.Outcome
}

type ClosureReviewer interface {
	AcceptClosure(ctx context.Context, projectId, fileId int64) action.Outcome
	ReturnClosure(ctx context.Context, projectId, fileId int64) action.Outcome
}

type ReviewSubmitter interface {
	SubmitReview(ctx context.Context, projectId int64, req rating.ReviewRequest) action.Outcome
}

func NewSaveProject(log *slog.Logger, saver ProjectSaver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.actions.NewSaveProject"
		log := log.With(slog.String("op", op))

		st, ok := returnState(w, r, log)
		if !ok {
			return
		}

		var id int64
		if raw := r.FormValue("project_id"); raw != "" {
			var err error
			if id, err = strconv.ParseInt(raw, 10, 64); err != nil {
				badRequest(w, r, log, "Incorrect project_id")
				return
			}
		}

		form := action.ProjectForm{
			Id:          id,
			Title:       r.FormValue("title"),
			Description: r.FormValue("description"),
			Deadline:    r.FormValue("deadline"),
		}
		out := saver.SaveProject(r.Context(), form)
		keepDraft(w, log, out, view.Modal{Kind: view.ModalProject, ID: id}, url.Values{
			"title":       {form.Title},
			"description": {form.Description},
			"deadline":    {form.Deadline},
		})
		finish(w, r, log, st, out)
	}
}

func NewDeleteProject(log *slog.Logger, deleter ProjectDeleter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.actions.NewDeleteProject"
		log := log.With(slog.String("op", op))

		st, ok := returnState(w, r, log)
		if !ok {
			return
		}
		projectId, ok := formID(w, r, log, "project_id")
		if !ok {
			return
		}

		finish(w, r, log, st, deleter.DeleteProject(r.Context(), projectId))
	}
}

func NewSubmitQuote(log *slog.Logger, submitter QuoteSubmitter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.actions.NewSubmitQuote"
		log := log.With(slog.String("op", op))

		st, ok := returnState(w, r, log)
		if !ok {
			return
		}
		projectId, ok := formID(w, r, log, "project_id")
		if !ok {
			return
		}

		proposal, closeFile, err := formFile(r, "proposal")
		if err != nil {
			badRequest(w, r, log, "Incorrect proposal upload")
			return
		}
		defer closeFile()

		form := action.QuoteForm{
			ProjectId: projectId,
			Amount:    r.FormValue("amount"),
			Message:   r.FormValue("message"),
			Proposal:  proposal,
		}
		out := submitter.SubmitQuote(r.Context(), form)
		keepDraft(w, log, out, view.Modal{Kind: view.ModalQuote, ID: projectId}, url.Values{
			"amount":  {form.Amount},
			"message": {form.Message},
		})
		finish(w, r, log, st, out)
	}
}

func NewSelectDelegate(log *slog.Logger, selector DelegateSelector) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.actions.NewSelectDelegate"
		log := log.With(slog.String("op", op))

		st, ok := returnState(w, r, log)
		if !ok {
			return
		}
		projectId, ok := formID(w, r, log, "project_id")
		if !ok {
			return
		}
		quoteId, ok := formID(w, r, log, "ref_id")
		if !ok {
			return
		}

		finish(w, r, log, st, selector.SelectDelegate(r.Context(), projectId, quoteId))
	}
}

func NewSendMessage(log *slog.Logger, sender MessageSender) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.actions.NewSendMessage"
		log := log.With(slog.String("op", op))

		st, ok := returnState(w, r, log)
		if !ok {
			return
		}
		projectId, ok := formID(w, r, log, "project_id")
		if !ok {
			return
		}

		content := r.FormValue("content")
		out := sender.SendMessage(r.Context(), projectId, content)
		keepDraft(w, log, out, view.Modal{Kind: view.ModalMessages, ID: projectId}, url.Values{
			"content": {content},
		})
		finish(w, r, log, st, out)
	}
}

func NewUploadClosure(log *slog.Logger, uploader ClosureUploader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.actions.NewUploadClosure"
		log := log.With(slog.String("op", op))

		st, ok := returnState(w, r, log)
		if !ok {
			return
		}
		projectId, ok := formID(w, r, log, "project_id")
		if !ok {
			return
		}

		file, closeFile, err := formFile(r, "file")
		if err != nil {
			badRequest(w, r, log, "Incorrect file upload")
			return
		}
		defer closeFile()

		finish(w, r, log, st, uploader.UploadClosure(r.Context(), projectId, file))
	}
}

func NewCloseProject(log *slog.Logger, closer ProjectCloser) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.actions.NewCloseProject"
		log := log.With(slog.String("op", op))

		st, ok := returnState(w, r, log)
		if !ok {
			return
		}
		projectId, ok := formID(w, r, log, "project_id")
		if !ok {
			return
		}

		finish(w, r, log, st, closer.CloseProject(r.Context(), projectId))
	}
}

func NewAcceptClosure(log *slog.Logger, reviewer ClosureReviewer) http.HandlerFunc {
	return newClosureDecision(log, "handlers.actions.NewAcceptClosure", reviewer.AcceptClosure)
}

func NewReturnClosure(log *slog.Logger, reviewer ClosureReviewer) http.HandlerFunc {
	return newClosureDecision(log, "handlers.actions.NewReturnClosure", reviewer.ReturnClosure)
}

func newClosureDecision(log *slog.Logger, op string, decide func(ctx context.Context, projectId, fileId int64) action.Outcome) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := log.With(slog.String("op", op))

		st, ok := returnState(w, r, log)
		if !ok {
			return
		}
		projectId, ok := formID(w, r, log, "project_id")
		if !ok {
			return
		}
		fileId, ok := formID(w, r, log, "ref_id")
		if !ok {
			return
		}

		finish(w, r, log, st, decide(r.Context(), projectId, fileId))
	}
}

func NewSubmitReview(log *slog.Logger, submitter ReviewSubmitter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.actions.NewSubmitReview"
		log := log.With(slog.String("op", op))

		st, ok := returnState(w, r, log)
		if !ok {
			return
		}
		projectId, ok := formID(w, r, log, "project_id")
		if !ok {
			return
		}

		out := submitter.SubmitReview(r.Context(), projectId, rating.ReviewRequest{
			Dimension1: r.FormValue("dimension_1"),
			Dimension2: r.FormValue("dimension_2"),
			Dimension3: r.FormValue("dimension_3"),
			Comment:    r.FormValue("comment"),
		})
		finish(w, r, log, st, out)
	}
}

// returnState reads the dashboard page the form was posted from. Only the
// two dashboards are accepted, so the redirect never leaves the site.
func returnState(w http.ResponseWriter, r *http.Request, log *slog.Logger) (view.State, bool) {
	if err := r.ParseMultipartForm(maxFormMemory); err != nil && !serrors.Is(err, http.ErrNotMultipart) {
		badRequest(w, r, log, "Incorrect form body")
		return view.State{}, false
	}

	u, err := url.Parse(r.FormValue("return"))
	if err != nil || u.Scheme != "" || u.Host != "" {
		badRequest(w, r, log, "Incorrect return page")
		return view.State{}, false
	}

	var cfg view.RoleConfig
	switch u.Path {
	case view.Delegator.Path:
		cfg = view.Delegator
	case view.Recipient.Path:
		cfg = view.Recipient
	default:
		badRequest(w, r, log, "Incorrect return page")
		return view.State{}, false
	}
	return view.Parse(cfg, u.Query()), true
}

func formID(w http.ResponseWriter, r *http.Request, log *slog.Logger, field string) (int64, bool) {
	id, err := strconv.ParseInt(r.FormValue(field), 10, 64)
	if err != nil || id <= 0 {
		badRequest(w, r, log, fmt.Sprintf("Incorrect %s", field))
		return 0, false
	}
	return id, true
}

// formFile returns the uploaded file, or a zero File when none was chosen.
func formFile(r *http.Request, field string) (action.File, func(), error) {
	f, hdr, err := r.FormFile(field)
	if serrors.Is(err, http.ErrMissingFile) || serrors.Is(err, http.ErrNotMultipart) {
		return action.File{}, func() {}, nil
	}
	if err != nil {
		return action.File{}, func() {}, err
	}
	return action.File{Name: hdr.Filename, Size: hdr.Size, Body: f}, func() { f.Close() }, nil
}

// keepDraft hands a failed dialog's input back to the page it reopens on.
func keepDraft(w http.ResponseWriter, log *slog.Logger, out action.Outcome, m view.Modal, values url.Values) {
	if out.OK {
		return
	}
	if !dashboard.SetDraft(w, view.Draft{Modal: m, Values: values}) {
		log.Debug("draft too large to keep", slog.String("modal", m.String()))
	}
}

func finish(w http.ResponseWriter, r *http.Request, log *slog.Logger, st view.State, out action.Outcome) {
	if len(out.Reload) > 0 {
		log.Debug("lists changed", slog.Any("reload", out.Reload))
	}
	http.Redirect(w, r, out.Apply(st).URL(), http.StatusSeeOther)
}

func badRequest(w http.ResponseWriter, r *http.Request, log *slog.Logger, msg string) {
	log.Error(msg)
	render.Status(r, http.StatusBadRequest)
	render.JSON(w, r, errors.NewHttpError(msg))
}
