// Package action runs the user actions behind the dashboard forms. Each
// action checks its few preconditions, issues its backend request(s) and
// reports an Outcome; applying the outcome to the page is up to the caller.
package action

import (
	serrors "errors"
	"io"
	"log/slog"
	"strings"
	"time"

	"marketplace_web/internal/lib/logger/sl"
	"marketplace_web/internal/lib/metrics"
	"marketplace_web/internal/storage/marketplace"
	"marketplace_web/internal/ui/view"

	"github.com/go-playground/validator/v10"
)

// Target names a list whose contents an action changed.
type Target string

const (
	ReloadProjects Target = "projects"
	ReloadQuotes   Target = "quotes"
	ReloadMessages Target = "messages"
	ReloadFiles    Target = "files"
)

const (
	resultOK       = "ok"
	resultRejected = "rejected"
	resultFailed   = "failed"
	resultBlocked  = "blocked"
)

// Outcome is what an action did, as seen by the page.
type Outcome struct {
	OK     bool
	Alert  string
	Close  []view.ModalKind
	Reload []Target
}

// Apply returns st with the outcome's dialogs closed and its alert set.
// Confirmation prompts never outlive the action they confirmed.
func (o Outcome) Apply(st view.State) view.State {
	st = st.CloseConfirms()
	for _, kind := range o.Close {
		st = st.Close(kind)
	}
	return st.WithAlert(o.Alert)
}

// File is an uploaded form file. A zero File means none was chosen.
type File struct {
	Name string
	Size int64
	Body io.Reader
}

type Dispatcher struct {
	log      *slog.Logger
	backend  Backend
	loc      *time.Location
	validate *validator.Validate
}

func New(log *slog.Logger, backend Backend, loc *time.Location) *Dispatcher {
	if loc == nil {
		loc = time.UTC
	}

	v := validator.New()
	_ = v.RegisterValidation("pdf", func(fl validator.FieldLevel) bool {
		return strings.HasSuffix(strings.ToLower(fl.Field().String()), ".pdf")
	})

	return &Dispatcher{log: log, backend: backend, loc: loc, validate: v}
}

func (d *Dispatcher) ok(name string, o Outcome) Outcome {
	metrics.RecordAction(name, resultOK)
	o.OK = true
	return o
}

func (d *Dispatcher) blocked(name, alert string) Outcome {
	metrics.RecordAction(name, resultBlocked)
	return Outcome{Alert: alert}
}

// fail reports a failed request: the server's own message when it sent one,
// fallback for a bare rejection and transport for a request that never got
// a usable answer.
func (d *Dispatcher) fail(log *slog.Logger, name string, err error, fallback, transport string) Outcome {
	var appErr *marketplace.AppError
	if serrors.As(err, &appErr) {
		log.Warn("action rejected", slog.Int("status", appErr.Status), sl.Err(err))
		metrics.RecordAction(name, resultRejected)
		return Outcome{Alert: marketplace.FailureMessage(err, fallback)}
	}

	log.Error("action failed", sl.Err(err))
	metrics.RecordAction(name, resultFailed)
	return Outcome{Alert: transport}
}

// failedCheck returns the tag of the first failed validation rule.
func failedCheck(err error) string {
	var verrs validator.ValidationErrors
	if serrors.As(err, &verrs) && len(verrs) > 0 {
		return verrs[0].Tag()
	}
	return ""
}
