// Package view models the dashboard's selectable views and open modal
// dialogs as an explicit value carried in the page URL.
package view

import (
	"net/url"
	"slices"
	"strconv"
	"strings"

	"marketplace_web/internal/models/user"
)

type View string

const (
	Available  View = "available"
	MyProjects View = "myprojects"
	History    View = "history"
	Projects   View = "projects"
)

// RoleConfig holds everything that differs between the delegator and the
// recipient dashboards.
type RoleConfig struct {
	Role  user.Role
	Path  string
	Title string
	Views []View

	// Review dialog: the counterparty being rated and the three score labels.
	ReviewButton string
	ReviewLabels [3]string
}

var (
	Delegator = RoleConfig{
		Role:         user.RoleDelegator,
		Path:         "/delegator",
		Title:        "委託方控制台",
		Views:        []View{Projects, History},
		ReviewButton: "評價受託方",
		ReviewLabels: [3]string{"產出品質", "執行效率", "合作態度"},
	}

	Recipient = RoleConfig{
		Role:         user.RoleRecipient,
		Path:         "/recipient",
		Title:        "受託方控制台",
		Views:        []View{Available, MyProjects, History},
		ReviewButton: "評價委託方",
		ReviewLabels: [3]string{"需求合理性", "驗收難度", "合作態度"},
	}
)

func ForRole(role user.Role) (RoleConfig, bool) {
	switch role {
	case user.RoleDelegator:
		return Delegator, true
	case user.RoleRecipient:
		return Recipient, true
	}
	return RoleConfig{}, false
}

// Resolve returns v if the role offers it, otherwise the role's default view.
// There is no transition guard: any offered view may follow any other.
func (c RoleConfig) Resolve(v string) View {
	if slices.Contains(c.Views, View(v)) {
		return View(v)
	}
	return c.Views[0]
}

type ModalKind string

const (
	// ID is the project being edited, 0 when creating.
	ModalProject ModalKind = "project"
	// ID is the project for all of the following.
	ModalQuotes       ModalKind = "quotes"
	ModalMessages     ModalKind = "messages"
	ModalClosureFiles ModalKind = "closure"
	ModalUpload       ModalKind = "upload"
	ModalQuote        ModalKind = "quote"
	ModalReview       ModalKind = "review"
	// ID is the project; Ref is the quote whose recipient is shown, or 0 for
	// the project's delegator.
	ModalReviews ModalKind = "reviews"

	ConfirmDelete ModalKind = "confirm-delete"
	ConfirmSelect ModalKind = "confirm-select" // Ref: quote
	ConfirmClose  ModalKind = "confirm-close"
	ConfirmAccept ModalKind = "confirm-accept" // Ref: closure file
	ConfirmReturn ModalKind = "confirm-return" // Ref: closure file
)

var knownKinds = []ModalKind{
	ModalProject, ModalQuotes, ModalMessages, ModalClosureFiles, ModalUpload,
	ModalQuote, ModalReview, ModalReviews,
	ConfirmDelete, ConfirmSelect, ConfirmClose, ConfirmAccept, ConfirmReturn,
}

func (k ModalKind) IsConfirm() bool {
	return strings.HasPrefix(string(k), "confirm-")
}

type Modal struct {
	Kind ModalKind
	ID   int64
	Ref  int64
}

func (m Modal) String() string {
	s := string(m.Kind) + ":" + strconv.FormatInt(m.ID, 10)
	if m.Ref != 0 {
		s += ":" + strconv.FormatInt(m.Ref, 10)
	}
	return s
}

// ParseModal reads "kind:id[:ref]".
func ParseModal(s string) (Modal, bool) {
	parts := strings.Split(s, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return Modal{}, false
	}

	m := Modal{Kind: ModalKind(parts[0])}
	if !slices.Contains(knownKinds, m.Kind) {
		return Modal{}, false
	}

	var err error
	if m.ID, err = strconv.ParseInt(parts[1], 10, 64); err != nil || m.ID < 0 {
		return Modal{}, false
	}
	if len(parts) == 3 {
		if m.Ref, err = strconv.ParseInt(parts[2], 10, 64); err != nil || m.Ref < 0 {
			return Modal{}, false
		}
	}
	return m, true
}

const maxModals = 8

// State is the whole client-side state of a dashboard page.
type State struct {
	Role   RoleConfig
	View   View
	Modals []Modal
	Alert  string

	// Draft is never encoded into the URL.
	Draft *Draft
}

func Parse(cfg RoleConfig, q url.Values) State {
	s := State{
		Role:  cfg,
		View:  cfg.Resolve(q.Get("view")),
		Alert: q.Get("alert"),
	}
	for _, raw := range q["modal"] {
		if m, ok := ParseModal(raw); ok {
			s = s.Open(m)
		}
	}
	return s
}

func (s State) Query() url.Values {
	q := url.Values{}
	q.Set("view", string(s.View))
	for _, m := range s.Modals {
		q.Add("modal", m.String())
	}
	if s.Alert != "" {
		q.Set("alert", s.Alert)
	}
	return q
}

func (s State) URL() string {
	return s.Role.Path + "?" + s.Query().Encode()
}

// Open adds m unless it is already open. Other modals stay open.
func (s State) Open(m Modal) State {
	if slices.Contains(s.Modals, m) || len(s.Modals) >= maxModals {
		return s
	}
	s.Modals = append(slices.Clone(s.Modals), m)
	return s
}

// Without closes exactly m; this is what a backdrop click does.
func (s State) Without(m Modal) State {
	s.Modals = slices.DeleteFunc(slices.Clone(s.Modals), func(o Modal) bool { return o == m })
	return s
}

// Close closes every modal of the given kind.
func (s State) Close(kind ModalKind) State {
	s.Modals = slices.DeleteFunc(slices.Clone(s.Modals), func(o Modal) bool { return o.Kind == kind })
	return s
}

// CloseConfirms closes every confirmation prompt.
func (s State) CloseConfirms() State {
	s.Modals = slices.DeleteFunc(slices.Clone(s.Modals), func(o Modal) bool { return o.Kind.IsConfirm() })
	return s
}

func (s State) Find(kind ModalKind) (Modal, bool) {
	for _, m := range s.Modals {
		if m.Kind == kind {
			return m, true
		}
	}
	return Modal{}, false
}

func (s State) Select(v View) State {
	s.View = s.Role.Resolve(string(v))
	return s
}

func (s State) WithAlert(msg string) State {
	s.Alert = msg
	return s
}
