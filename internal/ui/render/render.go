// Package render turns entity lists and page state into HTML. It performs
// no I/O beyond writing to the given writer.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"strconv"
	"time"

	"marketplace_web/internal/lib/isotime"
	"marketplace_web/internal/models/closure"
	"marketplace_web/internal/models/message"
	"marketplace_web/internal/models/project"
	"marketplace_web/internal/models/quote"
	"marketplace_web/internal/models/rating"
	"marketplace_web/internal/ui/page"
	"marketplace_web/internal/ui/status"
	"marketplace_web/internal/ui/view"
)

//go:embed templates/*.tmpl
var templates embed.FS

const (
	dateLayout     = "2006/1/2"
	dateTimeLayout = "2006/1/2 15:04:05"
	inputLayout    = "2006-01-02T15:04"
)

// Empty-state texts per list.
var emptyTexts = map[view.View]string{
	view.Projects:   "還沒有項目。創建您的第一個項目吧！",
	view.History:    "還沒有完成的項目。",
	view.Available:  "目前沒有可用項目。",
	view.MyProjects: "您還沒有任何活躍項目。",
}

var headings = map[view.View]string{
	view.History:    "項目歷史",
	view.MyProjects: "我的活躍項目",
}

var tabLabels = map[view.View]string{
	view.Projects:   "我的項目",
	view.History:    "項目歷史",
	view.Available:  "可用項目",
	view.MyProjects: "我的項目",
}

// Confirmation prompts and the action each one submits to.
var confirms = map[view.ModalKind]struct {
	Prompt string
	Action string
}{
	view.ConfirmDelete: {"您確定要刪除此項目嗎？", "/actions/delete_project"},
	view.ConfirmSelect: {"您確定要選擇此受託人嗎？", "/actions/select_delegate"},
	view.ConfirmClose:  {"您要結案並接受此項目嗎？", "/actions/close_project"},
	view.ConfirmAccept: {"確定要接受此版本的文件嗎？", "/actions/accept_closure"},
	view.ConfirmReturn: {"確定要退回此版本的文件嗎？受託方可以上傳新版本。", "/actions/return_closure"},
}

type Renderer struct {
	tmpl *template.Template
	loc  *time.Location
}

func New(loc *time.Location) (*Renderer, error) {
	const op = "ui.render.New"

	if loc == nil {
		loc = time.Local
	}
	r := &Renderer{loc: loc}

	tmpl, err := template.New("").Funcs(r.funcs()).ParseFS(templates, "templates/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	r.tmpl = tmpl
	return r, nil
}

// Item pairs one record with the page state its controls link from.
type Item struct {
	S view.State
	V any
}

type ratingLinkData struct {
	URL     string
	Average float64
	Count   int
}

type listData struct {
	State    view.State
	Projects []project.Project
	Err      string
}

type quotesData struct {
	State     view.State
	ProjectId int64
	Quotes    []quote.Quote
}

type filesData struct {
	State     view.State
	ProjectId int64
	Files     []closure.File
}

// Projects renders the project list of the state's current view.
func (r *Renderer) Projects(st view.State, projects []project.Project) (template.HTML, error) {
	return r.fragment("project_list", listData{State: st, Projects: projects})
}

func (r *Renderer) Quotes(st view.State, projectId int64, quotes []quote.Quote) (template.HTML, error) {
	return r.fragment("quote_list", quotesData{State: st, ProjectId: projectId, Quotes: quotes})
}

func (r *Renderer) Messages(messages []message.Message) (template.HTML, error) {
	return r.fragment("message_list", messages)
}

// ClosureFiles renders the delegator's review list with accept/return controls.
func (r *Renderer) ClosureFiles(st view.State, projectId int64, files []closure.File) (template.HTML, error) {
	return r.fragment("closure_list", filesData{State: st, ProjectId: projectId, Files: files})
}

// ClosureHistory renders the recipient's uploaded versions.
func (r *Renderer) ClosureHistory(files []closure.File) (template.HTML, error) {
	return r.fragment("closure_history", files)
}

// Reviews renders a rating summary and its recent reviews.
func (r *Renderer) Reviews(summary rating.Summary) (template.HTML, error) {
	return r.fragment("reviews", summary)
}

func (r *Renderer) Dashboard(w io.Writer, d page.Dashboard) error {
	return r.tmpl.ExecuteTemplate(w, "dashboard", d)
}

type AuthPage struct {
	Message string
	Success bool
}

func (r *Renderer) Login(w io.Writer, p AuthPage) error {
	return r.tmpl.ExecuteTemplate(w, "login", p)
}

func (r *Renderer) Register(w io.Writer, p AuthPage) error {
	return r.tmpl.ExecuteTemplate(w, "register", p)
}

func (r *Renderer) fragment(name string, data any) (template.HTML, error) {
	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("ui.render.%s: %w", name, err)
	}
	return template.HTML(buf.String()), nil
}

func (r *Renderer) funcs() template.FuncMap {
	return template.FuncMap{
		"item":       func(st view.State, v any) Item { return Item{S: st, V: v} },
		"ratingLink": r.ratingLink,
		"listOf": func(d page.Dashboard) listData {
			return listData{State: d.State, Projects: d.Projects, Err: d.ListErr}
		},
		"quotesOf": func(st view.State, projectId int64, quotes []quote.Quote) quotesData {
			return quotesData{State: st, ProjectId: projectId, Quotes: quotes}
		},
		"filesOf": func(st view.State, projectId int64, files []closure.File) filesData {
			return filesData{State: st, ProjectId: projectId, Files: files}
		},
		"inc": func(i int) int { return i + 1 },

		"projectStatus": func(s project.Status) string { return status.Project.Label(string(s)) },
		"quoteStatus":   func(s quote.Status) string { return status.Quote.Label(string(s)) },
		"fileStatus":    func(s closure.Status) string { return status.ClosureFile.Label(string(s)) },
		"statusClass":   func(s any) string { return status.Class(fmt.Sprint(s)) },

		"date":      func(v any) string { return r.format(v, dateLayout) },
		"datetime":  func(v any) string { return r.format(v, dateTimeLayout) },
		"inputTime": func(v any) string { return r.format(v, inputLayout) },
		"money":     func(v float64) string { return strconv.FormatFloat(v, 'f', 2, 64) },
		"score":     func(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) },
		"version": func(v int) int {
			if v == 0 {
				return 1
			}
			return v
		},
		"orUnknown": func(s string) string {
			if s == "" {
				return "未知"
			}
			return s
		},

		"emptyText":     func(v view.View) string { return emptyTexts[v] },
		"heading":       func(v view.View) string { return headings[v] },
		"tabLabel":      func(v view.View) string { return tabLabels[v] },
		"confirmPrompt": func(k view.ModalKind) string { return confirms[k].Prompt },
		"confirmAction": func(k view.ModalKind) string { return confirms[k].Action },

		"here": func(st view.State) string { return st.WithAlert("").URL() },
		"open": func(st view.State, kind string, id, ref int64) string {
			return st.WithAlert("").Open(view.Modal{Kind: view.ModalKind(kind), ID: id, Ref: ref}).URL()
		},
		"without": func(st view.State, m view.Modal) string {
			return st.WithAlert("").Without(m).URL()
		},
		"selectView": func(st view.State, v view.View) string {
			return st.WithAlert("").Select(v).URL()
		},
		"isDelegator": func(st view.State) bool { return st.Role.Role == view.Delegator.Role },
	}
}

// ratingLink points at the reviews dialog for a project's delegator
// (quoteId 0) or a quote's recipient.
func (r *Renderer) ratingLink(st view.State, projectId, quoteId int64, v any) ratingLinkData {
	var s rating.Summary
	switch sv := v.(type) {
	case rating.Summary:
		s = sv
	case *rating.Summary:
		if sv != nil {
			s = *sv
		}
	}
	m := view.Modal{Kind: view.ModalReviews, ID: projectId, Ref: quoteId}
	return ratingLinkData{
		URL:     st.WithAlert("").Open(m).URL(),
		Average: s.Average,
		Count:   s.Count,
	}
}

func (r *Renderer) format(v any, layout string) string {
	var t time.Time
	switch tv := v.(type) {
	case isotime.Time:
		t = tv.Time
	case *isotime.Time:
		if tv == nil {
			return ""
		}
		t = tv.Time
	case time.Time:
		t = tv
	case *time.Time:
		if tv == nil {
			return ""
		}
		t = *tv
	default:
		return ""
	}
	if t.IsZero() {
		return ""
	}
	return t.In(r.loc).Format(layout)
}
