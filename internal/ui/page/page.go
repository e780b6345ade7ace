// Package page composes a dashboard from its view state: it runs the loader
// for the selected view and fetches what every open modal needs.
package page

import (
	"context"
	"log/slog"

	"marketplace_web/internal/lib/logger/sl"
	"marketplace_web/internal/models/closure"
	"marketplace_web/internal/models/message"
	"marketplace_web/internal/models/project"
	"marketplace_web/internal/models/quote"
	"marketplace_web/internal/models/rating"
	"marketplace_web/internal/storage/marketplace"
	"marketplace_web/internal/ui/view"
)

type Source interface {
	ReadProjects(ctx context.Context) ([]project.Project, error)
	ReadAvailableProjects(ctx context.Context) ([]project.Project, error)
	ReadMyProjects(ctx context.Context) ([]project.Project, error)
	ReadHistory(ctx context.Context) ([]project.Project, error)
	ReadProject(ctx context.Context, projectId int64) (project.Project, error)
	ReadQuotes(ctx context.Context, projectId int64) ([]quote.Quote, error)
	ReadMessages(ctx context.Context, projectId int64) ([]message.Message, error)
	ReadClosureFiles(ctx context.Context, projectId int64) ([]closure.File, error)
}

// Loader fetches the project list behind one view.
type Loader func(src Source, ctx context.Context) ([]project.Project, error)

// Loaders is the single view dispatch table.
var Loaders = map[view.View]Loader{
	view.Projects:   Source.ReadProjects,
	view.Available:  Source.ReadAvailableProjects,
	view.MyProjects: Source.ReadMyProjects,
	view.History:    Source.ReadHistory,
}

const (
	msgLoadProjects = "載入項目時出錯"
	msgLoadQuotes   = "載入報價時出錯"
	msgLoadMessages = "載入訊息時出錯"
	msgLoadFiles    = "載入結案文件時出錯: "
	msgLoadReviews  = "載入評價時出錯"
)

type Dashboard struct {
	State view.State

	Projects []project.Project
	ListErr  string

	Modals []Modal
}

// Modal is an open dialog plus whatever data it shows. Only the fields its
// kind needs are set.
type Modal struct {
	view.Modal

	Project  *project.Project
	Quotes   []quote.Quote
	Messages []message.Message
	Files    []closure.File
	Rating   *rating.Summary

	// Err is shown in place of the dialog's content.
	Err string
}

type Builder struct {
	log *slog.Logger
	src Source
}

func NewBuilder(log *slog.Logger, src Source) *Builder {
	return &Builder{log: log, src: src}
}

// Build loads sequentially; a failed load degrades to an error message in
// its own section and never aborts the page.
func (b *Builder) Build(ctx context.Context, st view.State) Dashboard {
	const op = "ui.page.Build"

	log := b.log.With(slog.String("op", op), slog.String("view", string(st.View)))

	d := Dashboard{State: st}

	load, ok := Loaders[st.View]
	if !ok {
		load = Loaders[st.Role.Views[0]]
	}
	projects, err := load(b.src, ctx)
	if err != nil {
		log.Error("failed to load projects", sl.Err(err))
		d.ListErr = marketplace.FailureMessage(err, msgLoadProjects)
	}
	d.Projects = projects

	for _, m := range st.Modals {
		d.Modals = append(d.Modals, b.modal(ctx, log, d.Projects, m))
	}
	return d
}

func (b *Builder) modal(ctx context.Context, log *slog.Logger, listed []project.Project, m view.Modal) Modal {
	out := Modal{Modal: m, Project: find(listed, m.ID)}

	switch m.Kind {
	case view.ModalProject:
		if m.ID == 0 {
			return out
		}
		p, err := b.src.ReadProject(ctx, m.ID)
		if err != nil {
			log.Error("failed to load project", slog.Int64("project_id", m.ID), sl.Err(err))
			out.Err = msgLoadProjects
			return out
		}
		out.Project = &p

	case view.ModalQuotes:
		quotes, err := b.src.ReadQuotes(ctx, m.ID)
		if err != nil {
			log.Error("failed to load quotes", slog.Int64("project_id", m.ID), sl.Err(err))
			out.Err = msgLoadQuotes
			return out
		}
		out.Quotes = quotes

	case view.ModalMessages:
		messages, err := b.src.ReadMessages(ctx, m.ID)
		if err != nil {
			log.Error("failed to load messages", slog.Int64("project_id", m.ID), sl.Err(err))
			out.Err = msgLoadMessages
			return out
		}
		out.Messages = messages

	case view.ModalClosureFiles, view.ModalUpload:
		files, err := b.src.ReadClosureFiles(ctx, m.ID)
		if err != nil {
			log.Error("failed to load closure files", slog.Int64("project_id", m.ID), sl.Err(err))
			if m.Kind == view.ModalClosureFiles {
				out.Err = msgLoadFiles + marketplace.FailureMessage(err, "未知錯誤")
			}
			return out
		}
		out.Files = files

	case view.ModalReviews:
		summary, err := b.rating(ctx, m)
		if err != nil {
			log.Error("failed to load rating", slog.Int64("project_id", m.ID), sl.Err(err))
			out.Err = msgLoadReviews
			return out
		}
		out.Rating = summary
	}

	return out
}

// rating finds the summary the reviews dialog refers to: a quote's recipient
// for delegators, a listed project's delegator for recipients.
func (b *Builder) rating(ctx context.Context, m view.Modal) (*rating.Summary, error) {
	if m.Ref != 0 {
		quotes, err := b.src.ReadQuotes(ctx, m.ID)
		if err != nil {
			return nil, err
		}
		for _, q := range quotes {
			if q.Id == m.Ref {
				return &q.RecipientRating, nil
			}
		}
		return &rating.Summary{}, nil
	}

	projects, err := Loaders[view.Available](b.src, ctx)
	if err != nil {
		return nil, err
	}
	if p := find(projects, m.ID); p != nil && p.DelegatorRating != nil {
		return p.DelegatorRating, nil
	}
	return &rating.Summary{}, nil
}

func find(projects []project.Project, id int64) *project.Project {
	for i := range projects {
		if projects[i].Id == id {
			return &projects[i]
		}
	}
	return nil
}
