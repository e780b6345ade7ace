package action

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"marketplace_web/internal/lib/logger/sl"
	"marketplace_web/internal/models/project"
	"marketplace_web/internal/ui/view"
)

const deadlineLayout = "2006-01-02T15:04"

const (
	msgSaveProject     = "保存項目時出錯"
	msgInvalidDeadline = msgSaveProject + "：截止期限格式無效"
)

// ProjectForm is the create/edit dialog as submitted. Id 0 creates.
type ProjectForm struct {
	Id          int64
	Title       string
	Description string
	// Deadline is a datetime-local value in the configured zone, or "".
	Deadline string
}

// SaveProject creates or updates a project. The title is not checked here;
// the server decides whether it is acceptable.
func (d *Dispatcher) SaveProject(ctx context.Context, form ProjectForm) Outcome {
	const op = "ui.action.SaveProject"
	const name = "save_project"

	log := d.log.With(slog.String("op", op), slog.Int64("project_id", form.Id))

	deadline, err := d.parseDeadline(form.Deadline)
	if err != nil {
		log.Info("invalid deadline", slog.String("deadline", form.Deadline), sl.Err(err))
		return d.blocked(name, msgInvalidDeadline)
	}

	if form.Id == 0 {
		_, err = d.backend.SaveProject(ctx, project.ProjectRequest{
			Title:       form.Title,
			Description: form.Description,
			Deadline:    deadline,
		})
	} else {
		err = d.backend.PatchProject(ctx, form.Id, project.ProjectPatchRequest{
			Title:       form.Title,
			Description: form.Description,
			Deadline:    deadline,
		})
	}
	if err != nil {
		return d.fail(log, name, err, msgSaveProject, msgSaveProject)
	}

	return d.ok(name, Outcome{
		Close:  []view.ModalKind{view.ModalProject},
		Reload: []Target{ReloadProjects},
	})
}

// parseDeadline reads a local datetime-local value; "" means no deadline.
func (d *Dispatcher) parseDeadline(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	t, err := time.ParseInLocation(deadlineLayout, s, d.loc)
	if err != nil {
		return nil, err
	}
	t = t.UTC()
	return &t, nil
}

func (d *Dispatcher) DeleteProject(ctx context.Context, projectId int64) Outcome {
	const op = "ui.action.DeleteProject"
	const name = "delete_project"

	log := d.log.With(slog.String("op", op), slog.Int64("project_id", projectId))

	if err := d.backend.DeleteProject(ctx, projectId); err != nil {
		return d.fail(log, name, err, "刪除項目時出錯", "刪除項目時出錯")
	}

	return d.ok(name, Outcome{Reload: []Target{ReloadProjects}})
}
