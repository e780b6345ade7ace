package action

import (
	"context"
	"fmt"
	"log/slog"

	"marketplace_web/internal/models/closure"
)

const msgUploadClosure = "上傳文件時出錯"

// UploadClosure adds a deliverable version. The upload dialog stays open so
// the new version shows up in its history.
func (d *Dispatcher) UploadClosure(ctx context.Context, projectId int64, file File) Outcome {
	const op = "ui.action.UploadClosure"
	const name = "upload_closure"

	log := d.log.With(slog.String("op", op), slog.Int64("project_id", projectId))

	if err := d.validate.Struct(closure.Upload{Filename: file.Name, Size: file.Size}); err != nil {
		return d.blocked(name, "請選擇一個文件")
	}

	version, err := d.backend.UploadClosure(ctx, projectId, file.Name, file.Body)
	if err != nil {
		return d.fail(log, name, err, msgUploadClosure, msgUploadClosure)
	}

	return d.ok(name, Outcome{
		Alert:  fmt.Sprintf("文件上傳成功！版本 %d", version),
		Reload: []Target{ReloadFiles},
	})
}

// CloseProject closes a project directly, without a specific file.
func (d *Dispatcher) CloseProject(ctx context.Context, projectId int64) Outcome {
	const op = "ui.action.CloseProject"
	const name = "close_project"

	log := d.log.With(slog.String("op", op), slog.Int64("project_id", projectId))

	err := d.backend.CloseProject(ctx, projectId, closure.CloseRequest{Action: closure.ActionAccept})
	if err != nil {
		return d.fail(log, name, err, "結案項目時出錯", "結案項目時出錯")
	}

	return d.ok(name, Outcome{
		Alert:  "項目結案成功！",
		Reload: []Target{ReloadProjects},
	})
}

func (d *Dispatcher) AcceptClosure(ctx context.Context, projectId, fileId int64) Outcome {
	return d.review(ctx, "accept_closure", projectId, fileId, closure.ActionAccept, "接受文件時出錯")
}

func (d *Dispatcher) ReturnClosure(ctx context.Context, projectId, fileId int64) Outcome {
	return d.review(ctx, "return_closure", projectId, fileId, closure.ActionReturn, "退回文件時出錯")
}

// review decides on one closure file version. The file list and the project
// list both change.
func (d *Dispatcher) review(ctx context.Context, name string, projectId, fileId int64, action closure.Action, fallback string) Outcome {
	const op = "ui.action.ReviewClosure"

	log := d.log.With(
		slog.String("op", op),
		slog.String("action", string(action)),
		slog.Int64("project_id", projectId),
		slog.Int64("file_id", fileId),
	)

	err := d.backend.CloseProject(ctx, projectId, closure.CloseRequest{Action: action, FileId: &fileId})
	if err != nil {
		return d.fail(log, name, err, fallback, fallback)
	}

	return d.ok(name, Outcome{Reload: []Target{ReloadFiles, ReloadProjects}})
}
