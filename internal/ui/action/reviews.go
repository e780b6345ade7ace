package action

import (
	"context"
	"log/slog"

	"marketplace_web/internal/models/rating"
	"marketplace_web/internal/ui/view"
)

// SubmitReview rates the counterparty of a closed project. Scores are sent
// as entered.
func (d *Dispatcher) SubmitReview(ctx context.Context, projectId int64, req rating.ReviewRequest) Outcome {
	const op = "ui.action.SubmitReview"
	const name = "submit_review"

	log := d.log.With(slog.String("op", op), slog.Int64("project_id", projectId))

	if err := d.backend.SaveReview(ctx, projectId, req); err != nil {
		return d.fail(log, name, err, "提交失敗，您可能已經評價過此項目。", "發生錯誤")
	}

	return d.ok(name, Outcome{
		Alert:  "評價提交成功！",
		Close:  []view.ModalKind{view.ModalReview},
		Reload: []Target{ReloadProjects},
	})
}
