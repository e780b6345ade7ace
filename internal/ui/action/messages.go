package action

import (
	"context"
	"log/slog"
)

// SendMessage posts to the project thread; the messages dialog stays open.
func (d *Dispatcher) SendMessage(ctx context.Context, projectId int64, content string) Outcome {
	const op = "ui.action.SendMessage"
	const name = "send_message"

	log := d.log.With(slog.String("op", op), slog.Int64("project_id", projectId))

	if err := d.backend.SaveMessage(ctx, projectId, content); err != nil {
		return d.fail(log, name, err, "發送訊息時出錯", "發送訊息時出錯")
	}

	return d.ok(name, Outcome{Reload: []Target{ReloadMessages}})
}
