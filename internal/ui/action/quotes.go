package action

import (
	"context"
	"log/slog"
	"strconv"
	"strings"

	"marketplace_web/internal/models/quote"
	"marketplace_web/internal/ui/view"
)

const (
	msgNoProposal     = "請上傳提案計畫書（PDF格式）"
	msgProposalNotPDF = "提案計畫書必須是PDF格式"
	msgSubmitQuote    = "提交報價時出錯"
	msgUploadProposal = "上傳提案計畫書時出錯"
)

type QuoteForm struct {
	ProjectId int64
	Amount    string
	Message   string
	Proposal  File
}

// SubmitQuote sends the quote and then its proposal. Both requests are
// sequential and the upload only happens once the quote is accepted.
func (d *Dispatcher) SubmitQuote(ctx context.Context, form QuoteForm) Outcome {
	const op = "ui.action.SubmitQuote"
	const name = "submit_quote"

	log := d.log.With(slog.String("op", op), slog.Int64("project_id", form.ProjectId))

	proposal := quote.Proposal{Filename: form.Proposal.Name, Size: form.Proposal.Size}
	if err := d.validate.Struct(proposal); err != nil {
		if failedCheck(err) == "pdf" {
			return d.blocked(name, msgProposalNotPDF)
		}
		return d.blocked(name, msgNoProposal)
	}

	quoteId, err := d.backend.SaveQuote(ctx, form.ProjectId, quote.QuoteRequest{
		Amount:  parseAmount(form.Amount),
		Message: form.Message,
	})
	if err != nil {
		return d.fail(log, name, err, msgSubmitQuote, msgSubmitQuote)
	}

	log = log.With(slog.Int64("quote_id", quoteId))

	if _, err := d.backend.UploadProposal(ctx, quoteId, form.Proposal.Name, form.Proposal.Body); err != nil {
		return d.fail(log, name, err, msgUploadProposal, msgSubmitQuote)
	}

	return d.ok(name, Outcome{
		Alert:  "報價和提案計畫書提交成功！",
		Close:  []view.ModalKind{view.ModalQuote},
		Reload: []Target{ReloadProjects},
	})
}

// parseAmount returns nil for anything that is not a number; the server
// rejects the resulting null.
func parseAmount(s string) *float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return nil
	}
	return &v
}

func (d *Dispatcher) SelectDelegate(ctx context.Context, projectId, quoteId int64) Outcome {
	const op = "ui.action.SelectDelegate"
	const name = "select_delegate"

	log := d.log.With(
		slog.String("op", op),
		slog.Int64("project_id", projectId),
		slog.Int64("quote_id", quoteId),
	)

	if err := d.backend.SelectDelegate(ctx, projectId, quoteId); err != nil {
		return d.fail(log, name, err, "選擇受託人時出錯", "選擇受託人時出錯")
	}

	return d.ok(name, Outcome{
		Alert:  "受託人選擇成功！",
		Close:  []view.ModalKind{view.ModalQuotes},
		Reload: []Target{ReloadProjects},
	})
}
