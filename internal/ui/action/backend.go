package action

import (
	"context"
	"io"

	"marketplace_web/internal/models/closure"
	"marketplace_web/internal/models/project"
	"marketplace_web/internal/models/quote"
	"marketplace_web/internal/models/rating"
	"marketplace_web/internal/models/user"
	"marketplace_web/internal/storage/marketplace"
)

type ProjectSaver interface {
	SaveProject(ctx context.Context, req project.ProjectRequest) (int64, error)
	PatchProject(ctx context.Context, projectId int64, req project.ProjectPatchRequest) error
}

type ProjectDeleter interface {
	DeleteProject(ctx context.Context, projectId int64) error
}

type QuoteSubmitter interface {
	SaveQuote(ctx context.Context, projectId int64, req quote.QuoteRequest) (int64, error)
	UploadProposal(ctx context.Context, quoteId int64, filename string, file io.Reader) (int64, error)
}

type DelegateSelector interface {
	SelectDelegate(ctx context.Context, projectId, quoteId int64) error
}

type MessageSender interface {
	SaveMessage(ctx context.Context, projectId int64, content string) error
}

type ClosureHandler interface {
	UploadClosure(ctx context.Context, projectId int64, filename string, file io.Reader) (int, error)
	CloseProject(ctx context.Context, projectId int64, req closure.CloseRequest) error
}

type ReviewSaver interface {
	SaveReview(ctx context.Context, projectId int64, req rating.ReviewRequest) error
}

type Authenticator interface {
	Login(ctx context.Context, req user.LoginRequest) (marketplace.LoginResult, error)
	Register(ctx context.Context, req user.RegisterRequest) (string, error)
}

// Backend is everything the actions write to; *marketplace.Storage
// implements it.
type Backend interface {
	ProjectSaver
	ProjectDeleter
	QuoteSubmitter
	DelegateSelector
	MessageSender
	ClosureHandler
	ReviewSaver
	Authenticator
}
