package action

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"marketplace_web/internal/models/closure"
	"marketplace_web/internal/models/project"
	"marketplace_web/internal/models/quote"
	"marketplace_web/internal/models/rating"
	"marketplace_web/internal/models/user"
	"marketplace_web/internal/storage/marketplace"
	"marketplace_web/internal/ui/view"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBackend struct {
	calls []string

	created  *project.ProjectRequest
	patched  *project.ProjectPatchRequest
	quoteReq *quote.QuoteRequest
	uploaded string
	closeReq *closure.CloseRequest

	// errs maps a method name to the error it returns.
	errs map[string]error
}

func (f *fakeBackend) call(name string) error {
	f.calls = append(f.calls, name)
	return f.errs[name]
}

func (f *fakeBackend) SaveProject(ctx context.Context, req project.ProjectRequest) (int64, error) {
	f.created = &req
	return 11, f.call("SaveProject")
}

func (f *fakeBackend) PatchProject(ctx context.Context, projectId int64, req project.ProjectPatchRequest) error {
	f.patched = &req
	return f.call("PatchProject")
}

func (f *fakeBackend) DeleteProject(ctx context.Context, projectId int64) error {
	return f.call("DeleteProject")
}

func (f *fakeBackend) SaveQuote(ctx context.Context, projectId int64, req quote.QuoteRequest) (int64, error) {
	f.quoteReq = &req
	return 21, f.call("SaveQuote")
}

func (f *fakeBackend) UploadProposal(ctx context.Context, quoteId int64, filename string, file io.Reader) (int64, error) {
	b, _ := io.ReadAll(file)
	f.uploaded = fmt.Sprintf("%d:%s:%s", quoteId, filename, b)
	return 31, f.call("UploadProposal")
}

func (f *fakeBackend) SelectDelegate(ctx context.Context, projectId, quoteId int64) error {
	return f.call("SelectDelegate")
}

func (f *fakeBackend) SaveMessage(ctx context.Context, projectId int64, content string) error {
	return f.call("SaveMessage")
}

func (f *fakeBackend) UploadClosure(ctx context.Context, projectId int64, filename string, file io.Reader) (int, error) {
	return 3, f.call("UploadClosure")
}

func (f *fakeBackend) CloseProject(ctx context.Context, projectId int64, req closure.CloseRequest) error {
	f.closeReq = &req
	return f.call("CloseProject")
}

func (f *fakeBackend) SaveReview(ctx context.Context, projectId int64, req rating.ReviewRequest) error {
	return f.call("SaveReview")
}

func (f *fakeBackend) Login(ctx context.Context, req user.LoginRequest) (marketplace.LoginResult, error) {
	if err := f.call("Login"); err != nil {
		return marketplace.LoginResult{}, err
	}
	return marketplace.LoginResult{User: user.User{Role: user.RoleRecipient}, Message: "登入成功"}, nil
}

func (f *fakeBackend) Register(ctx context.Context, req user.RegisterRequest) (string, error) {
	return "註冊成功", f.call("Register")
}

func newDispatcher(t *testing.T, b *fakeBackend) *Dispatcher {
	t.Helper()
	loc := time.FixedZone("CST", 8*60*60)
	return New(slog.New(slog.NewTextHandler(io.Discard, nil)), b, loc)
}

func rejected(msg string) error {
	return fmt.Errorf("storage: %w", &marketplace.AppError{Status: 400, Message: msg})
}

func transport() error {
	return fmt.Errorf("storage: %w: dial tcp: refused", marketplace.ErrTransport)
}

func pdf(name string) File {
	return File{Name: name, Size: 4, Body: strings.NewReader("%PDF")}
}

func TestSaveProject_CreateWithEmptyTitle(t *testing.T) {
	b := &fakeBackend{errs: map[string]error{"SaveProject": rejected("標題不能為空")}}
	d := newDispatcher(t, b)

	out := d.SaveProject(context.Background(), ProjectForm{Title: ""})

	assert.Equal(t, []string{"SaveProject"}, b.calls)
	assert.False(t, out.OK)
	assert.Equal(t, "標題不能為空", out.Alert)
}

func TestSaveProject_DeadlineToUTC(t *testing.T) {
	b := &fakeBackend{}
	d := newDispatcher(t, b)

	out := d.SaveProject(context.Background(), ProjectForm{Title: "Logo", Deadline: "2024-05-01T18:30"})

	require.True(t, out.OK)
	require.NotNil(t, b.created.Deadline)
	assert.Equal(t, time.Date(2024, 5, 1, 10, 30, 0, 0, time.UTC), *b.created.Deadline)
	assert.Equal(t, []view.ModalKind{view.ModalProject}, out.Close)
	assert.Equal(t, []Target{ReloadProjects}, out.Reload)
}

func TestSaveProject_EditClearsDeadline(t *testing.T) {
	b := &fakeBackend{}
	d := newDispatcher(t, b)

	out := d.SaveProject(context.Background(), ProjectForm{Id: 4, Title: "Logo"})

	require.True(t, out.OK)
	assert.Equal(t, []string{"PatchProject"}, b.calls)
	assert.Nil(t, b.patched.Deadline)
}

func TestSaveProject_Failures(t *testing.T) {
	b := &fakeBackend{errs: map[string]error{"SaveProject": rejected("")}}
	out := newDispatcher(t, b).SaveProject(context.Background(), ProjectForm{Title: "x"})
	assert.Equal(t, "保存項目時出錯", out.Alert)

	b = &fakeBackend{errs: map[string]error{"SaveProject": transport()}}
	out = newDispatcher(t, b).SaveProject(context.Background(), ProjectForm{Title: "x"})
	assert.Equal(t, "保存項目時出錯", out.Alert)

	b = &fakeBackend{errs: map[string]error{"PatchProject": transport()}}
	out = newDispatcher(t, b).SaveProject(context.Background(), ProjectForm{Id: 4, Title: "x"})
	assert.Equal(t, "保存項目時出錯", out.Alert)

	b = &fakeBackend{}
	out = newDispatcher(t, b).SaveProject(context.Background(), ProjectForm{Title: "x", Deadline: "tomorrow"})
	assert.False(t, out.OK)
	assert.Empty(t, b.calls)
	assert.Equal(t, "保存項目時出錯：截止期限格式無效", out.Alert)
}

func TestDeleteProject(t *testing.T) {
	b := &fakeBackend{}
	out := newDispatcher(t, b).DeleteProject(context.Background(), 4)
	assert.True(t, out.OK)
	assert.Equal(t, []Target{ReloadProjects}, out.Reload)

	b = &fakeBackend{errs: map[string]error{"DeleteProject": transport()}}
	out = newDispatcher(t, b).DeleteProject(context.Background(), 4)
	assert.Equal(t, "刪除項目時出錯", out.Alert)
}

func TestSubmitQuote_BlockedWithoutProposal(t *testing.T) {
	cases := []struct {
		file File
		want string
	}{
		{File{}, "請上傳提案計畫書（PDF格式）"},
		{File{Name: "plan.docx", Body: strings.NewReader("x")}, "提案計畫書必須是PDF格式"},
	}
	for _, tc := range cases {
		b := &fakeBackend{}
		out := newDispatcher(t, b).SubmitQuote(context.Background(), QuoteForm{ProjectId: 4, Amount: "100", Proposal: tc.file})

		assert.False(t, out.OK)
		assert.Equal(t, tc.want, out.Alert)
		assert.Empty(t, b.calls)
	}
}

func TestSubmitQuote_UppercaseExtension(t *testing.T) {
	b := &fakeBackend{}
	out := newDispatcher(t, b).SubmitQuote(context.Background(), QuoteForm{ProjectId: 4, Amount: "1", Proposal: pdf("PLAN.PDF")})
	assert.True(t, out.OK)
}

func TestSubmitQuote_RejectedQuoteSkipsUpload(t *testing.T) {
	b := &fakeBackend{errs: map[string]error{"SaveQuote": rejected("您已經提交過報價")}}
	out := newDispatcher(t, b).SubmitQuote(context.Background(), QuoteForm{ProjectId: 4, Amount: "100", Proposal: pdf("plan.pdf")})

	assert.Equal(t, []string{"SaveQuote"}, b.calls)
	assert.Equal(t, "您已經提交過報價", out.Alert)
	assert.Empty(t, b.uploaded)
}

func TestSubmitQuote_Success(t *testing.T) {
	b := &fakeBackend{}
	out := newDispatcher(t, b).SubmitQuote(context.Background(), QuoteForm{
		ProjectId: 4, Amount: " 1500.5 ", Message: "hi", Proposal: pdf("plan.pdf"),
	})

	require.True(t, out.OK)
	assert.Equal(t, []string{"SaveQuote", "UploadProposal"}, b.calls)
	require.NotNil(t, b.quoteReq.Amount)
	assert.Equal(t, 1500.5, *b.quoteReq.Amount)
	assert.Equal(t, "21:plan.pdf:%PDF", b.uploaded)
	assert.Equal(t, "報價和提案計畫書提交成功！", out.Alert)
	assert.Equal(t, []view.ModalKind{view.ModalQuote}, out.Close)
}

func TestSubmitQuote_InvalidAmountSentAsNull(t *testing.T) {
	b := &fakeBackend{errs: map[string]error{"SaveQuote": rejected("")}}
	out := newDispatcher(t, b).SubmitQuote(context.Background(), QuoteForm{ProjectId: 4, Amount: "abc", Proposal: pdf("p.pdf")})

	assert.Nil(t, b.quoteReq.Amount)
	assert.Equal(t, "提交報價時出錯", out.Alert)
}

func TestSubmitQuote_UploadFailure(t *testing.T) {
	b := &fakeBackend{errs: map[string]error{"UploadProposal": rejected("")}}
	out := newDispatcher(t, b).SubmitQuote(context.Background(), QuoteForm{ProjectId: 4, Amount: "1", Proposal: pdf("p.pdf")})
	assert.Equal(t, "上傳提案計畫書時出錯", out.Alert)
	assert.Empty(t, out.Close)

	b = &fakeBackend{errs: map[string]error{"UploadProposal": transport()}}
	out = newDispatcher(t, b).SubmitQuote(context.Background(), QuoteForm{ProjectId: 4, Amount: "1", Proposal: pdf("p.pdf")})
	assert.Equal(t, "提交報價時出錯", out.Alert)
}

func TestSelectDelegate(t *testing.T) {
	b := &fakeBackend{}
	out := newDispatcher(t, b).SelectDelegate(context.Background(), 4, 9)

	require.True(t, out.OK)
	assert.Equal(t, "受託人選擇成功！", out.Alert)
	assert.Equal(t, []view.ModalKind{view.ModalQuotes}, out.Close)
	assert.Equal(t, []Target{ReloadProjects}, out.Reload)
}

func TestSendMessage(t *testing.T) {
	b := &fakeBackend{}
	out := newDispatcher(t, b).SendMessage(context.Background(), 4, "hello")
	assert.True(t, out.OK)
	assert.Empty(t, out.Close)
	assert.Equal(t, []Target{ReloadMessages}, out.Reload)

	b = &fakeBackend{errs: map[string]error{"SaveMessage": rejected("")}}
	out = newDispatcher(t, b).SendMessage(context.Background(), 4, "hello")
	assert.Equal(t, "發送訊息時出錯", out.Alert)
}

func TestUploadClosure(t *testing.T) {
	b := &fakeBackend{}
	out := newDispatcher(t, b).UploadClosure(context.Background(), 4, File{})
	assert.Equal(t, "請選擇一個文件", out.Alert)
	assert.Empty(t, b.calls)

	out = newDispatcher(t, b).UploadClosure(context.Background(), 4, File{Name: "final.zip", Body: strings.NewReader("z")})
	require.True(t, out.OK)
	assert.Equal(t, "文件上傳成功！版本 3", out.Alert)
	assert.Equal(t, []Target{ReloadFiles}, out.Reload)

	b = &fakeBackend{errs: map[string]error{"UploadClosure": rejected("項目未進行中")}}
	out = newDispatcher(t, b).UploadClosure(context.Background(), 4, File{Name: "final.zip", Body: strings.NewReader("z")})
	assert.Equal(t, "項目未進行中", out.Alert)
}

func TestCloseProject(t *testing.T) {
	b := &fakeBackend{}
	out := newDispatcher(t, b).CloseProject(context.Background(), 4)

	require.True(t, out.OK)
	assert.Equal(t, "項目結案成功！", out.Alert)
	assert.Equal(t, closure.ActionAccept, b.closeReq.Action)
	assert.Nil(t, b.closeReq.FileId)
}

func TestAcceptClosure_ReloadsFilesAndProjects(t *testing.T) {
	b := &fakeBackend{}
	out := newDispatcher(t, b).AcceptClosure(context.Background(), 4, 7)

	require.True(t, out.OK)
	assert.ElementsMatch(t, []Target{ReloadFiles, ReloadProjects}, out.Reload)
	assert.Equal(t, closure.ActionAccept, b.closeReq.Action)
	require.NotNil(t, b.closeReq.FileId)
	assert.Equal(t, int64(7), *b.closeReq.FileId)
}

func TestReturnClosure(t *testing.T) {
	b := &fakeBackend{}
	out := newDispatcher(t, b).ReturnClosure(context.Background(), 4, 7)
	require.True(t, out.OK)
	assert.Equal(t, closure.ActionReturn, b.closeReq.Action)

	b = &fakeBackend{errs: map[string]error{"CloseProject": transport()}}
	out = newDispatcher(t, b).ReturnClosure(context.Background(), 4, 7)
	assert.Equal(t, "退回文件時出錯", out.Alert)
	assert.Empty(t, out.Reload)
}

func TestSubmitReview(t *testing.T) {
	req := rating.ReviewRequest{Dimension1: "5", Dimension2: "4", Dimension3: "3", Comment: "it's fine"}

	b := &fakeBackend{}
	out := newDispatcher(t, b).SubmitReview(context.Background(), 4, req)
	require.True(t, out.OK)
	assert.Equal(t, "評價提交成功！", out.Alert)
	assert.Equal(t, []view.ModalKind{view.ModalReview}, out.Close)

	b = &fakeBackend{errs: map[string]error{"SaveReview": rejected("")}}
	out = newDispatcher(t, b).SubmitReview(context.Background(), 4, req)
	assert.Equal(t, "提交失敗，您可能已經評價過此項目。", out.Alert)

	b = &fakeBackend{errs: map[string]error{"SaveReview": transport()}}
	out = newDispatcher(t, b).SubmitReview(context.Background(), 4, req)
	assert.Equal(t, "發生錯誤", out.Alert)
}

func TestLoginAndRegister(t *testing.T) {
	b := &fakeBackend{}
	res, out := newDispatcher(t, b).Login(context.Background(), user.LoginRequest{Username: "amy"})
	require.True(t, out.OK)
	assert.Equal(t, user.RoleRecipient, res.User.Role)
	assert.Equal(t, "登入成功", out.Alert)

	b = &fakeBackend{errs: map[string]error{"Login": rejected("帳號或密碼錯誤")}}
	_, out = newDispatcher(t, b).Login(context.Background(), user.LoginRequest{Username: "amy"})
	assert.False(t, out.OK)
	assert.Equal(t, "帳號或密碼錯誤", out.Alert)

	b = &fakeBackend{errs: map[string]error{"Register": transport()}}
	out = newDispatcher(t, b).Register(context.Background(), user.RegisterRequest{Username: "amy"})
	assert.Equal(t, "註冊失敗，請重試。", out.Alert)
}

func TestOutcome_Apply(t *testing.T) {
	st := view.State{Role: view.Delegator, View: view.Projects}
	st = st.Open(view.Modal{Kind: view.ModalQuotes, ID: 4})
	st = st.Open(view.Modal{Kind: view.ModalMessages, ID: 5})
	st = st.Open(view.Modal{Kind: view.ConfirmSelect, ID: 4, Ref: 9})

	got := Outcome{Alert: "受託人選擇成功！", Close: []view.ModalKind{view.ModalQuotes}}.Apply(st)

	assert.Equal(t, []view.Modal{{Kind: view.ModalMessages, ID: 5}}, got.Modals)
	assert.Equal(t, "受託人選擇成功！", got.Alert)
}
