package closure

import "marketplace_web/internal/lib/isotime"

type Status string

const (
	StatusPending  Status = "pending"
	StatusAccepted Status = "accepted"
	StatusReturned Status = "returned"
)

type Action string

const (
	ActionAccept Action = "accept"
	ActionReturn Action = "return"
)

type File struct {
	Id               int64         `json:"id"`
	ProjectId        int64         `json:"project_id"`
	Version          int           `json:"version"`
	OriginalFilename string        `json:"original_filename"`
	Filename         string        `json:"filename"`
	Status           Status        `json:"status"`
	UploaderName     string        `json:"uploader_name"`
	CreatedAt        *isotime.Time `json:"created_at"`
}

// DisplayName falls back to the stored name for old records.
func (f File) DisplayName() string {
	switch {
	case f.OriginalFilename != "":
		return f.OriginalFilename
	case f.Filename != "":
		return f.Filename
	}
	return "未知文件"
}

// CloseRequest is the body of POST /api/projects/{id}/close. FileId is
// omitted when closing a project directly.
type CloseRequest struct {
	Action Action `json:"action"`
	FileId *int64 `json:"file_id,omitempty"`
}

// Upload is a closure deliverable chosen for upload.
type Upload struct {
	Filename string `validate:"required"`
	Size     int64
}
