package errors

// HttpError is the JSON error body, shaped like the marketplace backend's
// own failure envelope.
type HttpError struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

func NewHttpError(msg string) HttpError {
	return HttpError{Success: false, Error: msg}
}
