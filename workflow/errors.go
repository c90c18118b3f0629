package workflow

import "errors"

// Stage names the network step a submission failed in.
type Stage string

const (
	StageUpload Stage = "upload"
	StageCreate Stage = "create"
)

var (
	// ErrUpload matches, via errors.Is, any failure during file upload.
	ErrUpload = errors.New("upload failed")
	// ErrCreate matches, via errors.Is, any failure while creating the issue.
	ErrCreate = errors.New("create failed")
)

// ValidationError is a local, pre-network rejection of a draft.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// SubmissionError is a failed upload or create call. Message is displayable
// as-is: it is the backend's message when one was sent, otherwise a generic
// fallback.
type SubmissionError struct {
	Stage   Stage
	Message string
	Err     error
}

func (e *SubmissionError) Error() string {
	return e.Message
}

// Unwrap exposes both the stage sentinel and the underlying cause.
func (e *SubmissionError) Unwrap() []error {
	sentinel := ErrCreate
	if e.Stage == StageUpload {
		sentinel = ErrUpload
	}
	if e.Err == nil {
		return []error{sentinel}
	}
	return []error{sentinel, e.Err}
}
