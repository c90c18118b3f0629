package api

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// Op names a backend call. Each op carries the message shown to the user
// when the backend does not supply one.
type Op string

const (
	OpUpload        Op = "upload file"
	OpCreateIssue   Op = "create issue"
	OpMyIssues      Op = "list my issues"
	OpAllIssues     Op = "list all issues"
	OpUpdateStatus  Op = "update issue status"
	OpDeleteIssue   Op = "delete issue"
	OpLogin         Op = "login"
	OpRegister      Op = "register"
	OpProfile       Op = "get profile"
	OpUpdateProfile Op = "update profile"
	OpDeleteAccount Op = "delete account"
)

var fallbackMessages = map[Op]string{
	OpUpload:        "File upload failed. Please try again.",
	OpCreateIssue:   "Failed to submit issue.",
	OpMyIssues:      "Could not load your issues.",
	OpAllIssues:     "Could not load issues. Please try again later.",
	OpUpdateStatus:  "Failed to update status.",
	OpDeleteIssue:   "Failed to delete issue.",
	OpLogin:         "Login failed. Please check your network and try again.",
	OpRegister:      "Registration failed. Please check your network and try again.",
	OpProfile:       "Could not load your profile.",
	OpUpdateProfile: "Failed to update profile.",
	OpDeleteAccount: "Failed to delete account.",
}

// FallbackMessage returns the generic message for op.
func FallbackMessage(op Op) string {
	if msg, ok := fallbackMessages[op]; ok {
		return msg
	}
	return "Request failed. Please try again."
}

// ErrorBody is the error document the backend writes on a non-2xx response.
type ErrorBody struct {
	Timestamp string `json:"timestamp,omitempty"`
	Status    int    `json:"status,omitempty"`
	Error     string `json:"error,omitempty"`
	Message   string `json:"message,omitempty"`
	Path      string `json:"path,omitempty"`
}

// Error is returned by every Client call that fails. Message is always
// safe to show to the user.
type Error struct {
	Op         Op
	StatusCode int // 0 when no response was received
	Message    string
	Body       *ErrorBody
	Err        error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// IsTransport reports whether the backend supplied no message and the
// fallback was used instead.
func (e *Error) IsTransport() bool {
	return e.Body == nil || e.Body.Message == ""
}

// Unauthorized reports whether the backend rejected the credential.
func (e *Error) Unauthorized() bool {
	return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
}

func transportError(op Op, err error) *Error {
	return &Error{Op: op, Message: FallbackMessage(op), Err: err}
}

// statusError builds the error for a non-2xx response, preferring the
// backend's message field.
func statusError(op Op, status int, raw []byte) *Error {
	e := &Error{
		Op:         op,
		StatusCode: status,
		Message:    FallbackMessage(op),
		Err:        fmt.Errorf("HTTP %d %s", status, http.StatusText(status)),
	}

	var body ErrorBody
	if len(raw) > 0 && json.Unmarshal(raw, &body) == nil {
		e.Body = &body
		if body.Message != "" {
			e.Message = body.Message
		}
	}
	return e
}
