package models

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gabriel-vasile/mimetype"
)

// IssueCategory enum
type IssueCategory string

const (
	Pothole        IssueCategory = "Pothole"
	StreetlightOut IssueCategory = "Streetlight Out"
	Sanitation     IssueCategory = "Sanitation"
	Vandalism      IssueCategory = "Vandalism"
	Other          IssueCategory = "Other"
)

// Categories lists every category the backend accepts, in display order.
var Categories = []IssueCategory{Pothole, StreetlightOut, Sanitation, Vandalism, Other}

// DefaultCategory is the category a fresh draft starts with.
const DefaultCategory = Pothole

// Valid reports whether c is one of the fixed categories.
func (c IssueCategory) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// IssueStatus enum
type IssueStatus string

const (
	Pending    IssueStatus = "PENDING"
	InProgress IssueStatus = "IN_PROGRESS"
	Resolved   IssueStatus = "RESOLVED"
)

// Statuses lists the triage states in lifecycle order.
var Statuses = []IssueStatus{Pending, InProgress, Resolved}

// ParseStatus accepts the wire form of a status.
func ParseStatus(s string) (IssueStatus, error) {
	for _, known := range Statuses {
		if IssueStatus(s) == known {
			return known, nil
		}
	}
	return "", fmt.Errorf("invalid status %q (want PENDING, IN_PROGRESS or RESOLVED)", s)
}

// MaxAttachmentSize is the largest photo a citizen may attach (5 MiB).
const MaxAttachmentSize int64 = 5 * 1024 * 1024

// ErrFileTooLarge is returned when a selected file exceeds MaxAttachmentSize.
var ErrFileTooLarge = errors.New("File is too large! (Max 5MB)")

// AttachedFile is a photo staged for upload with a draft.
type AttachedFile struct {
	Name        string
	ContentType string
	Size        int64
	Data        []byte
}

// Location is a latitude/longitude pair.
type Location struct {
	Latitude  float64 `json:"latitude" yaml:"latitude"`
	Longitude float64 `json:"longitude" yaml:"longitude"`
}

// IssueDraft is the not-yet-submitted issue a citizen is filling in.
type IssueDraft struct {
	Title       string        `validate:"required"`
	Description string        `validate:"required"`
	Category    IssueCategory `validate:"required,issue_category"`
	File        *AttachedFile
}

// NewDraft returns a draft holding the empty defaults.
func NewDraft() *IssueDraft {
	d := &IssueDraft{}
	d.Reset()
	return d
}

// Reset clears the draft back to its empty defaults.
func (d *IssueDraft) Reset() {
	d.Title = ""
	d.Description = ""
	d.Category = DefaultCategory
	d.File = nil
}

// AttachFile stages f on the draft. Oversized files are rejected and leave
// the draft without a file.
func (d *IssueDraft) AttachFile(f *AttachedFile) error {
	if f == nil {
		d.File = nil
		return nil
	}
	size := f.Size
	if int64(len(f.Data)) > size {
		size = int64(len(f.Data))
	}
	if size > MaxAttachmentSize {
		d.File = nil
		return ErrFileTooLarge
	}
	d.File = f
	return nil
}

// LoadAttachment reads a photo from disk. The size limit is checked before
// the file is read.
func LoadAttachment(path string) (*AttachedFile, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat attachment: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("attachment %s is a directory", path)
	}
	if info.Size() > MaxAttachmentSize {
		return nil, ErrFileTooLarge
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read attachment: %w", err)
	}

	return &AttachedFile{
		Name:        filepath.Base(path),
		ContentType: mimetype.Detect(data).String(),
		Size:        int64(len(data)),
		Data:        data,
	}, nil
}

// UploadResult is the web path the file store returns for an upload.
type UploadResult struct {
	URL string `json:"url"`
}

// IssueRequest is the body of POST /issues.
type IssueRequest struct {
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Category    IssueCategory `json:"category"`
	ImageURL    *string       `json:"imageUrl"`
	Latitude    float64       `json:"latitude"`
	Longitude   float64       `json:"longitude"`
}

// Issue is the server-side record of a reported issue
type Issue struct {
	ID                  int64         `json:"id"`
	Title               string        `json:"title"`
	Description         string        `json:"description"`
	Category            IssueCategory `json:"category"`
	Status              IssueStatus   `json:"status"`
	ImageURL            *string       `json:"imageUrl,omitempty"`
	Latitude            *float64      `json:"latitude,omitempty"`
	Longitude           *float64      `json:"longitude,omitempty"`
	SubmittedByUsername string        `json:"submittedByUsername,omitempty"`
	CreatedAt           time.Time     `json:"createdAt"`
}

// StatusUpdate is the body of PUT /admin/issues/{id}/status.
type StatusUpdate struct {
	Status IssueStatus `json:"status"`
}
