// Package workflow runs the two-step issue submission: an optional photo
// upload followed by the create-issue call that references it.
package workflow

import (
	"context"
	"errors"
	"sync"

	"civicsync-client/api"
	"civicsync-client/logger"
	"civicsync-client/models"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
)

// Phase is the progress of a submission, for display.
type Phase string

const (
	PhaseIdle       Phase = "idle"
	PhaseUploading  Phase = "uploading"
	PhaseSubmitting Phase = "submitting"
	PhaseSucceeded  Phase = "succeeded"
	PhaseFailed     Phase = "failed"
)

// FileUploader stores a photo and returns its web path.
type FileUploader interface {
	UploadFile(ctx context.Context, f *models.AttachedFile) (string, error)
}

// IssueCreator persists a new issue.
type IssueCreator interface {
	CreateIssue(ctx context.Context, req models.IssueRequest) (*models.Issue, error)
}

// DefaultLocation is used until the client can supply a real position.
var DefaultLocation = models.Location{Latitude: 18.5204, Longitude: 73.8567}

// Submitter turns drafts into issues.
type Submitter struct {
	files    FileUploader
	issues   IssueCreator
	location models.Location
	validate *validator.Validate
	log      *logrus.Entry
	observer func(Phase)

	mu    sync.Mutex
	phase Phase
}

// Option configures a Submitter.
type Option func(*Submitter)

// WithLocation sets the coordinates attached to every issue.
func WithLocation(loc models.Location) Option {
	return func(s *Submitter) { s.location = loc }
}

// WithLogger sets the workflow logger.
func WithLogger(l *logrus.Entry) Option {
	return func(s *Submitter) {
		if l != nil {
			s.log = l
		}
	}
}

// WithPhaseObserver registers fn to be called on every phase change.
func WithPhaseObserver(fn func(Phase)) Option {
	return func(s *Submitter) { s.observer = fn }
}

// NewSubmitter builds a Submitter. *api.Client satisfies both collaborators.
func NewSubmitter(files FileUploader, issues IssueCreator, opts ...Option) *Submitter {
	s := &Submitter{
		files:    files,
		issues:   issues,
		location: DefaultLocation,
		validate: newValidator(),
		log:      logger.Discard(),
		phase:    PhaseIdle,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Phase returns the most recent phase.
func (s *Submitter) Phase() Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

func (s *Submitter) setPhase(p Phase) {
	s.mu.Lock()
	s.phase = p
	s.mu.Unlock()

	s.log.WithField("phase", string(p)).Debug("submission phase changed")
	if s.observer != nil {
		s.observer(p)
	}
}

// Submit validates draft, uploads its file if one is attached, then creates
// the issue. On success the draft is reset to its defaults; on any failure
// it is left exactly as it was.
//
// Each call makes at most one upload and one create request, with no
// retries. A failed upload stops before the create call. A failed create
// does not remove a photo that was already uploaded.
func (s *Submitter) Submit(ctx context.Context, draft *models.IssueDraft) (*models.Issue, error) {
	// Every attempt starts from idle; the outcome of a previous call is
	// not carried over.
	s.mu.Lock()
	s.phase = PhaseIdle
	s.mu.Unlock()

	if err := validateDraft(s.validate, draft); err != nil {
		s.log.WithError(err).Debug("draft rejected")
		return nil, err
	}

	var imageURL *string
	if draft.File != nil {
		s.setPhase(PhaseUploading)
		url, err := s.files.UploadFile(ctx, draft.File)
		if err != nil {
			return nil, s.fail(StageUpload, api.OpUpload, err)
		}
		imageURL = &url
	}

	s.setPhase(PhaseSubmitting)
	issue, err := s.issues.CreateIssue(ctx, models.IssueRequest{
		Title:       draft.Title,
		Description: draft.Description,
		Category:    draft.Category,
		ImageURL:    imageURL,
		Latitude:    s.location.Latitude,
		Longitude:   s.location.Longitude,
	})
	if err != nil {
		return nil, s.fail(StageCreate, api.OpCreateIssue, err)
	}
	if issue == nil {
		return nil, s.fail(StageCreate, api.OpCreateIssue, errors.New("backend returned no issue"))
	}

	s.setPhase(PhaseSucceeded)
	s.log.WithFields(logrus.Fields{
		"issue_id":  issue.ID,
		"has_image": imageURL != nil,
	}).Info("issue submitted")

	draft.Reset()
	return issue, nil
}

func (s *Submitter) fail(stage Stage, op api.Op, err error) error {
	msg := api.FallbackMessage(op)
	var apiErr *api.Error
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		msg = apiErr.Message
	}

	s.setPhase(PhaseFailed)
	s.log.WithFields(logrus.Fields{
		"stage": string(stage),
		"error": err.Error(),
	}).Warn("issue submission failed")

	return &SubmissionError{Stage: stage, Message: msg, Err: err}
}
