package workflow

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"civicsync-client/api"
	"civicsync-client/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeBackend records calls in order and fails on demand.
type fakeBackend struct {
	calls      []string
	uploadURL  string
	uploadErr  error
	createErr  error
	created    *models.Issue
	lastCreate models.IssueRequest
	uploaded   *models.AttachedFile
}

func (f *fakeBackend) UploadFile(ctx context.Context, file *models.AttachedFile) (string, error) {
	f.calls = append(f.calls, "upload")
	f.uploaded = file
	if f.uploadErr != nil {
		return "", f.uploadErr
	}
	return f.uploadURL, nil
}

func (f *fakeBackend) CreateIssue(ctx context.Context, req models.IssueRequest) (*models.Issue, error) {
	f.calls = append(f.calls, "create")
	f.lastCreate = req
	if f.createErr != nil {
		return nil, f.createErr
	}
	if f.created != nil {
		return f.created, nil
	}
	return &models.Issue{ID: 42, Title: req.Title, Status: models.Pending}, nil
}

func validDraft() *models.IssueDraft {
	return &models.IssueDraft{
		Title:       "Broken light",
		Description: "Pole 12 dark",
		Category:    models.StreetlightOut,
	}
}

func photo() *models.AttachedFile {
	return &models.AttachedFile{Name: "pole.jpg", ContentType: "image/jpeg", Size: 4, Data: []byte("jpeg")}
}

func newTestSubmitter(b *fakeBackend, phases *[]Phase) *Submitter {
	return NewSubmitter(b, b, WithPhaseObserver(func(p Phase) {
		*phases = append(*phases, p)
	}))
}

func TestSubmit_WithoutFile(t *testing.T) {
	backend := &fakeBackend{}
	var phases []Phase
	s := newTestSubmitter(backend, &phases)
	draft := validDraft()

	issue, err := s.Submit(context.Background(), draft)
	require.NoError(t, err)
	assert.Equal(t, int64(42), issue.ID)

	assert.Equal(t, []string{"create"}, backend.calls)
	assert.Nil(t, backend.lastCreate.ImageURL)
	assert.Equal(t, DefaultLocation.Latitude, backend.lastCreate.Latitude)
	assert.Equal(t, DefaultLocation.Longitude, backend.lastCreate.Longitude)
	assert.Equal(t, models.StreetlightOut, backend.lastCreate.Category)

	assert.Equal(t, []Phase{PhaseSubmitting, PhaseSucceeded}, phases)
	assert.Equal(t, PhaseSucceeded, s.Phase())
	assert.Equal(t, models.NewDraft(), draft)
}

func TestSubmit_WithFile(t *testing.T) {
	backend := &fakeBackend{uploadURL: "/media/3f2a.jpg"}
	var phases []Phase
	s := newTestSubmitter(backend, &phases)
	draft := validDraft()
	file := photo()
	require.NoError(t, draft.AttachFile(file))

	_, err := s.Submit(context.Background(), draft)
	require.NoError(t, err)

	assert.Equal(t, []string{"upload", "create"}, backend.calls)
	assert.Same(t, file, backend.uploaded)
	require.NotNil(t, backend.lastCreate.ImageURL)
	assert.Equal(t, "/media/3f2a.jpg", *backend.lastCreate.ImageURL)
	assert.Equal(t, []Phase{PhaseUploading, PhaseSubmitting, PhaseSucceeded}, phases)
	assert.Nil(t, draft.File)
	assert.Equal(t, models.Pothole, draft.Category)
}

func TestSubmit_UploadFailure(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantMessage string
	}{
		{
			name:        "backend message",
			err:         &api.Error{Op: api.OpUpload, StatusCode: 400, Message: "Only image uploads are allowed", Body: &api.ErrorBody{Message: "Only image uploads are allowed"}},
			wantMessage: "Only image uploads are allowed",
		},
		{
			name:        "unclassified error",
			err:         errors.New("connection reset"),
			wantMessage: "File upload failed. Please try again.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			backend := &fakeBackend{uploadErr: tt.err}
			var phases []Phase
			s := newTestSubmitter(backend, &phases)
			draft := validDraft()
			require.NoError(t, draft.AttachFile(photo()))
			before := *draft

			issue, err := s.Submit(context.Background(), draft)
			assert.Nil(t, issue)

			var subErr *SubmissionError
			require.ErrorAs(t, err, &subErr)
			assert.Equal(t, StageUpload, subErr.Stage)
			assert.Equal(t, tt.wantMessage, subErr.Error())
			assert.ErrorIs(t, err, ErrUpload)
			assert.NotErrorIs(t, err, ErrCreate)
			assert.ErrorIs(t, err, tt.err)

			assert.Equal(t, []string{"upload"}, backend.calls)
			assert.Equal(t, []Phase{PhaseUploading, PhaseFailed}, phases)
			assert.Equal(t, before, *draft)
		})
	}
}

func TestSubmit_CreateFailureAfterUpload(t *testing.T) {
	backend := &fakeBackend{
		uploadURL: "/media/orphan.jpg",
		createErr: &api.Error{Op: api.OpCreateIssue, StatusCode: 500, Message: api.FallbackMessage(api.OpCreateIssue)},
	}
	var phases []Phase
	s := newTestSubmitter(backend, &phases)
	draft := validDraft()
	require.NoError(t, draft.AttachFile(photo()))
	before := *draft

	_, err := s.Submit(context.Background(), draft)

	var subErr *SubmissionError
	require.ErrorAs(t, err, &subErr)
	assert.Equal(t, StageCreate, subErr.Stage)
	assert.Equal(t, "Failed to submit issue.", subErr.Message)
	assert.ErrorIs(t, err, ErrCreate)
	assert.Equal(t, []string{"upload", "create"}, backend.calls)
	assert.Equal(t, []Phase{PhaseUploading, PhaseSubmitting, PhaseFailed}, phases)
	assert.Equal(t, before, *draft)

	// A retry starts over and uploads the photo again.
	backend.createErr = nil
	backend.uploadURL = "/media/second.jpg"
	_, err = s.Submit(context.Background(), draft)
	require.NoError(t, err)
	assert.Equal(t, []string{"upload", "create", "upload", "create"}, backend.calls)
	assert.Equal(t, "/media/second.jpg", *backend.lastCreate.ImageURL)
}

func TestSubmit_NilIssue(t *testing.T) {
	backend := &nilCreator{}
	s := NewSubmitter(backend, backend)

	_, err := s.Submit(context.Background(), validDraft())
	assert.ErrorIs(t, err, ErrCreate)
	assert.Equal(t, PhaseFailed, s.Phase())
}

type nilCreator struct{ fakeBackend }

func (n *nilCreator) CreateIssue(ctx context.Context, req models.IssueRequest) (*models.Issue, error) {
	return nil, nil
}

func TestSubmit_Validation(t *testing.T) {
	tests := []struct {
		name      string
		modify    func(d *models.IssueDraft)
		wantField string
	}{
		{name: "empty title", modify: func(d *models.IssueDraft) { d.Title = "" }, wantField: "Title"},
		{name: "blank title", modify: func(d *models.IssueDraft) { d.Title = "   " }, wantField: "Title"},
		{name: "empty description", modify: func(d *models.IssueDraft) { d.Description = "" }, wantField: "Description"},
		{name: "empty category", modify: func(d *models.IssueDraft) { d.Category = "" }, wantField: "Category"},
		{name: "unknown category", modify: func(d *models.IssueDraft) { d.Category = "Graffiti" }, wantField: "Category"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			backend := &fakeBackend{}
			var phases []Phase
			s := newTestSubmitter(backend, &phases)
			draft := validDraft()
			tt.modify(draft)
			before := *draft

			_, err := s.Submit(context.Background(), draft)

			var valErr *ValidationError
			require.ErrorAs(t, err, &valErr)
			assert.Equal(t, tt.wantField, valErr.Field)
			assert.Empty(t, backend.calls)
			assert.Empty(t, phases)
			assert.Equal(t, PhaseIdle, s.Phase())
			assert.Equal(t, before, *draft)
		})
	}

	t.Run("nil draft", func(t *testing.T) {
		backend := &fakeBackend{}
		_, err := NewSubmitter(backend, backend).Submit(context.Background(), nil)
		var valErr *ValidationError
		require.ErrorAs(t, err, &valErr)
		assert.Empty(t, backend.calls)
	})
}

func TestSubmit_CustomLocation(t *testing.T) {
	backend := &fakeBackend{}
	s := NewSubmitter(backend, backend, WithLocation(models.Location{Latitude: 51.5, Longitude: -0.12}))

	_, err := s.Submit(context.Background(), validDraft())
	require.NoError(t, err)
	assert.Equal(t, 51.5, backend.lastCreate.Latitude)
	assert.Equal(t, -0.12, backend.lastCreate.Longitude)
}

// Over a real HTTP client the create call must carry the uploaded path and
// the bearer credential.
func TestSubmit_OverHTTP(t *testing.T) {
	var paths, auths []string
	var createBody string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		auths = append(auths, r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/files/upload":
			w.Write([]byte(`{"url":"/media/abc.png"}`))
		case "/issues":
			body, _ := io.ReadAll(r.Body)
			createBody = string(body)
			w.WriteHeader(http.StatusCreated)
			w.Write([]byte(`{"id":42,"status":"PENDING","title":"Broken light","imageUrl":"/media/abc.png"}`))
		}
	}))
	defer srv.Close()

	client := api.NewClient(srv.URL, staticToken("tok-1"))
	s := NewSubmitter(client, client)
	draft := validDraft()
	require.NoError(t, draft.AttachFile(photo()))

	issue, err := s.Submit(context.Background(), draft)
	require.NoError(t, err)
	assert.Equal(t, int64(42), issue.ID)
	assert.Equal(t, []string{"/files/upload", "/issues"}, paths)
	assert.Equal(t, []string{"Bearer tok-1", "Bearer tok-1"}, auths)
	assert.Contains(t, createBody, `"imageUrl":"/media/abc.png"`)
}

func TestSubmit_EmptyCreateResponseOverHTTP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	client := api.NewClient(srv.URL, staticToken("tok-1"))
	s := NewSubmitter(client, client)
	draft := validDraft()
	before := *draft

	issue, err := s.Submit(context.Background(), draft)
	assert.Nil(t, issue)

	var subErr *SubmissionError
	require.ErrorAs(t, err, &subErr)
	assert.Equal(t, StageCreate, subErr.Stage)
	assert.Equal(t, "Failed to submit issue.", subErr.Message)
	assert.Equal(t, PhaseFailed, s.Phase())
	assert.Equal(t, before, *draft)
}

func TestSubmit_PhaseStartsIdleEachAttempt(t *testing.T) {
	backend := &fakeBackend{}
	s := NewSubmitter(backend, backend)

	_, err := s.Submit(context.Background(), validDraft())
	require.NoError(t, err)
	require.Equal(t, PhaseSucceeded, s.Phase())

	draft := validDraft()
	draft.Title = ""
	_, err = s.Submit(context.Background(), draft)
	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)
	assert.Equal(t, PhaseIdle, s.Phase())
	assert.Equal(t, []string{"create"}, backend.calls)
}

type staticToken string

func (t staticToken) Credential() string { return string(t) }
