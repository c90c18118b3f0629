package stubserver

import (
	"sort"
	"sync"

	"civicsync-client/models"

	"golang.org/x/crypto/bcrypt"
)

type user struct {
	ID       int64
	Username string
	Email    string
	Password string
	Role     string
}

func (u *user) HashPassword() error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.Password = string(hashed)
	return nil
}

func (u *user) ComparePassword(candidate string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(candidate))
	return err == nil
}

func (u *user) profile() models.UserProfile {
	return models.UserProfile{ID: u.ID, Username: u.Username, Email: u.Email, Role: u.Role}
}

type mediaFile struct {
	ContentType string
	Data        []byte
}

// store is the in-memory state behind the stub. All methods are safe for
// concurrent use.
type store struct {
	mu          sync.RWMutex
	nextUserID  int64
	nextIssueID int64
	users       map[string]*user
	issues      map[int64]*models.Issue
	media       map[string]mediaFile
}

func newStore() *store {
	return &store{
		users:  make(map[string]*user),
		issues: make(map[int64]*models.Issue),
		media:  make(map[string]mediaFile),
	}
}

func (s *store) userByName(username string) (*user, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[username]
	if !ok {
		return nil, false
	}
	copied := *u
	return &copied, true
}

func (s *store) emailTaken(email, except string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.Email == email && u.Username != except {
			return true
		}
	}
	return false
}

// addUser inserts u and assigns its ID. It returns false if the username
// is taken.
func (s *store) addUser(u *user) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.users[u.Username]; exists {
		return false
	}
	s.nextUserID++
	u.ID = s.nextUserID
	s.users[u.Username] = u
	return true
}

func (s *store) updateEmail(username, email string) (*user, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[username]
	if !ok {
		return nil, false
	}
	u.Email = email
	copied := *u
	return &copied, true
}

func (s *store) deleteUser(username string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[username]; !ok {
		return false
	}
	delete(s.users, username)
	return true
}

func (s *store) addIssue(issue *models.Issue) models.Issue {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextIssueID++
	issue.ID = s.nextIssueID
	s.issues[issue.ID] = issue
	return *issue
}

// listIssues returns issues newest first, optionally only those submitted
// by owner.
func (s *store) listIssues(owner string) []models.Issue {
	s.mu.RLock()
	defer s.mu.RUnlock()
	issues := make([]models.Issue, 0, len(s.issues))
	for _, issue := range s.issues {
		if owner != "" && issue.SubmittedByUsername != owner {
			continue
		}
		issues = append(issues, *issue)
	}
	sort.Slice(issues, func(i, j int) bool {
		if issues[i].CreatedAt.Equal(issues[j].CreatedAt) {
			return issues[i].ID > issues[j].ID
		}
		return issues[i].CreatedAt.After(issues[j].CreatedAt)
	})
	return issues
}

func (s *store) setStatus(id int64, status models.IssueStatus) (models.Issue, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	issue, ok := s.issues[id]
	if !ok {
		return models.Issue{}, false
	}
	issue.Status = status
	return *issue, true
}

// deleteIssue removes the issue and the photo it references.
func (s *store) deleteIssue(id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	issue, ok := s.issues[id]
	if !ok {
		return false
	}
	if issue.ImageURL != nil {
		delete(s.media, mediaName(*issue.ImageURL))
	}
	delete(s.issues, id)
	return true
}

func (s *store) putMedia(name string, f mediaFile) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.media[name] = f
}

func (s *store) getMedia(name string) (mediaFile, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	f, ok := s.media[name]
	return f, ok
}

func (s *store) counts() (users, issues, media int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.users), len(s.issues), len(s.media)
}
