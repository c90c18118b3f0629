// Package session holds the credential issued by the authentication
// service and persists it between CLI invocations.
package session

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"civicsync-client/models"

	"gopkg.in/yaml.v3"
)

// Session is the signed-in identity. The zero value is unauthenticated.
type Session struct {
	Token    string `yaml:"token"`
	Username string `yaml:"username"`
	Role     string `yaml:"role"`
}

// FromAuth builds a session from a login or register response.
func FromAuth(resp *models.AuthResponse) *Session {
	if resp == nil {
		return &Session{}
	}
	return &Session{Token: resp.Token, Username: resp.Username, Role: resp.Role}
}

// Credential returns the bearer token, or "" when none is held.
// A nil session holds no token.
func (s *Session) Credential() string {
	if s == nil {
		return ""
	}
	return s.Token
}

// Authenticated reports whether a token is held.
func (s *Session) Authenticated() bool {
	return s.Credential() != ""
}

// IsAdmin reports whether the held identity has the admin role.
func (s *Session) IsAdmin() bool {
	return s != nil && s.Role == models.RoleAdmin
}

// Store persists a session as a YAML file readable only by its owner.
type Store struct {
	path string
}

// NewStore returns a store backed by the file at path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the backing file location.
func (s *Store) Path() string {
	return s.path
}

// Load reads the saved session. A missing file yields an empty session.
func (s *Store) Load() (*Session, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return &Session{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read session file: %w", err)
	}

	sess := &Session{}
	if err := yaml.Unmarshal(data, sess); err != nil {
		return nil, fmt.Errorf("failed to parse session file: %w", err)
	}
	return sess, nil
}

// Save writes sess, replacing any previous session.
func (s *Store) Save(sess *Session) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return fmt.Errorf("failed to create session directory: %w", err)
	}

	data, err := yaml.Marshal(sess)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}
	return nil
}

// Clear removes the saved session. Clearing an absent session is not an error.
func (s *Store) Clear() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove session file: %w", err)
	}
	return nil
}
