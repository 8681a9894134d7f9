// Package session holds the bearer credential for the current user.
//
// The credential is an opaque token issued by the login endpoint. It is
// kept in memory and mirrored to a small YAML file so that it survives
// restarts of the client, matching how the hosted web UI keeps its token
// across page reloads. It is never refreshed automatically; expiry is
// detected reactively when the server rejects a request.
package session

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"gopkg.in/yaml.v3"
)

// Session is the process-wide credential holder. The zero value is an
// unauthenticated session with no backing file.
type Session struct {
	mu    sync.RWMutex
	token string
	path  string
}

// sessionFile is the on-disk representation of a saved session.
type sessionFile struct {
	Token   string    `yaml:"token"`
	SavedAt time.Time `yaml:"saved_at"`
}

// New creates a session backed by the file at path. If the file exists and
// holds a token, the session starts authenticated. A missing or unreadable
// file yields an empty session, not an error - a stale session file should
// never prevent the client from starting.
func New(path string) *Session {
	s := &Session{path: path}

	data, err := os.ReadFile(path)
	if err != nil {
		return s
	}

	var f sessionFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return s
	}

	s.token = f.Token
	return s
}

// NewInMemory creates a session with no backing file. Used by tests and by
// callers that do not want persistence.
func NewInMemory() *Session {
	return &Session{}
}

// Token returns the current credential and whether one is present.
func (s *Session) Token() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token, s.token != ""
}

// Authenticated reports whether a credential is present.
func (s *Session) Authenticated() bool {
	_, ok := s.Token()
	return ok
}

// SetToken stores the credential and, when a backing file is configured,
// persists it. Persistence failures are returned but the in-memory token
// is set regardless, so the current process can proceed.
func (s *Session) SetToken(token string) error {
	s.mu.Lock()
	s.token = token
	path := s.path
	s.mu.Unlock()

	if path == "" {
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create session directory: %w", err)
	}

	data, err := yaml.Marshal(&sessionFile{Token: token, SavedAt: time.Now()})
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	// Write to temporary file first (atomic write)
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to save session file: %w", err)
	}

	return nil
}

// Clear destroys the credential, removing the backing file if present.
func (s *Session) Clear() error {
	s.mu.Lock()
	s.token = ""
	path := s.path
	s.mu.Unlock()

	if path == "" {
		return nil
	}

	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove session file: %w", err)
	}

	return nil
}
