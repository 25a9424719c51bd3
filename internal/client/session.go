// Package client is a Go client library for the pet health API. It keeps an
// authenticated session on disk, exposes typed calls over the REST contract,
// and provides the derived views the dashboard and profile screens render.
package client

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"pethealth/internal/models"
)

// Session is the persisted authentication state: the bearer token and the
// user it belongs to.
type Session struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

// SessionStore persists a Session as JSON at a fixed path. All methods are
// safe for concurrent use.
type SessionStore struct {
	path string

	mu      sync.Mutex
	current *Session
}

// NewSessionStore returns a store writing to the given path. An empty path
// defaults to pethealth/session.json under the user config dir.
func NewSessionStore(path string) (*SessionStore, error) {
	if path == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			return nil, fmt.Errorf("resolve config dir: %w", err)
		}
		path = filepath.Join(dir, "pethealth", "session.json")
	}
	return &SessionStore{path: path}, nil
}

// Load hydrates the store from disk. A missing file is not an error; the
// store is simply empty.
func (s *SessionStore) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			s.current = nil
			return nil
		}
		return fmt.Errorf("read session: %w", err)
	}

	var session Session
	if err := json.Unmarshal(data, &session); err != nil {
		return fmt.Errorf("decode session: %w", err)
	}
	s.current = &session
	return nil
}

// Save stores the session in memory and on disk.
func (s *SessionStore) Save(session *Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	s.current = session
	return nil
}

// Clear removes both the in-memory and persisted session.
func (s *SessionStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.current = nil
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove session: %w", err)
	}
	return nil
}

// Current returns the loaded session, or nil when logged out.
func (s *SessionStore) Current() *Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Token returns the current bearer token, or "" when logged out.
func (s *SessionStore) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return ""
	}
	return s.current.Token
}
