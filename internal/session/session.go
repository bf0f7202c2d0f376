// Package session holds the console's auth state. The session object is
// built once at startup and handed to the transport, so there is no
// package-level token that depends on import order.
package session

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

type tokenFile struct {
	Token string `json:"token"`
}

// Session is the bearer-token holder shared by every API module.
// OnUnauthorized fires after the token has been cleared on a 401; the
// console installs a hook that navigates to the login screen when the
// current view is under /admin.
type Session struct {
	mu    sync.RWMutex
	token string
	path  string // empty: in-memory only

	OnUnauthorized func()
}

// New returns an in-memory session.
func New() *Session {
	return &Session{}
}

// Open returns a session persisted at path, loading any saved token.
func Open(path string) (*Session, error) {
	s := &Session{path: path}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return s, nil
		}
		return nil, err
	}
	var tf tokenFile
	if err := json.Unmarshal(data, &tf); err != nil {
		return nil, err
	}
	s.token = strings.TrimSpace(tf.Token)
	return s, nil
}

func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *Session) Authenticated() bool {
	return s.Token() != ""
}

// SetToken stores the token, persisting it when the session is file-backed.
func (s *Session) SetToken(token string) error {
	s.mu.Lock()
	s.token = token
	path := s.path
	s.mu.Unlock()

	if path == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(tokenFile{Token: token}, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

// Clear drops the token and removes the persisted copy.
func (s *Session) Clear() error {
	s.mu.Lock()
	s.token = ""
	path := s.path
	s.mu.Unlock()

	if path == "" {
		return nil
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// Unauthorized is called by the transport after a 401: the token is
// dropped first, then the hook runs.
func (s *Session) Unauthorized() {
	_ = s.Clear()
	if s.OnUnauthorized != nil {
		s.OnUnauthorized()
	}
}
