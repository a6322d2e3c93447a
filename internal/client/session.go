package client

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"
)

// ErrNoSession means nobody is logged in.
var ErrNoSession = errors.New("no session")

// SessionStore persists the logged-in identity between runs.
type SessionStore interface {
	Load() (*SessionData, error)
	Save(*SessionData) error
	Clear() error
}

type SessionData struct {
	Token string `yaml:"token"`
	User  User   `yaml:"user"`
}

// Session is the explicit auth state shared by the CLI and the TUI.
type Session struct {
	store SessionStore

	mu   sync.RWMutex
	data *SessionData
}

func NewSession(store SessionStore) *Session {
	return &Session{store: store}
}

// Load reads the stored session. A missing one is not an error.
func (s *Session) Load() error {
	d, err := s.store.Load()
	if errors.Is(err, ErrNoSession) {
		return nil
	}
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.data = d
	s.mu.Unlock()
	return nil
}

func (s *Session) Save(token string, u User) error {
	d := &SessionData{Token: token, User: u}
	if err := s.store.Save(d); err != nil {
		return err
	}
	s.mu.Lock()
	s.data = d
	s.mu.Unlock()
	return nil
}

// Clear logs out.
func (s *Session) Clear() error {
	s.mu.Lock()
	s.data = nil
	s.mu.Unlock()
	return s.store.Clear()
}

func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.data == nil {
		return ""
	}
	return s.data.Token
}

func (s *Session) User() (User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.data == nil {
		return User{}, false
	}
	return s.data.User, true
}

// FileStore keeps the session as YAML readable only by the owner.
type FileStore struct {
	Path string
}

// DefaultSessionPath is ~/.config/timbr/session.yaml (or the OS equivalent).
func DefaultSessionPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "timbr", "session.yaml"), nil
}

func (f FileStore) Load() (*SessionData, error) {
	b, err := os.ReadFile(f.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNoSession
	}
	if err != nil {
		return nil, err
	}
	var d SessionData
	if err := yaml.Unmarshal(b, &d); err != nil {
		return nil, fmt.Errorf("parse %s: %w", f.Path, err)
	}
	if d.Token == "" {
		return nil, ErrNoSession
	}
	return &d, nil
}

func (f FileStore) Save(d *SessionData) error {
	b, err := yaml.Marshal(d)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(f.Path), 0o700); err != nil {
		return err
	}
	tmp := f.Path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, f.Path)
}

func (f FileStore) Clear() error {
	err := os.Remove(f.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}
