package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Session holds the admin bearer token between calls. An empty token means
// logged out.
type Session interface {
	Token() string
	SetToken(token string) error
	Clear() error
}

type MemorySession struct {
	mu    sync.RWMutex
	token string
}

func NewMemorySession(token string) *MemorySession {
	return &MemorySession{token: token}
}

func (s *MemorySession) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *MemorySession) SetToken(token string) error {
	s.mu.Lock()
	s.token = token
	s.mu.Unlock()
	return nil
}

func (s *MemorySession) Clear() error {
	return s.SetToken("")
}

// TokenLifetime is how long a stored login stays usable.
const TokenLifetime = 24 * time.Hour

// FileSession keeps the token in a file that expires TokenLifetime after it
// was written.
type FileSession struct {
	mu   sync.Mutex
	path string
	now  func() time.Time
}

type storedToken struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

func NewFileSession(path string) *FileSession {
	return &FileSession{path: path, now: time.Now}
}

func (s *FileSession) Path() string { return s.path }

// Token returns the stored token, or "" when there is none or it expired.
// An expired file is removed.
func (s *FileSession) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		return ""
	}
	var st storedToken
	if err := json.Unmarshal(data, &st); err != nil {
		return ""
	}
	if !s.now().Before(st.ExpiresAt) {
		_ = os.Remove(s.path)
		return ""
	}
	return st.Token
}

func (s *FileSession) SetToken(token string) error {
	if token == "" {
		return s.Clear()
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.Marshal(storedToken{Token: token, ExpiresAt: s.now().Add(TokenLifetime)})
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	return nil
}

func (s *FileSession) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove session: %w", err)
	}
	return nil
}
