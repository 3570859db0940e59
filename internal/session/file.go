package session

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/motortrust/motortrust-go/internal/domain"
)

// fileSession is the on-disk shape.
type fileSession struct {
	Token string          `json:"token,omitempty"`
	User  json.RawMessage `json:"user,omitempty"`
}

// FileStore persists the session as a JSON file so it survives across
// process runs. A missing or unreadable file behaves as an empty
// session; writes are best-effort (a read-only disk degrades to an
// in-memory session rather than failing auth flows).
type FileStore struct {
	path string

	mu    sync.Mutex
	token string
	user  *domain.User
}

// DefaultSessionPath returns the session file location under the user's
// config directory.
func DefaultSessionPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "motortrust", "session.json"), nil
}

// NewFileStore loads the session at path. Malformed stored JSON is
// treated as no session, not an error.
func NewFileStore(path string) *FileStore {
	s := &FileStore{path: path}
	s.load()
	return s
}

func (s *FileStore) load() {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		return
	}

	var fs fileSession
	if err := json.Unmarshal(raw, &fs); err != nil {
		return
	}

	s.token = fs.Token
	if len(fs.User) > 0 {
		var u domain.User
		if err := json.Unmarshal(fs.User, &u); err == nil {
			s.user = &u
		}
	}
}

func (s *FileStore) save() {
	fs := fileSession{Token: s.token}
	if s.user != nil {
		if raw, err := json.Marshal(s.user); err == nil {
			fs.User = raw
		}
	}

	raw, err := json.Marshal(fs)
	if err != nil {
		return
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return
	}
	_ = os.WriteFile(s.path, raw, 0o600)
}

func (s *FileStore) SetToken(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	s.save()
}

func (s *FileStore) Token() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token, s.token != ""
}

func (s *FileStore) SetUser(user *domain.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = user
	s.save()
}

func (s *FileStore) User() *domain.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user
}

func (s *FileStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	s.user = nil
	_ = os.Remove(s.path)
}
