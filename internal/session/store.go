// Package session is the single source of truth, within one client
// process, for "am I authenticated" and "who am I, last known". It holds
// only the bearer token and a cached profile; no network access.
package session

import (
	"sync"

	"github.com/motortrust/motortrust-go/internal/domain"
)

// Store persists an authentication token and a cached user profile.
// Implementations must tolerate a corrupt backing medium: reads return
// absence, never an error.
type Store interface {
	SetToken(token string)
	// Token returns the stored bearer token and whether one is present.
	Token() (string, bool)
	SetUser(user *domain.User)
	// User returns the cached profile, or nil if none is stored or the
	// stored bytes are unreadable.
	User() *domain.User
	// Clear removes both the token and the cached user. Logout must not
	// leave a stale identity behind.
	Clear()
}

// IsAuthenticated is a token presence check only — no expiry or
// signature validation happens client-side.
func IsAuthenticated(s Store) bool {
	_, ok := s.Token()
	return ok
}

// MemStore is an in-memory Store, used by tests and by callers that do
// not want sessions surviving the process.
type MemStore struct {
	mu    sync.Mutex
	token string
	user  *domain.User
}

// NewMemStore creates an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{}
}

func (m *MemStore) SetToken(token string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = token
}

func (m *MemStore) Token() (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token, m.token != ""
}

func (m *MemStore) SetUser(user *domain.User) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.user = user
}

func (m *MemStore) User() *domain.User {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.user
}

func (m *MemStore) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = ""
	m.user = nil
}
