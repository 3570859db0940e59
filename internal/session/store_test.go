package session_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/motortrust/motortrust-go/internal/domain"
	"github.com/motortrust/motortrust-go/internal/session"
)

func TestMemStore_TokenRoundTrip(t *testing.T) {
	s := session.NewMemStore()

	s.SetToken("abc")
	tok, ok := s.Token()
	if !ok || tok != "abc" {
		t.Fatalf("expected token 'abc', got %q (present=%v)", tok, ok)
	}

	s.Clear()
	if _, ok := s.Token(); ok {
		t.Fatal("expected no token after Clear")
	}
}

func TestMemStore_ClearRemovesUser(t *testing.T) {
	s := session.NewMemStore()

	s.SetToken("abc")
	s.SetUser(&domain.User{ID: 1, Name: "Jane Doe"})
	s.Clear()

	if s.User() != nil {
		t.Fatal("expected no cached user after Clear")
	}
}

func TestIsAuthenticated(t *testing.T) {
	s := session.NewMemStore()

	if session.IsAuthenticated(s) {
		t.Fatal("expected unauthenticated with empty store")
	}
	s.SetToken("tok")
	if !session.IsAuthenticated(s) {
		t.Fatal("expected authenticated after SetToken")
	}
}

func TestFileStore_PersistsAcrossLoads(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")

	s := session.NewFileStore(path)
	s.SetToken("abc")
	s.SetUser(&domain.User{ID: 7, Email: "a@b.com", Name: "A B", Role: domain.RoleCarOwner})

	reloaded := session.NewFileStore(path)
	tok, ok := reloaded.Token()
	if !ok || tok != "abc" {
		t.Fatalf("expected persisted token 'abc', got %q", tok)
	}
	u := reloaded.User()
	if u == nil || u.ID != 7 || u.Name != "A B" {
		t.Fatalf("expected persisted user, got %+v", u)
	}
}

func TestFileStore_MalformedFileIsEmptySession(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	if err := os.WriteFile(path, []byte("not-json{"), 0o600); err != nil {
		t.Fatal(err)
	}

	s := session.NewFileStore(path)
	if _, ok := s.Token(); ok {
		t.Fatal("expected no token from malformed file")
	}
	if s.User() != nil {
		t.Fatal("expected nil user from malformed file, not a panic or error")
	}
}

func TestFileStore_MalformedUserFieldIsNilUser(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	if err := os.WriteFile(path, []byte(`{"token":"abc","user":"not-an-object"}`), 0o600); err != nil {
		t.Fatal(err)
	}

	s := session.NewFileStore(path)
	tok, ok := s.Token()
	if !ok || tok != "abc" {
		t.Fatalf("expected token to survive, got %q", tok)
	}
	if s.User() != nil {
		t.Fatal("expected nil user for malformed user field")
	}
}

func TestFileStore_ClearRemovesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")

	s := session.NewFileStore(path)
	s.SetToken("abc")
	s.Clear()

	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatal("expected session file removed after Clear")
	}
	reloaded := session.NewFileStore(path)
	if _, ok := reloaded.Token(); ok {
		t.Fatal("expected no token after Clear")
	}
	if reloaded.User() != nil {
		t.Fatal("expected no user after Clear")
	}
}
