package api_test

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/motortrust/motortrust-go/internal/api"
	"github.com/motortrust/motortrust-go/internal/domain"
	"github.com/motortrust/motortrust-go/internal/session"

	"go.uber.org/zap"
)

func TestLogin_PersistsTokenAndNormalizedUser(t *testing.T) {
	client, store := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/auth/login" || r.Method != http.MethodPost {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success":true,"data":{"user":{"id":1,"email":"a@b.com","first_name":"A","last_name":"B","role":"car_owner"},"token":"tok"}}`))
	}))

	res, err := client.Login(context.Background(), domain.LoginRequest{Email: "a@b.com", Password: "x"})
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if res.Token != "tok" {
		t.Errorf("expected token 'tok', got %q", res.Token)
	}

	tok, ok := store.Token()
	if !ok || tok != "tok" {
		t.Errorf("expected stored token 'tok', got %q", tok)
	}
	u := store.User()
	if u == nil || u.Name != "A B" {
		t.Fatalf("expected cached user 'A B', got %+v", u)
	}
	if u.Role != domain.RoleCarOwner {
		t.Errorf("expected normalized role car_owner, got %q", u.Role)
	}
}

func TestSignup_ValidationDetailsJoinedIntoError(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"success":false,"error":{"details":[{"field":"email","message":"invalid"}]}}`))
	}))

	_, err := client.Signup(context.Background(), domain.SignupRequest{Email: "bad"})
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "invalid") {
		t.Errorf("expected message to contain 'invalid', got %q", err.Error())
	}
}

func TestSignup_RoleAsObjectNormalized(t *testing.T) {
	client, store := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success":true,"data":{"user":{"id":2,"first_name":"S","last_name":"O","role":{"name":"shop_owner"}},"token":"t2"}}`))
	}))

	res, err := client.Signup(context.Background(), domain.SignupRequest{Email: "s@o.com"})
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if res.User.Role != domain.RoleShopOwner {
		t.Errorf("expected collapsed role shop_owner, got %q", res.User.Role)
	}
	if store.User().Role != domain.RoleShopOwner {
		t.Errorf("expected cached role shop_owner, got %q", store.User().Role)
	}
}

func TestCurrentUser_NoToken_ServesCacheThenErrNoSession(t *testing.T) {
	client, store := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("no network call expected without a token")
	}))

	_, err := client.CurrentUser(context.Background())
	if !errors.Is(err, domain.ErrNoSession) {
		t.Fatalf("expected ErrNoSession, got %v", err)
	}

	store.SetUser(&domain.User{ID: 9, Name: "Cached User"})
	u, err := client.CurrentUser(context.Background())
	if err != nil {
		t.Fatalf("expected cached user, got %v", err)
	}
	if u.Name != "Cached User" {
		t.Errorf("expected cached user, got %+v", u)
	}
}

func TestCurrentUser_ServerErrorFallsBackToCache(t *testing.T) {
	client, store := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"success":false,"message":"boom"}`))
	}))
	store.SetToken("tok")
	store.SetUser(&domain.User{ID: 3, Name: "Stale But Fine"})

	u, err := client.CurrentUser(context.Background())
	if err != nil {
		t.Fatalf("expected cached fallback, got %v", err)
	}
	if u.Name != "Stale But Fine" {
		t.Errorf("expected cached user, got %+v", u)
	}
}

func TestCurrentUser_TransportErrorFallsBackToCache(t *testing.T) {
	store := session.NewMemStore()
	store.SetToken("tok")
	store.SetUser(&domain.User{ID: 4, Name: "Offline Cache"})
	// Closed port: the request never leaves the machine.
	client := api.NewClient(&http.Client{Timeout: time.Second}, "http://127.0.0.1:1", store, nil, zap.NewNop())

	u, err := client.CurrentUser(context.Background())
	if err != nil {
		t.Fatalf("expected cached fallback on transport error, got %v", err)
	}
	if u.Name != "Offline Cache" {
		t.Errorf("expected cached user, got %+v", u)
	}
}

func TestCurrentUser_UnauthorizedClearsSessionAndPropagates(t *testing.T) {
	client, store := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"success":false,"message":"token expired"}`))
	}))
	store.SetToken("dead-token")
	store.SetUser(&domain.User{ID: 5, Name: "Should Not Survive"})

	_, err := client.CurrentUser(context.Background())
	if err == nil {
		t.Fatal("expected error on 401, not stale identity")
	}
	if _, ok := store.Token(); ok {
		t.Error("expected token cleared after 401")
	}
	if store.User() != nil {
		t.Error("expected cached user cleared after 401")
	}
}

func TestCurrentUser_ToleratesBothPayloadNestings(t *testing.T) {
	bodies := map[string]string{
		"nested under data.user": `{"success":true,"data":{"user":{"id":1,"first_name":"N","last_name":"U","role":"car_owner"}}}`,
		"directly under data":    `{"success":true,"data":{"id":1,"first_name":"N","last_name":"U","role":"car_owner"}}`,
	}

	for name, body := range bodies {
		t.Run(name, func(t *testing.T) {
			respBody := body
			client, store := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.Write([]byte(respBody))
			}))
			store.SetToken("tok")

			u, err := client.CurrentUser(context.Background())
			if err != nil {
				t.Fatalf("expected success, got %v", err)
			}
			if u.Name != "N U" {
				t.Errorf("expected normalized name 'N U', got %q", u.Name)
			}
			if cached := store.User(); cached == nil || cached.Name != "N U" {
				t.Errorf("expected user re-cached, got %+v", cached)
			}
		})
	}
}

func TestLogout_BestEffortAlwaysClearsSession(t *testing.T) {
	client, store := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"success":false,"message":"server exploded"}`))
	}))
	store.SetToken("tok")
	store.SetUser(&domain.User{ID: 6, Name: "Leaving"})

	client.Logout(context.Background())

	if _, ok := store.Token(); ok {
		t.Error("expected token cleared even when server logout fails")
	}
	if store.User() != nil {
		t.Error("expected cached user cleared on logout")
	}
}

func TestLogout_NoToken_SkipsServerCall(t *testing.T) {
	client, store := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("no server call expected without a token")
	}))
	store.SetUser(&domain.User{ID: 7})

	client.Logout(context.Background())

	if store.User() != nil {
		t.Error("expected cached user cleared")
	}
}
