package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/motortrust/motortrust-go/internal/domain"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// ============================================================
// Auth client — signup, login, current user, logout
// ============================================================

// authData is the payload nested under data in auth responses.
type authData struct {
	User  json.RawMessage `json:"user"`
	Token string          `json:"token"`
}

// Signup registers a new account. On success the issued token and the
// normalized user are persisted to the session store.
func (c *Client) Signup(ctx context.Context, req domain.SignupRequest) (*domain.AuthResult, error) {
	ctx, end := span(ctx, "Auth.Signup", attribute.String("user.email", req.Email))
	defer end()

	body, err := jsonBody(req)
	if err != nil {
		return nil, err
	}

	env, _, err := c.do(ctx, call{
		resource:    "auth",
		op:          "Auth.Signup",
		method:      http.MethodPost,
		path:        "/api/auth/signup",
		body:        body,
		contentType: "application/json",
		fallback:    "Signup failed",
	})
	if err != nil {
		return nil, err
	}

	return c.persistAuth(env)
}

// Login authenticates with email+password. Same normalization and
// session persistence as Signup.
func (c *Client) Login(ctx context.Context, req domain.LoginRequest) (*domain.AuthResult, error) {
	ctx, end := span(ctx, "Auth.Login", attribute.String("user.email", req.Email))
	defer end()

	body, err := jsonBody(req)
	if err != nil {
		return nil, err
	}

	env, _, err := c.do(ctx, call{
		resource:    "auth",
		op:          "Auth.Login",
		method:      http.MethodPost,
		path:        "/api/auth/login",
		body:        body,
		contentType: "application/json",
		fallback:    "Login failed",
	})
	if err != nil {
		return nil, err
	}

	return c.persistAuth(env)
}

// persistAuth extracts token+user from the auth envelope, normalizes
// the user and writes both to the session store.
func (c *Client) persistAuth(env *domain.Envelope) (*domain.AuthResult, error) {
	data, err := decodeData[authData](env, "auth")
	if err != nil {
		return nil, err
	}
	if len(data.User) == 0 {
		return nil, &domain.ErrMalformedPayload{Resource: "auth", Reason: "response carries no user"}
	}

	user, err := domain.NormalizeUser(data.User)
	if err != nil {
		return nil, err
	}

	if data.Token != "" {
		c.store.SetToken(data.Token)
	}
	c.store.SetUser(user)
	if c.metrics != nil {
		c.metrics.IncrSessionEvent("login")
	}

	return &domain.AuthResult{User: user, Token: data.Token}, nil
}

// CurrentUser resolves the authenticated identity.
//
// No token: the cached profile is returned if one exists, else
// ErrNoSession. With a token, a live fetch is attempted; on transport
// errors and 5xx the cached profile is served rather than hard-failing
// the UI. A 401/403 means the token is definitively dead — the session
// is cleared and the error propagates instead of serving a stale
// identity.
func (c *Client) CurrentUser(ctx context.Context) (*domain.User, error) {
	ctx, end := span(ctx, "Auth.CurrentUser")
	defer end()

	if _, ok := c.store.Token(); !ok {
		if cached := c.store.User(); cached != nil {
			return cached, nil
		}
		return nil, domain.ErrNoSession
	}

	env, _, err := c.do(ctx, call{
		resource: "auth",
		op:       "Auth.CurrentUser",
		method:   http.MethodGet,
		path:     "/api/auth/me",
		fallback: "Failed to fetch current user",
		authed:   true,
	})
	if err != nil {
		var apiErr *domain.APIError
		if errors.As(err, &apiErr) {
			switch {
			case apiErr.Status == http.StatusUnauthorized || apiErr.Status == http.StatusForbidden:
				c.store.Clear()
				return nil, err
			case apiErr.Status >= 500:
				// fall through to cache
			default:
				return nil, err
			}
		}
		if cached := c.store.User(); cached != nil {
			c.logger.Warn("auth: live fetch failed, serving cached identity", zap.Error(err))
			if c.metrics != nil {
				c.metrics.IncrSessionEvent("cache_fallback")
			}
			return cached, nil
		}
		return nil, err
	}

	user, err := normalizeMePayload(env.Data)
	if err != nil {
		return nil, err
	}

	c.store.SetUser(user)
	return user, nil
}

// normalizeMePayload tolerates /api/auth/me responses that nest the
// user under data.user or place user fields directly under data.
func normalizeMePayload(data json.RawMessage) (*domain.User, error) {
	if len(data) == 0 {
		return nil, &domain.ErrMalformedPayload{Resource: "auth", Reason: "empty data field"}
	}

	var nested struct {
		User json.RawMessage `json:"user"`
	}
	if err := json.Unmarshal(data, &nested); err == nil && len(nested.User) > 0 && string(nested.User) != "null" {
		return domain.NormalizeUser(nested.User)
	}
	return domain.NormalizeUser(data)
}

// Logout is best-effort: the server-side invalidation call is attempted
// only when a token exists and its failure is swallowed, but the local
// session is always cleared so the client ends up logged out.
func (c *Client) Logout(ctx context.Context) {
	ctx, end := span(ctx, "Auth.Logout")
	defer end()

	defer func() {
		c.store.Clear()
		if c.metrics != nil {
			c.metrics.IncrSessionEvent("logout")
		}
	}()

	if _, ok := c.store.Token(); !ok {
		return
	}

	_, _, err := c.do(ctx, call{
		resource: "auth",
		op:       "Auth.Logout",
		method:   http.MethodPost,
		path:     "/api/auth/logout",
		fallback: "Logout failed",
		authed:   true,
	})
	if err != nil {
		c.logger.Warn("auth: server-side logout failed, clearing local session anyway", zap.Error(err))
	}
}
