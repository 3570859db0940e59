// Package api provides the typed MotorTrust resource clients: auth,
// vehicles, repairs, shops/leads/proposals and AI diagnosis. Every
// client shares one contract — typed fetch with bearer auth and uniform
// error unwrapping — applied per endpoint.
package api

import (
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/motortrust/motortrust-go/internal/domain"
	"github.com/motortrust/motortrust-go/internal/infra/observability"
	"github.com/motortrust/motortrust-go/internal/session"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

var tracer = otel.Tracer("motortrust-api")

// Client wraps HTTP calls to the MotorTrust backend. The session store
// is injected so clients are testable without a real storage medium.
type Client struct {
	httpClient *http.Client
	baseURL    string
	store      session.Store
	metrics    *observability.Metrics
	logger     *zap.Logger
}

// NewClient creates a MotorTrust API client. metrics may be nil.
func NewClient(httpClient *http.Client, baseURL string, store session.Store, metrics *observability.Metrics, logger *zap.Logger) *Client {
	return &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
		store:      store,
		metrics:    metrics,
		logger:     logger,
	}
}

// Store exposes the injected session store to consumers (e.g. for an
// IsAuthenticated check before rendering).
func (c *Client) Store() session.Store {
	return c.store
}

// call describes one HTTP request to the backend.
type call struct {
	resource    string // metrics/log label, e.g. "vehicles"
	op          string // span name, e.g. "Vehicles.List"
	method      string
	path        string // includes query string when needed
	body        io.Reader
	contentType string // empty on GET/DELETE; multipart sets its own
	fallback    string // operation-specific error message of last resort
	authed      bool
}

// bearerToken reads the token for an authenticated call. A missing
// token fails before any network I/O is attempted.
func (c *Client) bearerToken() (string, error) {
	token, ok := c.store.Token()
	if !ok {
		return "", domain.ErrNoSession
	}
	return token, nil
}

// do executes one request and parses the response envelope.
// Non-2xx statuses and 2xx bodies with success=false both surface as
// *domain.APIError carrying the extracted message.
func (c *Client) do(ctx context.Context, cl call) (*domain.Envelope, int, error) {
	var token string
	if cl.authed {
		var err error
		if token, err = c.bearerToken(); err != nil {
			return nil, 0, err
		}
	}

	start := time.Now()
	url := c.baseURL + cl.path
	req, err := http.NewRequestWithContext(ctx, cl.method, url, cl.body)
	if err != nil {
		return nil, 0, &domain.ErrTransport{Operation: cl.op, Err: err}
	}

	req.Header.Set("X-Request-ID", uuid.New().String())
	if cl.authed {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if cl.contentType != "" {
		req.Header.Set("Content-Type", cl.contentType)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("api: request failed",
			zap.String("op", cl.op),
			zap.String("method", cl.method),
			zap.String("path", cl.path),
			zap.Error(err),
		)
		if c.metrics != nil {
			c.metrics.IncrTransportError(cl.resource)
		}
		return nil, 0, &domain.ErrTransport{Operation: cl.op, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		if c.metrics != nil {
			c.metrics.IncrTransportError(cl.resource)
		}
		return nil, resp.StatusCode, &domain.ErrTransport{Operation: cl.op, Err: err}
	}

	env := &domain.Envelope{}
	if len(body) > 0 {
		if err := unmarshalEnvelope(body, env); err != nil {
			if c.metrics != nil {
				c.metrics.IncrTransportError(cl.resource)
			}
			return nil, resp.StatusCode, &domain.ErrTransport{Operation: cl.op, Err: err}
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := extractErrorMessage(env, cl.fallback)
		c.logger.Warn("api: non-2xx response",
			zap.String("op", cl.op),
			zap.String("method", cl.method),
			zap.String("path", cl.path),
			zap.Int("status", resp.StatusCode),
			zap.String("message", msg),
		)
		if c.metrics != nil {
			c.metrics.RecordRequest(cl.resource, "rejected", time.Since(start))
		}
		return env, resp.StatusCode, &domain.APIError{Status: resp.StatusCode, Operation: cl.op, Message: msg}
	}

	if !env.Success && (env.Error != nil || env.Message != "") {
		msg := extractErrorMessage(env, cl.fallback)
		if c.metrics != nil {
			c.metrics.RecordRequest(cl.resource, "rejected", time.Since(start))
		}
		return env, resp.StatusCode, &domain.APIError{Status: resp.StatusCode, Operation: cl.op, Message: msg}
	}

	c.logger.Debug("api: request OK",
		zap.String("op", cl.op),
		zap.String("path", cl.path),
		zap.Int("status", resp.StatusCode),
	)
	if c.metrics != nil {
		c.metrics.RecordRequest(cl.resource, "ok", time.Since(start))
	}

	return env, resp.StatusCode, nil
}

// span starts an otel span for one resource-client operation.
func span(ctx context.Context, op string, attrs ...attribute.KeyValue) (context.Context, func()) {
	ctx, s := tracer.Start(ctx, op)
	s.SetAttributes(attrs...)
	return ctx, func() { s.End() }
}

// extractErrorMessage applies the fixed precedence: field-level
// validation messages joined, else nested error message, else top-level
// message, else the operation's hardcoded fallback.
func extractErrorMessage(env *domain.Envelope, fallback string) string {
	if env.Error != nil && len(env.Error.Details) > 0 {
		parts := make([]string, 0, len(env.Error.Details))
		for _, d := range env.Error.Details {
			if d.Message != "" {
				parts = append(parts, d.Message)
			}
		}
		if len(parts) > 0 {
			return strings.Join(parts, "; ")
		}
	}
	if env.Error != nil && env.Error.Message != "" {
		return env.Error.Message
	}
	if env.Message != "" {
		return env.Message
	}
	return fallback
}
