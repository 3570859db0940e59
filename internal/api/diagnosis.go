package api

import (
	"context"
	"net/http"

	"github.com/motortrust/motortrust-go/internal/domain"

	"go.opentelemetry.io/otel/attribute"
)

// ============================================================
// AI diagnosis client
// ============================================================

// Diagnose runs a full diagnosis with car context and a free-text
// problem description.
func (c *Client) Diagnose(ctx context.Context, req domain.DiagnoseRequest) (*domain.Diagnosis, error) {
	ctx, end := span(ctx, "Diagnosis.Full",
		attribute.String("car.make", req.CarMake),
		attribute.String("car.model", req.CarModel),
	)
	defer end()

	body, err := jsonBody(req)
	if err != nil {
		return nil, err
	}

	env, _, err := c.do(ctx, call{
		resource:    "diagnosis",
		op:          "Diagnosis.Full",
		method:      http.MethodPost,
		path:        "/api/ai-diagnosis",
		body:        body,
		contentType: "application/json",
		fallback:    "Failed to run diagnosis",
		authed:      true,
	})
	if err != nil {
		return nil, err
	}
	return decodeData[*domain.Diagnosis](env, "diagnosis")
}

// QuickDiagnose runs a free-text-only diagnosis.
func (c *Client) QuickDiagnose(ctx context.Context, message string) (*domain.Diagnosis, error) {
	ctx, end := span(ctx, "Diagnosis.Quick")
	defer end()

	body, err := jsonBody(map[string]string{"message": message})
	if err != nil {
		return nil, err
	}

	env, _, err := c.do(ctx, call{
		resource:    "diagnosis",
		op:          "Diagnosis.Quick",
		method:      http.MethodPost,
		path:        "/api/ai-diagnosis/quick",
		body:        body,
		contentType: "application/json",
		fallback:    "Failed to run quick diagnosis",
		authed:      true,
	})
	if err != nil {
		return nil, err
	}
	return decodeData[*domain.Diagnosis](env, "diagnosis")
}

// DiagnosisHealth probes the AI service.
func (c *Client) DiagnosisHealth(ctx context.Context) error {
	ctx, end := span(ctx, "Diagnosis.Health")
	defer end()

	_, _, err := c.do(ctx, call{
		resource: "diagnosis",
		op:       "Diagnosis.Health",
		method:   http.MethodGet,
		path:     "/api/ai-diagnosis/health",
		fallback: "AI diagnosis service unavailable",
		authed:   true,
	})
	return err
}
