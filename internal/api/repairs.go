package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/motortrust/motortrust-go/internal/domain"

	"go.opentelemetry.io/otel/attribute"
)

// ============================================================
// Repairs client
// ============================================================

// Repairs lists the authenticated user's repairs.
func (c *Client) Repairs(ctx context.Context) ([]domain.Repair, error) {
	ctx, end := span(ctx, "Repairs.List")
	defer end()

	env, _, err := c.do(ctx, call{
		resource: "repairs",
		op:       "Repairs.List",
		method:   http.MethodGet,
		path:     "/api/repairs",
		fallback: "Failed to fetch repairs",
		authed:   true,
	})
	if err != nil {
		return nil, err
	}
	return decodeData[[]domain.Repair](env, "repairs")
}

// CreateRepair logs a repair and returns the created record.
func (c *Client) CreateRepair(ctx context.Context, r domain.Repair) (*domain.Repair, error) {
	ctx, end := span(ctx, "Repairs.Create", attribute.Int64("vehicle.id", r.VehicleID))
	defer end()

	body, err := jsonBody(r)
	if err != nil {
		return nil, err
	}

	env, _, err := c.do(ctx, call{
		resource:    "repairs",
		op:          "Repairs.Create",
		method:      http.MethodPost,
		path:        "/api/repairs",
		body:        body,
		contentType: "application/json",
		fallback:    "Failed to create repair",
		authed:      true,
	})
	if err != nil {
		return nil, err
	}
	return decodeData[*domain.Repair](env, "repairs")
}

// Repair fetches a single repair by id.
func (c *Client) Repair(ctx context.Context, id int64) (*domain.Repair, error) {
	ctx, end := span(ctx, "Repairs.Get", attribute.Int64("repair.id", id))
	defer end()

	env, _, err := c.do(ctx, call{
		resource: "repairs",
		op:       "Repairs.Get",
		method:   http.MethodGet,
		path:     fmt.Sprintf("/api/repairs/%d", id),
		fallback: "Failed to fetch repair",
		authed:   true,
	})
	if err != nil {
		return nil, err
	}
	return decodeData[*domain.Repair](env, "repairs")
}

// UpdateRepair replaces a repair's editable fields.
func (c *Client) UpdateRepair(ctx context.Context, id int64, r domain.Repair) (*domain.Repair, error) {
	ctx, end := span(ctx, "Repairs.Update", attribute.Int64("repair.id", id))
	defer end()

	body, err := jsonBody(r)
	if err != nil {
		return nil, err
	}

	env, _, err := c.do(ctx, call{
		resource:    "repairs",
		op:          "Repairs.Update",
		method:      http.MethodPut,
		path:        fmt.Sprintf("/api/repairs/%d", id),
		body:        body,
		contentType: "application/json",
		fallback:    "Failed to update repair",
		authed:      true,
	})
	if err != nil {
		return nil, err
	}
	return decodeData[*domain.Repair](env, "repairs")
}

// DeleteRepair removes a repair record.
func (c *Client) DeleteRepair(ctx context.Context, id int64) error {
	ctx, end := span(ctx, "Repairs.Delete", attribute.Int64("repair.id", id))
	defer end()

	_, _, err := c.do(ctx, call{
		resource: "repairs",
		op:       "Repairs.Delete",
		method:   http.MethodDelete,
		path:     fmt.Sprintf("/api/repairs/%d", id),
		fallback: "Failed to delete repair",
		authed:   true,
	})
	return err
}

// RepairStats fetches the aggregate repair report, optionally narrowed
// by vehicle.
func (c *Client) RepairStats(ctx context.Context, filter domain.RepairFilter) (*domain.RepairStats, error) {
	ctx, end := span(ctx, "Repairs.Stats")
	defer end()

	env, _, err := c.do(ctx, call{
		resource: "repairs",
		op:       "Repairs.Stats",
		method:   http.MethodGet,
		path:     "/api/repairs/stats" + repairQuery(filter),
		fallback: "Failed to fetch repair stats",
		authed:   true,
	})
	if err != nil {
		return nil, err
	}
	return decodeData[*domain.RepairStats](env, "stats")
}

// RepairsInRange lists repairs between filter.StartDate and
// filter.EndDate (inclusive, backend semantics).
func (c *Client) RepairsInRange(ctx context.Context, filter domain.RepairFilter) ([]domain.Repair, error) {
	ctx, end := span(ctx, "Repairs.Range")
	defer end()

	env, _, err := c.do(ctx, call{
		resource: "repairs",
		op:       "Repairs.Range",
		method:   http.MethodGet,
		path:     "/api/repairs/range" + repairQuery(filter),
		fallback: "Failed to fetch repairs in range",
		authed:   true,
	})
	if err != nil {
		return nil, err
	}
	return decodeData[[]domain.Repair](env, "repairs")
}

// SearchRepairs runs a free-text search over the user's repairs.
func (c *Client) SearchRepairs(ctx context.Context, query string) ([]domain.Repair, error) {
	ctx, end := span(ctx, "Repairs.Search", attribute.String("search.query", query))
	defer end()

	env, _, err := c.do(ctx, call{
		resource: "repairs",
		op:       "Repairs.Search",
		method:   http.MethodGet,
		path:     "/api/repairs/search" + repairQuery(domain.RepairFilter{Query: query}),
		fallback: "Failed to search repairs",
		authed:   true,
	})
	if err != nil {
		return nil, err
	}
	return decodeData[[]domain.Repair](env, "repairs")
}

// Reminders lists upcoming service reminders the backend has computed.
func (c *Client) Reminders(ctx context.Context) ([]domain.Reminder, error) {
	ctx, end := span(ctx, "Repairs.Reminders")
	defer end()

	env, _, err := c.do(ctx, call{
		resource: "repairs",
		op:       "Repairs.Reminders",
		method:   http.MethodGet,
		path:     "/api/repairs/reminders",
		fallback: "Failed to fetch reminders",
		authed:   true,
	})
	if err != nil {
		return nil, err
	}
	return decodeData[[]domain.Reminder](env, "reminders")
}

// repairQuery builds the query string for the report endpoints.
func repairQuery(f domain.RepairFilter) string {
	q := url.Values{}
	if f.VehicleID != 0 {
		q.Set("vehicle_id", strconv.FormatInt(f.VehicleID, 10))
	}
	if f.StartDate != "" {
		q.Set("start_date", f.StartDate)
	}
	if f.EndDate != "" {
		q.Set("end_date", f.EndDate)
	}
	if f.Query != "" {
		q.Set("q", f.Query)
	}
	if len(q) == 0 {
		return ""
	}
	return "?" + q.Encode()
}
