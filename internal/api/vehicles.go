package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/motortrust/motortrust-go/internal/domain"

	"go.opentelemetry.io/otel/attribute"
)

// ============================================================
// Vehicles client
// ============================================================

// Vehicles lists the authenticated user's vehicles.
func (c *Client) Vehicles(ctx context.Context) ([]domain.Vehicle, error) {
	ctx, end := span(ctx, "Vehicles.List")
	defer end()

	env, _, err := c.do(ctx, call{
		resource: "vehicles",
		op:       "Vehicles.List",
		method:   http.MethodGet,
		path:     "/api/vehicles",
		fallback: "Failed to fetch vehicles",
		authed:   true,
	})
	if err != nil {
		return nil, err
	}
	return decodeData[[]domain.Vehicle](env, "vehicles")
}

// CreateVehicle registers a vehicle and returns the created record.
func (c *Client) CreateVehicle(ctx context.Context, v domain.Vehicle) (*domain.Vehicle, error) {
	ctx, end := span(ctx, "Vehicles.Create", attribute.String("vehicle.vin", v.VIN))
	defer end()

	body, err := jsonBody(v)
	if err != nil {
		return nil, err
	}

	env, _, err := c.do(ctx, call{
		resource:    "vehicles",
		op:          "Vehicles.Create",
		method:      http.MethodPost,
		path:        "/api/vehicles",
		body:        body,
		contentType: "application/json",
		fallback:    "Failed to create vehicle",
		authed:      true,
	})
	if err != nil {
		return nil, err
	}
	return decodeData[*domain.Vehicle](env, "vehicles")
}

// Vehicle fetches a single vehicle by id.
func (c *Client) Vehicle(ctx context.Context, id int64) (*domain.Vehicle, error) {
	ctx, end := span(ctx, "Vehicles.Get", attribute.Int64("vehicle.id", id))
	defer end()

	env, _, err := c.do(ctx, call{
		resource: "vehicles",
		op:       "Vehicles.Get",
		method:   http.MethodGet,
		path:     fmt.Sprintf("/api/vehicles/%d", id),
		fallback: "Failed to fetch vehicle",
		authed:   true,
	})
	if err != nil {
		return nil, err
	}
	return decodeData[*domain.Vehicle](env, "vehicles")
}

// UpdateVehicle replaces a vehicle's editable fields.
func (c *Client) UpdateVehicle(ctx context.Context, id int64, v domain.Vehicle) (*domain.Vehicle, error) {
	ctx, end := span(ctx, "Vehicles.Update", attribute.Int64("vehicle.id", id))
	defer end()

	body, err := jsonBody(v)
	if err != nil {
		return nil, err
	}

	env, _, err := c.do(ctx, call{
		resource:    "vehicles",
		op:          "Vehicles.Update",
		method:      http.MethodPut,
		path:        fmt.Sprintf("/api/vehicles/%d", id),
		body:        body,
		contentType: "application/json",
		fallback:    "Failed to update vehicle",
		authed:      true,
	})
	if err != nil {
		return nil, err
	}
	return decodeData[*domain.Vehicle](env, "vehicles")
}

// DeleteVehicle removes a vehicle.
func (c *Client) DeleteVehicle(ctx context.Context, id int64) error {
	ctx, end := span(ctx, "Vehicles.Delete", attribute.Int64("vehicle.id", id))
	defer end()

	_, _, err := c.do(ctx, call{
		resource: "vehicles",
		op:       "Vehicles.Delete",
		method:   http.MethodDelete,
		path:     fmt.Sprintf("/api/vehicles/%d", id),
		fallback: "Failed to delete vehicle",
		authed:   true,
	})
	return err
}

// PrimaryVehicle fetches the vehicle flagged primary.
func (c *Client) PrimaryVehicle(ctx context.Context) (*domain.Vehicle, error) {
	ctx, end := span(ctx, "Vehicles.Primary")
	defer end()

	env, _, err := c.do(ctx, call{
		resource: "vehicles",
		op:       "Vehicles.Primary",
		method:   http.MethodGet,
		path:     "/api/vehicles/primary",
		fallback: "Failed to fetch primary vehicle",
		authed:   true,
	})
	if err != nil {
		return nil, err
	}
	return decodeData[*domain.Vehicle](env, "vehicles")
}

// SetPrimaryVehicle flags a vehicle as the primary one.
func (c *Client) SetPrimaryVehicle(ctx context.Context, id int64) error {
	ctx, end := span(ctx, "Vehicles.SetPrimary", attribute.Int64("vehicle.id", id))
	defer end()

	_, _, err := c.do(ctx, call{
		resource: "vehicles",
		op:       "Vehicles.SetPrimary",
		method:   http.MethodPatch,
		path:     fmt.Sprintf("/api/vehicles/%d/primary", id),
		fallback: "Failed to set primary vehicle",
		authed:   true,
	})
	return err
}

// VehicleRepairs lists repairs logged against one vehicle.
func (c *Client) VehicleRepairs(ctx context.Context, id int64) ([]domain.Repair, error) {
	ctx, end := span(ctx, "Vehicles.Repairs", attribute.Int64("vehicle.id", id))
	defer end()

	env, _, err := c.do(ctx, call{
		resource: "vehicles",
		op:       "Vehicles.Repairs",
		method:   http.MethodGet,
		path:     fmt.Sprintf("/api/vehicles/%d/repairs", id),
		fallback: "Failed to fetch vehicle repairs",
		authed:   true,
	})
	if err != nil {
		return nil, err
	}
	return decodeData[[]domain.Repair](env, "repairs")
}

// VehicleStats fetches the backend-computed repair rollup for a vehicle.
func (c *Client) VehicleStats(ctx context.Context, id int64) (*domain.RepairStats, error) {
	ctx, end := span(ctx, "Vehicles.Stats", attribute.Int64("vehicle.id", id))
	defer end()

	env, _, err := c.do(ctx, call{
		resource: "vehicles",
		op:       "Vehicles.Stats",
		method:   http.MethodGet,
		path:     fmt.Sprintf("/api/vehicles/%d/stats", id),
		fallback: "Failed to fetch vehicle stats",
		authed:   true,
	})
	if err != nil {
		return nil, err
	}
	return decodeData[*domain.RepairStats](env, "stats")
}
