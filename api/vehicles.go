package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// Vehicle is one fleet entry. Optional columns are pointers so an absent
// value survives the round trip to the backend unchanged.
type Vehicle struct {
	VehicleCode     string   `json:"vehicle_code"`
	Brand           string   `json:"brand"`
	Model           string   `json:"model"`
	Type            *string  `json:"type,omitempty"`
	FuelType        *string  `json:"fuel_type,omitempty"`
	Transmission    *string  `json:"transmission,omitempty"`
	Status          string   `json:"status"`
	DailyRate       float64  `json:"daily_rate"`
	SeatingCapacity *int     `json:"seating_capacity,omitempty"`
}

// VehicleUpdate is a partial vehicle edit; nil fields are left unchanged.
type VehicleUpdate struct {
	Brand           *string  `json:"brand,omitempty"`
	Model           *string  `json:"model,omitempty"`
	Type            *string  `json:"type,omitempty"`
	FuelType        *string  `json:"fuel_type,omitempty"`
	Transmission    *string  `json:"transmission,omitempty"`
	Status          *string  `json:"status,omitempty"`
	DailyRate       *float64 `json:"daily_rate,omitempty"`
	SeatingCapacity *int     `json:"seating_capacity,omitempty"`
}

// VehicleFilter narrows a fleet listing.
type VehicleFilter struct {
	Status string
	Search string
}

func (f VehicleFilter) query() url.Values {
	q := url.Values{}
	if f.Status != "" {
		q.Set("status", f.Status)
	}
	if f.Search != "" {
		q.Set("search", f.Search)
	}
	return q
}

// Vehicles lists the fleet, optionally filtered by status or search term.
func (c *Client) Vehicles(ctx context.Context, filter VehicleFilter) ([]Vehicle, error) {
	var vehicles []Vehicle
	if err := c.do(ctx, http.MethodGet, "/vehicles/", filter.query(), nil, &vehicles); err != nil {
		return nil, err
	}
	return vehicles, nil
}

// CreateVehicle registers a new vehicle.
func (c *Client) CreateVehicle(ctx context.Context, vehicle Vehicle) (*Vehicle, error) {
	var created Vehicle
	if err := c.do(ctx, http.MethodPost, "/vehicles/", nil, vehicle, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateVehicle applies a partial edit to the vehicle with the given code.
func (c *Client) UpdateVehicle(ctx context.Context, code string, update VehicleUpdate) (*Vehicle, error) {
	var updated Vehicle
	path := fmt.Sprintf("/vehicles/%s", url.PathEscape(code))
	if err := c.do(ctx, http.MethodPut, path, nil, update, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteVehicle removes the vehicle with the given code.
func (c *Client) DeleteVehicle(ctx context.Context, code string) error {
	path := fmt.Sprintf("/vehicles/%s", url.PathEscape(code))
	return c.do(ctx, http.MethodDelete, path, nil, nil, nil)
}
