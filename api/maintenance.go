package api

import (
	"context"
	"fmt"
	"net/http"
)

// Maintenance is one scheduled or completed workshop job.
type Maintenance struct {
	MaintenanceID   int      `json:"maintenance_id"`
	VehicleID       int      `json:"vehicle_id"`
	VehicleInfo     string   `json:"vehicle_info"`
	Description     string   `json:"description"`
	MaintenanceDate string   `json:"maintenance_date"`
	Cost            *float64 `json:"cost,omitempty"`
	PerformedBy     *string  `json:"performed_by,omitempty"`
}

// MaintenanceCreate schedules a new workshop job.
type MaintenanceCreate struct {
	VehicleID       int      `json:"vehicle_id"`
	Description     string   `json:"description"`
	MaintenanceDate string   `json:"maintenance_date"`
	Cost            *float64 `json:"cost,omitempty"`
	PerformedBy     *string  `json:"performed_by,omitempty"`
}

// MaintenanceJobs lists all workshop jobs.
func (c *Client) MaintenanceJobs(ctx context.Context) ([]Maintenance, error) {
	var jobs []Maintenance
	if err := c.do(ctx, http.MethodGet, "/maintenance/", nil, nil, &jobs); err != nil {
		return nil, err
	}
	return jobs, nil
}

// ScheduleMaintenance creates a new workshop job.
func (c *Client) ScheduleMaintenance(ctx context.Context, job MaintenanceCreate) (*Maintenance, error) {
	var created Maintenance
	if err := c.do(ctx, http.MethodPost, "/maintenance/", nil, job, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// CompleteMaintenance marks the job with the given id done, returning the
// vehicle to service.
func (c *Client) CompleteMaintenance(ctx context.Context, id int) (*Maintenance, error) {
	var completed Maintenance
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/maintenance/%d/complete", id), nil, nil, &completed); err != nil {
		return nil, err
	}
	return &completed, nil
}
