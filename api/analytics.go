package api

import (
	"context"
	"net/http"
	"net/url"
)

// FleetUtilization is the per-type utilization breakdown on the dashboard.
type FleetUtilization struct {
	VehicleType     string  `json:"vehicle_type"`
	TotalVehicles   int     `json:"total_vehicles"`
	RentedCount     int     `json:"rented_count"`
	UtilizationRate float64 `json:"utilization_rate"`
}

// PopularVehicle is one row of the dashboard's most-rented list.
type PopularVehicle struct {
	Brand       string `json:"brand"`
	Model       string `json:"model"`
	VehicleType string `json:"vehicle_type"`
	RentalCount int    `json:"rental_count"`
}

// DashboardAnalytics is the aggregate payload behind the landing view.
type DashboardAnalytics struct {
	FleetUtilization []FleetUtilization `json:"fleet_utilization"`
	PopularVehicles  []PopularVehicle   `json:"popular_vehicles"`
	GeneratedAt      string             `json:"generated_at"`
}

// RevenuePoint is one bucket of the revenue report.
type RevenuePoint struct {
	Period      string  `json:"period"`
	Revenue     float64 `json:"revenue"`
	RentalCount int     `json:"rental_count"`
}

// RevenueReport is the date-bucketed revenue series for the reports view.
type RevenueReport struct {
	Data []RevenuePoint `json:"data"`
}

// TotalRevenue sums revenue across all buckets.
func (r RevenueReport) TotalRevenue() float64 {
	var total float64
	for _, point := range r.Data {
		total += point.Revenue
	}
	return total
}

// TotalRentals sums rental counts across all buckets.
func (r RevenueReport) TotalRentals() int {
	var total int
	for _, point := range r.Data {
		total += point.RentalCount
	}
	return total
}

// FleetOverview is the whole-fleet status snapshot.
type FleetOverview struct {
	TotalVehicles int     `json:"total_vehicles"`
	Available     int     `json:"available"`
	Rented        int     `json:"rented"`
	InMaintenance int     `json:"in_maintenance"`
	AvgDailyRate  float64 `json:"avg_daily_rate"`
}

// FleetStatus wraps the overview with its generation timestamp.
type FleetStatus struct {
	FleetOverview FleetOverview `json:"fleet_overview"`
	GeneratedAt   string        `json:"generated_at"`
}

// DashboardAnalytics fetches the landing view aggregates.
func (c *Client) DashboardAnalytics(ctx context.Context) (*DashboardAnalytics, error) {
	var analytics DashboardAnalytics
	if err := c.do(ctx, http.MethodGet, "/analytics/dashboard", nil, nil, &analytics); err != nil {
		return nil, err
	}
	return &analytics, nil
}

// RevenueAnalytics fetches the revenue series bucketed by period
// ("day", "week" or "month").
func (c *Client) RevenueAnalytics(ctx context.Context, period string) (*RevenueReport, error) {
	query := url.Values{}
	if period != "" {
		query.Set("period", period)
	}
	var report RevenueReport
	if err := c.do(ctx, http.MethodGet, "/analytics/revenue", query, nil, &report); err != nil {
		return nil, err
	}
	return &report, nil
}

// FleetStatus fetches the whole-fleet status snapshot.
func (c *Client) FleetStatus(ctx context.Context) (*FleetStatus, error) {
	var status FleetStatus
	if err := c.do(ctx, http.MethodGet, "/analytics/fleet-status", nil, nil, &status); err != nil {
		return nil, err
	}
	return &status, nil
}
