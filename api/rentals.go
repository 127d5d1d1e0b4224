package api

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rentdesk/rentdesk/internal/utils"
)

// Rental statuses as reported by the backend.
const (
	RentalOngoing   = "ongoing"
	RentalCompleted = "completed"
	RentalCancelled = "cancelled"
)

// Rental is one rental agreement, including the denormalized customer and
// vehicle display columns the backend joins in.
type Rental struct {
	RentalID           int      `json:"rental_id"`
	CustomerID         int      `json:"customer_id"`
	CustomerName       string   `json:"customer_name"`
	VehicleID          int      `json:"vehicle_id"`
	VehicleInfo        string   `json:"vehicle_info"`
	DailyRate          float64  `json:"daily_rate"`
	PickupDate         string   `json:"pickup_date"`
	ExpectedReturnDate string   `json:"expected_return_date"`
	ActualReturnDate   *string  `json:"actual_return_date,omitempty"`
	Status             string   `json:"status"`
	TotalCost          *float64 `json:"total_cost,omitempty"`
}

// AccruedCost is the amount owed as of now. An ongoing rental accrues one
// daily rate per started day since pickup; a closed rental reports the
// stored total. An unparseable pickup date accrues nothing rather than a
// bogus figure.
func (r Rental) AccruedCost(now time.Time) float64 {
	if r.Status != RentalOngoing {
		return utils.Value(r.TotalCost)
	}
	pickup, ok := parseRentalTime(r.PickupDate)
	if !ok {
		return 0
	}
	elapsed := now.Sub(pickup)
	if elapsed <= 0 {
		return 0
	}
	days := math.Ceil(elapsed.Hours() / 24)
	return days * r.DailyRate
}

// parseRentalTime accepts the date formats the backend has been observed to
// emit for rental columns.
func parseRentalTime(value string) (time.Time, bool) {
	layouts := []string{
		time.RFC3339,
		"2006-01-02T15:04:05",
		"2006-01-02 15:04:05",
		"2006-01-02",
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// RentalCreate opens a new rental.
type RentalCreate struct {
	CustomerID     int    `json:"customer_id"`
	VehicleID      int    `json:"vehicle_id"`
	PickupDatetime string `json:"pickup_datetime"`
	ReturnDatetime string `json:"return_datetime"`
}

// RentalClose records the vehicle coming back: the actual return time plus
// any extra charges incurred.
type RentalClose struct {
	ActualReturnDatetime string  `json:"actual_return_datetime"`
	AdditionalCharges    float64 `json:"additional_charges"`
	Notes                *string `json:"notes,omitempty"`
}

// RentalFilter narrows a rental listing.
type RentalFilter struct {
	Status      string
	CustomerID  int
	VehicleCode string
}

func (f RentalFilter) query() url.Values {
	q := url.Values{}
	if f.Status != "" {
		q.Set("status", f.Status)
	}
	if f.CustomerID > 0 {
		q.Set("customer_id", strconv.Itoa(f.CustomerID))
	}
	if f.VehicleCode != "" {
		q.Set("vehicle_code", f.VehicleCode)
	}
	return q
}

// Rentals lists rentals, optionally filtered by status, customer or vehicle.
func (c *Client) Rentals(ctx context.Context, filter RentalFilter) ([]Rental, error) {
	var rentals []Rental
	if err := c.do(ctx, http.MethodGet, "/rentals/", filter.query(), nil, &rentals); err != nil {
		return nil, err
	}
	return rentals, nil
}

// CreateRental opens a new rental agreement.
func (c *Client) CreateRental(ctx context.Context, rental RentalCreate) (*Rental, error) {
	var created Rental
	if err := c.do(ctx, http.MethodPost, "/rentals/", nil, rental, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateRental edits the rental with the given id.
func (c *Client) UpdateRental(ctx context.Context, id int, update RentalClose) (*Rental, error) {
	var updated Rental
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/rentals/%d", id), nil, update, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// ReturnVehicle closes the rental with the given id, settling its cost.
func (c *Client) ReturnVehicle(ctx context.Context, id int, ret RentalClose) (*Rental, error) {
	var closed Rental
	if err := c.do(ctx, http.MethodPost, fmt.Sprintf("/rentals/%d/return", id), nil, ret, &closed); err != nil {
		return nil, err
	}
	return &closed, nil
}

// DeleteRental removes the rental with the given id.
func (c *Client) DeleteRental(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/rentals/%d", id), nil, nil, nil)
}
