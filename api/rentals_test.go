package api_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/rentdesk/rentdesk/api"
	"github.com/rentdesk/rentdesk/internal/utils"
)

func TestAccruedCostOngoingRental(t *testing.T) {
	rental := api.Rental{
		Status:     api.RentalOngoing,
		DailyRate:  40,
		PickupDate: "2025-06-01T10:00:00",
	}

	// Two and a half days in: a started day counts in full.
	now := time.Date(2025, 6, 3, 22, 0, 0, 0, time.UTC)
	require.Equal(t, 120.0, rental.AccruedCost(now))

	// Exactly one day in.
	now = time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)
	require.Equal(t, 40.0, rental.AccruedCost(now))
}

func TestAccruedCostCompletedRentalUsesStoredTotal(t *testing.T) {
	rental := api.Rental{
		Status:     api.RentalCompleted,
		DailyRate:  40,
		PickupDate: "2025-06-01T10:00:00",
		TotalCost:  utils.Ptr(95.5),
	}
	require.Equal(t, 95.5, rental.AccruedCost(time.Now()))
}

func TestAccruedCostCancelledRentalWithoutTotal(t *testing.T) {
	rental := api.Rental{Status: api.RentalCancelled, DailyRate: 40}
	require.Equal(t, 0.0, rental.AccruedCost(time.Now()))
}

func TestAccruedCostUnparseablePickupDate(t *testing.T) {
	rental := api.Rental{
		Status:     api.RentalOngoing,
		DailyRate:  40,
		PickupDate: "last tuesday",
	}
	require.Equal(t, 0.0, rental.AccruedCost(time.Now()))
}

func TestAccruedCostDateOnlyPickup(t *testing.T) {
	rental := api.Rental{
		Status:     api.RentalOngoing,
		DailyRate:  25,
		PickupDate: "2025-06-01",
	}
	now := time.Date(2025, 6, 4, 12, 0, 0, 0, time.UTC)
	require.Equal(t, 100.0, rental.AccruedCost(now))
}

func TestRevenueReportTotals(t *testing.T) {
	report := api.RevenueReport{Data: []api.RevenuePoint{
		{Period: "2025-04", Revenue: 1200.50, RentalCount: 14},
		{Period: "2025-05", Revenue: 980, RentalCount: 9},
		{Period: "2025-06", Revenue: 0, RentalCount: 0},
	}}
	require.Equal(t, 2180.50, report.TotalRevenue())
	require.Equal(t, 23, report.TotalRentals())
}
