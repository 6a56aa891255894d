package dashboard

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/brickbase/estate-backend/internal/domain/models"
)

func TestGrowthRate(t *testing.T) {
	assert.Zero(t, growthRate(5, 0), "zero baseline guards to 0, not Inf")
	assert.Zero(t, growthRate(0, 0))
	assert.Equal(t, float64(50), growthRate(150, 100))
	assert.Equal(t, float64(-50), growthRate(50, 100))
	assert.Equal(t, float64(-100), growthRate(0, 40))
}

func TestOccupancyRate(t *testing.T) {
	assert.Zero(t, occupancyRate(0, 0), "empty portfolio is 0, never NaN")
	assert.Equal(t, float64(25), occupancyRate(5, 20))
	assert.Equal(t, float64(100), occupancyRate(20, 20))
}

func TestIsTenantOutstanding(t *testing.T) {
	asOf := time.Date(2024, time.June, 15, 10, 0, 0, 0, time.UTC)

	cases := []struct {
		name   string
		tenant models.Tenant
		want   bool
	}{
		{
			name: "no payments ever",
			tenant: models.Tenant{
				StartDate: asOf.AddDate(0, -2, 0),
			},
			want: true,
		},
		{
			name: "started mid current month",
			tenant: models.Tenant{
				StartDate: time.Date(2024, time.June, 5, 0, 0, 0, 0, time.UTC),
			},
			want: false,
		},
		{
			name: "started exactly on the first of the month",
			tenant: models.Tenant{
				StartDate: time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC),
			},
			want: false,
		},
		{
			name: "paid this month",
			tenant: models.Tenant{
				StartDate: asOf.AddDate(0, -6, 0),
				Payments: []models.Payment{
					{DateOfPayment: time.Date(2024, time.June, 2, 0, 0, 0, 0, time.UTC), Amount: "9000"},
				},
			},
			want: false,
		},
		{
			name: "only paid last month",
			tenant: models.Tenant{
				StartDate: asOf.AddDate(0, -6, 0),
				Payments: []models.Payment{
					{DateOfPayment: time.Date(2024, time.May, 31, 23, 59, 0, 0, time.UTC), Amount: "9000"},
				},
			},
			want: true,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, IsTenantOutstanding(tc.tenant, asOf))
		})
	}
}

func TestOutstandingRentParsesDefensively(t *testing.T) {
	asOf := time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC)
	tenants := []models.Tenant{
		// Two months in, never paid: the formatted rent counts in full.
		{Rent: "15,000", StartDate: asOf.AddDate(0, -2, 0)},
		// Malformed rent coerces to 0 instead of failing the computation.
		{Rent: "tbd", StartDate: asOf.AddDate(0, -2, 0)},
		// Paid this month: excluded.
		{
			Rent:      "20,000",
			StartDate: asOf.AddDate(0, -2, 0),
			Payments:  []models.Payment{{DateOfPayment: asOf.Add(-24 * time.Hour), Amount: "20000"}},
		},
	}

	assert.Equal(t, float64(15000), outstandingRent(tenants, asOf))
}

func TestPaymentsBetween(t *testing.T) {
	start := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)

	tenants := []models.Tenant{
		{Payments: []models.Payment{
			{DateOfPayment: start, Amount: "10000"},                      // inclusive start
			{DateOfPayment: end, Amount: "99999"},                        // exclusive end
			{DateOfPayment: start.Add(10 * 24 * time.Hour), Amount: "₹5,000"}, // mid month, formatted
			{DateOfPayment: start.AddDate(0, -1, 0), Amount: "7000"},     // previous month
		}},
		{Payments: []models.Payment{
			{DateOfPayment: start.Add(time.Hour), Amount: "bad data"}, // coerces to 0
		}},
	}

	assert.Equal(t, float64(15000), paymentsBetween(tenants, start, end))
}
