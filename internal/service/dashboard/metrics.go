package dashboard

import (
	"time"

	"github.com/brickbase/estate-backend/internal/domain/models"
	"github.com/brickbase/estate-backend/pkg/money"
)

// growthRate is the percentage change between two equal-length consecutive
// windows. A zero (or negative) baseline yields 0 rather than Inf/NaN so the
// dashboard renders a flat metric instead of breaking.
func growthRate(current, previous float64) float64 {
	if previous <= 0 {
		return 0
	}
	return (current - previous) / previous * 100
}

// occupancyRate is the share of properties currently let or sold, in percent.
func occupancyRate(occupied, total int64) float64 {
	if total == 0 {
		return 0
	}
	return float64(occupied) / float64(total) * 100
}

// IsTenantOutstanding reports whether a tenant is judged unpaid for the month
// containing asOf: they moved in before the month started and no embedded
// payment is dated within it. This is a heuristic over the embedded payment
// history, not a ledger reconciliation; tenants who started mid-month are
// exempt by construction.
func IsTenantOutstanding(t models.Tenant, asOf time.Time) bool {
	start := monthStart(asOf)
	if !t.StartDate.Before(start) {
		return false
	}
	end := start.AddDate(0, 1, 0)
	for _, p := range t.Payments {
		if inWindow(p.DateOfPayment, start, end) {
			return false
		}
	}
	return true
}

// outstandingRent sums the parsed rent of every outstanding tenant.
func outstandingRent(tenants []models.Tenant, asOf time.Time) float64 {
	var total float64
	for _, t := range tenants {
		if IsTenantOutstanding(t, asOf) {
			total += money.Parse(t.Rent)
		}
	}
	return total
}

// paymentsBetween sums every embedded payment dated within [start, end)
// across all tenants.
func paymentsBetween(tenants []models.Tenant, start, end time.Time) float64 {
	var total float64
	for _, t := range tenants {
		for _, p := range t.Payments {
			if inWindow(p.DateOfPayment, start, end) {
				total += money.Parse(p.Amount)
			}
		}
	}
	return total
}

// buildKPIs derives the headline KPI block from a fetched snapshot. Lead and
// booking windows are rolling 7-day spans; revenue and occupancy compare the
// current (partial) calendar month against the full previous month.
func buildKPIs(snap snapshot) models.KPIBlock {
	curMonth := monthStart(snap.now)
	prevMonth := curMonth.AddDate(0, -1, 0)

	revenueThisMonth := paymentsBetween(snap.tenants, curMonth, snap.now)
	revenuePrevMonth := paymentsBetween(snap.tenants, prevMonth, curMonth)

	return models.KPIBlock{
		RevenueThisMonth:  revenueThisMonth,
		RevenueGrowth:     growthRate(revenueThisMonth, revenuePrevMonth),
		OccupancyRate:     occupancyRate(snap.occupiedProperties, snap.totalProperties),
		OccupancyGrowth:   growthRate(float64(snap.occupiedThisMonth), float64(snap.occupiedPrevMonth)),
		VacantBeds:        snap.totalProperties - snap.occupiedProperties,
		NewLeads7Days:     snap.newLeads7Days,
		LeadGrowth:        growthRate(float64(snap.newLeads7Days), float64(snap.newLeadsPrev7Days)),
		BookingsConfirmed: snap.bookings7Days,
		BookingGrowth:     growthRate(float64(snap.bookings7Days), float64(snap.bookingsPrev7Days)),
		OutstandingRent:   outstandingRent(snap.tenants, snap.now),
		TotalLeads:        snap.totalLeads,
	}
}

// monthStart truncates t to midnight on the first of its month.
func monthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// inWindow reports start <= t < end.
func inWindow(t, start, end time.Time) bool {
	return !t.Before(start) && t.Before(end)
}
