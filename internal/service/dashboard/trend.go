package dashboard

import (
	"sort"
	"time"

	"github.com/brickbase/estate-backend/internal/domain/models"
	"github.com/brickbase/estate-backend/pkg/money"
)

const trendMonths = 6

// revenueTrend buckets every embedded tenant payment into the last six
// calendar months, oldest first, ending with the current partial month.
// Months without payments stay at zero; the series always has six entries.
func revenueTrend(tenants []models.Tenant, now time.Time) []models.TrendPoint {
	points := make([]models.TrendPoint, 0, trendMonths)
	starts := make([]time.Time, 0, trendMonths)

	cur := monthStart(now)
	for i := trendMonths - 1; i >= 0; i-- {
		start := cur.AddDate(0, -i, 0)
		starts = append(starts, start)
		points = append(points, models.TrendPoint{Month: start.Format("Jan")})
	}

	for _, t := range tenants {
		for _, p := range t.Payments {
			for i, start := range starts {
				if inWindow(p.DateOfPayment, start, start.AddDate(0, 1, 0)) {
					points[i].Amount += money.Parse(p.Amount)
					break
				}
			}
		}
	}

	return points
}

// revenueByCategory groups occupied properties by category, summing parsed
// rates. Properties without a category land in the "other" group. Groups are
// sorted by name with "other" last so repeated calls produce identical output.
func revenueByCategory(occupied []models.Property) []models.CategoryRevenue {
	groups := make(map[string]*models.CategoryRevenue)
	for _, p := range occupied {
		key := p.Category
		if key == "" {
			key = "other"
		}
		g, ok := groups[key]
		if !ok {
			g = &models.CategoryRevenue{Category: key}
			groups[key] = g
		}
		g.Total += money.Parse(p.Rate)
		g.Count++
	}

	keys := make([]string, 0, len(groups))
	for k := range groups {
		if k != "other" {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	if _, ok := groups["other"]; ok {
		keys = append(keys, "other")
	}

	out := make([]models.CategoryRevenue, 0, len(keys))
	for _, k := range keys {
		out = append(out, *groups[k])
	}
	return out
}

// averageRent is the mean parsed rate across occupied properties, 0 when
// nothing is occupied.
func averageRent(occupied []models.Property) float64 {
	if len(occupied) == 0 {
		return 0
	}
	var total float64
	for _, p := range occupied {
		total += money.Parse(p.Rate)
	}
	return total / float64(len(occupied))
}
