package dashboard

import (
	"fmt"
	"math"

	"github.com/brickbase/estate-backend/internal/domain/models"
	"github.com/brickbase/estate-backend/pkg/money"
)

// Advisory thresholds. These are deliberate constants, not configuration:
// tuning them is an edit here, not a contract change.
const (
	insightMinLeadsForConversion = 5
	insightConversionFloor       = 0.10
	insightArrearsCeiling        = 50000
	insightPGCountFloor          = 10
	insightLeadGrowthCeiling     = 20
)

// insightInputs is the metric slice the rule set inspects.
type insightInputs struct {
	totalLeads      int64
	convertedLeads  int64
	outstandingRent float64
	byType          []models.CategoryRevenue
	leadGrowth      float64
}

// buildInsights runs the fixed, ordered rule set. Each rule independently
// contributes at most one string; no rule suppresses another. The result is
// never nil so the payload serializes as [].
func buildInsights(in insightInputs) []string {
	insights := []string{}

	if in.totalLeads > insightMinLeadsForConversion {
		conversion := float64(in.convertedLeads) / float64(in.totalLeads)
		if conversion < insightConversionFloor {
			insights = append(insights, fmt.Sprintf(
				"Low lead conversion: only %d of %d leads converted. Review follow-up speed on new inquiries.",
				in.convertedLeads, in.totalLeads))
		}
	}

	if in.outstandingRent > insightArrearsCeiling {
		insights = append(insights, fmt.Sprintf(
			"Outstanding rent has crossed ₹%s. Prioritise collections this week.",
			money.Format(in.outstandingRent)))
	}

	for _, g := range in.byType {
		if g.Category == models.CategoryPG && g.Count > insightPGCountFloor {
			insights = append(insights, fmt.Sprintf(
				"PG category is performing well with %d occupied units. Consider expanding PG capacity.",
				g.Count))
			break
		}
	}

	if in.leadGrowth > insightLeadGrowthCeiling {
		insights = append(insights, fmt.Sprintf(
			"Leads are up %d%% week over week. Make sure the team can absorb the extra volume.",
			int(math.Round(in.leadGrowth))))
	}

	return insights
}
