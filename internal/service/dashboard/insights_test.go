package dashboard

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brickbase/estate-backend/internal/domain/models"
)

func TestBuildInsightsQuietPortfolio(t *testing.T) {
	insights := buildInsights(insightInputs{})
	assert.NotNil(t, insights)
	assert.Empty(t, insights)
}

func TestBuildInsightsLowConversion(t *testing.T) {
	// 1 of 20 converted: well under the 10% floor.
	insights := buildInsights(insightInputs{totalLeads: 20, convertedLeads: 1})
	require.Len(t, insights, 1)
	assert.Contains(t, insights[0], "Low lead conversion")

	// Exactly at the floor: no warning.
	insights = buildInsights(insightInputs{totalLeads: 20, convertedLeads: 2})
	assert.Empty(t, insights)

	// Too few leads to judge.
	insights = buildInsights(insightInputs{totalLeads: 5, convertedLeads: 0})
	assert.Empty(t, insights)
}

func TestBuildInsightsArrears(t *testing.T) {
	insights := buildInsights(insightInputs{outstandingRent: 65500})
	require.Len(t, insights, 1)
	assert.Contains(t, insights[0], "65,500")

	// At the threshold: no warning.
	insights = buildInsights(insightInputs{outstandingRent: 50000})
	assert.Empty(t, insights)
}

func TestBuildInsightsPGCapacity(t *testing.T) {
	byType := []models.CategoryRevenue{
		{Category: models.CategoryRent, Count: 30},
		{Category: models.CategoryPG, Count: 11},
	}
	insights := buildInsights(insightInputs{byType: byType})
	require.Len(t, insights, 1)
	assert.True(t, strings.HasPrefix(insights[0], "PG category is performing well"))

	// Count 10 is not over the floor.
	byType[1].Count = 10
	assert.Empty(t, buildInsights(insightInputs{byType: byType}))
}

func TestBuildInsightsLeadSurge(t *testing.T) {
	insights := buildInsights(insightInputs{leadGrowth: 42.4})
	require.Len(t, insights, 1)
	assert.Contains(t, insights[0], "42%")

	assert.Empty(t, buildInsights(insightInputs{leadGrowth: 20}))
}

func TestBuildInsightsOrderAndIndependence(t *testing.T) {
	insights := buildInsights(insightInputs{
		totalLeads:      100,
		convertedLeads:  2,
		outstandingRent: 80000,
		byType:          []models.CategoryRevenue{{Category: models.CategoryPG, Count: 12}},
		leadGrowth:      35,
	})

	require.Len(t, insights, 4, "every rule fires independently")
	assert.Contains(t, insights[0], "Low lead conversion")
	assert.Contains(t, insights[1], "Outstanding rent")
	assert.Contains(t, insights[2], "PG category")
	assert.Contains(t, insights[3], "Leads are up")
}
