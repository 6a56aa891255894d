package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brickbase/estate-backend/internal/domain/models"
)

type stubDashboardService struct {
	payload models.DashboardPayload
	summary models.RevenueSummary
	monthly models.MonthlyRevenue
	err     error
}

func (s *stubDashboardService) ComprehensiveStats(ctx context.Context) (models.DashboardPayload, error) {
	return s.payload, s.err
}

func (s *stubDashboardService) RevenueSummary(ctx context.Context) (models.RevenueSummary, error) {
	return s.summary, s.err
}

func (s *stubDashboardService) MonthlyRevenue(ctx context.Context) (models.MonthlyRevenue, error) {
	return s.monthly, s.err
}

func dashboardRouter(svc DashboardService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewDashboardHandler(svc, 5*time.Second, nil)
	r := gin.New()
	r.GET("/dashboard/comprehensive", h.Comprehensive)
	r.GET("/dashboard/revenue", h.Revenue)
	r.GET("/dashboard/monthly-revenue", h.Monthly)
	return r
}

func TestDashboardComprehensiveOK(t *testing.T) {
	svc := &stubDashboardService{
		payload: models.DashboardPayload{
			KPIs:     models.KPIBlock{TotalLeads: 4, OccupancyRate: 75},
			Insights: []string{},
		},
	}
	r := dashboardRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/dashboard/comprehensive", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var got map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	kpis, ok := got["kpis"].(map[string]any)
	require.True(t, ok)
	assert.EqualValues(t, 4, kpis["totalLeads"])
	assert.EqualValues(t, 75, kpis["occupancyRate"])
	// insights must serialize as [] even when empty
	assert.Equal(t, []any{}, got["insights"])
}

func TestDashboardErrorsAreGeneric(t *testing.T) {
	svc := &stubDashboardService{err: errors.New("mongo: connection reset")}
	r := dashboardRouter(svc)

	cases := []struct {
		path    string
		message string
	}{
		{"/dashboard/comprehensive", "Failed to fetch comprehensive stats"},
		{"/dashboard/revenue", "Failed to fetch revenue summary"},
		{"/dashboard/monthly-revenue", "Failed to fetch monthly revenue"},
	}
	for _, tc := range cases {
		t.Run(tc.path, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, tc.path, nil)
			r.ServeHTTP(w, req)

			require.Equal(t, http.StatusInternalServerError, w.Code)

			var got map[string]string
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
			assert.Equal(t, tc.message, got["error"])
			assert.NotContains(t, w.Body.String(), "mongo")
		})
	}
}

func TestDashboardMonthlyRevenueOK(t *testing.T) {
	svc := &stubDashboardService{
		monthly: models.MonthlyRevenue{Target: 50000, MonthlyRevenue: 42000},
	}
	r := dashboardRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/dashboard/monthly-revenue", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var got models.MonthlyRevenue
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, float64(42000), got.MonthlyRevenue)
	assert.Equal(t, float64(50000), got.Target)
}
