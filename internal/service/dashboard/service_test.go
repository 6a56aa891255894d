package dashboard

import (
	"context"
	"errors"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/brickbase/estate-backend/internal/domain/models"
)

// fakeStore serves every store interface from in-memory slices, mirroring
// the real repositories' filter semantics.
type fakeStore struct {
	properties   []models.Property
	tenants      []models.Tenant
	leads        []models.Lead
	appointments []models.Appointment
	target       float64
	err          error
}

func (f *fakeStore) CountAll(ctx context.Context) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	return int64(len(f.properties)), nil
}

func (f *fakeStore) CountOccupied(ctx context.Context) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	var n int64
	for _, p := range f.properties {
		if !p.Availability {
			n++
		}
	}
	return n, nil
}

func (f *fakeStore) CountOccupiedBetween(ctx context.Context, start, end time.Time) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	var n int64
	for _, p := range f.properties {
		if !p.Availability && inWindow(p.UpdatedAt, start, end) {
			n++
		}
	}
	return n, nil
}

func (f *fakeStore) FindAll(ctx context.Context) ([]models.Property, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.properties, nil
}

func (f *fakeStore) FindOccupied(ctx context.Context) ([]models.Property, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []models.Property
	for _, p := range f.properties {
		if !p.Availability {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeStore) FindOccupiedBetween(ctx context.Context, start, end time.Time) ([]models.Property, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []models.Property
	for _, p := range f.properties {
		if !p.Availability && inWindow(p.UpdatedAt, start, end) {
			out = append(out, p)
		}
	}
	return out, nil
}

type fakeTenantStore struct{ inner *fakeStore }

func (f fakeTenantStore) FindAll(ctx context.Context) ([]models.Tenant, error) {
	if f.inner.err != nil {
		return nil, f.inner.err
	}
	return f.inner.tenants, nil
}

type fakeLeadStore struct{ inner *fakeStore }

func (f fakeLeadStore) CountAll(ctx context.Context) (int64, error) {
	if f.inner.err != nil {
		return 0, f.inner.err
	}
	return int64(len(f.inner.leads)), nil
}

func (f fakeLeadStore) CountCreatedBetween(ctx context.Context, start, end time.Time) (int64, error) {
	if f.inner.err != nil {
		return 0, f.inner.err
	}
	var n int64
	for _, l := range f.inner.leads {
		if inWindow(l.CreatedAt, start, end) {
			n++
		}
	}
	return n, nil
}

func (f fakeLeadStore) CountByStatusGrouped(ctx context.Context) (map[string]int64, error) {
	if f.inner.err != nil {
		return nil, f.inner.err
	}
	counts := make(map[string]int64)
	for _, l := range f.inner.leads {
		counts[l.Status]++
	}
	return counts, nil
}

func (f fakeLeadStore) FindActive(ctx context.Context, limit int64) ([]models.Lead, error) {
	if f.inner.err != nil {
		return nil, f.inner.err
	}
	var out []models.Lead
	for _, l := range f.inner.leads {
		if l.Status != models.LeadStatusConverted && l.Status != models.LeadStatusArchived {
			out = append(out, l)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UpdatedAt.After(out[j].UpdatedAt) })
	if int64(len(out)) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f fakeLeadStore) FindByStatus(ctx context.Context, status string) ([]models.Lead, error) {
	if f.inner.err != nil {
		return nil, f.inner.err
	}
	var out []models.Lead
	for _, l := range f.inner.leads {
		if l.Status == status {
			out = append(out, l)
		}
	}
	return out, nil
}

type fakeAppointmentStore struct{ inner *fakeStore }

func (f fakeAppointmentStore) CountByStatusBetween(ctx context.Context, status string, start, end time.Time) (int64, error) {
	if f.inner.err != nil {
		return 0, f.inner.err
	}
	var n int64
	for _, a := range f.inner.appointments {
		if a.Status == status && inWindow(a.CreatedAt, start, end) {
			n++
		}
	}
	return n, nil
}

type fakeTargetStore struct{ inner *fakeStore }

func (f fakeTargetStore) GetValue(ctx context.Context, key string) (float64, error) {
	if f.inner.err != nil {
		return 0, f.inner.err
	}
	return f.inner.target, nil
}

var testNow = time.Date(2024, time.June, 15, 12, 0, 0, 0, time.UTC)

func newTestService(store *fakeStore) *Service {
	svc := NewService(store, fakeTenantStore{store}, fakeLeadStore{store}, fakeAppointmentStore{store}, fakeTargetStore{store}, nil)
	svc.now = func() time.Time { return testNow }
	return svc
}

func TestComprehensiveStatsEmptyStore(t *testing.T) {
	svc := newTestService(&fakeStore{})

	payload, err := svc.ComprehensiveStats(context.Background())
	require.NoError(t, err)

	assert.Zero(t, payload.KPIs.OccupancyRate)
	assert.Zero(t, payload.KPIs.OutstandingRent)
	assert.Zero(t, payload.KPIs.RevenueThisMonth)
	assert.Zero(t, payload.KPIs.VacantBeds)

	require.Len(t, payload.RevenueIntelligence.Trend, 6)
	for _, p := range payload.RevenueIntelligence.Trend {
		assert.Zero(t, p.Amount)
	}

	assert.Empty(t, payload.Insights)
	assert.NotNil(t, payload.Insights)
	assert.Empty(t, payload.OccupancyMap)
	assert.Empty(t, payload.SmartQueue)
	assert.Equal(t, "100%", payload.TenantHealth.Retention)
}

func TestComprehensiveStatsOccupiedPGPortfolio(t *testing.T) {
	store := &fakeStore{}
	for i := 0; i < 20; i++ {
		category := models.CategoryRent
		if i < 15 {
			category = models.CategoryPG
		}
		store.properties = append(store.properties, models.Property{
			ID:           primitive.NewObjectID(),
			Name:         "Unit",
			Rate:         "10,000",
			Category:     category,
			Availability: false,
			UpdatedAt:    testNow.Add(-48 * time.Hour),
		})
	}

	svc := newTestService(store)
	payload, err := svc.ComprehensiveStats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, float64(100), payload.KPIs.OccupancyRate)
	assert.Zero(t, payload.KPIs.VacantBeds)

	var pg *models.CategoryRevenue
	var totalCount int64
	for i, g := range payload.RevenueIntelligence.ByType {
		totalCount += g.Count
		if g.Category == models.CategoryPG {
			pg = &payload.RevenueIntelligence.ByType[i]
		}
	}
	require.NotNil(t, pg)
	assert.Equal(t, int64(15), pg.Count)
	assert.Equal(t, float64(150000), pg.Total)
	assert.Equal(t, int64(20), totalCount)

	found := false
	for _, s := range payload.Insights {
		if strings.HasPrefix(s, "PG category is performing well") {
			found = true
		}
	}
	assert.True(t, found, "expected PG capacity insight in %v", payload.Insights)

	assert.Equal(t, float64(10000), payload.RevenueIntelligence.AverageRent)
}

func TestLeadGrowthZeroBaseline(t *testing.T) {
	store := &fakeStore{}
	for i := 0; i < 5; i++ {
		store.leads = append(store.leads, models.Lead{
			Status:    models.LeadStatusNew,
			CreatedAt: testNow.Add(-36 * time.Hour),
			UpdatedAt: testNow.Add(-36 * time.Hour),
		})
	}

	svc := newTestService(store)
	payload, err := svc.ComprehensiveStats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(5), payload.KPIs.NewLeads7Days)
	assert.Zero(t, payload.KPIs.LeadGrowth, "previous week empty, growth must guard to 0")
}

func TestComprehensiveStatsIdempotent(t *testing.T) {
	store := &fakeStore{
		properties: []models.Property{
			{ID: primitive.NewObjectID(), Name: "A", Rate: "12000", Category: models.CategoryRent, Availability: false, UpdatedAt: testNow.Add(-time.Hour)},
			{ID: primitive.NewObjectID(), Name: "B", Rate: "8000", Category: models.CategorySale, Availability: true, UpdatedAt: testNow.Add(-time.Hour)},
		},
		tenants: []models.Tenant{
			{
				Name:      "T",
				Rent:      "12,000",
				StartDate: testNow.AddDate(0, -3, 0),
				Payments: []models.Payment{
					{DateOfPayment: testNow.Add(-24 * time.Hour), Amount: "12000", ModeOfPayment: models.PaymentModeOnline},
				},
			},
		},
		leads: []models.Lead{
			{Status: models.LeadStatusContacted, Priority: models.LeadPriorityHigh, CreatedAt: testNow.Add(-48 * time.Hour), UpdatedAt: testNow.Add(-2 * time.Hour)},
			{Status: models.LeadStatusConverted, CreatedAt: testNow.AddDate(0, 0, -20), UpdatedAt: testNow.AddDate(0, 0, -10)},
		},
	}

	svc := newTestService(store)
	first, err := svc.ComprehensiveStats(context.Background())
	require.NoError(t, err)
	second, err := svc.ComprehensiveStats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestComprehensiveStatsAllOrNothing(t *testing.T) {
	store := &fakeStore{err: errors.New("connection reset")}
	svc := newTestService(store)

	_, err := svc.ComprehensiveStats(context.Background())
	require.Error(t, err)
}

func TestRevenueSummary(t *testing.T) {
	store := &fakeStore{
		properties: []models.Property{
			{Rate: "10000", Category: models.CategoryRent, Availability: false},
			{Rate: "2,50,000", Category: models.CategorySale, Availability: false},
			{Rate: "9000", Category: models.CategoryRent, Availability: true},
		},
	}

	svc := newTestService(store)
	summary, err := svc.RevenueSummary(context.Background())
	require.NoError(t, err)

	assert.Equal(t, float64(260000), summary.RevenueUnavailable)
	assert.Equal(t, float64(250000), summary.RevenueSales)
}

func TestMonthlyRevenue(t *testing.T) {
	store := &fakeStore{
		target: 500000,
		properties: []models.Property{
			// Occupied this month.
			{Rate: "₹1,00,000", Availability: false, UpdatedAt: testNow.Add(-24 * time.Hour)},
			// Occupied two months ago; outside the window.
			{Rate: "90000", Availability: false, UpdatedAt: testNow.AddDate(0, -2, 0)},
			// Still vacant.
			{Rate: "80000", Availability: true, UpdatedAt: testNow.Add(-time.Hour)},
		},
	}

	svc := newTestService(store)
	out, err := svc.MonthlyRevenue(context.Background())
	require.NoError(t, err)

	assert.Equal(t, float64(500000), out.Target)
	assert.Equal(t, float64(100000), out.MonthlyRevenue)
}

func TestMonthlyRevenueNoTarget(t *testing.T) {
	svc := newTestService(&fakeStore{})

	out, err := svc.MonthlyRevenue(context.Background())
	require.NoError(t, err)
	assert.Zero(t, out.Target)
	assert.Zero(t, out.MonthlyRevenue)
}
