// Package dashboard computes the admin analytics payloads: occupancy,
// revenue, lead-funnel and trend metrics derived from the raw transactional
// collections on every request. It is strictly read-only over the entity
// store and holds no state between calls.
package dashboard

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/brickbase/estate-backend/internal/domain/models"
	"github.com/brickbase/estate-backend/pkg/money"
)

const smartQueueSize = 5

// PropertyStore is the slice of the property repository the engine reads.
type PropertyStore interface {
	CountAll(ctx context.Context) (int64, error)
	CountOccupied(ctx context.Context) (int64, error)
	CountOccupiedBetween(ctx context.Context, start, end time.Time) (int64, error)
	FindAll(ctx context.Context) ([]models.Property, error)
	FindOccupied(ctx context.Context) ([]models.Property, error)
	FindOccupiedBetween(ctx context.Context, start, end time.Time) ([]models.Property, error)
}

// TenantStore supplies tenants with their embedded payment history.
type TenantStore interface {
	FindAll(ctx context.Context) ([]models.Tenant, error)
}

// LeadStore is the slice of the lead repository the engine reads.
type LeadStore interface {
	CountAll(ctx context.Context) (int64, error)
	CountCreatedBetween(ctx context.Context, start, end time.Time) (int64, error)
	CountByStatusGrouped(ctx context.Context) (map[string]int64, error)
	FindActive(ctx context.Context, limit int64) ([]models.Lead, error)
	FindByStatus(ctx context.Context, status string) ([]models.Lead, error)
}

// AppointmentStore counts bookings per status and window.
type AppointmentStore interface {
	CountByStatusBetween(ctx context.Context, status string, start, end time.Time) (int64, error)
}

// TargetStore resolves stored KPI goals.
type TargetStore interface {
	GetValue(ctx context.Context, key string) (float64, error)
}

// Service is the dashboard composer. All three operations recompute from the
// store on every call; freshness is preferred over caching here.
type Service struct {
	properties   PropertyStore
	tenants      TenantStore
	leads        LeadStore
	appointments AppointmentStore
	targets      TargetStore
	logger       *zap.Logger
	now          func() time.Time
}

// NewService wires the dashboard engine.
func NewService(properties PropertyStore, tenants TenantStore, leads LeadStore, appointments AppointmentStore, targets TargetStore, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		properties:   properties,
		tenants:      tenants,
		leads:        leads,
		appointments: appointments,
		targets:      targets,
		logger:       logger,
		now:          time.Now,
	}
}

// snapshot is everything one dashboard computation reads from the store.
// Derived numbers are computed from it in memory afterwards, so a payload is
// a pure function of a snapshot.
type snapshot struct {
	now time.Time

	totalProperties    int64
	occupiedProperties int64
	occupiedThisMonth  int64
	occupiedPrevMonth  int64
	properties         []models.Property

	tenants []models.Tenant

	totalLeads        int64
	leadsByStatus     map[string]int64
	newLeads7Days     int64
	newLeadsPrev7Days int64
	activeLeads       []models.Lead
	convertedLeads    []models.Lead

	bookings7Days     int64
	bookingsPrev7Days int64
}

// fetchSnapshot fans out every independent store read and waits for the lot.
// Any failure cancels the remaining reads and aborts the whole computation;
// partial snapshots are never used.
func (s *Service) fetchSnapshot(ctx context.Context) (snapshot, error) {
	now := s.now()
	curMonth := monthStart(now)
	prevMonth := curMonth.AddDate(0, -1, 0)
	weekAgo := now.Add(-7 * 24 * time.Hour)
	twoWeeksAgo := now.Add(-14 * 24 * time.Hour)

	snap := snapshot{now: now}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		snap.totalProperties, err = s.properties.CountAll(ctx)
		return err
	})
	g.Go(func() (err error) {
		snap.occupiedProperties, err = s.properties.CountOccupied(ctx)
		return err
	})
	g.Go(func() (err error) {
		snap.occupiedThisMonth, err = s.properties.CountOccupiedBetween(ctx, curMonth, now)
		return err
	})
	g.Go(func() (err error) {
		snap.occupiedPrevMonth, err = s.properties.CountOccupiedBetween(ctx, prevMonth, curMonth)
		return err
	})
	g.Go(func() (err error) {
		snap.properties, err = s.properties.FindAll(ctx)
		return err
	})
	g.Go(func() (err error) {
		snap.tenants, err = s.tenants.FindAll(ctx)
		return err
	})
	g.Go(func() (err error) {
		snap.totalLeads, err = s.leads.CountAll(ctx)
		return err
	})
	g.Go(func() (err error) {
		snap.leadsByStatus, err = s.leads.CountByStatusGrouped(ctx)
		return err
	})
	g.Go(func() (err error) {
		snap.newLeads7Days, err = s.leads.CountCreatedBetween(ctx, weekAgo, now)
		return err
	})
	g.Go(func() (err error) {
		snap.newLeadsPrev7Days, err = s.leads.CountCreatedBetween(ctx, twoWeeksAgo, weekAgo)
		return err
	})
	g.Go(func() (err error) {
		snap.activeLeads, err = s.leads.FindActive(ctx, smartQueueSize)
		return err
	})
	g.Go(func() (err error) {
		snap.convertedLeads, err = s.leads.FindByStatus(ctx, models.LeadStatusConverted)
		return err
	})
	g.Go(func() (err error) {
		snap.bookings7Days, err = s.appointments.CountByStatusBetween(ctx, models.AppointmentConfirmed, weekAgo, now)
		return err
	})
	g.Go(func() (err error) {
		snap.bookingsPrev7Days, err = s.appointments.CountByStatusBetween(ctx, models.AppointmentConfirmed, twoWeeksAgo, weekAgo)
		return err
	})

	if err := g.Wait(); err != nil {
		return snapshot{}, err
	}
	return snap, nil
}

// ComprehensiveStats assembles the full dashboard payload. It either returns
// the complete payload or an error; no partial results.
func (s *Service) ComprehensiveStats(ctx context.Context) (models.DashboardPayload, error) {
	started := s.now()

	snap, err := s.fetchSnapshot(ctx)
	if err != nil {
		return models.DashboardPayload{}, err
	}

	payload := compose(snap)

	s.logger.Debug("comprehensive stats computed",
		zap.Int64("properties", snap.totalProperties),
		zap.Int64("leads", snap.totalLeads),
		zap.Duration("took", s.now().Sub(started)))

	return payload, nil
}

// compose derives the payload from a snapshot. Pure: two calls over the same
// snapshot yield identical payloads.
func compose(snap snapshot) models.DashboardPayload {
	occupied := make([]models.Property, 0, len(snap.properties))
	for _, p := range snap.properties {
		if !p.Availability {
			occupied = append(occupied, p)
		}
	}

	kpis := buildKPIs(snap)
	byType := revenueByCategory(occupied)

	return models.DashboardPayload{
		KPIs: kpis,
		RevenueIntelligence: models.RevenueIntelligence{
			Trend:       revenueTrend(snap.tenants, snap.now),
			ByType:      byType,
			AverageRent: averageRent(occupied),
		},
		OccupancyMap: buildOccupancyMap(snap.properties, snap.tenants),
		LeadFunnel:   buildLeadFunnel(snap.totalLeads, snap.leadsByStatus),
		SmartQueue:   buildSmartQueue(snap.activeLeads, snap.now),
		Insights: buildInsights(insightInputs{
			totalLeads:      snap.totalLeads,
			convertedLeads:  snap.leadsByStatus[models.LeadStatusConverted],
			outstandingRent: kpis.OutstandingRent,
			byType:          byType,
			leadGrowth:      kpis.LeadGrowth,
		}),
		TenantHealth: buildTenantHealth(snap.tenants, snap.convertedLeads, snap.now),
	}
}

// RevenueSummary totals the parsed rate of occupied properties, overall and
// for the sale category. Kept separate from ComprehensiveStats for cheap
// widget polling.
func (s *Service) RevenueSummary(ctx context.Context) (models.RevenueSummary, error) {
	occupied, err := s.properties.FindOccupied(ctx)
	if err != nil {
		return models.RevenueSummary{}, err
	}

	var summary models.RevenueSummary
	for _, p := range occupied {
		rate := money.Parse(p.Rate)
		summary.RevenueUnavailable += rate
		if p.Category == models.CategorySale {
			summary.RevenueSales += rate
		}
	}
	return summary, nil
}

// MonthlyRevenue compares this month's occupancy revenue against the stored
// target. Properties count toward the month their occupancy state last
// changed in, per the updatedAt proxy.
func (s *Service) MonthlyRevenue(ctx context.Context) (models.MonthlyRevenue, error) {
	now := s.now()
	curMonth := monthStart(now)
	nextMonth := curMonth.AddDate(0, 1, 0)

	var out models.MonthlyRevenue

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		out.Target, err = s.targets.GetValue(ctx, models.TargetMonthlyRevenue)
		return err
	})
	g.Go(func() error {
		occupied, err := s.properties.FindOccupiedBetween(ctx, curMonth, nextMonth)
		if err != nil {
			return err
		}
		for _, p := range occupied {
			out.MonthlyRevenue += money.Parse(p.Rate)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return models.MonthlyRevenue{}, err
	}
	return out, nil
}
