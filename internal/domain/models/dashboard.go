package models

// KPIBlock is the headline card row of the admin dashboard. Growth fields are
// percentages comparing the current window against the immediately preceding
// window of equal length, 0 when the baseline is empty.
type KPIBlock struct {
	RevenueThisMonth  float64 `json:"revenueThisMonth"`
	RevenueGrowth     float64 `json:"revenueGrowth"`
	OccupancyRate     float64 `json:"occupancyRate"`
	OccupancyGrowth   float64 `json:"occupancyGrowth"`
	VacantBeds        int64   `json:"vacantBeds"`
	NewLeads7Days     int64   `json:"newLeads7Days"`
	LeadGrowth        float64 `json:"leadGrowth"`
	BookingsConfirmed int64   `json:"bookingsConfirmed"`
	BookingGrowth     float64 `json:"bookingGrowth"`
	OutstandingRent   float64 `json:"outstandingRent"`
	TotalLeads        int64   `json:"totalLeads"`
}

// TrendPoint is one calendar-month bucket of the revenue time series.
type TrendPoint struct {
	Month  string  `json:"month"`
	Amount float64 `json:"amount"`
}

// CategoryRevenue groups occupied properties by category. The _id key name is
// kept for compatibility with the dashboard frontend.
type CategoryRevenue struct {
	Category string  `json:"_id"`
	Total    float64 `json:"total"`
	Count    int64   `json:"count"`
}

// RevenueIntelligence is the revenue panel of the comprehensive payload.
type RevenueIntelligence struct {
	Trend       []TrendPoint      `json:"trend"`
	ByType      []CategoryRevenue `json:"byType"`
	AverageRent float64           `json:"averageRent"`
}

// OccupancyUnit is one row of the per-property occupancy map.
type OccupancyUnit struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	FlatNo string  `json:"flatNo"`
	Status string  `json:"status"`
	Rent   float64 `json:"rent"`
	Type   string  `json:"type"`
}

// FunnelStage is one step of the lead funnel.
type FunnelStage struct {
	Stage string `json:"stage"`
	Value int64  `json:"value"`
}

// LeadFunnel summarizes lead progression. Total counts every lead document;
// archived leads are excluded from the stages.
type LeadFunnel struct {
	Total  int64         `json:"total"`
	Funnel []FunnelStage `json:"funnel"`
}

// QueueEntry is one follow-up candidate in the smart queue.
type QueueEntry struct {
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Type     string `json:"type"`
	Activity string `json:"activity"`
	Temp     string `json:"temp"`
	Icon     string `json:"icon"`
}

// TenantHealth is the tenant-portfolio summary card.
type TenantHealth struct {
	AtRisk             int    `json:"atRisk"`
	Retention          string `json:"retention"`
	ResolutionVelocity string `json:"resolutionVelocity"`
}

// DashboardPayload is the full response of GET /dashboard/comprehensive.
type DashboardPayload struct {
	KPIs                KPIBlock            `json:"kpis"`
	RevenueIntelligence RevenueIntelligence `json:"revenueIntelligence"`
	OccupancyMap        []OccupancyUnit     `json:"occupancyMap"`
	LeadFunnel          LeadFunnel          `json:"leadFunnel"`
	SmartQueue          []QueueEntry        `json:"smartQueue"`
	Insights            []string            `json:"insights"`
	TenantHealth        TenantHealth        `json:"tenantHealth"`
}

// RevenueSummary is the response of GET /dashboard/revenue.
type RevenueSummary struct {
	RevenueUnavailable float64 `json:"revenueUnavailable"`
	RevenueSales       float64 `json:"revenueSales"`
}

// MonthlyRevenue is the response of GET /dashboard/monthly-revenue.
type MonthlyRevenue struct {
	Target         float64 `json:"target"`
	MonthlyRevenue float64 `json:"monthlyRevenue"`
}
