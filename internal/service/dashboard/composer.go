package dashboard

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/brickbase/estate-backend/internal/domain/models"
	"github.com/brickbase/estate-backend/pkg/money"
)

// Occupancy map statuses.
const (
	statusOccupied = "occupied"
	statusVacant   = "vacant"
)

// Lead temperatures and their queue icons.
const (
	tempHot  = "hot"
	tempWarm = "warm"
	tempCold = "cold"
)

var tempIcons = map[string]string{
	tempHot:  "flame",
	tempWarm: "sun",
	tempCold: "snowflake",
}

// buildOccupancyMap lists every property with its occupancy state. The flat
// number lives on the tenant document, so occupied units are joined against
// the tenant list in memory.
func buildOccupancyMap(properties []models.Property, tenants []models.Tenant) []models.OccupancyUnit {
	tenantByProperty := make(map[primitive.ObjectID]models.Tenant, len(tenants))
	for _, t := range tenants {
		tenantByProperty[t.PropertyID] = t
	}

	units := make([]models.OccupancyUnit, 0, len(properties))
	for _, p := range properties {
		unit := models.OccupancyUnit{
			ID:     p.ID.Hex(),
			Name:   p.Name,
			Status: statusVacant,
			Rent:   money.Parse(p.Rate),
			Type:   p.Category,
		}
		if unit.Type == "" {
			unit.Type = "other"
		}
		if !p.Availability {
			unit.Status = statusOccupied
			if t, ok := tenantByProperty[p.ID]; ok {
				unit.FlatNo = t.FlatNo
			}
		}
		units = append(units, unit)
	}
	return units
}

// buildLeadFunnel arranges the per-status counts into the four forward
// stages. Archived leads are excluded from the stages but remain in total,
// which counts every lead document.
func buildLeadFunnel(total int64, byStatus map[string]int64) models.LeadFunnel {
	return models.LeadFunnel{
		Total: total,
		Funnel: []models.FunnelStage{
			{Stage: "New", Value: byStatus[models.LeadStatusNew]},
			{Stage: "Inquiry", Value: byStatus[models.LeadStatusInquiry]},
			{Stage: "Contacted", Value: byStatus[models.LeadStatusContacted]},
			{Stage: "Converted", Value: byStatus[models.LeadStatusConverted]},
		},
	}
}

// buildSmartQueue turns the most recently touched active leads into
// follow-up queue entries with a hot/warm/cold temperature.
func buildSmartQueue(leads []models.Lead, now time.Time) []models.QueueEntry {
	queue := make([]models.QueueEntry, 0, len(leads))
	for _, l := range leads {
		temp := leadTemperature(l, now)

		name := l.ContactInfo.Name
		if name == "" {
			name = "Unknown lead"
		}
		leadType := l.Source
		if leadType == "" {
			leadType = "website"
		}

		queue = append(queue, models.QueueEntry{
			Name:     name,
			Phone:    l.ContactInfo.Phone,
			Type:     leadType,
			Activity: leadActivity(l, now),
			Temp:     temp,
			Icon:     tempIcons[temp],
		})
	}
	return queue
}

// leadTemperature classifies follow-up urgency: high-priority or same-day
// leads are hot, medium-priority or three-day-old leads warm, the rest cold.
func leadTemperature(l models.Lead, now time.Time) string {
	age := now.Sub(l.UpdatedAt)
	switch {
	case l.Priority == models.LeadPriorityHigh || age < 24*time.Hour:
		return tempHot
	case l.Priority == models.LeadPriorityMedium || age < 72*time.Hour:
		return tempWarm
	default:
		return tempCold
	}
}

var leadActivityVerbs = map[string]string{
	models.LeadStatusNew:       "Inquired",
	models.LeadStatusInquiry:   "Inquired",
	models.LeadStatusContacted: "Contacted",
	models.LeadStatusConverted: "Converted",
	models.LeadStatusArchived:  "Archived",
}

func leadActivity(l models.Lead, now time.Time) string {
	verb, ok := leadActivityVerbs[l.Status]
	if !ok {
		verb = "Updated"
	}
	return verb + " " + relativeAge(now.Sub(l.UpdatedAt))
}

// relativeAge renders a duration as a short "N ago" label.
func relativeAge(d time.Duration) string {
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	default:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	}
}

// buildTenantHealth summarizes the tenant portfolio: how many are behind on
// rent, the retention share that implies, and how quickly converted leads
// moved through the funnel.
func buildTenantHealth(tenants []models.Tenant, converted []models.Lead, asOf time.Time) models.TenantHealth {
	atRisk := 0
	for _, t := range tenants {
		if IsTenantOutstanding(t, asOf) {
			atRisk++
		}
	}

	retention := "100%"
	if len(tenants) > 0 {
		kept := float64(len(tenants)-atRisk) / float64(len(tenants)) * 100
		retention = fmt.Sprintf("%.0f%%", kept)
	}

	// Leads without a usable timeline (UpdatedAt not after CreatedAt) are
	// excluded from both sides of the average.
	velocity := "0 days"
	var total time.Duration
	timed := 0
	for _, l := range converted {
		if age := l.UpdatedAt.Sub(l.CreatedAt); age > 0 {
			total += age
			timed++
		}
	}
	if timed > 0 {
		days := total.Hours() / 24 / float64(timed)
		velocity = fmt.Sprintf("%.1f days", days)
	}

	return models.TenantHealth{
		AtRisk:             atRisk,
		Retention:          retention,
		ResolutionVelocity: velocity,
	}
}
