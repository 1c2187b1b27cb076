// Package dashboard derives summary statistics and activity feeds from
// already-loaded entity lists. Every function is pure: the clock is passed
// in and no input is mutated.
package dashboard

import (
	"sort"
	"time"

	"github.com/RaymondAkiiki/property-management-webapp-sub001/internal/domain/maintenance"
	"github.com/RaymondAkiiki/property-management-webapp-sub001/internal/domain/property"
	"github.com/RaymondAkiiki/property-management-webapp-sub001/internal/domain/tenant"
	"github.com/google/uuid"
)

// Feed windows and limits
const (
	UpcomingWindow = 30 * 24 * time.Hour
	UpcomingLimit  = 5
	RecentWindow   = 7 * 24 * time.Hour
	RecentLimit    = 10
)

// PropertyStats partitions properties by occupancy.
// A property counts as occupied when it has at least one unit and every
// unit is occupied; all other properties are vacant.
type PropertyStats struct {
	Total         int `json:"total"`
	Occupied      int `json:"occupied"`
	Vacant        int `json:"vacant"`
	TotalUnits    int `json:"total_units"`
	OccupiedUnits int `json:"occupied_units"`
	VacantUnits   int `json:"vacant_units"`
}

// ComputePropertyStats computes PropertyStats
func ComputePropertyStats(properties []property.Property) PropertyStats {
	var s PropertyStats
	for i := range properties {
		p := &properties[i]
		s.Total++
		if p.IsFullyOccupied() {
			s.Occupied++
		}
		occupied := p.OccupiedUnitCount()
		s.TotalUnits += len(p.Units)
		s.OccupiedUnits += occupied
	}
	s.Vacant = s.Total - s.Occupied
	s.VacantUnits = s.TotalUnits - s.OccupiedUnits
	return s
}

// TenantStats counts tenants by exact status match over the canonical enum
type TenantStats struct {
	Total    int `json:"total"`
	Active   int `json:"active"`
	Inactive int `json:"inactive"`
	Eviction int `json:"eviction"`
	MoveOut  int `json:"moveout"`
}

// ComputeTenantStats computes TenantStats. Statuses outside the canonical
// enum only count towards Total.
func ComputeTenantStats(tenants []tenant.Tenant) TenantStats {
	var s TenantStats
	for i := range tenants {
		s.Total++
		switch tenants[i].Status {
		case tenant.StatusActive:
			s.Active++
		case tenant.StatusInactive:
			s.Inactive++
		case tenant.StatusEviction:
			s.Eviction++
		case tenant.StatusMoveOut:
			s.MoveOut++
		}
	}
	return s
}

// EventKind identifies an upcoming event
type EventKind string

const (
	EventLeaseEnding            EventKind = "lease_ending"
	EventMaintenanceAppointment EventKind = "maintenance_appointment"
)

// UpcomingEvent is a dated item in the upcoming feed
type UpcomingEvent struct {
	Kind       EventKind `json:"kind"`
	Date       time.Time `json:"date"`
	SubjectID  uuid.UUID `json:"subject_id"`
	PropertyID uuid.UUID `json:"property_id"`
	Unit       string    `json:"unit"`
	Title      string    `json:"title"`
}

// UpcomingEvents merges lease ends within [now, now+30d] with maintenance
// appointments strictly after now, ascending by date, at most 5 entries
func UpcomingEvents(now time.Time, tenants []tenant.Tenant, requests []maintenance.MaintenanceRequest) []UpcomingEvent {
	events := make([]UpcomingEvent, 0)

	for i := range tenants {
		t := &tenants[i]
		if !t.LeaseEndsWithin(now, UpcomingWindow) {
			continue
		}
		events = append(events, UpcomingEvent{
			Kind:       EventLeaseEnding,
			Date:       t.Lease.EndDate,
			SubjectID:  t.ID,
			PropertyID: t.Lease.PropertyID,
			Unit:       t.Lease.UnitNumber,
			Title:      "Lease ends: " + t.FullName(),
		})
	}

	for i := range requests {
		r := &requests[i]
		if !r.HasFutureAppointment(now) {
			continue
		}
		events = append(events, UpcomingEvent{
			Kind:       EventMaintenanceAppointment,
			Date:       *r.AppointmentAt,
			SubjectID:  r.ID,
			PropertyID: r.PropertyID,
			Unit:       r.Unit,
			Title:      "Maintenance: " + r.Title,
		})
	}

	sort.SliceStable(events, func(i, j int) bool {
		a, b := events[i], events[j]
		if !a.Date.Equal(b.Date) {
			return a.Date.Before(b.Date)
		}
		if a.Kind != b.Kind {
			return a.Kind < b.Kind
		}
		return a.SubjectID.String() < b.SubjectID.String()
	})

	if len(events) > UpcomingLimit {
		events = events[:UpcomingLimit]
	}
	return events
}

// ActivityKind identifies a recent activity entry
type ActivityKind string

const (
	ActivityPropertyCreated     ActivityKind = "property_created"
	ActivityPropertyUpdated     ActivityKind = "property_updated"
	ActivityTenantCreated       ActivityKind = "tenant_created"
	ActivityMaintenanceCreated  ActivityKind = "maintenance_created"
	ActivityMaintenanceResolved ActivityKind = "maintenance_resolved"
)

// Activity is a dated item in the recent activity feed
type Activity struct {
	Kind      ActivityKind `json:"kind"`
	At        time.Time    `json:"at"`
	SubjectID uuid.UUID    `json:"subject_id"`
	Title     string       `json:"title"`
}

// RecentActivity lists property created/updated, tenant created and
// maintenance created/resolved events within [now-7d, now], newest first,
// at most 10 entries
func RecentActivity(now time.Time, properties []property.Property, tenants []tenant.Tenant, requests []maintenance.MaintenanceRequest) []Activity {
	from := now.Add(-RecentWindow)
	inWindow := func(at time.Time) bool {
		return !at.Before(from) && !at.After(now)
	}

	items := make([]Activity, 0)
	add := func(kind ActivityKind, at time.Time, id uuid.UUID, title string) {
		if inWindow(at) {
			items = append(items, Activity{Kind: kind, At: at, SubjectID: id, Title: title})
		}
	}

	for i := range properties {
		p := &properties[i]
		add(ActivityPropertyCreated, p.CreatedAt, p.ID, "Property added: "+p.Name)
		if p.UpdatedAt.After(p.CreatedAt) {
			add(ActivityPropertyUpdated, p.UpdatedAt, p.ID, "Property updated: "+p.Name)
		}
	}

	for i := range tenants {
		t := &tenants[i]
		add(ActivityTenantCreated, t.CreatedAt, t.ID, "New tenant: "+t.FullName())
	}

	for i := range requests {
		r := &requests[i]
		add(ActivityMaintenanceCreated, r.CreatedAt, r.ID, "Maintenance requested: "+r.Title)
		if r.Status == maintenance.StatusResolved && r.ResolvedAt != nil {
			add(ActivityMaintenanceResolved, *r.ResolvedAt, r.ID, "Maintenance resolved: "+r.Title)
		}
	}

	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]
		if !a.At.Equal(b.At) {
			return a.At.After(b.At)
		}
		if a.Kind != b.Kind {
			return a.Kind < b.Kind
		}
		return a.SubjectID.String() < b.SubjectID.String()
	})

	if len(items) > RecentLimit {
		items = items[:RecentLimit]
	}
	return items
}

// Summary is the full dashboard payload
type Summary struct {
	GeneratedAt    time.Time       `json:"generated_at"`
	Properties     PropertyStats   `json:"properties"`
	Tenants        TenantStats     `json:"tenants"`
	OpenRequests   int             `json:"open_requests"`
	UpcomingEvents []UpcomingEvent `json:"upcoming_events"`
	RecentActivity []Activity      `json:"recent_activity"`
}

// Build computes the whole summary
func Build(now time.Time, properties []property.Property, tenants []tenant.Tenant, requests []maintenance.MaintenanceRequest) Summary {
	open := 0
	for i := range requests {
		if !requests[i].Status.IsTerminal() {
			open++
		}
	}

	return Summary{
		GeneratedAt:    now,
		Properties:     ComputePropertyStats(properties),
		Tenants:        ComputeTenantStats(tenants),
		OpenRequests:   open,
		UpcomingEvents: UpcomingEvents(now, tenants, requests),
		RecentActivity: RecentActivity(now, properties, tenants, requests),
	}
}
