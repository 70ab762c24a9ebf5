// Package reminder derives maintenance urgency from a fleet snapshot. Nothing
// here mutates its inputs or caches results; every call recomputes from the
// collections it is given.
package reminder

import (
	"sort"

	"github.com/dustin/go-humanize"
	"github.com/juju/clock"

	"github.com/ukydev/fleet-maintenance/internal/models"
)

const (
	// VehicleServiceInterval is the default meter distance (km) to the next service.
	VehicleServiceInterval = 10000.0
	// EquipmentServiceInterval is the default meter distance (hours) to the next service.
	EquipmentServiceInterval = 500.0
	// DueSoonDays is the look-ahead window of the due-soon band, inclusive.
	DueSoonDays = 30
	// RecentRecords is how many records the dashboard lists.
	RecentRecords = 3
)

// Status is the maintenance urgency of an item.
type Status string

const (
	StatusUnknown Status = "UNKNOWN"
	StatusOK      Status = "OK"
	StatusDueSoon Status = "DUE_SOON"
	StatusOverdue Status = "OVERDUE"
)

// DueStatus is the urgency of one item together with its display text.
type DueStatus struct {
	Status      Status       `json:"status"`
	Due         string       `json:"due"`
	LastService *models.Date `json:"lastService,omitempty"`
}

// NextDue holds the forward-looking thresholds assigned to a new record.
type NextDue struct {
	Meter *float64
	Date  *models.Date
}

// Engine evaluates due dates against its clock.
type Engine struct {
	clock clock.Clock
}

// New returns an Engine. A nil clock means the wall clock.
func New(clk clock.Clock) *Engine {
	if clk == nil {
		clk = clock.WallClock
	}
	return &Engine{clock: clk}
}

// Today returns the current calendar day.
func (e *Engine) Today() models.Date {
	return models.DateOf(e.clock.Now())
}

// DateBand places a due date relative to today: OVERDUE when it lies strictly
// before today, DUE_SOON when it falls in [today, today+DueSoonDays], OK
// otherwise. Both the reminder list and the dashboard go through here.
func DateBand(due, today models.Date) Status {
	switch {
	case due.Before(today):
		return StatusOverdue
	case !due.After(today.AddDays(DueSoonDays)):
		return StatusDueSoon
	default:
		return StatusOK
	}
}

// ComputeDefaultNextDue returns the thresholds a newly logged record gets:
// meter plus the type's interval and the same day one year later. Repairs
// get neither.
func ComputeDefaultNextDue(rec models.MaintenanceRecord, item models.FleetItem) NextDue {
	if rec.Type == models.MaintenanceRepair {
		return NextDue{}
	}
	interval := VehicleServiceInterval
	if item.Type == models.FleetTypeEquipment {
		interval = EquipmentServiceInterval
	}
	meter := rec.MeterReading + interval
	date := rec.Date.AddYears(1)
	return NextDue{Meter: &meter, Date: &date}
}

// ComputeDueStatus evaluates item against the latest of its records.
func (e *Engine) ComputeDueStatus(item models.FleetItem, records []models.MaintenanceRecord) DueStatus {
	latest, ok := LatestRecordFor(records, item.ID)
	if !ok {
		return DueStatus{Status: StatusUnknown, Due: "No records"}
	}
	return dueStatus(item, latest, e.Today())
}

func dueStatus(item models.FleetItem, latest models.MaintenanceRecord, today models.Date) DueStatus {
	last := latest.Date
	out := DueStatus{Status: StatusOK, LastService: &last}

	dateBand := StatusOK
	dateText := ""
	if latest.NextDueDate != nil {
		dateBand = DateBand(*latest.NextDueDate, today)
		dateText = latest.NextDueDate.String()
	}
	meterText := ""
	meterOverdue := false
	if latest.NextDueMeter != nil {
		meterText = MeterText(*latest.NextDueMeter, item.Type)
		meterOverdue = item.CurrentMeter >= *latest.NextDueMeter
	}

	switch {
	case meterOverdue:
		out.Status = StatusOverdue
		out.Due = meterText
	case dateBand == StatusOverdue:
		out.Status = StatusOverdue
		out.Due = dateText
	default:
		out.Status = dateBand
		out.Due = dateText
		if out.Due == "" {
			out.Due = meterText
		}
	}
	return out
}

// MeterText formats a meter value with its unit, e.g. "50,000 km".
func MeterText(v float64, t models.FleetType) string {
	return humanize.Commaf(v) + " " + t.MeterUnit()
}

// LatestRecordFor returns the record of itemID with the greatest date. Among
// records sharing that date the one inserted last wins.
func LatestRecordFor(records []models.MaintenanceRecord, itemID string) (models.MaintenanceRecord, bool) {
	var latest models.MaintenanceRecord
	found := false
	for _, r := range records {
		if r.FleetItemID != itemID {
			continue
		}
		if !found || !r.Date.Before(latest.Date) {
			latest = r
			found = true
		}
	}
	return latest, found
}

// latestByItem is LatestRecordFor for every item in one pass.
func latestByItem(records []models.MaintenanceRecord) map[string]models.MaintenanceRecord {
	out := make(map[string]models.MaintenanceRecord)
	for _, r := range records {
		if cur, ok := out[r.FleetItemID]; !ok || !r.Date.Before(cur.Date) {
			out[r.FleetItemID] = r
		}
	}
	return out
}

// History returns the records of itemID, newest date first. Records sharing a
// date are ordered last-inserted first, so History(...)[0] agrees with
// LatestRecordFor.
func History(records []models.MaintenanceRecord, itemID string) []models.MaintenanceRecord {
	var out []models.MaintenanceRecord
	for i := len(records) - 1; i >= 0; i-- {
		if records[i].FleetItemID == itemID {
			out = append(out, records[i].Clone())
		}
	}
	sortNewestFirst(out)
	return out
}

// sortNewestFirst sorts by date descending; the sort is stable so callers
// control tie order.
func sortNewestFirst(records []models.MaintenanceRecord) {
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Date.After(records[j].Date)
	})
}

// SplitHistory separates repairs from routine work, preserving order.
func SplitHistory(history []models.MaintenanceRecord) (repairs, routine []models.MaintenanceRecord) {
	for _, r := range history {
		if r.IsRoutine() {
			routine = append(routine, r)
		} else {
			repairs = append(repairs, r)
		}
	}
	return repairs, routine
}
