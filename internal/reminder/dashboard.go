package reminder

import (
	"sort"

	"github.com/ukydev/fleet-maintenance/internal/models"
)

// Counters are the dashboard aggregates.
type Counters struct {
	Vehicles   int                        `json:"vehicles"`
	Equipment  int                        `json:"equipment"`
	InWorkshop int                        `json:"inWorkshop"`
	DueSoon    int                        `json:"dueSoon"`
	Recent     []models.MaintenanceRecord `json:"recent"`
}

// Reminder is one line of the service reminder list.
type Reminder struct {
	Item models.FleetItem `json:"item"`
	DueStatus
}

// Dashboard computes the dashboard counters. DueSoon counts items whose
// latest record has a next due date in the due-soon band; meter thresholds
// do not contribute.
func (e *Engine) Dashboard(fleet []models.FleetItem, records []models.MaintenanceRecord) Counters {
	today := e.Today()
	latest := latestByItem(records)

	c := Counters{Recent: recent(records, RecentRecords)}
	for _, item := range fleet {
		switch item.Type {
		case models.FleetTypeVehicle:
			c.Vehicles++
		case models.FleetTypeEquipment:
			c.Equipment++
		}
		if item.Status == models.StatusWorkshop {
			c.InWorkshop++
		}
		last, ok := latest[item.ID]
		if ok && last.NextDueDate != nil && DateBand(*last.NextDueDate, today) == StatusDueSoon {
			c.DueSoon++
		}
	}
	return c
}

// Reminders lists every item with its due status: overdue first, then due
// soon, then the rest, each group in fleet order.
func (e *Engine) Reminders(fleet []models.FleetItem, records []models.MaintenanceRecord) []Reminder {
	today := e.Today()
	latest := latestByItem(records)

	out := make([]Reminder, 0, len(fleet))
	for _, item := range fleet {
		st := DueStatus{Status: StatusUnknown, Due: "No records"}
		if last, ok := latest[item.ID]; ok {
			st = dueStatus(item, last, today)
		}
		out = append(out, Reminder{Item: item.Clone(), DueStatus: st})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return urgency(out[i].Status) < urgency(out[j].Status)
	})
	return out
}

func urgency(s Status) int {
	switch s {
	case StatusOverdue:
		return 0
	case StatusDueSoon:
		return 1
	default:
		return 2
	}
}

// recent returns up to n records with the newest dates, last-inserted first
// on ties.
func recent(records []models.MaintenanceRecord, n int) []models.MaintenanceRecord {
	out := make([]models.MaintenanceRecord, 0, len(records))
	for i := len(records) - 1; i >= 0; i-- {
		out = append(out, records[i].Clone())
	}
	sortNewestFirst(out)
	if len(out) > n {
		out = out[:n]
	}
	return out
}
