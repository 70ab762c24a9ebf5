// Package fleet holds the business rules that tie fleet items to their
// maintenance records. Every transition takes a State and returns a new one;
// the receiver is never modified, so a caller can persist the result before
// making it visible.
package fleet

import (
	"strings"

	"github.com/ukydev/fleet-maintenance/internal/models"
	"github.com/ukydev/fleet-maintenance/internal/reminder"
)

// State is a snapshot of both collections.
type State struct {
	Fleet   []models.FleetItem         `json:"fleet"`
	Records []models.MaintenanceRecord `json:"records"`
}

// NewState returns a State owning copies of the given collections.
func NewState(fleet []models.FleetItem, records []models.MaintenanceRecord) State {
	return State{Fleet: cloneFleet(fleet), Records: cloneRecords(records)}
}

// Clone returns a deep copy of s.
func (s State) Clone() State {
	return NewState(s.Fleet, s.Records)
}

func cloneFleet(in []models.FleetItem) []models.FleetItem {
	out := make([]models.FleetItem, 0, len(in))
	for _, item := range in {
		out = append(out, item.Clone())
	}
	return out
}

func cloneRecords(in []models.MaintenanceRecord) []models.MaintenanceRecord {
	out := make([]models.MaintenanceRecord, 0, len(in))
	for _, r := range in {
		out = append(out, r.Clone())
	}
	return out
}

func (s State) indexOf(id string) int {
	for i := range s.Fleet {
		if s.Fleet[i].ID == id {
			return i
		}
	}
	return -1
}

// FleetItem looks an item up by id.
func (s State) FleetItem(id string) (models.FleetItem, bool) {
	if i := s.indexOf(id); i >= 0 {
		return s.Fleet[i].Clone(), true
	}
	return models.FleetItem{}, false
}

// AddFleetItem appends item as given.
func (s State) AddFleetItem(item models.FleetItem) State {
	next := s.Clone()
	next.Fleet = append(next.Fleet, item.Clone())
	return next
}

// UpdateFleetItem replaces the item with the same id. It reports false and
// returns s unchanged when no such item exists. The type set at creation is
// kept and the meter never goes below its current value.
func (s State) UpdateFleetItem(item models.FleetItem) (State, bool) {
	i := s.indexOf(item.ID)
	if i < 0 {
		return s, false
	}
	next := s.Clone()
	old := next.Fleet[i]
	updated := item.Clone()
	updated.Type = old.Type
	updated.CurrentMeter = max(old.CurrentMeter, updated.CurrentMeter)
	next.Fleet[i] = updated
	return next, true
}

// DeleteFleetItem removes the item and every record referencing it. It
// reports whether the item existed and how many records went with it.
func (s State) DeleteFleetItem(id string) (State, bool, int) {
	i := s.indexOf(id)
	if i < 0 {
		return s, false, 0
	}
	next := State{
		Fleet:   make([]models.FleetItem, 0, len(s.Fleet)-1),
		Records: make([]models.MaintenanceRecord, 0, len(s.Records)),
	}
	for _, item := range s.Fleet {
		if item.ID != id {
			next.Fleet = append(next.Fleet, item.Clone())
		}
	}
	removed := 0
	for _, r := range s.Records {
		if r.FleetItemID == id {
			removed++
			continue
		}
		next.Records = append(next.Records, r.Clone())
	}
	return next, true, removed
}

// ImportFleet appends the items whose plate or serial, compared without
// case, is not already present. Duplicates inside items are dropped too,
// keeping the first. The accepted items are returned.
func (s State) ImportFleet(items []models.FleetItem) (State, []models.FleetItem) {
	seen := make(map[string]bool, len(s.Fleet)+len(items))
	for _, item := range s.Fleet {
		seen[item.SerialKey()] = true
	}
	accepted := make([]models.FleetItem, 0, len(items))
	for _, item := range items {
		key := item.SerialKey()
		if seen[key] {
			continue
		}
		seen[key] = true
		accepted = append(accepted, item.Clone())
	}
	if len(accepted) == 0 {
		return s, accepted
	}
	next := s.Clone()
	next.Fleet = append(next.Fleet, cloneFleet(accepted)...)
	return next, accepted
}

// Clear returns an empty State.
func (s State) Clear() State {
	return State{Fleet: []models.FleetItem{}, Records: []models.MaintenanceRecord{}}
}

// AddRecord appends rec and raises the owning item's meter to the record's
// reading when it is higher. It reports whether the meter moved. A record
// whose owner is unknown is still appended.
func (s State) AddRecord(rec models.MaintenanceRecord) (State, bool) {
	next := s.Clone()
	next.Records = append(next.Records, rec.Clone())
	i := next.indexOf(rec.FleetItemID)
	if i < 0 || rec.MeterReading <= next.Fleet[i].CurrentMeter {
		return next, false
	}
	next.Fleet[i].CurrentMeter = rec.MeterReading
	return next, true
}

// History returns the item's records, newest first.
func (s State) History(id string) []models.MaintenanceRecord {
	return reminder.History(s.Records, id)
}

// Filter selects fleet items the way the fleet list does. Zero fields match
// everything.
type Filter struct {
	Type   models.FleetType
	Status models.FleetStatus
	Query  string // case-insensitive substring of make, model or plate/serial
}

// Search returns the items matching f in fleet order.
func (s State) Search(f Filter) []models.FleetItem {
	q := strings.ToLower(strings.TrimSpace(f.Query))
	out := make([]models.FleetItem, 0, len(s.Fleet))
	for _, item := range s.Fleet {
		if f.Type != "" && item.Type != f.Type {
			continue
		}
		if f.Status != "" && item.Status != f.Status {
			continue
		}
		if q != "" &&
			!strings.Contains(strings.ToLower(item.Make), q) &&
			!strings.Contains(strings.ToLower(item.Model), q) &&
			!strings.Contains(strings.ToLower(item.PlateOrSerial), q) {
			continue
		}
		out = append(out, item.Clone())
	}
	return out
}
