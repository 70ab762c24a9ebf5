// Package notify tells interested parties that the fleet changed.
package notify

import (
	"context"
	"time"
)

// Operations carried by Event.Op.
const (
	OpFleetItemAdded   = "fleet.added"
	OpFleetItemUpdated = "fleet.updated"
	OpFleetItemDeleted = "fleet.deleted"
	OpFleetImported    = "fleet.imported"
	OpFleetCleared     = "fleet.cleared"
	OpRecordAdded      = "record.added"
)

// Event describes one committed change.
type Event struct {
	Op     string    `json:"op"`
	ItemID string    `json:"itemId,omitempty"`
	Count  int       `json:"count,omitempty"`
	At     time.Time `json:"at"`
}

// Notifier publishes change events.
type Notifier interface {
	Notify(ctx context.Context, ev Event) error
}

// Nop discards every event.
type Nop struct{}

// Notify does nothing.
func (Nop) Notify(context.Context, Event) error { return nil }
