package store

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/ukydev/fleet-maintenance/internal/fleet"
	"github.com/ukydev/fleet-maintenance/internal/models"
	"github.com/ukydev/fleet-maintenance/internal/notify"
)

// AddFleetItem appends item. The caller supplies a unique id.
func (s *Store) AddFleetItem(ctx context.Context, item models.FleetItem) error {
	s.mu.Lock()
	err := s.commit(ctx, s.state.AddFleetItem(item))
	s.mu.Unlock()
	if err != nil {
		return err
	}
	s.log.WithFields(log.Fields{"item_id": item.ID, "plate": item.PlateOrSerial}).Info("Added fleet item")
	s.publish(ctx, notify.Event{Op: notify.OpFleetItemAdded, ItemID: item.ID})
	return nil
}

// UpdateFleetItem replaces the item with the same id. An unknown id changes
// nothing and reports false.
func (s *Store) UpdateFleetItem(ctx context.Context, item models.FleetItem) (bool, error) {
	s.mu.Lock()
	next, ok := s.state.UpdateFleetItem(item)
	if !ok {
		s.mu.Unlock()
		return false, nil
	}
	err := s.commit(ctx, next)
	s.mu.Unlock()
	if err != nil {
		return false, err
	}
	s.log.WithField("item_id", item.ID).Info("Updated fleet item")
	s.publish(ctx, notify.Event{Op: notify.OpFleetItemUpdated, ItemID: item.ID})
	return true, nil
}

// DeleteFleetItem removes the item together with all of its records once c
// confirms. It reports false when the item does not exist or the deletion
// was declined; neither changes anything.
func (s *Store) DeleteFleetItem(ctx context.Context, id string, c Confirmer) (bool, error) {
	item, ok := s.FleetItem(id)
	if !ok {
		return false, nil
	}
	prompt := fmt.Sprintf("Are you sure you want to delete %s %s (%s)? This action cannot be undone.",
		item.Make, item.Model, item.PlateOrSerial)
	if !confirmed(c, prompt) {
		s.log.WithField("item_id", id).Info("Fleet item deletion declined")
		return false, nil
	}

	s.mu.Lock()
	next, ok, removed := s.state.DeleteFleetItem(id)
	if !ok {
		s.mu.Unlock()
		return false, nil
	}
	err := s.commit(ctx, next)
	s.mu.Unlock()
	if err != nil {
		return false, err
	}
	s.log.WithFields(log.Fields{"item_id": id, "records_removed": removed}).Info("Deleted fleet item")
	s.publish(ctx, notify.Event{Op: notify.OpFleetItemDeleted, ItemID: id, Count: removed})
	return true, nil
}

// ImportFleet appends the items whose plate or serial is new and returns how
// many were accepted. Duplicates are dropped silently.
func (s *Store) ImportFleet(ctx context.Context, items []models.FleetItem) (int, error) {
	s.mu.Lock()
	next, accepted := s.state.ImportFleet(items)
	if len(accepted) == 0 {
		s.mu.Unlock()
		return 0, nil
	}
	err := s.commit(ctx, next)
	s.mu.Unlock()
	if err != nil {
		return 0, err
	}
	s.log.WithFields(log.Fields{"offered": len(items), "imported": len(accepted)}).Info("Imported fleet items")
	s.publish(ctx, notify.Event{Op: notify.OpFleetImported, Count: len(accepted)})
	return len(accepted), nil
}

// ClearFleet empties both collections once c confirms. It reports whether
// anything was cleared.
func (s *Store) ClearFleet(ctx context.Context, c Confirmer) (bool, error) {
	if !confirmed(c, "Are you sure you want to delete all vehicles and records? This cannot be undone.") {
		s.log.Info("Clearing fleet declined")
		return false, nil
	}
	s.mu.Lock()
	err := s.commit(ctx, s.state.Clear())
	s.mu.Unlock()
	if err != nil {
		return false, err
	}
	s.log.Warn("Cleared all fleet items and records")
	s.publish(ctx, notify.Event{Op: notify.OpFleetCleared})
	return true, nil
}

// AddRecord appends rec and raises the owning item's meter to the record's
// reading when that is higher.
func (s *Store) AddRecord(ctx context.Context, rec models.MaintenanceRecord) error {
	s.mu.Lock()
	next, raised := s.state.AddRecord(rec)
	err := s.commit(ctx, next)
	s.mu.Unlock()
	if err != nil {
		return err
	}
	s.log.WithFields(log.Fields{
		"record_id":    rec.ID,
		"item_id":      rec.FleetItemID,
		"type":         rec.Type,
		"meter_raised": raised,
	}).Info("Added maintenance record")
	s.publish(ctx, notify.Event{Op: notify.OpRecordAdded, ItemID: rec.FleetItemID})
	return nil
}

// LogMaintenance builds a record for the item from in and adds it.
func (s *Store) LogMaintenance(ctx context.Context, itemID string, in fleet.RecordInput) (models.MaintenanceRecord, error) {
	item, ok := s.FleetItem(itemID)
	if !ok {
		return models.MaintenanceRecord{}, ErrItemNotFound
	}
	rec, err := fleet.NewRecord(item, in)
	if err != nil {
		return models.MaintenanceRecord{}, err
	}
	if err := s.AddRecord(ctx, rec); err != nil {
		return models.MaintenanceRecord{}, err
	}
	return rec, nil
}
