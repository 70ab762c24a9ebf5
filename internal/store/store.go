// Package store owns the fleet and its maintenance log. Every change goes
// through a Store, which persists the new snapshot before making it visible.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/juju/clock"
	log "github.com/sirupsen/logrus"

	"github.com/ukydev/fleet-maintenance/internal/db"
	"github.com/ukydev/fleet-maintenance/internal/fleet"
	"github.com/ukydev/fleet-maintenance/internal/models"
	"github.com/ukydev/fleet-maintenance/internal/notify"
)

// Slot names of the persisted collections.
const (
	SlotFleet   = "fleet"
	SlotRecords = "records"
)

// ErrItemNotFound is returned by operations that need an existing item.
var ErrItemNotFound = errors.New("fleet item not found")

// Store is the single owner of the fleet and record collections.
type Store struct {
	mu       sync.Mutex
	state    fleet.State
	settings models.Settings

	slots    db.SlotStore
	notifier notify.Notifier
	clock    clock.Clock
	log      *log.Entry
}

// Option customises a Store.
type Option func(*Store)

// WithNotifier sets where change events go.
func WithNotifier(n notify.Notifier) Option {
	return func(s *Store) { s.notifier = n }
}

// WithClock sets the clock used to stamp events.
func WithClock(c clock.Clock) Option {
	return func(s *Store) { s.clock = c }
}

// WithLogger sets the logger.
func WithLogger(l *log.Logger) Option {
	return func(s *Store) { s.log = l.WithField("component", "store") }
}

// WithSettings replaces the built-in settings.
func WithSettings(settings models.Settings) Option {
	return func(s *Store) { s.settings = settings }
}

// New loads both collections from slots. A slot that is missing or cannot
// be decoded is replaced by the built-in seed data for that slot alone.
func New(ctx context.Context, slots db.SlotStore, opts ...Option) *Store {
	s := &Store{
		slots:    slots,
		settings: models.DefaultSettings(),
		notifier: notify.Nop{},
		clock:    clock.WallClock,
		log:      log.WithField("component", "store"),
	}
	for _, opt := range opts {
		opt(s)
	}

	items, err := loadSlot[[]models.FleetItem](ctx, slots, SlotFleet)
	if err != nil {
		s.log.WithError(err).WithField("slot", SlotFleet).Warn("Falling back to seed fleet")
		items = models.SeedFleet()
	}
	records, err := loadSlot[[]models.MaintenanceRecord](ctx, slots, SlotRecords)
	if err != nil {
		s.log.WithError(err).WithField("slot", SlotRecords).Warn("Falling back to seed records")
		records = models.SeedRecords()
	}
	s.state = fleet.NewState(items, records)

	s.log.WithFields(log.Fields{
		"fleet":   len(s.state.Fleet),
		"records": len(s.state.Records),
	}).Info("Fleet store loaded")
	return s
}

func loadSlot[T any](ctx context.Context, slots db.SlotStore, key string) (T, error) {
	var out T
	data, err := slots.Get(ctx, key)
	if err != nil {
		return out, err
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return out, fmt.Errorf("decode slot %s: %w", key, err)
	}
	return out, nil
}

// commit persists next and then makes it the current state. On failure the
// current state is kept. Callers hold s.mu.
func (s *Store) commit(ctx context.Context, next fleet.State) error {
	fleetData, err := json.Marshal(next.Fleet)
	if err != nil {
		return fmt.Errorf("encode fleet: %w", err)
	}
	recordsData, err := json.Marshal(next.Records)
	if err != nil {
		return fmt.Errorf("encode records: %w", err)
	}
	// Records go first so an interrupted batch never leaves records
	// pointing at a deleted item.
	err = s.slots.Put(ctx,
		db.Slot{Key: SlotRecords, Data: recordsData},
		db.Slot{Key: SlotFleet, Data: fleetData},
	)
	if err != nil {
		return fmt.Errorf("persist snapshot: %w", err)
	}
	s.state = next
	return nil
}

func (s *Store) publish(ctx context.Context, ev notify.Event) {
	ev.At = s.clock.Now()
	if err := s.notifier.Notify(ctx, ev); err != nil {
		s.log.WithError(err).WithField("op", ev.Op).Warn("Failed to publish change event")
	}
}

// Settings returns the static settings.
func (s *Store) Settings() models.Settings {
	return s.settings
}

// Snapshot returns a copy of both collections.
func (s *Store) Snapshot() fleet.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

// Fleet returns a copy of all fleet items in insertion order.
func (s *Store) Fleet() []models.FleetItem {
	return s.Snapshot().Fleet
}

// Records returns a copy of all maintenance records in insertion order.
func (s *Store) Records() []models.MaintenanceRecord {
	return s.Snapshot().Records
}

// FleetItem looks up one item.
func (s *Store) FleetItem(id string) (models.FleetItem, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.FleetItem(id)
}

// History returns the item's records, newest first.
func (s *Store) History(id string) []models.MaintenanceRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.History(id)
}

// Search returns the items matching f.
func (s *Store) Search(f fleet.Filter) []models.FleetItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Search(f)
}
