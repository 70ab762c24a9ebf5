package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// slotRow is the table layout shared by every SQL backend.
type slotRow struct {
	Name      string `gorm:"primaryKey;size:191"`
	Data      []byte
	UpdatedAt time.Time
}

func (slotRow) TableName() string { return "slots" }

// OpenSQLite opens (creating if needed) a SQLite database file.
func OpenSQLite(path string) (*gorm.DB, error) {
	gdb, err := gorm.Open(sqlite.Open(path), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	return gdb, nil
}

// OpenPostgres connects to a PostgreSQL database.
func OpenPostgres(dsn string) (*gorm.DB, error) {
	gdb, err := gorm.Open(postgres.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	return gdb, nil
}

// GormSlotStore implements SlotStore on a SQL table through GORM.
type GormSlotStore struct {
	DB     *gorm.DB
	Prefix string
}

// NewGormSlotStore migrates the slots table and returns the store.
func NewGormSlotStore(gdb *gorm.DB, prefix string) (*GormSlotStore, error) {
	if gdb == nil {
		return nil, fmt.Errorf("gorm db is nil")
	}
	if err := gdb.AutoMigrate(&slotRow{}); err != nil {
		return nil, fmt.Errorf("migrate slots table: %w", err)
	}
	return &GormSlotStore{DB: gdb, Prefix: prefix}, nil
}

// Get loads one slot.
func (s *GormSlotStore) Get(ctx context.Context, key string) ([]byte, error) {
	var row slotRow
	err := s.DB.WithContext(ctx).Where("name = ?", prefixed(s.Prefix, key)).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrSlotNotFound
	}
	if err != nil {
		return nil, err
	}
	return row.Data, nil
}

// Put upserts all slots in one transaction.
func (s *GormSlotStore) Put(ctx context.Context, slots ...Slot) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, slot := range slots {
			row := slotRow{Name: prefixed(s.Prefix, slot.Key), Data: slot.Data, UpdatedAt: time.Now()}
			err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "name"}},
				DoUpdates: clause.AssignmentColumns([]string{"data", "updated_at"}),
			}).Create(&row).Error
			if err != nil {
				return fmt.Errorf("upsert slot %s: %w", slot.Key, err)
			}
		}
		return nil
	})
}

// Close closes the underlying connection pool.
func (s *GormSlotStore) Close(ctx context.Context) error {
	sqlDB, err := s.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
