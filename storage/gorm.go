package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// slotRecord is one persisted slot. The whole document lives in a single
// row; Put replaces the row rather than patching it.
type slotRecord struct {
	Name      string `gorm:"primaryKey"`
	Data      []byte `gorm:"not null"`
	UpdatedAt time.Time
}

// TableName specifies the table name for slot records
func (slotRecord) TableName() string {
	return "slots"
}

// GormStore persists slots in a relational database through GORM. It works
// with both the SQLite and PostgreSQL drivers.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore wraps an open GORM connection and migrates the slots table
func NewGormStore(db *gorm.DB) (*GormStore, error) {
	if err := db.AutoMigrate(&slotRecord{}); err != nil {
		return nil, fmt.Errorf("failed to migrate slots table: %w", err)
	}
	return &GormStore{db: db}, nil
}

// NewSQLiteStore opens (or creates) a SQLite database at path
func NewSQLiteStore(path string) (*GormStore, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}
	return NewGormStore(db)
}

// NewPostgresStore connects to a PostgreSQL database by URL
func NewPostgresStore(databaseURL string) (*GormStore, error) {
	db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return NewGormStore(db)
}

// DB returns the underlying GORM connection (used by the status endpoint)
func (g *GormStore) DB() *gorm.DB {
	return g.db
}

// Get returns the slot's document, or ErrSlotNotFound
func (g *GormStore) Get(ctx context.Context, slot string) ([]byte, error) {
	var rec slotRecord
	err := g.db.WithContext(ctx).First(&rec, "name = ?", slot).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrSlotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read slot %s: %w", slot, err)
	}
	return rec.Data, nil
}

// Put upserts the slot's row, overwriting any previous document
func (g *GormStore) Put(ctx context.Context, slot string, data []byte) error {
	rec := slotRecord{Name: slot, Data: data, UpdatedAt: time.Now()}
	err := g.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"data", "updated_at"}),
	}).Create(&rec).Error
	if err != nil {
		return fmt.Errorf("failed to write slot %s: %w", slot, err)
	}
	return nil
}

// Delete removes the slot's row. Deleting an absent slot is not an error.
func (g *GormStore) Delete(ctx context.Context, slot string) error {
	if err := g.db.WithContext(ctx).Delete(&slotRecord{}, "name = ?", slot).Error; err != nil {
		return fmt.Errorf("failed to delete slot %s: %w", slot, err)
	}
	return nil
}
