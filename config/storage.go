package config

import (
	"context"
	"fmt"
	"log"

	"github.com/aceauto-richmond/aceauto-service-api/storage"
	"github.com/aceauto-richmond/aceauto-service-api/store"
)

var (
	slotStore storage.Store
	appStore  *store.Store
)

// ConnectStorage opens the slot store selected by STORAGE_DRIVER
func ConnectStorage(ctx context.Context, cfg *Config) error {
	var (
		st  storage.Store
		err error
	)

	switch cfg.StorageDriver {
	case DriverFile:
		st, err = storage.NewFileStore(cfg.DataDir)
	case DriverSQLite:
		st, err = storage.NewSQLiteStore(cfg.SQLitePath)
	case DriverPostgres:
		st, err = storage.NewPostgresStore(cfg.DatabaseURL)
	case DriverS3:
		st, err = storage.NewS3Store(ctx, storage.S3Options{
			Region:          cfg.AWSRegion,
			Bucket:          cfg.AWSS3Bucket,
			Prefix:          cfg.AWSS3Prefix,
			AccessKeyID:     cfg.AWSAccessKeyID,
			SecretAccessKey: cfg.AWSSecretKey,
		})
	case DriverMemory:
		st = storage.NewMemoryStore()
	default:
		return fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}
	if err != nil {
		return fmt.Errorf("failed to open %s storage: %w", cfg.StorageDriver, err)
	}

	log.Printf("Using %s storage driver", cfg.StorageDriver)
	slotStore = st
	return nil
}

// GetStorage returns the slot store instance
func GetStorage() storage.Store {
	return slotStore
}

// SetStorage sets the slot store instance (primarily for testing)
func SetStorage(st storage.Store) {
	slotStore = st
}

// GetStore returns the hydrated application store
func GetStore() *store.Store {
	return appStore
}

// SetStore sets the application store (set once at startup, and by tests)
func SetStore(s *store.Store) {
	appStore = s
}
