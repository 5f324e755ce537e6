package storage

import (
	"context"
	"errors"
)

// Slot names. These mirror the three browser-storage keys the demo site
// used: one for the full state snapshot and one for each session record.
const (
	SlotState           = "aceauto-state-v1"
	SlotCustomerSession = "aceauto-customer-session"
	SlotTechSession     = "aceauto-tech-session"
)

// ErrSlotNotFound is returned by Get when the slot has never been written
// (or has been deleted). Callers treat it as "use seed data", not a fault.
var ErrSlotNotFound = errors.New("storage: slot not found")

// Store persists opaque documents under named slots. Every Put fully
// overwrites the slot; there are no partial updates. Implementations must
// be safe for concurrent use.
type Store interface {
	Get(ctx context.Context, slot string) ([]byte, error)
	Put(ctx context.Context, slot string, data []byte) error
	Delete(ctx context.Context, slot string) error
}
