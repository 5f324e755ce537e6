package store

import (
	"context"
	"encoding/json"
	"log"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/aceauto-richmond/aceauto-service-api/models"
	"github.com/aceauto-richmond/aceauto-service-api/storage"
)

// firstRequestNum is where request numbering starts on a fresh store,
// before the seed requests are counted
const firstRequestNum = 1001

// Store owns all service requests, customer accounts, and the technician
// roster. Every mutation rewrites the full snapshot through the slot store.
// All operations serialize behind one mutex, so two concurrent advances of
// the same request cannot lose an update.
type Store struct {
	mu      sync.Mutex
	slots   storage.Store
	state   models.Snapshot
	nextNum int

	// submitLatency is an artificial delay applied to request submission,
	// kept from the original demo as a UX affordance. Zero disables it.
	submitLatency time.Duration
}

// New hydrates a store from the state slot, falling back to seed data when
// the slot is absent, unreadable, or partially empty.
func New(ctx context.Context, slots storage.Store, submitLatency time.Duration) *Store {
	s := &Store{
		slots:         slots,
		submitLatency: submitLatency,
	}
	s.state = loadInitialState(ctx, slots)
	s.nextNum = nextRequestNum(s.state.ServiceRequests)
	return s
}

// loadInitialState reads the persisted snapshot, replacing any missing or
// empty section with seed data (the original demo did the same per-key
// fallback when hydrating from browser storage).
func loadInitialState(ctx context.Context, slots storage.Store) models.Snapshot {
	now := time.Now().UTC()
	seeded := models.Snapshot{
		ServiceRequests: seedRequests(now),
		CustomerUsers:   seedCustomers(),
		TechUsers:       seedTechUsers(),
	}

	raw, err := slots.Get(ctx, storage.SlotState)
	if err != nil {
		if err != storage.ErrSlotNotFound {
			log.Printf("Failed to read persisted state, using seed data: %v", err)
		}
		return seeded
	}

	var parsed models.Snapshot
	if err := json.Unmarshal(raw, &parsed); err != nil {
		log.Printf("Persisted state is corrupt, using seed data: %v", err)
		return seeded
	}

	if parsed.ServiceRequests == nil {
		parsed.ServiceRequests = seeded.ServiceRequests
	}
	if len(parsed.CustomerUsers) == 0 {
		parsed.CustomerUsers = seeded.CustomerUsers
	}
	if len(parsed.TechUsers) == 0 {
		parsed.TechUsers = seeded.TechUsers
	}
	return parsed
}

// nextRequestNum scans existing REQ-<n> ids and returns one past the
// highest, so ids stay monotonic across restarts and never collide
func nextRequestNum(requests []models.ServiceRequest) int {
	next := firstRequestNum + len(requests)
	for _, r := range requests {
		numPart, ok := strings.CutPrefix(r.ID, "REQ-")
		if !ok {
			continue
		}
		if n, err := strconv.Atoi(numPart); err == nil && n >= next {
			next = n + 1
		}
	}
	return next
}

// persist writes the full snapshot to the state slot. Write failures are
// logged and swallowed: the in-memory state stays authoritative and the
// caller's mutation still succeeds. Callers must hold s.mu.
func (s *Store) persist(ctx context.Context) {
	data, err := json.Marshal(s.state)
	if err != nil {
		log.Printf("Failed to serialize state snapshot: %v", err)
		return
	}
	if err := s.slots.Put(ctx, storage.SlotState, data); err != nil {
		log.Printf("Failed to persist state snapshot: %v", err)
	}
}

// Snapshot returns a copy of the full state (used by tests and the storage
// status endpoint)
func (s *Store) Snapshot() models.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return models.Snapshot{
		ServiceRequests: copyRequests(s.state.ServiceRequests),
		CustomerUsers:   append([]models.CustomerUser(nil), s.state.CustomerUsers...),
		TechUsers:       append([]models.TechUser(nil), s.state.TechUsers...),
	}
}

func copyRequests(src []models.ServiceRequest) []models.ServiceRequest {
	return append([]models.ServiceRequest(nil), src...)
}
