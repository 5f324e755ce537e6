package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupGormStore(t *testing.T) *GormStore {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	st, err := NewGormStore(db)
	if err != nil {
		t.Fatalf("Failed to migrate slots table: %v", err)
	}
	return st
}

func TestGormStoreRoundTrip(t *testing.T) {
	st := setupGormStore(t)
	ctx := context.Background()

	_, err := st.Get(ctx, SlotState)
	assert.ErrorIs(t, err, ErrSlotNotFound)

	doc := []byte(`{"techUsers":[]}`)
	assert.NoError(t, st.Put(ctx, SlotState, doc))
	got, err := st.Get(ctx, SlotState)
	assert.NoError(t, err)
	assert.Equal(t, doc, got)

	assert.NoError(t, st.Delete(ctx, SlotState))
	_, err = st.Get(ctx, SlotState)
	assert.ErrorIs(t, err, ErrSlotNotFound)
	assert.NoError(t, st.Delete(ctx, SlotState), "deleting an absent slot is not an error")
}

func TestGormStoreUpsertKeepsOneRow(t *testing.T) {
	st := setupGormStore(t)
	ctx := context.Background()

	assert.NoError(t, st.Put(ctx, SlotState, []byte(`{"v":1}`)))
	assert.NoError(t, st.Put(ctx, SlotState, []byte(`{"v":2}`)))
	assert.NoError(t, st.Put(ctx, SlotState, []byte(`{"v":3}`)))

	var count int64
	assert.NoError(t, st.DB().Model(&slotRecord{}).Count(&count).Error)
	assert.Equal(t, int64(1), count, "repeated writes overwrite the row, not append")

	got, err := st.Get(ctx, SlotState)
	assert.NoError(t, err)
	assert.Equal(t, []byte(`{"v":3}`), got)
}

func TestGormStoreSlotsAreIndependentRows(t *testing.T) {
	st := setupGormStore(t)
	ctx := context.Background()

	assert.NoError(t, st.Put(ctx, SlotCustomerSession, []byte(`{"id":"cust_1"}`)))
	assert.NoError(t, st.Put(ctx, SlotTechSession, []byte(`{"id":"tech_1"}`)))

	assert.NoError(t, st.Delete(ctx, SlotCustomerSession))
	got, err := st.Get(ctx, SlotTechSession)
	assert.NoError(t, err)
	assert.Equal(t, []byte(`{"id":"tech_1"}`), got)
}
