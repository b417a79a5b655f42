package ops

import (
	"testing"
	"time"

	"github.com/flowdeck/flowdeck/internal/flow"
	"github.com/flowdeck/flowdeck/internal/store"
)

// newTestStore opens a fresh in-memory session seeded with items.
func newTestStore(t *testing.T, items ...flow.Item) *store.Store {
	t.Helper()

	st, err := store.Open(store.NewMemAdapter(), "tester")
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(st.Close)

	if len(items) > 0 {
		if err := st.Add(items); err != nil {
			t.Fatalf("seed store: %v", err)
		}
	}
	return st
}

// testItem builds a minimal valid item for seeding.
func testItem(id string, itemType flow.ItemType, status flow.ItemStatus) flow.Item {
	now := time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC)
	return flow.Item{
		ID:        id,
		Type:      itemType,
		Title:     "item " + id,
		Status:    status,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// withMinutes attaches a time estimate to an item.
func withMinutes(item flow.Item, minutes int) flow.Item {
	item.Analysis = &flow.Analysis{EstimatedMinutes: &minutes, Confidence: 1}
	return item
}
