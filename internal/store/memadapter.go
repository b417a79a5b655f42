package store

import (
	"encoding/json"
	"sync"

	"github.com/flowdeck/flowdeck/internal/flow"
)

// MemAdapter is an in-memory Adapter used by tests and ephemeral runs. It
// serializes through JSON so round-trip behavior matches the durable adapter.
type MemAdapter struct {
	mu   sync.Mutex
	docs map[string][]byte

	// SaveCalls counts Save invocations, for mirroring assertions in tests
	SaveCalls int

	// FailSave, when set, is returned from Save without storing anything
	FailSave error
}

// NewMemAdapter creates an empty in-memory adapter.
func NewMemAdapter() *MemAdapter {
	return &MemAdapter{docs: make(map[string][]byte)}
}

// Load returns the collection saved for principal, or an empty one.
func (m *MemAdapter) Load(principal string) ([]flow.Item, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	doc, ok := m.docs[principal]
	if !ok {
		return nil, nil
	}

	var items []flow.Item
	if err := json.Unmarshal(doc, &items); err != nil {
		// Corrupt document degrades to an empty collection
		return nil, nil
	}
	return items, nil
}

// Save serializes and stores the collection for principal.
func (m *MemAdapter) Save(principal string, items []flow.Item) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.SaveCalls++
	if m.FailSave != nil {
		return m.FailSave
	}

	doc, err := json.Marshal(items)
	if err != nil {
		return err
	}
	m.docs[principal] = doc
	return nil
}

// Corrupt overwrites the stored document for principal with garbage, for
// fallback tests.
func (m *MemAdapter) Corrupt(principal string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.docs[principal] = []byte("{definitely not an item array")
}
