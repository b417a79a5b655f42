package store

import (
	"fmt"
	"sync"
	"time"

	"github.com/flowdeck/flowdeck/internal/flow"
)

// EventKind identifies a store mutation.
type EventKind string

const (
	EventAdd    EventKind = "add"
	EventMove   EventKind = "move"
	EventDelete EventKind = "delete"
)

// Event describes a committed mutation, delivered to subscribers after the
// mutation has been mirrored to the adapter.
type Event struct {
	Kind  EventKind
	Items []flow.Item
}

// Store owns the ordered item collection for one principal's session.
// Mutations are mirrored synchronously to the adapter before they commit;
// a failed mirror leaves the in-memory collection unchanged.
type Store struct {
	mu        sync.RWMutex
	principal string
	items     []flow.Item
	adapter   Adapter
	subs      []func(Event)

	// overloadSeen records whether any analysis this session flagged
	// overcommitment. Session state only, never serialized.
	overloadSeen bool

	now func() time.Time
}

// Open starts a session for principal, loading its persisted collection.
func Open(adapter Adapter, principal string) (*Store, error) {
	if principal == "" {
		return nil, fmt.Errorf("principal must not be empty")
	}

	items, err := adapter.Load(principal)
	if err != nil {
		return nil, fmt.Errorf("load collection for %q: %w", principal, err)
	}

	return &Store{
		principal: principal,
		items:     items,
		adapter:   adapter,
		now:       time.Now,
	}, nil
}

// Principal returns the identifier scoping this session.
func (s *Store) Principal() string {
	return s.principal
}

// Close ends the session, dropping the in-memory collection. Durable state
// is untouched.
func (s *Store) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = nil
	s.subs = nil
}

// Subscribe registers a callback invoked after every committed mutation.
func (s *Store) Subscribe(fn func(Event)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs = append(s.subs, fn)
}

// Add prepends a batch of items, newest first. The batch is atomic: a
// duplicate ID or a failed mirror inserts nothing.
func (s *Store) Add(items []flow.Item) error {
	if len(items) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	seen := make(map[string]bool, len(s.items)+len(items))
	for _, existing := range s.items {
		seen[existing.ID] = true
	}
	for _, item := range items {
		if item.ID == "" {
			return fmt.Errorf("item %q has no id", item.Title)
		}
		if seen[item.ID] {
			return fmt.Errorf("duplicate item id %s", item.ID)
		}
		seen[item.ID] = true
	}

	next := make([]flow.Item, 0, len(s.items)+len(items))
	next = append(next, items...)
	next = append(next, s.items...)

	if err := s.adapter.Save(s.principal, next); err != nil {
		return fmt.Errorf("mirror add: %w", err)
	}

	s.items = next
	s.notify(Event{Kind: EventAdd, Items: append([]flow.Item(nil), items...)})
	return nil
}

// Move sets the status of the item with the given id. Unknown ids are a
// no-op (stale UI references are expected) and report moved=false.
// CompletedAt is set when moving into done and cleared when moving out of
// it; the core places no restriction on leaving done even though surfaces
// never offer that move.
func (s *Store) Move(id string, status flow.ItemStatus) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return false, nil
	}

	next := append([]flow.Item(nil), s.items...)
	item := &next[idx]
	item.Status = status
	now := s.now().UTC()
	item.UpdatedAt = now
	if status == flow.StatusDone {
		completed := now
		item.CompletedAt = &completed
	} else {
		item.CompletedAt = nil
	}

	if err := s.adapter.Save(s.principal, next); err != nil {
		return false, fmt.Errorf("mirror move: %w", err)
	}

	s.items = next
	s.notify(Event{Kind: EventMove, Items: []flow.Item{next[idx]}})
	return true, nil
}

// Delete removes the item with the given id permanently. Unknown ids are a
// no-op and report deleted=false.
func (s *Store) Delete(id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return false, nil
	}

	removed := s.items[idx]
	next := make([]flow.Item, 0, len(s.items)-1)
	next = append(next, s.items[:idx]...)
	next = append(next, s.items[idx+1:]...)

	if err := s.adapter.Save(s.principal, next); err != nil {
		return false, fmt.Errorf("mirror delete: %w", err)
	}

	s.items = next
	s.notify(Event{Kind: EventDelete, Items: []flow.Item{removed}})
	return true, nil
}

// Items returns a copy of the collection in store order (newest first).
func (s *Store) Items() []flow.Item {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]flow.Item(nil), s.items...)
}

// Get returns the item with the given id, if present.
func (s *Store) Get(id string) (flow.Item, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return flow.Item{}, false
	}
	return s.items[idx], true
}

// ByStatus returns the items holding status, in store order.
func (s *Store) ByStatus(status flow.ItemStatus) []flow.Item {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return flow.FilterByStatus(s.items, status)
}

// Len returns the number of items in the collection.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// TotalPlannedMinutes sums the time estimates of items holding status,
// treating absent estimates as zero. Derived on every read, never cached.
func (s *Store) TotalPlannedMinutes(status flow.ItemStatus) int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	total := 0
	for i := range s.items {
		if s.items[i].Status == status {
			total += s.items[i].EstimatedMinutes()
		}
	}
	return total
}

// MarkOverloaded records that an analysis flagged overcommitment this session.
func (s *Store) MarkOverloaded() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.overloadSeen = true
}

// OverloadSeen reports whether any analysis this session raised the overload
// warning.
func (s *Store) OverloadSeen() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.overloadSeen
}

// indexOf returns the position of id, or -1. Callers hold the lock.
func (s *Store) indexOf(id string) int {
	for i := range s.items {
		if s.items[i].ID == id {
			return i
		}
	}
	return -1
}

// notify fires subscriber callbacks. Callers hold the lock; callbacks must
// not call back into the store from the same goroutine.
func (s *Store) notify(ev Event) {
	for _, fn := range s.subs {
		fn(ev)
	}
}
