package store

import "github.com/flowdeck/flowdeck/internal/flow"

// Adapter is the persistence boundary: a scoped load-and-save of the full
// serialized item collection, keyed by principal. Implementations must treat
// an unreadable or corrupt document as an empty collection rather than an
// error; data here is local resumption state, not the source of truth.
type Adapter interface {
	Load(principal string) ([]flow.Item, error)
	Save(principal string, items []flow.Item) error
}
