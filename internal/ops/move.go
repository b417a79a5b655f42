package ops

import (
	"strings"

	"github.com/flowdeck/flowdeck/internal/errors"
	"github.com/flowdeck/flowdeck/internal/flow"
	"github.com/flowdeck/flowdeck/internal/store"
)

// MoveInput contains parameters for the Move operation.
type MoveInput struct {
	ID     string // required
	Status string // required
}

// MoveOutput contains the result of the Move operation.
type MoveOutput struct {
	Moved bool       `json:"moved"`
	Item  *flow.Item `json:"item,omitempty"`
}

// Move relocates an item to a new status. An unknown id reports moved=false
// rather than failing, so stale references from a concurrent surface stay
// harmless.
func Move(st *store.Store, input MoveInput) (*MoveOutput, error) {
	id := strings.TrimSpace(input.ID)
	if id == "" {
		return nil, errors.NewInvalidRequest("id is required")
	}
	status, err := flow.ParseItemStatus(input.Status)
	if err != nil {
		return nil, errors.NewInvalidRequest(err.Error())
	}

	moved, err := st.Move(id, status)
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	if !moved {
		return &MoveOutput{Moved: false}, nil
	}

	item, _ := st.Get(id)
	return &MoveOutput{Moved: true, Item: &item}, nil
}

// Done marks an item finished. Sugar over Move into the done column.
func Done(st *store.Store, id string) (*MoveOutput, error) {
	return Move(st, MoveInput{ID: id, Status: string(flow.StatusDone)})
}
