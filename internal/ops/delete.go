package ops

import (
	"strings"

	"github.com/flowdeck/flowdeck/internal/errors"
	"github.com/flowdeck/flowdeck/internal/store"
)

// DeleteInput contains parameters for the Delete operation.
type DeleteInput struct {
	ID string // required
}

// DeleteOutput contains the result of the Delete operation.
type DeleteOutput struct {
	Deleted bool   `json:"deleted"`
	ID      string `json:"id"`
}

// Delete removes an item permanently. Unknown ids report deleted=false.
func Delete(st *store.Store, input DeleteInput) (*DeleteOutput, error) {
	id := strings.TrimSpace(input.ID)
	if id == "" {
		return nil, errors.NewInvalidRequest("id is required")
	}

	deleted, err := st.Delete(id)
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	return &DeleteOutput{Deleted: deleted, ID: id}, nil
}
