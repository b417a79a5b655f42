package ops

import (
	"math/rand/v2"

	"github.com/flowdeck/flowdeck/internal/errors"
	"github.com/flowdeck/flowdeck/internal/flow"
	"github.com/flowdeck/flowdeck/internal/store"
)

// QuestOutput contains the result of the Quest operation.
type QuestOutput struct {
	Item     flow.Item `json:"item"`
	PoolSize int       `json:"pool_size"`
}

// Quest picks a random someday item and promotes it to today. intn supplies
// the randomness; pass nil for the default source.
func Quest(st *store.Store, intn func(int) int) (*QuestOutput, error) {
	if intn == nil {
		intn = rand.IntN
	}

	pool := st.ByStatus(flow.StatusSomeday)
	if len(pool) == 0 {
		return nil, errors.NewEmptyPool()
	}

	pick := pool[intn(len(pool))]
	moved, err := st.Move(pick.ID, flow.StatusToday)
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	if !moved {
		// The pick vanished between read and move
		return nil, errors.NewNotFound(pick.ID)
	}

	item, _ := st.Get(pick.ID)
	return &QuestOutput{Item: item, PoolSize: len(pool)}, nil
}
