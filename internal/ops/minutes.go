package ops

import (
	"github.com/flowdeck/flowdeck/internal/errors"
	"github.com/flowdeck/flowdeck/internal/flow"
	"github.com/flowdeck/flowdeck/internal/store"
)

// MinutesInput contains parameters for the Minutes operation.
type MinutesInput struct {
	Status string // default: today
}

// MinutesOutput contains the result of the Minutes operation.
type MinutesOutput struct {
	Status       flow.ItemStatus `json:"status"`
	TotalMinutes int             `json:"total_minutes"`
	Items        int             `json:"items"`
}

// Minutes sums the planned time for one status column. Items without an
// estimate count as zero.
func Minutes(st *store.Store, input MinutesInput) (*MinutesOutput, error) {
	status := flow.StatusToday
	if input.Status != "" {
		parsed, err := flow.ParseItemStatus(input.Status)
		if err != nil {
			return nil, errors.NewInvalidRequest(err.Error())
		}
		status = parsed
	}

	return &MinutesOutput{
		Status:       status,
		TotalMinutes: st.TotalPlannedMinutes(status),
		Items:        len(st.ByStatus(status)),
	}, nil
}
