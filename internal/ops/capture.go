package ops

import (
	"context"

	"github.com/flowdeck/flowdeck/internal/analyze"
	"github.com/flowdeck/flowdeck/internal/errors"
	"github.com/flowdeck/flowdeck/internal/flow"
	"github.com/flowdeck/flowdeck/internal/store"
)

// CaptureInput contains parameters for the Capture operation.
type CaptureInput struct {
	Text string // required
}

// CaptureOutput contains the result of the Capture operation.
type CaptureOutput struct {
	Items        []flow.Item       `json:"items"`
	RealityCheck flow.RealityCheck `json:"reality_check"`
	Added        int               `json:"added"`
}

// Capture runs a brain dump through analysis and inserts the resulting batch.
// An overloaded verdict marks the session but never blocks the insert.
func Capture(ctx context.Context, analyzer *analyze.Analyzer, st *store.Store, input CaptureInput) (*CaptureOutput, error) {
	res, err := analyzer.Analyze(ctx, input.Text)
	if err != nil {
		return nil, err
	}

	if err := st.Add(res.Items); err != nil {
		return nil, errors.NewInternal(err)
	}
	if res.RealityCheck.IsOverloaded {
		st.MarkOverloaded()
	}

	items := res.Items
	if items == nil {
		items = []flow.Item{}
	}

	return &CaptureOutput{
		Items:        items,
		RealityCheck: res.RealityCheck,
		Added:        len(res.Items),
	}, nil
}
