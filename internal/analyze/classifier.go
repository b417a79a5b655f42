package analyze

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/flowdeck/flowdeck/internal/flow"
)

// Classifier turns a raw brain dump into candidate items plus one
// reality-check verdict for the whole batch. Implementations own the
// natural-language understanding; the analyzer owns everything after.
type Classifier interface {
	Classify(ctx context.Context, text string, now time.Time) (*Response, error)
}

// Response is the classification payload after shape validation.
// Field names mirror the collaborator's snake_case wire contract.
type Response struct {
	Items        []Candidate        `json:"items"`
	RealityCheck *flow.RealityCheck `json:"reality_check"`
}

// Candidate is one untyped item proposal from the classifier. Everything
// except type and title is optional, and even those are repaired with
// defaults rather than rejected so a batch insert stays atomic.
type Candidate struct {
	Type             string   `json:"type"`
	Title            string   `json:"title"`
	Content          string   `json:"content,omitempty"`
	Datetime         string   `json:"datetime,omitempty"`
	Priority         string   `json:"priority,omitempty"`
	EstimatedMinutes *float64 `json:"estimated_minutes,omitempty"`
	Tags             []string `json:"tags,omitempty"`
	AIComment        string   `json:"ai_comment,omitempty"`
}

// ParseResponse validates raw collaborator output against the expected
// shape. A payload without a reality_check object (including an empty body)
// is a classification failure; malformed individual candidates are not.
func ParseResponse(data []byte) (*Response, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("empty classification response")
	}

	var resp Response
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("unparsable classification response: %w", err)
	}
	if resp.RealityCheck == nil {
		return nil, fmt.Errorf("classification response missing reality_check")
	}
	return &resp, nil
}
