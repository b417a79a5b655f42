package analyze

import (
	"context"
	"crypto/rand"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/oklog/ulid/v2"

	"github.com/flowdeck/flowdeck/internal/errors"
	"github.com/flowdeck/flowdeck/internal/flow"
)

// untitledPlaceholder stands in when the classifier omits a title.
const untitledPlaceholder = "(untitled)"

// Result is a successful analysis: store-ready items plus the batch verdict.
type Result struct {
	Items        []flow.Item       `json:"items"`
	RealityCheck flow.RealityCheck `json:"reality_check"`
}

// Analyzer runs the capture pipeline: one classification call at a time,
// candidate repair, status mapping, and ID/timestamp assignment. It never
// touches the store; callers insert the returned batch.
type Analyzer struct {
	classifier Classifier
	maxChars   int

	// mu enforces the at-most-one-in-flight guarantee. TryLock, not a queue:
	// a rejected call is dropped, never deferred.
	mu sync.Mutex

	now func() time.Time
}

// New creates an Analyzer. maxChars of 0 disables the dump size guard.
func New(classifier Classifier, maxChars int) *Analyzer {
	return &Analyzer{
		classifier: classifier,
		maxChars:   maxChars,
		now:        time.Now,
	}
}

// Analyze classifies rawText into store-ready items. While a call is in
// flight, further calls fail with ANALYSIS_IN_FLIGHT and reach no
// collaborator. A failed or unparsable classification fails the whole
// operation; malformed individual candidates are repaired with defaults
// instead so the batch stays atomic.
func (a *Analyzer) Analyze(ctx context.Context, rawText string) (*Result, error) {
	text := strings.TrimSpace(rawText)
	if text == "" {
		return nil, errors.NewInvalidRequest("text is required")
	}
	if a.maxChars > 0 {
		if chars := utf8.RuneCountInString(text); chars > a.maxChars {
			return nil, errors.NewDumpTooLarge(a.maxChars, chars)
		}
	}

	if !a.mu.TryLock() {
		return nil, errors.NewAnalysisInFlight()
	}
	defer a.mu.Unlock()

	now := a.now().UTC()
	resp, err := a.classifier.Classify(ctx, text, now)
	if err != nil {
		return nil, errors.NewAnalysisFailed(err)
	}

	items := make([]flow.Item, 0, len(resp.Items))
	for _, cand := range resp.Items {
		item, err := a.buildItem(cand, now)
		if err != nil {
			return nil, errors.NewInternal(err)
		}
		items = append(items, item)
	}

	return &Result{
		Items:        items,
		RealityCheck: *resp.RealityCheck,
	}, nil
}

// buildItem repairs one candidate into a store-ready item.
func (a *Analyzer) buildItem(cand Candidate, now time.Time) (flow.Item, error) {
	id, err := generateULID(now)
	if err != nil {
		return flow.Item{}, err
	}

	itemType, err := flow.ParseItemType(cand.Type)
	if err != nil {
		// Unrecognized types triage as plain tasks
		itemType = flow.TypeTask
	}

	title := strings.TrimSpace(cand.Title)
	if title == "" {
		title = untitledPlaceholder
	}

	analysis := &flow.Analysis{
		Comment:    strings.TrimSpace(cand.AIComment),
		Confidence: 1,
	}
	if p, err := flow.ParsePriority(cand.Priority); err == nil {
		analysis.Priority = p
	}
	if cand.EstimatedMinutes != nil {
		if minutes := int(*cand.EstimatedMinutes); minutes >= 0 {
			analysis.EstimatedMinutes = &minutes
		}
	}
	for _, tag := range cand.Tags {
		if tag = strings.TrimSpace(tag); tag != "" {
			analysis.Tags = append(analysis.Tags, tag)
		}
	}

	item := flow.Item{
		ID:        id,
		Type:      itemType,
		Title:     title,
		Content:   strings.TrimSpace(cand.Content),
		Status:    flow.DefaultStatusFor(itemType),
		Analysis:  analysis,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if cand.Datetime != "" {
		if when, err := time.Parse(time.RFC3339, cand.Datetime); err == nil {
			item.Datetime = &when
		}
	}

	return item, nil
}

// generateULID generates a new ULID seeded from the capture timestamp.
func generateULID(now time.Time) (string, error) {
	entropy := ulid.Monotonic(rand.Reader, 0)
	id, err := ulid.New(ulid.Timestamp(now), entropy)
	if err != nil {
		return "", err
	}
	return id.String(), nil
}
