package flow

import (
	"fmt"
	"time"
)

// ItemType classifies what kind of record a brain dump produced.
type ItemType string

const (
	TypeSchedule ItemType = "schedule"
	TypeTask     ItemType = "task"
	TypeIdea     ItemType = "idea"
)

// ParseItemType converts an untyped collaborator value into an ItemType.
func ParseItemType(s string) (ItemType, error) {
	switch ItemType(s) {
	case TypeSchedule, TypeTask, TypeIdea:
		return ItemType(s), nil
	}
	return "", fmt.Errorf("unknown item type %q", s)
}

// ItemStatus is the board position of an item.
type ItemStatus string

const (
	StatusInbox    ItemStatus = "inbox"
	StatusToday    ItemStatus = "today"
	StatusThisWeek ItemStatus = "this_week"
	StatusSoon     ItemStatus = "soon"
	StatusSomeday  ItemStatus = "someday"
	StatusDone     ItemStatus = "done"
)

// AllStatuses lists the full status vocabulary in presentation order.
var AllStatuses = []ItemStatus{
	StatusInbox, StatusToday, StatusThisWeek, StatusSoon, StatusSomeday, StatusDone,
}

// ParseItemStatus converts an untyped value into an ItemStatus.
func ParseItemStatus(s string) (ItemStatus, error) {
	for _, st := range AllStatuses {
		if ItemStatus(s) == st {
			return st, nil
		}
	}
	return "", fmt.Errorf("unknown status %q", s)
}

// DefaultStatusFor maps a freshly classified type onto its starting status.
// Ideas park in someday, schedules land on today, everything else waits in
// the inbox for triage.
func DefaultStatusFor(t ItemType) ItemStatus {
	switch t {
	case TypeIdea:
		return StatusSomeday
	case TypeSchedule:
		return StatusToday
	default:
		return StatusInbox
	}
}

// Priority is the classifier's urgency estimate.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// ParsePriority converts an untyped value into a Priority.
func ParsePriority(s string) (Priority, error) {
	switch Priority(s) {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return Priority(s), nil
	}
	return "", fmt.Errorf("unknown priority %q", s)
}

// Analysis holds classifier-derived metadata attached to an item.
type Analysis struct {
	// Priority is the urgency estimate (empty if the classifier omitted it)
	Priority Priority `json:"priority,omitempty"`

	// EstimatedMinutes is the inflated time estimate; nil when absent
	EstimatedMinutes *int `json:"estimated_minutes,omitempty"`

	// Tags are free-form labels; order carries no meaning
	Tags []string `json:"tags,omitempty"`

	// Comment is the classifier's coaching remark, carried verbatim
	Comment string `json:"comment,omitempty"`

	// Confidence is the classifier's self-reported certainty in [0,1]
	Confidence float64 `json:"confidence"`
}

// Item is a structured record produced from a brain dump.
type Item struct {
	// ID is a ULID assigned at creation, immutable afterwards
	ID string `json:"id"`

	Type  ItemType `json:"type"`
	Title string   `json:"title"`

	// Content is the optional free-text body
	Content string `json:"content,omitempty"`

	Status ItemStatus `json:"status"`

	// Analysis is present when the classifier attached metadata
	Analysis *Analysis `json:"analysis,omitempty"`

	// Datetime is meaningful only for schedule items
	Datetime *time.Time `json:"datetime,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// CompletedAt is set exactly when Status == done
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// EstimatedMinutes returns the analysis time estimate, treating absence as 0.
func (i Item) EstimatedMinutes() int {
	if i.Analysis == nil || i.Analysis.EstimatedMinutes == nil {
		return 0
	}
	return *i.Analysis.EstimatedMinutes
}

// RealityCheck is the per-batch overcommitment verdict. It is transient:
// each analysis call replaces the previous one, and it is never persisted.
type RealityCheck struct {
	IsOverloaded bool   `json:"is_overloaded"`
	Suggestion   string `json:"suggestion"`
}
