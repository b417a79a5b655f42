package ops

import (
	"github.com/flowdeck/flowdeck/internal/errors"
	"github.com/flowdeck/flowdeck/internal/flow"
	"github.com/flowdeck/flowdeck/internal/store"
)

// Column is one rendered board column.
type Column struct {
	Status         flow.ItemStatus `json:"status"`
	Title          string          `json:"title"`
	Items          []flow.Item     `json:"items"`
	PlannedMinutes int             `json:"planned_minutes"`
}

// BoardOutput contains the result of the Board operation.
type BoardOutput struct {
	Columns      []Column `json:"columns"`
	InboxCount   int      `json:"inbox_count"`
	DoneCount    int      `json:"done_count"`
	OverloadSeen bool     `json:"overload_seen"`
}

// Board projects the collection into the four planning columns. Inbox and
// done appear only as counts; they have their own views.
func Board(st *store.Store) *BoardOutput {
	groups := flow.GroupByStatus(st.Items())

	columns := make([]Column, 0, len(flow.BoardStatuses))
	for _, status := range flow.BoardStatuses {
		items := groups[status]
		if items == nil {
			items = []flow.Item{}
		}
		minutes := 0
		for i := range items {
			minutes += items[i].EstimatedMinutes()
		}
		columns = append(columns, Column{
			Status:         status,
			Title:          flow.ColumnTitles[status],
			Items:          items,
			PlannedMinutes: minutes,
		})
	}

	return &BoardOutput{
		Columns:      columns,
		InboxCount:   len(groups[flow.StatusInbox]),
		DoneCount:    len(groups[flow.StatusDone]),
		OverloadSeen: st.OverloadSeen(),
	}
}

// InboxOutput contains the result of the Inbox operation.
type InboxOutput struct {
	Items []flow.Item `json:"items"`
	Total int         `json:"total"`
}

// Inbox lists the items still waiting for triage, newest first.
func Inbox(st *store.Store) *InboxOutput {
	items := st.ByStatus(flow.StatusInbox)
	if items == nil {
		items = []flow.Item{}
	}
	return &InboxOutput{Items: items, Total: len(items)}
}

// ListInput contains parameters for the List operation.
type ListInput struct {
	Status string // optional filter
}

// ListOutput contains the result of the List operation.
type ListOutput struct {
	Items []flow.Item `json:"items"`
	Total int         `json:"total"`
}

// List returns the collection in store order, optionally filtered by status.
func List(st *store.Store, input ListInput) (*ListOutput, error) {
	var items []flow.Item
	if input.Status == "" {
		items = st.Items()
	} else {
		status, err := flow.ParseItemStatus(input.Status)
		if err != nil {
			return nil, errors.NewInvalidRequest(err.Error())
		}
		items = st.ByStatus(status)
	}
	if items == nil {
		items = []flow.Item{}
	}
	return &ListOutput{Items: items, Total: len(items)}, nil
}
