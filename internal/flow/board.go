package flow

// BoardStatuses are the columns the board surface renders, in display order.
// Inbox and done are separate projections, not board columns.
var BoardStatuses = []ItemStatus{StatusToday, StatusThisWeek, StatusSoon, StatusSomeday}

// ColumnTitles maps each status to its display title.
var ColumnTitles = map[ItemStatus]string{
	StatusInbox:    "Inbox",
	StatusToday:    "Today",
	StatusThisWeek: "This Week",
	StatusSoon:     "Soon",
	StatusSomeday:  "Someday",
	StatusDone:     "Done",
}

// MoveTargets are the statuses surfaces offer as move destinations. The core
// Move operation accepts any status; leaving done is simply never offered.
var MoveTargets = []ItemStatus{StatusToday, StatusThisWeek, StatusSomeday, StatusDone}

// GroupByStatus projects items into per-status buckets, preserving store
// order within each bucket.
func GroupByStatus(items []Item) map[ItemStatus][]Item {
	groups := make(map[ItemStatus][]Item, len(AllStatuses))
	for _, item := range items {
		groups[item.Status] = append(groups[item.Status], item)
	}
	return groups
}

// FilterByStatus returns the subset of items holding the given status, in
// store order.
func FilterByStatus(items []Item, status ItemStatus) []Item {
	var out []Item
	for _, item := range items {
		if item.Status == status {
			out = append(out, item)
		}
	}
	return out
}
