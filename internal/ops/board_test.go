package ops

import (
	"testing"

	"github.com/flowdeck/flowdeck/internal/errors"
	"github.com/flowdeck/flowdeck/internal/flow"
)

func TestBoard_ColumnsAndCounts(t *testing.T) {
	st := newTestStore(t,
		withMinutes(testItem("a", flow.TypeTask, flow.StatusToday), 30),
		withMinutes(testItem("b", flow.TypeTask, flow.StatusToday), 45),
		testItem("c", flow.TypeIdea, flow.StatusSomeday),
		testItem("d", flow.TypeTask, flow.StatusInbox),
		testItem("e", flow.TypeTask, flow.StatusDone),
	)

	out := Board(st)

	if len(out.Columns) != 4 {
		t.Fatalf("got %d columns, want 4", len(out.Columns))
	}
	wantOrder := []flow.ItemStatus{flow.StatusToday, flow.StatusThisWeek, flow.StatusSoon, flow.StatusSomeday}
	for i, want := range wantOrder {
		if out.Columns[i].Status != want {
			t.Errorf("column %d = %q, want %q", i, out.Columns[i].Status, want)
		}
	}

	today := out.Columns[0]
	if len(today.Items) != 2 {
		t.Errorf("today has %d items, want 2", len(today.Items))
	}
	if today.PlannedMinutes != 75 {
		t.Errorf("today planned minutes = %d, want 75", today.PlannedMinutes)
	}
	if today.Title != "Today" {
		t.Errorf("today title = %q", today.Title)
	}

	thisWeek := out.Columns[1]
	if thisWeek.Items == nil || len(thisWeek.Items) != 0 {
		t.Error("empty column must carry an empty slice, not nil")
	}

	if out.InboxCount != 1 || out.DoneCount != 1 {
		t.Errorf("counts = inbox %d done %d, want 1 and 1", out.InboxCount, out.DoneCount)
	}
}

func TestInbox_NewestFirst(t *testing.T) {
	st := newTestStore(t)
	if err := st.Add([]flow.Item{testItem("old", flow.TypeTask, flow.StatusInbox)}); err != nil {
		t.Fatal(err)
	}
	if err := st.Add([]flow.Item{testItem("new", flow.TypeTask, flow.StatusInbox)}); err != nil {
		t.Fatal(err)
	}

	out := Inbox(st)
	if out.Total != 2 {
		t.Fatalf("Total = %d, want 2", out.Total)
	}
	if out.Items[0].ID != "new" || out.Items[1].ID != "old" {
		t.Errorf("order = %q, %q; want newest first", out.Items[0].ID, out.Items[1].ID)
	}
}

func TestList_FilterAndValidation(t *testing.T) {
	st := newTestStore(t,
		testItem("a", flow.TypeTask, flow.StatusToday),
		testItem("b", flow.TypeIdea, flow.StatusSomeday),
	)

	all, err := List(st, ListInput{})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if all.Total != 2 {
		t.Errorf("unfiltered Total = %d, want 2", all.Total)
	}

	someday, err := List(st, ListInput{Status: "someday"})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if someday.Total != 1 || someday.Items[0].ID != "b" {
		t.Errorf("filtered = %+v", someday.Items)
	}

	_, err = List(st, ListInput{Status: "limbo"})
	if !errors.Is(err, errors.ErrInvalidRequest) {
		t.Fatalf("error = %v, want INVALID_REQUEST", err)
	}
}

func TestList_EmptyStoreReturnsEmptySlice(t *testing.T) {
	st := newTestStore(t)

	out, err := List(st, ListInput{})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if out.Items == nil {
		t.Error("Items must be an empty slice, not nil")
	}
}
