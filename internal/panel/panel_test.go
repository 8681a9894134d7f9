package panel

import (
	"reflect"
	"testing"
)

// item is a minimal resource for exercising the panel core
type item struct {
	ID   string
	Name string
}

func itemID(i item) string { return i.ID }

func newTestList() *List[item] {
	return NewList(itemID)
}

func TestNewList_StartsIdle(t *testing.T) {
	l := newTestList()

	if l.Status() != StatusIdle {
		t.Errorf("Status() = %v, want StatusIdle", l.Status())
	}
	if l.Busy() {
		t.Error("new list should not be busy")
	}
	if len(l.Items()) != 0 {
		t.Errorf("Items() = %v, want empty", l.Items())
	}
}

func TestBegin_BlocksOverlappingOperations(t *testing.T) {
	l := newTestList()

	if !l.Begin() {
		t.Fatal("first Begin() should succeed")
	}
	if l.Status() != StatusLoading {
		t.Errorf("Status() = %v, want StatusLoading", l.Status())
	}

	if l.Begin() {
		t.Error("second Begin() should be blocked while busy")
	}

	l.FinishFetch(nil, "")
	if !l.Begin() {
		t.Error("Begin() should succeed again after the operation resolved")
	}
}

func TestFinishFetch_ReplacesListWholesale(t *testing.T) {
	l := newTestList()

	l.Begin()
	l.FinishFetch([]item{{ID: "a"}, {ID: "b"}}, "fetched")

	l.Begin()
	l.FinishFetch([]item{{ID: "c"}}, "fetched")

	want := []item{{ID: "c"}}
	if !reflect.DeepEqual(l.Items(), want) {
		t.Errorf("Items() = %v, want %v (no merging)", l.Items(), want)
	}
	if l.Status() != StatusReady {
		t.Errorf("Status() = %v, want StatusReady", l.Status())
	}
}

func TestFinishFetch_Idempotent(t *testing.T) {
	l := newTestList()
	server := []item{{ID: "b", Name: "second"}, {ID: "a", Name: "first"}}

	l.Begin()
	l.FinishFetch(append([]item(nil), server...), "")
	first := append([]item(nil), l.Items()...)

	l.Begin()
	l.FinishFetch(append([]item(nil), server...), "")

	if !reflect.DeepEqual(l.Items(), first) {
		t.Errorf("two fetches of identical server output differ: %v vs %v", l.Items(), first)
	}
}

func TestFinishCreate_AppendsServerCopyAndClearsDraft(t *testing.T) {
	l := newTestList()
	l.Begin()
	l.FinishFetch([]item{{ID: "a"}}, "")

	l.StartNew()
	l.Draft().Name = "Lamp"

	l.Begin()
	l.FinishCreate(item{ID: "d1", Name: "Lamp"}, "created")

	want := []item{{ID: "a"}, {ID: "d1", Name: "Lamp"}}
	if !reflect.DeepEqual(l.Items(), want) {
		t.Errorf("Items() = %v, want %v", l.Items(), want)
	}
	if l.Draft() != nil {
		t.Error("draft should be cleared after a confirmed create")
	}
}

func TestFinishUpdate_ReplacesByIdentifier(t *testing.T) {
	l := newTestList()
	l.Begin()
	l.FinishFetch([]item{{ID: "a", Name: "old"}, {ID: "b", Name: "keep"}}, "")

	l.Select(item{ID: "a", Name: "old"})
	l.Begin()
	l.FinishUpdate(item{ID: "a", Name: "new"}, "updated")

	want := []item{{ID: "a", Name: "new"}, {ID: "b", Name: "keep"}}
	if !reflect.DeepEqual(l.Items(), want) {
		t.Errorf("Items() = %v, want %v", l.Items(), want)
	}
	if l.Editing() {
		t.Error("selection should be cleared after a confirmed update")
	}
}

func TestFinishDelete_RemovesExactlyOneByID(t *testing.T) {
	// two entries sharing every field except the identifier
	l := newTestList()
	l.Begin()
	l.FinishFetch([]item{
		{ID: "x", Name: "twin"},
		{ID: "y", Name: "twin"},
	}, "")

	l.Begin()
	l.FinishDelete("x", "deleted")

	want := []item{{ID: "y", Name: "twin"}}
	if !reflect.DeepEqual(l.Items(), want) {
		t.Errorf("Items() = %v, want %v (only the matching identifier removed)", l.Items(), want)
	}
}

func TestFinishFailure_RetainsEverythingButMessage(t *testing.T) {
	l := newTestList()
	l.Begin()
	l.FinishFetch([]item{{ID: "a", Name: "keep"}}, "fetched")

	l.Select(item{ID: "a", Name: "keep"})
	l.Draft().Name = "edited"

	before := append([]item(nil), l.Items()...)

	l.Begin()
	l.FinishFailure("Invalid token")

	if !reflect.DeepEqual(l.Items(), before) {
		t.Errorf("Items() = %v, want unchanged %v", l.Items(), before)
	}
	if l.Status() != StatusError {
		t.Errorf("Status() = %v, want StatusError", l.Status())
	}
	if l.Busy() {
		t.Error("busy flag must clear on failure")
	}
	if l.Draft() == nil || l.Draft().Name != "edited" {
		t.Error("draft must be retained on failure so the user can retry")
	}

	msg, failed := l.Message()
	if msg != "Invalid token" || !failed {
		t.Errorf("Message() = (%q, %v), want (\"Invalid token\", true)", msg, failed)
	}
}

func TestMessage_SuccessReplacesFailure(t *testing.T) {
	l := newTestList()

	l.Begin()
	l.FinishFailure("boom")

	l.Begin()
	l.FinishAction("Action successful")

	msg, failed := l.Message()
	if msg != "Action successful" || failed {
		t.Errorf("Message() = (%q, %v), want success message only", msg, failed)
	}
}

func TestSelect_DiscardsPriorDraftWithoutWarning(t *testing.T) {
	l := newTestList()
	l.Begin()
	l.FinishFetch([]item{{ID: "a", Name: "first"}, {ID: "b", Name: "second"}}, "")

	l.Select(item{ID: "a", Name: "first"})
	l.Draft().Name = "unsaved edit"

	l.Select(item{ID: "b", Name: "second"})

	if l.Draft().ID != "b" || l.Draft().Name != "second" {
		t.Errorf("Draft() = %+v, want a fresh copy of b", *l.Draft())
	}
}

func TestSelect_DraftIsACopy(t *testing.T) {
	l := newTestList()
	l.Begin()
	l.FinishFetch([]item{{ID: "a", Name: "original"}}, "")

	l.Select(l.Items()[0])
	l.Draft().Name = "edited"

	if l.Items()[0].Name != "original" {
		t.Error("editing the draft must not touch the list entry")
	}
}

func TestStartNew_IsNotEditing(t *testing.T) {
	l := newTestList()

	l.StartNew()
	if l.Editing() {
		t.Error("a fresh draft is a create, not an edit")
	}

	l.Select(item{ID: "a"})
	if !l.Editing() {
		t.Error("a selected resource is an edit")
	}
}

func TestReplaceByID_MissingIDLeavesSliceUnchanged(t *testing.T) {
	items := []item{{ID: "a"}, {ID: "b"}}
	got := ReplaceByID(items, itemID, item{ID: "zz", Name: "ghost"})

	want := []item{{ID: "a"}, {ID: "b"}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ReplaceByID() = %v, want %v", got, want)
	}
}

func TestRemoveByID_MissingIDLeavesSliceUnchanged(t *testing.T) {
	items := []item{{ID: "a"}, {ID: "b"}}
	got := RemoveByID(items, itemID, "zz")

	want := []item{{ID: "a"}, {ID: "b"}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("RemoveByID() = %v, want %v", got, want)
	}
}

func TestRemoveByID_PreservesOrder(t *testing.T) {
	items := []item{{ID: "a"}, {ID: "b"}, {ID: "c"}}
	got := RemoveByID(items, itemID, "b")

	want := []item{{ID: "a"}, {ID: "c"}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("RemoveByID() = %v, want %v", got, want)
	}
}

func TestStatusString(t *testing.T) {
	tests := []struct {
		status Status
		want   string
	}{
		{StatusIdle, "idle"},
		{StatusLoading, "loading"},
		{StatusError, "error"},
		{StatusReady, "ready"},
		{Status(9), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.status.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}
