package viewer

import (
	"reflect"
	"testing"

	"github.com/philipparndt/fieldmap/pkg/geometry"
)

func newSelectionFixture(t *testing.T) (*ShapeStore, *Selection) {
	t.Helper()
	store, _ := newTestStore()
	mustAdd(t, store,
		squareAt("a", 0, 0, 20),
		squareAt("b", 100, 0, 20),
		lineAt("row", 0, 100, 50),
		markerAt("m", 200, 200, 10),
	)
	for _, s := range store.All() {
		store.attach(s.ID)
	}
	return store, NewSelection(store)
}

func TestSelectionIsExclusiveByDefault(t *testing.T) {
	_, sel := newSelectionFixture(t)

	sel.Select("a", false)
	sel.Select("b", false)

	if got := sel.Selected(); !reflect.DeepEqual(got, []string{"b"}) {
		t.Errorf("selection after a then b: %v", got)
	}
	if sel.IsSelected("a") {
		t.Error("previous selection must be dropped")
	}
}

func TestSelectionMultiSelect(t *testing.T) {
	_, sel := newSelectionFixture(t)

	sel.Select("a", false)
	sel.Select("b", true)

	if got := sel.Selected(); !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Errorf("multi-select: %v", got)
	}
	if sel.Count() != 2 {
		t.Errorf("count = %d", sel.Count())
	}

	sel.Deselect("a")
	if got := sel.Selected(); !reflect.DeepEqual(got, []string{"b"}) {
		t.Errorf("after deselect: %v", got)
	}
}

func TestSelectionUnknownIDNoOp(t *testing.T) {
	_, sel := newSelectionFixture(t)

	sel.Select("ghost", false)

	if sel.Count() != 0 {
		t.Errorf("unknown id must not select, count=%d", sel.Count())
	}
}

func TestSelectionClear(t *testing.T) {
	_, sel := newSelectionFixture(t)

	sel.Select("a", false)
	sel.Select("b", true)
	sel.Clear()

	if sel.Count() != 0 || len(sel.Handles()) != 0 {
		t.Errorf("clear left count=%d handles=%d", sel.Count(), len(sel.Handles()))
	}
}

func TestSelectionHandleCardinality(t *testing.T) {
	_, sel := newSelectionFixture(t)

	// Polygon: one handle per vertex.
	sel.Select("a", false)
	if got := len(sel.Handles()); got != 5 {
		t.Errorf("polygon handles = %d, expected 5", got)
	}

	// Marker: four diagonal handles.
	sel.Select("m", false)
	if got := len(sel.Handles()); got != 4 {
		t.Errorf("marker handles = %d, expected 4", got)
	}

	// Line: selectable but no handles.
	sel.Select("row", false)
	if got := len(sel.Handles()); got != 0 {
		t.Errorf("line handles = %d, expected 0", got)
	}
	if !sel.IsSelected("row") {
		t.Error("line should still be selected")
	}

	// Multi-selection shows no handles at all.
	sel.Select("a", false)
	sel.Select("m", true)
	if got := len(sel.Handles()); got != 0 {
		t.Errorf("multi-selection handles = %d, expected 0", got)
	}

	// Dropping back to a single selection restores them.
	sel.Deselect("a")
	if got := len(sel.Handles()); got != 4 {
		t.Errorf("handles after deselect = %d, expected 4", got)
	}
}

func TestSelectionMarkerHandlesSitOnRadius(t *testing.T) {
	_, sel := newSelectionFixture(t)
	sel.Select("m", false)

	center := geometry.NewVector2(200, 200)
	for _, h := range sel.Handles() {
		d := h.Pos.Distance(center)
		if d < 10-1e-9 || d > 10+1e-9 {
			t.Errorf("handle %d at distance %v, expected radius 10", h.Index, d)
		}
	}
}

func TestSelectionHandleAt(t *testing.T) {
	_, sel := newSelectionFixture(t)
	sel.Select("a", false)

	h, ok := sel.HandleAt(geometry.NewVector2(20.5, 0.5), 2)
	if !ok || h.Index != 1 {
		t.Fatalf("expected vertex handle 1, got %+v ok=%v", h, ok)
	}
	if _, ok := sel.HandleAt(geometry.NewVector2(50, 50), 2); ok {
		t.Error("no handle should match far from the shape")
	}
}

func TestSelectionNotifiesSortedIDs(t *testing.T) {
	_, sel := newSelectionFixture(t)

	var got [][]string
	sel.SetOnChanged(func(ids []string) {
		got = append(got, ids)
	})

	sel.Select("b", false)
	sel.Select("a", true)
	sel.Clear()

	want := [][]string{{"b"}, {"a", "b"}, {}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("notifications = %v, want %v", got, want)
	}
}

func TestSelectionDropSkipsVisuals(t *testing.T) {
	store, sel := newSelectionFixture(t)
	sel.Select("a", false)

	store.Remove("a")
	sel.Drop("a")

	if sel.IsSelected("a") || sel.Count() != 0 {
		t.Error("drop should remove the id")
	}
	// Dropping again is a no-op.
	sel.Drop("a")
}
