package viewer

import (
	"testing"

	"github.com/philipparndt/fieldmap/pkg/field"
	"github.com/philipparndt/fieldmap/pkg/geometry"
)

func newInteractionFixture(t *testing.T) (*ShapeStore, *Selection, *Interaction) {
	t.Helper()
	store, _ := newTestStore()
	sel := NewSelection(store)
	mustAdd(t, store,
		squareAt("a", 0, 0, 20),
		markerAt("m", 200, 200, 10),
	)
	for _, s := range store.All() {
		store.attach(s.ID)
	}
	return store, sel, NewInteraction(store, sel)
}

func polygonVertices(t *testing.T, store *ShapeStore, id string) []geometry.Vector2 {
	t.Helper()
	shape, ok := store.Get(id)
	if !ok {
		t.Fatalf("shape %s missing", id)
	}
	poly, ok := shape.Geometry.(*field.Polygon)
	if !ok {
		t.Fatalf("shape %s is not a polygon", id)
	}
	out := make([]geometry.Vector2, len(poly.Vertices))
	copy(out, poly.Vertices)
	return out
}

func TestDragTranslatesRigidly(t *testing.T) {
	store, sel, in := newInteractionFixture(t)
	sel.Select("a", false)
	before := polygonVertices(t, store, "a")

	// Grab inside the body, away from any vertex handle.
	grab := geometry.NewVector2(10, 10)
	if !in.PointerDown(grab, 1) {
		t.Fatal("press on a selected body should start a drag")
	}
	if !in.Active() {
		t.Fatal("gesture should be active")
	}

	in.PointerMove(geometry.NewVector2(40, 15))
	in.PointerUp()

	want := geometry.NewVector2(30, 5)
	after := polygonVertices(t, store, "a")
	for i := range before {
		got := after[i].Sub(before[i])
		if got != want {
			t.Errorf("vertex %d moved by %v, want %v", i, got, want)
		}
	}
	if in.Active() {
		t.Error("gesture should end on release")
	}
}

func TestDragRequiresSelection(t *testing.T) {
	_, _, in := newInteractionFixture(t)

	if in.PointerDown(geometry.NewVector2(10, 10), 1) {
		t.Error("press on an unselected body must not start a gesture")
	}
}

func TestHandleTakesPriorityOverBody(t *testing.T) {
	store, sel, in := newInteractionFixture(t)
	sel.Select("a", false)

	// Vertex 2 at (20,20) sits on the body boundary; the handle must win.
	if !in.PointerDown(geometry.NewVector2(20, 20), 3) {
		t.Fatal("press on a handle should start a resize")
	}
	in.PointerMove(geometry.NewVector2(30, 35))
	in.PointerUp()

	after := polygonVertices(t, store, "a")
	if after[2] != geometry.NewVector2(30, 35) {
		t.Errorf("vertex 2 = %v, want (30,35)", after[2])
	}
	// The other vertices stay put.
	if after[0] != geometry.NewVector2(0, 0) || after[1] != geometry.NewVector2(20, 0) {
		t.Error("resize must move only the grabbed vertex")
	}
}

func TestMarkerResizeFloorsRadius(t *testing.T) {
	store, sel, in := newInteractionFixture(t)
	sel.Select("m", false)

	h, ok := sel.HandleAt(geometry.NewVector2(207, 193), 2)
	if !ok {
		t.Fatal("expected a marker handle near (207,193)")
	}
	if !in.PointerDown(h.Pos, 1) {
		t.Fatal("press on a marker handle should start a resize")
	}

	in.PointerMove(geometry.NewVector2(230, 200))
	marker := func() *field.Marker {
		shape, _ := store.Get("m")
		return shape.Geometry.(*field.Marker)
	}
	if got := marker().Radius; got != 30 {
		t.Errorf("radius = %v, want 30", got)
	}

	// Dragging onto the center clamps at the minimum radius.
	in.PointerMove(geometry.NewVector2(200, 200))
	if got := marker().Radius; got != field.MinMarkerRadius {
		t.Errorf("radius = %v, want floor %v", got, field.MinMarkerRadius)
	}
	in.PointerUp()
}

func TestGestureSurvivesShapeRemoval(t *testing.T) {
	store, sel, in := newInteractionFixture(t)
	sel.Select("a", false)

	if !in.PointerDown(geometry.NewVector2(10, 10), 1) {
		t.Fatal("drag should start")
	}
	sel.Drop("a")
	store.Remove("a")

	// Moves and release against the removed shape must not panic.
	in.PointerMove(geometry.NewVector2(50, 50))
	in.PointerUp()
	if in.Active() {
		t.Error("gesture should return to idle")
	}
}

func TestDragKeepsGrabOffset(t *testing.T) {
	store, sel, in := newInteractionFixture(t)
	sel.Select("a", false)

	// Grab near a corner, not the reference vertex.
	grab := geometry.NewVector2(18, 3)
	if !in.PointerDown(grab, 0.5) {
		t.Fatal("drag should start")
	}
	target := geometry.NewVector2(118, 53)
	in.PointerMove(target)
	in.PointerUp()

	// The grabbed point follows the pointer exactly.
	after := polygonVertices(t, store, "a")
	movedGrab := grab.Add(after[0].Sub(geometry.NewVector2(0, 0)))
	if movedGrab != target {
		t.Errorf("grab point moved to %v, want %v", movedGrab, target)
	}
}
