package viewer

import (
	"testing"

	"github.com/philipparndt/fieldmap/pkg/geometry"
)

func TestStoreAddDoesNotAttach(t *testing.T) {
	store, _ := newTestStore()

	obj, err := store.Add(squareAt("a", 0, 0, 10))
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if obj == nil {
		t.Fatal("Add should return the render object")
	}
	if store.InScene("a") {
		t.Error("freshly added shape must not be attached")
	}
	if store.Count() != 1 || store.AttachedCount() != 0 {
		t.Errorf("count=%d attached=%d, expected 1/0", store.Count(), store.AttachedCount())
	}
}

func TestStoreRejectsDuplicateID(t *testing.T) {
	store, _ := newTestStore()
	mustAdd(t, store, squareAt("a", 0, 0, 10))

	if _, err := store.Add(squareAt("a", 5, 5, 10)); err == nil {
		t.Error("duplicate id should be rejected")
	}
	if store.Count() != 1 {
		t.Errorf("count should stay 1, got %d", store.Count())
	}
}

func TestStoreAttachDetach(t *testing.T) {
	store, _ := newTestStore()
	mustAdd(t, store, squareAt("a", 0, 0, 10))

	store.attach("a")
	if !store.InScene("a") || store.AttachedCount() != 1 {
		t.Fatal("attach failed")
	}
	// attach is idempotent
	store.attach("a")
	if store.AttachedCount() != 1 {
		t.Error("double attach must not double count")
	}

	store.detach("a")
	if store.InScene("a") || store.AttachedCount() != 0 {
		t.Fatal("detach failed")
	}
	store.detach("a")
	if store.AttachedCount() != 0 {
		t.Error("double detach must not go negative")
	}
}

func TestStoreRemoveDetaches(t *testing.T) {
	store, _ := newTestStore()
	mustAdd(t, store, squareAt("a", 0, 0, 10), squareAt("b", 20, 0, 10))
	store.attach("a")

	store.Remove("a")

	if store.Count() != 1 || store.AttachedCount() != 0 {
		t.Errorf("after remove: count=%d attached=%d", store.Count(), store.AttachedCount())
	}
	if _, ok := store.Get("a"); ok {
		t.Error("removed shape should be gone")
	}
	// Removing an unknown id is a no-op.
	store.Remove("a")
	if len(store.All()) != 1 || store.All()[0].ID != "b" {
		t.Error("All should list the remaining shape")
	}
}

func TestStoreClear(t *testing.T) {
	store, _ := newTestStore()
	mustAdd(t, store, squareAt("a", 0, 0, 10), markerAt("m", 50, 50, 5))
	store.attach("a")
	store.attach("m")

	store.Clear()

	if store.Count() != 0 || store.AttachedCount() != 0 {
		t.Errorf("clear left count=%d attached=%d", store.Count(), store.AttachedCount())
	}
}

func TestStoreShapeAt(t *testing.T) {
	store, _ := newTestStore()
	mustAdd(t, store,
		squareAt("below", 0, 0, 20),
		squareAt("above", 5, 5, 20), // added later, wins overlap
		lineAt("row", 100, 100, 50),
		markerAt("m", 200, 200, 5),
	)
	for _, id := range []string{"below", "above", "row", "m"} {
		store.attach(id)
	}

	if id, ok := store.ShapeAt(geometry.NewVector2(10, 10), 1); !ok || id != "above" {
		t.Errorf("overlap should prefer the most recently added shape, got %q", id)
	}
	if id, ok := store.ShapeAt(geometry.NewVector2(2, 2), 1); !ok || id != "below" {
		t.Errorf("expected below, got %q", id)
	}
	if id, ok := store.ShapeAt(geometry.NewVector2(125, 102), 3); !ok || id != "row" {
		t.Errorf("line should hit within tolerance, got %q ok=%v", id, ok)
	}
	if _, ok := store.ShapeAt(geometry.NewVector2(125, 110), 3); ok {
		t.Error("line should miss outside tolerance")
	}
	if id, ok := store.ShapeAt(geometry.NewVector2(204, 200), 1); !ok || id != "m" {
		t.Errorf("marker should hit within radius, got %q", id)
	}

	store.detach("above")
	if id, _ := store.ShapeAt(geometry.NewVector2(10, 10), 1); id != "below" {
		t.Errorf("detached shapes must not be hit-testable, got %q", id)
	}
}

func TestStoreRefreshVisualStaleID(t *testing.T) {
	store, _ := newTestStore()
	// Must not panic.
	store.RefreshVisual("ghost", true)
}

func TestStoreBounds(t *testing.T) {
	store, _ := newTestStore()
	mustAdd(t, store, squareAt("a", 0, 0, 10), squareAt("b", 90, 40, 10))

	b := store.Bounds()
	if b.Min != geometry.NewVector2(0, 0) || b.Max != geometry.NewVector2(100, 50) {
		t.Errorf("bounds: got min=%v max=%v", b.Min, b.Max)
	}
}
