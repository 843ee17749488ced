package viewer

import (
	"image/color"
	"math"
	"sort"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"

	"github.com/philipparndt/fieldmap/pkg/field"
	"github.com/philipparndt/fieldmap/pkg/geometry"
)

const handleSizePx = 8

var (
	handleFill   = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	handleStroke = highlightColor
)

// Handle is one resize grip of the selected shape: a vertex index for
// polygons, or a diagonal direction index (0..3) for markers.
type Handle struct {
	ShapeID string
	Index   int
	Pos     geometry.Vector2
}

// Selection tracks the set of selected shape ids and derives the
// resize-handle overlay when exactly one shape is selected. Lines are
// selectable but expose no handles.
type Selection struct {
	store    *ShapeStore
	ids      map[string]struct{}
	handles  []Handle
	grips    []*canvas.Rectangle
	overlay  *fyne.Container
	onChange func(ids []string)
}

// NewSelection creates an empty selection over a store.
func NewSelection(store *ShapeStore) *Selection {
	return &Selection{
		store:   store,
		ids:     make(map[string]struct{}),
		overlay: container.NewWithoutLayout(),
	}
}

// Overlay returns the container holding the handle grips; the host stacks
// it above the shape scene.
func (s *Selection) Overlay() fyne.CanvasObject {
	return s.overlay
}

// SetOnChanged registers the single selection-changed callback. It receives
// the current selection as a sorted id slice; order carries no meaning.
func (s *Selection) SetOnChanged(fn func(ids []string)) {
	s.onChange = fn
}

// Select adds a shape to the selection. Without multiSelect the previous
// selection is cleared (and un-highlighted) first. Selecting an unknown id
// is a no-op.
func (s *Selection) Select(id string, multiSelect bool) {
	if _, ok := s.store.Get(id); !ok {
		return
	}
	if !multiSelect {
		for prev := range s.ids {
			if prev != id {
				s.store.RefreshVisual(prev, false)
			}
		}
		s.ids = make(map[string]struct{})
	}
	s.ids[id] = struct{}{}
	s.store.RefreshVisual(id, true)
	s.rebuildHandles()
	s.notify()
}

// Deselect removes a shape from the selection and reverts its highlight.
func (s *Selection) Deselect(id string) {
	if _, ok := s.ids[id]; !ok {
		return
	}
	delete(s.ids, id)
	s.store.RefreshVisual(id, false)
	s.rebuildHandles()
	s.notify()
}

// Clear empties the selection, reverting every highlight.
func (s *Selection) Clear() {
	if len(s.ids) == 0 {
		return
	}
	for id := range s.ids {
		s.store.RefreshVisual(id, false)
	}
	s.ids = make(map[string]struct{})
	s.rebuildHandles()
	s.notify()
}

// Drop removes an id from the selection without touching its visuals, for
// shapes that no longer exist in the store.
func (s *Selection) Drop(id string) {
	if _, ok := s.ids[id]; !ok {
		return
	}
	delete(s.ids, id)
	s.rebuildHandles()
	s.notify()
}

// IsSelected reports whether a shape is selected.
func (s *Selection) IsSelected(id string) bool {
	_, ok := s.ids[id]
	return ok
}

// Selected returns the selected ids, sorted.
func (s *Selection) Selected() []string {
	out := make([]string, 0, len(s.ids))
	for id := range s.ids {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// Count returns the selection size.
func (s *Selection) Count() int {
	return len(s.ids)
}

// Handles returns the current resize handles. Non-empty only when exactly
// one shape is selected.
func (s *Selection) Handles() []Handle {
	return s.handles
}

// HandleAt returns the handle under a world position, if any. The tolerance
// is in world units.
func (s *Selection) HandleAt(pos geometry.Vector2, tolerance float64) (Handle, bool) {
	for _, h := range s.handles {
		if h.Pos.Distance(pos) <= tolerance {
			return h, true
		}
	}
	return Handle{}, false
}

func (s *Selection) notify() {
	if s.onChange != nil {
		s.onChange(s.Selected())
	}
}

// activeID returns the single selected shape id, when selection size is 1.
func (s *Selection) activeID() (string, bool) {
	if len(s.ids) != 1 {
		return "", false
	}
	for id := range s.ids {
		return id, true
	}
	return "", false
}

// rebuildHandles recomputes the handle set and its grips. Handles exist
// only for a single selection; multi-selection shows none.
func (s *Selection) rebuildHandles() {
	s.handles = s.handles[:0]
	s.grips = s.grips[:0]
	s.overlay.RemoveAll()

	id, ok := s.activeID()
	if !ok {
		return
	}
	shape, ok := s.store.Get(id)
	if !ok {
		return
	}

	s.handles = computeHandles(shape)
	for range s.handles {
		grip := canvas.NewRectangle(handleFill)
		grip.StrokeColor = handleStroke
		grip.StrokeWidth = 1.5
		grip.Resize(fyne.NewSize(handleSizePx, handleSizePx))
		s.grips = append(s.grips, grip)
		s.overlay.Add(grip)
	}
	s.positionGrips()
	s.syncHandleVisibility()
}

// RefreshHandlePositions recomputes handle positions from the selected
// shape's current geometry and moves the grips, called on every pointer
// move of a drag or resize gesture.
func (s *Selection) RefreshHandlePositions() {
	id, ok := s.activeID()
	if !ok {
		return
	}
	shape, ok := s.store.Get(id)
	if !ok {
		return
	}
	fresh := computeHandles(shape)
	if len(fresh) != len(s.handles) {
		s.rebuildHandles()
		return
	}
	s.handles = fresh
	s.positionGrips()
}

func (s *Selection) positionGrips() {
	for i, h := range s.handles {
		x, y := s.store.camera.Project(h.Pos)
		s.grips[i].Move(fyne.NewPos(x-handleSizePx/2, y-handleSizePx/2))
	}
	s.overlay.Refresh()
}

// syncHandleVisibility shows or hides the handle overlay in lockstep with
// the selected shape's attach state, so culling a shape away takes its
// grips with it.
func (s *Selection) syncHandleVisibility() {
	id, ok := s.activeID()
	if !ok || len(s.handles) == 0 {
		s.overlay.Hide()
		return
	}
	if s.store.InScene(id) {
		s.overlay.Show()
	} else {
		s.overlay.Hide()
	}
}

// computeHandles derives the handle set for a shape: one per polygon
// vertex, four diagonal grips around a marker, none for lines.
func computeHandles(shape *field.Shape) []Handle {
	switch g := shape.Geometry.(type) {
	case *field.Polygon:
		handles := make([]Handle, 0, len(g.Vertices))
		for i, v := range g.Vertices {
			handles = append(handles, Handle{ShapeID: shape.ID, Index: i, Pos: v})
		}
		return handles
	case *field.Marker:
		handles := make([]Handle, 0, 4)
		d := g.Radius * math.Sqrt2 / 2
		offsets := [4]geometry.Vector2{
			{X: d, Y: -d},
			{X: d, Y: d},
			{X: -d, Y: d},
			{X: -d, Y: -d},
		}
		for i, off := range offsets {
			handles = append(handles, Handle{ShapeID: shape.ID, Index: i, Pos: g.Center.Add(off)})
		}
		return handles
	case *field.Line:
		return nil
	}
	return nil
}
