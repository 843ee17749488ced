package viewer

import (
	"github.com/philipparndt/fieldmap/pkg/field"
	"github.com/philipparndt/fieldmap/pkg/geometry"
)

// gestureMode is the state of the pointer gesture machine. The modes are
// mutually exclusive.
type gestureMode int

const (
	modeIdle gestureMode = iota
	modeDragging
	modeResizing
)

// Interaction converts pointer gestures into in-place geometry mutations:
// dragging translates a whole shape rigidly, resizing moves one polygon
// vertex or recomputes a marker radius. The spatial index is NOT updated by
// these edits; it stays as of the last build.
type Interaction struct {
	store     *ShapeStore
	selection *Selection

	mode        gestureMode
	shapeID     string
	handleIndex int
	offset      geometry.Vector2 // pointer minus shape reference at press
}

// NewInteraction creates an idle gesture machine.
func NewInteraction(store *ShapeStore, selection *Selection) *Interaction {
	return &Interaction{store: store, selection: selection}
}

// Active reports whether a gesture is in progress.
func (in *Interaction) Active() bool {
	return in.mode != modeIdle
}

// PointerDown starts a gesture at a world position and reports whether the
// event was consumed. Handle hits take priority over body hits, so grabbing
// a grip never starts a drag. Only an already selected shape's body starts
// a drag; unselected shapes are left for the caller's selection handling.
func (in *Interaction) PointerDown(pos geometry.Vector2, tolerance float64) bool {
	if h, ok := in.selection.HandleAt(pos, tolerance); ok {
		in.mode = modeResizing
		in.shapeID = h.ShapeID
		in.handleIndex = h.Index
		return true
	}

	if id, ok := in.store.ShapeAt(pos, tolerance); ok && in.selection.IsSelected(id) {
		shape, ok := in.store.Get(id)
		if !ok {
			return false
		}
		in.mode = modeDragging
		in.shapeID = id
		in.offset = pos.Sub(shape.Geometry.Reference())
		return true
	}

	return false
}

// PointerMove advances the active gesture. If the referenced shape was
// removed mid-gesture the move is a safe no-op.
func (in *Interaction) PointerMove(pos geometry.Vector2) {
	switch in.mode {
	case modeDragging:
		in.drag(pos)
	case modeResizing:
		in.resize(pos)
	}
}

// PointerUp ends any active gesture and returns to idle.
func (in *Interaction) PointerUp() {
	if in.mode == modeIdle {
		return
	}
	id := in.shapeID
	in.mode = modeIdle
	in.shapeID = ""
	in.handleIndex = 0

	if _, ok := in.store.Get(id); ok {
		in.store.RefreshVisual(id, in.selection.IsSelected(id))
	}
}

func (in *Interaction) drag(pos geometry.Vector2) {
	shape, ok := in.store.Get(in.shapeID)
	if !ok {
		return
	}
	delta := pos.Sub(in.offset).Sub(shape.Geometry.Reference())
	if delta.X == 0 && delta.Y == 0 {
		return
	}
	shape.Geometry.Translate(delta)
	in.store.RefreshVisual(in.shapeID, true)
	in.selection.RefreshHandlePositions()
}

func (in *Interaction) resize(pos geometry.Vector2) {
	shape, ok := in.store.Get(in.shapeID)
	if !ok {
		return
	}
	switch g := shape.Geometry.(type) {
	case *field.Polygon:
		if in.handleIndex < 0 || in.handleIndex >= len(g.Vertices) {
			return
		}
		g.Vertices[in.handleIndex] = pos
	case *field.Marker:
		radius := g.Center.Distance(pos)
		if radius < field.MinMarkerRadius {
			radius = field.MinMarkerRadius
		}
		g.Radius = radius
	case *field.Line:
		// Lines have no resize handles.
		return
	}
	in.store.RefreshVisual(in.shapeID, true)
	in.selection.RefreshHandlePositions()
}
