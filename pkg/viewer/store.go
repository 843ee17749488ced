// Package viewer implements the interactive core of the field-layout
// canvas: a shape store with one render binding per shape, a bulk-built
// spatial index, viewport culling with level-of-detail suppression, a
// selection manager with resize handles, and the pointer gesture state
// machine that mutates geometry in place.
//
// Everything here runs on the single UI event thread; no locking is needed
// and none is used.
package viewer

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"

	"github.com/philipparndt/fieldmap/pkg/field"
	"github.com/philipparndt/fieldmap/pkg/geometry"
)

// renderBinding ties a shape record to its render object. inScene is the
// single source of truth for whether the object is attached to the scene
// graph; only the culler flips it.
type renderBinding struct {
	obj     *shapeObject
	inScene bool
}

// ShapeStore owns the canonical shape records and their render bindings.
// Adding a shape creates its render object but does not attach it; the
// culler decides attachment, which avoids add-then-cull-away churn on bulk
// loads.
type ShapeStore struct {
	camera   *Camera
	scene    *fyne.Container
	shapes   map[string]*field.Shape
	bindings map[string]*renderBinding
	order    []string
	attached int
}

// NewShapeStore creates an empty store rendering through the given camera.
func NewShapeStore(camera *Camera) *ShapeStore {
	return &ShapeStore{
		camera:   camera,
		scene:    container.NewWithoutLayout(),
		shapes:   make(map[string]*field.Shape),
		bindings: make(map[string]*renderBinding),
	}
}

// Scene returns the container holding the attached render objects. The host
// places it in the widget tree; it must not add or remove children itself.
func (s *ShapeStore) Scene() fyne.CanvasObject {
	return s.scene
}

// Add registers a shape, creates its render object and returns it detached.
func (s *ShapeStore) Add(shape *field.Shape) (fyne.CanvasObject, error) {
	if shape.ID == "" {
		return nil, fmt.Errorf("shape id must not be empty")
	}
	if _, exists := s.shapes[shape.ID]; exists {
		return nil, fmt.Errorf("duplicate shape id %q", shape.ID)
	}

	binding := &renderBinding{obj: newShapeObject()}
	binding.obj.rebuild(shape, s.camera, false)

	s.shapes[shape.ID] = shape
	s.bindings[shape.ID] = binding
	s.order = append(s.order, shape.ID)
	return binding.obj.root, nil
}

// Remove detaches (if attached) and destroys a shape and its render object.
// Removing an unknown id is a no-op.
func (s *ShapeStore) Remove(id string) {
	binding, ok := s.bindings[id]
	if !ok {
		return
	}
	if binding.inScene {
		s.scene.Remove(binding.obj.root)
		binding.inScene = false
		s.attached--
	}
	delete(s.bindings, id)
	delete(s.shapes, id)
	for i, other := range s.order {
		if other == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

// Get returns the shape record for an id.
func (s *ShapeStore) Get(id string) (*field.Shape, bool) {
	shape, ok := s.shapes[id]
	return shape, ok
}

// All returns every shape in insertion order.
func (s *ShapeStore) All() []*field.Shape {
	out := make([]*field.Shape, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.shapes[id])
	}
	return out
}

// Count returns the number of shapes held by the store.
func (s *ShapeStore) Count() int {
	return len(s.shapes)
}

// AttachedCount returns the number of shapes currently in the scene.
func (s *ShapeStore) AttachedCount() int {
	return s.attached
}

// InScene reports whether a shape's render object is attached.
func (s *ShapeStore) InScene(id string) bool {
	binding, ok := s.bindings[id]
	return ok && binding.inScene
}

// Clear detaches and destroys everything.
func (s *ShapeStore) Clear() {
	s.scene.RemoveAll()
	s.shapes = make(map[string]*field.Shape)
	s.bindings = make(map[string]*renderBinding)
	s.order = s.order[:0]
	s.attached = 0
}

// Bounds returns the bounding rectangle over all current shape geometry.
func (s *ShapeStore) Bounds() geometry.Rect {
	r := geometry.NewRect()
	for _, shape := range s.shapes {
		b := shape.Bounds()
		if b.IsEmpty() {
			continue
		}
		r.Extend(b.Min)
		r.Extend(b.Max)
	}
	return r
}

// RefreshVisual fully redraws a shape's render object from its current
// geometry and style, with highlight emphasis when requested. This is how
// drag and resize feedback is produced on every pointer move.
func (s *ShapeStore) RefreshVisual(id string, highlighted bool) {
	shape, ok := s.shapes[id]
	if !ok {
		return
	}
	s.bindings[id].obj.rebuild(shape, s.camera, highlighted)
}

// ReprojectAttached redraws every attached shape, used after the camera
// moves. isHighlighted tells which shapes keep their selection emphasis.
func (s *ShapeStore) ReprojectAttached(isHighlighted func(id string) bool) {
	for _, id := range s.order {
		binding := s.bindings[id]
		if !binding.inScene {
			continue
		}
		binding.obj.rebuild(s.shapes[id], s.camera, isHighlighted(id))
	}
}

// ShapeAt returns the topmost shape under a world position, preferring the
// most recently added. Only attached shapes are hit-testable. The tolerance
// is in world units and applies to line and marker edges.
func (s *ShapeStore) ShapeAt(pos geometry.Vector2, tolerance float64) (string, bool) {
	for i := len(s.order) - 1; i >= 0; i-- {
		id := s.order[i]
		if !s.bindings[id].inScene {
			continue
		}
		if shapeHit(s.shapes[id], pos, tolerance) {
			return id, true
		}
	}
	return "", false
}

func shapeHit(shape *field.Shape, pos geometry.Vector2, tolerance float64) bool {
	switch g := shape.Geometry.(type) {
	case *field.Polygon:
		return g.ContainsPoint(pos)
	case *field.Line:
		return g.DistanceTo(pos) <= tolerance
	case *field.Marker:
		return g.Center.Distance(pos) <= g.Radius+tolerance
	}
	return false
}

// attach adds a shape's render object to the scene. Internal to the cull
// pass.
func (s *ShapeStore) attach(id string) {
	binding := s.bindings[id]
	if binding.inScene {
		return
	}
	s.scene.Add(binding.obj.root)
	binding.inScene = true
	s.attached++
}

// detach removes a shape's render object from the scene. Internal to the
// cull pass.
func (s *ShapeStore) detach(id string) {
	binding := s.bindings[id]
	if !binding.inScene {
		return
	}
	s.scene.Remove(binding.obj.root)
	binding.inScene = false
	s.attached--
}
