package viewer

import (
	"fmt"
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"github.com/philipparndt/fieldmap/internal/logging"
	"github.com/philipparndt/fieldmap/pkg/field"
	"github.com/philipparndt/fieldmap/pkg/geometry"
)

// hit tolerance around lines, markers and handles, in screen pixels.
const hitTolerancePx = 6.0

var backgroundColor = color.NRGBA{R: 0x12, G: 0x16, B: 0x1c, A: 0xff}

var (
	_ fyne.Widget       = (*Canvas)(nil)
	_ fyne.Draggable    = (*Canvas)(nil)
	_ fyne.Scrollable   = (*Canvas)(nil)
	_ desktop.Mouseable = (*Canvas)(nil)
)

// Canvas is the interactive field-layout widget. It owns the camera, shape
// store, spatial index, culler, selection and gesture machine, and routes
// pointer events between them.
//
// Pointer-down priority: resize handle, then selected shape body (drag),
// then shape selection, then background (clear selection and pan). Culling
// runs at most once per refresh: viewport movement only requests a pass,
// and the request is served when the frame is drawn, with the viewport read
// at execution time.
type Canvas struct {
	widget.BaseWidget

	camera      *Camera
	store       *ShapeStore
	index       *SpatialIndex
	culler      *Culler
	selection   *Selection
	interaction *Interaction

	background *canvas.Rectangle
	panning    bool
	shapeSeq   int
}

// NewCanvas creates an empty canvas with the given culling configuration.
func NewCanvas(cfg CullConfig) *Canvas {
	camera := NewCamera(geometry.NewRect())
	store := NewShapeStore(camera)
	index := NewSpatialIndex()
	selection := NewSelection(store)

	c := &Canvas{
		camera:      camera,
		store:       store,
		index:       index,
		selection:   selection,
		interaction: NewInteraction(store, selection),
		culler:      NewCuller(store, index, cfg, selection),
		background:  canvas.NewRectangle(backgroundColor),
	}
	c.ExtendBaseWidget(c)
	return c
}

// Load replaces the canvas content with a new shape list: clears store and
// selection, ingests the records, bulk-builds the index, fits the camera
// and schedules a cull.
func (c *Canvas) Load(shapes []*field.Shape) {
	c.selection.Clear()
	c.store.Clear()
	for _, shape := range shapes {
		if _, err := c.store.Add(shape); err != nil {
			logging.Logger().Warn("dropping shape", "id", shape.ID, "err", err)
		}
	}
	c.index.Build(c.store.All())
	c.camera.Fit(c.store.Bounds())
	c.culler.Request()
	c.Refresh()
}

// Store exposes the shape store.
func (c *Canvas) Store() *ShapeStore { return c.store }

// SelectionManager exposes the selection state.
func (c *Canvas) SelectionManager() *Selection { return c.selection }

// CullEngine exposes the culler.
func (c *Canvas) CullEngine() *Culler { return c.culler }

// Camera exposes the viewport camera.
func (c *Canvas) Camera() *Camera { return c.camera }

// Gestures exposes the pointer gesture machine for hosts that feed raw
// pointer events programmatically.
func (c *Canvas) Gestures() *Interaction { return c.interaction }

// SetOnCullStats registers the metrics callback.
func (c *Canvas) SetOnCullStats(fn func(CullStats)) {
	c.culler.SetOnStats(fn)
}

// SetOnSelectionChanged registers the selection-changed callback.
func (c *Canvas) SetOnSelectionChanged(fn func(ids []string)) {
	c.selection.SetOnChanged(fn)
}

// RebuildIndex re-baselines the spatial index on current geometry.
func (c *Canvas) RebuildIndex() {
	c.index.Build(c.store.All())
	c.culler.Request()
}

// RemoveShape deletes a shape, dropping it from the selection first.
func (c *Canvas) RemoveShape(id string) {
	c.selection.Drop(id)
	c.store.Remove(id)
	c.culler.Request()
}

// NewPolygonAt creates a default-styled square polygon centered on a world
// position and schedules a cull so it can attach.
func (c *Canvas) NewPolygonAt(pos geometry.Vector2) *field.Shape {
	half := 40.0 / c.camera.Scale
	shape := &field.Shape{
		ID: c.nextID("polygon"),
		Geometry: &field.Polygon{Vertices: []geometry.Vector2{
			{X: pos.X - half, Y: pos.Y - half},
			{X: pos.X + half, Y: pos.Y - half},
			{X: pos.X + half, Y: pos.Y + half},
			{X: pos.X - half, Y: pos.Y + half},
			{X: pos.X - half, Y: pos.Y - half},
		}},
	}
	c.addCreated(shape)
	return shape
}

// NewLineAt creates a default-styled horizontal line centered on a world
// position.
func (c *Canvas) NewLineAt(pos geometry.Vector2) *field.Shape {
	half := 50.0 / c.camera.Scale
	shape := &field.Shape{
		ID: c.nextID("line"),
		Geometry: &field.Line{Points: []geometry.Vector2{
			{X: pos.X - half, Y: pos.Y},
			{X: pos.X + half, Y: pos.Y},
		}},
	}
	c.addCreated(shape)
	return shape
}

// NewMarkerAt creates a default-styled marker at a world position.
func (c *Canvas) NewMarkerAt(pos geometry.Vector2) *field.Shape {
	shape := &field.Shape{
		ID:       c.nextID("marker"),
		Geometry: &field.Marker{Center: pos, Radius: 10.0 / c.camera.Scale},
	}
	c.addCreated(shape)
	return shape
}

func (c *Canvas) addCreated(shape *field.Shape) {
	if _, err := c.store.Add(shape); err != nil {
		logging.Logger().Warn("dropping created shape", "id", shape.ID, "err", err)
		return
	}
	// Re-baseline the index so the culler, the only attach path, sees the
	// new shape on the pass scheduled below. Creation is rare enough that
	// the bulk rebuild does not matter.
	c.index.Build(c.store.All())
	c.culler.Request()
	c.Refresh()
}

func (c *Canvas) nextID(kind string) string {
	for {
		c.shapeSeq++
		id := fmt.Sprintf("%s-%d", kind, c.shapeSeq)
		if _, exists := c.store.Get(id); !exists {
			return id
		}
	}
}

func (c *Canvas) worldTolerance() float64 {
	return hitTolerancePx / c.camera.Scale
}

func (c *Canvas) unproject(pos fyne.Position) geometry.Vector2 {
	return c.camera.Unproject(float64(pos.X), float64(pos.Y))
}

// MouseDown routes a press: gesture start, selection change, or pan start.
func (c *Canvas) MouseDown(ev *desktop.MouseEvent) {
	if ev.Button != desktop.MouseButtonPrimary {
		return
	}
	pos := c.unproject(ev.Position)
	if c.interaction.PointerDown(pos, c.worldTolerance()) {
		return
	}
	if id, ok := c.store.ShapeAt(pos, c.worldTolerance()); ok {
		multi := ev.Modifier&fyne.KeyModifierControl != 0
		c.selection.Select(id, multi)
		c.Refresh()
		return
	}
	c.selection.Clear()
	c.panning = true
	c.Refresh()
}

// MouseUp ends any gesture or pan, inside or outside the widget.
func (c *Canvas) MouseUp(ev *desktop.MouseEvent) {
	c.interaction.PointerUp()
	c.panning = false
}

// Dragged feeds pointer moves to the active gesture, or pans the camera.
func (c *Canvas) Dragged(ev *fyne.DragEvent) {
	if c.interaction.Active() {
		c.interaction.PointerMove(c.unproject(ev.Position))
		c.Refresh()
		return
	}
	c.panning = true
	c.camera.Pan(float64(-ev.Dragged.DX), float64(-ev.Dragged.DY))
	c.culler.Request()
	c.Refresh()
}

// DragEnd finishes a drag gesture or pan.
func (c *Canvas) DragEnd() {
	c.interaction.PointerUp()
	c.panning = false
}

// Scrolled zooms around the cursor.
func (c *Canvas) Scrolled(ev *fyne.ScrollEvent) {
	factor := 1.0 + float64(ev.Scrolled.DY)*0.002
	if factor <= 0 {
		return
	}
	c.camera.ZoomAt(factor, float64(ev.Position.X), float64(ev.Position.Y))
	c.culler.Request()
	c.Refresh()
}

// CreateRenderer implements fyne.Widget.
func (c *Canvas) CreateRenderer() fyne.WidgetRenderer {
	return &canvasRenderer{canvas: c}
}

// canvasRenderer draws the background, the attached shape scene and the
// handle overlay. Refresh is the frame boundary: a pending cull runs here,
// reading the viewport fresh.
type canvasRenderer struct {
	canvas *Canvas
}

func (r *canvasRenderer) Layout(size fyne.Size) {
	r.canvas.background.Resize(size)
	r.canvas.camera.SetViewportSize(float64(size.Width), float64(size.Height))
	r.canvas.culler.Request()
	r.canvas.redraw()
}

func (r *canvasRenderer) MinSize() fyne.Size {
	return fyne.NewSize(400, 400)
}

func (r *canvasRenderer) Refresh() {
	r.canvas.redraw()
	canvas.Refresh(r.canvas)
}

func (r *canvasRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{
		r.canvas.background,
		r.canvas.store.Scene(),
		r.canvas.selection.Overlay(),
	}
}

func (r *canvasRenderer) Destroy() {}

// redraw serves a pending cull and reprojects what is attached.
func (c *Canvas) redraw() {
	c.culler.RunPending(c.camera.ViewportBounds())
	c.store.ReprojectAttached(c.selection.IsSelected)
	c.selection.RefreshHandlePositions()
}
