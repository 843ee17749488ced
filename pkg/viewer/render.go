package viewer

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"

	"github.com/philipparndt/fieldmap/pkg/field"
	"github.com/philipparndt/fieldmap/pkg/geometry"
)

var highlightColor = color.NRGBA{R: 0x3a, G: 0x9b, B: 0xdc, A: 0xff}

// shapeObject is the render object bound to one shape record: a container of
// canvas primitives rebuilt from the shape's current geometry and style.
// The store owns it exclusively; the scene graph only borrows it while the
// shape is attached.
type shapeObject struct {
	root *fyne.Container
}

func newShapeObject() *shapeObject {
	return &shapeObject{root: container.NewWithoutLayout()}
}

// rebuild redraws the object from current geometry and style, projected
// through the camera. A highlighted shape gets an accented, thicker stroke.
func (o *shapeObject) rebuild(shape *field.Shape, cam *Camera, highlighted bool) {
	style := shape.Style.Resolve(shape.Geometry.Kind())
	stroke := applyOpacity(style.Stroke, style.Opacity)
	strokeWidth := style.StrokeWidth
	if highlighted {
		stroke = highlightColor
		strokeWidth += 1.5
	}

	o.root.RemoveAll()

	switch g := shape.Geometry.(type) {
	case *field.Polygon:
		o.addPolyline(g.Vertices, true, stroke, strokeWidth, cam)
	case *field.Line:
		o.addPolyline(g.Points, false, stroke, strokeWidth, cam)
	case *field.Marker:
		fill := applyOpacity(style.Fill, style.Opacity)
		if highlighted {
			fill = applyOpacity(highlightColor, 0.6)
		}
		dot := canvas.NewCircle(fill)
		dot.StrokeColor = stroke
		dot.StrokeWidth = strokeWidth
		r := float32(g.Radius * cam.Scale)
		x, y := cam.Project(g.Center)
		dot.Resize(fyne.NewSize(2*r, 2*r))
		dot.Move(fyne.NewPos(x-r, y-r))
		o.root.Add(dot)
	}

	o.root.Refresh()
}

// addPolyline draws the vertex sequence as line segments, optionally closing
// the loop. A lone vertex is drawn as a small dot so the shape stays visible.
func (o *shapeObject) addPolyline(pts []geometry.Vector2, closed bool, stroke color.Color, width float32, cam *Camera) {
	if len(pts) == 0 {
		return
	}
	if len(pts) == 1 {
		dot := canvas.NewCircle(stroke)
		x, y := cam.Project(pts[0])
		dot.Resize(fyne.NewSize(4, 4))
		dot.Move(fyne.NewPos(x-2, y-2))
		o.root.Add(dot)
		return
	}

	segments := len(pts) - 1
	if closed && pts[0] != pts[len(pts)-1] {
		segments++
	}
	for i := 0; i < segments; i++ {
		a := pts[i]
		b := pts[(i+1)%len(pts)]
		line := canvas.NewLine(stroke)
		line.StrokeWidth = width
		x1, y1 := cam.Project(a)
		x2, y2 := cam.Project(b)
		line.Position1 = fyne.NewPos(x1, y1)
		line.Position2 = fyne.NewPos(x2, y2)
		o.root.Add(line)
	}
}

// applyOpacity scales a color's alpha. RGBA() channels are premultiplied, so
// the color goes through the non-premultiplied model first; scaling the
// premultiplied alpha alone would darken the color twice.
func applyOpacity(c color.Color, opacity float64) color.Color {
	if c == nil {
		return color.Transparent
	}
	if opacity >= 1 {
		return c
	}
	n := color.NRGBA64Model.Convert(c).(color.NRGBA64)
	n.A = uint16(float64(n.A) * opacity)
	return n
}
