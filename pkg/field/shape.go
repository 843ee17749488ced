// Package field holds the domain model for a field layout: flat shape
// records with a tagged geometry union, plus the producers that create
// them (synthetic generator and layout-document importer).
package field

import (
	"image/color"
	"math"

	"github.com/philipparndt/fieldmap/pkg/geometry"
)

// Kind identifies the geometry variant of a shape.
type Kind int

const (
	KindPolygon Kind = iota
	KindLine
	KindMarker
)

func (k Kind) String() string {
	switch k {
	case KindPolygon:
		return "polygon"
	case KindLine:
		return "line"
	case KindMarker:
		return "marker"
	}
	return "unknown"
}

// MinMarkerRadius is the smallest radius a marker can be resized to.
const MinMarkerRadius = 3.0

// Geometry is the closed union of shape geometries. Every operation site
// (bounds, draw, drag, resize, hit test) switches exhaustively over the
// three variants.
type Geometry interface {
	Kind() Kind
	// Bounds returns the axis-aligned bounding rectangle of the geometry.
	Bounds() geometry.Rect
	// Reference returns the anchor used to compute drag offsets: the first
	// vertex for polygons and lines, the center for markers.
	Reference() geometry.Vector2
	// Translate shifts the geometry rigidly by delta, in place.
	Translate(delta geometry.Vector2)

	sealedGeometry()
}

// Polygon is a closed area. Producers are expected to supply at least three
// vertices plus a closing duplicate, but the model does not reject fewer.
type Polygon struct {
	Vertices []geometry.Vector2
}

func (p *Polygon) Kind() Kind      { return KindPolygon }
func (p *Polygon) sealedGeometry() {}

func (p *Polygon) Bounds() geometry.Rect {
	r := geometry.NewRect()
	for _, v := range p.Vertices {
		r.Extend(v)
	}
	return r
}

func (p *Polygon) Reference() geometry.Vector2 {
	if len(p.Vertices) == 0 {
		return geometry.Vector2{}
	}
	return p.Vertices[0]
}

func (p *Polygon) Translate(delta geometry.Vector2) {
	for i := range p.Vertices {
		p.Vertices[i] = p.Vertices[i].Add(delta)
	}
}

// ContainsPoint tests point membership with the even-odd rule.
func (p *Polygon) ContainsPoint(pt geometry.Vector2) bool {
	inside := false
	n := len(p.Vertices)
	for i := 0; i < n; i++ {
		a := p.Vertices[i]
		b := p.Vertices[(i+1)%n]
		if (a.Y > pt.Y) != (b.Y > pt.Y) {
			x := a.X + (pt.Y-a.Y)/(b.Y-a.Y)*(b.X-a.X)
			if pt.X < x {
				inside = !inside
			}
		}
	}
	return inside
}

// Line is an open polyline, meaningful with two or more points.
type Line struct {
	Points []geometry.Vector2
}

func (l *Line) Kind() Kind      { return KindLine }
func (l *Line) sealedGeometry() {}

func (l *Line) Bounds() geometry.Rect {
	r := geometry.NewRect()
	for _, p := range l.Points {
		r.Extend(p)
	}
	return r
}

func (l *Line) Reference() geometry.Vector2 {
	if len(l.Points) == 0 {
		return geometry.Vector2{}
	}
	return l.Points[0]
}

func (l *Line) Translate(delta geometry.Vector2) {
	for i := range l.Points {
		l.Points[i] = l.Points[i].Add(delta)
	}
}

// DistanceTo returns the minimum distance from a point to the polyline.
func (l *Line) DistanceTo(pt geometry.Vector2) float64 {
	best := math.MaxFloat64
	for i := 0; i+1 < len(l.Points); i++ {
		d := segmentDistance(l.Points[i], l.Points[i+1], pt)
		if d < best {
			best = d
		}
	}
	return best
}

func segmentDistance(a, b, pt geometry.Vector2) float64 {
	ab := b.Sub(a)
	lenSq := ab.X*ab.X + ab.Y*ab.Y
	if lenSq == 0 {
		return a.Distance(pt)
	}
	t := ((pt.X-a.X)*ab.X + (pt.Y-a.Y)*ab.Y) / lenSq
	t = math.Max(0, math.Min(1, t))
	return a.Add(ab.Mul(t)).Distance(pt)
}

// Marker is a point shape with a display radius in world units.
type Marker struct {
	Center geometry.Vector2
	Radius float64
}

func (m *Marker) Kind() Kind      { return KindMarker }
func (m *Marker) sealedGeometry() {}

func (m *Marker) Bounds() geometry.Rect {
	return geometry.RectAround(m.Center, m.Radius, m.Radius)
}

func (m *Marker) Reference() geometry.Vector2 { return m.Center }

func (m *Marker) Translate(delta geometry.Vector2) {
	m.Center = m.Center.Add(delta)
}

// Style describes how a shape is drawn. Zero-valued fields fall back to the
// per-kind defaults, see Resolve.
type Style struct {
	Fill        color.Color
	Stroke      color.Color
	StrokeWidth float32
	Opacity     float64
}

var (
	defaultPolygonFill   = color.NRGBA{R: 0x4c, G: 0x8c, B: 0x3f, A: 0x50}
	defaultPolygonStroke = color.NRGBA{R: 0x2e, G: 0x59, B: 0x24, A: 0xff}
	defaultLineStroke    = color.NRGBA{R: 0x8a, G: 0x6d, B: 0x3b, A: 0xff}
	defaultMarkerFill    = color.NRGBA{R: 0xe0, G: 0x8e, B: 0x2e, A: 0xff}
	defaultMarkerStroke  = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
)

// Resolve fills unset style fields with the defaults for the given kind.
func (s Style) Resolve(kind Kind) Style {
	out := s
	if out.Opacity <= 0 || out.Opacity > 1 {
		out.Opacity = 1
	}
	if out.StrokeWidth <= 0 {
		out.StrokeWidth = 1
	}
	switch kind {
	case KindPolygon:
		if out.Fill == nil {
			out.Fill = defaultPolygonFill
		}
		if out.Stroke == nil {
			out.Stroke = defaultPolygonStroke
		}
	case KindLine:
		if out.Fill == nil {
			out.Fill = color.Transparent
		}
		if out.Stroke == nil {
			out.Stroke = defaultLineStroke
		}
		if s.StrokeWidth <= 0 {
			out.StrokeWidth = 1.5
		}
	case KindMarker:
		if out.Fill == nil {
			out.Fill = defaultMarkerFill
		}
		if out.Stroke == nil {
			out.Stroke = defaultMarkerStroke
		}
	}
	return out
}

// Shape is a single record in the layout: a unique id, its geometry, an
// optional style override and an optional display label. Callers guarantee
// id uniqueness within one store; the model never regenerates ids.
type Shape struct {
	ID       string
	Geometry Geometry
	Style    Style
	Label    string
}

// Bounds returns the current bounding rectangle of the shape's geometry.
func (s *Shape) Bounds() geometry.Rect {
	return s.Geometry.Bounds()
}
