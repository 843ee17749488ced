package geometry

import "math"

// Rect represents an axis-aligned bounding rectangle
type Rect struct {
	Min Vector2
	Max Vector2
}

// NewRect creates an empty rectangle ready to be extended
func NewRect() Rect {
	return Rect{
		Min: Vector2{X: math.MaxFloat64, Y: math.MaxFloat64},
		Max: Vector2{X: -math.MaxFloat64, Y: -math.MaxFloat64},
	}
}

// RectAround creates a rectangle centered on a point with the given half extents.
func RectAround(center Vector2, rx, ry float64) Rect {
	return Rect{
		Min: Vector2{X: center.X - rx, Y: center.Y - ry},
		Max: Vector2{X: center.X + rx, Y: center.Y + ry},
	}
}

// Extend expands the rectangle to include a point
func (r *Rect) Extend(point Vector2) {
	r.Min = r.Min.Min(point)
	r.Max = r.Max.Max(point)
}

// IsEmpty reports whether the rectangle has never been extended.
func (r Rect) IsEmpty() bool {
	return r.Min.X > r.Max.X || r.Min.Y > r.Max.Y
}

// Size returns the dimensions of the rectangle
func (r Rect) Size() Vector2 {
	return r.Max.Sub(r.Min)
}

// Center returns the center point of the rectangle
func (r Rect) Center() Vector2 {
	return Vector2{
		X: (r.Min.X + r.Max.X) / 2.0,
		Y: (r.Min.Y + r.Max.Y) / 2.0,
	}
}

// Area returns the area of the rectangle. Degenerate rectangles have area 0.
func (r Rect) Area() float64 {
	if r.IsEmpty() {
		return 0
	}
	size := r.Size()
	return size.X * size.Y
}

// Expand grows the rectangle by a fraction of its width and height on each
// side. Expand(0.4) on a 100x50 rect yields a 180x90 rect with the same center.
func (r Rect) Expand(fraction float64) Rect {
	size := r.Size()
	dx := size.X * fraction
	dy := size.Y * fraction
	return Rect{
		Min: Vector2{X: r.Min.X - dx, Y: r.Min.Y - dy},
		Max: Vector2{X: r.Max.X + dx, Y: r.Max.Y + dy},
	}
}

// Intersects reports whether two rectangles overlap. Touching edges count
// as an intersection.
func (r Rect) Intersects(other Rect) bool {
	return r.Min.X <= other.Max.X && r.Max.X >= other.Min.X &&
		r.Min.Y <= other.Max.Y && r.Max.Y >= other.Min.Y
}

// Contains reports whether a point lies inside the rectangle (inclusive).
func (r Rect) Contains(point Vector2) bool {
	return point.X >= r.Min.X && point.X <= r.Max.X &&
		point.Y >= r.Min.Y && point.Y <= r.Max.Y
}

// Translate returns the rectangle shifted by a delta.
func (r Rect) Translate(delta Vector2) Rect {
	return Rect{Min: r.Min.Add(delta), Max: r.Max.Add(delta)}
}
