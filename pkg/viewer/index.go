package viewer

import (
	"github.com/tidwall/rtree"

	"github.com/philipparndt/fieldmap/internal/logging"
	"github.com/philipparndt/fieldmap/pkg/field"
	"github.com/philipparndt/fieldmap/pkg/geometry"
)

// SpatialIndex is a bounding-box index over shape ids. It is immutable
// between builds: Build replaces the whole structure in one bulk operation,
// and geometry edits are NOT reflected until the next explicit build. A
// shape's true bounds may therefore diverge from its indexed bounds after a
// drag or resize; callers re-baseline with Build when that matters.
type SpatialIndex struct {
	tree  rtree.RTreeG[string]
	built bool
}

// NewSpatialIndex returns an empty, unbuilt index.
func NewSpatialIndex() *SpatialIndex {
	return &SpatialIndex{}
}

// Build replaces the index with a fresh one over the given shapes' current
// bounding boxes. Shapes with no indexable geometry are omitted. Degenerate
// zero-area boxes are fine.
func (ix *SpatialIndex) Build(shapes []*field.Shape) {
	ix.tree = rtree.RTreeG[string]{}
	skipped := 0
	for _, shape := range shapes {
		b := shape.Bounds()
		if b.IsEmpty() {
			skipped++
			continue
		}
		ix.tree.Insert(
			[2]float64{b.Min.X, b.Min.Y},
			[2]float64{b.Max.X, b.Max.Y},
			shape.ID,
		)
	}
	ix.built = true
	if skipped > 0 {
		logging.Logger().Warn("omitted shapes without indexable geometry", "count", skipped)
	}
	logging.Logger().Debug("spatial index built", "entries", ix.tree.Len())
}

// Built reports whether Build has been called at least once.
func (ix *SpatialIndex) Built() bool {
	return ix.built
}

// Len returns the number of indexed entries.
func (ix *SpatialIndex) Len() int {
	return ix.tree.Len()
}

// Search calls fn for every indexed entry whose box intersects r
// (inclusive of touching edges). Return false from fn to stop early.
func (ix *SpatialIndex) Search(r geometry.Rect, fn func(id string) bool) {
	ix.tree.Search(
		[2]float64{r.Min.X, r.Min.Y},
		[2]float64{r.Max.X, r.Max.Y},
		func(_, _ [2]float64, id string) bool {
			return fn(id)
		},
	)
}
