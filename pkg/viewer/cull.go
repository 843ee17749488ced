package viewer

import (
	"math"
	"time"

	"github.com/philipparndt/fieldmap/internal/logging"
	"github.com/philipparndt/fieldmap/pkg/field"
	"github.com/philipparndt/fieldmap/pkg/geometry"
)

// CullConfig holds the tunables of the culling engine. Thresholds compare
// against the zoom-out factor sqrt(viewportArea / ReferenceArea).
type CullConfig struct {
	// ReferenceArea is the world-area footprint considered "zoom factor 1".
	ReferenceArea float64
	// MediumZoom is the zoom-out factor above which LOD level 1 applies
	// (line shapes suppressed).
	MediumZoom float64
	// LowZoom is the zoom-out factor above which LOD level 2 applies
	// (line shapes and markers suppressed).
	LowZoom float64
	// BufferFraction expands the viewport query region by this fraction of
	// its width and height on each side, hiding pop-in during pans.
	BufferFraction float64
}

// DefaultCullConfig returns the tuning used by the fieldmap app.
func DefaultCullConfig() CullConfig {
	return CullConfig{
		ReferenceArea:  1000 * 1000,
		MediumZoom:     4,
		LowZoom:        12,
		BufferFraction: 0.4,
	}
}

// CullStats is the metrics notification emitted once per cull pass.
type CullStats struct {
	Visible    int // candidates returned by the index query
	Total      int // shapes held by the store
	Attached   int // render objects attached this pass
	Detached   int // render objects detached this pass
	LODSkipped int // candidates suppressed by the LOD level
	LODLevel   int // 0 full, 1 medium, 2 low
	InScene    int // attached count after the pass
	Elapsed    time.Duration
}

// Culler reconciles the store's attach state against the spatial index for
// a given viewport. It is the only code path that attaches or detaches
// render objects.
type Culler struct {
	store     *ShapeStore
	index     *SpatialIndex
	cfg       CullConfig
	selection *Selection
	onStats   func(CullStats)
	pending   bool
}

// NewCuller creates a culling engine over a store and index. selection may
// be nil; when set, the resize-handle overlay follows the selected shape's
// visibility.
func NewCuller(store *ShapeStore, index *SpatialIndex, cfg CullConfig, selection *Selection) *Culler {
	return &Culler{
		store:     store,
		index:     index,
		cfg:       cfg,
		selection: selection,
	}
}

// SetOnStats registers the single metrics callback, invoked once per pass.
func (c *Culler) SetOnStats(fn func(CullStats)) {
	c.onStats = fn
}

// Request marks a cull as pending. Repeated requests before the next
// RunPending coalesce into a single pass; the viewport is read at execution
// time, so the most recent position wins.
func (c *Culler) Request() {
	c.pending = true
}

// Pending reports whether a cull is waiting to run.
func (c *Culler) Pending() bool {
	return c.pending
}

// RunPending executes a cull if one was requested.
func (c *Culler) RunPending(viewport geometry.Rect) (CullStats, bool) {
	if !c.pending {
		return CullStats{}, false
	}
	c.pending = false
	return c.Cull(viewport), true
}

// Cull reconciles attach/detach state for the given viewport bounds.
//
// The reconcile pass deliberately visits every shape in the store, not just
// the candidates: shapes that left the buffered viewport must be found and
// detached. The index query is the only sub-linear step.
func (c *Culler) Cull(viewport geometry.Rect) CullStats {
	start := time.Now()

	// Build-on-demand keeps a cull before the first explicit build from
	// failing; it indexes whatever the store holds right now.
	if !c.index.Built() {
		c.index.Build(c.store.All())
	}

	zoomOut := math.Sqrt(viewport.Area() / c.cfg.ReferenceArea)
	lod := 0
	switch {
	case zoomOut > c.cfg.LowZoom:
		lod = 2
	case zoomOut > c.cfg.MediumZoom:
		lod = 1
	}

	buffered := viewport.Expand(c.cfg.BufferFraction)
	candidates := make(map[string]struct{})
	c.index.Search(buffered, func(id string) bool {
		candidates[id] = struct{}{}
		return true
	})

	stats := CullStats{
		Visible:  len(candidates),
		Total:    c.store.Count(),
		LODLevel: lod,
	}

	for _, shape := range c.store.All() {
		_, candidate := candidates[shape.ID]
		switch {
		case !candidate:
			if c.store.InScene(shape.ID) {
				c.store.detach(shape.ID)
				stats.Detached++
			}
		case lodSuppressed(lod, shape.Geometry.Kind()):
			if c.store.InScene(shape.ID) {
				c.store.detach(shape.ID)
				stats.Detached++
			}
			stats.LODSkipped++
		default:
			if !c.store.InScene(shape.ID) {
				c.store.attach(shape.ID)
				stats.Attached++
			}
		}
	}

	if c.selection != nil {
		c.selection.syncHandleVisibility()
	}

	stats.InScene = c.store.AttachedCount()
	stats.Elapsed = time.Since(start)

	logging.Logger().Debug("cull pass",
		"visible", stats.Visible, "total", stats.Total,
		"attached", stats.Attached, "detached", stats.Detached,
		"lod", stats.LODLevel, "elapsed", stats.Elapsed)

	if c.onStats != nil {
		c.onStats(stats)
	}
	return stats
}

// lodSuppressed reports whether a shape kind is hidden at the given LOD
// level: lines disappear at medium zoom-out, markers additionally at low.
func lodSuppressed(lod int, kind field.Kind) bool {
	switch kind {
	case field.KindLine:
		return lod >= 1
	case field.KindMarker:
		return lod >= 2
	}
	return false
}
