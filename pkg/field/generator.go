package field

import (
	"fmt"
	"math"

	"github.com/philipparndt/fieldmap/pkg/geometry"
)

// GenConfig parameterizes the synthetic layout generator.
type GenConfig struct {
	// TargetCount is the total number of shapes to emit.
	TargetCount int
	// Size is the side length of the square coverage area in world units.
	Size float64
	// Origin is the document-space offset of the coverage area corner.
	Origin geometry.Vector2
}

// DefaultGenConfig returns a configuration for a large but interactive load.
func DefaultGenConfig() GenConfig {
	return GenConfig{
		TargetCount: 10000,
		Size:        10000,
	}
}

// Fixed subdivision of the synthetic hierarchy: each area splits into a
// 2x2 grid of blocks, each block carries 8 evenly spaced rows and 2 markers
// on its diagonal.
const (
	genBlocksPerAxis   = 2
	genRowsPerBlock    = 8
	genMarkersPerBlock = 2
)

// palette applied cyclically to generated blocks.
var genPalette = []StyleSnapshot{
	{Fill: "#4c8c3f50", Stroke: "#2e5924"},
	{Fill: "#8c7a3f50", Stroke: "#594c24"},
	{Fill: "#3f6e8c50", Stroke: "#244559"},
	{Fill: "#8c3f6e50", Stroke: "#592445"},
}

// Generate produces a deterministic flat shape list of exactly
// cfg.TargetCount shapes (for any positive target and size).
func Generate(cfg GenConfig) []*Shape {
	return Import(GenerateDocument(cfg))
}

// GenerateDocument builds a synthetic layout document: a grid of large-area
// polygons, each subdivided into block polygons with a cyclic style palette,
// evenly spaced row segments and point markers, emitted until the target
// count is reached. Every generated node is well-formed, so importing the
// document yields one shape per node.
func GenerateDocument(cfg GenConfig) *Document {
	if cfg.TargetCount < 1 {
		cfg.TargetCount = 1
	}
	if cfg.Size <= 0 {
		cfg.Size = 1000
	}

	// Shapes one fully emitted area contributes.
	perArea := 1 + genBlocksPerAxis*genBlocksPerAxis*(1+genRowsPerBlock+genMarkersPerBlock)
	grid := int(math.Ceil(math.Sqrt(float64(cfg.TargetCount) / float64(perArea))))
	if grid < 1 {
		grid = 1
	}
	areaSize := cfg.Size / float64(grid)

	doc := &Document{Name: fmt.Sprintf("synthetic-%d", cfg.TargetCount)}
	remaining := cfg.TargetCount

	for ay := 0; ay < grid && remaining > 0; ay++ {
		for ax := 0; ax < grid && remaining > 0; ax++ {
			idx := ay*grid + ax
			x0 := cfg.Origin.X + float64(ax)*areaSize
			y0 := cfg.Origin.Y + float64(ay)*areaSize

			area := AreaNode{
				ID:       fmt.Sprintf("area-%d", idx),
				Name:     fmt.Sprintf("Area %d", idx),
				Boundary: closedRect(x0, y0, areaSize, areaSize),
			}
			remaining--

			blockSize := areaSize * 0.9 / genBlocksPerAxis
			inset := areaSize * 0.05
			for by := 0; by < genBlocksPerAxis && remaining > 0; by++ {
				for bx := 0; bx < genBlocksPerAxis && remaining > 0; bx++ {
					bidx := by*genBlocksPerAxis + bx
					bx0 := x0 + inset + float64(bx)*blockSize
					by0 := y0 + inset + float64(by)*blockSize
					style := genPalette[bidx%len(genPalette)]

					block := BlockNode{
						ID:       fmt.Sprintf("%s-block-%d", area.ID, bidx),
						Boundary: closedRect(bx0, by0, blockSize*0.95, blockSize*0.95),
						Style:    &style,
					}
					remaining--

					rowGap := blockSize * 0.95 / float64(genRowsPerBlock+1)
					for r := 0; r < genRowsPerBlock && remaining > 0; r++ {
						ry := by0 + float64(r+1)*rowGap
						block.Rows = append(block.Rows, RowNode{
							ID: fmt.Sprintf("%s-row-%d", block.ID, r),
							Points: [][2]float64{
								{bx0 + blockSize*0.05, ry},
								{bx0 + blockSize*0.90, ry},
							},
						})
						remaining--
					}

					for m := 0; m < genMarkersPerBlock && remaining > 0; m++ {
						frac := float64(m+1) / float64(genMarkersPerBlock+1)
						block.Markers = append(block.Markers, MarkerNode{
							ID:     fmt.Sprintf("%s-marker-%d", block.ID, m),
							At:     [2]float64{bx0 + blockSize*0.95*frac, by0 + blockSize*0.95*frac},
							Radius: blockSize * 0.02,
							Label:  fmt.Sprintf("M%d", m+1),
						})
						remaining--
					}

					area.Blocks = append(area.Blocks, block)
				}
			}

			doc.Areas = append(doc.Areas, area)
		}
	}

	return doc
}

func closedRect(x, y, w, h float64) [][2]float64 {
	return [][2]float64{
		{x, y},
		{x + w, y},
		{x + w, y + h},
		{x, y + h},
		{x, y},
	}
}
