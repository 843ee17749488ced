package field

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/philipparndt/fieldmap/internal/logging"
	"github.com/philipparndt/fieldmap/pkg/geometry"
)

// Import flattens a layout document into an ordered list of shape records.
//
// Nodes lacking the minimum usable geometry (fewer than 3 finite points for
// an area or block boundary, fewer than 2 for a row) are skipped with a
// warning; a malformed node never fails the whole import. Document
// coordinates use a Y-up convention, so Y is negated on the way in.
func Import(doc *Document) []*Shape {
	shapes := make([]*Shape, 0, 64)

	for _, area := range doc.Areas {
		verts, dropped := usablePoints(area.Boundary)
		if len(verts) < 3 {
			logging.Logger().Warn("skipping area with insufficient boundary",
				"id", area.ID, "usable", len(verts), "dropped", dropped)
		} else {
			shapes = append(shapes, &Shape{
				ID:       area.ID,
				Geometry: &Polygon{Vertices: verts},
				Style:    snapshotStyle(area.Style),
				Label:    area.Name,
			})
		}

		for _, block := range area.Blocks {
			bverts, bdropped := usablePoints(block.Boundary)
			if len(bverts) < 3 {
				logging.Logger().Warn("skipping block with insufficient boundary",
					"id", block.ID, "usable", len(bverts), "dropped", bdropped)
			} else {
				shapes = append(shapes, &Shape{
					ID:       block.ID,
					Geometry: &Polygon{Vertices: bverts},
					Style:    snapshotStyle(block.Style),
				})
			}

			for _, row := range block.Rows {
				pts, rdropped := usablePoints(row.Points)
				if len(pts) < 2 {
					logging.Logger().Warn("skipping row with insufficient points",
						"id", row.ID, "usable", len(pts), "dropped", rdropped)
					continue
				}
				shapes = append(shapes, &Shape{
					ID:       row.ID,
					Geometry: &Line{Points: pts},
					Style:    snapshotStyle(row.Style),
				})
			}

			for _, marker := range block.Markers {
				center := importPoint(marker.At)
				if !center.IsFinite() {
					logging.Logger().Warn("skipping marker with non-finite position", "id", marker.ID)
					continue
				}
				radius := marker.Radius
				if radius < MinMarkerRadius {
					radius = MinMarkerRadius
				}
				shapes = append(shapes, &Shape{
					ID:       marker.ID,
					Geometry: &Marker{Center: center, Radius: radius},
					Style:    snapshotStyle(marker.Style),
					Label:    marker.Label,
				})
			}
		}
	}

	logging.Logger().Info("imported layout document", "name", doc.Name, "shapes", len(shapes))
	return shapes
}

func importPoint(p [2]float64) geometry.Vector2 {
	// Documents are Y-up, the canvas is Y-down.
	return geometry.NewVector2(p[0], -p[1])
}

// usablePoints converts document coordinates, dropping non-finite entries.
func usablePoints(raw [][2]float64) ([]geometry.Vector2, int) {
	pts := make([]geometry.Vector2, 0, len(raw))
	dropped := 0
	for _, p := range raw {
		v := importPoint(p)
		if !v.IsFinite() {
			dropped++
			continue
		}
		pts = append(pts, v)
	}
	return pts, dropped
}

// snapshotStyle maps a style snapshot to a Style, field by field. Any
// absent or malformed field stays zero so Resolve applies the kind default.
func snapshotStyle(s *StyleSnapshot) Style {
	if s == nil {
		return Style{}
	}
	out := Style{
		StrokeWidth: s.StrokeWidth,
		Opacity:     s.Opacity,
	}
	if c, err := parseHexColor(s.Fill); err == nil {
		out.Fill = c
	} else if s.Fill != "" {
		logging.Logger().Warn("ignoring malformed fill color", "value", s.Fill)
	}
	if c, err := parseHexColor(s.Stroke); err == nil {
		out.Stroke = c
	} else if s.Stroke != "" {
		logging.Logger().Warn("ignoring malformed stroke color", "value", s.Stroke)
	}
	return out
}

// parseHexColor parses "#rrggbb" and "#rrggbbaa".
func parseHexColor(s string) (color.Color, error) {
	if s == "" {
		return nil, fmt.Errorf("empty color")
	}
	s = strings.TrimPrefix(s, "#")
	var c color.NRGBA
	c.A = 0xff
	switch len(s) {
	case 6:
		_, err := fmt.Sscanf(s, "%02x%02x%02x", &c.R, &c.G, &c.B)
		if err != nil {
			return nil, fmt.Errorf("invalid color %q: %w", s, err)
		}
	case 8:
		_, err := fmt.Sscanf(s, "%02x%02x%02x%02x", &c.R, &c.G, &c.B, &c.A)
		if err != nil {
			return nil, fmt.Errorf("invalid color %q: %w", s, err)
		}
	default:
		return nil, fmt.Errorf("invalid color length %q", s)
	}
	return c, nil
}
