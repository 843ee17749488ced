package field

import (
	"image/color"
	"math"
	"testing"
)

func TestImportSkipsEmptyBlock(t *testing.T) {
	doc := &Document{
		Name: "test",
		Areas: []AreaNode{{
			ID:       "area-1",
			Boundary: closedRect(0, 0, 100, 100),
			Blocks: []BlockNode{
				{ID: "block-empty", Boundary: [][2]float64{}},
				{ID: "block-ok", Boundary: closedRect(10, 10, 40, 40)},
			},
		}},
	}

	shapes := Import(doc)

	ids := make(map[string]bool)
	for _, s := range shapes {
		ids[s.ID] = true
	}
	if ids["block-empty"] {
		t.Error("block with empty boundary should be skipped")
	}
	if !ids["area-1"] || !ids["block-ok"] {
		t.Errorf("well-formed siblings should survive, got %v", ids)
	}
	if len(shapes) != 2 {
		t.Errorf("expected 2 shapes, got %d", len(shapes))
	}
}

func TestImportSkipsShortRow(t *testing.T) {
	doc := &Document{
		Areas: []AreaNode{{
			ID:       "area-1",
			Boundary: closedRect(0, 0, 100, 100),
			Blocks: []BlockNode{{
				ID:       "block-1",
				Boundary: closedRect(0, 0, 50, 50),
				Rows: []RowNode{
					{ID: "row-short", Points: [][2]float64{{1, 1}}},
					{ID: "row-ok", Points: [][2]float64{{1, 1}, {9, 1}}},
				},
			}},
		}},
	}

	shapes := Import(doc)

	for _, s := range shapes {
		if s.ID == "row-short" {
			t.Error("row with a single point should be skipped")
		}
	}
	if len(shapes) != 3 {
		t.Errorf("expected area, block and one row, got %d shapes", len(shapes))
	}
}

func TestImportDropsNonFinitePoints(t *testing.T) {
	doc := &Document{
		Areas: []AreaNode{{
			ID: "area-1",
			Boundary: [][2]float64{
				{0, 0}, {math.NaN(), 5}, {10, 0}, {10, 10}, {0, 10}, {0, 0},
			},
		}},
	}

	shapes := Import(doc)

	if len(shapes) != 1 {
		t.Fatalf("expected 1 shape, got %d", len(shapes))
	}
	poly := shapes[0].Geometry.(*Polygon)
	if len(poly.Vertices) != 5 {
		t.Errorf("NaN vertex should be dropped, got %d vertices", len(poly.Vertices))
	}
}

func TestImportNegatesY(t *testing.T) {
	doc := &Document{
		Areas: []AreaNode{{
			ID:       "area-1",
			Boundary: [][2]float64{{0, 1}, {2, 1}, {2, 3}, {0, 3}},
		}},
	}

	shapes := Import(doc)

	poly := shapes[0].Geometry.(*Polygon)
	if poly.Vertices[0].Y != -1 {
		t.Errorf("document Y should be negated: got %v", poly.Vertices[0])
	}
}

func TestImportStyleSnapshot(t *testing.T) {
	doc := &Document{
		Areas: []AreaNode{{
			ID:       "area-1",
			Boundary: closedRect(0, 0, 10, 10),
			Style:    &StyleSnapshot{Fill: "#102030", Stroke: "not-a-color", StrokeWidth: 2},
		}},
	}

	shapes := Import(doc)

	style := shapes[0].Style
	if style.Fill != (color.NRGBA{R: 0x10, G: 0x20, B: 0x30, A: 0xff}) {
		t.Errorf("fill not parsed: got %v", style.Fill)
	}
	if style.Stroke != nil {
		t.Error("malformed stroke should fall back to nil (kind default)")
	}
	if style.StrokeWidth != 2 {
		t.Errorf("stroke width not carried: got %v", style.StrokeWidth)
	}
}

func TestImportMarkerRadiusFloor(t *testing.T) {
	doc := &Document{
		Areas: []AreaNode{{
			ID:       "area-1",
			Boundary: closedRect(0, 0, 10, 10),
			Blocks: []BlockNode{{
				ID:       "block-1",
				Boundary: closedRect(0, 0, 5, 5),
				Markers: []MarkerNode{
					{ID: "m-1", At: [2]float64{2, 2}, Radius: 0.5},
					{ID: "m-bad", At: [2]float64{math.Inf(1), 2}},
				},
			}},
		}},
	}

	shapes := Import(doc)

	var marker *Marker
	for _, s := range shapes {
		if s.ID == "m-1" {
			marker = s.Geometry.(*Marker)
		}
		if s.ID == "m-bad" {
			t.Error("marker with non-finite position should be skipped")
		}
	}
	if marker == nil {
		t.Fatal("marker m-1 missing")
	}
	if marker.Radius != MinMarkerRadius {
		t.Errorf("marker radius should be floored at %v, got %v", MinMarkerRadius, marker.Radius)
	}
}
