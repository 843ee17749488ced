package field

import (
	"encoding/json"
	"fmt"
	"os"
)

// Document is the on-disk representation of a field layout project: a
// nested tree of areas, blocks and row collections. The viewer core never
// sees this structure; Import flattens it into shape records.
type Document struct {
	Name  string     `json:"name"`
	Areas []AreaNode `json:"areas"`
}

// AreaNode is a top-level region of the layout.
type AreaNode struct {
	ID       string         `json:"id"`
	Name     string         `json:"name,omitempty"`
	Boundary [][2]float64   `json:"boundary"`
	Style    *StyleSnapshot `json:"style,omitempty"`
	Blocks   []BlockNode    `json:"blocks,omitempty"`
}

// BlockNode is a sub-section of an area.
type BlockNode struct {
	ID       string         `json:"id"`
	Boundary [][2]float64   `json:"boundary"`
	Style    *StyleSnapshot `json:"style,omitempty"`
	Rows     []RowNode      `json:"rows,omitempty"`
	Markers  []MarkerNode   `json:"markers,omitempty"`
}

// RowNode is a line segment (or polyline) inside a block.
type RowNode struct {
	ID     string         `json:"id"`
	Points [][2]float64   `json:"points"`
	Style  *StyleSnapshot `json:"style,omitempty"`
}

// MarkerNode is a labelled point of interest inside a block.
type MarkerNode struct {
	ID     string         `json:"id"`
	At     [2]float64     `json:"at"`
	Radius float64        `json:"radius,omitempty"`
	Label  string         `json:"label,omitempty"`
	Style  *StyleSnapshot `json:"style,omitempty"`
}

// StyleSnapshot carries optional style overrides attached to a node.
// Colors are hex strings ("#rrggbb" or "#rrggbbaa"); malformed or missing
// fields fall back to the per-kind defaults at import time.
type StyleSnapshot struct {
	Fill        string  `json:"fill,omitempty"`
	Stroke      string  `json:"stroke,omitempty"`
	StrokeWidth float32 `json:"strokeWidth,omitempty"`
	Opacity     float64 `json:"opacity,omitempty"`
}

// LoadDocument reads and parses a layout document from disk.
func LoadDocument(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read layout document: %w", err)
	}
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse layout document %s: %w", path, err)
	}
	return &doc, nil
}

// Save writes the document as indented JSON.
func (d *Document) Save(path string) error {
	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode layout document: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write layout document: %w", err)
	}
	return nil
}
