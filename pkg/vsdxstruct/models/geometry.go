// Package models defines data structures for VSDX extraction.
package models

import (
	"encoding/json"
	"sort"
	"strconv"
)

// Unknown is the sentinel stored in place of a numeric cell that has no data.
// It is serialized verbatim so readers can tell "no data" apart from zero.
const Unknown Value = "?"

// Value is a numeric cell kept in its source textual encoding.
type Value string

// Known reports whether v holds a parseable number.
func (v Value) Known() bool {
	_, ok := v.Float()
	return ok
}

// Float parses v. ok is false for the Unknown sentinel or non-numeric text.
func (v Value) Float() (f float64, ok bool) {
	if v == Unknown || v == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(string(v), 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// FloatOr parses v, returning def when v is unknown.
func (v Value) FloatOr(def float64) float64 {
	if f, ok := v.Float(); ok {
		return f
	}
	return def
}

// ParseValue turns a raw cell value into a Value. Empty or non-numeric input
// yields Unknown.
func ParseValue(raw string) Value {
	v := Value(raw)
	if !v.Known() {
		return Unknown
	}
	return v
}

// Geometry holds the position, size and orientation of a shape.
type Geometry struct {
	// X is the pin x coordinate in inches.
	X Value `json:"x"`
	// Y is the pin y coordinate in inches.
	Y Value `json:"y"`
	// Width is the shape width in inches.
	Width Value `json:"width"`
	// Height is the shape height in inches.
	Height Value `json:"height"`
	// Angle is the rotation in radians.
	Angle Value `json:"angle"`
	// FlipX is "1" when the shape is mirrored horizontally.
	FlipX Value `json:"flip_x"`
	// FlipY is "1" when the shape is mirrored vertically.
	FlipY Value `json:"flip_y"`
	// PathData is the custom outline, one entry per geometry section.
	PathData []GeometrySection `json:"path_data,omitempty"`
}

// UnknownGeometry returns a Geometry with every field set to Unknown.
func UnknownGeometry() Geometry {
	return Geometry{
		X:      Unknown,
		Y:      Unknown,
		Width:  Unknown,
		Height: Unknown,
		Angle:  Unknown,
		FlipX:  Unknown,
		FlipY:  Unknown,
	}
}

// HasPosition reports whether both X and Y are known.
func (g Geometry) HasPosition() bool {
	return g.X.Known() && g.Y.Known()
}

// FillFrom copies position and size fields from src into g where g has none.
// Fields g already holds are never overwritten.
func (g Geometry) FillFrom(src Geometry) Geometry {
	fill := func(dst *Value, from Value) {
		if !dst.Known() && from.Known() {
			*dst = from
		}
	}
	fill(&g.X, src.X)
	fill(&g.Y, src.Y)
	fill(&g.Width, src.Width)
	fill(&g.Height, src.Height)
	return g
}

// GeometrySection is the ordered row list of one geometry section.
type GeometrySection []PathSegment

// Segment types found in geometry sections.
const (
	SegmentMoveTo          = "MoveTo"
	SegmentLineTo          = "LineTo"
	SegmentArcTo           = "ArcTo"
	SegmentEllipticalArcTo = "EllipticalArcTo"
)

// PathSegment is a typed geometry row. Cells carries the row cells by name
// (X, Y and, for arcs, A..D) in their source encoding.
type PathSegment struct {
	Type  string
	Cells map[string]string
}

// X returns the target x coordinate of the segment.
func (p PathSegment) X() Value { return ParseValue(p.Cells["X"]) }

// Y returns the target y coordinate of the segment.
func (p PathSegment) Y() Value { return ParseValue(p.Cells["Y"]) }

// HasPoint reports whether the segment carries both target coordinates.
func (p PathSegment) HasPoint() bool {
	_, okX := p.Cells["X"]
	_, okY := p.Cells["Y"]
	return okX && okY
}

// MarshalJSON writes the segment as a flat object: {"type": ..., "X": ..., "Y": ...}.
func (p PathSegment) MarshalJSON() ([]byte, error) {
	m := make(map[string]string, len(p.Cells)+1)
	for k, v := range p.Cells {
		m[k] = v
	}
	m["type"] = p.Type
	return json.Marshal(m)
}

// UnmarshalJSON reads the flat object written by MarshalJSON.
func (p *PathSegment) UnmarshalJSON(data []byte) error {
	var m map[string]string
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	p.Type = m["type"]
	delete(m, "type")
	p.Cells = m
	return nil
}

// CellNames returns the segment's cell names in sorted order.
func (p PathSegment) CellNames() []string {
	names := make([]string, 0, len(p.Cells))
	for k := range p.Cells {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}
