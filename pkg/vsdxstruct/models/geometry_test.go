package models

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestParseValue(t *testing.T) {
	tests := []struct {
		raw      string
		expected Value
		known    bool
	}{
		{"1.5", "1.5", true},
		{"-0.25", "-0.25", true},
		{"1E-3", "1E-3", true},
		{"", Unknown, false},
		{"?", Unknown, false},
		{"Width*0.5", Unknown, false},
	}

	for _, tt := range tests {
		v := ParseValue(tt.raw)
		if v != tt.expected || v.Known() != tt.known {
			t.Errorf("ParseValue(%q) = %q (known %v), expected %q (known %v)",
				tt.raw, v, v.Known(), tt.expected, tt.known)
		}
	}

	if f := Unknown.FloatOr(3); f != 3 {
		t.Errorf("Unknown.FloatOr(3) = %v", f)
	}
}

func TestGeometryFillFrom(t *testing.T) {
	g := UnknownGeometry()
	g.X = "5"
	g.Angle = "0.1"

	src := Geometry{X: "1", Y: "2", Width: "3", Height: Unknown, Angle: "9"}
	result := g.FillFrom(src)

	if result.X != "5" || result.Y != "2" || result.Width != "3" || result.Height != Unknown {
		t.Errorf("FillFrom = %+v", result)
	}
	if result.Angle != "0.1" {
		t.Errorf("FillFrom changed Angle to %q", result.Angle)
	}
	if !result.HasPosition() {
		t.Error("expected position after fill")
	}
}

func TestPathSegmentJSON(t *testing.T) {
	seg := PathSegment{Type: SegmentLineTo, Cells: map[string]string{"X": "1.5", "Y": "?"}}

	data, err := json.Marshal(seg)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	var raw map[string]string
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatal(err)
	}
	expected := map[string]string{"type": "LineTo", "X": "1.5", "Y": "?"}
	if !reflect.DeepEqual(raw, expected) {
		t.Errorf("marshaled = %v, expected %v", raw, expected)
	}

	var back PathSegment
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if !reflect.DeepEqual(back, seg) {
		t.Errorf("round trip = %+v, expected %+v", back, seg)
	}
	if back.X() != "1.5" || back.Y() != Unknown || !back.HasPoint() {
		t.Errorf("accessors = %q %q %v", back.X(), back.Y(), back.HasPoint())
	}
	if names := back.CellNames(); !reflect.DeepEqual(names, []string{"X", "Y"}) {
		t.Errorf("CellNames() = %v", names)
	}
}

func TestPageIndex(t *testing.T) {
	page := PageRecord{Shapes: []*ShapeNode{
		{ID: "1", Children: []*ShapeNode{{ID: "2"}, {ID: "3", Children: []*ShapeNode{{ID: "4"}}}}},
		{ID: "5"},
	}}

	idx := page.Index()
	for _, id := range []string{"1", "2", "3", "4", "5"} {
		if n, ok := idx[id]; !ok || n.ID != id {
			t.Errorf("Index()[%q] missing", id)
		}
	}
	if len(idx) != 5 {
		t.Errorf("Index() has %d entries, expected 5", len(idx))
	}
}
