package render

import (
	"errors"
	"image/png"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/ukaji3/vsdxstruct-go/pkg/vsdxstruct/models"
)

func testPages() []models.PageRecord {
	child := &models.ShapeNode{
		ID: "2", Name: "K1", Kind: "Shape", Text: "K1",
		Geometry: models.Geometry{X: "0.5", Y: "0.5", Width: "1", Height: "1", Angle: "0", FlipX: "1", FlipY: "?",
			PathData: []models.GeometrySection{{
				{Type: "MoveTo", Cells: map[string]string{"X": "0", "Y": "0"}},
				{Type: "LineTo", Cells: map[string]string{"X": "1", "Y": "0"}},
				{Type: "LineTo", Cells: map[string]string{"X": "0.5", "Y": "1"}},
			}}},
		ConnectionPoints: []models.ConnectionPoint{{ID: "0", X: "0", Y: "0.5"}},
	}
	return []models.PageRecord{{
		PageIndex: 1,
		Shapes: []*models.ShapeNode{
			{ID: "1", Kind: "Group", Geometry: models.Geometry{X: "4", Y: "4", Width: "2", Height: "2", Angle: "0.5"},
				Children: []*models.ShapeNode{child}},
			{ID: "3", Kind: "Shape", Geometry: models.UnknownGeometry()},
		},
		Connectors: []models.ConnectorRecord{{
			ID: "9", Name: "Dynamic connector", LinePattern: "2", EndArrow: "13", BeginArrow: "?", LineWeight: "0.01",
			GeometryPoints: []models.PathSegment{
				{Type: "MoveTo", Cells: map[string]string{"X": "0", "Y": "0"}},
				{Type: "LineTo", Cells: map[string]string{"X": "2", "Y": "0"}},
				{Type: "LineTo", Cells: map[string]string{"X": "2", "Y": "?"}},
			},
		}},
	}}
}

func TestPlaceShapes(t *testing.T) {
	boxes := placeShapes(testPages()[0].Shapes)
	if len(boxes) != 2 {
		t.Fatalf("expected 2 placed shapes, got %d", len(boxes))
	}
	// Child pin (0.5, 0.5) relative to the group's bottom-left (3, 3).
	if c := boxes[1]; c.cx != 3.5 || c.cy != 3.5 || !c.flipX {
		t.Errorf("child box = %+v", c)
	}
}

func TestRoutePointsPageCoordinates(t *testing.T) {
	route := []models.PathSegment{
		{Type: "MoveTo", Cells: map[string]string{"X": "0", "Y": "0.5"}},
		{Type: "LineTo", Cells: map[string]string{"X": "2", "Y": "0.5"}},
	}

	tests := []struct {
		name     string
		beginX   models.Value
		beginY   models.Value
		expected [][2]float64
	}{
		{"begin point known", "4", "3", [][2]float64{{4, 3}, {6, 3}}},
		{"begin point unknown", models.Unknown, "3", [][2]float64{{0, 0.5}, {2, 0.5}}},
	}

	for _, tt := range tests {
		c := models.ConnectorRecord{BeginX: tt.beginX, BeginY: tt.beginY, GeometryPoints: route}
		if result := routePoints(c); !reflect.DeepEqual(result, tt.expected) {
			t.Errorf("%s: routePoints() = %v, expected %v", tt.name, result, tt.expected)
		}
	}
}

func TestTransform(t *testing.T) {
	b := newBounds()
	b.add(1, 1)
	b.add(3, 2)
	tr := transform{b: b, scale: 10, margin: 5}

	tests := []struct {
		inX, inY float64
		px, py   float64
	}{
		{1, 2, 5, 5},
		{3, 1, 25, 15},
	}
	for _, tt := range tests {
		if x, y := tr.x(tt.inX), tr.y(tt.inY); x != tt.px || y != tt.py {
			t.Errorf("transform(%v, %v) = (%v, %v), expected (%v, %v)", tt.inX, tt.inY, x, y, tt.px, tt.py)
		}
	}
	if w, h := tr.size(); w != 30 || h != 20 {
		t.Errorf("size() = %d x %d, expected 30 x 20", w, h)
	}
}

func decodePNG(t *testing.T, path string) (int, int) {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("opening %s: %v", path, err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decoding %s: %v", path, err)
	}
	return img.Bounds().Dx(), img.Bounds().Dy()
}

func TestStructure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plan_visualization.png")
	if err := Structure(testPages(), path, Options{Scale: 50, Margin: 10}); err != nil {
		t.Fatalf("Structure failed: %v", err)
	}
	// Extent: x 0..5, y 0..5 (connector at origin, group to (5, 5)).
	if w, h := decodePNG(t, path); w != 270 || h != 270 {
		t.Errorf("image = %d x %d, expected 270 x 270", w, h)
	}
}

func TestConnectors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plan_connectors.png")
	if err := Connectors(testPages(), path, Options{}); err != nil {
		t.Fatalf("Connectors failed: %v", err)
	}
	if w, _ := decodePNG(t, path); w != 2*DefaultPixelsPerInch+40 {
		t.Errorf("width = %d, expected %d", w, 2*DefaultPixelsPerInch+40)
	}
}

func TestNothingToDraw(t *testing.T) {
	pages := []models.PageRecord{{Shapes: []*models.ShapeNode{{ID: "1", Geometry: models.UnknownGeometry()}}}}
	dir := t.TempDir()

	if err := Structure(pages, filepath.Join(dir, "a.png"), Options{}); !errors.Is(err, ErrNothingToDraw) {
		t.Errorf("Structure: expected ErrNothingToDraw, got %v", err)
	}
	if err := Connectors(pages, filepath.Join(dir, "b.png"), Options{}); !errors.Is(err, ErrNothingToDraw) {
		t.Errorf("Connectors: expected ErrNothingToDraw, got %v", err)
	}
}
