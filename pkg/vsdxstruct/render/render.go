package render

import (
	"errors"
	"fmt"
	"math"

	"github.com/fogleman/gg"
	"github.com/ukaji3/vsdxstruct-go/pkg/vsdxstruct/models"
)

// ErrNothingToDraw is returned when no shape or connector has usable geometry.
var ErrNothingToDraw = errors.New("render: nothing to draw")

// Options configures rendering.
type Options struct {
	// Scale is the number of pixels per drawing inch.
	Scale float64
	// Margin is the border around the drawing in pixels.
	Margin float64
}

func (o Options) withDefaults() Options {
	if o.Scale <= 0 {
		o.Scale = DefaultPixelsPerInch
	}
	if o.Margin <= 0 {
		o.Margin = 20
	}
	return o
}

// Fill colors per shape kind.
var kindColors = map[string][3]float64{
	"Group":             {0.68, 0.85, 0.90},
	"Shape":             {0.56, 0.93, 0.56},
	"Line":              {1, 0, 0},
	"Dynamic connector": {1, 0.65, 0},
}

var defaultColor = [3]float64{0.75, 0.75, 0.75}

// box is a shape placed in page coordinates: its pin, size and rotation.
type box struct {
	node          *models.ShapeNode
	cx, cy        float64
	width, height float64
	angle         float64
	flipX, flipY  bool
}

// placeShapes resolves page coordinates of every shape with a known
// position. Child pins are relative to their parent's local origin.
func placeShapes(shapes []*models.ShapeNode) []box {
	var out []box
	var walk func(n *models.ShapeNode, originX, originY float64)
	walk = func(n *models.ShapeNode, originX, originY float64) {
		g := n.Geometry
		x, okX := g.X.Float()
		y, okY := g.Y.Float()
		if !okX || !okY {
			return
		}
		b := box{
			node:   n,
			cx:     originX + x,
			cy:     originY + y,
			width:  g.Width.FloatOr(0),
			height: g.Height.FloatOr(0),
			angle:  g.Angle.FloatOr(0),
			flipX:  g.FlipX.FloatOr(0) == 1,
			flipY:  g.FlipY.FloatOr(0) == 1,
		}
		out = append(out, b)
		for _, c := range n.Children {
			walk(c, b.cx-b.width/2, b.cy-b.height/2)
		}
	}
	for _, s := range shapes {
		walk(s, 0, 0)
	}
	return out
}

// routePoints returns the known routed points of a connector in page
// coordinates. The local route is translated so its first point lies on the
// connector's begin point; without a known begin point it is drawn as read.
func routePoints(c models.ConnectorRecord) [][2]float64 {
	var pts [][2]float64
	for _, p := range c.GeometryPoints {
		x, okX := p.X().Float()
		y, okY := p.Y().Float()
		if okX && okY {
			pts = append(pts, [2]float64{x, y})
		}
	}

	bx, okX := c.BeginX.Float()
	by, okY := c.BeginY.Float()
	if len(pts) == 0 || !okX || !okY {
		return pts
	}
	dx, dy := bx-pts[0][0], by-pts[0][1]
	for i := range pts {
		pts[i][0] += dx
		pts[i][1] += dy
	}
	return pts
}

// Structure draws every page's shapes and connectors into one PNG at path.
func Structure(pages []models.PageRecord, path string, opts Options) error {
	opts = opts.withDefaults()

	var boxes []box
	var connectors []models.ConnectorRecord
	b := newBounds()
	for _, p := range pages {
		placed := placeShapes(p.Shapes)
		for _, bx := range placed {
			b.add(bx.cx-bx.width/2, bx.cy-bx.height/2)
			b.add(bx.cx+bx.width/2, bx.cy+bx.height/2)
		}
		boxes = append(boxes, placed...)
		for _, c := range p.Connectors {
			for _, pt := range routePoints(c) {
				b.add(pt[0], pt[1])
			}
		}
		connectors = append(connectors, p.Connectors...)
	}
	if b.empty {
		return ErrNothingToDraw
	}

	t := transform{b: b, scale: opts.Scale, margin: opts.Margin}
	w, h := t.size()
	dc := gg.NewContext(w, h)
	dc.SetRGB(1, 1, 1)
	dc.Clear()

	for _, bx := range boxes {
		drawShape(dc, t, bx)
	}
	for _, c := range connectors {
		drawConnector(dc, t, c)
	}

	if err := dc.SavePNG(path); err != nil {
		return fmt.Errorf("render: saving %s: %w", path, err)
	}
	return nil
}

// Connectors draws only the connectors of every page into a PNG at path.
func Connectors(pages []models.PageRecord, path string, opts Options) error {
	opts = opts.withDefaults()

	var connectors []models.ConnectorRecord
	b := newBounds()
	for _, p := range pages {
		for _, c := range p.Connectors {
			pts := routePoints(c)
			if len(pts) < 2 {
				continue
			}
			for _, pt := range pts {
				b.add(pt[0], pt[1])
			}
			connectors = append(connectors, c)
		}
	}
	if b.empty {
		return ErrNothingToDraw
	}

	t := transform{b: b, scale: opts.Scale, margin: opts.Margin}
	w, h := t.size()
	dc := gg.NewContext(w, h)
	dc.SetRGB(1, 1, 1)
	dc.Clear()
	for _, c := range connectors {
		drawConnector(dc, t, c)
		pts := routePoints(c)
		mid := pts[len(pts)/2]
		dc.SetRGB(0, 0, 0)
		dc.DrawStringAnchored(c.Name, t.x(mid[0]), t.y(mid[1]), 0.5, 1)
	}

	if err := dc.SavePNG(path); err != nil {
		return fmt.Errorf("render: saving %s: %w", path, err)
	}
	return nil
}

func drawShape(dc *gg.Context, t transform, bx box) {
	color, ok := kindColors[bx.node.Kind]
	if !ok {
		color = defaultColor
	}

	dc.Push()
	// Visio angles are counter-clockwise with y up; the image y axis points down.
	dc.RotateAbout(-bx.angle, t.x(bx.cx), t.y(bx.cy))

	if !drawOutline(dc, t, bx) {
		w := bx.width * t.scale
		h := bx.height * t.scale
		dc.DrawRectangle(t.x(bx.cx)-w/2, t.y(bx.cy)-h/2, w, h)
	}
	dc.SetRGBA(color[0], color[1], color[2], 0.7)
	dc.FillPreserve()
	dc.SetRGB(0, 0, 0)
	dc.SetLineWidth(1)
	dc.Stroke()

	label := bx.node.Text
	if label == "" {
		label = bx.node.Name
	}
	dc.DrawStringAnchored(label, t.x(bx.cx), t.y(bx.cy), 0.5, 0.5)

	dc.SetRGB(1, 0, 0)
	left, bottom := bx.cx-bx.width/2, bx.cy-bx.height/2
	for _, cp := range bx.node.ConnectionPoints {
		x, okX := cp.X.Float()
		y, okY := cp.Y.Float()
		if !okX || !okY {
			continue
		}
		dc.DrawCircle(t.x(left+x), t.y(bottom+y), 2)
		dc.Fill()
	}
	dc.Pop()
}

// drawOutline adds the custom outline of a shape to the current path. Path
// coordinates are local to the shape's bottom-left corner. It reports false
// when the shape has no usable outline.
func drawOutline(dc *gg.Context, t transform, bx box) bool {
	left, bottom := bx.cx-bx.width/2, bx.cy-bx.height/2
	drawn := false
	for _, section := range bx.node.Geometry.PathData {
		for _, seg := range section {
			x, okX := seg.X().Float()
			y, okY := seg.Y().Float()
			if !okX || !okY {
				continue
			}
			if bx.flipX {
				x = bx.width - x
			}
			if bx.flipY {
				y = bx.height - y
			}
			px, py := t.x(left+x), t.y(bottom+y)
			switch seg.Type {
			case models.SegmentMoveTo:
				dc.MoveTo(px, py)
			default:
				dc.LineTo(px, py)
			}
			drawn = true
		}
	}
	if drawn {
		dc.ClosePath()
	}
	return drawn
}

func drawConnector(dc *gg.Context, t transform, c models.ConnectorRecord) {
	pts := routePoints(c)
	if len(pts) < 2 {
		return
	}

	weight := c.LineWeight.FloatOr(0) * t.scale
	if weight < 1.5 {
		weight = 1.5
	}
	dc.SetLineWidth(weight)
	dc.SetRGBA(1, 0, 0, 0.8)
	if p, ok := c.LinePattern.Float(); ok && p != 1 {
		dc.SetDash(6, 4)
	}
	dc.MoveTo(t.x(pts[0][0]), t.y(pts[0][1]))
	for _, pt := range pts[1:] {
		dc.LineTo(t.x(pt[0]), t.y(pt[1]))
	}
	dc.Stroke()
	dc.SetDash()

	if a, ok := c.BeginArrow.Float(); ok && a != 0 {
		drawArrowHead(dc, t, pts[1], pts[0])
	}
	if a, ok := c.EndArrow.Float(); ok && a != 0 {
		drawArrowHead(dc, t, pts[len(pts)-2], pts[len(pts)-1])
	}
}

// drawArrowHead draws a filled head at tip pointing away from from.
func drawArrowHead(dc *gg.Context, t transform, from, tip [2]float64) {
	fx, fy := t.x(from[0]), t.y(from[1])
	tx, ty := t.x(tip[0]), t.y(tip[1])
	angle := math.Atan2(ty-fy, tx-fx)
	const size = 8.0
	dc.MoveTo(tx, ty)
	dc.LineTo(tx-size*math.Cos(angle-math.Pi/6), ty-size*math.Sin(angle-math.Pi/6))
	dc.LineTo(tx-size*math.Cos(angle+math.Pi/6), ty-size*math.Sin(angle+math.Pi/6))
	dc.ClosePath()
	dc.Fill()
}
