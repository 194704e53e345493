// Package render draws extracted diagram models as PNG images.
package render

// DefaultPixelsPerInch is the default drawing scale. Visio stores page
// coordinates in inches; at 96 DPI one inch maps to 96 pixels.
const DefaultPixelsPerInch = 96

// bounds is an axis-aligned box in drawing inches.
type bounds struct {
	minX, minY, maxX, maxY float64
	empty                  bool
}

func newBounds() bounds {
	return bounds{empty: true}
}

func (b *bounds) add(x, y float64) {
	if b.empty {
		b.minX, b.maxX, b.minY, b.maxY = x, x, y, y
		b.empty = false
		return
	}
	if x < b.minX {
		b.minX = x
	}
	if x > b.maxX {
		b.maxX = x
	}
	if y < b.minY {
		b.minY = y
	}
	if y > b.maxY {
		b.maxY = y
	}
}

func (b bounds) width() float64  { return b.maxX - b.minX }
func (b bounds) height() float64 { return b.maxY - b.minY }

// transform maps drawing inches (y up) to image pixels (y down).
type transform struct {
	b      bounds
	scale  float64
	margin float64
}

func (t transform) x(in float64) float64 {
	return t.margin + (in-t.b.minX)*t.scale
}

func (t transform) y(in float64) float64 {
	return t.margin + (t.b.maxY-in)*t.scale
}

func (t transform) size() (int, int) {
	w := int(t.b.width()*t.scale + 2*t.margin)
	h := int(t.b.height()*t.scale + 2*t.margin)
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return w, h
}
