package parser

import (
	"strconv"

	"github.com/beevik/etree"
	"github.com/ukaji3/vsdxstruct-go/pkg/vsdxstruct/models"
)

// readGeometry extracts the shape's own position, size and orientation cells,
// plus its custom outline when withPath is set. Absent cells stay Unknown.
func readGeometry(shape *etree.Element, withPath bool) models.Geometry {
	g := models.UnknownGeometry()
	for name, value := range cells(shape) {
		switch name {
		case "PinX":
			g.X = models.ParseValue(value)
		case "PinY":
			g.Y = models.ParseValue(value)
		case "Width":
			g.Width = models.ParseValue(value)
		case "Height":
			g.Height = models.ParseValue(value)
		case "Angle":
			g.Angle = models.ParseValue(value)
		case "FlipX":
			g.FlipX = models.ParseValue(value)
		case "FlipY":
			g.FlipY = models.ParseValue(value)
		}
	}
	if withPath {
		g.PathData = readPathData(shape)
	}
	return g
}

// readPathData returns the rows of each Geometry section as typed segments.
func readPathData(shape *etree.Element) []models.GeometrySection {
	var out []models.GeometrySection
	for _, sec := range sections(shape, "Geometry") {
		var rows models.GeometrySection
		for _, row := range sec.SelectElements(tagRow) {
			if row.SelectAttrValue("T", "") == "" {
				continue
			}
			rows = append(rows, readSegment(row))
		}
		if len(rows) > 0 {
			out = append(out, rows)
		}
	}
	return out
}

func readSegment(row *etree.Element) models.PathSegment {
	seg := models.PathSegment{
		Type:  row.SelectAttrValue("T", ""),
		Cells: make(map[string]string),
	}
	for _, c := range row.SelectElements(tagCell) {
		name := c.SelectAttrValue("N", "")
		if name == "" {
			continue
		}
		seg.Cells[name] = c.SelectAttrValue("V", string(models.Unknown))
	}
	return seg
}

// readProperties collects every non-empty cell of the shape and every custom
// property. Custom properties are keyed by internal name and, when it differs,
// by label; a label never replaces an entry that already exists, so a label
// equal to another property's name is dropped.
func readProperties(shape *etree.Element) map[string]string {
	props := make(map[string]string)
	for name, value := range cells(shape) {
		if value != "" {
			props[name] = value
		}
	}

	add := func(name, label, value string) {
		if value == "" {
			return
		}
		if name != "" {
			props[name] = value
		}
		if label != "" && label != name {
			if _, exists := props[label]; !exists {
				props[label] = value
			}
		}
	}

	for _, sec := range sections(shape, "Property") {
		for _, row := range sec.SelectElements(tagRow) {
			c := cells(row)
			add(row.SelectAttrValue("N", ""), c["Label"], c["Value"])
		}
	}

	// Legacy Prop elements (VDX style).
	for _, prop := range ownElements(shape, "Prop") {
		var value string
		if v := prop.FindElement(".//Value"); v != nil {
			value = innerText(v)
		}
		add(prop.SelectAttrValue("Name", ""), prop.SelectAttrValue("Label", ""), value)
	}

	return props
}

// readConnectionPoints returns the shape's connection points: the rows of its
// Connection section followed by any legacy ConnectionPoint elements.
func readConnectionPoints(shape *etree.Element) []models.ConnectionPoint {
	points := []models.ConnectionPoint{}

	for _, sec := range sections(shape, "Connection") {
		for i, row := range sec.SelectElements(tagRow) {
			c := cells(row)
			id := row.SelectAttrValue("IX", row.SelectAttrValue("N", strconv.Itoa(i)))
			points = append(points, models.ConnectionPoint{
				ID:   id,
				X:    models.ParseValue(c["X"]),
				Y:    models.ParseValue(c["Y"]),
				Dir:  connectionDir(c),
				Type: valueOr(c["Type"], string(models.Unknown)),
			})
		}
	}

	for _, cp := range ownElements(shape, "ConnectionPoint") {
		points = append(points, models.ConnectionPoint{
			ID:   cp.SelectAttrValue("ID", string(models.Unknown)),
			X:    models.ParseValue(cp.SelectAttrValue("X", "")),
			Y:    models.ParseValue(cp.SelectAttrValue("Y", "")),
			Dir:  cp.SelectAttrValue("Dir", string(models.Unknown)),
			Type: cp.SelectAttrValue("Type", string(models.Unknown)),
		})
	}

	return points
}

func hasConnectionPoints(shape *etree.Element) bool {
	return len(readConnectionPoints(shape)) > 0
}

// connectionDir joins the DirX and DirY cells as "x,y".
func connectionDir(c map[string]string) string {
	dx, okX := c["DirX"]
	dy, okY := c["DirY"]
	if !okX && !okY {
		return string(models.Unknown)
	}
	return valueOr(dx, string(models.Unknown)) + "," + valueOr(dy, string(models.Unknown))
}

func valueOr(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
