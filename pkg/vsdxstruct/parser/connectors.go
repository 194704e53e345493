package parser

import (
	"math"
	"strings"

	"github.com/beevik/etree"
	"github.com/ukaji3/vsdxstruct-go/pkg/vsdxstruct/models"
)

// routeSegmentTypes are the geometry rows that make up a connector route.
var routeSegmentTypes = map[string]bool{
	models.SegmentMoveTo:          true,
	models.SegmentLineTo:          true,
	models.SegmentArcTo:           true,
	models.SegmentEllipticalArcTo: true,
}

// isConnector checks if a shape is a line or connector: by kind, by template
// name, or by a nonzero line pattern or arrow cell.
func isConnector(shape *etree.Element) bool {
	kind := shapeKind(shape)
	if strings.EqualFold(kind, KindLine) || strings.EqualFold(kind, KindDynamicConnector) {
		return true
	}
	if strings.EqualFold(TemplateName(shape), KindDynamicConnector) {
		return true
	}
	c := cells(shape)
	for _, name := range []string{"LinePattern", "BeginArrow", "EndArrow"} {
		if f, ok := models.Value(c[name]).Float(); ok && f != 0 {
			return true
		}
	}
	return false
}

// collectConnectors returns a record for every connector shape on the page,
// at any depth, in document order.
func collectConnectors(root *etree.Element, edges []models.ConnectionEdge) []models.ConnectorRecord {
	connectors := []models.ConnectorRecord{}
	for _, shape := range allShapes(root) {
		if !isConnector(shape) {
			continue
		}
		connectors = append(connectors, readConnector(shape, edges))
	}
	return connectors
}

func readConnector(shape *etree.Element, edges []models.ConnectionEdge) models.ConnectorRecord {
	id := shape.SelectAttrValue("ID", "")
	name := TemplateName(shape)
	if name == "" {
		name = fallbackLabel(id)
	}
	c := cells(shape)

	rec := models.ConnectorRecord{
		ID:             id,
		Name:           name,
		Kind:           shapeKind(shape),
		BeginArrow:     models.ParseValue(c["BeginArrow"]),
		EndArrow:       models.ParseValue(c["EndArrow"]),
		LinePattern:    models.ParseValue(c["LinePattern"]),
		LineColor:      valueOr(c["LineColor"], string(models.Unknown)),
		LineWeight:     models.ParseValue(c["LineWeight"]),
		BeginX:         models.ParseValue(c["BeginX"]),
		BeginY:         models.ParseValue(c["BeginY"]),
		GeometryPoints: []models.PathSegment{},
		Connects:       []models.ConnectionEdge{},
	}

	for _, row := range ownElements(shape, tagRow) {
		if !routeSegmentTypes[row.SelectAttrValue("T", "")] {
			continue
		}
		seg := readSegment(row)
		if seg.HasPoint() {
			rec.GeometryPoints = append(rec.GeometryPoints, seg)
		}
	}
	rec.Direction = routeDirection(rec.GeometryPoints)

	for _, e := range edges {
		if e.FromShape == id || e.ToShape == id {
			rec.Connects = append(rec.Connects, e)
		}
	}
	return rec
}

// routeDirection returns the compass heading from the first to the last
// routed point with known coordinates.
func routeDirection(points []models.PathSegment) string {
	var known []models.PathSegment
	for _, p := range points {
		if p.X().Known() && p.Y().Known() {
			known = append(known, p)
		}
	}
	if len(known) < 2 {
		return ""
	}
	first, last := known[0], known[len(known)-1]
	x0, _ := first.X().Float()
	y0, _ := first.Y().Float()
	x1, _ := last.X().Float()
	y1, _ := last.Y().Float()
	return computeDirection(x1-x0, y1-y0)
}

// computeDirection computes the compass direction of a displacement. Page
// coordinates grow upwards, so positive dy points north.
func computeDirection(dx, dy float64) string {
	if dx == 0 && dy == 0 {
		return ""
	}

	angle := math.Atan2(dy, dx) * 180 / math.Pi
	if angle < 0 {
		angle += 360
	}

	switch {
	case angle >= 337.5 || angle < 22.5:
		return "E"
	case angle >= 22.5 && angle < 67.5:
		return "NE"
	case angle >= 67.5 && angle < 112.5:
		return "N"
	case angle >= 112.5 && angle < 157.5:
		return "NW"
	case angle >= 157.5 && angle < 202.5:
		return "W"
	case angle >= 202.5 && angle < 247.5:
		return "SW"
	case angle >= 247.5 && angle < 292.5:
		return "S"
	default:
		return "SE"
	}
}
