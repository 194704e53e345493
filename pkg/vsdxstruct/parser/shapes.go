package parser

import (
	"log/slog"

	"github.com/beevik/etree"
	"github.com/ukaji3/vsdxstruct-go/pkg/vsdxstruct/models"
)

// treeBuilder reconstructs the shape containment tree of one page.
type treeBuilder struct {
	page     int
	texts    TextIndex
	masters  *MasterResolver
	classify *Classifier // nil keeps every shape
	pinned   map[string]bool
	seen     map[string]bool
	light    bool
	warn     func(Warning)
	logger   *slog.Logger
}

// buildAll builds the retained shapes directly inside container's shape list.
func (b *treeBuilder) buildAll(shapes []*etree.Element) []*models.ShapeNode {
	nodes := []*models.ShapeNode{}
	for _, s := range shapes {
		if n := b.build(s); n != nil {
			nodes = append(nodes, n)
		}
	}
	return nodes
}

// build returns the node for shape and its retained descendants, or nil when
// the shape is rejected.
func (b *treeBuilder) build(shape *etree.Element) *models.ShapeNode {
	id := shape.SelectAttrValue("ID", "")
	if id == "" {
		b.warn(Warning{PageIndex: b.page, Field: "id", Detail: "shape without ID skipped"})
		return nil
	}
	if b.seen[id] {
		b.warn(Warning{PageIndex: b.page, ShapeID: id, Field: "id", Detail: "duplicate shape ID skipped"})
		return nil
	}
	b.seen[id] = true

	name := b.texts.Label(id)
	if b.classify != nil && !b.pinned[id] && !b.classify.IsCore(shape, name) {
		b.logger.Debug("shape rejected", "page", b.page, "id", id, "name", name)
		return nil
	}

	masterID := shape.SelectAttrValue("Master", "")
	geometry := readGeometry(shape, !b.light)
	if !geometry.HasPosition() && masterID != "" {
		geometry = geometry.FillFrom(b.masters.Resolve(masterID))
	}
	if !geometry.HasPosition() {
		detail := "no position cells"
		if masterID != "" {
			detail = "no position cells on shape or master " + masterID
		}
		b.warn(Warning{PageIndex: b.page, ShapeID: id, Field: "geometry", Detail: detail})
	}

	node := &models.ShapeNode{
		ID:               id,
		Name:             name,
		Kind:             shapeKind(shape),
		Geometry:         geometry,
		Text:             shapeText(shape),
		ConnectionPoints: readConnectionPoints(shape),
		Connections:      []models.ConnectionEdge{},
	}
	if b.light {
		node.Properties = map[string]string{}
	} else {
		node.Properties = readProperties(shape)
	}
	if masterID != "" {
		node.MasterRef = models.MasterRef{MasterID: masterID, MasterName: b.masters.Name(masterID)}
	}

	b.logger.Debug("shape",
		"page", b.page, "id", id, "name", name,
		"x", geometry.X, "y", geometry.Y, "width", geometry.Width, "height", geometry.Height)

	node.Children = b.buildAll(childShapes(shape))
	return node
}
