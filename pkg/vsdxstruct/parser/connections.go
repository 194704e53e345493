package parser

import (
	"github.com/beevik/etree"
	"github.com/ukaji3/vsdxstruct-go/pkg/vsdxstruct/models"
)

type linkKey struct {
	from, to string
}

// collectEdges gathers the connection edges of a page: those of the
// page-level Connects container followed by those declared inside shapes.
// Duplicate declarations are kept once, in first-seen order. A declaration
// without cells is absorbed by any other declaration of the same link, and
// one with cells replaces an earlier cell-less declaration in place.
func collectEdges(root *etree.Element) []models.ConnectionEdge {
	var edges []models.ConnectionEdge
	seen := make(map[models.ConnectionEdge]bool)
	linked := make(map[linkKey]bool)
	bare := make(map[linkKey]int)
	add := func(e models.ConnectionEdge) {
		if e.FromShape == "" || e.ToShape == "" || seen[e] {
			return
		}
		key := linkKey{e.FromShape, e.ToShape}
		if e.FromCell == "" && e.ToCell == "" {
			if linked[key] {
				return
			}
			bare[key] = len(edges)
		} else if i, ok := bare[key]; ok {
			delete(seen, edges[i])
			delete(bare, key)
			edges[i] = e
			seen[e] = true
			return
		}
		seen[e] = true
		linked[key] = true
		edges = append(edges, e)
	}

	for _, container := range root.SelectElements(tagConnects) {
		for _, c := range container.SelectElements(tagConnect) {
			add(readEdge(c, ""))
		}
	}

	for _, shape := range allShapes(root) {
		owner := shape.SelectAttrValue("ID", "")
		for _, c := range ownElements(shape, tagConnect) {
			add(readEdge(c, owner))
		}
	}

	return edges
}

// readEdge reads a Connect element. A shape-local declaration without
// FromSheet starts at its owning shape.
func readEdge(c *etree.Element, owner string) models.ConnectionEdge {
	return models.ConnectionEdge{
		FromShape: c.SelectAttrValue("FromSheet", owner),
		ToShape:   c.SelectAttrValue("ToSheet", ""),
		FromCell:  c.SelectAttrValue("FromCell", ""),
		ToCell:    c.SelectAttrValue("ToCell", ""),
	}
}

// edgeEndpoints returns the set of shape IDs taking part in any edge.
func edgeEndpoints(edges []models.ConnectionEdge) map[string]bool {
	ids := make(map[string]bool, len(edges)*2)
	for _, e := range edges {
		ids[e.FromShape] = true
		ids[e.ToShape] = true
	}
	return ids
}

// pinnedShapes returns the IDs of every edge endpoint in the page tree and
// of all its ancestors, so the endpoint survives as a tree node.
func pinnedShapes(root *etree.Element, endpoints map[string]bool) map[string]bool {
	pinned := make(map[string]bool)
	var walk func(shapes []*etree.Element, ancestors []string)
	walk = func(shapes []*etree.Element, ancestors []string) {
		for _, s := range shapes {
			id := s.SelectAttrValue("ID", "")
			path := append(ancestors[:len(ancestors):len(ancestors)], id)
			if endpoints[id] {
				for _, a := range path {
					pinned[a] = true
				}
			}
			walk(childShapes(s), path)
		}
	}
	walk(childShapes(root), nil)
	return pinned
}
