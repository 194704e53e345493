package parser

import (
	"strconv"

	"github.com/beevik/etree"
	"github.com/ukaji3/vsdxstruct-go/pkg/vsdxstruct/models"
)

// assemblePage builds the record of one page part. It returns nil when the
// page retains no shapes and no connectors.
func (s *session) assemblePage(index int, part string, doc *etree.Document) *models.PageRecord {
	root := doc.Root()
	edges := collectEdges(root)
	endpoints := edgeEndpoints(edges)

	b := &treeBuilder{
		page:    index,
		texts:   s.texts,
		masters: s.masters,
		pinned:  pinnedShapes(root, endpoints),
		seen:    make(map[string]bool),
		light:   s.cfg.Mode == ModeLight,
		warn:    s.warn,
		logger:  s.logger,
	}
	if s.cfg.Mode != ModeVerbose {
		b.classify = s.classifier
	}

	page := &models.PageRecord{
		PageIndex:      index,
		PageID:         strconv.Itoa(index),
		PageFile:       part,
		PageProperties: map[string]string{},
	}
	if info, ok := s.pages[part]; ok {
		if info.ID != "" {
			page.PageID = info.ID
		}
		page.PageName = info.Name
		if page.PageName == "" {
			page.PageName = info.NameU
		}
		for k, v := range info.Cells {
			page.PageProperties[k] = v
		}
	}

	page.Shapes = b.buildAll(childShapes(root))
	s.attachEdges(page, edges)
	page.Connectors = collectConnectors(root, edges)

	if len(page.Shapes) == 0 && len(page.Connectors) == 0 {
		s.logger.Debug("page dropped", "page", index, "part", part)
		return nil
	}
	return page
}

// attachEdges appends every edge whose endpoints are both in the page tree to
// the connections of its from node. Other edges are dropped.
func (s *session) attachEdges(page *models.PageRecord, edges []models.ConnectionEdge) {
	index := page.Index()
	attached := 0
	for _, e := range edges {
		from, ok := index[e.FromShape]
		if !ok {
			s.warn(Warning{PageIndex: page.PageIndex, ShapeID: e.FromShape, Field: "edge",
				Detail: "edge source not on page: " + e.FromShape + " -> " + e.ToShape})
			continue
		}
		if _, ok := index[e.ToShape]; !ok {
			s.warn(Warning{PageIndex: page.PageIndex, ShapeID: e.ToShape, Field: "edge",
				Detail: "edge target not on page: " + e.FromShape + " -> " + e.ToShape})
			continue
		}
		from.Connections = append(from.Connections, e)
		attached++
		s.logger.Debug("edge", "page", page.PageIndex, "from", e.FromShape, "to", e.ToShape)
	}
	if len(edges) > 0 {
		s.logger.Debug("edges attached", "page", page.PageIndex, "attached", attached, "total", len(edges))
	}
}
