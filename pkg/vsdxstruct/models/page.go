package models

// PageRecord represents the extracted model of one diagram page.
type PageRecord struct {
	// PageIndex is the 1-based position of the page part in the container.
	PageIndex int `json:"page_index"`
	// PageID is the document page ID, falling back to PageIndex.
	PageID string `json:"page_id"`
	// PageName is the page's display name when declared.
	PageName string `json:"page_name,omitempty"`
	// PageFile is the part name the page was read from.
	PageFile string `json:"page_file"`
	// PageProperties holds the page sheet cells.
	PageProperties map[string]string `json:"page_properties"`
	// Shapes contains the retained top-level shapes.
	Shapes []*ShapeNode `json:"shapes"`
	// Connectors contains the shapes classified as connectors.
	Connectors []ConnectorRecord `json:"connectors"`
}

// Index maps every shape id on the page (at any depth) to its node.
func (p *PageRecord) Index() map[string]*ShapeNode {
	idx := make(map[string]*ShapeNode)
	for _, s := range p.Shapes {
		s.Walk(func(n *ShapeNode) {
			idx[n.ID] = n
		})
	}
	return idx
}
