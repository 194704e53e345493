package models

// ConnectionPoint is a geometric handle on a shape that connectors glue to.
type ConnectionPoint struct {
	// ID is the row index of the point within the shape.
	ID string `json:"id"`
	// X is the local x coordinate.
	X Value `json:"x"`
	// Y is the local y coordinate.
	Y Value `json:"y"`
	// Dir is the direction of the point ("?" when not declared).
	Dir string `json:"dir"`
	// Type is the point kind ("?" when not declared).
	Type string `json:"type"`
}

// MasterRef identifies the master a shape was instantiated from.
type MasterRef struct {
	// MasterID is the master identifier (empty if none).
	MasterID string `json:"master_id"`
	// MasterName is the master's declared name (empty if unresolved).
	MasterName string `json:"master_name"`
}

// ShapeNode is one drawing primitive or group in the page shape tree.
type ShapeNode struct {
	// ID is the shape identifier, unique within its page.
	ID string `json:"id"`
	// Name is the display label: text, else normalized template name, else "ID:<id>".
	Name string `json:"name"`
	// Kind is the shape type tag (Group, Shape, ...).
	Kind string `json:"type"`
	// Geometry is the resolved position and size.
	Geometry Geometry `json:"position"`
	// Properties maps cell and custom property names to values.
	Properties map[string]string `json:"properties"`
	MasterRef
	// Text is the raw text content.
	Text string `json:"text"`
	// ConnectionPoints lists the glue handles in document order.
	ConnectionPoints []ConnectionPoint `json:"connection_points"`
	// Connections lists edges where this shape is the from endpoint.
	Connections []ConnectionEdge `json:"connections"`
	// Children are the nested shapes in document order.
	Children []*ShapeNode `json:"children"`
}

// Walk calls fn for n and every descendant in depth-first document order.
func (n *ShapeNode) Walk(fn func(*ShapeNode)) {
	fn(n)
	for _, c := range n.Children {
		c.Walk(fn)
	}
}
