package models

// ConnectionEdge is a directed link between two shapes' handles.
type ConnectionEdge struct {
	// FromShape is the id of the shape the edge starts at.
	FromShape string `json:"from_shape"`
	// ToShape is the id of the shape the edge ends at.
	ToShape string `json:"to_shape"`
	// FromCell names the participating handle on the from shape.
	FromCell string `json:"from_cell"`
	// ToCell names the participating handle on the to shape.
	ToCell string `json:"to_cell"`
}

// ConnectorRecord is a shape classified as a connector, with its stroke and route.
type ConnectorRecord struct {
	// ID is the connector shape id.
	ID string `json:"id"`
	// Name is the normalized template name, else "ID:<id>".
	Name string `json:"name"`
	// Kind is the shape type tag.
	Kind string `json:"type"`
	// BeginArrow is the arrow style at the start of the line.
	BeginArrow Value `json:"begin_arrow"`
	// EndArrow is the arrow style at the end of the line.
	EndArrow Value `json:"end_arrow"`
	// LinePattern is the dash pattern index.
	LinePattern Value `json:"line_pattern"`
	// LineColor is the stroke color as written in the source.
	LineColor string `json:"line_color"`
	// LineWeight is the stroke weight in inches.
	LineWeight Value `json:"line_weight"`
	// BeginX is the page x coordinate of the line's begin point.
	BeginX Value `json:"begin_x"`
	// BeginY is the page y coordinate of the line's begin point.
	BeginY Value `json:"begin_y"`
	// GeometryPoints is the routed path in the connector's local coordinates.
	GeometryPoints []PathSegment `json:"geometry_points"`
	// Direction is the compass heading from the first to the last routed point.
	Direction string `json:"direction,omitempty"`
	// Connects lists every edge in which the connector is an endpoint.
	Connects []ConnectionEdge `json:"connects"`
}
