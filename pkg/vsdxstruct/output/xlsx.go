package output

import (
	"fmt"

	"github.com/ukaji3/vsdxstruct-go/pkg/vsdxstruct/models"
	"github.com/xuri/excelize/v2"
)

// Inventory sheet names.
const (
	SheetShapes      = "Shapes"
	SheetConnections = "Connections"
	SheetConnectors  = "Connectors"
)

var (
	shapeHeader      = []interface{}{"page", "id", "parent", "depth", "name", "type", "x", "y", "width", "height", "master_id", "master_name", "text", "connection_points"}
	connectionHeader = []interface{}{"page", "from_shape", "to_shape", "from_cell", "to_cell"}
	connectorHeader  = []interface{}{"page", "id", "name", "type", "line_pattern", "line_color", "line_weight", "begin_arrow", "end_arrow", "points", "direction"}
)

// WriteWorkbook writes a component inventory of pages to an xlsx file: one
// row per shape (flattened tree), per attached edge and per connector.
func WriteWorkbook(path string, pages []models.PageRecord) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetShapes); err != nil {
		return err
	}
	for _, name := range []string{SheetConnections, SheetConnectors} {
		if _, err := f.NewSheet(name); err != nil {
			return err
		}
	}

	w := &sheetWriter{f: f, rows: map[string]int{}}
	w.append(SheetShapes, shapeHeader)
	w.append(SheetConnections, connectionHeader)
	w.append(SheetConnectors, connectorHeader)

	for _, page := range pages {
		for _, s := range page.Shapes {
			w.appendShape(page.PageIndex, "", 0, s)
		}
		for _, c := range page.Connectors {
			w.append(SheetConnectors, []interface{}{
				page.PageIndex, c.ID, c.Name, c.Kind,
				string(c.LinePattern), c.LineColor, string(c.LineWeight),
				string(c.BeginArrow), string(c.EndArrow),
				len(c.GeometryPoints), c.Direction,
			})
		}
	}
	if w.err != nil {
		return w.err
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("saving workbook: %w", err)
	}
	return nil
}

type sheetWriter struct {
	f    *excelize.File
	rows map[string]int
	err  error
}

func (w *sheetWriter) append(sheet string, values []interface{}) {
	if w.err != nil {
		return
	}
	w.rows[sheet]++
	cell, err := excelize.CoordinatesToCellName(1, w.rows[sheet])
	if err != nil {
		w.err = err
		return
	}
	w.err = w.f.SetSheetRow(sheet, cell, &values)
}

func (w *sheetWriter) appendShape(page int, parent string, depth int, s *models.ShapeNode) {
	g := s.Geometry
	w.append(SheetShapes, []interface{}{
		page, s.ID, parent, depth, s.Name, s.Kind,
		string(g.X), string(g.Y), string(g.Width), string(g.Height),
		s.MasterID, s.MasterName, s.Text, len(s.ConnectionPoints),
	})
	for _, e := range s.Connections {
		w.append(SheetConnections, []interface{}{page, e.FromShape, e.ToShape, e.FromCell, e.ToCell})
	}
	for _, c := range s.Children {
		w.appendShape(page, s.ID, depth+1, c)
	}
}
