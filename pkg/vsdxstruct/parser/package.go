package parser

import (
	"bytes"
	"encoding/xml"
	"errors"
	"io"
	"path"
	"strings"
)

const (
	pagesIndexPart   = "visio/pages/pages.xml"
	pagesRelsPart    = "visio/pages/_rels/pages.xml.rels"
	mastersIndexPart = "visio/masters/masters.xml"
	mastersRelsPart  = "visio/masters/_rels/masters.xml.rels"
)

// PageInfo is the package-level description of a page part.
type PageInfo struct {
	ID    string
	Name  string
	NameU string
	Part  string
	Cells map[string]string
}

// MasterInfo is the package-level description of a master part.
type MasterInfo struct {
	ID    string
	Name  string
	NameU string
	Part  string
}

// indexEntry is one Page or Master element of an index part.
type indexEntry struct {
	id, name, nameU, relID string
	cells                  map[string]string
}

// readPageIndex maps page part names to their index entries.
// A missing or unreadable index yields an empty map.
func readPageIndex(a *Archive) (map[string]PageInfo, error) {
	result := make(map[string]PageInfo)
	entries, rels, err := readIndex(a, pagesIndexPart, pagesRelsPart, "Page")
	if err != nil || entries == nil {
		return result, err
	}
	for _, e := range entries {
		target, ok := rels[e.relID]
		if !ok {
			continue
		}
		part := resolveRelativePath(target, "visio/pages")
		result[part] = PageInfo{
			ID:    e.id,
			Name:  e.name,
			NameU: e.nameU,
			Part:  part,
			Cells: e.cells,
		}
	}
	return result, nil
}

// readMasterIndex maps master IDs to their index entries.
func readMasterIndex(a *Archive) (map[string]MasterInfo, error) {
	result := make(map[string]MasterInfo)
	entries, rels, err := readIndex(a, mastersIndexPart, mastersRelsPart, "Master")
	if err != nil || entries == nil {
		return result, err
	}
	for _, e := range entries {
		info := MasterInfo{ID: e.id, Name: e.name, NameU: e.nameU}
		if target, ok := rels[e.relID]; ok {
			info.Part = resolveRelativePath(target, "visio/masters")
		}
		result[e.id] = info
	}
	return result, nil
}

func readIndex(a *Archive, indexPart, relsPart, element string) ([]indexEntry, map[string]string, error) {
	if !a.Has(indexPart) {
		return nil, nil, nil
	}
	indexXML, err := a.ReadPart(indexPart)
	if err != nil {
		return nil, nil, err
	}
	entries, err := parseIndexXML(indexXML, element)
	if err != nil {
		return nil, nil, &PartError{Part: indexPart, Err: err}
	}

	rels := make(map[string]string)
	if a.Has(relsPart) {
		relsXML, err := a.ReadPart(relsPart)
		if err != nil {
			return nil, nil, err
		}
		rels = parseRelationships(relsXML)
	}
	return entries, rels, nil
}

// parseIndexXML collects the Page or Master entries of pages.xml / masters.xml,
// including the top-level PageSheet cells of each entry.
func parseIndexXML(data []byte, element string) ([]indexEntry, error) {
	var entries []indexEntry
	decoder := xml.NewDecoder(bytes.NewReader(data))

	current := -1
	inPageSheet := false
	sectionDepth := 0
	for {
		token, err := decoder.Token()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return entries, err
		}

		switch t := token.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case element:
				e := indexEntry{cells: make(map[string]string)}
				for _, attr := range t.Attr {
					switch attr.Name.Local {
					case "ID":
						e.id = attr.Value
					case "Name":
						e.name = attr.Value
					case "NameU":
						e.nameU = attr.Value
					}
				}
				entries = append(entries, e)
				current = len(entries) - 1
			case "PageSheet":
				inPageSheet = true
			case "Section":
				sectionDepth++
			case "Cell":
				if current < 0 || !inPageSheet || sectionDepth > 0 {
					continue
				}
				var name, value string
				for _, attr := range t.Attr {
					switch attr.Name.Local {
					case "N":
						name = attr.Value
					case "V":
						value = attr.Value
					}
				}
				if name != "" && value != "" {
					entries[current].cells[name] = value
				}
			case "Rel":
				if current < 0 {
					continue
				}
				for _, attr := range t.Attr {
					if attr.Name.Local == "id" {
						entries[current].relID = attr.Value
					}
				}
			}
		case xml.EndElement:
			switch t.Name.Local {
			case element:
				current = -1
			case "PageSheet":
				inPageSheet = false
			case "Section":
				sectionDepth--
			}
		}
	}

	return entries, nil
}

// parseRelationships maps relationship Id to Target.
func parseRelationships(data []byte) map[string]string {
	result := make(map[string]string)
	decoder := xml.NewDecoder(bytes.NewReader(data))

	for {
		token, err := decoder.Token()
		if err != nil {
			break
		}
		if se, ok := token.(xml.StartElement); ok && se.Name.Local == "Relationship" {
			var rID, target string
			for _, attr := range se.Attr {
				switch attr.Name.Local {
				case "Id":
					rID = attr.Value
				case "Target":
					target = attr.Value
				}
			}
			if rID != "" && target != "" {
				result[rID] = target
			}
		}
	}

	return result
}

// resolveRelativePath resolves a relationship target against the directory
// of the part that declared it.
func resolveRelativePath(target, baseDir string) string {
	if strings.HasPrefix(target, "/") {
		return strings.TrimPrefix(target, "/")
	}
	return path.Clean(path.Join(baseDir, target))
}
