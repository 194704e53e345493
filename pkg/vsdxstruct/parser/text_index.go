package parser

import (
	"regexp"
	"strings"

	"github.com/beevik/etree"
	"golang.org/x/text/unicode/norm"
)

// instanceSuffix matches the ".<n>" suffix Visio appends to the unique name
// of every instance after the first.
var instanceSuffix = regexp.MustCompile(`\.\d+$`)

// TextIndex maps shape IDs to their display labels across all pages.
//
// The map is flat: a shape on a later page that reuses the ID of a shape on an
// earlier page overwrites the earlier label.
type TextIndex map[string]string

// BuildTextIndex labels every shape (at any depth) of the given pages.
func BuildTextIndex(pages []*etree.Document) TextIndex {
	idx := make(TextIndex)
	for _, doc := range pages {
		for _, shape := range allShapes(doc.Root()) {
			id := shape.SelectAttrValue("ID", "")
			if id == "" {
				continue
			}
			idx[id] = ShapeLabel(shape)
		}
	}
	return idx
}

// Label returns the indexed label for id, or "ID:<id>".
func (t TextIndex) Label(id string) string {
	if label, ok := t[id]; ok {
		return label
	}
	return fallbackLabel(id)
}

// ShapeLabel resolves the display label of a shape: its text, else its
// normalized template name, else "ID:<id>".
func ShapeLabel(shape *etree.Element) string {
	if text := shapeText(shape); text != "" {
		return text
	}
	if name := TemplateName(shape); name != "" {
		return name
	}
	return fallbackLabel(shape.SelectAttrValue("ID", ""))
}

// TemplateName returns the NFC-normalized unique name of a shape with the
// instance suffix removed.
func TemplateName(shape *etree.Element) string {
	name := shape.SelectAttrValue("NameU", "")
	if name == "" {
		name = shape.SelectAttrValue("Name", "")
	}
	return normalizeName(name)
}

func normalizeName(name string) string {
	name = norm.NFC.String(strings.TrimSpace(name))
	return instanceSuffix.ReplaceAllString(name, "")
}

func fallbackLabel(id string) string {
	return "ID:" + id
}

// shapeText returns the trimmed text of the shape's own Text element.
func shapeText(shape *etree.Element) string {
	text := ownElement(shape, tagText)
	if text == nil {
		return ""
	}
	return strings.TrimSpace(innerText(text))
}
