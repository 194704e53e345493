package parser

import (
	"strings"

	"github.com/beevik/etree"
)

// Element names of the page and master parts.
const (
	tagShapes   = "Shapes"
	tagShape    = "Shape"
	tagCell     = "Cell"
	tagSection  = "Section"
	tagRow      = "Row"
	tagText     = "Text"
	tagConnects = "Connects"
	tagConnect  = "Connect"
)

// ownElements returns the descendants of e named tag, without descending
// into nested shape containers. Elements of child shapes belong to them.
func ownElements(e *etree.Element, tag string) []*etree.Element {
	var out []*etree.Element
	var walk func(*etree.Element)
	walk = func(parent *etree.Element) {
		for _, c := range parent.ChildElements() {
			if c.Tag == tagShapes {
				continue
			}
			if c.Tag == tag {
				out = append(out, c)
			}
			walk(c)
		}
	}
	walk(e)
	return out
}

// ownElement returns the first element ownElements would return, or nil.
func ownElement(e *etree.Element, tag string) *etree.Element {
	var found *etree.Element
	var walk func(*etree.Element) bool
	walk = func(parent *etree.Element) bool {
		for _, c := range parent.ChildElements() {
			if c.Tag == tagShapes {
				continue
			}
			if c.Tag == tag {
				found = c
				return true
			}
			if walk(c) {
				return true
			}
		}
		return false
	}
	walk(e)
	return found
}

// innerText concatenates every character data node below e.
func innerText(e *etree.Element) string {
	var sb strings.Builder
	var walk func(*etree.Element)
	walk = func(parent *etree.Element) {
		for _, tok := range parent.Child {
			switch t := tok.(type) {
			case *etree.CharData:
				sb.WriteString(t.Data)
			case *etree.Element:
				walk(t)
			}
		}
	}
	walk(e)
	return sb.String()
}

// cells returns the direct Cell children of e keyed by name.
func cells(e *etree.Element) map[string]string {
	out := make(map[string]string)
	for _, c := range e.SelectElements(tagCell) {
		name := c.SelectAttrValue("N", "")
		if name == "" {
			continue
		}
		out[name] = c.SelectAttrValue("V", "")
	}
	return out
}

// sections returns the direct Section children of e whose name has prefix.
func sections(e *etree.Element, prefix string) []*etree.Element {
	var out []*etree.Element
	for _, s := range e.SelectElements(tagSection) {
		if strings.HasPrefix(s.SelectAttrValue("N", ""), prefix) {
			out = append(out, s)
		}
	}
	return out
}

// childShapes returns the shapes directly inside e's shape container.
func childShapes(e *etree.Element) []*etree.Element {
	container := e.SelectElement(tagShapes)
	if container == nil {
		return nil
	}
	return container.SelectElements(tagShape)
}

// allShapes returns every shape below root's shape container, at any depth,
// in document order (parents before their children).
func allShapes(root *etree.Element) []*etree.Element {
	var out []*etree.Element
	var walk func(shapes []*etree.Element)
	walk = func(shapes []*etree.Element) {
		for _, s := range shapes {
			out = append(out, s)
			walk(childShapes(s))
		}
	}
	walk(childShapes(root))
	return out
}
