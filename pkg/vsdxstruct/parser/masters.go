package parser

import (
	"fmt"
	"log/slog"

	"github.com/beevik/etree"
	"github.com/ukaji3/vsdxstruct-go/pkg/vsdxstruct/models"
)

// PartSource yields parsed container members.
type PartSource interface {
	Has(name string) bool
	Document(name string) (*etree.Document, error)
}

// masterEntry is the memoized result of loading one master part.
type masterEntry struct {
	geometry models.Geometry
	name     string
}

// MasterResolver loads master geometry lazily and memoizes it per master ID.
// It belongs to a single extraction and is not safe for concurrent use.
type MasterResolver struct {
	parts   PartSource
	index   map[string]MasterInfo
	entries map[string]masterEntry
	logger  *slog.Logger
}

// NewMasterResolver creates a resolver over parts. index may be nil.
func NewMasterResolver(parts PartSource, index map[string]MasterInfo, logger *slog.Logger) *MasterResolver {
	if index == nil {
		index = make(map[string]MasterInfo)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &MasterResolver{
		parts:   parts,
		index:   index,
		entries: make(map[string]masterEntry),
		logger:  logger,
	}
}

// Resolve returns the position and size declared by master id. A missing or
// unreadable master yields UnknownGeometry.
func (r *MasterResolver) Resolve(id string) models.Geometry {
	return r.load(id).geometry
}

// Name returns the declared name of master id, or "" when unresolvable.
func (r *MasterResolver) Name(id string) string {
	if info, ok := r.index[id]; ok {
		if info.Name != "" {
			return info.Name
		}
		if info.NameU != "" {
			return info.NameU
		}
	}
	return r.load(id).name
}

func (r *MasterResolver) partFor(id string) string {
	if info, ok := r.index[id]; ok && info.Part != "" {
		return info.Part
	}
	return fmt.Sprintf("visio/masters/master%s.xml", id)
}

func (r *MasterResolver) load(id string) masterEntry {
	if e, ok := r.entries[id]; ok {
		return e
	}

	e := masterEntry{geometry: models.UnknownGeometry()}
	part := r.partFor(id)
	if r.parts.Has(part) {
		doc, err := r.parts.Document(part)
		if err != nil {
			r.logger.Warn("master part unreadable", "master", id, "part", part, "error", err)
		} else {
			e = readMaster(doc.Root())
		}
	}

	r.entries[id] = e
	return e
}

// readMaster extracts the geometry of the first shape of a master part.
func readMaster(root *etree.Element) masterEntry {
	e := masterEntry{geometry: models.UnknownGeometry()}
	if m := root.FindElement(".//Master"); m != nil {
		e.name = m.SelectAttrValue("Name", m.SelectAttrValue("NameU", ""))
	}

	shape := root.FindElement(".//" + tagShape)
	if shape == nil {
		return e
	}
	c := cells(shape)
	_, hasX := c["PinX"]
	_, hasY := c["PinY"]
	if !hasX || !hasY {
		return e
	}
	e.geometry.X = models.ParseValue(c["PinX"])
	e.geometry.Y = models.ParseValue(c["PinY"])
	e.geometry.Width = models.ParseValue(c["Width"])
	e.geometry.Height = models.ParseValue(c["Height"])
	return e
}
