package parser

import (
	"strings"

	"github.com/beevik/etree"
)

// GeometryThreshold is an optional minimum size and position filter.
// Shapes missing a cell are treated as having value 0 for it.
type GeometryThreshold struct {
	MinWidth  float64 `yaml:"min_width"`
	MinHeight float64 `yaml:"min_height"`
	MinPinX   float64 `yaml:"min_pin_x"`
	MinPinY   float64 `yaml:"min_pin_y"`
}

// ClassifierRules configures the core-component classifier.
type ClassifierRules struct {
	// ExcludedKinds are shape types that are never core components.
	ExcludedKinds []string `yaml:"excluded_kinds"`
	// FurniturePatterns are label substrings marking page furniture.
	FurniturePatterns []string `yaml:"furniture_patterns"`
	// MinGeometry, when set, additionally rejects shapes below the thresholds.
	MinGeometry *GeometryThreshold `yaml:"min_geometry"`
}

// DefaultClassifierRules returns the rules used when none are configured.
func DefaultClassifierRules() ClassifierRules {
	return ClassifierRules{
		ExcludedKinds: []string{"Guide", "ThemeShape", "Documentation", "Annotation"},
		FurniturePatterns: []string{
			"©", "VOLKSWAGEN",
			"Frame", "Border", "Title", "Sheet", "Blatt", "Page",
			"Background", "Scale", "Format", "Tel.", "0-45",
		},
	}
}

// Shape kinds with special handling.
const (
	KindGroup            = "Group"
	KindShape            = "Shape"
	KindLine             = "Line"
	KindDynamicConnector = "Dynamic connector"
)

// Classifier decides which shapes are structurally significant.
type Classifier struct {
	rules    ClassifierRules
	excluded map[string]bool
}

// NewClassifier creates a classifier from rules.
func NewClassifier(rules ClassifierRules) *Classifier {
	excluded := make(map[string]bool, len(rules.ExcludedKinds))
	for _, k := range rules.ExcludedKinds {
		excluded[k] = true
	}
	return &Classifier{rules: rules, excluded: excluded}
}

// IsCore reports whether shape, labelled label, is a core component.
// The first matching rule decides:
//  1. an excluded kind is rejected;
//  2. a dynamic connector is accepted;
//  3. a label containing a furniture pattern is rejected;
//  4. a group is accepted when it has a child container, any other shape when
//     it has a connection point or text.
func (c *Classifier) IsCore(shape *etree.Element, label string) bool {
	kind := shapeKind(shape)
	if c.excluded[kind] {
		return false
	}
	if strings.EqualFold(kind, KindDynamicConnector) {
		return true
	}
	if c.isFurniture(label) {
		return false
	}

	var hasContent bool
	if kind == KindGroup {
		hasContent = shape.SelectElement(tagShapes) != nil
	} else {
		hasContent = hasConnectionPoints(shape) || shapeText(shape) != ""
	}
	if !hasContent {
		return false
	}
	return c.meetsThreshold(shape)
}

func (c *Classifier) isFurniture(label string) bool {
	for _, p := range c.rules.FurniturePatterns {
		if p != "" && strings.Contains(label, p) {
			return true
		}
	}
	return false
}

func (c *Classifier) meetsThreshold(shape *etree.Element) bool {
	t := c.rules.MinGeometry
	if t == nil {
		return true
	}
	g := readGeometry(shape, false)
	return g.Width.FloatOr(0) > t.MinWidth &&
		g.Height.FloatOr(0) > t.MinHeight &&
		g.X.FloatOr(0) > t.MinPinX &&
		g.Y.FloatOr(0) > t.MinPinY
}

// shapeKind returns the Type attribute, defaulting to "Shape".
func shapeKind(shape *etree.Element) string {
	return shape.SelectAttrValue("Type", KindShape)
}
