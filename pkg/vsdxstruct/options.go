// Package vsdxstruct extracts a navigable diagram model from Visio VSDX files.
package vsdxstruct

import (
	"log/slog"

	"github.com/ukaji3/vsdxstruct-go/pkg/vsdxstruct/parser"
)

// Mode represents the extraction mode.
type Mode string

const (
	// ModeLight extracts the shape tree, edges and connectors without properties or custom outlines.
	ModeLight Mode = parser.ModeLight
	// ModeStandard extracts everything and keeps only core components.
	ModeStandard Mode = parser.ModeStandard
	// ModeVerbose extracts everything and keeps every shape.
	ModeVerbose Mode = parser.ModeVerbose
)

// ParseMode converts a mode name to a Mode.
func ParseMode(s string) (Mode, bool) {
	switch Mode(s) {
	case ModeLight, ModeStandard, ModeVerbose:
		return Mode(s), true
	}
	return "", false
}

// Options configures extraction behavior.
type Options struct {
	// Mode specifies the extraction mode (light, standard, verbose).
	Mode Mode
	// Rules configures the core-component classifier.
	// If nil, parser.DefaultClassifierRules is used.
	Rules *parser.ClassifierRules
	// Strict makes a malformed page abort the whole extraction.
	// Otherwise the page is skipped and reported in Result.Skipped.
	Strict bool
	// Logger receives debug and warning records. If nil, slog.Default is used.
	Logger *slog.Logger
}

// DefaultOptions returns default extraction options.
func DefaultOptions() Options {
	return Options{
		Mode: ModeStandard,
	}
}

func (o Options) parserConfig() parser.Config {
	cfg := parser.Config{
		Mode:   string(o.Mode),
		Rules:  parser.DefaultClassifierRules(),
		Strict: o.Strict,
		Logger: o.Logger,
	}
	if o.Mode == "" {
		cfg.Mode = string(ModeStandard)
	}
	if o.Rules != nil {
		cfg.Rules = *o.Rules
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return cfg
}
