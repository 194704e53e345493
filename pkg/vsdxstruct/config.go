package vsdxstruct

import (
	"fmt"
	"os"

	"github.com/ukaji3/vsdxstruct-go/pkg/vsdxstruct/parser"
	"gopkg.in/yaml.v3"
)

// Config is the optional YAML configuration file of the CLI.
type Config struct {
	Mode       string                 `yaml:"mode"`
	Strict     bool                   `yaml:"strict"`
	Classifier parser.ClassifierRules `yaml:"classifier"`
	Render     RenderConfig           `yaml:"render"`
}

// RenderConfig controls PNG output.
type RenderConfig struct {
	// Scale is the number of pixels per drawing inch.
	Scale float64 `yaml:"scale"`
	// Margin is the border around the drawing in pixels.
	Margin float64 `yaml:"margin"`
}

func (c *Config) defaults() {
	if c.Mode == "" {
		c.Mode = string(ModeStandard)
	}
	def := parser.DefaultClassifierRules()
	if c.Classifier.ExcludedKinds == nil {
		c.Classifier.ExcludedKinds = def.ExcludedKinds
	}
	if c.Classifier.FurniturePatterns == nil {
		c.Classifier.FurniturePatterns = def.FurniturePatterns
	}
	if c.Render.Scale <= 0 {
		c.Render.Scale = 96
	}
	if c.Render.Margin <= 0 {
		c.Render.Margin = 20
	}
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() Config {
	var c Config
	c.defaults()
	return c
}

// LoadConfig reads a YAML configuration file. Omitted fields take their
// defaults; an explicitly empty list (e.g. `furniture_patterns: []`) disables
// that rule.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config: %w", err)
	}
	var c Config
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Config{}, fmt.Errorf("parsing config %s: %w", path, err)
	}
	c.defaults()
	if _, ok := ParseMode(c.Mode); !ok {
		return Config{}, fmt.Errorf("invalid mode in %s: %s (must be light, standard, or verbose)", path, c.Mode)
	}
	return c, nil
}

// Options converts the configuration to extraction options.
func (c Config) Options() Options {
	rules := c.Classifier
	return Options{
		Mode:   Mode(c.Mode),
		Rules:  &rules,
		Strict: c.Strict,
	}
}
