package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ivlev/glyphcoords/internal/analyzer"
	"github.com/ivlev/glyphcoords/internal/atlas"
)

var ErrInvalidConfig = errors.New("config: invalid value")

type Config struct {
	InputPath string `yaml:"input"`
	InputDir  string `yaml:"inputDir"` // Searched for the newest sprite when InputPath is empty
	Output    string `yaml:"output"`
	OutputDir string `yaml:"outputDir"` // Batch mode: where per-sprite outputs go
	CSVOutput string `yaml:"csv"`
	Format    string `yaml:"format"` // Empty means: guess from Output's extension

	Order string `yaml:"order"`

	Mode    analyzer.Mode    `yaml:"mode"`
	Mapping analyzer.Mapping `yaml:"mapping"`
	CellW   int              `yaml:"cellW"`
	CellH   int              `yaml:"cellH"`

	AlphaThreshold int `yaml:"alphaThreshold"`
	WhiteThreshold int `yaml:"whiteThreshold"`

	GapTolerance  int `yaml:"gap"`
	MinGlyphWidth int `yaml:"minGlyphWidth"`
	MaxGlyphWidth int `yaml:"maxGlyphWidth"`
	GlyphHeight   int `yaml:"glyphHeight"`

	Page int `yaml:"page"` // PDF page index
	DPI  int `yaml:"dpi"`  // PDF rasterization resolution

	Workers int  `yaml:"workers"`
	Verbose bool `yaml:"verbose"`
}

// Default returns a configuration with every tunable at its default value
func Default() *Config {
	opts := analyzer.DefaultOptions()
	return &Config{
		InputDir:       "sprites",
		Output:         "coords.json",
		Mode:           opts.Mode,
		Mapping:        opts.Mapping,
		AlphaThreshold: opts.Classifier.AlphaThreshold,
		WhiteThreshold: opts.Classifier.WhiteThreshold,
		GapTolerance:   opts.GapTolerance,
		MinGlyphWidth:  opts.MinBlockWidth,
		MaxGlyphWidth:  opts.MaxGlyphWidth,
		GlyphHeight:    opts.GlyphHeight,
		DPI:            72,
	}
}

// Load reads a YAML file over the defaults
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	return cfg, nil
}

// Validate rejects values no detector can work with
func (c *Config) Validate() error {
	checks := []struct {
		ok  bool
		msg string
	}{
		{c.AlphaThreshold >= 0 && c.AlphaThreshold <= 255, "alphaThreshold must be within 0..255"},
		{c.WhiteThreshold >= 0 && c.WhiteThreshold <= 255, "whiteThreshold must be within 0..255"},
		{c.CellW >= 0 && c.CellH >= 0, "cell size can't be negative"},
		{c.GapTolerance >= 0, "gap can't be negative"},
		{c.MinGlyphWidth >= 0, "minGlyphWidth can't be negative"},
		{c.MaxGlyphWidth > 0, "maxGlyphWidth must be positive"},
		{c.GlyphHeight > 0, "glyphHeight must be positive"},
		{c.Page >= 0, "page can't be negative"},
		{c.DPI > 0, "dpi must be positive"},
		{c.Workers >= 0, "workers can't be negative"},
	}
	for _, check := range checks {
		if !check.ok {
			return fmt.Errorf("%w: %s", ErrInvalidConfig, check.msg)
		}
	}

	if _, err := c.OutputFormat(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	return nil
}

// OutputFormat resolves Format, falling back to Output's extension
func (c *Config) OutputFormat() (atlas.Format, error) {
	if c.Format == "" {
		return atlas.FormatFromPath(c.Output), nil
	}
	return atlas.ParseFormat(c.Format)
}

// DetectorOptions converts the config into analyzer options
func (c *Config) DetectorOptions() analyzer.Options {
	return analyzer.Options{
		Mode: c.Mode,
		Classifier: analyzer.Classifier{
			AlphaThreshold: c.AlphaThreshold,
			WhiteThreshold: c.WhiteThreshold,
		},
		CellW:         c.CellW,
		CellH:         c.CellH,
		Mapping:       c.Mapping,
		GapTolerance:  c.GapTolerance,
		MinBlockWidth: c.MinGlyphWidth,
		MaxGlyphWidth: c.MaxGlyphWidth,
		GlyphHeight:   c.GlyphHeight,
	}
}
