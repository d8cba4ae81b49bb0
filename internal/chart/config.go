// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package chart

// Config configures a Renderer.
type Config struct {
	// Dir is the directory charts are written to. It is created if missing.
	Dir string `yaml:"dir"`
	// Format is the file extension and vector format of the charts: one of
	// svg, eps, pdf or tex.
	Format string `yaml:"format"`
	// Width and Height are the chart dimensions in inches.
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	// Palette lists the series colors by SVG/CSS color name. Colors are
	// assigned to buckets in order and reused once exhausted.
	Palette []string `yaml:"palette"`
	// Brewer names a ColorBrewer palette to use instead of Palette.
	Brewer string `yaml:"brewer"`
}

// DefaultConfig returns the default chart configuration.
func DefaultConfig() *Config {
	return &Config{
		Dir:     "report",
		Format:  "svg",
		Width:   10,
		Height:  4,
		Palette: DefaultPalette(),
	}
}
