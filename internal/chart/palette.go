// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package chart

import (
	"fmt"
	"image/color"
	"strings"

	"golang.org/x/image/colornames"
	"gonum.org/v1/plot/palette/brewer"
)

// Palette is an indexed set of series colors.
type Palette []color.Color

// Color returns the color for the i'th series, wrapping around when there
// are more series than colors.
func (p Palette) Color(i int) color.Color {
	return p[i%len(p)]
}

// DefaultPalette returns the names of the default series colors.
func DefaultPalette() []string {
	return []string{"black", "purple", "gray", "green", "red", "blue"}
}

// NamedPalette resolves SVG/CSS color names into a Palette.
func NamedPalette(names []string) (Palette, error) {
	if len(names) == 0 {
		return nil, ErrEmptyPalette
	}
	p := make(Palette, len(names))
	for i, name := range names {
		c, ok := colornames.Map[strings.ToLower(strings.TrimSpace(name))]
		if !ok {
			return nil, fmt.Errorf("%w %q", ErrUnknownColor, name)
		}
		p[i] = c
	}
	return p, nil
}

// BrewerPalette returns n colors of the named ColorBrewer palette.
func BrewerPalette(name string, n int) (Palette, error) {
	bp, err := brewer.GetPalette(brewer.TypeAny, name, n)
	if err != nil {
		return nil, fmt.Errorf("brewer palette %q: %w", name, err)
	}
	colors := bp.Colors()
	if len(colors) == 0 {
		return nil, ErrEmptyPalette
	}
	return Palette(colors), nil
}
