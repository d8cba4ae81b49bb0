// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

// Package chart renders benchmark datasets as line charts of total time
// against block size.
package chart

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/c2h5oh/datasize"
	"go.uber.org/zap"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/petenewcomb/iobench"
)

// Formats lists the chart file formats a Renderer can write.
var Formats = []string{"svg", "eps", "pdf", "tex"}

type options struct {
	Log *zap.SugaredLogger
}

func newOptions() *options {
	return &options{
		Log: zap.NewNop().Sugar(),
	}
}

// Option configures a Renderer.
type Option func(*options)

// WithLog sets the logger for the Renderer.
func WithLog(log *zap.SugaredLogger) Option {
	return func(o *options) {
		o.Log = log
	}
}

// Renderer writes charts of a Dataset to a directory.
type Renderer struct {
	dir     string
	format  string
	width   vg.Length
	height  vg.Length
	palette Palette
	log     *zap.SugaredLogger
}

// NewRenderer validates cfg and returns a Renderer for it.
func NewRenderer(cfg *Config, opts ...Option) (*Renderer, error) {
	o := newOptions()
	for _, opt := range opts {
		opt(o)
	}

	format := strings.ToLower(strings.TrimPrefix(cfg.Format, "."))
	if !slices.Contains(Formats, format) {
		return nil, fmt.Errorf("%w %q (want one of %s)", ErrUnsupportedFormat, cfg.Format, strings.Join(Formats, ", "))
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("invalid chart size %gx%g", cfg.Width, cfg.Height)
	}

	var palette Palette
	var err error
	if cfg.Brewer != "" {
		palette, err = BrewerPalette(cfg.Brewer, len(iobench.NewDataset().Buckets()))
	} else {
		palette, err = NamedPalette(cfg.Palette)
	}
	if err != nil {
		return nil, err
	}

	return &Renderer{
		dir:     cfg.Dir,
		format:  format,
		width:   vg.Length(cfg.Width) * vg.Inch,
		height:  vg.Length(cfg.Height) * vg.Inch,
		palette: palette,
		log:     o.Log,
	}, nil
}

type renderOptions struct {
	limited bool
	limit   datasize.ByteSize
}

// RenderOption configures a single Render call.
type RenderOption func(*renderOptions)

// WithLimit restricts a chart to measurements whose block size is strictly
// less than limit.
func WithLimit(limit datasize.ByteSize) RenderOption {
	return func(o *renderOptions) {
		o.limited = true
		o.limit = limit
	}
}

// line is one plotted bucket.
type line struct {
	Label  string
	Color  color.Color
	Points plotter.XYs
	// Dropped counts measurements that cannot be placed on the logarithmic
	// time axis because their duration is not positive.
	Dropped int
}

// lines builds one line per bucket, in bucket order.
func (r *Renderer) lines(ds *iobench.Dataset, o *renderOptions) []line {
	buckets := ds.Buckets()
	lines := make([]line, len(buckets))
	for i, b := range buckets {
		series := b.Series
		if o.limited {
			series = series.Below(o.limit)
		}

		l := &lines[i]
		l.Label = b.Label()
		l.Color = r.palette.Color(i)
		l.Points = make(plotter.XYs, 0, len(series))
		for _, m := range series {
			ms := m.Milliseconds()
			if ms <= 0 {
				l.Dropped++
				continue
			}
			l.Points = append(l.Points, plotter.XY{X: float64(m.BlockSize), Y: ms})
		}
	}
	return lines
}

func newPlot(lines []line) (*plot.Plot, error) {
	p := plot.New()

	p.X.Label.Text = "Block size"
	p.Y.Label.Text = "Total time"
	p.X.Label.TextStyle.Font.Size = vg.Points(14)
	p.Y.Label.TextStyle.Font.Size = vg.Points(14)
	p.X.Tick.Label.Font.Size = vg.Points(11)
	p.Y.Tick.Label.Font.Size = vg.Points(11)

	p.X.Tick.Marker = blockSizeTicks{}
	p.Y.Scale = plot.LogScale{}
	p.Y.Tick.Marker = durationTicks{plot.LogTicks{Prec: -1}}

	p.Legend.Top = true
	p.Legend.Padding = 1 * vg.Millimeter
	p.Legend.TextStyle.Font.Size = vg.Points(12)

	drawn := false
	for _, l := range lines {
		lp, sp, err := plotter.NewLinePoints(l.Points)
		if err != nil {
			return nil, err
		}
		lp.Color = l.Color
		lp.Width = vg.Points(2)
		sp.Shape = draw.CircleGlyph{}
		sp.Color = l.Color
		sp.Radius = vg.Points(3)

		// Every bucket gets a legend entry; only non-empty ones are drawn.
		if len(l.Points) > 0 {
			p.Add(lp, sp)
			drawn = true
		}
		p.Legend.Add(l.Label, lp, sp)
	}

	switch {
	case !drawn:
		p.X.Min, p.X.Max = 0, 1
		p.Y.Min, p.Y.Max = 1, 10
	case p.Y.Min == p.Y.Max:
		// A log axis cannot be widened by padding around a single value.
		p.Y.Min /= 10
		p.Y.Max *= 10
	}

	return p, nil
}

// Render draws ds and writes it to <dir>/<name>.<format>, creating dir if
// needed and replacing any existing file. It returns the written path.
//
// Buckets are drawn in [iobench.Dataset.Buckets] order and take their colors
// from the palette in that order.
func (r *Renderer) Render(ds *iobench.Dataset, name string, opts ...RenderOption) (string, error) {
	o := &renderOptions{}
	for _, opt := range opts {
		opt(o)
	}

	lines := r.lines(ds, o)
	p, err := newPlot(lines)
	if err != nil {
		return "", fmt.Errorf("failed to build chart %s: %w", name, err)
	}

	if err := os.MkdirAll(r.dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create chart directory: %w", err)
	}

	path := filepath.Join(r.dir, name+"."+r.format)
	if err := p.Save(r.width, r.height, path); err != nil {
		return "", fmt.Errorf("failed to save chart %s: %w", path, err)
	}

	for _, l := range lines {
		if l.Dropped > 0 {
			r.log.Debugw("omitted non-positive durations from log axis",
				zap.String("chart", name),
				zap.String("series", l.Label),
				zap.Int("count", l.Dropped))
		}
	}
	r.log.Infow("chart written",
		zap.String("path", path),
		zap.Bool("limited", o.limited),
		zap.Stringer("limit", o.limit))

	return path, nil
}
