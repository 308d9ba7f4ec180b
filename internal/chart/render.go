package chart

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// Format is an image format for Render.
type Format string

// Supported formats.
const (
	SVG Format = "svg"
	PNG Format = "png"
)

// FormatForPath picks the format from a file extension.
func FormatForPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".svg":
		return SVG, nil
	case ".png":
		return PNG, nil
	default:
		return "", fmt.Errorf("unsupported chart format %q (use .svg or .png)", filepath.Ext(path))
	}
}

const (
	barWidth   = 48
	barSpacing = 24
	minWidth   = 640
	height     = 480
)

var barColor = drawing.ColorFromHex("4f46e5")

// Render draws the chart as an image.
func (bc *BarChart) Render(w io.Writer, format Format) error {
	if len(bc.Bars) == 0 {
		return &RenderError{Kind: NoData}
	}

	var provider gochart.RendererProvider
	switch format {
	case SVG:
		provider = gochart.SVG
	case PNG:
		provider = gochart.PNG
	default:
		return fmt.Errorf("unsupported chart format %q", format)
	}

	values := make([]gochart.Value, len(bc.Bars))
	lo, hi := 0.0, 0.0
	for i, b := range bc.Bars {
		values[i] = gochart.Value{
			Label: b.Category,
			Value: b.Value,
			Style: gochart.Style{FillColor: barColor, StrokeColor: barColor, StrokeWidth: 1},
		}
		lo = min(lo, b.Value)
		hi = max(hi, b.Value)
	}
	if hi == lo {
		hi = lo + 1
	}

	bar := gochart.BarChart{
		Title:      fmt.Sprintf("%s by %s", bc.ValueAxis, bc.CategoryAxis),
		Background: gochart.Style{Padding: gochart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}},
		Width:      max(minWidth, len(values)*(barWidth+barSpacing)+160),
		Height:     height,
		BarWidth:   barWidth,
		BarSpacing: barSpacing,
		XAxis:      gochart.Style{FontSize: 8},
		YAxis: gochart.YAxis{
			Name:  bc.ValueAxis,
			Range: &gochart.ContinuousRange{Min: lo, Max: hi},
		},
		Bars: values,
	}

	if err := bar.Render(provider, w); err != nil {
		return fmt.Errorf("failed to render chart: %w", err)
	}
	return nil
}
