package figure

import (
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// Shared series colors. Gold marks the |A_nk|^2 / |B_qnu|^2 markers, as the
// fatbands plots of the ab-initio suite do.
var (
	Gold  = drawing.Color{R: 255, G: 215, B: 0, A: 255}
	Gray  = drawing.Color{R: 128, G: 128, B: 128, A: 255}
	Black = drawing.Color{R: 0, G: 0, B: 0, A: 255}
	Red   = drawing.Color{R: 220, G: 30, B: 30, A: 255}
)

// Palette cycles line colors for multi-series panels.
var Palette = []drawing.Color{
	{R: 31, G: 119, B: 180, A: 255},
	{R: 255, G: 127, B: 14, A: 255},
	{R: 44, G: 160, B: 44, A: 255},
	{R: 214, G: 39, B: 40, A: 255},
	{R: 148, G: 103, B: 189, A: 255},
	{R: 140, G: 86, B: 75, A: 255},
}

// PaletteColor returns the i-th palette color, cycling past the end.
func PaletteColor(i int) drawing.Color { return Palette[i%len(Palette)] }

// LineSeries builds a solid line series.
func LineSeries(name string, xs, ys []float64, c drawing.Color) chart.ContinuousSeries {
	return chart.ContinuousSeries{
		Name:    name,
		XValues: xs,
		YValues: ys,
		Style:   chart.Style{StrokeColor: c, StrokeWidth: 1.5},
	}
}

// DashedLine builds a dashed line series, used for extrapolation fits.
func DashedLine(name string, xs, ys []float64, c drawing.Color) chart.ContinuousSeries {
	return chart.ContinuousSeries{
		Name:    name,
		XValues: xs,
		YValues: ys,
		Style: chart.Style{
			StrokeColor:     c,
			StrokeWidth:     1.2,
			StrokeDashArray: []float64{5.0, 5.0},
		},
	}
}

// ScatterSeries builds a marker-only series. When sizes is non-nil it must
// be parallel to xs and gives the dot width per point, the fatbands idiom;
// nil draws uniform dots.
func ScatterSeries(name string, xs, ys, sizes []float64, c drawing.Color) chart.ContinuousSeries {
	style := chart.Style{
		StrokeWidth: chart.Disabled,
		DotColor:    c,
		DotWidth:    3,
	}
	if sizes != nil {
		style.DotWidthProvider = func(_, _ chart.Range, index int, _, _ float64) float64 {
			return sizes[index]
		}
	}

	return chart.ContinuousSeries{
		Name:    name,
		XValues: xs,
		YValues: ys,
		Style:   style,
	}
}

// LogYAxis returns a y-axis with a logarithmic range.
func LogYAxis(name string) chart.YAxis {
	return chart.YAxis{
		Name:  name,
		Range: &chart.LogarithmicRange{},
	}
}

// Ticks pairs axis positions with labels, for high-symmetry path marks.
func Ticks(positions []float64, labels []string) []chart.Tick {
	n := len(positions)
	if len(labels) < n {
		n = len(labels)
	}
	ticks := make([]chart.Tick, n)
	for i := 0; i < n; i++ {
		ticks[i] = chart.Tick{Value: positions[i], Label: labels[i]}
	}

	return ticks
}
