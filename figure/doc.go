// Package figure composes multi-panel PNG figures from go-chart charts.
//
// What:
//
//   - Figure is a titled rows x cols grid of panels. Each panel is a
//     chart.Chart; RenderPNG renders every panel to its own PNG, decodes
//     it, and draws the tiles into a single canvas.
//   - LineSeries, ScatterSeries, DashedLine, LogYAxis, and Ticks build the
//     chart pieces the polaron plots need; ScatterSeries supports a
//     per-point dot size for fatbands-style markers.
//
// Why:
//
//   - The chart renderer draws one chart per image; the polaron diagnostics
//     are grids of related panels sharing one title.
//
// Errors:
//
//   - ErrBadGrid: non-positive grid dimensions or out-of-range panel slots.
package figure
