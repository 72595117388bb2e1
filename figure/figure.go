package figure

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"

	"github.com/wcharczuk/go-chart/v2"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// ErrBadGrid indicates non-positive grid dimensions or a panel slot outside
// the grid.
var ErrBadGrid = errors.New("figure: invalid panel grid")

// Default panel size in pixels, used when Options leaves the fields zero.
const (
	DefaultPanelWidth  = 640
	DefaultPanelHeight = 420
)

// titleStrip is the height in pixels reserved above the panels for the
// figure title.
const titleStrip = 24

// Options configures a Figure.
type Options struct {
	// Title is drawn in a strip above the panel grid; empty means no strip.
	Title string
	// PanelWidth and PanelHeight size each panel in pixels; zero picks the
	// package defaults.
	PanelWidth, PanelHeight int
}

// Figure is a rows x cols grid of chart panels rendered into one PNG.
// Unset panels render as blank tiles.
type Figure struct {
	rows, cols int
	title      string
	pw, ph     int
	panels     []*chart.Chart
}

// New builds an empty Figure grid. Returns ErrBadGrid when rows or cols is
// not positive.
func New(rows, cols int, o Options) (*Figure, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("figure: New: %dx%d: %w", rows, cols, ErrBadGrid)
	}
	pw, ph := o.PanelWidth, o.PanelHeight
	if pw <= 0 {
		pw = DefaultPanelWidth
	}
	if ph <= 0 {
		ph = DefaultPanelHeight
	}

	return &Figure{
		rows:   rows,
		cols:   cols,
		title:  o.Title,
		pw:     pw,
		ph:     ph,
		panels: make([]*chart.Chart, rows*cols),
	}, nil
}

// Rows returns the number of panel rows.
func (f *Figure) Rows() int { return f.rows }

// Cols returns the number of panel columns.
func (f *Figure) Cols() int { return f.cols }

// SetPanel places ch into the grid slot (r, c). Returns ErrBadGrid for
// slots outside the grid.
func (f *Figure) SetPanel(r, c int, ch chart.Chart) error {
	if r < 0 || r >= f.rows || c < 0 || c >= f.cols {
		return fmt.Errorf("figure: SetPanel: (%d,%d) outside %dx%d grid: %w", r, c, f.rows, f.cols, ErrBadGrid)
	}
	ch.Width, ch.Height = f.pw, f.ph
	f.panels[r*f.cols+c] = &ch

	return nil
}

// RenderPNG renders every panel and writes the composed figure to w as PNG.
// Panels that were never set stay white.
func (f *Figure) RenderPNG(w io.Writer) error {
	top := 0
	if f.title != "" {
		top = titleStrip
	}
	canvas := image.NewRGBA(image.Rect(0, 0, f.cols*f.pw, top+f.rows*f.ph))
	draw.Draw(canvas, canvas.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)

	if f.title != "" {
		drawLabel(canvas, 8, 16, f.title, color.Black)
	}

	for r := 0; r < f.rows; r++ {
		for c := 0; c < f.cols; c++ {
			ch := f.panels[r*f.cols+c]
			if ch == nil {
				continue
			}
			var buf bytes.Buffer
			if err := ch.Render(chart.PNG, &buf); err != nil {
				return fmt.Errorf("figure: render panel (%d,%d): %w", r, c, err)
			}
			tile, _, err := image.Decode(&buf)
			if err != nil {
				return fmt.Errorf("figure: decode panel (%d,%d): %w", r, c, err)
			}
			rect := image.Rect(c*f.pw, top+r*f.ph, (c+1)*f.pw, top+(r+1)*f.ph)
			draw.Draw(canvas, rect, tile, tile.Bounds().Min, draw.Src)
		}
	}

	if err := png.Encode(w, canvas); err != nil {
		return fmt.Errorf("figure: encode: %w", err)
	}

	return nil
}

// drawLabel writes text onto the canvas with the fixed 7x13 face.
func drawLabel(img *image.RGBA, x, y int, label string, col color.Color) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(col),
		Face: basicfont.Face7x13,
		Dot:  fixed.Point26_6{X: fixed.I(x), Y: fixed.I(y)},
	}
	d.DrawString(label)
}
