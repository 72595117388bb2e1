package varpeq

import (
	"fmt"
	"math"
	"os"

	"github.com/wcharczuk/go-chart/v2"

	"github.com/ephtools/polaron/bzmesh"
	"github.com/ephtools/polaron/ebands"
	"github.com/ephtools/polaron/figure"
	"github.com/ephtools/polaron/phbands"
)

// Default plot knobs, matching the diagnostic conventions of the suite.
const (
	// DefaultMarkerScale multiplies |A|^2 / |B|^2 into marker dot widths.
	DefaultMarkerScale = 10.0
	// DefaultEDosWidth and DefaultEDosStep smear the electron DOS, in eV.
	DefaultEDosWidth = 0.1
	DefaultEDosStep  = 0.05
	// DefaultPhDosWidth smears the B^2(E) spectral weight, in eV.
	DefaultPhDosWidth = 0.001
)

// SaveFig renders fig to path as PNG.
func SaveFig(fig *figure.Figure, path string) error {
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("varpeq: save figure: %w", err)
	}
	defer out.Close()

	if err := fig.RenderPNG(out); err != nil {
		return fmt.Errorf("varpeq: save figure %s: %w", path, err)
	}

	return nil
}

// ScfPlotOptions configures PlotScfCycle.
type ScfPlotOptions struct {
	// Title overrides the per-spin default title.
	Title string
	// PanelWidth and PanelHeight size the panels; zero picks defaults.
	PanelWidth, PanelHeight int
}

// PlotScfCycle plots the convergence cycle of every spin: one row per spin
// with the entry energies vs iteration on a linear axis and the deltas
// |y - y_last| on a log axis. The identically-zero final delta is dropped;
// a single-step cycle leaves the delta panel empty.
func PlotScfCycle(f *File, o ScfPlotOptions) (*figure.Figure, error) {
	title := o.Title
	if title == "" && f.NumSpins() > 0 {
		title = f.Polaron(0).Title(true)
	}
	fig, err := figure.New(f.NumSpins(), 2, figure.Options{
		Title: title, PanelWidth: o.PanelWidth, PanelHeight: o.PanelHeight,
	})
	if err != nil {
		return nil, err
	}

	for spin := 0; spin < f.NumSpins(); spin++ {
		cycle, err := f.Polaron(spin).ScfCycle()
		if err != nil {
			return nil, err
		}

		xs := make([]float64, cycle.NumSteps)
		for i := range xs {
			xs[i] = float64(i + 1)
		}

		linear := chart.Chart{
			XAxis: chart.XAxis{Name: "Iteration"},
			YAxis: chart.YAxis{Name: "Energy (eV)"},
		}
		for i, e := range AllEntries {
			linear.Series = append(linear.Series,
				figure.LineSeries(e.Label, xs, cycle.Values[e.Name], figure.PaletteColor(i)))
		}
		// One sample gives the chart no axis spread to autoscale from.
		if cycle.NumSteps == 1 {
			lo, hi := math.Inf(1), math.Inf(-1)
			for _, e := range AllEntries {
				lo = math.Min(lo, cycle.Values[e.Name][0])
				hi = math.Max(hi, cycle.Values[e.Name][0])
			}
			linear.XAxis.Range = &chart.ContinuousRange{Min: 0, Max: 2}
			linear.YAxis.Range = &chart.ContinuousRange{Min: lo - 1, Max: hi + 1}
		}
		if err := fig.SetPanel(spin, 0, linear); err != nil {
			return nil, err
		}

		// One step leaves nothing to diff: keep the delta slot blank.
		if cycle.NumSteps < 2 {
			continue
		}
		deltas := chart.Chart{
			XAxis: chart.XAxis{Name: "Iteration"},
			YAxis: figure.LogYAxis("|Delta| Energy (eV)"),
		}
		for i, e := range AllEntries {
			ys := cycle.Values[e.Name]
			last := ys[len(ys)-1]
			var dx, dy []float64
			for step := 0; step < len(ys)-1; step++ {
				// Zero deltas cannot live on a log axis.
				if d := math.Abs(ys[step] - last); d > 0 {
					dx = append(dx, xs[step])
					dy = append(dy, d)
				}
			}
			if len(dx) == 0 {
				continue
			}
			deltas.Series = append(deltas.Series,
				figure.LineSeries(e.Label, dx, dy, figure.PaletteColor(i)))
		}
		if err := fig.SetPanel(spin, 1, deltas); err != nil {
			return nil, err
		}
	}

	return fig, nil
}

// AnkPlotOptions configures PlotAnkWithEbands.
type AnkPlotOptions struct {
	// Scale multiplies |A_nk|^2 into marker widths; zero picks the default.
	Scale float64
	// Width and Step control the gaussian DOS smearing in eV; zero picks
	// the defaults.
	Width, Step float64
	// DosBands provides mesh-sampled bands for the eDOS side panel; nil
	// omits the panel.
	DosBands *ebands.Bands
	// Title overrides the default title.
	Title string
}

// PlotAnkWithEbands plots the k-path bands with gold markers sized by the
// interpolated |A_nk|^2, plus an optional side panel with the electron DOS
// and the A^2(E) spectral weight. Energies are plotted relative to the
// Fermi level of the VARPEQ file.
func PlotAnkWithEbands(p *Polaron, kpath *ebands.Bands, o AnkPlotOptions) (*figure.Figure, error) {
	if err := kpath.Validate(); err != nil {
		return nil, err
	}
	if p.Spin >= kpath.NumSpins() {
		return nil, fmt.Errorf("varpeq: spin %d: k-path bands carry %d spin channels: %w",
			p.Spin, kpath.NumSpins(), ebands.ErrBadBands)
	}
	scale := o.Scale
	if scale <= 0 {
		scale = DefaultMarkerScale
	}
	width, step := o.Width, o.Step
	if width <= 0 {
		width = DefaultEDosWidth
	}
	if step <= 0 {
		step = DefaultEDosStep
	}
	title := o.Title
	if title == "" {
		title = p.Title(true)
	}

	interp, err := p.A2Interpolator()
	if err != nil {
		return nil, err
	}

	cols := 1
	if o.DosBands != nil {
		cols = 2
	}
	fig, err := figure.New(1, cols, figure.Options{Title: title})
	if err != nil {
		return nil, err
	}

	e0 := p.file.Ebands.Fermi

	bandPanel := chart.Chart{
		XAxis: chart.XAxis{Name: "Wave vector"},
		YAxis: chart.YAxis{Name: "Energy (eV)"},
	}
	if len(kpath.TickPositions) > 0 {
		pos := make([]float64, len(kpath.TickPositions))
		for i, tp := range kpath.TickPositions {
			pos[i] = float64(tp)
		}
		bandPanel.XAxis.Ticks = figure.Ticks(pos, kpath.TickLabels)
	}

	nk := kpath.NumKpoints()
	xs := make([]float64, nk)
	for ik := range xs {
		xs[ik] = float64(ik)
	}
	for ib := 0; ib < kpath.NumBands(); ib++ {
		ys := make([]float64, nk)
		for ik := 0; ik < nk; ik++ {
			ys[ik] = kpath.Eigens[p.Spin][ik][ib] - e0
		}
		bandPanel.Series = append(bandPanel.Series, figure.LineSeries("", xs, ys, figure.Gray))
	}

	// Fatbands markers on the window bands, sized by the interpolated
	// |A_nk|^2 at each path point.
	var mx, my, ms []float64
	a2 := make([]float64, interp.Ncomp())
	for ik, kpt := range kpath.Kpoints {
		a2 = interp.Eval(kpt, a2)
		for ib := p.Bstart; ib < p.Bstop && ib < kpath.NumBands(); ib++ {
			mx = append(mx, float64(ik))
			my = append(my, kpath.Eigens[p.Spin][ik][ib]-e0)
			ms = append(ms, scale*a2[ib-p.Bstart])
		}
	}
	bandPanel.Series = append(bandPanel.Series,
		figure.ScatterSeries("|A_nk|^2", mx, my, ms, figure.Gold))

	if err := fig.SetPanel(0, 0, bandPanel); err != nil {
		return nil, err
	}
	if o.DosBands == nil {
		return fig, nil
	}

	edos, err := ebands.NewDosFromBands(o.DosBands, p.Spin, width, step, nil)
	if err != nil {
		return nil, err
	}
	ankDos, err := ankSpectralWeight(p, interp, o.DosBands, edos.Mesh, width)
	if err != nil {
		return nil, err
	}

	relMesh := make([]float64, len(edos.Mesh))
	for i, e := range edos.Mesh {
		relMesh[i] = e - e0
	}
	dosPanel := chart.Chart{
		XAxis: chart.XAxis{Name: "arb. unit"},
		YAxis: chart.YAxis{Name: "Energy (eV)"},
	}
	dosPanel.Series = append(dosPanel.Series,
		figure.LineSeries("eDOS(E)", edos.Values, relMesh, figure.Black),
		figure.LineSeries("A^2(E)", ankDos, relMesh, figure.Gold),
	)
	if err := fig.SetPanel(0, 1, dosPanel); err != nil {
		return nil, err
	}

	return fig, nil
}

// ankSpectralWeight accumulates sum_nk w_k |A_nk|^2 g(E - e_nk) on the DOS
// mesh. The mesh bands' KWeights are honored; unit weights otherwise. The
// mesh is absolute; the caller shifts to the Fermi level for display.
func ankSpectralWeight(p *Polaron, interp *bzmesh.Interpolator,
	dosBands *ebands.Bands, mesh []float64, width float64) ([]float64, error) {
	if err := dosBands.Validate(); err != nil {
		return nil, err
	}
	out := make([]float64, len(mesh))
	a2 := make([]float64, interp.Ncomp())
	for ik, kpt := range dosBands.Kpoints {
		w := 1.0
		if dosBands.KWeights != nil {
			w = dosBands.KWeights[ik]
		}
		enes := dosBands.Eigens[p.Spin][ik]
		a2 = interp.Eval(kpt, a2)
		for ib := p.Bstart; ib < p.Bstop && ib < len(enes); ib++ {
			for i, g := range ebands.Gaussian(mesh, width, enes[ib]) {
				out[i] += w * a2[ib-p.Bstart] * g
			}
		}
	}

	return out, nil
}

// BqnuPlotOptions configures PlotBqnuWithPhbands.
type BqnuPlotOptions struct {
	// Scale multiplies |B_qnu|^2 into marker widths; zero picks the default.
	Scale float64
	// Width smears the B^2(E) weight, in eV; zero picks the default.
	Width float64
	// MeshBands provides phonons on the q-mesh for the B^2(E) side panel.
	// The side panel needs both MeshBands and a phonon DOS.
	MeshBands *phbands.Bands
	// QWeights holds one BZ weight per MeshBands q-point; nil means
	// uniform 1/nq.
	QWeights []float64
	// Title overrides the default title.
	Title string
}

// PlotBqnuWithPhbands plots the q-path phonon bands with gold markers sized
// by the interpolated |B_qnu|^2, plus an optional side panel with the
// phonon DOS and the B^2(E) spectral weight. The DDB/anaddb collaborator is
// external: callers pass the bands and DOS it produced.
func PlotBqnuWithPhbands(p *Polaron, qpath *phbands.Bands, dos *phbands.Dos, o BqnuPlotOptions) (*figure.Figure, error) {
	if err := qpath.Validate(); err != nil {
		return nil, err
	}
	scale := o.Scale
	if scale <= 0 {
		scale = DefaultMarkerScale
	}
	width := o.Width
	if width <= 0 {
		width = DefaultPhDosWidth
	}
	title := o.Title
	if title == "" {
		title = p.Title(true)
	}

	interp, err := p.B2Interpolator()
	if err != nil {
		return nil, err
	}

	withDos := dos != nil && o.MeshBands != nil
	cols := 1
	if withDos {
		cols = 2
	}
	fig, err := figure.New(1, cols, figure.Options{Title: title})
	if err != nil {
		return nil, err
	}

	bandPanel := chart.Chart{
		XAxis: chart.XAxis{Name: "Wave vector"},
		YAxis: chart.YAxis{Name: "Frequency (eV)"},
	}
	if len(qpath.TickPositions) > 0 {
		pos := make([]float64, len(qpath.TickPositions))
		for i, tp := range qpath.TickPositions {
			pos[i] = float64(tp)
		}
		bandPanel.XAxis.Ticks = figure.Ticks(pos, qpath.TickLabels)
	}

	nq := qpath.NumQpoints()
	xs := make([]float64, nq)
	for iq := range xs {
		xs[iq] = float64(iq)
	}
	for nu := 0; nu < qpath.NumModes(); nu++ {
		ys := make([]float64, nq)
		for iq := 0; iq < nq; iq++ {
			ys[iq] = qpath.Freqs[iq][nu]
		}
		bandPanel.Series = append(bandPanel.Series, figure.LineSeries("", xs, ys, figure.Gray))
	}

	var mx, my, ms []float64
	b2 := make([]float64, interp.Ncomp())
	for iq, qpt := range qpath.Qpoints {
		b2 = interp.Eval(qpt, b2)
		for nu := 0; nu < qpath.NumModes() && nu < len(b2); nu++ {
			mx = append(mx, float64(iq))
			my = append(my, qpath.Freqs[iq][nu])
			ms = append(ms, scale*b2[nu])
		}
	}
	bandPanel.Series = append(bandPanel.Series,
		figure.ScatterSeries("|B_qnu|^2", mx, my, ms, figure.Gold))

	if err := fig.SetPanel(0, 0, bandPanel); err != nil {
		return nil, err
	}
	if !withDos {
		return fig, nil
	}

	if err := o.MeshBands.Validate(); err != nil {
		return nil, err
	}
	bqnuDos := make([]float64, len(dos.Mesh))
	for iq, qpt := range o.MeshBands.Qpoints {
		w := 1.0 / float64(o.MeshBands.NumQpoints())
		if o.QWeights != nil {
			w = o.QWeights[iq]
		}
		b2 = interp.Eval(qpt, b2)
		for nu, freq := range o.MeshBands.Freqs[iq] {
			if nu >= len(b2) {
				break
			}
			for i, g := range ebands.Gaussian(dos.Mesh, width, freq) {
				bqnuDos[i] += w * b2[nu] * g
			}
		}
	}

	dosPanel := chart.Chart{
		XAxis: chart.XAxis{Name: "arb. unit"},
		YAxis: chart.YAxis{Name: "Frequency (eV)"},
	}
	dosPanel.Series = append(dosPanel.Series,
		figure.LineSeries("phDOS(E)", dos.Values, dos.Mesh, figure.Black),
		figure.LineSeries("B^2(E)", bqnuDos, dos.Mesh, figure.Gold),
	)
	if err := fig.SetPanel(0, 1, dosPanel); err != nil {
		return nil, err
	}

	return fig, nil
}

// KConvPlotOptions configures Robot.PlotKConv.
type KConvPlotOptions struct {
	// Spin selects the spin channel.
	Spin int
	// Title overrides the default title.
	Title string
}

// PlotKConv plots the k-mesh convergence of every entry: the final values
// vs the inverse supercell size, with dashed Makov-Payne fit lines through
// the extrapolated intercepts.
func (r *Robot) PlotKConv(o KConvPlotOptions) (*figure.Figure, error) {
	kd, err := r.KData(o.Spin)
	if err != nil {
		return nil, err
	}

	title := o.Title
	if title == "" {
		title = fmt.Sprintf("k-mesh convergence (spin %d)", o.Spin)
	}
	fig, err := figure.New(len(AllEntries), 1, figure.Options{Title: title})
	if err != nil {
		return nil, err
	}

	var xmax float64
	for _, x := range kd.XsInv {
		xmax = math.Max(xmax, x)
	}
	xvals := ebands.LinearMesh(0, 1.1*xmax, 100)

	for ie, e := range AllEntries {
		ys := kd.Values[e.Name]

		panel := chart.Chart{
			YAxis: chart.YAxis{Name: e.Label},
		}
		if ie == len(AllEntries)-1 {
			panel.XAxis = chart.XAxis{Name: "Inverse supercell size (Bohr^-1)"}
		}
		panel.Series = append(panel.Series,
			figure.ScatterSeries("data", kd.XsInv, ys, nil, figure.Red))

		fits, err := MakovPayne(kd.XsInv, ys)
		if err != nil {
			return nil, err
		}
		for i, fit := range fits {
			line := make([]float64, len(xvals))
			for j, x := range xvals {
				line[j] = fit.Intercept + fit.Slope*x
			}
			panel.Series = append(panel.Series,
				figure.DashedLine(fmt.Sprintf("npts=%d", fit.NumPoints), xvals, line, figure.PaletteColor(i)))
		}

		if err := fig.SetPanel(ie, 0, panel); err != nil {
			return nil, err
		}
	}

	return fig, nil
}
