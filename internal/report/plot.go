package report

import (
	"fmt"
	"io"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/ht-932/MeltSortGrow/internal/movement"
)

// TravelPlot draws the straight-line distance covered by each movement,
// one line per phase, against the step number.
type TravelPlot struct {
	Width, Height vg.Length
}

// NewTravelPlot returns a plot sized like the other wide debug charts.
func NewTravelPlot() *TravelPlot {
	return &TravelPlot{Width: 14 * vg.Inch, Height: 6 * vg.Inch}
}

// Build assembles the plot for log.
func (tp *TravelPlot) Build(log *movement.Log) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = "Travel per movement"
	p.X.Label.Text = "Step"
	p.Y.Label.Text = "Distance (cells)"

	byPhase := make(map[movement.Phase]plotter.XYs)
	for i, m := range log.Movements() {
		byPhase[m.Phase] = append(byPhase[m.Phase], plotter.XY{X: float64(i + 1), Y: m.Travel()})
	}

	pal := DefaultPalette()
	order := append([]movement.Phase{movement.PhaseUnknown}, movement.Phases[:]...)
	for i, ph := range order {
		pts := byPhase[ph]
		if len(pts) == 0 {
			continue
		}
		sc, err := plotter.NewScatter(pts)
		if err != nil {
			return nil, fmt.Errorf("report: %s points: %w", ph, err)
		}
		sc.GlyphStyle.Color = pal.Color(i + 1)
		sc.GlyphStyle.Radius = vg.Points(2)
		p.Add(sc)
		p.Legend.Add(ph.String(), sc)
	}

	if log.Len() == 0 {
		p.X.Min, p.X.Max = 0, 1
		p.Y.Min, p.Y.Max = 0, 1
	}

	p.Legend.Top = true
	p.Legend.Left = false
	p.Legend.XOffs = -10
	p.Legend.YOffs = -10
	return p, nil
}

// WritePNG renders log as a PNG image to w.
func (tp *TravelPlot) WritePNG(w io.Writer, log *movement.Log) error {
	p, err := tp.Build(log)
	if err != nil {
		return err
	}
	wt, err := p.WriterTo(tp.Width, tp.Height, "png")
	if err != nil {
		return fmt.Errorf("report: png writer: %w", err)
	}
	if _, err := wt.WriteTo(w); err != nil {
		return fmt.Errorf("report: write png: %w", err)
	}
	return nil
}
