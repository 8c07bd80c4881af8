package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/ht-932/MeltSortGrow/internal/lattice"
	"github.com/ht-932/MeltSortGrow/internal/movement"
	"github.com/ht-932/MeltSortGrow/internal/msg"
)

// PageTitle is the HTML title of a plan report.
const PageTitle = "Melt Sort Grow Plan"

// HTML renders plan reports with go-echarts.
type HTML struct {
	Palette *Palette

	// AssetsHost overrides where the echarts scripts are loaded from.
	AssetsHost string
}

// NewHTML returns a report writer using the default palette.
func NewHTML() *HTML {
	return &HTML{Palette: DefaultPalette()}
}

// Write renders res as a single HTML page: one 3D scatter per stage of the
// plan followed by a bar chart of movements per phase.
func (h *HTML) Write(w io.Writer, res *msg.Result) error {
	if res == nil || res.Initial == nil || res.Goal == nil || res.Log == nil {
		return fmt.Errorf("report: incomplete result")
	}
	pal := h.Palette
	if pal == nil {
		pal = DefaultPalette()
	}

	page := components.NewPage()
	if h.AssetsHost != "" {
		page.SetAssetsHost(h.AssetsHost)
	}

	stages := []struct {
		title string
		shape *lattice.Lattice
		sub   string
	}{
		{"Initial", res.Initial, fmt.Sprintf("modules=%d", res.Initial.Count())},
		{"Initial melted", res.InitialMelted, "line " + res.InitialLine.String()},
		{"Goal melted", res.GoalMelted, "line " + res.GoalLine.String()},
		{"Goal", res.Goal, fmt.Sprintf("movements=%d", res.Log.Len())},
	}
	for _, st := range stages {
		if st.shape == nil {
			continue
		}
		page.AddCharts(h.scatter(pal, st.title, st.sub, st.shape))
	}
	page.AddCharts(h.phaseBar(res.Counts))

	if err := page.Render(w); err != nil {
		return fmt.Errorf("report: render page: %w", err)
	}
	return nil
}

func (h *HTML) scatter(pal *Palette, title, sub string, l *lattice.Lattice) *charts.Scatter3D {
	size := l.Size()
	data := make([]opts.Chart3DData, 0, l.Count())
	l.Each(func(c lattice.Cell, id int) {
		data = append(data, opts.Chart3DData{
			Name:      strconv.Itoa(id),
			Value:     []interface{}{c.X, c.Y, c.Z, id},
			ItemStyle: &opts.ItemStyle{Color: pal.Hex(id)},
		})
	})

	axisMax := float32(size - 1)
	sc := charts.NewScatter3D()
	sc.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: PageTitle, Theme: "dark", Width: "900px", Height: "700px", AssetsHost: h.AssetsHost}),
		charts.WithTitleOpts(opts.Title{Title: title, Subtitle: sub}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxis3DOpts(opts.XAxis3D{Name: "X", Min: 0, Max: axisMax}),
		charts.WithYAxis3DOpts(opts.YAxis3D{Name: "Y", Min: 0, Max: axisMax}),
		charts.WithZAxis3DOpts(opts.ZAxis3D{Name: "Z", Min: 0, Max: axisMax}),
	)
	sc.AddSeries("modules", data)
	return sc
}

func (h *HTML) phaseBar(counts map[movement.Phase]int) *charts.Bar {
	x := make([]string, 0, len(movement.Phases))
	y := make([]opts.BarData, 0, len(movement.Phases))
	for _, p := range movement.Phases {
		x = append(x, p.String())
		y = append(y, opts.BarData{Value: counts[p]})
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Theme: "dark", Width: "900px", Height: "400px", AssetsHost: h.AssetsHost}),
		charts.WithTitleOpts(opts.Title{Title: "Movements per phase"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)
	bar.SetXAxis(x).
		AddSeries("movements", y,
			charts.WithLabelOpts(opts.Label{Show: opts.Bool(true), Position: "top"}),
		)
	return bar
}
