package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ht-932/MeltSortGrow/internal/movement"
	"github.com/ht-932/MeltSortGrow/internal/msg"
	"github.com/ht-932/MeltSortGrow/internal/testutil"
)

func plan(t *testing.T) *msg.Result {
	t.Helper()
	initial := testutil.Scatter(t, 6, 5, 7)
	goal := testutil.Scatter(t, 6, 5, 99)
	res, err := msg.Plan(initial, goal)
	require.NoError(t, err)
	return res
}

func TestPaletteCycles(t *testing.T) {
	t.Parallel()
	p := DefaultPalette()

	assert.Equal(t, p.Hex(1), p.Hex(7))
	assert.NotEqual(t, p.Hex(1), p.Hex(2))
	assert.Equal(t, p.Hex(6), p.Hex(0))

	p.Pin(3, 0)
	assert.Equal(t, p.Hex(1), p.Hex(3))
	assert.Equal(t, []string{p.Hex(1), p.Hex(2), p.Hex(3)}, p.Legend([]int{3, 1, 2}))
}

func TestHTMLReport(t *testing.T) {
	t.Parallel()
	res := plan(t)

	var buf bytes.Buffer
	require.NoError(t, NewHTML().Write(&buf, res))
	out := buf.String()

	for _, want := range []string{"Initial melted", "Goal melted", "Movements per phase", "sort"} {
		assert.True(t, strings.Contains(out, want), "report missing %q", want)
	}
}

func TestHTMLReportRejectsIncompleteResult(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	assert.Error(t, NewHTML().Write(&buf, nil))
	assert.Error(t, NewHTML().Write(&buf, &msg.Result{}))
}

func TestTravelPlotPNG(t *testing.T) {
	t.Parallel()
	res := plan(t)

	p, err := NewTravelPlot().Build(res.Log)
	require.NoError(t, err)
	assert.Equal(t, "Travel per movement", p.Title.Text)

	var buf bytes.Buffer
	require.NoError(t, NewTravelPlot().WritePNG(&buf, res.Log))
	require.Greater(t, buf.Len(), 8)
	assert.Equal(t, []byte("\x89PNG"), buf.Bytes()[:4])
}

func TestTravelPlotEmptyLog(t *testing.T) {
	t.Parallel()
	l := testutil.Scatter(t, 3, 2, 1)

	var buf bytes.Buffer
	require.NoError(t, NewTravelPlot().WritePNG(&buf, movement.NewLog(l)))
	assert.Equal(t, []byte("\x89PNG"), buf.Bytes()[:4])
}
