package components

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/solarinrs/solaroi/internal/domain"
	"github.com/solarinrs/solaroi/internal/tui/tuistyles"
)

const yAxisWidth = 10

// DataSeries is one plotted line
type DataSeries struct {
	Name   string
	Points []float64
	Color  lipgloss.Color
}

// ASCIIChart plots series sampled column by column
type ASCIIChart struct {
	Title      string
	Series     []*DataSeries
	Labels     []string
	Width      int
	Height     int
	ShowLegend bool
	YAxisLabel string
	XAxisLabel string
}

func NewASCIIChart(title string) *ASCIIChart {
	return &ASCIIChart{Title: title, Width: 60, Height: 15, ShowLegend: true}
}

// NewCumulativeChart plots both cost paths at every year end, starting at month 0.
// The gap between the lines is the running saving; they cross at break-even.
func NewCumulativeChart(points []domain.CumulativePoint, systemCost float64) *ASCIIChart {
	grid, solar, labels := []float64{0}, []float64{systemCost}, []string{"Y0"}
	for _, p := range points {
		if p.Month%domain.MonthsPerYear != 0 {
			continue
		}
		grid = append(grid, p.Grid)
		solar = append(solar, p.Solar)
		labels = append(labels, fmt.Sprintf("Y%d", p.Month/domain.MonthsPerYear))
	}

	return NewASCIIChart("Cumulative cost").
		AddSeries("Grid only", grid, tuistyles.ColorChartLine4).
		AddSeries("With solar", solar, tuistyles.ColorChartLine3).
		WithLabels(labels).
		WithAxisLabels("years", "RSD")
}

func (c *ASCIIChart) AddSeries(name string, points []float64, color lipgloss.Color) *ASCIIChart {
	c.Series = append(c.Series, &DataSeries{Name: name, Points: points, Color: color})
	return c
}

func (c *ASCIIChart) WithLabels(labels []string) *ASCIIChart {
	c.Labels = labels
	return c
}

func (c *ASCIIChart) WithSize(width, height int) *ASCIIChart {
	c.Width, c.Height = width, height
	return c
}

func (c *ASCIIChart) WithAxisLabels(xLabel, yLabel string) *ASCIIChart {
	c.XAxisLabel, c.YAxisLabel = xLabel, yLabel
	return c
}

// Crossing is the first point where the second series has fallen to or
// below the first, or -1. On a cumulative chart that is the break-even year.
func (c *ASCIIChart) Crossing() int {
	if len(c.Series) < 2 {
		return -1
	}
	a, b := c.Series[0].Points, c.Series[1].Points
	for i := 1; i < min(len(a), len(b)); i++ {
		if b[i] <= a[i] && b[i-1] > a[i-1] {
			return i
		}
	}
	return -1
}

func (c *ASCIIChart) Render() string {
	if len(c.Series) == 0 {
		return tuistyles.InfoStyle.Render("No data to display")
	}
	muted := lipgloss.NewStyle().Foreground(tuistyles.ColorMuted)

	var parts []string
	if c.Title != "" {
		title := lipgloss.NewStyle().Bold(true).Foreground(tuistyles.ColorPrimary).Render(c.Title)
		if c.YAxisLabel != "" {
			title += muted.Render(" (" + c.YAxisLabel + ")")
		}
		parts = append(parts, title, "")
	}

	parts = append(parts, c.plot())
	if c.XAxisLabel != "" {
		parts = append(parts, muted.Italic(true).Render(c.XAxisLabel))
	}
	if c.ShowLegend && len(c.Series) > 1 {
		parts = append(parts, "", c.legend())
	}
	return strings.Join(parts, "\n")
}

// bounds is the value range over every series with 10% headroom
func (c *ASCIIChart) bounds() (lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, s := range c.Series {
		for _, v := range s.Points {
			lo, hi = math.Min(lo, v), math.Max(hi, v)
		}
	}
	switch {
	case math.IsInf(lo, 1):
		return 0, 1
	case hi == lo:
		hi = lo + 1
	}
	pad := (hi - lo) / 10
	return lo - pad, hi + pad
}

// sample linearly interpolates points at fraction t of the x range
func sample(points []float64, t float64) float64 {
	if len(points) == 1 {
		return points[0]
	}
	x := t * float64(len(points)-1)
	i := min(int(x), len(points)-2)
	return points[i] + (points[i+1]-points[i])*(x-float64(i))
}

var seriesGlyphs = []rune{'●', '■', '▲', '♦'}

func (c *ASCIIChart) plot() string {
	width := max(c.Width-yAxisWidth-3, 2)
	height := max(c.Height, 2)
	lo, hi := c.bounds()

	rowOf := func(v float64) int {
		r := height - 1 - int(math.Round((v-lo)/(hi-lo)*float64(height-1)))
		return max(0, min(height-1, r))
	}

	cells := make([][]rune, height)
	for y := range cells {
		cells[y] = []rune(strings.Repeat(" ", width))
	}

	for si, s := range c.Series {
		if len(s.Points) == 0 {
			continue
		}
		glyph := seriesGlyphs[si%len(seriesGlyphs)]
		prev := -1
		for x := 0; x < width; x++ {
			y := rowOf(sample(s.Points, float64(x)/float64(width-1)))
			// fill the vertical run from the previous column so steep segments stay connected
			from, to := y, y
			if prev >= 0 {
				from, to = min(prev, y), max(prev, y)
			}
			for r := from; r <= to; r++ {
				if cells[r][x] == ' ' || r == y {
					cells[r][x] = glyph
				}
			}
			prev = y
		}
	}

	if at := c.Crossing(); at > 0 {
		n := len(c.Series[0].Points)
		x := int(math.Round(float64(at) / float64(n-1) * float64(width-1)))
		cells[rowOf(c.Series[0].Points[at])][x] = '✕'
	}

	axis := lipgloss.NewStyle().Foreground(tuistyles.ColorMuted).Width(yAxisWidth).Align(lipgloss.Right)
	var b strings.Builder
	for y, row := range cells {
		v := hi - float64(y)/float64(height-1)*(hi-lo)
		b.WriteString(axis.Render(shortAmount(v)) + " │ " + string(row) + "\n")
	}
	b.WriteString(strings.Repeat(" ", yAxisWidth) + " └" + strings.Repeat("─", width+1))
	if len(c.Labels) > 0 {
		b.WriteString("\n" + c.xLabels(width))
	}
	return b.String()
}

// xLabels spaces at most five labels evenly under the plot
func (c *ASCIIChart) xLabels(width int) string {
	step := max(len(c.Labels)/5, 1)
	line := []rune(strings.Repeat(" ", width+8))
	for i := 0; i < len(c.Labels); i += step {
		at := 0
		if len(c.Labels) > 1 {
			at = i * (width - 1) / (len(c.Labels) - 1)
		}
		for j, r := range []rune(c.Labels[i]) {
			if at+j < len(line) {
				line[at+j] = r
			}
		}
	}
	return strings.Repeat(" ", yAxisWidth+3) +
		lipgloss.NewStyle().Foreground(tuistyles.ColorMuted).Render(strings.TrimRight(string(line), " "))
}

func (c *ASCIIChart) legend() string {
	items := make([]string, 0, len(c.Series)+1)
	for i, s := range c.Series {
		glyph := lipgloss.NewStyle().Foreground(s.Color).Render(string(seriesGlyphs[i%len(seriesGlyphs)]))
		items = append(items, glyph+" "+lipgloss.NewStyle().Foreground(tuistyles.ColorForeground).Render(s.Name))
	}
	if c.Crossing() > 0 {
		items = append(items, "✕ break-even")
	}
	return lipgloss.NewStyle().Foreground(tuistyles.ColorMuted).Render(strings.Join(items, "   "))
}

// shortAmount abbreviates dinar amounts for the Y axis
func shortAmount(v float64) string {
	switch a := math.Abs(v); {
	case a >= 1e6:
		return fmt.Sprintf("%.1fM", v/1e6)
	case a >= 1e3:
		return fmt.Sprintf("%.0fK", v/1e3)
	}
	return fmt.Sprintf("%.0f", v)
}
