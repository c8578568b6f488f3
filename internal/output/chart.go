package output

import (
	"fmt"
	"math"
	"strings"

	"github.com/solarinrs/solaroi/internal/domain"
	"gonum.org/v1/gonum/floats"
)

// RenderSavingsChart draws the cumulative savings curve (grid minus solar path)
// as a width x height character plot with a zero line.
func RenderSavingsChart(points []domain.CumulativePoint, width, height int) string {
	if len(points) == 0 || width < 2 || height < 3 {
		return ""
	}

	savings := make([]float64, len(points))
	for i, p := range points {
		savings[i] = p.Savings()
	}
	hi := math.Max(floats.Max(savings), 0)
	lo := math.Min(floats.Min(savings), 0)
	if hi == lo {
		hi = lo + 1
	}

	row := func(v float64) int {
		return int(math.Round((hi - v) / (hi - lo) * float64(height-1)))
	}

	canvas := make([][]rune, height)
	for r := range canvas {
		canvas[r] = []rune(strings.Repeat(" ", width))
	}
	zero := row(0)
	for c := 0; c < width; c++ {
		canvas[zero][c] = '-'
	}
	for c := 0; c < width; c++ {
		idx := c * (len(points) - 1) / (width - 1)
		canvas[row(savings[idx])][c] = '*'
	}

	hiLabel, loLabel := FormatRSD(hi), FormatRSD(lo)
	lw := max(len(hiLabel), len(loLabel))

	var b strings.Builder
	for r, line := range canvas {
		label := ""
		switch r {
		case 0:
			label = hiLabel
		case zero:
			label = "0"
		case height - 1:
			label = loLabel
		}
		fmt.Fprintf(&b, "%*s |%s\n", lw, label, string(line))
	}
	fmt.Fprintf(&b, "%*s +%s\n", lw, "", strings.Repeat("-", width))
	fmt.Fprintf(&b, "%*s  1%*d\n", lw, "", width-1, points[len(points)-1].Month)
	return b.String()
}
