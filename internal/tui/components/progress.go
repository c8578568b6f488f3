package components

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/solarinrs/solaroi/internal/tui/tuistyles"
)

// Gauge displays a filled bar for a percentage such as solar coverage.
// Values above 100 fill the bar and are printed as-is.
type Gauge struct {
	Label   string
	Percent float64
	Width   int
	Detail  string
}

// NewGauge creates a new gauge
func NewGauge(label string, percent float64) *Gauge {
	return &Gauge{
		Label:   label,
		Percent: percent,
		Width:   40,
	}
}

// WithWidth sets the bar width
func (g *Gauge) WithWidth(width int) *Gauge {
	g.Width = width
	return g
}

// WithDetail adds a muted note after the percentage
func (g *Gauge) WithDetail(detail string) *Gauge {
	g.Detail = detail
	return g
}

// Filled returns how many bar cells are filled
func (g *Gauge) Filled() int {
	filled := int(math.Round(float64(g.Width) * g.Percent / 100))
	return max(0, min(filled, g.Width))
}

// Render returns the styled gauge
func (g *Gauge) Render() string {
	var content strings.Builder

	if g.Label != "" {
		labelStyle := lipgloss.NewStyle().
			Foreground(tuistyles.ColorForeground).
			Bold(true)
		content.WriteString(labelStyle.Render(g.Label))
		content.WriteString("\n")
	}

	filled := g.Filled()
	barColor := tuistyles.ColorSuccess
	if g.Percent < 50 {
		barColor = tuistyles.ColorPrimary
	}
	barStyle := lipgloss.NewStyle().Foreground(barColor)
	emptyStyle := lipgloss.NewStyle().Foreground(tuistyles.ColorBorder)

	content.WriteString("[")
	content.WriteString(barStyle.Render(strings.Repeat("█", filled)))
	content.WriteString(emptyStyle.Render(strings.Repeat("░", g.Width-filled)))
	content.WriteString("] ")

	percentStyle := lipgloss.NewStyle().
		Foreground(tuistyles.ColorPrimary).
		Bold(true)
	content.WriteString(percentStyle.Render(fmt.Sprintf("%.0f%%", g.Percent)))

	if g.Detail != "" {
		content.WriteString(" ")
		content.WriteString(lipgloss.NewStyle().Foreground(tuistyles.ColorMuted).Render(g.Detail))
	}

	return content.String()
}
