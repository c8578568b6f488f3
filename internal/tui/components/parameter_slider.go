package components

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/solarinrs/solaroi/internal/tui/tuistyles"
)

// ParameterSlider is a bounded numeric input moved in fixed steps
type ParameterSlider struct {
	Label       string
	Value       float64
	Min, Max    float64
	Step        float64
	Width       int
	IsFocused   bool
	Description string

	// Display prints a value; two decimals when nil
	Display func(float64) string
}

// NewParameterSlider builds a slider with value clamped into [min, max]
func NewParameterSlider(label string, value, min, max, step float64) *ParameterSlider {
	p := &ParameterSlider{Label: label, Min: min, Max: max, Step: step, Width: 30}
	p.SetValue(value)
	return p
}

func (p *ParameterSlider) WithDisplay(display func(float64) string) *ParameterSlider {
	p.Display = display
	return p
}

func (p *ParameterSlider) WithWidth(width int) *ParameterSlider {
	p.Width = width
	return p
}

func (p *ParameterSlider) WithDescription(desc string) *ParameterSlider {
	p.Description = desc
	return p
}

func (p *ParameterSlider) SetFocused(focused bool) *ParameterSlider {
	p.IsFocused = focused
	return p
}

func (p *ParameterSlider) Increment() { p.SetValue(p.Value + p.Step) }

func (p *ParameterSlider) Decrement() { p.SetValue(p.Value - p.Step) }

// SetValue clamps value into range. Rounding to 1e-9 keeps repeated steps
// landing on exact values such as 0.03.
func (p *ParameterSlider) SetValue(value float64) {
	value = math.Round(value*1e9) / 1e9
	p.Value = math.Max(p.Min, math.Min(p.Max, value))
}

// Percentage is the position within the range as a fraction
func (p *ParameterSlider) Percentage() float64 {
	if p.Max == p.Min {
		return 0
	}
	return (p.Value - p.Min) / (p.Max - p.Min)
}

func (p *ParameterSlider) text(v float64) string {
	if p.Display == nil {
		return fmt.Sprintf("%.2f", v)
	}
	return p.Display(v)
}

// palette returns label and value styles for the focus state
func (p *ParameterSlider) palette() (lipgloss.Style, lipgloss.Style) {
	label, value := tuistyles.ParameterLabelStyle, tuistyles.ParameterValueStyle
	if p.IsFocused {
		label = label.Foreground(tuistyles.ColorPrimary)
		value = value.Foreground(tuistyles.ColorAccent)
	}
	return label, value
}

func (p *ParameterSlider) Render() string {
	label, value := p.palette()
	muted := lipgloss.NewStyle().Foreground(tuistyles.ColorMuted)

	lines := []string{
		label.Render(p.Label) + "  " + value.Render(p.text(p.Value)),
		p.track(),
		muted.Render(p.text(p.Min) + "  ─  " + p.text(p.Max)),
	}
	if p.Description != "" {
		lines = append(lines, muted.Italic(true).Render(p.Description))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// track draws the bar with the thumb at the current position
func (p *ParameterSlider) track() string {
	pos := int(math.Round(float64(p.Width) * p.Percentage()))
	pos = max(1, min(pos, p.Width))

	thumb := tuistyles.SliderThumbStyle
	if p.IsFocused {
		thumb = thumb.Foreground(tuistyles.ColorAccent)
	}
	return "[" +
		thumb.Render(strings.Repeat("━", pos-1)+"●") +
		tuistyles.SliderTrackStyle.Render(strings.Repeat("─", p.Width-pos)) +
		"]"
}

// RenderCompact is the single-line "Label: value" form
func (p *ParameterSlider) RenderCompact() string {
	label, value := p.palette()
	return label.Render(p.Label+":") + " " + value.Render(p.text(p.Value))
}
