package scenes

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/solarinrs/solaroi/internal/domain"
	"github.com/solarinrs/solaroi/internal/output"
	"github.com/solarinrs/solaroi/internal/tui/components"
	"github.com/solarinrs/solaroi/internal/tui/tuimsg"
	"github.com/solarinrs/solaroi/internal/tui/tuistyles"
)

// Slider positions
const (
	SliderSystemCost = iota
	SliderTariffFraction
	SliderEscalation
)

// ParametersModel represents the economic parameter editing scene
type ParametersModel struct {
	sliders       []*components.ParameterSlider
	focusedSlider int
	width         int
	height        int
	modified      bool
}

// NewParametersModel creates a new parameters scene model
func NewParametersModel() *ParametersModel {
	return &ParametersModel{}
}

// SetParameters rebuilds the sliders from the proposal and the escalation in effect
func (m *ParametersModel) SetParameters(p *domain.Proposal, escalation decimal.Decimal) {
	if p == nil {
		return
	}

	costMax := math.Max(2*p.System.Cost, 1000000)
	cost := components.NewParameterSlider("System price", p.System.Cost, 0, costMax, 10000).
		WithDisplay(output.FormatRSD).
		WithWidth(40).
		WithDescription("Installed price including VAT")

	fraction := components.NewParameterSlider("Higher tariff share", p.Utility.TariffFraction, 0, 1, 0.05).
		WithDisplay(func(v float64) string { return fmt.Sprintf("%.2f", v) }).
		WithWidth(40).
		WithDescription("Share of consumption billed at the higher daily tariff")

	esc := components.NewParameterSlider("Price escalation", escalation.InexactFloat64(), 0, 0.15, 0.005).
		WithDisplay(func(v float64) string { return fmt.Sprintf("%.1f%%/yr", v*100) }).
		WithWidth(40).
		WithDescription("Assumed yearly increase of electricity prices")

	m.sliders = []*components.ParameterSlider{cost, fraction, esc}
	if m.focusedSlider >= len(m.sliders) {
		m.focusedSlider = 0
	}
	m.sliders[m.focusedSlider].SetFocused(true)
	m.modified = false
}

// Sliders exposes the sliders in position order
func (m *ParametersModel) Sliders() []*components.ParameterSlider {
	return m.sliders
}

// Modified reports unapplied edits
func (m *ParametersModel) Modified() bool {
	return m.modified
}

// SetSize updates the scene dimensions
func (m *ParametersModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Update handles messages for the parameters scene
func (m *ParametersModel) Update(msg tea.Msg) (*ParametersModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	}
	return m, nil
}

func (m *ParametersModel) handleKeyPress(msg tea.KeyMsg) (*ParametersModel, tea.Cmd) {
	if len(m.sliders) == 0 {
		return m, nil
	}

	switch {
	case key.Matches(msg, key.NewBinding(key.WithKeys("up", "k"))):
		m.moveFocus(-1)
	case key.Matches(msg, key.NewBinding(key.WithKeys("down", "j"))):
		m.moveFocus(1)
	case key.Matches(msg, key.NewBinding(key.WithKeys("left"))):
		m.sliders[m.focusedSlider].Decrement()
		m.modified = true
	case key.Matches(msg, key.NewBinding(key.WithKeys("right", "l"))):
		m.sliders[m.focusedSlider].Increment()
		m.modified = true
	case key.Matches(msg, key.NewBinding(key.WithKeys("enter"))):
		return m, m.apply()
	case key.Matches(msg, key.NewBinding(key.WithKeys("x"))):
		return m, func() tea.Msg { return tuimsg.ResetMsg{} }
	}
	return m, nil
}

func (m *ParametersModel) moveFocus(delta int) {
	next := m.focusedSlider + delta
	if next < 0 || next >= len(m.sliders) {
		return
	}
	m.sliders[m.focusedSlider].SetFocused(false)
	m.focusedSlider = next
	m.sliders[m.focusedSlider].SetFocused(true)
}

// apply returns a command carrying the slider values
func (m *ParametersModel) apply() tea.Cmd {
	msg := tuimsg.ParametersChangedMsg{
		SystemCost:     math.Round(m.sliders[SliderSystemCost].Value),
		TariffFraction: m.sliders[SliderTariffFraction].Value,
		EscalationRate: decimal.NewFromFloat(m.sliders[SliderEscalation].Value).Round(4),
	}
	m.modified = false
	return func() tea.Msg { return msg }
}

// View renders the parameters scene
func (m *ParametersModel) View() string {
	if len(m.sliders) == 0 {
		return `No proposal loaded.

Press ESC to return to home.`
	}

	containerStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(tuistyles.ColorBorder).
		Padding(1, 3).
		Width(64)

	rendered := make([]string, 0, len(m.sliders))
	for _, slider := range m.sliders {
		rendered = append(rendered, slider.Render())
	}

	parts := []string{
		tuistyles.TitleStyle.Render("Edit Parameters"),
		"",
		containerStyle.Render(strings.Join(rendered, "\n\n")),
	}
	if m.modified {
		parts = append(parts, "", lipgloss.NewStyle().
			Foreground(tuistyles.ColorInfo).
			Bold(true).
			Render("⚠ Modified - press Enter to recalculate"))
	}
	parts = append(parts, "", helpLine("↑/↓ navigate • ←/→ adjust • Enter recalculate • x reset proposal • ESC back"))

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}
