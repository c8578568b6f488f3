package components

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/solarinrs/solaroi/internal/tui/tuistyles"
)

// MetricCard is a bordered box holding one headline number
type MetricCard struct {
	Label       string
	Value       string
	Trend       *Trend
	Description string
	Width       int
}

// Trend is a change relative to the proposal as loaded
type Trend struct {
	IsPositive bool
	Change     string // "+12.000 RSD", "-3 mo"
}

func NewMetricCard(label, value string) *MetricCard {
	return &MetricCard{Label: label, Value: value, Width: 28}
}

// NewAmountCard shows a dinar amount
func NewAmountCard(label string, amount float64) *MetricCard {
	return NewMetricCard(label, tuistyles.FormatCurrency(amount))
}

// WithTrend marks the card with a change; isPositive decides the color, not the sign
func (m *MetricCard) WithTrend(isPositive bool, change string) *MetricCard {
	m.Trend = &Trend{IsPositive: isPositive, Change: change}
	return m
}

// WithAmountDelta adds a dinar change; zero leaves the card without a trend.
// higherIsBetter says whether an increase favors the customer.
func (m *MetricCard) WithAmountDelta(delta float64, higherIsBetter bool) *MetricCard {
	if delta == 0 {
		return m
	}
	change := tuistyles.FormatCurrency(delta)
	if delta > 0 {
		change = "+" + change
	}
	return m.WithTrend((delta > 0) == higherIsBetter, change)
}

func (m *MetricCard) WithDescription(desc string) *MetricCard {
	m.Description = desc
	return m
}

func (m *MetricCard) WithWidth(width int) *MetricCard {
	m.Width = width
	return m
}

func (m *MetricCard) Render() string {
	lines := []string{
		tuistyles.MetricLabelStyle.Render(m.Label),
		tuistyles.MetricValueStyle.Render(m.Value),
	}
	if t := m.Trend; t != nil {
		lines = append(lines, tuistyles.MetricTrendStyle(t.IsPositive).Render(tuistyles.TrendIndicator(t.IsPositive)+" "+t.Change))
	}
	if m.Description != "" {
		lines = append(lines, tuistyles.SubtitleStyle.Render(m.Description))
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(tuistyles.ColorBorder).
		Padding(0, 1).
		Width(m.Width).
		Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

// MetricGrid lays cards out in rows of columns
func MetricGrid(cards []*MetricCard, columns int) string {
	columns = max(columns, 1)

	var rows []string
	for len(cards) > 0 {
		n := min(columns, len(cards))
		row := make([]string, n)
		for i, card := range cards[:n] {
			row[i] = card.Render()
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
		cards = cards[n:]
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}
