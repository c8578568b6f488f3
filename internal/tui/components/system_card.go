package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/solarinrs/solaroi/internal/compare"
	"github.com/solarinrs/solaroi/internal/tui/tuistyles"
)

// SystemCard summarizes one compared system size
type SystemCard struct {
	Result     compare.ComparisonResult
	IsBase     bool
	IsSelected bool
	Width      int
}

// NewSystemCard creates a card for a comparison row
func NewSystemCard(result compare.ComparisonResult, isBase bool) *SystemCard {
	return &SystemCard{
		Result: result,
		IsBase: isBase,
		Width:  34,
	}
}

// SetSelected marks the card as selected
func (s *SystemCard) SetSelected(selected bool) *SystemCard {
	s.IsSelected = selected
	return s
}

// WithWidth sets the card width
func (s *SystemCard) WithWidth(width int) *SystemCard {
	s.Width = width
	return s
}

// Highlights lists the key metrics shown on the card
func (s *SystemCard) Highlights() []string {
	r := s.Result
	out := []string{
		fmt.Sprintf("Cost: %s", tuistyles.FormatCurrency(r.SystemCost.InexactFloat64())),
		fmt.Sprintf("Savings: %s/yr", tuistyles.FormatCurrency(r.AnnualSavings.InexactFloat64())),
		fmt.Sprintf("Break-even: %s", r.BreakEvenText),
		fmt.Sprintf("Coverage: %.0f%%", r.SolarCoverage),
	}
	if !r.InRecommendedRange {
		out = append(out, "outside recommended range")
	}
	return out
}

// Render returns the styled card
func (s *SystemCard) Render() string {
	var content strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(tuistyles.ColorPrimary)
	title := fmt.Sprintf("%s (%.2f kWp)", s.Result.ScenarioName, s.Result.CapacityKw)
	content.WriteString(titleStyle.Render(title))
	content.WriteString("\n")

	if s.IsBase {
		content.WriteString(tuistyles.SubtitleStyle.Render("→ proposed system"))
		content.WriteString("\n")
	}

	content.WriteString("\n")
	highlightStyle := lipgloss.NewStyle().Foreground(tuistyles.ColorMuted)
	for _, h := range s.Highlights() {
		content.WriteString(highlightStyle.Render("• " + h))
		content.WriteString("\n")
	}

	if !s.IsBase {
		diff := s.Result.SavingsDiffFromBase.InexactFloat64()
		positive := diff >= 0
		sign := ""
		if diff > 0 {
			sign = "+"
		}
		content.WriteString(tuistyles.MetricTrendStyle(positive).Render(
			fmt.Sprintf("%s %s%s lifetime", tuistyles.TrendIndicator(positive), sign, tuistyles.FormatCurrency(diff))))
	}

	border := tuistyles.ColorBorder
	if s.IsSelected {
		border = tuistyles.ColorPrimary
	}
	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(0, 1).
		Width(s.Width)

	return cardStyle.Render(strings.TrimRight(content.String(), "\n"))
}

// RenderCompact returns a single-line version for lists
func (s *SystemCard) RenderCompact() string {
	nameStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(tuistyles.ColorPrimary)
	muted := lipgloss.NewStyle().Foreground(tuistyles.ColorMuted)

	return nameStyle.Render(s.Result.ScenarioName) + " " +
		muted.Render(fmt.Sprintf("• %s • %s", s.Result.BreakEvenText, tuistyles.FormatCurrency(s.Result.LifetimeSavings.InexactFloat64())))
}

// SystemCardRow lays cards out side by side, wrapping after columns cards
func SystemCardRow(cards []*SystemCard, columns int) string {
	if len(cards) == 0 {
		return tuistyles.InfoStyle.Render("No systems compared yet")
	}
	if columns < 1 {
		columns = 1
	}

	var rows []string
	for start := 0; start < len(cards); start += columns {
		end := min(start+columns, len(cards))
		row := make([]string, 0, end-start)
		for _, c := range cards[start:end] {
			row = append(row, c.Render())
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}
