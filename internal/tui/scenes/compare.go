package scenes

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/solarinrs/solaroi/internal/compare"
	"github.com/solarinrs/solaroi/internal/tui/components"
	"github.com/solarinrs/solaroi/internal/tui/tuimsg"
	"github.com/solarinrs/solaroi/internal/tui/tuistyles"
)

const maxCompareStep = 5

// CompareModel represents the system size comparison scene
type CompareModel struct {
	basePanels  int
	step        int
	comparison  *compare.ComparisonSet
	cursorIndex int
	comparing   bool
	width       int
	height      int
}

// NewCompareModel creates a new compare scene model
func NewCompareModel() *CompareModel {
	return &CompareModel{step: 2}
}

// SetBasePanels sets the panel count alternatives are spread around
func (m *CompareModel) SetBasePanels(panels int) {
	if panels != m.basePanels {
		m.comparison = nil
		m.cursorIndex = 0
	}
	m.basePanels = panels
}

// SetResults stores a finished comparison
func (m *CompareModel) SetResults(comparison *compare.ComparisonSet) {
	m.comparison = comparison
	m.comparing = false
	m.cursorIndex = 0
}

// SetComparing marks a comparison as running
func (m *CompareModel) SetComparing(comparing bool) {
	m.comparing = comparing
}

// SetSize updates the model dimensions
func (m *CompareModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Candidates returns the alternative panel counts that will be compared
func (m *CompareModel) Candidates() []int {
	var out []int
	for _, d := range []int{-2, -1, 1, 2} {
		if n := m.basePanels + d*m.step; n > 0 {
			out = append(out, n)
		}
	}
	return out
}

// Update handles messages for the compare scene
func (m *CompareModel) Update(msg tea.Msg) (*CompareModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("left"))):
		if m.cursorIndex > 0 {
			m.cursorIndex--
		}
	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("right", "l"))):
		if m.comparison != nil && m.cursorIndex < len(m.comparison.All())-1 {
			m.cursorIndex++
		}
	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("+", "]"))):
		if m.step < maxCompareStep {
			m.step++
		}
	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("-", "["))):
		if m.step > 1 {
			m.step--
		}
	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("enter"))):
		if m.basePanels == 0 || m.comparing {
			return m, nil
		}
		m.comparing = true
		panels := m.Candidates()
		return m, func() tea.Msg { return tuimsg.ComparisonStartedMsg{Panels: panels} }
	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("x"))):
		m.comparison = nil
		m.cursorIndex = 0
	}
	return m, nil
}

// View renders the compare scene
func (m *CompareModel) View() string {
	switch {
	case m.comparing:
		return tuistyles.BorderStyle.Render(tuistyles.TitleStyle.Render("Comparing system sizes...") + "\n\n" +
			helpLine("Simulating every size over the full horizon"))
	case m.comparison != nil:
		return m.renderComparison()
	}
	return m.renderSelection()
}

func (m *CompareModel) renderSelection() string {
	var content strings.Builder
	content.WriteString(tuistyles.TitleStyle.Render("Compare System Sizes"))
	content.WriteString("\n\n")

	if m.basePanels == 0 {
		content.WriteString(tuistyles.ErrorStyle.Render("No proposal loaded"))
		return tuistyles.BorderStyle.Render(content.String())
	}

	writeField(&content, "Proposed", fmt.Sprintf("%d panels", m.basePanels))
	writeField(&content, "Step", fmt.Sprintf("%d panels", m.step))

	candidates := make([]string, 0, len(m.Candidates()))
	for _, n := range m.Candidates() {
		candidates = append(candidates, fmt.Sprintf("%d", n))
	}
	writeField(&content, "Alternatives", strings.Join(candidates, ", "))
	content.WriteString("\n")
	content.WriteString(tuistyles.SubtitleStyle.Render("The recommended minimum, optimal and maximum sizes are added automatically."))
	content.WriteString("\n\n")
	content.WriteString(helpLine("Enter compare • +/- change step • ESC back"))

	return tuistyles.BorderStyle.Render(content.String())
}

func (m *CompareModel) renderComparison() string {
	all := m.comparison.All()
	cards := make([]*components.SystemCard, len(all))
	for i, r := range all {
		cards[i] = components.NewSystemCard(r, i == 0).SetSelected(i == m.cursorIndex)
	}

	columns := 3
	if m.width > 0 {
		columns = max(1, min(4, m.width/36))
	}

	parts := []string{
		tuistyles.TitleStyle.Render("System Size Comparison"),
		"",
		components.SystemCardRow(cards, columns),
	}

	if m.cursorIndex < len(all) && all[m.cursorIndex].Description != "" {
		parts = append(parts, "", tuistyles.SubtitleStyle.Render(all[m.cursorIndex].Description))
	}

	if len(m.comparison.Recommendations) > 0 {
		var recs strings.Builder
		recs.WriteString(sectionTitle("Recommendations"))
		for _, r := range m.comparison.Recommendations {
			recs.WriteString("\n  • ")
			recs.WriteString(r)
		}
		parts = append(parts, "", recs.String())
	}

	parts = append(parts, "", helpLine("←/→ select • Enter compare again • x clear • ESC back"))
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}
