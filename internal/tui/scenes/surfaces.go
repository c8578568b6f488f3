package scenes

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/solarinrs/solaroi/internal/calculation"
	"github.com/solarinrs/solaroi/internal/domain"
	"github.com/solarinrs/solaroi/internal/tui/tuimsg"
	"github.com/solarinrs/solaroi/internal/tui/tuistyles"
)

// OverrideSurface is the surface index used when the proposal fixes a total panel count
const OverrideSurface = -1

// SurfacesModel lets the user move panels between roof surfaces
type SurfacesModel struct {
	proposal      *domain.Proposal
	selectedIndex int
	width         int
	height        int
}

// NewSurfacesModel creates a new roof surfaces scene model
func NewSurfacesModel() *SurfacesModel {
	return &SurfacesModel{}
}

// SetProposal updates the proposal shown
func (m *SurfacesModel) SetProposal(p *domain.Proposal) {
	m.proposal = p
	if m.selectedIndex >= m.rowCount() {
		m.selectedIndex = 0
	}
}

// SetSize updates the scene dimensions
func (m *SurfacesModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Selected returns the selected row index
func (m *SurfacesModel) Selected() int {
	return m.selectedIndex
}

func (m *SurfacesModel) overridden() bool {
	return m.proposal != nil && m.proposal.System.PanelCount > 0
}

func (m *SurfacesModel) rowCount() int {
	switch {
	case m.proposal == nil:
		return 0
	case m.overridden():
		return 1
	}
	return len(m.proposal.Surfaces)
}

// Update handles messages for the surfaces scene
func (m *SurfacesModel) Update(msg tea.Msg) (*SurfacesModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	}
	return m, nil
}

func (m *SurfacesModel) handleKeyPress(msg tea.KeyMsg) (*SurfacesModel, tea.Cmd) {
	if m.rowCount() == 0 {
		return m, nil
	}

	switch {
	case key.Matches(msg, key.NewBinding(key.WithKeys("up", "k"))):
		if m.selectedIndex > 0 {
			m.selectedIndex--
		}
	case key.Matches(msg, key.NewBinding(key.WithKeys("down", "j"))):
		if m.selectedIndex < m.rowCount()-1 {
			m.selectedIndex++
		}
	case key.Matches(msg, key.NewBinding(key.WithKeys("g"))):
		m.selectedIndex = 0
	case key.Matches(msg, key.NewBinding(key.WithKeys("G"))):
		m.selectedIndex = m.rowCount() - 1
	case key.Matches(msg, key.NewBinding(key.WithKeys("right", "l", "+"))):
		return m, m.adjust(1)
	case key.Matches(msg, key.NewBinding(key.WithKeys("left", "-"))):
		return m, m.adjust(-1)
	}
	return m, nil
}

// adjust returns a command changing the selected row by delta panels,
// or nil when the change would leave the roof limits or the system empty
func (m *SurfacesModel) adjust(delta int) tea.Cmd {
	p := m.proposal
	if m.overridden() {
		n := p.System.PanelCount + delta
		if n < 1 {
			return nil
		}
		return panelsChanged(OverrideSurface, n)
	}

	s := p.Surfaces[m.selectedIndex]
	n := s.AssignedPanels + delta
	if n < 0 || (s.MaxPanels > 0 && n > s.MaxPanels) || p.TotalPanels()+delta < 1 {
		return nil
	}
	return panelsChanged(m.selectedIndex, n)
}

func panelsChanged(surface, panels int) tea.Cmd {
	return func() tea.Msg {
		return tuimsg.SurfacePanelsChangedMsg{Surface: surface, Panels: panels}
	}
}

// View renders the surfaces scene
func (m *SurfacesModel) View() string {
	if m.rowCount() == 0 {
		return `No roof surfaces defined.

Add surfaces to the proposal file or set system.panel_count.

Press ESC to return to home.`
	}

	var left string
	var right string
	if m.overridden() {
		left = m.renderOverride()
		right = m.renderTotals()
	} else {
		left = m.renderSurfaceList()
		right = m.renderSurfaceDetails(m.proposal.Surfaces[m.selectedIndex])
	}

	content := lipgloss.JoinHorizontal(lipgloss.Top, left, "  ", right)
	return content + "\n\n" + helpLine("↑/k up • ↓/j down • ←/- remove panel • →/+ add panel • g top • G bottom • ESC back")
}

func (m *SurfacesModel) renderSurfaceList() string {
	listStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(tuistyles.ColorBorder).
		Padding(1, 2).
		Width(44)

	var rows []string
	for i, s := range m.proposal.Surfaces {
		prefix := "  "
		style := tuistyles.UnselectedItemStyle
		if i == m.selectedIndex {
			prefix = "▸ "
			style = tuistyles.SelectedItemStyle
		}
		limit := "∞"
		if s.MaxPanels > 0 {
			limit = fmt.Sprintf("%d", s.MaxPanels)
		}
		rows = append(rows, style.Render(fmt.Sprintf("%s%-18s %3d / %s", prefix, truncate(s.Name, 18), s.AssignedPanels, limit)))
	}

	title := tuistyles.TitleStyle.Render("Roof surfaces")
	total := helpLine(fmt.Sprintf("Total: %d panels", m.proposal.TotalPanels()))
	return listStyle.Render(title + "\n\n" + strings.Join(rows, "\n") + "\n\n" + total)
}

func (m *SurfacesModel) renderSurfaceDetails(s domain.RoofSurface) string {
	detailStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(tuistyles.ColorPrimary).
		Padding(1, 2).
		Width(44)

	orientation := string(s.Orientation)
	if orientation == "" {
		orientation = string(domain.OrientationSouth)
	}

	var content strings.Builder
	content.WriteString(tuistyles.TitleStyle.Render(s.Name))
	content.WriteString("\n\n")
	writeField(&content, "Orientation", orientation)
	writeField(&content, "Slope", fmt.Sprintf("%.0f°", s.Slope))
	writeField(&content, "Shading", fmt.Sprintf("%.0f%%", s.Shading*100))
	writeField(&content, "Panels", fmt.Sprintf("%d", s.AssignedPanels))
	writeField(&content, "Capacity", fmt.Sprintf("%.2f kWp", calculation.CapacityKw(s.AssignedPanels, m.proposal.System.PanelWattage)))

	return detailStyle.Render(strings.TrimRight(content.String(), "\n"))
}

func (m *SurfacesModel) renderOverride() string {
	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(tuistyles.ColorPrimary).
		Padding(1, 2).
		Width(44)

	var content strings.Builder
	content.WriteString(tuistyles.TitleStyle.Render("Panel count"))
	content.WriteString("\n\n")
	content.WriteString(tuistyles.SelectedItemStyle.Render(fmt.Sprintf("▸ %d panels", m.proposal.System.PanelCount)))
	content.WriteString("\n\n")
	content.WriteString(tuistyles.SubtitleStyle.Render("The proposal fixes the panel count; surface assignments are ignored."))
	return style.Render(content.String())
}

func (m *SurfacesModel) renderTotals() string {
	p := m.proposal
	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(tuistyles.ColorBorder).
		Padding(1, 2).
		Width(44)

	var content strings.Builder
	writeField(&content, "Panel power", fmt.Sprintf("%.0f W", p.System.PanelWattage))
	writeField(&content, "Capacity", fmt.Sprintf("%.2f kWp", calculation.CapacityKw(p.TotalPanels(), p.System.PanelWattage)))
	return style.Render(strings.TrimRight(content.String(), "\n"))
}

func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen-1]) + "…"
}
