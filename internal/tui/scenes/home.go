package scenes

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/solarinrs/solaroi/internal/calculation"
	"github.com/solarinrs/solaroi/internal/domain"
	"github.com/solarinrs/solaroi/internal/output"
	"github.com/solarinrs/solaroi/internal/tui/tuistyles"
)

// HomeModel represents the home dashboard scene
type HomeModel struct {
	proposal *domain.Proposal
	usage    domain.Monthly
	result   *domain.SimulationResult
	width    int
	height   int
}

// NewHomeModel creates a new home scene model
func NewHomeModel() *HomeModel {
	return &HomeModel{}
}

// SetProposal updates the proposal being explored
func (m *HomeModel) SetProposal(p *domain.Proposal, usage domain.Monthly) {
	m.proposal = p
	m.usage = usage
}

// SetResult updates the latest simulation
func (m *HomeModel) SetResult(result *domain.SimulationResult) {
	m.result = result
}

// SetSize updates the model dimensions
func (m *HomeModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Update handles messages for the home scene
func (m *HomeModel) Update(msg tea.Msg) (*HomeModel, tea.Cmd) {
	// navigation is handled by the parent
	return m, nil
}

// View renders the home dashboard
func (m *HomeModel) View() string {
	if m.proposal == nil {
		return m.renderLoading()
	}

	var content strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(tuistyles.ColorPrimary).
		MarginBottom(1)
	content.WriteString(titleStyle.Render("Solar ROI - Sizing Explorer"))
	content.WriteString("\n\n")

	content.WriteString(m.renderProposalOverview())
	content.WriteString("\n")
	content.WriteString(m.renderHeadline())
	content.WriteString("\n")
	content.WriteString(m.renderQuickActions())

	return tuistyles.BorderStyle.Render(content.String())
}

func (m *HomeModel) renderLoading() string {
	var content strings.Builder

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(tuistyles.ColorPrimary)
	content.WriteString(titleStyle.Render("Solar ROI - Sizing Explorer"))
	content.WriteString("\n\n")
	content.WriteString(lipgloss.NewStyle().Foreground(tuistyles.ColorMuted).Render("Loading proposal..."))

	return tuistyles.BorderStyle.Render(content.String())
}

// renderProposalOverview shows customer, site and system
func (m *HomeModel) renderProposalOverview() string {
	p := m.proposal
	var content strings.Builder

	content.WriteString(sectionTitle("Proposal"))
	content.WriteString("\n")

	location := p.Location.City
	if location == "" {
		location = fmt.Sprintf("%.4f, %.4f", p.Location.Latitude, p.Location.Longitude)
	}
	panels := p.TotalPanels()

	writeField(&content, "Customer", p.Customer.Name)
	writeField(&content, "Location", location)
	writeField(&content, "Roof surfaces", fmt.Sprintf("%d", len(p.Surfaces)))
	writeField(&content, "System", fmt.Sprintf("%d × %.0f W = %.2f kWp",
		panels, p.System.PanelWattage, calculation.CapacityKw(panels, p.System.PanelWattage)))
	writeField(&content, "Price", output.FormatRSD(p.System.Cost))
	writeField(&content, "Annual usage", output.FormatKwh(m.usage.Total()))

	return content.String()
}

// renderHeadline shows the latest simulation in one block
func (m *HomeModel) renderHeadline() string {
	var content strings.Builder
	content.WriteString(sectionTitle("Outlook"))
	content.WriteString("\n")

	if m.result == nil {
		content.WriteString(lipgloss.NewStyle().Foreground(tuistyles.ColorMuted).Render("  Calculating..."))
		content.WriteString("\n")
		return content.String()
	}

	r := m.result
	writeField(&content, "Annual savings", output.FormatRSD(float64(r.AnnualSavings)))
	writeField(&content, "Solar coverage", output.FormatPercentage(r.SolarCoverage))
	if r.BreakEvenReached {
		writeField(&content, "Break-even", r.BreakEvenText)
	} else {
		content.WriteString(tuistyles.ErrorStyle.Render(fmt.Sprintf("  Break-even not reached within %d years", domain.HorizonYears)))
		content.WriteString("\n")
	}
	writeField(&content, "Lifetime savings", output.FormatRSD(r.LifetimeSavings))

	return content.String()
}

// renderQuickActions shows available navigation shortcuts
func (m *HomeModel) renderQuickActions() string {
	var content strings.Builder
	content.WriteString(sectionTitle("Quick Actions"))
	content.WriteString("\n")

	keyStyle := lipgloss.NewStyle().
		Foreground(tuistyles.ColorPrimary).
		Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(tuistyles.ColorForeground)

	actions := []struct {
		key  string
		desc string
	}{
		{"f", "Assign panels to roof surfaces"},
		{"p", "Edit price, tariff share and escalation"},
		{"r", "View savings and break-even"},
		{"c", "Compare system sizes"},
		{"o", "Solve for break-even targets"},
		{"?", "Show help"},
	}

	for _, action := range actions {
		content.WriteString("  ")
		content.WriteString(keyStyle.Render(action.key))
		content.WriteString(descStyle.Render("  " + action.desc))
		content.WriteString("\n")
	}

	return content.String()
}

// Helper functions shared by the scenes

func sectionTitle(title string) string {
	return lipgloss.NewStyle().
		Bold(true).
		Foreground(tuistyles.ColorSecondary).
		Render(title)
}

func writeField(b *strings.Builder, label, value string) {
	b.WriteString(lipgloss.NewStyle().Foreground(tuistyles.ColorMuted).Render("  " + label + ": "))
	b.WriteString(lipgloss.NewStyle().Foreground(tuistyles.ColorForeground).Render(value))
	b.WriteString("\n")
}

func helpLine(text string) string {
	return lipgloss.NewStyle().Foreground(tuistyles.ColorMuted).Render(text)
}
