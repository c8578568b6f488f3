package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// View renders the current state of the application
func (m Model) View() string {
	if m.err != nil {
		return m.renderError()
	}
	if m.loading {
		return m.renderLoading()
	}

	var content string
	switch m.currentScene {
	case SceneHome:
		content = m.homeModel.View()
	case SceneSurfaces:
		content = m.surfacesModel.View()
	case SceneParameters:
		content = m.parametersModel.View()
	case SceneCompare:
		content = m.compareModel.View()
	case SceneOptimize:
		content = m.optimizeModel.View()
	case SceneResults:
		content = m.resultsModel.View()
	case SceneHelp:
		content = m.renderHelp()
	default:
		content = "Unknown scene"
	}

	return m.renderApp(content)
}

// renderApp wraps content with title bar, status bar, and main container
func (m Model) renderApp(content string) string {
	titleBar := m.renderTitleBar()
	statusBar := m.renderStatusBar()

	// title (2) + status (1) + padding (1)
	contentHeight := max(m.height-4, 1)
	contentContainer := lipgloss.NewStyle().
		Height(contentHeight).
		Render(content)

	return lipgloss.JoinVertical(
		lipgloss.Left,
		titleBar,
		contentContainer,
		statusBar,
	)
}

// renderTitleBar renders the application title and breadcrumb
func (m Model) renderTitleBar() string {
	title := TitleStyle.Render("Solar ROI")

	breadcrumb := m.currentScene.String()
	if m.proposal != nil && m.proposal.Customer.Name != "" {
		breadcrumb = fmt.Sprintf("%s / %s", m.proposal.Customer.Name, breadcrumb)
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		title,
		SubtitleStyle.Render(breadcrumb),
	)
}

// renderStatusBar renders the bottom status bar with keyboard shortcuts
func (m Model) renderStatusBar() string {
	statusText := m.help.ShortHelpView(m.keys.ShortHelp())

	if m.result != nil {
		summary := SubtitleStyle.Render(m.result.Summary())
		spacer := strings.Repeat(" ", max(0, m.width-lipgloss.Width(statusText)-lipgloss.Width(summary)-4))
		statusText = statusText + spacer + summary
	}

	return StatusBarStyle.Width(m.width).Render(statusText)
}

// renderLoading renders the spinner and current task
func (m Model) renderLoading() string {
	message := m.loadingMessage
	if message == "" {
		message = "Loading..."
	}
	return m.renderApp(BorderStyle.Render(fmt.Sprintf("%s %s", m.spinner.View(), message)))
}

// renderError renders an error message
func (m Model) renderError() string {
	hint := "Press any key to continue..."
	if m.proposal == nil {
		hint = "Press any key to exit..."
	}
	return m.renderApp(ErrorStyle.Render(fmt.Sprintf("Error: %s\n\n%s", m.err.Error(), hint)))
}

// renderHelp renders the help screen
func (m Model) renderHelp() string {
	var b strings.Builder
	b.WriteString(TitleStyle.Render("Solar ROI - Sizing Explorer"))
	b.WriteString("\n\n")
	b.WriteString(m.help.FullHelpView(m.keys.FullHelp()))
	b.WriteString("\n\n")

	sections := []struct {
		title string
		lines []string
	}{
		{"ROOF", []string{"↑/↓ select surface", "←/→ remove or add a panel; the price follows the cost per panel"}},
		{"PARAMETERS", []string{"↑/↓ select slider", "←/→ adjust", "Enter recalculate", "x restore the proposal as loaded"}},
		{"RESULTS", []string{"t switch between the savings chart and first-year bills"}},
		{"COMPARE", []string{"+/- change the panel step", "Enter run the comparison", "←/→ select a system"}},
		{"OPTIMIZE", []string{"Enter choose a goal", "type the payback target in years"}},
	}
	for _, s := range sections {
		b.WriteString(HelpKeyStyle.Render(s.title))
		b.WriteString("\n")
		for _, l := range s.lines {
			b.WriteString(HelpDescStyle.Render("  " + l))
			b.WriteString("\n")
		}
	}

	return BorderStyle.Render(strings.TrimRight(b.String(), "\n"))
}
