package scenes

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/solarinrs/solaroi/internal/breakeven"
	"github.com/solarinrs/solaroi/internal/domain"
	"github.com/solarinrs/solaroi/internal/output"
	"github.com/solarinrs/solaroi/internal/tui/tuimsg"
	"github.com/solarinrs/solaroi/internal/tui/tuistyles"
)

// OptimizeMode represents the step of the solver dialog
type OptimizeMode int

const (
	ModeSelectGoal OptimizeMode = iota
	ModeSetTarget
	ModeShowResults
)

var optimizeGoals = []struct {
	goal breakeven.OptimizationGoal
	desc string
}{
	{breakeven.GoalTargetPayback, "Highest price and best size that still break even within a target"},
	{breakeven.GoalFastestPayback, "Panel count with the earliest break-even"},
	{breakeven.GoalMaximizeSavings, "Panel count with the largest lifetime savings"},
}

// OptimizeModel represents the break-even solver scene
type OptimizeModel struct {
	selectedGoal int
	mode         OptimizeMode
	targetInput  textinput.Model
	optimizing   bool
	result       *breakeven.MultiDimensionalResult
	width        int
	height       int
}

// NewOptimizeModel creates a new optimize scene model
func NewOptimizeModel() *OptimizeModel {
	ti := textinput.New()
	ti.Placeholder = "e.g. 8"
	ti.CharLimit = 2
	ti.Width = 6

	return &OptimizeModel{
		mode:        ModeSelectGoal,
		targetInput: ti,
	}
}

// SetSize updates the model dimensions
func (m *OptimizeModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Mode returns the current dialog step
func (m *OptimizeModel) Mode() OptimizeMode {
	return m.mode
}

// SelectedGoal returns the highlighted optimization goal
func (m *OptimizeModel) SelectedGoal() breakeven.OptimizationGoal {
	return optimizeGoals[m.selectedGoal].goal
}

// SetResult shows a finished optimization
func (m *OptimizeModel) SetResult(result *breakeven.MultiDimensionalResult) {
	m.result = result
	m.optimizing = false
	m.mode = ModeShowResults
}

// SetFailed leaves the running state after a solver error
func (m *OptimizeModel) SetFailed() {
	m.optimizing = false
	m.mode = ModeSelectGoal
}

// Update handles messages for the optimize scene
func (m *OptimizeModel) Update(msg tea.Msg) (*OptimizeModel, tea.Cmd) {
	if m.optimizing {
		return m, nil
	}
	switch m.mode {
	case ModeSelectGoal:
		return m.updateGoalSelection(msg)
	case ModeSetTarget:
		return m.updateTargetInput(msg)
	case ModeShowResults:
		return m.updateResults(msg)
	}
	return m, nil
}

func (m *OptimizeModel) updateGoalSelection(msg tea.Msg) (*OptimizeModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("up", "k"))):
		if m.selectedGoal > 0 {
			m.selectedGoal--
		}
	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("down", "j"))):
		if m.selectedGoal < len(optimizeGoals)-1 {
			m.selectedGoal++
		}
	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("enter"))):
		if m.SelectedGoal() == breakeven.GoalTargetPayback {
			m.mode = ModeSetTarget
			m.targetInput.Focus()
			return m, textinput.Blink
		}
		return m, m.start(0)
	}
	return m, nil
}

func (m *OptimizeModel) updateTargetInput(msg tea.Msg) (*OptimizeModel, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.Type {
		case tea.KeyEnter:
			years, err := strconv.Atoi(strings.TrimSpace(m.targetInput.Value()))
			if err != nil || years < 1 || years > domain.HorizonYears {
				return m, nil
			}
			m.targetInput.Blur()
			return m, m.start(years * domain.MonthsPerYear)

		case tea.KeyEsc:
			m.mode = ModeSelectGoal
			m.targetInput.Blur()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.targetInput, cmd = m.targetInput.Update(msg)
	return m, cmd
}

func (m *OptimizeModel) updateResults(msg tea.Msg) (*OptimizeModel, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && key.Matches(keyMsg, key.NewBinding(key.WithKeys("n"))) {
		m.mode = ModeSelectGoal
		m.result = nil
		m.targetInput.SetValue("")
	}
	return m, nil
}

// start returns a command asking the parent to run the solver
func (m *OptimizeModel) start(targetMonths int) tea.Cmd {
	m.optimizing = true
	msg := tuimsg.OptimizationStartedMsg{Goal: m.SelectedGoal(), TargetMonths: targetMonths}
	return func() tea.Msg { return msg }
}

// View renders the optimize scene
func (m *OptimizeModel) View() string {
	if m.optimizing {
		return tuistyles.BorderStyle.Render(tuistyles.TitleStyle.Render("Solving...") + "\n\n" +
			helpLine("Searching panel counts and system prices"))
	}

	switch m.mode {
	case ModeSetTarget:
		return m.renderTargetInput()
	case ModeShowResults:
		return m.renderResults()
	}
	return m.renderGoalSelection()
}

func (m *OptimizeModel) renderGoalSelection() string {
	var content strings.Builder
	content.WriteString(tuistyles.TitleStyle.Render("Break-even Solver"))
	content.WriteString("\n\n")

	cursorStyle := lipgloss.NewStyle().Foreground(tuistyles.ColorPrimary)
	muted := lipgloss.NewStyle().Foreground(tuistyles.ColorMuted)
	for i, g := range optimizeGoals {
		if i == m.selectedGoal {
			content.WriteString(cursorStyle.Render("❯ "))
			content.WriteString(tuistyles.SelectedItemStyle.Render(string(g.goal)))
		} else {
			content.WriteString("  ")
			content.WriteString(string(g.goal))
		}
		content.WriteString("\n    ")
		content.WriteString(muted.Render(g.desc))
		content.WriteString("\n")
	}

	content.WriteString("\n")
	content.WriteString(helpLine("↑/↓ navigate • Enter select"))
	return tuistyles.BorderStyle.Render(content.String())
}

func (m *OptimizeModel) renderTargetInput() string {
	var content strings.Builder
	content.WriteString(tuistyles.TitleStyle.Render("Target Payback"))
	content.WriteString("\n\n")
	content.WriteString(helpLine(fmt.Sprintf("Break even within how many years (1-%d)?", domain.HorizonYears)))
	content.WriteString("\n\n")

	inputStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(tuistyles.ColorPrimary).
		Padding(0, 1)
	content.WriteString(inputStyle.Render(m.targetInput.View() + " years"))
	content.WriteString("\n\n")
	content.WriteString(helpLine("Enter to solve • ESC to go back"))

	return tuistyles.BorderStyle.Render(content.String())
}

func (m *OptimizeModel) renderResults() string {
	var content strings.Builder
	content.WriteString(tuistyles.TitleStyle.Render("Solver Results"))
	content.WriteString("\n\n")

	if m.result == nil || len(m.result.Results) == 0 {
		content.WriteString(helpLine("No results available"))
		return tuistyles.BorderStyle.Render(content.String())
	}

	labelStyle := lipgloss.NewStyle().Foreground(tuistyles.ColorMuted)
	for _, r := range m.result.Results {
		status := tuistyles.MetricPositiveStyle.Render("✓")
		if !r.Success {
			status = tuistyles.MetricNegativeStyle.Render("✗")
		}
		content.WriteString(fmt.Sprintf("%s %s\n", status, sectionTitle(fmt.Sprintf("%s / %s", r.Request.Target, r.Request.Goal))))
		content.WriteString(labelStyle.Render("    " + solution(&r)))
		content.WriteString("\n")
		if r.BreakEvenReached {
			content.WriteString(labelStyle.Render(fmt.Sprintf("    break-even %s, lifetime savings %s",
				r.BreakEvenText, output.FormatRSD(r.LifetimeSavings.InexactFloat64()))))
			content.WriteString("\n")
		}
		if r.ConvergenceInfo != "" {
			content.WriteString(tuistyles.SubtitleStyle.Render("    " + r.ConvergenceInfo))
			content.WriteString("\n")
		}
	}

	if len(m.result.Recommendations) > 0 {
		content.WriteString("\n")
		content.WriteString(sectionTitle("Recommendations"))
		for _, rec := range m.result.Recommendations {
			content.WriteString("\n  • ")
			content.WriteString(rec)
		}
		content.WriteString("\n")
	}

	content.WriteString("\n")
	content.WriteString(helpLine("n new search • ESC back"))
	return tuistyles.BorderStyle.Render(content.String())
}

// solution describes the optimized parameters of one result
func solution(r *breakeven.OptimizationResult) string {
	var parts []string
	if r.OptimalPanels != nil {
		parts = append(parts, fmt.Sprintf("%d panels", *r.OptimalPanels))
	}
	if r.OptimalSystemCost != nil {
		parts = append(parts, "price "+output.FormatRSD(r.OptimalSystemCost.InexactFloat64()))
	}
	if len(parts) == 0 {
		return "no solution"
	}
	return strings.Join(parts, ", ")
}
