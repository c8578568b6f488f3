package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/solarinrs/solaroi/internal/tui/scenes"
)

// Update handles all messages and updates the model state
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.homeModel.SetSize(msg.Width, msg.Height)
		m.surfacesModel.SetSize(msg.Width, msg.Height)
		m.parametersModel.SetSize(msg.Width, msg.Height)
		m.resultsModel.SetSize(msg.Width, msg.Height)
		m.compareModel.SetSize(msg.Width, msg.Height)
		m.optimizeModel.SetSize(msg.Width, msg.Height)
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case NavigateMsg:
		m.previousScene = m.currentScene
		m.currentScene = msg.Scene
		return m, nil

	case QuitMsg:
		return m, tea.Quit

	case ErrorMsg:
		m.err = msg.Err
		m.loading = false
		return m, nil

	case ProposalLoadedMsg:
		m.original = msg.Proposal
		m.proposal = cloneProposal(msg.Proposal)
		m.usage = msg.Usage
		m.basePerKwp = msg.BasePerKwp
		m.escalation = m.engine.Tariff.EscalationRate
		m.baseline = nil
		m.loadingMessage = "Calculating..."
		return m.recalculate()

	case SurfacePanelsChangedMsg:
		if m.proposal == nil || !setPanels(m.proposal, msg.Surface, msg.Panels) {
			return m, nil
		}
		return m.recalculate()

	case ParametersChangedMsg:
		if m.proposal == nil {
			return m, nil
		}
		m.proposal.System.Cost = msg.SystemCost
		m.proposal.Utility.TariffFraction = msg.TariffFraction
		m.escalation = msg.EscalationRate
		return m.recalculate()

	case ResetMsg:
		if m.original == nil {
			return m, nil
		}
		m.proposal = cloneProposal(m.original)
		m.escalation = m.engine.Tariff.EscalationRate
		return m.recalculate()

	case CalculationCompleteMsg:
		m.loading = false
		if msg.Err != nil {
			m.err = msg.Err
			return m, nil
		}
		m.result = msg.Result
		if m.baseline == nil {
			m.baseline = msg.Result
		}
		m.homeModel.SetResult(m.result)
		m.resultsModel.SetResults(m.result, m.baseline)
		return m, nil

	case ComparisonStartedMsg:
		if m.proposal == nil {
			return m, nil
		}
		m.compareModel.SetComparing(true)
		return m, compareCmd(m.runEngine(), cloneProposal(m.proposal), m.usage, m.basePerKwp, msg.Panels)

	case ComparisonCompleteMsg:
		if msg.Err != nil {
			m.compareModel.SetComparing(false)
			m.err = msg.Err
			return m, nil
		}
		m.compareModel.SetResults(msg.Comparison)
		return m, nil

	case OptimizationStartedMsg:
		if m.proposal == nil {
			return m, nil
		}
		return m, optimizeCmd(m.runEngine(), cloneProposal(m.proposal), m.usage, m.basePerKwp, msg.Goal, msg.TargetMonths)

	case OptimizationCompleteMsg:
		if msg.Err != nil {
			m.optimizeModel.SetFailed()
			m.err = msg.Err
			return m, nil
		}
		m.optimizeModel.SetResult(msg.Result)
		return m, nil
	}

	return m.updateCurrentScene(msg)
}

// handleKeyPress processes keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	// any key dismisses an error; without a proposal there is nothing left to show
	if m.err != nil {
		if m.proposal == nil {
			return m, tea.Quit
		}
		m.err = nil
		return m, nil
	}

	// the target input owns the keyboard while it is focused
	if m.currentScene == SceneOptimize && m.optimizeModel.Mode() == scenes.ModeSetTarget {
		return m.updateCurrentScene(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		return m.navigate(SceneHelp)
	case key.Matches(msg, m.keys.Back):
		if m.currentScene == SceneHome {
			return m, nil
		}
		if m.previousScene != m.currentScene {
			return m.navigate(m.previousScene)
		}
		return m.navigate(SceneHome)
	case key.Matches(msg, m.keys.Home):
		return m.navigate(SceneHome)
	case key.Matches(msg, m.keys.Surfaces):
		return m.navigate(SceneSurfaces)
	case key.Matches(msg, m.keys.Parameters):
		return m.navigate(SceneParameters)
	case key.Matches(msg, m.keys.Compare):
		return m.navigate(SceneCompare)
	case key.Matches(msg, m.keys.Optimize):
		return m.navigate(SceneOptimize)
	case key.Matches(msg, m.keys.Results):
		return m.navigate(SceneResults)
	}

	return m.updateCurrentScene(msg)
}

// navigate returns a command switching scenes, or nothing when already there
func (m Model) navigate(scene Scene) (tea.Model, tea.Cmd) {
	if m.currentScene == scene {
		return m, nil
	}
	return m, func() tea.Msg { return NavigateMsg{Scene: scene} }
}

// updateCurrentScene delegates updates to the current scene's model
func (m Model) updateCurrentScene(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.currentScene {
	case SceneHome:
		m.homeModel, cmd = m.homeModel.Update(msg)
	case SceneSurfaces:
		m.surfacesModel, cmd = m.surfacesModel.Update(msg)
	case SceneParameters:
		m.parametersModel, cmd = m.parametersModel.Update(msg)
	case SceneCompare:
		m.compareModel, cmd = m.compareModel.Update(msg)
	case SceneOptimize:
		m.optimizeModel, cmd = m.optimizeModel.Update(msg)
	case SceneResults:
		m.resultsModel, cmd = m.resultsModel.Update(msg)
	}
	return m, cmd
}
