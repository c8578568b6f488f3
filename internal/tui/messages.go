package tui

import (
	"github.com/solarinrs/solaroi/internal/tui/tuimsg"
)

// Scene represents different screens in the TUI
type Scene int

const (
	SceneHome Scene = iota
	SceneSurfaces
	SceneParameters
	SceneCompare
	SceneOptimize
	SceneResults
	SceneHelp
)

// Message types for the Bubble Tea update cycle

// NavigateMsg switches to a different scene
type NavigateMsg struct {
	Scene Scene
}

// QuitMsg signals the application should exit
type QuitMsg struct{}

// Scene models emit these; the aliases keep the root switch readable
type (
	ErrorMsg                = tuimsg.ErrorMsg
	ProposalLoadedMsg       = tuimsg.ProposalLoadedMsg
	SurfacePanelsChangedMsg = tuimsg.SurfacePanelsChangedMsg
	ParametersChangedMsg    = tuimsg.ParametersChangedMsg
	ResetMsg                = tuimsg.ResetMsg
	CalculationStartedMsg   = tuimsg.CalculationStartedMsg
	CalculationCompleteMsg  = tuimsg.CalculationCompleteMsg
	ComparisonStartedMsg    = tuimsg.ComparisonStartedMsg
	ComparisonCompleteMsg   = tuimsg.ComparisonCompleteMsg
	OptimizationStartedMsg  = tuimsg.OptimizationStartedMsg
	OptimizationCompleteMsg = tuimsg.OptimizationCompleteMsg
)

// String returns a human-readable name for a scene
func (s Scene) String() string {
	switch s {
	case SceneHome:
		return "Home"
	case SceneSurfaces:
		return "Roof"
	case SceneParameters:
		return "Parameters"
	case SceneCompare:
		return "Compare"
	case SceneOptimize:
		return "Optimize"
	case SceneResults:
		return "Results"
	case SceneHelp:
		return "Help"
	default:
		return "Unknown"
	}
}
