package tuimsg

import (
	"github.com/shopspring/decimal"
	"github.com/solarinrs/solaroi/internal/breakeven"
	"github.com/solarinrs/solaroi/internal/compare"
	"github.com/solarinrs/solaroi/internal/domain"
)

// ProposalLoadedMsg carries a parsed proposal with its resolved inputs
type ProposalLoadedMsg struct {
	Proposal   *domain.Proposal
	Usage      domain.Monthly
	BasePerKwp domain.Monthly
}

// ErrorMsg displays an error to the user
type ErrorMsg struct {
	Err error
}

// SurfacePanelsChangedMsg sets the panels assigned to one roof surface
type SurfacePanelsChangedMsg struct {
	Surface int
	Panels  int
}

// ParametersChangedMsg carries the edited economic inputs
type ParametersChangedMsg struct {
	SystemCost     float64
	TariffFraction float64
	EscalationRate decimal.Decimal
}

// ResetMsg restores the proposal as loaded
type ResetMsg struct{}

// CalculationStartedMsg signals a simulation has begun
type CalculationStartedMsg struct{}

// CalculationCompleteMsg signals a simulation has finished
type CalculationCompleteMsg struct {
	Result *domain.SimulationResult
	Err    error
}

// ComparisonStartedMsg asks for a size comparison around the current system
type ComparisonStartedMsg struct {
	Panels []int
}

// ComparisonCompleteMsg signals a size comparison has finished
type ComparisonCompleteMsg struct {
	Comparison *compare.ComparisonSet
	Err        error
}

// OptimizationStartedMsg asks the break-even solver to run
type OptimizationStartedMsg struct {
	Goal         breakeven.OptimizationGoal
	TargetMonths int
}

// OptimizationCompleteMsg signals the solver has finished
type OptimizationCompleteMsg struct {
	Result *breakeven.MultiDimensionalResult
	Err    error
}
