package breakeven

import (
	"github.com/shopspring/decimal"
	"github.com/solarinrs/solaroi/internal/domain"
)

// OptimizationTarget defines what parameter to optimize
type OptimizationTarget string

const (
	OptimizeSystemCost OptimizationTarget = "system_cost"
	OptimizePanelCount OptimizationTarget = "panel_count"
	OptimizeAll        OptimizationTarget = "all"
)

// OptimizationGoal defines what outcome to achieve
type OptimizationGoal string

const (
	GoalTargetPayback   OptimizationGoal = "target_payback"   // Break even within TargetMonths
	GoalFastestPayback  OptimizationGoal = "fastest_payback"  // Earliest break-even month
	GoalMaximizeSavings OptimizationGoal = "maximize_savings" // Largest savings over the horizon
)

// Constraints define bounds for optimization parameters
type Constraints struct {
	// Panel count constraints
	MinPanels *int `json:"min_panels,omitempty"`
	MaxPanels *int `json:"max_panels,omitempty"`

	// System cost constraints in RSD
	MinSystemCost *decimal.Decimal `json:"min_system_cost,omitempty"`
	MaxSystemCost *decimal.Decimal `json:"max_system_cost,omitempty"`

	// Price of one installed panel; derived from the proposal when nil
	CostPerPanel *decimal.Decimal `json:"cost_per_panel,omitempty"`

	// Payback target for target_payback goal
	TargetMonths *int `json:"target_months,omitempty"`
}

// DefaultConstraints returns sensible default constraints
func DefaultConstraints() Constraints {
	minPanels := 1
	maxPanels := 40

	return Constraints{
		MinPanels: &minPanels,
		MaxPanels: &maxPanels,
	}
}

// OptimizationRequest defines the parameters for an optimization run
type OptimizationRequest struct {
	Proposal      *domain.Proposal `json:"-"`
	Usage         domain.Monthly   `json:"-"`
	BasePerKwp    domain.Monthly   `json:"-"`
	Target        OptimizationTarget
	Goal          OptimizationGoal
	Constraints   Constraints
	MaxIterations int             // Maximum solver iterations
	Tolerance     decimal.Decimal // Convergence tolerance for binary search, RSD
}

// OptimizationResult contains the results of an optimization run
type OptimizationResult struct {
	// Optimization metadata
	Request         OptimizationRequest
	Success         bool
	Iterations      int
	ConvergenceInfo string

	// Optimized parameters
	OptimalSystemCost *decimal.Decimal `json:"optimal_system_cost,omitempty"`
	OptimalPanels     *int             `json:"optimal_panels,omitempty"`

	// Results at optimal parameters
	Result           *domain.SimulationResult `json:"-"`
	BreakEvenReached bool                     `json:"break_even_reached"`
	BreakEvenMonth   int                      `json:"break_even_month"`
	BreakEvenText    string                   `json:"break_even_text"`
	AnnualSavings    decimal.Decimal          `json:"annual_savings"`
	LifetimeSavings  decimal.Decimal          `json:"lifetime_savings"`

	// Comparison to the proposed system
	BaseResult            *domain.SimulationResult `json:"-"`
	SavingsDiffFromBase   decimal.Decimal          `json:"savings_diff_from_base"`
	BreakEvenDiffFromBase int                      `json:"break_even_diff_from_base"`
}

// MultiDimensionalResult contains results when optimizing multiple parameters
type MultiDimensionalResult struct {
	Results         []OptimizationResult
	BestByPayback   *OptimizationResult
	BestBySavings   *OptimizationResult
	Recommendations []string
}

// SolverOptions configures the solver algorithm
type SolverOptions struct {
	Tolerance     decimal.Decimal // Convergence tolerance
	MaxIterations int             // Maximum iterations
}

// DefaultSolverOptions returns default solver configuration
func DefaultSolverOptions() SolverOptions {
	return SolverOptions{
		Tolerance:     decimal.NewFromInt(1000), // 1000 RSD
		MaxIterations: 60,
	}
}

// Validate checks if constraints are internally consistent
func (c *Constraints) Validate() error {
	if c.MinPanels != nil && *c.MinPanels < 1 {
		return &BreakEvenError{
			Operation: "validate_constraints",
			Message:   "min_panels must be at least 1",
		}
	}

	if c.MinPanels != nil && c.MaxPanels != nil && *c.MinPanels > *c.MaxPanels {
		return &BreakEvenError{
			Operation: "validate_constraints",
			Message:   "min_panels cannot be greater than max_panels",
		}
	}

	if c.MinSystemCost != nil && c.MinSystemCost.IsNegative() {
		return &BreakEvenError{
			Operation: "validate_constraints",
			Message:   "min_system_cost cannot be negative",
		}
	}

	if c.MinSystemCost != nil && c.MaxSystemCost != nil && c.MinSystemCost.GreaterThan(*c.MaxSystemCost) {
		return &BreakEvenError{
			Operation: "validate_constraints",
			Message:   "min_system_cost cannot be greater than max_system_cost",
		}
	}

	if c.CostPerPanel != nil && !c.CostPerPanel.IsPositive() {
		return &BreakEvenError{
			Operation: "validate_constraints",
			Message:   "cost_per_panel must be positive",
		}
	}

	if c.TargetMonths != nil && (*c.TargetMonths < 1 || *c.TargetMonths > domain.HorizonMonths) {
		return &BreakEvenError{
			Operation: "validate_constraints",
			Message:   "target_months must be between 1 and 300",
		}
	}

	return nil
}

// BreakEvenError represents errors from break-even solver
type BreakEvenError struct {
	Operation string
	Message   string
	Cause     error
}

func (e *BreakEvenError) Error() string {
	if e.Cause != nil {
		return e.Operation + ": " + e.Message + ": " + e.Cause.Error()
	}
	return e.Operation + ": " + e.Message
}

func (e *BreakEvenError) Unwrap() error {
	return e.Cause
}
