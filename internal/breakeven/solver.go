package breakeven

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/solarinrs/solaroi/internal/calculation"
	"github.com/solarinrs/solaroi/internal/domain"
)

const defaultMaxPanels = 40

// Solver searches system cost and size for break-even goals
type Solver struct {
	CalcEngine *calculation.CalculationEngine
	Options    SolverOptions
}

// NewSolver creates a new break-even solver
func NewSolver(calcEngine *calculation.CalculationEngine, options SolverOptions) *Solver {
	return &Solver{
		CalcEngine: calcEngine,
		Options:    options,
	}
}

// NewDefaultSolver creates a solver with default options
func NewDefaultSolver(calcEngine *calculation.CalculationEngine) *Solver {
	return NewSolver(calcEngine, DefaultSolverOptions())
}

// Optimize performs optimization based on the request
func (s *Solver) Optimize(ctx context.Context, req OptimizationRequest) (*OptimizationResult, error) {
	if req.Proposal == nil {
		return nil, &BreakEvenError{
			Operation: "optimize",
			Message:   "proposal is required",
		}
	}

	// Validate constraints
	if err := req.Constraints.Validate(); err != nil {
		return nil, err
	}
	if req.Goal == GoalTargetPayback && req.Constraints.TargetMonths == nil {
		return nil, &BreakEvenError{
			Operation: "optimize",
			Message:   "target_months is required for the target_payback goal",
		}
	}

	// Apply defaults
	if req.MaxIterations == 0 {
		req.MaxIterations = s.Options.MaxIterations
	}
	if req.Tolerance.IsZero() {
		req.Tolerance = s.Options.Tolerance
	}

	// Route to appropriate solver based on target
	switch req.Target {
	case OptimizeSystemCost:
		return s.optimizeSystemCost(ctx, req)
	case OptimizePanelCount:
		return s.optimizePanelCount(ctx, req)
	default:
		return nil, &BreakEvenError{
			Operation: "optimize",
			Message:   fmt.Sprintf("unsupported optimization target: %s", req.Target),
		}
	}
}

// optimizeSystemCost finds the highest system price that still breaks even
// within the target month, by binary search between the cost bounds.
func (s *Solver) optimizeSystemCost(ctx context.Context, req OptimizationRequest) (*OptimizationResult, error) {
	if req.Goal != GoalTargetPayback {
		return nil, &BreakEvenError{
			Operation: "optimize_system_cost",
			Message:   fmt.Sprintf("goal %s is not supported for system cost", req.Goal),
		}
	}
	if req.Proposal.TotalPanels() == 0 {
		return nil, &BreakEvenError{
			Operation: "optimize_system_cost",
			Message:   "proposal has no panels assigned",
		}
	}
	target := *req.Constraints.TargetMonths
	params := s.CalcEngine.ProposalParams(req.Proposal, req.Usage, req.BasePerKwp)

	evaluate := func(cost decimal.Decimal) (*domain.SimulationResult, bool, error) {
		p := params
		p.SystemCost = cost.InexactFloat64()
		res, err := s.CalcEngine.RunSimulation(p)
		if err != nil {
			return nil, false, &BreakEvenError{
				Operation: "optimize_system_cost",
				Message:   "failed to calculate scenario",
				Cause:     err,
			}
		}
		return res, meetsTarget(res, target), nil
	}

	minCost := decimal.Zero
	if req.Constraints.MinSystemCost != nil {
		minCost = *req.Constraints.MinSystemCost
	}

	floor, ok, err := evaluate(minCost)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, &BreakEvenError{
			Operation: "optimize_system_cost",
			Message:   fmt.Sprintf("no system cost from %s RSD breaks even within %d months", minCost.StringFixed(0), target),
		}
	}

	// The solar path costs at least the system price, so a price above the
	// grid spend up to the target month can never break even in time.
	maxCost := decimal.NewFromFloat(floor.Cumulative[target-1].Grid).Ceil()
	if req.Constraints.MaxSystemCost != nil {
		maxCost = *req.Constraints.MaxSystemCost
	}

	lo, hi := minCost, maxCost
	best := floor
	iterations := 0

	top, ok, err := evaluate(hi)
	if err != nil {
		return nil, err
	}
	if ok {
		result := s.evaluateResult(req, top, &hi, nil, 1)
		result.Success = true
		result.ConvergenceInfo = "Upper cost bound already breaks even in time"
		return s.withBase(req, result), nil
	}

	two := decimal.NewFromInt(2)
	for iterations < req.MaxIterations {
		iterations++

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		if hi.Sub(lo).LessThanOrEqual(req.Tolerance) {
			break
		}
		mid := lo.Add(hi).Div(two).Floor()
		if mid.Equal(lo) {
			break
		}

		res, ok, err := evaluate(mid)
		if err != nil {
			return nil, err
		}
		if ok {
			lo, best = mid, res
		} else {
			hi = mid
		}
	}

	result := s.evaluateResult(req, best, &lo, nil, iterations)
	result.Success = hi.Sub(lo).LessThanOrEqual(req.Tolerance) || hi.Sub(lo).LessThanOrEqual(decimal.NewFromInt(1))
	if result.Success {
		result.ConvergenceInfo = fmt.Sprintf("Converged within %s RSD", req.Tolerance.StringFixed(0))
	} else {
		result.ConvergenceInfo = fmt.Sprintf("Max iterations (%d) reached", req.MaxIterations)
	}
	return s.withBase(req, result), nil
}

// optimizePanelCount evaluates every panel count between the bounds
func (s *Solver) optimizePanelCount(ctx context.Context, req OptimizationRequest) (*OptimizationResult, error) {
	p := req.Proposal

	minPanels := 1
	if req.Constraints.MinPanels != nil {
		minPanels = *req.Constraints.MinPanels
	}
	maxPanels := roofCapacity(p)
	if req.Constraints.MaxPanels != nil {
		maxPanels = *req.Constraints.MaxPanels
	}
	if maxPanels < minPanels {
		return nil, &BreakEvenError{
			Operation: "optimize_panel_count",
			Message:   fmt.Sprintf("roof fits %d panels, below the minimum of %d", maxPanels, minPanels),
		}
	}

	var costPerPanel decimal.Decimal
	switch {
	case req.Constraints.CostPerPanel != nil:
		costPerPanel = *req.Constraints.CostPerPanel
	case p.TotalPanels() > 0:
		costPerPanel = decimal.NewFromFloat(p.System.Cost).Div(decimal.NewFromInt(int64(p.TotalPanels())))
	default:
		return nil, &BreakEvenError{
			Operation: "optimize_panel_count",
			Message:   "cost_per_panel is required when the proposal has no panels",
		}
	}

	var bestResult *OptimizationResult
	iterations := 0

	for n := minPanels; n <= maxPanels && iterations < req.MaxIterations; n++ {
		iterations++

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		cost := costPerPanel.Mul(decimal.NewFromInt(int64(n))).Round(0)
		params := s.CalcEngine.ParamsForPanels(p, req.Usage, req.BasePerKwp, n)
		params.SystemCost = cost.InexactFloat64()

		sim, err := s.CalcEngine.RunSimulation(params)
		if err != nil {
			return nil, &BreakEvenError{
				Operation: "optimize_panel_count",
				Message:   fmt.Sprintf("failed to calculate %d panels", n),
				Cause:     err,
			}
		}

		panels := n
		result := s.evaluateResult(req, sim, &cost, &panels, iterations)
		if bestResult == nil || s.isBetter(result, bestResult, req.Goal) {
			bestResult = result
		}
	}

	if bestResult == nil {
		return nil, &BreakEvenError{
			Operation: "optimize_panel_count",
			Message:   "no panel counts evaluated",
		}
	}

	bestResult.Iterations = iterations
	bestResult.Success = true
	bestResult.ConvergenceInfo = fmt.Sprintf("Evaluated %d panel counts", iterations)
	if req.Goal == GoalTargetPayback && !meetsTarget(bestResult.Result, *req.Constraints.TargetMonths) {
		bestResult.Success = false
		bestResult.ConvergenceInfo = fmt.Sprintf("No panel count breaks even within %d months", *req.Constraints.TargetMonths)
	}
	return s.withBase(req, bestResult), nil
}

// evaluateResult creates an optimization result from a simulation
func (s *Solver) evaluateResult(
	req OptimizationRequest,
	sim *domain.SimulationResult,
	cost *decimal.Decimal,
	panels *int,
	iterations int,
) *OptimizationResult {
	result := &OptimizationResult{
		Request:          req,
		Iterations:       iterations,
		Result:           sim,
		BreakEvenReached: sim.BreakEvenReached,
		BreakEvenMonth:   sim.BreakEvenMonth,
		BreakEvenText:    sim.BreakEvenText,
		AnnualSavings:    decimal.NewFromInt(sim.AnnualSavings),
		LifetimeSavings:  decimal.NewFromFloat(sim.LifetimeSavings).Round(0),
	}

	if cost != nil {
		costCopy := *cost
		result.OptimalSystemCost = &costCopy
	}
	if panels != nil {
		panelsCopy := *panels
		result.OptimalPanels = &panelsCopy
	}

	return result
}

// withBase attaches the proposal as submitted for comparison
func (s *Solver) withBase(req OptimizationRequest, result *OptimizationResult) *OptimizationResult {
	if req.Proposal.TotalPanels() == 0 {
		return result
	}
	base, err := s.CalcEngine.RunProposal(req.Proposal, req.Usage, req.BasePerKwp)
	if err != nil {
		return result
	}
	result.BaseResult = base
	result.SavingsDiffFromBase = result.LifetimeSavings.Sub(decimal.NewFromFloat(base.LifetimeSavings).Round(0))
	result.BreakEvenDiffFromBase = result.BreakEvenMonth - base.BreakEvenMonth
	return result
}

// isBetter compares two results based on optimization goal
func (s *Solver) isBetter(a, b *OptimizationResult, goal OptimizationGoal) bool {
	switch goal {
	case GoalMaximizeSavings:
		return a.LifetimeSavings.GreaterThan(b.LifetimeSavings)
	case GoalFastestPayback:
		return fasterPayback(a, b)
	case GoalTargetPayback:
		// Meeting the target wins; among those that do, more savings is better
		if a.Request.Constraints.TargetMonths == nil {
			return false
		}
		target := *a.Request.Constraints.TargetMonths
		aMeets, bMeets := meetsTarget(a.Result, target), meetsTarget(b.Result, target)
		if aMeets != bMeets {
			return aMeets
		}
		if aMeets {
			return a.LifetimeSavings.GreaterThan(b.LifetimeSavings)
		}
		return fasterPayback(a, b)
	default:
		return false
	}
}

func fasterPayback(a, b *OptimizationResult) bool {
	if a.BreakEvenReached != b.BreakEvenReached {
		return a.BreakEvenReached
	}
	if a.BreakEvenMonth != b.BreakEvenMonth {
		return a.BreakEvenMonth < b.BreakEvenMonth
	}
	return a.LifetimeSavings.GreaterThan(b.LifetimeSavings)
}

func meetsTarget(r *domain.SimulationResult, targetMonths int) bool {
	return r != nil && r.BreakEvenReached && r.BreakEvenMonth <= targetMonths
}

// roofCapacity sums the panel limits of every surface, or falls back to a default
func roofCapacity(p *domain.Proposal) int {
	total := 0
	for _, s := range p.Surfaces {
		if s.MaxPanels <= 0 {
			return defaultMaxPanels
		}
		total += s.MaxPanels
	}
	if total == 0 {
		return defaultMaxPanels
	}
	return total
}
