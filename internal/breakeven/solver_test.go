package breakeven

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/solarinrs/solaroi/internal/calculation"
	"github.com/solarinrs/solaroi/internal/domain"
)

var (
	testUsage = domain.Monthly{650, 580, 480, 380, 320, 300, 340, 350, 310, 380, 500, 640}
	testBase  = domain.Monthly{45, 62, 105, 135, 160, 168, 178, 165, 125, 90, 52, 38}
)

func testProposal() *domain.Proposal {
	return &domain.Proposal{
		ID: "solver-test",
		Surfaces: []domain.RoofSurface{
			{Name: "Jug", AssignedPanels: 12, MaxPanels: 16},
			{Name: "Zapad", AssignedPanels: 3, MaxPanels: 8},
		},
		Utility: domain.Utility{TariffFraction: 0.85, PermittedPower: 11.04},
		System:  domain.System{PanelWattage: 400, Cost: 650000},
	}
}

func intPtr(v int) *int { return &v }

func TestNewSolver(t *testing.T) {
	calcEngine := calculation.NewCalculationEngine()
	options := DefaultSolverOptions()

	solver := NewSolver(calcEngine, options)

	if solver == nil {
		t.Fatal("Expected solver to be created, got nil")
	}
	if solver.CalcEngine != calcEngine {
		t.Error("Expected CalcEngine to match input")
	}
	if !solver.Options.Tolerance.Equal(options.Tolerance) || solver.Options.MaxIterations != options.MaxIterations {
		t.Error("Expected Options to match input")
	}
}

func TestNewDefaultSolver(t *testing.T) {
	solver := NewDefaultSolver(calculation.NewCalculationEngine())

	if solver.Options.MaxIterations != DefaultSolverOptions().MaxIterations {
		t.Error("Expected default max iterations to be applied")
	}
	if !solver.Options.Tolerance.Equal(decimal.NewFromInt(1000)) {
		t.Errorf("Expected default tolerance 1000, got %s", solver.Options.Tolerance)
	}
}

func TestSolver_Optimize_InvalidRequests(t *testing.T) {
	solver := NewDefaultSolver(calculation.NewCalculationEngine())

	tests := []struct {
		name string
		req  OptimizationRequest
	}{
		{"missing proposal", OptimizationRequest{Target: OptimizePanelCount, Goal: GoalFastestPayback}},
		{"invalid constraints", OptimizationRequest{
			Proposal:    testProposal(),
			Target:      OptimizePanelCount,
			Goal:        GoalFastestPayback,
			Constraints: Constraints{MinPanels: intPtr(0)},
		}},
		{"target payback without months", OptimizationRequest{
			Proposal: testProposal(),
			Target:   OptimizePanelCount,
			Goal:     GoalTargetPayback,
		}},
		{"unsupported target", OptimizationRequest{
			Proposal: testProposal(),
			Target:   OptimizationTarget("tilt"),
			Goal:     GoalFastestPayback,
		}},
		{"unsupported goal for system cost", OptimizationRequest{
			Proposal: testProposal(),
			Target:   OptimizeSystemCost,
			Goal:     GoalMaximizeSavings,
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.req.Usage = testUsage
			tt.req.BasePerKwp = testBase
			_, err := solver.Optimize(context.Background(), tt.req)
			if err == nil {
				t.Fatal("Expected error, got nil")
			}
			var beErr *BreakEvenError
			if !errors.As(err, &beErr) {
				t.Errorf("Expected BreakEvenError, got %T", err)
			}
		})
	}
}

func TestSolver_OptimizeSystemCost(t *testing.T) {
	engine := calculation.NewCalculationEngine()
	solver := NewDefaultSolver(engine)
	p := testProposal()

	// Highest affordable price from the operating savings curve
	params := engine.ProposalParams(p, testUsage, testBase)
	params.SystemCost = 0
	free, err := engine.RunSimulation(params)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	for _, target := range []int{60, 120, 180} {
		ceiling := 0.0
		for _, pt := range free.Cumulative[:target] {
			if s := pt.Savings(); s > ceiling {
				ceiling = s
			}
		}

		result, err := solver.Optimize(context.Background(), OptimizationRequest{
			Proposal:    p,
			Usage:       testUsage,
			BasePerKwp:  testBase,
			Target:      OptimizeSystemCost,
			Goal:        GoalTargetPayback,
			Constraints: Constraints{TargetMonths: intPtr(target)},
		})
		if err != nil {
			t.Fatalf("target %d: unexpected error: %v", target, err)
		}
		if !result.Success {
			t.Errorf("target %d: expected convergence, got %s", target, result.ConvergenceInfo)
		}

		cost := result.OptimalSystemCost.InexactFloat64()
		if cost > ceiling || ceiling-cost > 1000 {
			t.Errorf("target %d: expected cost within 1000 RSD below %.0f, got %.0f", target, ceiling, cost)
		}
		if !result.BreakEvenReached || result.BreakEvenMonth > target {
			t.Errorf("target %d: optimal cost breaks even at month %d", target, result.BreakEvenMonth)
		}
		if result.BaseResult == nil {
			t.Errorf("target %d: expected proposal result for comparison", target)
		}
	}
}

func TestSolver_OptimizeSystemCost_ProposedPriceFitsTarget(t *testing.T) {
	solver := NewDefaultSolver(calculation.NewCalculationEngine())

	// The proposal breaks even in exactly 120 months at 650.000 RSD,
	// so the ceiling is at least that price less the search tolerance
	cost, err := solver.MaxAffordableCost(context.Background(), testProposal(), testUsage, testBase, 120)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if cost.LessThan(decimal.NewFromInt(649000)) {
		t.Errorf("Expected at least 649000, got %s", cost)
	}
}

func TestSolver_OptimizeSystemCost_Unreachable(t *testing.T) {
	solver := NewDefaultSolver(calculation.NewCalculationEngine())
	minCost := decimal.NewFromInt(5000000)

	_, err := solver.Optimize(context.Background(), OptimizationRequest{
		Proposal:    testProposal(),
		Usage:       testUsage,
		BasePerKwp:  testBase,
		Target:      OptimizeSystemCost,
		Goal:        GoalTargetPayback,
		Constraints: Constraints{TargetMonths: intPtr(12), MinSystemCost: &minCost},
	})
	if err == nil {
		t.Fatal("Expected error for unreachable target")
	}
}

// bruteForce simulates every panel count the way the solver prices them
func bruteForce(t *testing.T, engine *calculation.CalculationEngine, minPanels, maxPanels int) map[int]*domain.SimulationResult {
	t.Helper()
	p := testProposal()
	out := map[int]*domain.SimulationResult{}
	perPanel := decimal.NewFromFloat(p.System.Cost).Div(decimal.NewFromInt(int64(p.TotalPanels())))
	for n := minPanels; n <= maxPanels; n++ {
		params := engine.ParamsForPanels(p, testUsage, testBase, n)
		params.SystemCost = perPanel.Mul(decimal.NewFromInt(int64(n))).Round(0).InexactFloat64()
		res, err := engine.RunSimulation(params)
		if err != nil {
			t.Fatalf("Unexpected error for %d panels: %v", n, err)
		}
		out[n] = res
	}
	return out
}

func TestSolver_OptimizePanelCount(t *testing.T) {
	engine := calculation.NewCalculationEngine()
	solver := NewDefaultSolver(engine)
	all := bruteForce(t, engine, 5, 24)

	fastest, err := solver.Optimize(context.Background(), OptimizationRequest{
		Proposal:   testProposal(),
		Usage:      testUsage,
		BasePerKwp: testBase,
		Target:     OptimizePanelCount,
		Goal:       GoalFastestPayback,
		Constraints: Constraints{
			MinPanels: intPtr(5),
		},
	})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if fastest.Iterations != 20 {
		t.Errorf("Expected 20 panel counts (5..roof capacity 24), got %d", fastest.Iterations)
	}

	minMonth := domain.HorizonMonths
	for _, r := range all {
		if r.BreakEvenReached && r.BreakEvenMonth < minMonth {
			minMonth = r.BreakEvenMonth
		}
	}
	if fastest.BreakEvenMonth != minMonth {
		t.Errorf("Expected fastest break-even %d, got %d", minMonth, fastest.BreakEvenMonth)
	}
	if all[*fastest.OptimalPanels].BreakEvenMonth != minMonth {
		t.Errorf("Optimal panel count %d does not match break-even month", *fastest.OptimalPanels)
	}

	best, err := solver.Optimize(context.Background(), OptimizationRequest{
		Proposal:    testProposal(),
		Usage:       testUsage,
		BasePerKwp:  testBase,
		Target:      OptimizePanelCount,
		Goal:        GoalMaximizeSavings,
		Constraints: Constraints{MinPanels: intPtr(5), MaxPanels: intPtr(24)},
	})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	for n, r := range all {
		if decimal.NewFromFloat(r.LifetimeSavings).Round(0).GreaterThan(best.LifetimeSavings) {
			t.Errorf("%d panels saves more (%.0f) than the optimum %s", n, r.LifetimeSavings, best.LifetimeSavings)
		}
	}
	if best.BaseResult == nil {
		t.Error("Expected proposal result for comparison")
	}
}

func TestSolver_OptimizePanelCount_TargetNotMet(t *testing.T) {
	solver := NewDefaultSolver(calculation.NewCalculationEngine())

	result, err := solver.Optimize(context.Background(), OptimizationRequest{
		Proposal:    testProposal(),
		Usage:       testUsage,
		BasePerKwp:  testBase,
		Target:      OptimizePanelCount,
		Goal:        GoalTargetPayback,
		Constraints: Constraints{TargetMonths: intPtr(6), MaxPanels: intPtr(20)},
	})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if result.Success {
		t.Error("Expected no panel count to pay back within 6 months")
	}
	if result.OptimalPanels == nil {
		t.Error("Expected the closest panel count to be reported")
	}
}

func TestSolver_OptimizePanelCount_NoPanelsNeedsPrice(t *testing.T) {
	solver := NewDefaultSolver(calculation.NewCalculationEngine())
	p := testProposal()
	for i := range p.Surfaces {
		p.Surfaces[i].AssignedPanels = 0
	}

	req := OptimizationRequest{
		Proposal:   p,
		Usage:      testUsage,
		BasePerKwp: testBase,
		Target:     OptimizePanelCount,
		Goal:       GoalFastestPayback,
	}
	if _, err := solver.Optimize(context.Background(), req); err == nil {
		t.Error("Expected error without cost_per_panel")
	}

	price := decimal.NewFromInt(45000)
	req.Constraints.CostPerPanel = &price
	result, err := solver.Optimize(context.Background(), req)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if result.BaseResult != nil {
		t.Error("Expected no base comparison for a proposal without panels")
	}
}

func TestSolver_ContextCancelled(t *testing.T) {
	solver := NewDefaultSolver(calculation.NewCalculationEngine())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := solver.Optimize(ctx, OptimizationRequest{
		Proposal:   testProposal(),
		Usage:      testUsage,
		BasePerKwp: testBase,
		Target:     OptimizePanelCount,
		Goal:       GoalFastestPayback,
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
}

func TestSolver_OptimizeMultiDimensional(t *testing.T) {
	solver := NewDefaultSolver(calculation.NewCalculationEngine())

	result, err := solver.OptimizeMultiDimensional(
		context.Background(),
		testProposal(), testUsage, testBase,
		Constraints{TargetMonths: intPtr(120)},
		[]OptimizationGoal{GoalFastestPayback, GoalMaximizeSavings, GoalTargetPayback},
	)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	// Three panel-count goals plus the system cost search
	if len(result.Results) != 4 {
		t.Errorf("Expected 4 results, got %d", len(result.Results))
	}
	if result.BestByPayback == nil || result.BestBySavings == nil {
		t.Fatal("Expected best results to be selected")
	}
	if len(result.Recommendations) < 3 {
		t.Errorf("Expected at least 3 recommendations, got %v", result.Recommendations)
	}
}
