package breakeven

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/solarinrs/solaroi/internal/domain"
)

// OptimizeMultiDimensional runs every applicable target and goal and compares the results
func (s *Solver) OptimizeMultiDimensional(
	ctx context.Context,
	p *domain.Proposal,
	usage, basePerKwp domain.Monthly,
	constraints Constraints,
	goals []OptimizationGoal,
) (*MultiDimensionalResult, error) {

	if err := constraints.Validate(); err != nil {
		return nil, err
	}

	targets := []OptimizationTarget{
		OptimizePanelCount,
		OptimizeSystemCost,
	}

	var results []OptimizationResult

	for _, target := range targets {
		for _, goal := range goals {
			if target == OptimizeSystemCost && goal != GoalTargetPayback {
				continue
			}
			req := OptimizationRequest{
				Proposal:      p,
				Usage:         usage,
				BasePerKwp:    basePerKwp,
				Target:        target,
				Goal:          goal,
				Constraints:   constraints,
				MaxIterations: s.Options.MaxIterations,
				Tolerance:     s.Options.Tolerance,
			}

			result, err := s.Optimize(ctx, req)
			if err != nil {
				if ctx.Err() != nil {
					return nil, ctx.Err()
				}
				// Skip combinations the proposal cannot support
				continue
			}

			if result != nil && result.Success {
				results = append(results, *result)
			}
		}
	}

	if len(results) == 0 {
		return nil, &BreakEvenError{
			Operation: "optimize_multi_dimensional",
			Message:   "no successful optimizations found",
		}
	}

	mdResult := &MultiDimensionalResult{
		Results: results,
	}

	for i := range results {
		if mdResult.BestByPayback == nil || fasterPayback(&results[i], mdResult.BestByPayback) {
			mdResult.BestByPayback = &results[i]
		}
	}

	for i := range results {
		if mdResult.BestBySavings == nil ||
			results[i].LifetimeSavings.GreaterThan(mdResult.BestBySavings.LifetimeSavings) {
			mdResult.BestBySavings = &results[i]
		}
	}

	mdResult.Recommendations = s.generateMultiDimensionalRecommendations(mdResult)

	return mdResult, nil
}

// generateMultiDimensionalRecommendations creates recommendations from multi-dimensional results
func (s *Solver) generateMultiDimensionalRecommendations(result *MultiDimensionalResult) []string {
	var recommendations []string

	if result.BestByPayback != nil && result.BestByPayback.BreakEvenReached {
		rec := fmt.Sprintf("For the fastest payback (%s): %s", result.BestByPayback.BreakEvenText, describe(result.BestByPayback))
		recommendations = append(recommendations, rec)
	}

	if result.BestBySavings != nil {
		rec := fmt.Sprintf("For the largest %d-year savings (%s RSD): %s",
			domain.HorizonYears,
			result.BestBySavings.LifetimeSavings.StringFixed(0),
			describe(result.BestBySavings))
		recommendations = append(recommendations, rec)
	}

	for _, r := range result.Results {
		if r.Request.Target == OptimizeSystemCost && r.OptimalSystemCost != nil {
			recommendations = append(recommendations,
				fmt.Sprintf("Pay at most %s RSD to break even within %d months",
					r.OptimalSystemCost.StringFixed(0), *r.Request.Constraints.TargetMonths))
		}
	}

	if result.BestByPayback != nil && result.BestByPayback == result.BestBySavings {
		recommendations = append(recommendations,
			fmt.Sprintf("⭐ %s gives both the fastest payback AND the largest savings", describe(result.BestByPayback)))
	}

	return recommendations
}

func describe(r *OptimizationResult) string {
	switch {
	case r.OptimalPanels != nil && r.OptimalSystemCost != nil:
		return fmt.Sprintf("install %d panels for %s RSD", *r.OptimalPanels, r.OptimalSystemCost.StringFixed(0))
	case r.OptimalPanels != nil:
		return fmt.Sprintf("install %d panels", *r.OptimalPanels)
	case r.OptimalSystemCost != nil:
		return fmt.Sprintf("price the system at %s RSD", r.OptimalSystemCost.StringFixed(0))
	}
	return string(r.Request.Target)
}

// OptimizeAllTargets is a convenience method to optimize all targets with a single goal
func (s *Solver) OptimizeAllTargets(
	ctx context.Context,
	p *domain.Proposal,
	usage, basePerKwp domain.Monthly,
	constraints Constraints,
	goal OptimizationGoal,
) (*MultiDimensionalResult, error) {
	return s.OptimizeMultiDimensional(ctx, p, usage, basePerKwp, constraints, []OptimizationGoal{goal})
}

// MaxAffordableCost is the highest system price that breaks even within targetMonths
func (s *Solver) MaxAffordableCost(ctx context.Context, p *domain.Proposal, usage, basePerKwp domain.Monthly, targetMonths int) (decimal.Decimal, error) {
	res, err := s.Optimize(ctx, OptimizationRequest{
		Proposal:    p,
		Usage:       usage,
		BasePerKwp:  basePerKwp,
		Target:      OptimizeSystemCost,
		Goal:        GoalTargetPayback,
		Constraints: Constraints{TargetMonths: &targetMonths},
	})
	if err != nil {
		return decimal.Zero, err
	}
	return *res.OptimalSystemCost, nil
}
