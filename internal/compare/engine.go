package compare

import (
	"context"
	"fmt"
	"sort"

	"github.com/solarinrs/solaroi/internal/calculation"
	"github.com/solarinrs/solaroi/internal/domain"
)

// CompareEngine orchestrates system size comparison
type CompareEngine struct {
	CalcEngine        *calculation.CalculationEngine
	MetricsCalculator *MetricsCalculator
}

// NewCompareEngine creates a new comparison engine
func NewCompareEngine(calcEngine *calculation.CalculationEngine) *CompareEngine {
	return &CompareEngine{
		CalcEngine:        calcEngine,
		MetricsCalculator: NewMetricsCalculator(),
	}
}

// CompareOptions configures comparison behavior
type CompareOptions struct {
	BasePanels         int   // Panel count of the base system, defaults to the proposal's
	Panels             []int // Alternative panel counts
	IncludeRecommended bool  // Also compare the recommended min/optimal/max sizes
	CostPerPanel       float64
}

// Compare simulates the proposal at several panel counts.
// Unless CostPerPanel is set, system cost scales linearly with the base system's cost per panel.
func (ce *CompareEngine) Compare(
	ctx context.Context,
	p *domain.Proposal,
	usage, basePerKwp domain.Monthly,
	options CompareOptions,
) (*ComparisonSet, error) {

	basePanels := options.BasePanels
	if basePanels == 0 {
		basePanels = p.TotalPanels()
	}
	if basePanels <= 0 {
		return nil, fmt.Errorf("base system has no panels")
	}

	costPerPanel := options.CostPerPanel
	if costPerPanel == 0 {
		costPerPanel = p.System.Cost / float64(basePanels)
	}

	baseResult, err := ce.run(p, usage, basePerKwp, basePanels, p.System.Cost)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate base system: %w", err)
	}

	panels := append([]int(nil), options.Panels...)
	if options.IncludeRecommended {
		s := baseResult.Result.Sizing
		panels = append(panels, s.MinPanels, s.OptimalPanels, s.MaxPanels)
	}
	panels = uniquePanels(panels, basePanels)

	alternatives := []ComparisonResult{}
	for _, n := range panels {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		alt, err := ce.run(p, usage, basePerKwp, n, costPerPanel*float64(n))
		if err != nil {
			return nil, fmt.Errorf("failed to calculate %s: %w", ScenarioName(n), err)
		}
		alt.Description = fmt.Sprintf("%.1f kWp for %.0f RSD", alt.CapacityKw, costPerPanel*float64(n))
		alternatives = append(alternatives, ce.MetricsCalculator.CalculateComparison(alt, baseResult))
	}

	baseResult.Description = "proposed system"
	compSet := &ComparisonSet{
		BaseScenarioName:   baseResult.ScenarioName,
		BaseResult:         &baseResult,
		AlternativeResults: alternatives,
	}
	compSet.Recommendations = GenerateRecommendations(compSet)

	return compSet, nil
}

func (ce *CompareEngine) run(p *domain.Proposal, usage, basePerKwp domain.Monthly, panels int, cost float64) (ComparisonResult, error) {
	params := ce.CalcEngine.ParamsForPanels(p, usage, basePerKwp, panels)
	params.SystemCost = cost
	result, err := ce.CalcEngine.RunSimulation(params)
	if err != nil {
		return ComparisonResult{}, err
	}
	capacity := calculation.CapacityKw(panels, p.System.PanelWattage)
	return ce.MetricsCalculator.CalculateMetrics(panels, capacity, result), nil
}

// uniquePanels drops non-positive counts, duplicates and the base count, sorted ascending
func uniquePanels(panels []int, base int) []int {
	seen := map[int]bool{base: true}
	out := []int{}
	for _, n := range panels {
		if n <= 0 || seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	sort.Ints(out)
	return out
}
