package compare

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/solarinrs/solaroi/internal/domain"
)

// ComparisonResult represents one system size with calculated metrics
type ComparisonResult struct {
	ScenarioName string                   `json:"scenarioName"`
	Description  string                   `json:"description"`
	Result       *domain.SimulationResult `json:"-"`

	// System
	Panels     int             `json:"panels"`
	CapacityKw float64         `json:"capacityKw"`
	SystemCost decimal.Decimal `json:"systemCost"`

	// Key Metrics
	AnnualProduction   float64         `json:"annualProduction"`
	AnnualSavings      decimal.Decimal `json:"annualSavings"`
	LifetimeSavings    decimal.Decimal `json:"lifetimeSavings"`
	BreakEvenReached   bool            `json:"breakEvenReached"`
	BreakEvenMonth     int             `json:"breakEvenMonth"` // horizon length when never reached
	BreakEvenText      string          `json:"breakEvenText"`
	SolarCoverage      float64         `json:"solarCoverage"`
	InRecommendedRange bool            `json:"inRecommendedRange"`

	// Comparison to Base
	SavingsDiffFromBase decimal.Decimal `json:"savingsDiffFromBase"`
	SavingsPctFromBase  decimal.Decimal `json:"savingsPctFromBase"`
	BreakEvenDiff       int             `json:"breakEvenDiff"` // months, negative is faster
	CostDiffFromBase    decimal.Decimal `json:"costDiffFromBase"`
}

// ComparisonSet represents a collection of system size comparisons
type ComparisonSet struct {
	BaseScenarioName   string             `json:"baseScenarioName"`
	BaseResult         *ComparisonResult  `json:"baseResult"`
	AlternativeResults []ComparisonResult `json:"alternativeResults"`
	Recommendations    []string           `json:"recommendations"`
	ProposalPath       string             `json:"proposalPath"`
}

// All returns the base followed by every alternative
func (cs *ComparisonSet) All() []ComparisonResult {
	out := make([]ComparisonResult, 0, len(cs.AlternativeResults)+1)
	if cs.BaseResult != nil {
		out = append(out, *cs.BaseResult)
	}
	return append(out, cs.AlternativeResults...)
}

// MetricsCalculator extracts key metrics from simulation results
type MetricsCalculator struct{}

// NewMetricsCalculator creates a new metrics calculator
func NewMetricsCalculator() *MetricsCalculator {
	return &MetricsCalculator{}
}

// CalculateMetrics computes all comparison metrics for one simulated system
func (mc *MetricsCalculator) CalculateMetrics(panels int, capacityKw float64, result *domain.SimulationResult) ComparisonResult {
	return ComparisonResult{
		ScenarioName:       ScenarioName(panels),
		Result:             result,
		Panels:             panels,
		CapacityKw:         capacityKw,
		SystemCost:         decimal.NewFromFloat(result.SystemCost),
		AnnualProduction:   result.AnnualProduction,
		AnnualSavings:      decimal.NewFromInt(result.AnnualSavings),
		LifetimeSavings:    decimal.NewFromFloat(result.LifetimeSavings).Round(0),
		BreakEvenReached:   result.BreakEvenReached,
		BreakEvenMonth:     result.BreakEvenMonth,
		BreakEvenText:      breakEvenText(result),
		SolarCoverage:      result.SolarCoverage,
		InRecommendedRange: result.Sizing.Contains(panels),
	}
}

// CalculateComparison computes comparison metrics between a system and the base
func (mc *MetricsCalculator) CalculateComparison(scenario, base ComparisonResult) ComparisonResult {
	scenario.SavingsDiffFromBase = scenario.LifetimeSavings.Sub(base.LifetimeSavings)

	if !base.LifetimeSavings.IsZero() {
		scenario.SavingsPctFromBase = scenario.SavingsDiffFromBase.
			Div(base.LifetimeSavings.Abs()).
			Mul(decimal.NewFromInt(100))
	}

	scenario.BreakEvenDiff = scenario.BreakEvenMonth - base.BreakEvenMonth
	scenario.CostDiffFromBase = scenario.SystemCost.Sub(base.SystemCost)

	return scenario
}

// ScenarioName labels a system by its panel count
func ScenarioName(panels int) string {
	if panels == 1 {
		return "1 panel"
	}
	return fmt.Sprintf("%d panels", panels)
}

func breakEvenText(r *domain.SimulationResult) string {
	if !r.BreakEvenReached {
		return "not reached"
	}
	return r.BreakEvenText
}

// GenerateRecommendations creates recommendations based on comparison results
func GenerateRecommendations(compSet *ComparisonSet) []string {
	recommendations := []string{}

	if len(compSet.AlternativeResults) == 0 || compSet.BaseResult == nil {
		return recommendations
	}

	// Best lifetime savings
	bestSavings := compSet.BaseResult
	for i := range compSet.AlternativeResults {
		alt := &compSet.AlternativeResults[i]
		if alt.LifetimeSavings.GreaterThan(bestSavings.LifetimeSavings) {
			bestSavings = alt
		}
	}
	if bestSavings != compSet.BaseResult {
		diff := bestSavings.LifetimeSavings.Sub(compSet.BaseResult.LifetimeSavings)
		recommendations = append(recommendations,
			fmt.Sprintf("Best Savings: %s saves %s RSD more over %d years than %s",
				bestSavings.ScenarioName, diff.StringFixed(0), domain.HorizonYears, compSet.BaseResult.ScenarioName))
	}

	// Fastest payback
	fastest := compSet.BaseResult
	for i := range compSet.AlternativeResults {
		alt := &compSet.AlternativeResults[i]
		if alt.BreakEvenReached && (!fastest.BreakEvenReached || alt.BreakEvenMonth < fastest.BreakEvenMonth) {
			fastest = alt
		}
	}
	if fastest != compSet.BaseResult && fastest.BreakEvenReached {
		recommendations = append(recommendations,
			fmt.Sprintf("Fastest Payback: %s pays for itself in %s", fastest.ScenarioName, fastest.BreakEvenText))
	}

	// Sizes outside the sweet spot
	for _, r := range compSet.All() {
		if !r.InRecommendedRange && r.Result != nil {
			s := r.Result.Sizing
			recommendations = append(recommendations,
				fmt.Sprintf("Sizing: %s is outside the recommended %d-%d panels", r.ScenarioName, s.MinPanels, s.MaxPanels))
		}
	}

	return recommendations
}
