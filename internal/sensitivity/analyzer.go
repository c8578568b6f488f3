package sensitivity

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sort"

	"github.com/shopspring/decimal"
	"github.com/solarinrs/solaroi/internal/calculation"
	"github.com/solarinrs/solaroi/internal/domain"
	"github.com/solarinrs/solaroi/internal/log"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Analyzer performs parameter sweep analysis over one proposal
type Analyzer struct {
	Engine *calculation.CalculationEngine

	// Progress is called after every simulated point when set
	Progress func(done, total int)
}

// NewAnalyzer creates an analyzer on top of an engine
func NewAnalyzer(engine *calculation.CalculationEngine) *Analyzer {
	if engine == nil {
		engine = calculation.NewCalculationEngine()
	}
	return &Analyzer{Engine: engine}
}

// Analyze sweeps one parameter and simulates the proposal at every value
func (sa *Analyzer) Analyze(
	ctx context.Context,
	p *domain.Proposal,
	usage, basePerKwp domain.Monthly,
	param Parameter,
) (*Analysis, error) {
	if p == nil {
		return nil, fmt.Errorf("proposal is required")
	}
	if p.TotalPanels() == 0 {
		return nil, fmt.Errorf("proposal %s has no panels assigned", p.ID)
	}
	if err := param.Validate(); err != nil {
		return nil, err
	}

	values := param.Values()
	results := make([]Result, 0, len(values))

	for i, v := range values {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		res, err := sa.run(p, usage, basePerKwp, param.Name, v)
		if err != nil {
			return nil, fmt.Errorf("failed to run simulation for %s=%s: %w", param.Name, v, err)
		}

		results = append(results, Result{
			Value:   v,
			Label:   param.FormatValue(v),
			Metrics: metricsFor(res),
			Result:  res,
		})

		if sa.Progress != nil {
			sa.Progress(i+1, len(values))
		}
	}

	log.Ctx(ctx).DebugContext(ctx, "sensitivity sweep complete",
		slog.String("parameter", param.Name),
		slog.Int("points", len(results)))

	analysis := &Analysis{
		ProposalID: p.ID,
		Parameter:  param,
		Results:    results,
	}
	analysis.Summary = summarize(analysis)
	return analysis, nil
}

// AnalyzeMultiple runs one sweep per parameter
func (sa *Analyzer) AnalyzeMultiple(
	ctx context.Context,
	p *domain.Proposal,
	usage, basePerKwp domain.Monthly,
	params []Parameter,
) ([]*Analysis, error) {
	analyses := make([]*Analysis, 0, len(params))
	for _, param := range params {
		a, err := sa.Analyze(ctx, p, usage, basePerKwp, param)
		if err != nil {
			return nil, fmt.Errorf("failed to analyze parameter %s: %w", param.Name, err)
		}
		analyses = append(analyses, a)
	}
	return analyses, nil
}

// Rank orders sweeps by savings spread, largest first
func Rank(analyses []*Analysis) []Ranking {
	ranking := make([]Ranking, 0, len(analyses))
	for _, a := range analyses {
		ranking = append(ranking, Ranking{
			Parameter:     a.Parameter.Name,
			SavingsSpread: a.Summary.SavingsSpread,
			Score:         a.Summary.SensitivityScore,
			RiskLevel:     a.Summary.RiskLevel,
		})
	}
	sort.SliceStable(ranking, func(i, j int) bool {
		return ranking[i].SavingsSpread > ranking[j].SavingsSpread
	})
	return ranking
}

func (sa *Analyzer) run(p *domain.Proposal, usage, basePerKwp domain.Monthly, name string, v decimal.Decimal) (*domain.SimulationResult, error) {
	engine := sa.Engine
	params := engine.ProposalParams(p, usage, basePerKwp)

	switch name {
	case ParamEscalationRate:
		modified := *sa.Engine
		modified.Tariff.EscalationRate = v
		engine = &modified
	case ParamSystemCost:
		params.SystemCost = v.InexactFloat64()
	case ParamTariffFraction:
		params.TariffFraction = v.InexactFloat64()
	case ParamPanelCount:
		n := int(v.IntPart())
		perPanel := p.System.Cost / float64(p.TotalPanels())
		params = engine.ParamsForPanels(p, usage, basePerKwp, n)
		params.SystemCost = math.Round(perPanel * float64(n))
	default:
		return nil, fmt.Errorf("unknown sensitivity parameter %q", name)
	}

	return engine.RunSimulation(params)
}

func metricsFor(r *domain.SimulationResult) Metrics {
	return Metrics{
		AnnualSavings:    r.AnnualSavings,
		LifetimeSavings:  r.LifetimeSavings,
		BreakEvenReached: r.BreakEvenReached,
		BreakEvenMonth:   r.BreakEvenMonth,
		BreakEvenText:    r.BreakEvenText,
		SolarCoverage:    r.SolarCoverage,
	}
}

// baseIndex finds the result closest to the parameter's base value
func baseIndex(a *Analysis) int {
	best := 0
	minDiff := a.Results[0].Value.Sub(a.Parameter.BaseValue).Abs()
	for i := 1; i < len(a.Results); i++ {
		diff := a.Results[i].Value.Sub(a.Parameter.BaseValue).Abs()
		if diff.LessThan(minDiff) {
			minDiff = diff
			best = i
		}
	}
	return best
}

func summarize(a *Analysis) Summary {
	if len(a.Results) == 0 {
		return Summary{}
	}

	bi := baseIndex(a)
	a.Results[bi].IsBase = true
	base := a.Results[bi].Metrics

	savings := make([]float64, len(a.Results))
	months := make([]float64, len(a.Results))
	s := Summary{}

	for i := range a.Results {
		m := &a.Results[i].Metrics
		savings[i] = m.LifetimeSavings
		months[i] = float64(m.BreakEvenMonth)
		if !m.BreakEvenReached {
			s.NeverBreaksEven++
		}

		m.SavingsChange = m.LifetimeSavings - base.LifetimeSavings
		if base.LifetimeSavings != 0 {
			m.SavingsChangePct = m.SavingsChange / math.Abs(base.LifetimeSavings) * 100
		}
		m.BreakEvenChange = m.BreakEvenMonth - base.BreakEvenMonth

		if i == bi || a.Parameter.BaseValue.IsZero() {
			continue
		}
		paramPct := a.Results[i].Value.Sub(a.Parameter.BaseValue).
			Div(a.Parameter.BaseValue).Mul(decimal.NewFromInt(100)).InexactFloat64()
		if paramPct == 0 {
			continue
		}
		if score := math.Abs(m.SavingsChangePct) / math.Abs(paramPct); score > s.SensitivityScore {
			s.SensitivityScore = score
		}
	}

	s.SavingsSpread = floats.Max(savings) - floats.Min(savings)
	s.BreakEvenSpread = int(floats.Max(months) - floats.Min(months))
	if len(savings) > 1 {
		s.SavingsStdDev = stat.StdDev(savings, nil)
	}

	s.RiskLevel = s.DetermineRiskLevel()
	s.Recommendations = s.GenerateRecommendations(a.Parameter.Name)
	return s
}
