package sensitivity

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/solarinrs/solaroi/internal/calculation"
	"github.com/solarinrs/solaroi/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	testUsage = domain.Monthly{650, 580, 480, 380, 320, 300, 340, 350, 310, 380, 500, 640}
	testBase  = domain.Monthly{45, 62, 105, 135, 160, 168, 178, 165, 125, 90, 52, 38}
)

func testProposal() *domain.Proposal {
	return &domain.Proposal{
		ID: "sensitivity-test",
		Surfaces: []domain.RoofSurface{
			{Name: "Jug", AssignedPanels: 12, MaxPanels: 16},
			{Name: "Zapad", AssignedPanels: 3, MaxPanels: 8},
		},
		Utility: domain.Utility{TariffFraction: 0.85, PermittedPower: 11.04},
		System:  domain.System{PanelWattage: 400, Cost: 650000},
	}
}

func defaultParam(t *testing.T, name string) Parameter {
	t.Helper()
	param, err := DefaultParameter(name, testProposal(), domain.DefaultTariff())
	require.NoError(t, err)
	return param
}

func TestDefaultParameter(t *testing.T) {
	cost := defaultParam(t, ParamSystemCost)
	assert.True(t, cost.MinValue.Equal(decimal.NewFromInt(455000)))
	assert.True(t, cost.MaxValue.Equal(decimal.NewFromInt(845000)))
	assert.True(t, cost.BaseValue.Equal(decimal.NewFromInt(650000)))

	panels := defaultParam(t, ParamPanelCount)
	assert.True(t, panels.MinValue.Equal(decimal.NewFromInt(9)))
	assert.True(t, panels.MaxValue.Equal(decimal.NewFromInt(21)))
	assert.Equal(t, 13, panels.Steps)

	escalation := defaultParam(t, ParamEscalationRate)
	assert.True(t, escalation.BaseValue.Equal(decimal.RequireFromString("0.05")))

	fraction := defaultParam(t, ParamTariffFraction)
	assert.True(t, fraction.BaseValue.Equal(decimal.RequireFromString("0.85")))

	_, err := DefaultParameter("inflation_rate", testProposal(), domain.DefaultTariff())
	assert.Error(t, err)
}

func TestDefaultParameter_SmallSystemClampsPanels(t *testing.T) {
	p := testProposal()
	p.System.PanelCount = 3

	param, err := DefaultParameter(ParamPanelCount, p, domain.DefaultTariff())
	require.NoError(t, err)
	assert.True(t, param.MinValue.Equal(decimal.NewFromInt(1)))
	assert.Equal(t, 9, param.Steps)
}

func TestParameter_Values(t *testing.T) {
	values := defaultParam(t, ParamEscalationRate).Values()
	require.Len(t, values, 11)
	assert.True(t, values[0].IsZero())
	assert.True(t, values[5].Equal(decimal.RequireFromString("0.05")))
	assert.True(t, values[10].Equal(decimal.RequireFromString("0.10")))

	single := Parameter{Name: ParamSystemCost, Steps: 1, BaseValue: decimal.NewFromInt(500000)}
	assert.Equal(t, []decimal.Decimal{decimal.NewFromInt(500000)}, single.Values())

	panels := Parameter{Name: ParamPanelCount, MinValue: decimal.NewFromInt(10), MaxValue: decimal.NewFromInt(12), Steps: 5}
	got := panels.Values()
	require.Len(t, got, 3)
	for i, v := range got {
		assert.Equal(t, int64(10+i), v.IntPart())
	}
}

func TestParameter_Validate(t *testing.T) {
	tests := []struct {
		name    string
		param   Parameter
		wantErr string
	}{
		{"valid", Parameter{Name: ParamSystemCost, MinValue: decimal.NewFromInt(1), MaxValue: decimal.NewFromInt(2), Steps: 2}, ""},
		{"no steps", Parameter{Name: ParamSystemCost, Steps: 0}, "steps must be at least 1"},
		{"inverted", Parameter{Name: ParamSystemCost, MinValue: decimal.NewFromInt(2), MaxValue: decimal.NewFromInt(1), Steps: 2}, "greater than max value"},
		{"negative", Parameter{Name: ParamEscalationRate, MinValue: decimal.NewFromInt(-1), MaxValue: decimal.NewFromInt(1), Steps: 2}, "cannot be negative"},
		{"fraction above one", Parameter{Name: ParamTariffFraction, MinValue: decimal.Zero, MaxValue: decimal.NewFromInt(2), Steps: 2}, "between 0 and 1"},
		{"zero panels", Parameter{Name: ParamPanelCount, MinValue: decimal.Zero, MaxValue: decimal.NewFromInt(4), Steps: 2}, "at least one panel"},
		{"unknown", Parameter{Name: "discount_rate", Steps: 1}, "unknown sensitivity parameter"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.param.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestParameter_FormatValue(t *testing.T) {
	assert.Equal(t, "5.0%", Parameter{Unit: "percent"}.FormatValue(decimal.RequireFromString("0.05")))
	assert.Equal(t, "650000 RSD", Parameter{Unit: "rsd"}.FormatValue(decimal.NewFromInt(650000)))
	assert.Equal(t, "0.85", Parameter{Unit: "fraction"}.FormatValue(decimal.RequireFromString("0.85")))
	assert.Equal(t, "15", Parameter{Unit: "panels"}.FormatValue(decimal.NewFromInt(15)))
}

func TestAnalyzer_SystemCost(t *testing.T) {
	analyzer := NewAnalyzer(calculation.NewCalculationEngine())

	var calls []int
	analyzer.Progress = func(done, total int) {
		assert.Equal(t, 7, total)
		calls = append(calls, done)
	}

	a, err := analyzer.Analyze(context.Background(), testProposal(), testUsage, testBase, defaultParam(t, ParamSystemCost))
	require.NoError(t, err)
	require.Len(t, a.Results, 7)
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6, 7}, calls)
	assert.Equal(t, "sensitivity-test", a.ProposalID)

	base := a.Results[3]
	assert.True(t, base.IsBase)
	assert.Equal(t, "650000 RSD", base.Label)
	assert.Equal(t, 120, base.Metrics.BreakEvenMonth)
	assert.Equal(t, int64(50004), base.Metrics.AnnualSavings)
	assert.Zero(t, base.Metrics.SavingsChange)

	for i, r := range a.Results {
		// Annual savings do not depend on the price
		assert.Equal(t, base.Metrics.AnnualSavings, r.Metrics.AnnualSavings)
		// Every extra dinar paid is a dinar less saved
		delta := r.Value.Sub(base.Value).InexactFloat64()
		assert.InDelta(t, -delta, r.Metrics.SavingsChange, 1e-6, "result %d", i)
		if i > 0 {
			assert.GreaterOrEqual(t, r.Metrics.BreakEvenMonth, a.Results[i-1].Metrics.BreakEvenMonth)
		}
	}

	assert.InDelta(t, 390000, a.Summary.SavingsSpread, 1e-6)
	assert.Greater(t, a.Summary.SavingsStdDev, 0.0)
	assert.Greater(t, a.Summary.SensitivityScore, 0.0)
	assert.Greater(t, a.Summary.BreakEvenSpread, 0)
	assert.NotEmpty(t, a.Summary.RiskLevel)
	assert.NotEmpty(t, a.Summary.Recommendations)
}

func TestAnalyzer_EscalationRate(t *testing.T) {
	engine := calculation.NewCalculationEngine()
	analyzer := NewAnalyzer(engine)

	a, err := analyzer.Analyze(context.Background(), testProposal(), testUsage, testBase, defaultParam(t, ParamEscalationRate))
	require.NoError(t, err)
	require.Len(t, a.Results, 11)
	assert.True(t, a.Results[5].IsBase)

	last := a.Results[len(a.Results)-1]
	assert.Greater(t, last.Metrics.LifetimeSavings, a.Results[0].Metrics.LifetimeSavings,
		"faster price growth should save more")
	assert.LessOrEqual(t, last.Metrics.BreakEvenMonth, a.Results[0].Metrics.BreakEvenMonth)

	// The shared engine keeps its own tariff
	assert.True(t, engine.Tariff.EscalationRate.Equal(decimal.RequireFromString("0.05")))
}

func TestAnalyzer_PanelCount(t *testing.T) {
	a, err := NewAnalyzer(nil).Analyze(context.Background(), testProposal(), testUsage, testBase, defaultParam(t, ParamPanelCount))
	require.NoError(t, err)
	require.Len(t, a.Results, 13)

	base := a.Results[6]
	assert.True(t, base.IsBase)
	assert.Equal(t, 120, base.Metrics.BreakEvenMonth)
	assert.InDelta(t, 650000, base.Result.SystemCost, 1e-6)

	first := a.Results[0]
	assert.Equal(t, "9", first.Label)
	assert.InDelta(t, 390000, first.Result.SystemCost, 1e-6)
	assert.Less(t, first.Result.AnnualProduction, base.Result.AnnualProduction)
}

func TestAnalyzer_TariffFraction(t *testing.T) {
	a, err := NewAnalyzer(nil).Analyze(context.Background(), testProposal(), testUsage, testBase, defaultParam(t, ParamTariffFraction))
	require.NoError(t, err)
	require.Len(t, a.Results, 6)

	baseCount := 0
	for _, r := range a.Results {
		if r.IsBase {
			baseCount++
		}
	}
	assert.Equal(t, 1, baseCount)
}

func TestAnalyzer_Errors(t *testing.T) {
	analyzer := NewAnalyzer(nil)
	ctx := context.Background()
	param := defaultParam(t, ParamSystemCost)

	_, err := analyzer.Analyze(ctx, nil, testUsage, testBase, param)
	assert.Error(t, err)

	empty := testProposal()
	empty.Surfaces = nil
	_, err = analyzer.Analyze(ctx, empty, testUsage, testBase, param)
	assert.ErrorContains(t, err, "no panels")

	_, err = analyzer.Analyze(ctx, testProposal(), testUsage, testBase, Parameter{Name: "bogus", Steps: 1})
	assert.ErrorContains(t, err, "unknown sensitivity parameter")

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	_, err = analyzer.Analyze(cancelled, testProposal(), testUsage, testBase, param)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSummary_CriticalWhenNeverBreaksEven(t *testing.T) {
	param := Parameter{
		Name:      ParamSystemCost,
		MinValue:  decimal.NewFromInt(650000),
		MaxValue:  decimal.NewFromInt(50000000),
		Steps:     2,
		BaseValue: decimal.NewFromInt(650000),
		Unit:      "rsd",
	}

	a, err := NewAnalyzer(nil).Analyze(context.Background(), testProposal(), testUsage, testBase, param)
	require.NoError(t, err)
	assert.False(t, a.Results[1].Metrics.BreakEvenReached)
	assert.Equal(t, 1, a.Summary.NeverBreaksEven)
	assert.Equal(t, RiskCritical, a.Summary.RiskLevel)
	assert.Contains(t, a.Summary.Recommendations[0], "not reached within 25 years")
}

func TestRank(t *testing.T) {
	analyses := []*Analysis{
		{Parameter: Parameter{Name: ParamTariffFraction}, Summary: Summary{SavingsSpread: 10}},
		{Parameter: Parameter{Name: ParamSystemCost}, Summary: Summary{SavingsSpread: 390000}},
		{Parameter: Parameter{Name: ParamEscalationRate}, Summary: Summary{SavingsSpread: 900000}},
	}

	ranking := Rank(analyses)
	require.Len(t, ranking, 3)
	assert.Equal(t, ParamEscalationRate, ranking[0].Parameter)
	assert.Equal(t, ParamSystemCost, ranking[1].Parameter)
	assert.Equal(t, ParamTariffFraction, ranking[2].Parameter)
}

func TestFormatters(t *testing.T) {
	analyzer := NewAnalyzer(nil)
	analyses, err := analyzer.AnalyzeMultiple(context.Background(), testProposal(), testUsage, testBase,
		[]Parameter{defaultParam(t, ParamSystemCost), defaultParam(t, ParamEscalationRate)})
	require.NoError(t, err)
	require.Len(t, analyses, 2)

	console, err := GetFormatter("table").Format(analyses)
	require.NoError(t, err)
	assert.Contains(t, console, "SENSITIVITY ANALYSIS: SYSTEM COST")
	assert.Contains(t, console, "SENSITIVITY ANALYSIS: ESCALATION RATE")
	assert.Contains(t, console, "650000 RSD ← BASE")
	assert.Contains(t, console, "5.0% ← BASE")
	assert.Contains(t, console, "RISK ASSESSMENT:")
	assert.Contains(t, console, "PARAMETER RANKING")

	csvOut, err := GetFormatter("csv").Format(analyses)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(csvOut), "\n")
	assert.Len(t, lines, 1+7+11)
	assert.True(t, strings.HasPrefix(lines[0], "Parameter,Value,IsBase"))

	jsonOut, err := GetFormatter("json").Format(analyses)
	require.NoError(t, err)
	var decoded struct {
		Analyses []map[string]interface{} `json:"analyses"`
		Ranking  []Ranking                `json:"ranking"`
	}
	require.NoError(t, json.Unmarshal([]byte(jsonOut), &decoded))
	assert.Len(t, decoded.Analyses, 2)
	assert.Len(t, decoded.Ranking, 2)

	assert.Nil(t, GetFormatter("xml"))

	_, err = ConsoleFormatter{}.Format(nil)
	assert.Error(t, err)
}
