package compare

import (
	"context"
	"testing"

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
		ID: "compare-test",
		Surfaces: []domain.RoofSurface{
			{Name: "Jug", AssignedPanels: 12},
			{Name: "Zapad", AssignedPanels: 3},
		},
		Utility: domain.Utility{TariffFraction: 0.85, PermittedPower: 11.04},
		System:  domain.System{PanelWattage: 400, Cost: 600000},
	}
}

func TestCompareEngine_Compare(t *testing.T) {
	engine := NewCompareEngine(calculation.NewCalculationEngine())

	set, err := engine.Compare(context.Background(), testProposal(), testUsage, testBase, CompareOptions{
		Panels: []int{20, 10, 15},
	})
	require.NoError(t, err)

	require.NotNil(t, set.BaseResult)
	assert.Equal(t, "15 panels", set.BaseScenarioName)
	assert.Equal(t, 15, set.BaseResult.Panels)
	assert.InDelta(t, 6.0, set.BaseResult.CapacityKw, 1e-9)
	assert.Equal(t, "600000", set.BaseResult.SystemCost.StringFixed(0))

	require.Len(t, set.AlternativeResults, 2, "Base panel count is not repeated")
	assert.Equal(t, "10 panels", set.AlternativeResults[0].ScenarioName)
	assert.Equal(t, "20 panels", set.AlternativeResults[1].ScenarioName)

	// 40.000 RSD per panel
	assert.Equal(t, "400000", set.AlternativeResults[0].SystemCost.StringFixed(0))
	assert.Equal(t, "800000", set.AlternativeResults[1].SystemCost.StringFixed(0))
	assert.Equal(t, "-200000", set.AlternativeResults[0].CostDiffFromBase.StringFixed(0))
	assert.Equal(t, "4.0 kWp for 400000 RSD", set.AlternativeResults[0].Description)

	for _, alt := range set.AlternativeResults {
		assert.Equal(t, alt.BreakEvenMonth-set.BaseResult.BreakEvenMonth, alt.BreakEvenDiff)
		assert.True(t, alt.LifetimeSavings.Sub(set.BaseResult.LifetimeSavings).Equal(alt.SavingsDiffFromBase))
	}
	assert.Len(t, set.All(), 3)
}

func TestCompareEngine_IncludeRecommended(t *testing.T) {
	engine := NewCompareEngine(calculation.NewCalculationEngine())

	set, err := engine.Compare(context.Background(), testProposal(), testUsage, testBase, CompareOptions{
		IncludeRecommended: true,
		CostPerPanel:       50000,
	})
	require.NoError(t, err)

	s := set.BaseResult.Result.Sizing
	want := uniquePanels([]int{s.MinPanels, s.OptimalPanels, s.MaxPanels}, 15)
	require.Len(t, set.AlternativeResults, len(want))
	for i, n := range want {
		assert.Equal(t, n, set.AlternativeResults[i].Panels)
		assert.True(t, set.AlternativeResults[i].InRecommendedRange)
		assert.Equal(t, int64(n*50000), set.AlternativeResults[i].SystemCost.IntPart())
	}
}

func TestCompareEngine_Errors(t *testing.T) {
	engine := NewCompareEngine(calculation.NewCalculationEngine())

	empty := testProposal()
	empty.Surfaces = nil
	_, err := engine.Compare(context.Background(), empty, testUsage, testBase, CompareOptions{Panels: []int{10}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no panels")

	_, err = engine.Compare(context.Background(), testProposal(), domain.Monthly{}, testBase, CompareOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to calculate base system")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = engine.Compare(ctx, testProposal(), testUsage, testBase, CompareOptions{Panels: []int{10}})
	assert.ErrorIs(t, err, context.Canceled)
}
