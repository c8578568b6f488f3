package calculation

import (
	"testing"

	"github.com/solarinrs/solaroi/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testProposal() *domain.Proposal {
	return &domain.Proposal{
		ID:       "test",
		Customer: domain.Customer{Name: "Test"},
		Surfaces: []domain.RoofSurface{
			{Name: "south", AssignedPanels: 10},
			{Name: "east", AssignedPanels: 5},
		},
		Utility: domain.Utility{TariffFraction: 0.85, PermittedPower: 11.04},
		System:  domain.System{PanelWattage: 400, Cost: 650000},
	}
}

func TestProposalParams(t *testing.T) {
	engine := NewCalculationEngine()
	base := domain.Monthly{45, 62, 105, 135, 160, 168, 178, 165, 125, 90, 52, 38}
	usage := domain.NewMonthlyFlat(450)

	params := engine.ProposalParams(testProposal(), usage, base)

	// 15 panels x 400 W = 6 kWp
	assert.Equal(t, 270.0, params.MonthlyProduction.At(1))
	assert.Equal(t, 7938.0, params.AnnualProduction)
	assert.Equal(t, 1323.0, params.ProductionPerInstalledKw)
	assert.Equal(t, 650000.0, params.SystemCost)
	assert.Equal(t, usage, params.MonthlyUsage)
	require.NoError(t, params.Validate())
}

func TestProposalParams_Capacity(t *testing.T) {
	engine := NewCalculationEngine()
	base := domain.NewMonthlyFlat(100)
	usage := domain.NewMonthlyFlat(450)

	p := testProposal()
	p.Surfaces = append(p.Surfaces, domain.RoofSurface{Name: "north", AssignedPanels: 0})
	params := engine.ProposalParams(p, usage, base)
	assert.Equal(t, engine.ScaleProduction(base, InstalledCapacityKw(p.Surfaces, 400)).Annual, params.AnnualProduction)
	assert.Equal(t, 600.0, params.MonthlyProduction.At(1))

	// an explicit panel count overrides the surface assignment
	p.System.PanelCount = 10
	params = engine.ProposalParams(p, usage, base)
	assert.Equal(t, 400.0, params.MonthlyProduction.At(1))
	assert.Equal(t, engine.ParamsForPanels(p, usage, base, 10), params)
}

func TestRunProposal(t *testing.T) {
	engine := NewCalculationEngine()
	base := domain.Monthly{45, 62, 105, 135, 160, 168, 178, 165, 125, 90, 52, 38}
	usage := domain.Monthly{650, 580, 480, 380, 320, 300, 340, 350, 310, 380, 500, 640}

	result, err := engine.RunProposal(testProposal(), usage, base)
	require.NoError(t, err)
	assert.True(t, result.BreakEvenReached)
	assert.Equal(t, 120, result.BreakEvenMonth)
	assert.Equal(t, "10 godina", result.BreakEvenText)
	assert.Equal(t, int64(84592), result.AnnualCostBefore)
	assert.Equal(t, int64(34588), result.AnnualCostAfter)

	empty := testProposal()
	empty.Surfaces = nil
	_, err = engine.RunProposal(empty, usage, base)
	assert.Error(t, err)
}
