package calculation

import (
	"testing"

	"github.com/solarinrs/solaroi/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestRecommendSystemSize(t *testing.T) {
	engine := NewCalculationEngine()

	// 600 kWh at 85% day rate leaves 160 kWh/month above the green band
	rec := engine.RecommendSystemSize(domain.NewMonthlyFlat(600), 0.85, 1200, 400)

	assert.InDelta(t, 1920, rec.AnnualBlueRedUsage, 1e-9)
	assert.Equal(t, 3, rec.MinPanels)
	assert.Equal(t, 4, rec.OptimalPanels)
	assert.Equal(t, 5, rec.MaxPanels)
	assert.InDelta(t, 1.4, rec.MinKw, 1e-9)
	assert.InDelta(t, 1.6, rec.OptimalKw, 1e-9)
	assert.InDelta(t, 1.8, rec.MaxKw, 1e-9)
	assert.True(t, rec.Contains(4))
	assert.False(t, rec.Contains(6))
}

func TestRecommendSystemSize_NothingAboveGreen(t *testing.T) {
	engine := NewCalculationEngine()
	rec := engine.RecommendSystemSize(domain.NewMonthlyFlat(300), 0.85, 1300, 400)

	assert.Zero(t, rec.AnnualBlueRedUsage)
	assert.Equal(t, 1, rec.MinPanels)
	assert.Equal(t, 1, rec.OptimalPanels)
	assert.Equal(t, 1, rec.MaxPanels)
	assert.Zero(t, rec.OptimalKw)
}

func TestRecommendSystemSize_Ordering(t *testing.T) {
	engine := NewCalculationEngine()

	for _, usage := range []float64{380, 450, 700, 1100, 2000} {
		for _, wattage := range []float64{300, 410, 550} {
			rec := engine.RecommendSystemSize(domain.NewMonthlyFlat(usage), 0.9, 1250, wattage)
			assert.LessOrEqual(t, rec.MinPanels, rec.OptimalPanels)
			assert.LessOrEqual(t, rec.OptimalPanels, rec.MaxPanels)
			assert.GreaterOrEqual(t, rec.MinPanels, 1)
			assert.LessOrEqual(t, rec.MinKw, rec.OptimalKw)
			assert.LessOrEqual(t, rec.OptimalKw, rec.MaxKw)
		}
	}
}

func TestEstimateCO2(t *testing.T) {
	engine := NewCalculationEngine()

	testCases := []struct {
		name       string
		usage      float64
		production float64
		reduction  float64
		trees      float64
		carKm      float64
	}{
		{name: "no production", usage: 4800, production: 0},
		{name: "full offset", usage: 4800, production: 4800, reduction: 3024, trees: 60, carKm: 22567},
		{name: "partial offset", usage: 5000, production: 3000, reduction: 1890, trees: 38, carKm: 14104},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			res := engine.EstimateCO2(tc.usage, tc.production)
			assert.Equal(t, tc.reduction, res.ReductionKg)
			assert.Equal(t, tc.trees, res.Trees)
			assert.Equal(t, tc.carKm, res.CarKm)
		})
	}
}

func TestEstimateCO2_FullOffsetEqualsPreSolar(t *testing.T) {
	engine := NewCalculationEngine()
	res := engine.EstimateCO2(3650, 3650)
	assert.InDelta(t, res.PreSolarKg, res.ReductionKg, 0.5)
	assert.Zero(t, res.PostSolarKg)
}

func TestScaleProduction(t *testing.T) {
	engine := NewCalculationEngine()

	base := domain.NewMonthlyFlat(100)
	base.Set(6, 150)

	scaled := engine.ScaleProduction(base, 4.8)
	assert.Equal(t, 480.0, scaled.Monthly.At(1))
	assert.Equal(t, 720.0, scaled.Monthly.At(6))
	assert.Equal(t, 6000.0, scaled.Annual)
}

func TestScaleProduction_Identity(t *testing.T) {
	engine := NewCalculationEngine()
	base := domain.Monthly{41, 60, 98, 128, 151, 160, 171, 160, 121, 87, 49, 36}

	scaled := engine.ScaleProduction(base, 1)
	assert.Equal(t, base, scaled.Monthly)
	assert.Equal(t, base.Total(), scaled.Annual)
}

func TestScaleProduction_Rounds(t *testing.T) {
	engine := NewCalculationEngine()
	base := domain.NewMonthlyFlat(101.3)

	scaled := engine.ScaleProduction(base, 2.5)
	assert.Equal(t, 253.0, scaled.Monthly.At(1))
	assert.Equal(t, 253.0*12, scaled.Annual)
}

func TestInstalledCapacityKw(t *testing.T) {
	surfaces := []domain.RoofSurface{
		{Name: "south", AssignedPanels: 8},
		{Name: "west", AssignedPanels: 4},
		{Name: "north", AssignedPanels: 0},
	}
	assert.InDelta(t, 4.8, InstalledCapacityKw(surfaces, 400), 1e-9)
	assert.Zero(t, InstalledCapacityKw(nil, 400))
}

func TestPanelsForCapacity(t *testing.T) {
	assert.Equal(t, 15, PanelsForCapacity(6, 400))
	assert.Equal(t, 16, PanelsForCapacity(6.1, 400))
	assert.Equal(t, 0, PanelsForCapacity(6, 0))
}

func TestRecommendSystemSize_MaxPanelsCoverMaxKw(t *testing.T) {
	engine := NewCalculationEngine()
	usage := domain.NewMonthlyFlat(900)

	rec := engine.RecommendSystemSize(usage, 0.8, 1300, 410)
	assert.GreaterOrEqual(t, CapacityKw(rec.MaxPanels, 410), rec.MaxKw-0.05)
	assert.Less(t, CapacityKw(rec.MaxPanels-1, 410), rec.MaxKw+0.05)

	rec = engine.RecommendSystemSize(usage, 0.8, 1300, 0)
	assert.Equal(t, 1, rec.MaxPanels)
}
