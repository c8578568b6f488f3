package calculation

import (
	"math"

	"github.com/solarinrs/solaroi/internal/domain"
)

// EstimateCO2 converts a year of solar production into avoided coal-fired emissions
func (ce *CalculationEngine) EstimateCO2(annualUsage, annualProduction float64) domain.CO2Result {
	f := ce.CO2
	perKwh := f.CoalShare * f.CoalKgPerKwh

	pre := annualUsage * perKwh
	post := (annualUsage - annualProduction) * perKwh
	reduction := math.Round(pre - post)

	res := domain.CO2Result{
		PreSolarKg:  pre,
		PostSolarKg: post,
		ReductionKg: reduction,
	}
	if f.TreeKgPerYear > 0 {
		res.Trees = math.Round(reduction / f.TreeKgPerYear)
	}
	if f.CarKgPerHundredKm > 0 {
		res.CarKm = math.Round(reduction / f.CarKgPerHundredKm * 100)
	}
	return res
}
