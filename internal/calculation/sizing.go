package calculation

import (
	"math"

	"github.com/solarinrs/solaroi/internal/domain"
)

// Sizing range around the optimal capacity
const (
	minSizeFactor = 0.85
	maxSizeFactor = 1.10
)

// RecommendSystemSize sizes the array to cover the day-rate energy billed
// above the green band, which is the most expensive energy to import.
func (ce *CalculationEngine) RecommendSystemSize(monthlyUsage domain.Monthly, tariffFraction, productionPerInstalledKw, panelWattage float64) domain.SizingRecommendation {
	annualBlueRed := 0.0
	for month := 1; month <= domain.MonthsPerYear; month++ {
		day := monthlyUsage.At(month) * tariffFraction
		annualBlueRed += math.Max(0, day-ce.Tariff.Zones.GreenLimit)
	}

	var optimalKw float64
	if productionPerInstalledKw > 0 {
		optimalKw = annualBlueRed / productionPerInstalledKw
	}
	minKw := optimalKw * minSizeFactor
	maxKw := optimalKw * maxSizeFactor

	panels := func(kw float64, round func(float64) float64) int {
		if panelWattage <= 0 {
			return 1
		}
		return atLeastOne(int(round(kw * 1000 / panelWattage)))
	}

	return domain.SizingRecommendation{
		AnnualBlueRedUsage: annualBlueRed,
		MinPanels:          panels(minKw, math.Floor),
		OptimalPanels:      panels(optimalKw, roundHalfUp),
		MaxPanels:          atLeastOne(PanelsForCapacity(maxKw, panelWattage)),
		MinKw:              roundTenth(minKw),
		OptimalKw:          roundTenth(optimalKw),
		MaxKw:              roundTenth(maxKw),
	}
}

func atLeastOne(n int) int {
	if n < 1 {
		return 1
	}
	return n
}

// roundHalfUp matches the rounding of displayed panel counts (x.5 rounds up)
func roundHalfUp(v float64) float64 {
	return math.Floor(v + 0.5)
}

func roundTenth(v float64) float64 {
	return roundHalfUp(v*10) / 10
}
