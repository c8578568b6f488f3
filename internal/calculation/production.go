package calculation

import (
	"math"

	"github.com/solarinrs/solaroi/internal/domain"
)

// ScaleProduction multiplies a per-kWp profile by the installed capacity.
// Each month is rounded to whole kWh and the annual total is their sum.
func (ce *CalculationEngine) ScaleProduction(base domain.Monthly, totalCapacityKw float64) domain.ScaledProduction {
	var out domain.ScaledProduction
	scaled := base.Scale(totalCapacityKw)
	for month := 1; month <= domain.MonthsPerYear; month++ {
		out.Monthly.Set(month, math.Round(scaled.At(month)))
	}
	out.Annual = out.Monthly.Total()
	return out
}

// InstalledCapacityKw returns the capacity of all panels assigned across surfaces
func InstalledCapacityKw(surfaces []domain.RoofSurface, panelWattage float64) float64 {
	panels := 0
	for _, s := range surfaces {
		panels += s.AssignedPanels
	}
	return CapacityKw(panels, panelWattage)
}

// CapacityKw converts a panel count to kWp
func CapacityKw(panels int, panelWattage float64) float64 {
	return float64(panels) * panelWattage / 1000
}

// PanelsForCapacity returns how many panels give at least the requested capacity
func PanelsForCapacity(capacityKw, panelWattage float64) int {
	if panelWattage <= 0 {
		return 0
	}
	return int(math.Ceil(capacityKw * 1000 / panelWattage))
}
