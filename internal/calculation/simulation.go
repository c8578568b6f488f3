package calculation

import (
	"fmt"
	"math"

	"github.com/solarinrs/solaroi/internal/domain"
)

// RunSimulation bills every month of the 25 year horizon with and without
// solar and finds the first month the solar path has paid for itself.
func (ce *CalculationEngine) RunSimulation(params domain.SimulationParams) (*domain.SimulationResult, error) {
	if err := params.Validate(); err != nil {
		return nil, fmt.Errorf("invalid simulation parameters: %w", err)
	}

	result := &domain.SimulationResult{
		FirstYearGrid:    make([]domain.BillResult, 0, domain.MonthsPerYear),
		FirstYearSolar:   make([]domain.SolarBillResult, 0, domain.MonthsPerYear),
		AnnualUsage:      params.MonthlyUsage.Total(),
		AnnualProduction: params.AnnualProduction,
		SystemCost:       params.SystemCost,
		BreakEvenMonth:   domain.HorizonMonths,
		Cumulative:       make([]domain.CumulativePoint, 0, domain.HorizonMonths),
	}

	cumulativeGrid := 0.0
	cumulativeSolar := params.SystemCost
	credit := 0.0

	for i := 1; i <= domain.HorizonMonths; i++ {
		month := (i-1)%domain.MonthsPerYear + 1
		yearOffset := (i - 1) / domain.MonthsPerYear
		usage := params.MonthlyUsage.At(month)

		grid := ce.CalculateGridBill(month, yearOffset, usage, params.TariffFraction, params.PermittedPower)
		solar := ce.CalculateSolarBill(month, yearOffset, usage, params.MonthlyProduction.At(month), credit, params.TariffFraction, params.PermittedPower)
		credit = solar.NextCarriedCredit

		cumulativeGrid += float64(grid.Cost)
		cumulativeSolar += float64(solar.Cost)
		result.Cumulative = append(result.Cumulative, domain.CumulativePoint{
			Month: i,
			Grid:  cumulativeGrid,
			Solar: cumulativeSolar,
		})

		if i <= domain.MonthsPerYear {
			result.FirstYearGrid = append(result.FirstYearGrid, grid)
			result.FirstYearSolar = append(result.FirstYearSolar, solar)
			result.AnnualCostBefore += grid.Cost
			result.AnnualCostAfter += solar.Cost
		}

		if !result.BreakEvenReached && cumulativeSolar <= cumulativeGrid {
			result.BreakEvenReached = true
			result.BreakEvenMonth = i
		}

		ce.debugf("month %d (m=%d y=%d): grid=%d solar=%d credit=%.1f cumulative grid=%.0f solar=%.0f",
			i, month, yearOffset, grid.Cost, solar.Cost, credit, cumulativeGrid, cumulativeSolar)
	}

	result.AnnualSavings = result.AnnualCostBefore - result.AnnualCostAfter
	result.LifetimeSavings = cumulativeGrid - cumulativeSolar

	result.BreakEvenYears = result.BreakEvenMonth / domain.MonthsPerYear
	result.BreakEvenExtra = result.BreakEvenMonth % domain.MonthsPerYear
	result.BreakEvenText = FormatBreakEven(result.BreakEvenMonth)
	result.YearsInProfit = YearsInProfit(result.BreakEvenMonth)

	result.SolarCoverage = math.Min(100, params.AnnualProduction/result.AnnualUsage*100)
	result.ImportPercentage = 100 - result.SolarCoverage

	result.CO2 = ce.EstimateCO2(result.AnnualUsage, params.AnnualProduction)
	result.Sizing = ce.RecommendSystemSize(params.MonthlyUsage, params.TariffFraction, params.ProductionPerInstalledKw, params.PanelPower)

	if result.BreakEvenReached {
		ce.Logger.Infof("break-even after %d months (%s), %d years in profit", result.BreakEvenMonth, result.BreakEvenText, result.YearsInProfit)
	} else {
		ce.Logger.Warnf("break-even not reached within %d months", domain.HorizonMonths)
	}

	return result, nil
}

// YearsInProfit is the number of whole horizon years left after break-even
func YearsInProfit(breakEvenMonth int) int {
	years := breakEvenMonth / domain.MonthsPerYear
	left := domain.HorizonYears - years
	if breakEvenMonth%domain.MonthsPerYear > 0 {
		left--
	}
	if left < 0 {
		return 0
	}
	return left
}
