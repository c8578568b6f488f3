package domain

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// HorizonYears is the lifetime the investment is evaluated over
	HorizonYears = 25
	// HorizonMonths is the number of simulated billing months
	HorizonMonths = HorizonYears * MonthsPerYear
)

// SimulationParams bundles every input of one amortization run
type SimulationParams struct {
	MonthlyUsage             Monthly `json:"monthly_usage" yaml:"monthly_usage"`
	MonthlyProduction        Monthly `json:"monthly_production" yaml:"monthly_production"`
	AnnualProduction         float64 `json:"annual_production" yaml:"annual_production"`
	SystemCost               float64 `json:"system_cost" yaml:"system_cost"`
	TariffFraction           float64 `json:"tariff_fraction" yaml:"tariff_fraction"`
	PermittedPower           float64 `json:"permitted_power" yaml:"permitted_power"`
	PanelPower               float64 `json:"panel_power" yaml:"panel_power"`
	ProductionPerInstalledKw float64 `json:"production_per_installed_kw" yaml:"production_per_installed_kw"`
}

// ValidationError names one rejected input
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validate rejects inputs the simulator assumes never occur
func (p SimulationParams) Validate() error {
	var errs []error
	add := func(field, msg string) {
		errs = append(errs, ValidationError{Field: field, Message: msg})
	}

	if p.MonthlyUsage.HasNegative() {
		add("monthly_usage", "values cannot be negative")
	}
	if p.MonthlyUsage.Total() <= 0 {
		add("monthly_usage", "annual usage must be positive")
	}
	if p.MonthlyProduction.HasNegative() {
		add("monthly_production", "values cannot be negative")
	}
	if p.AnnualProduction < 0 {
		add("annual_production", "cannot be negative")
	}
	if p.SystemCost < 0 {
		add("system_cost", "cannot be negative")
	}
	if p.TariffFraction < 0 || p.TariffFraction > 1 {
		add("tariff_fraction", fmt.Sprintf("must be between 0 and 1, got %g", p.TariffFraction))
	}
	if p.PermittedPower < 0 {
		add("permitted_power", "cannot be negative")
	}
	if p.PanelPower <= 0 {
		add("panel_power", "must be positive")
	}
	if p.ProductionPerInstalledKw <= 0 {
		add("production_per_installed_kw", "must be positive")
	}
	return errors.Join(errs...)
}

// CumulativePoint is the running cost of both paths after one month
type CumulativePoint struct {
	Month int     `json:"month"`
	Grid  float64 `json:"grid"`
	Solar float64 `json:"solar"`
}

// Savings returns how far the solar path is ahead of the grid path
func (p CumulativePoint) Savings() float64 {
	return p.Grid - p.Solar
}

// SimulationResult aggregates one amortization run
type SimulationResult struct {
	FirstYearGrid  []BillResult      `json:"first_year_grid"`
	FirstYearSolar []SolarBillResult `json:"first_year_solar"`

	AnnualUsage      float64 `json:"annual_usage"`
	AnnualProduction float64 `json:"annual_production"`
	AnnualCostBefore int64   `json:"annual_cost_before"`
	AnnualCostAfter  int64   `json:"annual_cost_after"`
	AnnualSavings    int64   `json:"annual_savings"`
	SystemCost       float64 `json:"system_cost"`
	SolarCoverage    float64 `json:"solar_coverage"`
	ImportPercentage float64 `json:"import_percentage"`
	LifetimeSavings  float64 `json:"lifetime_savings"`
	BreakEvenReached bool    `json:"break_even_reached"`
	BreakEvenMonth   int     `json:"break_even_month"`
	BreakEvenYears   int     `json:"break_even_years"`
	BreakEvenExtra   int     `json:"break_even_extra_months"`
	BreakEvenText    string  `json:"break_even_text"`
	YearsInProfit    int     `json:"years_in_profit"`

	CO2        CO2Result            `json:"co2"`
	Sizing     SizingRecommendation `json:"sizing"`
	Cumulative []CumulativePoint    `json:"cumulative"`
}

// Summary returns a one-line description used in logs and tables
func (r *SimulationResult) Summary() string {
	var b strings.Builder
	fmt.Fprintf(&b, "savings %d RSD/yr, coverage %.0f%%", r.AnnualSavings, r.SolarCoverage)
	if r.BreakEvenReached {
		fmt.Fprintf(&b, ", break-even %s", r.BreakEvenText)
	} else {
		b.WriteString(", break-even not reached")
	}
	return b.String()
}
