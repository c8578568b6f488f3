package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Tariff contains the regulated household electricity price table.
// It is loaded from tariff.yaml or taken from DefaultTariff.
type Tariff struct {
	Metadata TariffMetadata `yaml:"metadata" json:"metadata"`

	// EscalationRate is the assumed yearly increase of energy prices
	EscalationRate decimal.Decimal `yaml:"escalation_rate" json:"escalation_rate"`

	PermittedPowerPerKw decimal.Decimal `yaml:"permitted_power_per_kw" json:"permitted_power_per_kw"`
	SupplierMonthly     decimal.Decimal `yaml:"supplier_monthly" json:"supplier_monthly"`

	Zones ZoneLimits `yaml:"zones" json:"zones"`
	Green ZoneRates  `yaml:"green" json:"green"`
	Blue  ZoneRates  `yaml:"blue" json:"blue"`
	Red   ZoneRates  `yaml:"red" json:"red"`

	RenewableSubsidyFee        decimal.Decimal `yaml:"renewable_subsidy_fee" json:"renewable_subsidy_fee"`
	EnergyEfficiencyFee        decimal.Decimal `yaml:"energy_efficiency_fee" json:"energy_efficiency_fee"`
	DistributedSystemSurcharge decimal.Decimal `yaml:"distributed_system_surcharge" json:"distributed_system_surcharge"`

	ExciseRate      decimal.Decimal `yaml:"excise_rate" json:"excise_rate"`
	VATRate         decimal.Decimal `yaml:"vat_rate" json:"vat_rate"`
	FlatMonthlyTax  decimal.Decimal `yaml:"flat_monthly_tax" json:"flat_monthly_tax"`
	SelfConsumption SelfConsumption `yaml:"self_consumption" json:"self_consumption"`
}

// TariffMetadata describes where the rate table came from
type TariffMetadata struct {
	Year        int    `yaml:"year" json:"year"`
	Source      string `yaml:"source" json:"source"`
	Description string `yaml:"description" json:"description"`
}

// ZoneLimits are the cumulative monthly kWh breakpoints of the consumption bands
type ZoneLimits struct {
	GreenLimit float64 `yaml:"green_limit" json:"green_limit"`
	BlueLimit  float64 `yaml:"blue_limit" json:"blue_limit"`
}

// ZoneRates are the per-kWh prices of one band for both tariff levels
type ZoneRates struct {
	Higher decimal.Decimal `yaml:"higher" json:"higher"`
	Lower  decimal.Decimal `yaml:"lower" json:"lower"`
}

// SelfConsumption caps on-site use of solar production to the smaller of
// ProductionShare of production and DaytimeShare of higher-tariff usage.
type SelfConsumption struct {
	ProductionShare float64 `yaml:"production_share" json:"production_share"`
	DaytimeShare    float64 `yaml:"daytime_share" json:"daytime_share"`
}

// DefaultTariff returns the published Serbian household rate table
func DefaultTariff() Tariff {
	return Tariff{
		Metadata: TariffMetadata{
			Year:        2024,
			Source:      "EPS household tariff",
			Description: "Dual-tariff household supply with green/blue/red consumption zones",
		},
		EscalationRate:      decimal.RequireFromString("0.05"),
		PermittedPowerPerKw: decimal.RequireFromString("54.258"),
		SupplierMonthly:     decimal.RequireFromString("146.521"),
		Zones: ZoneLimits{
			GreenLimit: 350,
			BlueLimit:  1200,
		},
		Green: ZoneRates{
			Higher: decimal.RequireFromString("9.6136"),
			Lower:  decimal.RequireFromString("2.4034"),
		},
		Blue: ZoneRates{
			Higher: decimal.RequireFromString("14.4203"),
			Lower:  decimal.RequireFromString("3.6051"),
		},
		Red: ZoneRates{
			Higher: decimal.RequireFromString("28.8407"),
			Lower:  decimal.RequireFromString("7.2102"),
		},
		RenewableSubsidyFee:        decimal.RequireFromString("0.801"),
		EnergyEfficiencyFee:        decimal.RequireFromString("0.015"),
		DistributedSystemSurcharge: decimal.RequireFromString("3.897"),
		ExciseRate:                 decimal.RequireFromString("0.075"),
		VATRate:                    decimal.RequireFromString("0.2"),
		FlatMonthlyTax:             decimal.NewFromInt(300),
		SelfConsumption: SelfConsumption{
			ProductionShare: 0.4,
			DaytimeShare:    0.6,
		},
	}
}

// EscalationMultiplier returns (1 + EscalationRate)^yearOffset
func (t *Tariff) EscalationMultiplier(yearOffset int) decimal.Decimal {
	if yearOffset <= 0 {
		return decimal.NewFromInt(1)
	}
	return decimal.NewFromInt(1).Add(t.EscalationRate).Pow(decimal.NewFromInt(int64(yearOffset)))
}

// Validate checks that the table is internally consistent
func (t *Tariff) Validate() error {
	if t.Zones.GreenLimit <= 0 {
		return fmt.Errorf("green zone limit must be positive")
	}
	if t.Zones.GreenLimit >= t.Zones.BlueLimit {
		return fmt.Errorf("green zone limit (%.0f) must be below blue zone limit (%.0f)", t.Zones.GreenLimit, t.Zones.BlueLimit)
	}
	if t.EscalationRate.LessThan(decimal.NewFromFloat(-0.5)) {
		return fmt.Errorf("escalation rate cannot be less than -50%%")
	}

	rates := map[string]decimal.Decimal{
		"permitted_power_per_kw":       t.PermittedPowerPerKw,
		"supplier_monthly":             t.SupplierMonthly,
		"green.higher":                 t.Green.Higher,
		"green.lower":                  t.Green.Lower,
		"blue.higher":                  t.Blue.Higher,
		"blue.lower":                   t.Blue.Lower,
		"red.higher":                   t.Red.Higher,
		"red.lower":                    t.Red.Lower,
		"renewable_subsidy_fee":        t.RenewableSubsidyFee,
		"energy_efficiency_fee":        t.EnergyEfficiencyFee,
		"distributed_system_surcharge": t.DistributedSystemSurcharge,
		"excise_rate":                  t.ExciseRate,
		"vat_rate":                     t.VATRate,
		"flat_monthly_tax":             t.FlatMonthlyTax,
	}
	for name, rate := range rates {
		if rate.IsNegative() {
			return fmt.Errorf("%s cannot be negative", name)
		}
	}

	if t.SelfConsumption.ProductionShare < 0 || t.SelfConsumption.ProductionShare > 1 {
		return fmt.Errorf("self_consumption.production_share must be between 0 and 1")
	}
	if t.SelfConsumption.DaytimeShare < 0 || t.SelfConsumption.DaytimeShare > 1 {
		return fmt.Errorf("self_consumption.daytime_share must be between 0 and 1")
	}
	return nil
}
