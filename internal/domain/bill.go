package domain

import "github.com/shopspring/decimal"

// ZoneUsage is a month's energy split into the six (band x tariff level) quantities
type ZoneUsage struct {
	GreenHigher float64 `json:"green_higher" yaml:"green_higher"`
	GreenLower  float64 `json:"green_lower" yaml:"green_lower"`
	BlueHigher  float64 `json:"blue_higher" yaml:"blue_higher"`
	BlueLower   float64 `json:"blue_lower" yaml:"blue_lower"`
	RedHigher   float64 `json:"red_higher" yaml:"red_higher"`
	RedLower    float64 `json:"red_lower" yaml:"red_lower"`
}

// Green returns the total green band quantity
func (z ZoneUsage) Green() float64 { return z.GreenHigher + z.GreenLower }

// Blue returns the total blue band quantity
func (z ZoneUsage) Blue() float64 { return z.BlueHigher + z.BlueLower }

// Red returns the total red band quantity
func (z ZoneUsage) Red() float64 { return z.RedHigher + z.RedLower }

// Total returns the energy across all bands
func (z ZoneUsage) Total() float64 { return z.Green() + z.Blue() + z.Red() }

// Charges itemizes one monthly bill before rounding
type Charges struct {
	Energy            decimal.Decimal `json:"energy"`
	PermittedPower    decimal.Decimal `json:"permitted_power"`
	Supplier          decimal.Decimal `json:"supplier"`
	RenewableSubsidy  decimal.Decimal `json:"renewable_subsidy"`
	EnergyEfficiency  decimal.Decimal `json:"energy_efficiency"`
	DistributedSystem decimal.Decimal `json:"distributed_system"`
	Excise            decimal.Decimal `json:"excise"`
	VAT               decimal.Decimal `json:"vat"`
	FlatTax           decimal.Decimal `json:"flat_tax"`
	Total             decimal.Decimal `json:"total"`
}

// ExciseBase is the sum the excise tax is charged on
func (c Charges) ExciseBase() decimal.Decimal {
	return c.Energy.Add(c.PermittedPower).Add(c.Supplier).
		Add(c.RenewableSubsidy).Add(c.EnergyEfficiency).Add(c.DistributedSystem)
}

// BillResult is a grid-only monthly bill
type BillResult struct {
	Month      int       `json:"month"`
	YearOffset int       `json:"year_offset"`
	Usage      float64   `json:"usage"`
	Zones      ZoneUsage `json:"zones"`
	Charges    Charges   `json:"charges"`
	Cost       int64     `json:"cost"`
}

// SolarBillResult is a monthly bill under net metering
type SolarBillResult struct {
	Month             int       `json:"month"`
	YearOffset        int       `json:"year_offset"`
	Usage             float64   `json:"usage"`
	Production        float64   `json:"production"`
	SelfConsumed      float64   `json:"self_consumed"`
	Exported          float64   `json:"exported"`
	Imported          float64   `json:"imported"`
	NetHigher         float64   `json:"net_higher"`
	NetLower          float64   `json:"net_lower"`
	CarriedCredit     float64   `json:"carried_credit"`
	NextCarriedCredit float64   `json:"next_carried_credit"`
	Zones             ZoneUsage `json:"zones"`
	Charges           Charges   `json:"charges"`
	Cost              int64     `json:"cost"`
}

// NetUsage is the energy the utility bills after solar offset
func (r SolarBillResult) NetUsage() float64 {
	return r.NetHigher + r.NetLower
}
