package calculation

import (
	"github.com/shopspring/decimal"
	"github.com/solarinrs/solaroi/internal/domain"
)

// chargeBasis is everything the tax stack needs for one month
type chargeBasis struct {
	zones          domain.ZoneUsage
	feeKwh         float64 // energy the subsidy and efficiency fees are charged on
	offsetKwh      float64 // energy offset by export, subject to the distributed-system surcharge
	permittedPower float64
	yearOffset     int
}

// priceZones applies the tariff and tax stack shared by both bill calculators.
// Only the zone energy and the distributed-system surcharge are escalated.
func (ce *CalculationEngine) priceZones(b chargeBasis) domain.Charges {
	t := &ce.Tariff
	escalation := t.EscalationMultiplier(b.yearOffset)

	energy := kwh(b.zones.GreenHigher).Mul(t.Green.Higher).
		Add(kwh(b.zones.GreenLower).Mul(t.Green.Lower)).
		Add(kwh(b.zones.BlueHigher).Mul(t.Blue.Higher)).
		Add(kwh(b.zones.BlueLower).Mul(t.Blue.Lower)).
		Add(kwh(b.zones.RedHigher).Mul(t.Red.Higher)).
		Add(kwh(b.zones.RedLower).Mul(t.Red.Lower)).
		Mul(escalation)

	c := domain.Charges{
		Energy:            energy,
		PermittedPower:    kwh(b.permittedPower).Mul(t.PermittedPowerPerKw),
		Supplier:          t.SupplierMonthly,
		RenewableSubsidy:  kwh(b.feeKwh).Mul(t.RenewableSubsidyFee),
		EnergyEfficiency:  kwh(b.feeKwh).Mul(t.EnergyEfficiencyFee),
		DistributedSystem: kwh(b.offsetKwh).Mul(t.DistributedSystemSurcharge).Mul(escalation),
		FlatTax:           t.FlatMonthlyTax,
	}

	base := c.ExciseBase()
	c.Excise = base.Mul(t.ExciseRate)
	c.VAT = base.Add(c.Excise).Mul(t.VATRate)
	c.Total = base.Add(c.Excise).Add(c.VAT).Add(c.FlatTax)
	return c
}

// roundCost rounds a bill to whole dinars, halves away from zero
func roundCost(total decimal.Decimal) int64 {
	return total.Round(0).IntPart()
}

func kwh(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v)
}
