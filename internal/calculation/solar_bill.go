package calculation

import (
	"math"

	"github.com/solarinrs/solaroi/internal/domain"
)

// SettlementMonth is the month net-metering credit is settled and cleared
const SettlementMonth = 3

// CalculateSolarBill prices one month under net metering.
//
// Part of production is used on site; the rest is exported and offsets
// higher-rate imports together with credit banked in earlier months. Lower-rate
// usage is never offset. The offset portion of imports pays the
// distributed-system surcharge instead of the subsidy and efficiency fees.
func (ce *CalculationEngine) CalculateSolarBill(month, yearOffset int, usage, production, carriedCredit, tariffFraction, permittedPower float64) domain.SolarBillResult {
	sc := ce.Tariff.SelfConsumption
	higher := usage * tariffFraction
	lower := usage - higher

	selfConsumed := math.Min(sc.ProductionShare*production, sc.DaytimeShare*higher)
	exported := production - selfConsumed
	imported := higher - selfConsumed

	netHigher := math.Max(0, imported-exported-carriedCredit)
	netLower := lower

	nextCredit := math.Max(0, carriedCredit+production-usage)
	if month == SettlementMonth {
		nextCredit = 0
	}

	zones := AllocateZones(netHigher, netLower, netHigherShare(netHigher, netLower), ce.Tariff.Zones)

	charges := ce.priceZones(chargeBasis{
		zones:          zones,
		feeKwh:         netHigher + netLower,
		offsetKwh:      math.Max(0, imported-netHigher),
		permittedPower: permittedPower,
		yearOffset:     yearOffset,
	})

	return domain.SolarBillResult{
		Month:             month,
		YearOffset:        yearOffset,
		Usage:             usage,
		Production:        production,
		SelfConsumed:      selfConsumed,
		Exported:          exported,
		Imported:          imported,
		NetHigher:         netHigher,
		NetLower:          netLower,
		CarriedCredit:     carriedCredit,
		NextCarriedCredit: nextCredit,
		Zones:             zones,
		Charges:           charges,
		Cost:              roundCost(charges.Total),
	}
}
