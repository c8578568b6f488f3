package calculation

import "github.com/solarinrs/solaroi/internal/domain"

// CalculateGridBill prices one month of grid-only consumption
func (ce *CalculationEngine) CalculateGridBill(month, yearOffset int, usage, tariffFraction, permittedPower float64) domain.BillResult {
	higher := usage * tariffFraction
	lower := usage - higher

	share := tariffFraction
	if usage <= 0 {
		share = 0
	}
	zones := AllocateZones(higher, lower, share, ce.Tariff.Zones)

	charges := ce.priceZones(chargeBasis{
		zones:          zones,
		feeKwh:         usage,
		permittedPower: permittedPower,
		yearOffset:     yearOffset,
	})

	return domain.BillResult{
		Month:      month,
		YearOffset: yearOffset,
		Usage:      usage,
		Zones:      zones,
		Charges:    charges,
		Cost:       roundCost(charges.Total),
	}
}
