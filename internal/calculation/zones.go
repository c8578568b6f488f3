package calculation

import (
	"math"

	"github.com/solarinrs/solaroi/internal/domain"
)

// AllocateZones distributes a month's energy across the green, blue and red bands.
//
// Usage that fits in the green band keeps its higher/lower split as given.
// Above the green limit every band is divided by higherShare, the fraction of
// the month billed at the higher (day) rate. Callers pass a share of 0 when
// there is no usage at all.
func AllocateZones(higher, lower, higherShare float64, zones domain.ZoneLimits) domain.ZoneUsage {
	total := higher + lower
	if total <= zones.GreenLimit {
		return domain.ZoneUsage{GreenHigher: higher, GreenLower: lower}
	}

	green := zones.GreenLimit
	blue := math.Min(total, zones.BlueLimit) - zones.GreenLimit
	red := math.Max(0, total-zones.BlueLimit)
	lowerShare := 1 - higherShare

	return domain.ZoneUsage{
		GreenHigher: green * higherShare,
		GreenLower:  green * lowerShare,
		BlueHigher:  blue * higherShare,
		BlueLower:   blue * lowerShare,
		RedHigher:   red * higherShare,
		RedLower:    red * lowerShare,
	}
}

// netHigherShare is the higher-rate fraction of what remains billable after solar
func netHigherShare(netHigher, netLower float64) float64 {
	total := netHigher + netLower
	if total <= 0 || netHigher <= 0 {
		return 0
	}
	if netLower <= 0 {
		return 1
	}
	return netHigher / total
}
