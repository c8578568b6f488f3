package config

import (
	"fmt"
	"math"
	"sort"

	"github.com/solarinrs/solaroi/internal/domain"
)

// Usage distribution profiles for households that only know their annual consumption
const (
	DistributionFlat       = "flat"
	DistributionSummerAC   = "summer_ac"
	DistributionWinterHeat = "winter_heat"
	DistributionBoth       = "both"
)

// Relative monthly weights, January first
var distributionWeights = map[string][domain.MonthsPerYear]float64{
	DistributionFlat:       {1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1},
	DistributionSummerAC:   {7, 7, 7, 8, 9, 13, 15, 15, 10, 7, 7, 7},
	DistributionWinterHeat: {14, 13, 9, 7, 6, 5, 5, 5, 6, 8, 12, 14},
	DistributionBoth:       {12, 11, 8, 6, 7, 11, 13, 13, 8, 6, 10, 11},
}

// DistributionProfiles lists the known profile names
func DistributionProfiles() []string {
	names := make([]string, 0, len(distributionWeights))
	for name := range distributionWeights {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ProfileFor picks a profile from the household's cooling and heating equipment
func ProfileFor(hasAC, hasElectricHeat bool) string {
	switch {
	case hasAC && hasElectricHeat:
		return DistributionBoth
	case hasAC:
		return DistributionSummerAC
	case hasElectricHeat:
		return DistributionWinterHeat
	default:
		return DistributionFlat
	}
}

// DistributeAnnualUsage spreads annual kWh over the months by profile weight.
// Months are rounded to whole kWh and December takes the remainder so the
// months always add up to the annual figure. For very small annuals rounding
// can use up the total early; later months are then capped at what is left
// so no month goes negative.
func DistributeAnnualUsage(annual float64, profile string) (domain.Monthly, error) {
	var m domain.Monthly
	if annual < 0 {
		return m, fmt.Errorf("annual usage cannot be negative")
	}
	if profile == "" {
		profile = DistributionFlat
	}
	weights, ok := distributionWeights[profile]
	if !ok {
		return m, fmt.Errorf("unknown distribution profile %q", profile)
	}

	total := 0.0
	for _, w := range weights {
		total += w
	}

	running := 0.0
	for month := 1; month < domain.MonthsPerYear; month++ {
		v := math.Min(math.Round(annual*weights[month-1]/total), annual-running)
		m.Set(month, v)
		running += v
	}
	m.Set(domain.MonthsPerYear, annual-running)
	return m, nil
}
