package compare

import (
	"encoding/csv"
	"strconv"
	"strings"
)

// CSVFormatter writes one row per system size, base first
type CSVFormatter struct{}

var csvHeader = []string{
	"scenario", "role", "panels", "capacity_kwp", "system_cost",
	"annual_production_kwh", "annual_savings", "lifetime_savings", "break_even_month",
	"in_recommended_range", "savings_diff", "savings_diff_pct", "break_even_diff_months", "cost_diff",
}

func (cf *CSVFormatter) Format(compSet *ComparisonSet) (string, error) {
	var sb strings.Builder
	w := csv.NewWriter(&sb)

	rows := [][]string{csvHeader}
	for i, r := range compSet.All() {
		role := "alternative"
		if i == 0 && compSet.BaseResult != nil {
			role = "base"
		}
		rows = append(rows, csvRow(r, role))
	}
	if err := w.WriteAll(rows); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// csvRow leaves break_even_month empty when the horizon passes without payback
func csvRow(r ComparisonResult, role string) []string {
	var breakEven string
	if r.BreakEvenReached {
		breakEven = strconv.Itoa(r.BreakEvenMonth)
	}
	return []string{
		r.ScenarioName,
		role,
		strconv.Itoa(r.Panels),
		strconv.FormatFloat(r.CapacityKw, 'f', 2, 64),
		r.SystemCost.StringFixed(0),
		strconv.FormatFloat(r.AnnualProduction, 'f', 0, 64),
		r.AnnualSavings.StringFixed(0),
		r.LifetimeSavings.StringFixed(0),
		breakEven,
		strconv.FormatBool(r.InRecommendedRange),
		r.SavingsDiffFromBase.StringFixed(0),
		r.SavingsPctFromBase.StringFixed(2),
		strconv.Itoa(r.BreakEvenDiff),
		r.CostDiffFromBase.StringFixed(0),
	}
}
