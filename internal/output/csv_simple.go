package output

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"github.com/shopspring/decimal"
)

// CSVSummarizer implements the simple summary CSV output (one row per report).
type CSVSummarizer struct{}

func (c CSVSummarizer) Name() string { return "csv" }

func (c CSVSummarizer) Format(r *Report) ([]byte, error) {
	return FormatSummaryCSV([]*Report{r})
}

// FormatSummaryCSV writes one summary row for every report
func FormatSummaryCSV(reports []*Report) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{
		"ID", "Customer", "Panels", "CapacityKw", "SystemCost",
		"AnnualUsage", "AnnualProduction", "AnnualCostBefore", "AnnualCostAfter", "AnnualSavings",
		"BreakEvenMonth", "BreakEven", "LifetimeSavings", "CO2ReductionKg",
	}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, r := range reports {
		if r == nil || r.Result == nil {
			continue
		}
		res := r.Result
		breakEvenMonth, breakEven := "", "not reached"
		if res.BreakEvenReached {
			breakEvenMonth = strconv.Itoa(res.BreakEvenMonth)
			breakEven = res.BreakEvenText
		}
		row := []string{
			r.ID,
			r.Customer,
			strconv.Itoa(r.Panels),
			fixed(r.CapacityKw, 2),
			fixed(res.SystemCost, 0),
			fixed(res.AnnualUsage, 0),
			fixed(res.AnnualProduction, 0),
			strconv.FormatInt(res.AnnualCostBefore, 10),
			strconv.FormatInt(res.AnnualCostAfter, 10),
			strconv.FormatInt(res.AnnualSavings, 10),
			breakEvenMonth,
			breakEven,
			fixed(res.LifetimeSavings, 0),
			fixed(res.CO2.ReductionKg, 1),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

// MonthlyCSVFormatter writes the first-year bills one row per month
type MonthlyCSVFormatter struct{}

func (MonthlyCSVFormatter) Name() string { return "monthly-csv" }

func (MonthlyCSVFormatter) Format(r *Report) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{
		"Month", "Usage", "Production", "SelfConsumed", "Exported", "Imported",
		"CarriedCredit", "GridCost", "SolarCost", "Savings",
	}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	if r != nil && r.Result != nil {
		res := r.Result
		for i, s := range res.FirstYearSolar {
			var gridCost int64
			if i < len(res.FirstYearGrid) {
				gridCost = res.FirstYearGrid[i].Cost
			}
			row := []string{
				strconv.Itoa(s.Month),
				fixed(s.Usage, 2),
				fixed(s.Production, 2),
				fixed(s.SelfConsumed, 2),
				fixed(s.Exported, 2),
				fixed(s.Imported, 2),
				fixed(s.NextCarriedCredit, 2),
				strconv.FormatInt(gridCost, 10),
				strconv.FormatInt(s.Cost, 10),
				strconv.FormatInt(gridCost-s.Cost, 10),
			}
			if err := w.Write(row); err != nil {
				return nil, err
			}
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

func fixed(v float64, places int32) string {
	return decimal.NewFromFloat(v).StringFixed(places)
}
