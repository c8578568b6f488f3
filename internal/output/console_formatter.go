package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/solarinrs/solaroi/internal/domain"
)

var (
	headingStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#F5A623"))
	sectionStyle  = lipgloss.NewStyle().Bold(true)
	positiveStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#04B575"))
	negativeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF5F87"))
)

const (
	chartWidth  = 60
	chartHeight = 12
)

// ConsoleFormatter renders the detailed console report
type ConsoleFormatter struct{}

func (ConsoleFormatter) Name() string { return "console" }

func (ConsoleFormatter) Format(r *Report) ([]byte, error) {
	if r == nil || r.Result == nil {
		return nil, fmt.Errorf("report has no simulation result")
	}
	res := r.Result
	var buf bytes.Buffer

	fmt.Fprintln(&buf, headingStyle.Render("SOLAR INVESTMENT ANALYSIS"))
	fmt.Fprintln(&buf, strings.Repeat("=", 65))
	fmt.Fprintf(&buf, "Proposal: %s\n", r.ID)
	if r.Customer != "" {
		fmt.Fprintf(&buf, "Customer: %s\n", r.Customer)
	}
	if r.Location != "" {
		fmt.Fprintf(&buf, "Location: %s\n", r.Location)
	}
	if r.Panels > 0 {
		fmt.Fprintf(&buf, "System:   %d x %.0f W = %.1f kWp\n", r.Panels, r.PanelWatts, r.CapacityKw)
	}
	fmt.Fprintf(&buf, "Cost:     %s\n", FormatRSD(res.SystemCost))
	fmt.Fprintln(&buf)

	fmt.Fprintln(&buf, sectionStyle.Render("KEY ASSUMPTIONS:"))
	assumptions := r.Assumptions
	if len(assumptions) == 0 {
		assumptions = DefaultAssumptions
	}
	for _, a := range assumptions {
		fmt.Fprintf(&buf, "• %s\n", a)
	}
	fmt.Fprintln(&buf)

	fmt.Fprintln(&buf, sectionStyle.Render("ENERGY"))
	fmt.Fprintf(&buf, "  Annual usage:        %s\n", FormatKwh(res.AnnualUsage))
	fmt.Fprintf(&buf, "  Annual production:   %s\n", FormatKwh(res.AnnualProduction))
	fmt.Fprintf(&buf, "  Solar coverage:      %s\n", FormatPercentage(res.SolarCoverage))
	fmt.Fprintf(&buf, "  Grid import:         %s\n", FormatPercentage(res.ImportPercentage))
	fmt.Fprintln(&buf)

	writeMonthlyTable(&buf, res)

	fmt.Fprintln(&buf, sectionStyle.Render("RETURN ON INVESTMENT"))
	fmt.Fprintf(&buf, "  Bill before solar:   %s / year\n", FormatRSD(float64(res.AnnualCostBefore)))
	fmt.Fprintf(&buf, "  Bill with solar:     %s / year\n", FormatRSD(float64(res.AnnualCostAfter)))
	fmt.Fprintf(&buf, "  Annual savings:      %s\n", signed(float64(res.AnnualSavings)))
	if res.BreakEvenReached {
		fmt.Fprintf(&buf, "  Break-even:          %s (month %d)\n", res.BreakEvenText, res.BreakEvenMonth)
		fmt.Fprintf(&buf, "  Years in profit:     %d\n", res.YearsInProfit)
	} else {
		fmt.Fprintf(&buf, "  Break-even:          %s\n", negativeStyle.Render(fmt.Sprintf("not reached within %d years", domain.HorizonYears)))
	}
	fmt.Fprintf(&buf, "  %d-year savings:     %s\n", domain.HorizonYears, signed(res.LifetimeSavings))
	fmt.Fprintln(&buf)

	s := res.Sizing
	fmt.Fprintln(&buf, sectionStyle.Render("RECOMMENDED SIZE"))
	fmt.Fprintf(&buf, "  Panels:              %d - %d (optimal %d)\n", s.MinPanels, s.MaxPanels, s.OptimalPanels)
	fmt.Fprintf(&buf, "  Capacity:            %.1f - %.1f kWp (optimal %.1f kWp)\n", s.MinKw, s.MaxKw, s.OptimalKw)
	if r.Panels > 0 {
		if s.Contains(r.Panels) {
			fmt.Fprintf(&buf, "  %s\n", positiveStyle.Render(fmt.Sprintf("%d panels is inside the recommended range", r.Panels)))
		} else {
			fmt.Fprintf(&buf, "  %s\n", negativeStyle.Render(fmt.Sprintf("%d panels is outside the recommended range", r.Panels)))
		}
	}
	fmt.Fprintln(&buf)

	fmt.Fprintln(&buf, sectionStyle.Render("ENVIRONMENT"))
	fmt.Fprintf(&buf, "  CO2 before solar:    %.0f kg/year\n", res.CO2.PreSolarKg)
	fmt.Fprintf(&buf, "  CO2 reduction:       %.0f kg/year\n", res.CO2.ReductionKg)
	fmt.Fprintf(&buf, "  Equivalent trees:    %.0f\n", res.CO2.Trees)
	fmt.Fprintf(&buf, "  Car km avoided:      %.0f\n", res.CO2.CarKm)
	fmt.Fprintln(&buf)

	if len(res.Cumulative) > 0 {
		fmt.Fprintln(&buf, sectionStyle.Render("CUMULATIVE SAVINGS (RSD by month)"))
		buf.WriteString(RenderSavingsChart(res.Cumulative, chartWidth, chartHeight))
	}
	return buf.Bytes(), nil
}

func writeMonthlyTable(buf *bytes.Buffer, res *domain.SimulationResult) {
	if len(res.FirstYearSolar) == 0 {
		return
	}
	fmt.Fprintln(buf, sectionStyle.Render("FIRST YEAR BILLS"))
	fmt.Fprintf(buf, "%-6s %10s %12s %14s %14s %14s %10s\n",
		"Month", "Usage", "Production", "Grid bill", "Solar bill", "Savings", "Credit")
	fmt.Fprintln(buf, strings.Repeat("-", 86))
	for i, solar := range res.FirstYearSolar {
		var gridCost int64
		if i < len(res.FirstYearGrid) {
			gridCost = res.FirstYearGrid[i].Cost
		}
		fmt.Fprintf(buf, "%-6s %10s %12s %14s %14s %14s %10s\n",
			MonthName(solar.Month),
			FormatKwh(solar.Usage),
			FormatKwh(solar.Production),
			FormatRSD(float64(gridCost)),
			FormatRSD(float64(solar.Cost)),
			FormatRSD(float64(gridCost-solar.Cost)),
			FormatKwh(solar.NextCarriedCredit),
		)
	}
	fmt.Fprintln(buf, strings.Repeat("-", 86))
	fmt.Fprintf(buf, "%-6s %10s %12s %14s %14s %14s\n",
		"Total",
		FormatKwh(res.AnnualUsage),
		FormatKwh(res.AnnualProduction),
		FormatRSD(float64(res.AnnualCostBefore)),
		FormatRSD(float64(res.AnnualCostAfter)),
		FormatRSD(float64(res.AnnualSavings)),
	)
	fmt.Fprintln(buf)
}

func signed(amount float64) string {
	if amount < 0 {
		return negativeStyle.Render(FormatRSD(amount))
	}
	return positiveStyle.Render("+" + FormatRSD(amount))
}

// ConsoleLiteFormatter renders a short summary
type ConsoleLiteFormatter struct{}

func (ConsoleLiteFormatter) Name() string { return "console-lite" }

func (ConsoleLiteFormatter) Format(r *Report) ([]byte, error) {
	if r == nil || r.Result == nil {
		return nil, fmt.Errorf("report has no simulation result")
	}
	res := r.Result
	var buf bytes.Buffer
	fmt.Fprintln(&buf, "SOLAR SUMMARY")
	fmt.Fprintln(&buf, "=============")
	if r.Customer != "" {
		fmt.Fprintf(&buf, "%s", r.Customer)
		if r.Panels > 0 {
			fmt.Fprintf(&buf, ", %d panels (%.1f kWp)", r.Panels, r.CapacityKw)
		}
		fmt.Fprintln(&buf)
	}
	fmt.Fprintf(&buf, "Bill: %s -> %s per year\n", FormatRSD(float64(res.AnnualCostBefore)), FormatRSD(float64(res.AnnualCostAfter)))
	fmt.Fprintf(&buf, "Savings: %s per year\n", FormatRSD(float64(res.AnnualSavings)))
	if res.BreakEvenReached {
		fmt.Fprintf(&buf, "Break-even: %s\n", res.BreakEvenText)
	} else {
		fmt.Fprintln(&buf, "Break-even: not reached")
	}
	return buf.Bytes(), nil
}
