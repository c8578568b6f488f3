package breakeven

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/solarinrs/solaroi/internal/output"
)

const reportWidth = 72

// TableFormatter renders solver results for the terminal
type TableFormatter struct{}

type reportWriter struct {
	strings.Builder
}

func (w *reportWriter) section(title string, rule byte) {
	if w.Len() > 0 {
		w.WriteByte('\n')
	}
	w.WriteString(title + "\n")
	w.WriteString(strings.Repeat(string(rule), reportWidth) + "\n")
}

func (w *reportWriter) field(label, value string) {
	fmt.Fprintf(w, "  %-20s %s\n", label, value)
}

func rsd(d decimal.Decimal) string {
	return output.FormatRSD(d.InexactFloat64())
}

func signedRSD(d decimal.Decimal) string {
	if d.IsPositive() {
		return "+" + rsd(d)
	}
	return rsd(d)
}

// label identifies a run by what it searched and why
func label(r *OptimizationResult) string {
	return fmt.Sprintf("%s/%s", r.Request.Target, r.Request.Goal)
}

// Format renders a single optimization
func (tf *TableFormatter) Format(result *OptimizationResult) string {
	var w reportWriter

	w.section("BREAK-EVEN SEARCH", '=')
	w.field("Searched", string(result.Request.Target))
	w.field("Goal", string(result.Request.Goal))
	if tm := result.Request.Constraints.TargetMonths; tm != nil {
		w.field("Target payback", fmt.Sprintf("%d months", *tm))
	}
	status := "converged"
	if !result.Success {
		status = "no solution"
	}
	if result.ConvergenceInfo != "" {
		status += " (" + result.ConvergenceInfo + ")"
	}
	w.field("Status", status)

	w.section("SOLUTION", '-')
	if result.OptimalPanels != nil {
		w.field("Panels", fmt.Sprintf("%d", *result.OptimalPanels))
	}
	if result.OptimalSystemCost != nil {
		w.field("System price", rsd(*result.OptimalSystemCost))
	}
	if result.BreakEvenReached {
		w.field("Break-even", fmt.Sprintf("%s (month %d)", result.BreakEvenText, result.BreakEvenMonth))
	} else {
		w.field("Break-even", "not within 25 years")
	}
	w.field("Annual savings", rsd(result.AnnualSavings))
	w.field("Lifetime savings", rsd(result.LifetimeSavings))

	if result.BaseResult != nil && (!result.SavingsDiffFromBase.IsZero() || result.BreakEvenDiffFromBase != 0) {
		w.section("AGAINST THE PROPOSAL", '-')
		w.field("Lifetime savings", signedRSD(result.SavingsDiffFromBase))
		w.field("Break-even", fmt.Sprintf("%+d months", result.BreakEvenDiffFromBase))
	}

	return w.String()
}

// FormatMultiDimensional renders every run in one table followed by the winners
func (tf *TableFormatter) FormatMultiDimensional(result *MultiDimensionalResult) string {
	var w reportWriter

	w.section("BREAK-EVEN SEARCH", '=')
	fmt.Fprintf(&w, "  %-28s %7s %14s %10s %14s\n", "Run", "Panels", "Price", "Payback", "Lifetime")
	for i := range result.Results {
		r := &result.Results[i]
		panels, price, payback := "-", "-", "never"
		if r.OptimalPanels != nil {
			panels = fmt.Sprintf("%d", *r.OptimalPanels)
		}
		if r.OptimalSystemCost != nil {
			price = rsd(*r.OptimalSystemCost)
		}
		if r.BreakEvenReached {
			payback = fmt.Sprintf("%d mo", r.BreakEvenMonth)
		}
		fmt.Fprintf(&w, "  %-28s %7s %14s %10s %14s\n", label(r), panels, price, payback, rsd(r.LifetimeSavings))
	}

	if result.BestByPayback != nil || result.BestBySavings != nil {
		w.section("BEST", '-')
		if b := result.BestByPayback; b != nil {
			w.field("Fastest payback", fmt.Sprintf("%s, %s", label(b), b.BreakEvenText))
		}
		if b := result.BestBySavings; b != nil {
			w.field("Largest savings", fmt.Sprintf("%s, %s", label(b), rsd(b.LifetimeSavings)))
		}
	}

	if len(result.Recommendations) > 0 {
		w.section("RECOMMENDATIONS", '-')
		for _, rec := range result.Recommendations {
			w.WriteString("  - " + rec + "\n")
		}
	}

	return w.String()
}

// JSONFormatter marshals solver results
type JSONFormatter struct {
	Pretty bool
}

func (jf *JSONFormatter) Format(result *OptimizationResult) (string, error) {
	return jf.encode(result)
}

func (jf *JSONFormatter) FormatMultiDimensional(result *MultiDimensionalResult) (string, error) {
	return jf.encode(result)
}

func (jf *JSONFormatter) encode(v any) (string, error) {
	marshal := json.Marshal
	if jf.Pretty {
		marshal = func(v any) ([]byte, error) { return json.MarshalIndent(v, "", "  ") }
	}
	data, err := marshal(v)
	if err != nil {
		return "", fmt.Errorf("encoding break-even result: %w", err)
	}
	return string(data), nil
}
