package compare

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// TableFormatter formats comparison results as a console table
type TableFormatter struct{}

// Format generates a formatted table comparing system sizes
func (tf *TableFormatter) Format(compSet *ComparisonSet) string {
	var sb strings.Builder

	// Header
	sb.WriteString("SOLAR SYSTEM SIZE COMPARISON\n")
	sb.WriteString(strings.Repeat("=", 80) + "\n")
	sb.WriteString(fmt.Sprintf("Base System: %s\n", compSet.BaseScenarioName))
	if compSet.ProposalPath != "" {
		sb.WriteString(fmt.Sprintf("Proposal: %s\n", compSet.ProposalPath))
	}
	sb.WriteString("\n")

	nameWidth := 20
	numWidth := 14

	sb.WriteString(fmt.Sprintf("%-*s %*s %*s %*s %*s\n",
		nameWidth, "System",
		numWidth, "Cost",
		numWidth, "Savings/yr",
		numWidth, "25y Savings",
		numWidth, "Break-even"))
	sb.WriteString(strings.Repeat("-", 80) + "\n")

	if compSet.BaseResult != nil {
		sb.WriteString(tf.formatRow(compSet.BaseResult, nameWidth, numWidth, true))
	}

	if len(compSet.AlternativeResults) > 0 {
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		for _, alt := range compSet.AlternativeResults {
			sb.WriteString(tf.formatRow(&alt, nameWidth, numWidth, false))
		}
	}

	sb.WriteString(strings.Repeat("=", 80) + "\n")

	// Deltas from base
	if len(compSet.AlternativeResults) > 0 {
		sb.WriteString("\nCOMPARISON TO BASE\n")
		sb.WriteString(strings.Repeat("-", 80) + "\n")

		for _, alt := range compSet.AlternativeResults {
			sb.WriteString(fmt.Sprintf("\n%s:\n", alt.ScenarioName))

			sb.WriteString(fmt.Sprintf("  Lifetime Savings: %s%s RSD (%s%%)\n",
				tf.deltaSymbol(alt.SavingsDiffFromBase),
				tf.formatDecimal(alt.SavingsDiffFromBase),
				alt.SavingsPctFromBase.StringFixed(1)))

			if alt.BreakEvenDiff != 0 {
				symbol := "+"
				if alt.BreakEvenDiff < 0 {
					symbol = ""
				}
				sb.WriteString(fmt.Sprintf("  Break-even:       %s%d months\n", symbol, alt.BreakEvenDiff))
			}

			if !alt.CostDiffFromBase.IsZero() {
				sb.WriteString(fmt.Sprintf("  Extra Cost:       %s%s RSD\n",
					tf.deltaSymbol(alt.CostDiffFromBase),
					tf.formatDecimal(alt.CostDiffFromBase)))
			}
		}
		sb.WriteString("\n")
	}

	if len(compSet.Recommendations) > 0 {
		sb.WriteString("\nRECOMMENDATIONS\n")
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		for _, rec := range compSet.Recommendations {
			sb.WriteString(fmt.Sprintf("• %s\n", rec))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// formatRow formats a single system row
func (tf *TableFormatter) formatRow(result *ComparisonResult, nameWidth, numWidth int, isBase bool) string {
	name := fmt.Sprintf("%s (%.1f kWp)", result.ScenarioName, result.CapacityKw)
	if isBase {
		name = result.ScenarioName + " (base)"
	}

	breakEven := fmt.Sprintf("%d months", result.BreakEvenMonth)
	if !result.BreakEvenReached {
		breakEven = "never"
	}

	return fmt.Sprintf("%-*s %*s %*s %*s %*s\n",
		nameWidth, tf.truncate(name, nameWidth),
		numWidth, tf.formatDecimal(result.SystemCost),
		numWidth, tf.formatDecimal(result.AnnualSavings),
		numWidth, tf.formatDecimal(result.LifetimeSavings),
		numWidth, breakEven)
}

// formatDecimal formats a dinar amount for display (in thousands or millions)
func (tf *TableFormatter) formatDecimal(d decimal.Decimal) string {
	if d.Abs().GreaterThanOrEqual(decimal.NewFromInt(1000000)) {
		millions := d.Div(decimal.NewFromInt(1000000))
		return millions.StringFixed(2) + "M"
	} else if d.Abs().GreaterThanOrEqual(decimal.NewFromInt(1000)) {
		thousands := d.Div(decimal.NewFromInt(1000))
		return thousands.StringFixed(1) + "K"
	}
	return d.StringFixed(0)
}

// deltaSymbol returns a + prefix for positive deltas; negative values carry their own sign
func (tf *TableFormatter) deltaSymbol(delta decimal.Decimal) string {
	if delta.IsPositive() {
		return "+"
	}
	return ""
}

// truncate truncates a string to maxLen
func (tf *TableFormatter) truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

// FormatCompact creates a compact single-line summary for each system
func (tf *TableFormatter) FormatCompact(compSet *ComparisonSet) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Base: %s | ", compSet.BaseScenarioName))

	for i, alt := range compSet.AlternativeResults {
		if i > 0 {
			sb.WriteString(" | ")
		}
		change := "="
		if alt.SavingsDiffFromBase.IsPositive() {
			change = fmt.Sprintf("+%s", tf.formatDecimal(alt.SavingsDiffFromBase))
		} else if alt.SavingsDiffFromBase.IsNegative() {
			change = tf.formatDecimal(alt.SavingsDiffFromBase)
		}

		sb.WriteString(fmt.Sprintf("%s: %s", alt.ScenarioName, change))
	}

	return sb.String()
}
