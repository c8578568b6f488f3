package sensitivity

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/solarinrs/solaroi/internal/output"
)

// Formatter renders sweeps for one output format
type Formatter interface {
	Name() string
	Format(analyses []*Analysis) (string, error)
}

// GetFormatter returns the formatter registered under name, or nil
func GetFormatter(name string) Formatter {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "table", "console":
		return ConsoleFormatter{}
	case "csv":
		return CSVFormatter{}
	case "json":
		return JSONFormatter{Pretty: true}
	}
	return nil
}

// ConsoleFormatter prints one table per swept parameter
type ConsoleFormatter struct{}

func (ConsoleFormatter) Name() string { return "console" }

func (cf ConsoleFormatter) Format(analyses []*Analysis) (string, error) {
	if len(analyses) == 0 {
		return "", fmt.Errorf("no sensitivity results to format")
	}

	var buf bytes.Buffer
	for _, a := range analyses {
		if len(a.Results) == 0 {
			return "", fmt.Errorf("no results for parameter %s", a.Parameter.Name)
		}
		cf.formatSingle(&buf, a)
	}

	if len(analyses) > 1 {
		fmt.Fprintln(&buf, "PARAMETER RANKING")
		fmt.Fprintln(&buf, strings.Repeat("=", 65))
		for i, r := range Rank(analyses) {
			fmt.Fprintf(&buf, "%d. %-18s spread %-18s score %.2f (%s)\n",
				i+1, r.Parameter, output.FormatRSD(r.SavingsSpread), r.Score, r.RiskLevel)
		}
		fmt.Fprintln(&buf)
	}

	return buf.String(), nil
}

func (cf ConsoleFormatter) formatSingle(buf *bytes.Buffer, a *Analysis) {
	param := a.Parameter

	fmt.Fprintf(buf, "SENSITIVITY ANALYSIS: %s\n", strings.ToUpper(strings.ReplaceAll(param.Name, "_", " ")))
	fmt.Fprintln(buf, strings.Repeat("=", 65))
	fmt.Fprintf(buf, "Base Case: %s\n", param.FormatValue(param.BaseValue))
	fmt.Fprintf(buf, "Range: %s to %s (%d steps)\n",
		param.FormatValue(param.MinValue), param.FormatValue(param.MaxValue), len(a.Results))
	if param.Description != "" {
		fmt.Fprintf(buf, "Description: %s\n", param.Description)
	}
	fmt.Fprintln(buf)

	fmt.Fprintf(buf, "%-20s %-16s %-18s %-22s %-10s\n",
		"Value", "Annual Savings", "Lifetime Savings", "Break-even", "Change")
	fmt.Fprintln(buf, strings.Repeat("-", 90))

	for _, r := range a.Results {
		label := r.Label
		if r.IsBase {
			label += " ← BASE"
		}
		breakEven := "not reached"
		if r.Metrics.BreakEvenReached {
			breakEven = r.Metrics.BreakEvenText
		}
		fmt.Fprintf(buf, "%-20s %-16s %-18s %-22s %+.1f%%\n",
			label,
			output.FormatRSD(float64(r.Metrics.AnnualSavings)),
			output.FormatRSD(r.Metrics.LifetimeSavings),
			breakEven,
			r.Metrics.SavingsChangePct)
	}
	fmt.Fprintln(buf)

	s := a.Summary
	fmt.Fprintln(buf, "SENSITIVITY:")
	fmt.Fprintf(buf, "  Lifetime savings spread: %s (std dev %s)\n",
		output.FormatRSD(s.SavingsSpread), output.FormatRSD(s.SavingsStdDev))
	fmt.Fprintf(buf, "  Break-even spread:       %d months\n", s.BreakEvenSpread)
	fmt.Fprintf(buf, "  Sensitivity score:       %.2f\n", s.SensitivityScore)
	fmt.Fprintln(buf)

	fmt.Fprintf(buf, "RISK ASSESSMENT: %s %s\n", riskEmoji(s.RiskLevel), s.RiskLevel)
	for _, rec := range s.Recommendations {
		fmt.Fprintf(buf, "• %s\n", rec)
	}
	fmt.Fprintln(buf)
}

func riskEmoji(level string) string {
	switch level {
	case RiskLow:
		return "✅"
	case RiskMedium:
		return "⚠️"
	case RiskHigh:
		return "🔶"
	case RiskCritical:
		return "🚨"
	}
	return ""
}

// CSVFormatter writes one row per swept value
type CSVFormatter struct{}

func (CSVFormatter) Name() string { return "csv" }

func (CSVFormatter) Format(analyses []*Analysis) (string, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := []string{
		"Parameter", "Value", "IsBase", "AnnualSavings", "LifetimeSavings",
		"BreakEvenReached", "BreakEvenMonth", "SavingsChangePct", "RiskLevel",
	}
	if err := w.Write(header); err != nil {
		return "", err
	}

	for _, a := range analyses {
		for _, r := range a.Results {
			row := []string{
				a.Parameter.Name,
				r.Value.String(),
				strconv.FormatBool(r.IsBase),
				strconv.FormatInt(r.Metrics.AnnualSavings, 10),
				strconv.FormatFloat(r.Metrics.LifetimeSavings, 'f', 0, 64),
				strconv.FormatBool(r.Metrics.BreakEvenReached),
				strconv.Itoa(r.Metrics.BreakEvenMonth),
				strconv.FormatFloat(r.Metrics.SavingsChangePct, 'f', 2, 64),
				a.Summary.RiskLevel,
			}
			if err := w.Write(row); err != nil {
				return "", err
			}
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// JSONFormatter marshals the sweeps together with their ranking
type JSONFormatter struct {
	Pretty bool
}

func (JSONFormatter) Name() string { return "json" }

func (jf JSONFormatter) Format(analyses []*Analysis) (string, error) {
	payload := struct {
		Analyses []*Analysis `json:"analyses"`
		Ranking  []Ranking   `json:"ranking"`
	}{analyses, Rank(analyses)}

	var data []byte
	var err error
	if jf.Pretty {
		data, err = json.MarshalIndent(payload, "", "  ")
	} else {
		data, err = json.Marshal(payload)
	}
	if err != nil {
		return "", err
	}
	return string(data) + "\n", nil
}
