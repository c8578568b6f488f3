package sensitivity

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/solarinrs/solaroi/internal/domain"
)

// Swept parameter names
const (
	ParamEscalationRate = "escalation_rate"
	ParamSystemCost     = "system_cost"
	ParamTariffFraction = "tariff_fraction"
	ParamPanelCount     = "panel_count"
)

// Risk levels reported in a Summary
const (
	RiskLow      = "LOW"
	RiskMedium   = "MEDIUM"
	RiskHigh     = "HIGH"
	RiskCritical = "CRITICAL"
)

// Parameter is one input to sweep between MinValue and MaxValue
type Parameter struct {
	Name        string          `yaml:"name" json:"name"`
	MinValue    decimal.Decimal `yaml:"min_value" json:"min_value"`
	MaxValue    decimal.Decimal `yaml:"max_value" json:"max_value"`
	Steps       int             `yaml:"steps" json:"steps"`
	BaseValue   decimal.Decimal `yaml:"base_value" json:"base_value"`
	Unit        string          `yaml:"unit" json:"unit"` // "percent", "rsd", "fraction", "panels"
	Description string          `yaml:"description" json:"description"`
}

// Metrics are the headline outcomes of one swept run
type Metrics struct {
	AnnualSavings    int64   `json:"annual_savings"`
	LifetimeSavings  float64 `json:"lifetime_savings"`
	BreakEvenReached bool    `json:"break_even_reached"`
	BreakEvenMonth   int     `json:"break_even_month"`
	BreakEvenText    string  `json:"break_even_text"`
	SolarCoverage    float64 `json:"solar_coverage"`

	// Relative to the run closest to the base value
	SavingsChange    float64 `json:"savings_change"`
	SavingsChangePct float64 `json:"savings_change_pct"`
	BreakEvenChange  int     `json:"break_even_change"`
}

// Result is one point of a sweep
type Result struct {
	Value   decimal.Decimal          `json:"value"`
	Label   string                   `json:"label"`
	IsBase  bool                     `json:"is_base"`
	Metrics Metrics                  `json:"metrics"`
	Result  *domain.SimulationResult `json:"-"`
}

// Summary condenses a sweep into spreads, a score and advice
type Summary struct {
	SavingsSpread    float64  `json:"savings_spread"`
	SavingsStdDev    float64  `json:"savings_std_dev"`
	BreakEvenSpread  int      `json:"break_even_spread"`
	NeverBreaksEven  int      `json:"never_breaks_even"`
	SensitivityScore float64  `json:"sensitivity_score"`
	RiskLevel        string   `json:"risk_level"`
	Recommendations  []string `json:"recommendations"`
}

// Analysis is a complete one-parameter sweep
type Analysis struct {
	ProposalID string    `json:"proposal_id,omitempty"`
	Parameter  Parameter `json:"parameter"`
	Results    []Result  `json:"results"`
	Summary    Summary   `json:"summary"`
}

// Ranking orders several sweeps by how much they move lifetime savings
type Ranking struct {
	Parameter     string  `json:"parameter"`
	SavingsSpread float64 `json:"savings_spread"`
	Score         float64 `json:"score"`
	RiskLevel     string  `json:"risk_level"`
}

// ParameterNames lists every parameter the analyzer can sweep
func ParameterNames() []string {
	return []string{ParamEscalationRate, ParamSystemCost, ParamTariffFraction, ParamPanelCount}
}

// DefaultParameter builds a sweep around the proposal's own value
func DefaultParameter(name string, p *domain.Proposal, tariff domain.Tariff) (Parameter, error) {
	switch name {
	case ParamEscalationRate:
		return Parameter{
			Name:        ParamEscalationRate,
			MinValue:    decimal.Zero,
			MaxValue:    decimal.RequireFromString("0.10"),
			Steps:       11,
			BaseValue:   tariff.EscalationRate,
			Unit:        "percent",
			Description: "Yearly increase of energy prices",
		}, nil
	case ParamSystemCost:
		cost := decimal.NewFromFloat(p.System.Cost)
		return Parameter{
			Name:        ParamSystemCost,
			MinValue:    cost.Mul(decimal.RequireFromString("0.7")).Round(0),
			MaxValue:    cost.Mul(decimal.RequireFromString("1.3")).Round(0),
			Steps:       7,
			BaseValue:   cost,
			Unit:        "rsd",
			Description: "Installed price of the system",
		}, nil
	case ParamTariffFraction:
		return Parameter{
			Name:        ParamTariffFraction,
			MinValue:    decimal.RequireFromString("0.5"),
			MaxValue:    decimal.NewFromInt(1),
			Steps:       6,
			BaseValue:   decimal.NewFromFloat(p.Utility.TariffFraction),
			Unit:        "fraction",
			Description: "Share of consumption billed at the higher tariff",
		}, nil
	case ParamPanelCount:
		base := p.TotalPanels()
		lo := base - 6
		if lo < 1 {
			lo = 1
		}
		hi := base + 6
		return Parameter{
			Name:        ParamPanelCount,
			MinValue:    decimal.NewFromInt(int64(lo)),
			MaxValue:    decimal.NewFromInt(int64(hi)),
			Steps:       hi - lo + 1,
			BaseValue:   decimal.NewFromInt(int64(base)),
			Unit:        "panels",
			Description: "Number of installed panels at the proposal's price per panel",
		}, nil
	}
	return Parameter{}, fmt.Errorf("unknown sensitivity parameter %q", name)
}

// Validate checks the sweep range
func (p Parameter) Validate() error {
	if p.Steps < 1 {
		return fmt.Errorf("%s: steps must be at least 1", p.Name)
	}
	if p.MinValue.GreaterThan(p.MaxValue) {
		return fmt.Errorf("%s: min value %s is greater than max value %s", p.Name, p.MinValue, p.MaxValue)
	}
	if p.MinValue.IsNegative() {
		return fmt.Errorf("%s: values cannot be negative", p.Name)
	}
	switch p.Name {
	case ParamTariffFraction:
		if p.MaxValue.GreaterThan(decimal.NewFromInt(1)) {
			return fmt.Errorf("%s: values must be between 0 and 1", p.Name)
		}
	case ParamPanelCount:
		if p.MinValue.LessThan(decimal.NewFromInt(1)) {
			return fmt.Errorf("%s: at least one panel is required", p.Name)
		}
	case ParamEscalationRate, ParamSystemCost:
	default:
		return fmt.Errorf("unknown sensitivity parameter %q", p.Name)
	}
	return nil
}

// Values returns the evenly spaced sweep points; panel counts are rounded and deduplicated
func (p Parameter) Values() []decimal.Decimal {
	if p.Steps <= 1 {
		return []decimal.Decimal{p.BaseValue}
	}

	step := p.MaxValue.Sub(p.MinValue).Div(decimal.NewFromInt(int64(p.Steps - 1)))
	values := make([]decimal.Decimal, 0, p.Steps)
	for i := 0; i < p.Steps; i++ {
		v := p.MinValue.Add(step.Mul(decimal.NewFromInt(int64(i))))
		if i == p.Steps-1 {
			v = p.MaxValue
		}
		if p.Name == ParamPanelCount {
			v = v.Round(0)
			if len(values) > 0 && values[len(values)-1].Equal(v) {
				continue
			}
		}
		values = append(values, v)
	}
	return values
}

// FormatValue renders a swept value in the parameter's unit
func (p Parameter) FormatValue(v decimal.Decimal) string {
	switch p.Unit {
	case "percent":
		return v.Mul(decimal.NewFromInt(100)).StringFixed(1) + "%"
	case "rsd":
		return v.StringFixed(0) + " RSD"
	case "fraction":
		return v.StringFixed(2)
	case "panels":
		return v.StringFixed(0)
	}
	return v.String()
}

// DetermineRiskLevel maps the sensitivity score to a risk level
func (s *Summary) DetermineRiskLevel() string {
	switch {
	case s.NeverBreaksEven > 0:
		return RiskCritical
	case s.SensitivityScore < 0.5:
		return RiskLow
	case s.SensitivityScore < 1.5:
		return RiskMedium
	default:
		return RiskHigh
	}
}

// GenerateRecommendations returns advice for the risk level and parameter
func (s *Summary) GenerateRecommendations(param string) []string {
	var recs []string

	switch s.DetermineRiskLevel() {
	case RiskLow:
		recs = append(recs, fmt.Sprintf("Low sensitivity to %s", param))
		recs = append(recs, "The investment case is robust to this assumption")
	case RiskMedium:
		recs = append(recs, fmt.Sprintf("Moderate sensitivity to %s", param))
		recs = append(recs, "Present the range to the customer alongside the base case")
	case RiskHigh:
		recs = append(recs, fmt.Sprintf("High sensitivity to %s", param))
		recs = append(recs, "Quote conservative figures for this assumption")
	case RiskCritical:
		recs = append(recs, fmt.Sprintf("⚠️ Break-even is not reached within %d years for %d of the swept values", domain.HorizonYears, s.NeverBreaksEven))
		recs = append(recs, "Reconsider the price or system size before offering")
	}

	switch param {
	case ParamEscalationRate:
		recs = append(recs, "Energy price growth drives most of the long-term savings")
	case ParamSystemCost:
		recs = append(recs, "Negotiating the installed price shortens payback directly")
	case ParamTariffFraction:
		recs = append(recs, "Check the customer's meter readings for the real higher-tariff share")
	case ParamPanelCount:
		recs = append(recs, "Compare against the recommended size range before changing the panel count")
	}

	return recs
}
