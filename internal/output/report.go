package output

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/solarinrs/solaroi/internal/calculation"
	"github.com/solarinrs/solaroi/internal/domain"
)

// Report is a simulation result together with the proposal it was produced for
type Report struct {
	ID          string                   `json:"id" yaml:"id"`
	Customer    string                   `json:"customer,omitempty" yaml:"customer,omitempty"`
	Location    string                   `json:"location,omitempty" yaml:"location,omitempty"`
	Panels      int                      `json:"panels" yaml:"panels"`
	PanelWatts  float64                  `json:"panel_watts" yaml:"panel_watts"`
	CapacityKw  float64                  `json:"capacity_kw" yaml:"capacity_kw"`
	GeneratedAt time.Time                `json:"generated_at" yaml:"generated_at"`
	Assumptions []string                 `json:"assumptions,omitempty" yaml:"assumptions,omitempty"`
	Result      *domain.SimulationResult `json:"result" yaml:"result"`
}

// NewReport wraps a result for the given proposal. A nil proposal yields an anonymous report.
func NewReport(p *domain.Proposal, result *domain.SimulationResult) *Report {
	r := &Report{
		ID:          uuid.NewString(),
		GeneratedAt: time.Now().UTC().Truncate(time.Second),
		Result:      result,
	}
	if p == nil {
		return r
	}
	if p.ID != "" {
		r.ID = p.ID
	}
	r.Customer = p.Customer.Name
	r.Location = p.Location.City
	r.Panels = p.TotalPanels()
	r.PanelWatts = p.System.PanelWattage
	r.CapacityKw = calculation.CapacityKw(r.Panels, p.System.PanelWattage)
	return r
}

// FormatRSD renders an amount in dinars with dot thousands separators, e.g. "84.592 RSD"
func FormatRSD(amount float64) string {
	return groupThousands(decimal.NewFromFloat(amount).Round(0).IntPart()) + " RSD"
}

// FormatKwh renders an energy amount rounded to whole kWh
func FormatKwh(kwh float64) string {
	return groupThousands(decimal.NewFromFloat(kwh).Round(0).IntPart()) + " kWh"
}

// FormatPercentage formats a value already expressed in percent
func FormatPercentage(pct float64) string {
	return decimal.NewFromFloat(pct).StringFixed(1) + "%"
}

func groupThousands(v int64) string {
	neg := v < 0
	if neg {
		v = -v
	}
	digits := strconv.FormatInt(v, 10)
	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	lead := len(digits) % 3
	if lead == 0 {
		lead = 3
	}
	b.WriteString(digits[:lead])
	for i := lead; i < len(digits); i += 3 {
		b.WriteByte('.')
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

var monthNames = [domain.MonthsPerYear]string{
	"Jan", "Feb", "Mar", "Apr", "Maj", "Jun", "Jul", "Avg", "Sep", "Okt", "Nov", "Dec",
}

// MonthName returns the short Serbian (latin) month name for 1..12
func MonthName(month int) string {
	if month < 1 || month > domain.MonthsPerYear {
		return strconv.Itoa(month)
	}
	return monthNames[month-1]
}
