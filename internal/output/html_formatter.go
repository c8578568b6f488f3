package output

import (
	"bytes"
	_ "embed"
	"fmt"
	"html/template"

	"github.com/solarinrs/solaroi/internal/domain"
)

// HTMLFormatter produces a standalone HTML report for the customer.
type HTMLFormatter struct{}

func (h HTMLFormatter) Name() string { return "html" }

//go:embed templates/report.html.tmpl
var htmlTemplateSource string

var htmlTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"rsd":    FormatRSD,
	"rsdInt": func(v int64) string { return FormatRSD(float64(v)) },
	"kwh":    FormatKwh,
	"pct":    FormatPercentage,
	"month":  MonthName,
	"gridCost": func(res *domain.SimulationResult, i int) int64 {
		if i < len(res.FirstYearGrid) {
			return res.FirstYearGrid[i].Cost
		}
		return 0
	},
}).Parse(htmlTemplateSource))

func (h HTMLFormatter) Format(r *Report) ([]byte, error) {
	if r == nil || r.Result == nil {
		return nil, fmt.Errorf("report has no simulation result")
	}
	data := *r
	if len(data.Assumptions) == 0 {
		data.Assumptions = DefaultAssumptions
	}
	var buf bytes.Buffer
	if err := htmlTemplate.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
