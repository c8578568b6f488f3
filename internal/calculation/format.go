package calculation

import (
	"fmt"

	"github.com/solarinrs/solaroi/internal/domain"
)

// FormatBreakEven renders a month count in Serbian, e.g. "7 godina i 3 meseca"
func FormatBreakEven(months int) string {
	years := months / domain.MonthsPerYear
	extra := months % domain.MonthsPerYear

	switch {
	case extra == 0:
		return fmt.Sprintf("%d godina", years)
	case extra == 1:
		return fmt.Sprintf("%d godina i %d mesec", years, extra)
	case extra < 5:
		return fmt.Sprintf("%d godina i %d meseca", years, extra)
	default:
		return fmt.Sprintf("%d godina i %d meseci", years, extra)
	}
}
