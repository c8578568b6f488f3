package calculation

import (
	"fmt"

	"github.com/solarinrs/solaroi/internal/domain"
)

// CalculationEngine prices bills and runs amortization simulations against one tariff table.
// It is read-only after construction and may be shared between goroutines.
type CalculationEngine struct {
	Tariff domain.Tariff
	CO2    domain.CO2Factors
	Logger Logger
	Debug  bool // Enable per-month trace output during simulations
}

// NewCalculationEngine creates an engine using the published tariff
func NewCalculationEngine() *CalculationEngine {
	return &CalculationEngine{
		Tariff: domain.DefaultTariff(),
		CO2:    domain.DefaultCO2Factors(),
		Logger: NopLogger{},
	}
}

// NewCalculationEngineWithConfig creates an engine with a custom tariff table
func NewCalculationEngineWithConfig(tariff domain.Tariff) (*CalculationEngine, error) {
	if err := tariff.Validate(); err != nil {
		return nil, fmt.Errorf("invalid tariff: %w", err)
	}
	return &CalculationEngine{
		Tariff: tariff,
		CO2:    domain.DefaultCO2Factors(),
		Logger: NopLogger{},
	}, nil
}

// SetLogger installs a logger; nil restores the no-op logger
func (ce *CalculationEngine) SetLogger(l Logger) {
	if l == nil {
		ce.Logger = NopLogger{}
		return
	}
	ce.Logger = l
}

func (ce *CalculationEngine) debugf(format string, args ...interface{}) {
	if ce.Debug && ce.Logger != nil {
		ce.Logger.Debugf(format, args...)
	}
}
