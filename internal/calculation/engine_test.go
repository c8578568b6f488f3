package calculation

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/solarinrs/solaroi/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCalculationEngine(t *testing.T) {
	engine := NewCalculationEngine()

	assert.NotNil(t, engine, "Should create engine")
	assert.NoError(t, engine.Tariff.Validate(), "Should carry a valid default tariff")
	assert.Equal(t, 0.7, engine.CO2.CoalShare)
	assert.NotNil(t, engine.Logger, "Should initialize logger")
}

func TestNewCalculationEngineWithConfig(t *testing.T) {
	tariff := domain.DefaultTariff()
	tariff.EscalationRate = decimal.RequireFromString("0.03")

	engine, err := NewCalculationEngineWithConfig(tariff)
	require.NoError(t, err)
	assert.True(t, engine.Tariff.EscalationRate.Equal(decimal.RequireFromString("0.03")))

	tariff.Zones.BlueLimit = 100
	_, err = NewCalculationEngineWithConfig(tariff)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid tariff")
}

func TestCalculationEngine_SetLogger(t *testing.T) {
	engine := NewCalculationEngine()

	// Test setting a custom logger
	customLogger := &TestLogger{}
	engine.SetLogger(customLogger)

	assert.Equal(t, customLogger, engine.Logger, "Should set custom logger")

	// Test setting nil logger (should use no-op logger)
	engine.SetLogger(nil)

	assert.NotNil(t, engine.Logger, "Should not be nil")
	assert.IsType(t, NopLogger{}, engine.Logger, "Should be no-op logger")
}

func TestCalculationEngine_DebugTrace(t *testing.T) {
	engine := NewCalculationEngine()
	logger := &TestLogger{}
	engine.SetLogger(logger)

	params := flatParams(400, 300, 600000)

	_, err := engine.RunSimulation(params)
	require.NoError(t, err)
	assert.Len(t, logger.messages, 1, "Only the summary line without debug")

	logger.messages = nil
	engine.Debug = true
	_, err = engine.RunSimulation(params)
	require.NoError(t, err)
	assert.Len(t, logger.messages, domain.HorizonMonths+1, "One trace line per month plus the summary")
}

func flatParams(usage, production, cost float64) domain.SimulationParams {
	return domain.SimulationParams{
		MonthlyUsage:             domain.NewMonthlyFlat(usage),
		MonthlyProduction:        domain.NewMonthlyFlat(production),
		AnnualProduction:         production * 12,
		SystemCost:               cost,
		TariffFraction:           0.85,
		PermittedPower:           11.04,
		PanelPower:               400,
		ProductionPerInstalledKw: 1300,
	}
}

// TestLogger is a simple logger for testing
type TestLogger struct {
	messages []string
}

func (tl *TestLogger) Debugf(format string, args ...interface{}) {
	tl.messages = append(tl.messages, "DEBUG: "+format)
}

func (tl *TestLogger) Infof(format string, args ...interface{}) {
	tl.messages = append(tl.messages, "INFO: "+format)
}

func (tl *TestLogger) Warnf(format string, args ...interface{}) {
	tl.messages = append(tl.messages, "WARN: "+format)
}

func (tl *TestLogger) Errorf(format string, args ...interface{}) {
	tl.messages = append(tl.messages, "ERROR: "+format)
}
