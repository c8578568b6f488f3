package output

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/solarinrs/solaroi/internal/calculation"
	"github.com/solarinrs/solaroi/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func buildTestReport(t *testing.T) *Report {
	t.Helper()
	p := &domain.Proposal{
		ID:       "8d1f6c1e-0000-4000-8000-000000000001",
		Customer: domain.Customer{Name: "Marko Petrović"},
		Location: domain.Location{City: "Novi Sad"},
		Surfaces: []domain.RoofSurface{
			{Name: "Jug", AssignedPanels: 12},
			{Name: "Zapad", AssignedPanels: 3},
		},
		Utility: domain.Utility{TariffFraction: 0.85, PermittedPower: 11.04},
		System:  domain.System{PanelWattage: 400, Cost: 650000},
	}
	usage := domain.Monthly{650, 580, 480, 380, 320, 300, 340, 350, 310, 380, 500, 640}
	base := domain.Monthly{45, 62, 105, 135, 160, 168, 178, 165, 125, 90, 52, 38}

	result, err := calculation.NewCalculationEngine().RunProposal(p, usage, base)
	require.NoError(t, err)
	return NewReport(p, result)
}

func TestNewReport(t *testing.T) {
	r := buildTestReport(t)
	assert.Equal(t, "8d1f6c1e-0000-4000-8000-000000000001", r.ID)
	assert.Equal(t, "Marko Petrović", r.Customer)
	assert.Equal(t, 15, r.Panels)
	assert.InDelta(t, 6.0, r.CapacityKw, 1e-9)
	assert.False(t, r.GeneratedAt.IsZero())

	anon := NewReport(nil, r.Result)
	assert.NotEmpty(t, anon.ID, "Anonymous reports get a generated ID")
	assert.Zero(t, anon.Panels)
}

func TestFormatHelpers(t *testing.T) {
	tests := []struct {
		name string
		got  string
		want string
	}{
		{"small", FormatRSD(950), "950 RSD"},
		{"thousands", FormatRSD(84592), "84.592 RSD"},
		{"millions", FormatRSD(1234567.4), "1.234.567 RSD"},
		{"negative", FormatRSD(-650000), "-650.000 RSD"},
		{"rounds half away from zero", FormatRSD(1499.5), "1.500 RSD"},
		{"kwh", FormatKwh(7938), "7.938 kWh"},
		{"percentage", FormatPercentage(66.666), "66.7%"},
		{"month", MonthName(8), "Avg"},
		{"month out of range", MonthName(13), "13"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.got)
		})
	}
}

func TestFormatterFunc(t *testing.T) {
	called := false
	f := FormatterFunc{
		ID: "test-formatter",
		F: func(r *Report) ([]byte, error) {
			called = true
			return []byte("test output"), nil
		},
	}
	out, err := f.Format(&Report{})
	require.NoError(t, err)
	assert.True(t, called)
	assert.Equal(t, "test-formatter", f.Name())
	assert.Equal(t, []byte("test output"), out)
}

func TestWriteFormatted(t *testing.T) {
	tmpDir := t.TempDir()
	originalDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(tmpDir))
	defer os.Chdir(originalDir)

	f := FormatterFunc{ID: "txt", F: func(*Report) ([]byte, error) { return []byte("content"), nil }}
	filename, err := WriteFormatted(f, &Report{}, "txt")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(filename, "solar_report_"))
	assert.True(t, strings.HasSuffix(filename, ".txt"))

	content, err := os.ReadFile(filename)
	require.NoError(t, err)
	assert.Equal(t, "content", string(content))

	failing := FormatterFunc{ID: "err", F: func(*Report) ([]byte, error) { return nil, fmt.Errorf("formatter error") }}
	filename, err = WriteFormatted(failing, &Report{}, "txt")
	assert.Error(t, err)
	assert.Empty(t, filename)
	assert.Contains(t, err.Error(), "formatter error")
}

func TestConsoleFormatter(t *testing.T) {
	out, err := ConsoleFormatter{}.Format(buildTestReport(t))
	require.NoError(t, err)
	content := string(out)

	assert.Contains(t, content, "SOLAR INVESTMENT ANALYSIS")
	assert.Contains(t, content, "Customer: Marko Petrović")
	assert.Contains(t, content, "15 x 400 W = 6.0 kWp")
	assert.Contains(t, content, "650.000 RSD")
	assert.Contains(t, content, "84.592 RSD / year")
	assert.Contains(t, content, "34.588 RSD / year")
	assert.Contains(t, content, "+50.004 RSD")
	assert.Contains(t, content, "10 godina (month 120)")
	assert.Contains(t, content, "Years in profit:     15")
	assert.Contains(t, content, "FIRST YEAR BILLS")
	assert.Contains(t, content, "Dec")
	assert.Contains(t, content, "KEY ASSUMPTIONS")
	assert.Contains(t, content, "CUMULATIVE SAVINGS")
}

func TestConsoleFormatter_NotReached(t *testing.T) {
	r := buildTestReport(t)
	r.Result.BreakEvenReached = false
	out, err := ConsoleFormatter{}.Format(r)
	require.NoError(t, err)
	assert.Contains(t, string(out), "not reached within 25 years")
	assert.NotContains(t, string(out), "Years in profit")
}

func TestConsoleFormatter_NoResult(t *testing.T) {
	_, err := ConsoleFormatter{}.Format(&Report{})
	assert.Error(t, err)
	_, err = ConsoleLiteFormatter{}.Format(nil)
	assert.Error(t, err)
}

func TestConsoleLiteFormatter(t *testing.T) {
	out, err := ConsoleLiteFormatter{}.Format(buildTestReport(t))
	require.NoError(t, err)
	content := string(out)
	assert.Contains(t, content, "SOLAR SUMMARY")
	assert.Contains(t, content, "Marko Petrović, 15 panels (6.0 kWp)")
	assert.Contains(t, content, "Bill: 84.592 RSD -> 34.588 RSD per year")
	assert.Contains(t, content, "Break-even: 10 godina")
}

func TestCSVSummarizer(t *testing.T) {
	out, err := CSVSummarizer{}.Format(buildTestReport(t))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "ID,Customer,Panels"))
	assert.Contains(t, lines[1], ",15,6.00,650000,5230,7938,84592,34588,50004,120,10 godina,")
}

func TestMonthlyCSVFormatter(t *testing.T) {
	out, err := MonthlyCSVFormatter{}.Format(buildTestReport(t))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	require.Len(t, lines, 13, "Header plus twelve months")
	assert.True(t, strings.HasPrefix(lines[1], "1,650.00,270.00,"))
	assert.True(t, strings.HasPrefix(lines[12], "12,640.00,228.00,"))
}

func TestJSONFormatter(t *testing.T) {
	out, err := JSONFormatter{}.Format(buildTestReport(t))
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(out, &decoded))
	assert.Equal(t, "Marko Petrović", decoded["customer"])
	result := decoded["result"].(map[string]interface{})
	assert.Equal(t, 120.0, result["break_even_month"])
	assert.Equal(t, 84592.0, result["annual_cost_before"])
}

func TestYAMLFormatter(t *testing.T) {
	out, err := YAMLFormatter{}.Format(buildTestReport(t))
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, yaml.Unmarshal(out, &decoded))
	assert.Equal(t, 15, decoded["panels"])
	assert.Contains(t, string(out), "customer: Marko Petrović")
}

func TestHTMLFormatter(t *testing.T) {
	out, err := HTMLFormatter{}.Format(buildTestReport(t))
	require.NoError(t, err)
	content := string(out)
	assert.Contains(t, content, "<!DOCTYPE html>")
	assert.Contains(t, content, "<title>Solar Investment Analysis</title>")
	assert.Contains(t, content, "Marko Petrović, Novi Sad")
	assert.Contains(t, content, "10 godina")
	assert.Contains(t, content, "84.592 RSD")
	assert.Contains(t, content, DefaultAssumptions[0])
}

func TestGetFormatterByName(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"console", "console"},
		{"verbose", "console"},
		{"CONSOLE-LITE", "console-lite"},
		{"yml", "yaml"},
		{"monthly", "monthly-csv"},
		{"html", "html"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := GetFormatterByName(tt.name)
			require.NotNil(t, f)
			assert.Equal(t, tt.want, f.Name())
		})
	}
	assert.Nil(t, GetFormatterByName("non-existent"))
}

func TestAvailableFormatterNames(t *testing.T) {
	names := AvailableFormatterNames()
	assert.ElementsMatch(t, []string{"console", "console-lite", "csv", "monthly-csv", "json", "yaml", "html"}, names)
	assert.Contains(t, AvailableFormatAliases(), "verbose")
}

func TestRenderSavingsChart(t *testing.T) {
	points := make([]domain.CumulativePoint, 0, 24)
	for i := 1; i <= 24; i++ {
		points = append(points, domain.CumulativePoint{Month: i, Grid: float64(i) * 10000, Solar: 120000 + float64(i)*2000})
	}
	chart := RenderSavingsChart(points, 24, 6)
	lines := strings.Split(strings.TrimRight(chart, "\n"), "\n")

	require.Len(t, lines, 8, "Six plot rows, an axis and a month scale")
	assert.Contains(t, lines[0], "72.000 RSD")
	assert.Contains(t, lines[5], "-112.000 RSD")
	assert.Contains(t, chart, "*")
	assert.True(t, strings.HasSuffix(lines[7], "24"))

	assert.Empty(t, RenderSavingsChart(nil, 24, 6))
	assert.Empty(t, RenderSavingsChart(points, 1, 6))
}
