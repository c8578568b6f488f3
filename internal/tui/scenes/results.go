package scenes

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/solarinrs/solaroi/internal/domain"
	"github.com/solarinrs/solaroi/internal/output"
	"github.com/solarinrs/solaroi/internal/tui/components"
	"github.com/solarinrs/solaroi/internal/tui/tuistyles"
)

// ResultsView selects what the results scene shows below the metrics
type ResultsView int

const (
	ViewChart ResultsView = iota
	ViewBills
)

// ResultsModel represents the results display scene
type ResultsModel struct {
	result   *domain.SimulationResult
	baseline *domain.SimulationResult
	view     ResultsView
	bills    table.Model
	width    int
	height   int
}

// NewResultsModel creates a new results scene model
func NewResultsModel() *ResultsModel {
	return &ResultsModel{
		bills: table.New(
			table.WithColumns([]table.Column{
				{Title: "Month", Width: 6},
				{Title: "Usage", Width: 10},
				{Title: "Production", Width: 11},
				{Title: "Grid bill", Width: 12},
				{Title: "Solar bill", Width: 12},
				{Title: "Savings", Width: 12},
				{Title: "Credit", Width: 10},
			}),
			table.WithHeight(domain.MonthsPerYear+1),
		),
	}
}

// SetResults updates the simulation to display; baseline is the proposal as loaded
func (m *ResultsModel) SetResults(result, baseline *domain.SimulationResult) {
	m.result = result
	m.baseline = baseline
	if result != nil {
		m.bills.SetRows(billRows(result))
	}
}

// Mode returns the view currently shown
func (m *ResultsModel) Mode() ResultsView {
	return m.view
}

// SetSize updates the scene dimensions
func (m *ResultsModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Update handles messages for the results scene
func (m *ResultsModel) Update(msg tea.Msg) (*ResultsModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && key.Matches(msg, key.NewBinding(key.WithKeys("t", "tab"))) {
		if m.view == ViewChart {
			m.view = ViewBills
		} else {
			m.view = ViewChart
		}
	}
	return m, nil
}

// View renders the results scene
func (m *ResultsModel) View() string {
	if m.result == nil {
		return `No results to display.

The proposal is still being calculated.

Press ESC to go back.`
	}

	var detail string
	switch m.view {
	case ViewBills:
		detail = m.renderBills()
	default:
		detail = m.renderChart()
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		tuistyles.TitleStyle.Render("Savings and Break-even"),
		"",
		m.renderKeyMetrics(),
		"",
		components.NewGauge("Solar coverage", m.result.SolarCoverage).
			WithDetail(fmt.Sprintf("%s of %s", output.FormatKwh(m.result.AnnualProduction), output.FormatKwh(m.result.AnnualUsage))).
			Render(),
		"",
		detail,
		"",
		helpLine("t toggle chart / first-year bills • p parameters • f roof • ESC back"),
	)
}

// renderKeyMetrics renders the headline figures with changes against the loaded proposal
func (m *ResultsModel) renderKeyMetrics() string {
	r := m.result
	b := m.baseline

	savings := components.NewAmountCard("Annual savings", float64(r.AnnualSavings))
	lifetime := components.NewAmountCard(fmt.Sprintf("Savings over %d years", domain.HorizonYears), r.LifetimeSavings)
	cost := components.NewAmountCard("System price", r.SystemCost)

	breakEven := components.NewMetricCard("Break-even", r.BreakEvenText)
	if !r.BreakEvenReached {
		breakEven = components.NewMetricCard("Break-even", "not reached").
			WithDescription(fmt.Sprintf("within %d years", domain.HorizonYears))
	}

	if b != nil && b != r {
		savings.WithAmountDelta(float64(r.AnnualSavings-b.AnnualSavings), true)
		lifetime.WithAmountDelta(r.LifetimeSavings-b.LifetimeSavings, true)
		cost.WithAmountDelta(r.SystemCost-b.SystemCost, false)
		if r.BreakEvenReached && b.BreakEvenReached && r.BreakEvenMonth != b.BreakEvenMonth {
			diff := r.BreakEvenMonth - b.BreakEvenMonth
			breakEven.WithTrend(diff < 0, fmt.Sprintf("%+d mo", diff))
		}
	}

	return components.MetricGrid([]*components.MetricCard{savings, breakEven, lifetime, cost}, 4)
}

func (m *ResultsModel) renderChart() string {
	width := 72
	if m.width > 20 && m.width-8 < width {
		width = m.width - 8
	}
	return components.NewCumulativeChart(m.result.Cumulative, m.result.SystemCost).
		WithSize(width, 12).
		Render()
}

func (m *ResultsModel) renderBills() string {
	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(tuistyles.ColorBorder)
	return style.Render(m.bills.View())
}

// billRows lays out the first simulated year plus a total row
func billRows(r *domain.SimulationResult) []table.Row {
	rows := make([]table.Row, 0, len(r.FirstYearSolar)+1)
	for i, solar := range r.FirstYearSolar {
		var gridCost int64
		if i < len(r.FirstYearGrid) {
			gridCost = r.FirstYearGrid[i].Cost
		}
		rows = append(rows, table.Row{
			output.MonthName(solar.Month),
			output.FormatKwh(solar.Usage),
			output.FormatKwh(solar.Production),
			output.FormatRSD(float64(gridCost)),
			output.FormatRSD(float64(solar.Cost)),
			output.FormatRSD(float64(gridCost - solar.Cost)),
			output.FormatKwh(solar.NextCarriedCredit),
		})
	}
	rows = append(rows, table.Row{
		"Total",
		output.FormatKwh(r.AnnualUsage),
		output.FormatKwh(r.AnnualProduction),
		output.FormatRSD(float64(r.AnnualCostBefore)),
		output.FormatRSD(float64(r.AnnualCostAfter)),
		output.FormatRSD(float64(r.AnnualSavings)),
		"",
	})
	return rows
}
