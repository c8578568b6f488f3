package scenes

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/solarinrs/solaroi/internal/breakeven"
	"github.com/solarinrs/solaroi/internal/compare"
	"github.com/solarinrs/solaroi/internal/domain"
	"github.com/solarinrs/solaroi/internal/tui/tuimsg"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func keyOf(t tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: t}
}

func testProposal() *domain.Proposal {
	return &domain.Proposal{
		Customer: domain.Customer{Name: "Marko Petrović"},
		Surfaces: []domain.RoofSurface{
			{Name: "Jug", Orientation: domain.OrientationSouth, Slope: 30, MaxPanels: 14, AssignedPanels: 12},
			{Name: "Zapad", Slope: 30, MaxPanels: 8, AssignedPanels: 0},
		},
		Utility: domain.Utility{TariffFraction: 0.85},
		System:  domain.System{PanelWattage: 400, Cost: 650000},
	}
}

func TestSurfaces_AdjustEmitsPanelChange(t *testing.T) {
	m := NewSurfacesModel()
	m.SetProposal(testProposal())

	_, cmd := m.Update(keyOf(tea.KeyRight))
	require.NotNil(t, cmd)
	assert.Equal(t, tuimsg.SurfacePanelsChangedMsg{Surface: 0, Panels: 13}, cmd())

	_, cmd = m.Update(runes("j"))
	assert.Nil(t, cmd)
	assert.Equal(t, 1, m.Selected())

	_, cmd = m.Update(runes("-"))
	assert.Nil(t, cmd, "cannot go below zero panels")

	_, cmd = m.Update(runes("+"))
	require.NotNil(t, cmd)
	assert.Equal(t, tuimsg.SurfacePanelsChangedMsg{Surface: 1, Panels: 1}, cmd())
}

func TestSurfaces_RespectsRoofLimit(t *testing.T) {
	p := testProposal()
	p.Surfaces[0].AssignedPanels = 14
	m := NewSurfacesModel()
	m.SetProposal(p)

	_, cmd := m.Update(keyOf(tea.KeyRight))
	assert.Nil(t, cmd)
}

func TestSurfaces_KeepsAtLeastOnePanel(t *testing.T) {
	p := testProposal()
	p.Surfaces[0].AssignedPanels = 1
	m := NewSurfacesModel()
	m.SetProposal(p)

	_, cmd := m.Update(keyOf(tea.KeyLeft))
	assert.Nil(t, cmd)
}

func TestSurfaces_OverrideRow(t *testing.T) {
	p := testProposal()
	p.System.PanelCount = 10
	m := NewSurfacesModel()
	m.SetProposal(p)

	_, cmd := m.Update(runes("G"))
	assert.Nil(t, cmd)
	assert.Equal(t, 0, m.Selected(), "only the override row is shown")

	_, cmd = m.Update(keyOf(tea.KeyLeft))
	require.NotNil(t, cmd)
	assert.Equal(t, tuimsg.SurfacePanelsChangedMsg{Surface: OverrideSurface, Panels: 9}, cmd())
	assert.Contains(t, m.View(), "10 panels")
}

func TestSurfaces_EmptyView(t *testing.T) {
	m := NewSurfacesModel()
	m.SetProposal(&domain.Proposal{})
	assert.Contains(t, m.View(), "No roof surfaces defined")
}

func TestParameters_ApplySliderValues(t *testing.T) {
	m := NewParametersModel()
	m.SetParameters(testProposal(), decimal.RequireFromString("0.03"))
	require.Len(t, m.Sliders(), 3)
	assert.False(t, m.Modified())

	// price up two steps
	m.Update(keyOf(tea.KeyRight))
	m.Update(runes("l"))
	assert.True(t, m.Modified())

	// tariff share down one step
	m.Update(runes("j"))
	m.Update(keyOf(tea.KeyLeft))

	// escalation up one step
	m.Update(keyOf(tea.KeyDown))
	m.Update(keyOf(tea.KeyRight))

	_, cmd := m.Update(keyOf(tea.KeyEnter))
	require.NotNil(t, cmd)
	msg, ok := cmd().(tuimsg.ParametersChangedMsg)
	require.True(t, ok)
	assert.Equal(t, 670000.0, msg.SystemCost)
	assert.InDelta(t, 0.80, msg.TariffFraction, 1e-9)
	assert.True(t, decimal.RequireFromString("0.035").Equal(msg.EscalationRate), "got %s", msg.EscalationRate)
	assert.False(t, m.Modified())
}

func TestParameters_FocusStaysInRange(t *testing.T) {
	m := NewParametersModel()
	m.SetParameters(testProposal(), decimal.Zero)

	m.Update(keyOf(tea.KeyUp))
	assert.True(t, m.Sliders()[SliderSystemCost].IsFocused)

	for i := 0; i < 5; i++ {
		m.Update(keyOf(tea.KeyDown))
	}
	assert.True(t, m.Sliders()[SliderEscalation].IsFocused)
	assert.False(t, m.Sliders()[SliderSystemCost].IsFocused)
}

func TestParameters_Reset(t *testing.T) {
	m := NewParametersModel()
	m.SetParameters(testProposal(), decimal.Zero)

	_, cmd := m.Update(runes("x"))
	require.NotNil(t, cmd)
	assert.Equal(t, tuimsg.ResetMsg{}, cmd())
}

func TestCompare_Candidates(t *testing.T) {
	tests := []struct {
		name  string
		base  int
		steps []string
		want  []int
	}{
		{"default step", 15, nil, []int{11, 13, 17, 19}},
		{"wider step", 15, []string{"+"}, []int{9, 12, 18, 21}},
		{"narrowest step", 15, []string{"-", "-", "-"}, []int{13, 14, 16, 17}},
		{"small system drops non-positive", 3, nil, []int{1, 5, 7}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewCompareModel()
			m.SetBasePanels(tt.base)
			for _, s := range tt.steps {
				m.Update(runes(s))
			}
			assert.Equal(t, tt.want, m.Candidates())
		})
	}
}

func TestCompare_StartAndResults(t *testing.T) {
	m := NewCompareModel()

	_, cmd := m.Update(keyOf(tea.KeyEnter))
	assert.Nil(t, cmd, "nothing to compare without a system")

	m.SetBasePanels(15)
	_, cmd = m.Update(keyOf(tea.KeyEnter))
	require.NotNil(t, cmd)
	assert.Equal(t, tuimsg.ComparisonStartedMsg{Panels: []int{11, 13, 17, 19}}, cmd())

	_, cmd = m.Update(keyOf(tea.KeyEnter))
	assert.Nil(t, cmd, "one comparison at a time")

	set := &compare.ComparisonSet{
		BaseScenarioName:   "15 panels",
		BaseResult:         &compare.ComparisonResult{ScenarioName: "15 panels", Panels: 15},
		AlternativeResults: []compare.ComparisonResult{{ScenarioName: "17 panels", Panels: 17}},
	}
	m.SetResults(set)
	assert.Contains(t, m.View(), "17 panels")

	m.SetBasePanels(16)
	assert.NotContains(t, m.View(), "17 panels", "a new base discards stale results")
}

func TestOptimize_TargetPaybackFlow(t *testing.T) {
	m := NewOptimizeModel()
	assert.Equal(t, ModeSelectGoal, m.Mode())
	assert.Equal(t, breakeven.GoalTargetPayback, m.SelectedGoal())

	m.Update(keyOf(tea.KeyEnter))
	require.Equal(t, ModeSetTarget, m.Mode())

	m.Update(runes("8"))
	_, cmd := m.Update(keyOf(tea.KeyEnter))
	require.NotNil(t, cmd)
	assert.Equal(t, tuimsg.OptimizationStartedMsg{Goal: breakeven.GoalTargetPayback, TargetMonths: 96}, cmd())

	// input is ignored while the solver runs
	_, cmd = m.Update(keyOf(tea.KeyEnter))
	assert.Nil(t, cmd)

	m.SetResult(&breakeven.MultiDimensionalResult{})
	assert.Equal(t, ModeShowResults, m.Mode())

	m.Update(runes("n"))
	assert.Equal(t, ModeSelectGoal, m.Mode())
}

func TestOptimize_RejectsOutOfRangeTarget(t *testing.T) {
	m := NewOptimizeModel()
	m.Update(keyOf(tea.KeyEnter))
	m.Update(runes("40"))

	_, cmd := m.Update(keyOf(tea.KeyEnter))
	assert.Nil(t, cmd)
	assert.Equal(t, ModeSetTarget, m.Mode())

	m.Update(keyOf(tea.KeyEsc))
	assert.Equal(t, ModeSelectGoal, m.Mode())
}

func TestOptimize_GoalWithoutTarget(t *testing.T) {
	m := NewOptimizeModel()
	m.Update(runes("j"))
	assert.Equal(t, breakeven.GoalFastestPayback, m.SelectedGoal())

	_, cmd := m.Update(keyOf(tea.KeyEnter))
	require.NotNil(t, cmd)
	assert.Equal(t, tuimsg.OptimizationStartedMsg{Goal: breakeven.GoalFastestPayback}, cmd())

	m.SetFailed()
	assert.Equal(t, ModeSelectGoal, m.Mode())
}

func TestSolutionText(t *testing.T) {
	panels := 17
	cost := decimal.NewFromInt(720000)
	assert.Equal(t, "17 panels, price 720.000 RSD", solution(&breakeven.OptimizationResult{OptimalPanels: &panels, OptimalSystemCost: &cost}))
	assert.Equal(t, "no solution", solution(&breakeven.OptimizationResult{}))
}
