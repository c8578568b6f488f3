package tui

import (
	"context"
	"math"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"

	"github.com/solarinrs/solaroi/internal/breakeven"
	"github.com/solarinrs/solaroi/internal/calculation"
	"github.com/solarinrs/solaroi/internal/compare"
	"github.com/solarinrs/solaroi/internal/config"
	"github.com/solarinrs/solaroi/internal/domain"
	"github.com/solarinrs/solaroi/internal/pvgis"
	"github.com/solarinrs/solaroi/internal/tui/scenes"
)

// Model represents the entire application state
type Model struct {
	// Navigation
	currentScene  Scene
	previousScene Scene

	// Terminal dimensions
	width  int
	height int

	proposalPath string
	pvgis        *pvgis.Client
	engine       *calculation.CalculationEngine

	// original is the proposal as loaded; proposal is the working copy the scenes edit
	original   *domain.Proposal
	proposal   *domain.Proposal
	usage      domain.Monthly
	basePerKwp domain.Monthly
	escalation decimal.Decimal

	result   *domain.SimulationResult
	baseline *domain.SimulationResult

	homeModel       *scenes.HomeModel
	surfacesModel   *scenes.SurfacesModel
	parametersModel *scenes.ParametersModel
	resultsModel    *scenes.ResultsModel
	compareModel    *scenes.CompareModel
	optimizeModel   *scenes.OptimizeModel

	keys    keyMap
	help    help.Model
	spinner spinner.Model

	err            error
	loading        bool
	loadingMessage string
}

// NewModel creates a new application model.
// A nil engine uses the published tariff; a nil client requires production data in the proposal.
func NewModel(proposalPath string, engine *calculation.CalculationEngine, client *pvgis.Client) Model {
	if engine == nil {
		engine = calculation.NewCalculationEngine()
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = TitleStyle

	hm := help.New()
	hm.Styles.ShortKey = StatusKeyStyle
	hm.Styles.FullKey = HelpKeyStyle
	hm.Styles.FullDesc = HelpDescStyle

	return Model{
		currentScene:    SceneHome,
		proposalPath:    proposalPath,
		pvgis:           client,
		engine:          engine,
		escalation:      engine.Tariff.EscalationRate,
		homeModel:       scenes.NewHomeModel(),
		surfacesModel:   scenes.NewSurfacesModel(),
		parametersModel: scenes.NewParametersModel(),
		resultsModel:    scenes.NewResultsModel(),
		compareModel:    scenes.NewCompareModel(),
		optimizeModel:   scenes.NewOptimizeModel(),
		keys:            defaultKeyMap(),
		help:            hm,
		spinner:         sp,
		loading:         true,
		loadingMessage:  "Loading proposal...",
		width:           80,
		height:          24,
	}
}

// Init initializes the model (required by tea.Model interface)
func (m Model) Init() tea.Cmd {
	return tea.Batch(loadProposalCmd(m.proposalPath, m.pvgis), m.spinner.Tick)
}

// keyMap holds the global bindings shown in the status bar
type keyMap struct {
	Home       key.Binding
	Surfaces   key.Binding
	Parameters key.Binding
	Results    key.Binding
	Compare    key.Binding
	Optimize   key.Binding
	Help       key.Binding
	Back       key.Binding
	Quit       key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Home:       key.NewBinding(key.WithKeys("h"), key.WithHelp("h", "home")),
		Surfaces:   key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "roof")),
		Parameters: key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "parameters")),
		Results:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "results")),
		Compare:    key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "compare")),
		Optimize:   key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "optimize")),
		Help:       key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Back:       key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Home, k.Surfaces, k.Parameters, k.Results, k.Compare, k.Optimize, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Home, k.Surfaces, k.Parameters, k.Results},
		{k.Compare, k.Optimize, k.Help, k.Back, k.Quit},
	}
}

// loadProposalCmd parses the proposal and resolves its usage and production profile
func loadProposalCmd(path string, client *pvgis.Client) tea.Cmd {
	return func() tea.Msg {
		p, err := config.NewInputParser().LoadFromFile(path)
		if err != nil {
			return ErrorMsg{Err: err}
		}
		usage, err := config.ResolveMonthlyUsage(p.Utility)
		if err != nil {
			return ErrorMsg{Err: err}
		}
		base, err := pvgis.ProposalBase(context.Background(), client, p)
		if err != nil {
			return ErrorMsg{Err: err}
		}
		return ProposalLoadedMsg{Proposal: p, Usage: usage, BasePerKwp: base}
	}
}

// calculateCmd simulates a snapshot of the proposal
func calculateCmd(engine *calculation.CalculationEngine, p *domain.Proposal, usage, base domain.Monthly) tea.Cmd {
	return func() tea.Msg {
		result, err := engine.RunProposal(p, usage, base)
		return CalculationCompleteMsg{Result: result, Err: err}
	}
}

// compareCmd simulates the proposal at the given panel counts plus the recommended sizes
func compareCmd(engine *calculation.CalculationEngine, p *domain.Proposal, usage, base domain.Monthly, panels []int) tea.Cmd {
	return func() tea.Msg {
		set, err := compare.NewCompareEngine(engine).Compare(context.Background(), p, usage, base, compare.CompareOptions{
			Panels:             panels,
			IncludeRecommended: true,
		})
		return ComparisonCompleteMsg{Comparison: set, Err: err}
	}
}

// optimizeCmd runs the break-even solver over panel count and system price
func optimizeCmd(engine *calculation.CalculationEngine, p *domain.Proposal, usage, base domain.Monthly, goal breakeven.OptimizationGoal, targetMonths int) tea.Cmd {
	return func() tea.Msg {
		var constraints breakeven.Constraints
		if targetMonths > 0 {
			constraints.TargetMonths = &targetMonths
		}
		result, err := breakeven.NewDefaultSolver(engine).OptimizeAllTargets(context.Background(), p, usage, base, constraints, goal)
		return OptimizationCompleteMsg{Result: result, Err: err}
	}
}

// runEngine returns an engine using the escalation rate chosen in the parameters scene
func (m Model) runEngine() *calculation.CalculationEngine {
	e := *m.engine
	e.Tariff.EscalationRate = m.escalation
	return &e
}

// recalculate syncs the scenes with the working proposal and starts a simulation
func (m Model) recalculate() (Model, tea.Cmd) {
	m.homeModel.SetProposal(m.proposal, m.usage)
	m.surfacesModel.SetProposal(m.proposal)
	m.parametersModel.SetParameters(m.proposal, m.escalation)
	m.compareModel.SetBasePanels(m.proposal.TotalPanels())
	return m, calculateCmd(m.runEngine(), cloneProposal(m.proposal), m.usage, m.basePerKwp)
}

// cloneProposal copies what the scenes edit so running commands see a stable snapshot
func cloneProposal(p *domain.Proposal) *domain.Proposal {
	c := *p
	c.Surfaces = append([]domain.RoofSurface(nil), p.Surfaces...)
	return &c
}

// setPanels assigns panels to a surface (or the fixed total) and rescales the
// price at the current cost per panel. It reports whether anything changed.
func setPanels(p *domain.Proposal, surface, panels int) bool {
	before := p.TotalPanels()

	switch {
	case surface == scenes.OverrideSurface:
		if p.System.PanelCount <= 0 || panels < 1 {
			return false
		}
		p.System.PanelCount = panels
	case surface >= 0 && surface < len(p.Surfaces):
		if panels < 0 {
			return false
		}
		p.Surfaces[surface].AssignedPanels = panels
	default:
		return false
	}

	after := p.TotalPanels()
	if before > 0 && after != before {
		p.System.Cost = math.Round(p.System.Cost / float64(before) * float64(after))
	}
	return after != before
}
