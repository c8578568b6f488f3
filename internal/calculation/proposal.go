package calculation

import (
	"fmt"

	"github.com/solarinrs/solaroi/internal/domain"
)

// ProposalParams builds simulation inputs for a proposal.
// usage is the resolved monthly consumption and basePerKwp the site yield per installed kWp.
// Capacity comes from the panels assigned to roof surfaces unless the system
// carries an explicit panel count.
func (ce *CalculationEngine) ProposalParams(p *domain.Proposal, usage, basePerKwp domain.Monthly) domain.SimulationParams {
	capacity := InstalledCapacityKw(p.Surfaces, p.System.PanelWattage)
	if p.System.PanelCount > 0 {
		capacity = CapacityKw(p.System.PanelCount, p.System.PanelWattage)
	}
	return ce.paramsForCapacity(p, usage, basePerKwp, capacity)
}

// ParamsForPanels builds simulation inputs as if the proposal had the given panel count
func (ce *CalculationEngine) ParamsForPanels(p *domain.Proposal, usage, basePerKwp domain.Monthly, panels int) domain.SimulationParams {
	return ce.paramsForCapacity(p, usage, basePerKwp, CapacityKw(panels, p.System.PanelWattage))
}

func (ce *CalculationEngine) paramsForCapacity(p *domain.Proposal, usage, basePerKwp domain.Monthly, capacity float64) domain.SimulationParams {
	production := ce.ScaleProduction(basePerKwp, capacity)

	return domain.SimulationParams{
		MonthlyUsage:             usage,
		MonthlyProduction:        production.Monthly,
		AnnualProduction:         production.Annual,
		SystemCost:               p.System.Cost,
		TariffFraction:           p.Utility.TariffFraction,
		PermittedPower:           p.Utility.PermittedPower,
		PanelPower:               p.System.PanelWattage,
		ProductionPerInstalledKw: basePerKwp.Total(),
	}
}

// RunProposal simulates a proposal end to end
func (ce *CalculationEngine) RunProposal(p *domain.Proposal, usage, basePerKwp domain.Monthly) (*domain.SimulationResult, error) {
	if p.TotalPanels() == 0 {
		return nil, fmt.Errorf("proposal %s has no panels assigned", p.ID)
	}
	return ce.RunSimulation(ce.ProposalParams(p, usage, basePerKwp))
}
