package config

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/solarinrs/solaroi/internal/domain"
	"gopkg.in/yaml.v3"
)

// InputParser handles parsing of proposal and tariff files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads a proposal from a YAML or JSON file
func (ip *InputParser) LoadFromFile(filename string) (*domain.Proposal, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ip.Parse(data)
}

// Parse decodes, defaults and validates a proposal document
func (ip *InputParser) Parse(data []byte) (*domain.Proposal, error) {
	var proposal domain.Proposal
	if err := yaml.Unmarshal(data, &proposal); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	ip.ApplyDefaults(&proposal)

	if err := ip.ValidateProposal(&proposal); err != nil {
		return nil, fmt.Errorf("proposal validation failed: %w", err)
	}

	return &proposal, nil
}

// LoadTariffFromFile loads a tariff table, starting from the published defaults
// so a file only needs to list the rates it changes.
func (ip *InputParser) LoadTariffFromFile(filename string) (*domain.Tariff, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	tariff := domain.DefaultTariff()
	if err := yaml.Unmarshal(data, &tariff); err != nil {
		return nil, fmt.Errorf("failed to parse tariff YAML: %w", err)
	}
	if err := tariff.Validate(); err != nil {
		return nil, fmt.Errorf("tariff validation failed: %w", err)
	}
	return &tariff, nil
}

// ApplyDefaults fills the fields a proposal may leave empty
func (ip *InputParser) ApplyDefaults(p *domain.Proposal) {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.Utility.TariffFraction == 0 {
		p.Utility.TariffFraction = domain.DefaultTariffFraction
	}
	if p.Utility.PermittedPower == 0 {
		p.Utility.PermittedPower = domain.DefaultPermittedPower
	}
	if p.System.PanelWattage == 0 {
		p.System.PanelWattage = domain.DefaultPanelWattage
	}
	if p.Utility.MonthlyUsage == nil && p.Utility.Distribution == "" {
		p.Utility.Distribution = DistributionFlat
	}
	for i := range p.Surfaces {
		if p.Surfaces[i].Orientation == "" {
			p.Surfaces[i].Orientation = domain.OrientationSouth
		}
		if p.Surfaces[i].Slope == 0 {
			p.Surfaces[i].Slope = domain.DefaultSlope
		}
	}
}

// ValidateProposal validates a loaded proposal
func (ip *InputParser) ValidateProposal(p *domain.Proposal) error {
	if p.Customer.Name == "" {
		return fmt.Errorf("customer name is required")
	}
	if err := ip.validateLocation(&p.Location); err != nil {
		return fmt.Errorf("location validation failed: %w", err)
	}
	if err := ip.validateUtility(&p.Utility); err != nil {
		return fmt.Errorf("utility validation failed: %w", err)
	}
	for i := range p.Surfaces {
		if err := ip.validateSurface(&p.Surfaces[i]); err != nil {
			return fmt.Errorf("surface %d (%s) validation failed: %w", i, p.Surfaces[i].Name, err)
		}
	}
	if err := ip.validateSystem(p); err != nil {
		return fmt.Errorf("system validation failed: %w", err)
	}
	if base := p.Production.BasePerKwp; base != nil {
		if base.HasNegative() {
			return fmt.Errorf("production base_per_kwp cannot contain negative values")
		}
		if base.Total() <= 0 {
			return fmt.Errorf("production base_per_kwp must have a positive annual yield")
		}
	}
	return nil
}

func (ip *InputParser) validateLocation(l *domain.Location) error {
	if l.HasCoordinates() {
		if l.Latitude < -90 || l.Latitude > 90 {
			return fmt.Errorf("latitude must be between -90 and 90")
		}
		if l.Longitude < -180 || l.Longitude > 180 {
			return fmt.Errorf("longitude must be between -180 and 180")
		}
		return nil
	}
	if l.City == "" {
		return fmt.Errorf("either city or latitude/longitude is required")
	}
	if _, ok := domain.FindCity(l.City); !ok {
		return fmt.Errorf("unknown city %q", l.City)
	}
	return nil
}

func (ip *InputParser) validateUtility(u *domain.Utility) error {
	if u.TariffFraction < 0 || u.TariffFraction > 1 {
		return fmt.Errorf("tariff fraction must be between 0 and 1")
	}
	if u.PermittedPower < 0 {
		return fmt.Errorf("permitted power cannot be negative")
	}

	if u.MonthlyUsage != nil {
		if u.MonthlyUsage.HasNegative() {
			return fmt.Errorf("monthly usage cannot contain negative values")
		}
		if u.MonthlyUsage.Total() <= 0 {
			return fmt.Errorf("monthly usage must add up to a positive annual usage")
		}
		return nil
	}

	if u.AnnualUsage <= 0 {
		return fmt.Errorf("either monthly_usage or a positive annual_usage is required")
	}
	if _, ok := distributionWeights[u.Distribution]; !ok {
		return fmt.Errorf("distribution must be one of %v", DistributionProfiles())
	}
	return nil
}

func (ip *InputParser) validateSurface(s *domain.RoofSurface) error {
	if _, ok := s.Orientation.Aspect(); !ok {
		return fmt.Errorf("unknown orientation %q", s.Orientation)
	}
	if s.Slope < 0 || s.Slope > 90 {
		return fmt.Errorf("slope must be between 0 and 90 degrees")
	}
	if s.Shading < 0 || s.Shading >= 1 {
		return fmt.Errorf("shading must be between 0 and 1")
	}
	if s.AssignedPanels < 0 {
		return fmt.Errorf("assigned panels cannot be negative")
	}
	if s.MaxPanels > 0 && s.AssignedPanels > s.MaxPanels {
		return fmt.Errorf("assigned panels (%d) exceed surface capacity (%d)", s.AssignedPanels, s.MaxPanels)
	}
	return nil
}

func (ip *InputParser) validateSystem(p *domain.Proposal) error {
	if p.System.PanelWattage <= 0 {
		return fmt.Errorf("panel wattage must be positive")
	}
	if p.System.Cost < 0 {
		return fmt.Errorf("system cost cannot be negative")
	}
	if p.System.PanelCount < 0 {
		return fmt.Errorf("panel count cannot be negative")
	}
	if p.TotalPanels() == 0 {
		return fmt.Errorf("at least one panel must be assigned to a surface or set in system.panel_count")
	}
	return nil
}

// ResolveMonthlyUsage returns the monthly usage given directly or distributed from the annual figure
func ResolveMonthlyUsage(u domain.Utility) (domain.Monthly, error) {
	if u.MonthlyUsage != nil {
		return *u.MonthlyUsage, nil
	}
	return DistributeAnnualUsage(u.AnnualUsage, u.Distribution)
}
