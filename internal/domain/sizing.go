package domain

// SizingRecommendation is the sweet-spot system size range
type SizingRecommendation struct {
	AnnualBlueRedUsage float64 `json:"annual_blue_red_usage"`
	MinPanels          int     `json:"min_panels"`
	OptimalPanels      int     `json:"optimal_panels"`
	MaxPanels          int     `json:"max_panels"`
	MinKw              float64 `json:"min_kw"`
	OptimalKw          float64 `json:"optimal_kw"`
	MaxKw              float64 `json:"max_kw"`
}

// Contains reports whether a panel count falls inside the recommended range
func (s SizingRecommendation) Contains(panels int) bool {
	return panels >= s.MinPanels && panels <= s.MaxPanels
}

// CO2Result is the yearly emission reduction and its equivalences
type CO2Result struct {
	PreSolarKg  float64 `json:"pre_solar_kg"`
	PostSolarKg float64 `json:"post_solar_kg"`
	ReductionKg float64 `json:"reduction_kg"`
	Trees       float64 `json:"trees"`
	CarKm       float64 `json:"car_km"`
}

// CO2Factors are the emission constants of the Serbian grid mix
type CO2Factors struct {
	CoalShare         float64 `yaml:"coal_share" json:"coal_share"`
	CoalKgPerKwh      float64 `yaml:"coal_kg_per_kwh" json:"coal_kg_per_kwh"`
	TreeKgPerYear     float64 `yaml:"tree_kg_per_year" json:"tree_kg_per_year"`
	CarKgPerHundredKm float64 `yaml:"car_kg_per_hundred_km" json:"car_kg_per_hundred_km"`
}

// DefaultCO2Factors returns the factors used for Serbian households
func DefaultCO2Factors() CO2Factors {
	return CO2Factors{
		CoalShare:         0.7,
		CoalKgPerKwh:      0.9,
		TreeKgPerYear:     50,
		CarKgPerHundredKm: 13.4,
	}
}

// ScaledProduction is a production profile for a whole system
type ScaledProduction struct {
	Monthly Monthly `json:"monthly"`
	Annual  float64 `json:"annual"`
}
