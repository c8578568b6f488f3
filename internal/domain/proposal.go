package domain

import (
	"sort"
	"strings"
)

// Proposal is one customer's solar offer as loaded from a proposal file
type Proposal struct {
	ID         string        `yaml:"id,omitempty" json:"id,omitempty"`
	Customer   Customer      `yaml:"customer" json:"customer"`
	Location   Location      `yaml:"location" json:"location"`
	Surfaces   []RoofSurface `yaml:"surfaces" json:"surfaces"`
	Utility    Utility       `yaml:"utility" json:"utility"`
	System     System        `yaml:"system" json:"system"`
	Production Production    `yaml:"production" json:"production"`
}

// Customer identifies who the proposal is for
type Customer struct {
	Name    string `yaml:"name" json:"name"`
	Email   string `yaml:"email,omitempty" json:"email,omitempty"`
	Phone   string `yaml:"phone,omitempty" json:"phone,omitempty"`
	Address string `yaml:"address,omitempty" json:"address,omitempty"`
}

// Location is either a city preset or explicit coordinates
type Location struct {
	City      string  `yaml:"city,omitempty" json:"city,omitempty"`
	Latitude  float64 `yaml:"latitude,omitempty" json:"latitude,omitempty"`
	Longitude float64 `yaml:"longitude,omitempty" json:"longitude,omitempty"`
}

// HasCoordinates reports whether latitude and longitude were given explicitly
func (l Location) HasCoordinates() bool {
	return l.Latitude != 0 || l.Longitude != 0
}

// Resolve fills coordinates from the city preset when none were given
func (l Location) Resolve() (Location, bool) {
	if l.HasCoordinates() {
		return l, true
	}
	city, ok := FindCity(l.City)
	if !ok {
		return l, false
	}
	return Location{City: city.Name, Latitude: city.Latitude, Longitude: city.Longitude}, true
}

// Orientation is the compass direction a roof surface faces
type Orientation string

const (
	OrientationSouth     Orientation = "south"
	OrientationSouthEast Orientation = "south_east"
	OrientationSouthWest Orientation = "south_west"
	OrientationEast      Orientation = "east"
	OrientationWest      Orientation = "west"
	OrientationNorth     Orientation = "north"
)

// Aspect returns the PVGIS azimuth in degrees (0 = south, -90 = east, 90 = west)
func (o Orientation) Aspect() (float64, bool) {
	switch o {
	case OrientationSouth, "":
		return 0, true
	case OrientationSouthEast:
		return -45, true
	case OrientationSouthWest:
		return 45, true
	case OrientationEast:
		return -90, true
	case OrientationWest:
		return 90, true
	case OrientationNorth:
		return 180, true
	}
	return 0, false
}

// RoofSurface is one roof plane panels can be mounted on
type RoofSurface struct {
	Name           string      `yaml:"name" json:"name"`
	Orientation    Orientation `yaml:"orientation" json:"orientation"`
	Slope          float64     `yaml:"slope" json:"slope"`
	Shading        float64     `yaml:"shading" json:"shading"`
	MaxPanels      int         `yaml:"max_panels" json:"max_panels"`
	AssignedPanels int         `yaml:"assigned_panels" json:"assigned_panels"`
}

// Utility describes the household's grid connection and consumption
type Utility struct {
	TariffFraction float64 `yaml:"tariff_fraction" json:"tariff_fraction"`
	PermittedPower float64 `yaml:"permitted_power" json:"permitted_power"`

	// Either MonthlyUsage or AnnualUsage plus Distribution must be set
	MonthlyUsage *Monthly `yaml:"monthly_usage,omitempty" json:"monthly_usage,omitempty"`
	AnnualUsage  float64  `yaml:"annual_usage,omitempty" json:"annual_usage,omitempty"`
	Distribution string   `yaml:"distribution,omitempty" json:"distribution,omitempty"`
}

// System is the offered equipment
type System struct {
	PanelWattage float64 `yaml:"panel_wattage" json:"panel_wattage"`
	Cost         float64 `yaml:"cost" json:"cost"`
	// PanelCount overrides the sum of surface assignments when non-zero
	PanelCount int `yaml:"panel_count,omitempty" json:"panel_count,omitempty"`
}

// Production is the per-kWp yield profile of the site
type Production struct {
	BasePerKwp *Monthly `yaml:"base_per_kwp,omitempty" json:"base_per_kwp,omitempty"`
}

// TotalPanels returns the panel count override or the sum over all surfaces
func (p *Proposal) TotalPanels() int {
	if p.System.PanelCount > 0 {
		return p.System.PanelCount
	}
	total := 0
	for _, s := range p.Surfaces {
		total += s.AssignedPanels
	}
	return total
}

// Defaults applied when a proposal leaves a field empty
const (
	DefaultTariffFraction = 0.85
	DefaultPermittedPower = 11.04
	DefaultPanelWattage   = 400.0
	DefaultSlope          = 35.0
)

// City is a location preset
type City struct {
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

var serbianCities = []City{
	{Name: "Beograd", Latitude: 44.8176, Longitude: 20.4569},
	{Name: "Novi Sad", Latitude: 45.2671, Longitude: 19.8335},
	{Name: "Niš", Latitude: 43.3209, Longitude: 21.8958},
	{Name: "Kragujevac", Latitude: 44.0128, Longitude: 20.9114},
	{Name: "Subotica", Latitude: 46.1000, Longitude: 19.6667},
	{Name: "Zrenjanin", Latitude: 45.3833, Longitude: 20.3833},
	{Name: "Pančevo", Latitude: 44.8708, Longitude: 20.6403},
	{Name: "Čačak", Latitude: 43.8914, Longitude: 20.3497},
	{Name: "Novi Pazar", Latitude: 43.1367, Longitude: 20.5122},
	{Name: "Kraljevo", Latitude: 43.7233, Longitude: 20.6897},
}

// Cities returns the city presets sorted by name
func Cities() []City {
	out := make([]City, len(serbianCities))
	copy(out, serbianCities)
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

var latinFold = strings.NewReplacer("č", "c", "ć", "c", "š", "s", "ž", "z", "đ", "dj")

// FindCity looks a preset up by name, ignoring case and diacritics
func FindCity(name string) (City, bool) {
	want := latinFold.Replace(strings.ToLower(strings.TrimSpace(name)))
	if want == "" {
		return City{}, false
	}
	for _, c := range serbianCities {
		if latinFold.Replace(strings.ToLower(c.Name)) == want {
			return c, true
		}
	}
	return City{}, false
}
