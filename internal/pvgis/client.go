package pvgis

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"github.com/solarinrs/solaroi/internal/domain"
	"github.com/solarinrs/solaroi/internal/log"
)

const (
	// DefaultBaseURL is the PVGIS grid-connected PV calculation endpoint
	DefaultBaseURL = "https://re.jrc.ec.europa.eu/api/PVcalc"
	// LossPercent is the assumed system loss passed to PVGIS
	LossPercent = 14
	// DefaultAngle and DefaultAspect describe the reference plane of the base profile
	DefaultAngle  = 35.0
	DefaultAspect = 0.0

	defaultTimeout = 30 * time.Second
)

// APIError is returned when PVGIS answers with a non-200 status
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("pvgis api returned status: %d", e.StatusCode)
	}
	return fmt.Sprintf("pvgis api returned status: %d: %s", e.StatusCode, e.Body)
}

// Request describes one plane of panels
type Request struct {
	Latitude  float64
	Longitude float64
	PeakPower float64 // kWp
	Angle     float64 // slope in degrees
	Aspect    float64 // azimuth, 0 = south
}

// Profile is a monthly yield as returned by PVGIS, rounded to whole kWh
type Profile struct {
	Monthly domain.Monthly `json:"monthly"`
	Annual  float64        `json:"annual"`
}

// SurfaceProduction is the shaded yield of one roof surface
type SurfaceProduction struct {
	Name      string  `json:"name"`
	PeakPower float64 `json:"peak_power"`
	Angle     float64 `json:"angle"`
	Aspect    float64 `json:"aspect"`
	Shading   float64 `json:"shading"`
	Profile
}

// SiteProduction combines the per-kWp base profile with the yield of every surface
type SiteProduction struct {
	BasePerKwp Profile             `json:"base_per_kwp"`
	Combined   Profile             `json:"combined"`
	Surfaces   []SurfaceProduction `json:"surfaces"`
}

type monthlyEntry struct {
	Month int     `json:"month"`
	Em    float64 `json:"E_m"`
}

type apiResponse struct {
	Outputs struct {
		Monthly struct {
			Fixed []monthlyEntry `json:"fixed"`
		} `json:"monthly"`
		Totals struct {
			Fixed struct {
				Ey float64 `json:"E_y"`
			} `json:"fixed"`
		} `json:"totals"`
	} `json:"outputs"`
}

// Client fetches production estimates from PVGIS.
// Responses are cached per request URL for the life of the client.
type Client struct {
	baseURL string
	client  *http.Client

	mu    sync.Mutex
	cache map[string]domain.Monthly
}

// NewClient returns a client for baseURL, or DefaultBaseURL when empty
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if httpClient == nil {
		httpClient = HTTPClient(defaultTimeout)
	}
	return &Client{
		baseURL: baseURL,
		client:  httpClient,
		cache:   make(map[string]domain.Monthly),
	}
}

// Validate ensures the configuration is valid
func (c *Client) Validate() error {
	if c.baseURL == "" {
		return fmt.Errorf("pvgis url is required")
	}
	if _, err := url.Parse(c.baseURL); err != nil {
		return fmt.Errorf("failed to parse pvgis url (%s): %w", c.baseURL, err)
	}
	return nil
}

func (c *Client) requestURL(r Request) (string, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return "", fmt.Errorf("invalid api url: %w", err)
	}
	params := url.Values{}
	params.Set("lat", formatFloat(r.Latitude))
	params.Set("lon", formatFloat(r.Longitude))
	params.Set("peakpower", formatFloat(r.PeakPower))
	params.Set("angle", formatFloat(r.Angle))
	params.Set("aspect", formatFloat(r.Aspect))
	params.Set("loss", strconv.Itoa(LossPercent))
	params.Set("outputformat", "json")
	u.RawQuery = params.Encode()
	return u.String(), nil
}

// fetchRaw returns the unrounded monthly E_m values for one request
func (c *Client) fetchRaw(ctx context.Context, r Request) (domain.Monthly, error) {
	var m domain.Monthly
	if r.PeakPower <= 0 {
		return m, fmt.Errorf("peak power must be positive")
	}
	reqURL, err := c.requestURL(r)
	if err != nil {
		return m, err
	}

	c.mu.Lock()
	if cached, ok := c.cache[reqURL]; ok {
		c.mu.Unlock()
		log.Ctx(ctx).DebugContext(ctx, "pvgis cache hit", slog.String("url", reqURL))
		return cached, nil
	}
	c.mu.Unlock()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return m, fmt.Errorf("failed to create request: %w", err)
	}
	log.Ctx(ctx).DebugContext(ctx, "fetching production from pvgis", slog.String("url", reqURL))

	resp, err := c.client.Do(req)
	if err != nil {
		log.Ctx(ctx).ErrorContext(ctx, "failed to fetch production", slog.Any("error", err))
		return m, fmt.Errorf("failed to fetch production: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return m, &APIError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	var data apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		log.Ctx(ctx).ErrorContext(ctx, "failed to decode pvgis response", slog.Any("error", err))
		return m, fmt.Errorf("failed to decode response: %w", err)
	}

	seen := 0
	for _, item := range data.Outputs.Monthly.Fixed {
		if item.Month < 1 || item.Month > domain.MonthsPerYear {
			log.Ctx(ctx).WarnContext(ctx, "ignoring pvgis month out of range", slog.Int("month", item.Month))
			continue
		}
		m.Set(item.Month, item.Em)
		seen++
	}
	if seen != domain.MonthsPerYear {
		return m, fmt.Errorf("pvgis response has %d monthly values, expected %d", seen, domain.MonthsPerYear)
	}
	log.Ctx(ctx).DebugContext(
		ctx,
		"fetched production",
		slog.Float64("annual", data.Outputs.Totals.Fixed.Ey),
		slog.Float64("peakpower", r.PeakPower),
	)

	c.mu.Lock()
	c.cache[reqURL] = m
	c.mu.Unlock()
	return m, nil
}

// Fetch returns the monthly production of one plane rounded to whole kWh
func (c *Client) Fetch(ctx context.Context, r Request) (*Profile, error) {
	raw, err := c.fetchRaw(ctx, r)
	if err != nil {
		return nil, err
	}
	return newProfile(raw, 0), nil
}

// BaseProfile returns the yield of 1 kWp on the reference plane at a location
func (c *Client) BaseProfile(ctx context.Context, lat, lon float64) (*Profile, error) {
	return c.Fetch(ctx, Request{
		Latitude:  lat,
		Longitude: lon,
		PeakPower: 1,
		Angle:     DefaultAngle,
		Aspect:    DefaultAspect,
	})
}

// SiteProduction fetches the base profile and the shaded yield of every surface with panels
func (c *Client) SiteProduction(ctx context.Context, loc domain.Location, surfaces []domain.RoofSurface, panelWattage float64) (*SiteProduction, error) {
	resolved, ok := loc.Resolve()
	if !ok {
		return nil, fmt.Errorf("location %q has no coordinates", loc.City)
	}

	base, err := c.BaseProfile(ctx, resolved.Latitude, resolved.Longitude)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch base profile: %w", err)
	}

	site := &SiteProduction{BasePerKwp: *base}
	for _, s := range surfaces {
		if s.AssignedPanels == 0 {
			continue
		}
		aspect, ok := s.Orientation.Aspect()
		if !ok {
			return nil, fmt.Errorf("surface %s: unknown orientation %q", s.Name, s.Orientation)
		}
		r := Request{
			Latitude:  resolved.Latitude,
			Longitude: resolved.Longitude,
			PeakPower: float64(s.AssignedPanels) * panelWattage / 1000,
			Angle:     s.Slope,
			Aspect:    aspect,
		}
		raw, err := c.fetchRaw(ctx, r)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch surface %s: %w", s.Name, err)
		}

		sp := SurfaceProduction{
			Name:      s.Name,
			PeakPower: r.PeakPower,
			Angle:     r.Angle,
			Aspect:    r.Aspect,
			Shading:   s.Shading,
			Profile:   *newProfile(raw, s.Shading),
		}
		site.Surfaces = append(site.Surfaces, sp)
		for month := 1; month <= domain.MonthsPerYear; month++ {
			site.Combined.Monthly.Set(month, site.Combined.Monthly.At(month)+sp.Monthly.At(month))
		}
	}
	site.Combined.Annual = site.Combined.Monthly.Total()
	return site, nil
}

// ProposalBase returns the proposal's own per-kWp profile, fetching it from
// PVGIS at the proposal location when none was given. c may be nil to forbid fetching.
func ProposalBase(ctx context.Context, c *Client, p *domain.Proposal) (domain.Monthly, error) {
	if p.Production.BasePerKwp != nil {
		return *p.Production.BasePerKwp, nil
	}
	if c == nil {
		return domain.Monthly{}, fmt.Errorf("proposal %s has no production.base_per_kwp and fetching is disabled", p.ID)
	}
	loc, ok := p.Location.Resolve()
	if !ok {
		return domain.Monthly{}, fmt.Errorf("location %q has no coordinates", p.Location.City)
	}
	profile, err := c.BaseProfile(ctx, loc.Latitude, loc.Longitude)
	if err != nil {
		return domain.Monthly{}, fmt.Errorf("failed to fetch base profile: %w", err)
	}
	return profile.Monthly, nil
}

func newProfile(raw domain.Monthly, shading float64) *Profile {
	p := &Profile{}
	for month := 1; month <= domain.MonthsPerYear; month++ {
		p.Monthly.Set(month, math.Round(raw.At(month)*(1-shading)))
	}
	p.Annual = p.Monthly.Total()
	return p
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
