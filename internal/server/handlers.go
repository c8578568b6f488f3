package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/solarinrs/solaroi/internal/config"
	"github.com/solarinrs/solaroi/internal/domain"
	"github.com/solarinrs/solaroi/internal/log"
	"github.com/solarinrs/solaroi/internal/output"
	"github.com/solarinrs/solaroi/internal/pvgis"
)

type sizeRequest struct {
	MonthlyUsage             domain.Monthly `json:"monthly_usage"`
	TariffFraction           float64        `json:"tariff_fraction"`
	ProductionPerInstalledKw float64        `json:"production_per_installed_kw"`
	PanelPower               float64        `json:"panel_power"`
}

type co2Request struct {
	AnnualUsage      float64 `json:"annual_usage"`
	AnnualProduction float64 `json:"annual_production"`
}

type pvgisRequest struct {
	Location     domain.Location      `json:"location"`
	Surfaces     []domain.RoofSurface `json:"surfaces"`
	PanelWattage float64              `json:"panel_wattage"`
}

type usageRequest struct {
	AnnualUsage  float64 `json:"annual_usage"`
	Distribution string  `json:"distribution"`
}

func decodeBody(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(v); err != nil {
		writeJSONError(w, fmt.Sprintf("invalid request body: %v", err), http.StatusBadRequest)
		return false
	}
	return true
}

func (s *Server) handleSimulate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var params domain.SimulationParams
	if !decodeBody(w, r, &params) {
		return
	}

	result, err := s.engine.RunSimulation(params)
	if err != nil {
		writeJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	log.Ctx(ctx).InfoContext(ctx, "simulated", slog.String("summary", result.Summary()))
	writeJSON(w, result)
}

func (s *Server) handleSize(w http.ResponseWriter, r *http.Request) {
	var req sizeRequest
	if !decodeBody(w, r, &req) {
		return
	}

	switch {
	case req.MonthlyUsage.HasNegative():
		writeJSONError(w, "monthly_usage cannot contain negative values", http.StatusBadRequest)
		return
	case req.TariffFraction < 0 || req.TariffFraction > 1:
		writeJSONError(w, "tariff_fraction must be between 0 and 1", http.StatusBadRequest)
		return
	case req.ProductionPerInstalledKw <= 0:
		writeJSONError(w, "production_per_installed_kw must be positive", http.StatusBadRequest)
		return
	}
	if req.PanelPower <= 0 {
		req.PanelPower = domain.DefaultPanelWattage
	}

	writeJSON(w, s.engine.RecommendSystemSize(req.MonthlyUsage, req.TariffFraction, req.ProductionPerInstalledKw, req.PanelPower))
}

func (s *Server) handleCO2(w http.ResponseWriter, r *http.Request) {
	var req co2Request
	if !decodeBody(w, r, &req) {
		return
	}
	if req.AnnualUsage < 0 || req.AnnualProduction < 0 {
		writeJSONError(w, "annual_usage and annual_production cannot be negative", http.StatusBadRequest)
		return
	}

	writeJSON(w, s.engine.EstimateCO2(req.AnnualUsage, req.AnnualProduction))
}

func (s *Server) handlePVGIS(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if s.pvgis == nil {
		writeJSONError(w, "production lookups are disabled", http.StatusServiceUnavailable)
		return
	}

	var req pvgisRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if _, ok := req.Location.Resolve(); !ok {
		writeJSONError(w, fmt.Sprintf("unknown location %q", req.Location.City), http.StatusBadRequest)
		return
	}
	if req.PanelWattage <= 0 {
		req.PanelWattage = domain.DefaultPanelWattage
	}

	site, err := s.pvgis.SiteProduction(ctx, req.Location, req.Surfaces, req.PanelWattage)
	if err != nil {
		s.writeUpstreamError(w, r, "failed to fetch production", err)
		return
	}
	writeJSON(w, site)
}

// handleProposal runs a complete proposal document and returns the report
func (s *Server) handleProposal(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		writeJSONError(w, fmt.Sprintf("failed to read request body: %v", err), http.StatusBadRequest)
		return
	}

	p, err := s.parser.Parse(data)
	if err != nil {
		writeJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}
	usage, err := config.ResolveMonthlyUsage(p.Utility)
	if err != nil {
		writeJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	base, err := pvgis.ProposalBase(ctx, s.pvgis, p)
	if err != nil {
		s.writeUpstreamError(w, r, "failed to resolve production", err)
		return
	}

	result, err := s.engine.RunProposal(p, usage, base)
	if err != nil {
		writeJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	log.Ctx(ctx).InfoContext(ctx, "proposal calculated",
		slog.String("proposal_id", p.ID),
		slog.String("summary", result.Summary()))
	writeJSON(w, output.NewReport(p, result))
}

func (s *Server) handleUsage(w http.ResponseWriter, r *http.Request) {
	var req usageRequest
	if !decodeBody(w, r, &req) {
		return
	}

	monthly, err := config.DistributeAnnualUsage(req.AnnualUsage, req.Distribution)
	if err != nil {
		writeJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, monthly)
}

func (s *Server) handleCities(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, domain.Cities())
}

// writeUpstreamError maps PVGIS failures to 502 and everything else to 400
func (s *Server) writeUpstreamError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	ctx := r.Context()
	var apiErr *pvgis.APIError
	if errors.As(err, &apiErr) {
		log.Ctx(ctx).ErrorContext(ctx, msg, slog.Any("error", err))
		writeJSONError(w, fmt.Sprintf("%s: %v", msg, err), http.StatusBadGateway)
		return
	}
	writeJSONError(w, fmt.Sprintf("%s: %v", msg, err), http.StatusBadRequest)
}
