package breakeven

import (
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func TestDefaultConstraints(t *testing.T) {
	c := DefaultConstraints()

	if c.MinPanels == nil || *c.MinPanels != 1 {
		t.Errorf("Expected MinPanels 1, got %v", c.MinPanels)
	}
	if c.MaxPanels == nil || *c.MaxPanels != 40 {
		t.Errorf("Expected MaxPanels 40, got %v", c.MaxPanels)
	}
	if c.TargetMonths != nil {
		t.Error("Expected no payback target by default")
	}
	if err := c.Validate(); err != nil {
		t.Errorf("Expected default constraints to be valid, got %v", err)
	}
}

func TestConstraints_Validate(t *testing.T) {
	neg := decimal.NewFromInt(-1)
	low := decimal.NewFromInt(100000)
	high := decimal.NewFromInt(900000)
	zero := decimal.Zero

	tests := []struct {
		name    string
		c       Constraints
		wantErr string
	}{
		{"empty", Constraints{}, ""},
		{"valid ranges", Constraints{MinPanels: intPtr(4), MaxPanels: intPtr(20), MinSystemCost: &low, MaxSystemCost: &high, TargetMonths: intPtr(96)}, ""},
		{"min panels zero", Constraints{MinPanels: intPtr(0)}, "min_panels must be at least 1"},
		{"panels inverted", Constraints{MinPanels: intPtr(20), MaxPanels: intPtr(4)}, "min_panels cannot be greater than max_panels"},
		{"negative cost", Constraints{MinSystemCost: &neg}, "min_system_cost cannot be negative"},
		{"cost inverted", Constraints{MinSystemCost: &high, MaxSystemCost: &low}, "min_system_cost cannot be greater than max_system_cost"},
		{"zero panel price", Constraints{CostPerPanel: &zero}, "cost_per_panel must be positive"},
		{"target too short", Constraints{TargetMonths: intPtr(0)}, "target_months must be between 1 and 300"},
		{"target beyond horizon", Constraints{TargetMonths: intPtr(301)}, "target_months must be between 1 and 300"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.c.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Expected no error, got %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("Expected error containing %q", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Expected error containing %q, got %q", tt.wantErr, err.Error())
			}
		})
	}
}

func TestBreakEvenError(t *testing.T) {
	plain := &BreakEvenError{Operation: "optimize", Message: "bad target"}
	if plain.Error() != "optimize: bad target" {
		t.Errorf("Unexpected message: %s", plain.Error())
	}
	if plain.Unwrap() != nil {
		t.Error("Expected no cause")
	}

	cause := errors.New("simulation failed")
	wrapped := &BreakEvenError{Operation: "optimize_panel_count", Message: "failed", Cause: cause}
	if wrapped.Error() != "optimize_panel_count: failed: simulation failed" {
		t.Errorf("Unexpected message: %s", wrapped.Error())
	}
	if !errors.Is(wrapped, cause) {
		t.Error("Expected errors.Is to find the cause")
	}
}

func TestDefaultSolverOptions(t *testing.T) {
	opts := DefaultSolverOptions()

	if opts.MaxIterations != 60 {
		t.Errorf("Expected MaxIterations 60, got %d", opts.MaxIterations)
	}
	if !opts.Tolerance.Equal(decimal.NewFromInt(1000)) {
		t.Errorf("Expected tolerance 1000, got %s", opts.Tolerance)
	}
}
