package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/solarinrs/solaroi/internal/calculation"
	"github.com/solarinrs/solaroi/internal/config"
	"github.com/solarinrs/solaroi/internal/output"
)

func calculateCmd(opts *globalOptions) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "calculate [proposal-file]",
		Short: "Simulate a proposal over the 25 year horizon",
		Long: `Simulate a proposal month by month and report bills, savings and payback.

Examples:
  solaroi calculate proposal.yaml
  solaroi calculate proposal.yaml --format json
  solaroi calculate proposal.yaml --tariff tariff-2026.yaml --format monthly-csv`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f := output.GetFormatterByName(format)
			if f == nil {
				return fmt.Errorf("unknown format %q (available: %s)", format, strings.Join(output.AvailableFormatterNames(), ", "))
			}

			ctx := cmd.Context()
			engine, err := opts.engine(ctx)
			if err != nil {
				return err
			}
			in, err := opts.load(ctx, args[0])
			if err != nil {
				return err
			}

			result, err := engine.RunProposal(in.proposal, in.usage, in.basePerKwp)
			if err != nil {
				return err
			}

			data, err := f.Format(output.NewReport(in.proposal, result))
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "console", "Output format: console, console-lite, csv, monthly-csv, json, yaml, html")
	return cmd
}

func validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [proposal-file]",
		Short: "Validate a proposal file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := config.NewInputParser().LoadFromFile(args[0])
			if err != nil {
				return err
			}
			usage, err := config.ResolveMonthlyUsage(p.Utility)
			if err != nil {
				return err
			}

			panels := p.TotalPanels()
			fmt.Fprintf(cmd.OutOrStdout(), "Proposal %s is valid: %d panels (%.2f kWp), %s per year\n",
				args[0], panels, calculation.CapacityKw(panels, p.System.PanelWattage), output.FormatKwh(usage.Total()))
			if p.Production.BasePerKwp == nil {
				fmt.Fprintln(cmd.OutOrStdout(), "No production profile given; run with --fetch to look it up in PVGIS")
			}
			return nil
		},
	}
}

func sizeCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "size [proposal-file]",
		Short: "Recommend a system size for the proposal's consumption",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			engine, err := opts.engine(ctx)
			if err != nil {
				return err
			}
			in, err := opts.load(ctx, args[0])
			if err != nil {
				return err
			}

			p := in.proposal
			rec := engine.RecommendSystemSize(in.usage, p.Utility.TariffFraction, in.basePerKwp.Total(), p.System.PanelWattage)
			current := p.TotalPanels()

			w := cmd.OutOrStdout()
			fmt.Fprintln(w, "RECOMMENDED SYSTEM SIZE")
			fmt.Fprintln(w, strings.Repeat("=", 40))
			fmt.Fprintf(w, "Day-rate usage above green band: %s/yr\n", output.FormatKwh(rec.AnnualBlueRedUsage))
			fmt.Fprintf(w, "Yield per installed kWp:         %s/yr\n", output.FormatKwh(in.basePerKwp.Total()))
			fmt.Fprintln(w)
			fmt.Fprintf(w, "  Minimum: %3d panels  %6.2f kWp\n", rec.MinPanels, rec.MinKw)
			fmt.Fprintf(w, "  Optimal: %3d panels  %6.2f kWp\n", rec.OptimalPanels, rec.OptimalKw)
			fmt.Fprintf(w, "  Maximum: %3d panels  %6.2f kWp\n", rec.MaxPanels, rec.MaxKw)
			fmt.Fprintln(w)

			status := "inside"
			if !rec.Contains(current) {
				status = "outside"
			}
			fmt.Fprintf(w, "Proposed system: %d panels, %s the recommended range\n", current, status)
			return nil
		},
	}
}
