package main

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"gopkg.in/cheggaaa/pb.v1"

	"github.com/solarinrs/solaroi/internal/domain"
	"github.com/solarinrs/solaroi/internal/sensitivity"
)

type sensitivityOptions struct {
	params   []string
	min      string
	max      string
	steps    int
	format   string
	progress bool
}

func sensitivityCmd(opts *globalOptions) *cobra.Command {
	var so sensitivityOptions

	cmd := &cobra.Command{
		Use:   "sensitivity [proposal-file]",
		Short: "Sweep one or more inputs and measure their effect on savings",
		Long: fmt.Sprintf(`Simulate the proposal across a range of values for each parameter and rank
the parameters by how much they move lifetime savings.

Parameters: %s, or all

Examples:
  solaroi sensitivity proposal.yaml --param escalation_rate
  solaroi sensitivity proposal.yaml --param system_cost --min 500000 --max 900000 --steps 9
  solaroi sensitivity proposal.yaml --param all --format csv`, strings.Join(sensitivity.ParameterNames(), ", ")),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f := sensitivity.GetFormatter(so.format)
			if f == nil {
				return fmt.Errorf("unknown format %q (available: table, csv, json)", so.format)
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

			params, err := so.parameters(cmd, in, engine.Tariff)
			if err != nil {
				return err
			}

			analyzer := sensitivity.NewAnalyzer(engine)
			if so.progress {
				total := 0
				for _, p := range params {
					total += len(p.Values())
				}
				bar := pb.New(total).Prefix("Simulating ")
				bar.Output = cmd.ErrOrStderr()
				bar.ShowTimeLeft = false
				bar.Start()
				defer bar.Finish()
				analyzer.Progress = func(done, total int) { bar.Increment() }
			}

			analyses, err := analyzer.AnalyzeMultiple(ctx, in.proposal, in.usage, in.basePerKwp, params)
			if err != nil {
				return err
			}

			out, err := f.Format(analyses)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), out)
			return nil
		},
	}

	cmd.Flags().StringSliceVarP(&so.params, "param", "p", []string{"escalation_rate"}, "Parameter to sweep; repeat or use all")
	cmd.Flags().StringVar(&so.min, "min", "", "Lowest value of the sweep (single parameter only)")
	cmd.Flags().StringVar(&so.max, "max", "", "Highest value of the sweep (single parameter only)")
	cmd.Flags().IntVar(&so.steps, "steps", 0, "Number of sweep points (single parameter only)")
	cmd.Flags().StringVarP(&so.format, "format", "f", "table", "Output format: table, csv, json")
	cmd.Flags().BoolVar(&so.progress, "progress", false, "Show a progress bar on stderr")
	return cmd
}

// parameters resolves the requested sweeps around the proposal's own values
func (so *sensitivityOptions) parameters(cmd *cobra.Command, in *proposalInputs, tariff domain.Tariff) ([]sensitivity.Parameter, error) {
	names := so.params
	if len(names) == 1 && names[0] == "all" {
		names = sensitivity.ParameterNames()
	}

	overrides := cmd.Flags().Changed("min") || cmd.Flags().Changed("max") || cmd.Flags().Changed("steps")
	if overrides && len(names) != 1 {
		return nil, fmt.Errorf("--min, --max and --steps apply to a single --param")
	}

	params := make([]sensitivity.Parameter, 0, len(names))
	for _, name := range names {
		p, err := sensitivity.DefaultParameter(strings.TrimSpace(name), in.proposal, tariff)
		if err != nil {
			return nil, err
		}
		if so.min != "" {
			if p.MinValue, err = decimal.NewFromString(so.min); err != nil {
				return nil, fmt.Errorf("invalid --min %q: %w", so.min, err)
			}
		}
		if so.max != "" {
			if p.MaxValue, err = decimal.NewFromString(so.max); err != nil {
				return nil, fmt.Errorf("invalid --max %q: %w", so.max, err)
			}
		}
		if so.steps > 0 {
			p.Steps = so.steps
		}
		if err := p.Validate(); err != nil {
			return nil, err
		}
		params = append(params, p)
	}
	return params, nil
}
