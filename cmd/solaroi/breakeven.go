package main

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/solarinrs/solaroi/internal/breakeven"
	"github.com/solarinrs/solaroi/internal/domain"
	"github.com/solarinrs/solaroi/internal/output"
)

type breakEvenOptions struct {
	targetMonths int
	fastest      bool
	maxSavings   bool
	minPanels    int
	maxPanels    int
	costPerPanel float64
	format       string
}

// goals lists the requested optimization goals; fastest payback when none is given
func (o breakEvenOptions) goals() []breakeven.OptimizationGoal {
	var goals []breakeven.OptimizationGoal
	if o.targetMonths > 0 {
		goals = append(goals, breakeven.GoalTargetPayback)
	}
	if o.fastest {
		goals = append(goals, breakeven.GoalFastestPayback)
	}
	if o.maxSavings {
		goals = append(goals, breakeven.GoalMaximizeSavings)
	}
	if len(goals) == 0 {
		goals = append(goals, breakeven.GoalFastestPayback)
	}
	return goals
}

func (o breakEvenOptions) constraints() breakeven.Constraints {
	var c breakeven.Constraints
	if o.targetMonths > 0 {
		c.TargetMonths = &o.targetMonths
	}
	if o.minPanels > 0 {
		c.MinPanels = &o.minPanels
	}
	if o.maxPanels > 0 {
		c.MaxPanels = &o.maxPanels
	}
	if o.costPerPanel > 0 {
		cpp := decimal.NewFromFloat(o.costPerPanel)
		c.CostPerPanel = &cpp
	}
	return c
}

func breakEvenCmd(opts *globalOptions) *cobra.Command {
	var o breakEvenOptions

	cmd := &cobra.Command{
		Use:   "break-even [proposal-file]",
		Short: "Solve for the system price and size that meet a payback goal",
		Long: `Search system prices and panel counts for the best payback.

With --target-months the solver finds the highest price that still breaks even
in time, and the panel count that pays back within the target with the largest
savings. --fastest and --max-savings search panel counts at the proposal's
cost per panel.

Examples:
  solaroi break-even proposal.yaml --target-months 96
  solaroi break-even proposal.yaml --fastest --max-panels 22
  solaroi break-even proposal.yaml --max-savings --format json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if o.targetMonths < 0 || o.targetMonths > domain.HorizonMonths {
				return fmt.Errorf("--target-months must be between 1 and %d", domain.HorizonMonths)
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

			solver := breakeven.NewDefaultSolver(engine)
			result, err := solver.OptimizeMultiDimensional(ctx, in.proposal, in.usage, in.basePerKwp, o.constraints(), o.goals())
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			switch strings.ToLower(o.format) {
			case "table", "console":
				fmt.Fprint(w, (&breakeven.TableFormatter{}).FormatMultiDimensional(result))
				if o.targetMonths > 0 {
					maxCost, err := solver.MaxAffordableCost(ctx, in.proposal, in.usage, in.basePerKwp, o.targetMonths)
					if err == nil {
						fmt.Fprintf(w, "Highest price breaking even within %s: %s\n",
							describeMonths(o.targetMonths), output.FormatRSD(maxCost.InexactFloat64()))
					}
				}
			case "json":
				out, err := (&breakeven.JSONFormatter{Pretty: true}).FormatMultiDimensional(result)
				if err != nil {
					return err
				}
				fmt.Fprintln(w, out)
			default:
				return fmt.Errorf("unknown format %q (available: table, json)", o.format)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&o.targetMonths, "target-months", 0, "Break even within this many months")
	cmd.Flags().BoolVar(&o.fastest, "fastest", false, "Find the panel count with the earliest break-even")
	cmd.Flags().BoolVar(&o.maxSavings, "max-savings", false, "Find the panel count with the largest lifetime savings")
	cmd.Flags().IntVar(&o.minPanels, "min-panels", 0, "Smallest panel count to consider")
	cmd.Flags().IntVar(&o.maxPanels, "max-panels", 0, "Largest panel count to consider, defaults to the roof capacity")
	cmd.Flags().Float64Var(&o.costPerPanel, "cost-per-panel", 0, "Installed price per panel, RSD")
	cmd.Flags().StringVarP(&o.format, "format", "f", "table", "Output format: table, json")
	return cmd
}

// describeMonths renders a month count as years and months
func describeMonths(months int) string {
	years, rest := months/domain.MonthsPerYear, months%domain.MonthsPerYear
	switch {
	case rest == 0:
		return fmt.Sprintf("%d years", years)
	case years == 0:
		return fmt.Sprintf("%d months", rest)
	}
	return fmt.Sprintf("%d years %d months", years, rest)
}
