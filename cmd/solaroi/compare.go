package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/solarinrs/solaroi/internal/compare"
)

// parsePanelList parses "10,14,18" into panel counts
func parsePanelList(s string) ([]int, error) {
	var out []int
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("invalid panel count %q", part)
		}
		if n < 1 {
			return nil, fmt.Errorf("panel count must be at least 1, got %d", n)
		}
		out = append(out, n)
	}
	return out, nil
}

func compareCmd(opts *globalOptions) *cobra.Command {
	var (
		panelList    string
		recommended  bool
		costPerPanel float64
		format       string
	)

	cmd := &cobra.Command{
		Use:   "compare [proposal-file]",
		Short: "Compare the proposed system against other sizes",
		Long: `Simulate the proposal at several panel counts and compare payback and savings.
Alternative systems are priced at the proposal's cost per panel unless --cost-per-panel is set.

Examples:
  solaroi compare proposal.yaml --panels 10,14,18
  solaroi compare proposal.yaml --recommended --format csv`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			panels, err := parsePanelList(panelList)
			if err != nil {
				return err
			}
			if len(panels) == 0 && !recommended {
				return fmt.Errorf("nothing to compare: pass --panels or --recommended")
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

			set, err := compare.NewCompareEngine(engine).Compare(ctx, in.proposal, in.usage, in.basePerKwp, compare.CompareOptions{
				Panels:             panels,
				IncludeRecommended: recommended,
				CostPerPanel:       costPerPanel,
			})
			if err != nil {
				return err
			}
			set.ProposalPath = args[0]

			var out string
			switch strings.ToLower(format) {
			case "table", "console":
				out = (&compare.TableFormatter{}).Format(set)
			case "compact":
				out = (&compare.TableFormatter{}).FormatCompact(set)
			case "csv":
				out, err = (&compare.CSVFormatter{}).Format(set)
			case "json":
				out, err = (&compare.JSONFormatter{Pretty: true}).Format(set)
			default:
				return fmt.Errorf("unknown format %q (available: table, compact, csv, json)", format)
			}
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), out)
			return nil
		},
	}

	cmd.Flags().StringVar(&panelList, "panels", "", "Comma separated panel counts to compare")
	cmd.Flags().BoolVar(&recommended, "recommended", false, "Also compare the recommended minimum, optimal and maximum sizes")
	cmd.Flags().Float64Var(&costPerPanel, "cost-per-panel", 0, "Installed price per panel for alternatives, RSD")
	cmd.Flags().StringVarP(&format, "format", "f", "table", "Output format: table, compact, csv, json")
	return cmd
}
