package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/solarinrs/solaroi/internal/calculation"
	"github.com/solarinrs/solaroi/internal/config"
	"github.com/solarinrs/solaroi/internal/domain"
	"github.com/solarinrs/solaroi/internal/log"
	"github.com/solarinrs/solaroi/internal/pvgis"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// globalOptions are the persistent flags shared by every command
type globalOptions struct {
	tariffFile string
	fetch      bool
	pvgisURL   string
	debug      bool
}

func newRootCmd() *cobra.Command {
	opts := &globalOptions{}

	root := &cobra.Command{
		Use:   "solaroi",
		Short: "Residential solar ROI calculator",
		Long: `Estimate electricity bills, net-metering savings and payback of rooftop
solar systems for households billed under the Serbian EPS tariff.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelWarn
			if opts.debug {
				level = slog.LevelDebug
				log.SetDefaultLogLevel(slog.LevelDebug)
			}
			cmd.SetContext(log.With(cmd.Context(), log.NewText(cmd.ErrOrStderr(), level)))
		},
	}

	root.PersistentFlags().StringVar(&opts.tariffFile, "tariff", "", "Tariff YAML overriding the published rates")
	root.PersistentFlags().BoolVar(&opts.fetch, "fetch", false, "Fetch the production profile from PVGIS when the proposal has none")
	root.PersistentFlags().StringVar(&opts.pvgisURL, "pvgis-url", pvgis.DefaultBaseURL, "PVGIS PVcalc endpoint")
	root.PersistentFlags().BoolVar(&opts.debug, "debug", false, "Log a per-month trace of every simulation")

	root.AddCommand(
		calculateCmd(opts),
		validateCmd(),
		billCmd(opts),
		sizeCmd(opts),
		compareCmd(opts),
		sensitivityCmd(opts),
		breakEvenCmd(opts),
		serveCmd(opts),
		versionCmd(),
	)
	return root
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "solaroi %s (commit %s, built %s)\n", version, commit, date)
			if info := buildInfo(); info != "" && version == "dev" {
				fmt.Fprintln(cmd.OutOrStdout(), info)
			}
		},
	}
}

func buildInfo() string {
	if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
		return bi.Main.Path + " " + bi.Main.Version
	}
	return ""
}

// engine builds a calculation engine from the tariff and debug flags
func (o *globalOptions) engine(ctx context.Context) (*calculation.CalculationEngine, error) {
	engine := calculation.NewCalculationEngine()
	if o.tariffFile != "" {
		tariff, err := config.NewInputParser().LoadTariffFromFile(o.tariffFile)
		if err != nil {
			return nil, err
		}
		if engine, err = calculation.NewCalculationEngineWithConfig(*tariff); err != nil {
			return nil, err
		}
	}
	if o.debug {
		engine.SetLogger(log.NewAdapter(ctx))
		engine.Debug = true
	}
	return engine, nil
}

// client returns a PVGIS client, or nil when fetching is disabled
func (o *globalOptions) client() *pvgis.Client {
	if !o.fetch {
		return nil
	}
	return pvgis.NewClient(o.pvgisURL, nil)
}

// proposalInputs is a loaded proposal with its resolved usage and production profile
type proposalInputs struct {
	proposal   *domain.Proposal
	usage      domain.Monthly
	basePerKwp domain.Monthly
}

func (o *globalOptions) load(ctx context.Context, path string) (*proposalInputs, error) {
	p, err := config.NewInputParser().LoadFromFile(path)
	if err != nil {
		return nil, err
	}
	usage, err := config.ResolveMonthlyUsage(p.Utility)
	if err != nil {
		return nil, err
	}
	base, err := pvgis.ProposalBase(ctx, o.client(), p)
	if err != nil {
		return nil, err
	}
	log.Ctx(ctx).DebugContext(ctx, "proposal loaded",
		slog.String("id", p.ID),
		slog.Int("panels", p.TotalPanels()),
		slog.Float64("annual_usage", usage.Total()))
	return &proposalInputs{proposal: p, usage: usage, basePerKwp: base}, nil
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
