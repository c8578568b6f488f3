package main

import (
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/solarinrs/solaroi/internal/calculation"
	"github.com/solarinrs/solaroi/internal/config"
	"github.com/solarinrs/solaroi/internal/pvgis"
	"github.com/solarinrs/solaroi/internal/tui"
)

func newRootCmd() *cobra.Command {
	var (
		tariffFile string
		fetch      bool
		pvgisURL   string
	)

	cmd := &cobra.Command{
		Use:          "solaroi-tui [proposal-file]",
		Short:        "Interactive solar ROI explorer",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
				return fmt.Errorf("proposal file not found: %s", path)
			}

			engine := calculation.NewCalculationEngine()
			if tariffFile != "" {
				tariff, err := config.NewInputParser().LoadTariffFromFile(tariffFile)
				if err != nil {
					return err
				}
				if engine, err = calculation.NewCalculationEngineWithConfig(*tariff); err != nil {
					return err
				}
			}

			var client *pvgis.Client
			if fetch {
				client = pvgis.NewClient(pvgisURL, nil)
			}

			p := tea.NewProgram(
				tui.NewModel(path, engine, client),
				tea.WithAltScreen(),
				tea.WithMouseCellMotion(),
				tea.WithContext(cmd.Context()),
			)
			if _, err := p.Run(); err != nil {
				return fmt.Errorf("running TUI: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&tariffFile, "tariff", "", "Tariff YAML overriding the published rates")
	cmd.Flags().BoolVar(&fetch, "fetch", false, "Fetch the production profile from PVGIS when the proposal has none")
	cmd.Flags().StringVar(&pvgisURL, "pvgis-url", pvgis.DefaultBaseURL, "PVGIS PVcalc endpoint")
	return cmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
