package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/solarinrs/solaroi/internal/domain"
	"github.com/solarinrs/solaroi/internal/output"
)

type billOptions struct {
	usage          float64
	production     float64
	credit         float64
	month          int
	year           int
	tariffFraction float64
	permittedPower float64
}

func (b billOptions) validate() error {
	switch {
	case b.usage < 0:
		return fmt.Errorf("--usage cannot be negative")
	case b.production < 0:
		return fmt.Errorf("--production cannot be negative")
	case b.credit < 0:
		return fmt.Errorf("--credit cannot be negative")
	case b.month < 1 || b.month > domain.MonthsPerYear:
		return fmt.Errorf("--month must be between 1 and %d", domain.MonthsPerYear)
	case b.year < 1 || b.year > domain.HorizonYears:
		return fmt.Errorf("--year must be between 1 and %d", domain.HorizonYears)
	case b.tariffFraction < 0 || b.tariffFraction > 1:
		return fmt.Errorf("--tariff-fraction must be between 0 and 1")
	case b.permittedPower <= 0:
		return fmt.Errorf("--permitted-power must be positive")
	}
	return nil
}

func billCmd(opts *globalOptions) *cobra.Command {
	var b billOptions

	cmd := &cobra.Command{
		Use:   "bill",
		Short: "Price one monthly electricity bill",
		Long: `Price one month of consumption, itemizing every charge.
With --production the bill is priced under net metering as well.

Examples:
  solaroi bill --usage 450 --month 1
  solaroi bill --usage 450 --production 520 --credit 80 --month 7 --year 3`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := b.validate(); err != nil {
				return err
			}
			engine, err := opts.engine(cmd.Context())
			if err != nil {
				return err
			}

			yearOffset := b.year - 1
			w := cmd.OutOrStdout()

			grid := engine.CalculateGridBill(b.month, yearOffset, b.usage, b.tariffFraction, b.permittedPower)
			fmt.Fprintf(w, "GRID BILL - %s, year %d\n", output.MonthName(b.month), b.year)
			fmt.Fprintln(w, strings.Repeat("=", 44))
			writeZones(w, grid.Zones)
			writeCharges(w, grid.Charges)
			fmt.Fprintf(w, "%-22s %20s\n", "Total", output.FormatRSD(float64(grid.Cost)))

			if !cmd.Flags().Changed("production") {
				return nil
			}

			solar := engine.CalculateSolarBill(b.month, yearOffset, b.usage, b.production, b.credit, b.tariffFraction, b.permittedPower)
			fmt.Fprintln(w)
			fmt.Fprintf(w, "NET-METERED BILL - %s, year %d\n", output.MonthName(b.month), b.year)
			fmt.Fprintln(w, strings.Repeat("=", 44))
			fmt.Fprintf(w, "%-22s %20s\n", "Self-consumed", output.FormatKwh(solar.SelfConsumed))
			fmt.Fprintf(w, "%-22s %20s\n", "Exported", output.FormatKwh(solar.Exported))
			fmt.Fprintf(w, "%-22s %20s\n", "Billed (higher)", output.FormatKwh(solar.NetHigher))
			fmt.Fprintf(w, "%-22s %20s\n", "Billed (lower)", output.FormatKwh(solar.NetLower))
			fmt.Fprintf(w, "%-22s %20s\n", "Credit carried on", output.FormatKwh(solar.NextCarriedCredit))
			writeZones(w, solar.Zones)
			writeCharges(w, solar.Charges)
			fmt.Fprintf(w, "%-22s %20s\n", "Total", output.FormatRSD(float64(solar.Cost)))
			fmt.Fprintf(w, "%-22s %20s\n", "Saved", output.FormatRSD(float64(grid.Cost-solar.Cost)))
			return nil
		},
	}

	cmd.Flags().Float64Var(&b.usage, "usage", 0, "Consumption for the month, kWh")
	cmd.Flags().Float64Var(&b.production, "production", 0, "Solar production for the month, kWh")
	cmd.Flags().Float64Var(&b.credit, "credit", 0, "Net-metering credit carried in, kWh")
	cmd.Flags().IntVar(&b.month, "month", 1, "Calendar month (1-12)")
	cmd.Flags().IntVar(&b.year, "year", 1, "Year of the horizon, used for price escalation")
	cmd.Flags().Float64Var(&b.tariffFraction, "tariff-fraction", domain.DefaultTariffFraction, "Share of usage billed at the higher tariff")
	cmd.Flags().Float64Var(&b.permittedPower, "permitted-power", domain.DefaultPermittedPower, "Permitted power, kW")
	_ = cmd.MarkFlagRequired("usage")
	return cmd
}

func writeZones(w io.Writer, z domain.ZoneUsage) {
	fmt.Fprintf(w, "%-22s %20s\n", "Green zone", output.FormatKwh(z.Green()))
	fmt.Fprintf(w, "%-22s %20s\n", "Blue zone", output.FormatKwh(z.Blue()))
	fmt.Fprintf(w, "%-22s %20s\n", "Red zone", output.FormatKwh(z.Red()))
	fmt.Fprintln(w, strings.Repeat("-", 44))
}

func writeCharges(w io.Writer, c domain.Charges) {
	lines := []struct {
		label  string
		amount decimal.Decimal
	}{
		{"Energy", c.Energy},
		{"Permitted power", c.PermittedPower},
		{"Supplier", c.Supplier},
		{"Renewable subsidy", c.RenewableSubsidy},
		{"Energy efficiency", c.EnergyEfficiency},
		{"Distributed system", c.DistributedSystem},
		{"Excise", c.Excise},
		{"VAT", c.VAT},
		{"Flat tax", c.FlatTax},
	}
	for _, l := range lines {
		if l.amount.IsZero() {
			continue
		}
		fmt.Fprintf(w, "%-22s %20s\n", l.label, l.amount.StringFixed(2)+" RSD")
	}
	fmt.Fprintln(w, strings.Repeat("-", 44))
}
