package main

import (
	"fmt"
	"os"
	"strings"

	"merch/internal/config"
	"merch/internal/game"
	"merch/internal/snapshot"

	"github.com/spf13/cobra"
)

func main() {
	cfg := config.LoadCLIFromEnv()

	root := &cobra.Command{
		Use:          "mrc",
		Short:        "Merch retail-sim operator console",
		SilenceUsage: true,
	}

	root.AddCommand(
		newForecastCmd(),
		newReconcileCmd(&cfg),
		newSeriesCmd(&cfg),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newForecastCmd() *cobra.Command {
	var (
		product   string
		fabric    string
		hasPrint  bool
		rrp       float64
		baseUnits float64
		refPrice  float64
		benchmark float64
	)

	cmd := &cobra.Command{
		Use:   "forecast",
		Short: "Project unit demand for a product at a price point",
		RunE: func(cmd *cobra.Command, args []string) error {
			if refPrice == 0 && benchmark > 0 {
				refPrice = game.ReferencePrice(benchmark)
			}
			units, ok := game.ForecastDemand(game.ForecastInput{
				ProductID:      product,
				Fabric:         fabric,
				HasPrint:       hasPrint,
				RRP:            rrp,
				BaseUnits:      baseUnits,
				ReferencePrice: refPrice,
			})
			if !ok {
				printWarn("No forecast: set --rrp, --base-units, and --ref-price (or --benchmark-price).")
				return nil
			}
			renderForecast(product, rrp, refPrice, baseUnits, units)
			return nil
		},
	}

	cmd.Flags().StringVar(&product, "product", "", "product id")
	cmd.Flags().StringVar(&fabric, "fabric", "", "chosen fabric")
	cmd.Flags().BoolVar(&hasPrint, "print", false, "printed design")
	cmd.Flags().Float64Var(&rrp, "rrp", 0, "committed retail price")
	cmd.Flags().Float64Var(&baseUnits, "base-units", 0, "category baseline units")
	cmd.Flags().Float64Var(&refPrice, "ref-price", 0, "reference price")
	cmd.Flags().Float64Var(&benchmark, "benchmark-price", 0, "benchmark competitor price (reference derived at 1.2x)")
	return cmd
}

func newReconcileCmd(cfg *config.CLIConfig) *cobra.Command {
	var (
		historyDir string
		outPath    string
	)

	cmd := &cobra.Command{
		Use:   "reconcile <prev.json> <next.json> <ledger.json>",
		Short: "Derive the end-of-week summary from two snapshots and the week's ledger",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			prev, err := snapshot.LoadState(args[0])
			if err != nil {
				return err
			}
			next, err := snapshot.LoadState(args[1])
			if err != nil {
				return err
			}
			ledger, err := snapshot.LoadLedger(args[2])
			if err != nil {
				return err
			}

			dir := historyDir
			if dir == "" {
				dir = cfg.HistoryDir
			}
			var history []*game.GameWeekState
			if dir != "" {
				history, err = snapshot.LoadHistory(dir)
				if err != nil {
					return err
				}
			}

			summary, err := game.NewReconciler().ComputeWeekSummary("local", prev, next, ledger, history)
			if err != nil {
				return err
			}
			renderSummary(summary)

			if outPath != "" {
				if err := snapshot.SaveSummary(outPath, summary); err != nil {
					return err
				}
				printInfo("Summary written to " + outPath)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&historyDir, "history", "", "directory of week snapshots for the full demand series")
	cmd.Flags().StringVar(&outPath, "out", "", "also write the summary as JSON")
	return cmd
}

func newSeriesCmd(cfg *config.CLIConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "series [dir]",
		Short: "Print the season demand/awareness/intent series from a snapshot directory",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := cfg.HistoryDir
			if len(args) == 1 {
				dir = args[0]
			}
			if strings.TrimSpace(dir) == "" {
				return fmt.Errorf("no snapshot directory: pass one or set MRC_HISTORY_DIR")
			}
			history, err := snapshot.LoadHistory(dir)
			if err != nil {
				return err
			}
			renderSeries(game.DemandSeries(history))
			return nil
		},
	}
}
