package cmd

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"paulitrace/internal/report"
	"paulitrace/internal/sweep"
	"paulitrace/pkg/pauli"
)

const sweepLongDescription = `Inject every single-qubit fault in turn (X, Y and Z on each qubit by
default), run the circuit to the end and tabulate where each fault lands.
Faults that end on more than one qubit are counted as spreading.

` + circuitFilesHelp

func newSweepCmd() *cobra.Command {
	var parallel int
	var kinds string
	var spreadingOnly bool

	cmd := &cobra.Command{
		Use:   "sweep <circuit>",
		Short: "Propagate every single-qubit fault through a circuit",
		Long:  sweepLongDescription,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := outputFormat()
			if err != nil {
				return err
			}

			faultKinds, err := parseKinds(viper.GetString(sweepKindsKey))
			if err != nil {
				return err
			}

			c, err := loadCircuit(args[0])
			if err != nil {
				return err
			}

			results, err := sweep.Run(cmd.Context(), c, sweep.Options{
				Parallel: viper.GetInt(sweepParallelKey),
				Kinds:    faultKinds,
			})
			if err != nil {
				return err
			}
			slog.Info("fault sweep",
				"circuit", args[0], "faults", len(results), "max_weight", sweep.MaxWeight(results))

			if spreadingOnly {
				results = sweep.Spreading(results)
			}

			if format == outputJSON {
				return report.SweepJSON(cmd.OutOrStdout(), results)
			}
			report.Sweep(cmd.OutOrStdout(), results)
			return nil
		},
	}

	cmd.Flags().IntVarP(&parallel, parallelFlagName, "p", viper.GetInt(sweepParallelKey), "number of faults propagated concurrently (0: one per CPU)")
	bindFlagToConfig(cmd.Flags().Lookup(parallelFlagName), sweepParallelKey)
	cmd.Flags().StringVarP(&kinds, kindsFlagName, "k", viper.GetString(sweepKindsKey), "Pauli faults to inject on each qubit")
	bindFlagToConfig(cmd.Flags().Lookup(kindsFlagName), sweepKindsKey)
	cmd.Flags().BoolVar(&spreadingOnly, spreadFlagName, false, "only list faults that end on more than one qubit")

	return cmd
}

// parseKinds reads a fault set such as "XZ". Repeats are dropped.
func parseKinds(s string) ([]pauli.Single, error) {
	var kinds []pauli.Single
	seen := make(map[pauli.Single]bool)

	for _, r := range strings.ReplaceAll(s, ",", "") {
		p, err := pauli.ParseSingle(string(r))
		if err != nil {
			return nil, fmt.Errorf("--%s: %w", kindsFlagName, err)
		}
		if p == pauli.I || seen[p] {
			continue
		}
		seen[p] = true
		kinds = append(kinds, p)
	}

	if len(kinds) == 0 {
		return nil, fmt.Errorf("--%s %q: %w", kindsFlagName, s, sweep.ErrNoFaults)
	}
	return kinds, nil
}
