package cmd

import (
	"log/slog"

	"github.com/spf13/cobra"

	"paulitrace/internal/report"
	"paulitrace/pkg/simulator"
)

const runLongDescription = `Inject an error frame before the first gate, propagate it through the
circuit and print every snapshot of the frame.

Examples:
  paulitrace run bell.qasm --inject 0:X
  paulitrace run code.json --pattern XIZ --until 3 -o json

` + circuitFilesHelp

func newRunCmd() *cobra.Command {
	var injects []string
	var pattern string
	var until int

	cmd := &cobra.Command{
		Use:   "run <circuit>",
		Short: "Propagate an injected error through a circuit",
		Long:  runLongDescription,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := outputFormat()
			if err != nil {
				return err
			}

			c, err := loadCircuit(args[0])
			if err != nil {
				return err
			}

			sim := simulator.New(c)
			if err := injectFrame(sim, pattern, injects); err != nil {
				return err
			}

			var steps int
			if until < 0 {
				steps = sim.Run()
			} else {
				steps = sim.SeekTo(until)
			}
			slog.Info("propagated frame",
				"circuit", args[0], "steps", steps, "final", sim.ErrorPattern().String())

			if format == outputJSON {
				return report.TimelineJSON(cmd.OutOrStdout(), c, sim.Timeline())
			}
			report.Timeline(cmd.OutOrStdout(), c, sim.Timeline())
			return nil
		},
	}

	cmd.Flags().StringArrayVarP(&injects, injectFlagName, "i", nil, "inject a Pauli before the first gate as QUBIT:PAULI (can be repeated)")
	cmd.Flags().StringVarP(&pattern, patternFlagName, "p", "", "inject a whole frame, one of I/X/Y/Z per qubit (e.g. XIZ)")
	cmd.Flags().IntVarP(&until, untilFlagName, "t", -1, "stop after this many gates (default: run to the end)")

	return cmd
}
