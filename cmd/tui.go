package cmd

import (
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"paulitrace/internal/tui"
	"paulitrace/pkg/circuit"
)

const tuiCmdName = "tui"

func newTUICmd() *cobra.Command {
	var qubits int
	var savePath string

	cmd := &cobra.Command{
		Use:   tuiCmdName + " [circuit]",
		Short: "Step an error frame through a circuit interactively",
		Long: `Open the interactive stepper. Without a circuit file it starts from an
empty circuit of --qubits wires. Gates are appended from the menu (a),
errors injected with x/y/z/i and the frame stepped with the arrow keys.
ctrl+s writes the circuit as QASM to --save, or back to a loaded .qasm file.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			c, save, err := tuiCircuit(args, viper.GetInt(tuiQubitsKey), viper.GetString(tuiSavePathKey))
			if err != nil {
				return err
			}
			return tui.Run(tui.New(c, tui.Options{SavePath: save}))
		},
	}

	cmd.Flags().IntVarP(&qubits, qubitsFlagName, "n", viper.GetInt(tuiQubitsKey), "qubits in a new circuit")
	bindFlagToConfig(cmd.Flags().Lookup(qubitsFlagName), tuiQubitsKey)
	cmd.Flags().StringVar(&savePath, saveFlagName, viper.GetString(tuiSavePathKey), "QASM file written by ctrl+s")
	bindFlagToConfig(cmd.Flags().Lookup(saveFlagName), tuiSavePathKey)

	return cmd
}

// tuiCircuit resolves the circuit the stepper opens with and where it saves.
// A loaded .qasm file is saved in place unless a save path was configured.
func tuiCircuit(args []string, qubits int, save string) (*circuit.Circuit, string, error) {
	if len(args) == 0 {
		c, err := circuit.New(qubits)
		return c, save, err
	}

	c, err := loadCircuit(args[0])
	if err != nil {
		return nil, "", err
	}
	if (save == "" || save == defaultTUISavePath) && strings.EqualFold(filepath.Ext(args[0]), ".qasm") {
		save = args[0]
	}
	return c, save, nil
}
