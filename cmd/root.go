// Package cmd provides the root command and CLI setup for paulitrace.
package cmd

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// ErrUnknownOutput is returned when --output names an unsupported format.
var ErrUnknownOutput = errors.New("unknown output format")

var outputFlag string
var verboseFlag bool
var logFileFlag string

const circuitFilesHelp = `Circuit files are read by extension:
  - .qasm          OpenQASM 2.0 (Clifford gates only)
  - .json          {"num_qubits": n, "gates": [{"Single": {"qubit": 0, "gate": "H"}}, ...]}
  - .yaml / .yml   the same document as YAML`

const rootLongDescription = `paulitrace tracks a Pauli error frame through a Clifford circuit.

An error (X, Y or Z on any qubit) is injected into the frame and each gate
conjugates it, so the frame always shows how the original fault looks at
that point of the circuit, phase included.

` + circuitFilesHelp

// rootCmd represents the base command when called without any subcommands.
var rootCmd *cobra.Command

// Built in init so flag defaults see the viper defaults registered in config.go.
func init() {
	rootCmd = newRootCmd()
}

func baseRootCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "paulitrace",
		Short: "Pauli frame tracking for Clifford circuits",
		Long:  rootLongDescription,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			verbose := viper.GetBool(logVerboseKey)

			// The TUI owns the terminal, so it never echoes log records.
			var echo io.Writer
			if verbose && cmd.Name() != tuiCmdName {
				echo = cmd.ErrOrStderr()
			}
			configureLogger(viper.GetString(logFilenameKey), verbose, echo)

			if configErr != nil {
				slog.Error("config unreadable", "error", configErr)
				return configErr
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}
}

func newRootCmd() *cobra.Command {
	cmd := baseRootCmd()
	configureRootFlags(cmd)

	cmd.AddCommand(
		newRunCmd(),
		newSweepCmd(),
		newExportCmd(),
		newTUICmd(),
		newInitCmd(),
		newVersionCmd(),
	)

	return cmd
}

func configureRootFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().
		StringVarP(
			&outputFlag, outputFlagName, "o",
			viper.GetString(outputFlagName),
			"report format: text or json",
		)
	bindFlagToConfig(cmd.PersistentFlags().Lookup(outputFlagName), outputFlagName)

	cmd.PersistentFlags().BoolVarP(&verboseFlag, verboseFlagName, "v", viper.GetBool(logVerboseKey), "log at debug level and echo records to stderr")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(verboseFlagName), logVerboseKey)

	cmd.PersistentFlags().StringVar(&logFileFlag, logFileFlagName, viper.GetString(logFilenameKey), "path of the rotating log file")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(logFileFlagName), logFilenameKey)
}

// bindFlagToConfig wires a Cobra flag to a Viper key so config/env values feed the flag.
func bindFlagToConfig(flag *pflag.Flag, key string) {
	if flag == nil {
		cobra.CheckErr(fmt.Errorf("flag for config key %q not found", key))
		return
	}

	cobra.CheckErr(viper.BindPFlag(key, flag))
}

// outputFormat returns the configured report format.
func outputFormat() (string, error) {
	switch format := viper.GetString(outputFlagName); format {
	case outputText, outputJSON:
		return format, nil
	default:
		return "", fmt.Errorf("%w: %q (want %s or %s)", ErrUnknownOutput, format, outputText, outputJSON)
	}
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
