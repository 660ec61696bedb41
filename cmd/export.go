package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"paulitrace/internal/circuitfile"
	"paulitrace/internal/latex"
	"paulitrace/internal/qasm"
	"paulitrace/pkg/circuit"
)

// ErrUnknownExport is returned when no exporter matches the requested format.
var ErrUnknownExport = errors.New("unknown export format")

const (
	exportQASM    = "qasm"
	exportJSON    = "json"
	exportYAML    = "yaml"
	exportLaTeX   = "latex"
	exportListing = "listing"
)

// exportExtensions maps a --write file extension to its export format.
var exportExtensions = map[string]string{
	".qasm": exportQASM,
	".json": exportJSON,
	".yaml": exportYAML,
	".yml":  exportYAML,
	".tex":  exportLaTeX,
	".txt":  exportListing,
}

const exportLongDescription = `Convert a circuit file to another representation.

Formats: qasm, json, yaml, latex (qcircuit document) and listing. When
--format is not given it is taken from the --write extension, falling back
to qasm.

` + circuitFilesHelp

func newExportCmd() *cobra.Command {
	var format string
	var target string

	cmd := &cobra.Command{
		Use:   "export <circuit>",
		Short: "Convert a circuit to QASM, JSON, YAML or LaTeX",
		Long:  exportLongDescription,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format = exportFormat(format, target)

			c, err := loadCircuit(args[0])
			if err != nil {
				return err
			}

			var buf bytes.Buffer
			if err := exportCircuit(&buf, c, format); err != nil {
				return err
			}

			if target == "" {
				_, err := buf.WriteTo(cmd.OutOrStdout())
				return err
			}

			if err := os.WriteFile(target, buf.Bytes(), 0o644); err != nil {
				return fmt.Errorf("failed to write %s: %w", target, err)
			}
			slog.Info("exported circuit", "from", args[0], "to", target, "format", format)
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, formatFlagName, "f", "", "qasm, json, yaml, latex or listing")
	cmd.Flags().StringVarP(&target, writeFlagName, "w", "", "write to this file instead of stdout")

	return cmd
}

func exportFormat(format, target string) string {
	if format != "" {
		return strings.ToLower(format)
	}
	if f, ok := exportExtensions[strings.ToLower(filepath.Ext(target))]; ok {
		return f
	}
	return exportQASM
}

func exportCircuit(w io.Writer, c *circuit.Circuit, format string) error {
	switch format {
	case exportQASM:
		_, err := io.WriteString(w, qasm.Export(c))
		return err
	case exportJSON:
		return circuitfile.EncodeJSON(w, c)
	case exportYAML:
		return circuitfile.EncodeYAML(w, c)
	case exportLaTeX:
		_, err := io.WriteString(w, latex.Export(c))
		return err
	case exportListing:
		_, err := io.WriteString(w, latex.ExportListing(c))
		return err
	}
	return fmt.Errorf("%w: %q", ErrUnknownExport, format)
}
