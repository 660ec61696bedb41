package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"paulitrace/internal/qasm"
)

func TestExportCmd_JSON(t *testing.T) {
	path := writeCircuit(t, "bell.qasm", bellQASM)

	out, err := executeRoot(t, "export", path, "-f", "json")
	require.NoError(t, err)
	assert.JSONEq(t, `{"num_qubits": 2, "gates": [
		{"Single": {"qubit": 0, "gate": "H"}},
		{"Two": {"CNOT": {"control": 0, "target": 1}}}
	]}`, out)
}

func TestExportCmd_FormatFromTarget(t *testing.T) {
	path := writeCircuit(t, "bell.qasm", bellQASM)
	target := filepath.Join(t.TempDir(), "bell.tex")

	out, err := executeRoot(t, "export", path, "-w", target)
	require.NoError(t, err)
	assert.Empty(t, out)

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Contains(t, string(data), `\Qcircuit`)
	assert.Contains(t, string(data), `\targ`)
}

func TestExportCmd_YAMLRoundTrip(t *testing.T) {
	path := writeCircuit(t, "bell.qasm", bellQASM)
	yamlPath := filepath.Join(t.TempDir(), "bell.yaml")

	_, err := executeRoot(t, "export", path, "--write", yamlPath)
	require.NoError(t, err)

	out, err := executeRoot(t, "export", yamlPath)
	require.NoError(t, err)

	original, err := qasm.ImportString(bellQASM)
	require.NoError(t, err)
	assert.Equal(t, qasm.Export(original), out)
}

func TestExportCmd_Listing(t *testing.T) {
	path := writeCircuit(t, "bell.qasm", bellQASM)

	out, err := executeRoot(t, "export", path, "-f", "LISTING")
	require.NoError(t, err)
	assert.Contains(t, out, "Gate 0: H(0)")
}

func TestExportCmd_UnknownFormat(t *testing.T) {
	path := writeCircuit(t, "bell.qasm", bellQASM)

	_, err := executeRoot(t, "export", path, "-f", "png")
	assert.ErrorIs(t, err, ErrUnknownExport)
}

func TestExportFormat(t *testing.T) {
	tests := []struct {
		format string
		target string
		want   string
	}{
		{"", "", exportQASM},
		{"", "out.JSON", exportJSON},
		{"", "out.yml", exportYAML},
		{"", "out.tex", exportLaTeX},
		{"", "out.txt", exportListing},
		{"", "out.bin", exportQASM},
		{"Yaml", "out.json", exportYAML},
	}

	for _, tt := range tests {
		t.Run(tt.format+"|"+tt.target, func(t *testing.T) {
			assert.Equal(t, tt.want, exportFormat(tt.format, tt.target))
		})
	}
}

func TestExportCircuit_AllFormatsWrite(t *testing.T) {
	c, err := qasm.ImportString(bellQASM)
	require.NoError(t, err)

	for _, format := range []string{exportQASM, exportJSON, exportYAML, exportLaTeX, exportListing} {
		var buf bytes.Buffer
		require.NoError(t, exportCircuit(&buf, c, format), format)
		assert.NotEmpty(t, buf.String(), format)
	}
}
