package cmd

import (
	"bytes"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigConstants(t *testing.T) {
	assert.Equal(t, "paulitrace", configBaseName)
	assert.Equal(t, "paulitrace.yaml", configFileName)
	assert.Equal(t, "PAULITRACE", envPrefix)
	assert.Equal(t, "sweep.parallel", sweepParallelKey)
	assert.Equal(t, "tui.qubits", tuiQubitsKey)
	assert.Equal(t, outputText, defaultOutput)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	t.Chdir(t.TempDir())
	assert.NoError(t, loadConfig())
}

func TestLoadConfig_MalformedFile(t *testing.T) {
	t.Chdir(t.TempDir())
	require.NoError(t, os.WriteFile(configFileName, []byte("sweep: [unclosed\n"), 0o644))

	err := loadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), configFileName)
}

func TestRootCmd_ReportsConfigError(t *testing.T) {
	saved := configErr
	t.Cleanup(func() { configErr = saved })

	configErr = errors.New("reading paulitrace.yaml: bad indent")
	_, err := executeRoot(t, "version")
	assert.ErrorIs(t, err, configErr)
}

func TestParseSlogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"", slog.LevelWarn},
		{"debug", slog.LevelDebug},
		{" INFO ", slog.LevelInfo},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"-4", slog.LevelDebug},
		{"loud", slog.LevelWarn},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, parseSlogLevel(tt.in, slog.LevelWarn))
		})
	}
}

func TestConfigureLogger(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "trace.log")
	echo := &bytes.Buffer{}

	configureLogger(logPath, true, echo)
	slog.Debug("frame stepped", "time", 3)

	assert.Contains(t, echo.String(), "frame stepped")
	assert.Contains(t, echo.String(), "time=3")

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "frame stepped")
	assert.Contains(t, string(data), "source=")
}

func TestConfigureLogger_FileOnly(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "trace.log")

	configureLogger(logPath, false, nil)
	slog.Debug("hidden")
	slog.Info("shown")

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "hidden")
	assert.Contains(t, string(data), "shown")
}

func TestTUICircuit(t *testing.T) {
	c, save, err := tuiCircuit(nil, 4, defaultTUISavePath)
	require.NoError(t, err)
	assert.Equal(t, 4, c.NumQubits())
	assert.Zero(t, c.Depth())
	assert.Equal(t, defaultTUISavePath, save)

	qasmPath := writeCircuit(t, "bell.qasm", bellQASM)
	c, save, err = tuiCircuit([]string{qasmPath}, 4, defaultTUISavePath)
	require.NoError(t, err)
	assert.Equal(t, 2, c.Depth())
	assert.Equal(t, qasmPath, save, "a loaded QASM file is saved in place")

	_, save, err = tuiCircuit([]string{qasmPath}, 4, "other.qasm")
	require.NoError(t, err)
	assert.Equal(t, "other.qasm", save)

	jsonPath := writeCircuit(t, "bell.json", `{"num_qubits": 1, "gates": []}`)
	_, save, err = tuiCircuit([]string{jsonPath}, 4, defaultTUISavePath)
	require.NoError(t, err)
	assert.Equal(t, defaultTUISavePath, save)

	_, _, err = tuiCircuit(nil, -1, defaultTUISavePath)
	assert.Error(t, err)
}
