package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"paulitrace/internal/circuitfile"
	"paulitrace/internal/qasm"
	"paulitrace/pkg/circuit"
	"paulitrace/pkg/pauli"
	"paulitrace/pkg/simulator"
)

var (
	// ErrUnknownFormat is returned for circuit files with an unrecognised extension.
	ErrUnknownFormat = errors.New("unknown circuit file format")
	// ErrBadInjection is returned for --inject values that are not QUBIT:PAULI.
	ErrBadInjection = errors.New("injection must look like QUBIT:PAULI")
)

// loadCircuit reads a circuit file, picking the decoder from its extension.
func loadCircuit(path string) (*circuit.Circuit, error) {
	ext := strings.ToLower(filepath.Ext(path))

	var decode func(*os.File) (*circuit.Circuit, error)
	switch ext {
	case ".qasm":
		decode = func(f *os.File) (*circuit.Circuit, error) { return qasm.Import(f) }
	case ".json":
		decode = func(f *os.File) (*circuit.Circuit, error) { return circuitfile.DecodeJSON(f) }
	case ".yaml", ".yml":
		decode = func(f *os.File) (*circuit.Circuit, error) { return circuitfile.DecodeYAML(f) }
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	c, err := decode(f)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}

	slog.Debug("loaded circuit", "path", path, "qubits", c.NumQubits(), "depth", c.Depth())
	return c, nil
}

// parseInjection splits "2:Y" into its qubit and Pauli.
func parseInjection(s string) (int, pauli.Single, error) {
	qs, ps, ok := strings.Cut(s, ":")
	if !ok {
		return 0, pauli.I, fmt.Errorf("%w: %q", ErrBadInjection, s)
	}

	q, err := strconv.Atoi(strings.TrimSpace(qs))
	if err != nil || q < 0 {
		return 0, pauli.I, fmt.Errorf("%w: bad qubit in %q", ErrBadInjection, s)
	}

	p, err := pauli.ParseSingle(strings.TrimSpace(ps))
	if err != nil {
		return 0, pauli.I, fmt.Errorf("%w: %w", ErrBadInjection, err)
	}
	return q, p, nil
}

// injectFrame sets the time-0 frame: the whole pattern first, then each
// single-qubit injection on top of it.
func injectFrame(sim *simulator.Simulator, pattern string, injects []string) error {
	n := sim.Circuit().NumQubits()

	if pattern != "" {
		p, err := pauli.Parse(pattern, n)
		if err != nil {
			return err
		}
		if err := sim.InjectPattern(p); err != nil {
			return err
		}
	}

	for _, s := range injects {
		q, p, err := parseInjection(s)
		if err != nil {
			return err
		}
		if q >= n {
			return fmt.Errorf("%w: qubit %d in %q, circuit has %d", circuit.ErrQubitOutOfRange, q, s, n)
		}
		sim.Inject(q, p)
	}

	slog.Debug("injected frame", "pattern", sim.ErrorPattern().String())
	return nil
}
