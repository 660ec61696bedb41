package latex

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"paulitrace/pkg/circuit"
)

func sampleCircuit(t *testing.T) *circuit.Circuit {
	t.Helper()
	c, err := circuit.New(3)
	require.NoError(t, err)
	require.NoError(t, c.AddAll(
		circuit.Single{Qubit: 0, Kind: circuit.H},
		circuit.CNOT{Control: 2, Target: 0},
		circuit.CZ{Control: 0, Target: 1},
		circuit.SWAP{Qubit1: 0, Qubit2: 2},
		circuit.Single{Qubit: 1, Kind: circuit.Sdg},
	))
	return c
}

func TestExportRows(t *testing.T) {
	out := Export(sampleCircuit(t))

	assert.True(t, strings.HasPrefix(out, "\\documentclass{article}\n\\usepackage{qcircuit}\n"))
	assert.Contains(t, out,
		`\lstick{q_{0}} & \gate{H} & \targ & \ctrl{1} & \qswap \qwx[2] & \qw & \qw \\`)
	assert.Contains(t, out,
		`\lstick{q_{1}} & \qw & \qw & \control \qw & \qw & \gate{S^\dagger} & \qw \\`)
	assert.Contains(t, out,
		`\lstick{q_{2}} & \qw & \ctrl{-2} & \qw & \qswap & \qw & \qw \\`)
	assert.True(t, strings.HasSuffix(out, "\\end{equation*}\n\\end{document}\n"))
}

func TestCells(t *testing.T) {
	tests := []struct {
		name string
		gate circuit.Gate
		q    int
		want string
	}{
		{"identity is a wire", circuit.Single{Qubit: 0, Kind: circuit.I}, 0, `\qw`},
		{"other qubit is a wire", circuit.Single{Qubit: 1, Kind: circuit.X}, 0, `\qw`},
		{"phase gate", circuit.Single{Qubit: 0, Kind: circuit.S}, 0, `\gate{S}`},
		{"control above target", circuit.CNOT{Control: 1, Target: 4}, 1, `\ctrl{3}`},
		{"swap with itself", circuit.SWAP{Qubit1: 2, Qubit2: 2}, 2, `\qw`},
		{"swap lower end", circuit.SWAP{Qubit1: 3, Qubit2: 1}, 3, `\qswap \qwx[-2]`},
		{"untouched by two-qubit gate", circuit.CZ{Control: 0, Target: 2}, 1, `\qw`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, cell(tt.gate, tt.q))
		})
	}
}

func TestExportEmptyCircuit(t *testing.T) {
	c, err := circuit.New(1)
	require.NoError(t, err)
	assert.Contains(t, Export(c), `\lstick{q_{0}} & \qw \\`)
}

func TestExportListing(t *testing.T) {
	out := ExportListing(sampleCircuit(t))
	assert.Contains(t, out, "Circuit with 3 qubits and 5 gates:")
	assert.Contains(t, out, "Gate 0: H(0)\nGate 1: CNOT(2, 0)\nGate 2: CZ(0, 1)\nGate 3: SWAP(0, 2)\nGate 4: Sdg(1)\n")
	assert.Contains(t, out, "\\begin{verbatim}")
}
