package circuitfile

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"paulitrace/internal/qasm"
	"paulitrace/pkg/circuit"
)

const bellJSON = `{
  "num_qubits": 2,
  "gates": [
    {"Single": {"qubit": 0, "gate": "H"}},
    {"Two": {"CNOT": {"control": 0, "target": 1}}},
    {"Single": {"qubit": 1, "gate": "Sdg"}},
    {"Two": {"SWAP": {"qubit1": 1, "qubit2": 0}}}
  ]
}`

const bellYAML = `num_qubits: 2
gates:
  - Single: {qubit: 0, gate: H}
  - Two:
      CNOT: {control: 0, target: 1}
  - Single: {qubit: 1, gate: Sdg}
  - Two:
      SWAP: {qubit1: 1, qubit2: 0}
`

const bellQASM = `OPENQASM 2.0;
include "qelib1.inc";
qreg q[2];
h q[0];
cx q[0],q[1];
sdg q[1];
swap q[1],q[0];
`

func bellGates() []circuit.Gate {
	return []circuit.Gate{
		circuit.Single{Qubit: 0, Kind: circuit.H},
		circuit.CNOT{Control: 0, Target: 1},
		circuit.Single{Qubit: 1, Kind: circuit.Sdg},
		circuit.SWAP{Qubit1: 1, Qubit2: 0},
	}
}

func TestDecodeJSON(t *testing.T) {
	c, err := DecodeJSON(strings.NewReader(bellJSON))
	require.NoError(t, err)
	assert.Equal(t, 2, c.NumQubits())
	assert.Equal(t, bellGates(), c.Gates())
}

func TestEncodeJSONShape(t *testing.T) {
	c, err := circuit.New(2)
	require.NoError(t, err)
	require.NoError(t, c.AddAll(
		circuit.Single{Qubit: 1, Kind: circuit.I},
		circuit.CZ{Control: 1, Target: 0},
	))

	var buf bytes.Buffer
	require.NoError(t, EncodeJSON(&buf, c))
	assert.JSONEq(t, `{
		"num_qubits": 2,
		"gates": [
			{"Single": {"qubit": 1, "gate": "I"}},
			{"Two": {"CZ": {"control": 1, "target": 0}}}
		]
	}`, buf.String())
}

func TestDecodeYAML(t *testing.T) {
	c, err := DecodeYAML(strings.NewReader(bellYAML))
	require.NoError(t, err)
	assert.Equal(t, bellGates(), c.Gates())
}

func TestYAMLEncodingDecodesBack(t *testing.T) {
	c, err := DecodeJSON(strings.NewReader(bellJSON))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, EncodeYAML(&buf, c))
	assert.Contains(t, buf.String(), "num_qubits: 2")

	got, err := DecodeYAML(&buf)
	require.NoError(t, err)
	assert.True(t, c.Equal(got))
}

func TestFormatsAgree(t *testing.T) {
	fromJSON, err := DecodeJSON(strings.NewReader(bellJSON))
	require.NoError(t, err)
	fromYAML, err := DecodeYAML(strings.NewReader(bellYAML))
	require.NoError(t, err)
	fromQASM, err := qasm.ImportString(bellQASM)
	require.NoError(t, err)

	assert.True(t, fromJSON.Equal(fromQASM), "JSON and QASM disagree")
	assert.True(t, fromYAML.Equal(fromQASM), "YAML and QASM disagree")
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want error
	}{
		{"out of range", `{"num_qubits": 1, "gates": [{"Single": {"qubit": 1, "gate": "X"}}]}`, circuit.ErrQubitOutOfRange},
		{"same qubit", `{"num_qubits": 2, "gates": [{"Two": {"CZ": {"control": 1, "target": 1}}}]}`, circuit.ErrSameQubit},
		{"unknown gate", `{"num_qubits": 1, "gates": [{"Single": {"qubit": 0, "gate": "T"}}]}`, circuit.ErrUnknownGate},
		{"too wide", `{"num_qubits": 70, "gates": []}`, circuit.ErrTooManyQubits},
		{"empty entry", `{"num_qubits": 1, "gates": [{}]}`, ErrMalformedGate},
		{"two variants", `{"num_qubits": 2, "gates": [{"Two": {"CZ": {"control": 0, "target": 1}, "SWAP": {"qubit1": 0, "qubit2": 1}}}]}`, ErrMalformedGate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeJSON(strings.NewReader(tt.doc))
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestDecodeRejectsSyntaxErrors(t *testing.T) {
	_, err := DecodeJSON(strings.NewReader(`{"num_qubits": `))
	assert.Error(t, err)

	_, err = DecodeYAML(strings.NewReader("num_qubits: [1"))
	assert.Error(t, err)
}
