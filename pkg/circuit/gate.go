package circuit

import (
	"fmt"
	"strings"
)

// Kind selects a single-qubit Clifford gate.
type Kind uint8

const (
	I Kind = iota
	X
	Y
	Z
	H
	S
	Sdg
)

var kindNames = [...]string{
	I:   "I",
	X:   "X",
	Y:   "Y",
	Z:   "Z",
	H:   "H",
	S:   "S",
	Sdg: "Sdg",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// ParseKind maps a gate name onto its Kind. Matching is case-insensitive and
// accepts "SDG" and "S†" as well as "Sdg". It is meant for importers and
// front ends; the engine itself never dispatches on names.
func ParseKind(name string) (Kind, error) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "I", "ID":
		return I, nil
	case "X":
		return X, nil
	case "Y":
		return Y, nil
	case "Z":
		return Z, nil
	case "H":
		return H, nil
	case "S":
		return S, nil
	case "SDG", "S†":
		return Sdg, nil
	}
	return I, fmt.Errorf("%w: %q", ErrUnknownGate, name)
}

// Gate is one operation of a circuit. The set of implementations is closed:
// Single, CNOT, CZ and SWAP.
type Gate interface {
	// Qubits lists the touched qubits in operand order.
	Qubits() []int
	String() string

	gate()
}

// Single applies a one-qubit gate of the given kind.
type Single struct {
	Qubit int
	Kind  Kind
}

// CNOT flips Target when Control is set.
type CNOT struct {
	Control int
	Target  int
}

// CZ applies a controlled phase flip.
type CZ struct {
	Control int
	Target  int
}

// SWAP exchanges two qubits.
type SWAP struct {
	Qubit1 int
	Qubit2 int
}

func (Single) gate() {}
func (CNOT) gate()   {}
func (CZ) gate()     {}
func (SWAP) gate()   {}

func (g Single) Qubits() []int { return []int{g.Qubit} }
func (g CNOT) Qubits() []int   { return []int{g.Control, g.Target} }
func (g CZ) Qubits() []int     { return []int{g.Control, g.Target} }
func (g SWAP) Qubits() []int   { return []int{g.Qubit1, g.Qubit2} }

func (g Single) String() string { return fmt.Sprintf("%s(%d)", g.Kind, g.Qubit) }
func (g CNOT) String() string   { return fmt.Sprintf("CNOT(%d, %d)", g.Control, g.Target) }
func (g CZ) String() string     { return fmt.Sprintf("CZ(%d, %d)", g.Control, g.Target) }
func (g SWAP) String() string   { return fmt.Sprintf("SWAP(%d, %d)", g.Qubit1, g.Qubit2) }

// Touches reports whether g acts on qubit q.
func Touches(g Gate, q int) bool {
	for _, gq := range g.Qubits() {
		if gq == q {
			return true
		}
	}
	return false
}
