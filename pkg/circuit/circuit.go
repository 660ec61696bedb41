// Package circuit holds the validated, ordered gate list that the simulator
// steps through. A gate's index in the list is its time step; there is
// exactly one gate per step.
package circuit

import (
	"errors"
	"fmt"
	"slices"

	"paulitrace/pkg/pauli"
)

var (
	ErrTooManyQubits   = errors.New("too many qubits")
	ErrNegativeQubits  = errors.New("negative qubit count")
	ErrQubitOutOfRange = errors.New("qubit index out of range")
	ErrSameQubit       = errors.New("control and target must differ")
	ErrUnknownGate     = errors.New("unknown gate")
)

// Circuit is a fixed qubit count plus an ordered list of gates. Every gate
// in the list has been checked against the qubit count by Add.
type Circuit struct {
	numQubits int
	gates     []Gate
}

// New returns an empty circuit over n qubits.
func New(n int) (*Circuit, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: %d", ErrNegativeQubits, n)
	}
	if n > pauli.MaxQubits {
		return nil, fmt.Errorf("%w: %d (max %d)", ErrTooManyQubits, n, pauli.MaxQubits)
	}
	return &Circuit{numQubits: n}, nil
}

// NumQubits returns the qubit count.
func (c *Circuit) NumQubits() int { return c.numQubits }

// Depth returns the number of gates, which is also the number of time steps.
func (c *Circuit) Depth() int { return len(c.gates) }

// Validate checks g against the circuit without inserting it.
func (c *Circuit) Validate(g Gate) error {
	if g == nil {
		return fmt.Errorf("%w: nil gate", ErrUnknownGate)
	}
	if s, ok := g.(Single); ok && s.Kind > Sdg {
		return fmt.Errorf("%w: %s", ErrUnknownGate, s.Kind)
	}
	for _, q := range g.Qubits() {
		if q < 0 || q >= c.numQubits {
			return fmt.Errorf("%w: %s acts on qubit %d but circuit has only %d qubits",
				ErrQubitOutOfRange, g, q, c.numQubits)
		}
	}
	switch g := g.(type) {
	case CNOT:
		if g.Control == g.Target {
			return fmt.Errorf("%w: %s", ErrSameQubit, g)
		}
	case CZ:
		if g.Control == g.Target {
			return fmt.Errorf("%w: %s", ErrSameQubit, g)
		}
	}
	return nil
}

// Add appends g after validating it. A rejected gate leaves the circuit
// unchanged.
func (c *Circuit) Add(g Gate) error {
	if err := c.Validate(g); err != nil {
		return err
	}
	c.gates = append(c.gates, g)
	return nil
}

// AddAll appends gates in order, stopping at the first invalid one.
func (c *Circuit) AddAll(gates ...Gate) error {
	for i, g := range gates {
		if err := c.Add(g); err != nil {
			return fmt.Errorf("gate %d: %w", i, err)
		}
	}
	return nil
}

// Gate returns the gate applied at time step t.
func (c *Circuit) Gate(t int) Gate { return c.gates[t] }

// Gates returns a copy of the gate list.
func (c *Circuit) Gates() []Gate { return slices.Clone(c.gates) }

// GatesAt returns the gates scheduled at time step t: one gate inside the
// circuit, none past its end.
func (c *Circuit) GatesAt(t int) []Gate {
	if t < 0 || t >= len(c.gates) {
		return nil
	}
	return []Gate{c.gates[t]}
}

// RemoveLast drops the final gate, reporting whether there was one.
func (c *Circuit) RemoveLast() bool {
	if len(c.gates) == 0 {
		return false
	}
	c.gates = c.gates[:len(c.gates)-1]
	return true
}

// Clone returns an independent copy.
func (c *Circuit) Clone() *Circuit {
	return &Circuit{numQubits: c.numQubits, gates: slices.Clone(c.gates)}
}

// Equal reports whether both circuits have the same qubit count and the same
// gates in the same order.
func (c *Circuit) Equal(o *Circuit) bool {
	if c == nil || o == nil {
		return c == o
	}
	return c.numQubits == o.numQubits && slices.Equal(c.gates, o.gates)
}
