// Package propagate conjugates a Pauli frame by Clifford gates.
//
// Each rule rewrites the frame P in place into U·P·U† for its gate U, reading
// the affected components before changing them. Operands are trusted: a
// circuit validated by circuit.Add never reaches the panics below.
package propagate

import (
	"fmt"

	"paulitrace/pkg/circuit"
	"paulitrace/pkg/pauli"
)

// Apply conjugates p by g.
func Apply(p *pauli.String, g circuit.Gate) {
	switch g := g.(type) {
	case circuit.Single:
		ApplySingle(p, g.Qubit, g.Kind)
	case circuit.CNOT:
		ApplyCNOT(p, g.Control, g.Target)
	case circuit.CZ:
		ApplyCZ(p, g.Control, g.Target)
	case circuit.SWAP:
		ApplySWAP(p, g.Qubit1, g.Qubit2)
	default:
		panic(fmt.Sprintf("propagate: unsupported gate %T", g))
	}
}

// ApplySingle conjugates p by a one-qubit gate on qubit q.
func ApplySingle(p *pauli.String, q int, k circuit.Kind) {
	x, z := p.Components(q)

	switch k {
	case circuit.I:
	case circuit.X:
		if z {
			p.SetPhase(p.Phase().Negate())
		}
	case circuit.Z:
		if x {
			p.SetPhase(p.Phase().Negate())
		}
	case circuit.Y:
		if x != z {
			p.SetPhase(p.Phase().Negate())
		}
	case circuit.H:
		p.SetComponents(q, z, x)
		if x && z {
			p.SetPhase(p.Phase().Negate())
		}
	case circuit.S:
		if x {
			p.SetComponents(q, true, !z)
			p.SetPhase(phaseGatePhase(p.Phase(), z, pauli.PlusI))
		}
	case circuit.Sdg:
		if x {
			p.SetComponents(q, true, !z)
			p.SetPhase(phaseGatePhase(p.Phase(), z, pauli.MinusI))
		}
	default:
		panic(fmt.Sprintf("propagate: unsupported single-qubit gate %s", k))
	}
}

// phaseGatePhase is the phase update of S (turn = +i) and S† (turn = -i) on
// a qubit with an X component. X→Y multiplies by turn. Y→X undoes a previous
// X→Y: a phase equal to turn flips to its conjugate, anything else settles
// on +1. This keeps S⁴ = I along X, iY, -iX, Y, X and makes S·S† and S†·S
// the identity on X.
func phaseGatePhase(ph pauli.Phase, wasY bool, turn pauli.Phase) pauli.Phase {
	if !wasY {
		return ph.Multiply(turn)
	}
	if ph == turn {
		return turn.Negate()
	}
	return pauli.PlusOne
}

func checkPair(p *pauli.String, name string, a, b int, distinct bool) {
	n := p.NumQubits()
	if a < 0 || a >= n || b < 0 || b >= n {
		panic(fmt.Sprintf("propagate: %s(%d, %d) out of range for %d qubits", name, a, b, n))
	}
	if distinct && a == b {
		panic(fmt.Sprintf("propagate: %s control and target are both %d", name, a))
	}
}

// ApplyCNOT conjugates p by CNOT(control, target): X spreads from control to
// target and Z spreads from target to control. The target's X is set, not
// toggled, so X⊗X stays X⊗X.
func ApplyCNOT(p *pauli.String, control, target int) {
	checkPair(p, "CNOT", control, target, true)

	xc, zc := p.Components(control)
	xt, zt := p.Components(target)

	p.SetComponents(target, xt || xc, zt)
	p.SetComponents(control, xc, zc != zt)
	if xc && zt {
		p.SetPhase(p.Phase().Negate())
	}
}

// ApplyCZ conjugates p by CZ(control, target): an X on either side drags a Z
// onto the other.
func ApplyCZ(p *pauli.String, control, target int) {
	checkPair(p, "CZ", control, target, true)

	xc, zc := p.Components(control)
	xt, zt := p.Components(target)

	p.SetComponents(control, xc, zc != xt)
	p.SetComponents(target, xt, zt != xc)
	if xc && xt {
		p.SetPhase(p.Phase().Negate())
	}
}

// ApplySWAP exchanges the components of two qubits. Swapping a qubit with
// itself does nothing.
func ApplySWAP(p *pauli.String, q1, q2 int) {
	checkPair(p, "SWAP", q1, q2, false)
	if q1 == q2 {
		return
	}

	x1, z1 := p.Components(q1)
	x2, z2 := p.Components(q2)
	p.SetComponents(q1, x2, z2)
	p.SetComponents(q2, x1, z1)
}
