// Package pauli implements multi-qubit Pauli operators in symplectic form.
//
// A String packs the X and Z components of up to 64 qubits into two machine
// words: qubit i carries (x_i, z_i) where (0,0)=I, (1,0)=X, (0,1)=Z and
// (1,1)=Y. The overall factor is tracked separately as a Phase.
package pauli

import (
	"errors"
	"fmt"
	"math/bits"
	"strings"
	"unicode"
)

// MaxQubits is the widest operator a String can hold.
const MaxQubits = 64

var (
	ErrPatternLength      = errors.New("pattern length does not match qubit count")
	ErrPatternChar        = errors.New("invalid Pauli character")
	ErrQubitCountMismatch = errors.New("Pauli strings act on different qubit counts")
)

// Single is a single-qubit Pauli without phase.
type Single uint8

const (
	I Single = iota
	X
	Y
	Z
)

// ParseSingle accepts I, X, Y or Z in either case.
func ParseSingle(s string) (Single, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "I":
		return I, nil
	case "X":
		return X, nil
	case "Y":
		return Y, nil
	case "Z":
		return Z, nil
	}
	return I, fmt.Errorf("%w: %q", ErrPatternChar, s)
}

func (p Single) String() string {
	switch p {
	case X:
		return "X"
	case Y:
		return "Y"
	case Z:
		return "Z"
	default:
		return "I"
	}
}

// bitsOf returns the symplectic pair for p.
func (p Single) bitsOf() (x, z bool) {
	switch p {
	case X:
		return true, false
	case Y:
		return true, true
	case Z:
		return false, true
	default:
		return false, false
	}
}

func singleOf(x, z bool) Single {
	switch {
	case x && z:
		return Y
	case x:
		return X
	case z:
		return Z
	default:
		return I
	}
}

// String is an n-qubit Pauli operator with a global phase. The zero value is
// a 0-qubit identity. Strings are plain values: assigning one copies it.
type String struct {
	x     uint64
	z     uint64
	phase Phase
	n     int
}

// New returns the n-qubit identity with phase +1. It panics if n is negative
// or larger than MaxQubits.
func New(n int) String {
	if n < 0 || n > MaxQubits {
		panic(fmt.Sprintf("pauli: %d qubits requested, supported range is 0..%d", n, MaxQubits))
	}
	return String{n: n}
}

// Parse reads one I/X/Y/Z character per qubit, qubit 0 first. Whitespace is
// ignored and letters are case-insensitive. The phase is always +1.
func Parse(s string, n int) (String, error) {
	if n < 0 || n > MaxQubits {
		return String{}, fmt.Errorf("%w: %d qubits (max %d)", ErrPatternLength, n, MaxQubits)
	}

	chars := make([]rune, 0, len(s))
	for _, r := range s {
		if !unicode.IsSpace(r) {
			chars = append(chars, r)
		}
	}
	if len(chars) != n {
		return String{}, fmt.Errorf("%w: got %d characters for %d qubits", ErrPatternLength, len(chars), n)
	}

	p := String{n: n}
	for i, r := range chars {
		single, err := ParseSingle(string(r))
		if err != nil {
			return String{}, fmt.Errorf("%w at position %d", err, i)
		}
		p.SetPauli(i, single)
	}
	return p, nil
}

// NumQubits returns the qubit count.
func (p String) NumQubits() int { return p.n }

// Phase returns the global phase.
func (p String) Phase() Phase { return p.phase }

// SetPhase overwrites the global phase.
func (p *String) SetPhase(ph Phase) { p.phase = ph & 3 }

// XBits returns the X component mask; bit i belongs to qubit i.
func (p String) XBits() uint64 { return p.x }

// ZBits returns the Z component mask; bit i belongs to qubit i.
func (p String) ZBits() uint64 { return p.z }

func (p String) check(q int) {
	if q < 0 || q >= p.n {
		panic(fmt.Sprintf("pauli: qubit %d out of range [0,%d)", q, p.n))
	}
}

// Pauli returns the component on qubit q. It panics if q is out of range.
func (p String) Pauli(q int) Single {
	x, z := p.Components(q)
	return singleOf(x, z)
}

// SetPauli replaces the component on qubit q, leaving the phase alone.
// It panics if q is out of range.
func (p *String) SetPauli(q int, s Single) {
	x, z := s.bitsOf()
	p.SetComponents(q, x, z)
}

// Components returns the raw (x, z) bits of qubit q.
func (p String) Components(q int) (x, z bool) {
	p.check(q)
	return p.x>>uint(q)&1 == 1, p.z>>uint(q)&1 == 1
}

// SetComponents overwrites the raw (x, z) bits of qubit q.
func (p *String) SetComponents(q int, x, z bool) {
	p.check(q)
	mask := uint64(1) << uint(q)
	p.x &^= mask
	p.z &^= mask
	if x {
		p.x |= mask
	}
	if z {
		p.z |= mask
	}
}

// Multiply returns p·o, with p as the left operand. The result phase is
// phase(p)·phase(o)·i^ω where ω = |x_p & z_o| - |z_p & x_o| (mod 4).
func (p String) Multiply(o String) (String, error) {
	if p.n != o.n {
		return String{}, fmt.Errorf("%w: %d and %d", ErrQubitCountMismatch, p.n, o.n)
	}

	omega := bits.OnesCount64(p.x&o.z) - bits.OnesCount64(p.z&o.x)
	return String{
		x:     p.x ^ o.x,
		z:     p.z ^ o.z,
		phase: p.phase.Multiply(o.phase).Multiply(PhaseFromExponent(omega)),
		n:     p.n,
	}, nil
}

// CommutesWith reports whether p and o commute, i.e. whether their
// symplectic inner product is even. Operators of different sizes are
// reported as not commuting rather than as an error.
func (p String) CommutesWith(o String) bool {
	if p.n != o.n {
		return false
	}
	return bits.OnesCount64((p.x&o.z)^(p.z&o.x))%2 == 0
}

// Weight returns the number of qubits carrying a non-identity component.
func (p String) Weight() int {
	return bits.OnesCount64(p.x | p.z)
}

// IsIdentity reports whether every component is I. The phase is ignored.
func (p String) IsIdentity() bool {
	return p.x|p.z == 0
}

// Support returns the qubits carrying a non-identity component, ascending.
func (p String) Support() []int {
	support := make([]int, 0, p.Weight())
	for mask := p.x | p.z; mask != 0; mask &= mask - 1 {
		support = append(support, bits.TrailingZeros64(mask))
	}
	return support
}

// Compact renders the components as "XIZ", without phase.
func (p String) Compact() string {
	var sb strings.Builder
	sb.Grow(p.n)
	for q := 0; q < p.n; q++ {
		sb.WriteString(p.Pauli(q).String())
	}
	return sb.String()
}

// String renders the phase prefix followed by space separated components,
// e.g. "−iX I Z".
func (p String) String() string {
	var sb strings.Builder
	sb.WriteString(p.phase.String())
	for q := 0; q < p.n; q++ {
		if q > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(p.Pauli(q).String())
	}
	return sb.String()
}
