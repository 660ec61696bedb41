package pauli

// Phase is a global factor in {+1, +i, -1, -i}, stored as the exponent k of i^k.
type Phase uint8

const (
	PlusOne  Phase = 0
	PlusI    Phase = 1
	MinusOne Phase = 2
	MinusI   Phase = 3
)

// PhaseFromExponent maps any integer exponent of i onto a Phase.
func PhaseFromExponent(k int) Phase {
	return Phase(((k % 4) + 4) % 4)
}

// Exponent returns k such that the phase equals i^k.
func (p Phase) Exponent() int {
	return int(p & 3)
}

// Multiply returns p·o.
func (p Phase) Multiply(o Phase) Phase {
	return Phase((p + o) & 3)
}

// Negate returns -p.
func (p Phase) Negate() Phase {
	return Phase((p + 2) & 3)
}

// IsReal reports whether the phase is ±1.
func (p Phase) IsReal() bool {
	return p&1 == 0
}

// String renders the phase as a prefix for diagnostics; +1 is empty.
func (p Phase) String() string {
	switch p & 3 {
	case PlusI:
		return "i"
	case MinusOne:
		return "−"
	case MinusI:
		return "−i"
	default:
		return ""
	}
}

// ASCII is String with a plain hyphen, for output that has to stay 7-bit.
func (p Phase) ASCII() string {
	switch p & 3 {
	case PlusI:
		return "i"
	case MinusOne:
		return "-"
	case MinusI:
		return "-i"
	default:
		return ""
	}
}
