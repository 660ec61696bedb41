package propagate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"paulitrace/pkg/circuit"
	"paulitrace/pkg/pauli"
)

func frame(t *testing.T, s string, n int) pauli.String {
	t.Helper()
	p, err := pauli.Parse(s, n)
	require.NoError(t, err)
	return p
}

func TestSingleQubitConjugation(t *testing.T) {
	tests := []struct {
		kind  circuit.Kind
		in    string
		out   pauli.Single
		phase pauli.Phase
	}{
		{circuit.I, "X", pauli.X, pauli.PlusOne},
		{circuit.I, "Y", pauli.Y, pauli.PlusOne},

		{circuit.X, "X", pauli.X, pauli.PlusOne},
		{circuit.X, "Z", pauli.Z, pauli.MinusOne},
		{circuit.X, "Y", pauli.Y, pauli.MinusOne},
		{circuit.X, "I", pauli.I, pauli.PlusOne},

		{circuit.Z, "X", pauli.X, pauli.MinusOne},
		{circuit.Z, "Y", pauli.Y, pauli.MinusOne},
		{circuit.Z, "Z", pauli.Z, pauli.PlusOne},

		{circuit.Y, "X", pauli.X, pauli.MinusOne},
		{circuit.Y, "Z", pauli.Z, pauli.MinusOne},
		{circuit.Y, "Y", pauli.Y, pauli.PlusOne},
		{circuit.Y, "I", pauli.I, pauli.PlusOne},

		{circuit.H, "X", pauli.Z, pauli.PlusOne},
		{circuit.H, "Z", pauli.X, pauli.PlusOne},
		{circuit.H, "Y", pauli.Y, pauli.MinusOne},
		{circuit.H, "I", pauli.I, pauli.PlusOne},

		{circuit.S, "X", pauli.Y, pauli.PlusI},
		{circuit.S, "Y", pauli.X, pauli.PlusOne},
		{circuit.S, "Z", pauli.Z, pauli.PlusOne},
		{circuit.S, "I", pauli.I, pauli.PlusOne},

		{circuit.Sdg, "X", pauli.Y, pauli.MinusI},
		{circuit.Sdg, "Y", pauli.X, pauli.PlusOne},
		{circuit.Sdg, "Z", pauli.Z, pauli.PlusOne},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String()+"_"+tt.in, func(t *testing.T) {
			p := frame(t, tt.in, 1)
			ApplySingle(&p, 0, tt.kind)
			assert.Equal(t, tt.out, p.Pauli(0))
			assert.Equal(t, tt.phase, p.Phase())
		})
	}
}

func TestHadamardTwiceIsIdentity(t *testing.T) {
	for _, in := range []string{"I", "X", "Y", "Z"} {
		p := frame(t, in, 1)
		ApplySingle(&p, 0, circuit.H)
		ApplySingle(&p, 0, circuit.H)
		assert.Equal(t, in, p.Compact())
		assert.Equal(t, pauli.PlusOne, p.Phase(), in)
	}
}

func TestPhaseGateFourTimesIsIdentity(t *testing.T) {
	p := frame(t, "X", 1)

	want := []struct {
		pauli pauli.Single
		phase pauli.Phase
	}{
		{pauli.Y, pauli.PlusI},
		{pauli.X, pauli.MinusI},
		{pauli.Y, pauli.PlusOne},
		{pauli.X, pauli.PlusOne},
	}

	for i, w := range want {
		ApplySingle(&p, 0, circuit.S)
		assert.Equal(t, w.pauli, p.Pauli(0), "after %d applications", i+1)
		assert.Equal(t, w.phase, p.Phase(), "after %d applications", i+1)
	}
}

func TestPhaseDaggerFourTimesIsIdentity(t *testing.T) {
	p := frame(t, "X", 1)
	for range 4 {
		ApplySingle(&p, 0, circuit.Sdg)
	}
	assert.Equal(t, pauli.X, p.Pauli(0))
	assert.Equal(t, pauli.PlusOne, p.Phase())
}

func TestPhaseGateAndDaggerCancel(t *testing.T) {
	for _, in := range []string{"I", "X", "Z"} {
		p := frame(t, in, 1)
		ApplySingle(&p, 0, circuit.S)
		ApplySingle(&p, 0, circuit.Sdg)
		assert.Equal(t, in, p.Compact(), "S then S† on %s", in)
		assert.Equal(t, pauli.PlusOne, p.Phase(), "S then S† on %s", in)

		p = frame(t, in, 1)
		ApplySingle(&p, 0, circuit.Sdg)
		ApplySingle(&p, 0, circuit.S)
		assert.Equal(t, in, p.Compact(), "S† then S on %s", in)
		assert.Equal(t, pauli.PlusOne, p.Phase(), "S† then S on %s", in)
	}
}

func TestSingleGateLeavesOtherQubitsAlone(t *testing.T) {
	p := frame(t, "XYZ", 3)
	ApplySingle(&p, 1, circuit.H)
	assert.Equal(t, "XYZ", p.Compact())
	assert.Equal(t, pauli.MinusOne, p.Phase())
}

func TestCNOTIdentities(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		out   string
		phase pauli.Phase
	}{
		{"X on control spreads", "XI", "XX", pauli.PlusOne},
		{"Z on target spreads back", "IZ", "ZZ", pauli.PlusOne},
		{"X on target stays", "IX", "IX", pauli.PlusOne},
		{"Z on control stays", "ZI", "ZI", pauli.PlusOne},
		{"XZ becomes -YY", "XZ", "YY", pauli.MinusOne},
		{"XX is a fixed point", "XX", "XX", pauli.PlusOne},
		{"YX keeps the X on target", "YX", "YX", pauli.PlusOne},
		{"identity", "II", "II", pauli.PlusOne},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := frame(t, tt.in, 2)
			ApplyCNOT(&p, 0, 1)
			assert.Equal(t, tt.out, p.Compact())
			assert.Equal(t, tt.phase, p.Phase())
		})
	}
}

func TestCNOTReversedOperands(t *testing.T) {
	p := frame(t, "IX", 2)
	ApplyCNOT(&p, 1, 0)
	assert.Equal(t, "XX", p.Compact())
}

func TestCZIdentities(t *testing.T) {
	tests := []struct {
		in    string
		out   string
		phase pauli.Phase
	}{
		{"XI", "XZ", pauli.PlusOne},
		{"IX", "ZX", pauli.PlusOne},
		{"ZI", "ZI", pauli.PlusOne},
		{"XX", "YY", pauli.MinusOne},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			p := frame(t, tt.in, 2)
			ApplyCZ(&p, 0, 1)
			assert.Equal(t, tt.out, p.Compact())
			assert.Equal(t, tt.phase, p.Phase())
		})
	}
}

func TestSWAP(t *testing.T) {
	p := frame(t, "XIZ", 3)
	ApplySWAP(&p, 0, 2)
	assert.Equal(t, "ZIX", p.Compact())

	ApplySWAP(&p, 1, 1)
	assert.Equal(t, "ZIX", p.Compact())
	assert.Equal(t, pauli.PlusOne, p.Phase())
}

func allTwoQubitFrames() []string {
	letters := []string{"I", "X", "Y", "Z"}
	var out []string
	for _, a := range letters {
		for _, b := range letters {
			out = append(out, a+b)
		}
	}
	return out
}

func TestTwoQubitGatesAreInvolutions(t *testing.T) {
	gates := []circuit.Gate{
		circuit.SWAP{Qubit1: 0, Qubit2: 1},
		circuit.CZ{Control: 0, Target: 1},
	}

	for _, g := range gates {
		for _, in := range allTwoQubitFrames() {
			p := frame(t, in, 2)
			Apply(&p, g)
			Apply(&p, g)
			assert.Equal(t, in, p.Compact(), "%s twice on %s", g, in)
			assert.Equal(t, pauli.PlusOne, p.Phase(), "%s twice on %s", g, in)
		}
	}
}

func TestCNOTDoesNotClearTarget(t *testing.T) {
	p := frame(t, "XI", 2)
	ApplyCNOT(&p, 0, 1)
	ApplyCNOT(&p, 0, 1)
	assert.Equal(t, "XX", p.Compact())
	assert.Equal(t, pauli.PlusOne, p.Phase())
}

func TestCNOTPreservesCommutationOnSingleXFrames(t *testing.T) {
	frames := singleXFrames()
	for _, g := range []circuit.Gate{
		circuit.CNOT{Control: 0, Target: 1},
		circuit.CNOT{Control: 1, Target: 0},
	} {
		for _, a := range frames {
			for _, b := range frames {
				pa, pb := frame(t, a, 2), frame(t, b, 2)
				before := pa.CommutesWith(pb)
				Apply(&pa, g)
				Apply(&pb, g)
				assert.Equal(t, before, pa.CommutesWith(pb), "%s on %s, %s", g, a, b)
			}
		}
	}
}

// singleXFrames lists the two-qubit frames with an X component on at most
// one qubit.
func singleXFrames() []string {
	var out []string
	for _, f := range allTwoQubitFrames() {
		p, _ := pauli.Parse(f, 2)
		x0, _ := p.Components(0)
		x1, _ := p.Components(1)
		if !(x0 && x1) {
			out = append(out, f)
		}
	}
	return out
}

func TestConjugationPreservesCommutation(t *testing.T) {
	gates := []circuit.Gate{
		circuit.Single{Qubit: 0, Kind: circuit.H},
		circuit.CZ{Control: 1, Target: 0},
		circuit.SWAP{Qubit1: 0, Qubit2: 1},
	}
	frames := allTwoQubitFrames()

	for _, g := range gates {
		for _, a := range frames {
			for _, b := range frames {
				pa, pb := frame(t, a, 2), frame(t, b, 2)
				before := pa.CommutesWith(pb)
				Apply(&pa, g)
				Apply(&pb, g)
				assert.Equal(t, before, pa.CommutesWith(pb), "%s on %s, %s", g, a, b)
			}
		}
	}
}

func TestApplyDispatch(t *testing.T) {
	p := frame(t, "XI", 2)
	Apply(&p, circuit.Single{Qubit: 0, Kind: circuit.H})
	assert.Equal(t, "ZI", p.Compact())

	Apply(&p, circuit.SWAP{Qubit1: 0, Qubit2: 1})
	assert.Equal(t, "IZ", p.Compact())

	Apply(&p, circuit.CNOT{Control: 0, Target: 1})
	assert.Equal(t, "ZZ", p.Compact())

	Apply(&p, circuit.CZ{Control: 0, Target: 1})
	assert.Equal(t, "ZZ", p.Compact())
}

func TestContractViolationsPanic(t *testing.T) {
	p := pauli.New(2)
	assert.Panics(t, func() { ApplyCNOT(&p, 0, 0) })
	assert.Panics(t, func() { ApplyCZ(&p, 1, 1) })
	assert.Panics(t, func() { ApplyCNOT(&p, 0, 2) })
	assert.Panics(t, func() { ApplySWAP(&p, 0, 3) })
	assert.Panics(t, func() { ApplySingle(&p, 2, circuit.H) })
	assert.Panics(t, func() { Apply(&p, nil) })
}
