// Package simulator steps a Pauli frame through a circuit one gate at a time
// and records every intermediate frame so that any step can be undone.
package simulator

import (
	"fmt"
	"slices"

	"paulitrace/pkg/circuit"
	"paulitrace/pkg/pauli"
	"paulitrace/pkg/propagate"
)

// NoGate marks a snapshot that was not produced by a gate.
const NoGate = -1

// Snapshot is the frame recorded at one time step. Gate is the index of the
// gate that produced it, or NoGate for the initial snapshot.
type Snapshot struct {
	Time    int
	Pattern pauli.String
	Gate    int
}

// Applied returns the producing gate's index.
func (s Snapshot) Applied() (int, bool) {
	return s.Gate, s.Gate != NoGate
}

// Simulator owns a circuit, the live error frame and the timeline of frames
// seen so far. The invariant len(timeline) == current+1 holds after every
// method returns. A Simulator is not safe for concurrent use.
type Simulator struct {
	circ     *circuit.Circuit
	pattern  pauli.String
	timeline []Snapshot
	current  int
}

// New returns a simulator at time 0 with an identity frame. The circuit is
// copied; later changes to c are not seen.
func New(c *circuit.Circuit) *Simulator {
	s := &Simulator{circ: c.Clone()}
	s.Reset()
	return s
}

// Reset discards injected errors and history.
func (s *Simulator) Reset() {
	s.current = 0
	s.pattern = pauli.New(s.circ.NumQubits())
	s.timeline = append(s.timeline[:0], Snapshot{Time: 0, Pattern: s.pattern, Gate: NoGate})
}

// Inject places p on qubit q of the live frame and rewrites the most recent
// snapshot to match. It panics if q is out of range.
func (s *Simulator) Inject(q int, p pauli.Single) {
	s.pattern.SetPauli(q, p)
	s.timeline[len(s.timeline)-1].Pattern = s.pattern
}

// InjectPattern replaces the whole live frame, phase included.
func (s *Simulator) InjectPattern(p pauli.String) error {
	if p.NumQubits() != s.circ.NumQubits() {
		return fmt.Errorf("%w: pattern has %d qubits, circuit has %d",
			pauli.ErrQubitCountMismatch, p.NumQubits(), s.circ.NumQubits())
	}
	s.pattern = p
	s.timeline[len(s.timeline)-1].Pattern = s.pattern
	return nil
}

// StepForward applies the next gate. It returns false when every gate has
// already been applied.
func (s *Simulator) StepForward() bool {
	if s.current >= s.circ.Depth() {
		return false
	}

	propagate.Apply(&s.pattern, s.circ.Gate(s.current))
	s.current++
	s.timeline = append(s.timeline, Snapshot{
		Time:    s.current,
		Pattern: s.pattern,
		Gate:    s.current - 1,
	})
	return true
}

// StepBackward undoes the last gate by restoring the previous snapshot. It
// returns false at time 0.
func (s *Simulator) StepBackward() bool {
	if s.current == 0 {
		return false
	}

	s.timeline = s.timeline[:len(s.timeline)-1]
	s.current--
	s.pattern = s.timeline[len(s.timeline)-1].Pattern
	return true
}

// Run steps forward until the end and returns the number of gates applied.
func (s *Simulator) Run() int {
	n := 0
	for s.StepForward() {
		n++
	}
	return n
}

// SeekTo steps in either direction until the cursor reaches t, clamped to
// [0, Depth()]. It returns the resulting time.
func (s *Simulator) SeekTo(t int) int {
	t = max(0, min(t, s.circ.Depth()))
	for s.current < t && s.StepForward() {
	}
	for s.current > t && s.StepBackward() {
	}
	return s.current
}

// Snapshot returns the snapshot recorded at time t.
func (s *Simulator) Snapshot(t int) (Snapshot, bool) {
	if t < 0 || t >= len(s.timeline) {
		return Snapshot{}, false
	}
	return s.timeline[t], true
}

// Timeline returns a copy of the recorded snapshots, index 0 first.
func (s *Simulator) Timeline() []Snapshot { return slices.Clone(s.timeline) }

// CurrentTime returns the number of gates applied so far.
func (s *Simulator) CurrentTime() int { return s.current }

// Depth returns the circuit depth.
func (s *Simulator) Depth() int { return s.circ.Depth() }

// Done reports whether every gate has been applied.
func (s *Simulator) Done() bool { return s.current == s.circ.Depth() }

// ErrorPattern returns the live frame.
func (s *Simulator) ErrorPattern() pauli.String { return s.pattern }

// Circuit returns a copy of the simulated circuit.
func (s *Simulator) Circuit() *circuit.Circuit { return s.circ.Clone() }
