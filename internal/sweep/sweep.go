// Package sweep runs every single-qubit Pauli fault through a circuit and
// records where each one ends up.
package sweep

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"

	"golang.org/x/sync/errgroup"

	"paulitrace/pkg/circuit"
	"paulitrace/pkg/pauli"
	"paulitrace/pkg/simulator"
)

var ErrNoFaults = errors.New("no fault kinds selected")

// DefaultKinds are the faults injected on each qubit when Options.Kinds is
// empty.
var DefaultKinds = []pauli.Single{pauli.X, pauli.Y, pauli.Z}

// Fault is a single Pauli placed on one qubit before the first gate.
type Fault struct {
	Qubit int
	Pauli pauli.Single
}

func (f Fault) String() string { return fmt.Sprintf("%s(%d)", f.Pauli, f.Qubit) }

// Result is the frame a fault has become once the whole circuit has run.
type Result struct {
	Fault  Fault
	Final  pauli.String
	Weight int
	Steps  int
}

// Options tunes a sweep.
type Options struct {
	// Parallel bounds the number of concurrent simulations. Zero or less
	// means one per CPU.
	Parallel int
	Kinds    []pauli.Single
}

// Faults lists the faults a sweep over n qubits injects, ordered by qubit
// and then by kind.
func Faults(n int, kinds []pauli.Single) []Fault {
	faults := make([]Fault, 0, n*len(kinds))
	for q := range n {
		for _, k := range kinds {
			faults = append(faults, Fault{Qubit: q, Pauli: k})
		}
	}
	return faults
}

// Run simulates every fault on its own Simulator. Results come back in the
// order of Faults regardless of scheduling. Cancelling ctx stops scheduling
// new simulations and returns the context error.
func Run(ctx context.Context, c *circuit.Circuit, opts Options) ([]Result, error) {
	kinds := opts.Kinds
	if kinds == nil {
		kinds = DefaultKinds
	}
	if len(kinds) == 0 {
		return nil, ErrNoFaults
	}

	parallel := opts.Parallel
	if parallel <= 0 {
		parallel = runtime.NumCPU()
	}

	faults := Faults(c.NumQubits(), kinds)
	results := make([]Result, len(faults))

	slog.Debug("starting fault sweep",
		"qubits", c.NumQubits(), "depth", c.Depth(), "faults", len(faults), "parallel", parallel)

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(parallel)

	for i, fault := range faults {
		if groupCtx.Err() != nil {
			break
		}
		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}
			results[i] = runFault(c, fault)
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, fmt.Errorf("fault sweep: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("fault sweep: %w", err)
	}

	slog.Debug("fault sweep finished", "results", len(results))
	return results, nil
}

func runFault(c *circuit.Circuit, fault Fault) Result {
	sim := simulator.New(c)
	sim.Inject(fault.Qubit, fault.Pauli)
	steps := sim.Run()

	final := sim.ErrorPattern()
	return Result{
		Fault:  fault,
		Final:  final,
		Weight: final.Weight(),
		Steps:  steps,
	}
}

// MaxWeight returns the largest final weight among results, or 0.
func MaxWeight(results []Result) int {
	w := 0
	for _, r := range results {
		w = max(w, r.Weight)
	}
	return w
}

// Spreading returns the results whose fault ended on more than one qubit.
func Spreading(results []Result) []Result {
	var out []Result
	for _, r := range results {
		if r.Weight > 1 {
			out = append(out, r)
		}
	}
	return out
}
