// Package report renders simulator timelines and sweep results as text
// tables or JSON.
package report

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"

	"paulitrace/internal/sweep"
	"paulitrace/pkg/circuit"
	"paulitrace/pkg/pauli"
	"paulitrace/pkg/simulator"
)

// PhaseLabel spells a phase with an explicit sign and magnitude, e.g. "+1"
// or "-i".
func PhaseLabel(p pauli.Phase) string {
	switch p {
	case pauli.PlusI:
		return "+i"
	case pauli.MinusOne:
		return "-1"
	case pauli.MinusI:
		return "-i"
	default:
		return "+1"
	}
}

func gateLabel(c *circuit.Circuit, s simulator.Snapshot) string {
	idx, ok := s.Applied()
	if !ok || idx >= c.Depth() {
		return "-"
	}
	return c.Gate(idx).String()
}

// Timeline writes one table row per snapshot.
func Timeline(w io.Writer, c *circuit.Circuit, snaps []simulator.Snapshot) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Time", "Gate", "Frame", "Phase", "Weight"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_CENTER, tablewriter.ALIGN_RIGHT,
	})

	for _, s := range snaps {
		table.Append([]string{
			fmt.Sprintf("%d", s.Time),
			gateLabel(c, s),
			s.Pattern.Compact(),
			PhaseLabel(s.Pattern.Phase()),
			fmt.Sprintf("%d", s.Pattern.Weight()),
		})
	}

	table.Render()
}

// Sweep writes one table row per fault with a summary footer.
func Sweep(w io.Writer, results []sweep.Result) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Fault", "Final", "Phase", "Weight"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_CENTER, tablewriter.ALIGN_RIGHT,
	})

	for _, r := range results {
		table.Append([]string{
			r.Fault.String(),
			r.Final.Compact(),
			PhaseLabel(r.Final.Phase()),
			fmt.Sprintf("%d", r.Weight),
		})
	}

	table.SetFooter([]string{
		fmt.Sprintf("Faults %d", len(results)),
		fmt.Sprintf("Spreading %d", len(sweep.Spreading(results))),
		"Max",
		fmt.Sprintf("%d", sweep.MaxWeight(results)),
	})

	table.Render()
}

type timelineDoc struct {
	NumQubits int           `json:"num_qubits"`
	Depth     int           `json:"depth"`
	Timeline  []snapshotDoc `json:"timeline"`
}

type snapshotDoc struct {
	Time      int    `json:"time"`
	GateIndex *int   `json:"gate_index"`
	Gate      string `json:"gate,omitempty"`
	Pattern   string `json:"pattern"`
	Phase     string `json:"phase"`
	Weight    int    `json:"weight"`
}

// TimelineJSON writes the snapshots as an indented JSON document.
func TimelineJSON(w io.Writer, c *circuit.Circuit, snaps []simulator.Snapshot) error {
	doc := timelineDoc{
		NumQubits: c.NumQubits(),
		Depth:     c.Depth(),
		Timeline:  make([]snapshotDoc, 0, len(snaps)),
	}
	for _, s := range snaps {
		entry := snapshotDoc{
			Time:    s.Time,
			Pattern: s.Pattern.Compact(),
			Phase:   PhaseLabel(s.Pattern.Phase()),
			Weight:  s.Pattern.Weight(),
		}
		if idx, ok := s.Applied(); ok {
			entry.GateIndex = &idx
			entry.Gate = gateLabel(c, s)
		}
		doc.Timeline = append(doc.Timeline, entry)
	}
	return writeJSON(w, doc)
}

type resultDoc struct {
	Qubit   int    `json:"qubit"`
	Fault   string `json:"fault"`
	Pattern string `json:"pattern"`
	Phase   string `json:"phase"`
	Weight  int    `json:"weight"`
	Support []int  `json:"support"`
}

// SweepJSON writes the sweep results as an indented JSON array.
func SweepJSON(w io.Writer, results []sweep.Result) error {
	docs := make([]resultDoc, 0, len(results))
	for _, r := range results {
		docs = append(docs, resultDoc{
			Qubit:   r.Fault.Qubit,
			Fault:   r.Fault.Pauli.String(),
			Pattern: r.Final.Compact(),
			Phase:   PhaseLabel(r.Final.Phase()),
			Weight:  r.Weight,
			Support: r.Final.Support(),
		})
	}
	return writeJSON(w, docs)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}
	return nil
}
