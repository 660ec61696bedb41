// Package latex renders circuits as qcircuit documents.
package latex

import (
	"fmt"
	"strings"

	"paulitrace/pkg/circuit"
)

var singleCells = map[circuit.Kind]string{
	circuit.I:   `\qw`,
	circuit.X:   `\gate{X}`,
	circuit.Y:   `\gate{Y}`,
	circuit.Z:   `\gate{Z}`,
	circuit.H:   `\gate{H}`,
	circuit.S:   `\gate{S}`,
	circuit.Sdg: `\gate{S^\dagger}`,
}

// Export renders c as a standalone LaTeX document using the qcircuit
// package. Each gate gets its own column; vertical offsets in \ctrl and \qwx
// are signed so controls below their target point upwards.
func Export(c *circuit.Circuit) string {
	var sb strings.Builder
	sb.WriteString("\\documentclass{article}\n")
	sb.WriteString("\\usepackage{qcircuit}\n")
	sb.WriteString("\\begin{document}\n")
	sb.WriteString("\\begin{equation*}\n")
	sb.WriteString("\\Qcircuit @C=1em @R=.7em {\n")

	gates := c.Gates()
	for q := range c.NumQubits() {
		fmt.Fprintf(&sb, "\\lstick{q_{%d}}", q)
		for _, g := range gates {
			sb.WriteString(" & ")
			sb.WriteString(cell(g, q))
		}
		sb.WriteString(" & \\qw \\\\\n")
	}

	sb.WriteString("}\n")
	sb.WriteString("\\end{equation*}\n")
	sb.WriteString("\\end{document}\n")
	return sb.String()
}

// cell returns the qcircuit entry for qubit q in the column of g.
func cell(g circuit.Gate, q int) string {
	switch g := g.(type) {
	case circuit.Single:
		if g.Qubit == q {
			return singleCells[g.Kind]
		}
	case circuit.CNOT:
		switch q {
		case g.Control:
			return fmt.Sprintf(`\ctrl{%d}`, g.Target-g.Control)
		case g.Target:
			return `\targ`
		}
	case circuit.CZ:
		switch q {
		case g.Control:
			return fmt.Sprintf(`\ctrl{%d}`, g.Target-g.Control)
		case g.Target:
			return `\control \qw`
		}
	case circuit.SWAP:
		if g.Qubit1 == g.Qubit2 {
			break
		}
		switch q {
		case g.Qubit1:
			return fmt.Sprintf(`\qswap \qwx[%d]`, g.Qubit2-g.Qubit1)
		case g.Qubit2:
			return `\qswap`
		}
	}
	return `\qw`
}

// ExportListing renders c as a plain numbered gate list wrapped in a
// verbatim block, for documents without qcircuit.
func ExportListing(c *circuit.Circuit) string {
	var sb strings.Builder
	sb.WriteString("\\documentclass{article}\n")
	sb.WriteString("\\begin{document}\n")
	fmt.Fprintf(&sb, "Circuit with %d qubits and %d gates:\n\n", c.NumQubits(), c.Depth())
	sb.WriteString("\\begin{verbatim}\n")
	for i, g := range c.Gates() {
		fmt.Fprintf(&sb, "Gate %d: %s\n", i, g)
	}
	sb.WriteString("\\end{verbatim}\n")
	sb.WriteString("\\end{document}\n")
	return sb.String()
}
