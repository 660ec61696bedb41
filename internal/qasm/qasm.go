// Package qasm reads and writes the Clifford subset of OpenQASM 2.0.
package qasm

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"paulitrace/pkg/circuit"
)

var (
	ErrUnsupported = errors.New("unsupported QASM statement")
	ErrSyntax      = errors.New("malformed QASM statement")
	ErrNoRegister  = errors.New("no qreg declared")
)

// Pre-compiled regexps for QASM parsing.
var (
	qregRegex       = regexp.MustCompile(`^qreg\s+(\w+)\s*\[\s*(\d+)\s*\]$`)
	singleGateRegex = regexp.MustCompile(`^(\w+)\s+(\w+)\s*\[\s*(\d+)\s*\]$`)
	twoQubitRegex   = regexp.MustCompile(`^(\w+)\s+(\w+)\s*\[\s*(\d+)\s*\]\s*,\s*(\w+)\s*\[\s*(\d+)\s*\]$`)
	paramGateRegex  = regexp.MustCompile(`^\w+\s*\(`)
)

var singleNames = map[circuit.Kind]string{
	circuit.I:   "id",
	circuit.X:   "x",
	circuit.Y:   "y",
	circuit.Z:   "z",
	circuit.H:   "h",
	circuit.S:   "s",
	circuit.Sdg: "sdg",
}

// Export renders c as an OpenQASM 2.0 program, one statement per gate.
func Export(c *circuit.Circuit) string {
	var sb strings.Builder
	sb.WriteString("OPENQASM 2.0;\n")
	sb.WriteString("include \"qelib1.inc\";\n")
	fmt.Fprintf(&sb, "qreg q[%d];\n\n", c.NumQubits())

	for _, g := range c.Gates() {
		switch g := g.(type) {
		case circuit.Single:
			fmt.Fprintf(&sb, "%s q[%d];\n", singleNames[g.Kind], g.Qubit)
		case circuit.CNOT:
			fmt.Fprintf(&sb, "cx q[%d],q[%d];\n", g.Control, g.Target)
		case circuit.CZ:
			fmt.Fprintf(&sb, "cz q[%d],q[%d];\n", g.Control, g.Target)
		case circuit.SWAP:
			fmt.Fprintf(&sb, "swap q[%d],q[%d];\n", g.Qubit1, g.Qubit2)
		}
	}

	return sb.String()
}

// ImportString parses a QASM program held in memory.
func ImportString(src string) (*circuit.Circuit, error) {
	return Import(strings.NewReader(src))
}

// Import parses a QASM program. Exactly one qreg must be declared before
// the first gate. Errors name the offending line.
func Import(r io.Reader) (*circuit.Circuit, error) {
	p := &parser{}

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if i := strings.Index(line, "//"); i >= 0 {
			line = line[:i]
		}
		for _, stmt := range strings.Split(line, ";") {
			stmt = strings.TrimSpace(stmt)
			if stmt == "" {
				continue
			}
			if err := p.statement(stmt); err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading QASM: %w", err)
	}

	if p.circ == nil {
		return nil, ErrNoRegister
	}
	return p.circ, nil
}

type parser struct {
	reg  string
	circ *circuit.Circuit
}

func (p *parser) statement(stmt string) error {
	keyword := strings.ToLower(strings.Fields(stmt)[0])
	switch keyword {
	case "openqasm", "include", "creg", "barrier":
		return nil
	case "qreg":
		return p.declare(stmt)
	case "measure", "reset", "if", "gate", "opaque":
		return fmt.Errorf("%w: %s", ErrUnsupported, keyword)
	}

	if paramGateRegex.MatchString(stmt) {
		return fmt.Errorf("%w: parameterised gate %q", ErrUnsupported, stmt)
	}
	if p.circ == nil {
		return fmt.Errorf("%w before %q", ErrNoRegister, stmt)
	}

	if matches := twoQubitRegex.FindStringSubmatch(stmt); matches != nil {
		a, err := p.operand(matches[2], matches[3])
		if err != nil {
			return err
		}
		b, err := p.operand(matches[4], matches[5])
		if err != nil {
			return err
		}

		switch strings.ToLower(matches[1]) {
		case "cx", "cnot":
			return p.circ.Add(circuit.CNOT{Control: a, Target: b})
		case "cz":
			return p.circ.Add(circuit.CZ{Control: a, Target: b})
		case "swap":
			return p.circ.Add(circuit.SWAP{Qubit1: a, Qubit2: b})
		}
		return fmt.Errorf("%w: two-qubit gate %q", circuit.ErrUnknownGate, matches[1])
	}

	if matches := singleGateRegex.FindStringSubmatch(stmt); matches != nil {
		q, err := p.operand(matches[2], matches[3])
		if err != nil {
			return err
		}
		kind, err := circuit.ParseKind(matches[1])
		if err != nil {
			return err
		}
		return p.circ.Add(circuit.Single{Qubit: q, Kind: kind})
	}

	return fmt.Errorf("%w: %q", ErrSyntax, stmt)
}

func (p *parser) declare(stmt string) error {
	matches := qregRegex.FindStringSubmatch(stmt)
	if matches == nil {
		return fmt.Errorf("%w: %q", ErrSyntax, stmt)
	}
	if p.circ != nil {
		return fmt.Errorf("%w: second qreg %q", ErrUnsupported, matches[1])
	}

	n, err := strconv.Atoi(matches[2])
	if err != nil {
		return fmt.Errorf("%w: qreg size %q", ErrSyntax, matches[2])
	}
	c, err := circuit.New(n)
	if err != nil {
		return err
	}
	p.reg, p.circ = matches[1], c
	return nil
}

func (p *parser) operand(reg, index string) (int, error) {
	if reg != p.reg {
		return 0, fmt.Errorf("%w: unknown register %q", ErrSyntax, reg)
	}
	q, err := strconv.Atoi(index)
	if err != nil {
		return 0, fmt.Errorf("%w: qubit index %q", ErrSyntax, index)
	}
	return q, nil
}
