// Package circuitfile encodes circuits as structured JSON or YAML documents.
//
// The document shape tags each gate with its variant name:
//
//	{"num_qubits": 2, "gates": [
//	  {"Single": {"qubit": 0, "gate": "H"}},
//	  {"Two": {"CNOT": {"control": 0, "target": 1}}}
//	]}
//
// Decoded circuits are rebuilt through circuit.Add, so every document that
// decodes without error describes a valid circuit.
package circuitfile

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"paulitrace/pkg/circuit"
)

var ErrMalformedGate = errors.New("gate entry must hold exactly one variant")

type document struct {
	NumQubits int        `json:"num_qubits" yaml:"num_qubits"`
	Gates     []gateNode `json:"gates" yaml:"gates"`
}

type gateNode struct {
	Single *singleNode `json:"Single,omitempty" yaml:"Single,omitempty"`
	Two    *twoNode    `json:"Two,omitempty" yaml:"Two,omitempty"`
}

type singleNode struct {
	Qubit int    `json:"qubit" yaml:"qubit"`
	Gate  string `json:"gate" yaml:"gate"`
}

type twoNode struct {
	CNOT *controlledNode `json:"CNOT,omitempty" yaml:"CNOT,omitempty"`
	CZ   *controlledNode `json:"CZ,omitempty" yaml:"CZ,omitempty"`
	SWAP *swapNode       `json:"SWAP,omitempty" yaml:"SWAP,omitempty"`
}

type controlledNode struct {
	Control int `json:"control" yaml:"control"`
	Target  int `json:"target" yaml:"target"`
}

type swapNode struct {
	Qubit1 int `json:"qubit1" yaml:"qubit1"`
	Qubit2 int `json:"qubit2" yaml:"qubit2"`
}

func fromCircuit(c *circuit.Circuit) document {
	doc := document{NumQubits: c.NumQubits(), Gates: make([]gateNode, 0, c.Depth())}
	for _, g := range c.Gates() {
		var node gateNode
		switch g := g.(type) {
		case circuit.Single:
			node.Single = &singleNode{Qubit: g.Qubit, Gate: g.Kind.String()}
		case circuit.CNOT:
			node.Two = &twoNode{CNOT: &controlledNode{Control: g.Control, Target: g.Target}}
		case circuit.CZ:
			node.Two = &twoNode{CZ: &controlledNode{Control: g.Control, Target: g.Target}}
		case circuit.SWAP:
			node.Two = &twoNode{SWAP: &swapNode{Qubit1: g.Qubit1, Qubit2: g.Qubit2}}
		}
		doc.Gates = append(doc.Gates, node)
	}
	return doc
}

func (doc document) toCircuit() (*circuit.Circuit, error) {
	c, err := circuit.New(doc.NumQubits)
	if err != nil {
		return nil, err
	}
	for i, node := range doc.Gates {
		g, err := node.gate()
		if err == nil {
			err = c.Add(g)
		}
		if err != nil {
			return nil, fmt.Errorf("gate %d: %w", i, err)
		}
	}
	return c, nil
}

func (n gateNode) gate() (circuit.Gate, error) {
	switch {
	case n.Single != nil && n.Two == nil:
		kind, err := circuit.ParseKind(n.Single.Gate)
		if err != nil {
			return nil, err
		}
		return circuit.Single{Qubit: n.Single.Qubit, Kind: kind}, nil
	case n.Two != nil && n.Single == nil:
		return n.Two.gate()
	}
	return nil, ErrMalformedGate
}

func (n twoNode) gate() (circuit.Gate, error) {
	var set int
	var g circuit.Gate
	if n.CNOT != nil {
		set++
		g = circuit.CNOT{Control: n.CNOT.Control, Target: n.CNOT.Target}
	}
	if n.CZ != nil {
		set++
		g = circuit.CZ{Control: n.CZ.Control, Target: n.CZ.Target}
	}
	if n.SWAP != nil {
		set++
		g = circuit.SWAP{Qubit1: n.SWAP.Qubit1, Qubit2: n.SWAP.Qubit2}
	}
	if set != 1 {
		return nil, ErrMalformedGate
	}
	return g, nil
}

// EncodeJSON writes c as indented JSON.
func EncodeJSON(w io.Writer, c *circuit.Circuit) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(fromCircuit(c))
}

// DecodeJSON reads a JSON circuit document.
func DecodeJSON(r io.Reader) (*circuit.Circuit, error) {
	var doc document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decoding circuit JSON: %w", err)
	}
	return doc.toCircuit()
}

// EncodeYAML writes c as a YAML document with the same shape as the JSON
// form.
func EncodeYAML(w io.Writer, c *circuit.Circuit) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(fromCircuit(c)); err != nil {
		return err
	}
	return enc.Close()
}

// DecodeYAML reads a YAML circuit document.
func DecodeYAML(r io.Reader) (*circuit.Circuit, error) {
	var doc document
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decoding circuit YAML: %w", err)
	}
	return doc.toCircuit()
}
