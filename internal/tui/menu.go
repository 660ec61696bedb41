package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"paulitrace/pkg/circuit"
)

// menuItem is one appendable gate. build receives the cursor qubit and, for
// two-qubit gates, the chosen target.
type menuItem struct {
	name        string
	symbol      string
	mnemonic    string // QASM spelling
	needsTarget bool
	build       func(qubit, target int) circuit.Gate
}

type menuCategory struct {
	name  string
	items []menuItem
}

func singleItem(name, mnemonic string, kind circuit.Kind) menuItem {
	return menuItem{
		name:     name,
		symbol:   kindSymbol(kind),
		mnemonic: mnemonic,
		build: func(qubit, _ int) circuit.Gate {
			return circuit.Single{Qubit: qubit, Kind: kind}
		},
	}
}

var gateMenu = []menuCategory{
	{
		name: "Single Qubit",
		items: []menuItem{
			singleItem("Hadamard", "h", circuit.H),
			singleItem("Pauli-X", "x", circuit.X),
			singleItem("Pauli-Y", "y", circuit.Y),
			singleItem("Pauli-Z", "z", circuit.Z),
			singleItem("Identity", "id", circuit.I),
			singleItem("Phase S", "s", circuit.S),
			singleItem("Phase S†", "sdg", circuit.Sdg),
		},
	},
	{
		name: "Two Qubit",
		items: []menuItem{
			{name: "CNOT", symbol: "●─⊕", mnemonic: "cx", needsTarget: true, build: func(c, t int) circuit.Gate {
				return circuit.CNOT{Control: c, Target: t}
			}},
			{name: "Controlled-Z", symbol: "●─●", mnemonic: "cz", needsTarget: true, build: func(c, t int) circuit.Gate {
				return circuit.CZ{Control: c, Target: t}
			}},
			{name: "SWAP", symbol: "×─×", mnemonic: "swap", needsTarget: true, build: func(a, b int) circuit.Gate {
				return circuit.SWAP{Qubit1: a, Qubit2: b}
			}},
		},
	},
}

// kindSymbol returns the label drawn inside a single-qubit gate box.
func kindSymbol(k circuit.Kind) string {
	if k == circuit.Sdg {
		return "S†"
	}
	return k.String()
}

// renderMenu draws the gate picker popup: category tabs, then one row per
// gate with its symbol and QASM mnemonic.
func (m Model) renderMenu() string {
	tabs := make([]string, len(gateMenu))
	for i, cat := range gateMenu {
		style := dimStyle
		if i == m.menuCat {
			style = activeGateStyle
		}
		tabs[i] = style.Render(" " + cat.name + " ")
	}

	rows := []string{
		titleStyle.Render(fmt.Sprintf("Append Gate on q[%d]", m.cursorQubit)),
		strings.Join(tabs, dimStyle.Render("│")),
		dimStyle.Render(strings.Repeat("─", 34)),
	}

	for i, item := range gateMenu[m.menuCat].items {
		marker, nameStyle, symStyle := "   ", menuNormalStyle, dimStyle
		if i == m.menuItem {
			marker, nameStyle, symStyle = " ▸ ", menuSelectedStyle, gateStyle
		}

		row := menuSelectedStyle.Render(marker) +
			nameStyle.Render(fmt.Sprintf("%-14s", item.name)) +
			symStyle.Render(fmt.Sprintf("%-5s", item.symbol)) +
			dimStyle.Render(fmt.Sprintf("%-5s", item.mnemonic))
		if item.needsTarget {
			row += dimStyle.Render("→ target")
		}
		rows = append(rows, row)
	}

	return menuBorderStyle.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}
