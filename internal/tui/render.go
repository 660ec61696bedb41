package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"paulitrace/internal/report"
	"paulitrace/pkg/circuit"
	"paulitrace/pkg/pauli"
	"paulitrace/pkg/simulator"
)

// ──────────────────────────── Grid layout ────────────────────────────

type cellRole int

const (
	roleWire cellRole = iota
	roleBox
	roleControl
	roleTarget
	roleSwap
	rolePass
)

// cellInfo describes what occupies a single cell in the circuit grid.
type cellInfo struct {
	role      cellRole
	label     string
	vertAbove bool
	vertBelow bool
}

// cellAt returns what gate g draws on qubit q. A nil gate is an empty column.
func cellAt(g circuit.Gate, q int) cellInfo {
	var a, b int
	var roleA, roleB cellRole

	switch g := g.(type) {
	case circuit.Single:
		if g.Qubit == q {
			return cellInfo{role: roleBox, label: kindSymbol(g.Kind)}
		}
		return cellInfo{}
	case circuit.CNOT:
		a, b, roleA, roleB = g.Control, g.Target, roleControl, roleTarget
	case circuit.CZ:
		a, b, roleA, roleB = g.Control, g.Target, roleControl, roleControl
	case circuit.SWAP:
		a, b, roleA, roleB = g.Qubit1, g.Qubit2, roleSwap, roleSwap
	default:
		return cellInfo{}
	}

	lo, hi := min(a, b), max(a, b)
	switch {
	case q == a:
		return cellInfo{role: roleA, vertAbove: q > lo, vertBelow: q < hi}
	case q == b:
		return cellInfo{role: roleB, vertAbove: q > lo, vertBelow: q < hi}
	case q > lo && q < hi:
		return cellInfo{role: rolePass, vertAbove: true, vertBelow: true}
	}
	return cellInfo{}
}

func (c cellInfo) symbol() string {
	switch c.role {
	case roleControl:
		return "●"
	case roleTarget:
		return "⊕"
	case roleSwap:
		return "×"
	case rolePass:
		return "┼"
	}
	return "─"
}

// ──────────────────────────── Rendering helpers ────────────────────────────

// padCenter centres a string within the given visual width.
func padCenter(s string, width int) string {
	w := ansi.StringWidth(s)
	if w >= width {
		return ansi.Truncate(s, width, "")
	}
	left := (width - w) / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", width-w-left)
}

type cellHighlight int

const (
	hlNone cellHighlight = iota
	hlCursor
	hlTargetSelect
)

// renderCell returns 3 lines (top, mid, bot) for a single cell, each cellW
// visual characters wide. Wire segments are drawn in the wire style.
func renderCell(info cellInfo, hl cellHighlight, wire lipgloss.Style) (top, mid, bot string) {
	dash := func(n int) string { return wire.Render(strings.Repeat("─", n)) }

	if hl == hlCursor || hl == hlTargetSelect {
		bdr := cursorBoxStyle
		if hl == hlTargetSelect {
			bdr = targetSelectStyle
		}
		innerW := cellW - 2
		dashL := (innerW - 1) / 2
		dashR := innerW - dashL - 1

		top = bdr.Render("╔" + strings.Repeat("═", innerW) + "╗")
		bot = bdr.Render("╚" + strings.Repeat("═", innerW) + "╝")

		switch info.role {
		case roleWire:
			mid = bdr.Render("║") + dash(innerW) + bdr.Render("║")
		case roleBox:
			mid = bdr.Render("║") + dash(1) + "┤" + gateStyle.Render(padCenter(info.label, gateNameW)) + "├" + dash(1) + bdr.Render("║")
		default:
			mid = bdr.Render("║") + dash(dashL) + gateStyle.Render(info.symbol()) + dash(dashR) + bdr.Render("║")
		}
		return
	}

	emptyRow := strings.Repeat(" ", cellW)
	halfW := cellW / 2
	vertRow := strings.Repeat(" ", halfW) + "│" + strings.Repeat(" ", cellW-halfW-1)

	top, bot = emptyRow, emptyRow
	if info.vertAbove {
		top = vertRow
	}
	if info.vertBelow {
		bot = vertRow
	}

	dashL := (cellW - 1) / 2
	dashR := cellW - dashL - 1

	switch info.role {
	case roleWire:
		mid = dash(cellW)
	case roleBox:
		margin := (cellW - gateBoxW) / 2
		rightMargin := cellW - margin - gateBoxW
		top = strings.Repeat(" ", margin) + gateStyle.Render("┌"+strings.Repeat("─", gateNameW)+"┐") + strings.Repeat(" ", rightMargin)
		mid = dash(margin) + gateStyle.Render("┤"+padCenter(info.label, gateNameW)+"├") + dash(rightMargin)
		bot = strings.Repeat(" ", margin) + gateStyle.Render("└"+strings.Repeat("─", gateNameW)+"┘") + strings.Repeat(" ", rightMargin)
	case rolePass:
		mid = dash(dashL) + "┼" + dash(dashR)
	default:
		mid = dash(dashL) + gateStyle.Render(info.symbol()) + dash(dashR)
	}
	return
}

// wireStyle colours qubit q's wire in column t by the frame entering that
// column. Columns the simulator has not reached yet stay plain.
func wireStyle(timeline []simulator.Snapshot, t, q int) lipgloss.Style {
	if t >= len(timeline) {
		return plainWireStyle
	}
	return pauliStyles[timeline[t].Pattern.Pauli(q)]
}

// colourPattern renders each component of p in its wire colour.
func colourPattern(p pauli.String) string {
	var sb strings.Builder
	for q := range p.NumQubits() {
		if q > 0 {
			sb.WriteByte(' ')
		}
		s := p.Pauli(q)
		sb.WriteString(pauliStyles[s].Render(s.String()))
	}
	return sb.String()
}

// ──────────────────────────── Panel rendering ────────────────────────────

// renderCircuitPanel renders the circuit grid panel. Column t holds gate t;
// the extra last column is where the next appended gate lands.
func (m Model) renderCircuitPanel(width, height int) string {
	var sb strings.Builder

	sb.WriteString(titleStyle.Render("Clifford Circuit"))
	sb.WriteString("\n\n")

	gates := m.circ.Gates()
	timeline := m.sim.Timeline()
	columns := len(gates) + 1

	focusCol := m.sim.CurrentTime()
	if m.focus == focusSelectTarget {
		focusCol = len(gates)
	}

	availWidth := width - labelVisualW - 4
	maxSteps := max(availWidth/cellW, 1)

	startStep := 0
	if focusCol >= maxSteps {
		startStep = focusCol - maxSteps + 1
	}
	endStep := min(startStep+maxSteps, columns)

	if startStep > 0 {
		fmt.Fprintf(&sb, "  ◀ showing steps %d–%d\n", startStep, endStep-1)
	}

	header := strings.Repeat(" ", labelVisualW)
	for step := startStep; step < endStep; step++ {
		label := padCenter(fmt.Sprintf("%d", step), cellW)
		if step == m.sim.CurrentTime() {
			header += activeGateStyle.Render(label)
		} else {
			header += dimStyle.Render(label)
		}
	}
	sb.WriteString(header + "\n")

	live := m.sim.ErrorPattern()
	for qubit := range m.circ.NumQubits() {
		topLine := strings.Repeat(" ", labelVisualW)
		p := live.Pauli(qubit)
		midLine := qubitLabelStyle.Render(fmt.Sprintf("%-5s", fmt.Sprintf("q[%d]", qubit))) +
			pauliStyles[p].Render(p.String()) + " ──"
		botLine := strings.Repeat(" ", labelVisualW)

		for step := startStep; step < endStep; step++ {
			var info cellInfo
			if step < len(gates) {
				info = cellAt(gates[step], qubit)
			}

			hl := hlNone
			switch m.focus {
			case focusCircuit, focusMenu:
				if step == focusCol && qubit == m.cursorQubit {
					hl = hlCursor
				}
			case focusSelectTarget:
				if step == focusCol && qubit == m.cursorQubit {
					hl = hlCursor
				} else if step == focusCol && qubit == m.targetQubit {
					hl = hlTargetSelect
				}
			}

			top, mid, bot := renderCell(info, hl, wireStyle(timeline, step, qubit))
			topLine += top
			midLine += mid
			botLine += bot
		}

		sb.WriteString(topLine + "\n")
		sb.WriteString(midLine + "\n")
		sb.WriteString(botLine + "\n")
	}

	if m.focus == focusSelectTarget {
		item := gateMenu[m.menuCat].items[m.menuItem]
		sb.WriteString("\n")
		fmt.Fprintf(&sb, "  %s", activeGateStyle.Render(item.name))
		sb.WriteString("  Select target qubit: ")
		sb.WriteString(targetSelectStyle.Render(fmt.Sprintf("q[%d]", m.targetQubit)))
		sb.WriteString(dimStyle.Render("   ↑↓ Move  Enter Confirm  Esc Cancel"))
	} else {
		fmt.Fprintf(&sb, "\n  Time %d/%d, Qubit %d", m.sim.CurrentTime(), m.sim.Depth(), m.cursorQubit)
		if m.statusMsg != "" {
			style := activeGateStyle
			if m.statusErr {
				style = errorStyle
			}
			fmt.Fprintf(&sb, "  │  %s", style.Render(m.statusMsg))
		}
	}

	return circuitStyle.Width(width).Height(height).Render(sb.String())
}

// renderQASMPanel renders the QASM editor panel.
func (m Model) renderQASMPanel(width, height int) string {
	var sb strings.Builder

	title := "QASM Editor"
	if m.focus == focusQASM {
		title += " [ACTIVE]"
	}
	sb.WriteString(titleStyle.Render(title))
	sb.WriteString("\n\n")
	sb.WriteString(m.qasmEditor.View())

	return qasmStyle.Width(width).Height(height).Render(sb.String())
}

// recentSnapshots is how many timeline entries the frame panel lists.
const recentSnapshots = 4

// renderFramePanel shows the live error frame and the tail of the timeline.
func (m Model) renderFramePanel(width, height int) string {
	var sb strings.Builder

	live := m.sim.ErrorPattern()
	sb.WriteString(titleStyle.Render("Error Frame"))
	sb.WriteString(dimStyle.Render(fmt.Sprintf("  t=%d/%d", m.sim.CurrentTime(), m.sim.Depth())))
	sb.WriteString("\n")

	fmt.Fprintf(&sb, "%s %s   weight %d",
		activeGateStyle.Render(report.PhaseLabel(live.Phase())), colourPattern(live), live.Weight())
	if support := live.Support(); len(support) > 0 {
		fmt.Fprintf(&sb, "   support %v", support)
	}
	sb.WriteString("\n")

	timeline := m.sim.Timeline()
	start := max(len(timeline)-recentSnapshots, 0)
	for _, snap := range timeline[start:] {
		gate := "inject"
		if idx, ok := snap.Applied(); ok {
			gate = m.circ.Gate(idx).String()
		}
		fmt.Fprintf(&sb, "%s %-12s %s %s\n",
			dimStyle.Render(fmt.Sprintf("t=%-3d", snap.Time)),
			gate,
			report.PhaseLabel(snap.Pattern.Phase()),
			snap.Pattern.Compact())
	}

	return frameStyle.Width(width).Height(height).Render(strings.TrimRight(sb.String(), "\n"))
}

// Bindings shown while a popup or the editor has focus.
var (
	pickerHelp = []key.Binding{keys.Up, keys.Down, keys.Confirm, keys.Cancel}
	editorHelp = []key.Binding{
		key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "back to circuit")),
		key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("^C", "quit")),
	}
)

// renderControlsPanel renders the key help for the focused panel.
func (m Model) renderControlsPanel(width, height int) string {
	var view string
	switch m.focus {
	case focusCircuit:
		view = m.help.FullHelpView(keys.FullHelp())
	case focusQASM:
		view = m.help.ShortHelpView(editorHelp)
	default:
		view = m.help.ShortHelpView(pickerHelp)
	}
	return controlsStyle.Width(width).Height(height).Render(view)
}

// ──────────────────────────── Overlay helpers ────────────────────────────

// overlayAt composites the overlay string on top of the background at
// visible position (x, y), keeping the background's escape sequences intact.
func overlayAt(bg, overlay string, x, y int) string {
	bgLines := strings.Split(bg, "\n")

	for i, ovLine := range strings.Split(overlay, "\n") {
		row := y + i
		if row < 0 || row >= len(bgLines) {
			continue
		}
		line := bgLines[row]

		left := ansi.Truncate(line, x, "")
		if w := ansi.StringWidth(left); w < x {
			left += strings.Repeat(" ", x-w)
		}
		right := ansi.TruncateLeft(line, x+ansi.StringWidth(ovLine), "")
		bgLines[row] = left + ovLine + right
	}
	return strings.Join(bgLines, "\n")
}
