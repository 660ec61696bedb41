// Package tui is an interactive terminal stepper: build a Clifford circuit,
// inject Pauli errors and watch them propagate gate by gate.
package tui

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"paulitrace/internal/qasm"
	"paulitrace/pkg/circuit"
	"paulitrace/pkg/pauli"
	"paulitrace/pkg/simulator"
)

// focus represents which panel/mode has keyboard input.
type focus int

const (
	focusCircuit focus = iota
	focusQASM
	focusMenu
	focusSelectTarget
)

// DefaultSavePath is where ctrl+s writes the circuit when no path is set.
const DefaultSavePath = "circuit.qasm"

// Options configures a new Model.
type Options struct {
	// SavePath receives the QASM text on ctrl+s.
	SavePath string
}

// Model represents the TUI application state.
type Model struct {
	circ        *circuit.Circuit // source of truth for the gate list
	sim         *simulator.Simulator
	cursorQubit int
	width       int
	height      int
	qasmEditor  textarea.Model
	help        help.Model
	focus       focus
	lastQASM    string
	statusMsg   string // transient status message (e.g. save confirmation)
	statusErr   bool
	savePath    string

	// Menu state
	menuCat  int
	menuItem int

	// Target-selection state (for two-qubit gates)
	targetQubit int
}

// New returns a model editing a copy of c.
func New(c *circuit.Circuit, opts Options) Model {
	ta := textarea.New()
	ta.Placeholder = "Edit QASM here..."
	ta.SetWidth(40)
	ta.SetHeight(20)
	ta.ShowLineNumbers = true
	ta.KeyMap.InsertNewline.SetEnabled(true)

	if opts.SavePath == "" {
		opts.SavePath = DefaultSavePath
	}

	c = c.Clone()
	m := Model{
		circ:       c,
		sim:        simulator.New(c),
		qasmEditor: ta,
		help:       help.New(),
		focus:      focusCircuit,
		savePath:   opts.SavePath,
	}
	m.syncQASM()
	return m
}

// Run starts the full-screen program and blocks until it exits.
func Run(m Model) error {
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

func (m *Model) syncQASM() {
	text := qasm.Export(m.circ)
	m.qasmEditor.SetValue(text)
	m.lastQASM = text
}

func (m *Model) setStatus(msg string, isErr bool) {
	m.statusMsg = msg
	m.statusErr = isErr
}

// rebuild swaps in a new circuit. The frame injected at time 0 is carried
// over, resized to the new qubit count, and the cursor returns to the
// previous time where the new circuit is deep enough.
func (m *Model) rebuild(c *circuit.Circuit) {
	initial, _ := m.sim.Snapshot(0)
	prevTime := m.sim.CurrentTime()

	carried := pauli.New(c.NumQubits())
	for q := range min(c.NumQubits(), initial.Pattern.NumQubits()) {
		carried.SetPauli(q, initial.Pattern.Pauli(q))
	}
	carried.SetPhase(initial.Pattern.Phase())

	m.circ = c
	m.sim = simulator.New(c)
	if err := m.sim.InjectPattern(carried); err != nil {
		slog.Warn("could not carry injected frame", "error", err)
	}
	m.sim.SeekTo(prevTime)
	m.cursorQubit = min(m.cursorQubit, max(c.NumQubits()-1, 0))

	slog.Debug("circuit rebuilt", "qubits", c.NumQubits(), "depth", c.Depth(), "time", m.sim.CurrentTime())
}

func (m *Model) parseQASMInput() {
	text := m.qasmEditor.Value()
	if text == m.lastQASM {
		return
	}
	m.lastQASM = text

	c, err := qasm.ImportString(text)
	if err != nil {
		m.setStatus(err.Error(), true)
		return
	}
	m.setStatus("", false)
	m.rebuild(c)
}

// appendGate adds g to the end of the circuit and refreshes the editor.
func (m *Model) appendGate(g circuit.Gate) bool {
	c := m.circ.Clone()
	if err := c.Add(g); err != nil {
		m.setStatus(fmt.Sprintf("Cannot append: %v", err), true)
		return false
	}
	m.rebuild(c)
	m.syncQASM()
	m.setStatus(fmt.Sprintf("Appended %s", g), false)
	return true
}

// resize changes the qubit count, dropping gates that touch removed qubits.
func (m *Model) resize(n int) {
	c, err := circuit.New(n)
	if err != nil {
		m.setStatus(err.Error(), true)
		return
	}
	for _, g := range m.circ.Gates() {
		if c.Validate(g) == nil {
			_ = c.Add(g)
		}
	}
	m.rebuild(c)
	m.syncQASM()
}

func (m *Model) inject(p pauli.Single) {
	if m.circ.NumQubits() == 0 {
		return
	}
	m.sim.Inject(m.cursorQubit, p)
	m.setStatus(fmt.Sprintf("Injected %s on q[%d] at t=%d", p, m.cursorQubit, m.sim.CurrentTime()), false)
}

func (m *Model) save() {
	text := qasm.Export(m.circ)
	if err := os.WriteFile(m.savePath, []byte(text), 0644); err != nil {
		m.setStatus(fmt.Sprintf("Save error: %v", err), true)
		return
	}
	slog.Info("saved circuit", "path", m.savePath, "depth", m.circ.Depth())
	m.setStatus("Saved "+m.savePath, false)
}

// firstTarget picks the initial target for a two-qubit gate: the qubit
// below the cursor, or the one above on the last wire.
func (m *Model) firstTarget() int {
	if m.cursorQubit+1 < m.circ.NumQubits() {
		return m.cursorQubit + 1
	}
	return m.cursorQubit - 1
}

// ──────────────────────────── Init / Update ────────────────────────────

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width - 8
		m.qasmEditor.SetWidth(max(msg.Width/3-6, 20))
		m.qasmEditor.SetHeight(max(msg.Height-controlsH-frameH-10, 4))
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, keys.ForceQuit) {
			return m, tea.Quit
		}

		switch m.focus {
		case focusCircuit:
			m.setStatus("", false)
			return m.updateCircuit(msg)
		case focusMenu:
			m.setStatus("", false)
			m.updateMenu(msg)
		case focusSelectTarget:
			m.setStatus("", false)
			m.updateTarget(msg)
		case focusQASM:
			return m.updateEditor(msg)
		}
	}

	return m, nil
}

func (m Model) updateCircuit(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	n := m.circ.NumQubits()

	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, keys.Editor):
		m.focus = focusQASM
		m.qasmEditor.Focus()
	case key.Matches(msg, keys.Up):
		m.cursorQubit = max(m.cursorQubit-1, 0)
	case key.Matches(msg, keys.Down):
		m.cursorQubit = min(m.cursorQubit+1, max(n-1, 0))
	case key.Matches(msg, keys.Back):
		m.sim.StepBackward()
	case key.Matches(msg, keys.Forward):
		m.sim.StepForward()
	case key.Matches(msg, keys.Run):
		m.setStatus(fmt.Sprintf("Ran %d gate(s)", m.sim.Run()), false)
	case key.Matches(msg, keys.Reset):
		m.sim.Reset()
		m.setStatus("Reset", false)
	case key.Matches(msg, keys.InjectX):
		m.inject(pauli.X)
	case key.Matches(msg, keys.InjectY):
		m.inject(pauli.Y)
	case key.Matches(msg, keys.InjectZ):
		m.inject(pauli.Z)
	case key.Matches(msg, keys.Clear):
		m.inject(pauli.I)
	case key.Matches(msg, keys.Grow):
		m.resize(n + 1)
	case key.Matches(msg, keys.Shrink):
		if n > 1 {
			m.resize(n - 1)
		}
	case key.Matches(msg, keys.Append):
		m.focus = focusMenu
		m.menuCat, m.menuItem = 0, 0
	case key.Matches(msg, keys.Drop):
		c := m.circ.Clone()
		if c.RemoveLast() {
			m.rebuild(c)
			m.syncQASM()
		}
	case key.Matches(msg, keys.Save):
		m.save()
	}

	return m, nil
}

// updateMenu moves through the gate picker; ←/→ switch category.
func (m *Model) updateMenu(msg tea.KeyMsg) {
	items := gateMenu[m.menuCat].items

	switch {
	case key.Matches(msg, keys.Cancel):
		m.focus = focusCircuit
	case key.Matches(msg, keys.Up):
		m.menuItem = max(m.menuItem-1, 0)
	case key.Matches(msg, keys.Down):
		m.menuItem = min(m.menuItem+1, len(items)-1)
	case key.Matches(msg, keys.Back):
		if m.menuCat > 0 {
			m.menuCat, m.menuItem = m.menuCat-1, 0
		}
	case key.Matches(msg, keys.Forward):
		if m.menuCat < len(gateMenu)-1 {
			m.menuCat, m.menuItem = m.menuCat+1, 0
		}
	case key.Matches(msg, keys.Confirm):
		item := items[m.menuItem]
		switch {
		case !item.needsTarget:
			if m.appendGate(item.build(m.cursorQubit, -1)) {
				m.focus = focusCircuit
			}
		case m.circ.NumQubits() < 2:
			m.setStatus("Two-qubit gates need at least two qubits", true)
			m.focus = focusCircuit
		default:
			m.targetQubit = m.firstTarget()
			m.focus = focusSelectTarget
		}
	}
}

// updateTarget picks the second qubit of a two-qubit gate. The cursor
// qubit is never offered.
func (m *Model) updateTarget(msg tea.KeyMsg) {
	step := 0
	switch {
	case key.Matches(msg, keys.Cancel):
		m.focus = focusCircuit
		return
	case key.Matches(msg, keys.Confirm):
		item := gateMenu[m.menuCat].items[m.menuItem]
		m.appendGate(item.build(m.cursorQubit, m.targetQubit))
		m.focus = focusCircuit
		return
	case key.Matches(msg, keys.Up):
		step = -1
	case key.Matches(msg, keys.Down):
		step = 1
	default:
		return
	}

	for next := m.targetQubit + step; next >= 0 && next < m.circ.NumQubits(); next += step {
		if next != m.cursorQubit {
			m.targetQubit = next
			return
		}
	}
}

func (m Model) updateEditor(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, keys.Editor) {
		m.focus = focusCircuit
		m.qasmEditor.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.qasmEditor, cmd = m.qasmEditor.Update(msg)
	m.parseQASMInput()
	return m, cmd
}

// View renders the UI.
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	qasmWidth := m.width / 3
	circuitWidth := m.width - qasmWidth - 4
	circuitHeight := max(m.height-controlsH-frameH-2, 6)

	circuitPanel := m.renderCircuitPanel(circuitWidth, circuitHeight)
	qasmPanel := m.renderQASMPanel(qasmWidth, circuitHeight)
	framePanel := m.renderFramePanel(m.width-4, frameH-2)
	controlsPanel := m.renderControlsPanel(m.width-4, controlsH-2)

	topRow := lipgloss.JoinHorizontal(lipgloss.Top, circuitPanel, qasmPanel)
	frame := lipgloss.JoinVertical(lipgloss.Left, topRow, framePanel, controlsPanel)

	if m.focus == focusMenu {
		frame = overlayAt(frame, m.renderMenu(), 2, 2)
	}

	return frame
}
