package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap holds every binding the stepper reacts to. It doubles as the
// help.KeyMap rendered in the controls panel.
type keyMap struct {
	Up, Down         key.Binding
	Back, Forward    key.Binding
	Run, Reset       key.Binding
	InjectX, InjectY key.Binding
	InjectZ, Clear   key.Binding
	Grow, Shrink     key.Binding
	Append, Drop     key.Binding
	Editor, Save     key.Binding
	Confirm, Cancel  key.Binding
	Quit, ForceQuit  key.Binding
}

var keys = keyMap{
	Up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "qubit up")),
	Down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "qubit down")),
	Back:    key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "undo gate")),
	Forward: key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "apply gate")),
	Run:     key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "run to end")),
	Reset:   key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("^R", "reset")),
	InjectX: key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "inject X")),
	InjectY: key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "inject Y")),
	InjectZ: key.NewBinding(key.WithKeys("z"), key.WithHelp("z", "inject Z")),
	Clear:   key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "clear qubit")),
	Grow:    key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "add qubit")),
	Shrink:  key.NewBinding(key.WithKeys("-"), key.WithHelp("-", "remove qubit")),
	Append:  key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "append gate")),
	Drop:    key.NewBinding(key.WithKeys("backspace", "delete"), key.WithHelp("bksp", "drop last")),
	Editor:  key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "QASM editor")),
	Save:    key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("^S", "save")),
	Confirm: key.NewBinding(key.WithKeys("enter"), key.WithHelp("⏎", "confirm")),
	Cancel:  key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
	Quit:    key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),

	ForceQuit: key.NewBinding(key.WithKeys("ctrl+c")),
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Forward, k.Back, k.Append, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Forward, k.Back},
		{k.Run, k.Reset, k.Grow, k.Shrink},
		{k.InjectX, k.InjectY, k.InjectZ, k.Clear},
		{k.Append, k.Drop, k.Editor, k.Save, k.Quit},
	}
}
