// Package prompt collects the free-text Labels value from the user, with an
// interactive text-input UI on terminals and a plain line read everywhere else.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// ErrCanceled is returned when the user aborts the interactive prompt.
var ErrCanceled = errors.New("prompt: canceled")

// question is the Labels prompt shown in both interactive and plain modes.
const question = "Label for this contact group (empty for none):"

var (
	questionStyle = lipgloss.NewStyle().Bold(true)
	hintStyle     = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "240", Dark: "245"})
)

// Model is the Bubble Tea model for the Labels prompt.
type Model struct {
	input    textinput.Model
	done     bool
	canceled bool
}

// NewModel creates a prompt model with an empty, focused text input.
func NewModel() Model {
	ti := textinput.New()
	ti.Placeholder = "e.g. ПМ-35 or MyGroup"
	ti.Focus()
	return Model{input: ti}
}

// Init starts the cursor blink.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles key input. Enter accepts the current value (empty is fine);
// Esc and Ctrl+C cancel.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "enter":
			m.done = true
			return m, tea.Quit
		case "esc", "ctrl+c":
			m.canceled = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View renders the question, the input line, and a key hint.
func (m Model) View() string {
	if m.done || m.canceled {
		return ""
	}
	return questionStyle.Render(question) + "\n" +
		m.input.View() + "\n" +
		hintStyle.Render("enter: accept · esc: cancel") + "\n"
}

// Value returns the accepted label text.
func (m Model) Value() string {
	return m.input.Value()
}

// Canceled reports whether the prompt was aborted.
func (m Model) Canceled() bool {
	return m.canceled
}

// ReadLine reads a single line from r, used when stdin is not a terminal.
// EOF before any input yields an empty label, not an error.
func ReadLine(r io.Reader) (string, error) {
	br := bufio.NewReader(r)
	line, err := br.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("prompt: reading label: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// AskPlain prints the question to out and reads one line from in.
func AskPlain(in io.Reader, out io.Writer) (string, error) {
	_, _ = fmt.Fprintf(out, "%s ", question)
	return ReadLine(in)
}

// Ask obtains the Labels value from the user. On a terminal it runs the
// interactive model; otherwise it falls back to AskPlain.
func Ask(in *os.File, out *os.File) (string, error) {
	if !isTTY(in) || !isTTY(out) {
		return AskPlain(in, out)
	}

	prog := tea.NewProgram(NewModel(), tea.WithInput(in), tea.WithOutput(out))
	final, err := prog.Run()
	if err != nil {
		return "", fmt.Errorf("prompt: %w", err)
	}
	m := final.(Model)
	if m.Canceled() {
		return "", ErrCanceled
	}
	return m.Value(), nil
}

// isTTY reports whether f is connected to a terminal.
func isTTY(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
