// Package console runs an interactive prompt against a dispatcher.
package console

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/footprint-tools/verb/internal/dispatchers"
	"github.com/footprint-tools/verb/internal/domain"
	"github.com/footprint-tools/verb/internal/usage"
)

// Dispatcher is what the console drives.
type Dispatcher interface {
	Dispatch(actor dispatchers.Actor, input string) (any, error)
	Suggest(actor dispatchers.Actor, input string) []string
}

const maxScrollback = 200

var quitWords = map[string]bool{"exit": true, "quit": true}

// Run starts the prompt and blocks until the user quits.
func Run(in io.Reader, out io.Writer, d Dispatcher, actor dispatchers.Actor, st domain.Styler) error {
	p := tea.NewProgram(New(d, actor, st), tea.WithInput(in), tea.WithOutput(out))
	_, err := p.Run()
	return err
}

// Model is the console's bubbletea model.
type Model struct {
	dispatcher Dispatcher
	actor      dispatchers.Actor
	styler     domain.Styler
	input      textinput.Model
	help       help.Model

	scrollback  []string
	suggestions []string

	// recall holds submitted lines; recallAt indexes into it while browsing.
	recall   []string
	recallAt int
	draft    string

	quitting bool
}

// New builds a focused console model.
func New(d Dispatcher, actor dispatchers.Actor, st domain.Styler) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "type a command, Tab to complete"
	ti.Focus()

	return Model{
		dispatcher: d,
		actor:      actor,
		styler:     st,
		input:      ti,
		help:       help.New(),
	}
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.input.Width = msg.Width - len(m.input.Prompt) - 1
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyCtrlD:
			m.quitting = true
			return m, tea.Quit
		case tea.KeyEnter:
			return m.submit()
		case tea.KeyTab:
			m.complete()
			return m, nil
		case tea.KeyUp:
			m.recallPrev()
			return m, nil
		case tea.KeyDown:
			m.recallNext()
			return m, nil
		case tea.KeyEsc:
			m.input.Reset()
			m.suggestions = nil
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) submit() (tea.Model, tea.Cmd) {
	line := strings.TrimSpace(m.input.Value())
	m.input.Reset()
	m.suggestions = nil
	if line == "" {
		return m, nil
	}

	m.recall = append(m.recall, line)
	m.recallAt = len(m.recall)
	m.draft = ""

	if quitWords[strings.ToLower(line)] {
		m.quitting = true
		return m, tea.Quit
	}

	m.print(m.styler.Muted(m.input.Prompt + line))
	result, err := m.dispatcher.Dispatch(m.actor, line)
	if err != nil {
		m.print(FormatError(err, m.styler))
		return m, nil
	}
	if out := FormatResult(result); out != "" {
		m.print(out)
	}
	return m, nil
}

// complete fills in a sole candidate or lists all of them.
func (m *Model) complete() {
	value := m.input.Value()
	candidates := m.dispatcher.Suggest(m.actor, value)
	switch len(candidates) {
	case 0:
		m.suggestions = nil
	case 1:
		m.input.SetValue(ReplaceLastToken(value, candidates[0]) + " ")
		m.input.CursorEnd()
		m.suggestions = nil
	default:
		m.suggestions = candidates
		if prefix := commonPrefix(candidates); prefix != "" {
			m.input.SetValue(ReplaceLastToken(value, prefix))
			m.input.CursorEnd()
		}
	}
}

func (m *Model) recallPrev() {
	if len(m.recall) == 0 || m.recallAt == 0 {
		return
	}
	if m.recallAt == len(m.recall) {
		m.draft = m.input.Value()
	}
	m.recallAt--
	m.input.SetValue(m.recall[m.recallAt])
	m.input.CursorEnd()
}

func (m *Model) recallNext() {
	if m.recallAt >= len(m.recall) {
		return
	}
	m.recallAt++
	if m.recallAt == len(m.recall) {
		m.input.SetValue(m.draft)
	} else {
		m.input.SetValue(m.recall[m.recallAt])
	}
	m.input.CursorEnd()
}

func (m *Model) print(text string) {
	m.scrollback = append(m.scrollback, strings.Split(text, "\n")...)
	if over := len(m.scrollback) - maxScrollback; over > 0 {
		m.scrollback = m.scrollback[over:]
	}
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	for _, line := range m.scrollback {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	b.WriteString(m.input.View())
	b.WriteByte('\n')
	if len(m.suggestions) > 0 {
		b.WriteString(m.styler.Info(strings.Join(m.suggestions, "  ")))
		b.WriteByte('\n')
	}
	b.WriteString(m.help.ShortHelpView(keyHelp))
	return b.String()
}

var keyHelp = []key.Binding{
	key.NewBinding(key.WithKeys("enter"), key.WithHelp("Enter", "run")),
	key.NewBinding(key.WithKeys("tab"), key.WithHelp("Tab", "complete")),
	key.NewBinding(key.WithKeys("up", "down"), key.WithHelp("↑↓", "recall")),
	key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("Ctrl+C", "quit")),
}

// Scrollback returns the printed lines, oldest first.
func (m Model) Scrollback() []string {
	return m.scrollback
}

// Suggestions returns the candidates shown below the prompt.
func (m Model) Suggestions() []string {
	return m.suggestions
}

// Value returns the current prompt text.
func (m Model) Value() string {
	return m.input.Value()
}

// FormatResult renders a handler's return value. Nil prints nothing.
func FormatResult(result any) string {
	switch v := result.(type) {
	case nil:
		return ""
	case string:
		return v
	case []string:
		return strings.Join(v, "\n")
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}

// FormatError renders a dispatch failure with its hints.
func FormatError(err error, st domain.Styler) string {
	var uerr *usage.Error
	if !errors.As(err, &uerr) {
		return st.Error("error: " + err.Error())
	}

	msg := st.Error("error: " + uerr.Message)
	if uerr.Kind == usage.ErrUnknownCommand && len(uerr.Suggestions) == 0 {
		msg += "\n" + st.Muted("type 'help' to list commands")
	}
	return msg
}

// ReplaceLastToken swaps the partial word at the end of line for word.
// A line ending in whitespace has no partial word, so word is appended.
func ReplaceLastToken(line, word string) string {
	cut := strings.LastIndexAny(line, " \t")
	return line[:cut+1] + word
}

func commonPrefix(words []string) string {
	if len(words) == 0 {
		return ""
	}
	prefix := words[0]
	for _, w := range words[1:] {
		for !strings.HasPrefix(w, prefix) {
			prefix = prefix[:len(prefix)-1]
			if prefix == "" {
				return ""
			}
		}
	}
	return prefix
}
