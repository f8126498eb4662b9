package console

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/footprint-tools/verb/internal/dispatchers"
	"github.com/footprint-tools/verb/internal/ui/style"
	"github.com/footprint-tools/verb/internal/usage"
)

func newTestEngine(t *testing.T) *dispatchers.Engine {
	t.Helper()
	e := dispatchers.New()
	e.MustRegister(
		dispatchers.MustCommand(dispatchers.CommandSpec{
			Template: "echo <msg...>",
			Handler: func(ctx *dispatchers.Context) (any, error) {
				return ctx.String("msg", ""), nil
			},
		}),
		dispatchers.MustCommand(dispatchers.CommandSpec{
			Template: "teleport|tp here",
			Handler:  func(*dispatchers.Context) (any, error) { return nil, nil },
		}),
		dispatchers.MustCommand(dispatchers.CommandSpec{
			Template: "teleport|tp <player>",
			Handler: func(ctx *dispatchers.Context) (any, error) {
				return "teleported to " + ctx.String("player", ""), nil
			},
		}),
	)
	return e
}

func newModel(t *testing.T) Model {
	return New(newTestEngine(t), dispatchers.NamedActor("steve"), style.NopStyler{})
}

func press(t *testing.T, m Model, msg tea.KeyMsg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	require.True(t, ok)
	return nm, cmd
}

func typed(m Model, text string) Model {
	m.input.SetValue(text)
	m.input.CursorEnd()
	return m
}

func TestSubmit_PrintsResult(t *testing.T) {
	m := typed(newModel(t), "echo hello there")

	m, cmd := press(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	require.Nil(t, cmd)
	require.Equal(t, []string{"> echo hello there", "hello there"}, m.Scrollback())
	require.Empty(t, m.Value())
}

func TestSubmit_PrintsError(t *testing.T) {
	m := typed(newModel(t), "ehco hi")

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	lines := m.Scrollback()
	require.Len(t, lines, 2)
	require.Contains(t, lines[1], "unknown command 'ehco'")
	require.Contains(t, lines[1], "echo")
}

func TestSubmit_BlankLineIgnored(t *testing.T) {
	m := typed(newModel(t), "   ")

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	require.Empty(t, m.Scrollback())
	require.Empty(t, m.recall)
}

func TestSubmit_QuitWords(t *testing.T) {
	for _, word := range []string{"exit", "quit", "EXIT"} {
		t.Run(word, func(t *testing.T) {
			m := typed(newModel(t), word)

			m, cmd := press(t, m, tea.KeyMsg{Type: tea.KeyEnter})

			require.NotNil(t, cmd)
			require.True(t, m.quitting)
			require.Empty(t, m.View())
		})
	}
}

func TestCtrlC_Quits(t *testing.T) {
	m, cmd := press(t, newModel(t), tea.KeyMsg{Type: tea.KeyCtrlC})

	require.NotNil(t, cmd)
	require.True(t, m.quitting)
}

func TestTab_Completion(t *testing.T) {
	tests := []struct {
		name            string
		input           string
		wantValue       string
		wantSuggestions []string
	}{
		{"single candidate", "ec", "echo ", nil},
		{"shared prefix", "t", "t", []string{"teleport", "tp"}},
		{"nested literal", "tp he", "tp here ", nil},
		{"nothing", "zz", "zz", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := typed(newModel(t), tt.input)

			m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyTab})

			require.Equal(t, tt.wantValue, m.Value())
			require.Equal(t, tt.wantSuggestions, m.Suggestions())
		})
	}
}

func TestRecall(t *testing.T) {
	m := newModel(t)
	for _, line := range []string{"echo one", "echo two"} {
		m = typed(m, line)
		m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	}
	m = typed(m, "draft")

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyUp})
	require.Equal(t, "echo two", m.Value())
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyUp})
	require.Equal(t, "echo one", m.Value())
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyUp})
	require.Equal(t, "echo one", m.Value())

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyDown})
	require.Equal(t, "echo two", m.Value())
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyDown})
	require.Equal(t, "draft", m.Value())
}

func TestScrollbackBounded(t *testing.T) {
	m := newModel(t)
	for i := 0; i < maxScrollback; i++ {
		m.print("line")
	}
	m.print("last")

	require.Len(t, m.Scrollback(), maxScrollback)
	require.Equal(t, "last", m.Scrollback()[maxScrollback-1])
}

type stringer struct{}

func (stringer) String() string { return "custom" }

func TestFormatResult(t *testing.T) {
	tests := []struct {
		name   string
		result any
		want   string
	}{
		{"nil", nil, ""},
		{"string", "hi", "hi"},
		{"lines", []string{"a", "b"}, "a\nb"},
		{"stringer", stringer{}, "custom"},
		{"int", 42, "42"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, FormatResult(tt.result))
		})
	}
}

func TestFormatError(t *testing.T) {
	st := style.NopStyler{}

	require.Equal(t, "error: boom", FormatError(errors.New("boom"), st))
	require.Equal(t,
		"error: unknown command 'zz'\ntype 'help' to list commands",
		FormatError(usage.UnknownCommand("zz"), st))
	require.Equal(t,
		"error: unknown command 'ehco'; did you mean 'echo'?",
		FormatError(usage.UnknownCommand("ehco", "echo"), st))
}

func TestReplaceLastToken(t *testing.T) {
	require.Equal(t, "echo", ReplaceLastToken("ec", "echo"))
	require.Equal(t, "tp here", ReplaceLastToken("tp he", "here"))
	require.Equal(t, "tp here", ReplaceLastToken("tp ", "here"))
}
