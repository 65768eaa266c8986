package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/jaminalder/codex-connect-three/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestModel(t *testing.T) (Model, *domain.Game) {
	t.Helper()
	g, err := domain.New("Alice", "Bob")
	require.NoError(t, err)
	return New(g, Options{GlamourStyle: "notty"}), g
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func send(t *testing.T, m Model, msgs ...tea.Msg) Model {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		var ok bool
		m, ok = next.(Model)
		require.True(t, ok)
	}
	return m
}

func TestColumnKeyDropsChip(t *testing.T) {
	m, g := newTestModel(t)
	m = send(t, m, runes("3"))

	cell, err := g.CellAt(domain.Rows-1, 2)
	require.NoError(t, err)
	assert.Equal(t, domain.PlayerOne, cell)
	assert.Equal(t, "Bob's turn", m.Status())
}

func TestCursorDrop(t *testing.T) {
	m, g := newTestModel(t)
	start := m.cursor
	m = send(t, m,
		tea.KeyMsg{Type: tea.KeyLeft},
		tea.KeyMsg{Type: tea.KeyLeft},
		tea.KeyMsg{Type: tea.KeyRight},
		tea.KeyMsg{Type: tea.KeyEnter},
	)
	cell, _ := g.CellAt(domain.Rows-1, start-1)
	assert.Equal(t, domain.PlayerOne, cell)
	assert.Equal(t, start-1, m.cursor)
}

func TestCursorClamps(t *testing.T) {
	m, _ := newTestModel(t)
	for i := 0; i < domain.Cols+2; i++ {
		m = send(t, m, tea.KeyMsg{Type: tea.KeyRight})
	}
	assert.Equal(t, domain.Cols-1, m.cursor)
	for i := 0; i < domain.Cols+2; i++ {
		m = send(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	}
	assert.Equal(t, 0, m.cursor)
}

func TestFullColumnMessage(t *testing.T) {
	m, _ := newTestModel(t)
	for i := 0; i < domain.Rows; i++ {
		m = send(t, m, runes("1"))
	}
	m = send(t, m, runes("1"))
	assert.True(t, m.failed)
	assert.Equal(t, "Column is full! Choose another column.", m.message)
	assert.Contains(t, m.View(), "Column is full!")
}

func TestWinAndReset(t *testing.T) {
	m, g := newTestModel(t)
	m = send(t, m, runes("1"), runes("7"), runes("2"), runes("7"), runes("3"))
	assert.True(t, g.Over())
	assert.Equal(t, "Alice wins!", m.Status())
	assert.Contains(t, m.message, "Alice wins!")

	m = send(t, m, runes("4"))
	assert.Contains(t, m.message, "Game over")

	m = send(t, m, runes("r"))
	assert.False(t, g.Over())
	assert.Equal(t, 0, g.Moves())
	assert.Equal(t, "Alice's turn", m.Status())
}

func TestUndoAndSwitchKeys(t *testing.T) {
	m, g := newTestModel(t)
	m = send(t, m, runes("u"))
	assert.Equal(t, "There's nothing to undo.", m.message)

	m = send(t, m, runes("s"))
	assert.Equal(t, "Bob", g.CurrentPlayer().Name)

	m = send(t, m, runes("5"), runes("u"))
	assert.Equal(t, domain.Board{}, g.Board())
	assert.Equal(t, "Bob", g.CurrentPlayer().Name)
	assert.False(t, m.failed)
}

func TestQuit(t *testing.T) {
	m, _ := newTestModel(t)
	next, cmd := m.Update(runes("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.Empty(t, next.View())
}

func TestViewRendersBoardAndInstructions(t *testing.T) {
	m, _ := newTestModel(t)
	m = send(t, m, tea.WindowSizeMsg{Width: 100, Height: 40}, runes("4"))
	out := m.View()
	assert.Contains(t, out, "Connect Three Game - Bob's turn")
	assert.Contains(t, out, "Instructions")
	assert.Contains(t, out, "Alice")
	assert.Contains(t, out, " 1 2 3 4 5 6 7")
	assert.Equal(t, 1, strings.Count(out, chipGlyph)-3, "one chip on the board plus three legend chips")
}

func TestHelpToggle(t *testing.T) {
	m, _ := newTestModel(t)
	assert.False(t, m.help.ShowAll)
	m = send(t, m, runes("?"))
	assert.True(t, m.help.ShowAll)
	assert.Contains(t, m.View(), "switch player")
}

func TestValidateName(t *testing.T) {
	v := validateName("Player 1")
	assert.NoError(t, v("Alice"))
	assert.EqualError(t, v("  "), "Player 1's name cannot be empty. Please enter a name.")
}
