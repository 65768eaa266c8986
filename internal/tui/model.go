// Package tui is the terminal shell. It owns no game rules: every action is
// forwarded to a domain.Game from the bubbletea update loop, which is the
// game's only writer.
package tui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/jaminalder/codex-connect-three/internal/domain"
)

const instructionsMarkdown = `## Instructions

1. Press a column number (or move with the arrows and press enter) to drop your chip.
2. Connect three chips in a row (horizontally, vertically, or diagonally) to win.
3. You can undo your last move with **u**.
`

// Options tunes the terminal shell.
type Options struct {
	// GlamourStyle names the glamour style for the instructions panel.
	// Empty means "dark".
	GlamourStyle string
	// Logger receives game events. Nil discards them.
	Logger *slog.Logger
}

// Model is the bubbletea model of one terminal session.
type Model struct {
	game         *domain.Game
	keys         keyMap
	help         help.Model
	log          *slog.Logger
	instructions string
	cursor       int
	message      string
	failed       bool
	quitting     bool
}

// New returns a model driving g.
func New(g *domain.Game, opts Options) Model {
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
	if opts.GlamourStyle == "" {
		opts.GlamourStyle = "dark"
	}
	return Model{
		game:         g,
		keys:         defaultKeyMap(),
		help:         help.New(),
		log:          opts.Logger,
		instructions: renderInstructions(opts.GlamourStyle, 72),
		cursor:       domain.Cols / 2,
	}
}

func renderInstructions(style string, width int) string {
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return instructionsMarkdown
	}
	out, err := r.Render(instructionsMarkdown)
	if err != nil {
		return instructionsMarkdown
	}
	return out
}

// Run starts the program and blocks until the players quit or ctx is done.
func Run(ctx context.Context, g *domain.Game, opts Options) error {
	p := tea.NewProgram(New(g, opts), tea.WithContext(ctx), tea.WithAltScreen())
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Column):
		m.cursor = int(msg.String()[0] - '1')
		m.drop(m.cursor)
	case key.Matches(msg, m.keys.Drop):
		m.drop(m.cursor)
	case key.Matches(msg, m.keys.Left):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Right):
		if m.cursor < domain.Cols-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Undo):
		m.report(m.game.Undo(), "Move undone.")
	case key.Matches(msg, m.keys.Switch):
		m.report(m.game.Rotate(), "")
	case key.Matches(msg, m.keys.Reset):
		players := m.game.Players()
		m.report(m.game.Reset(players[0].Name, players[1].Name), "New game.")
		m.log.Info("game reset", "player1", players[0].Name, "player2", players[1].Name)
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	return m, nil
}

func (m *Model) drop(col int) {
	res, err := m.game.ApplyMove(col)
	if err != nil {
		m.log.Debug("move rejected", "column", col, "error", err)
		m.report(err, "")
		return
	}
	m.log.Info("move applied", "column", col, "row", res.Row, "player", res.Player.Name, "outcome", res.Outcome.String())
	switch res.Outcome {
	case domain.Win:
		m.report(nil, res.Player.Name+" wins! Press r to play again or q to quit.")
	case domain.Draw:
		m.report(nil, "It's a draw! Press r to play again or q to quit.")
	default:
		m.report(nil, "")
	}
}

func (m *Model) report(err error, ok string) {
	if err != nil {
		m.message, m.failed = errorMessage(err), true
		return
	}
	m.message, m.failed = ok, false
}

func errorMessage(err error) string {
	switch {
	case errors.Is(err, domain.ErrColumnFull):
		return "Column is full! Choose another column."
	case errors.Is(err, domain.ErrNothingToUndo):
		return "There's nothing to undo."
	case errors.Is(err, domain.ErrGameOver):
		return "Game over. Press r to play again or q to quit."
	case errors.Is(err, domain.ErrOutOfBounds):
		return "No such column."
	default:
		return err.Error()
	}
}

// Status is the title line: whose turn it is, or how the game ended.
func (m Model) Status() string {
	if w, ok := m.game.Winner(); ok {
		return w.Name + " wins!"
	}
	if m.game.Over() {
		return "It's a draw!"
	}
	return m.game.CurrentPlayer().Name + "'s turn"
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	var b strings.Builder

	cur := m.game.CurrentPlayer()
	b.WriteString(titleStyle.Render("Connect Three Game - "+m.Status()) + " " + chip(cur))
	b.WriteString("\n\n")
	b.WriteString(boardStyle.Render(m.renderBoard()))
	b.WriteString("\n")

	if m.message != "" {
		st := successStyle
		if m.failed {
			st = errorStyle
		}
		b.WriteString(st.Render(m.message))
		b.WriteString("\n")
	}

	for _, p := range m.game.Players() {
		b.WriteString(chip(p) + " " + p.Name + "  ")
	}
	b.WriteString("\n")
	b.WriteString(m.instructions)
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m Model) renderBoard() string {
	var b strings.Builder
	for c := 0; c < domain.Cols; c++ {
		if c == m.cursor && !m.game.Over() {
			b.WriteString(cursorStyle.Render(" v"))
		} else {
			b.WriteString("  ")
		}
	}
	b.WriteString("\n")

	board := m.game.Board()
	for r := range board {
		for _, cell := range board[r] {
			b.WriteString(" ")
			if p, ok := m.game.PlayerByID(cell); ok {
				b.WriteString(chip(p))
			} else {
				b.WriteString(dimStyle.Render(emptyGlyph))
			}
		}
		b.WriteString("\n")
	}
	for c := 0; c < domain.Cols; c++ {
		fmt.Fprintf(&b, " %d", c+1)
	}
	return b.String()
}
