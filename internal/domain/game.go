package domain

import "errors"

// Outcome is the result kind of an applied move.
type Outcome uint8

const (
	Continue Outcome = iota
	Win
	Draw
)

func (o Outcome) String() string {
	switch o {
	case Win:
		return "win"
	case Draw:
		return "draw"
	default:
		return "continue"
	}
}

// MoveResult describes an applied move.
type MoveResult struct {
	Outcome Outcome
	Row     int
	Col     int
	Player  Player
}

// Errors returned by domain operations.
var (
	ErrOutOfBounds   = errors.New("out of bounds")
	ErrColumnFull    = errors.New("column is full")
	ErrNothingToUndo = errors.New("nothing to undo")
	ErrGameOver      = errors.New("game over")
)

// Game holds the state of a Connect Three match. It is not safe for
// concurrent use; callers serialize access.
type Game struct {
	board   Board
	seats   []Player // seat order, fixed until Reset
	order   []Player // rotation; order[0] moves next
	history []Board
	moves   int
	over    bool
	winner  Cell
}

// New returns a game between the two named players with player one to move.
func New(player1, player2 string) (*Game, error) {
	g := &Game{}
	if err := g.Reset(player1, player2); err != nil {
		return nil, err
	}
	return g, nil
}

// Reset clears the board and history and installs the given players with
// player one to move. Invalid names leave the game untouched.
func (g *Game) Reset(player1, player2 string) error {
	players, err := newPlayers(player1, player2)
	if err != nil {
		return err
	}
	g.board = Board{}
	g.seats = players
	g.order = append([]Player(nil), players...)
	g.history = nil
	g.moves = 0
	g.over = false
	g.winner = Empty
	return nil
}

// ApplyMove drops the current player's chip into col.
//
// A board snapshot is pushed before the column is checked for room, so a
// rejected move into a full column still grows the history.
func (g *Game) ApplyMove(col int) (MoveResult, error) {
	if col < 0 || col >= Cols {
		return MoveResult{}, ErrOutOfBounds
	}
	if g.over {
		return MoveResult{}, ErrGameOver
	}

	g.history = append(g.history, g.board)

	row := g.board.dropRow(col)
	if row < 0 {
		return MoveResult{}, ErrColumnFull
	}

	mover := g.order[0]
	g.board[row][col] = mover.ID
	g.moves++
	res := MoveResult{Row: row, Col: col, Player: mover}

	if g.board.checkWin(row, col) {
		g.over = true
		g.winner = mover.ID
		res.Outcome = Win
		return res, nil
	}

	if g.board.Full() {
		g.over = true
		res.Outcome = Draw
		return res, nil
	}

	g.rotate()
	res.Outcome = Continue
	return res, nil
}

// Undo restores the most recent snapshot and rotates the turn back.
func (g *Game) Undo() error {
	if g.over {
		return ErrGameOver
	}
	if len(g.history) == 0 {
		return ErrNothingToUndo
	}
	last := len(g.history) - 1
	g.board = g.history[last]
	g.history = g.history[:last]
	g.moves = g.board.Count()
	g.rotate()
	return nil
}

// Rotate hands the turn to the next player without a move.
func (g *Game) Rotate() error {
	if g.over {
		return ErrGameOver
	}
	g.rotate()
	return nil
}

func (g *Game) rotate() {
	if len(g.order) < 2 {
		return
	}
	g.order = append(g.order[1:], g.order[0])
}

// CellAt returns the content of (row, col).
func (g *Game) CellAt(row, col int) (Cell, error) {
	if !inBounds(row, col) {
		return Empty, ErrOutOfBounds
	}
	return g.board[row][col], nil
}

// CurrentPlayer returns the player to move.
func (g *Game) CurrentPlayer() Player { return g.order[0] }

// Players returns the players in seat order.
func (g *Game) Players() []Player { return append([]Player(nil), g.seats...) }

// PlayerByID returns the player sitting in seat id.
func (g *Game) PlayerByID(id Cell) (Player, bool) {
	for _, p := range g.seats {
		if p.ID == id {
			return p, true
		}
	}
	return Player{}, false
}

// Board returns a copy of the current board.
func (g *Game) Board() Board { return g.board }

// Dimensions returns the board size as (rows, cols).
func (g *Game) Dimensions() (int, int) { return Rows, Cols }

// HistoryLen returns the number of snapshots available to Undo.
func (g *Game) HistoryLen() int { return len(g.history) }

// Moves returns the number of chips on the board.
func (g *Game) Moves() int { return g.moves }

// Over reports whether the game ended in a win or a draw.
func (g *Game) Over() bool { return g.over }

// Winner returns the winning player, if any.
func (g *Game) Winner() (Player, bool) {
	if g.winner == Empty {
		return Player{}, false
	}
	return g.PlayerByID(g.winner)
}

// Playable reports whether col can take another chip.
func (g *Game) Playable(col int) bool { return g.board.Playable(col) }

// Full reports whether the board has no room left.
func (g *Game) Full() bool { return g.board.Full() }

// View is a read-only snapshot of a game for rendering.
type View struct {
	Board   Board
	Players []Player
	Current Player
	Moves   int
	History int
	Over    bool
	Winner  *Player
}

// View returns a snapshot detached from the game.
func (g *Game) View() View {
	v := View{
		Board:   g.board,
		Players: g.Players(),
		Current: g.CurrentPlayer(),
		Moves:   g.moves,
		History: len(g.history),
		Over:    g.over,
	}
	if w, ok := g.Winner(); ok {
		v.Winner = &w
	}
	return v
}

// Draw reports whether the snapshot is a finished game without a winner.
func (v View) Draw() bool { return v.Over && v.Winner == nil }

// Player returns the player sitting in seat id.
func (v View) Player(id Cell) (Player, bool) {
	for _, p := range v.Players {
		if p.ID == id {
			return p, true
		}
	}
	return Player{}, false
}
