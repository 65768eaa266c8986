package domain

// Board geometry. The engine is written against these constants only.
const (
	Rows      = 6
	Cols      = 7
	WinLength = 3
)

// Cell represents a board cell state: Empty or the seat of the occupying player.
type Cell uint8

const (
	Empty Cell = iota
	PlayerOne
	PlayerTwo
)

// Board is a fixed Rows x Cols grid. Row 0 is the top.
// Being an array, assigning a Board copies it, which is what snapshots rely on.
type Board [Rows][Cols]Cell

// dropRow returns the lowest empty row of col, or -1 when the column is full.
func (b *Board) dropRow(col int) int {
	for r := Rows - 1; r >= 0; r-- {
		if b[r][col] == Empty {
			return r
		}
	}
	return -1
}

// Playable reports whether col is on the board and has room for another chip.
func (b *Board) Playable(col int) bool {
	if col < 0 || col >= Cols {
		return false
	}
	return b[0][col] == Empty
}

// Full reports whether no column has room.
func (b *Board) Full() bool {
	for c := 0; c < Cols; c++ {
		if b[0][c] == Empty {
			return false
		}
	}
	return true
}

// Count returns the number of chips on the board.
func (b *Board) Count() int {
	n := 0
	for r := range b {
		for _, cell := range b[r] {
			if cell != Empty {
				n++
			}
		}
	}
	return n
}

func inBounds(r, c int) bool {
	return r >= 0 && r < Rows && c >= 0 && c < Cols
}
