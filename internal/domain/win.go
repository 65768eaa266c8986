package domain

// checkWin reports whether the chip at (row, col) completes a line of
// WinLength. Rows and columns are swept through the placed cell; both
// diagonal directions are swept across the whole board, so any existing
// line of the same chip counts, not only lines the move extended.
func (b *Board) checkWin(row, col int) bool {
	chip := b[row][col]
	if chip == Empty {
		return false
	}

	// horizontal
	for c := 0; c <= Cols-WinLength; c++ {
		if b.line(chip, row, c, 0, 1) {
			return true
		}
	}

	// vertical
	for r := 0; r <= Rows-WinLength; r++ {
		if b.line(chip, r, col, 1, 0) {
			return true
		}
	}

	// descending diagonal
	for r := 0; r <= Rows-WinLength; r++ {
		for c := 0; c <= Cols-WinLength; c++ {
			if b.line(chip, r, c, 1, 1) {
				return true
			}
		}
	}

	// ascending diagonal
	for r := WinLength - 1; r < Rows; r++ {
		for c := 0; c <= Cols-WinLength; c++ {
			if b.line(chip, r, c, -1, 1) {
				return true
			}
		}
	}

	return false
}

// line reports whether WinLength cells starting at (r, c) and stepping by
// (dr, dc) all hold chip.
func (b *Board) line(chip Cell, r, c, dr, dc int) bool {
	for k := 0; k < WinLength; k++ {
		rr, cc := r+k*dr, c+k*dc
		if !inBounds(rr, cc) || b[rr][cc] != chip {
			return false
		}
	}
	return true
}
