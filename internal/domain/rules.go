package domain

// CheckWin reports whether the stone at last completes five in a row for player and
// returns the first five contiguous cells found, in sweep order.
// Only the lines through last are examined, so the work is bounded at 4x9 cell reads.
func CheckWin(b *Board, last Position, player PlayerID) ([]Position, bool) {
	for _, dir := range Directions {
		run := make([]Position, 0, ToWin)
		for i := -(ToWin - 1); i <= ToWin-1; i++ {
			p := last.Add(dir, i)
			if !b.InBounds(p) || b.At(p) != player {
				run = run[:0]
				continue
			}
			run = append(run, p)
			if len(run) == ToWin {
				return run, true
			}
		}
	}
	return nil, false
}

// WinsAt reports whether placing player at the empty cell p would complete five.
// The board is restored before returning.
func WinsAt(b *Board, p Position, player PlayerID) bool {
	b.Set(p, player)
	_, won := CheckWin(b, p, player)
	b.Set(p, Empty)
	return won
}
