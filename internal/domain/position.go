package domain

// Position is a (row, col) pair on the board.
type Position struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (p Position) Add(d Direction, steps int) Position {
	return Position{Row: p.Row + d.DRow*steps, Col: p.Col + d.DCol*steps}
}

// Direction is one of the four axis vectors; the reverse is implied by negating the step.
type Direction struct {
	DRow int
	DCol int
}

var Directions = [4]Direction{
	{0, 1},  // horizontal
	{1, 0},  // vertical
	{1, 1},  // diagonal \
	{1, -1}, // diagonal /
}

// Chebyshev returns the king-move distance between two positions.
func Chebyshev(a, b Position) int {
	dr := a.Row - b.Row
	if dr < 0 {
		dr = -dr
	}
	dc := a.Col - b.Col
	if dc < 0 {
		dc = -dc
	}
	return max(dr, dc)
}
