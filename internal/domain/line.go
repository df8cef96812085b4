package domain

// Mark classifies a cell relative to the player being evaluated.
type Mark uint8

const (
	MarkEmpty Mark = iota
	MarkSelf
	// MarkBlocked covers both opponent stones and off-board cells; the edge closes a line
	// exactly like an opponent stone does.
	MarkBlocked
)

func (m Mark) String() string {
	switch m {
	case MarkSelf:
		return "S"
	case MarkBlocked:
		return "B"
	default:
		return "_"
	}
}

// ScanLine returns the 2*radius+1 cells centred on origin along dir, classified for player.
// The origin is always MarkSelf, whatever the board holds there, so callers can ask
// "what if player stood here".
func ScanLine(b *Board, origin Position, dir Direction, radius int, player PlayerID) []Mark {
	line := make([]Mark, 0, 2*radius+1)
	for i := -radius; i <= radius; i++ {
		if i == 0 {
			line = append(line, MarkSelf)
			continue
		}
		line = append(line, classify(b, origin.Add(dir, i), player))
	}
	return line
}

func classify(b *Board, p Position, player PlayerID) Mark {
	if !b.InBounds(p) {
		return MarkBlocked
	}
	switch b.At(p) {
	case Empty:
		return MarkEmpty
	case player:
		return MarkSelf
	default:
		return MarkBlocked
	}
}

// CountInDirection counts consecutive player stones starting one step away from p.
func CountInDirection(b *Board, p Position, dir Direction, player PlayerID) int {
	count := 0
	for next := p.Add(dir, 1); b.InBounds(next) && b.At(next) == player; next = next.Add(dir, 1) {
		count++
	}
	return count
}
