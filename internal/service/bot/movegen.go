package bot

import "github.com/iamasit07/5-in-a-row/backend/internal/domain"

// NeighborRadius bounds candidate generation to cells near existing stones.
const NeighborRadius = 2

// HasNeighbor reports whether any stone lies within Chebyshev distance radius of p.
func HasNeighbor(b *domain.Board, p domain.Position, radius int) bool {
	for dr := -radius; dr <= radius; dr++ {
		for dc := -radius; dc <= radius; dc++ {
			if dr == 0 && dc == 0 {
				continue
			}
			q := domain.Position{Row: p.Row + dr, Col: p.Col + dc}
			if b.InBounds(q) && b.At(q) != domain.Empty {
				return true
			}
		}
	}
	return false
}

// Candidates lists empty cells with a neighbour, in row-major order.
func Candidates(b *domain.Board) []domain.Position {
	size := b.Size()
	moves := make([]domain.Position, 0, 32)
	for row := 0; row < size; row++ {
		for col := 0; col < size; col++ {
			p := domain.Position{Row: row, Col: col}
			if b.At(p) == domain.Empty && HasNeighbor(b, p, NeighborRadius) {
				moves = append(moves, p)
			}
		}
	}
	return moves
}
