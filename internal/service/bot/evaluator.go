package bot

import "github.com/iamasit07/5-in-a-row/backend/internal/domain"

const (
	// LineRadius gives 9-cell windows: every 6-wide sub-window holding the origin fits.
	LineRadius = 4
	// DefenseWeight discounts blocking below building.
	DefenseWeight = 0.9
)

// EvaluateLine slides a PatternWidth window over line and adds the score of the first
// pattern that matches at each offset. Near the end the window shrinks, so five-cell
// templates still match.
func EvaluateLine(line []domain.Mark) float64 {
	score := 0.0
	for i := range line {
		window := line[i:min(i+PatternWidth, len(line))]
		for _, p := range Patterns {
			if p.matches(window) {
				score += p.Score
				break
			}
		}
	}
	return score
}

// EvaluateMove scores an empty cell for player: centre proximity, what player builds
// there on the four axes, and a discounted share of what opponent would build there.
func EvaluateMove(b *domain.Board, pos domain.Position, player, opponent domain.PlayerID) float64 {
	score := centerBonus(b, pos)
	for _, dir := range domain.Directions {
		score += EvaluateLine(domain.ScanLine(b, pos, dir, LineRadius, player))
		score += DefenseWeight * EvaluateLine(domain.ScanLine(b, pos, dir, LineRadius, opponent))
	}
	return score
}

func centerBonus(b *domain.Board, pos domain.Position) float64 {
	center := b.Center()
	return float64(max(0, center.Row-domain.Chebyshev(pos, center)))
}

// EvaluateBoard is the static leaf evaluation used by the search, from player's side.
// Each maximal run is scored once, at its first cell in the axis direction.
func EvaluateBoard(b *domain.Board, player, opponent domain.PlayerID) float64 {
	score := 0.0
	size := b.Size()
	for row := 0; row < size; row++ {
		for col := 0; col < size; col++ {
			p := domain.Position{Row: row, Col: col}
			owner := b.At(p)
			if owner == domain.Empty {
				continue
			}
			for _, dir := range domain.Directions {
				before := p.Add(dir, -1)
				if b.At(before) == owner {
					continue
				}
				length := 1 + domain.CountInDirection(b, p, dir, owner)
				open := 0
				if b.IsEmpty(before) {
					open++
				}
				if b.IsEmpty(p.Add(dir, length)) {
					open++
				}
				switch owner {
				case player:
					score += runScore(length, open)
				case opponent:
					score -= DefenseWeight * runScore(length, open)
				}
			}
		}
	}
	return score
}
