package bot

import "github.com/iamasit07/5-in-a-row/backend/internal/domain"

const OpeningRadius = 3

// OpeningMove handles the first plies: the centre on an empty board, a random cell
// orthogonal to the centre when the opponent took it, otherwise a random empty cell near
// the centre.
func (e *Engine) OpeningMove(b *domain.Board, stoneCount int) (domain.Position, bool) {
	center := b.Center()

	switch stoneCount {
	case 0:
		return center, b.IsEmpty(center)
	case 1:
		if b.IsEmpty(center) {
			return center, true
		}
		options := make([]domain.Position, 0, 4)
		for _, d := range [4]domain.Direction{{DRow: -1, DCol: 0}, {DRow: 1, DCol: 0}, {DRow: 0, DCol: -1}, {DRow: 0, DCol: 1}} {
			if p := center.Add(d, 1); b.IsEmpty(p) {
				options = append(options, p)
			}
		}
		return e.pick(options)
	}

	options := make([]domain.Position, 0, (2*OpeningRadius+1)*(2*OpeningRadius+1))
	for dr := -OpeningRadius; dr <= OpeningRadius; dr++ {
		for dc := -OpeningRadius; dc <= OpeningRadius; dc++ {
			if p := (domain.Position{Row: center.Row + dr, Col: center.Col + dc}); b.IsEmpty(p) {
				options = append(options, p)
			}
		}
	}
	return e.pick(options)
}

func (e *Engine) pick(options []domain.Position) (domain.Position, bool) {
	if len(options) == 0 {
		return domain.Position{}, false
	}
	return options[e.rand.Intn(len(options))], true
}
