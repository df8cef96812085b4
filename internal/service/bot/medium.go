package bot

import (
	"sort"

	"github.com/iamasit07/5-in-a-row/backend/internal/domain"
)

// DominanceRatio is how far the best move must outscore the runner-up to be played
// without a random pick among the top three.
const DominanceRatio = 1.5

type ScoredMove struct {
	Pos   domain.Position
	Score float64
}

// RankMoves scores every candidate with EvaluateMove, best first.
func RankMoves(b *domain.Board, player, opponent domain.PlayerID) []ScoredMove {
	moves := Candidates(b)
	ranked := make([]ScoredMove, 0, len(moves))
	for _, move := range moves {
		ranked = append(ranked, ScoredMove{Pos: move, Score: EvaluateMove(b, move, player, opponent)})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})
	return ranked
}

func (e *Engine) rankedMove(b *domain.Board, computer, human domain.PlayerID) (domain.Position, bool) {
	ranked := RankMoves(b, computer, human)
	if len(ranked) == 0 {
		return domain.Position{}, false
	}
	if len(ranked) == 1 || ranked[0].Score > DominanceRatio*ranked[1].Score {
		return ranked[0].Pos, true
	}
	top := min(3, len(ranked))
	return ranked[e.rand.Intn(top)].Pos, true
}
