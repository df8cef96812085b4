package bot

import (
	"math"
	"sort"

	"github.com/iamasit07/5-in-a-row/backend/internal/domain"
)

// WinScore is returned from inside the search as soon as a simulated stone makes five.
const WinScore = 100000

type SearchResult struct {
	Move  domain.Position
	Score float64
	Nodes int
}

// AlphaBeta runs a depth-bounded minimax with alpha-beta pruning and returns the first
// root move achieving the best score.
func (e *Engine) AlphaBeta(board *domain.Board, computer, human domain.PlayerID, depth int) (SearchResult, bool) {
	s := newSearcher(board.Clone(), computer, human, e.maxCandidates)
	return s.root(depth, true)
}

// Minimax is the unpruned search over the same candidates. It exists to check that
// pruning never changes the chosen move's value; use AlphaBeta for play.
func (e *Engine) Minimax(board *domain.Board, computer, human domain.PlayerID, depth int) (SearchResult, bool) {
	s := newSearcher(board.Clone(), computer, human, e.maxCandidates)
	return s.root(depth, false)
}

// searcher owns a private board and plays make/unmake on it.
type searcher struct {
	board         *domain.Board
	computer      domain.PlayerID
	human         domain.PlayerID
	maxCandidates int
	nodes         int
}

func newSearcher(b *domain.Board, computer, human domain.PlayerID, maxCandidates int) *searcher {
	return &searcher{
		board:         b,
		computer:      computer,
		human:         human,
		maxCandidates: maxCandidates,
	}
}

// root tries every neighbour-restricted candidate; the cap only applies below it.
func (s *searcher) root(depth int, pruned bool) (SearchResult, bool) {
	moves := Candidates(s.board)
	if len(moves) == 0 {
		return SearchResult{}, false
	}

	best := SearchResult{Move: moves[0], Score: math.Inf(-1)}
	alpha := math.Inf(-1)
	beta := math.Inf(1)

	for _, move := range moves {
		score, won := s.play(move, s.computer)
		if !won {
			if pruned {
				score = s.alphaBeta(depth-1, alpha, beta, false)
			} else {
				score = s.minimax(depth-1, false)
			}
		}
		s.board.Set(move, domain.Empty)

		if score > best.Score {
			best.Score = score
			best.Move = move
		}
		if pruned {
			alpha = max(alpha, best.Score)
		}
	}

	best.Nodes = s.nodes
	return best, true
}

// play places player at move and reports the win score when that completes five.
// The caller undoes the move.
func (s *searcher) play(move domain.Position, player domain.PlayerID) (float64, bool) {
	s.board.Set(move, player)
	s.nodes++
	if _, won := domain.CheckWin(s.board, move, player); won {
		if player == s.computer {
			return WinScore, true
		}
		return -WinScore, true
	}
	return 0, false
}

func (s *searcher) alphaBeta(depth int, alpha, beta float64, maximizing bool) float64 {
	if depth <= 0 {
		return EvaluateBoard(s.board, s.computer, s.human)
	}

	player := s.human
	if maximizing {
		player = s.computer
	}
	moves := s.candidates(player)
	if len(moves) == 0 {
		return EvaluateBoard(s.board, s.computer, s.human)
	}

	if maximizing {
		maxEval := math.Inf(-1)
		for _, move := range moves {
			if score, won := s.play(move, player); won {
				s.board.Set(move, domain.Empty)
				return score
			}
			eval := s.alphaBeta(depth-1, alpha, beta, false)
			s.board.Set(move, domain.Empty)

			maxEval = max(maxEval, eval)
			alpha = max(alpha, eval)
			if beta <= alpha {
				break // Beta cutoff
			}
		}
		return maxEval
	}

	minEval := math.Inf(1)
	for _, move := range moves {
		if score, won := s.play(move, player); won {
			s.board.Set(move, domain.Empty)
			return score
		}
		eval := s.alphaBeta(depth-1, alpha, beta, true)
		s.board.Set(move, domain.Empty)

		minEval = min(minEval, eval)
		beta = min(beta, eval)
		if beta <= alpha {
			break // Alpha cutoff
		}
	}
	return minEval
}

func (s *searcher) minimax(depth int, maximizing bool) float64 {
	if depth <= 0 {
		return EvaluateBoard(s.board, s.computer, s.human)
	}

	player := s.human
	if maximizing {
		player = s.computer
	}
	moves := s.candidates(player)
	if len(moves) == 0 {
		return EvaluateBoard(s.board, s.computer, s.human)
	}

	best := math.Inf(1)
	if maximizing {
		best = math.Inf(-1)
	}
	for _, move := range moves {
		if score, won := s.play(move, player); won {
			s.board.Set(move, domain.Empty)
			return score
		}
		eval := s.minimax(depth-1, !maximizing)
		s.board.Set(move, domain.Empty)

		if maximizing {
			best = max(best, eval)
		} else {
			best = min(best, eval)
		}
	}
	return best
}

// candidates returns the neighbour-restricted moves for an inner node in row-major order. When a cap is
// set and exceeded, the moves are ranked by EvaluateMove for the side to play and cut;
// equal scores keep their row-major order.
func (s *searcher) candidates(player domain.PlayerID) []domain.Position {
	moves := Candidates(s.board)
	if s.maxCandidates <= 0 || len(moves) <= s.maxCandidates {
		return moves
	}

	opponent := s.computer
	if player == s.computer {
		opponent = s.human
	}
	scores := make(map[domain.Position]float64, len(moves))
	for _, move := range moves {
		scores[move] = EvaluateMove(s.board, move, player, opponent)
	}
	sort.SliceStable(moves, func(i, j int) bool {
		return scores[moves[i]] > scores[moves[j]]
	})
	return moves[:s.maxCandidates]
}
