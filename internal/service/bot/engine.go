package bot

import (
	"math/rand"
	"strings"

	"github.com/iamasit07/5-in-a-row/backend/internal/domain"
)

type Difficulty string

const (
	Medium Difficulty = "medium"
	Hard   Difficulty = "hard"
	Expert Difficulty = "expert"
)

// ParseDifficulty accepts the tier names case-insensitively.
func ParseDifficulty(s string) (Difficulty, error) {
	switch d := Difficulty(strings.ToLower(strings.TrimSpace(s))); d {
	case Medium, Hard, Expert:
		return d, nil
	default:
		return "", domain.ErrInvalidDifficulty
	}
}

// SearchDepth is the alpha-beta depth in plies; zero means heuristic ranking only.
func (d Difficulty) SearchDepth() int {
	switch d {
	case Hard:
		return 2
	case Expert:
		return 3
	default:
		return 0
	}
}

func (d Difficulty) UsesThreatSearch() bool {
	return d == Expert
}

// Rand is the only source of non-determinism in the engine.
// *rand.Rand satisfies it, so tests can pass a seeded generator.
type Rand interface {
	Intn(n int) int
}

type globalRand struct{}

func (globalRand) Intn(n int) int {
	return rand.Intn(n)
}

const DefaultMaxCandidates = 20

// Engine selects the computer's move. It keeps no state between calls apart from its
// random source, so one Engine can serve many goroutines as long as its Rand is safe
// for concurrent use (the default is).
type Engine struct {
	rand          Rand
	maxCandidates int
}

type Option func(*Engine)

func WithRand(r Rand) Option {
	return func(e *Engine) {
		e.rand = r
	}
}

// WithMaxCandidates caps the moves expanded per search node; n <= 0 disables the cap.
func WithMaxCandidates(n int) Option {
	return func(e *Engine) {
		e.maxCandidates = n
	}
}

func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		rand:          globalRand{},
		maxCandidates: DefaultMaxCandidates,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// FindBestMove picks the computer's next stone. The boolean is false only when the
// board has no empty cell. The caller's board is never modified.
func (e *Engine) FindBestMove(board *domain.Board, computer, human domain.PlayerID, difficulty Difficulty) (domain.Position, bool) {
	b := board.Clone()

	stones := b.StoneCount()
	if stones <= 2 {
		if move, ok := e.OpeningMove(b, stones); ok {
			return move, true
		}
	}

	// Win now, otherwise block the opponent's win
	if move, ok := FindWinningMove(b, computer); ok {
		return move, true
	}
	if move, ok := FindWinningMove(b, human); ok {
		return move, true
	}

	if difficulty.UsesThreatSearch() {
		if threat, ok := FindThreatMove(b, computer, human); ok {
			return threat.Pos, true
		}
	}

	if depth := difficulty.SearchDepth(); depth > 0 {
		s := newSearcher(b, computer, human, e.maxCandidates)
		if result, ok := s.root(depth, true); ok {
			return result.Move, true
		}
	}

	if move, ok := e.rankedMove(b, computer, human); ok {
		return move, true
	}

	return fallbackMove(b)
}

// FindWinningMove returns the first empty cell, in row-major order, that completes five
// for player.
func FindWinningMove(b *domain.Board, player domain.PlayerID) (domain.Position, bool) {
	size := b.Size()
	for row := 0; row < size; row++ {
		for col := 0; col < size; col++ {
			p := domain.Position{Row: row, Col: col}
			if b.At(p) != domain.Empty {
				continue
			}
			if domain.WinsAt(b, p, player) {
				return p, true
			}
		}
	}
	return domain.Position{}, false
}

func fallbackMove(b *domain.Board) (domain.Position, bool) {
	center := b.Center()
	if b.IsEmpty(center) {
		return center, true
	}
	return b.FirstEmpty()
}
