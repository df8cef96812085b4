package bot

import (
	"math/rand"
	"testing"

	"github.com/iamasit07/5-in-a-row/backend/internal/domain"
)

// fixedRand always picks the same index, clamped to the range it is given.
type fixedRand struct {
	index int
}

func (f fixedRand) Intn(n int) int {
	return min(f.index, n-1)
}

func pos(row, col int) domain.Position {
	return domain.Position{Row: row, Col: col}
}

func place(b *domain.Board, player domain.PlayerID, cells ...domain.Position) {
	for _, p := range cells {
		b.Set(p, player)
	}
}

// randomBoard scatters stones, alternating players, in the middle of the board.
func randomBoard(rng *rand.Rand, size, stones, spread int) *domain.Board {
	b := domain.NewBoard(size)
	center := b.Center()
	player := domain.Player1
	for placed := 0; placed < stones; {
		p := pos(center.Row+rng.Intn(2*spread+1)-spread, center.Col+rng.Intn(2*spread+1)-spread)
		if !b.IsEmpty(p) {
			continue
		}
		b.Set(p, player)
		player = player.Opponent()
		placed++
	}
	return b
}

func assertOneOf(t *testing.T, got domain.Position, want ...domain.Position) {
	t.Helper()
	for _, w := range want {
		if got == w {
			return
		}
	}
	t.Fatalf("expected one of %v, got %v", want, got)
}

var allDifficulties = []Difficulty{Medium, Hard, Expert}
