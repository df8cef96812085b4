package bot

import (
	"math/rand"
	"testing"

	"github.com/iamasit07/5-in-a-row/backend/internal/domain"
)

func TestRankMovesSortedDescending(t *testing.T) {
	rng := rand.New(rand.NewSource(21))
	b := randomBoard(rng, domain.DefaultSize, 9, 3)

	ranked := RankMoves(b, domain.Player1, domain.Player2)
	if len(ranked) != len(Candidates(b)) {
		t.Fatalf("expected every candidate to be ranked, got %d of %d", len(ranked), len(Candidates(b)))
	}
	for i := 1; i < len(ranked); i++ {
		if ranked[i].Score > ranked[i-1].Score {
			t.Fatalf("expected descending scores at %d: %f > %f", i, ranked[i].Score, ranked[i-1].Score)
		}
	}
}

func TestRankedMoveFollowsDominanceRule(t *testing.T) {
	rng := rand.New(rand.NewSource(8))
	for round := 0; round < 10; round++ {
		b := randomBoard(rng, domain.DefaultSize, 5+rng.Intn(6), 3)
		ranked := RankMoves(b, domain.Player2, domain.Player1)

		e := NewEngine(WithRand(fixedRand{index: 2}))
		move, ok := e.rankedMove(b, domain.Player2, domain.Player1)
		if !ok {
			t.Fatalf("round %d: expected a move", round)
		}

		want := ranked[min(2, len(ranked)-1)].Pos
		if len(ranked) == 1 || ranked[0].Score > DominanceRatio*ranked[1].Score {
			want = ranked[0].Pos
		}
		if move != want {
			t.Fatalf("round %d: expected %v, got %v", round, want, move)
		}
	}
}

func TestRankedMovePlaysDominantMove(t *testing.T) {
	b := domain.NewBoard(domain.DefaultSize)
	place(b, domain.Player2, pos(7, 6), pos(7, 7), pos(7, 8))
	place(b, domain.Player1, pos(7, 5), pos(1, 1))

	// Extending the blocked three to a four at (7,9) is worth far more than anything else.
	ranked := RankMoves(b, domain.Player2, domain.Player1)
	if len(ranked) < 2 || ranked[0].Pos != pos(7, 9) {
		t.Fatalf("expected (7,9) to rank first, got %+v", ranked[:min(3, len(ranked))])
	}
	if ranked[0].Score <= DominanceRatio*ranked[1].Score {
		t.Fatalf("expected %f to dominate runner-up %f", ranked[0].Score, ranked[1].Score)
	}

	for seed := int64(0); seed < 5; seed++ {
		e := NewEngine(WithRand(rand.New(rand.NewSource(seed))))
		move, ok := e.rankedMove(b, domain.Player2, domain.Player1)
		if !ok || move != pos(7, 9) {
			t.Fatalf("seed %d: expected dominant move (7,9), got %v", seed, move)
		}
	}
}
