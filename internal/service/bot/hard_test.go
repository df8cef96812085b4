package bot

import (
	"math/rand"
	"reflect"
	"testing"

	"github.com/iamasit07/5-in-a-row/backend/internal/domain"
)

func TestAlphaBetaMatchesMinimax(t *testing.T) {
	cases := []struct {
		name          string
		depth         int
		maxCandidates int
	}{
		{name: "depth2_uncapped", depth: 2, maxCandidates: 0},
		{name: "depth3_capped", depth: 3, maxCandidates: 8},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rng := rand.New(rand.NewSource(99))
			e := NewEngine(WithMaxCandidates(tc.maxCandidates))

			for round := 0; round < 8; round++ {
				b := randomBoard(rng, 9, 4+rng.Intn(5), 2)

				pruned, ok := e.AlphaBeta(b, domain.Player1, domain.Player2, tc.depth)
				if !ok {
					t.Fatalf("round %d: expected alpha-beta result", round)
				}
				full, ok := e.Minimax(b, domain.Player1, domain.Player2, tc.depth)
				if !ok {
					t.Fatalf("round %d: expected minimax result", round)
				}

				if pruned.Score != full.Score {
					t.Fatalf("round %d: expected equal scores, alpha-beta=%f minimax=%f\n%s", round, pruned.Score, full.Score, b)
				}
				if pruned.Move != full.Move {
					t.Fatalf("round %d: expected same move, alpha-beta=%v minimax=%v", round, pruned.Move, full.Move)
				}
				if pruned.Nodes > full.Nodes {
					t.Fatalf("round %d: expected pruning to visit fewer nodes, %d > %d", round, pruned.Nodes, full.Nodes)
				}
			}
		})
	}
}

func TestAlphaBetaScoresImmediateWin(t *testing.T) {
	b := domain.NewBoard(domain.DefaultSize)
	place(b, domain.Player1, pos(4, 4), pos(5, 4), pos(6, 4), pos(7, 4))
	place(b, domain.Player2, pos(3, 4), pos(9, 9), pos(9, 10))

	result, ok := NewEngine().AlphaBeta(b, domain.Player1, domain.Player2, 2)
	if !ok {
		t.Fatalf("expected a result")
	}
	if result.Move != pos(8, 4) || result.Score != WinScore {
		t.Fatalf("expected win at (8,4) scored %d, got %v scored %f", WinScore, result.Move, result.Score)
	}
}

func TestAlphaBetaSeesForcedLoss(t *testing.T) {
	// Player2 threatens two separate fives; Player1 can block only one.
	b := domain.NewBoard(domain.DefaultSize)
	place(b, domain.Player2, pos(2, 2), pos(2, 3), pos(2, 4), pos(2, 5))
	place(b, domain.Player2, pos(10, 2), pos(10, 3), pos(10, 4), pos(10, 5))
	place(b, domain.Player1, pos(2, 1), pos(10, 1), pos(6, 6), pos(6, 7), pos(7, 7), pos(8, 8))

	result, ok := NewEngine().AlphaBeta(b, domain.Player1, domain.Player2, 2)
	if !ok {
		t.Fatalf("expected a result")
	}
	if result.Score != -WinScore {
		t.Fatalf("expected every line to lose, got score %f", result.Score)
	}
}

func TestAlphaBetaLeavesBoardUntouched(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	b := randomBoard(rng, domain.DefaultSize, 10, 3)
	before := b.Grid()

	if _, ok := NewEngine().AlphaBeta(b, domain.Player2, domain.Player1, 3); !ok {
		t.Fatalf("expected a result")
	}
	if !reflect.DeepEqual(before, b.Grid()) {
		t.Fatalf("expected search to leave the caller's board unchanged")
	}
}

func TestSearcherCandidateCapKeepsBestMoves(t *testing.T) {
	b := domain.NewBoard(domain.DefaultSize)
	place(b, domain.Player1, pos(7, 5), pos(7, 6), pos(7, 7))
	place(b, domain.Player2, pos(6, 6), pos(8, 8))

	s := newSearcher(b, domain.Player1, domain.Player2, 3)
	moves := s.candidates(domain.Player1)
	if len(moves) != 3 {
		t.Fatalf("expected 3 capped candidates, got %d", len(moves))
	}
	found := false
	for _, m := range moves {
		if m == pos(7, 4) || m == pos(7, 8) {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected an open-four extension among the capped moves, got %v", moves)
	}
}

func TestRootSearchesEveryCandidateDespiteCap(t *testing.T) {
	b := domain.NewBoard(domain.DefaultSize)
	place(b, domain.Player1, pos(7, 5), pos(7, 6), pos(7, 7))
	place(b, domain.Player2, pos(6, 6), pos(8, 8))

	result, ok := NewEngine(WithMaxCandidates(1)).AlphaBeta(b, domain.Player1, domain.Player2, 1)
	if !ok {
		t.Fatalf("expected a result")
	}
	if want := len(Candidates(b)); result.Nodes != want {
		t.Fatalf("expected the root to try all %d candidates, visited %d", want, result.Nodes)
	}
}
