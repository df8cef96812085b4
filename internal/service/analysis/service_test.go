package analysis

import (
	"context"
	"encoding/json"
	"errors"
	"math/rand"
	"sync"
	"testing"
	"time"

	"github.com/iamasit07/5-in-a-row/backend/internal/domain"
	"github.com/iamasit07/5-in-a-row/backend/internal/service/bot"
)

type memoryCache struct {
	mu      sync.Mutex
	entries map[string]string
	sets    int
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: make(map[string]string)}
}

func (m *memoryCache) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = value.(string)
	m.sets++
	return nil
}

func (m *memoryCache) Get(ctx context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.entries[key]
	if !ok {
		return "", domain.ErrCacheMiss
	}
	return v, nil
}

func (m *memoryCache) Del(ctx context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, k := range keys {
		delete(m.entries, k)
	}
	return nil
}

type memoryStore struct {
	decisions map[string]Decision
	saves     int
}

func (m *memoryStore) GetDecision(ctx context.Context, key string) (*Decision, error) {
	d, ok := m.decisions[key]
	if !ok {
		return nil, nil
	}
	return &d, nil
}

func (m *memoryStore) SaveDecision(ctx context.Context, key string, d Decision) error {
	m.decisions[key] = d
	m.saves++
	return nil
}

func emptyGrid(size int) [][]int {
	grid := make([][]int, size)
	for i := range grid {
		grid[i] = make([]int, size)
	}
	return grid
}

// blockGrid has Player1 on four in a row with (7,9) as the only cell stopping it.
func blockGrid() [][]int {
	grid := emptyGrid(15)
	for c := 5; c <= 8; c++ {
		grid[7][c] = 1
	}
	grid[7][4] = 2
	grid[2][2] = 2
	grid[12][12] = 2
	return grid
}

func newTestService(cache CacheRepository, store DecisionStore) *Service {
	engine := bot.NewEngine(bot.WithRand(rand.New(rand.NewSource(1))))
	return NewService(engine, cache, store, time.Hour)
}

func TestBestMoveBlocksAndCaches(t *testing.T) {
	cache := newMemoryCache()
	store := &memoryStore{decisions: make(map[string]Decision)}
	svc := newTestService(cache, store)

	req := MoveRequest{Board: blockGrid(), Computer: 2, Human: 1, Difficulty: "hard"}
	res, err := svc.BestMove(context.Background(), req)
	if err != nil {
		t.Fatalf("expected move, got %v", err)
	}
	if res.Row != 7 || res.Col != 9 || res.NoMove || res.Source != SourceEngine {
		t.Fatalf("expected engine block at (7,9), got %+v", res)
	}
	if cache.sets != 1 || store.saves != 1 {
		t.Fatalf("expected decision to be cached and stored, got sets=%d saves=%d", cache.sets, store.saves)
	}

	res, err = svc.BestMove(context.Background(), req)
	if err != nil {
		t.Fatalf("expected cached move, got %v", err)
	}
	if res.Source != SourceCache || res.Row != 7 || res.Col != 9 {
		t.Fatalf("expected cached (7,9), got %+v", res)
	}
}

func TestBestMoveReadsThroughStore(t *testing.T) {
	cache := newMemoryCache()
	store := &memoryStore{decisions: make(map[string]Decision)}
	svc := newTestService(cache, store)

	req := MoveRequest{Board: blockGrid(), Computer: 2, Human: 1, Difficulty: "expert"}
	board, _ := domain.BoardFromGrid(req.Board)
	key := decisionKey(board, domain.Player2, domain.Player1, bot.Expert)
	store.decisions[key] = Decision{Row: 7, Col: 9, Difficulty: "expert", Stones: 7}

	res, err := svc.BestMove(context.Background(), req)
	if err != nil {
		t.Fatalf("expected move, got %v", err)
	}
	if res.Source != SourceStore {
		t.Fatalf("expected store hit, got %+v", res)
	}
	raw, err := cache.Get(context.Background(), key)
	if err != nil {
		t.Fatalf("expected store hit to warm the cache, got %v", err)
	}
	var cached Decision
	if err := json.Unmarshal([]byte(raw), &cached); err != nil || cached.Col != 9 {
		t.Fatalf("expected cached decision for (7,9), got %q (%v)", raw, err)
	}
}

func TestBestMoveSkipsCacheForMediumAndOpening(t *testing.T) {
	cache := newMemoryCache()
	svc := newTestService(cache, nil)

	if _, err := svc.BestMove(context.Background(), MoveRequest{Board: blockGrid(), Computer: 2, Human: 1, Difficulty: "medium"}); err != nil {
		t.Fatalf("expected move, got %v", err)
	}
	if _, err := svc.BestMove(context.Background(), MoveRequest{Board: emptyGrid(15), Computer: 1, Human: 2, Difficulty: "expert"}); err != nil {
		t.Fatalf("expected move, got %v", err)
	}
	if cache.sets != 0 {
		t.Fatalf("expected randomised tiers not to be cached, got %d sets", cache.sets)
	}
}

func TestBestMoveDropsCorruptCacheEntry(t *testing.T) {
	cache := newMemoryCache()
	svc := newTestService(cache, nil)

	req := MoveRequest{Board: blockGrid(), Computer: 2, Human: 1, Difficulty: "hard"}
	board, _ := domain.BoardFromGrid(req.Board)
	key := decisionKey(board, domain.Player2, domain.Player1, bot.Hard)
	cache.entries[key] = "{not json"

	res, err := svc.BestMove(context.Background(), req)
	if err != nil {
		t.Fatalf("expected move, got %v", err)
	}
	if res.Source != SourceEngine {
		t.Fatalf("expected a fresh search after a corrupt entry, got %+v", res)
	}
}

func TestBestMoveIgnoresOccupiedRememberedMove(t *testing.T) {
	cache := newMemoryCache()
	store := &memoryStore{decisions: make(map[string]Decision)}
	svc := newTestService(cache, store)

	req := MoveRequest{Board: blockGrid(), Computer: 2, Human: 1, Difficulty: "hard"}
	board, _ := domain.BoardFromGrid(req.Board)
	key := decisionKey(board, domain.Player2, domain.Player1, bot.Hard)
	cache.entries[key] = `{"row":7,"col":5,"difficulty":"hard","stones":7}`
	store.decisions[key] = Decision{Row: 7, Col: 4, Difficulty: "hard", Stones: 7}

	res, err := svc.BestMove(context.Background(), req)
	if err != nil {
		t.Fatalf("expected move, got %v", err)
	}
	if res.Source != SourceEngine || res.Row != 7 || res.Col != 9 {
		t.Fatalf("expected a fresh search blocking at (7,9), got %+v", res)
	}
	if got := store.decisions[key]; got.Row != 7 || got.Col != 9 {
		t.Fatalf("expected the stored decision to be replaced, got %+v", got)
	}

	res, _ = svc.BestMove(context.Background(), req)
	if res.Source != SourceCache || res.Col != 9 {
		t.Fatalf("expected the fresh answer to be cached, got %+v", res)
	}
}

func TestBestMoveIgnoresNoMoveOnOpenBoard(t *testing.T) {
	cache := newMemoryCache()
	svc := newTestService(cache, nil)

	req := MoveRequest{Board: blockGrid(), Computer: 2, Human: 1, Difficulty: "expert"}
	board, _ := domain.BoardFromGrid(req.Board)
	key := decisionKey(board, domain.Player2, domain.Player1, bot.Expert)
	cache.entries[key] = `{"noMove":true,"difficulty":"expert","stones":7}`

	res, err := svc.BestMove(context.Background(), req)
	if err != nil {
		t.Fatalf("expected move, got %v", err)
	}
	if res.NoMove || res.Source != SourceEngine {
		t.Fatalf("expected a real move from the engine, got %+v", res)
	}
}

func TestBestMoveNoMoveOnFullBoard(t *testing.T) {
	// Checkerboard with the shared diagonal centre flipped, and one cell
	// swapped back to keep the counts at 13 vs 12.
	grid := emptyGrid(5)
	for r := range grid {
		for c := range grid[r] {
			grid[r][c] = 1 + (r+c)%2
		}
	}
	grid[2][2] = 2
	grid[0][1] = 1

	res, err := newTestService(nil, nil).BestMove(context.Background(), MoveRequest{Board: grid, Computer: 2, Human: 1, Difficulty: "hard"})
	if err != nil {
		t.Fatalf("expected no-move result, got %v", err)
	}
	if !res.NoMove {
		t.Fatalf("expected noMove on a full board, got %+v", res)
	}
}

func TestBestMoveRejectsInvalidInput(t *testing.T) {
	svc := newTestService(nil, nil)

	lopsided := emptyGrid(15)
	lopsided[0][0], lopsided[0][2], lopsided[0][4] = 1, 1, 1

	won := emptyGrid(15)
	for c := 0; c < 5; c++ {
		won[3][c] = 1
		won[9][c] = 2
	}

	cases := []struct {
		name string
		req  MoveRequest
		want error
	}{
		{"bad difficulty", MoveRequest{Board: emptyGrid(15), Computer: 1, Human: 2, Difficulty: "impossible"}, domain.ErrInvalidDifficulty},
		{"same players", MoveRequest{Board: emptyGrid(15), Computer: 1, Human: 1, Difficulty: "hard"}, domain.ErrInvalidPlayer},
		{"unknown player", MoveRequest{Board: emptyGrid(15), Computer: 3, Human: 1, Difficulty: "hard"}, domain.ErrInvalidPlayer},
		{"ragged board", MoveRequest{Board: [][]int{{0}}, Computer: 1, Human: 2, Difficulty: "hard"}, domain.ErrInvalidBoard},
		{"stone counts", MoveRequest{Board: lopsided, Computer: 2, Human: 1, Difficulty: "hard"}, domain.ErrInvalidBoard},
		{"already won", MoveRequest{Board: won, Computer: 2, Human: 1, Difficulty: "hard"}, domain.ErrInvalidBoard},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.BestMove(context.Background(), tc.req); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestCheckWinAndThreats(t *testing.T) {
	svc := newTestService(nil, nil)

	grid := emptyGrid(15)
	for c := 3; c <= 7; c++ {
		grid[4][c] = 2
	}
	res, err := svc.CheckWin(WinRequest{Board: grid, Row: 4, Col: 7, Player: 2})
	if err != nil || !res.Won || len(res.Line) != 5 {
		t.Fatalf("expected win with a five-cell line, got %+v (%v)", res, err)
	}
	if _, err := svc.CheckWin(WinRequest{Board: grid, Row: 0, Col: 0, Player: 2}); !errors.Is(err, domain.ErrInvalidMove) {
		t.Fatalf("expected ErrInvalidMove for an empty cell, got %v", err)
	}

	threatGrid := emptyGrid(15)
	threatGrid[7][6], threatGrid[7][7], threatGrid[7][8] = 1, 1, 1
	hints, err := svc.Threats(ThreatRequest{Board: threatGrid, Player: 1})
	if err != nil {
		t.Fatalf("expected hints, got %v", err)
	}
	openFours := 0
	for _, h := range hints {
		if h.Threat == "open_four" {
			openFours++
		}
	}
	if openFours != 2 {
		t.Fatalf("expected 2 open-four cells, got %+v", hints)
	}
}
