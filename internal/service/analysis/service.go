package analysis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/iamasit07/5-in-a-row/backend/internal/domain"
	"github.com/iamasit07/5-in-a-row/backend/internal/service/bot"
)

const (
	SourceCache  = "cache"
	SourceStore  = "store"
	SourceEngine = "engine"
)

// CacheRepository is satisfied by the Redis and Badger adapters.
// Get must return domain.ErrCacheMiss for absent keys.
type CacheRepository interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, keys ...string) error
}

// DecisionStore is the durable tier behind the cache. GetDecision returns nil, nil on a miss.
type DecisionStore interface {
	GetDecision(ctx context.Context, key string) (*Decision, error)
	SaveDecision(ctx context.Context, key string, d Decision) error
}

// Decision is what gets cached: a deterministic engine answer for one snapshot.
type Decision struct {
	Row        int    `json:"row"`
	Col        int    `json:"col"`
	NoMove     bool   `json:"noMove"`
	Difficulty string `json:"difficulty"`
	Stones     int    `json:"stones"`
}

type Service struct {
	engine   *bot.Engine
	cache    CacheRepository
	store    DecisionStore
	cacheTTL time.Duration
}

// NewService wires the engine to optional cache and store tiers; either may be nil.
func NewService(engine *bot.Engine, cache CacheRepository, store DecisionStore, cacheTTL time.Duration) *Service {
	return &Service{
		engine:   engine,
		cache:    cache,
		store:    store,
		cacheTTL: cacheTTL,
	}
}

type MoveRequest struct {
	Board      [][]int `json:"board"`
	Computer   int     `json:"computer"`
	Human      int     `json:"human"`
	Difficulty string  `json:"difficulty"`
}

type MoveResult struct {
	Row       int    `json:"row"`
	Col       int    `json:"col"`
	NoMove    bool   `json:"noMove"`
	Source    string `json:"source"`
	ElapsedMs int64  `json:"elapsedMs"`
}

// BestMove validates the snapshot and answers from cache, store or a fresh search.
// Tier failures are logged and never fail the request.
func (s *Service) BestMove(ctx context.Context, req MoveRequest) (MoveResult, error) {
	start := time.Now()

	board, computer, human, err := ParseSnapshot(req.Board, req.Computer, req.Human)
	if err != nil {
		return MoveResult{}, err
	}
	difficulty, err := bot.ParseDifficulty(req.Difficulty)
	if err != nil {
		return MoveResult{}, err
	}

	stones := board.StoneCount()
	cacheable := difficulty != bot.Medium && stones > 2
	key := decisionKey(board, computer, human, difficulty)

	if cacheable {
		if d, source, ok := s.lookup(ctx, key, board); ok {
			return resultFrom(d, source, start), nil
		}
	}

	if err := ctx.Err(); err != nil {
		return MoveResult{}, err
	}

	move, ok := s.engine.FindBestMove(board, computer, human, difficulty)
	d := Decision{Row: move.Row, Col: move.Col, NoMove: !ok, Difficulty: string(difficulty), Stones: stones}

	elapsed := time.Since(start)
	log.Printf("[ENGINE] %s move for player %d on %d stones: %+v in %v", difficulty, computer, stones, move, elapsed)

	if cacheable {
		s.remember(ctx, key, d)
	}
	return resultFrom(d, SourceEngine, start), nil
}

// lookup tries the cache, then the store. Entries that do not fit the board (a stale
// write or a hash collision) are skipped so the caller searches afresh.
func (s *Service) lookup(ctx context.Context, key string, board *domain.Board) (Decision, string, bool) {
	if s.cache != nil {
		raw, err := s.cache.Get(ctx, key)
		switch {
		case err == nil:
			var d Decision
			if err := json.Unmarshal([]byte(raw), &d); err == nil && fitsBoard(d, board) {
				return d, SourceCache, true
			}
			log.Printf("[CACHE] Dropping unusable entry %s", key)
			_ = s.cache.Del(ctx, key)
		case !errors.Is(err, domain.ErrCacheMiss):
			log.Printf("[CACHE] Get failed for %s: %v", key, err)
		}
	}

	if s.store != nil {
		d, err := s.store.GetDecision(ctx, key)
		if err != nil {
			log.Printf("[DB] Decision lookup failed for %s: %v", key, err)
			return Decision{}, "", false
		}
		if d != nil && fitsBoard(*d, board) {
			s.cacheDecision(ctx, key, *d)
			return *d, SourceStore, true
		}
		if d != nil {
			log.Printf("[DB] Ignoring stored decision %s: (%d,%d) is not playable", key, d.Row, d.Col)
		}
	}
	return Decision{}, "", false
}

// fitsBoard reports whether a remembered decision is still a legal answer: an empty
// cell, or "no move" on a full board.
func fitsBoard(d Decision, board *domain.Board) bool {
	if d.NoMove {
		_, hasEmpty := board.FirstEmpty()
		return !hasEmpty
	}
	return board.IsEmpty(domain.Position{Row: d.Row, Col: d.Col})
}

func (s *Service) remember(ctx context.Context, key string, d Decision) {
	s.cacheDecision(ctx, key, d)
	if s.store != nil {
		if err := s.store.SaveDecision(ctx, key, d); err != nil {
			log.Printf("[DB] Failed to save decision %s: %v", key, err)
		}
	}
}

func (s *Service) cacheDecision(ctx context.Context, key string, d Decision) {
	if s.cache == nil {
		return
	}
	data, err := json.Marshal(d)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, string(data), s.cacheTTL); err != nil {
		log.Printf("[CACHE] Set failed for %s: %v", key, err)
	}
}

func resultFrom(d Decision, source string, start time.Time) MoveResult {
	return MoveResult{
		Row:       d.Row,
		Col:       d.Col,
		NoMove:    d.NoMove,
		Source:    source,
		ElapsedMs: time.Since(start).Milliseconds(),
	}
}

func decisionKey(b *domain.Board, computer, human domain.PlayerID, difficulty bot.Difficulty) string {
	return fmt.Sprintf("move:%d:%016x:%d:%d:%s", b.Size(), domain.Hash(b), computer, human, difficulty)
}

// ParseSnapshot turns a raw grid into a board and checks it is a position the engine
// may be asked about: distinct players, alternating stone counts and nobody already on five.
func ParseSnapshot(grid [][]int, computer, human int) (*domain.Board, domain.PlayerID, domain.PlayerID, error) {
	board, err := domain.BoardFromGrid(grid)
	if err != nil {
		return nil, 0, 0, err
	}

	c, h := domain.PlayerID(computer), domain.PlayerID(human)
	if !c.Valid() || !h.Valid() || c == h {
		return nil, 0, 0, fmt.Errorf("%w: computer=%d human=%d", domain.ErrInvalidPlayer, computer, human)
	}

	diff := board.CountOf(domain.Player1) - board.CountOf(domain.Player2)
	if diff < -1 || diff > 1 {
		return nil, 0, 0, fmt.Errorf("%w: stone counts differ by %d", domain.ErrInvalidBoard, diff)
	}

	if winner, won := findFive(board); won {
		return nil, 0, 0, fmt.Errorf("%w: player %d already has five in a row", domain.ErrInvalidBoard, winner)
	}
	return board, c, h, nil
}

func findFive(b *domain.Board) (domain.PlayerID, bool) {
	size := b.Size()
	for row := 0; row < size; row++ {
		for col := 0; col < size; col++ {
			p := domain.Position{Row: row, Col: col}
			player := b.At(p)
			if player == domain.Empty {
				continue
			}
			if _, won := domain.CheckWin(b, p, player); won {
				return player, true
			}
		}
	}
	return domain.Empty, false
}
