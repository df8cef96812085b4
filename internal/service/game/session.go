package game

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/iamasit07/5-in-a-row/backend/internal/domain"
	"github.com/iamasit07/5-in-a-row/backend/internal/service/bot"
	"github.com/iamasit07/5-in-a-row/backend/pkg/uid"
)

const (
	ReasonFiveInARow = "five_in_a_row"
	ReasonDraw       = "draw"
	ReasonAbandoned  = "abandoned"
)

// Notifier delivers server messages to a connected client.
type Notifier interface {
	SendMessage(clientID string, message domain.ServerMessage) error
}

// Session is one human-vs-computer game. It lives only in memory.
type Session struct {
	GameID       string
	ClientID     string
	Game         *domain.Game
	Human        domain.PlayerID
	Computer     domain.PlayerID
	Difficulty   bot.Difficulty
	Reason       string
	CreatedAt    time.Time
	FinishedAt   time.Time
	lastActivity time.Time
	mu           sync.Mutex
	engine       *bot.Engine
	notifier     Notifier
	botDelay     time.Duration
}

// SessionManager manages active bot games, at most one per client.
type SessionManager struct {
	sessions     map[string]*Session // gameID → Session
	clientToGame map[string]string   // clientID → gameID
	mu           sync.RWMutex
	engine       *bot.Engine
	boardSize    int
	botDelay     time.Duration
}

func NewSessionManager(engine *bot.Engine, boardSize int, botDelay time.Duration) *SessionManager {
	return &SessionManager{
		sessions:     make(map[string]*Session),
		clientToGame: make(map[string]string),
		engine:       engine,
		boardSize:    boardSize,
		botDelay:     botDelay,
	}
}

// StartOptions describes a new game. Zero values fall back to the manager's defaults.
type StartOptions struct {
	Difficulty bot.Difficulty
	HumanPlays domain.PlayerID
	Size       int
}

// Start replaces any game the client already has with a fresh one. When the
// computer holds Player1 it opens immediately.
func (sm *SessionManager) Start(clientID string, opts StartOptions, notifier Notifier) (*Session, error) {
	if opts.HumanPlays == domain.Empty {
		opts.HumanPlays = domain.Player1
	}
	if !opts.HumanPlays.Valid() {
		return nil, fmt.Errorf("%w: %d", domain.ErrInvalidPlayer, opts.HumanPlays)
	}
	if opts.Size == 0 {
		opts.Size = sm.boardSize
	}
	if opts.Size < domain.MinSize || opts.Size > domain.MaxSize {
		return nil, fmt.Errorf("%w: size %d", domain.ErrInvalidBoard, opts.Size)
	}
	if _, err := bot.ParseDifficulty(string(opts.Difficulty)); err != nil {
		return nil, err
	}

	sm.EndForClient(clientID)

	now := time.Now()
	s := &Session{
		GameID:       uid.GenerateGameID(),
		ClientID:     clientID,
		Game:         domain.NewGame(opts.Size),
		Human:        opts.HumanPlays,
		Computer:     opts.HumanPlays.Opponent(),
		Difficulty:   opts.Difficulty,
		CreatedAt:    now,
		lastActivity: now,
		engine:       sm.engine,
		notifier:     notifier,
		botDelay:     sm.botDelay,
	}

	sm.mu.Lock()
	sm.sessions[s.GameID] = s
	sm.clientToGame[clientID] = s.GameID
	sm.mu.Unlock()

	log.Printf("[SESSION] Created session %s for client %s: %s bot, human plays %d on %dx%d",
		s.GameID, clientID, opts.Difficulty, s.Human, opts.Size, opts.Size)

	s.mu.Lock()
	notifier.SendMessage(clientID, domain.ServerMessage{
		Type:       "game_started",
		GameID:     s.GameID,
		Opponent:   domain.GetBotName(string(s.Difficulty)),
		Difficulty: string(s.Difficulty),
		YourPlayer: int(s.Human),
		NextTurn:   int(s.Game.CurrentPlayer),
		Board:      s.Game.Board.Grid(),
	})
	if s.Game.CurrentPlayer == s.Computer {
		s.scheduleBotMove()
	}
	s.mu.Unlock()

	return s, nil
}

func (sm *SessionManager) GetSessionByClientID(clientID string) (*Session, bool) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	gameID, exists := sm.clientToGame[clientID]
	if !exists {
		return nil, false
	}
	s, exists := sm.sessions[gameID]
	return s, exists
}

func (sm *SessionManager) GetSessionByGameID(gameID string) (*Session, bool) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	s, exists := sm.sessions[gameID]
	return s, exists
}

func (sm *SessionManager) RemoveSession(gameID string) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	return sm.removeSessionLocked(gameID)
}

// removeSessionLocked expects sm.mu to be held.
func (sm *SessionManager) removeSessionLocked(gameID string) error {
	s, exists := sm.sessions[gameID]
	if !exists {
		return fmt.Errorf("session not found")
	}

	log.Printf("[SESSION] Removing session %s", gameID)

	if sm.clientToGame[s.ClientID] == gameID {
		delete(sm.clientToGame, s.ClientID)
	}
	delete(sm.sessions, gameID)
	return nil
}

// EndForClient abandons the client's active game, if any, and forgets it.
// Called when the client starts another game or disconnects.
func (sm *SessionManager) EndForClient(clientID string) {
	s, exists := sm.GetSessionByClientID(clientID)
	if !exists {
		return
	}
	s.Abandon()
	sm.RemoveSession(s.GameID)
}

// CleanupIdleSessions drops sessions nobody has touched for longer than idle.
func (sm *SessionManager) CleanupIdleSessions(idle time.Duration) int {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	count := 0
	now := time.Now()
	for gameID, s := range sm.sessions {
		if now.Sub(s.LastActivity()) > idle {
			sm.removeSessionLocked(gameID)
			count++
		}
	}

	if count > 0 {
		log.Printf("[SESSION] Memory cleanup: Removed %d idle game sessions", count)
	}
	return count
}

func (sm *SessionManager) Count() int {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return len(sm.sessions)
}

func (s *Session) LastActivity() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastActivity
}

// HandleMove applies the human's stone and, if the game goes on, queues the
// computer's reply.
func (s *Session) HandleMove(pos domain.Position) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastActivity = time.Now()
	if s.Game.IsFinished() {
		return domain.ErrGameFinished
	}
	if s.Game.CurrentPlayer != s.Human {
		return domain.ErrNotYourTurn
	}
	if err := s.Game.MakeMove(s.Human, pos); err != nil {
		return err
	}

	s.announceMove(s.Human, pos)
	if s.Game.IsFinished() {
		s.finish()
		return nil
	}

	s.scheduleBotMove()
	return nil
}

func (s *Session) scheduleBotMove() {
	go func() {
		if s.botDelay > 0 {
			time.Sleep(s.botDelay)
		}
		if err := s.PlayBotMove(); err != nil {
			log.Printf("[BOT] Error handling bot move in %s: %v", s.GameID, err)
		}
	}()
}

// PlayBotMove asks the engine for the computer's stone. It is a no-op unless
// the game is active and it is the computer's turn.
func (s *Session) PlayBotMove() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Game.IsFinished() || s.Game.CurrentPlayer != s.Computer {
		return nil
	}

	pos, ok := s.engine.FindBestMove(s.Game.Board, s.Computer, s.Human, s.Difficulty)
	if !ok {
		return nil
	}
	if err := s.Game.MakeMove(s.Computer, pos); err != nil {
		return err
	}

	s.lastActivity = time.Now()
	s.announceMove(s.Computer, pos)
	if s.Game.IsFinished() {
		s.finish()
	}
	return nil
}

// Abandon ends an active game as a loss for the human.
func (s *Session) Abandon() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Game.IsFinished() {
		return
	}
	if err := s.Game.Resign(s.Human); err != nil {
		return
	}
	s.Reason = ReasonAbandoned
	s.FinishedAt = time.Now()
	log.Printf("[SESSION] Session %s abandoned by client %s", s.GameID, s.ClientID)

	s.notifier.SendMessage(s.ClientID, domain.ServerMessage{
		Type:   "game_over",
		GameID: s.GameID,
		Winner: int(s.Game.Winner),
		Reason: s.Reason,
		Board:  s.Game.Board.Grid(),
	})
}

func (s *Session) announceMove(player domain.PlayerID, pos domain.Position) {
	move := pos
	msg := domain.ServerMessage{
		Type:     "move_made",
		GameID:   s.GameID,
		Move:     &move,
		Player:   int(player),
		Board:    s.Game.Board.Grid(),
		NextTurn: int(s.Game.CurrentPlayer),
	}
	if s.Game.IsFinished() {
		msg.NextTurn = 0
	}
	s.notifier.SendMessage(s.ClientID, msg)
}

// finish expects s.mu to be held and the game to be over.
func (s *Session) finish() {
	s.FinishedAt = time.Now()
	if s.Game.Status == domain.StatusDraw {
		s.Reason = ReasonDraw
	} else {
		s.Reason = ReasonFiveInARow
	}

	log.Printf("[GAME] Game %s over: %s, winner %d after %d moves", s.GameID, s.Reason, s.Game.Winner, s.Game.MoveCount)

	s.notifier.SendMessage(s.ClientID, domain.ServerMessage{
		Type:        "game_over",
		GameID:      s.GameID,
		Winner:      int(s.Game.Winner),
		Reason:      s.Reason,
		Board:       s.Game.Board.Grid(),
		WinningLine: s.Game.WinningLine,
	})
}

// Rematch starts a new game with the same settings and colours swapped.
func (sm *SessionManager) Rematch(clientID string, notifier Notifier) (*Session, error) {
	prev, exists := sm.GetSessionByClientID(clientID)
	if !exists {
		return nil, fmt.Errorf("game not found")
	}

	prev.mu.Lock()
	opts := StartOptions{
		Difficulty: prev.Difficulty,
		HumanPlays: prev.Computer,
		Size:       prev.Game.Board.Size(),
	}
	finished := prev.Game.IsFinished()
	prev.mu.Unlock()

	if !finished {
		return nil, fmt.Errorf("game still in progress")
	}
	return sm.Start(clientID, opts, notifier)
}

// GameSummary is a read-only view of a live session.
type GameSummary struct {
	GameID     string `json:"gameId"`
	Difficulty string `json:"difficulty"`
	Opponent   string `json:"opponent"`
	HumanPlays int    `json:"humanPlays"`
	BoardSize  int    `json:"boardSize"`
	MoveCount  int    `json:"moveCount"`
	Status     string `json:"status"`
	StartedAt  string `json:"startedAt"`
}

// ActiveGames lists games that are still being played.
func (sm *SessionManager) ActiveGames() []GameSummary {
	sm.mu.RLock()
	sessions := make([]*Session, 0, len(sm.sessions))
	for _, s := range sm.sessions {
		sessions = append(sessions, s)
	}
	sm.mu.RUnlock()

	games := make([]GameSummary, 0, len(sessions))
	for _, s := range sessions {
		s.mu.Lock()
		if !s.Game.IsFinished() {
			games = append(games, GameSummary{
				GameID:     s.GameID,
				Difficulty: string(s.Difficulty),
				Opponent:   domain.GetBotName(string(s.Difficulty)),
				HumanPlays: int(s.Human),
				BoardSize:  s.Game.Board.Size(),
				MoveCount:  s.Game.MoveCount,
				Status:     string(s.Game.Status),
				StartedAt:  s.CreatedAt.Format(time.RFC3339),
			})
		}
		s.mu.Unlock()
	}
	return games
}
