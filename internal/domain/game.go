package domain

// Game is the authoritative game-state holder: it owns the board, enforces turn order
// and decides when the game is over.
type Game struct {
	Board         *Board
	CurrentPlayer PlayerID
	Status        GameStatus
	Winner        PlayerID
	MoveCount     int
	WinningLine   []Position
	History       []Position
}

func NewGame(size int) *Game {
	return &Game{
		Board:         NewBoard(size),
		CurrentPlayer: Player1,
		Status:        StatusActive,
		Winner:        Empty,
	}
}

func (g *Game) MakeMove(player PlayerID, pos Position) error {
	if g.Status != StatusActive {
		return ErrGameFinished
	}
	if player != g.CurrentPlayer {
		return ErrNotYourTurn
	}
	if !g.Board.InBounds(pos) {
		return ErrOutOfBounds
	}
	if g.Board.At(pos) != Empty {
		return ErrCellOccupied
	}

	g.Board.Set(pos, player)
	g.MoveCount++
	g.History = append(g.History, pos)

	if line, won := CheckWin(g.Board, pos, player); won {
		g.Status = StatusWon
		g.Winner = player
		g.WinningLine = line
		return nil
	}

	if g.Board.IsFull() {
		g.Status = StatusDraw
		return nil
	}

	g.CurrentPlayer = player.Opponent()
	return nil
}

func (g *Game) IsFinished() bool {
	return g.Status == StatusWon || g.Status == StatusDraw
}

// Resign ends an active game in favour of player's opponent.
func (g *Game) Resign(player PlayerID) error {
	if g.Status != StatusActive {
		return ErrGameFinished
	}
	if !player.Valid() {
		return ErrInvalidPlayer
	}
	g.Status = StatusWon
	g.Winner = player.Opponent()
	return nil
}
