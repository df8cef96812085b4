package domain

var BotNames = map[string]string{
	"medium": "Bob",
	"hard":   "Charles",
	"expert": "Dana",
}

func GetBotName(difficulty string) string {
	if name, ok := BotNames[difficulty]; ok {
		return name
	}
	return "BOT"
}

// PlayerID is the value of a single board cell.
type PlayerID int

const (
	Empty   PlayerID = 0
	Player1 PlayerID = 1
	Player2 PlayerID = 2
)

func (p PlayerID) Valid() bool {
	return p == Player1 || p == Player2
}

func (p PlayerID) Opponent() PlayerID {
	switch p {
	case Player1:
		return Player2
	case Player2:
		return Player1
	default:
		return Empty
	}
}

const (
	DefaultSize = 15
	MinSize     = 5
	MaxSize     = 25
	ToWin       = 5
)

// to represent the game status
type GameStatus string

const (
	StatusActive GameStatus = "active"
	StatusWon    GameStatus = "won"
	StatusDraw   GameStatus = "draw"
)

// basic error that can occur
type Error string

func (e Error) Error() string {
	return string(e)
}

const (
	ErrInvalidMove       Error = "invalid move"
	ErrOutOfBounds       Error = "position is out of bounds"
	ErrCellOccupied      Error = "cell is occupied"
	ErrGameFinished      Error = "game is finished"
	ErrNotYourTurn       Error = "not your turn"
	ErrInvalidBoard      Error = "invalid board"
	ErrInvalidPlayer     Error = "invalid player"
	ErrInvalidDifficulty Error = "invalid difficulty"
)

// ErrCacheMiss is returned by cache adapters when a key is absent.
const ErrCacheMiss Error = "cache miss"
