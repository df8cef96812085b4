package domain

// ClientMessage is anything a websocket client sends.
type ClientMessage struct {
	Type string `json:"type"`

	// find_move
	Board    [][]int `json:"board,omitempty"`
	Computer int     `json:"computer,omitempty"`
	Human    int     `json:"human,omitempty"`

	// new_game
	Difficulty string `json:"difficulty,omitempty"`
	HumanPlays int    `json:"humanPlays,omitempty"`
	Size       int    `json:"size,omitempty"`

	// make_move
	Row int `json:"row"`
	Col int `json:"col"`

	Token string `json:"token,omitempty"`
}

type ServerMessage struct {
	Type        string     `json:"type"`
	GameID      string     `json:"gameId,omitempty"`
	Message     string     `json:"message,omitempty"`
	Move        *Position  `json:"move,omitempty"`
	NoMove      bool       `json:"noMove,omitempty"`
	Source      string     `json:"source,omitempty"`
	Player      int        `json:"player,omitempty"`
	YourPlayer  int        `json:"yourPlayer,omitempty"`
	NextTurn    int        `json:"nextTurn,omitempty"`
	Opponent    string     `json:"opponent,omitempty"`
	Difficulty  string     `json:"difficulty,omitempty"`
	Board       [][]int    `json:"board,omitempty"`
	Winner      int        `json:"winner,omitempty"`
	Reason      string     `json:"reason,omitempty"`
	WinningLine []Position `json:"winningLine,omitempty"`
}
