package analysis

import (
	"fmt"

	"github.com/iamasit07/5-in-a-row/backend/internal/domain"
	"github.com/iamasit07/5-in-a-row/backend/internal/service/bot"
)

type WinRequest struct {
	Board  [][]int `json:"board"`
	Row    int     `json:"row"`
	Col    int     `json:"col"`
	Player int     `json:"player"`
}

type WinResult struct {
	Won  bool              `json:"won"`
	Line []domain.Position `json:"line"`
}

// CheckWin runs the win detector on a stone that is already on the board.
func (s *Service) CheckWin(req WinRequest) (WinResult, error) {
	board, err := domain.BoardFromGrid(req.Board)
	if err != nil {
		return WinResult{}, err
	}
	player := domain.PlayerID(req.Player)
	if !player.Valid() {
		return WinResult{}, fmt.Errorf("%w: %d", domain.ErrInvalidPlayer, req.Player)
	}
	last := domain.Position{Row: req.Row, Col: req.Col}
	if !board.InBounds(last) {
		return WinResult{}, domain.ErrOutOfBounds
	}
	if board.At(last) != player {
		return WinResult{}, fmt.Errorf("%w: (%d,%d) does not hold player %d", domain.ErrInvalidMove, req.Row, req.Col, req.Player)
	}

	line, won := domain.CheckWin(board, last, player)
	if line == nil {
		line = []domain.Position{}
	}
	return WinResult{Won: won, Line: line}, nil
}

type ThreatRequest struct {
	Board  [][]int `json:"board"`
	Player int     `json:"player"`
}

type ThreatHint struct {
	Row    int    `json:"row"`
	Col    int    `json:"col"`
	Threat string `json:"threat"`
	Score  int    `json:"score"`
}

// Threats lists the cells where player would make an open three, a four or an open four.
func (s *Service) Threats(req ThreatRequest) ([]ThreatHint, error) {
	board, err := domain.BoardFromGrid(req.Board)
	if err != nil {
		return nil, err
	}
	player := domain.PlayerID(req.Player)
	if !player.Valid() {
		return nil, fmt.Errorf("%w: %d", domain.ErrInvalidPlayer, req.Player)
	}

	threats := bot.Threats(board, player)
	hints := make([]ThreatHint, 0, len(threats))
	for _, t := range threats {
		hints = append(hints, ThreatHint{Row: t.Pos.Row, Col: t.Pos.Col, Threat: t.Threat.String(), Score: t.Threat.Score()})
	}
	return hints, nil
}
