package bot

import "github.com/iamasit07/5-in-a-row/backend/internal/domain"

type Threat int

const (
	ThreatNone Threat = iota
	ThreatOpenThree
	ThreatFour
	ThreatOpenFour
)

func (t Threat) String() string {
	switch t {
	case ThreatOpenThree:
		return "open_three"
	case ThreatFour:
		return "four"
	case ThreatOpenFour:
		return "open_four"
	default:
		return "none"
	}
}

func (t Threat) Score() int {
	switch t {
	case ThreatOpenFour:
		return 10000
	case ThreatFour:
		return 1000
	case ThreatOpenThree:
		return 500
	default:
		return 0
	}
}

// ThreatMove is a cell that creates a threat for the acting side, or denies one to the
// opponent when Offensive is false.
type ThreatMove struct {
	Pos       domain.Position
	Threat    Threat
	Offensive bool
}

// ClassifyThreat reports the strongest shape player would make by playing the empty cell
// pos. The board is only read; the stone at pos is implied.
func ClassifyThreat(b *domain.Board, pos domain.Position, player domain.PlayerID) Threat {
	if !b.IsEmpty(pos) {
		return ThreatNone
	}

	best := ThreatNone
	for _, dir := range domain.Directions {
		back := domain.Direction{DRow: -dir.DRow, DCol: -dir.DCol}
		forward := domain.CountInDirection(b, pos, dir, player)
		backward := domain.CountInDirection(b, pos, back, player)
		run := 1 + forward + backward

		open := 0
		if b.IsEmpty(pos.Add(dir, forward+1)) {
			open++
		}
		if b.IsEmpty(pos.Add(back, backward+1)) {
			open++
		}

		threat := ThreatNone
		switch {
		case run == 4 && open == 2:
			threat = ThreatOpenFour
		case run == 4 && open == 1:
			threat = ThreatFour
		case run == 3 && open == 2:
			threat = ThreatOpenThree
		}
		if threat > best {
			best = threat
		}
	}
	return best
}

// Threats lists every candidate cell that gives player a threat, in row-major order.
func Threats(b *domain.Board, player domain.PlayerID) []ThreatMove {
	var threats []ThreatMove
	for _, p := range Candidates(b) {
		if t := ClassifyThreat(b, p, player); t != ThreatNone {
			threats = append(threats, ThreatMove{Pos: p, Threat: t, Offensive: true})
		}
	}
	return threats
}

// FindThreatMove compares the strongest threat player can make with the strongest one
// opponent could make next. Player attacks when its threat scores at least as high;
// otherwise it takes the cell where the opponent's threat would land, so an open three
// is never left to become an open four. Ties go to the first cell found.
func FindThreatMove(b *domain.Board, player, opponent domain.PlayerID) (ThreatMove, bool) {
	attack, canAttack := strongestThreat(b, player)
	defend, mustDefend := strongestThreat(b, opponent)

	switch {
	case canAttack && (!mustDefend || attack.Threat.Score() >= defend.Threat.Score()):
		attack.Offensive = true
		return attack, true
	case mustDefend:
		defend.Offensive = false
		return defend, true
	}
	return ThreatMove{}, false
}

func strongestThreat(b *domain.Board, player domain.PlayerID) (ThreatMove, bool) {
	var best ThreatMove
	found := false
	for _, t := range Threats(b, player) {
		if !found || t.Threat.Score() > best.Threat.Score() {
			best = t
			found = true
		}
	}
	return best, found
}
