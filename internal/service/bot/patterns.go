package bot

import "github.com/iamasit07/5-in-a-row/backend/internal/domain"

const (
	// Score priorities (from highest to lowest)
	SCORE_FIVE             = 100000
	SCORE_OPEN_FOUR        = 10000
	SCORE_CLOSED_FOUR      = 1000
	SCORE_OPEN_THREE       = 1000
	SCORE_SPLIT_THREE      = 800
	SCORE_CLOSED_THREE     = 100
	SCORE_OPEN_TWO         = 100
	SCORE_SPLIT_TWO        = 80
	SCORE_SINGLE_WITH_ROOM = 10
)

// PatternWidth is the size of the sliding sub-window patterns are matched in.
const PatternWidth = 6

type Pattern struct {
	Name     string
	Score    float64
	Template []domain.Mark
}

// Patterns is ordered by matching priority, not by score; the first match at an offset wins.
// Template symbols: S own stone, . empty, X opponent stone or board edge.
var Patterns = []Pattern{
	newPattern("five", SCORE_FIVE, "SSSSS"),
	newPattern("open_four", SCORE_OPEN_FOUR, ".SSSS."),
	newPattern("closed_four", SCORE_CLOSED_FOUR, "XSSSS."),
	newPattern("closed_four", SCORE_CLOSED_FOUR, ".SSSSX"),
	newPattern("open_three", SCORE_OPEN_THREE, ".SSS.."),
	newPattern("open_three", SCORE_OPEN_THREE, "..SSS."),
	newPattern("split_three", SCORE_SPLIT_THREE, ".SS.S."),
	newPattern("split_three", SCORE_SPLIT_THREE, ".S.SS."),
	newPattern("closed_three", SCORE_CLOSED_THREE, "XSSS.."),
	newPattern("closed_three", SCORE_CLOSED_THREE, "..SSSX"),
	newPattern("open_two", SCORE_OPEN_TWO, "..SS.."),
	newPattern("split_two", SCORE_SPLIT_TWO, ".S.S.."),
	newPattern("split_two", SCORE_SPLIT_TWO, "..S.S."),
	newPattern("single", SCORE_SINGLE_WITH_ROOM, "..S.."),
}

func newPattern(name string, score float64, template string) Pattern {
	return Pattern{Name: name, Score: score, Template: ParseMarks(template)}
}

// ParseMarks converts the template notation into marks; it panics on unknown symbols.
func ParseMarks(template string) []domain.Mark {
	marks := make([]domain.Mark, len(template))
	for i, ch := range template {
		switch ch {
		case 'S':
			marks[i] = domain.MarkSelf
		case '.':
			marks[i] = domain.MarkEmpty
		case 'X':
			marks[i] = domain.MarkBlocked
		default:
			panic("bot: unknown template symbol " + string(ch))
		}
	}
	return marks
}

func (p Pattern) matches(window []domain.Mark) bool {
	if len(p.Template) > len(window) {
		return false
	}
	for i, m := range p.Template {
		if window[i] != m {
			return false
		}
	}
	return true
}

// runScore maps a contiguous run and its number of empty ends onto the pattern scores.
func runScore(length, openEnds int) float64 {
	switch {
	case length >= 5:
		return SCORE_FIVE
	case openEnds == 0:
		return 0
	case length == 4:
		if openEnds == 2 {
			return SCORE_OPEN_FOUR
		}
		return SCORE_CLOSED_FOUR
	case length == 3:
		if openEnds == 2 {
			return SCORE_OPEN_THREE
		}
		return SCORE_CLOSED_THREE
	case length == 2:
		if openEnds == 2 {
			return SCORE_OPEN_TWO
		}
		return SCORE_SINGLE_WITH_ROOM
	default:
		if openEnds == 2 {
			return SCORE_SINGLE_WITH_ROOM
		}
		return 0
	}
}
