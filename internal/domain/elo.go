package domain

import "math"

const (
	KFactor       = 32.0
	InitialRating = 1200
)

// CalculateElo returns the new rating for player A.
// score is 1.0 for a win, 0.5 for a draw, and 0.0 for a loss.
func CalculateElo(ratingA, ratingB int, score float64) int {
	expectedScoreA := 1.0 / (1.0 + math.Pow(10.0, float64(ratingB-ratingA)/400.0))
	newRating := float64(ratingA) + KFactor*(score-expectedScoreA)

	if newRating < 0 {
		return 0
	}
	return int(math.Round(newRating))
}

// Ratings tracks Elo per named player, e.g. per engine tier in self-play.
type Ratings map[string]int

func (r Ratings) Get(name string) int {
	if rating, ok := r[name]; ok {
		return rating
	}
	return InitialRating
}

// Record updates both ratings from one game. winner is a, b, or "" for a draw.
func (r Ratings) Record(a, b, winner string) {
	scoreA := 0.5
	switch winner {
	case a:
		scoreA = 1.0
	case b:
		scoreA = 0.0
	}
	ra, rb := r.Get(a), r.Get(b)
	r[a] = CalculateElo(ra, rb, scoreA)
	r[b] = CalculateElo(rb, ra, 1.0-scoreA)
}
