// Package rating implements the Elo arithmetic used by the ladder.
package rating

import "math"

const (
	// Initial is assigned to every player on registration.
	Initial = 1000

	kFactor = 32
)

// ExpectedScore returns the logistic win expectation of a player rated a
// against a player rated b. ExpectedScore(a, b) + ExpectedScore(b, a) == 1.
func ExpectedScore(a, b int) float64 {
	return 1 / (1 + math.Pow(10, float64(b-a)/400))
}

// Outcome maps a pair of game scores to the Elo outcome of the first
// player: 1 for a win, 0.5 for a draw, 0 for a loss.
func Outcome(myScore, theirScore int) float64 {
	switch {
	case myScore > theirScore:
		return 1
	case myScore == theirScore:
		return 0.5
	default:
		return 0
	}
}

// UpdatedRating returns the unrounded post-match rating of a player rated a
// whose match against a player rated b ended with the given outcome.
func UpdatedRating(a, b int, outcome float64) float64 {
	return float64(a) + kFactor*(outcome-ExpectedScore(a, b))
}

// NewRatings computes both players' post-match ratings from their pre-match
// ratings and game scores. Both updates use the pre-match values, so the
// order of the two computations never matters. Fractional deltas are
// truncated toward zero, matching the stored integer ratings.
func NewRatings(rating1, rating2, score1, score2 int) (int, int) {
	new1 := UpdatedRating(rating1, rating2, Outcome(score1, score2))
	new2 := UpdatedRating(rating2, rating1, Outcome(score2, score1))
	return int(new1), int(new2)
}
