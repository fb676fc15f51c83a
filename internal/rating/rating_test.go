package rating

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExpectedScoreSymmetry(t *testing.T) {
	tests := []struct {
		name string
		a    int
		b    int
	}{
		{name: "equal", a: 1000, b: 1000},
		{name: "favorite", a: 1400, b: 1000},
		{name: "underdog", a: 900, b: 1600},
		{name: "negative", a: -200, b: 350},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sum := ExpectedScore(tt.a, tt.b) + ExpectedScore(tt.b, tt.a)
			assert.InDelta(t, 1.0, sum, 1e-12)
		})
	}
}

func TestExpectedScoreEqualRatings(t *testing.T) {
	assert.InDelta(t, 0.5, ExpectedScore(1000, 1000), 1e-12)
	assert.InDelta(t, 0.5, ExpectedScore(1481, 1481), 1e-12)
}

func TestOutcome(t *testing.T) {
	assert.Equal(t, 1.0, Outcome(11, 9))
	assert.Equal(t, 0.0, Outcome(9, 11))
	assert.Equal(t, 0.5, Outcome(7, 7))
}

func TestUpdatedRatingDeltaSymmetry(t *testing.T) {
	winner := UpdatedRating(1000, 1000, 1)
	loser := UpdatedRating(1000, 1000, 0)

	assert.InDelta(t, winner-1000, -(loser - 1000), 1e-12)
}

func TestDrawBetweenEqualRatings(t *testing.T) {
	new1, new2 := NewRatings(1000, 1000, 10, 10)

	assert.Equal(t, 1000, new1)
	assert.Equal(t, 1000, new2)
}

func TestNewRatings(t *testing.T) {
	tests := []struct {
		name    string
		rating1 int
		rating2 int
		score1  int
		score2  int
		want1   int
		want2   int
	}{
		{name: "evenMatchWin", rating1: 1000, rating2: 1000, score1: 11, score2: 9, want1: 1016, want2: 984},
		{name: "favoriteWins", rating1: 1200, rating2: 1000, score1: 21, score2: 5, want1: 1207, want2: 992},
		{name: "upset", rating1: 1200, rating2: 1000, score1: 3, score2: 21, want1: 1175, want2: 1024},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got1, got2 := NewRatings(tt.rating1, tt.rating2, tt.score1, tt.score2)
			assert.Equal(t, tt.want1, got1)
			assert.Equal(t, tt.want2, got2)
		})
	}
}

func TestNewRatingsOrderIndependent(t *testing.T) {
	a1, b1 := NewRatings(1100, 950, 11, 7)
	b2, a2 := NewRatings(950, 1100, 7, 11)

	assert.Equal(t, a1, a2)
	assert.Equal(t, b1, b2)
}
