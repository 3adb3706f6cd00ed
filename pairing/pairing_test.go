package pairing

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vmoreno/padel-showdown/models"
)

func testTournament(policy models.CourtPolicy, courts ...string) *models.Tournament {
	return models.NewTournament("t1", "Test", models.ModeAdjacent, policy, courts, false)
}

func withHistory(t *models.Tournament, pairs ...[2]string) *models.Tournament {
	for i, p := range pairs {
		t.Matches = append(t.Matches, &models.Match{ID: i + 1, Round: 1, SideA: p[0], SideB: p[1]})
	}
	return t
}

func sides(matches []*models.Match) [][2]string {
	out := make([][2]string, len(matches))
	for i, m := range matches {
		out[i] = [2]string{m.SideA, m.SideB}
	}
	return out
}

func TestAdjacentPairsInGivenOrder(t *testing.T) {
	gen := NewAdjacentGenerator()
	matches, err := gen.GenerateRound(context.Background(), Params{
		Tournament: testTournament(models.CourtCycle),
		Order:      []string{"A", "B", "C", "D"},
		Round:      2,
	})
	require.NoError(t, err)
	require.Len(t, matches, 2)
	assert.Equal(t, [][2]string{{"A", "B"}, {"C", "D"}}, sides(matches))
	assert.Equal(t, 2, matches[0].Round)
	assert.Equal(t, 2, matches[1].Round)
}

func TestAdjacentRejectsOddOrder(t *testing.T) {
	gen := NewAdjacentGenerator()
	_, err := gen.GenerateRound(context.Background(), Params{
		Tournament: testTournament(models.CourtCycle),
		Order:      []string{"A", "B", "C"},
		Round:      1,
	})
	assert.Error(t, err)
}

func TestCourtsCycleWhenFewerThanMatches(t *testing.T) {
	gen := NewAdjacentGenerator()
	matches, err := gen.GenerateRound(context.Background(), Params{
		Tournament: testTournament(models.CourtCycle, "Centre", "Glass"),
		Order:      []string{"A", "B", "C", "D", "E", "F"},
		Round:      1,
	})
	require.NoError(t, err)
	require.Len(t, matches, 3)
	assert.Equal(t, "Centre", *matches[0].Court)
	assert.Equal(t, "Glass", *matches[1].Court)
	assert.Equal(t, "Centre", *matches[2].Court)
}

func TestCourtsStrictRefusesOverflow(t *testing.T) {
	gen := NewAdjacentGenerator()
	_, err := gen.GenerateRound(context.Background(), Params{
		Tournament: testTournament(models.CourtStrict, "Centre", "Glass"),
		Order:      []string{"A", "B", "C", "D", "E", "F"},
		Round:      1,
	})
	assert.ErrorIs(t, err, ErrInsufficientCourts)
}

func TestNoCourtsLeavesMatchesUnassigned(t *testing.T) {
	gen := NewAdjacentGenerator()
	matches, err := gen.GenerateRound(context.Background(), Params{
		Tournament: testTournament(models.CourtStrict),
		Order:      []string{"A", "B"},
		Round:      1,
	})
	require.NoError(t, err)
	assert.Nil(t, matches[0].Court)
}

func TestNoRepeatPrefersAdjacentSplit(t *testing.T) {
	gen := NewNoRepeatGenerator()
	matches, err := gen.GenerateRound(context.Background(), Params{
		Tournament: testTournament(models.CourtCycle),
		Order:      []string{"A", "B", "C", "D"},
		Round:      1,
	})
	require.NoError(t, err)
	assert.Equal(t, [][2]string{{"A", "B"}, {"C", "D"}}, sides(matches))
}

func TestNoRepeatAvoidsRematch(t *testing.T) {
	tour := withHistory(testTournament(models.CourtCycle), [2]string{"A", "B"})
	gen := NewNoRepeatGenerator()
	matches, err := gen.GenerateRound(context.Background(), Params{
		Tournament: tour,
		Order:      []string{"A", "B", "C", "D"},
		Round:      2,
	})
	require.NoError(t, err)
	assert.Equal(t, [][2]string{{"A", "C"}, {"B", "D"}}, sides(matches))
}

func TestNoRepeatFallsBackToThirdSplit(t *testing.T) {
	tour := withHistory(testTournament(models.CourtCycle),
		[2]string{"A", "B"},
		[2]string{"A", "C"},
	)
	gen := NewNoRepeatGenerator()
	matches, err := gen.GenerateRound(context.Background(), Params{
		Tournament: tour,
		Order:      []string{"A", "B", "C", "D"},
		Round:      3,
	})
	require.NoError(t, err)
	assert.Equal(t, [][2]string{{"A", "D"}, {"B", "C"}}, sides(matches))
}

func TestNoRepeatFailsWhenBandExhausted(t *testing.T) {
	tour := withHistory(testTournament(models.CourtCycle),
		[2]string{"A", "B"},
		[2]string{"A", "C"},
		[2]string{"A", "D"},
	)
	gen := NewNoRepeatGenerator()
	_, err := gen.GenerateRound(context.Background(), Params{
		Tournament: tour,
		Order:      []string{"A", "B", "C", "D"},
		Round:      4,
	})
	assert.ErrorIs(t, err, ErrNoValidPairing)
}

func TestNoRepeatTrailingPairRematchFails(t *testing.T) {
	tour := withHistory(testTournament(models.CourtCycle), [2]string{"E", "F"})
	gen := NewNoRepeatGenerator()
	_, err := gen.GenerateRound(context.Background(), Params{
		Tournament: tour,
		Order:      []string{"A", "B", "C", "D", "E", "F"},
		Round:      2,
	})
	assert.ErrorIs(t, err, ErrNoValidPairing)
}

func TestForModeSelectsGenerator(t *testing.T) {
	assert.Equal(t, "Adjacent", ForMode(models.ModeAdjacent).Name())
	assert.Equal(t, "NoRepeat", ForMode(models.ModeNoRepeat).Name())
}
