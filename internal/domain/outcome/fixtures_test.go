package outcome

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/football-analytics/internal/domain/match"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func mockGames() []match.Match {
	return []match.Match{
		{Date: day(2023, 1, 1), HomeClubID: 1, AwayClubID: 2, HomeClubGoals: 2, AwayClubGoals: 1},
		{Date: day(2023, 1, 8), HomeClubID: 2, AwayClubID: 3, HomeClubGoals: 0, AwayClubGoals: 0},
		{Date: day(2023, 1, 15), HomeClubID: 3, AwayClubID: 1, HomeClubGoals: 1, AwayClubGoals: 3},
	}
}

type constClassifier []float64

func (c constClassifier) PredictProba([]float64) []float64 { return c }

func TestJoinFixtures_ReconstructsEachMatch(t *testing.T) {
	t.Parallel()

	records := match.ApplyRollingForm(match.BuildTeamRecords(mockGames()), match.DefaultFormWindow)
	fixtures := JoinFixtures(records)
	SortChronologically(fixtures)

	require.Len(t, fixtures, 3)
	assert.Equal(t, int64(1), fixtures[0].HomeTeamID)
	assert.Equal(t, int64(2), fixtures[0].AwayTeamID)
	assert.Equal(t, 1, fixtures[0].Target)
	assert.Equal(t, 0, fixtures[1].Target)
	assert.Equal(t, -1, fixtures[2].Target)

	// Team 1's second match: mean of 2 and 3 goals scored.
	assert.InDelta(t, 2.5, fixtures[2].Away.GoalsFor, 1e-12)
	assert.InDelta(t, 1.0, fixtures[2].Away.WinRate, 1e-12)
	assert.Len(t, fixtures[2].Features(), 8)
}

func TestJoinFixtures_EmptyWhenSidesMisaligned(t *testing.T) {
	t.Parallel()

	records := []match.TeamRecord{
		{Date: day(2023, 1, 1), TeamID: 1, OpponentID: 2, IsHome: true},
		{Date: day(2023, 1, 2), TeamID: 2, OpponentID: 1, IsHome: false},
	}
	assert.Empty(t, JoinFixtures(records))
}

func TestSplitHoldout(t *testing.T) {
	t.Parallel()

	tests := []struct {
		n           int
		wantTrain   int
		wantHoldout int
	}{
		{n: 10, wantTrain: 8, wantHoldout: 2},
		{n: 3, wantTrain: 2, wantHoldout: 1},
		{n: 1, wantTrain: 0, wantHoldout: 1},
		{n: 0, wantTrain: 0, wantHoldout: 0},
	}

	for _, tt := range tests {
		fixtures := make([]Fixture, tt.n)
		for i := range fixtures {
			fixtures[i].Date = day(2023, 1, i+1)
		}
		train, holdout := SplitHoldout(fixtures, HoldoutFraction)
		assert.Len(t, train, tt.wantTrain, "n=%d", tt.n)
		assert.Len(t, holdout, tt.wantHoldout, "n=%d", tt.n)
		if tt.wantHoldout > 0 && tt.wantTrain > 0 {
			assert.True(t, train[len(train)-1].Date.Before(holdout[0].Date))
		}
	}
}

func TestArgMaxAndLabel(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 1, ArgMax([]float64{0.1, 0.2, 0.7}))
	assert.Equal(t, -1, ArgMax([]float64{0.5, 0.2, 0.3}))
	assert.Equal(t, 0, ArgMax([]float64{0.2, 0.4, 0.4}))

	assert.Equal(t, LabelHomeWin, Label(1))
	assert.Equal(t, LabelDraw, Label(0))
	assert.Equal(t, LabelAwayWin, Label(-1))
}

func TestAccuracy(t *testing.T) {
	t.Parallel()

	fixtures := []Fixture{{Target: 1}, {Target: 1}, {Target: 0}, {Target: -1}}
	assert.InDelta(t, 0.5, Accuracy(constClassifier{0, 0, 1}, fixtures), 1e-12)
	assert.Equal(t, 0.0, Accuracy(constClassifier{0, 0, 1}, nil))
}
