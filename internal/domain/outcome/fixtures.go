package outcome

import (
	"math"
	"sort"
	"time"

	"github.com/riskibarqy/football-analytics/internal/domain/match"
)

type fixtureKey struct {
	date time.Time
	home int64
	away int64
}

// JoinFixtures pairs every home record with the away record of the same
// (date, home team, away team). Keys present on one side only are dropped.
// Duplicate keys produce every pairing.
func JoinFixtures(records []match.TeamRecord) []Fixture {
	aways := make(map[fixtureKey][]match.TeamRecord)
	for _, r := range records {
		if r.IsHome {
			continue
		}
		k := fixtureKey{date: r.Date, home: r.OpponentID, away: r.TeamID}
		aways[k] = append(aways[k], r)
	}

	out := make([]Fixture, 0, len(records)/2)
	for _, h := range records {
		if !h.IsHome {
			continue
		}
		k := fixtureKey{date: h.Date, home: h.TeamID, away: h.OpponentID}
		for _, a := range aways[k] {
			out = append(out, Fixture{
				Date:       h.Date,
				HomeTeamID: h.TeamID,
				AwayTeamID: a.TeamID,
				Home:       h.Form,
				Away:       a.Form,
				Target:     h.Result.Target(),
			})
		}
	}
	return out
}

// SortChronologically orders fixtures by date, then home and away team.
func SortChronologically(fixtures []Fixture) {
	sort.SliceStable(fixtures, func(i, j int) bool {
		a, b := fixtures[i], fixtures[j]
		if !a.Date.Equal(b.Date) {
			return a.Date.Before(b.Date)
		}
		if a.HomeTeamID != b.HomeTeamID {
			return a.HomeTeamID < b.HomeTeamID
		}
		return a.AwayTeamID < b.AwayTeamID
	})
}

// SplitHoldout keeps the last ceil(fraction*n) fixtures for evaluation.
func SplitHoldout(fixtures []Fixture, fraction float64) (train, holdout []Fixture) {
	n := len(fixtures)
	test := int(math.Ceil(fraction * float64(n)))
	if test > n {
		test = n
	}
	return fixtures[:n-test], fixtures[n-test:]
}

// Matrix returns the feature rows and targets of fixtures.
func Matrix(fixtures []Fixture) ([][]float64, []int) {
	x := make([][]float64, len(fixtures))
	y := make([]int, len(fixtures))
	for i, f := range fixtures {
		x[i] = f.Features()
		y[i] = f.Target
	}
	return x, y
}

// ArgMax picks the class with the highest probability, first wins on ties.
func ArgMax(proba []float64) int {
	best := 0
	for i := 1; i < len(proba) && i < len(Classes); i++ {
		if proba[i] > proba[best] {
			best = i
		}
	}
	return Classes[best]
}

// Accuracy is the share of fixtures the classifier labels correctly.
func Accuracy(c Classifier, fixtures []Fixture) float64 {
	if len(fixtures) == 0 {
		return 0
	}
	var hits int
	for _, f := range fixtures {
		if ArgMax(c.PredictProba(f.Features())) == f.Target {
			hits++
		}
	}
	return float64(hits) / float64(len(fixtures))
}
