package outcome

import (
	"time"

	"github.com/riskibarqy/football-analytics/internal/domain/match"
)

const (
	LabelHomeWin = "Gana el local"
	LabelDraw    = "Empate"
	LabelAwayWin = "Gana el visitante"
)

// Classes is the fixed class order of every probability vector.
var Classes = []int{-1, 0, 1}

// HoldoutFraction is the trailing share of fixtures kept out of training.
const HoldoutFraction = 0.2

// Label maps a home-perspective target to its display string.
func Label(target int) string {
	switch {
	case target > 0:
		return LabelHomeWin
	case target < 0:
		return LabelAwayWin
	default:
		return LabelDraw
	}
}

// Classifier is a trained multi-class model over the fixed Classes.
type Classifier interface {
	PredictProba(features []float64) []float64
}

// Fixture is one original match with both teams' form as of its date.
type Fixture struct {
	Date       time.Time
	HomeTeamID int64
	AwayTeamID int64
	Home       match.RollingForm
	Away       match.RollingForm
	Target     int
}

// Features is the 8-column input: home form then away form.
func (f Fixture) Features() []float64 {
	return FeaturesFor(f.Home, f.Away)
}

// FeaturesFor builds the feature row from two standalone form snapshots.
func FeaturesFor(home, away match.RollingForm) []float64 {
	return []float64{
		home.GoalsFor, home.GoalsAgainst, home.GoalDiff, home.WinRate,
		away.GoalsFor, away.GoalsAgainst, away.GoalDiff, away.WinRate,
	}
}

// Model is the trained artifact. It is read-only once returned.
type Model struct {
	ID              string
	Classifier      Classifier
	History         []match.TeamRecord
	TrainedAt       time.Time
	TrainRows       int
	HoldoutRows     int
	HoldoutAccuracy float64
}

// Prediction is the predicted class with its probabilities in Classes order
// and the form snapshots it was computed from.
type Prediction struct {
	HomeTeamID    int64
	AwayTeamID    int64
	Outcome       int
	Label         string
	Probabilities []float64
	HomeForm      match.TeamRecord
	AwayForm      match.TeamRecord
}
