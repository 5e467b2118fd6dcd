package match

import "time"

// Match is one played fixture from the results table.
type Match struct {
	Date          time.Time
	HomeClubID    int64
	AwayClubID    int64
	HomeClubGoals int
	AwayClubGoals int
}

// Result is a match outcome from one team's perspective.
type Result string

const (
	ResultWin  Result = "W"
	ResultDraw Result = "D"
	ResultLoss Result = "L"
)

// ResultOf scores one side of a match from its own goals.
func ResultOf(goalsFor, goalsAgainst int) Result {
	switch {
	case goalsFor > goalsAgainst:
		return ResultWin
	case goalsFor < goalsAgainst:
		return ResultLoss
	default:
		return ResultDraw
	}
}

// Points is the per-match win-rate contribution: 1 for a win, 0.5 for a draw.
func (r Result) Points() float64 {
	switch r {
	case ResultWin:
		return 1
	case ResultDraw:
		return 0.5
	default:
		return 0
	}
}

// Target encodes the result as a class label: win 1, draw 0, loss -1.
func (r Result) Target() int {
	switch r {
	case ResultWin:
		return 1
	case ResultLoss:
		return -1
	default:
		return 0
	}
}

// RollingForm holds trailing-window averages as of a team's match date.
type RollingForm struct {
	GoalsFor     float64
	GoalsAgainst float64
	GoalDiff     float64
	WinRate      float64
}

// TeamRecord is a match seen from one side. Every Match yields exactly two.
type TeamRecord struct {
	Date         time.Time
	TeamID       int64
	OpponentID   int64
	IsHome       bool
	GoalsFor     int
	GoalsAgainst int
	GoalDiff     int
	Result       Result
	Form         RollingForm
}
