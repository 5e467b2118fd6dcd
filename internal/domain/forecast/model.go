package forecast

import (
	"time"

	"github.com/riskibarqy/football-analytics/internal/domain/player"
)

// Horizon is the number of months forecast past the last observed month.
const Horizon = 12

// Point is one month of a series, labelled with the month's last day.
type Point struct {
	Date  time.Time
	Value float64
}

type Series []Point

// Values returns the series values in order.
func (s Series) Values() []float64 {
	out := make([]float64, len(s))
	for i, p := range s {
		out[i] = p.Value
	}
	return out
}

// Since keeps the points labelled on or after from.
func (s Series) Since(from time.Time) Series {
	out := make(Series, 0, len(s))
	for _, p := range s {
		if !p.Date.Before(from) {
			out = append(out, p)
		}
	}
	return out
}

// Last returns the final point of the series.
func (s Series) Last() (Point, bool) {
	if len(s) == 0 {
		return Point{}, false
	}
	return s[len(s)-1], true
}

// Mean is the arithmetic mean of the values, 0 for an empty series.
func (s Series) Mean() float64 {
	if len(s) == 0 {
		return 0
	}
	var sum float64
	for _, p := range s {
		sum += p.Value
	}
	return sum / float64(len(s))
}

// Summary holds counters computed over every appearance of the player.
type Summary struct {
	TotalGoals         int
	TotalAssists       int
	MatchesPlayed      int
	AvgGoalsPerMonth   float64
	AvgAssistsPerMonth float64
}

// Projection is an observed window plus the forecast that follows it.
type Projection struct {
	History  Series
	Forecast Series
}

type PlayerForecast struct {
	PlayerID   int64
	PlayerName string
	YearsBack  int
	Summary    Summary
	Goals      Projection
	Assists    Projection
}

// Totals sums goals and assists over the rows and counts them as matches played.
func Totals(items []player.Appearance) Summary {
	var out Summary
	for _, item := range items {
		out.TotalGoals += item.Goals
		out.TotalAssists += item.Assists
	}
	out.MatchesPlayed = len(items)
	return out
}
