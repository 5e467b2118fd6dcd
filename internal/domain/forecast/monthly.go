package forecast

import (
	"sort"
	"time"

	"github.com/riskibarqy/football-analytics/internal/domain/player"
)

// MonthEnd returns midnight UTC of the last day of t's calendar month.
func MonthEnd(t time.Time) time.Time {
	first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	return first.AddDate(0, 1, -1)
}

// NextMonthEnds returns the n month-ends that follow last.
func NextMonthEnds(last time.Time, n int) []time.Time {
	out := make([]time.Time, 0, n)
	first := time.Date(last.Year(), last.Month(), 1, 0, 0, 0, 0, time.UTC)
	for i := 1; i <= n; i++ {
		out = append(out, first.AddDate(0, i+1, -1))
	}
	return out
}

// Monthly resamples appearances into calendar-month sums, from the first to
// the last active month. Months without activity are present with value 0.
func Monthly(items []player.Appearance, value func(player.Appearance) int) Series {
	if len(items) == 0 {
		return Series{}
	}

	sums := make(map[time.Time]int, len(items))
	months := make([]time.Time, 0, len(items))
	for _, item := range items {
		key := MonthEnd(item.Date)
		if _, ok := sums[key]; !ok {
			months = append(months, key)
		}
		sums[key] += value(item)
	}
	sort.Slice(months, func(i, j int) bool { return months[i].Before(months[j]) })

	first, last := months[0], months[len(months)-1]
	out := make(Series, 0, len(months))
	start := time.Date(first.Year(), first.Month(), 1, 0, 0, 0, 0, time.UTC)
	for i := 0; ; i++ {
		label := start.AddDate(0, i+1, -1)
		if label.After(last) {
			break
		}
		out = append(out, Point{Date: label, Value: float64(sums[label])})
	}
	return out
}

func Goals(item player.Appearance) int   { return item.Goals }
func Assists(item player.Appearance) int { return item.Assists }

// LookbackStart is the earliest month label kept for a window of yearsBack
// years ending at last.
func LookbackStart(last time.Time, yearsBack int) time.Time {
	first := time.Date(last.Year(), last.Month(), 1, 0, 0, 0, 0, time.UTC)
	return MonthEnd(first.AddDate(-yearsBack, 0, 0))
}

// Forecasted labels values with the months following the end of history.
func Forecasted(history Series, values []float64) Series {
	last, ok := history.Last()
	if !ok {
		return Series{}
	}
	dates := NextMonthEnds(last.Date, len(values))
	out := make(Series, len(values))
	for i, v := range values {
		out[i] = Point{Date: dates[i], Value: v}
	}
	return out
}
