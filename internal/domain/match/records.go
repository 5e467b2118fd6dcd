package match

import (
	"math"
	"sort"
)

// DefaultFormWindow is the number of most recent matches averaged into RollingForm.
const DefaultFormWindow = 5

// Split doubles a match into its home and away perspectives.
func Split(m Match) (TeamRecord, TeamRecord) {
	home := TeamRecord{
		Date:         m.Date,
		TeamID:       m.HomeClubID,
		OpponentID:   m.AwayClubID,
		IsHome:       true,
		GoalsFor:     m.HomeClubGoals,
		GoalsAgainst: m.AwayClubGoals,
	}
	away := TeamRecord{
		Date:         m.Date,
		TeamID:       m.AwayClubID,
		OpponentID:   m.HomeClubID,
		IsHome:       false,
		GoalsFor:     m.AwayClubGoals,
		GoalsAgainst: m.HomeClubGoals,
	}
	for _, r := range []*TeamRecord{&home, &away} {
		r.GoalDiff = r.GoalsFor - r.GoalsAgainst
		r.Result = ResultOf(r.GoalsFor, r.GoalsAgainst)
	}
	return home, away
}

// BuildTeamRecords splits every match, concatenates all home records followed by
// all away records and stable-sorts them by (team, date).
func BuildTeamRecords(matches []Match) []TeamRecord {
	homes := make([]TeamRecord, 0, len(matches))
	aways := make([]TeamRecord, 0, len(matches))
	for _, m := range matches {
		h, a := Split(m)
		homes = append(homes, h)
		aways = append(aways, a)
	}

	out := append(homes, aways...)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].TeamID != out[j].TeamID {
			return out[i].TeamID < out[j].TeamID
		}
		return out[i].Date.Before(out[j].Date)
	})
	return out
}

// ApplyRollingForm fills Form on records already grouped by team and ordered
// by date. Each value is the mean over the trailing window (current match
// included, at least one match available). Records whose form is not a number
// are dropped.
func ApplyRollingForm(records []TeamRecord, window int) []TeamRecord {
	if window < 1 {
		window = DefaultFormWindow
	}

	out := make([]TeamRecord, 0, len(records))
	start := 0
	for i := range records {
		if i > 0 && records[i].TeamID != records[i-1].TeamID {
			start = i
		}
		lo := i - window + 1
		if lo < start {
			lo = start
		}

		var gf, ga, gd, pts float64
		for _, r := range records[lo : i+1] {
			gf += float64(r.GoalsFor)
			ga += float64(r.GoalsAgainst)
			gd += float64(r.GoalDiff)
			pts += r.Result.Points()
		}
		n := float64(i - lo + 1)

		rec := records[i]
		rec.Form = RollingForm{
			GoalsFor:     gf / n,
			GoalsAgainst: ga / n,
			GoalDiff:     gd / n,
			WinRate:      pts / n,
		}
		if math.IsNaN(rec.Form.GoalsFor) || math.IsNaN(rec.Form.WinRate) {
			continue
		}
		out = append(out, rec)
	}
	return out
}

// TeamHistory returns the records of one team ordered by date.
func TeamHistory(records []TeamRecord, teamID int64) []TeamRecord {
	out := make([]TeamRecord, 0)
	for _, r := range records {
		if r.TeamID == teamID {
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}

// Latest returns the most recent record of a team regardless of venue.
func Latest(records []TeamRecord, teamID int64) (TeamRecord, bool) {
	history := TeamHistory(records, teamID)
	if len(history) == 0 {
		return TeamRecord{}, false
	}
	return history[len(history)-1], true
}
