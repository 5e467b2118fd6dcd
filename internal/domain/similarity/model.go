package similarity

import (
	"fmt"
	"sort"
	"strings"

	"github.com/riskibarqy/football-analytics/internal/domain/player"
)

// Clusters is the number of behavioural groups players are partitioned into.
const Clusters = 10

// MaxByDistance caps the distance-ranked recommendation list.
const MaxByDistance = 10

// PlayerStats is one row of the pool table.
type PlayerStats struct {
	PlayerID       int64
	Name           string
	Position       string
	Goals          int
	Assists        int
	Minutes        int
	Appearances    int
	GoalsPerGame   float64
	AssistsPerGame float64
	MinutesPerGame float64
	Cluster        int
}

// Features is the vector the pool is clustered on.
func (s PlayerStats) Features() []float64 {
	return []float64{
		float64(s.Goals),
		float64(s.Assists),
		float64(s.Minutes),
		s.GoalsPerGame,
		s.AssistsPerGame,
	}
}

// RankStrategy orders the cluster-mates of the reference player.
type RankStrategy string

const (
	RankByGoals    RankStrategy = "goals"
	RankByDistance RankStrategy = "distance"
)

func ParseRankStrategy(raw string) (RankStrategy, error) {
	switch RankStrategy(strings.ToLower(strings.TrimSpace(raw))) {
	case "", RankByGoals:
		return RankByGoals, nil
	case RankByDistance:
		return RankByDistance, nil
	default:
		return "", fmt.Errorf("unknown rank strategy %q", raw)
	}
}

// Recommendation is a cluster-mate of the reference player. Distance is set
// only by the distance strategy.
type Recommendation struct {
	PlayerStats
	Distance *float64
}

// Result carries the reference player, the clustered pool and the picks.
type Result struct {
	Reference       PlayerStats
	Stats           []PlayerStats
	Recommendations []Recommendation
}

// Aggregate sums the appearances of every pool player. Appearances counts
// distinct games so duplicate rows for one match are not double counted.
// Pool players without any appearance are kept with zero stats.
func Aggregate(pool []player.Player, items []player.Appearance) []PlayerStats {
	type acc struct {
		stats PlayerStats
		games map[int64]struct{}
	}

	byID := make(map[int64]*acc, len(pool))
	for _, p := range pool {
		if _, ok := byID[p.ID]; ok {
			continue
		}
		byID[p.ID] = &acc{
			stats: PlayerStats{PlayerID: p.ID, Name: p.Name, Position: p.Position},
			games: make(map[int64]struct{}),
		}
	}

	for _, item := range items {
		a, ok := byID[item.PlayerID]
		if !ok {
			continue
		}
		a.stats.Goals += item.Goals
		a.stats.Assists += item.Assists
		a.stats.Minutes += item.MinutesPlayed
		a.games[item.GameID] = struct{}{}
		if a.stats.Name == "" {
			a.stats.Name = item.PlayerName
		}
	}

	out := make([]PlayerStats, 0, len(byID))
	for _, a := range byID {
		s := a.stats
		s.Appearances = len(a.games)
		denom := float64(max(s.Appearances, 1))
		s.GoalsPerGame = float64(s.Goals) / denom
		s.AssistsPerGame = float64(s.Assists) / denom
		s.MinutesPerGame = float64(s.Minutes) / denom
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PlayerID < out[j].PlayerID })
	return out
}

// FeatureMatrix stacks Features for every row.
func FeatureMatrix(stats []PlayerStats) [][]float64 {
	out := make([][]float64, len(stats))
	for i, s := range stats {
		out[i] = s.Features()
	}
	return out
}

// Find returns the row of playerID.
func Find(stats []PlayerStats, playerID int64) (PlayerStats, bool) {
	for _, s := range stats {
		if s.PlayerID == playerID {
			return s, true
		}
	}
	return PlayerStats{}, false
}
