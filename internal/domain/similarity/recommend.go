package similarity

import (
	"sort"

	"gonum.org/v1/gonum/floats"
)

// Recommend returns the players sharing the reference's cluster, reference
// excluded, ordered by goals descending. RankByDistance re-orders them by
// Euclidean distance over raw features and keeps the closest MaxByDistance.
func Recommend(stats []PlayerStats, reference PlayerStats, strategy RankStrategy) []Recommendation {
	mates := make([]Recommendation, 0)
	for _, s := range stats {
		if s.Cluster != reference.Cluster || s.PlayerID == reference.PlayerID {
			continue
		}
		mates = append(mates, Recommendation{PlayerStats: s})
	}

	sort.SliceStable(mates, func(i, j int) bool {
		if mates[i].Goals != mates[j].Goals {
			return mates[i].Goals > mates[j].Goals
		}
		return mates[i].PlayerID < mates[j].PlayerID
	})

	if strategy != RankByDistance {
		return mates
	}

	ref := reference.Features()
	for i := range mates {
		d := floats.Distance(ref, mates[i].Features(), 2)
		mates[i].Distance = &d
	}
	sort.SliceStable(mates, func(i, j int) bool { return *mates[i].Distance < *mates[j].Distance })
	if len(mates) > MaxByDistance {
		mates = mates[:MaxByDistance]
	}
	return mates
}
