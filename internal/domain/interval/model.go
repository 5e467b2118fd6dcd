package interval

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/riskibarqy/football-analytics/internal/domain/event"
	"github.com/riskibarqy/football-analytics/internal/domain/player"
)

// Width is the bucket size in minutes.
const Width = 10

// Clusters is the number of groups players in one bucket are split into.
const Clusters = 3

var ErrMalformed = errors.New("interval must look like 61-70")

// Bucket maps a minute to its label: minutes 0-9 fall in "1-10", 10-19 in "11-20".
func Bucket(minute float64) string {
	return Label(int(math.Floor(minute/Width))*Width + 1)
}

// Label formats the bucket starting at start.
func Label(start int) string {
	return fmt.Sprintf("%d-%d", start, start+Width-1)
}

// Parse validates a bucket label and returns its first minute.
func Parse(label string) (int, error) {
	startRaw, endRaw, ok := strings.Cut(strings.TrimSpace(label), "-")
	if !ok {
		return 0, fmt.Errorf("%w: got %q", ErrMalformed, label)
	}
	start, err := strconv.Atoi(startRaw)
	if err != nil {
		return 0, fmt.Errorf("%w: got %q", ErrMalformed, label)
	}
	end, err := strconv.Atoi(endRaw)
	if err != nil {
		return 0, fmt.Errorf("%w: got %q", ErrMalformed, label)
	}
	if start < 1 || (start-1)%Width != 0 || end != start+Width-1 {
		return 0, fmt.Errorf("%w: got %q", ErrMalformed, label)
	}
	return start, nil
}

// Row is one player's counts inside one bucket.
type Row struct {
	PlayerID int64
	Name     string
	Position string
	Interval string
	Goals    int
	Cards    int
	Cluster  int
}

// Features is the vector rows are clustered on.
func (r Row) Features() []float64 {
	return []float64{float64(r.Goals), float64(r.Cards)}
}

// Centroid is a cluster centre mapped back to raw counts.
type Centroid struct {
	Goals float64
	Cards float64
}

// Result is the clustered view of one interval. Scaled holds the
// standardised {goals, cards} point of every row.
type Result struct {
	Interval  string
	Rows      []Row
	Scaled    [][]float64
	Centroids []Centroid
	Inertia   float64
}

type key struct {
	playerID int64
	interval string
}

// Count tallies goals and cards per (player, bucket). The two tallies are
// outer joined so a player with only one kind of event still has a row.
// Other event types are ignored. Rows are ordered by bucket start then player.
func Count(events []event.GameEvent) []Row {
	goals := make(map[key]int)
	cards := make(map[key]int)
	for _, e := range events {
		k := key{playerID: e.PlayerID, interval: Bucket(e.Minute)}
		switch e.Type {
		case event.TypeGoals:
			goals[k]++
		case event.TypeCards:
			cards[k]++
		}
	}

	keys := make(map[key]struct{}, len(goals)+len(cards))
	for k := range goals {
		keys[k] = struct{}{}
	}
	for k := range cards {
		keys[k] = struct{}{}
	}

	out := make([]Row, 0, len(keys))
	for k := range keys {
		out = append(out, Row{
			PlayerID: k.playerID,
			Interval: k.interval,
			Goals:    goals[k],
			Cards:    cards[k],
		})
	}
	sortRows(out)
	return out
}

// Filter keeps the rows of one bucket.
func Filter(rows []Row, label string) []Row {
	out := make([]Row, 0)
	for _, r := range rows {
		if r.Interval == label {
			out = append(out, r)
		}
	}
	return out
}

// Annotate fills name and position from the player table. Unknown players
// keep empty values.
func Annotate(rows []Row, players []player.Player) []Row {
	index := player.IndexByID(players)
	out := make([]Row, len(rows))
	for i, r := range rows {
		if p, ok := index[r.PlayerID]; ok {
			r.Name = p.Name
			r.Position = p.Position
		}
		out[i] = r
	}
	return out
}

// Labels lists the distinct buckets present in rows in minute order.
func Labels(rows []Row) []string {
	seen := make(map[string]struct{})
	out := make([]string, 0)
	for _, r := range rows {
		if _, ok := seen[r.Interval]; ok {
			continue
		}
		seen[r.Interval] = struct{}{}
		out = append(out, r.Interval)
	}
	sort.Slice(out, func(i, j int) bool { return startOf(out[i]) < startOf(out[j]) })
	return out
}

// FeatureMatrix stacks Features for every row.
func FeatureMatrix(rows []Row) [][]float64 {
	out := make([][]float64, len(rows))
	for i, r := range rows {
		out[i] = r.Features()
	}
	return out
}

func sortRows(rows []Row) {
	sort.Slice(rows, func(i, j int) bool {
		si, sj := startOf(rows[i].Interval), startOf(rows[j].Interval)
		if si != sj {
			return si < sj
		}
		return rows[i].PlayerID < rows[j].PlayerID
	})
}

func startOf(label string) int {
	raw, _, _ := strings.Cut(label, "-")
	n, _ := strconv.Atoi(raw)
	return n
}
