package player

import (
	"fmt"
	"strings"
	"time"
)

// Position is the coarse position label used by the player reference table.
type Position = string

const (
	PositionAttack     Position = "Attack"
	PositionMidfield   Position = "Midfield"
	PositionDefender   Position = "Defender"
	PositionGoalkeeper Position = "Goalkeeper"
)

// Player is one row of the static player reference table.
type Player struct {
	ID       int64
	Name     string
	Position Position
}

// Appearance is one player's line for a single match.
type Appearance struct {
	PlayerID      int64
	PlayerName    string
	GameID        int64
	Date          time.Time
	Goals         int
	Assists       int
	MinutesPlayed int
}

// FilterByPositions keeps the players whose position is one of positions.
// Matching is exact after trimming surrounding whitespace.
func FilterByPositions(players []Player, positions []string) []Player {
	allowed := make(map[string]struct{}, len(positions))
	for _, p := range positions {
		allowed[strings.TrimSpace(p)] = struct{}{}
	}

	out := make([]Player, 0, len(players))
	for _, p := range players {
		if _, ok := allowed[strings.TrimSpace(p.Position)]; ok {
			out = append(out, p)
		}
	}
	return out
}

// IndexByID builds a lookup table; later duplicates win.
func IndexByID(players []Player) map[int64]Player {
	out := make(map[int64]Player, len(players))
	for _, p := range players {
		out[p.ID] = p
	}
	return out
}

// AppearancesFor returns the appearances belonging to playerID, in input order.
func AppearancesFor(items []Appearance, playerID int64) []Appearance {
	out := make([]Appearance, 0)
	for _, item := range items {
		if item.PlayerID == playerID {
			out = append(out, item)
		}
	}
	return out
}

// FallbackName is shown when no name is known for a player id.
func FallbackName(playerID int64) string {
	return fmt.Sprintf("Player %d", playerID)
}
