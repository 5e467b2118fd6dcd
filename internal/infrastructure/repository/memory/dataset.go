package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/riskibarqy/football-analytics/internal/domain/club"
	"github.com/riskibarqy/football-analytics/internal/domain/event"
	"github.com/riskibarqy/football-analytics/internal/domain/match"
	"github.com/riskibarqy/football-analytics/internal/domain/player"
	"github.com/riskibarqy/football-analytics/internal/usecase"
)

// Dataset holds the five input tables in memory. A nil table behaves like a
// missing file; an empty non-nil table is present but has no rows.
type Dataset struct {
	mu          sync.RWMutex
	players     []player.Player
	appearances []player.Appearance
	events      []event.GameEvent
	matches     []match.Match
	clubs       []club.Club
}

type Tables struct {
	Players     []player.Player
	Appearances []player.Appearance
	Events      []event.GameEvent
	Matches     []match.Match
	Clubs       []club.Club
}

func NewDataset(t Tables) *Dataset {
	return &Dataset{
		players:     t.Players,
		appearances: t.Appearances,
		events:      t.Events,
		matches:     t.Matches,
		clubs:       t.Clubs,
	}
}

// Replace swaps every table at once.
func (d *Dataset) Replace(t Tables) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.players, d.appearances, d.events, d.matches, d.clubs = t.Players, t.Appearances, t.Events, t.Matches, t.Clubs
}

func (d *Dataset) ListPlayers(_ context.Context) ([]player.Player, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return snapshot(d.players, "players.csv")
}

func (d *Dataset) ListAppearances(_ context.Context) ([]player.Appearance, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return snapshot(d.appearances, "appearances.csv")
}

func (d *Dataset) ListEvents(_ context.Context) ([]event.GameEvent, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return snapshot(d.events, "game_events.csv")
}

func (d *Dataset) ListMatches(_ context.Context) ([]match.Match, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return snapshot(d.matches, "games.csv")
}

func (d *Dataset) ListClubs(_ context.Context) ([]club.Club, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return snapshot(d.clubs, "clubs.csv")
}

func snapshot[T any](items []T, name string) ([]T, error) {
	if items == nil {
		return nil, fmt.Errorf("%w: %s", usecase.ErrMissingInput, name)
	}
	return append(make([]T, 0, len(items)), items...), nil
}
