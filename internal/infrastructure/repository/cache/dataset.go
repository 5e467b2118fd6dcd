package cache

import (
	"context"

	"github.com/riskibarqy/football-analytics/internal/domain/club"
	"github.com/riskibarqy/football-analytics/internal/domain/event"
	"github.com/riskibarqy/football-analytics/internal/domain/match"
	"github.com/riskibarqy/football-analytics/internal/domain/player"
	basecache "github.com/riskibarqy/football-analytics/internal/platform/cache"
)

const (
	keyPlayers     = "dataset:players"
	keyAppearances = "dataset:appearances"
	keyEvents      = "dataset:events"
	keyMatches     = "dataset:matches"
	keyClubs       = "dataset:clubs"
)

// Source is every table the analytics read.
type Source interface {
	player.Repository
	event.Repository
	match.Repository
	club.Repository
}

// Dataset keeps each table in the store for its TTL so one burst of requests
// reads a file once. Failed loads are retried on the next call.
type Dataset struct {
	next  Source
	cache *basecache.Store
}

func NewDataset(next Source, cache *basecache.Store) *Dataset {
	return &Dataset{next: next, cache: cache}
}

func (d *Dataset) ListPlayers(ctx context.Context) ([]player.Player, error) {
	items, err := basecache.Load(ctx, d.cache, keyPlayers, d.next.ListPlayers)
	if err != nil {
		return nil, err
	}
	return append([]player.Player(nil), items...), nil
}

func (d *Dataset) ListAppearances(ctx context.Context) ([]player.Appearance, error) {
	items, err := basecache.Load(ctx, d.cache, keyAppearances, d.next.ListAppearances)
	if err != nil {
		return nil, err
	}
	return append([]player.Appearance(nil), items...), nil
}

func (d *Dataset) ListEvents(ctx context.Context) ([]event.GameEvent, error) {
	items, err := basecache.Load(ctx, d.cache, keyEvents, d.next.ListEvents)
	if err != nil {
		return nil, err
	}
	return append([]event.GameEvent(nil), items...), nil
}

func (d *Dataset) ListMatches(ctx context.Context) ([]match.Match, error) {
	items, err := basecache.Load(ctx, d.cache, keyMatches, d.next.ListMatches)
	if err != nil {
		return nil, err
	}
	return append([]match.Match(nil), items...), nil
}

func (d *Dataset) ListClubs(ctx context.Context) ([]club.Club, error) {
	items, err := basecache.Load(ctx, d.cache, keyClubs, d.next.ListClubs)
	if err != nil {
		return nil, err
	}
	return append([]club.Club(nil), items...), nil
}

// Invalidate drops every cached table.
func (d *Dataset) Invalidate() {
	d.cache.Purge()
}
