package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/riskibarqy/football-analytics/internal/domain/club"
	"github.com/riskibarqy/football-analytics/internal/domain/event"
	"github.com/riskibarqy/football-analytics/internal/domain/match"
	"github.com/riskibarqy/football-analytics/internal/domain/player"
	basecache "github.com/riskibarqy/football-analytics/internal/platform/cache"
)

type countingSource struct {
	clubCalls int
	clubErr   error
}

func (s *countingSource) ListPlayers(context.Context) ([]player.Player, error) {
	return []player.Player{{ID: 1}}, nil
}

func (s *countingSource) ListAppearances(context.Context) ([]player.Appearance, error) {
	return nil, nil
}

func (s *countingSource) ListEvents(context.Context) ([]event.GameEvent, error) {
	return nil, nil
}

func (s *countingSource) ListMatches(context.Context) ([]match.Match, error) {
	return nil, nil
}

func (s *countingSource) ListClubs(context.Context) ([]club.Club, error) {
	s.clubCalls++
	if s.clubErr != nil {
		return nil, s.clubErr
	}
	return []club.Club{{ID: 7, Name: "Real Norte"}}, nil
}

func TestDataset_ListClubsLoadsOnce(t *testing.T) {
	t.Parallel()

	src := &countingSource{}
	d := NewDataset(src, basecache.NewStore(time.Minute))

	for i := 0; i < 3; i++ {
		clubs, err := d.ListClubs(context.Background())
		if err != nil {
			t.Fatalf("ListClubs error: %v", err)
		}
		if len(clubs) != 1 || clubs[0].Name != "Real Norte" {
			t.Fatalf("unexpected clubs: %+v", clubs)
		}
		clubs[0].Name = "mutated"
	}

	if src.clubCalls != 1 {
		t.Fatalf("source called %d times, want 1", src.clubCalls)
	}

	d.Invalidate()
	if _, err := d.ListClubs(context.Background()); err != nil {
		t.Fatalf("ListClubs after invalidate: %v", err)
	}
	if src.clubCalls != 2 {
		t.Fatalf("source called %d times after invalidate, want 2", src.clubCalls)
	}
}

func TestDataset_ErrorsAreNotCached(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	src := &countingSource{clubErr: boom}
	d := NewDataset(src, basecache.NewStore(time.Minute))

	if _, err := d.ListClubs(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
	src.clubErr = nil
	if _, err := d.ListClubs(context.Background()); err != nil {
		t.Fatalf("expected success after failure, got %v", err)
	}
	if src.clubCalls != 2 {
		t.Fatalf("source called %d times, want 2", src.clubCalls)
	}
}
