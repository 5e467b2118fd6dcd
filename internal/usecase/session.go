package usecase

import (
	"context"
	"fmt"

	"github.com/riskibarqy/football-analytics/internal/domain/outcome"
	"github.com/riskibarqy/football-analytics/internal/platform/cache"
)

const outcomeModelKey = "session:outcome-model"

// Session holds artifacts that are expensive to build and safe to share for
// the lifetime of its owner. It is created by the presentation layer.
type Session struct {
	store   *cache.Store
	outcome *OutcomeService
	sources []Invalidator
}

// Invalidator is a data source that can drop what it has cached.
type Invalidator interface {
	Invalidate()
}

func NewSession(store *cache.Store, outcomes *OutcomeService, sources ...Invalidator) *Session {
	if store == nil {
		store = cache.NewStore(0)
	}
	return &Session{store: store, outcome: outcomes, sources: sources}
}

// OutcomeModel trains on first use; concurrent callers wait for the same
// training run and then share the read-only model. A failed run is retried
// by the next caller.
func (s *Session) OutcomeModel(ctx context.Context) (*outcome.Model, error) {
	if s.outcome == nil {
		return nil, fmt.Errorf("%w: outcome service not configured", ErrDependencyUnavailable)
	}
	return cache.Load(ctx, s.store, outcomeModelKey, s.outcome.Train)
}

// Reset forgets every artifact and cached table so the next call rebuilds
// from the current input files.
func (s *Session) Reset(ctx context.Context) {
	for _, src := range s.sources {
		src.Invalidate()
	}
	s.store.Delete(ctx, outcomeModelKey)
}
