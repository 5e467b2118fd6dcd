package usecase

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/football-analytics/internal/domain/outcome"
	"github.com/riskibarqy/football-analytics/internal/platform/cache"
	"github.com/riskibarqy/football-analytics/internal/platform/id"
	matchmock "github.com/riskibarqy/football-analytics/internal/mocks/domain/match"
)

func TestSession_OutcomeModel_TrainsOnce(t *testing.T) {
	t.Parallel()

	repo := matchmock.NewRepository(t)
	repo.On("ListMatches", mock.Anything).Return(roundRobin([]int64{1, 2, 3}, 2), nil).Once()

	session := NewSession(cache.NewStore(0), NewOutcomeService(repo, id.NewUUIDGenerator(), nil))

	const callers = 8
	models := make([]*outcome.Model, callers)
	errs := make([]error, callers)
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			models[i], errs[i] = session.OutcomeModel(context.Background())
		}(i)
	}
	wg.Wait()

	for i := 0; i < callers; i++ {
		require.NoError(t, errs[i])
		assert.Same(t, models[0], models[i])
	}
}

func TestSession_Reset_Retrains(t *testing.T) {
	t.Parallel()

	repo := matchmock.NewRepository(t)
	repo.On("ListMatches", mock.Anything).Return(roundRobin([]int64{1, 2}, 3), nil).Twice()

	session := NewSession(nil, NewOutcomeService(repo, id.NewUUIDGenerator(), nil))
	first, err := session.OutcomeModel(context.Background())
	require.NoError(t, err)

	session.Reset(context.Background())
	second, err := session.OutcomeModel(context.Background())
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)
}

func TestSession_OutcomeModel_FailureIsNotCached(t *testing.T) {
	t.Parallel()

	repo := matchmock.NewRepository(t)
	repo.On("ListMatches", mock.Anything).Return(nil, ErrMissingInput).Once()
	repo.On("ListMatches", mock.Anything).Return(roundRobin([]int64{1, 2}, 3), nil).Once()

	session := NewSession(nil, NewOutcomeService(repo, id.Static("m"), nil))
	_, err := session.OutcomeModel(context.Background())
	require.ErrorIs(t, err, ErrMissingInput)

	model, err := session.OutcomeModel(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "m", model.ID)
}

func TestSession_OutcomeModel_WithoutService(t *testing.T) {
	t.Parallel()

	session := NewSession(nil, nil)
	_, err := session.OutcomeModel(context.Background())
	require.ErrorIs(t, err, ErrDependencyUnavailable)
}

func TestSession_OutcomeModel_LeaderCancellationDoesNotFailFollowers(t *testing.T) {
	t.Parallel()

	started := make(chan struct{})
	release := make(chan struct{})
	repo := matchmock.NewRepository(t)
	repo.On("ListMatches", mock.Anything).
		Run(func(mock.Arguments) {
			close(started)
			<-release
		}).
		Return(roundRobin([]int64{1, 2, 3}, 2), nil).Once()

	session := NewSession(nil, NewOutcomeService(repo, id.Static("m"), nil))

	leaderCtx, cancel := context.WithCancel(context.Background())
	leaderErr := make(chan error, 1)
	go func() {
		_, err := session.OutcomeModel(leaderCtx)
		leaderErr <- err
	}()
	<-started

	type result struct {
		model *outcome.Model
		err   error
	}
	follower := make(chan result, 1)
	go func() {
		model, err := session.OutcomeModel(context.Background())
		follower <- result{model: model, err: err}
	}()

	cancel()
	close(release)

	got := <-follower
	require.NoError(t, got.err)
	require.NotNil(t, got.model)
	assert.Equal(t, "m", got.model.ID)
	require.NoError(t, <-leaderErr)
}

type invalidatorStub struct{ calls int }

func (s *invalidatorStub) Invalidate() { s.calls++ }

func TestSession_Reset_InvalidatesSources(t *testing.T) {
	t.Parallel()

	src := &invalidatorStub{}
	session := NewSession(nil, nil, src)
	session.Reset(context.Background())
	session.Reset(context.Background())
	assert.Equal(t, 2, src.calls)
}
