package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/football-analytics/internal/domain/match"
	"github.com/riskibarqy/football-analytics/internal/domain/outcome"
	"github.com/riskibarqy/football-analytics/internal/platform/id"
	matchmock "github.com/riskibarqy/football-analytics/internal/mocks/domain/match"
)

// roundRobin plays every ordered pair of teams once per round, a week apart.
func roundRobin(teams []int64, rounds int) []match.Match {
	out := make([]match.Match, 0, rounds*len(teams)*(len(teams)-1))
	date := time.Date(2022, 8, 6, 0, 0, 0, 0, time.UTC)
	for r := 0; r < rounds; r++ {
		for i, home := range teams {
			for j, away := range teams {
				if i == j {
					continue
				}
				out = append(out, match.Match{
					Date:          date,
					HomeClubID:    home,
					AwayClubID:    away,
					HomeClubGoals: (i + r) % 3,
					AwayClubGoals: (j + 2*r) % 2,
				})
				date = date.AddDate(0, 0, 7)
			}
		}
	}
	return out
}

func TestOutcomeService_TrainAndPredict(t *testing.T) {
	t.Parallel()

	repo := matchmock.NewRepository(t)
	matches := roundRobin([]int64{1, 2, 3, 4}, 3)
	repo.On("ListMatches", mock.Anything).Return(matches, nil).Once()

	service := NewOutcomeService(repo, id.Static("model-1"), nil)
	model, err := service.Train(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "model-1", model.ID)
	assert.Len(t, model.History, 2*len(matches))
	assert.Equal(t, len(matches), model.TrainRows+model.HoldoutRows)
	assert.Equal(t, 8, model.HoldoutRows)
	assert.GreaterOrEqual(t, model.HoldoutAccuracy, 0.0)
	assert.LessOrEqual(t, model.HoldoutAccuracy, 1.0)

	prediction, err := service.Predict(model, 1, 2)
	require.NoError(t, err)
	require.Len(t, prediction.Probabilities, len(outcome.Classes))

	var sum float64
	for _, p := range prediction.Probabilities {
		sum += p
	}
	assert.InDelta(t, 1.0, sum, 1e-6)
	assert.Contains(t, outcome.Classes, prediction.Outcome)
	assert.Contains(t, []string{outcome.LabelHomeWin, outcome.LabelDraw, outcome.LabelAwayWin}, prediction.Label)
	assert.Equal(t, int64(1), prediction.HomeForm.TeamID)
	assert.Equal(t, int64(2), prediction.AwayForm.TeamID)

	form, err := service.TeamForm(model, 3)
	require.NoError(t, err)
	assert.Len(t, form, 18)
	for i := 1; i < len(form); i++ {
		assert.False(t, form[i].Date.Before(form[i-1].Date))
	}
}

func TestOutcomeService_Train_NotEnoughFixtures(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		matches []match.Match
	}{
		{name: "no games", matches: []match.Match{}},
		{name: "single game goes to holdout", matches: roundRobin([]int64{1, 2}, 1)[:1]},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := matchmock.NewRepository(t)
			repo.On("ListMatches", mock.Anything).Return(tt.matches, nil).Once()

			_, err := NewOutcomeService(repo, id.Static("x"), nil).Train(context.Background())
			if !errors.Is(err, ErrModelFit) {
				t.Fatalf("expected ErrModelFit, got %v", err)
			}
		})
	}
}

func TestOutcomeService_Train_RepositoryError(t *testing.T) {
	t.Parallel()

	repo := matchmock.NewRepository(t)
	repo.On("ListMatches", mock.Anything).Return(nil, ErrMissingInput).Once()

	_, err := NewOutcomeService(repo, id.Static("x"), nil).Train(context.Background())
	assert.ErrorIs(t, err, ErrMissingInput)
}

type constantClassifier []float64

func (c constantClassifier) PredictProba([]float64) []float64 { return c }

func TestOutcomeService_Predict_Errors(t *testing.T) {
	t.Parallel()

	day := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	model := &outcome.Model{
		Classifier: constantClassifier{0.2, 0.3, 0.5},
		History: []match.TeamRecord{
			{Date: day, TeamID: 1, OpponentID: 2, IsHome: true},
			{Date: day, TeamID: 2, OpponentID: 1},
		},
	}
	service := NewOutcomeService(matchmock.NewRepository(t), id.Static("x"), nil)

	got, err := service.Predict(model, 2, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, got.Outcome)
	assert.Equal(t, outcome.LabelHomeWin, got.Label)

	tests := []struct {
		name       string
		model      *outcome.Model
		home, away int64
		want       error
	}{
		{name: "no model", model: nil, home: 1, away: 2, want: ErrInvalidInput},
		{name: "same team", model: model, home: 1, away: 1, want: ErrInvalidInput},
		{name: "unknown home", model: model, home: 9, away: 1, want: ErrNotFound},
		{name: "unknown away", model: model, home: 1, away: 9, want: ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.PredictContext(context.Background(), tt.model, tt.home, tt.away)
			assert.ErrorIs(t, err, tt.want)
		})
	}

	_, err = service.TeamForm(model, 7)
	assert.ErrorIs(t, err, ErrNotFound)
}
