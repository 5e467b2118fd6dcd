package usecase

import (
	"context"
	"fmt"
	"slices"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/riskibarqy/football-analytics/internal/domain/match"
	"github.com/riskibarqy/football-analytics/internal/domain/outcome"
	"github.com/riskibarqy/football-analytics/internal/platform/forest"
	"github.com/riskibarqy/football-analytics/internal/platform/id"
	"github.com/riskibarqy/football-analytics/internal/platform/logging"
	"github.com/riskibarqy/football-analytics/internal/platform/metrics"
)

const outcomeSeed = 42

type OutcomeService struct {
	matches match.Repository
	ids     id.Generator
	forest  forest.RandomForest
	window  int
	now     func() time.Time
	logger  *logging.Logger
}

func NewOutcomeService(matches match.Repository, ids id.Generator, logger *logging.Logger) *OutcomeService {
	if ids == nil {
		ids = id.NewUUIDGenerator()
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &OutcomeService{
		matches: matches,
		ids:     ids,
		forest:  forest.New(outcomeSeed),
		window:  match.DefaultFormWindow,
		now:     time.Now,
		logger:  logger,
	}
}

// Train builds every team's rolling form and fits the outcome classifier on
// all but the chronologically last fifth of fixtures.
func (s *OutcomeService) Train(ctx context.Context) (model *outcome.Model, err error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.OutcomeService.Train")
	start := time.Now()
	defer func() {
		metrics.ObserveOperation("outcome_train", start, err)
		endSpan(span, err)
	}()

	matches, err := s.matches.ListMatches(ctx)
	if err != nil {
		return nil, fmt.Errorf("list games: %w", err)
	}

	history := match.ApplyRollingForm(match.BuildTeamRecords(matches), s.window)
	fixtures := outcome.JoinFixtures(history)
	if len(fixtures) == 0 {
		return nil, fmt.Errorf("%w: merge of home and away form resulted in an empty table", ErrModelFit)
	}

	outcome.SortChronologically(fixtures)
	train, holdout := outcome.SplitHoldout(fixtures, outcome.HoldoutFraction)
	if len(train) < 1 {
		return nil, fmt.Errorf("%w: %d fixtures leave no training rows", ErrModelFit, len(fixtures))
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	x, y := outcome.Matrix(train)
	classifier, err := s.forest.Fit(ctx, x, y, outcome.Classes)
	if err != nil {
		return nil, fmt.Errorf("%w: random forest: %v", ErrModelFit, err)
	}
	if !slices.Equal(classifier.Classes(), outcome.Classes) {
		return nil, fmt.Errorf("%w: classifier class order %v", ErrModelFit, classifier.Classes())
	}

	modelID, err := s.ids.NewID()
	if err != nil {
		return nil, fmt.Errorf("generate model id: %w", err)
	}

	model = &outcome.Model{
		ID:              modelID,
		Classifier:      classifier,
		History:         history,
		TrainedAt:       s.now().UTC(),
		TrainRows:       len(train),
		HoldoutRows:     len(holdout),
		HoldoutAccuracy: outcome.Accuracy(classifier, holdout),
	}

	s.logger.InfoContext(ctx, "outcome model trained",
		"model_id", model.ID,
		"fixtures", len(fixtures),
		"train_rows", model.TrainRows,
		"trees", classifier.Size(),
		"holdout_rows", model.HoldoutRows,
		"holdout_accuracy", model.HoldoutAccuracy,
	)
	return model, nil
}

// Predict feeds each team's latest form, regardless of venue, to the model.
func (s *OutcomeService) Predict(model *outcome.Model, homeTeamID, awayTeamID int64) (outcome.Prediction, error) {
	if model == nil || model.Classifier == nil {
		return outcome.Prediction{}, fmt.Errorf("%w: model is required", ErrInvalidInput)
	}
	if homeTeamID == awayTeamID {
		return outcome.Prediction{}, fmt.Errorf("%w: home and away team must differ", ErrInvalidInput)
	}

	home, ok := match.Latest(model.History, homeTeamID)
	if !ok {
		return outcome.Prediction{}, fmt.Errorf("%w: team %d has no match history", ErrNotFound, homeTeamID)
	}
	away, ok := match.Latest(model.History, awayTeamID)
	if !ok {
		return outcome.Prediction{}, fmt.Errorf("%w: team %d has no match history", ErrNotFound, awayTeamID)
	}

	proba := model.Classifier.PredictProba(outcome.FeaturesFor(home.Form, away.Form))
	predicted := outcome.ArgMax(proba)

	return outcome.Prediction{
		HomeTeamID:    homeTeamID,
		AwayTeamID:    awayTeamID,
		Outcome:       predicted,
		Label:         outcome.Label(predicted),
		Probabilities: proba,
		HomeForm:      home,
		AwayForm:      away,
	}, nil
}

// TeamForm returns one team's rolling form series ordered by date.
func (s *OutcomeService) TeamForm(model *outcome.Model, teamID int64) ([]match.TeamRecord, error) {
	if model == nil {
		return nil, fmt.Errorf("%w: model is required", ErrInvalidInput)
	}
	history := match.TeamHistory(model.History, teamID)
	if len(history) == 0 {
		return nil, fmt.Errorf("%w: team %d has no match history", ErrNotFound, teamID)
	}
	return history, nil
}

// PredictContext is Predict with tracing and metrics for request handlers.
func (s *OutcomeService) PredictContext(ctx context.Context, model *outcome.Model, homeTeamID, awayTeamID int64) (prediction outcome.Prediction, err error) {
	_, span := startUsecaseSpan(ctx, "usecase.OutcomeService.Predict",
		attribute.Int64("home.id", homeTeamID),
		attribute.Int64("away.id", awayTeamID),
	)
	start := time.Now()
	defer func() {
		metrics.ObserveOperation("outcome_predict", start, err)
		endSpan(span, err)
	}()

	return s.Predict(model, homeTeamID, awayTeamID)
}
