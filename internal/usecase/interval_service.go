package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/riskibarqy/football-analytics/internal/domain/event"
	"github.com/riskibarqy/football-analytics/internal/domain/interval"
	"github.com/riskibarqy/football-analytics/internal/domain/player"
	"github.com/riskibarqy/football-analytics/internal/platform/cluster"
	"github.com/riskibarqy/football-analytics/internal/platform/logging"
	"github.com/riskibarqy/football-analytics/internal/platform/metrics"
)

type IntervalService struct {
	events  event.Repository
	players player.Repository
	kmeans  cluster.KMeans
	logger  *logging.Logger
}

func NewIntervalService(events event.Repository, players player.Repository, logger *logging.Logger) *IntervalService {
	if logger == nil {
		logger = logging.Default()
	}
	return &IntervalService{
		events:  events,
		players: players,
		kmeans:  cluster.NewKMeans(interval.Clusters),
		logger:  logger,
	}
}

// Analyze clusters the players active in one 10-minute bucket by their goal
// and card counts. found is false when nobody scored or was booked in it.
func (s *IntervalService) Analyze(ctx context.Context, label string) (result interval.Result, found bool, err error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.IntervalService.Analyze", attribute.String("interval", label))
	start := time.Now()
	defer func() {
		metrics.ObserveOperation("interval", start, err)
		endSpan(span, err)
	}()

	first, err := interval.Parse(label)
	if err != nil {
		return interval.Result{}, false, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	label = interval.Label(first)

	events, err := s.events.ListEvents(ctx)
	if err != nil {
		return interval.Result{}, false, fmt.Errorf("list game events: %w", err)
	}

	rows := interval.Filter(interval.Count(events), label)
	if len(rows) == 0 {
		return interval.Result{}, false, nil
	}

	players, err := s.players.ListPlayers(ctx)
	switch {
	case errors.Is(err, ErrMissingInput):
		s.logger.WarnContext(ctx, "players unavailable, interval rows left unnamed", "error", err)
	case err != nil:
		return interval.Result{}, false, fmt.Errorf("list players: %w", err)
	default:
		rows = interval.Annotate(rows, players)
	}

	scaled, scaler := cluster.FitTransform(interval.FeatureMatrix(rows))
	fit, err := s.kmeans.Fit(scaled)
	if err != nil {
		return interval.Result{}, false, fmt.Errorf("%w: cluster interval: %v", ErrModelFit, err)
	}
	for i := range rows {
		rows[i].Cluster = fit.Labels[i]
	}

	centroids := make([]interval.Centroid, len(fit.Centroids))
	for i, c := range fit.Centroids {
		centroids[i] = interval.Centroid{
			Goals: c[0]*scaler.Scale[0] + scaler.Mean[0],
			Cards: c[1]*scaler.Scale[1] + scaler.Mean[1],
		}
	}

	s.logger.InfoContext(ctx, "interval clustered", "interval", label, "players", len(rows), "clusters", len(centroids))

	return interval.Result{
		Interval:  label,
		Rows:      rows,
		Scaled:    scaled,
		Centroids: centroids,
		Inertia:   fit.Inertia,
	}, true, nil
}

// Intervals lists the buckets holding at least one goal or card.
func (s *IntervalService) Intervals(ctx context.Context) ([]string, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.IntervalService.Intervals")
	defer span.End()

	events, err := s.events.ListEvents(ctx)
	if err != nil {
		return nil, fmt.Errorf("list game events: %w", err)
	}
	return interval.Labels(interval.Count(events)), nil
}
