package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/riskibarqy/football-analytics/internal/domain/player"
	"github.com/riskibarqy/football-analytics/internal/domain/similarity"
	"github.com/riskibarqy/football-analytics/internal/platform/cluster"
	"github.com/riskibarqy/football-analytics/internal/platform/logging"
	"github.com/riskibarqy/football-analytics/internal/platform/metrics"
)

type SimilarityInput struct {
	PlayerID  int64
	Positions []string
	Strategy  similarity.RankStrategy
}

type SimilarityService struct {
	players player.Repository
	kmeans  cluster.KMeans
	logger  *logging.Logger
}

func NewSimilarityService(players player.Repository, logger *logging.Logger) *SimilarityService {
	if logger == nil {
		logger = logging.Default()
	}
	return &SimilarityService{
		players: players,
		kmeans:  cluster.NewKMeans(similarity.Clusters),
		logger:  logger,
	}
}

// Recommend clusters the position pool and returns the reference player's
// cluster-mates. found is false when the reference is not in the pool; the
// pool table is still returned.
func (s *SimilarityService) Recommend(ctx context.Context, input SimilarityInput) (result similarity.Result, found bool, err error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SimilarityService.Recommend",
		attribute.Int64("player.id", input.PlayerID),
		attribute.StringSlice("positions", input.Positions),
		attribute.String("strategy", string(input.Strategy)),
	)
	start := time.Now()
	defer func() {
		metrics.ObserveOperation("similarity", start, err)
		endSpan(span, err)
	}()

	positions, err := normalizePositions(input.Positions)
	if err != nil {
		return similarity.Result{}, false, err
	}
	strategy := input.Strategy
	if strategy == "" {
		strategy = similarity.RankByGoals
	}
	if strategy != similarity.RankByGoals && strategy != similarity.RankByDistance {
		return similarity.Result{}, false, fmt.Errorf("%w: unknown rank strategy %q", ErrInvalidInput, strategy)
	}

	players, err := s.players.ListPlayers(ctx)
	if err != nil {
		return similarity.Result{}, false, fmt.Errorf("list players: %w", err)
	}
	pool := player.FilterByPositions(players, positions)
	if len(pool) == 0 {
		return similarity.Result{}, false, fmt.Errorf("%w: no players found with positions %s", ErrInvalidInput, strings.Join(positions, ", "))
	}

	items, err := s.players.ListAppearances(ctx)
	if err != nil {
		return similarity.Result{}, false, fmt.Errorf("list appearances: %w", err)
	}

	stats := similarity.Aggregate(pool, items)
	scaled, _ := cluster.FitTransform(similarity.FeatureMatrix(stats))
	fit, err := s.kmeans.Fit(scaled)
	if err != nil {
		return similarity.Result{}, false, fmt.Errorf("%w: cluster players: %v", ErrModelFit, err)
	}
	for i := range stats {
		stats[i].Cluster = fit.Labels[i]
	}

	reference, ok := similarity.Find(stats, input.PlayerID)
	if !ok {
		s.logger.DebugContext(ctx, "reference player not in pool", "player_id", input.PlayerID, "positions", positions)
		return similarity.Result{Stats: stats}, false, nil
	}

	recommendations := similarity.Recommend(stats, reference, strategy)
	s.logger.InfoContext(ctx, "similar players ranked",
		"player_id", input.PlayerID,
		"pool", len(stats),
		"cluster", reference.Cluster,
		"recommendations", len(recommendations),
	)

	return similarity.Result{
		Reference:       reference,
		Stats:           stats,
		Recommendations: recommendations,
	}, true, nil
}

func normalizePositions(raw []string) ([]string, error) {
	if len(raw) == 0 {
		return nil, fmt.Errorf("%w: at least one position is required", ErrInvalidInput)
	}
	out := make([]string, 0, len(raw))
	for _, p := range raw {
		p = strings.TrimSpace(p)
		if p == "" {
			return nil, fmt.Errorf("%w: positions must not be blank", ErrInvalidInput)
		}
		out = append(out, p)
	}
	return out, nil
}
