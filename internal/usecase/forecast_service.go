package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sourcegraph/conc/pool"
	"go.opentelemetry.io/otel/attribute"

	"github.com/riskibarqy/football-analytics/internal/domain/forecast"
	"github.com/riskibarqy/football-analytics/internal/domain/player"
	"github.com/riskibarqy/football-analytics/internal/platform/logging"
	"github.com/riskibarqy/football-analytics/internal/platform/metrics"
	"github.com/riskibarqy/football-analytics/internal/platform/timeseries"
)

type ForecastInput struct {
	PlayerID  int64
	YearsBack int
}

type ForecastService struct {
	players player.Repository
	model   timeseries.ARIMA
	logger  *logging.Logger
}

func NewForecastService(players player.Repository, logger *logging.Logger) *ForecastService {
	if logger == nil {
		logger = logging.Default()
	}
	return &ForecastService{
		players: players,
		model:   timeseries.NewARIMA(10, 1, 10),
		logger:  logger,
	}
}

// Forecast projects a player's monthly goals and assists 12 months ahead.
// found is false when there is nothing to show for the player, including
// when the appearances file is absent.
func (s *ForecastService) Forecast(ctx context.Context, input ForecastInput) (result forecast.PlayerForecast, found bool, err error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ForecastService.Forecast",
		attribute.Int64("player.id", input.PlayerID),
		attribute.Int("years_back", input.YearsBack),
	)
	start := time.Now()
	defer func() {
		metrics.ObserveOperation("forecast", start, err)
		endSpan(span, err)
	}()

	if input.PlayerID <= 0 {
		return forecast.PlayerForecast{}, false, fmt.Errorf("%w: player id must be positive", ErrInvalidInput)
	}
	if input.YearsBack < 1 {
		return forecast.PlayerForecast{}, false, fmt.Errorf("%w: years back must be at least 1", ErrInvalidInput)
	}

	items, err := s.players.ListAppearances(ctx)
	if errors.Is(err, ErrMissingInput) {
		s.logger.WarnContext(ctx, "appearances unavailable, nothing to forecast", "error", err)
		return forecast.PlayerForecast{}, false, nil
	}
	if err != nil {
		return forecast.PlayerForecast{}, false, fmt.Errorf("list appearances: %w", err)
	}

	rows := player.AppearancesFor(items, input.PlayerID)
	if len(rows) == 0 {
		return forecast.PlayerForecast{}, false, nil
	}

	name, err := s.displayName(ctx, input.PlayerID, rows)
	if err != nil {
		return forecast.PlayerForecast{}, false, err
	}

	goals := forecast.Monthly(rows, forecast.Goals)
	assists := forecast.Monthly(rows, forecast.Assists)

	summary := forecast.Totals(rows)
	summary.AvgGoalsPerMonth = round2(goals.Mean())
	summary.AvgAssistsPerMonth = round2(assists.Mean())

	last, _ := goals.Last()
	from := forecast.LookbackStart(last.Date, input.YearsBack)
	goalsWindow := goals.Since(from)
	assistsWindow := assists.Since(from)
	if len(goalsWindow) == 0 {
		return forecast.PlayerForecast{}, false, nil
	}
	if err := ctx.Err(); err != nil {
		return forecast.PlayerForecast{}, false, err
	}

	var goalsProjection, assistsProjection forecast.Projection
	fits := pool.New().WithErrors()
	fits.Go(func() error {
		var fitErr error
		goalsProjection, fitErr = s.project(goalsWindow)
		if fitErr != nil {
			return fmt.Errorf("goals: %w", fitErr)
		}
		return nil
	})
	fits.Go(func() error {
		var fitErr error
		assistsProjection, fitErr = s.project(assistsWindow)
		if fitErr != nil {
			return fmt.Errorf("assists: %w", fitErr)
		}
		return nil
	})
	if err := fits.Wait(); err != nil {
		return forecast.PlayerForecast{}, false, fmt.Errorf("%w: %w", ErrModelFit, err)
	}

	s.logger.InfoContext(ctx, "player forecast computed",
		"player_id", input.PlayerID,
		"months", len(goalsWindow),
		"years_back", input.YearsBack,
	)

	return forecast.PlayerForecast{
		PlayerID:   input.PlayerID,
		PlayerName: name,
		YearsBack:  input.YearsBack,
		Summary:    summary,
		Goals:      goalsProjection,
		Assists:    assistsProjection,
	}, true, nil
}

func (s *ForecastService) project(history forecast.Series) (forecast.Projection, error) {
	fitted, err := s.model.Fit(history.Values())
	if err != nil {
		return forecast.Projection{}, err
	}
	values, err := fitted.Forecast(forecast.Horizon)
	if err != nil {
		return forecast.Projection{}, err
	}
	return forecast.Projection{History: history, Forecast: forecast.Forecasted(history, values)}, nil
}

// displayName prefers the reference table, then the appearance rows.
func (s *ForecastService) displayName(ctx context.Context, playerID int64, rows []player.Appearance) (string, error) {
	players, err := s.players.ListPlayers(ctx)
	switch {
	case errors.Is(err, ErrMissingInput):
		players = nil
	case err != nil:
		return "", fmt.Errorf("list players: %w", err)
	}

	if p, ok := player.IndexByID(players)[playerID]; ok && p.Name != "" {
		return p.Name, nil
	}
	for _, row := range rows {
		if row.PlayerName != "" {
			return row.PlayerName, nil
		}
	}
	return player.FallbackName(playerID), nil
}

func round2(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}
