package httpapi

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/riskibarqy/football-analytics/internal/domain/player"
	"github.com/riskibarqy/football-analytics/internal/usecase"
)

const defaultYearsBack = 2

type forecastRequest struct {
	PlayerID  int64 `validate:"gt=0"`
	YearsBack int   `validate:"min=1,max=50"`
}

type similarPlayersRequest struct {
	PlayerID  int64    `validate:"gt=0"`
	Positions []string `validate:"required,min=1,dive,required"`
	Strategy  string   `validate:"omitempty,oneof=goals distance"`
}

type intervalRequest struct {
	Interval string `validate:"required,max=16"`
}

type predictionRequest struct {
	HomeID int64 `validate:"gt=0"`
	AwayID int64 `validate:"gt=0,nefield=HomeID"`
}

type teamFormRequest struct {
	TeamID int64 `validate:"gt=0"`
}

func bindForecastRequest(r *http.Request) (forecastRequest, error) {
	playerID, err := parseID("playerID", r.PathValue("playerID"))
	if err != nil {
		return forecastRequest{}, err
	}
	yearsBack, err := parseIntDefault("years_back", r.URL.Query().Get("years_back"), defaultYearsBack)
	if err != nil {
		return forecastRequest{}, err
	}
	return forecastRequest{PlayerID: playerID, YearsBack: yearsBack}, nil
}

// bindSimilarPlayersRequest accepts positions as a comma separated list,
// repeated parameters or both. No positions means Attack.
func bindSimilarPlayersRequest(r *http.Request) (similarPlayersRequest, error) {
	playerID, err := parseID("playerID", r.PathValue("playerID"))
	if err != nil {
		return similarPlayersRequest{}, err
	}

	query := r.URL.Query()
	var positions []string
	for _, raw := range query["positions"] {
		positions = append(positions, splitList(raw)...)
	}
	if len(positions) == 0 {
		positions = []string{player.PositionAttack}
	}

	return similarPlayersRequest{
		PlayerID:  playerID,
		Positions: positions,
		Strategy:  strings.ToLower(strings.TrimSpace(query.Get("strategy"))),
	}, nil
}

func bindPredictionRequest(r *http.Request) (predictionRequest, error) {
	query := r.URL.Query()
	homeID, err := parseID("home_id", query.Get("home_id"))
	if err != nil {
		return predictionRequest{}, err
	}
	awayID, err := parseID("away_id", query.Get("away_id"))
	if err != nil {
		return predictionRequest{}, err
	}
	return predictionRequest{HomeID: homeID, AwayID: awayID}, nil
}

func parseID(name, raw string) (int64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, fmt.Errorf("%w: %s is required", usecase.ErrInvalidInput, name)
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer, got %q", usecase.ErrInvalidInput, name, raw)
	}
	return v, nil
}

func parseIntDefault(name, raw string, fallback int) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer, got %q", usecase.ErrInvalidInput, name, raw)
	}
	return v, nil
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
