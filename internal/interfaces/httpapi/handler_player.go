package httpapi

import (
	"fmt"
	"net/http"

	"github.com/riskibarqy/football-analytics/internal/domain/similarity"
	"github.com/riskibarqy/football-analytics/internal/usecase"
)

func (h *Handler) Forecast(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Forecast")
	defer span.End()

	req, err := bindForecastRequest(r)
	if err == nil {
		err = h.validateRequest(ctx, req)
	}
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	result, found, err := h.forecastService.Forecast(ctx, usecase.ForecastInput{
		PlayerID:  req.PlayerID,
		YearsBack: req.YearsBack,
	})
	if err != nil {
		h.logger.ErrorContext(ctx, "player forecast failed", "player_id", req.PlayerID, "error", err)
		writeError(ctx, w, err)
		return
	}
	if !found {
		writeSuccess(ctx, w, http.StatusOK, forecastDTO{PlayerID: req.PlayerID, YearsBack: req.YearsBack})
		return
	}

	writeSuccess(ctx, w, http.StatusOK, forecastToDTO(result))
}

func (h *Handler) SimilarPlayers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SimilarPlayers")
	defer span.End()

	req, err := bindSimilarPlayersRequest(r)
	if err == nil {
		err = h.validateRequest(ctx, req)
	}
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	strategy, err := similarity.ParseRankStrategy(req.Strategy)
	if err != nil {
		writeError(ctx, w, fmt.Errorf("%w: %v", usecase.ErrInvalidInput, err))
		return
	}

	result, found, err := h.similarityService.Recommend(ctx, usecase.SimilarityInput{
		PlayerID:  req.PlayerID,
		Positions: req.Positions,
		Strategy:  strategy,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "similar players failed", "player_id", req.PlayerID, "positions", req.Positions, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, similarityToDTO(req, strategy, result, found))
}
