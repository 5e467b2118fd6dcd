package httpapi

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/riskibarqy/football-analytics/internal/platform/logging"
	"github.com/riskibarqy/football-analytics/internal/usecase"
)

type Handler struct {
	forecastService   *usecase.ForecastService
	similarityService *usecase.SimilarityService
	intervalService   *usecase.IntervalService
	outcomeService    *usecase.OutcomeService
	clubService       *usecase.ClubService
	session           *usecase.Session
	logger            *logging.Logger
	validator         *validator.Validate
}

func NewHandler(
	forecastService *usecase.ForecastService,
	similarityService *usecase.SimilarityService,
	intervalService *usecase.IntervalService,
	outcomeService *usecase.OutcomeService,
	clubService *usecase.ClubService,
	session *usecase.Session,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		forecastService:   forecastService,
		similarityService: similarityService,
		intervalService:   intervalService,
		outcomeService:    outcomeService,
		clubService:       clubService,
		session:           session,
		logger:            logger,
		validator:         validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

// Reload drops cached tables and the trained outcome model. The next request
// reads the data directory again.
func (h *Handler) Reload(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Reload")
	defer span.End()

	h.session.Reset(ctx)
	h.logger.InfoContext(ctx, "analytics caches reset")

	writeSuccess(ctx, w, http.StatusOK, map[string]bool{"reloaded": true})
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}
	return nil
}
