package httpapi

import (
	"context"
	"net/http"

	"github.com/sourcegraph/conc"

	"github.com/riskibarqy/football-analytics/internal/domain/club"
)

func (h *Handler) PredictOutcome(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.PredictOutcome")
	defer span.End()

	req, err := bindPredictionRequest(r)
	if err == nil {
		err = h.validateRequest(ctx, req)
	}
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	model, err := h.session.OutcomeModel(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "outcome model unavailable", "error", err)
		writeError(ctx, w, err)
		return
	}

	prediction, err := h.outcomeService.PredictContext(ctx, model, req.HomeID, req.AwayID)
	if err != nil {
		h.logger.WarnContext(ctx, "outcome prediction failed", "home_id", req.HomeID, "away_id", req.AwayID, "error", err)
		writeError(ctx, w, err)
		return
	}

	var (
		homeName, awayName   string
		homeCrest, awayCrest string
		wg                   conc.WaitGroup
	)
	wg.Go(func() {
		homeName = h.clubName(ctx, req.HomeID)
		homeCrest = h.clubService.Crest(ctx, req.HomeID)
	})
	wg.Go(func() {
		awayName = h.clubName(ctx, req.AwayID)
		awayCrest = h.clubService.Crest(ctx, req.AwayID)
	})
	wg.Wait()

	writeSuccess(ctx, w, http.StatusOK, predictionDTO{
		Home:          teamSideToDTO(prediction.HomeForm, homeName, homeCrest),
		Away:          teamSideToDTO(prediction.AwayForm, awayName, awayCrest),
		Outcome:       prediction.Outcome,
		Label:         prediction.Label,
		Probabilities: probabilitiesToDTO(prediction.Probabilities),
		Model:         modelInfoToDTO(model),
	})
}

func (h *Handler) TeamForm(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.TeamForm")
	defer span.End()

	teamID, err := parseID("teamID", r.PathValue("teamID"))
	if err == nil {
		err = h.validateRequest(ctx, teamFormRequest{TeamID: teamID})
	}
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	model, err := h.session.OutcomeModel(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "outcome model unavailable", "error", err)
		writeError(ctx, w, err)
		return
	}

	history, err := h.outcomeService.TeamForm(model, teamID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, teamFormToDTO(teamID, h.clubName(ctx, teamID), history))
}

// clubName never fails the request; a broken clubs table degrades to the
// fallback name.
func (h *Handler) clubName(ctx context.Context, clubID int64) string {
	name, err := h.clubService.Name(ctx, clubID)
	if err != nil {
		h.logger.WarnContext(ctx, "club name lookup failed", "club_id", clubID, "error", err)
		return club.FallbackName(clubID)
	}
	return name
}
