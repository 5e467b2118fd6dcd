package httpapi

import "net/http"

func (h *Handler) ListIntervals(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListIntervals")
	defer span.End()

	labels, err := h.intervalService.Intervals(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list intervals failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string][]string{"intervals": labels})
}

func (h *Handler) AnalyzeInterval(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AnalyzeInterval")
	defer span.End()

	req := intervalRequest{Interval: r.PathValue("interval")}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	result, found, err := h.intervalService.Analyze(ctx, req.Interval)
	if err != nil {
		h.logger.WarnContext(ctx, "interval analysis failed", "interval", req.Interval, "error", err)
		writeError(ctx, w, err)
		return
	}
	if !found {
		writeSuccess(ctx, w, http.StatusOK, intervalDTO{
			Interval:  req.Interval,
			Rows:      []intervalRowDTO{},
			Centroids: []centroidDTO{},
		})
		return
	}

	writeSuccess(ctx, w, http.StatusOK, intervalToDTO(result))
}
