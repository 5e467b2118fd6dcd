package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	sonic "github.com/bytedance/sonic"

	"github.com/riskibarqy/football-analytics/internal/usecase"
)

func TestWriteSuccess_GoogleEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	writeSuccess(context.Background(), rec, http.StatusOK, map[string]string{"status": "ok"})

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if got := rec.Header().Get("Content-Type"); got != "application/json" {
		t.Fatalf("unexpected content type %q", got)
	}

	var body map[string]any
	if err := sonic.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response body: %v", err)
	}
	if got, _ := body["apiVersion"].(string); got != "2.0" {
		t.Fatalf("expected apiVersion=2.0, got %v", body["apiVersion"])
	}
	if _, ok := body["data"]; !ok {
		t.Fatalf("expected data key in success response")
	}
	if _, ok := body["error"]; ok {
		t.Fatalf("did not expect error key in success response")
	}
}

func TestWriteError_Mapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantCode   int
		wantStatus string
		wantReason string
	}{
		{name: "invalid input", err: fmt.Errorf("%w: bad interval", usecase.ErrInvalidInput), wantCode: http.StatusBadRequest, wantStatus: "INVALID_ARGUMENT", wantReason: "invalidInput"},
		{name: "not found", err: fmt.Errorf("%w: team 9", usecase.ErrNotFound), wantCode: http.StatusNotFound, wantStatus: "NOT_FOUND", wantReason: "notFound"},
		{name: "schema", err: fmt.Errorf("%w: games.csv", usecase.ErrSchema), wantCode: http.StatusInternalServerError, wantStatus: "FAILED_PRECONDITION", wantReason: "dataError"},
		{name: "missing input", err: fmt.Errorf("%w: players.csv", usecase.ErrMissingInput), wantCode: http.StatusInternalServerError, wantStatus: "FAILED_PRECONDITION", wantReason: "dataError"},
		{name: "model fit", err: fmt.Errorf("%w: empty table", usecase.ErrModelFit), wantCode: http.StatusInternalServerError, wantStatus: "INTERNAL", wantReason: "modelFitError"},
		{name: "dependency", err: fmt.Errorf("%w: crest site", usecase.ErrDependencyUnavailable), wantCode: http.StatusServiceUnavailable, wantStatus: "UNAVAILABLE", wantReason: "dependencyUnavailable"},
		{name: "unknown", err: errors.New("boom"), wantCode: http.StatusInternalServerError, wantStatus: "INTERNAL", wantReason: "internalError"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			writeError(context.Background(), rec, tt.err)

			if rec.Code != tt.wantCode {
				t.Fatalf("expected status %d, got %d", tt.wantCode, rec.Code)
			}

			var body map[string]any
			if err := sonic.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("unmarshal response body: %v", err)
			}
			errorObj, ok := body["error"].(map[string]any)
			if !ok {
				t.Fatalf("expected error object in response")
			}
			if got, _ := errorObj["status"].(string); got != tt.wantStatus {
				t.Fatalf("expected error status %s, got %v", tt.wantStatus, errorObj["status"])
			}
			items, _ := errorObj["errors"].([]any)
			if len(items) != 1 {
				t.Fatalf("expected one error item, got %v", errorObj["errors"])
			}
			if got, _ := items[0].(map[string]any)["reason"].(string); got != tt.wantReason {
				t.Fatalf("expected reason %s, got %v", tt.wantReason, got)
			}
		})
	}
}

func TestWriteJSON_EncodeFailure(t *testing.T) {
	rec := httptest.NewRecorder()
	writeJSON(context.Background(), rec, http.StatusOK, map[string]any{"bad": make(chan int)})

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", rec.Code)
	}
}
