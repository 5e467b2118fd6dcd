package app

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/football-analytics/internal/config"
	"github.com/riskibarqy/football-analytics/internal/platform/logging"
)

func testConfig(t *testing.T) config.Config {
	t.Helper()
	return config.Config{
		AppEnv:             config.EnvDev,
		HTTPAddr:           ":0",
		ReadTimeout:        time.Second,
		WriteTimeout:       time.Second,
		DataDir:            t.TempDir(),
		CacheEnabled:       true,
		CacheTTL:           time.Minute,
		CORSAllowedOrigins: []string{"*"},
	}
}

func TestNewHTTPServer_RequiresAddr(t *testing.T) {
	cfg := testConfig(t)
	cfg.HTTPAddr = ""

	_, err := NewHTTPServer(cfg, logging.NewNop())
	require.Error(t, err)
}

func TestNewHTTPServer_ServesHealthz(t *testing.T) {
	srv, err := NewHTTPServer(testConfig(t), logging.NewNop())
	require.NoError(t, err)
	assert.Equal(t, time.Second, srv.ReadTimeout)

	rec := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestNewHTTPServer_EmptyDataDirReportsMissingInput(t *testing.T) {
	cfg := testConfig(t)
	cfg.CacheEnabled = false

	srv, err := NewHTTPServer(cfg, logging.NewNop())
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/intervals", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestNewCrestResolver_DisabledIsNil(t *testing.T) {
	cfg := testConfig(t)
	cfg.CrestEnabled = false
	assert.Nil(t, newCrestResolver(cfg, logging.NewNop()))

	cfg.CrestEnabled = true
	assert.NotNil(t, newCrestResolver(cfg, logging.NewNop()))
}

func TestNewHTTPServer_ReloadRoute(t *testing.T) {
	srv, err := NewHTTPServer(testConfig(t), logging.NewNop())
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/admin/reload", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}
