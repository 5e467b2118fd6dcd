package app

import (
	"fmt"
	"net/http"
	"os"

	"github.com/riskibarqy/football-analytics/external/transfermarkt"
	"github.com/riskibarqy/football-analytics/internal/config"
	"github.com/riskibarqy/football-analytics/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/football-analytics/internal/infrastructure/repository/csvfile"
	"github.com/riskibarqy/football-analytics/internal/interfaces/httpapi"
	basecache "github.com/riskibarqy/football-analytics/internal/platform/cache"
	idgen "github.com/riskibarqy/football-analytics/internal/platform/id"
	"github.com/riskibarqy/football-analytics/internal/platform/logging"
	"github.com/riskibarqy/football-analytics/internal/platform/resilience"
	"github.com/riskibarqy/football-analytics/internal/usecase"
)

func NewHTTPServer(cfg config.Config, logger *logging.Logger) (*http.Server, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.HTTPAddr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	handler := NewHandler(cfg, logger)
	router := httpapi.NewRouter(handler, logger, cfg.SwaggerEnabled, cfg.CORSAllowedOrigins)

	return &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}, nil
}

// NewHandler wires the data directory, the services and one session shared by
// every request.
func NewHandler(cfg config.Config, logger *logging.Logger) *httpapi.Handler {
	if logger == nil {
		logger = logging.Default()
	}

	if info, err := os.Stat(cfg.DataDir); err != nil || !info.IsDir() {
		logger.Warn("data directory is not readable, requests will report missing inputs",
			"data_dir", cfg.DataDir,
			"error", err,
		)
	}

	var data cache.Source = csvfile.NewDataset(cfg.DataDir, logger.Named("csvfile"))
	var cached []usecase.Invalidator
	if cfg.CacheEnabled {
		tables := cache.NewDataset(data, basecache.NewStore(cfg.CacheTTL))
		data = tables
		cached = append(cached, tables)
	}

	forecastSvc := usecase.NewForecastService(data, logger)
	similaritySvc := usecase.NewSimilarityService(data, logger)
	intervalSvc := usecase.NewIntervalService(data, data, logger)
	outcomeSvc := usecase.NewOutcomeService(data, idgen.NewUUIDGenerator(), logger)
	clubSvc := usecase.NewClubService(data, newCrestResolver(cfg, logger), logger)
	session := usecase.NewSession(basecache.NewStore(0), outcomeSvc, cached...)

	logger.Info("analytics wired",
		"data_dir", cfg.DataDir,
		"cache_enabled", cfg.CacheEnabled,
		"cache_ttl", cfg.CacheTTL.String(),
		"crest_enabled", cfg.CrestEnabled,
	)

	return httpapi.NewHandler(forecastSvc, similaritySvc, intervalSvc, outcomeSvc, clubSvc, session, logger)
}

func newCrestResolver(cfg config.Config, logger *logging.Logger) usecase.CrestResolver {
	if !cfg.CrestEnabled {
		return nil
	}
	return transfermarkt.NewClient(transfermarkt.ClientConfig{
		BaseURL: cfg.CrestBaseURL,
		Timeout: cfg.CrestTimeout,
		Logger:  logger.Named("transfermarkt"),
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          true,
			FailureThreshold: cfg.CrestCircuitFailureCount,
			OpenTimeout:      cfg.CrestCircuitOpenTimeout,
			HalfOpenMaxReq:   1,
		},
	})
}
