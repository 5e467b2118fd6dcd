package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// isolate points ENV_FILE at a missing file so a developer's .env never
// leaks into assertions.
func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("ENV_FILE", filepath.Join(t.TempDir(), "missing.env"))
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")
}

func TestLoad_AppEnvValidation(t *testing.T) {
	isolate(t)
	t.Setenv("APP_ENV", "invalid")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid APP_ENV")
	}
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)
	for _, key := range []string{"DATA_DIR", "CACHE_TTL", "CREST_BASE_URL", "APP_SERVICE_NAME", "APP_HTTP_ADDR", "APP_LOG_LEVEL"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.DataDir != "data" {
		t.Fatalf("unexpected data dir: %q", cfg.DataDir)
	}
	if cfg.ServiceName != "football-analytics-api" {
		t.Fatalf("unexpected service name: %q", cfg.ServiceName)
	}
	if cfg.HTTPAddr != ":8080" {
		t.Fatalf("unexpected http addr: %q", cfg.HTTPAddr)
	}
	if cfg.LogLevel.String() != "info" {
		t.Fatalf("unexpected log level: %s", cfg.LogLevel.String())
	}
	if cfg.CrestBaseURL != "https://www.transfermarkt.co.uk" {
		t.Fatalf("unexpected crest base url: %q", cfg.CrestBaseURL)
	}
	if cfg.CrestCircuitFailureCount != 3 {
		t.Fatalf("unexpected crest failure count: %d", cfg.CrestCircuitFailureCount)
	}
}

func TestLoad_UptraceRequiresDSNWhenEnabled(t *testing.T) {
	isolate(t)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when UPTRACE_ENABLED=true without UPTRACE_DSN")
	}
}

func TestLoad_UptraceDSNFromOTLPHeaders(t *testing.T) {
	isolate(t)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", "foo=bar, uptrace-dsn=\"https://token@api.uptrace.dev?grpc=4317\"")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.UptraceDSN != "https://token@api.uptrace.dev?grpc=4317" {
		t.Fatalf("unexpected uptrace dsn: %q", cfg.UptraceDSN)
	}
}

func TestLoad_DefaultsByEnv(t *testing.T) {
	t.Run("prod disables swagger by default", func(t *testing.T) {
		isolate(t)
		t.Setenv("APP_ENV", EnvProd)
		t.Setenv("SWAGGER_ENABLED", "")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if cfg.SwaggerEnabled {
			t.Fatalf("expected SwaggerEnabled=false in prod by default")
		}
	})

	t.Run("dev enables swagger by default", func(t *testing.T) {
		isolate(t)
		t.Setenv("SWAGGER_ENABLED", "")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if !cfg.SwaggerEnabled {
			t.Fatalf("expected SwaggerEnabled=true in dev by default")
		}
	})
}

func TestLoad_PprofDefaultsAddrWhenEnabled(t *testing.T) {
	isolate(t)
	t.Setenv("PPROF_ENABLED", "true")
	t.Setenv("PPROF_ADDR", "  ")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.PprofAddr != ":6060" {
		t.Fatalf("expected default pprof addr :6060, got %q", cfg.PprofAddr)
	}
}

func TestLoad_PyroscopeRequiresServerAddressWhenEnabled(t *testing.T) {
	isolate(t)
	t.Setenv("PYROSCOPE_ENABLED", "true")
	t.Setenv("PYROSCOPE_SERVER_ADDRESS", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when PYROSCOPE_ENABLED=true without PYROSCOPE_SERVER_ADDRESS")
	}
}

func TestLoad_PyroscopeAppNameDefaultsToServiceName(t *testing.T) {
	isolate(t)
	t.Setenv("APP_SERVICE_NAME", "football-analytics-test")
	t.Setenv("PYROSCOPE_ENABLED", "true")
	t.Setenv("PYROSCOPE_SERVER_ADDRESS", "http://localhost:4040")
	t.Setenv("PYROSCOPE_APP_NAME", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.PyroscopeAppName != "football-analytics-test" {
		t.Fatalf("unexpected pyroscope app name: %q", cfg.PyroscopeAppName)
	}
}

func TestLoad_CORSOriginsDefaultAndParsing(t *testing.T) {
	t.Run("default wildcard", func(t *testing.T) {
		isolate(t)
		t.Setenv("CORS_ALLOWED_ORIGINS", "")
		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if len(cfg.CORSAllowedOrigins) != 1 || cfg.CORSAllowedOrigins[0] != "*" {
			t.Fatalf("unexpected default CORS origins: %+v", cfg.CORSAllowedOrigins)
		}
	})

	t.Run("comma separated parsing", func(t *testing.T) {
		isolate(t)
		t.Setenv("CORS_ALLOWED_ORIGINS", " https://a.example.com, http://localhost:5173 ")
		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if len(cfg.CORSAllowedOrigins) != 2 {
			t.Fatalf("unexpected CORS origins length: %d", len(cfg.CORSAllowedOrigins))
		}
		if cfg.CORSAllowedOrigins[0] != "https://a.example.com" {
			t.Fatalf("unexpected first CORS origin: %s", cfg.CORSAllowedOrigins[0])
		}
		if cfg.CORSAllowedOrigins[1] != "http://localhost:5173" {
			t.Fatalf("unexpected second CORS origin: %s", cfg.CORSAllowedOrigins[1])
		}
	})
}

func TestLoad_CacheConfigParsing(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		isolate(t)
		t.Setenv("CACHE_ENABLED", "")
		t.Setenv("CACHE_TTL", "")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if !cfg.CacheEnabled {
			t.Fatalf("expected cache enabled by default")
		}
		if cfg.CacheTTL != 5*time.Minute {
			t.Fatalf("unexpected default cache ttl: %s", cfg.CacheTTL)
		}
	})

	t.Run("invalid ttl", func(t *testing.T) {
		isolate(t)
		t.Setenv("CACHE_TTL", "bad")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for invalid CACHE_TTL")
		}
	})

	t.Run("non positive ttl", func(t *testing.T) {
		isolate(t)
		t.Setenv("CACHE_TTL", "-1s")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for negative CACHE_TTL")
		}
	})
}

func TestLoad_CrestConfigParsing(t *testing.T) {
	t.Run("custom values", func(t *testing.T) {
		isolate(t)
		t.Setenv("CREST_ENABLED", "false")
		t.Setenv("CREST_TIMEOUT", "2s")
		t.Setenv("CREST_CIRCUIT_FAILURE_COUNT", "5")
		t.Setenv("CREST_CIRCUIT_OPEN_TIMEOUT", "30s")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if cfg.CrestEnabled {
			t.Fatalf("expected CrestEnabled=false")
		}
		if cfg.CrestTimeout != 2*time.Second {
			t.Fatalf("unexpected crest timeout: %s", cfg.CrestTimeout)
		}
		if cfg.CrestCircuitFailureCount != 5 {
			t.Fatalf("unexpected crest failure count: %d", cfg.CrestCircuitFailureCount)
		}
		if cfg.CrestCircuitOpenTimeout != 30*time.Second {
			t.Fatalf("unexpected crest open timeout: %s", cfg.CrestCircuitOpenTimeout)
		}
	})

	t.Run("zero failure count", func(t *testing.T) {
		isolate(t)
		t.Setenv("CREST_CIRCUIT_FAILURE_COUNT", "0")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for CREST_CIRCUIT_FAILURE_COUNT=0")
		}
	})
}

func TestLoad_InvalidLogLevel(t *testing.T) {
	isolate(t)
	t.Setenv("APP_LOG_LEVEL", "loud")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid APP_LOG_LEVEL")
	}
}

func TestLoad_ReadsEnvFile(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "test.env")
	if err := os.WriteFile(path, []byte("DATA_DIR=/srv/football\nAPP_HTTP_ADDR=:9999\n"), 0o600); err != nil {
		t.Fatalf("write env file: %v", err)
	}
	t.Setenv("ENV_FILE", path)
	t.Setenv("DATA_DIR", "")
	os.Unsetenv("DATA_DIR")
	// Set in the process, so the file must not override it.
	t.Setenv("APP_HTTP_ADDR", ":7070")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.DataDir != "/srv/football" {
		t.Fatalf("expected DATA_DIR from env file, got %q", cfg.DataDir)
	}
	if cfg.HTTPAddr != ":7070" {
		t.Fatalf("expected process APP_HTTP_ADDR to win, got %q", cfg.HTTPAddr)
	}
}
