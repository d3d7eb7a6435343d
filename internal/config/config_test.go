package config

import (
	"strings"
	"testing"
	"time"

	"github.com/riskibarqy/futsal-ledger/internal/platform/logging"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("ADMIN_PASSWORD", "secret")
	t.Setenv("UPTRACE_ENABLED", "false")
	t.Setenv("UPTRACE_DSN", "")
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", "")
}

func TestLoad_AppEnvValidation(t *testing.T) {
	setRequired(t)
	t.Setenv("APP_ENV", "invalid")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid APP_ENV")
	}
}

func TestLoad_RequiresAdminPassword(t *testing.T) {
	setRequired(t)
	t.Setenv("ADMIN_PASSWORD", "  ")

	if _, err := Load(); err == nil || !strings.Contains(err.Error(), "ADMIN_PASSWORD") {
		t.Fatalf("expected ADMIN_PASSWORD error, got %v", err)
	}
}

func TestLoad_ProdRequiresStrongTokenSecret(t *testing.T) {
	setRequired(t)
	t.Setenv("APP_ENV", EnvProd)
	t.Setenv("ADMIN_TOKEN_SECRET", "short")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error for short ADMIN_TOKEN_SECRET in prod")
	}

	t.Setenv("ADMIN_TOKEN_SECRET", strings.Repeat("k", 32))
	if _, err := Load(); err != nil {
		t.Fatalf("load config: %v", err)
	}
}

func TestLoad_Defaults(t *testing.T) {
	setRequired(t)
	t.Setenv("STORE_BACKEND", "")
	t.Setenv("SCHEDULE_START", "")
	t.Setenv("SCHEDULE_WEEKS", "")
	t.Setenv("SCHEDULE_EXTRA_DATES", "")
	t.Setenv("APP_LOG_FORMAT", "")
	t.Setenv("DB_AUTO_MIGRATE", "")
	t.Setenv("APP_SERVICE_NAME", "")
	t.Setenv("DB_APPLICATION_NAME", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.StoreBackend != StoreMemory {
		t.Fatalf("unexpected store backend: %s", cfg.StoreBackend)
	}
	if cfg.ScheduleStart.String() != "2025-10-20" {
		t.Fatalf("unexpected schedule start: %s", cfg.ScheduleStart)
	}
	if cfg.ScheduleWeeks != 12 {
		t.Fatalf("unexpected schedule weeks: %d", cfg.ScheduleWeeks)
	}
	if len(cfg.ScheduleExtraDates) != 3 || cfg.ScheduleExtraDates[0].String() != "2025-09-29" {
		t.Fatalf("unexpected extra dates: %v", cfg.ScheduleExtraDates)
	}
	if cfg.LogFormat != logging.FormatConsole {
		t.Fatalf("expected console logs in dev, got %s", cfg.LogFormat)
	}
	if !cfg.DBAutoMigrate {
		t.Fatalf("expected auto migrate in dev by default")
	}
	if cfg.DBApplicationName != "futsal-ledger-api" {
		t.Fatalf("expected application name to follow service name, got %q", cfg.DBApplicationName)
	}
	if cfg.AdminTokenTTL != 12*time.Hour {
		t.Fatalf("unexpected token ttl: %s", cfg.AdminTokenTTL)
	}
	if len(cfg.CORSAllowedOrigins) != 1 || cfg.CORSAllowedOrigins[0] != "*" {
		t.Fatalf("unexpected cors origins: %v", cfg.CORSAllowedOrigins)
	}
}

func TestLoad_StoreBackendValidation(t *testing.T) {
	setRequired(t)
	t.Setenv("STORE_BACKEND", "sqlite")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for unknown STORE_BACKEND")
	}

	t.Setenv("STORE_BACKEND", "Postgres")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.StoreBackend != StorePostgres {
		t.Fatalf("unexpected store backend: %s", cfg.StoreBackend)
	}
}

func TestLoad_ScheduleParsing(t *testing.T) {
	setRequired(t)
	t.Setenv("SCHEDULE_START", "1404-08-05")
	t.Setenv("SCHEDULE_WEEKS", "4")
	t.Setenv("SCHEDULE_EXTRA_DATES", " 1404-07-21 , ,")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.ScheduleStart.String() != "2025-10-27" || cfg.ScheduleWeeks != 4 {
		t.Fatalf("unexpected schedule: start=%s weeks=%d", cfg.ScheduleStart, cfg.ScheduleWeeks)
	}
	if len(cfg.ScheduleExtraDates) != 1 {
		t.Fatalf("unexpected extra dates: %v", cfg.ScheduleExtraDates)
	}

	t.Setenv("SCHEDULE_START", "1404-13-01")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid SCHEDULE_START")
	}
}

func TestLoad_UptraceRequiresDSNWhenEnabled(t *testing.T) {
	setRequired(t)
	t.Setenv("UPTRACE_ENABLED", "true")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when UPTRACE_ENABLED=true without UPTRACE_DSN")
	}

	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", `uptrace-dsn="https://token@api.uptrace.dev?grpc=4317"`)
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.UptraceDSN != "https://token@api.uptrace.dev?grpc=4317" {
		t.Fatalf("unexpected uptrace dsn: %q", cfg.UptraceDSN)
	}
}

func TestLoad_DurationValidation(t *testing.T) {
	setRequired(t)
	t.Setenv("APP_READ_TIMEOUT", "0s")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for zero APP_READ_TIMEOUT")
	}

	t.Setenv("APP_READ_TIMEOUT", "soon")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for unparsable APP_READ_TIMEOUT")
	}
}

func TestSplitCSV(t *testing.T) {
	got := splitCSV(" a, ,b ,")
	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Fatalf("unexpected split: %v", got)
	}
}
