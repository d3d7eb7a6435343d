package app

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/futsal-ledger/internal/config"
	"github.com/riskibarqy/futsal-ledger/internal/domain/attendance"
	"github.com/riskibarqy/futsal-ledger/internal/platform/logging"
)

func memoryConfig() config.Config {
	return config.Config{
		AppEnv:             config.EnvDev,
		HTTPAddr:           ":0",
		ReadTimeout:        time.Second,
		WriteTimeout:       time.Second,
		CORSAllowedOrigins: []string{"*"},
		StoreBackend:       config.StoreMemory,
		AdminPassword:      "admin-pass",
		AdminTokenSecret:   "app-test-secret",
		AdminTokenTTL:      time.Hour,
		ScheduleStart:      attendance.NewDate(2025, time.October, 20),
		ScheduleWeeks:      12,
	}
}

func TestNewHTTPServer_MemoryStore(t *testing.T) {
	srv, cleanup, err := NewHTTPServer(t.Context(), memoryConfig(), logging.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { assert.NoError(t, cleanup()) })

	rec := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/players", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Ali")
}

func TestNewHTTPServer_Validation(t *testing.T) {
	cfg := memoryConfig()
	cfg.HTTPAddr = ""
	_, _, err := NewHTTPServer(t.Context(), cfg, nil)
	assert.Error(t, err)

	cfg = memoryConfig()
	cfg.AdminPassword = ""
	_, _, err = NewHTTPServer(t.Context(), cfg, nil)
	assert.Error(t, err)

	cfg = memoryConfig()
	cfg.ScheduleStart = attendance.Date{}
	_, _, err = NewHTTPServer(t.Context(), cfg, nil)
	assert.Error(t, err)

	cfg = memoryConfig()
	cfg.StoreBackend = "sqlite"
	_, _, err = NewHTTPServer(t.Context(), cfg, nil)
	assert.Error(t, err)
}

func TestNewRepositories_MemoryOnlySeedsInDev(t *testing.T) {
	cfg := memoryConfig()
	cfg.AppEnv = config.EnvProd

	repos, err := newRepositories(t.Context(), cfg, logging.NewNop())
	require.NoError(t, err)

	players, err := repos.players.List(t.Context())
	require.NoError(t, err)
	assert.Empty(t, players)
}
