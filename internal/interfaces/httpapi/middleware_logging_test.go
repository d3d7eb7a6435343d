package httpapi

import (
	"bufio"
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/futsal-ledger/internal/platform/logging"
)

func logLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()

	var out []map[string]any
	scanner := bufio.NewScanner(buf)
	for scanner.Scan() {
		var line map[string]any
		require.NoError(t, sonic.Unmarshal(scanner.Bytes(), &line))
		out = append(out, line)
	}
	return out
}

func TestRequestLogging_AttachesRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.New(logging.Options{Level: logging.LevelInfo, Format: logging.FormatJSON, Output: &buf})

	handler := RequestLogging(logger, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logging.FromContext(r.Context()).Info("inside handler")
		w.WriteHeader(http.StatusTeapot)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/players", nil))

	lines := logLines(t, &buf)
	require.Len(t, lines, 2)
	assert.Equal(t, "inside handler", lines[0]["msg"])
	assert.Equal(t, http.MethodGet, lines[0]["method"])
	assert.Equal(t, "/v1/players", lines[0]["path"])
	assert.Equal(t, "http request", lines[1]["msg"])
	assert.EqualValues(t, http.StatusTeapot, lines[1]["status"])
}

func TestRecoverPanic_LogsThroughRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.New(logging.Options{Level: logging.LevelInfo, Format: logging.FormatJSON, Output: &buf})

	handler := RequestLogging(logger, recoverPanic(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	})))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/admin/players", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	lines := logLines(t, &buf)
	require.NotEmpty(t, lines)
	assert.Equal(t, "panic recovered", lines[0]["msg"])
	assert.Equal(t, "/v1/admin/players", lines[0]["path"])
}
