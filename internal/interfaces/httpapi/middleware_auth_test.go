package httpapi

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/riskibarqy/futsal-ledger/internal/platform/auth"
)

type verifierFunc func(token string) (auth.Capability, error)

func (f verifierFunc) Verify(token string) (auth.Capability, error) {
	return f(token)
}

func TestRequireAdmin_HeaderFormats(t *testing.T) {
	calls := 0
	verifier := verifierFunc(func(token string) (auth.Capability, error) {
		calls++
		if token != "good" {
			return auth.Capability{}, errors.New("bad token")
		}
		return auth.Capability{}, nil
	})
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})
	handler := RequireAdmin(verifier, next)

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{name: "missing", header: "", want: http.StatusUnauthorized},
		{name: "wrong scheme", header: "Basic good", want: http.StatusUnauthorized},
		{name: "empty token", header: "Bearer   ", want: http.StatusUnauthorized},
		{name: "rejected token", header: "Bearer bad", want: http.StatusUnauthorized},
		{name: "accepted token", header: "bearer good", want: http.StatusTeapot},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/v1/admin/attendance", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)
			assert.Equal(t, tt.want, rec.Code)
		})
	}
	assert.Equal(t, 2, calls)
}

func TestRequireAdmin_PutsCapabilityInContext(t *testing.T) {
	issuer, err := auth.NewIssuer("admin-pass", "middleware-test-secret", time.Hour)
	if err != nil {
		t.Fatalf("new issuer: %v", err)
	}
	session, _, err := issuer.Login("admin-pass")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	var got auth.Capability
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = auth.CapabilityFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/v1/admin/attendance", nil)
	req.Header.Set("Authorization", "Bearer "+session.Token)
	rec := httptest.NewRecorder()
	RequireAdmin(issuer, next).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, got.Valid(time.Now()))
}
