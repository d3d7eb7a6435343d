package usecase

import (
	"sync"
	"testing"
	"time"

	"github.com/riskibarqy/futsal-ledger/internal/platform/auth"
)

var (
	testIssuerOnce sync.Once
	testIssuer     *auth.Issuer
	testIssuerErr  error
)

func adminCapability(t *testing.T) auth.Capability {
	t.Helper()

	testIssuerOnce.Do(func() {
		testIssuer, testIssuerErr = auth.NewIssuer("admin-pass", "usecase-test-secret", time.Hour)
	})
	if testIssuerErr != nil {
		t.Fatalf("create issuer: %v", testIssuerErr)
	}

	_, capability, err := testIssuer.Login("admin-pass")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	return capability
}

func int64Ptr(v int64) *int64 {
	return &v
}
