package usecase

import (
	"fmt"
	"time"

	"github.com/riskibarqy/futsal-ledger/internal/platform/auth"
)

func requireAdmin(capability auth.Capability, now time.Time) error {
	if !capability.Valid(now) {
		return fmt.Errorf("%w: admin capability required", ErrUnauthorized)
	}
	return nil
}
