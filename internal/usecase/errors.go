package usecase

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"

	"github.com/riskibarqy/futsal-ledger/internal/domain/player"
)

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)

// storeError adds operation context to a repository failure. Lost
// connections and timeouts are also marked ErrDependencyUnavailable and a
// refused debt overflow ErrInvalidInput; the original error stays in the
// chain either way.
func storeError(err error, format string, args ...any) error {
	op := fmt.Sprintf(format, args...)
	if errors.Is(err, player.ErrDebtOverflow) {
		return fmt.Errorf("%w: %s: %w", ErrInvalidInput, op, err)
	}
	if isStoreUnavailable(err) {
		return fmt.Errorf("%w: %s: %w", ErrDependencyUnavailable, op, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}

func isStoreUnavailable(err error) bool {
	return errors.Is(err, driver.ErrBadConn) ||
		errors.Is(err, sql.ErrConnDone) ||
		errors.Is(err, context.DeadlineExceeded)
}
