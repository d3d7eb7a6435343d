package player

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// ErrDebtOverflow is returned when a debt increase would not fit in int64.
var ErrDebtOverflow = errors.New("debt increase overflows")

// Player is a member of the roster together with the amount they still owe.
type Player struct {
	ID   int64
	Name string
	Debt int64
}

func (p Player) Validate() error {
	if p.ID <= 0 {
		return fmt.Errorf("player id must be greater than zero")
	}
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("player name is required")
	}
	if p.Debt < 0 {
		return fmt.Errorf("player debt cannot be negative")
	}

	return nil
}

// ReducedDebt returns the balance left after paying amount, floored at zero.
func ReducedDebt(debt, amount int64) int64 {
	if amount <= 0 {
		return debt
	}
	if amount >= debt {
		return 0
	}
	return debt - amount
}

// IncreasedDebt returns the balance after adding amount. Non-positive
// amounts leave the balance untouched.
func IncreasedDebt(debt, amount int64) (int64, error) {
	if amount <= 0 {
		return debt, nil
	}
	if debt > math.MaxInt64-amount {
		return debt, fmt.Errorf("%w: debt=%d amount=%d", ErrDebtOverflow, debt, amount)
	}
	return debt + amount, nil
}
