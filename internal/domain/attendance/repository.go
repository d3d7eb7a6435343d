package attendance

import (
	"context"
	"errors"
)

// ErrUnknownPlayer is returned when a present list references a player that
// does not exist.
var ErrUnknownPlayer = errors.New("attendance references unknown player")

// Repository describes attendance persistence needs from use cases.
type Repository interface {
	// ReplaceForDate atomically swaps the complete present list of date.
	// An empty playerIDs clears the date.
	ReplaceForDate(ctx context.Context, date Date, playerIDs []int64) error
	// ListPlayerIDsByDate returns present player ids in ascending order.
	ListPlayerIDsByDate(ctx context.Context, date Date) ([]int64, error)
}
