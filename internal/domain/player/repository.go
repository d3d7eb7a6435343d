package player

import "context"

// Repository describes roster persistence needs from use cases.
//
// Mutations on an id that does not exist report exists=false instead of an
// error. Each call commits atomically before returning.
type Repository interface {
	List(ctx context.Context) ([]Player, error)
	GetByIDs(ctx context.Context, playerIDs []int64) ([]Player, error)
	Create(ctx context.Context, name string) (Player, error)
	// Delete removes the player and every attendance record that references it.
	Delete(ctx context.Context, playerID int64) (bool, error)
	ReduceDebt(ctx context.Context, playerID, amount int64) (Player, bool, error)
	IncreaseDebt(ctx context.Context, playerID, amount int64) (Player, bool, error)
}
