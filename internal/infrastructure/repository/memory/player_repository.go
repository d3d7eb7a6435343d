package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/riskibarqy/futsal-ledger/internal/domain/player"
)

type PlayerRepository struct {
	store *Store
}

func NewPlayerRepository(store *Store) *PlayerRepository {
	return &PlayerRepository{store: store}
}

func (r *PlayerRepository) List(_ context.Context) ([]player.Player, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make([]player.Player, 0, len(r.store.players))
	for _, p := range r.store.players {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})

	return out, nil
}

func (r *PlayerRepository) GetByIDs(_ context.Context, playerIDs []int64) ([]player.Player, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make([]player.Player, 0, len(playerIDs))
	for _, id := range playerIDs {
		p, ok := r.store.players[id]
		if !ok {
			continue
		}
		out = append(out, p)
	}

	return out, nil
}

func (r *PlayerRepository) Create(_ context.Context, name string) (player.Player, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	r.store.nextID++
	p := player.Player{ID: r.store.nextID, Name: name}
	r.store.players[p.ID] = p

	return p, nil
}

func (r *PlayerRepository) Delete(_ context.Context, playerID int64) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.players[playerID]; !ok {
		return false, nil
	}

	for date, present := range r.store.attendance {
		delete(present, playerID)
		if len(present) == 0 {
			delete(r.store.attendance, date)
		}
	}
	delete(r.store.players, playerID)

	return true, nil
}

func (r *PlayerRepository) ReduceDebt(_ context.Context, playerID, amount int64) (player.Player, bool, error) {
	return r.update(playerID, func(p *player.Player) error {
		p.Debt = player.ReducedDebt(p.Debt, amount)
		return nil
	})
}

func (r *PlayerRepository) IncreaseDebt(_ context.Context, playerID, amount int64) (player.Player, bool, error) {
	return r.update(playerID, func(p *player.Player) error {
		debt, err := player.IncreasedDebt(p.Debt, amount)
		if err != nil {
			return fmt.Errorf("increase debt player=%d: %w", playerID, err)
		}
		p.Debt = debt
		return nil
	})
}

// update applies fn to a copy and stores it only when fn succeeds.
func (r *PlayerRepository) update(playerID int64, fn func(p *player.Player) error) (player.Player, bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	p, ok := r.store.players[playerID]
	if !ok {
		return player.Player{}, false, nil
	}
	if err := fn(&p); err != nil {
		return player.Player{}, true, err
	}
	r.store.players[playerID] = p

	return p, true, nil
}
