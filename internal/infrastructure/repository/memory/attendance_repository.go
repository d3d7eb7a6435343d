package memory

import (
	"context"
	"fmt"
	"slices"

	"github.com/riskibarqy/futsal-ledger/internal/domain/attendance"
)

type AttendanceRepository struct {
	store *Store
}

func NewAttendanceRepository(store *Store) *AttendanceRepository {
	return &AttendanceRepository{store: store}
}

func (r *AttendanceRepository) ReplaceForDate(_ context.Context, date attendance.Date, playerIDs []int64) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	present := make(map[int64]struct{}, len(playerIDs))
	for _, id := range playerIDs {
		if _, ok := r.store.players[id]; !ok {
			return fmt.Errorf("%w: player=%d", attendance.ErrUnknownPlayer, id)
		}
		present[id] = struct{}{}
	}

	if len(present) == 0 {
		delete(r.store.attendance, date)
		return nil
	}
	r.store.attendance[date] = present

	return nil
}

func (r *AttendanceRepository) ListPlayerIDsByDate(_ context.Context, date attendance.Date) ([]int64, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	present := r.store.attendance[date]
	out := make([]int64, 0, len(present))
	for id := range present {
		out = append(out, id)
	}
	slices.Sort(out)

	return out, nil
}
