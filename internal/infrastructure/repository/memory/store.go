package memory

import (
	"sync"

	"github.com/riskibarqy/futsal-ledger/internal/domain/attendance"
	"github.com/riskibarqy/futsal-ledger/internal/domain/player"
)

// Store keeps players and attendance behind one lock so a player delete and
// its attendance cascade happen in a single critical section.
type Store struct {
	mu         sync.RWMutex
	nextID     int64
	players    map[int64]player.Player
	attendance map[attendance.Date]map[int64]struct{}
}

func NewStore(seed []player.Player) *Store {
	s := &Store{
		players:    make(map[int64]player.Player, len(seed)),
		attendance: make(map[attendance.Date]map[int64]struct{}),
	}
	for _, p := range seed {
		s.players[p.ID] = p
		if p.ID > s.nextID {
			s.nextID = p.ID
		}
	}
	return s
}
