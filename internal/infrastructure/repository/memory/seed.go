package memory

import "github.com/riskibarqy/futsal-ledger/internal/domain/player"

// SeedPlayers is the demo roster loaded by the memory backend in dev.
func SeedPlayers() []player.Player {
	return []player.Player{
		{ID: 1, Name: "Ali"},
		{ID: 2, Name: "Hossein"},
		{ID: 3, Name: "Mehdi"},
		{ID: 4, Name: "Reza"},
		{ID: 5, Name: "Saeed"},
	}
}
