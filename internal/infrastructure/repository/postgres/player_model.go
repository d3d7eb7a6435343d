package postgres

import (
	"fmt"
	"time"

	"github.com/riskibarqy/futsal-ledger/internal/domain/player"
)

type playerTableModel struct {
	ID        int64     `db:"id"`
	Name      string    `db:"name"`
	Debt      int64     `db:"debt"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

type playerInsertModel struct {
	Name string `db:"name"`
	Debt int64  `db:"debt"`
}

var playerSelectColumns = []string{
	"id",
	"name",
	"debt",
	"created_at",
	"updated_at",
}

func (m playerTableModel) toDomain() (player.Player, error) {
	item := player.Player{
		ID:   m.ID,
		Name: m.Name,
		Debt: m.Debt,
	}
	if err := item.Validate(); err != nil {
		return player.Player{}, fmt.Errorf("invalid players row id=%d: %w", m.ID, err)
	}
	return item, nil
}
