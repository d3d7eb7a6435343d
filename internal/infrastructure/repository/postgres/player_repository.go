package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/riskibarqy/futsal-ledger/internal/domain/player"
	qb "github.com/riskibarqy/futsal-ledger/internal/platform/querybuilder"
)

type PlayerRepository struct {
	db *sqlx.DB
}

func NewPlayerRepository(db *sqlx.DB) *PlayerRepository {
	return &PlayerRepository{db: db}
}

func (r *PlayerRepository) List(ctx context.Context) ([]player.Player, error) {
	query, args, err := qb.Select(playerSelectColumns...).From("players").
		OrderBy(`name COLLATE "C"`, "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select players query: %w", err)
	}

	var rows []playerTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select players: %w", err)
	}

	return playersFromRows(rows)
}

func (r *PlayerRepository) GetByIDs(ctx context.Context, playerIDs []int64) ([]player.Player, error) {
	if len(playerIDs) == 0 {
		return []player.Player{}, nil
	}

	query, args, err := qb.Select(playerSelectColumns...).From("players").
		Where(qb.Any("id", pq.Array(playerIDs))).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select players by ids query: %w", err)
	}

	var rows []playerTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select players by ids: %w", err)
	}

	return playersFromRows(rows)
}

func (r *PlayerRepository) Create(ctx context.Context, name string) (player.Player, error) {
	builder, err := qb.InsertModel("players", playerInsertModel{Name: name})
	if err != nil {
		return player.Player{}, fmt.Errorf("build insert player query: %w", err)
	}
	query, args, err := builder.Returning(playerSelectColumns...).ToSQL()
	if err != nil {
		return player.Player{}, fmt.Errorf("build insert player query: %w", err)
	}

	var row playerTableModel
	if err := r.db.QueryRowxContext(ctx, query, args...).StructScan(&row); err != nil {
		return player.Player{}, fmt.Errorf("insert player: %w", err)
	}

	return row.toDomain()
}

// Delete removes attendance rows first in the same transaction so the
// cascade holds even where the foreign key lacks ON DELETE CASCADE.
func (r *PlayerRepository) Delete(ctx context.Context, playerID int64) (bool, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("begin tx delete player: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query, args, err := qb.DeleteFrom("attendance").Where(qb.Eq("player_id", playerID)).ToSQL()
	if err != nil {
		return false, fmt.Errorf("build delete attendance by player query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return false, fmt.Errorf("delete attendance player=%d: %w", playerID, err)
	}

	query, args, err = qb.DeleteFrom("players").Where(qb.Eq("id", playerID)).ToSQL()
	if err != nil {
		return false, fmt.Errorf("build delete player query: %w", err)
	}
	res, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("delete player=%d: %w", playerID, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete player=%d rows affected: %w", playerID, err)
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("commit delete player tx: %w", err)
	}
	return affected > 0, nil
}

func (r *PlayerRepository) ReduceDebt(ctx context.Context, playerID, amount int64) (player.Player, bool, error) {
	if amount <= 0 {
		return r.getOne(ctx, playerID)
	}
	return r.updateDebt(ctx, playerID, "GREATEST(debt - ?, 0)", amount)
}

func (r *PlayerRepository) IncreaseDebt(ctx context.Context, playerID, amount int64) (player.Player, bool, error) {
	if amount <= 0 {
		return r.getOne(ctx, playerID)
	}
	return r.updateDebt(ctx, playerID, "debt + ?", amount)
}

func (r *PlayerRepository) updateDebt(ctx context.Context, playerID int64, expr string, amount int64) (player.Player, bool, error) {
	query, args, err := qb.Update("players").
		SetExpr("debt", expr, amount).
		SetExpr("updated_at", "NOW()").
		Where(qb.Eq("id", playerID)).
		Returning(playerSelectColumns...).
		ToSQL()
	if err != nil {
		return player.Player{}, false, fmt.Errorf("build update player debt query: %w", err)
	}

	var row playerTableModel
	if err := r.db.QueryRowxContext(ctx, query, args...).StructScan(&row); err != nil {
		if isNotFound(err) {
			return player.Player{}, false, nil
		}
		if isNumericOutOfRange(err) {
			return player.Player{}, true, fmt.Errorf("update debt player=%d: %w: %w", playerID, player.ErrDebtOverflow, err)
		}
		return player.Player{}, false, fmt.Errorf("update debt player=%d: %w", playerID, err)
	}

	item, err := row.toDomain()
	if err != nil {
		return player.Player{}, false, err
	}
	return item, true, nil
}

func (r *PlayerRepository) getOne(ctx context.Context, playerID int64) (player.Player, bool, error) {
	items, err := r.GetByIDs(ctx, []int64{playerID})
	if err != nil {
		return player.Player{}, false, err
	}
	if len(items) == 0 {
		return player.Player{}, false, nil
	}
	return items[0], true, nil
}

func playersFromRows(rows []playerTableModel) ([]player.Player, error) {
	out := make([]player.Player, 0, len(rows))
	for _, row := range rows {
		item, err := row.toDomain()
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, nil
}
