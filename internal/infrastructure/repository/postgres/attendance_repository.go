package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/futsal-ledger/internal/domain/attendance"
	qb "github.com/riskibarqy/futsal-ledger/internal/platform/querybuilder"
)

type AttendanceRepository struct {
	db *sqlx.DB
}

func NewAttendanceRepository(db *sqlx.DB) *AttendanceRepository {
	return &AttendanceRepository{db: db}
}

func (r *AttendanceRepository) ReplaceForDate(ctx context.Context, date attendance.Date, playerIDs []int64) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx replace attendance: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	day := date.String()
	query, args, err := qb.DeleteFrom("attendance").Where(qb.Eq("date", day)).ToSQL()
	if err != nil {
		return fmt.Errorf("build delete attendance by date query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete attendance date=%s: %w", day, err)
	}

	if len(playerIDs) > 0 {
		insert := qb.InsertInto("attendance").Columns("player_id", "date")
		for _, id := range playerIDs {
			insert.Values(id, day)
		}
		query, args, err := insert.OnConflict("(player_id, date) DO NOTHING").ToSQL()
		if err != nil {
			return fmt.Errorf("build insert attendance query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			if isForeignKeyViolation(err) {
				return fmt.Errorf("%w: date=%s: %v", attendance.ErrUnknownPlayer, day, err)
			}
			return fmt.Errorf("insert attendance date=%s: %w", day, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit replace attendance tx: %w", err)
	}
	return nil
}

func (r *AttendanceRepository) ListPlayerIDsByDate(ctx context.Context, date attendance.Date) ([]int64, error) {
	query, args, err := qb.Select("player_id").From("attendance").
		Where(qb.Eq("date", date.String())).
		OrderBy("player_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select attendance query: %w", err)
	}

	ids := []int64{}
	if err := r.db.SelectContext(ctx, &ids, query, args...); err != nil {
		return nil, fmt.Errorf("select attendance date=%s: %w", date, err)
	}

	return ids, nil
}
