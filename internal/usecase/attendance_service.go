package usecase

import (
	"context"
	"fmt"
	"slices"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/riskibarqy/futsal-ledger/internal/domain/attendance"
	"github.com/riskibarqy/futsal-ledger/internal/domain/player"
	"github.com/riskibarqy/futsal-ledger/internal/domain/settlement"
	"github.com/riskibarqy/futsal-ledger/internal/platform/auth"
	"github.com/riskibarqy/futsal-ledger/internal/platform/logging"
)

type RecordAttendanceInput struct {
	Date      attendance.Date
	PlayerIDs []int64
	// TotalCost is optional; nil records attendance without charging anyone.
	TotalCost *int64
}

type RecordAttendanceResult struct {
	Date       attendance.Date
	PresentIDs []int64
	// Share is zero when no cost was settled.
	Share   int64
	Charged []player.Player
}

// PartialSettlementError reports a settlement that stopped after charging
// some attendees. Attendance for the date is already replaced.
type PartialSettlementError struct {
	Date    attendance.Date
	Charged int
	Total   int
	Err     error
}

func (e *PartialSettlementError) Error() string {
	return fmt.Sprintf("settlement for %s stopped after %d of %d players: %v", e.Date, e.Charged, e.Total, e.Err)
}

func (e *PartialSettlementError) Unwrap() error {
	return e.Err
}

type AttendanceService struct {
	playerRepo     player.Repository
	attendanceRepo attendance.Repository
	rules          settlement.Rules
	logger         *logging.Logger
	now            func() time.Time
}

func NewAttendanceService(
	playerRepo player.Repository,
	attendanceRepo attendance.Repository,
	logger *logging.Logger,
) *AttendanceService {
	if logger == nil {
		logger = logging.Default()
	}

	return &AttendanceService{
		playerRepo:     playerRepo,
		attendanceRepo: attendanceRepo,
		rules:          settlement.DefaultRules(),
		logger:         logger,
		now:            time.Now,
	}
}

// AttendanceFor returns the ids present on date in ascending order.
func (s *AttendanceService) AttendanceFor(ctx context.Context, date attendance.Date) ([]int64, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AttendanceService.AttendanceFor")
	defer span.End()

	if date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	ids, err := s.attendanceRepo.ListPlayerIDsByDate(ctx, date)
	if err != nil {
		return nil, storeError(err, "list attendance date=%s", date)
	}
	if ids == nil {
		ids = []int64{}
	}

	return ids, nil
}

// RecordAttendance replaces the present list of a date and, when a cost is
// given, charges every attendee an equal rounded share. A failure while
// charging leaves the new attendance in place and returns a
// *PartialSettlementError.
func (s *AttendanceService) RecordAttendance(ctx context.Context, capability auth.Capability, input RecordAttendanceInput) (RecordAttendanceResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AttendanceService.RecordAttendance",
		attribute.String("attendance.date", input.Date.String()),
		attribute.Int("attendance.present", len(input.PlayerIDs)),
	)
	defer span.End()

	if err := requireAdmin(capability, s.now()); err != nil {
		return RecordAttendanceResult{}, err
	}
	if input.Date.IsZero() {
		return RecordAttendanceResult{}, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	if input.TotalCost != nil && *input.TotalCost < 0 {
		return RecordAttendanceResult{}, fmt.Errorf("%w: total cost cannot be negative", ErrInvalidInput)
	}

	presentIDs, err := normalizePlayerIDs(input.PlayerIDs)
	if err != nil {
		return RecordAttendanceResult{}, err
	}
	present, err := s.loadPresentPlayers(ctx, presentIDs)
	if err != nil {
		return RecordAttendanceResult{}, err
	}

	var plan *settlement.Plan
	if input.TotalCost != nil && len(presentIDs) > 0 {
		plan, err = s.planSettlement(input.Date, present, *input.TotalCost)
		if err != nil {
			return RecordAttendanceResult{}, err
		}
	}

	if err := s.attendanceRepo.ReplaceForDate(ctx, input.Date, presentIDs); err != nil {
		return RecordAttendanceResult{}, storeError(err, "replace attendance date=%s", input.Date)
	}
	s.logger.InfoContext(ctx, "attendance recorded", "date", input.Date.String(), "player_ids", presentIDs)

	result := RecordAttendanceResult{
		Date:       input.Date,
		PresentIDs: presentIDs,
	}
	if plan == nil {
		return result, nil
	}
	result.Share = plan.Share

	span.SetAttributes(attribute.Int64("settlement.share", plan.Share))

	charged, err := s.applyPlan(ctx, *plan)
	result.Charged = charged
	if err != nil {
		failSpan(span, err)
		s.logger.ErrorContext(ctx, "settlement stopped partway",
			"date", input.Date.String(),
			"charged", len(charged),
			"total", len(plan.PlayerIDs),
			"error", err,
		)
		return result, err
	}

	s.logger.InfoContext(ctx, "settlement applied",
		"date", input.Date.String(),
		"total_cost", plan.TotalCost,
		"share", plan.Share,
		"players", len(charged),
	)
	return result, nil
}

func (s *AttendanceService) applyPlan(ctx context.Context, plan settlement.Plan) ([]player.Player, error) {
	ids := slices.Clone(plan.PlayerIDs)
	slices.Sort(ids)

	charged := make([]player.Player, 0, len(ids))
	for _, id := range ids {
		updated, ok, err := s.playerRepo.IncreaseDebt(ctx, id, plan.Share)
		if err == nil && !ok {
			err = fmt.Errorf("%w: player=%d disappeared during settlement", ErrNotFound, id)
		}
		if err != nil {
			return charged, &PartialSettlementError{
				Date:    plan.Date,
				Charged: len(charged),
				Total:   len(ids),
				Err:     storeError(err, "increase debt player=%d", id),
			}
		}
		charged = append(charged, updated)
	}

	return charged, nil
}

// planSettlement computes the share and checks that charging it cannot
// overflow any attendee's debt, so a bad cost is refused before anything is
// written.
func (s *AttendanceService) planSettlement(date attendance.Date, present []player.Player, totalCost int64) (*settlement.Plan, error) {
	ids := make([]int64, 0, len(present))
	for _, item := range present {
		ids = append(ids, item.ID)
	}

	plan, err := s.rules.NewPlan(date, ids, totalCost)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	for _, item := range present {
		if _, err := player.IncreasedDebt(item.Debt, plan.Share); err != nil {
			return nil, fmt.Errorf("%w: player=%d: %w", ErrInvalidInput, item.ID, err)
		}
	}

	return &plan, nil
}

// loadPresentPlayers returns the players behind ids in ids order and rejects
// the whole request when any id is unknown.
func (s *AttendanceService) loadPresentPlayers(ctx context.Context, ids []int64) ([]player.Player, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	found, err := s.playerRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, storeError(err, "get players")
	}

	known := make(map[int64]player.Player, len(found))
	for _, item := range found {
		known[item.ID] = item
	}

	present := make([]player.Player, 0, len(ids))
	var unknown []int64
	for _, id := range ids {
		item, ok := known[id]
		if !ok {
			unknown = append(unknown, id)
			continue
		}
		present = append(present, item)
	}
	if len(unknown) > 0 {
		return nil, fmt.Errorf("%w: unknown player ids %v", ErrInvalidInput, unknown)
	}

	return present, nil
}

// normalizePlayerIDs drops duplicates keeping first-seen order.
func normalizePlayerIDs(ids []int64) ([]int64, error) {
	out := make([]int64, 0, len(ids))
	seen := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		if id <= 0 {
			return nil, fmt.Errorf("%w: player id must be positive, got %d", ErrInvalidInput, id)
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out, nil
}

