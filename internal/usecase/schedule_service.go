package usecase

import (
	"context"
	"fmt"
	"slices"

	"github.com/riskibarqy/futsal-ledger/internal/domain/attendance"
	"github.com/riskibarqy/futsal-ledger/internal/domain/schedule"
)

type ScheduleConfig struct {
	Start       attendance.Date
	WeeklyCount int
	ExtraDates  []attendance.Date
}

// ScheduleService serves the session calendar. Slots are computed once since
// the configuration is fixed for the life of the process.
type ScheduleService struct {
	slots []schedule.Slot
}

func NewScheduleService(cfg ScheduleConfig) (*ScheduleService, error) {
	if cfg.Start.IsZero() {
		return nil, fmt.Errorf("%w: schedule start date is required", ErrInvalidInput)
	}
	if cfg.WeeklyCount < 0 {
		return nil, fmt.Errorf("%w: schedule weekly count cannot be negative", ErrInvalidInput)
	}

	return &ScheduleService{
		slots: schedule.Labels(cfg.Start, cfg.WeeklyCount, cfg.ExtraDates),
	}, nil
}

func (s *ScheduleService) Slots(ctx context.Context) []schedule.Slot {
	_, span := startUsecaseSpan(ctx, "usecase.ScheduleService.Slots")
	defer span.End()

	return slices.Clone(s.slots)
}

// Lookup returns the slot for date when it is part of the schedule.
func (s *ScheduleService) Lookup(date attendance.Date) (schedule.Slot, bool) {
	for _, slot := range s.slots {
		if slot.Date.Equal(date) {
			return slot, true
		}
	}
	return schedule.Slot{}, false
}
