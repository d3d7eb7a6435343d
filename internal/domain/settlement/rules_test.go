package settlement

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/riskibarqy/futsal-ledger/internal/domain/attendance"
)

func TestShare(t *testing.T) {
	tests := []struct {
		name      string
		totalCost int64
		count     int
		want      int64
		targetErr error
	}{
		{name: "rounds per head up to next thousand", totalCost: 50000, count: 7, want: 8000},
		{name: "exact multiple stays", totalCost: 21000, count: 3, want: 7000},
		{name: "tiny remainder still rounds up", totalCost: 21001, count: 3, want: 8000},
		{name: "single attendee", totalCost: 450000, count: 1, want: 450000},
		{name: "cost below unit", totalCost: 1, count: 10, want: 1000},
		{name: "zero cost", totalCost: 0, count: 4, want: 0},
		{name: "zero attendees", totalCost: 50000, count: 0, targetErr: ErrNoAttendees},
		{name: "negative attendees", totalCost: 50000, count: -1, targetErr: ErrNoAttendees},
		{name: "negative cost", totalCost: -1, count: 2, targetErr: ErrNegativeCost},
		{name: "overflow", totalCost: math.MaxInt64, count: 1, targetErr: ErrCostTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Share(tt.totalCost, tt.count)
			if tt.targetErr != nil {
				if !errors.Is(err, tt.targetErr) {
					t.Fatalf("expected error %v, got %v", tt.targetErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Share(%d, %d) unexpected error: %v", tt.totalCost, tt.count, err)
			}
			if got != tt.want {
				t.Fatalf("Share(%d, %d) = %d, want %d", tt.totalCost, tt.count, got, tt.want)
			}
		})
	}
}

func TestShare_CoversCostInWholeUnits(t *testing.T) {
	costs := []int64{0, 1, 999, 1000, 1001, 7142, 49999, 50000, 123456, 1000000, 987654321}
	for _, cost := range costs {
		for count := 1; count <= 25; count++ {
			share, err := Share(cost, count)
			if err != nil {
				t.Fatalf("Share(%d, %d): %v", cost, count, err)
			}
			if share < 0 || share%DefaultRoundingUnit != 0 {
				t.Fatalf("Share(%d, %d) = %d is not a non-negative multiple of %d", cost, count, share, DefaultRoundingUnit)
			}
			if share*int64(count) < cost {
				t.Fatalf("Share(%d, %d) = %d does not cover the cost", cost, count, share)
			}
			if share >= DefaultRoundingUnit && (share-DefaultRoundingUnit)*int64(count) >= cost {
				t.Fatalf("Share(%d, %d) = %d is a whole unit larger than needed", cost, count, share)
			}
		}
	}
}

func TestRules_InvalidRoundingUnit(t *testing.T) {
	_, err := Rules{RoundingUnit: 0}.Share(1000, 1)
	if !errors.Is(err, ErrInvalidRounding) {
		t.Fatalf("expected ErrInvalidRounding, got %v", err)
	}
}

func TestRules_NewPlan(t *testing.T) {
	date := attendance.NewDate(2025, time.October, 20)
	ids := []int64{1, 2, 3, 4, 5, 6, 7}

	plan, err := DefaultRules().NewPlan(date, ids, 50000)
	if err != nil {
		t.Fatalf("new plan: %v", err)
	}
	if plan.Share != 8000 {
		t.Fatalf("unexpected share: %d", plan.Share)
	}
	if plan.Total() != 56000 {
		t.Fatalf("unexpected total: %d", plan.Total())
	}

	ids[0] = 99
	if plan.PlayerIDs[0] != 1 {
		t.Fatalf("expected plan to own a copy of the player ids")
	}

	if _, err := DefaultRules().NewPlan(date, nil, 50000); !errors.Is(err, ErrNoAttendees) {
		t.Fatalf("expected ErrNoAttendees for empty plan, got %v", err)
	}
}
