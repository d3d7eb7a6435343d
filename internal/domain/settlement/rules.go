package settlement

import (
	"errors"
	"fmt"
	"math"

	"github.com/riskibarqy/futsal-ledger/internal/domain/attendance"
)

var (
	ErrNoAttendees     = errors.New("no attendees to split the cost between")
	ErrNegativeCost    = errors.New("total cost cannot be negative")
	ErrCostTooLarge    = errors.New("total cost is too large")
	ErrInvalidRounding = errors.New("rounding unit must be greater than zero")
)

// DefaultRoundingUnit is the granularity every share is rounded up to.
const DefaultRoundingUnit int64 = 1000

// Rules stores cost splitting parameters.
type Rules struct {
	RoundingUnit int64
}

func DefaultRules() Rules {
	return Rules{RoundingUnit: DefaultRoundingUnit}
}

// Share splits totalCost evenly between count attendees with the default rules.
func Share(totalCost int64, count int) (int64, error) {
	return DefaultRules().Share(totalCost, count)
}

// Share returns ceil(ceil(totalCost/count)/unit)*unit using integer math only,
// so share*count >= totalCost always holds.
func (r Rules) Share(totalCost int64, count int) (int64, error) {
	if r.RoundingUnit <= 0 {
		return 0, ErrInvalidRounding
	}
	if count <= 0 {
		return 0, fmt.Errorf("%w: count=%d", ErrNoAttendees, count)
	}
	if totalCost < 0 {
		return 0, fmt.Errorf("%w: cost=%d", ErrNegativeCost, totalCost)
	}

	perHead := ceilDiv(totalCost, int64(count))
	units := ceilDiv(perHead, r.RoundingUnit)
	if units > math.MaxInt64/r.RoundingUnit {
		return 0, fmt.Errorf("%w: cost=%d", ErrCostTooLarge, totalCost)
	}

	return units * r.RoundingUnit, nil
}

func ceilDiv(a, b int64) int64 {
	q := a / b
	if a%b != 0 {
		q++
	}
	return q
}

// Plan is the debt each attendee of one session takes on.
type Plan struct {
	Date      attendance.Date
	PlayerIDs []int64
	TotalCost int64
	Share     int64
}

// Total is what the plan charges across all attendees; it can exceed
// TotalCost by the rounding slack.
func (p Plan) Total() int64 {
	return p.Share * int64(len(p.PlayerIDs))
}

func (r Rules) NewPlan(date attendance.Date, playerIDs []int64, totalCost int64) (Plan, error) {
	share, err := r.Share(totalCost, len(playerIDs))
	if err != nil {
		return Plan{}, err
	}

	return Plan{
		Date:      date,
		PlayerIDs: append([]int64(nil), playerIDs...),
		TotalCost: totalCost,
		Share:     share,
	}, nil
}
