package budget

import (
	"time"

	"github.com/shopspring/decimal"
)

type Period string

const (
	PeriodWeekly  Period = "Weekly"
	PeriodMonthly Period = "Monthly"
)

func (p Period) IsValid() bool {
	return p == PeriodWeekly || p == PeriodMonthly
}

// Budget is a spending pocket: a per-category limit over a fixed window.
// StartDate and EndDate are zero when the pocket has no explicit window.
type Budget struct {
	ID          int
	Category    string
	LimitAmount decimal.Decimal
	Period      Period
	StartDate   time.Time
	EndDate     time.Time
}

// EndDateFor derives the window end from its start. Monthly windows span a
// flat 31 days regardless of calendar month length.
func EndDateFor(start time.Time, period Period) time.Time {
	switch period {
	case PeriodWeekly:
		return start.AddDate(0, 0, 6)
	default:
		return start.AddDate(0, 0, 30)
	}
}
