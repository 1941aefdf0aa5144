package goal

import (
	"time"

	"github.com/shopspring/decimal"
)

// SavingsGoal is a user-defined target. Progress is tracked explicitly through
// CurrentAmount updates; no automation links goals to savings rows.
type SavingsGoal struct {
	ID            int
	Name          string
	TargetAmount  decimal.Decimal
	CurrentAmount decimal.Decimal
	TargetDate    time.Time
}
