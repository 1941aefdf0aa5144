package savings

import (
	"time"

	"github.com/shopspring/decimal"
)

type Savings struct {
	ID int
	// IncomeId links an automatic record to the income it was derived from; 0 for manual entries.
	IncomeId    int
	Amount      decimal.Decimal
	Date        time.Time
	Description string
	IsAutomatic bool
}

// IncomeRef carries the income fields the reactor projects from. It exists so
// the savings package does not depend on the income package.
type IncomeRef struct {
	Id         int
	Source     string
	Amount     decimal.Decimal
	OccurredAt time.Time
}
