package expense

import (
	"time"

	"github.com/shopspring/decimal"
)

// SourceType says which pot of money an expense was paid from.
type SourceType string

const (
	SourceIncome  SourceType = "Income"
	SourceSavings SourceType = "Savings"
)

func (s SourceType) IsValid() bool {
	return s == SourceIncome || s == SourceSavings
}

type Expense struct {
	ID            int
	Category      string
	PaymentMethod string
	SourceType    SourceType
	Amount        decimal.Decimal
	OccurredAt    time.Time
	Description   string
}

// CategoryTotal is an expense sum aggregated by category.
type CategoryTotal struct {
	Category string
	Total    decimal.Decimal
}
