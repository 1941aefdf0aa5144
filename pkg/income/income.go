package income

import (
	"time"

	"github.com/shopspring/decimal"
)

type Income struct {
	ID         int
	Source     string
	Amount     decimal.Decimal
	OccurredAt time.Time
	// Description is optional free text.
	Description string
}
