package report

import (
	"time"

	"github.com/kharcha/kharcha/pkg/expense"
	"github.com/shopspring/decimal"
)

// Report is a financial statement for an optional date range. From and To are
// nil when the report covers all records.
type Report struct {
	GeneratedAt time.Time
	From        *time.Time
	To          *time.Time

	IncomeTotal  decimal.Decimal
	ExpenseTotal decimal.Decimal
	NetSavings   decimal.Decimal

	CategoryTotals []expense.CategoryTotal
	Expenses       []expense.Expense
}
