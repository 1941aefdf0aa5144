package dashboard

import (
	"time"

	"github.com/kharcha/kharcha/pkg/budget"
	"github.com/kharcha/kharcha/pkg/expense"
	"github.com/kharcha/kharcha/pkg/reminder"
	"github.com/shopspring/decimal"
)

// Summary is the single-screen overview of a user's finances. All monetary
// fields are decimal zero when the user has no matching records.
type Summary struct {
	IncomeTotal           decimal.Decimal
	ExpenseTotal          decimal.Decimal
	SavingsTotal          decimal.Decimal
	AutomatedSavingsTotal decimal.Decimal
	UnallocatedSavings    decimal.Decimal

	SpentToday      decimal.Decimal
	SpentYesterday  decimal.Decimal
	SpentLast30Days decimal.Decimal

	IncomeSeries  []DailyPoint
	ExpenseSeries []DailyPoint

	CategoryBreakdown   []expense.CategoryTotal
	RecentTransactions  []Transaction
	ActivePockets       []PocketGroup
	IncompleteReminders []reminder.Reminder
}

// DailyPoint is one day of the 7-day series, keyed by local midnight.
type DailyPoint struct {
	Date  time.Time
	Total decimal.Decimal
}

type TransactionType string

const (
	TransactionIncome  TransactionType = "income"
	TransactionExpense TransactionType = "expense"
)

// Transaction is an income or expense entry flattened into the recent feed.
type Transaction struct {
	Type       TransactionType
	ID         int
	Label      string
	Amount     decimal.Decimal
	OccurredAt time.Time
}

// Pocket is an active budget annotated with how much of its limit is used.
type Pocket struct {
	budget.Budget
	Spent     decimal.Decimal
	Remaining decimal.Decimal
}

type PocketGroup struct {
	Period  budget.Period
	Pockets []Pocket
}
