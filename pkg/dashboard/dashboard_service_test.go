package dashboard

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/kharcha/kharcha/internal/utils"
	"github.com/kharcha/kharcha/pkg/budget"
	"github.com/kharcha/kharcha/pkg/expense"
	"github.com/kharcha/kharcha/pkg/income"
	"github.com/kharcha/kharcha/pkg/reminder"
	"github.com/kharcha/kharcha/pkg/savings"
	"github.com/kharcha/kharcha/pkg/user"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

var summaryNow = time.Date(2024, time.June, 15, 14, 30, 0, 0, time.UTC)

type dashboardFixture struct {
	service     Service
	incomeRepo  *income.StubIncomeRepo
	expenseRepo *expense.StubExpenseRepo
	savingsRepo *savings.StubSavingsRepo
	budgetRepo  *budget.StubBudgetRepo
	remRepo     *reminder.StubReminderRepo
	ctx         context.Context
}

func setupDashboard(t *testing.T) dashboardFixture {
	f := dashboardFixture{
		incomeRepo:  income.NewStubIncomeRepo(),
		expenseRepo: expense.NewStubExpenseRepo(),
		savingsRepo: savings.NewStubSavingsRepo(),
		budgetRepo:  budget.NewStubBudgetRepo(),
		remRepo:     reminder.NewStubReminderRepo(),
	}
	f.service = NewDashboardService(
		f.incomeRepo,
		f.expenseRepo,
		f.savingsRepo,
		f.budgetRepo,
		f.remRepo,
		&utils.MockClock{FixedNow: summaryNow},
	)
	f.ctx = user.WithUser(context.Background(), user.User{
		Id:       1,
		Uid:      uuid.NewString(),
		Username: "test-user-1",
	})
	t.Cleanup(func() {
		f.incomeRepo.Cleanup()
		f.expenseRepo.Cleanup()
		f.savingsRepo.Cleanup()
		f.budgetRepo.Cleanup()
		f.remRepo.Cleanup()
	})
	return f
}

func (f dashboardFixture) addIncome(t *testing.T, amount string, at time.Time) income.Income {
	created, err := f.incomeRepo.Store(f.ctx, nil, 1, income.Income{
		Source:     "Salary",
		Amount:     decimal.RequireFromString(amount),
		OccurredAt: at,
	})
	assert.NoError(t, err)
	return created
}

func (f dashboardFixture) addExpense(t *testing.T, category, amount string, at time.Time) {
	_, err := f.expenseRepo.Store(f.ctx, 1, expense.Expense{
		Category:      category,
		PaymentMethod: "Cash",
		SourceType:    expense.SourceIncome,
		Amount:        decimal.RequireFromString(amount),
		OccurredAt:    at,
	})
	assert.NoError(t, err)
}

func TestDashboardService_GetSummary_EmptyStateIsAllZero(t *testing.T) {
	// given no records at all
	f := setupDashboard(t)

	// when
	summary, err := f.service.GetSummary(f.ctx)

	// then
	assert.NoError(t, err)
	assert.True(t, summary.IncomeTotal.IsZero())
	assert.True(t, summary.ExpenseTotal.IsZero())
	assert.True(t, summary.SavingsTotal.IsZero())
	assert.True(t, summary.AutomatedSavingsTotal.IsZero())
	assert.True(t, summary.UnallocatedSavings.IsZero())
	assert.Len(t, summary.IncomeSeries, 7)
	assert.Len(t, summary.ExpenseSeries, 7)
	for _, point := range summary.ExpenseSeries {
		assert.True(t, point.Total.IsZero())
	}
	assert.Empty(t, summary.RecentTransactions)
	assert.Empty(t, summary.ActivePockets)
	assert.Empty(t, summary.IncompleteReminders)
}

func TestDashboardService_GetSummary_SavingsIdentities(t *testing.T) {
	// given
	f := setupDashboard(t)
	created := f.addIncome(t, "3000", summaryNow.Add(-48*time.Hour))
	f.addExpense(t, "Food", "500", summaryNow.Add(-24*time.Hour))
	assert.NoError(t, savings.NewReactor(f.savingsRepo).IncomeSaved(f.ctx, nil, 1, savings.IncomeRef{
		Id:         created.ID,
		Source:     created.Source,
		Amount:     created.Amount,
		OccurredAt: created.OccurredAt,
	}))

	// when
	summary, err := f.service.GetSummary(f.ctx)

	// then savings_total = income - expenses, unallocated = savings_total - automated
	assert.NoError(t, err)
	assert.True(t, decimal.RequireFromString("2500").Equal(summary.SavingsTotal), "got %s", summary.SavingsTotal)
	assert.True(t, decimal.RequireFromString("600").Equal(summary.AutomatedSavingsTotal), "got %s", summary.AutomatedSavingsTotal)
	assert.True(t, decimal.RequireFromString("1900").Equal(summary.UnallocatedSavings), "got %s", summary.UnallocatedSavings)
}

func TestDashboardService_GetSummary_DailyWindows(t *testing.T) {
	// given
	f := setupDashboard(t)
	f.addExpense(t, "Food", "10", summaryNow.Add(-2*time.Hour))                  // today
	f.addExpense(t, "Food", "20", summaryNow.Add(-24*time.Hour))                 // yesterday
	f.addExpense(t, "Transportation", "30", summaryNow.Add(-20*24*time.Hour))    // within 30 days
	f.addExpense(t, "Entertainment", "1000", summaryNow.Add(-60*24*time.Hour))   // outside 30 days

	// when
	summary, err := f.service.GetSummary(f.ctx)

	// then
	assert.NoError(t, err)
	assert.True(t, decimal.RequireFromString("10").Equal(summary.SpentToday), "got %s", summary.SpentToday)
	assert.True(t, decimal.RequireFromString("20").Equal(summary.SpentYesterday), "got %s", summary.SpentYesterday)
	assert.True(t, decimal.RequireFromString("60").Equal(summary.SpentLast30Days), "got %s", summary.SpentLast30Days)
}

func TestDashboardService_GetSummary_SevenDaySeries(t *testing.T) {
	// given expenses on today, three days ago, and eight days ago
	f := setupDashboard(t)
	f.addExpense(t, "Food", "10", summaryNow)
	f.addExpense(t, "Food", "5", summaryNow.Add(-3*24*time.Hour))
	f.addExpense(t, "Food", "99", summaryNow.Add(-8*24*time.Hour))

	// when
	summary, err := f.service.GetSummary(f.ctx)

	// then the series has exactly seven points, oldest first, zero-filled
	assert.NoError(t, err)
	assert.Len(t, summary.ExpenseSeries, 7)
	assert.Equal(t, time.Date(2024, time.June, 9, 0, 0, 0, 0, time.UTC), summary.ExpenseSeries[0].Date)
	assert.Equal(t, time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC), summary.ExpenseSeries[6].Date)
	assert.True(t, decimal.RequireFromString("10").Equal(summary.ExpenseSeries[6].Total))
	assert.True(t, decimal.RequireFromString("5").Equal(summary.ExpenseSeries[3].Total))
	assert.True(t, summary.ExpenseSeries[0].Total.IsZero())
}

func TestDashboardService_GetSummary_CategoryBreakdownOrder(t *testing.T) {
	// given
	f := setupDashboard(t)
	f.addExpense(t, "Food", "100", summaryNow.Add(-time.Hour))
	f.addExpense(t, "Rent", "500", summaryNow.Add(-2*time.Hour))
	f.addExpense(t, "Food", "50", summaryNow.Add(-3*time.Hour))

	// when
	summary, err := f.service.GetSummary(f.ctx)

	// then totals are aggregated per category, highest first
	assert.NoError(t, err)
	assert.Len(t, summary.CategoryBreakdown, 2)
	assert.Equal(t, "Rent", summary.CategoryBreakdown[0].Category)
	assert.True(t, decimal.RequireFromString("500").Equal(summary.CategoryBreakdown[0].Total))
	assert.Equal(t, "Food", summary.CategoryBreakdown[1].Category)
	assert.True(t, decimal.RequireFromString("150").Equal(summary.CategoryBreakdown[1].Total))
}

func TestDashboardService_GetSummary_RecentFeedMergedTop5(t *testing.T) {
	// given four incomes and three expenses interleaved over the last hours
	f := setupDashboard(t)
	for i := 0; i < 4; i++ {
		f.addIncome(t, "100", summaryNow.Add(-time.Duration(2*i+1)*time.Hour))
	}
	for i := 0; i < 3; i++ {
		f.addExpense(t, "Food", "10", summaryNow.Add(-time.Duration(2*i+2)*time.Hour))
	}

	// when
	summary, err := f.service.GetSummary(f.ctx)

	// then the newest five entries appear, newest first, with type tags
	assert.NoError(t, err)
	assert.Len(t, summary.RecentTransactions, 5)
	assert.Equal(t, TransactionIncome, summary.RecentTransactions[0].Type)
	assert.Equal(t, TransactionExpense, summary.RecentTransactions[1].Type)
	for i := 1; i < len(summary.RecentTransactions); i++ {
		assert.False(t, summary.RecentTransactions[i].OccurredAt.After(summary.RecentTransactions[i-1].OccurredAt))
	}
}

func TestDashboardService_GetSummary_ActivePockets(t *testing.T) {
	// given an active weekly pocket for Food and an expired one for Rent
	f := setupDashboard(t)
	_, err := f.budgetRepo.Store(f.ctx, 1, budget.Budget{
		Category:    "Food",
		LimitAmount: decimal.RequireFromString("200"),
		Period:      budget.PeriodWeekly,
		StartDate:   time.Date(2024, time.June, 10, 0, 0, 0, 0, time.UTC),
		EndDate:     time.Date(2024, time.June, 16, 0, 0, 0, 0, time.UTC),
	})
	assert.NoError(t, err)
	_, err = f.budgetRepo.Store(f.ctx, 1, budget.Budget{
		Category:    "Rent",
		LimitAmount: decimal.RequireFromString("1000"),
		Period:      budget.PeriodMonthly,
		StartDate:   time.Date(2024, time.April, 1, 0, 0, 0, 0, time.UTC),
		EndDate:     time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC),
	})
	assert.NoError(t, err)
	f.addExpense(t, "Food", "80", summaryNow.Add(-24*time.Hour))
	f.addExpense(t, "Food", "999", summaryNow.Add(-30*24*time.Hour)) // before the window

	// when
	summary, err := f.service.GetSummary(f.ctx)

	// then only the active pocket appears, with spend limited to its window
	assert.NoError(t, err)
	assert.Len(t, summary.ActivePockets, 1)
	group := summary.ActivePockets[0]
	assert.Equal(t, budget.PeriodWeekly, group.Period)
	assert.Len(t, group.Pockets, 1)
	assert.True(t, decimal.RequireFromString("80").Equal(group.Pockets[0].Spent), "got %s", group.Pockets[0].Spent)
	assert.True(t, decimal.RequireFromString("120").Equal(group.Pockets[0].Remaining), "got %s", group.Pockets[0].Remaining)
}

func TestDashboardService_GetSummary_IncompleteRemindersAscending(t *testing.T) {
	// given
	f := setupDashboard(t)
	_, err := f.remRepo.Store(f.ctx, 1, reminder.Reminder{
		Title:        "Later",
		ReminderDate: summaryNow.Add(48 * time.Hour),
	})
	assert.NoError(t, err)
	_, err = f.remRepo.Store(f.ctx, 1, reminder.Reminder{
		Title:        "Sooner",
		ReminderDate: summaryNow.Add(2 * time.Hour),
	})
	assert.NoError(t, err)
	done, err := f.remRepo.Store(f.ctx, 1, reminder.Reminder{
		Title:        "Done",
		ReminderDate: summaryNow.Add(time.Hour),
	})
	assert.NoError(t, err)
	_, err = f.remRepo.Complete(f.ctx, 1, done.ID)
	assert.NoError(t, err)

	// when
	summary, err := f.service.GetSummary(f.ctx)

	// then completed reminders are excluded and the rest sorted by date
	assert.NoError(t, err)
	assert.Len(t, summary.IncompleteReminders, 2)
	assert.Equal(t, "Sooner", summary.IncompleteReminders[0].Title)
	assert.Equal(t, "Later", summary.IncompleteReminders[1].Title)
}

func TestDashboardService_GetSummary_TenantIsolation(t *testing.T) {
	// given records belonging to another user
	f := setupDashboard(t)
	_, err := f.incomeRepo.Store(f.ctx, nil, 2, income.Income{
		Source:     "Salary",
		Amount:     decimal.RequireFromString("5000"),
		OccurredAt: summaryNow.Add(-time.Hour),
	})
	assert.NoError(t, err)
	_, err = f.expenseRepo.Store(f.ctx, 2, expense.Expense{
		Category:      "Rent",
		PaymentMethod: "Cash",
		SourceType:    expense.SourceIncome,
		Amount:        decimal.RequireFromString("2000"),
		OccurredAt:    summaryNow.Add(-time.Hour),
	})
	assert.NoError(t, err)

	// when
	summary, err := f.service.GetSummary(f.ctx)

	// then the other user's records do not leak into this summary
	assert.NoError(t, err)
	assert.True(t, summary.IncomeTotal.IsZero())
	assert.True(t, summary.ExpenseTotal.IsZero())
	assert.Empty(t, summary.RecentTransactions)
	assert.Empty(t, summary.CategoryBreakdown)
}
