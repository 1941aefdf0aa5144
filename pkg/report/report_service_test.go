package report

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/kharcha/kharcha/internal/utils"
	"github.com/kharcha/kharcha/pkg/expense"
	"github.com/kharcha/kharcha/pkg/income"
	"github.com/kharcha/kharcha/pkg/user"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

var reportNow = time.Date(2024, time.July, 1, 10, 0, 0, 0, time.UTC)

func setupReportService(t *testing.T) (Service, *income.StubIncomeRepo, *expense.StubExpenseRepo, context.Context) {
	incomeRepo := income.NewStubIncomeRepo()
	expenseRepo := expense.NewStubExpenseRepo()
	service := NewReportService(incomeRepo, expenseRepo, &utils.MockClock{FixedNow: reportNow})
	ctx := user.WithUser(context.Background(), user.User{
		Id:       1,
		Uid:      uuid.NewString(),
		Username: "test-user-1",
	})
	t.Cleanup(func() {
		incomeRepo.Cleanup()
		expenseRepo.Cleanup()
	})
	return service, incomeRepo, expenseRepo, ctx
}

func TestReportServiceImpl_GetReport_Unfiltered(t *testing.T) {
	// given
	service, incomeRepo, expenseRepo, ctx := setupReportService(t)
	_, err := incomeRepo.Store(ctx, nil, 1, income.Income{
		Source:     "Salary",
		Amount:     decimal.RequireFromString("3000"),
		OccurredAt: reportNow.AddDate(0, -1, 0),
	})
	assert.NoError(t, err)
	_, err = expenseRepo.Store(ctx, 1, expense.Expense{
		Category:      "Food",
		PaymentMethod: "Cash",
		SourceType:    expense.SourceIncome,
		Amount:        decimal.RequireFromString("450"),
		OccurredAt:    reportNow.AddDate(0, 0, -10),
	})
	assert.NoError(t, err)

	// when
	report, err := service.GetReport(ctx, nil, nil)

	// then
	assert.NoError(t, err)
	assert.True(t, decimal.RequireFromString("3000").Equal(report.IncomeTotal))
	assert.True(t, decimal.RequireFromString("450").Equal(report.ExpenseTotal))
	assert.True(t, decimal.RequireFromString("2550").Equal(report.NetSavings))
	assert.Len(t, report.CategoryTotals, 1)
	assert.Len(t, report.Expenses, 1)
	assert.Equal(t, reportNow, report.GeneratedAt)
}

func TestReportServiceImpl_GetReport_RangeFilters(t *testing.T) {
	// given expenses inside and outside the range
	service, _, expenseRepo, ctx := setupReportService(t)
	_, err := expenseRepo.Store(ctx, 1, expense.Expense{
		Category:      "Food",
		PaymentMethod: "Cash",
		SourceType:    expense.SourceIncome,
		Amount:        decimal.RequireFromString("100"),
		OccurredAt:    time.Date(2024, time.June, 15, 12, 0, 0, 0, time.UTC),
	})
	assert.NoError(t, err)
	_, err = expenseRepo.Store(ctx, 1, expense.Expense{
		Category:      "Food",
		PaymentMethod: "Cash",
		SourceType:    expense.SourceIncome,
		Amount:        decimal.RequireFromString("999"),
		OccurredAt:    time.Date(2024, time.January, 15, 12, 0, 0, 0, time.UTC),
	})
	assert.NoError(t, err)
	from := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, time.July, 1, 0, 0, 0, 0, time.UTC)

	// when
	report, err := service.GetReport(ctx, &from, &to)

	// then only the June expense is counted
	assert.NoError(t, err)
	assert.True(t, decimal.RequireFromString("100").Equal(report.ExpenseTotal), "got %s", report.ExpenseTotal)
	assert.Len(t, report.Expenses, 1)
}

func TestReportServiceImpl_GetReport_EmptyIsZero(t *testing.T) {
	service, _, _, ctx := setupReportService(t)

	report, err := service.GetReport(ctx, nil, nil)

	assert.NoError(t, err)
	assert.True(t, report.IncomeTotal.IsZero())
	assert.True(t, report.ExpenseTotal.IsZero())
	assert.True(t, report.NetSavings.IsZero())
}

func TestPDFRenderer_Render(t *testing.T) {
	// given
	renderer := NewPDFRenderer()
	from := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)
	report := Report{
		GeneratedAt:  reportNow,
		From:         &from,
		IncomeTotal:  decimal.RequireFromString("3000"),
		ExpenseTotal: decimal.RequireFromString("450"),
		NetSavings:   decimal.RequireFromString("2550"),
		CategoryTotals: []expense.CategoryTotal{
			{Category: "Food", Total: decimal.RequireFromString("450")},
		},
		Expenses: []expense.Expense{
			{
				Category:      "Food",
				PaymentMethod: "Cash",
				Amount:        decimal.RequireFromString("450"),
				OccurredAt:    reportNow.AddDate(0, 0, -10),
			},
		},
	}

	// when
	var buf bytes.Buffer
	err := renderer.Render(report, &buf)

	// then a PDF document is produced
	assert.NoError(t, err)
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")))
	assert.Greater(t, buf.Len(), 500)
}
