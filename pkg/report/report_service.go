package report

import (
	"context"
	"fmt"
	"time"

	"github.com/kharcha/kharcha/internal/utils"
	"github.com/kharcha/kharcha/pkg/expense"
	"github.com/kharcha/kharcha/pkg/income"
	"github.com/kharcha/kharcha/pkg/user"
)

type Service interface {
	GetReport(ctx context.Context, from *time.Time, to *time.Time) (Report, error)
}

type ServiceImpl struct {
	incomeRepo  income.Repo
	expenseRepo expense.Repo
	clock       utils.Clock
}

func NewReportService(incomeRepo income.Repo, expenseRepo expense.Repo, clock utils.Clock) *ServiceImpl {
	return &ServiceImpl{incomeRepo: incomeRepo, expenseRepo: expenseRepo, clock: clock}
}

// GetReport builds a statement for the range. Bounds are optional; the `to`
// bound is exclusive.
func (s *ServiceImpl) GetReport(ctx context.Context, from *time.Time, to *time.Time) (Report, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Report{}, fmt.Errorf("failed to get current user: %w", err)
	}

	report := Report{
		GeneratedAt: s.clock.Now(),
		From:        from,
		To:          to,
	}

	if report.IncomeTotal, err = s.incomeRepo.SumInRange(ctx, userId, from, to); err != nil {
		return Report{}, err
	}
	if report.ExpenseTotal, err = s.expenseRepo.SumInRange(ctx, userId, from, to); err != nil {
		return Report{}, err
	}
	report.NetSavings = report.IncomeTotal.Sub(report.ExpenseTotal)

	if report.CategoryTotals, err = s.expenseRepo.TotalsByCategory(ctx, userId, from, to); err != nil {
		return Report{}, err
	}
	if report.Expenses, err = s.expenseRepo.ListInRange(ctx, userId, from, to); err != nil {
		return Report{}, err
	}
	return report, nil
}
