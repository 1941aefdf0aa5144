package savings

import (
	"context"
	"fmt"
	"time"

	"github.com/kharcha/kharcha/internal/database"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

// autoSavingsRate is the fixed share of every income that is set aside automatically.
var autoSavingsRate = decimal.RequireFromString("0.20")

// Reactor keeps the automatic savings projection in sync with income writes.
// The income service calls it explicitly inside the transaction of the
// triggering mutation, so income and its derived savings commit atomically.
type Reactor interface {
	IncomeSaved(ctx context.Context, q database.Querier, userId int, income IncomeRef) error
	IncomeDeleted(ctx context.Context, q database.Querier, incomeId int) error
}

type ReactorImpl struct {
	repo Repo
}

func NewReactor(repo Repo) *ReactorImpl {
	return &ReactorImpl{repo: repo}
}

// AutoAmount returns the automatic savings amount for an income amount,
// rounded to two decimal places.
func AutoAmount(incomeAmount decimal.Decimal) decimal.Decimal {
	return incomeAmount.Mul(autoSavingsRate).Round(2)
}

func (r *ReactorImpl) IncomeSaved(ctx context.Context, q database.Querier, userId int, income IncomeRef) error {
	projected := Savings{
		IncomeId:    income.Id,
		Amount:      AutoAmount(income.Amount),
		Date:        dateOf(income.OccurredAt),
		Description: fmt.Sprintf("20%% auto-savings from %s", income.Source),
		IsAutomatic: true,
	}
	if err := r.repo.UpsertAutomatic(ctx, q, userId, projected); err != nil {
		return fmt.Errorf("failed to project automatic savings for income %d: %w", income.Id, err)
	}
	log.Debugf("automatic savings for income %d set to %s", income.Id, projected.Amount)
	return nil
}

func (r *ReactorImpl) IncomeDeleted(ctx context.Context, q database.Querier, incomeId int) error {
	if err := r.repo.DeleteAutomatic(ctx, q, incomeId); err != nil {
		return fmt.Errorf("failed to remove automatic savings for income %d: %w", incomeId, err)
	}
	return nil
}

func dateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
