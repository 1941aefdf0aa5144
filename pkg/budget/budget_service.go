package budget

import (
	"context"
	"fmt"
	"time"

	"github.com/kharcha/kharcha/internal/utils"
	"github.com/kharcha/kharcha/pkg/user"
	log "github.com/sirupsen/logrus"
)

type Service interface {
	GetAll(ctx context.Context) ([]Budget, error)
	Create(ctx context.Context, budget Budget) (Budget, error)
	Update(ctx context.Context, budget Budget) (bool, error)
	Delete(ctx context.Context, budgetId int) (bool, error)
	FindActive(ctx context.Context, on time.Time) ([]Budget, error)
}

type ServiceImpl struct {
	repo  Repo
	clock utils.Clock
}

func NewBudgetService(repo Repo, clock utils.Clock) *ServiceImpl {
	return &ServiceImpl{repo: repo, clock: clock}
}

func (s *ServiceImpl) GetAll(ctx context.Context) ([]Budget, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.GetAll(ctx, userId)
}

// Create defaults a missing start date to the current day and derives the
// window end once, from the start date and period. Updates never recompute
// either, so a pocket keeps the window it was created with.
func (s *ServiceImpl) Create(ctx context.Context, budget Budget) (Budget, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Budget{}, fmt.Errorf("failed to get current user: %w", err)
	}

	if budget.Period == "" {
		budget.Period = PeriodMonthly
	}
	if budget.StartDate.IsZero() {
		now := s.clock.Now().UTC()
		budget.StartDate = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	}
	if budget.EndDate.IsZero() {
		budget.EndDate = EndDateFor(budget.StartDate, budget.Period)
	}
	return s.repo.Store(ctx, userId, budget)
}

func (s *ServiceImpl) Update(ctx context.Context, budget Budget) (bool, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to get current user: %w", err)
	}

	updated, err := s.repo.Update(ctx, userId, budget)
	if err != nil {
		return false, err
	}
	if !updated {
		log.Warnf("budget not updated, probably because it does not exist (%d) or the user (%d) is not the owner", budget.ID, userId)
	}
	return updated, nil
}

func (s *ServiceImpl) Delete(ctx context.Context, budgetId int) (bool, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to get current user: %w", err)
	}

	deleted, err := s.repo.Delete(ctx, userId, budgetId)
	if err != nil {
		return false, err
	}
	if !deleted {
		log.Warnf("budget not deleted, probably because it does not exist (%d) or the user (%d) is not the owner", budgetId, userId)
	}
	return deleted, nil
}

func (s *ServiceImpl) FindActive(ctx context.Context, on time.Time) ([]Budget, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.FindActive(ctx, userId, on)
}
