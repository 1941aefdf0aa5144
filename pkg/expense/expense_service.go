package expense

import (
	"context"
	"fmt"

	"github.com/kharcha/kharcha/pkg/user"
	log "github.com/sirupsen/logrus"
)

type Service interface {
	GetAll(ctx context.Context) ([]Expense, error)
	Create(ctx context.Context, expense Expense) (Expense, error)
	Update(ctx context.Context, expense Expense) (bool, error)
	Delete(ctx context.Context, expenseId int) (bool, error)
}

type ServiceImpl struct {
	repo Repo
}

func NewExpenseService(repo Repo) *ServiceImpl {
	return &ServiceImpl{repo: repo}
}

func (s *ServiceImpl) GetAll(ctx context.Context) ([]Expense, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.GetAll(ctx, userId)
}

func (s *ServiceImpl) Create(ctx context.Context, expense Expense) (Expense, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Expense{}, fmt.Errorf("failed to get current user: %w", err)
	}
	applyDefaults(&expense)
	return s.repo.Store(ctx, userId, expense)
}

func (s *ServiceImpl) Update(ctx context.Context, expense Expense) (bool, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to get current user: %w", err)
	}
	applyDefaults(&expense)
	updated, err := s.repo.Update(ctx, userId, expense)
	if err != nil {
		return false, err
	}
	if !updated {
		log.Warnf("expense not updated, probably because it does not exist (%d) or the user (%d) is not the owner", expense.ID, userId)
	}
	return updated, nil
}

func (s *ServiceImpl) Delete(ctx context.Context, expenseId int) (bool, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to get current user: %w", err)
	}
	deleted, err := s.repo.Delete(ctx, userId, expenseId)
	if err != nil {
		return false, err
	}
	if !deleted {
		log.Warnf("expense not deleted, probably because it does not exist (%d) or the user (%d) is not the owner", expenseId, userId)
	}
	return deleted, nil
}

func applyDefaults(expense *Expense) {
	if expense.PaymentMethod == "" {
		expense.PaymentMethod = "Cash"
	}
	if expense.SourceType == "" {
		expense.SourceType = SourceIncome
	}
}
