package goal

import (
	"context"
	"fmt"

	"github.com/kharcha/kharcha/pkg/user"
	log "github.com/sirupsen/logrus"
)

type Service interface {
	GetAll(ctx context.Context) ([]SavingsGoal, error)
	Create(ctx context.Context, goal SavingsGoal) (SavingsGoal, error)
	Update(ctx context.Context, goal SavingsGoal) (bool, error)
	Delete(ctx context.Context, goalId int) (bool, error)
}

type ServiceImpl struct {
	repo Repo
}

func NewGoalService(repo Repo) *ServiceImpl {
	return &ServiceImpl{repo: repo}
}

func (s *ServiceImpl) GetAll(ctx context.Context) ([]SavingsGoal, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.GetAll(ctx, userId)
}

func (s *ServiceImpl) Create(ctx context.Context, goal SavingsGoal) (SavingsGoal, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return SavingsGoal{}, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.Store(ctx, userId, goal)
}

func (s *ServiceImpl) Update(ctx context.Context, goal SavingsGoal) (bool, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to get current user: %w", err)
	}

	updated, err := s.repo.Update(ctx, userId, goal)
	if err != nil {
		return false, err
	}
	if !updated {
		log.Warnf("savings goal not updated, probably because it does not exist (%d) or the user (%d) is not the owner", goal.ID, userId)
	}
	return updated, nil
}

func (s *ServiceImpl) Delete(ctx context.Context, goalId int) (bool, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to get current user: %w", err)
	}

	deleted, err := s.repo.Delete(ctx, userId, goalId)
	if err != nil {
		return false, err
	}
	if !deleted {
		log.Warnf("savings goal not deleted, probably because it does not exist (%d) or the user (%d) is not the owner", goalId, userId)
	}
	return deleted, nil
}
