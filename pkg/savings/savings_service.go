package savings

import (
	"context"
	"fmt"

	"github.com/kharcha/kharcha/pkg/user"
	log "github.com/sirupsen/logrus"
)

type Service interface {
	GetAll(ctx context.Context) ([]Savings, error)
	CreateManual(ctx context.Context, s Savings) (Savings, error)
	DeleteManual(ctx context.Context, savingsId int) (bool, error)
}

type ServiceImpl struct {
	repo Repo
}

func NewSavingsService(repo Repo) *ServiceImpl {
	return &ServiceImpl{repo: repo}
}

func (s *ServiceImpl) GetAll(ctx context.Context) ([]Savings, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.GetAll(ctx, userId)
}

func (s *ServiceImpl) CreateManual(ctx context.Context, entry Savings) (Savings, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Savings{}, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.Store(ctx, userId, entry)
}

func (s *ServiceImpl) DeleteManual(ctx context.Context, savingsId int) (bool, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to get current user: %w", err)
	}
	deleted, err := s.repo.DeleteManual(ctx, userId, savingsId)
	if err != nil {
		return false, err
	}
	if !deleted {
		log.Warnf("savings %d not deleted, it does not exist, is automatic, or user %d is not the owner", savingsId, userId)
	}
	return deleted, nil
}
