package category

import (
	"context"
	"fmt"

	"github.com/kharcha/kharcha/pkg/user"
	log "github.com/sirupsen/logrus"
)

type Service interface {
	ListByKind(ctx context.Context, kind Kind) ([]Category, error)
	Create(ctx context.Context, category Category) (Category, error)
	Delete(ctx context.Context, categoryId int) (bool, error)
}

type ServiceImpl struct {
	repo Repo
}

func NewCategoryService(repo Repo) *ServiceImpl {
	return &ServiceImpl{repo: repo}
}

// ListByKind returns the user's vocabulary for the kind, seeding the defaults
// on first use so a fresh account always has something to pick from.
func (s *ServiceImpl) ListByKind(ctx context.Context, kind Kind) ([]Category, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}

	categories, err := s.repo.ListByKind(ctx, userId, kind)
	if err != nil {
		return nil, err
	}
	if len(categories) > 0 {
		return categories, nil
	}

	log.Debugf("seeding default %s categories for user %d", kind, userId)
	if err := s.repo.SeedDefaults(ctx, userId, kind, DefaultNames(kind)); err != nil {
		return nil, err
	}
	return s.repo.ListByKind(ctx, userId, kind)
}

func (s *ServiceImpl) Create(ctx context.Context, category Category) (Category, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Category{}, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.Upsert(ctx, userId, category)
}

func (s *ServiceImpl) Delete(ctx context.Context, categoryId int) (bool, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to get current user: %w", err)
	}

	deleted, err := s.repo.Delete(ctx, userId, categoryId)
	if err != nil {
		return false, err
	}
	if !deleted {
		log.Warnf("category not deleted, probably because it does not exist (%d) or the user (%d) is not the owner", categoryId, userId)
	}
	return deleted, nil
}
