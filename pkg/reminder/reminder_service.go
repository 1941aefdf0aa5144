package reminder

import (
	"context"
	"fmt"

	"github.com/kharcha/kharcha/pkg/user"
	log "github.com/sirupsen/logrus"
)

type Service interface {
	GetAll(ctx context.Context) ([]Reminder, error)
	GetIncomplete(ctx context.Context) ([]Reminder, error)
	Create(ctx context.Context, reminder Reminder) (Reminder, error)
	Update(ctx context.Context, reminder Reminder) (bool, error)
	Delete(ctx context.Context, reminderId int) (bool, error)
	Complete(ctx context.Context, reminderId int) (bool, error)
}

type ServiceImpl struct {
	repo Repo
}

func NewReminderService(repo Repo) *ServiceImpl {
	return &ServiceImpl{repo: repo}
}

func (s *ServiceImpl) GetAll(ctx context.Context) ([]Reminder, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.GetAll(ctx, userId)
}

func (s *ServiceImpl) GetIncomplete(ctx context.Context) ([]Reminder, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.FindIncomplete(ctx, userId)
}

func (s *ServiceImpl) Create(ctx context.Context, reminder Reminder) (Reminder, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Reminder{}, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.Store(ctx, userId, reminder)
}

func (s *ServiceImpl) Update(ctx context.Context, reminder Reminder) (bool, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to get current user: %w", err)
	}

	updated, err := s.repo.Update(ctx, userId, reminder)
	if err != nil {
		return false, err
	}
	if !updated {
		log.Warnf("reminder not updated, probably because it does not exist (%d) or the user (%d) is not the owner", reminder.ID, userId)
	}
	return updated, nil
}

func (s *ServiceImpl) Delete(ctx context.Context, reminderId int) (bool, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to get current user: %w", err)
	}

	deleted, err := s.repo.Delete(ctx, userId, reminderId)
	if err != nil {
		return false, err
	}
	if !deleted {
		log.Warnf("reminder not deleted, probably because it does not exist (%d) or the user (%d) is not the owner", reminderId, userId)
	}
	return deleted, nil
}

// Complete marks the reminder done. A completed reminder is excluded from the
// dashboard and is never emailed, even if it was due and unsent.
func (s *ServiceImpl) Complete(ctx context.Context, reminderId int) (bool, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to get current user: %w", err)
	}

	completed, err := s.repo.Complete(ctx, userId, reminderId)
	if err != nil {
		return false, err
	}
	if !completed {
		log.Warnf("reminder not completed, probably because it does not exist (%d) or the user (%d) is not the owner", reminderId, userId)
	}
	return completed, nil
}
