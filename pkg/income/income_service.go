package income

import (
	"context"
	"fmt"

	"github.com/kharcha/kharcha/internal/database"
	"github.com/kharcha/kharcha/pkg/savings"
	"github.com/kharcha/kharcha/pkg/user"
	log "github.com/sirupsen/logrus"
)

type Service interface {
	GetAll(ctx context.Context) ([]Income, error)
	Create(ctx context.Context, income Income) (Income, error)
	Update(ctx context.Context, income Income) (bool, error)
	Delete(ctx context.Context, incomeId int) (bool, error)
}

// ServiceImpl coordinates income writes with the auto-savings reactor: every
// mutation and its savings projection commit in one transaction, so no reader
// ever observes an income without its derived savings.
type ServiceImpl struct {
	tx      database.TxRunner
	repo    Repo
	reactor savings.Reactor
}

func NewIncomeService(tx database.TxRunner, repo Repo, reactor savings.Reactor) *ServiceImpl {
	return &ServiceImpl{tx: tx, repo: repo, reactor: reactor}
}

func (s *ServiceImpl) GetAll(ctx context.Context) ([]Income, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.GetAll(ctx, userId)
}

func (s *ServiceImpl) Create(ctx context.Context, income Income) (Income, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Income{}, fmt.Errorf("failed to get current user: %w", err)
	}

	var created Income
	err = s.tx.InTx(ctx, func(q database.Querier) error {
		var err error
		created, err = s.repo.Store(ctx, q, userId, income)
		if err != nil {
			return err
		}
		return s.reactor.IncomeSaved(ctx, q, userId, incomeRef(created))
	})
	if err != nil {
		return Income{}, err
	}
	return created, nil
}

func (s *ServiceImpl) Update(ctx context.Context, income Income) (bool, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to get current user: %w", err)
	}

	updated := false
	err = s.tx.InTx(ctx, func(q database.Querier) error {
		var err error
		updated, err = s.repo.Update(ctx, q, userId, income)
		if err != nil {
			return err
		}
		if !updated {
			return nil
		}
		return s.reactor.IncomeSaved(ctx, q, userId, incomeRef(income))
	})
	if err != nil {
		return false, err
	}
	if !updated {
		log.Warnf("income not updated, probably because it does not exist (%d) or the user (%d) is not the owner", income.ID, userId)
	}
	return updated, nil
}

func (s *ServiceImpl) Delete(ctx context.Context, incomeId int) (bool, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to get current user: %w", err)
	}

	deleted := false
	err = s.tx.InTx(ctx, func(q database.Querier) error {
		var err error
		deleted, err = s.repo.Delete(ctx, q, userId, incomeId)
		if err != nil || !deleted {
			return err
		}
		return s.reactor.IncomeDeleted(ctx, q, incomeId)
	})
	if err != nil {
		return false, err
	}
	if !deleted {
		log.Warnf("income not deleted, probably because it does not exist (%d) or the user (%d) is not the owner", incomeId, userId)
	}
	return deleted, nil
}

func incomeRef(income Income) savings.IncomeRef {
	return savings.IncomeRef{
		Id:         income.ID,
		Source:     income.Source,
		Amount:     income.Amount,
		OccurredAt: income.OccurredAt,
	}
}
