package income

import (
	"context"
	"sort"
	"time"

	"github.com/kharcha/kharcha/internal/database"
	"github.com/shopspring/decimal"
)

type StubIncomeRepo struct {
	nextId int
	data   map[int]Income
	owners map[int]int
}

func NewStubIncomeRepo() *StubIncomeRepo {
	return &StubIncomeRepo{data: map[int]Income{}, owners: map[int]int{}}
}

func (s *StubIncomeRepo) Store(ctx context.Context, q database.Querier, userId int, income Income) (Income, error) {
	s.nextId++
	income.ID = s.nextId
	s.data[income.ID] = income
	s.owners[income.ID] = userId
	return income, nil
}

func (s *StubIncomeRepo) Update(ctx context.Context, q database.Querier, userId int, income Income) (bool, error) {
	if _, ok := s.data[income.ID]; !ok || s.owners[income.ID] != userId {
		return false, nil
	}
	s.data[income.ID] = income
	return true, nil
}

func (s *StubIncomeRepo) Delete(ctx context.Context, q database.Querier, userId int, incomeId int) (bool, error) {
	if _, ok := s.data[incomeId]; !ok || s.owners[incomeId] != userId {
		return false, nil
	}
	delete(s.data, incomeId)
	delete(s.owners, incomeId)
	return true, nil
}

func (s *StubIncomeRepo) Get(ctx context.Context, userId int, incomeId int) (Income, error) {
	income, ok := s.data[incomeId]
	if !ok || s.owners[incomeId] != userId {
		return Income{}, ErrIncomeNotFound
	}
	return income, nil
}

func (s *StubIncomeRepo) GetAll(ctx context.Context, userId int) ([]Income, error) {
	incomes := s.forUser(userId)
	sort.Slice(incomes, func(i, j int) bool {
		return incomes[i].OccurredAt.After(incomes[j].OccurredAt)
	})
	return incomes, nil
}

func (s *StubIncomeRepo) Recent(ctx context.Context, userId int, limit int) ([]Income, error) {
	incomes, _ := s.GetAll(ctx, userId)
	if len(incomes) > limit {
		incomes = incomes[:limit]
	}
	return incomes, nil
}

func (s *StubIncomeRepo) SumAll(ctx context.Context, userId int) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, income := range s.forUser(userId) {
		sum = sum.Add(income.Amount)
	}
	return sum, nil
}

func (s *StubIncomeRepo) SumInRange(ctx context.Context, userId int, from *time.Time, to *time.Time) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, income := range s.forUser(userId) {
		if from != nil && income.OccurredAt.Before(*from) {
			continue
		}
		if to != nil && !income.OccurredAt.Before(*to) {
			continue
		}
		sum = sum.Add(income.Amount)
	}
	return sum, nil
}

func (s *StubIncomeRepo) ListBetween(ctx context.Context, userId int, from time.Time, to time.Time) ([]Income, error) {
	var incomes []Income
	for _, income := range s.forUser(userId) {
		if !income.OccurredAt.Before(from) && income.OccurredAt.Before(to) {
			incomes = append(incomes, income)
		}
	}
	sort.Slice(incomes, func(i, j int) bool {
		return incomes[i].OccurredAt.Before(incomes[j].OccurredAt)
	})
	return incomes, nil
}

func (s *StubIncomeRepo) forUser(userId int) []Income {
	var incomes []Income
	for id, income := range s.data {
		if s.owners[id] == userId {
			incomes = append(incomes, income)
		}
	}
	return incomes
}

func (s *StubIncomeRepo) Cleanup() {
	s.data = map[int]Income{}
	s.owners = map[int]int{}
}
