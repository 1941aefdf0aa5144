package savings

import (
	"context"

	"github.com/kharcha/kharcha/internal/database"
	"github.com/shopspring/decimal"
)

type StubSavingsRepo struct {
	nextId int
	data   map[int]Savings
	owners map[int]int
}

func NewStubSavingsRepo() *StubSavingsRepo {
	return &StubSavingsRepo{data: map[int]Savings{}, owners: map[int]int{}}
}

func (s *StubSavingsRepo) UpsertAutomatic(ctx context.Context, q database.Querier, userId int, entry Savings) error {
	for id, existing := range s.data {
		if existing.IsAutomatic && existing.IncomeId == entry.IncomeId {
			entry.ID = id
			s.data[id] = entry
			return nil
		}
	}
	s.nextId++
	entry.ID = s.nextId
	s.data[entry.ID] = entry
	s.owners[entry.ID] = userId
	return nil
}

func (s *StubSavingsRepo) DeleteAutomatic(ctx context.Context, q database.Querier, incomeId int) error {
	for id, existing := range s.data {
		if existing.IsAutomatic && existing.IncomeId == incomeId {
			delete(s.data, id)
			delete(s.owners, id)
		}
	}
	return nil
}

func (s *StubSavingsRepo) FindByIncomeId(ctx context.Context, userId int, incomeId int) (*Savings, error) {
	for id, existing := range s.data {
		if existing.IncomeId == incomeId && s.owners[id] == userId {
			found := existing
			return &found, nil
		}
	}
	return nil, nil
}

func (s *StubSavingsRepo) Store(ctx context.Context, userId int, entry Savings) (Savings, error) {
	s.nextId++
	entry.ID = s.nextId
	entry.IsAutomatic = false
	s.data[entry.ID] = entry
	s.owners[entry.ID] = userId
	return entry, nil
}

func (s *StubSavingsRepo) GetAll(ctx context.Context, userId int) ([]Savings, error) {
	all := make([]Savings, 0, len(s.data))
	for id, entry := range s.data {
		if s.owners[id] == userId {
			all = append(all, entry)
		}
	}
	return all, nil
}

func (s *StubSavingsRepo) DeleteManual(ctx context.Context, userId int, savingsId int) (bool, error) {
	entry, ok := s.data[savingsId]
	if !ok || entry.IsAutomatic || s.owners[savingsId] != userId {
		return false, nil
	}
	delete(s.data, savingsId)
	delete(s.owners, savingsId)
	return true, nil
}

func (s *StubSavingsRepo) SumAutomatic(ctx context.Context, userId int) (decimal.Decimal, error) {
	sum := decimal.Zero
	for id, entry := range s.data {
		if entry.IsAutomatic && s.owners[id] == userId {
			sum = sum.Add(entry.Amount)
		}
	}
	return sum, nil
}

func (s *StubSavingsRepo) Cleanup() {
	s.data = map[int]Savings{}
	s.owners = map[int]int{}
}
