package budget

import (
	"context"
	"sort"
	"time"
)

type StubBudgetRepo struct {
	nextId int
	data   map[int]Budget
	owners map[int]int
}

func NewStubBudgetRepo() *StubBudgetRepo {
	return &StubBudgetRepo{data: map[int]Budget{}, owners: map[int]int{}}
}

func (s *StubBudgetRepo) Store(ctx context.Context, userId int, budget Budget) (Budget, error) {
	s.nextId++
	budget.ID = s.nextId
	s.data[budget.ID] = budget
	s.owners[budget.ID] = userId
	return budget, nil
}

func (s *StubBudgetRepo) Update(ctx context.Context, userId int, budget Budget) (bool, error) {
	if _, ok := s.data[budget.ID]; !ok || s.owners[budget.ID] != userId {
		return false, nil
	}
	s.data[budget.ID] = budget
	return true, nil
}

func (s *StubBudgetRepo) Delete(ctx context.Context, userId int, budgetId int) (bool, error) {
	if _, ok := s.data[budgetId]; !ok || s.owners[budgetId] != userId {
		return false, nil
	}
	delete(s.data, budgetId)
	delete(s.owners, budgetId)
	return true, nil
}

func (s *StubBudgetRepo) GetAll(ctx context.Context, userId int) ([]Budget, error) {
	var budgets []Budget
	for id, budget := range s.data {
		if s.owners[id] == userId {
			budgets = append(budgets, budget)
		}
	}
	sort.Slice(budgets, func(i, j int) bool { return budgets[i].ID < budgets[j].ID })
	return budgets, nil
}

func (s *StubBudgetRepo) FindActive(ctx context.Context, userId int, on time.Time) ([]Budget, error) {
	all, _ := s.GetAll(ctx, userId)
	var active []Budget
	for _, budget := range all {
		if !budget.StartDate.IsZero() && on.Before(budget.StartDate) {
			continue
		}
		if !budget.EndDate.IsZero() && on.After(budget.EndDate) {
			continue
		}
		active = append(active, budget)
	}
	return active, nil
}

func (s *StubBudgetRepo) Cleanup() {
	s.data = map[int]Budget{}
	s.owners = map[int]int{}
}
