package expense

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

type StubExpenseRepo struct {
	nextId int
	data   map[int]Expense
	owners map[int]int
}

func NewStubExpenseRepo() *StubExpenseRepo {
	return &StubExpenseRepo{data: map[int]Expense{}, owners: map[int]int{}}
}

func (s *StubExpenseRepo) Store(ctx context.Context, userId int, expense Expense) (Expense, error) {
	s.nextId++
	expense.ID = s.nextId
	s.data[expense.ID] = expense
	s.owners[expense.ID] = userId
	return expense, nil
}

func (s *StubExpenseRepo) Update(ctx context.Context, userId int, expense Expense) (bool, error) {
	if _, ok := s.data[expense.ID]; !ok || s.owners[expense.ID] != userId {
		return false, nil
	}
	s.data[expense.ID] = expense
	return true, nil
}

func (s *StubExpenseRepo) Delete(ctx context.Context, userId int, expenseId int) (bool, error) {
	if _, ok := s.data[expenseId]; !ok || s.owners[expenseId] != userId {
		return false, nil
	}
	delete(s.data, expenseId)
	delete(s.owners, expenseId)
	return true, nil
}

func (s *StubExpenseRepo) GetAll(ctx context.Context, userId int) ([]Expense, error) {
	expenses := s.forUser(userId)
	sort.Slice(expenses, func(i, j int) bool {
		return expenses[i].OccurredAt.After(expenses[j].OccurredAt)
	})
	return expenses, nil
}

func (s *StubExpenseRepo) Recent(ctx context.Context, userId int, limit int) ([]Expense, error) {
	expenses, _ := s.GetAll(ctx, userId)
	if len(expenses) > limit {
		expenses = expenses[:limit]
	}
	return expenses, nil
}

func (s *StubExpenseRepo) SumAll(ctx context.Context, userId int) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, expense := range s.forUser(userId) {
		sum = sum.Add(expense.Amount)
	}
	return sum, nil
}

func (s *StubExpenseRepo) SumBetween(ctx context.Context, userId int, from time.Time, to time.Time) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, expense := range s.forUser(userId) {
		if !expense.OccurredAt.Before(from) && expense.OccurredAt.Before(to) {
			sum = sum.Add(expense.Amount)
		}
	}
	return sum, nil
}

func (s *StubExpenseRepo) ListBetween(ctx context.Context, userId int, from time.Time, to time.Time) ([]Expense, error) {
	var expenses []Expense
	for _, expense := range s.forUser(userId) {
		if !expense.OccurredAt.Before(from) && expense.OccurredAt.Before(to) {
			expenses = append(expenses, expense)
		}
	}
	sort.Slice(expenses, func(i, j int) bool {
		return expenses[i].OccurredAt.Before(expenses[j].OccurredAt)
	})
	return expenses, nil
}

func (s *StubExpenseRepo) ListInRange(ctx context.Context, userId int, from *time.Time, to *time.Time) ([]Expense, error) {
	var expenses []Expense
	for _, expense := range s.forUser(userId) {
		if s.inRange(expense, from, to) {
			expenses = append(expenses, expense)
		}
	}
	sort.Slice(expenses, func(i, j int) bool {
		return expenses[i].OccurredAt.Before(expenses[j].OccurredAt)
	})
	return expenses, nil
}

func (s *StubExpenseRepo) SumInRange(ctx context.Context, userId int, from *time.Time, to *time.Time) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, expense := range s.forUser(userId) {
		if s.inRange(expense, from, to) {
			sum = sum.Add(expense.Amount)
		}
	}
	return sum, nil
}

func (s *StubExpenseRepo) TotalsByCategory(ctx context.Context, userId int, from *time.Time, to *time.Time) ([]CategoryTotal, error) {
	sums := map[string]decimal.Decimal{}
	for _, expense := range s.forUser(userId) {
		if !s.inRange(expense, from, to) {
			continue
		}
		current, ok := sums[expense.Category]
		if !ok {
			current = decimal.Zero
		}
		sums[expense.Category] = current.Add(expense.Amount)
	}
	totals := make([]CategoryTotal, 0, len(sums))
	for category, total := range sums {
		totals = append(totals, CategoryTotal{Category: category, Total: total})
	}
	sort.Slice(totals, func(i, j int) bool {
		return totals[i].Total.GreaterThan(totals[j].Total)
	})
	return totals, nil
}

func (s *StubExpenseRepo) SumByCategoryBetween(ctx context.Context, userId int, category string, from *time.Time, to *time.Time) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, expense := range s.forUser(userId) {
		if expense.Category == category && s.inRange(expense, from, to) {
			sum = sum.Add(expense.Amount)
		}
	}
	return sum, nil
}

func (s *StubExpenseRepo) inRange(expense Expense, from *time.Time, to *time.Time) bool {
	if from != nil && expense.OccurredAt.Before(*from) {
		return false
	}
	if to != nil && !expense.OccurredAt.Before(*to) {
		return false
	}
	return true
}

func (s *StubExpenseRepo) forUser(userId int) []Expense {
	var expenses []Expense
	for id, expense := range s.data {
		if s.owners[id] == userId {
			expenses = append(expenses, expense)
		}
	}
	return expenses
}

func (s *StubExpenseRepo) Cleanup() {
	s.data = map[int]Expense{}
	s.owners = map[int]int{}
}
