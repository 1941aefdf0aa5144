package goal

import (
	"context"
	"sort"
)

type StubGoalRepo struct {
	nextId int
	data   map[int]SavingsGoal
	owners map[int]int
}

func NewStubGoalRepo() *StubGoalRepo {
	return &StubGoalRepo{data: map[int]SavingsGoal{}, owners: map[int]int{}}
}

func (s *StubGoalRepo) Store(ctx context.Context, userId int, goal SavingsGoal) (SavingsGoal, error) {
	s.nextId++
	goal.ID = s.nextId
	s.data[goal.ID] = goal
	s.owners[goal.ID] = userId
	return goal, nil
}

func (s *StubGoalRepo) Update(ctx context.Context, userId int, goal SavingsGoal) (bool, error) {
	if _, ok := s.data[goal.ID]; !ok || s.owners[goal.ID] != userId {
		return false, nil
	}
	s.data[goal.ID] = goal
	return true, nil
}

func (s *StubGoalRepo) Delete(ctx context.Context, userId int, goalId int) (bool, error) {
	if _, ok := s.data[goalId]; !ok || s.owners[goalId] != userId {
		return false, nil
	}
	delete(s.data, goalId)
	delete(s.owners, goalId)
	return true, nil
}

func (s *StubGoalRepo) GetAll(ctx context.Context, userId int) ([]SavingsGoal, error) {
	var goals []SavingsGoal
	for id, goal := range s.data {
		if s.owners[id] == userId {
			goals = append(goals, goal)
		}
	}
	sort.Slice(goals, func(i, j int) bool {
		return goals[i].TargetDate.Before(goals[j].TargetDate)
	})
	return goals, nil
}

func (s *StubGoalRepo) Cleanup() {
	s.data = map[int]SavingsGoal{}
	s.owners = map[int]int{}
}
