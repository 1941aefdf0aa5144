package category

import (
	"context"
	"sort"
)

type StubCategoryRepo struct {
	nextId int
	data   map[int]Category
	owners map[int]int
}

func NewStubCategoryRepo() *StubCategoryRepo {
	return &StubCategoryRepo{data: map[int]Category{}, owners: map[int]int{}}
}

func (s *StubCategoryRepo) ListByKind(ctx context.Context, userId int, kind Kind) ([]Category, error) {
	var categories []Category
	for id, category := range s.data {
		if s.owners[id] == userId && category.Kind == kind {
			categories = append(categories, category)
		}
	}
	sort.Slice(categories, func(i, j int) bool { return categories[i].Name < categories[j].Name })
	return categories, nil
}

func (s *StubCategoryRepo) Upsert(ctx context.Context, userId int, category Category) (Category, error) {
	for id, existing := range s.data {
		if s.owners[id] == userId && existing.Kind == category.Kind && existing.Name == category.Name {
			return existing, nil
		}
	}
	s.nextId++
	category.ID = s.nextId
	s.data[category.ID] = category
	s.owners[category.ID] = userId
	return category, nil
}

func (s *StubCategoryRepo) SeedDefaults(ctx context.Context, userId int, kind Kind, names []string) error {
	for _, name := range names {
		if _, err := s.Upsert(ctx, userId, Category{Kind: kind, Name: name, IsDefault: true}); err != nil {
			return err
		}
	}
	return nil
}

func (s *StubCategoryRepo) Delete(ctx context.Context, userId int, categoryId int) (bool, error) {
	if _, ok := s.data[categoryId]; !ok || s.owners[categoryId] != userId {
		return false, nil
	}
	delete(s.data, categoryId)
	delete(s.owners, categoryId)
	return true, nil
}

func (s *StubCategoryRepo) Cleanup() {
	s.data = map[int]Category{}
	s.owners = map[int]int{}
}
