package category

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/kharcha/kharcha/pkg/user"
	"github.com/stretchr/testify/assert"
)

func setupCategoryService(t *testing.T) (Service, *StubCategoryRepo, context.Context) {
	repo := NewStubCategoryRepo()
	service := NewCategoryService(repo)
	ctx := user.WithUser(context.Background(), user.User{
		Id:       1,
		Uid:      uuid.NewString(),
		Username: "test-user-1",
	})
	t.Cleanup(repo.Cleanup)
	return service, repo, ctx
}

func TestCategoryServiceImpl_ListByKind_SeedsDefaultsOnFirstUse(t *testing.T) {
	// given a fresh account
	service, _, ctx := setupCategoryService(t)

	// when
	categories, err := service.ListByKind(ctx, KindExpense)

	// then the default expense vocabulary exists
	assert.NoError(t, err)
	assert.Len(t, categories, 8)
	names := make([]string, 0, len(categories))
	for _, c := range categories {
		names = append(names, c.Name)
		assert.True(t, c.IsDefault)
	}
	assert.Contains(t, names, "Food")
	assert.Contains(t, names, "Groceries")
	assert.Contains(t, names, "Other")
}

func TestCategoryServiceImpl_ListByKind_SeedingIsIdempotent(t *testing.T) {
	// given
	service, _, ctx := setupCategoryService(t)
	first, err := service.ListByKind(ctx, KindPaymentMethod)
	assert.NoError(t, err)

	// when
	second, err := service.ListByKind(ctx, KindPaymentMethod)

	// then no duplicates appear
	assert.NoError(t, err)
	assert.Equal(t, len(first), len(second))
	assert.Len(t, second, 5)
}

func TestCategoryServiceImpl_ListByKind_KindsAreIndependent(t *testing.T) {
	// given
	service, _, ctx := setupCategoryService(t)

	// when
	incomeCategories, err := service.ListByKind(ctx, KindIncome)
	assert.NoError(t, err)
	expenseCategories, err := service.ListByKind(ctx, KindExpense)
	assert.NoError(t, err)

	// then each kind carries its own vocabulary
	assert.Len(t, incomeCategories, 5)
	assert.Len(t, expenseCategories, 8)
	for _, c := range incomeCategories {
		assert.Equal(t, KindIncome, c.Kind)
	}
}

func TestCategoryServiceImpl_Create_UpsertReturnsExisting(t *testing.T) {
	// given
	service, _, ctx := setupCategoryService(t)
	created, err := service.Create(ctx, Category{Kind: KindExpense, Name: "Travel"})
	assert.NoError(t, err)

	// when the same name is created again
	again, err := service.Create(ctx, Category{Kind: KindExpense, Name: "Travel"})

	// then the existing entry is returned instead of a duplicate
	assert.NoError(t, err)
	assert.Equal(t, created.ID, again.ID)
}

func TestCategoryServiceImpl_DefaultsAreUserScoped(t *testing.T) {
	// given defaults seeded for one user
	service, _, ctx := setupCategoryService(t)
	_, err := service.ListByKind(ctx, KindExpense)
	assert.NoError(t, err)

	// when another user lists without seeding through the service
	otherCtx := user.WithUser(context.Background(), user.User{Id: 2, Uid: uuid.NewString(), Username: "test-user-2"})
	categories, err := service.ListByKind(otherCtx, KindExpense)

	// then they get their own seeded copy, not the first user's rows
	assert.NoError(t, err)
	assert.Len(t, categories, 8)
}
