package expense

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/kharcha/kharcha/pkg/user"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func setupExpenseService(t *testing.T) (Service, *StubExpenseRepo, context.Context) {
	repo := NewStubExpenseRepo()
	service := NewExpenseService(repo)
	ctx := user.WithUser(context.Background(), user.User{
		Id:       1,
		Uid:      uuid.NewString(),
		Username: "test-user-1",
	})
	t.Cleanup(repo.Cleanup)
	return service, repo, ctx
}

func TestExpenseServiceImpl_Create_AppliesDefaults(t *testing.T) {
	// given
	service, _, ctx := setupExpenseService(t)

	// when payment method and source type are omitted
	created, err := service.Create(ctx, Expense{
		Category:   "Food",
		Amount:     decimal.RequireFromString("25.50"),
		OccurredAt: time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC),
	})

	// then
	assert.NoError(t, err)
	assert.Equal(t, "Cash", created.PaymentMethod)
	assert.Equal(t, SourceIncome, created.SourceType)
}

func TestExpenseServiceImpl_Create_KeepsExplicitValues(t *testing.T) {
	// given
	service, _, ctx := setupExpenseService(t)

	// when
	created, err := service.Create(ctx, Expense{
		Category:      "Rent",
		PaymentMethod: "Bank Transfer",
		SourceType:    SourceSavings,
		Amount:        decimal.RequireFromString("1200"),
		OccurredAt:    time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC),
	})

	// then
	assert.NoError(t, err)
	assert.Equal(t, "Bank Transfer", created.PaymentMethod)
	assert.Equal(t, SourceSavings, created.SourceType)
}

func TestExpenseServiceImpl_Delete_OtherUsersExpense(t *testing.T) {
	// given an expense owned by someone else
	service, repo, ctx := setupExpenseService(t)
	other, err := repo.Store(ctx, 2, Expense{
		Category:      "Food",
		PaymentMethod: "Cash",
		SourceType:    SourceIncome,
		Amount:        decimal.RequireFromString("10"),
		OccurredAt:    time.Now(),
	})
	assert.NoError(t, err)

	// when
	deleted, err := service.Delete(ctx, other.ID)

	// then
	assert.NoError(t, err)
	assert.False(t, deleted)
}
