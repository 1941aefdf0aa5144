package income

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/kharcha/kharcha/internal/database"
	"github.com/kharcha/kharcha/pkg/savings"
	"github.com/kharcha/kharcha/pkg/user"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func setupIncomeService(t *testing.T) (Service, *StubIncomeRepo, *savings.StubSavingsRepo, context.Context) {
	incomeRepo := NewStubIncomeRepo()
	savingsRepo := savings.NewStubSavingsRepo()
	service := NewIncomeService(database.StubTxRunner{}, incomeRepo, savings.NewReactor(savingsRepo))
	ctx := user.WithUser(context.Background(), user.User{
		Id:          1,
		Uid:         uuid.NewString(),
		Username:    "test-user-1",
		DisplayName: "Test User 1",
	})
	t.Cleanup(func() {
		incomeRepo.Cleanup()
		savingsRepo.Cleanup()
	})
	return service, incomeRepo, savingsRepo, ctx
}

func TestIncomeServiceImpl_Create_ProjectsAutomaticSavings(t *testing.T) {
	// given
	service, _, savingsRepo, ctx := setupIncomeService(t)

	// when
	created, err := service.Create(ctx, Income{
		Source:     "Salary",
		Amount:     decimal.RequireFromString("3000"),
		OccurredAt: time.Date(2024, time.April, 1, 10, 0, 0, 0, time.UTC),
	})

	// then
	assert.NoError(t, err)
	assert.NotZero(t, created.ID)

	entry, err := savingsRepo.FindByIncomeId(ctx, 1, created.ID)
	assert.NoError(t, err)
	assert.NotNil(t, entry)
	assert.True(t, decimal.RequireFromString("600").Equal(entry.Amount), "got %s", entry.Amount)
}

func TestIncomeServiceImpl_Update_ReprojectsAutomaticSavings(t *testing.T) {
	// given
	service, _, savingsRepo, ctx := setupIncomeService(t)
	created, err := service.Create(ctx, Income{
		Source:     "Salary",
		Amount:     decimal.RequireFromString("3000"),
		OccurredAt: time.Date(2024, time.April, 1, 10, 0, 0, 0, time.UTC),
	})
	assert.NoError(t, err)

	// when
	created.Amount = decimal.RequireFromString("4000")
	updated, err := service.Update(ctx, created)

	// then
	assert.NoError(t, err)
	assert.True(t, updated)

	all, err := savingsRepo.GetAll(ctx, 1)
	assert.NoError(t, err)
	assert.Len(t, all, 1)
	assert.True(t, decimal.RequireFromString("800").Equal(all[0].Amount), "got %s", all[0].Amount)
}

func TestIncomeServiceImpl_Update_NotOwnedLeavesSavingsUntouched(t *testing.T) {
	// given
	service, incomeRepo, savingsRepo, ctx := setupIncomeService(t)
	otherIncome, err := incomeRepo.Store(ctx, nil, 2, Income{
		Source:     "Salary",
		Amount:     decimal.RequireFromString("1000"),
		OccurredAt: time.Date(2024, time.April, 1, 10, 0, 0, 0, time.UTC),
	})
	assert.NoError(t, err)

	// when the current user tries to update another user's income
	otherIncome.Amount = decimal.RequireFromString("9999")
	updated, err := service.Update(ctx, otherIncome)

	// then
	assert.NoError(t, err)
	assert.False(t, updated)
	all, err := savingsRepo.GetAll(ctx, 2)
	assert.NoError(t, err)
	assert.Empty(t, all)
}

func TestIncomeServiceImpl_Delete_RemovesAutomaticSavings(t *testing.T) {
	// given
	service, _, savingsRepo, ctx := setupIncomeService(t)
	created, err := service.Create(ctx, Income{
		Source:     "Salary",
		Amount:     decimal.RequireFromString("3000"),
		OccurredAt: time.Date(2024, time.April, 1, 10, 0, 0, 0, time.UTC),
	})
	assert.NoError(t, err)

	// when
	deleted, err := service.Delete(ctx, created.ID)

	// then
	assert.NoError(t, err)
	assert.True(t, deleted)

	all, err := savingsRepo.GetAll(ctx, 1)
	assert.NoError(t, err)
	assert.Empty(t, all)
}

func TestIncomeServiceImpl_Delete_NotOwnedKeepsOwnersSavings(t *testing.T) {
	// given
	service, incomeRepo, savingsRepo, ctx := setupIncomeService(t)
	otherIncome, err := incomeRepo.Store(ctx, nil, 2, Income{
		Source:     "Salary",
		Amount:     decimal.RequireFromString("1000"),
		OccurredAt: time.Date(2024, time.April, 1, 10, 0, 0, 0, time.UTC),
	})
	assert.NoError(t, err)
	reactor := savings.NewReactor(savingsRepo)
	assert.NoError(t, reactor.IncomeSaved(context.Background(), nil, 2, savings.IncomeRef{
		Id:         otherIncome.ID,
		Source:     otherIncome.Source,
		Amount:     otherIncome.Amount,
		OccurredAt: otherIncome.OccurredAt,
	}))

	// when the current user tries to delete another user's income
	deleted, err := service.Delete(ctx, otherIncome.ID)

	// then
	assert.NoError(t, err)
	assert.False(t, deleted)
	all, err := savingsRepo.GetAll(ctx, 2)
	assert.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestIncomeServiceImpl_Create_NoUserInContext(t *testing.T) {
	service, _, _, _ := setupIncomeService(t)

	_, err := service.Create(context.Background(), Income{
		Source:     "Salary",
		Amount:     decimal.RequireFromString("100"),
		OccurredAt: time.Now(),
	})

	assert.Error(t, err)
}
