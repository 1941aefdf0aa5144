package goal

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/kharcha/kharcha/pkg/user"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func setupGoalService(t *testing.T) (Service, *StubGoalRepo, context.Context) {
	repo := NewStubGoalRepo()
	service := NewGoalService(repo)
	ctx := user.WithUser(context.Background(), user.User{
		Id:       1,
		Uid:      uuid.NewString(),
		Username: "test-user-1",
	})
	t.Cleanup(repo.Cleanup)
	return service, repo, ctx
}

func TestGoalServiceImpl_Create(t *testing.T) {
	// given
	service, _, ctx := setupGoalService(t)

	// when
	created, err := service.Create(ctx, SavingsGoal{
		Name:          "Emergency Fund",
		TargetAmount:  decimal.RequireFromString("5000"),
		CurrentAmount: decimal.RequireFromString("250"),
		TargetDate:    time.Date(2024, time.December, 31, 0, 0, 0, 0, time.UTC),
	})

	// then
	assert.NoError(t, err)
	assert.NotZero(t, created.ID)
	all, err := service.GetAll(ctx)
	assert.NoError(t, err)
	assert.Len(t, all, 1)
	assert.Equal(t, "Emergency Fund", all[0].Name)
}

func TestGoalServiceImpl_GetAll_SortedByTargetDate(t *testing.T) {
	// given
	service, _, ctx := setupGoalService(t)
	_, err := service.Create(ctx, SavingsGoal{
		Name:         "Vacation",
		TargetAmount: decimal.RequireFromString("2000"),
		TargetDate:   time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC),
	})
	assert.NoError(t, err)
	_, err = service.Create(ctx, SavingsGoal{
		Name:         "Emergency Fund",
		TargetAmount: decimal.RequireFromString("5000"),
		TargetDate:   time.Date(2024, time.December, 31, 0, 0, 0, 0, time.UTC),
	})
	assert.NoError(t, err)

	// when
	all, err := service.GetAll(ctx)

	// then the nearest target date comes first
	assert.NoError(t, err)
	assert.Len(t, all, 2)
	assert.Equal(t, "Emergency Fund", all[0].Name)
	assert.Equal(t, "Vacation", all[1].Name)
}

func TestGoalServiceImpl_Update_TracksProgress(t *testing.T) {
	// given
	service, _, ctx := setupGoalService(t)
	created, err := service.Create(ctx, SavingsGoal{
		Name:         "Emergency Fund",
		TargetAmount: decimal.RequireFromString("5000"),
		TargetDate:   time.Date(2024, time.December, 31, 0, 0, 0, 0, time.UTC),
	})
	assert.NoError(t, err)

	// when
	created.CurrentAmount = decimal.RequireFromString("1500")
	updated, err := service.Update(ctx, created)

	// then
	assert.NoError(t, err)
	assert.True(t, updated)
	all, err := service.GetAll(ctx)
	assert.NoError(t, err)
	assert.True(t, decimal.RequireFromString("1500").Equal(all[0].CurrentAmount), "got %s", all[0].CurrentAmount)
}

func TestGoalServiceImpl_Update_NotOwned(t *testing.T) {
	// given a goal belonging to another user
	service, _, ctx := setupGoalService(t)
	created, err := service.Create(ctx, SavingsGoal{
		Name:         "Emergency Fund",
		TargetAmount: decimal.RequireFromString("5000"),
		TargetDate:   time.Date(2024, time.December, 31, 0, 0, 0, 0, time.UTC),
	})
	assert.NoError(t, err)
	otherCtx := user.WithUser(context.Background(), user.User{
		Id:       2,
		Uid:      uuid.NewString(),
		Username: "test-user-2",
	})

	// when
	created.CurrentAmount = decimal.RequireFromString("9999")
	updated, err := service.Update(otherCtx, created)

	// then the goal is untouched
	assert.NoError(t, err)
	assert.False(t, updated)
	all, err := service.GetAll(ctx)
	assert.NoError(t, err)
	assert.True(t, all[0].CurrentAmount.IsZero())
}

func TestGoalServiceImpl_Delete(t *testing.T) {
	// given
	service, _, ctx := setupGoalService(t)
	created, err := service.Create(ctx, SavingsGoal{
		Name:         "Vacation",
		TargetAmount: decimal.RequireFromString("2000"),
		TargetDate:   time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC),
	})
	assert.NoError(t, err)

	// when
	deleted, err := service.Delete(ctx, created.ID)

	// then
	assert.NoError(t, err)
	assert.True(t, deleted)
	all, err := service.GetAll(ctx)
	assert.NoError(t, err)
	assert.Empty(t, all)
}
