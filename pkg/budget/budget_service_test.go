package budget

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/kharcha/kharcha/internal/utils"
	"github.com/kharcha/kharcha/pkg/user"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

var budgetNow = time.Date(2024, time.June, 15, 14, 30, 0, 0, time.UTC)

func setupBudgetService(t *testing.T) (Service, *StubBudgetRepo, context.Context) {
	repo := NewStubBudgetRepo()
	service := NewBudgetService(repo, &utils.MockClock{FixedNow: budgetNow})
	ctx := user.WithUser(context.Background(), user.User{
		Id:       1,
		Uid:      uuid.NewString(),
		Username: "test-user-1",
	})
	t.Cleanup(repo.Cleanup)
	return service, repo, ctx
}

func TestBudgetServiceImpl_Create_DerivesEndDate(t *testing.T) {
	// given
	service, _, ctx := setupBudgetService(t)

	// when
	created, err := service.Create(ctx, Budget{
		Category:    "Food",
		LimitAmount: decimal.RequireFromString("500"),
		Period:      PeriodWeekly,
		StartDate:   time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
	})

	// then
	assert.NoError(t, err)
	assert.Equal(t, time.Date(2024, time.January, 7, 0, 0, 0, 0, time.UTC), created.EndDate)
}

func TestBudgetServiceImpl_Create_WithoutStartDateStartsToday(t *testing.T) {
	// given
	service, repo, ctx := setupBudgetService(t)

	// when
	created, err := service.Create(ctx, Budget{
		Category:    "Rent",
		LimitAmount: decimal.RequireFromString("1200"),
		Period:      PeriodMonthly,
	})

	// then the window runs from today for one monthly period
	assert.NoError(t, err)
	assert.Equal(t, time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC), created.StartDate)
	assert.Equal(t, time.Date(2024, time.July, 15, 0, 0, 0, 0, time.UTC), created.EndDate)

	// and the pocket is not active past its window
	farFuture, err := repo.FindActive(ctx, 1, time.Date(2099, time.January, 1, 0, 0, 0, 0, time.UTC))
	assert.NoError(t, err)
	assert.Empty(t, farFuture)
}

func TestBudgetServiceImpl_Create_DefaultsToMonthly(t *testing.T) {
	// given
	service, _, ctx := setupBudgetService(t)

	// when
	created, err := service.Create(ctx, Budget{
		Category:    "Utilities",
		LimitAmount: decimal.RequireFromString("200"),
		StartDate:   time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
	})

	// then
	assert.NoError(t, err)
	assert.Equal(t, PeriodMonthly, created.Period)
	assert.Equal(t, time.Date(2024, time.January, 31, 0, 0, 0, 0, time.UTC), created.EndDate)
}

func TestBudgetServiceImpl_Update_DoesNotRecomputeEndDate(t *testing.T) {
	// given
	service, repo, ctx := setupBudgetService(t)
	created, err := service.Create(ctx, Budget{
		Category:    "Food",
		LimitAmount: decimal.RequireFromString("500"),
		Period:      PeriodWeekly,
		StartDate:   time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
	})
	assert.NoError(t, err)

	// when the period changes on update
	created.Period = PeriodMonthly
	updated, err := service.Update(ctx, created)

	// then the original window end is kept
	assert.NoError(t, err)
	assert.True(t, updated)
	stored, err := repo.GetAll(ctx, 1)
	assert.NoError(t, err)
	assert.Len(t, stored, 1)
	assert.Equal(t, time.Date(2024, time.January, 7, 0, 0, 0, 0, time.UTC), stored[0].EndDate)
}
