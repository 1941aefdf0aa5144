package savings

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/kharcha/kharcha/pkg/user"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func setupSavingsService(t *testing.T) (Service, *StubSavingsRepo, context.Context) {
	repo := NewStubSavingsRepo()
	service := NewSavingsService(repo)
	ctx := user.WithUser(context.Background(), user.User{
		Id:       1,
		Uid:      uuid.NewString(),
		Username: "test-user-1",
	})
	t.Cleanup(repo.Cleanup)
	return service, repo, ctx
}

func TestSavingsServiceImpl_CreateManual(t *testing.T) {
	// given
	service, _, ctx := setupSavingsService(t)

	// when
	created, err := service.CreateManual(ctx, Savings{
		Amount:      decimal.RequireFromString("250"),
		Date:        time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC),
		Description: "Vacation fund",
	})

	// then
	assert.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.False(t, created.IsAutomatic)
}

func TestSavingsServiceImpl_DeleteManual_RefusesAutomaticEntries(t *testing.T) {
	// given an automatic projection
	service, repo, ctx := setupSavingsService(t)
	err := repo.UpsertAutomatic(ctx, nil, 1, Savings{
		IncomeId:    5,
		Amount:      decimal.RequireFromString("200"),
		Date:        time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC),
		IsAutomatic: true,
	})
	assert.NoError(t, err)
	all, err := repo.GetAll(ctx, 1)
	assert.NoError(t, err)
	assert.Len(t, all, 1)

	// when
	deleted, err := service.DeleteManual(ctx, all[0].ID)

	// then the derived entry stays
	assert.NoError(t, err)
	assert.False(t, deleted)
	remaining, err := repo.GetAll(ctx, 1)
	assert.NoError(t, err)
	assert.Len(t, remaining, 1)
}

func TestSavingsServiceImpl_DeleteManual(t *testing.T) {
	// given
	service, _, ctx := setupSavingsService(t)
	created, err := service.CreateManual(ctx, Savings{
		Amount: decimal.RequireFromString("100"),
		Date:   time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC),
	})
	assert.NoError(t, err)

	// when
	deleted, err := service.DeleteManual(ctx, created.ID)

	// then
	assert.NoError(t, err)
	assert.True(t, deleted)
}
