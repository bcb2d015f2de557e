//go:build integration

package infra_test

import (
	"context"
	"testing"
	"time"

	"github.com/amirasaad/farmledger/pkg/domain/crop"
	"github.com/amirasaad/farmledger/pkg/domain/expense"
	"github.com/amirasaad/farmledger/pkg/domain/user"
	"github.com/amirasaad/farmledger/pkg/dto"
	"github.com/amirasaad/farmledger/pkg/repository"
	croprepo "github.com/amirasaad/farmledger/pkg/repository/crop"
	expenserepo "github.com/amirasaad/farmledger/pkg/repository/expense"
	userrepo "github.com/amirasaad/farmledger/pkg/repository/user"
	"github.com/amirasaad/farmledger/pkg/service/report"
	"github.com/amirasaad/farmledger/pkg/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostgres_MigrationsAndRepositories(t *testing.T) {
	uow, _ := testutils.NewPostgresUoW(t)
	ctx := context.Background()

	u := testutils.SeedUser(t, uow, "9876543210")

	users, err := repository.Get[userrepo.Repository](uow)
	require.NoError(t, err)
	dup, err := user.New("9876543210")
	require.NoError(t, err)
	assert.Error(t, users.Create(ctx, dup), "phone is unique")

	wheat := testutils.SeedCrop(t, uow, u.ID, "Wheat", crop.SeasonRabi, 2024)

	crops, err := repository.Get[croprepo.Repository](uow)
	require.NoError(t, err)
	again := crop.New(u.ID)
	again.CropName, again.Season, again.Year, again.Area = "Wheat", crop.SeasonRabi, 2024, 1
	assert.ErrorIs(t, crops.Create(ctx, again), crop.ErrDuplicateCrop)

	again.BatchLabel = "North"
	require.NoError(t, crops.Create(ctx, again))

	got, total, err := crops.List(ctx, u.ID, dto.CropFilter{Season: "Rabi"}, dto.PageQuery{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, got, 2)

	e := expense.New(u.ID)
	e.CropID = wheat.ID
	e.Category = expense.CategorySeed
	e.Date = time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	e.Detail = &expense.Seed{SeedType: "Hybrid", QuantityKg: 3, TotalCost: 1000}
	require.NoError(t, e.Prepare())
	expenses, err := repository.Get[expenserepo.Repository](uow)
	require.NoError(t, err)
	require.NoError(t, expenses.Create(ctx, e))

	r, err := report.New(uow, testutils.Logger()).Yearly(ctx, u.ID, 2024)
	require.NoError(t, err)
	assert.Equal(t, 1000.0, r.Summary.TotalExpense)
	assert.Equal(t, -1000.0, r.Summary.NetProfit)
	assert.Equal(t, 2, r.Summary.TotalCrops)
}
