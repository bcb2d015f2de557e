package report_test

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/amirasaad/farmledger/infra"
	"github.com/amirasaad/farmledger/pkg/domain/crop"
	"github.com/amirasaad/farmledger/pkg/domain/expense"
	"github.com/amirasaad/farmledger/pkg/domain/income"
	"github.com/amirasaad/farmledger/pkg/metrics"
	"github.com/amirasaad/farmledger/pkg/repository"
	expenserepo "github.com/amirasaad/farmledger/pkg/repository/expense"
	incomerepo "github.com/amirasaad/farmledger/pkg/repository/income"
	"github.com/amirasaad/farmledger/pkg/service/report"
	"github.com/amirasaad/farmledger/pkg/testutils"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func addExpense(t *testing.T, uow repository.UnitOfWork, userID, cropID uuid.UUID, amount float64) {
	t.Helper()
	e := expense.New(userID)
	e.CropID = cropID
	e.Category = expense.CategoryFertilizer
	e.Detail = &expense.Fertilizer{ProductName: "Urea", NumberOfBags: 1, TotalCost: amount}
	require.NoError(t, e.Prepare())
	repo, err := repository.Get[expenserepo.Repository](uow)
	require.NoError(t, err)
	require.NoError(t, repo.Create(context.Background(), e))
}

func addIncome(t *testing.T, uow repository.UnitOfWork, userID uuid.UUID, cropID *uuid.UUID, amount float64) {
	t.Helper()
	i := income.New(userID)
	i.CropID = cropID
	i.Category = income.CategoryOther
	i.Detail = &income.OtherIncome{Source: "Other", Amount: amount}
	require.NoError(t, i.Prepare())
	repo, err := repository.Get[incomerepo.Repository](uow)
	require.NoError(t, err)
	require.NoError(t, repo.Create(context.Background(), i))
}

func TestYearly_ProfitPerCrop(t *testing.T) {
	uow, _ := testutils.NewSQLiteUoW(t)
	u := testutils.SeedUser(t, uow, "9876543210")
	wheat := testutils.SeedCrop(t, uow, u.ID, "Wheat", crop.SeasonRabi, 2024)
	addIncome(t, uow, u.ID, &wheat.ID, 2000)
	addExpense(t, uow, u.ID, wheat.ID, 600)
	addExpense(t, uow, u.ID, wheat.ID, 400)
	addIncome(t, uow, u.ID, nil, 5000)

	before := testutil.ToFloat64(metrics.ReportsGenerated)
	svc := report.New(uow, testutils.Logger())
	got, err := svc.Yearly(context.Background(), u.ID, 2024)
	require.NoError(t, err)

	require.Len(t, got.Crops, 1)
	line := got.Crops[0]
	assert.Equal(t, wheat.ID, line.ID)
	assert.Equal(t, 2000.0, line.Income)
	assert.Equal(t, 1000.0, line.Expense)
	assert.Equal(t, 1000.0, line.Profit)

	assert.Equal(t, 2000.0, got.Summary.TotalIncome, "income without a crop is not reported")
	assert.Equal(t, 1000.0, got.Summary.NetProfit)
	assert.Equal(t, 1, got.Summary.TotalCrops)
	assert.Equal(t, before+1, testutil.ToFloat64(metrics.ReportsGenerated))
}

func TestYearly_SeasonBreakdown(t *testing.T) {
	uow, _ := testutils.NewSQLiteUoW(t)
	u := testutils.SeedUser(t, uow, "9876543210")
	other := testutils.SeedUser(t, uow, "9123456780")

	wheat := testutils.SeedCrop(t, uow, u.ID, "Wheat", crop.SeasonRabi, 2024)
	gram := testutils.SeedCrop(t, uow, u.ID, "Gram", crop.SeasonRabi, 2024)
	cotton := testutils.SeedCrop(t, uow, u.ID, "Cotton", crop.SeasonKharif, 2024)
	old := testutils.SeedCrop(t, uow, u.ID, "Wheat", crop.SeasonRabi, 2023)
	foreign := testutils.SeedCrop(t, uow, other.ID, "Wheat", crop.SeasonRabi, 2024)

	addIncome(t, uow, u.ID, &wheat.ID, 1000.10)
	addIncome(t, uow, u.ID, &gram.ID, 500.20)
	addExpense(t, uow, u.ID, cotton.ID, 800)
	addIncome(t, uow, u.ID, &old.ID, 9999)
	addIncome(t, uow, other.ID, &foreign.ID, 7777)

	got, err := report.New(uow, testutils.Logger()).Yearly(context.Background(), u.ID, 2024)
	require.NoError(t, err)

	assert.Len(t, got.Crops, 3)
	require.Len(t, got.SeasonBreakdown, 2)
	assert.NotContains(t, got.SeasonBreakdown, string(crop.SeasonSummer), "seasons without crops are omitted")

	rabi := got.SeasonBreakdown[string(crop.SeasonRabi)]
	assert.Equal(t, 2, rabi.Crops)
	assert.Equal(t, 1500.30, rabi.Income)
	assert.Equal(t, 2.0, rabi.Area)

	kharif := got.SeasonBreakdown[string(crop.SeasonKharif)]
	assert.Equal(t, -800.0, kharif.Profit)

	assert.Equal(t, 1500.30, got.Summary.TotalIncome)
	assert.Equal(t, 800.0, got.Summary.TotalExpense)
	assert.Equal(t, 700.30, got.Summary.NetProfit)
	assert.Equal(t, 3.0, got.Summary.TotalArea)
}

func TestYearly_Empty(t *testing.T) {
	uow, _ := testutils.NewSQLiteUoW(t)

	got, err := report.New(uow, testutils.Logger()).Yearly(context.Background(), uuid.New(), 2030)
	require.NoError(t, err)
	assert.Equal(t, 2030, got.Year)
	assert.NotNil(t, got.Crops)
	assert.Empty(t, got.Crops)
	assert.NotNil(t, got.SeasonBreakdown)
	assert.Empty(t, got.SeasonBreakdown)
	assert.Zero(t, got.Summary.TotalIncome)
	assert.Zero(t, got.Summary.TotalCrops)
}

type mockExpenses struct {
	expenserepo.Repository
	mock.Mock
}

func (m *mockExpenses) SumByCrop(
	ctx context.Context,
	userID uuid.UUID,
	ids []uuid.UUID,
) (map[uuid.UUID]decimal.Decimal, error) {
	args := m.Called(ctx, userID, ids)
	sums, _ := args.Get(0).(map[uuid.UUID]decimal.Decimal)
	return sums, args.Error(1)
}

// failingSumsUoW serves the mock expense repository outside transactions.
type failingSumsUoW struct {
	*infra.UoW
	expenses *mockExpenses
}

func (u *failingSumsUoW) GetRepository(repoType reflect.Type) (any, error) {
	if repoType == reflect.TypeOf((*expenserepo.Repository)(nil)).Elem() {
		return u.expenses, nil
	}
	return u.UoW.GetRepository(repoType)
}

func TestYearly_DegradesWhenSumsFail(t *testing.T) {
	base, _ := testutils.NewSQLiteUoW(t)
	u := testutils.SeedUser(t, base, "9876543210")
	wheat := testutils.SeedCrop(t, base, u.ID, "Wheat", crop.SeasonRabi, 2024)
	addIncome(t, base, u.ID, &wheat.ID, 2000)

	expenses := &mockExpenses{}
	expenses.On("SumByCrop", mock.Anything, u.ID, []uuid.UUID{wheat.ID}).
		Return(nil, errors.New("connection reset"))
	uow := &failingSumsUoW{UoW: base, expenses: expenses}

	before := testutil.ToFloat64(metrics.ReportDegraded)
	got, err := report.New(uow, testutils.Logger()).Yearly(context.Background(), u.ID, 2024)
	require.NoError(t, err)
	expenses.AssertExpectations(t)

	require.Len(t, got.Crops, 1)
	assert.Equal(t, "Wheat", got.Crops[0].CropName)
	assert.Zero(t, got.Crops[0].Income, "income is zeroed too")
	assert.Zero(t, got.Crops[0].Expense)
	assert.Zero(t, got.Summary.NetProfit)
	assert.Equal(t, 1, got.Summary.TotalCrops)
	assert.Equal(t, before+1, testutil.ToFloat64(metrics.ReportDegraded))
}

func TestYears(t *testing.T) {
	uow, _ := testutils.NewSQLiteUoW(t)
	u := testutils.SeedUser(t, uow, "9876543210")
	svc := report.New(uow, testutils.Logger())

	years, err := svc.Years(context.Background(), u.ID)
	require.NoError(t, err)
	assert.Equal(t, []int{}, years)

	testutils.SeedCrop(t, uow, u.ID, "Wheat", crop.SeasonRabi, 2022)
	testutils.SeedCrop(t, uow, u.ID, "Gram", crop.SeasonRabi, 2024)
	testutils.SeedCrop(t, uow, u.ID, "Cotton", crop.SeasonKharif, 2024)

	years, err = svc.Years(context.Background(), u.ID)
	require.NoError(t, err)
	assert.Equal(t, []int{2024, 2022}, years)
}

func TestBuild_MissingTotalsCountAsZero(t *testing.T) {
	t.Parallel()
	c := crop.New(uuid.New())
	c.CropName = "Bajra"
	c.Season = crop.SeasonSummer
	c.Area = 1.25

	got := report.Build(2024, []*crop.Crop{c}, nil, map[uuid.UUID]decimal.Decimal{
		c.ID: decimal.RequireFromString("0.1"),
	})
	assert.Equal(t, 0.1, got.Crops[0].Income)
	assert.Equal(t, 0.0, got.Crops[0].Expense)
	assert.Equal(t, 1.25, got.SeasonBreakdown[string(crop.SeasonSummer)].Area)
}
