package expense

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/amirasaad/farmledger/internal/dbtest"
	"github.com/amirasaad/farmledger/pkg/domain/expense"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet_DecodesDetail(t *testing.T) {
	db, mock := dbtest.NewMockDB(t)
	r := New(db)
	userID, cropID, id := uuid.New(), uuid.New(), uuid.New()
	now := time.Date(2024, 7, 15, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT \* FROM "expenses" WHERE \(?id = \$1 AND user_id = \$2`).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "user_id", "crop_id", "category", "kind", "detail", "amount",
			"date", "notes", "created_at", "updated_at",
		}).AddRow(
			id.String(), userID.String(), cropID.String(), "Seed", "seed",
			`{"seedType":"Hybrid","quantityKg":3,"totalCost":1000,"ratePerKg":333.33}`,
			"1000.00", now, "", now, now,
		))

	e, err := r.Get(context.Background(), userID, id)
	require.NoError(t, err)
	assert.Equal(t, expense.CategorySeed, e.Category)
	assert.Equal(t, 1000.0, e.Amount)
	seed, ok := e.Detail.(*expense.Seed)
	require.True(t, ok)
	require.NotNil(t, seed.RatePerKg)
	assert.Equal(t, 333.33, *seed.RatePerKg)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGet_NotFound(t *testing.T) {
	db, mock := dbtest.NewMockDB(t)
	r := New(db)

	mock.ExpectQuery(`SELECT \* FROM "expenses"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := r.Get(context.Background(), uuid.New(), uuid.New())
	assert.ErrorIs(t, err, expense.ErrExpenseNotFound)
}

func TestDelete_NotFound(t *testing.T) {
	db, mock := dbtest.NewMockDB(t)
	r := New(db)

	mock.ExpectExec(`DELETE FROM "expenses" WHERE \(?id = \$1 AND user_id = \$2`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := r.Delete(context.Background(), uuid.New(), uuid.New())
	assert.ErrorIs(t, err, expense.ErrExpenseNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteByCrop(t *testing.T) {
	db, mock := dbtest.NewMockDB(t)
	r := New(db)

	mock.ExpectExec(`DELETE FROM "expenses" WHERE \(?user_id = \$1 AND crop_id = \$2`).
		WillReturnResult(sqlmock.NewResult(0, 3))

	n, err := r.DeleteByCrop(context.Background(), uuid.New(), uuid.New())
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
}

func TestSumByCrop(t *testing.T) {
	db, mock := dbtest.NewMockDB(t)
	r := New(db)
	a, b := uuid.New(), uuid.New()

	mock.ExpectQuery(`SELECT crop_id, SUM\(amount\) AS total FROM "expenses" WHERE \(?user_id = \$1 AND crop_id IN \(\$2,\$3\)\)? GROUP BY "crop_id"`).
		WillReturnRows(sqlmock.NewRows([]string{"crop_id", "total"}).
			AddRow(a.String(), "1000.50").
			AddRow(b.String(), "20.00"))

	totals, err := r.SumByCrop(context.Background(), uuid.New(), []uuid.UUID{a, b})
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("1000.50").Equal(totals[a]))
	assert.True(t, decimal.NewFromInt(20).Equal(totals[b]))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSumByCrop_NoCrops(t *testing.T) {
	db, mock := dbtest.NewMockDB(t)
	r := New(db)

	totals, err := r.SumByCrop(context.Background(), uuid.New(), nil)
	require.NoError(t, err)
	assert.Empty(t, totals)
	assert.NoError(t, mock.ExpectationsWereMet())
}
