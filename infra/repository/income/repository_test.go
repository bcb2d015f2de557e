package income

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/amirasaad/farmledger/internal/dbtest"
	"github.com/amirasaad/farmledger/pkg/domain/income"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummaryByCategory(t *testing.T) {
	db, mock := dbtest.NewMockDB(t)
	r := New(db)

	mock.ExpectQuery(`SELECT category, SUM\(amount\) AS total_amount, COUNT\(\*\) AS count FROM "incomes" WHERE user_id = \$1 AND \(?date >= \$2 AND date < \$3\)? GROUP BY "category" ORDER BY total_amount DESC, category ASC`).
		WillReturnRows(sqlmock.NewRows([]string{"category", "total_amount", "count"}).
			AddRow("Crop Sale", "2000.00", 2).
			AddRow("Subsidy", "500.50", 1))

	year := 2024
	summary, err := r.SummaryByCategory(context.Background(), uuid.New(), &year)
	require.NoError(t, err)
	require.Len(t, summary, 2)
	assert.Equal(t, "Crop Sale", summary[0].Category)
	assert.Equal(t, 2000.0, summary[0].TotalAmount)
	assert.Equal(t, int64(2), summary[0].Count)
	assert.Equal(t, 500.5, summary[1].TotalAmount)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSummaryByCategory_AllYears(t *testing.T) {
	db, mock := dbtest.NewMockDB(t)
	r := New(db)

	mock.ExpectQuery(`SELECT category, SUM\(amount\) AS total_amount, COUNT\(\*\) AS count FROM "incomes" WHERE user_id = \$1 GROUP BY "category"`).
		WillReturnRows(sqlmock.NewRows([]string{"category", "total_amount", "count"}))

	summary, err := r.SummaryByCategory(context.Background(), uuid.New(), nil)
	require.NoError(t, err)
	assert.Empty(t, summary)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGet_NotFound(t *testing.T) {
	db, mock := dbtest.NewMockDB(t)
	r := New(db)

	mock.ExpectQuery(`SELECT \* FROM "incomes" WHERE \(?id = \$1 AND user_id = \$2`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := r.Get(context.Background(), uuid.New(), uuid.New())
	assert.ErrorIs(t, err, income.ErrIncomeNotFound)
}

func TestDelete_NotFound(t *testing.T) {
	db, mock := dbtest.NewMockDB(t)
	r := New(db)

	mock.ExpectExec(`DELETE FROM "incomes"`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := r.Delete(context.Background(), uuid.New(), uuid.New())
	assert.ErrorIs(t, err, income.ErrIncomeNotFound)
}
