package profile

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/amirasaad/farmledger/internal/dbtest"
	"github.com/amirasaad/farmledger/pkg/domain/profile"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExistsByUser(t *testing.T) {
	db, mock := dbtest.NewMockDB(t)
	r := New(db)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "farmer_profiles" WHERE user_id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	ok, err := r.ExistsByUser(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.True(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByUser_NotFound(t *testing.T) {
	db, mock := dbtest.NewMockDB(t)
	r := New(db)

	mock.ExpectQuery(`SELECT \* FROM "farmer_profiles" WHERE user_id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := r.GetByUser(context.Background(), uuid.New())
	assert.ErrorIs(t, err, profile.ErrProfileNotFound)
}
