package infra

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/amirasaad/farmledger/internal/dbtest"
	"github.com/amirasaad/farmledger/pkg/repository"
	croprepo "github.com/amirasaad/farmledger/pkg/repository/crop"
	expenserepo "github.com/amirasaad/farmledger/pkg/repository/expense"
	incomerepo "github.com/amirasaad/farmledger/pkg/repository/income"
	profilerepo "github.com/amirasaad/farmledger/pkg/repository/profile"
	userrepo "github.com/amirasaad/farmledger/pkg/repository/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUoW_DoAndGetRepository(t *testing.T) {
	require := require.New(t)
	assert := assert.New(t)
	db, mock := dbtest.NewMockDB(t)

	uow := NewUoW(db)

	mock.ExpectBegin()
	mock.ExpectCommit()

	err := uow.Do(context.Background(), func(txUow repository.UnitOfWork) error {
		users, err := repository.Get[userrepo.Repository](txUow)
		require.NoError(err)
		assert.NotNil(users)

		profiles, err := repository.Get[profilerepo.Repository](txUow)
		require.NoError(err)
		assert.NotNil(profiles)

		crops, err := repository.Get[croprepo.Repository](txUow)
		require.NoError(err)
		assert.NotNil(crops)

		expenses, err := repository.Get[expenserepo.Repository](txUow)
		require.NoError(err)
		assert.NotNil(expenses)

		incomes, err := repository.Get[incomerepo.Repository](txUow)
		require.NoError(err)
		assert.NotNil(incomes)
		return nil
	})
	require.NoError(err)
	assert.NoError(mock.ExpectationsWereMet())
}

func TestUoW_DoRollsBackOnError(t *testing.T) {
	db, mock := dbtest.NewMockDB(t)
	uow := NewUoW(db)

	mock.ExpectBegin()
	mock.ExpectRollback()

	boom := errors.New("boom")
	err := uow.Do(context.Background(), func(repository.UnitOfWork) error {
		return boom
	})
	require.ErrorIs(t, err, boom)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUoW_GetRepositoryOutsideTransaction(t *testing.T) {
	db, _ := dbtest.NewMockDB(t)
	uow := NewUoW(db)

	repoAny, err := uow.GetRepository(reflect.TypeOf((*croprepo.Repository)(nil)).Elem())
	require.NoError(t, err)
	_, ok := repoAny.(croprepo.Repository)
	assert.True(t, ok)
}

func TestUoW_GetRepositoryUnsupported(t *testing.T) {
	db, _ := dbtest.NewMockDB(t)
	uow := NewUoW(db)

	type unknown interface{ Nope() }
	_, err := uow.GetRepository(reflect.TypeOf((*unknown)(nil)).Elem())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported repository type")

	_, err = repository.Get[unknown](uow)
	assert.Error(t, err)
}
