package infra

import (
	"context"
	"fmt"
	"reflect"

	"github.com/amirasaad/farmledger/infra/repository/crop"
	"github.com/amirasaad/farmledger/infra/repository/expense"
	"github.com/amirasaad/farmledger/infra/repository/income"
	"github.com/amirasaad/farmledger/infra/repository/profile"
	"github.com/amirasaad/farmledger/infra/repository/user"
	"github.com/amirasaad/farmledger/pkg/repository"
	croprepo "github.com/amirasaad/farmledger/pkg/repository/crop"
	expenserepo "github.com/amirasaad/farmledger/pkg/repository/expense"
	incomerepo "github.com/amirasaad/farmledger/pkg/repository/income"
	profilerepo "github.com/amirasaad/farmledger/pkg/repository/profile"
	userrepo "github.com/amirasaad/farmledger/pkg/repository/user"
	"gorm.io/gorm"
)

// UoW provides transaction boundary and repository access in one abstraction.
type UoW struct {
	db           *gorm.DB
	tx           *gorm.DB
	repoRegistry map[reflect.Type]func(*gorm.DB) any
}

// NewUoW creates a new UoW for the given *gorm.DB.
func NewUoW(db *gorm.DB) *UoW {
	return &UoW{
		db: db,
		repoRegistry: map[reflect.Type]func(*gorm.DB) any{
			reflect.TypeOf((*userrepo.Repository)(nil)).Elem():    func(db *gorm.DB) any { return user.New(db) },
			reflect.TypeOf((*profilerepo.Repository)(nil)).Elem(): func(db *gorm.DB) any { return profile.New(db) },
			reflect.TypeOf((*croprepo.Repository)(nil)).Elem():    func(db *gorm.DB) any { return crop.New(db) },
			reflect.TypeOf((*expenserepo.Repository)(nil)).Elem(): func(db *gorm.DB) any { return expense.New(db) },
			reflect.TypeOf((*incomerepo.Repository)(nil)).Elem():  func(db *gorm.DB) any { return income.New(db) },
		},
	}
}

// Do runs the given function in a transaction boundary, providing a UoW with repository access.
func (u *UoW) Do(ctx context.Context, fn func(uow repository.UnitOfWork) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txnUow := &UoW{db: u.db, tx: tx, repoRegistry: u.repoRegistry}
		return fn(txnUow)
	})
}

// GetRepository returns the repository registered for repoType, bound to the
// transaction when called inside Do and to the pool otherwise.
func (u *UoW) GetRepository(repoType reflect.Type) (any, error) {
	constructor, ok := u.repoRegistry[repoType]
	if !ok {
		return nil, fmt.Errorf("unsupported repository type: %v", repoType)
	}
	session := u.tx
	if session == nil {
		session = u.db
	}
	return constructor(session), nil
}

var _ repository.UnitOfWork = (*UoW)(nil)
