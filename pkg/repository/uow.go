package repository

import (
	"context"
	"fmt"
	"reflect"
)

// UnitOfWork defines the contract for transactional work and type-safe repository access.
//
// Do runs the given function in a transaction boundary, providing a UnitOfWork for repository access.
// GetRepository provides access to repositories bound to that transaction.
// Example usage:
//
//	repoAny, err := uow.GetRepository(reflect.TypeOf((*crop.Repository)(nil)).Elem())
//	repo := repoAny.(crop.Repository)
type UnitOfWork interface {
	// Do executes the given function within a transaction boundary.
	// The provided function receives a UnitOfWork for repository access.
	// If the function returns an error, the transaction is rolled back.
	Do(ctx context.Context, fn func(uow UnitOfWork) error) error

	// GetRepository returns a repository of the requested type, bound to the current transaction/session.
	GetRepository(repoType reflect.Type) (any, error)
}

// Get resolves the repository interface T from uow.
//
//	repo, err := repository.Get[crop.Repository](uow)
func Get[T any](uow UnitOfWork) (T, error) {
	var zero T
	repoAny, err := uow.GetRepository(reflect.TypeOf((*T)(nil)).Elem())
	if err != nil {
		return zero, err
	}
	repo, ok := repoAny.(T)
	if !ok {
		return zero, fmt.Errorf("unexpected repository type %T", repoAny)
	}
	return repo, nil
}
