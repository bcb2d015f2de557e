// Package expense provides expense bookkeeping against the user's crops.
package expense

import (
	"context"
	"log/slog"
	"time"

	"github.com/amirasaad/farmledger/pkg/domain"
	"github.com/amirasaad/farmledger/pkg/domain/crop"
	"github.com/amirasaad/farmledger/pkg/domain/expense"
	"github.com/amirasaad/farmledger/pkg/dto"
	"github.com/amirasaad/farmledger/pkg/repository"
	croprepo "github.com/amirasaad/farmledger/pkg/repository/crop"
	expenserepo "github.com/amirasaad/farmledger/pkg/repository/expense"
	"github.com/google/uuid"
)

// Service provides expense operations scoped to the owning user.
type Service struct {
	uow    repository.UnitOfWork
	logger *slog.Logger
}

// New creates an expense Service.
func New(
	uow repository.UnitOfWork,
	logger *slog.Logger,
) *Service {
	return &Service{uow: uow, logger: logger}
}

// Create records an expense against one of the user's crops.
func (s *Service) Create(
	ctx context.Context,
	userID uuid.UUID,
	in *dto.ExpenseCreate,
) (e *expense.Expense, err error) {
	log := s.logger.With("context", "Create", "userID", userID)
	cropID, err := uuid.Parse(in.CropID)
	if err != nil {
		return nil, domain.Invalid("cropId", "must be a valid id")
	}
	detail, _, err := in.Detail()
	if err != nil {
		return nil, err
	}

	e = expense.New(userID)
	e.CropID = cropID
	e.Category = expense.Category(in.Category)
	if d := in.Date.Ptr(); d != nil {
		e.Date = d.UTC()
	}
	e.Notes = in.Notes
	e.Detail = detail
	if err = e.Prepare(); err != nil {
		return nil, err
	}

	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		if err := ensureCrop(ctx, uow, userID, cropID); err != nil {
			return err
		}
		expenses, err := repository.Get[expenserepo.Repository](uow)
		if err != nil {
			return err
		}
		return expenses.Create(ctx, e)
	})
	if err != nil {
		log.Warn("Expense not created", "error", err)
		e = nil
		return
	}
	log.Info("Expense created", "expenseID", e.ID, "category", e.Category, "amount", e.Amount)
	return
}

// Get returns one of the user's expenses.
func (s *Service) Get(
	ctx context.Context,
	userID, id uuid.UUID,
) (e *expense.Expense, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		expenses, err := repository.Get[expenserepo.Repository](uow)
		if err != nil {
			return err
		}
		e, err = expenses.Get(ctx, userID, id)
		return err
	})
	if err != nil {
		e = nil
	}
	return
}

// List returns a page of the user's expenses.
func (s *Service) List(
	ctx context.Context,
	userID uuid.UUID,
	filter dto.ExpenseFilter,
	page dto.PageQuery,
) (result *dto.Page[*expense.Expense], err error) {
	page = page.Normalize()
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		expenses, err := repository.Get[expenserepo.Repository](uow)
		if err != nil {
			return err
		}
		items, total, err := expenses.List(ctx, userID, filter, page)
		if err != nil {
			return err
		}
		result = &dto.Page[*expense.Expense]{Items: items, Pagination: dto.NewPagination(total, page)}
		return nil
	})
	if err != nil {
		result = nil
	}
	return
}

// Update applies the patch, recomputes the derived fields and saves.
func (s *Service) Update(
	ctx context.Context,
	userID, id uuid.UUID,
	in *dto.ExpenseUpdate,
) (e *expense.Expense, err error) {
	log := s.logger.With("context", "Update", "userID", userID, "expenseID", id)
	if in.IsEmpty() {
		return nil, domain.ErrNoFieldsToUpdate
	}
	detail, hasDetail, err := in.Detail()
	if err != nil {
		return nil, err
	}

	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		expenses, err := repository.Get[expenserepo.Repository](uow)
		if err != nil {
			return err
		}
		e, err = expenses.Get(ctx, userID, id)
		if err != nil {
			return err
		}

		if in.CropID != nil {
			cropID, err := uuid.Parse(*in.CropID)
			if err != nil {
				return domain.Invalid("cropId", "must be a valid id")
			}
			if cropID != e.CropID {
				if err := ensureCrop(ctx, uow, userID, cropID); err != nil {
					return err
				}
				e.CropID = cropID
			}
		}
		if in.Category != nil {
			e.Category = expense.Category(*in.Category)
		}
		if in.Date != nil {
			if d := in.Date.Ptr(); d != nil {
				e.Date = d.UTC()
			}
		}
		if in.Notes != nil {
			e.Notes = *in.Notes
		}
		if hasDetail {
			e.Detail = detail
		}
		if err = e.Prepare(); err != nil {
			return err
		}
		e.UpdatedAt = time.Now().UTC()
		return expenses.Update(ctx, e)
	})
	if err != nil {
		log.Warn("Expense not updated", "error", err)
		e = nil
	}
	return
}

// Delete removes one of the user's expenses.
func (s *Service) Delete(
	ctx context.Context,
	userID, id uuid.UUID,
) error {
	return s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		expenses, err := repository.Get[expenserepo.Repository](uow)
		if err != nil {
			return err
		}
		return expenses.Delete(ctx, userID, id)
	})
}

func ensureCrop(
	ctx context.Context,
	uow repository.UnitOfWork,
	userID, cropID uuid.UUID,
) error {
	crops, err := repository.Get[croprepo.Repository](uow)
	if err != nil {
		return err
	}
	ok, err := crops.Exists(ctx, userID, cropID)
	if err != nil {
		return err
	}
	if !ok {
		return crop.ErrCropNotFound
	}
	return nil
}
