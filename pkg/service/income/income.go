// Package income provides income bookkeeping, optionally tied to a crop.
package income

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"github.com/amirasaad/farmledger/pkg/domain"
	"github.com/amirasaad/farmledger/pkg/domain/crop"
	"github.com/amirasaad/farmledger/pkg/domain/income"
	"github.com/amirasaad/farmledger/pkg/dto"
	"github.com/amirasaad/farmledger/pkg/repository"
	croprepo "github.com/amirasaad/farmledger/pkg/repository/crop"
	incomerepo "github.com/amirasaad/farmledger/pkg/repository/income"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Service provides income operations scoped to the owning user.
type Service struct {
	uow    repository.UnitOfWork
	logger *slog.Logger
}

// New creates an income Service.
func New(
	uow repository.UnitOfWork,
	logger *slog.Logger,
) *Service {
	return &Service{uow: uow, logger: logger}
}

// Create records an income.
func (s *Service) Create(
	ctx context.Context,
	userID uuid.UUID,
	in *dto.IncomeCreate,
) (i *income.Income, err error) {
	log := s.logger.With("context", "Create", "userID", userID)
	cropID, err := parseCropID(in.CropID)
	if err != nil {
		return nil, err
	}
	detail, _, err := in.Detail()
	if err != nil {
		return nil, err
	}

	i = income.New(userID)
	i.CropID = cropID
	i.Category = income.Category(in.Category)
	if d := in.Date.Ptr(); d != nil {
		i.Date = d.UTC()
	}
	i.Notes = in.Notes
	i.Detail = detail
	if err = i.Prepare(); err != nil {
		return nil, err
	}

	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		if cropID != nil {
			if err := ensureCrop(ctx, uow, userID, *cropID); err != nil {
				return err
			}
		}
		incomes, err := repository.Get[incomerepo.Repository](uow)
		if err != nil {
			return err
		}
		return incomes.Create(ctx, i)
	})
	if err != nil {
		log.Warn("Income not created", "error", err)
		i = nil
		return
	}
	log.Info("Income created", "incomeID", i.ID, "category", i.Category, "amount", i.Amount)
	return
}

// Get returns one of the user's incomes.
func (s *Service) Get(
	ctx context.Context,
	userID, id uuid.UUID,
) (i *income.Income, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		incomes, err := repository.Get[incomerepo.Repository](uow)
		if err != nil {
			return err
		}
		i, err = incomes.Get(ctx, userID, id)
		return err
	})
	if err != nil {
		i = nil
	}
	return
}

// List returns a page of the user's incomes, latest first.
func (s *Service) List(
	ctx context.Context,
	userID uuid.UUID,
	filter dto.IncomeFilter,
	page dto.PageQuery,
) (result *dto.Page[*income.Income], err error) {
	page = page.Normalize()
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		incomes, err := repository.Get[incomerepo.Repository](uow)
		if err != nil {
			return err
		}
		items, total, err := incomes.List(ctx, userID, filter, page)
		if err != nil {
			return err
		}
		result = &dto.Page[*income.Income]{Items: items, Pagination: dto.NewPagination(total, page)}
		return nil
	})
	if err != nil {
		result = nil
	}
	return
}

// Summary totals the user's incomes per category for year, or every year
// when year is nil.
func (s *Service) Summary(
	ctx context.Context,
	userID uuid.UUID,
	year *int,
) (summary *dto.IncomeSummary, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		incomes, err := repository.Get[incomerepo.Repository](uow)
		if err != nil {
			return err
		}
		rows, err := incomes.SummaryByCategory(ctx, userID, year)
		if err != nil {
			return err
		}
		grand := decimal.Zero
		for _, row := range rows {
			grand = grand.Add(decimal.NewFromFloat(row.TotalAmount))
		}
		label := "all"
		if year != nil {
			label = strconv.Itoa(*year)
		}
		summary = &dto.IncomeSummary{
			Year:       label,
			Summary:    rows,
			GrandTotal: grand.Round(2).InexactFloat64(),
		}
		return nil
	})
	if err != nil {
		summary = nil
	}
	return
}

// Update applies the patch, recomputes the derived fields and saves.
func (s *Service) Update(
	ctx context.Context,
	userID, id uuid.UUID,
	in *dto.IncomeUpdate,
) (i *income.Income, err error) {
	log := s.logger.With("context", "Update", "userID", userID, "incomeID", id)
	if in.IsEmpty() {
		return nil, domain.ErrNoFieldsToUpdate
	}
	detail, hasDetail, err := in.Detail()
	if err != nil {
		return nil, err
	}

	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		incomes, err := repository.Get[incomerepo.Repository](uow)
		if err != nil {
			return err
		}
		i, err = incomes.Get(ctx, userID, id)
		if err != nil {
			return err
		}

		if in.CropID != nil {
			cropID, err := parseCropID(*in.CropID)
			if err != nil {
				return err
			}
			if cropID != nil {
				if err := ensureCrop(ctx, uow, userID, *cropID); err != nil {
					return err
				}
			}
			i.CropID = cropID
		}
		if in.Category != nil {
			i.Category = income.Category(*in.Category)
		}
		if in.Date != nil {
			if d := in.Date.Ptr(); d != nil {
				i.Date = d.UTC()
			}
		}
		if in.Notes != nil {
			i.Notes = *in.Notes
		}
		if hasDetail {
			i.Detail = detail
		}
		if err = i.Prepare(); err != nil {
			return err
		}
		i.UpdatedAt = time.Now().UTC()
		return incomes.Update(ctx, i)
	})
	if err != nil {
		log.Warn("Income not updated", "error", err)
		i = nil
	}
	return
}

// Delete removes one of the user's incomes.
func (s *Service) Delete(
	ctx context.Context,
	userID, id uuid.UUID,
) error {
	return s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		incomes, err := repository.Get[incomerepo.Repository](uow)
		if err != nil {
			return err
		}
		return incomes.Delete(ctx, userID, id)
	})
}

// parseCropID maps "" to no crop.
func parseCropID(raw string) (*uuid.UUID, error) {
	if raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, domain.Invalid("cropId", "must be a valid id")
	}
	return &id, nil
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
