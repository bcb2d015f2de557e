// Package crop provides crop registration and lifecycle operations.
package crop

import (
	"context"
	"log/slog"
	"time"

	"github.com/amirasaad/farmledger/pkg/config"
	"github.com/amirasaad/farmledger/pkg/domain"
	"github.com/amirasaad/farmledger/pkg/domain/crop"
	"github.com/amirasaad/farmledger/pkg/dto"
	"github.com/amirasaad/farmledger/pkg/repository"
	croprepo "github.com/amirasaad/farmledger/pkg/repository/crop"
	expenserepo "github.com/amirasaad/farmledger/pkg/repository/expense"
	incomerepo "github.com/amirasaad/farmledger/pkg/repository/income"
	"github.com/google/uuid"
)

// Service provides crop operations scoped to the owning user.
type Service struct {
	uow          repository.UnitOfWork
	deletePolicy string
	logger       *slog.Logger
}

// New creates a crop Service. deletePolicy is config.CropDeleteOrphan or
// config.CropDeleteCascade.
func New(
	uow repository.UnitOfWork,
	deletePolicy string,
	logger *slog.Logger,
) *Service {
	if deletePolicy == "" {
		deletePolicy = config.CropDeleteOrphan
	}
	return &Service{uow: uow, deletePolicy: deletePolicy, logger: logger}
}

// Create registers a crop for userID.
func (s *Service) Create(
	ctx context.Context,
	userID uuid.UUID,
	in *dto.CropCreate,
) (c *crop.Crop, err error) {
	log := s.logger.With("context", "Create", "userID", userID)
	c = crop.New(userID)
	c.Season = crop.Season(in.Season)
	c.Year = in.Year
	c.CropName = in.CropName
	c.CropType = in.CropType
	c.BatchLabel = in.BatchLabel
	c.CropEmoji = in.CropEmoji
	c.Area = in.Area
	c.AreaUnit = crop.AreaUnit(in.AreaUnit)
	c.SowingDate = in.SowingDate.Ptr()
	c.Status = crop.Status(in.Status)
	c.Notes = in.Notes
	c.Normalize(time.Now().UTC())
	if err = c.Validate(); err != nil {
		return nil, err
	}

	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		crops, err := repository.Get[croprepo.Repository](uow)
		if err != nil {
			return err
		}
		return crops.Create(ctx, c)
	})
	if err != nil {
		log.Warn("Crop not created", "error", err)
		c = nil
		return
	}
	log.Info("Crop created", "cropID", c.ID)
	return
}

// Get returns one of the user's crops.
func (s *Service) Get(
	ctx context.Context,
	userID, id uuid.UUID,
) (c *crop.Crop, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		crops, err := repository.Get[croprepo.Repository](uow)
		if err != nil {
			return err
		}
		c, err = crops.Get(ctx, userID, id)
		return err
	})
	if err != nil {
		c = nil
	}
	return
}

// List returns a page of the user's crops.
func (s *Service) List(
	ctx context.Context,
	userID uuid.UUID,
	filter dto.CropFilter,
	page dto.PageQuery,
) (result *dto.Page[*crop.Crop], err error) {
	page = page.Normalize()
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		crops, err := repository.Get[croprepo.Repository](uow)
		if err != nil {
			return err
		}
		items, total, err := crops.List(ctx, userID, filter, page)
		if err != nil {
			return err
		}
		result = &dto.Page[*crop.Crop]{Items: items, Pagination: dto.NewPagination(total, page)}
		return nil
	})
	if err != nil {
		result = nil
	}
	return
}

// Update applies the patch and saves the re-validated crop.
func (s *Service) Update(
	ctx context.Context,
	userID, id uuid.UUID,
	in *dto.CropUpdate,
) (c *crop.Crop, err error) {
	if in.IsEmpty() {
		return nil, domain.ErrNoFieldsToUpdate
	}
	return s.mutate(ctx, userID, id, "Update", func(c *crop.Crop, now time.Time) error {
		in.Apply(c)
		c.Normalize(now)
		return nil
	})
}

// SetStatus moves the crop to status.
func (s *Service) SetStatus(
	ctx context.Context,
	userID, id uuid.UUID,
	status string,
) (*crop.Crop, error) {
	return s.mutate(ctx, userID, id, "SetStatus", func(c *crop.Crop, _ time.Time) error {
		return c.SetStatus(crop.Status(status))
	})
}

// Harvest marks the crop harvested on at, or now when at is nil.
func (s *Service) Harvest(
	ctx context.Context,
	userID, id uuid.UUID,
	at *time.Time,
) (*crop.Crop, error) {
	return s.mutate(ctx, userID, id, "Harvest", func(c *crop.Crop, now time.Time) error {
		c.MarkHarvested(at, now)
		return nil
	})
}

func (s *Service) mutate(
	ctx context.Context,
	userID, id uuid.UUID,
	op string,
	change func(c *crop.Crop, now time.Time) error,
) (c *crop.Crop, err error) {
	log := s.logger.With("context", op, "userID", userID, "cropID", id)
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		crops, err := repository.Get[croprepo.Repository](uow)
		if err != nil {
			return err
		}
		c, err = crops.Get(ctx, userID, id)
		if err != nil {
			return err
		}
		now := time.Now().UTC()
		if err = change(c, now); err != nil {
			return err
		}
		if err = c.Validate(); err != nil {
			return err
		}
		c.UpdatedAt = now
		return crops.Update(ctx, c)
	})
	if err != nil {
		log.Warn("Crop not updated", "error", err)
		c = nil
	}
	return
}

// Delete removes the crop. Under the cascade policy its expenses and
// incomes go in the same transaction; under orphan they keep the stale id.
func (s *Service) Delete(
	ctx context.Context,
	userID, id uuid.UUID,
) error {
	log := s.logger.With("context", "Delete", "userID", userID, "cropID", id, "policy", s.deletePolicy)
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		crops, err := repository.Get[croprepo.Repository](uow)
		if err != nil {
			return err
		}
		if err = crops.Delete(ctx, userID, id); err != nil {
			return err
		}
		if s.deletePolicy != config.CropDeleteCascade {
			return nil
		}

		expenses, err := repository.Get[expenserepo.Repository](uow)
		if err != nil {
			return err
		}
		incomes, err := repository.Get[incomerepo.Repository](uow)
		if err != nil {
			return err
		}
		removedExpenses, err := expenses.DeleteByCrop(ctx, userID, id)
		if err != nil {
			return err
		}
		removedIncomes, err := incomes.DeleteByCrop(ctx, userID, id)
		if err != nil {
			return err
		}
		log.Info("Cascaded crop delete", "expenses", removedExpenses, "incomes", removedIncomes)
		return nil
	})
	if err != nil {
		log.Warn("Crop not deleted", "error", err)
		return err
	}
	log.Info("Crop deleted")
	return nil
}
