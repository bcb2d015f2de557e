// Package profile manages the one farmer profile each user completes after
// their first login.
package profile

import (
	"context"
	"log/slog"
	"time"

	"github.com/amirasaad/farmledger/pkg/domain"
	"github.com/amirasaad/farmledger/pkg/domain/profile"
	"github.com/amirasaad/farmledger/pkg/dto"
	"github.com/amirasaad/farmledger/pkg/repository"
	profilerepo "github.com/amirasaad/farmledger/pkg/repository/profile"
	userrepo "github.com/amirasaad/farmledger/pkg/repository/user"
	"github.com/google/uuid"
)

// Service provides farmer profile operations.
type Service struct {
	uow    repository.UnitOfWork
	logger *slog.Logger
}

// New creates a profile Service.
func New(
	uow repository.UnitOfWork,
	logger *slog.Logger,
) *Service {
	return &Service{uow: uow, logger: logger}
}

// Complete creates the profile and marks the user as completed in one
// transaction. A second call fails with profile.ErrProfileExists.
func (s *Service) Complete(
	ctx context.Context,
	userID uuid.UUID,
	in *dto.ProfileCreate,
) (p *profile.FarmerProfile, err error) {
	log := s.logger.With("context", "Complete", "userID", userID)
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		users, err := repository.Get[userrepo.Repository](uow)
		if err != nil {
			return err
		}
		profiles, err := repository.Get[profilerepo.Repository](uow)
		if err != nil {
			return err
		}

		u, err := users.Get(ctx, userID)
		if err != nil {
			return err
		}
		exists, err := profiles.ExistsByUser(ctx, userID)
		if err != nil {
			return err
		}
		if exists {
			return profile.ErrProfileExists
		}

		p = profile.New(userID)
		p.Name = in.Name
		p.District = in.District
		p.Taluka = in.Taluka
		p.Village = in.Village
		if in.TotalLand.Value != nil {
			p.TotalLandValue = *in.TotalLand.Value
		}
		p.TotalLandUnit = in.TotalLand.Unit
		p.WaterSource = in.WaterSource
		if in.TractorAvailable != nil {
			p.TractorAvailable = *in.TractorAvailable
		}
		p.LabourType = in.LabourType
		p.AnalyticsConsent = in.AnalyticsConsent
		p.Normalize()
		if err = p.Validate(); err != nil {
			return err
		}
		if err = profiles.Create(ctx, p); err != nil {
			return err
		}

		u.CompleteProfile()
		return users.Update(ctx, u)
	})
	if err != nil {
		log.Warn("Profile not completed", "error", err)
		p = nil
		return
	}
	log.Info("Profile completed", "profileID", p.ID)
	return
}

// Get returns the caller's profile.
func (s *Service) Get(
	ctx context.Context,
	userID uuid.UUID,
) (p *profile.FarmerProfile, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		profiles, err := repository.Get[profilerepo.Repository](uow)
		if err != nil {
			return err
		}
		p, err = profiles.GetByUser(ctx, userID)
		return err
	})
	if err != nil {
		p = nil
	}
	return
}

// Update applies the patch and saves the re-validated profile.
func (s *Service) Update(
	ctx context.Context,
	userID uuid.UUID,
	in *dto.ProfileUpdate,
) (p *profile.FarmerProfile, err error) {
	log := s.logger.With("context", "Update", "userID", userID)
	if in.IsEmpty() {
		return nil, domain.ErrNoFieldsToUpdate
	}
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		profiles, err := repository.Get[profilerepo.Repository](uow)
		if err != nil {
			return err
		}
		p, err = profiles.GetByUser(ctx, userID)
		if err != nil {
			return err
		}
		in.Apply(p)
		p.Normalize()
		if err = p.Validate(); err != nil {
			return err
		}
		p.UpdatedAt = time.Now().UTC()
		return profiles.Update(ctx, p)
	})
	if err != nil {
		log.Warn("Profile not updated", "error", err)
		p = nil
	}
	return
}
