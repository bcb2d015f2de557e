package profile

import (
	"context"

	infrarepo "github.com/amirasaad/farmledger/infra/repository"
	"github.com/amirasaad/farmledger/pkg/domain/profile"
	repo "github.com/amirasaad/farmledger/pkg/repository/profile"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

// New returns a GORM-backed farmer profile repository.
func New(db *gorm.DB) repo.Repository {
	return &repository{db: db}
}

func (r *repository) Create(
	ctx context.Context,
	p *profile.FarmerProfile,
) error {
	m := mapDomainToModel(p)
	err := infrarepo.WrapError(func() error {
		return r.db.WithContext(ctx).Create(m).Error
	})
	return infrarepo.MapAlreadyExists(err, profile.ErrProfileExists)
}

func (r *repository) GetByUser(
	ctx context.Context,
	userID uuid.UUID,
) (*profile.FarmerProfile, error) {
	var m FarmerProfile
	if err := r.db.WithContext(
		ctx,
	).Where("user_id = ?", userID).First(&m).Error; err != nil {
		return nil, infrarepo.MapNotFound(err, profile.ErrProfileNotFound)
	}
	return mapModelToDomain(&m), nil
}

func (r *repository) ExistsByUser(
	ctx context.Context,
	userID uuid.UUID,
) (bool, error) {
	var count int64
	if err := r.db.WithContext(
		ctx,
	).Model(&FarmerProfile{}).Where("user_id = ?", userID).Count(&count).Error; err != nil {
		return false, infrarepo.MapGormErrorToDomain(err)
	}
	return count > 0, nil
}

func (r *repository) Update(
	ctx context.Context,
	p *profile.FarmerProfile,
) error {
	m := mapDomainToModel(p)
	result := r.db.WithContext(
		ctx,
	).Model(m).Select("*").Omit("id", "user_id", "created_at").Updates(m)
	if result.Error != nil {
		return infrarepo.MapGormErrorToDomain(result.Error)
	}
	if result.RowsAffected == 0 {
		return profile.ErrProfileNotFound
	}
	return nil
}

func mapDomainToModel(p *profile.FarmerProfile) *FarmerProfile {
	return &FarmerProfile{
		ID:               p.ID,
		UserID:           p.UserID,
		Name:             p.Name,
		District:         p.District,
		Taluka:           p.Taluka,
		Village:          p.Village,
		TotalLandValue:   p.TotalLandValue,
		TotalLandUnit:    p.TotalLandUnit,
		WaterSource:      p.WaterSource,
		TractorAvailable: p.TractorAvailable,
		LabourType:       p.LabourType,
		AnalyticsConsent: p.AnalyticsConsent,
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
	}
}

func mapModelToDomain(m *FarmerProfile) *profile.FarmerProfile {
	return &profile.FarmerProfile{
		ID:               m.ID,
		UserID:           m.UserID,
		Name:             m.Name,
		District:         m.District,
		Taluka:           m.Taluka,
		Village:          m.Village,
		TotalLandValue:   m.TotalLandValue,
		TotalLandUnit:    m.TotalLandUnit,
		WaterSource:      m.WaterSource,
		TractorAvailable: m.TractorAvailable,
		LabourType:       m.LabourType,
		AnalyticsConsent: m.AnalyticsConsent,
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
}

var _ repo.Repository = (*repository)(nil)
