package crop

import (
	"context"
	"time"

	infrarepo "github.com/amirasaad/farmledger/infra/repository"
	"github.com/amirasaad/farmledger/pkg/domain/crop"
	"github.com/amirasaad/farmledger/pkg/dto"
	repo "github.com/amirasaad/farmledger/pkg/repository/crop"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

// New returns a GORM-backed crop repository.
func New(db *gorm.DB) repo.Repository {
	return &repository{db: db}
}

func (r *repository) Create(
	ctx context.Context,
	c *crop.Crop,
) error {
	m := mapDomainToModel(c)
	err := infrarepo.WrapError(func() error {
		return r.db.WithContext(ctx).Create(m).Error
	})
	return infrarepo.MapAlreadyExists(err, crop.ErrDuplicateCrop)
}

func (r *repository) Get(
	ctx context.Context,
	userID, id uuid.UUID,
) (*crop.Crop, error) {
	var m Crop
	if err := r.db.WithContext(
		ctx,
	).Where("id = ? AND user_id = ?", id, userID).First(&m).Error; err != nil {
		return nil, infrarepo.MapNotFound(err, crop.ErrCropNotFound)
	}
	return mapModelToDomain(&m), nil
}

func (r *repository) List(
	ctx context.Context,
	userID uuid.UUID,
	filter dto.CropFilter,
	page dto.PageQuery,
) ([]*crop.Crop, int64, error) {
	query := r.db.WithContext(
		ctx,
	).Model(&Crop{}).Where("user_id = ?", userID)
	if filter.Season != "" {
		query = query.Where("season = ?", filter.Season)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Year != nil {
		query = query.Where("year = ?", *filter.Year)
	}
	query = query.Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, infrarepo.MapGormErrorToDomain(err)
	}

	var models []Crop
	if err := query.Order(
		"created_at DESC",
	).Offset(page.Offset()).Limit(page.Limit).Find(&models).Error; err != nil {
		return nil, 0, infrarepo.MapGormErrorToDomain(err)
	}
	return mapModelsToDomain(models), total, nil
}

func (r *repository) ListByUserYear(
	ctx context.Context,
	userID uuid.UUID,
	year int,
) ([]*crop.Crop, error) {
	var models []Crop
	if err := r.db.WithContext(
		ctx,
	).Where("user_id = ? AND year = ?", userID, year).Order("created_at ASC").Find(&models).Error; err != nil {
		return nil, infrarepo.MapGormErrorToDomain(err)
	}
	return mapModelsToDomain(models), nil
}

func (r *repository) Years(
	ctx context.Context,
	userID uuid.UUID,
) ([]int, error) {
	var years []int
	if err := r.db.WithContext(
		ctx,
	).Model(&Crop{}).Distinct("year").Where("user_id = ?", userID).Order("year DESC").Pluck("year", &years).Error; err != nil {
		return nil, infrarepo.MapGormErrorToDomain(err)
	}
	return years, nil
}

func (r *repository) Exists(
	ctx context.Context,
	userID, id uuid.UUID,
) (bool, error) {
	var count int64
	if err := r.db.WithContext(
		ctx,
	).Model(&Crop{}).Where("id = ? AND user_id = ?", id, userID).Count(&count).Error; err != nil {
		return false, infrarepo.MapGormErrorToDomain(err)
	}
	return count > 0, nil
}

func (r *repository) Update(
	ctx context.Context,
	c *crop.Crop,
) error {
	m := mapDomainToModel(c)
	result := r.db.WithContext(
		ctx,
	).Model(m).Where("user_id = ?", c.UserID).Select("*").Omit("id", "user_id", "created_at").Updates(m)
	if result.Error != nil {
		return infrarepo.MapAlreadyExists(infrarepo.MapGormErrorToDomain(result.Error), crop.ErrDuplicateCrop)
	}
	if result.RowsAffected == 0 {
		return crop.ErrCropNotFound
	}
	return nil
}

func (r *repository) Delete(
	ctx context.Context,
	userID, id uuid.UUID,
) error {
	result := r.db.WithContext(
		ctx,
	).Where("id = ? AND user_id = ?", id, userID).Delete(&Crop{})
	if result.Error != nil {
		return infrarepo.MapGormErrorToDomain(result.Error)
	}
	if result.RowsAffected == 0 {
		return crop.ErrCropNotFound
	}
	return nil
}

func mapDomainToModel(c *crop.Crop) *Crop {
	return &Crop{
		ID:          c.ID,
		UserID:      c.UserID,
		Season:      string(c.Season),
		Year:        c.Year,
		CropName:    c.CropName,
		CropType:    c.CropType,
		BatchLabel:  c.BatchLabel,
		CropEmoji:   c.CropEmoji,
		Area:        c.Area,
		AreaUnit:    string(c.AreaUnit),
		SowingDate:  utc(c.SowingDate),
		HarvestDate: utc(c.HarvestDate),
		Status:      string(c.Status),
		Notes:       c.Notes,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

func mapModelToDomain(m *Crop) *crop.Crop {
	return &crop.Crop{
		ID:          m.ID,
		UserID:      m.UserID,
		Season:      crop.Season(m.Season),
		Year:        m.Year,
		CropName:    m.CropName,
		CropType:    m.CropType,
		BatchLabel:  m.BatchLabel,
		CropEmoji:   m.CropEmoji,
		Area:        m.Area,
		AreaUnit:    crop.AreaUnit(m.AreaUnit),
		SowingDate:  utc(m.SowingDate),
		HarvestDate: utc(m.HarvestDate),
		Status:      crop.Status(m.Status),
		Notes:       m.Notes,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func mapModelsToDomain(models []Crop) []*crop.Crop {
	result := make([]*crop.Crop, 0, len(models))
	for i := range models {
		result = append(result, mapModelToDomain(&models[i]))
	}
	return result
}

func utc(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}

var _ repo.Repository = (*repository)(nil)
