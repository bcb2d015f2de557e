package income

import (
	"context"
	"time"

	infrarepo "github.com/amirasaad/farmledger/infra/repository"
	"github.com/amirasaad/farmledger/pkg/domain/income"
	"github.com/amirasaad/farmledger/pkg/dto"
	repo "github.com/amirasaad/farmledger/pkg/repository/income"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

// New returns a GORM-backed income repository.
func New(db *gorm.DB) repo.Repository {
	return &repository{db: db}
}

func (r *repository) Create(
	ctx context.Context,
	i *income.Income,
) error {
	m, err := mapDomainToModel(i)
	if err != nil {
		return err
	}
	return infrarepo.WrapError(func() error {
		return r.db.WithContext(ctx).Create(m).Error
	})
}

func (r *repository) Get(
	ctx context.Context,
	userID, id uuid.UUID,
) (*income.Income, error) {
	var m Income
	if err := r.db.WithContext(
		ctx,
	).Where("id = ? AND user_id = ?", id, userID).First(&m).Error; err != nil {
		return nil, infrarepo.MapNotFound(err, income.ErrIncomeNotFound)
	}
	return mapModelToDomain(&m)
}

func (r *repository) List(
	ctx context.Context,
	userID uuid.UUID,
	filter dto.IncomeFilter,
	page dto.PageQuery,
) ([]*income.Income, int64, error) {
	query := r.db.WithContext(
		ctx,
	).Model(&Income{}).Where("user_id = ?", userID)
	query = inYear(query, filter.Year)
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.CropID != nil {
		query = query.Where("crop_id = ?", *filter.CropID)
	}
	query = query.Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, infrarepo.MapGormErrorToDomain(err)
	}

	var models []Income
	if err := query.Order(
		"date DESC, created_at DESC",
	).Offset(page.Offset()).Limit(page.Limit).Find(&models).Error; err != nil {
		return nil, 0, infrarepo.MapGormErrorToDomain(err)
	}

	result := make([]*income.Income, 0, len(models))
	for idx := range models {
		i, err := mapModelToDomain(&models[idx])
		if err != nil {
			return nil, 0, err
		}
		result = append(result, i)
	}
	return result, total, nil
}

func (r *repository) Update(
	ctx context.Context,
	i *income.Income,
) error {
	m, err := mapDomainToModel(i)
	if err != nil {
		return err
	}
	result := r.db.WithContext(
		ctx,
	).Model(m).Where("user_id = ?", i.UserID).Select("*").Omit("id", "user_id", "created_at").Updates(m)
	if result.Error != nil {
		return infrarepo.MapGormErrorToDomain(result.Error)
	}
	if result.RowsAffected == 0 {
		return income.ErrIncomeNotFound
	}
	return nil
}

func (r *repository) Delete(
	ctx context.Context,
	userID, id uuid.UUID,
) error {
	result := r.db.WithContext(
		ctx,
	).Where("id = ? AND user_id = ?", id, userID).Delete(&Income{})
	if result.Error != nil {
		return infrarepo.MapGormErrorToDomain(result.Error)
	}
	if result.RowsAffected == 0 {
		return income.ErrIncomeNotFound
	}
	return nil
}

func (r *repository) DeleteByCrop(
	ctx context.Context,
	userID, cropID uuid.UUID,
) (int64, error) {
	result := r.db.WithContext(
		ctx,
	).Where("user_id = ? AND crop_id = ?", userID, cropID).Delete(&Income{})
	if result.Error != nil {
		return 0, infrarepo.MapGormErrorToDomain(result.Error)
	}
	return result.RowsAffected, nil
}

func (r *repository) SumByCrop(
	ctx context.Context,
	userID uuid.UUID,
	cropIDs []uuid.UUID,
) (map[uuid.UUID]decimal.Decimal, error) {
	if len(cropIDs) == 0 {
		return map[uuid.UUID]decimal.Decimal{}, nil
	}
	var rows []infrarepo.CropTotal
	if err := r.db.WithContext(
		ctx,
	).Model(&Income{}).
		Select("crop_id, SUM(amount) AS total").
		Where("user_id = ? AND crop_id IN ?", userID, cropIDs).
		Group("crop_id").
		Scan(&rows).Error; err != nil {
		return nil, infrarepo.MapGormErrorToDomain(err)
	}
	return infrarepo.CropTotals(rows), nil
}

type categoryRow struct {
	Category    string
	TotalAmount decimal.Decimal
	Count       int64
}

func (r *repository) SummaryByCategory(
	ctx context.Context,
	userID uuid.UUID,
	year *int,
) ([]dto.CategoryTotal, error) {
	query := r.db.WithContext(
		ctx,
	).Model(&Income{}).Where("user_id = ?", userID)
	query = inYear(query, year)

	var rows []categoryRow
	if err := query.
		Select("category, SUM(amount) AS total_amount, COUNT(*) AS count").
		Group("category").
		Order("total_amount DESC, category ASC").
		Scan(&rows).Error; err != nil {
		return nil, infrarepo.MapGormErrorToDomain(err)
	}

	result := make([]dto.CategoryTotal, 0, len(rows))
	for _, row := range rows {
		result = append(result, dto.CategoryTotal{
			Category:    row.Category,
			TotalAmount: row.TotalAmount.Round(2).InexactFloat64(),
			Count:       row.Count,
		})
	}
	return result, nil
}

// inYear restricts query to dates in [Jan 1 year, Jan 1 year+1) UTC.
func inYear(query *gorm.DB, year *int) *gorm.DB {
	if year == nil {
		return query
	}
	from := time.Date(*year, time.January, 1, 0, 0, 0, 0, time.UTC)
	return query.Where("date >= ? AND date < ?", from, from.AddDate(1, 0, 0))
}

func mapDomainToModel(i *income.Income) (*Income, error) {
	kind, detail, err := income.MarshalDetail(i.Detail)
	if err != nil {
		return nil, err
	}
	return &Income{
		ID:        i.ID,
		UserID:    i.UserID,
		CropID:    i.CropID,
		Category:  string(i.Category),
		Kind:      string(kind),
		Detail:    detail,
		Amount:    infrarepo.Amount(i.Amount),
		Date:      i.Date.UTC(),
		Notes:     i.Notes,
		CreatedAt: i.CreatedAt,
		UpdatedAt: i.UpdatedAt,
	}, nil
}

func mapModelToDomain(m *Income) (*income.Income, error) {
	detail, err := income.UnmarshalDetail(income.Kind(m.Kind), m.Detail)
	if err != nil {
		return nil, err
	}
	return &income.Income{
		ID:        m.ID,
		UserID:    m.UserID,
		CropID:    m.CropID,
		Category:  income.Category(m.Category),
		Date:      m.Date.UTC(),
		Notes:     m.Notes,
		Detail:    detail,
		Amount:    m.Amount.InexactFloat64(),
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}, nil
}

var _ repo.Repository = (*repository)(nil)
