package expense

import (
	"context"

	infrarepo "github.com/amirasaad/farmledger/infra/repository"
	"github.com/amirasaad/farmledger/pkg/domain/expense"
	"github.com/amirasaad/farmledger/pkg/dto"
	repo "github.com/amirasaad/farmledger/pkg/repository/expense"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

// New returns a GORM-backed expense repository.
func New(db *gorm.DB) repo.Repository {
	return &repository{db: db}
}

func (r *repository) Create(
	ctx context.Context,
	e *expense.Expense,
) error {
	m, err := mapDomainToModel(e)
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
) (*expense.Expense, error) {
	var m Expense
	if err := r.db.WithContext(
		ctx,
	).Where("id = ? AND user_id = ?", id, userID).First(&m).Error; err != nil {
		return nil, infrarepo.MapNotFound(err, expense.ErrExpenseNotFound)
	}
	return mapModelToDomain(&m)
}

func (r *repository) List(
	ctx context.Context,
	userID uuid.UUID,
	filter dto.ExpenseFilter,
	page dto.PageQuery,
) ([]*expense.Expense, int64, error) {
	query := r.db.WithContext(
		ctx,
	).Model(&Expense{}).Where("user_id = ?", userID)
	if filter.CropID != nil {
		query = query.Where("crop_id = ?", *filter.CropID)
	}
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	query = query.Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, infrarepo.MapGormErrorToDomain(err)
	}

	var models []Expense
	if err := query.Order(
		"created_at DESC",
	).Offset(page.Offset()).Limit(page.Limit).Find(&models).Error; err != nil {
		return nil, 0, infrarepo.MapGormErrorToDomain(err)
	}

	result := make([]*expense.Expense, 0, len(models))
	for i := range models {
		e, err := mapModelToDomain(&models[i])
		if err != nil {
			return nil, 0, err
		}
		result = append(result, e)
	}
	return result, total, nil
}

func (r *repository) Update(
	ctx context.Context,
	e *expense.Expense,
) error {
	m, err := mapDomainToModel(e)
	if err != nil {
		return err
	}
	result := r.db.WithContext(
		ctx,
	).Model(m).Where("user_id = ?", e.UserID).Select("*").Omit("id", "user_id", "created_at").Updates(m)
	if result.Error != nil {
		return infrarepo.MapGormErrorToDomain(result.Error)
	}
	if result.RowsAffected == 0 {
		return expense.ErrExpenseNotFound
	}
	return nil
}

func (r *repository) Delete(
	ctx context.Context,
	userID, id uuid.UUID,
) error {
	result := r.db.WithContext(
		ctx,
	).Where("id = ? AND user_id = ?", id, userID).Delete(&Expense{})
	if result.Error != nil {
		return infrarepo.MapGormErrorToDomain(result.Error)
	}
	if result.RowsAffected == 0 {
		return expense.ErrExpenseNotFound
	}
	return nil
}

func (r *repository) DeleteByCrop(
	ctx context.Context,
	userID, cropID uuid.UUID,
) (int64, error) {
	result := r.db.WithContext(
		ctx,
	).Where("user_id = ? AND crop_id = ?", userID, cropID).Delete(&Expense{})
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
	).Model(&Expense{}).
		Select("crop_id, SUM(amount) AS total").
		Where("user_id = ? AND crop_id IN ?", userID, cropIDs).
		Group("crop_id").
		Scan(&rows).Error; err != nil {
		return nil, infrarepo.MapGormErrorToDomain(err)
	}
	return infrarepo.CropTotals(rows), nil
}

func mapDomainToModel(e *expense.Expense) (*Expense, error) {
	kind, detail, err := expense.MarshalDetail(e.Detail)
	if err != nil {
		return nil, err
	}
	return &Expense{
		ID:        e.ID,
		UserID:    e.UserID,
		CropID:    e.CropID,
		Category:  string(e.Category),
		Kind:      string(kind),
		Detail:    detail,
		Amount:    infrarepo.Amount(e.Amount),
		Date:      e.Date.UTC(),
		Notes:     e.Notes,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}, nil
}

func mapModelToDomain(m *Expense) (*expense.Expense, error) {
	detail, err := expense.UnmarshalDetail(expense.Kind(m.Kind), m.Detail)
	if err != nil {
		return nil, err
	}
	return &expense.Expense{
		ID:        m.ID,
		UserID:    m.UserID,
		CropID:    m.CropID,
		Category:  expense.Category(m.Category),
		Date:      m.Date.UTC(),
		Notes:     m.Notes,
		Detail:    detail,
		Amount:    m.Amount.InexactFloat64(),
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}, nil
}

var _ repo.Repository = (*repository)(nil)
