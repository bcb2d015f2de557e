package user

import (
	"context"

	infrarepo "github.com/amirasaad/farmledger/infra/repository"
	"github.com/amirasaad/farmledger/pkg/domain/user"
	repo "github.com/amirasaad/farmledger/pkg/repository/user"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

// New returns a GORM-backed user repository.
func New(db *gorm.DB) repo.Repository {
	return &repository{db: db}
}

func (r *repository) Create(
	ctx context.Context,
	u *user.User,
) error {
	m := mapDomainToModel(u)
	return infrarepo.WrapError(func() error {
		return r.db.WithContext(ctx).Create(m).Error
	})
}

func (r *repository) Get(
	ctx context.Context,
	id uuid.UUID,
) (*user.User, error) {
	var m User
	if err := r.db.WithContext(
		ctx,
	).Where("id = ?", id).First(&m).Error; err != nil {
		return nil, infrarepo.MapNotFound(err, user.ErrUserNotFound)
	}
	return mapModelToDomain(&m), nil
}

func (r *repository) GetByPhone(
	ctx context.Context,
	phone string,
) (*user.User, error) {
	var m User
	if err := r.db.WithContext(
		ctx,
	).Where("phone = ?", phone).First(&m).Error; err != nil {
		return nil, infrarepo.MapNotFound(err, user.ErrUserNotFound)
	}
	return mapModelToDomain(&m), nil
}

func (r *repository) Update(
	ctx context.Context,
	u *user.User,
) error {
	m := mapDomainToModel(u)
	result := r.db.WithContext(
		ctx,
	).Model(m).Select("*").Omit("id", "created_at").Updates(m)
	if result.Error != nil {
		return infrarepo.MapGormErrorToDomain(result.Error)
	}
	if result.RowsAffected == 0 {
		return user.ErrUserNotFound
	}
	return nil
}

func mapDomainToModel(u *user.User) *User {
	return &User{
		ID:                 u.ID,
		Phone:              u.Phone,
		Role:               u.Role,
		IsProfileCompleted: u.IsProfileCompleted,
		AnalyticsConsent:   u.AnalyticsConsent,
		CreatedAt:          u.CreatedAt,
		UpdatedAt:          u.UpdatedAt,
	}
}

func mapModelToDomain(m *User) *user.User {
	return &user.User{
		ID:                 m.ID,
		Phone:              m.Phone,
		Role:               m.Role,
		IsProfileCompleted: m.IsProfileCompleted,
		AnalyticsConsent:   m.AnalyticsConsent,
		CreatedAt:          m.CreatedAt,
		UpdatedAt:          m.UpdatedAt,
	}
}

var _ repo.Repository = (*repository)(nil)
