package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/MaeliPalharini/bankledger/infra/repository/model"
	"github.com/MaeliPalharini/bankledger/pkg/dto"
	"github.com/MaeliPalharini/bankledger/pkg/repository"
)

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a user repository using the provided *gorm.DB.
func NewUserRepository(db *gorm.DB) repository.UserRepository {
	return &userRepository{db: db}
}

// Create inserts a new user record. New users start active.
func (r *userRepository) Create(ctx context.Context, create dto.UserCreate) error {
	rec := model.User{
		ID:       create.ID,
		Username: create.Username,
		Email:    create.Email,
		Password: create.Password,
		Active:   true,
	}
	return MapGormErrorToDomain(
		r.db.WithContext(ctx).Create(&rec).Error,
	)
}

// GetByID looks up a user by ID.
func (r *userRepository) GetByID(ctx context.Context, id uuid.UUID) (*dto.UserRead, error) {
	var rec model.User
	if err := r.db.WithContext(ctx).First(&rec, "id = ?", id).Error; err != nil {
		return nil, MapGormErrorToDomain(err)
	}
	return mapUserToDTO(&rec), nil
}

// GetByIdentity looks up a user by username or email.
func (r *userRepository) GetByIdentity(ctx context.Context, identity string) (*dto.UserRead, error) {
	var rec model.User
	err := r.db.WithContext(ctx).
		Where("username = ? OR email = ?", identity, identity).
		First(&rec).Error
	if err != nil {
		return nil, MapGormErrorToDomain(err)
	}
	return mapUserToDTO(&rec), nil
}

func mapUserToDTO(rec *model.User) *dto.UserRead {
	return &dto.UserRead{
		ID:             rec.ID,
		Username:       rec.Username,
		Email:          rec.Email,
		Active:         rec.Active,
		HashedPassword: rec.Password,
		CreatedAt:      rec.CreatedAt,
	}
}
