package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/MaeliPalharini/bankledger/infra/repository/model"
	"github.com/MaeliPalharini/bankledger/pkg/dto"
	"github.com/MaeliPalharini/bankledger/pkg/repository"
)

type clientRepository struct {
	db *gorm.DB
}

// NewClientRepository creates a client repository using the provided
// *gorm.DB.
func NewClientRepository(db *gorm.DB) repository.ClientRepository {
	return &clientRepository{db: db}
}

// Create inserts a new client record.
func (r *clientRepository) Create(ctx context.Context, create dto.ClientCreate) error {
	rec := model.Client{
		ID:        create.ID,
		CPF:       create.CPF,
		Name:      create.Name,
		BirthDate: create.BirthDate,
		Address:   create.Address,
	}
	return MapGormErrorToDomain(
		r.db.WithContext(ctx).Create(&rec).Error,
	)
}

// GetByCPF looks up a client by CPF.
func (r *clientRepository) GetByCPF(ctx context.Context, cpf string) (*dto.ClientRead, error) {
	var rec model.Client
	if err := r.db.WithContext(ctx).First(&rec, "cpf = ?", cpf).Error; err != nil {
		return nil, MapGormErrorToDomain(err)
	}
	return mapClientToDTO(&rec), nil
}

func mapClientToDTO(rec *model.Client) *dto.ClientRead {
	return &dto.ClientRead{
		ID:        rec.ID,
		CPF:       rec.CPF,
		Name:      rec.Name,
		BirthDate: rec.BirthDate,
		Address:   rec.Address,
		CreatedAt: rec.CreatedAt,
	}
}
