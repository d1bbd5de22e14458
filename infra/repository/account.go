package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/MaeliPalharini/bankledger/infra/repository/model"
	"github.com/MaeliPalharini/bankledger/pkg/dto"
	"github.com/MaeliPalharini/bankledger/pkg/money"
	"github.com/MaeliPalharini/bankledger/pkg/repository"
)

type accountRepository struct {
	db *gorm.DB
}

// NewAccountRepository creates an account repository using the provided
// *gorm.DB.
func NewAccountRepository(db *gorm.DB) repository.AccountRepository {
	return &accountRepository{db: db}
}

// Create inserts a new account record.
func (r *accountRepository) Create(ctx context.Context, create dto.AccountCreate) error {
	rec := model.Account{
		ID:       create.ID,
		Number:   create.Number,
		ClientID: create.ClientID,
		Balance:  create.Balance,
	}
	return MapGormErrorToDomain(
		r.db.WithContext(ctx).Create(&rec).Error,
	)
}

// GetByNumber looks up an account by its number.
func (r *accountRepository) GetByNumber(ctx context.Context, number int64) (*dto.AccountRead, error) {
	var rec model.Account
	if err := r.db.WithContext(ctx).First(&rec, "number = ?", number).Error; err != nil {
		return nil, MapGormErrorToDomain(err)
	}
	return mapAccountToDTO(&rec), nil
}

// GetForClient returns the client's primary account, the oldest account the
// client owns.
func (r *accountRepository) GetForClient(ctx context.Context, clientID uuid.UUID) (*dto.AccountRead, error) {
	return r.getForClient(r.db.WithContext(ctx), clientID)
}

// GetForClientForUpdate is GetForClient with a row-level write lock. The lock
// is held until the surrounding transaction commits or rolls back,
// serializing balance mutations on the same account.
func (r *accountRepository) GetForClientForUpdate(ctx context.Context, clientID uuid.UUID) (*dto.AccountRead, error) {
	return r.getForClient(
		r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}),
		clientID,
	)
}

func (r *accountRepository) getForClient(tx *gorm.DB, clientID uuid.UUID) (*dto.AccountRead, error) {
	var rec model.Account
	err := tx.Where("client_id = ?", clientID).
		Order("created_at ASC, number ASC").
		First(&rec).Error
	if err != nil {
		return nil, MapGormErrorToDomain(err)
	}
	return mapAccountToDTO(&rec), nil
}

// ListForClient returns all accounts owned by the client, oldest first.
func (r *accountRepository) ListForClient(ctx context.Context, clientID uuid.UUID) ([]*dto.AccountRead, error) {
	var recs []model.Account
	err := r.db.WithContext(ctx).
		Where("client_id = ?", clientID).
		Order("created_at ASC, number ASC").
		Find(&recs).Error
	if err != nil {
		return nil, MapGormErrorToDomain(err)
	}
	result := make([]*dto.AccountRead, 0, len(recs))
	for i := range recs {
		result = append(result, mapAccountToDTO(&recs[i]))
	}
	return result, nil
}

// UpdateBalance persists a new balance for the account.
func (r *accountRepository) UpdateBalance(ctx context.Context, id uuid.UUID, balance int64) error {
	res := r.db.WithContext(ctx).
		Model(&model.Account{}).
		Where("id = ?", id).
		Update("balance", balance)
	if res.Error != nil {
		return MapGormErrorToDomain(res.Error)
	}
	if res.RowsAffected == 0 {
		return MapGormErrorToDomain(gorm.ErrRecordNotFound)
	}
	return nil
}

func mapAccountToDTO(rec *model.Account) *dto.AccountRead {
	return &dto.AccountRead{
		ID:        rec.ID,
		Number:    rec.Number,
		ClientID:  rec.ClientID,
		Balance:   rec.Balance,
		Formatted: money.FromCentavos(rec.Balance).String(),
		CreatedAt: rec.CreatedAt,
		UpdatedAt: rec.UpdatedAt,
	}
}
