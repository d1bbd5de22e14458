package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/MaeliPalharini/bankledger/infra/repository/model"
	"github.com/MaeliPalharini/bankledger/pkg/domain"
	"github.com/MaeliPalharini/bankledger/pkg/domain/ledger"
	"github.com/MaeliPalharini/bankledger/pkg/dto"
	"github.com/MaeliPalharini/bankledger/pkg/money"
	"github.com/MaeliPalharini/bankledger/pkg/repository"
)

type transactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository creates a transaction repository using the
// provided *gorm.DB. The repository is append-only: records are inserted and
// listed, never updated.
func NewTransactionRepository(db *gorm.DB) repository.TransactionRepository {
	return &transactionRepository{db: db}
}

// Create inserts one audit-trail entry. The store assigns Seq on insert; the
// populated record is returned.
func (r *transactionRepository) Create(ctx context.Context, create dto.TransactionCreate) (*dto.TransactionRead, error) {
	if !ledger.Kind(create.Kind).Valid() {
		return nil, fmt.Errorf("%w: unknown transaction kind %q", domain.ErrValidation, create.Kind)
	}
	rec := model.Transaction{
		ID:        create.ID,
		AccountID: create.AccountID,
		Kind:      create.Kind,
		Amount:    create.Amount,
		Balance:   create.Balance,
		CreatedAt: create.CreatedAt,
	}
	if err := r.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return nil, MapGormErrorToDomain(err)
	}
	return mapTransactionToDTO(&rec), nil
}

// ListForAccount returns the account's entries in chronological order, with
// Seq breaking ties within equal timestamps.
func (r *transactionRepository) ListForAccount(ctx context.Context, accountID uuid.UUID) ([]*dto.TransactionRead, error) {
	var recs []model.Transaction
	err := r.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		Order("created_at ASC, seq ASC").
		Find(&recs).Error
	if err != nil {
		return nil, MapGormErrorToDomain(err)
	}
	result := make([]*dto.TransactionRead, 0, len(recs))
	for i := range recs {
		result = append(result, mapTransactionToDTO(&recs[i]))
	}
	return result, nil
}

func mapTransactionToDTO(rec *model.Transaction) *dto.TransactionRead {
	return &dto.TransactionRead{
		ID:        rec.ID,
		AccountID: rec.AccountID,
		Kind:      rec.Kind,
		Amount:    rec.Amount,
		Balance:   rec.Balance,
		Formatted: money.FromCentavos(rec.Amount).String(),
		Seq:       rec.Seq,
		CreatedAt: rec.CreatedAt,
	}
}
