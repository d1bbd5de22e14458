// Package repository defines the persistence contracts the ledger engine
// depends on. Implementations live under infra/repository; tests use the
// in-memory fake from pkg/testutils.
package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/MaeliPalharini/bankledger/pkg/dto"
)

// ClientRepository provides typed access to client records.
// Create fails with domain.ErrAlreadyExists when the CPF is taken.
type ClientRepository interface {
	Create(ctx context.Context, create dto.ClientCreate) error
	GetByCPF(ctx context.Context, cpf string) (*dto.ClientRead, error)
}

// AccountRepository provides typed access to account records.
//
// GetForClient resolves the client's primary account: the oldest account
// owned by the client. GetForClientForUpdate does the same but additionally
// acquires a row-level write lock for the duration of the surrounding unit of
// work, serializing concurrent balance mutations on the same account.
type AccountRepository interface {
	Create(ctx context.Context, create dto.AccountCreate) error
	GetByNumber(ctx context.Context, number int64) (*dto.AccountRead, error)
	GetForClient(ctx context.Context, clientID uuid.UUID) (*dto.AccountRead, error)
	GetForClientForUpdate(ctx context.Context, clientID uuid.UUID) (*dto.AccountRead, error)
	ListForClient(ctx context.Context, clientID uuid.UUID) ([]*dto.AccountRead, error)
	UpdateBalance(ctx context.Context, id uuid.UUID, balance int64) error
}

// TransactionRepository provides typed access to the append-only transaction
// log. ListForAccount returns records ordered by creation time, then by the
// store-assigned sequence as a tie-break.
type TransactionRepository interface {
	Create(ctx context.Context, create dto.TransactionCreate) (*dto.TransactionRead, error)
	ListForAccount(ctx context.Context, accountID uuid.UUID) ([]*dto.TransactionRead, error)
}

// UserRepository is the credential store behind the authentication gateway.
type UserRepository interface {
	Create(ctx context.Context, create dto.UserCreate) error
	GetByID(ctx context.Context, id uuid.UUID) (*dto.UserRead, error)
	GetByIdentity(ctx context.Context, identity string) (*dto.UserRead, error)
}
