// Package ledger implements the ledger engine: the business rules and
// atomicity guarantees around balance mutation. Every operation takes the
// verified caller principal first and runs its store work inside a single
// unit of work, so a transaction record and its balance effect commit
// together or not at all.
package ledger

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/MaeliPalharini/bankledger/pkg/domain"
	dledger "github.com/MaeliPalharini/bankledger/pkg/domain/ledger"
	"github.com/MaeliPalharini/bankledger/pkg/dto"
	"github.com/MaeliPalharini/bankledger/pkg/money"
	"github.com/MaeliPalharini/bankledger/pkg/repository"
)

// Service orchestrates deposit, withdraw, statement and account management.
type Service struct {
	uow    repository.UnitOfWork
	locks  *accountLocks
	logger *slog.Logger
}

// New creates a ledger Service.
func New(uow repository.UnitOfWork, logger *slog.Logger) *Service {
	return &Service{
		uow:    uow,
		locks:  newAccountLocks(),
		logger: logger,
	}
}

// RegisterClient creates a new client. Fails with domain.ErrAlreadyExists if
// the CPF is already registered.
func (s *Service) RegisterClient(
	ctx context.Context,
	p domain.Principal,
	cpf, name string,
	birthDate time.Time,
	address string,
) (c *dto.ClientRead, err error) {
	logger := s.logger.With("op", "register_client", "cpf", cpf)
	if err = p.Verify(); err != nil {
		return
	}
	client, err := dledger.NewClient().
		WithCPF(cpf).
		WithName(name).
		WithBirthDate(birthDate).
		WithAddress(address).
		Build()
	if err != nil {
		return
	}
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		clients, err := uow.ClientRepository()
		if err != nil {
			return err
		}
		if err := clients.Create(ctx, dto.ClientCreate{
			ID:        client.ID,
			CPF:       client.CPF,
			Name:      client.Name,
			BirthDate: client.BirthDate,
			Address:   client.Address,
		}); err != nil {
			return err
		}
		c = &dto.ClientRead{
			ID:        client.ID,
			CPF:       client.CPF,
			Name:      client.Name,
			BirthDate: client.BirthDate,
			Address:   client.Address,
			CreatedAt: client.CreatedAt,
		}
		return nil
	})
	if err != nil {
		c = nil
		logger.Error("register client failed", "error", err)
		return
	}
	logger.Info("client registered", "clientID", c.ID)
	return
}

// OpenAccount opens an account for the client identified by cpf. The account
// number must be a positive integer not already in use; the initial balance
// must not be negative.
func (s *Service) OpenAccount(
	ctx context.Context,
	p domain.Principal,
	cpf string,
	number int64,
	initialBalance money.Money,
) (a *dto.AccountRead, err error) {
	logger := s.logger.With("op", "open_account", "cpf", cpf, "number", number)
	if err = p.Verify(); err != nil {
		return
	}
	if !dledger.ValidCPF(cpf) {
		err = dledger.ErrInvalidCPF
		return
	}
	if initialBalance.IsNegative() {
		err = dledger.ErrNegativeInitialBalance
		return
	}
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		clients, err := uow.ClientRepository()
		if err != nil {
			return err
		}
		client, err := clients.GetByCPF(ctx, cpf)
		if err != nil {
			return err
		}
		acct, err := dledger.NewAccount().
			WithNumber(number).
			WithClientID(client.ID).
			WithBalance(initialBalance.Centavos()).
			Build()
		if err != nil {
			return err
		}
		accounts, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		if err := accounts.Create(ctx, dto.AccountCreate{
			ID:       acct.ID,
			Number:   acct.Number,
			ClientID: acct.ClientID,
			Balance:  acct.Balance.Centavos(),
		}); err != nil {
			return err
		}
		a = accountRead(acct)
		return nil
	})
	if err != nil {
		a = nil
		logger.Error("open account failed", "error", err)
		return
	}
	logger.Info("account opened", "accountID", a.ID, "balance", a.Balance)
	return
}

// Deposit atomically appends a deposit transaction and increases the balance
// of the client's account.
func (s *Service) Deposit(
	ctx context.Context,
	p domain.Principal,
	cpf string,
	amount money.Money,
) (*dto.TransactionRead, error) {
	return s.mutateBalance(ctx, p, cpf, amount, dledger.KindDeposit)
}

// Withdraw atomically appends a withdrawal transaction and decreases the
// balance of the client's account. The sufficiency check and the decrement
// are one indivisible step with respect to concurrent operations on the same
// account; a failed withdrawal leaves balance and history untouched.
func (s *Service) Withdraw(
	ctx context.Context,
	p domain.Principal,
	cpf string,
	amount money.Money,
) (*dto.TransactionRead, error) {
	return s.mutateBalance(ctx, p, cpf, amount, dledger.KindWithdrawal)
}

func (s *Service) mutateBalance(
	ctx context.Context,
	p domain.Principal,
	cpf string,
	amount money.Money,
	kind dledger.Kind,
) (tx *dto.TransactionRead, err error) {
	logger := s.logger.With("op", string(kind), "cpf", cpf, "amount", amount.Centavos())
	if err = p.Verify(); err != nil {
		return
	}
	if !dledger.ValidCPF(cpf) {
		err = dledger.ErrInvalidCPF
		return
	}
	if !amount.IsPositive() {
		err = dledger.ErrTransactionAmountMustBePositive
		return
	}

	unlock := s.locks.Lock(cpf)
	defer unlock()

	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		acct, err := s.accountForUpdate(ctx, uow, cpf)
		if err != nil {
			return err
		}
		switch kind {
		case dledger.KindDeposit:
			err = acct.Deposit(amount)
		case dledger.KindWithdrawal:
			err = acct.Withdraw(amount)
		}
		if err != nil {
			return err
		}
		txs, err := uow.TransactionRepository()
		if err != nil {
			return err
		}
		entry := dledger.NewTransactionFromData(
			uuid.New(), acct.ID, kind, amount, acct.Balance, 0, time.Now().UTC(),
		)
		created, err := txs.Create(ctx, dto.TransactionCreate{
			ID:        entry.ID,
			AccountID: entry.AccountID,
			Kind:      string(entry.Kind),
			Amount:    entry.Amount.Centavos(),
			Balance:   entry.Balance.Centavos(),
			CreatedAt: entry.CreatedAt,
		})
		if err != nil {
			return err
		}
		accounts, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		if err := accounts.UpdateBalance(ctx, acct.ID, acct.Balance.Centavos()); err != nil {
			return err
		}
		tx = created
		return nil
	})
	if err != nil {
		tx = nil
		logger.Error("balance mutation failed", "error", err)
		return
	}
	logger.Info("balance mutation committed", "accountID", tx.AccountID, "balance", tx.Balance)
	return
}

// accountForUpdate resolves the client's primary account with a row-level
// write lock held for the remainder of the unit of work. An unknown client
// and a client without accounts both surface as ErrAccountNotFound: the
// caller addressed a transaction at an account that does not exist.
func (s *Service) accountForUpdate(
	ctx context.Context,
	uow repository.UnitOfWork,
	cpf string,
) (*dledger.Account, error) {
	clients, err := uow.ClientRepository()
	if err != nil {
		return nil, err
	}
	client, err := clients.GetByCPF(ctx, cpf)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, dledger.ErrAccountNotFound
		}
		return nil, err
	}
	accounts, err := uow.AccountRepository()
	if err != nil {
		return nil, err
	}
	read, err := accounts.GetForClientForUpdate(ctx, client.ID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, dledger.ErrAccountNotFound
		}
		return nil, err
	}
	return hydrateAccount(read)
}

func hydrateAccount(read *dto.AccountRead) (*dledger.Account, error) {
	return dledger.NewAccount().
		WithID(read.ID).
		WithNumber(read.Number).
		WithClientID(read.ClientID).
		WithBalance(read.Balance).
		WithCreatedAt(read.CreatedAt).
		WithUpdatedAt(read.UpdatedAt).
		Build()
}

func accountRead(a *dledger.Account) *dto.AccountRead {
	return &dto.AccountRead{
		ID:        a.ID,
		Number:    a.Number,
		ClientID:  a.ClientID,
		Balance:   a.Balance.Centavos(),
		Formatted: a.Balance.String(),
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}
