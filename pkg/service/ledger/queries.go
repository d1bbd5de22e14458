package ledger

import (
	"context"
	"errors"

	"github.com/MaeliPalharini/bankledger/pkg/domain"
	dledger "github.com/MaeliPalharini/bankledger/pkg/domain/ledger"
	"github.com/MaeliPalharini/bankledger/pkg/dto"
	"github.com/MaeliPalharini/bankledger/pkg/repository"
)

// GetClient returns the client registered under cpf.
func (s *Service) GetClient(
	ctx context.Context,
	p domain.Principal,
	cpf string,
) (c *dto.ClientRead, err error) {
	if err = p.Verify(); err != nil {
		return
	}
	if !dledger.ValidCPF(cpf) {
		err = dledger.ErrInvalidCPF
		return
	}
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		clients, err := uow.ClientRepository()
		if err != nil {
			return err
		}
		c, err = clients.GetByCPF(ctx, cpf)
		return err
	})
	if err != nil {
		c = nil
	}
	return
}

// Accounts lists every account owned by the client registered under cpf.
// The list may be empty.
func (s *Service) Accounts(
	ctx context.Context,
	p domain.Principal,
	cpf string,
) (accts []*dto.AccountRead, err error) {
	if err = p.Verify(); err != nil {
		return
	}
	if !dledger.ValidCPF(cpf) {
		err = dledger.ErrInvalidCPF
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
		accounts, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		accts, err = accounts.ListForClient(ctx, client.ID)
		return err
	})
	if err != nil {
		accts = nil
	}
	return
}

// Statement returns the full transaction history of the client's account in
// chronological order. The read runs inside one unit of work, so it observes
// a consistent snapshot and never a half-committed mutation.
func (s *Service) Statement(
	ctx context.Context,
	p domain.Principal,
	cpf string,
) (txs []*dto.TransactionRead, err error) {
	logger := s.logger.With("op", "statement", "cpf", cpf)
	if err = p.Verify(); err != nil {
		return
	}
	if !dledger.ValidCPF(cpf) {
		err = dledger.ErrInvalidCPF
		return
	}
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		clients, err := uow.ClientRepository()
		if err != nil {
			return err
		}
		client, err := clients.GetByCPF(ctx, cpf)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return dledger.ErrAccountNotFound
			}
			return err
		}
		accounts, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		acct, err := accounts.GetForClient(ctx, client.ID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return dledger.ErrAccountNotFound
			}
			return err
		}
		transactions, err := uow.TransactionRepository()
		if err != nil {
			return err
		}
		txs, err = transactions.ListForAccount(ctx, acct.ID)
		return err
	})
	if err != nil {
		txs = nil
		logger.Error("statement failed", "error", err)
		return
	}
	logger.Debug("statement read", "count", len(txs))
	return
}

// AccountByNumber looks up an account directly by its number.
func (s *Service) AccountByNumber(
	ctx context.Context,
	p domain.Principal,
	number int64,
) (a *dto.AccountRead, err error) {
	if err = p.Verify(); err != nil {
		return
	}
	if number <= 0 {
		err = dledger.ErrInvalidAccountNumber
		return
	}
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		accounts, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		a, err = accounts.GetByNumber(ctx, number)
		if err != nil && errors.Is(err, domain.ErrNotFound) {
			return dledger.ErrAccountNotFound
		}
		return err
	})
	if err != nil {
		a = nil
	}
	return
}
