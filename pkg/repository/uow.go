package repository

import "context"

// UnitOfWork defines the contract for transactional work and repository
// access. All repositories obtained inside Do share one store transaction, so
// a transaction insert and the matching balance update either both persist or
// neither does.
type UnitOfWork interface {
	// Do executes fn within a transaction boundary. The UnitOfWork passed to
	// fn hands out repositories bound to that transaction. If fn returns an
	// error the transaction is rolled back.
	Do(ctx context.Context, fn func(uow UnitOfWork) error) error

	// Typed repository accessors, bound to the current transaction when
	// called inside Do.
	ClientRepository() (ClientRepository, error)
	AccountRepository() (AccountRepository, error)
	TransactionRepository() (TransactionRepository, error)
	UserRepository() (UserRepository, error)
}
