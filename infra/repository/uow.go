// Package repository provides the gorm-backed repositories, the UnitOfWork
// over gorm transactions, and the error mapping between gorm and domain
// errors.
package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/MaeliPalharini/bankledger/pkg/repository"
)

// UoW provides the transaction boundary and repository access in one
// abstraction. Every repository handed out inside Do is bound to the same
// gorm transaction, so a transaction insert and its balance update commit as
// one atomic unit.
type UoW struct {
	db *gorm.DB
	tx *gorm.DB
}

// NewUoW creates a UoW for the given *gorm.DB.
func NewUoW(db *gorm.DB) *UoW {
	return &UoW{db: db}
}

// Do runs fn inside a store transaction. On error the transaction rolls
// back; the error is returned to the caller unchanged.
func (u *UoW) Do(ctx context.Context, fn func(uow repository.UnitOfWork) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&UoW{db: u.db, tx: tx})
	})
}

// session returns the transaction handle inside Do, the root handle outside.
func (u *UoW) session() *gorm.DB {
	if u.tx != nil {
		return u.tx
	}
	return u.db
}

// ClientRepository implements repository.UnitOfWork.
func (u *UoW) ClientRepository() (repository.ClientRepository, error) {
	return NewClientRepository(u.session()), nil
}

// AccountRepository implements repository.UnitOfWork.
func (u *UoW) AccountRepository() (repository.AccountRepository, error) {
	return NewAccountRepository(u.session()), nil
}

// TransactionRepository implements repository.UnitOfWork.
func (u *UoW) TransactionRepository() (repository.TransactionRepository, error) {
	return NewTransactionRepository(u.session()), nil
}

// UserRepository implements repository.UnitOfWork.
func (u *UoW) UserRepository() (repository.UserRepository, error) {
	return NewUserRepository(u.session()), nil
}
