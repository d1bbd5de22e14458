package ledger

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/MaeliPalharini/bankledger/pkg/domain"
	"github.com/MaeliPalharini/bankledger/pkg/money"
)

var (
	// ErrAccountNotFound is returned when a client has no account to operate on.
	ErrAccountNotFound = fmt.Errorf("%w: account not found", domain.ErrNotFound)

	// ErrInvalidAccountNumber is returned when an account number is not a
	// positive integer.
	ErrInvalidAccountNumber = fmt.Errorf("%w: account number must be a positive integer", domain.ErrValidation)

	// ErrNegativeInitialBalance is returned when an account is opened with a
	// negative balance.
	ErrNegativeInitialBalance = fmt.Errorf("%w: initial balance cannot be negative", domain.ErrValidation)

	// ErrTransactionAmountMustBePositive is returned when a deposit or
	// withdrawal amount is zero or negative.
	ErrTransactionAmountMustBePositive = fmt.Errorf("%w: transaction amount must be positive", domain.ErrValidation)

	// ErrDepositAmountExceedsMaxSafeInt is returned when a deposit would
	// overflow the account balance.
	ErrDepositAmountExceedsMaxSafeInt = errors.New("deposit amount exceeds maximum safe integer value")

	// ErrInsufficientFunds is returned when a withdrawal exceeds the current
	// balance. Distinct from validation errors so callers can branch on it.
	ErrInsufficientFunds = errors.New("insufficient funds")
)

// Account is a client's bank account. It is the aggregate that owns the
// balance-consistency invariant: the balance never goes negative, and it is
// mutated only through Deposit and Withdraw.
type Account struct {
	ID        uuid.UUID
	Number    int64
	ClientID  uuid.UUID
	Balance   money.Money
	CreatedAt time.Time
	UpdatedAt time.Time
}

// AccountBuilder provides a fluent API for constructing Account instances.
type AccountBuilder struct {
	id        uuid.UUID
	number    int64
	clientID  uuid.UUID
	balance   int64
	createdAt time.Time
	updatedAt time.Time
}

// NewAccount creates an AccountBuilder with a fresh UUID and zero balance.
func NewAccount() *AccountBuilder {
	return &AccountBuilder{
		id:        uuid.New(),
		createdAt: time.Now().UTC(),
	}
}

// WithID sets the ID. Used when hydrating an account from the store.
func (b *AccountBuilder) WithID(id uuid.UUID) *AccountBuilder {
	b.id = id
	return b
}

// WithNumber sets the account number. Mandatory, must be positive.
func (b *AccountBuilder) WithNumber(number int64) *AccountBuilder {
	b.number = number
	return b
}

// WithClientID sets the owning client. Mandatory.
func (b *AccountBuilder) WithClientID(clientID uuid.UUID) *AccountBuilder {
	b.clientID = clientID
	return b
}

// WithBalance sets the balance in centavos. Used for store hydration and for
// opening accounts with a non-zero initial balance.
func (b *AccountBuilder) WithBalance(centavos int64) *AccountBuilder {
	b.balance = centavos
	return b
}

// WithCreatedAt sets the creation timestamp. Used for store hydration.
func (b *AccountBuilder) WithCreatedAt(t time.Time) *AccountBuilder {
	b.createdAt = t
	return b
}

// WithUpdatedAt sets the last-updated timestamp. Used for store hydration.
func (b *AccountBuilder) WithUpdatedAt(t time.Time) *AccountBuilder {
	b.updatedAt = t
	return b
}

// Build validates the invariants and returns the Account.
func (b *AccountBuilder) Build() (*Account, error) {
	if b.number <= 0 {
		return nil, ErrInvalidAccountNumber
	}
	if b.clientID == uuid.Nil {
		return nil, fmt.Errorf("%w: clientID is required", domain.ErrValidation)
	}
	if b.balance < 0 {
		return nil, ErrNegativeInitialBalance
	}
	return &Account{
		ID:        b.id,
		Number:    b.number,
		ClientID:  b.clientID,
		Balance:   money.FromCentavos(b.balance),
		CreatedAt: b.createdAt,
		UpdatedAt: b.updatedAt,
	}, nil
}

// ValidateDeposit checks the business invariants for a deposit of amount.
func (a *Account) ValidateDeposit(amount money.Money) error {
	if !amount.IsPositive() {
		return ErrTransactionAmountMustBePositive
	}
	if _, err := a.Balance.Add(amount); err != nil {
		return ErrDepositAmountExceedsMaxSafeInt
	}
	return nil
}

// ValidateWithdraw checks the business invariants for a withdrawal of amount.
func (a *Account) ValidateWithdraw(amount money.Money) error {
	if !amount.IsPositive() {
		return ErrTransactionAmountMustBePositive
	}
	if amount.GreaterThan(a.Balance) {
		return ErrInsufficientFunds
	}
	return nil
}

// Deposit increases the balance by amount after validating invariants.
func (a *Account) Deposit(amount money.Money) error {
	if err := a.ValidateDeposit(amount); err != nil {
		return err
	}
	newBalance, err := a.Balance.Add(amount)
	if err != nil {
		return ErrDepositAmountExceedsMaxSafeInt
	}
	a.Balance = newBalance
	a.UpdatedAt = time.Now().UTC()
	return nil
}

// Withdraw decreases the balance by amount after validating invariants.
// The sufficiency check and the decrement happen on the same in-memory
// snapshot; the caller is responsible for holding the account's critical
// section so concurrent withdrawals cannot interleave between them.
func (a *Account) Withdraw(amount money.Money) error {
	if err := a.ValidateWithdraw(amount); err != nil {
		return err
	}
	newBalance, err := a.Balance.Subtract(amount)
	if err != nil {
		return err
	}
	if newBalance.IsNegative() {
		return ErrInsufficientFunds
	}
	a.Balance = newBalance
	a.UpdatedAt = time.Now().UTC()
	return nil
}
