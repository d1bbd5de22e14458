package ledger

import (
	"time"

	"github.com/google/uuid"

	"github.com/MaeliPalharini/bankledger/pkg/money"
)

// Kind identifies the direction of a transaction.
type Kind string

const (
	// KindDeposit marks a transaction that increased the balance.
	KindDeposit Kind = "deposit"
	// KindWithdrawal marks a transaction that decreased the balance.
	KindWithdrawal Kind = "withdrawal"
)

// Valid reports whether k is one of the known kinds.
func (k Kind) Valid() bool {
	return k == KindDeposit || k == KindWithdrawal
}

// Transaction is one immutable entry of an account's audit trail. Records are
// append-only: never updated, never deleted. Seq is assigned by the store and
// breaks ordering ties between transactions committed within the same
// timestamp granularity.
type Transaction struct {
	ID        uuid.UUID
	AccountID uuid.UUID
	Kind      Kind
	Amount    money.Money
	Balance   money.Money // account balance right after the transaction applied
	Seq       int64
	CreatedAt time.Time
}

// NewTransactionFromData creates a Transaction from raw data. This bypasses
// invariants and is only for store hydration and test fixtures.
func NewTransactionFromData(
	id, accountID uuid.UUID,
	kind Kind,
	amount, balance money.Money,
	seq int64,
	createdAt time.Time,
) *Transaction {
	return &Transaction{
		ID:        id,
		AccountID: accountID,
		Kind:      kind,
		Amount:    amount,
		Balance:   balance,
		Seq:       seq,
		CreatedAt: createdAt,
	}
}
