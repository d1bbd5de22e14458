package dto

import (
	"time"

	"github.com/google/uuid"
)

// TransactionCreate carries the fields needed to persist a new transaction.
// Amount and Balance are in centavos; Seq is assigned by the store.
type TransactionCreate struct {
	ID        uuid.UUID
	AccountID uuid.UUID
	Kind      string
	Amount    int64
	Balance   int64
	CreatedAt time.Time
}

// TransactionRead is a flat projection of a stored transaction.
type TransactionRead struct {
	ID        uuid.UUID `json:"id"`
	AccountID uuid.UUID `json:"account_id"`
	Kind      string    `json:"kind"`
	Amount    int64     `json:"amount"`
	Balance   int64     `json:"balance"`
	Formatted string    `json:"amount_formatted"`
	Seq       int64     `json:"-"`
	CreatedAt time.Time `json:"created_at"`
}
