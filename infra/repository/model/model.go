// Package model defines the gorm models backing the ledger. Relations are
// expressed by foreign-key columns only; no bidirectional object graph is
// hydrated from the store.
package model

import (
	"time"

	"github.com/google/uuid"
)

// Client represents a client record in the database.
type Client struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	CPF       string    `gorm:"type:varchar(11);uniqueIndex;not null"`
	Name      string    `gorm:"not null"`
	BirthDate time.Time
	Address   string
	CreatedAt time.Time
	UpdatedAt time.Time
	Accounts  []Account `gorm:"foreignKey:ClientID"`
}

// TableName specifies the table name for the Client model.
func (Client) TableName() string { return "clients" }

// Account represents an account record in the database.
// Balance is in centavos.
type Account struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Number       int64     `gorm:"uniqueIndex;not null"`
	ClientID     uuid.UUID `gorm:"type:uuid;index;not null"`
	Balance      int64     `gorm:"not null;default:0"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
	Transactions []Transaction `gorm:"foreignKey:AccountID"`
}

// TableName specifies the table name for the Account model.
func (Account) TableName() string { return "accounts" }

// Transaction represents one immutable entry of an account's audit trail.
// Seq is a bigserial: unique and monotonic in commit order, it breaks
// ordering ties between rows sharing a created_at timestamp.
type Transaction struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	AccountID uuid.UUID `gorm:"type:uuid;index;not null"`
	Kind      string    `gorm:"type:varchar(10);not null"`
	Amount    int64     `gorm:"not null"`
	Balance   int64     `gorm:"not null"`
	Seq       int64     `gorm:"autoIncrement;uniqueIndex"`
	CreatedAt time.Time `gorm:"index"`
}

// TableName specifies the table name for the Transaction model.
func (Transaction) TableName() string { return "transactions" }

// User represents an API user record in the database. Password holds the
// bcrypt hash.
type User struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Username  string    `gorm:"type:varchar(50);uniqueIndex;not null"`
	Email     string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	Password  string    `gorm:"not null"`
	Active    bool      `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName specifies the table name for the User model.
func (User) TableName() string { return "users" }
