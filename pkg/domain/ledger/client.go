// Package ledger contains the domain entities of the banking ledger: Client,
// Account and Transaction, along with the business rules that guard balance
// mutation.
package ledger

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/MaeliPalharini/bankledger/pkg/domain"
)

var (
	// ErrInvalidCPF is returned when a client identifier is not exactly
	// eleven digits.
	ErrInvalidCPF = fmt.Errorf("%w: cpf must be exactly 11 digits", domain.ErrValidation)

	// ErrClientNameRequired is returned when a client is created without a
	// display name.
	ErrClientNameRequired = fmt.Errorf("%w: client name is required", domain.ErrValidation)
)

// Client is a registered bank client. The CPF is the natural key: unique
// across the system and immutable after creation.
type Client struct {
	ID        uuid.UUID
	CPF       string
	Name      string
	BirthDate time.Time
	Address   string
	CreatedAt time.Time
}

// ClientBuilder provides a fluent API for constructing Client instances so
// that only valid clients leave this package.
type ClientBuilder struct {
	id        uuid.UUID
	cpf       string
	name      string
	birthDate time.Time
	address   string
	createdAt time.Time
}

// NewClient creates a ClientBuilder with a fresh UUID.
func NewClient() *ClientBuilder {
	return &ClientBuilder{
		id:        uuid.New(),
		createdAt: time.Now().UTC(),
	}
}

// WithID sets the ID. Used when hydrating a client from the store.
func (b *ClientBuilder) WithID(id uuid.UUID) *ClientBuilder {
	b.id = id
	return b
}

// WithCPF sets the client identifier. Mandatory.
func (b *ClientBuilder) WithCPF(cpf string) *ClientBuilder {
	b.cpf = cpf
	return b
}

// WithName sets the display name. Mandatory.
func (b *ClientBuilder) WithName(name string) *ClientBuilder {
	b.name = name
	return b
}

// WithBirthDate sets the date of birth.
func (b *ClientBuilder) WithBirthDate(t time.Time) *ClientBuilder {
	b.birthDate = t
	return b
}

// WithAddress sets the address.
func (b *ClientBuilder) WithAddress(address string) *ClientBuilder {
	b.address = address
	return b
}

// WithCreatedAt sets the creation timestamp. Used for store hydration.
func (b *ClientBuilder) WithCreatedAt(t time.Time) *ClientBuilder {
	b.createdAt = t
	return b
}

// Build validates the invariants and returns the Client.
func (b *ClientBuilder) Build() (*Client, error) {
	if !ValidCPF(b.cpf) {
		return nil, ErrInvalidCPF
	}
	if b.name == "" {
		return nil, ErrClientNameRequired
	}
	return &Client{
		ID:        b.id,
		CPF:       b.cpf,
		Name:      b.name,
		BirthDate: b.birthDate,
		Address:   b.address,
		CreatedAt: b.createdAt,
	}, nil
}

// ValidCPF reports whether s has the shape of a client identifier:
// exactly eleven ASCII digits. Check-digit verification is out of scope.
func ValidCPF(s string) bool {
	if len(s) != 11 {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
