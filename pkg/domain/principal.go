// Package domain holds types and errors shared by every layer of the ledger.
package domain

import (
	"fmt"

	"github.com/google/uuid"
)

// Principal is a verified caller identity, produced by the authentication
// gateway and consumed by the ledger engine. The ledger never inspects
// credentials; it only requires that the principal exists and is active.
type Principal struct {
	ID       uuid.UUID
	Username string
	Active   bool
}

// Verify returns ErrUnauthorized if the principal is absent or inactive.
// Every ledger operation calls this before touching the store.
func (p Principal) Verify() error {
	if p.Username == "" {
		return fmt.Errorf("%w: missing principal", ErrUnauthorized)
	}
	if !p.Active {
		return fmt.Errorf("%w: inactive principal %q", ErrUnauthorized, p.Username)
	}
	return nil
}
