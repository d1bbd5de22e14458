package dto

import (
	"time"

	"github.com/google/uuid"
)

// AccountCreate carries the fields needed to persist a new account.
// Balance is in centavos.
type AccountCreate struct {
	ID       uuid.UUID
	Number   int64
	ClientID uuid.UUID
	Balance  int64
}

// AccountRead is a flat projection of a stored account.
// Balance is in centavos; Formatted is the display rendering in reais.
type AccountRead struct {
	ID        uuid.UUID `json:"id"`
	Number    int64     `json:"number"`
	ClientID  uuid.UUID `json:"client_id"`
	Balance   int64     `json:"balance"`
	Formatted string    `json:"balance_formatted"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
