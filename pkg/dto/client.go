// Package dto defines the plain-data shapes exchanged between services and
// repositories. Write DTOs carry everything the store needs to persist a
// record; read DTOs are flat projections with no object graph.
package dto

import (
	"time"

	"github.com/google/uuid"
)

// ClientCreate carries the fields needed to persist a new client.
type ClientCreate struct {
	ID        uuid.UUID
	CPF       string
	Name      string
	BirthDate time.Time
	Address   string
}

// ClientRead is a flat projection of a stored client.
type ClientRead struct {
	ID        uuid.UUID `json:"id"`
	CPF       string    `json:"cpf"`
	Name      string    `json:"name"`
	BirthDate time.Time `json:"birth_date"`
	Address   string    `json:"address"`
	CreatedAt time.Time `json:"created_at"`
}
