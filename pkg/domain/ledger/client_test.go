package ledger_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MaeliPalharini/bankledger/pkg/domain/ledger"
)

func TestNewClient(t *testing.T) {
	t.Parallel()
	require := require.New(t)
	c, err := ledger.NewClient().
		WithCPF("11111111111").
		WithName("Maria Silva").
		WithBirthDate(time.Date(1990, 3, 14, 0, 0, 0, 0, time.UTC)).
		WithAddress("Rua das Flores, 123").
		Build()
	require.NoError(err)
	assert.NotEmpty(t, c.ID)
	assert.Equal(t, "11111111111", c.CPF)
}

func TestNewClientValidation(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		cpf     string
		cliName string
		wantErr error
	}{
		{"too short", "123", "Maria", ledger.ErrInvalidCPF},
		{"too long", "123456789012", "Maria", ledger.ErrInvalidCPF},
		{"non-digits", "1111111111a", "Maria", ledger.ErrInvalidCPF},
		{"empty cpf", "", "Maria", ledger.ErrInvalidCPF},
		{"missing name", "11111111111", "", ledger.ErrClientNameRequired},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := ledger.NewClient().WithCPF(tt.cpf).WithName(tt.cliName).Build()
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestValidCPF(t *testing.T) {
	t.Parallel()
	assert.True(t, ledger.ValidCPF("00000000000"))
	assert.False(t, ledger.ValidCPF("0000000000"))
	assert.False(t, ledger.ValidCPF("00000-00000"))
}
