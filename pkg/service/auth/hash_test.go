package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MaeliPalharini/bankledger/pkg/service/auth"
)

func TestHashPassword(t *testing.T) {
	t.Parallel()
	hash, err := auth.HashPassword("s3cret", 4)
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret", hash)
	assert.True(t, auth.CheckPasswordHash("s3cret", hash))
	assert.False(t, auth.CheckPasswordHash("wrong", hash))
}

func TestCheckPasswordHashMalformed(t *testing.T) {
	t.Parallel()
	assert.False(t, auth.CheckPasswordHash("s3cret", "not-a-bcrypt-hash"))
}
