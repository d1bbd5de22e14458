package auth_test

import (
	"context"
	"io"
	"log"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MaeliPalharini/bankledger/pkg/config"
	"github.com/MaeliPalharini/bankledger/pkg/domain"
	"github.com/MaeliPalharini/bankledger/pkg/service/auth"
	"github.com/MaeliPalharini/bankledger/pkg/testutils"
)

func TestMain(m *testing.M) {
	slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
	log.SetOutput(io.Discard)

	os.Exit(m.Run())
}

var jwtCfg = config.Jwt{Secret: "test-secret", Expiry: 30 * time.Minute}

// bcrypt.MinCost keeps the suite fast; production cost comes from config.
var authCfg = config.Auth{BcryptCost: 4}

func newService(t *testing.T) (*auth.Service, *testutils.MemoryStore) {
	t.Helper()
	store := testutils.NewMemoryStore()
	return auth.New(store.UoW(), jwtCfg, authCfg, slog.Default()), store
}

func TestRegisterAndLogin(t *testing.T) {
	t.Parallel()
	svc, _ := newService(t)
	ctx := context.Background()

	u, err := svc.Register(ctx, "maria", "maria@example.com", "s3cret")
	require.NoError(t, err)
	assert.True(t, u.Active)
	assert.NotEqual(t, "s3cret", u.HashedPassword, "password must be stored hashed")

	t.Run("login by username", func(t *testing.T) {
		got, err := svc.Login(ctx, "maria", "s3cret")
		require.NoError(t, err)
		assert.Equal(t, u.ID, got.ID)
	})

	t.Run("login by email", func(t *testing.T) {
		got, err := svc.Login(ctx, "maria@example.com", "s3cret")
		require.NoError(t, err)
		assert.Equal(t, u.ID, got.ID)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login(ctx, "maria", "wrong")
		assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	})

	t.Run("unknown identity", func(t *testing.T) {
		_, err := svc.Login(ctx, "nobody", "s3cret")
		assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	})

	t.Run("duplicate username conflicts", func(t *testing.T) {
		_, err := svc.Register(ctx, "maria", "other@example.com", "s3cret")
		assert.ErrorIs(t, err, domain.ErrAlreadyExists)
	})
}

func TestInactiveUserCannotLogin(t *testing.T) {
	t.Parallel()
	svc, store := newService(t)
	ctx := context.Background()

	u, err := svc.Register(ctx, "maria", "maria@example.com", "s3cret")
	require.NoError(t, err)
	store.Deactivate(u.ID)

	_, err = svc.Login(ctx, "maria", "s3cret")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestTokenRoundTrip(t *testing.T) {
	t.Parallel()
	svc, _ := newService(t)
	ctx := context.Background()

	u, err := svc.Register(ctx, "maria", "maria@example.com", "s3cret")
	require.NoError(t, err)

	signed, err := svc.GenerateToken(u)
	require.NoError(t, err)

	token, err := jwt.Parse(signed, func(t *jwt.Token) (any, error) {
		return []byte(jwtCfg.Secret), nil
	})
	require.NoError(t, err)
	require.True(t, token.Valid)

	p, err := svc.Principal(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, u.ID, p.ID)
	assert.Equal(t, "maria", p.Username)
	assert.NoError(t, p.Verify())
}

func TestPrincipalReflectsDeactivation(t *testing.T) {
	t.Parallel()
	svc, store := newService(t)
	ctx := context.Background()

	u, err := svc.Register(ctx, "maria", "maria@example.com", "s3cret")
	require.NoError(t, err)
	signed, err := svc.GenerateToken(u)
	require.NoError(t, err)

	store.Deactivate(u.ID)

	token, err := jwt.Parse(signed, func(t *jwt.Token) (any, error) {
		return []byte(jwtCfg.Secret), nil
	})
	require.NoError(t, err)

	p, err := svc.Principal(ctx, token)
	require.NoError(t, err)
	assert.ErrorIs(t, p.Verify(), domain.ErrUnauthorized)
}

func TestPrincipalUnknownSubject(t *testing.T) {
	t.Parallel()
	svc, _ := newService(t)
	ctx := context.Background()

	token := jwt.New(jwt.SigningMethodHS256)
	token.Claims.(jwt.MapClaims)["sub"] = "0b0b0b0b-0b0b-0b0b-0b0b-0b0b0b0b0b0b"
	_, err := svc.Principal(ctx, token)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
