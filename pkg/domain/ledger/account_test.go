package ledger_test

import (
	"io"
	"log"
	"log/slog"
	"math"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MaeliPalharini/bankledger/pkg/domain/ledger"
	"github.com/MaeliPalharini/bankledger/pkg/money"
)

// TestMain runs before any tests and applies globally for all tests in the package.
func TestMain(m *testing.M) {
	slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
	log.SetOutput(io.Discard)

	os.Exit(m.Run())
}

func TestNewAccount(t *testing.T) {
	t.Parallel()
	require := require.New(t)
	acc, err := ledger.NewAccount().
		WithNumber(1001).
		WithClientID(uuid.New()).
		Build()
	require.NoError(err)
	assert.NotEmpty(t, acc.ID, "account ID should not be empty")
	assert.True(t, acc.Balance.IsZero(), "fresh accounts start at zero")
}

func TestNewAccountValidation(t *testing.T) {
	t.Parallel()

	t.Run("rejects non-positive number", func(t *testing.T) {
		t.Parallel()
		_, err := ledger.NewAccount().WithNumber(0).WithClientID(uuid.New()).Build()
		assert.ErrorIs(t, err, ledger.ErrInvalidAccountNumber)

		_, err = ledger.NewAccount().WithNumber(-7).WithClientID(uuid.New()).Build()
		assert.ErrorIs(t, err, ledger.ErrInvalidAccountNumber)
	})

	t.Run("rejects missing client", func(t *testing.T) {
		t.Parallel()
		_, err := ledger.NewAccount().WithNumber(1001).Build()
		assert.Error(t, err)
	})

	t.Run("rejects negative initial balance", func(t *testing.T) {
		t.Parallel()
		_, err := ledger.NewAccount().
			WithNumber(1001).
			WithClientID(uuid.New()).
			WithBalance(-1).
			Build()
		assert.ErrorIs(t, err, ledger.ErrNegativeInitialBalance)
	})
}

func TestValidateWithdraw(t *testing.T) {
	t.Parallel()
	acc, err := ledger.NewAccount().
		WithNumber(1001).
		WithClientID(uuid.New()).
		WithBalance(10000). // 100.00 BRL
		Build()
	require.NoError(t, err)

	t.Run("successful withdrawal", func(t *testing.T) {
		assert.NoError(t, acc.ValidateWithdraw(money.FromCentavos(5000)))
	})

	t.Run("insufficient funds", func(t *testing.T) {
		err := acc.ValidateWithdraw(money.FromCentavos(20000))
		assert.ErrorIs(t, err, ledger.ErrInsufficientFunds)
	})

	t.Run("non-positive amount", func(t *testing.T) {
		assert.ErrorIs(t, acc.ValidateWithdraw(money.Zero()), ledger.ErrTransactionAmountMustBePositive)
		assert.ErrorIs(t, acc.ValidateWithdraw(money.FromCentavos(-100)), ledger.ErrTransactionAmountMustBePositive)
	})
}

func TestDepositWithdrawRoundTrip(t *testing.T) {
	t.Parallel()
	require := require.New(t)
	acc, err := ledger.NewAccount().
		WithNumber(1001).
		WithClientID(uuid.New()).
		Build()
	require.NoError(err)

	amount := money.FromCentavos(4200)
	require.NoError(acc.Deposit(amount))
	assert.Equal(t, int64(4200), acc.Balance.Centavos())

	require.NoError(acc.Withdraw(amount))
	assert.True(t, acc.Balance.IsZero(), "deposit then withdraw must return to the prior balance")
}

func TestWithdrawLeavesBalanceOnFailure(t *testing.T) {
	t.Parallel()
	acc, err := ledger.NewAccount().
		WithNumber(1001).
		WithClientID(uuid.New()).
		WithBalance(10000).
		Build()
	require.NoError(t, err)

	err = acc.Withdraw(money.FromCentavos(15000))
	assert.ErrorIs(t, err, ledger.ErrInsufficientFunds)
	assert.Equal(t, int64(10000), acc.Balance.Centavos(), "failed withdrawal must not touch the balance")
}

func TestDepositOverflowGuard(t *testing.T) {
	t.Parallel()
	acc, err := ledger.NewAccount().
		WithNumber(1001).
		WithClientID(uuid.New()).
		WithBalance(math.MaxInt64 - 10).
		Build()
	require.NoError(t, err)

	err = acc.Deposit(money.FromCentavos(100))
	assert.ErrorIs(t, err, ledger.ErrDepositAmountExceedsMaxSafeInt)
	assert.Equal(t, int64(math.MaxInt64-10), acc.Balance.Centavos())
}

func TestTransactionKind(t *testing.T) {
	t.Parallel()
	assert.True(t, ledger.KindDeposit.Valid())
	assert.True(t, ledger.KindWithdrawal.Valid())
	assert.False(t, ledger.Kind("transfer").Valid())
}
