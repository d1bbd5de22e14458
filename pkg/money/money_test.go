package money_test

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/MaeliPalharini/bankledger/pkg/money"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		input   string
		want    int64
		wantErr error
	}{
		{"integer reais", "100", 10000, nil},
		{"two decimals", "99.90", 9990, nil},
		{"one decimal", "0.5", 50, nil},
		{"negative", "-0.01", -1, nil},
		{"zero", "0", 0, nil},
		{"sub-centavo precision", "10.005", 0, money.ErrInvalidAmount},
		{"not a number", "dez reais", 0, money.ErrInvalidAmount},
		{"empty", "", 0, money.ErrInvalidAmount},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			m, err := money.Parse(tt.input)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, m.Centavos())
		})
	}
}

func TestFromFloat(t *testing.T) {
	t.Parallel()
	t.Run("exact conversion", func(t *testing.T) {
		t.Parallel()
		m, err := money.FromFloat(100.10)
		require.NoError(t, err)
		assert.Equal(t, int64(10010), m.Centavos())
	})
	t.Run("rejects NaN", func(t *testing.T) {
		t.Parallel()
		_, err := money.FromFloat(math.NaN())
		assert.ErrorIs(t, err, money.ErrInvalidAmount)
	})
	t.Run("rejects infinity", func(t *testing.T) {
		t.Parallel()
		_, err := money.FromFloat(math.Inf(1))
		assert.ErrorIs(t, err, money.ErrInvalidAmount)
	})
	t.Run("rejects sub-centavo precision", func(t *testing.T) {
		t.Parallel()
		_, err := money.FromFloat(10.005)
		assert.ErrorIs(t, err, money.ErrInvalidAmount)
	})
}

func TestAddSubtractRoundTrip(t *testing.T) {
	t.Parallel()
	base := money.FromCentavos(12345)
	delta := money.FromCentavos(678)

	sum, err := base.Add(delta)
	require.NoError(t, err)
	back, err := sum.Subtract(delta)
	require.NoError(t, err)
	assert.True(t, back.Equals(base), "add then subtract must round-trip exactly")
}

func TestAddOverflow(t *testing.T) {
	t.Parallel()
	almost := money.FromCentavos(math.MaxInt64)
	_, err := almost.Add(money.FromCentavos(1))
	assert.ErrorIs(t, err, money.ErrAmountExceedsMaxSafeInt)
}

func TestSubtractMayGoNegative(t *testing.T) {
	t.Parallel()
	m, err := money.FromCentavos(100).Subtract(money.FromCentavos(150))
	require.NoError(t, err)
	assert.True(t, m.IsNegative())
	assert.Equal(t, int64(-50), m.Centavos())
}

func TestString(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "100.00", money.FromCentavos(10000).String())
	assert.Equal(t, "0.05", money.FromCentavos(5).String())
	assert.Equal(t, "-1.50", money.FromCentavos(-150).String())
}

func TestJSONRoundTrip(t *testing.T) {
	t.Parallel()
	m := money.FromCentavos(9990)
	b, err := json.Marshal(m)
	require.NoError(t, err)
	assert.JSONEq(t, `{"amount":9990,"currency":"BRL","formatted":"99.90"}`, string(b))

	var got money.Money
	require.NoError(t, json.Unmarshal(b, &got))
	assert.True(t, got.Equals(m))
}
