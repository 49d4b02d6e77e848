package shared

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMoneyDefaultsCurrency(t *testing.T) {
	m := NewMoney(1050, "")
	assert.Equal(t, int64(1050), m.Amount())
	assert.Equal(t, DefaultCurrency, m.Currency())
}

func TestMoneyFromFloatRoundsToCents(t *testing.T) {
	tests := []struct {
		name   string
		amount float64
		cents  int64
	}{
		{"whole", 10.0, 1000},
		{"two decimals", 10.55, 1055},
		{"rounds half up", 10.555, 1056},
		{"rounds down", 10.554, 1055},
		{"zero", 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := MoneyFromFloat(tt.amount, "BRL")
			assert.Equal(t, tt.cents, m.Amount())
		})
	}
}

func TestMoneyFloatRoundTrip(t *testing.T) {
	m := NewMoney(1999, "BRL")
	assert.Equal(t, 19.99, m.Float())
}

func TestMoneyAdd(t *testing.T) {
	a := NewMoney(1000, "BRL")
	b := NewMoney(550, "BRL")

	sum, err := a.Add(b)
	require.NoError(t, err)
	assert.Equal(t, int64(1550), sum.Amount())
}

func TestMoneyAddCurrencyMismatch(t *testing.T) {
	a := NewMoney(1000, "BRL")
	b := NewMoney(1000, "USD")

	_, err := a.Add(b)
	assert.ErrorIs(t, err, ErrCurrencyMismatch)
}

func TestMoneyAddOverflow(t *testing.T) {
	a := NewMoney(math.MaxInt64, "BRL")
	b := NewMoney(1, "BRL")

	_, err := a.Add(b)
	assert.ErrorIs(t, err, ErrMoneyOverflow)
}

func TestMoneyMultiply(t *testing.T) {
	m := NewMoney(1000, "BRL")

	product, err := m.Multiply(3)
	require.NoError(t, err)
	assert.Equal(t, int64(3000), product.Amount())
}

func TestMoneyMultiplyByZero(t *testing.T) {
	m := NewMoney(1000, "BRL")

	product, err := m.Multiply(0)
	require.NoError(t, err)
	assert.Equal(t, int64(0), product.Amount())
	assert.Equal(t, "BRL", product.Currency())
}

func TestMoneyMultiplyOverflow(t *testing.T) {
	m := NewMoney(math.MaxInt64/2, "BRL")

	_, err := m.Multiply(3)
	assert.ErrorIs(t, err, ErrMoneyOverflow)
}

func TestMoneyEquals(t *testing.T) {
	assert.True(t, NewMoney(100, "BRL").Equals(NewMoney(100, "BRL")))
	assert.False(t, NewMoney(100, "BRL").Equals(NewMoney(101, "BRL")))
	assert.False(t, NewMoney(100, "BRL").Equals(NewMoney(100, "USD")))
}

func TestMoneyString(t *testing.T) {
	assert.Equal(t, "10.50 BRL", NewMoney(1050, "BRL").String())
}
