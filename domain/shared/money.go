package shared

import (
	"errors"
	"fmt"
	"math"
)

// Money value object. Amounts are stored in minor currency units (cents)
// to keep line-item arithmetic exact; conversion to a 2-decimal float
// happens only at external payment boundaries.
type Money struct {
	amount   int64
	currency string
}

// DefaultCurrency is used when the catalog does not qualify a price.
const DefaultCurrency = "BRL"

var (
	ErrCurrencyMismatch = errors.New("cannot combine money with different currencies")
	ErrMoneyOverflow    = errors.New("money arithmetic overflow")
	ErrNegativeAmount   = errors.New("money amount cannot be negative")
)

// NewMoney creates a Money value from an amount in minor units.
func NewMoney(amount int64, currency string) Money {
	if currency == "" {
		currency = DefaultCurrency
	}
	return Money{amount: amount, currency: currency}
}

// MoneyFromFloat converts a major-unit amount (e.g. 10.50) to Money,
// rounding to the nearest cent.
func MoneyFromFloat(amount float64, currency string) Money {
	return NewMoney(int64(math.Round(amount*100)), currency)
}

func (m Money) Amount() int64    { return m.amount }
func (m Money) Currency() string { return m.currency }

// Float returns the amount in major units, exact to 2 decimal places.
func (m Money) Float() float64 {
	return float64(m.amount) / 100
}

// IsNegative reports whether the amount is below zero.
func (m Money) IsNegative() bool { return m.amount < 0 }

// Add returns the sum of two amounts of the same currency.
func (m Money) Add(other Money) (Money, error) {
	if m.currency != other.currency {
		return Money{}, ErrCurrencyMismatch
	}
	sum := m.amount + other.amount
	if (other.amount > 0 && sum < m.amount) || (other.amount < 0 && sum > m.amount) {
		return Money{}, ErrMoneyOverflow
	}
	return Money{amount: sum, currency: m.currency}, nil
}

// Multiply scales the amount by a quantity with overflow checking.
func (m Money) Multiply(quantity int) (Money, error) {
	if quantity == 0 || m.amount == 0 {
		return Money{amount: 0, currency: m.currency}, nil
	}
	product := m.amount * int64(quantity)
	if product/int64(quantity) != m.amount {
		return Money{}, ErrMoneyOverflow
	}
	return Money{amount: product, currency: m.currency}, nil
}

// Equals compares amount and currency.
func (m Money) Equals(other Money) bool {
	return m.amount == other.amount && m.currency == other.currency
}

func (m Money) String() string {
	return fmt.Sprintf("%.2f %s", m.Float(), m.currency)
}
