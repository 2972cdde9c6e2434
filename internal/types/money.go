// README: Common money value object used across modules.
package types

import "math"

// Money is an amount in the currency's minor unit (paise for INR), so
// two-fraction-digit amounts stay exact.
type Money struct {
	Amount   int64
	Currency string
}

// DefaultCurrency is the store currency.
const DefaultCurrency = "INR"

// RupeesToMoney converts a decimal major-unit amount to Money.
func RupeesToMoney(v float64) Money {
	return Money{Amount: int64(math.Round(v * 100)), Currency: DefaultCurrency}
}

// Rupees returns the amount in major units for JSON responses.
func (m Money) Rupees() float64 {
	return float64(m.Amount) / 100
}

// Add returns the sum of two amounts. The receiver's currency wins when the
// other side carries none.
func (m Money) Add(o Money) Money {
	cur := m.Currency
	if cur == "" {
		cur = o.Currency
	}
	return Money{Amount: m.Amount + o.Amount, Currency: cur}
}
