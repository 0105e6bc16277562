package kernel

import (
	"fmt"

	"freightflow/internal/pkg/errs"

	"freightflow/internal/pkg/guard"
)

// ErrMoneyIsNotConstructed is returned when a Money value was not created
// through NewMoney.
var ErrMoneyIsNotConstructed = errs.NewValueIsRequiredError("Money must be created via NewMoney")

// Money is a value object representing an amount in a specific currency.
// Amounts are carried as float64 because quotes arrive from supplier portals
// as decimal prices; all derived amounts (customer price, margin) are computed
// once at selection time and then stored, never re-derived.
//
// Money is immutable: arithmetic methods return new values.
//
// Example:
//
//	price, err := kernel.NewMoney(1000, "EUR")
//	if err != nil {
//	    // handle error
//	}
//	customerPrice := price.MultiplyBy(1.10)
type Money struct {
	amount   float64
	currency string

	guard guard.ConstructorGuard
}

// NewMoney creates a Money value. The amount must be non-negative and the
// currency must be a non-empty ISO 4217 style code such as "EUR".
func NewMoney(amount float64, currency string) (Money, error) {
	if amount < 0 {
		return Money{}, errs.NewValueIsInvalidErrorWithCause(
			"amount",
			fmt.Errorf("%f is negative", amount),
		)
	}

	if currency == "" {
		return Money{}, errs.NewValueIsRequiredError("currency")
	}

	return Money{
		amount:   amount,
		currency: currency,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the Money value was created through NewMoney.
func (m Money) Validate() error {
	return m.guard.Validate(ErrMoneyIsNotConstructed)
}

// Amount returns the numeric amount.
func (m Money) Amount() float64 {
	return m.amount
}

// Currency returns the currency code.
func (m Money) Currency() string {
	return m.currency
}

// MultiplyBy returns a new Money scaled by the given non-negative factor.
// The currency is preserved.
func (m Money) MultiplyBy(factor float64) (Money, error) {
	if err := m.Validate(); err != nil {
		return Money{}, err
	}

	return NewMoney(m.amount*factor, m.currency)
}

// IsEqual compares two Money values by amount and currency.
func (m Money) IsEqual(other Money) bool {
	return m.amount == other.amount && m.currency == other.currency
}

// String renders the value as "1000.00 EUR".
func (m Money) String() string {
	return fmt.Sprintf("%.2f %s", m.amount, m.currency)
}
