package kernel

import (
	"errors"
	"fmt"

	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

// MoneyScale is the number of fractional digits money is stored and rounded with.
const MoneyScale int32 = 2

// ErrMoneyIsNotConstructed is returned when a zero-value Money is validated.
var ErrMoneyIsNotConstructed = errors.New("Money must be created via NewMoney or MoneyFromString")

// Money is a non-negative amount with at most MoneyScale fractional digits.
// Arithmetic is exact (shopspring/decimal); rounding happens only where a
// business rule asks for it, see Percent.
type Money struct {
	amount decimal.Decimal
	guard  guard.ConstructorGuard
}

// NewMoney validates that amount is non-negative and has no sub-cent digits.
func NewMoney(amount decimal.Decimal) (Money, error) {
	if amount.IsNegative() {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("amount", fmt.Errorf("%s is negative", amount))
	}
	if !amount.Equal(amount.Round(MoneyScale)) {
		return Money{}, errs.NewValueIsInvalidErrorWithCause(
			"amount",
			fmt.Errorf("%s has more than %d fractional digits", amount, MoneyScale),
		)
	}
	return Money{amount: amount, guard: guard.NewConstructorGuard()}, nil
}

// MoneyFromString parses a decimal string such as "1000" or "49.99".
func MoneyFromString(s string) (Money, error) {
	amount, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("amount", err)
	}
	return NewMoney(amount)
}

// MustMoney is MoneyFromString for literals known to be valid.
func MustMoney(s string) Money {
	m, err := MoneyFromString(s)
	if err != nil {
		panic(err)
	}
	return m
}

// ZeroMoney returns a constructed zero amount.
func ZeroMoney() Money {
	return Money{amount: decimal.Zero, guard: guard.NewConstructorGuard()}
}

func (m Money) Validate() error {
	return m.guard.Validate(ErrMoneyIsNotConstructed)
}

func (m Money) Amount() decimal.Decimal {
	return m.amount
}

func (m Money) IsPositive() bool {
	return m.amount.IsPositive()
}

func (m Money) IsEqual(other Money) bool {
	return m.amount.Equal(other.amount)
}

// Add returns m + other.
func (m Money) Add(other Money) Money {
	return Money{amount: m.amount.Add(other.amount), guard: guard.NewConstructorGuard()}
}

// Sub returns m - other, failing if the result would be negative.
func (m Money) Sub(other Money) (Money, error) {
	return NewMoney(m.amount.Sub(other.amount))
}

// Percent returns m * rate rounded half away from zero to MoneyScale digits.
func (m Money) Percent(rate decimal.Decimal) Money {
	return Money{amount: m.amount.Mul(rate).Round(MoneyScale), guard: guard.NewConstructorGuard()}
}

// String renders the amount with exactly MoneyScale fractional digits.
func (m Money) String() string {
	return m.amount.StringFixed(MoneyScale)
}
