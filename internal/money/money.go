// Package money provides exact currency arithmetic.
//
// Amounts cross package boundaries as decimal dollars (float64) but every
// operation converts to integer cents first, so chained arithmetic never
// accumulates binary floating-point drift.
package money

import (
	"errors"
	"math"
)

var ErrDivisionByZero = errors.New("money: division by zero")

// ToCents converts decimal dollars to integer cents, rounding half away
// from zero. NaN and infinities map to 0.
func ToCents(dollars float64) int64 {
	if math.IsNaN(dollars) || math.IsInf(dollars, 0) {
		return 0
	}

	return int64(math.Round(dollars * 100))
}

// ToDollars converts integer cents back to decimal dollars.
func ToDollars(cents int64) float64 {
	return float64(cents) / 100
}

// Add returns a + b, exact to the cent.
func Add(a, b float64) float64 {
	return ToDollars(ToCents(a) + ToCents(b))
}

// Subtract returns a - b, exact to the cent.
func Subtract(a, b float64) float64 {
	return ToDollars(ToCents(a) - ToCents(b))
}

// Multiply scales an amount by a factor, rounding the result to the
// nearest cent after the multiplication.
func Multiply(amount, factor float64) float64 {
	return ToDollars(MultiplyCents(ToCents(amount), factor))
}

// Divide splits an amount by a divisor. A zero divisor is a programming
// error and returns ErrDivisionByZero.
func Divide(amount, divisor float64) (float64, error) {
	if divisor == 0 {
		return 0, ErrDivisionByZero
	}

	return ToDollars(int64(math.Round(float64(ToCents(amount)) / divisor))), nil
}

// Sum totals a list of dollar amounts in cents and converts back once,
// so per-element dollar rounding cannot compound.
func Sum(amounts []float64) float64 {
	var cents int64
	for _, a := range amounts {
		cents += ToCents(a)
	}

	return ToDollars(cents)
}

// RoundToCent normalizes an amount to the nearest representable cent.
func RoundToCent(amount float64) float64 {
	return ToDollars(ToCents(amount))
}

// Equal reports whether two amounts are the same at cent granularity.
// Raw float comparison is never correct for currency.
func Equal(a, b float64) bool {
	return ToCents(a) == ToCents(b)
}

// MultiplyCents scales a cent amount by a factor, rounding to the
// nearest cent.
func MultiplyCents(cents int64, factor float64) int64 {
	if math.IsNaN(factor) || math.IsInf(factor, 0) {
		return 0
	}

	return int64(math.Round(float64(cents) * factor))
}

// SumCents totals a list of cent amounts.
func SumCents(amounts []int64) int64 {
	var total int64
	for _, a := range amounts {
		total += a
	}

	return total
}
