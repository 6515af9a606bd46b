// Copyright 2020 Aleksandr Demakin. All rights reserved.

// Package fixed implements signed binary fixed-point numbers
// with 48 bits above the binary point and 16 bits below it.
package fixed

import (
	"fmt"
	"math"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	mu "github.com/avdva/fptest/internal/mathutil"
)

const (
	// FracBits is the number of bits below the binary point.
	FracBits = 16
	// FracMask selects the fractional bits of a raw value.
	FracMask = 1<<FracBits - 1
	// Scale is the factor between a raw value and the number it represents.
	Scale = 1 << FracBits
)

const (
	Zero             = Fixed(0)
	One              = Fixed(Scale)
	Max              = Fixed(math.MaxInt64)
	Min              = Fixed(math.MinInt64)
	SmallestPositive = Fixed(1)
	SmallestNegative = Fixed(-1)
)

var (
	scaleDecimal = decimal.New(Scale, 0)
)

type number = int64

// Fixed is a 48.16 fixed-point number: a raw value v represents v/65536.
//   63                                              15              0
//   ________________________________________________|________________
//   iiiiiiiiiiiiiiiiiiiiiiiiiiiiiiiiiiiiiiiiiiiiiiiiffffffffffffffff
//
// There is no range checking, all operations wrap the way int64 does.
type Fixed number

// FromRaw returns a value with the given underlying representation.
func FromRaw(v int64) Fixed {
	return Fixed(v)
}

// FromInt64 returns n as a fixed-point value.
// The result is exact while n fits 48 bits.
func FromInt64(n int64) Fixed {
	return Fixed(n << FracBits)
}

// FromFloat64 splits f into its integer part, truncated toward zero,
// and the remainder. The integer part is shifted above the binary point,
// the remainder is scaled by 2^16 and masked into the low 16 bits.
// Bits below 2^-16 are lost.
//
// For a negative non-integer the remainder is negative too, and masking it
// does not borrow from the integer part, so FromFloat64(-1.5) is -0.5
// and FromFloat64(-0.5) is 0.5.
func FromFloat64(f float64) Fixed {
	above := math.Trunc(f)
	below := f - above
	return Fixed(int64(above)<<FracBits | int64(below*Scale)&FracMask)
}

// FromDecimal returns d rounded down to a multiple of 2^-16.
func FromDecimal(d decimal.Decimal) Fixed {
	return Fixed(d.Mul(scaleDecimal).Floor().IntPart())
}

// FromString parses a decimal number, like "-93.324" or "1e-3".
func FromString(s string) (Fixed, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Zero, errors.Wrapf(err, "parsing %q", s)
	}
	return FromDecimal(d), nil
}

func MustFromString(s string) Fixed {
	f, err := FromString(s)
	if err != nil {
		panic(err)
	}
	return f
}

// Raw returns the underlying representation.
func (f Fixed) Raw() int64 {
	return int64(f)
}

// Int64 returns f shifted right by 16 bits,
// which rounds toward negative infinity, not toward zero.
func (f Fixed) Int64() int64 {
	return int64(f >> FracBits)
}

// Float64 recombines the floored integer part with the fraction bits.
func (f Fixed) Float64() float64 {
	return float64(f>>FracBits) + float64(f&FracMask)/Scale
}

// Decimal returns the exact decimal value of f.
// Any multiple of 2^-16 has at most 16 decimal places.
func (f Fixed) Decimal() decimal.Decimal {
	return decimal.New(int64(f), 0).DivRound(scaleDecimal, FracBits)
}

func (f Fixed) Sign() int {
	return mu.Int64Sign(int64(f))
}

func (f Fixed) Abs() Fixed {
	return Fixed(mu.AbsInt64(int64(f)))
}

func (f Fixed) Cmp(other Fixed) int {
	if f == other {
		return 0
	}
	if f > other {
		return 1
	}
	return -1
}

// String returns the exact decimal representation of f.
func (f Fixed) String() string {
	return f.Decimal().String()
}

// Format implements fmt.Formatter.
// %v and %s print the exact decimal, honoring width and flags,
// %d prints the raw value, float verbs format f.Float64().
func (f Fixed) Format(fs fmt.State, c rune) {
	switch c {
	case 'v', 's':
		fmt.Fprintf(fs, fmt.FormatString(fs, c), f.String())
	case 'd', 'x', 'X', 'b':
		fmt.Fprintf(fs, fmt.FormatString(fs, c), int64(f))
	default:
		fmt.Fprintf(fs, fmt.FormatString(fs, c), f.Float64())
	}
}

// Add returns f+other.
func (f Fixed) Add(other Fixed) Fixed {
	return f + other
}

// Sub returns f-other.
func (f Fixed) Sub(other Fixed) Fixed {
	return f - other
}

// Mul returns the 64-bit product of the raw values shifted right by 16 bits.
// Discarded bits are truncated toward negative infinity, the product wraps
// if it does not fit 64 bits.
func (f Fixed) Mul(other Fixed) Fixed {
	return (f * other) >> FracBits
}

// Div divides the raw values first and shifts the quotient left by 16 bits
// afterwards, so every fractional bit of the quotient is lost:
// 93.324 / 2.2 gives 42, and 0.5 / 1 gives 0.
// The result is only right when f is an exact multiple of other.
// See DivPrecise for a variant that rescales before dividing.
// If other == 0, Div panics with the runtime divide error.
func (f Fixed) Div(other Fixed) Fixed {
	return (f / other) << FracBits
}

// DivPrecise returns (f << 16) / other with a 128-bit dividend,
// truncated toward zero. The quotient wraps if it does not fit 64 bits.
// If other == 0, DivPrecise panics with the runtime divide error.
func (f Fixed) DivPrecise(other Fixed) Fixed {
	return Fixed(mu.QuoShl(int64(f), int64(other), FracBits))
}
