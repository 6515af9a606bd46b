package bench

import (
	"github.com/avdva/fptest/fixed"
)

func addLoop[T Numeric](acc, x T, n int) T {
	for i := 0; i < n; i++ {
		acc += x
	}
	return acc
}

func subLoop[T Numeric](acc, x T, n int) T {
	for i := 0; i < n; i++ {
		acc -= x
	}
	return acc
}

func mulLoop[T Numeric](acc, x T, n int) T {
	for i := 0; i < n; i++ {
		acc *= x
	}
	return acc
}

func divLoop[T Numeric](acc, x T, n int) T {
	for i := 0; i < n; i++ {
		acc /= x
	}
	return acc
}

func fixedAddLoop(acc, x fixed.Fixed, n int) fixed.Fixed {
	for i := 0; i < n; i++ {
		acc = acc.Add(x)
	}
	return acc
}

func fixedSubLoop(acc, x fixed.Fixed, n int) fixed.Fixed {
	for i := 0; i < n; i++ {
		acc = acc.Sub(x)
	}
	return acc
}

func fixedMulLoop(acc, x fixed.Fixed, n int) fixed.Fixed {
	for i := 0; i < n; i++ {
		acc = acc.Mul(x)
	}
	return acc
}

func fixedDivLoop(acc, x fixed.Fixed, n int) fixed.Fixed {
	for i := 0; i < n; i++ {
		acc = acc.Div(x)
	}
	return acc
}

// Float32Suite times single-precision operations.
func Float32Suite() Suite[float32] {
	return Suite[float32]{
		Name: "float32",
		Ops: []Op[float32]{
			{Add, 23.23543, addLoop[float32]},
			{Sub, 12.21, subLoop[float32]},
			{Mul, 23.23543, mulLoop[float32]},
			{Div, 23.23543, divLoop[float32]},
		},
	}
}

// Float64Suite times double-precision operations.
func Float64Suite() Suite[float64] {
	return Suite[float64]{
		Name: "float64",
		Ops: []Op[float64]{
			{Add, 23.23543, addLoop[float64]},
			{Sub, 12.432, subLoop[float64]},
			{Mul, 23.23543, mulLoop[float64]},
			{Div, 23.23543, divLoop[float64]},
		},
	}
}

// FixedSuite times 48.16 fixed-point operations.
// Div is the lossy fixed.Fixed.Div, so the accumulator ends as a whole number.
func FixedSuite() Suite[fixed.Fixed] {
	return Suite[fixed.Fixed]{
		Name: "fixed",
		Ops: []Op[fixed.Fixed]{
			{Add, fixed.FromFloat64(23.23543), fixedAddLoop},
			{Sub, fixed.FromFloat64(12.23), fixedSubLoop},
			{Mul, fixed.FromFloat64(23.23543), fixedMulLoop},
			{Div, fixed.FromFloat64(23.23543), fixedDivLoop},
		},
	}
}

// Sink keeps the final accumulator of every suite run by RunAll.
var Sink struct {
	Float32 float32
	Float64 float64
	Fixed   fixed.Fixed
}

// RunAll runs the float32, float64 and fixed suites, in that order.
func RunAll(r *Runner) ([]Result, error) {
	var all []Result
	res, f32, err := RunSuite(r, Float32Suite())
	all, Sink.Float32 = append(all, res...), f32
	if err != nil {
		return all, err
	}
	res, f64, err := RunSuite(r, Float64Suite())
	all, Sink.Float64 = append(all, res...), f64
	if err != nil {
		return all, err
	}
	res, fx, err := RunSuite(r, FixedSuite())
	all, Sink.Fixed = append(all, res...), fx
	return all, err
}
