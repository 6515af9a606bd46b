// Package precision measures how far fixed-point results are from the exact
// results of the same operations. Errors are expressed in ulps,
// the 2^-16 step between two adjacent fixed-point values.
package precision

import (
	"fmt"
	"math/rand"

	"github.com/cockroachdb/apd/v3"
	"github.com/montanaflynn/stats"
	"github.com/pkg/errors"

	"github.com/avdva/fptest/fixed"
)

// exact values of 48.16 numbers have at most 31 digits, their products 62.
const digits = 80

var (
	ctx   = apd.BaseContext.WithPrecision(digits)
	scale = apd.New(fixed.Scale, 0)
)

// Sample is a pair of operands.
type Sample struct {
	X, Y float64
}

// Samples returns n pairs drawn uniformly from [-max, max].
// Y never converts to a zero fixed-point value, so every sample can be a divisor.
// It returns nil if n is not positive.
func Samples(rnd *rand.Rand, n int, max float64) []Sample {
	if n <= 0 {
		return nil
	}
	samples := make([]Sample, n)
	for i := range samples {
		s := Sample{X: (rnd.Float64()*2 - 1) * max, Y: (rnd.Float64()*2 - 1) * max}
		if fixed.FromFloat64(s.Y) == fixed.Zero {
			s.Y = 1.0 / fixed.Scale
		}
		samples[i] = s
	}
	return samples
}

// Op is a fixed-point operation along with its exact counterpart.
type Op struct {
	Name  string
	Apply func(x, y fixed.Fixed) fixed.Fixed
	exact func(d, x, y *apd.Decimal) (apd.Condition, error)
}

// Ops returns add, subtract, multiply, divide and the precise divide.
func Ops() []Op {
	return []Op{
		{"add", fixed.Fixed.Add, ctx.Add},
		{"subtract", fixed.Fixed.Sub, ctx.Sub},
		{"multiply", fixed.Fixed.Mul, ctx.Mul},
		{"divide", fixed.Fixed.Div, ctx.Quo},
		{"divide (precise)", fixed.Fixed.DivPrecise, ctx.Quo},
	}
}

// Summary describes the error distribution of an operation, in ulps.
type Summary struct {
	Name                   string
	Count                  int
	Mean, Median, P99, Max float64
}

func (s Summary) String() string {
	return fmt.Sprintf("%-16s n=%d mean=%.4f median=%.4f p99=%.4f max=%.4f ulps",
		s.Name, s.Count, s.Mean, s.Median, s.P99, s.Max)
}

// Measure converts every sample to fixed-point operands and compares the result
// of op with the exact result for the same operands, so conversion errors
// are not counted.
func Measure(op Op, samples []Sample) (Summary, error) {
	errs := make([]float64, 0, len(samples))
	for _, s := range samples {
		x, y := fixed.FromFloat64(s.X), fixed.FromFloat64(s.Y)
		ex, err := exact(x)
		if err != nil {
			return Summary{Name: op.Name}, err
		}
		ey, err := exact(y)
		if err != nil {
			return Summary{Name: op.Name}, err
		}
		var want apd.Decimal
		if _, err := op.exact(&want, ex, ey); err != nil {
			return Summary{Name: op.Name}, errors.Wrapf(err, "%s(%v, %v)", op.Name, x, y)
		}
		e, err := ulps(op.Apply(x, y), &want)
		if err != nil {
			return Summary{Name: op.Name}, errors.Wrapf(err, "%s(%v, %v)", op.Name, x, y)
		}
		errs = append(errs, e)
	}
	return summarize(op.Name, errs)
}

// RoundTrip compares fixed.FromFloat64(s.X) with s.X for every sample.
func RoundTrip(samples []Sample) (Summary, error) {
	const name = "conversion"
	errs := make([]float64, 0, len(samples))
	for _, s := range samples {
		var want apd.Decimal
		if _, err := want.SetFloat64(s.X); err != nil {
			return Summary{Name: name}, errors.Wrapf(err, "converting %v", s.X)
		}
		e, err := ulps(fixed.FromFloat64(s.X), &want)
		if err != nil {
			return Summary{Name: name}, errors.Wrapf(err, "converting %v", s.X)
		}
		errs = append(errs, e)
	}
	return summarize(name, errs)
}

// exact returns raw/2^16 as a decimal.
func exact(f fixed.Fixed) (*apd.Decimal, error) {
	d := new(apd.Decimal)
	if _, err := ctx.Quo(d, apd.New(f.Raw(), 0), scale); err != nil {
		return nil, errors.Wrapf(err, "exact value of %d", f.Raw())
	}
	return d, nil
}

// ulps returns |got - want| * 2^16.
func ulps(got fixed.Fixed, want *apd.Decimal) (float64, error) {
	g, err := exact(got)
	if err != nil {
		return 0, err
	}
	var diff apd.Decimal
	if _, err := ctx.Sub(&diff, g, want); err != nil {
		return 0, err
	}
	diff.Abs(&diff)
	if _, err := ctx.Mul(&diff, &diff, scale); err != nil {
		return 0, err
	}
	return diff.Float64()
}

func summarize(name string, errs []float64) (Summary, error) {
	s := Summary{Name: name, Count: len(errs)}
	var err error
	if s.Mean, err = stats.Mean(errs); err != nil {
		return s, errors.Wrapf(err, "%s: mean", name)
	}
	if s.Median, err = stats.Median(errs); err != nil {
		return s, errors.Wrapf(err, "%s: median", name)
	}
	if s.P99, err = stats.Percentile(errs, 99); err != nil {
		return s, errors.Wrapf(err, "%s: percentile", name)
	}
	if s.Max, err = stats.Max(errs); err != nil {
		return s, errors.Wrapf(err, "%s: max", name)
	}
	return s, nil
}
