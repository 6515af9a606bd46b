package precision

import (
	"fmt"
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/avdva/fptest/fixed"
)

func opByName(name string) Op {
	for _, op := range Ops() {
		if op.Name == name {
			return op
		}
	}
	panic("unknown op " + name)
}

func TestSamples(t *testing.T) {
	a := assert.New(t)
	samples := Samples(rand.New(rand.NewSource(1)), 1000, 50)
	a.Len(samples, 1000)
	for _, s := range samples {
		a.True(math.Abs(s.X) <= 50)
		a.True(math.Abs(s.Y) <= 50)
		a.NotEqual(fixed.Zero, fixed.FromFloat64(s.Y))
	}
	a.Equal(samples, Samples(rand.New(rand.NewSource(1)), 1000, 50))

	for _, s := range Samples(rand.New(rand.NewSource(1)), 10, 1e-9) {
		a.Equal(fixed.SmallestPositive, fixed.FromFloat64(s.Y))
	}

	a.Empty(Samples(rand.New(rand.NewSource(1)), 0, 50))
	a.Empty(Samples(rand.New(rand.NewSource(1)), -1, 50))
}

func TestMeasure(t *testing.T) {
	a := assert.New(t)
	samples := Samples(rand.New(rand.NewSource(2)), 1000, 1000)
	tests := []struct {
		op     string
		maxErr float64
	}{
		{"add", 0},
		{"subtract", 0},
		{"multiply", 1},
		{"divide (precise)", 1},
	}
	for i, test := range tests {
		t.Run(fmt.Sprintf("%d", i), func(t *testing.T) {
			s, err := Measure(opByName(test.op), samples)
			if a.NoError(err) {
				a.Equal(test.op, s.Name)
				a.Equal(len(samples), s.Count)
				a.True(s.Max <= test.maxErr, "%s max error %v", test.op, s.Max)
				a.True(s.Mean <= s.Max)
			}
		})
	}
}

func TestMeasureDivide(t *testing.T) {
	a := assert.New(t)
	samples := Samples(rand.New(rand.NewSource(3)), 1000, 1000)
	div, err := Measure(opByName("divide"), samples)
	if !a.NoError(err) {
		return
	}
	precise, err := Measure(opByName("divide (precise)"), samples)
	if !a.NoError(err) {
		return
	}
	// the fraction of every quotient is dropped, up to one whole unit.
	a.Greater(div.Mean, 1000.0)
	a.True(div.Max <= fixed.Scale)
	a.Greater(div.Mean, 1000*precise.Mean)

	s, err := Measure(opByName("divide"), []Sample{{93.324, 2.2}, {93.324, 2.2}})
	if a.NoError(err) {
		a.InDelta(0.4200542*fixed.Scale, s.Max, 1)
	}
}

func TestRoundTrip(t *testing.T) {
	a := assert.New(t)
	var positive []Sample
	for _, s := range Samples(rand.New(rand.NewSource(4)), 1000, 1000) {
		positive = append(positive, Sample{X: math.Abs(s.X)})
	}
	s, err := RoundTrip(positive)
	if a.NoError(err) {
		a.Equal("conversion", s.Name)
		a.True(s.Max < 1.001, "max error %v", s.Max)
	}

	// -1.5 converts to -0.5.
	s, err = RoundTrip([]Sample{{X: -1.5}, {X: 1.5}})
	if a.NoError(err) {
		a.Equal(float64(fixed.Scale), s.Max)
		a.Equal(float64(fixed.Scale)/2, s.Mean)
	}
}

func TestEmpty(t *testing.T) {
	a := assert.New(t)
	_, err := Measure(opByName("add"), nil)
	a.Error(err)
	_, err = RoundTrip(nil)
	a.Error(err)
}

func TestSummaryString(t *testing.T) {
	a := assert.New(t)
	s := Summary{Name: "multiply", Count: 3, Mean: 0.5, Median: 0.25, P99: 0.75, Max: 1}
	a.Equal("multiply         n=3 mean=0.5000 median=0.2500 p99=0.7500 max=1.0000 ulps", s.String())
}
