package bench

import (
	"bytes"
	"fmt"
	"io"

	"github.com/avdva/fptest/fixed"
)

// Demo writes three lines showing a conversion round trip of 1.42,
// multiplication and division of 93.324 by it, and 93.324 / 2.2,
// where fixed.Fixed.Div drops the whole fraction.
func Demo(w io.Writer) error {
	var b bytes.Buffer
	a := fixed.FromFloat64(1.42)
	fmt.Fprintf(&b, "Started with 1.42, converted to %d, then back to %f\n", a.Raw(), a.Float64())
	x := fixed.FromFloat64(93.324)
	fmt.Fprintf(&b, "Multiplied and divided by 93.324, got %f and %f\n", x.Mul(a).Float64(), x.Div(a).Float64())
	q := x.Div(fixed.FromFloat64(2.2))
	fmt.Fprintf(&b, "93.324 / 2.2 = %f\n", q.Float64())
	if _, err := b.WriteTo(w); err != nil {
		return err
	}
	return flush(w)
}
