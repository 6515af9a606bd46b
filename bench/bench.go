// Copyright 2020 Aleksandr Demakin. All rights reserved.

// Package bench times long loops of arithmetic operations applied to a single
// accumulator and reports their throughput.
package bench

import (
	"fmt"
	"io"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/exp/constraints"
)

// Count is the number of iterations in every timed block.
const Count = 100_000_000

// OpKind is one of the four timed operations.
type OpKind int

const (
	Add OpKind = iota
	Sub
	Mul
	Div
)

var opNames = [...]struct {
	name, plural string
}{
	{"add", "adds"},
	{"subtract", "subtracts"},
	{"multiply", "multiplies"},
	{"divide", "divides"},
}

func (k OpKind) String() string {
	if k < 0 || int(k) >= len(opNames) {
		return fmt.Sprintf("OpKind(%d)", int(k))
	}
	return opNames[k].name
}

func (k OpKind) plural() string {
	if k < 0 || int(k) >= len(opNames) {
		return k.String()
	}
	return opNames[k].plural
}

// Numeric is any type the harness can time: native floats and integers,
// and types defined over them, like fixed.Fixed.
type Numeric interface {
	constraints.Float | constraints.Signed
}

// Op is a timed operation. Loop applies it n times, acc = acc op operand,
// and returns the accumulator. The whole loop is a single call, so the timed
// block holds nothing but the operation itself.
type Op[T Numeric] struct {
	Kind    OpKind
	Operand T
	Loop    func(acc, operand T, n int) T
}

// Suite is a named representation with the operations to time, in order.
// All operations of a suite share one accumulator, starting at zero.
type Suite[T Numeric] struct {
	Name string
	Ops  []Op[T]
}

// Clock is a source of time readings.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now()
}

// SystemClock reads time.Now, whose monotonic reading is used for durations.
var SystemClock Clock = systemClock{}

// Runner runs suites and writes a report line after every timed block.
// If Out has a Flush() error method, it is flushed after each line.
type Runner struct {
	Count int
	Clock Clock
	Out   io.Writer
}

// NewRunner returns a runner doing Count iterations per block with the system clock.
func NewRunner(w io.Writer) *Runner {
	return &Runner{Count: Count, Clock: SystemClock, Out: w}
}

type flusher interface {
	Flush() error
}

// Result is the measurement of a single timed block.
type Result struct {
	Suite   string
	Kind    OpKind
	Count   int
	Elapsed time.Duration
}

// Seconds returns the elapsed time in seconds.
func (r Result) Seconds() float64 {
	return r.Elapsed.Seconds()
}

// Throughput returns operations per second.
func (r Result) Throughput() float64 {
	return float64(r.Count) / r.Seconds()
}

func (r Result) String() string {
	return fmt.Sprintf("%s: did %d %s in %f seconds; %f per second",
		r.Suite, r.Count, r.Kind.plural(), r.Seconds(), r.Throughput())
}

// RunSuite times every operation of s in order and returns the results
// and the final accumulator value.
// Arithmetic faults, like an integer division by zero, are not recovered.
func RunSuite[T Numeric](r *Runner, s Suite[T]) (results []Result, acc T, err error) {
	for _, op := range s.Ops {
		var res Result
		res, acc = timeOp(r, s.Name, op, acc)
		results = append(results, res)
		if err = r.report(res); err != nil {
			return results, acc, errors.Wrapf(err, "reporting %s %s", s.Name, op.Kind)
		}
	}
	return results, acc, nil
}

func timeOp[T Numeric](r *Runner, suite string, op Op[T], acc T) (Result, T) {
	count := r.Count
	start := r.Clock.Now()
	acc = op.Loop(acc, op.Operand, count)
	elapsed := r.Clock.Now().Sub(start)
	if elapsed <= 0 {
		// faster than the clock resolution.
		elapsed = time.Nanosecond
	}
	return Result{Suite: suite, Kind: op.Kind, Count: count, Elapsed: elapsed}, acc
}

func (r *Runner) report(res Result) error {
	if _, err := fmt.Fprintln(r.Out, res); err != nil {
		return err
	}
	return flush(r.Out)
}

func flush(w io.Writer) error {
	if f, ok := w.(flusher); ok {
		return f.Flush()
	}
	return nil
}
