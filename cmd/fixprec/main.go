// Command fixprec prints how far 48.16 fixed-point conversions and operations
// land from exact results over random operands.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"log"
	"math/rand"
	"os"

	"github.com/pkg/errors"

	"github.com/avdva/fptest/precision"
)

const usage = "usage: fixprec [-n pairs] [-seed seed] [-max bound]"

type config struct {
	n     int
	seed  int64
	bound float64
}

func main() {
	cfg, err := parseFlags(os.Args[1:])
	if err == flag.ErrHelp {
		return
	}
	if err != nil {
		log.Fatalf("%v\n%s", err, usage)
	}

	samples := precision.Samples(rand.New(rand.NewSource(cfg.seed)), cfg.n, cfg.bound)
	w := bufio.NewWriter(os.Stdout)
	if err := report(w, samples); err != nil {
		log.Fatal(err)
	}
	if err := w.Flush(); err != nil {
		log.Fatal(err)
	}
}

func parseFlags(args []string) (config, error) {
	var cfg config
	fs := flag.NewFlagSet("fixprec", flag.ContinueOnError)
	fs.IntVar(&cfg.n, "n", 10000, "number of operand pairs")
	fs.Int64Var(&cfg.seed, "seed", 1, "random seed")
	fs.Float64Var(&cfg.bound, "max", 1000, "largest operand magnitude")
	if err := fs.Parse(args); err != nil {
		return cfg, err
	}
	if cfg.n <= 0 {
		return cfg, errors.Errorf("-n must be positive, got %d", cfg.n)
	}
	if cfg.bound <= 0 {
		return cfg, errors.Errorf("-max must be positive, got %v", cfg.bound)
	}
	return cfg, nil
}

func report(w io.Writer, samples []precision.Sample) error {
	s, err := precision.RoundTrip(samples)
	if err != nil {
		return err
	}
	fmt.Fprintln(w, s)
	for _, op := range precision.Ops() {
		if s, err = precision.Measure(op, samples); err != nil {
			return err
		}
		fmt.Fprintln(w, s)
	}
	return nil
}
