// Command fptest compares the speed of float32, float64 and 48.16 fixed-point
// arithmetic, and shows how the fixed-point conversions and division behave.
package main

import (
	"bufio"
	"log"
	"os"

	"github.com/avdva/fptest/bench"
)

func main() {
	os.Exit(runMain(bench.NewRunner(bufio.NewWriter(os.Stdout))))
}

// runMain returns the process exit status.
func runMain(r *bench.Runner) int {
	if err := run(r); err != nil {
		log.Print(err)
		return 1
	}
	return 0
}

func run(r *bench.Runner) error {
	if err := bench.Demo(r.Out); err != nil {
		return err
	}
	_, err := bench.RunAll(r)
	return err
}
