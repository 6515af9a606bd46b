package main

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/exec"
	"regexp"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/avdva/fptest/bench"
)

var reportLine = regexp.MustCompile(`^(float32|float64|fixed): did (\d+) (adds|subtracts|multiplies|divides) in ([0-9.]+) seconds; ([0-9.]+) per second$`)

func TestRun(t *testing.T) {
	a := assert.New(t)
	var buf bytes.Buffer
	r := &bench.Runner{Count: 1000, Clock: bench.SystemClock, Out: &buf}
	if !a.NoError(run(r)) {
		return
	}
	out := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	if !a.Len(out, 15) {
		return
	}
	a.Equal([]string{
		"Started with 1.42, converted to 93061, then back to 1.419998",
		"Multiplied and divided by 93.324, got 132.519882 and 65.000000",
		"93.324 / 2.2 = 42.000000",
	}, out[:3])
	suites := []string{"float32", "float64", "fixed"}
	ops := []string{"adds", "subtracts", "multiplies", "divides"}
	for i, line := range out[3:] {
		t.Run(fmt.Sprintf("%d", i), func(t *testing.T) {
			m := reportLine.FindStringSubmatch(line)
			if !a.NotNil(m, line) {
				return
			}
			a.Equal(suites[i/4], m[1])
			a.Equal("1000", m[2])
			a.Equal(ops[i%4], m[3])
			perSecond, err := strconv.ParseFloat(m[5], 64)
			if a.NoError(err) {
				a.True(perSecond > 0)
			}
		})
	}
}

// childEnv makes the test binary act as the command itself.
const childEnv = "FPTEST_RUN_MAIN"

func TestMain(m *testing.M) {
	if os.Getenv(childEnv) == "1" {
		r := bench.NewRunner(bufio.NewWriter(os.Stdout))
		r.Count = 1000
		os.Exit(runMain(r))
	}
	os.Exit(m.Run())
}

func TestExitStatus(t *testing.T) {
	a := assert.New(t)
	cmd := exec.Command(os.Args[0], "-test.run=^$")
	cmd.Env = append(os.Environ(), childEnv+"=1")
	out, err := cmd.Output()
	if !a.NoError(err) {
		return
	}
	a.Equal(0, cmd.ProcessState.ExitCode())
	lines := strings.Split(strings.TrimSuffix(string(out), "\n"), "\n")
	if a.Len(lines, 15) {
		a.Equal("93.324 / 2.2 = 42.000000", lines[2])
		for _, line := range lines[3:] {
			a.Regexp(reportLine, line)
		}
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("write failed")
}

func TestRunMainStatus(t *testing.T) {
	a := assert.New(t)
	log.SetOutput(io.Discard)
	defer log.SetOutput(os.Stderr)
	a.Equal(0, runMain(&bench.Runner{Count: 10, Clock: bench.SystemClock, Out: &bytes.Buffer{}}))
	a.Equal(1, runMain(&bench.Runner{Count: 10, Clock: bench.SystemClock, Out: failingWriter{}}))
}
