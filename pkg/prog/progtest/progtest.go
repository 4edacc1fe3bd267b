// Package progtest contains utilities for testing [prog.Program]
// implementations by running them against pipes.
package progtest

import (
	"io"
	"os"
	"strings"
	"testing"

	"github.com/aurelia/aurelia-sub054/pkg/must"
	"github.com/aurelia/aurelia-sub054/pkg/prog"
)

// Case is a test case for Test.
type Case struct {
	args  []string
	stdin string
	want  result
}

type result struct {
	exitStatus int
	out, err   output
}

type output struct {
	content string
	partial bool
	checked bool
}

// ThatBindx returns a new Case running bindx with the given arguments. By
// default, the case expects the program to exit with 0 and write nothing.
func ThatBindx(args ...string) Case {
	return Case{args: append([]string{"bindx"}, args...)}
}

// WithStdin returns an altered Case that feeds the given string to stdin.
func (c Case) WithStdin(s string) Case {
	c.stdin = s
	return c
}

// DoesNothing returns c itself. It is useful to mark tests that otherwise
// don't have any expectations, for example:
//
//	ThatBindx("-version").DoesNothing()
func (c Case) DoesNothing() Case {
	return c
}

// ExitsWith returns an altered Case that requires the program to exit with
// the given status.
func (c Case) ExitsWith(code int) Case {
	c.want.exitStatus = code
	return c
}

// WritesStdout returns an altered Case that requires the program to write
// exactly the given text to stdout.
func (c Case) WritesStdout(s string) Case {
	c.want.out = output{content: s, checked: true}
	return c
}

// WritesStdoutContaining returns an altered Case that requires the program
// to write output to stdout that contains the given text as a substring.
func (c Case) WritesStdoutContaining(s string) Case {
	c.want.out = output{content: s, partial: true, checked: true}
	return c
}

// WritesStderr returns an altered Case that requires the program to write
// exactly the given text to stderr.
func (c Case) WritesStderr(s string) Case {
	c.want.err = output{content: s, checked: true}
	return c
}

// WritesStderrContaining returns an altered Case that requires the program
// to write output to stderr that contains the given text as a substring.
func (c Case) WritesStderrContaining(s string) Case {
	c.want.err = output{content: s, partial: true, checked: true}
	return c
}

// Test runs test cases against a given program.
func Test(t *testing.T, p prog.Program, cases ...Case) {
	t.Helper()
	for _, c := range cases {
		t.Run(strings.Join(c.args, " "), func(t *testing.T) {
			t.Helper()
			exit, stdout, stderr := Run(p, c.stdin, c.args...)
			if exit != c.want.exitStatus {
				t.Errorf("got exit status %v, want %v", exit, c.want.exitStatus)
			}
			checkOutput(t, "stdout", stdout, c.want.out)
			checkOutput(t, "stderr", stderr, c.want.err)
		})
	}
}

func checkOutput(t *testing.T, name, got string, want output) {
	t.Helper()
	switch {
	case !want.checked:
		if got != "" {
			t.Errorf("got %s %q, want empty", name, got)
		}
	case want.partial:
		if !strings.Contains(got, want.content) {
			t.Errorf("got %s %q, want string containing %q", name, got, want.content)
		}
	default:
		if got != want.content {
			t.Errorf("got %s %q, want %q", name, got, want.content)
		}
	}
}

// Run runs a Program with the given arguments, which must include the
// program name. It returns the exit status, stdout and stderr.
func Run(p prog.Program, stdin string, args ...string) (exit int, stdout, stderr string) {
	r0, w0 := must.OK2(os.Pipe())
	r1, w1 := must.OK2(os.Pipe())
	r2, w2 := must.OK2(os.Pipe())
	go func() {
		io.WriteString(w0, stdin)
		w0.Close()
	}()
	outCh := readAllAsync(r1)
	errCh := readAllAsync(r2)

	exit = prog.Run([3]*os.File{r0, w1, w2}, args, p)
	w1.Close()
	w2.Close()
	r0.Close()
	return exit, <-outCh, <-errCh
}

func readAllAsync(r *os.File) <-chan string {
	ch := make(chan string, 1)
	go func() {
		defer r.Close()
		ch <- string(must.OK1(io.ReadAll(r)))
	}()
	return ch
}
