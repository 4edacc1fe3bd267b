package prog_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	. "github.com/aurelia/aurelia-sub054/pkg/prog"
	"github.com/aurelia/aurelia-sub054/pkg/prog/progtest"
)

var (
	Test      = progtest.Test
	ThatBindx = progtest.ThatBindx
)

func TestCommonFlagHandling(t *testing.T) {
	dir := t.TempDir()
	cpuprof := filepath.Join(dir, "cpuprof")

	Test(t, testProgram{},
		ThatBindx("-bad-flag").
			ExitsWith(2).
			WritesStderrContaining("flag provided but not defined: -bad-flag\nUsage:"),
		// -h is treated as a bad flag
		ThatBindx("-h").
			ExitsWith(2).
			WritesStderrContaining("flag provided but not defined: -h\nUsage:"),

		ThatBindx("-help").
			WritesStdoutContaining("Usage: bindx [flags] [expression]"),

		ThatBindx("-cpuprofile", cpuprof).DoesNothing(),
		ThatBindx("-cpuprofile", "/a/bad/path").
			WritesStderrContaining("Warning: cannot create CPU profile:"),
	)

	// Check for the effect of -cpuprofile. There isn't much to test beyond a
	// sanity check that the profile file now exists.
	_, err := os.Stat(cpuprof)
	if err != nil {
		t.Errorf("CPU profile file does not exist: %v", err)
	}
}

func TestFlagsArePassed(t *testing.T) {
	var got Flags
	Test(t, flagsProgram{&got},
		ThatBindx("-ctx", "data.yaml", "-interp", "-strict", "-db", "h.db", "a.b").
			WritesStdout("a.b"),
	)
	want := Flags{Ctx: "data.yaml", Interp: true, Strict: true, DB: "h.db"}
	if got != want {
		t.Errorf("got flags %+v, want %+v", got, want)
	}
}

func TestSubprogramSelection(t *testing.T) {
	notSuitable := testProgram{notSuitable: true}
	noSuitable := ThatBindx().
		ExitsWith(2).
		WritesStderr("internal error: no suitable subprogram\n")

	Test(t, notSuitable, noSuitable)
	Test(t, Composite(notSuitable, notSuitable), noSuitable)
	Test(t, Composite(notSuitable, testProgram{writeOut: "second"}),
		ThatBindx().WritesStdout("second"))
	// The first suitable subprogram wins.
	Test(t, Composite(testProgram{writeOut: "first"}, testProgram{writeOut: "second"}),
		ThatBindx().WritesStdout("first"))
}

func TestSpecialErrors(t *testing.T) {
	Test(t, testProgram{returnErr: BadUsage("need an expression")},
		ThatBindx().ExitsWith(2).WritesStderrContaining("need an expression\nUsage:"))
	Test(t, testProgram{returnErr: Exit(3)}, ThatBindx().ExitsWith(3))
	Test(t, testProgram{returnErr: Exit(0)}, ThatBindx().DoesNothing())
	Test(t, testProgram{returnErr: errors.New("boom")},
		ThatBindx().ExitsWith(2).WritesStderr("boom\n"))
}

type testProgram struct {
	notSuitable bool
	writeOut    string
	returnErr   error
}

func (p testProgram) Run(fds [3]*os.File, _ *Flags, args []string) error {
	if p.notSuitable {
		return ErrNotSuitable
	}
	fds[1].WriteString(p.writeOut)
	return p.returnErr
}

type flagsProgram struct{ got *Flags }

func (p flagsProgram) Run(fds [3]*os.File, f *Flags, args []string) error {
	*p.got = *f
	for _, arg := range args {
		fds[1].WriteString(arg)
	}
	return nil
}
