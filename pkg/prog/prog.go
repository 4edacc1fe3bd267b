// Package prog is the entry point of bindx. It parses the command line and
// hands it to the first subprogram that accepts it.
package prog

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"runtime/pprof"

	"github.com/aurelia/aurelia-sub054/pkg/logutil"
)

// Flags keeps command-line flags.
type Flags struct {
	// Debugging.
	Log, CPUProfile string

	// Information about bindx itself.
	Help, Version, BuildInfo bool

	// JSON switches the output of -buildinfo, -version, -parse and the
	// expression value to JSON.
	JSON bool

	// Ctx is the file holding the binding context; Config is the YAML
	// configuration file.
	Ctx, Config string

	Interp, Parse, Strict, Watch bool

	// DB is the history database of the interactive mode.
	DB string
}

func newFlagSet(f *Flags) *flag.FlagSet {
	fs := flag.NewFlagSet("bindx", flag.ContinueOnError)
	// Errors and usage are printed by Run.
	fs.SetOutput(io.Discard)

	fs.StringVar(&f.Log, "log", "", "write debug log to `file`")
	fs.StringVar(&f.CPUProfile, "cpuprofile", "", "write CPU profile to `file`")

	fs.BoolVar(&f.Help, "help", false, "show usage help and quit")
	fs.BoolVar(&f.Version, "version", false, "show version and quit")
	fs.BoolVar(&f.BuildInfo, "buildinfo", false, "show build info and quit")
	fs.BoolVar(&f.JSON, "json", false, "write output in JSON")

	fs.StringVar(&f.Ctx, "ctx", "", "read the binding context from YAML or JSON `file`")
	fs.StringVar(&f.Config, "config", "", "read configuration from YAML `file`")

	fs.BoolVar(&f.Interp, "interp", false, `treat the argument as an interpolation, like "Hello ${name}"`)
	fs.BoolVar(&f.Parse, "parse", false, "print the parsed expression instead of its value")
	fs.BoolVar(&f.Strict, "strict", false, "keep missing values undefined and use the native +")
	fs.BoolVar(&f.Watch, "watch", false, "print the value again whenever the -ctx file changes")

	fs.StringVar(&f.DB, "db", "", "keep the history of the interactive mode in `file`")
	return fs
}

func usage(w io.Writer, fs *flag.FlagSet) {
	fmt.Fprintln(w, "Usage: bindx [flags] [expression]")
	fmt.Fprintln(w, "Supported flags:")
	fs.SetOutput(w)
	fs.PrintDefaults()
}

// Run parses the command line in args, whose first element is the program
// name, and runs p. It returns the exit status.
func Run(fds [3]*os.File, args []string, p Program) int {
	f := &Flags{}
	fs := newFlagSet(f)
	if err := fs.Parse(args[1:]); err != nil {
		if err == flag.ErrHelp {
			// Only -h gets here, since -help is defined. Report it like any
			// other unknown flag.
			err = errors.New("flag provided but not defined: -h")
		}
		fmt.Fprintln(fds[2], err)
		usage(fds[2], fs)
		return 2
	}

	if f.CPUProfile != "" {
		stop := startCPUProfile(fds[2], f.CPUProfile)
		defer stop()
	}
	if f.Log != "" {
		if err := logutil.SetOutputFile(f.Log); err != nil {
			fmt.Fprintln(fds[2], err)
		}
	}
	if f.Help {
		usage(fds[1], fs)
		return 0
	}

	err := p.Run(fds, f, fs.Args())
	if err == nil {
		return 0
	}
	if msg := err.Error(); msg != "" {
		fmt.Fprintln(fds[2], msg)
	}
	var (
		badUsage badUsageError
		exit     exitError
	)
	switch {
	case errors.As(err, &badUsage):
		usage(fds[2], fs)
	case errors.As(err, &exit):
		return exit.exit
	}
	return 2
}

func startCPUProfile(stderr io.Writer, name string) (stop func()) {
	out, err := os.Create(name)
	if err != nil {
		fmt.Fprintln(stderr, "Warning: cannot create CPU profile:", err)
		fmt.Fprintln(stderr, "Continuing without CPU profiling.")
		return func() {}
	}
	if err := pprof.StartCPUProfile(out); err != nil {
		fmt.Fprintln(stderr, "Warning: cannot start CPU profile:", err)
		out.Close()
		return func() {}
	}
	return func() {
		pprof.StopCPUProfile()
		out.Close()
	}
}

// Program is a subprogram.
type Program interface {
	// Run runs the subprogram. It returns ErrNotSuitable if the flags and
	// arguments are not for it.
	Run(fds [3]*os.File, f *Flags, args []string) error
}

// ErrNotSuitable is returned by Program.Run when the subprogram does not
// handle the command line.
var ErrNotSuitable = errors.New("internal error: no suitable subprogram")

// Composite returns a Program that runs the first of programs that does not
// return ErrNotSuitable.
func Composite(programs ...Program) Program {
	return compositeProgram(programs)
}

type compositeProgram []Program

func (cp compositeProgram) Run(fds [3]*os.File, f *Flags, args []string) error {
	for _, p := range cp {
		if err := p.Run(fds, f, args); err != ErrNotSuitable {
			return err
		}
	}
	return ErrNotSuitable
}

// BadUsage returns an error that makes Run print msg and the usage, and exit
// with 2.
func BadUsage(msg string) error { return badUsageError{msg} }

type badUsageError struct{ msg string }

func (e badUsageError) Error() string { return e.msg }

// Exit returns an error that makes Run exit with the given status without
// printing anything. Exit(0) returns nil.
func Exit(status int) error {
	if status == 0 {
		return nil
	}
	return exitError{status}
}

type exitError struct{ exit int }

func (e exitError) Error() string { return "" }
