// Package shell is the main subprogram of bindx. It evaluates expressions
// against a binding context, once, on every change of the context file, or
// interactively.
package shell

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/aurelia/aurelia-sub054/pkg/config"
	"github.com/aurelia/aurelia-sub054/pkg/logutil"
	"github.com/aurelia/aurelia-sub054/pkg/platform"
	"github.com/aurelia/aurelia-sub054/pkg/prog"
	"github.com/aurelia/aurelia-sub054/pkg/store"
	"github.com/aurelia/aurelia-sub054/pkg/store/storedefs"
	"github.com/mattn/go-isatty"
)

var logger = logutil.GetLogger("[shell] ")

// Program is the shell subprogram.
type Program struct{}

func (p Program) Run(fds [3]*os.File, f *prog.Flags, args []string) error {
	cfg, err := loadConfig(f.Config)
	if err != nil {
		return err
	}
	if f.Parse {
		if len(args) != 1 {
			return prog.BadUsage("-parse requires exactly one expression")
		}
		return prog.Exit(Parse(fds[1], fds[2], args[0], &ParseConfig{
			Interp: f.Interp, JSON: f.JSON, Color: isTTY(fds[2])}))
	}
	if len(args) > 1 {
		return prog.BadUsage("at most one expression is allowed")
	}
	if f.Watch && (len(args) == 0 || f.Ctx == "") {
		return prog.BadUsage("-watch requires -ctx and an expression")
	}

	if f.Watch {
		loop := platform.NewLoop(cfg.Platform.TickInterval)
		rt, err := NewRuntime(cfg, loop.Queue(), f.Strict)
		if err != nil {
			return err
		}
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		err = Watch(ctx, loop, rt, fds[1], fds[2], &WatchConfig{
			Path: f.Ctx, Expr: args[0], Interp: f.Interp, JSON: f.JSON})
		if err == context.Canceled {
			return nil
		}
		return err
	}

	rt, err := NewRuntime(cfg, platform.NewQueue(platform.RealClock{}), f.Strict)
	if err != nil {
		return err
	}
	if f.Ctx != "" {
		ctx, err := ReadContext(f.Ctx)
		if err != nil {
			return err
		}
		rt.Context = ctx
	}

	if len(args) == 1 {
		return prog.Exit(Eval(fds[1], fds[2], rt, args[0], &EvalConfig{
			Interp: f.Interp, JSON: f.JSON, Color: isTTY(fds[2])}))
	}

	st, cleanup := openStore(fds[2], f.DB, cfg)
	defer cleanup()
	Interact(fds[0], fds[1], fds[2], &InteractConfig{
		Runtime: rt, Store: st, Prompt: isTTY(fds[0]), Color: isTTY(fds[2])})
	return nil
}

func loadConfig(path string) (config.Config, error) {
	if path == "" {
		return config.Default(), nil
	}
	return config.Load(path)
}

// Opens the history database. Failures are reported as warnings; the
// interactive mode works without history.
func openStore(stderr io.Writer, path string, cfg config.Config) (storedefs.Store, func()) {
	if path == "" {
		p, err := cfg.HistoryPath()
		if err != nil {
			fmt.Fprintln(stderr, "Warning:", err)
			return nil, func() {}
		}
		path = p
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		fmt.Fprintln(stderr, "Warning:", err)
		return nil, func() {}
	}
	st, err := store.NewStore(path)
	if err != nil {
		fmt.Fprintln(stderr, "Warning: cannot open history database:", err)
		fmt.Fprintln(stderr, "History will not be saved.")
		return nil, func() {}
	}
	return st, func() { st.Close() }
}

func isTTY(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
