package shell

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/aurelia/aurelia-sub054/pkg/observation"
	"github.com/aurelia/aurelia-sub054/pkg/platform"
	"github.com/fsnotify/fsnotify"
)

// WatchConfig keeps configuration for the watch mode.
type WatchConfig struct {
	// Path of the binding context file.
	Path   string
	Expr   string
	Interp bool
	JSON   bool
}

// Watch binds an expression to the binding context read from a file, and
// writes its value to stdout every time it changes. Changes of the file are
// merged into the binding context, so only the bindings depending on
// changed properties are updated. It runs until ctx is done, and returns
// the error of the context.
//
// The Runtime must run its tasks on the queue of the loop.
func Watch(ctx context.Context, loop *platform.Loop, rt *Runtime, stdout, stderr io.Writer, cfg *WatchConfig) error {
	path, err := filepath.Abs(cfg.Path)
	if err != nil {
		return err
	}
	initial, err := ReadContext(path)
	if err != nil {
		return err
	}
	rt.Context = initial

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()
	// Watch the directory, since editors often replace files instead of
	// writing to them.
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return err
	}

	b, _, target, err := rt.NewBinding(cfg.Expr, cfg.Interp)
	if err != nil {
		return err
	}
	p := printer{stdout, cfg.JSON}
	if err := b.Bind(rt.Scope()); err != nil {
		return err
	}
	defer b.Unbind()
	p.print(target.GetValue())
	target.Subscribe(p)
	defer target.Unsubscribe(p)

	reload := func() {
		updated, err := ReadContext(path)
		if err != nil {
			fmt.Fprintln(stderr, "cannot reload binding context:", err)
			return
		}
		var mergeErr error
		rt.Locator.Queue().Batch(func() { mergeErr = Merge(rt.Context, updated) })
		if mergeErr != nil {
			fmt.Fprintln(stderr, "cannot update binding context:", mergeErr)
		}
	}

	go func() {
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != path || !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
					continue
				}
				logger.Println("context file changed:", event)
				select {
				case <-ctx.Done():
					return
				default:
					loop.Post(reload)
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Println("watcher error:", err)
			case <-ctx.Done():
				return
			}
		}
	}()

	return loop.Run(ctx)
}

// Writes the new values of the observer it subscribes to.
type printer struct {
	w    io.Writer
	json bool
}

func (p printer) HandleChange(newValue, _ any, _ observation.Flags) {
	p.print(newValue)
}

func (p printer) print(v any) {
	fmt.Fprintln(p.w, format(v, p.json))
}
