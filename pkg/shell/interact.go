package shell

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/aurelia/aurelia-sub054/pkg/diag"
	"github.com/aurelia/aurelia-sub054/pkg/store/storedefs"
	"github.com/aurelia/aurelia-sub054/pkg/vals"
)

// InteractConfig keeps configuration for the interactive mode.
type InteractConfig struct {
	Runtime *Runtime
	// Store keeps the history and the saved variables. It may be nil.
	Store storedefs.Store
	// Prompt makes the prompt shown before reading each line.
	Prompt bool
	Color  bool
}

const defaultHistoryLen = 10

var errNoStore = errors.New("no history database")

// Interact runs an interactive session. Each line is either an expression,
// evaluated against the root binding context, or a command starting with
// ":". Expressions are added to the history.
//
// Assignments in expressions write the root binding context, so they define
// variables for the rest of the session. Variables saved with :save are
// restored at the start of later sessions.
func Interact(stdin io.Reader, stdout, stderr io.Writer, cfg *InteractConfig) {
	s := &session{cfg.Runtime, cfg.Store, stdout, stderr, cfg.Color}
	if s.store != nil {
		if err := s.restoreVars(); err != nil {
			fmt.Fprintln(stderr, "Warning: cannot restore saved variables:", err)
		}
	}

	in := bufio.NewReader(stdin)
	for {
		if cfg.Prompt {
			fmt.Fprint(stderr, "bindx> ")
		}
		line, err := in.ReadString('\n')
		line = strings.TrimSpace(line)
		if line != "" {
			s.handle(line)
		}
		if err == io.EOF {
			break
		} else if err != nil {
			fmt.Fprintln(stderr, "cannot read input:", err)
			break
		}
	}
}

type session struct {
	rt     *Runtime
	store  storedefs.Store
	stdout io.Writer
	stderr io.Writer
	color  bool
}

func (s *session) handle(line string) {
	var err error
	if strings.HasPrefix(line, ":") {
		err = s.command(line[1:])
	} else {
		if s.store != nil {
			if _, err := s.store.AddEntry(line); err != nil {
				logger.Println("cannot add history entry:", err)
			}
		}
		err = s.eval(line, false)
	}
	if err != nil {
		diag.ShowError(s.stderr, err, s.color)
	}
}

func (s *session) eval(src string, interp bool) error {
	v, err := s.rt.Evaluate(src, interp)
	if err != nil {
		return err
	}
	fmt.Fprintln(s.stdout, format(v, false))
	return nil
}

func (s *session) command(line string) error {
	name, arg, _ := strings.Cut(line, " ")
	arg = strings.TrimSpace(arg)
	switch name {
	case "interp":
		return s.eval(arg, true)
	case "parse":
		// Parse reports its own errors.
		Parse(s.stdout, s.stderr, arg, &ParseConfig{Color: s.color})
		return nil
	case "history":
		n := defaultHistoryLen
		if arg != "" {
			var err error
			if n, err = strconv.Atoi(arg); err != nil || n <= 0 {
				return fmt.Errorf("invalid history length %q", arg)
			}
		}
		return s.history(n)
	case "save":
		return s.save(arg)
	case "forget":
		if s.store == nil {
			return errNoStore
		}
		return s.store.DelVar(arg)
	case "vars":
		if s.store == nil {
			return errNoStore
		}
		names, err := s.store.VarNames()
		if err != nil {
			return err
		}
		for _, name := range names {
			fmt.Fprintln(s.stdout, name)
		}
		return nil
	default:
		return fmt.Errorf("unknown command :%s", name)
	}
}

// Writes the last n history entries.
func (s *session) history(n int) error {
	if s.store == nil {
		return errNoStore
	}
	next, err := s.store.NextSeq()
	if err != nil {
		return err
	}
	entries, err := s.store.Entries(max(next-n, 0), next)
	if err != nil {
		return err
	}
	for _, e := range entries {
		fmt.Fprintf(s.stdout, "%4d  %s\n", e.Seq, e.Text)
	}
	return nil
}

// Saves a variable of the root binding context as JSON.
func (s *session) save(name string) error {
	if s.store == nil {
		return errNoStore
	}
	if name == "" || !s.rt.Context.HasOwn(name) {
		return fmt.Errorf("no variable %q to save", name)
	}
	b, err := json.Marshal(vals.ToNative(s.rt.Context.Get(name)))
	if err != nil {
		return err
	}
	return s.store.SetVar(name, string(b))
}

func (s *session) restoreVars() error {
	names, err := s.store.VarNames()
	if err != nil {
		return err
	}
	for _, name := range names {
		text, err := s.store.Var(name)
		if err != nil {
			return err
		}
		var native any
		if err := json.Unmarshal([]byte(text), &native); err != nil {
			return fmt.Errorf("variable %s: %w", name, err)
		}
		if err := s.rt.Context.Set(name, vals.FromNative(native)); err != nil {
			return err
		}
	}
	return nil
}
