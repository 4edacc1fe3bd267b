package diag

import (
	"fmt"
	"io"
)

// Error represents an error with a stable code and context that can be
// showed.
type Error struct {
	Type    string
	Code    *Code
	Message string
	Context Context
}

// Error returns a plain text representation of the error.
func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s: %d-%d in %s: %s",
		e.Type, e.Code.ID(), e.Context.From, e.Context.To, e.Context.Name, e.Message)
}

// Unwrap returns the code of the error, so that errors.Is(err, code) works.
func (e *Error) Unwrap() error { return e.Code }

// Range returns the range of the error.
func (e *Error) Range() Ranging {
	return e.Context.Range()
}

// Show shows the error.
func (e *Error) Show(color bool) string {
	header := fmt.Sprintf("%s %s: %s", e.Type, e.Code.ID(), e.Message)
	if color {
		header = fmt.Sprintf("%s %s: \033[31;1m%s\033[m", e.Type, e.Code.ID(), e.Message)
	}
	return header + "\n  " + e.Context.Show(color)
}

// Shower wraps the Show method.
type Shower interface {
	Show(color bool) string
}

// ShowError writes err to w. It uses the Show method if the error implements
// Shower, and writes the error message otherwise.
func ShowError(w io.Writer, err error, color bool) {
	if shower, ok := err.(Shower); ok {
		fmt.Fprintln(w, shower.Show(color))
	} else if color {
		fmt.Fprintf(w, "\033[31;1m%s\033[m\n", err.Error())
	} else {
		fmt.Fprintln(w, err.Error())
	}
}
