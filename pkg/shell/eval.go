package shell

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/aurelia/aurelia-sub054/pkg/diag"
	"github.com/aurelia/aurelia-sub054/pkg/expr"
	"github.com/aurelia/aurelia-sub054/pkg/expr/parse"
)

// EvalConfig keeps configuration for evaluating an expression once.
type EvalConfig struct {
	Interp bool
	JSON   bool
	Color  bool
}

// Eval evaluates an expression and writes the result to stdout. It returns
// the exit status.
func Eval(stdout, stderr io.Writer, rt *Runtime, src string, cfg *EvalConfig) int {
	v, err := rt.Evaluate(src, cfg.Interp)
	if err != nil {
		diag.ShowError(stderr, err, cfg.Color)
		return 2
	}
	fmt.Fprintln(stdout, format(v, cfg.JSON))
	return 0
}

// ParseConfig keeps configuration for the parse-only mode.
type ParseConfig struct {
	Interp bool
	JSON   bool
	Color  bool
}

// Parse parses an expression and writes its normalized form to stdout. With
// JSON, the result is a JSON string, and errors are written to stdout as a
// JSON array. It returns the exit status.
func Parse(stdout, stderr io.Writer, src string, cfg *ParseConfig) int {
	t := parse.Plain
	if cfg.Interp {
		t = parse.Interpolation
	}
	e, err := parse.Parse(src, t)
	if err != nil {
		if cfg.JSON {
			fmt.Fprintf(stdout, "%s\n", errorsToJSON(err))
		} else {
			diag.ShowError(stderr, err, cfg.Color)
		}
		return 2
	}
	text := src
	if e != nil {
		text = expr.Unparse(e)
	}
	if cfg.JSON {
		b, _ := json.Marshal(text)
		text = string(b)
	}
	fmt.Fprintln(stdout, text)
	return 0
}

// An auxiliary struct for converting errors with diagnostics information to JSON.
type errorInJSON struct {
	FileName string `json:"fileName"`
	Start    int    `json:"start"`
	End      int    `json:"end"`
	Code     string `json:"code,omitempty"`
	Message  string `json:"message"`
}

// Converts an error into a JSON array.
func errorsToJSON(err error) []byte {
	var converted []errorInJSON
	var e *diag.Error
	if errors.As(err, &e) {
		converted = append(converted, errorInJSON{
			e.Context.Name, e.Context.From, e.Context.To, e.Code.ID(), e.Message})
	} else {
		converted = append(converted, errorInJSON{Message: err.Error()})
	}

	jsonError, errMarshal := json.Marshal(converted)
	if errMarshal != nil {
		return []byte(`[{"message":"Unable to convert the errors to JSON"}]`)
	}
	return jsonError
}
