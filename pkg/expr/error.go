package expr

import (
	"fmt"

	"github.com/aurelia/aurelia-sub054/pkg/diag"
)

// Error codes of evaluation errors.
var (
	ErrBehaviorNotFound       = diag.NewCode(101, "binding behavior not found")
	ErrBehaviorAlreadyApplied = diag.NewCode(102, "binding behavior already applied")
	ErrConverterNotFound      = diag.NewCode(103, "value converter not found")
	ErrNilScope               = diag.NewCode(104, "scope is nil")
	ErrHostNotFound           = diag.NewCode(105, "$host not found")
	ErrHostAssignment         = diag.NewCode(106, "cannot assign to $host")
	ErrNotAFunction           = diag.NewCode(107, "not a function")
	ErrTagNotAFunction        = diag.NewCode(108, "tag of tagged template is not a function")
	ErrNotAssignableKind      = diag.NewCode(109, "expression is not assignable")
	ErrNotIterable            = diag.NewCode(110, "value is not iterable")
	ErrInvalidPropertyWrite   = diag.NewCode(111, "cannot write property")
)

// Error is an error raised while evaluating, assigning, binding or unbinding
// an expression. It wraps its Code, so errors.Is(err, ErrNotAFunction) and
// the like work.
type Error struct {
	Code    *diag.Code
	Message string
}

func newError(code *diag.Code, format string, args ...any) *Error {
	return &Error{code, fmt.Sprintf(format, args...)}
}

func (e *Error) Error() string {
	return e.Code.ID() + ": " + e.Message
}

// Unwrap returns the code of the error.
func (e *Error) Unwrap() error { return e.Code }
