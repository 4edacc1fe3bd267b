package parse

import (
	"fmt"

	"github.com/aurelia/aurelia-sub054/pkg/diag"
)

// Error codes of parse errors.
var (
	ErrInvalidStart              = diag.NewCode(151, "invalid start of expression")
	ErrUnconsumedToken           = diag.NewCode(152, "unconsumed token")
	ErrDoubleDot                 = diag.NewCode(153, "double dot")
	ErrInvalidMemberAccess       = diag.NewCode(154, "invalid member expression")
	ErrUnexpectedEnd             = diag.NewCode(155, "unexpected end of expression")
	ErrExpectedIdentifier        = diag.NewCode(156, "expected identifier")
	ErrInvalidForDeclaration     = diag.NewCode(157, "invalid declaration on the left of 'of'")
	ErrInvalidObjectProperty     = diag.NewCode(158, "invalid or unsupported property definition in object literal")
	ErrUnterminatedQuote         = diag.NewCode(159, "unterminated quote")
	ErrUnterminatedTemplate      = diag.NewCode(160, "unterminated template")
	ErrMissingToken              = diag.NewCode(161, "missing expected token")
	ErrUnexpectedCharacter       = diag.NewCode(162, "unexpected character")
	ErrEmptyExpression           = diag.NewCode(163, "empty expression")
	ErrNotAssignable             = diag.NewCode(164, "left hand side of assignment is not assignable")
	ErrUnexpectedOf              = diag.NewCode(165, "unexpected 'of' outside of an iterator expression")
	ErrExpectedConverterName     = diag.NewCode(166, "expected value converter name")
	ErrExpectedBehaviorName      = diag.NewCode(167, "expected binding behavior name")
	ErrUnterminatedInterpolation = diag.NewCode(168, "unterminated interpolation")
)

const errorType = "parse error"

// Used as panic values inside the parser. The panic is caught by the
// recover in parseWith.
type failure struct{ err *diag.Error }

func (p *parser) failAt(from, to int, code *diag.Code, format string, args ...any) {
	panic(failure{&diag.Error{
		Type:    errorType,
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Context: *diag.NewContext(p.name, p.src, diag.Ranging{From: from, To: to}),
	}})
}

// Fails with the current token as the culprit.
func (p *parser) fail(code *diag.Code, format string, args ...any) {
	p.failAt(p.start, p.pos, code, format, args...)
}
