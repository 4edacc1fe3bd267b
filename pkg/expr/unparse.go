package expr

import (
	"strconv"
	"strings"

	"github.com/aurelia/aurelia-sub054/pkg/vals"
)

// Unparse returns source code for an expression. Parsing the result produces
// an equivalent expression. Binary, unary and conditional expressions are
// always parenthesized, and so are assignments and arrow functions unless
// they are the outermost expression.
func Unparse(e Expr) string {
	u := &unparser{}
	u.top(e)
	return u.sb.String()
}

type unparser struct {
	sb    strings.Builder
	depth int
}

func (u *unparser) top(e Expr) {
	if e != nil {
		e.Accept(u)
	}
}

func (u *unparser) write(parts ...string) {
	for _, s := range parts {
		u.sb.WriteString(s)
	}
}

func (u *unparser) expr(e Expr) {
	u.depth++
	e.Accept(u)
	u.depth--
}

func (u *unparser) list(es []Expr) {
	for i, e := range es {
		if i > 0 {
			u.write(", ")
		}
		u.expr(e)
	}
}

func (u *unparser) args(es []Expr) {
	u.write("(")
	u.list(es)
	u.write(")")
}

// Nested parses as the operand of a member access or call.
func (u *unparser) nested(f func()) {
	if u.depth > 0 {
		u.write("(")
		defer u.write(")")
	}
	f()
}

func (u *unparser) ancestors(n int) {
	for i := 0; i < n; i++ {
		u.write("$parent.")
	}
}

func (u *unparser) VisitAccessThis(e *AccessThis) error {
	switch e.Ancestor {
	case 0:
		u.write("$this")
	default:
		u.ancestors(e.Ancestor - 1)
		u.write("$parent")
	}
	return nil
}

func (u *unparser) VisitAccessScope(e *AccessScope) error {
	u.ancestors(e.Ancestor)
	u.write(e.Name)
	return nil
}

func (u *unparser) VisitAccessGlobal(e *AccessGlobal) error {
	u.write(e.Name)
	return nil
}

// An integer literal is parenthesized when followed by ".name", which would
// otherwise be read as a fraction.
func (u *unparser) object(e Expr) {
	if lit, ok := e.(*PrimitiveLiteral); ok {
		if n, ok := lit.Value.(float64); ok && !strings.ContainsAny(vals.ToString(n), ".eIN") {
			u.write("(")
			u.expr(e)
			u.write(")")
			return
		}
	}
	u.expr(e)
}

func (u *unparser) VisitAccessMember(e *AccessMember) error {
	u.object(e.Object)
	if e.Optional {
		u.write("?.", e.Name)
	} else {
		u.write(".", e.Name)
	}
	return nil
}

func (u *unparser) VisitAccessKeyed(e *AccessKeyed) error {
	u.expr(e.Object)
	if e.Optional {
		u.write("?.")
	}
	u.write("[")
	u.expr(e.Key)
	u.write("]")
	return nil
}

func (u *unparser) VisitCallScope(e *CallScope) error {
	u.ancestors(e.Ancestor)
	u.write(e.Name)
	if e.Optional {
		u.write("?.")
	}
	u.args(e.Args)
	return nil
}

func (u *unparser) VisitCallMember(e *CallMember) error {
	u.object(e.Object)
	if e.OptionalMember {
		u.write("?.", e.Name)
	} else {
		u.write(".", e.Name)
	}
	if e.OptionalCall {
		u.write("?.")
	}
	u.args(e.Args)
	return nil
}

func (u *unparser) VisitCallFunction(e *CallFunction) error {
	u.expr(e.Func)
	if e.Optional {
		u.write("?.")
	}
	u.args(e.Args)
	return nil
}

func (u *unparser) VisitBinary(e *Binary) error {
	u.write("(")
	u.expr(e.Left)
	u.write(" ", e.Op, " ")
	u.expr(e.Right)
	u.write(")")
	return nil
}

func (u *unparser) VisitUnary(e *Unary) error {
	u.write("(", e.Op)
	if e.Op == "typeof" || e.Op == "void" {
		u.write(" ")
	}
	u.expr(e.Operand)
	u.write(")")
	return nil
}

func (u *unparser) VisitConditional(e *Conditional) error {
	u.write("(")
	u.expr(e.Cond)
	u.write(" ? ")
	u.expr(e.Yes)
	u.write(" : ")
	u.expr(e.No)
	u.write(")")
	return nil
}

func (u *unparser) VisitAssignment(e *Assignment) error {
	u.nested(func() {
		u.expr(e.Target)
		u.write(" ", e.Op, " ")
		u.expr(e.Value)
	})
	return nil
}

func (u *unparser) VisitArrowFunction(e *ArrowFunction) error {
	u.nested(func() {
		u.write("(")
		for i, p := range e.Params {
			if i > 0 {
				u.write(", ")
			}
			if e.Rest && i == len(e.Params)-1 {
				u.write("...")
			}
			u.write(p.Name)
		}
		u.write(") => ")
		u.expr(e.Body)
	})
	return nil
}

func (u *unparser) VisitPrimitiveLiteral(e *PrimitiveLiteral) error {
	switch v := e.Value.(type) {
	case string:
		u.write(quote(v))
	case nil:
		u.write("null")
	default:
		u.write(vals.ToString(v))
	}
	return nil
}

func (u *unparser) VisitArrayLiteral(e *ArrayLiteral) error {
	u.write("[")
	u.list(e.Elements)
	u.write("]")
	return nil
}

func (u *unparser) VisitObjectLiteral(e *ObjectLiteral) error {
	u.write("{")
	for i, k := range e.Keys {
		if i > 0 {
			u.write(", ")
		}
		u.write(propertyName(k), ": ")
		u.expr(e.Values[i])
	}
	u.write("}")
	return nil
}

func (u *unparser) template(cooked []string, exprs []Expr) {
	u.write("`")
	for i, s := range cooked {
		u.write(escapeTemplate(s))
		if i < len(exprs) {
			u.write("${")
			u.expr(exprs[i])
			u.write("}")
		}
	}
	u.write("`")
}

func (u *unparser) VisitTemplate(e *Template) error {
	u.template(e.Cooked, e.Exprs)
	return nil
}

func (u *unparser) VisitTaggedTemplate(e *TaggedTemplate) error {
	u.expr(e.Func)
	u.template(e.Cooked, e.Exprs)
	return nil
}

func (u *unparser) VisitValueConverter(e *ValueConverter) error {
	u.expr(e.Expr)
	u.write("|", e.Name)
	for _, a := range e.Args {
		u.write(":")
		u.expr(a)
	}
	return nil
}

func (u *unparser) VisitBindingBehavior(e *BindingBehavior) error {
	u.expr(e.Expr)
	u.write("&", e.Name)
	for _, a := range e.Args {
		u.write(":")
		u.expr(a)
	}
	return nil
}

func (u *unparser) VisitForOf(e *ForOf) error {
	u.expr(e.Declaration)
	u.write(" of ")
	u.expr(e.Iterable)
	return nil
}

func (u *unparser) VisitInterpolation(e *Interpolation) error {
	for i, s := range e.Parts {
		u.write(s)
		if i < len(e.Exprs) {
			u.write("${")
			u.expr(e.Exprs[i])
			u.write("}")
		}
	}
	return nil
}

func (u *unparser) VisitBindingIdentifier(e *BindingIdentifier) error {
	u.write(e.Name)
	return nil
}

func (u *unparser) VisitArrayBindingPattern(e *ArrayBindingPattern) error {
	u.write("[")
	for i, el := range e.Elements {
		if i > 0 {
			u.write(", ")
		}
		u.expr(el)
	}
	u.write("]")
	return nil
}

func (u *unparser) VisitObjectBindingPattern(e *ObjectBindingPattern) error {
	u.write("{")
	for i, k := range e.Keys {
		if i > 0 {
			u.write(", ")
		}
		u.write(propertyName(k), ": ")
		u.expr(e.Values[i])
	}
	u.write("}")
	return nil
}

func (u *unparser) VisitCustom(e *Custom) error {
	u.write(vals.ToString(e.Value))
	return nil
}

func quote(s string) string {
	var sb strings.Builder
	sb.WriteByte('\'')
	for _, r := range s {
		switch r {
		case '\'', '\\':
			sb.WriteByte('\\')
			sb.WriteRune(r)
		case '\n':
			sb.WriteString(`\n`)
		case '\r':
			sb.WriteString(`\r`)
		case '\t':
			sb.WriteString(`\t`)
		default:
			sb.WriteRune(r)
		}
	}
	sb.WriteByte('\'')
	return sb.String()
}

func escapeTemplate(s string) string {
	return strings.NewReplacer("\\", `\\`, "`", "\\`", "${", "\\${").Replace(s)
}

func propertyName(k string) string {
	if isIdentifier(k) {
		return k
	}
	if _, err := strconv.ParseFloat(k, 64); err == nil {
		return k
	}
	return quote(k)
}

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_' || r == '$' || 'a' <= r && r <= 'z' || 'A' <= r && r <= 'Z':
		case i > 0 && '0' <= r && r <= '9':
		default:
			return false
		}
	}
	return true
}
