package parse

import (
	"github.com/aurelia/aurelia-sub054/pkg/expr"
	"github.com/aurelia/aurelia-sub054/pkg/vals"
)

// parser holds the state of parsing one source text. The scanner methods in
// scanner.go and the parsing methods here share it.
type parser struct {
	name string
	src  string

	// The current token spans src[start:pos].
	start int
	pos   int
	tok   token
	// Name of an identifier or keyword, unescaped string, float64 of a
	// number, or cooked text of a template part.
	value any
	// Raw text of a template part.
	raw string
}

// expr parses an expression consisting of constructs at the given level or
// tighter ones.
func (p *parser) expr(level int) expr.Expr {
	var result expr.Expr
	if p.tok.is(catUnary) {
		op := p.tok.String()
		p.next()
		result = &expr.Unary{Op: op, Operand: p.expr(levelLeftHandSide)}
	} else {
		result = p.leftHandSide(p.primary())
	}
	if level >= levelLeftHandSide {
		return result
	}

	for p.tok.is(catBinary) && p.tok.precedence() > level {
		op, prec := p.tok.String(), p.tok.precedence()
		p.next()
		result = &expr.Binary{Op: op, Left: result, Right: p.expr(prec)}
	}

	if level <= levelConditional && p.tok == tQuestion {
		p.next()
		yes := p.expr(levelAssign)
		p.expect(tColon)
		result = &expr.Conditional{Cond: result, Yes: yes, No: p.expr(levelAssign)}
	}

	if level <= levelAssign && p.tok.is(catAssign) {
		target, ok := assignTarget(result)
		if !ok {
			p.fail(ErrNotAssignable, "cannot assign to %s", result.Kind())
		}
		op := p.tok.String()
		p.next()
		result = &expr.Assignment{Target: target, Value: p.expr(levelAssign), Op: op}
	}

	if level > levelVariadic {
		return result
	}
	for p.tok == tBar {
		p.next()
		if p.tok != tIdentifier {
			p.fail(ErrExpectedConverterName, "expected value converter name after |, got %s", p.tok)
		}
		name := p.value.(string)
		p.next()
		result = &expr.ValueConverter{Expr: result, Name: name, Args: p.resourceArgs()}
	}
	for p.tok == tAmpersand {
		p.next()
		if p.tok != tIdentifier {
			p.fail(ErrExpectedBehaviorName, "expected binding behavior name after &, got %s", p.tok)
		}
		name := p.value.(string)
		p.next()
		result = &expr.BindingBehavior{Expr: result, Name: name, Args: p.resourceArgs()}
	}
	return result
}

func assignTarget(e expr.Expr) (expr.Assignable, bool) {
	switch e := e.(type) {
	case *expr.AccessScope:
		return e, true
	case *expr.AccessMember:
		return e, !e.Optional
	case *expr.AccessKeyed:
		return e, !e.Optional
	}
	return nil, false
}

func (p *parser) resourceArgs() []expr.Expr {
	var args []expr.Expr
	for p.tok == tColon {
		p.next()
		args = append(args, p.expr(levelAssign))
	}
	return args
}

func (p *parser) expect(t token) {
	if p.tok != t {
		p.fail(ErrMissingToken, "expected %s, got %s", t, p.tok)
	}
	p.next()
}

func (p *parser) primary() expr.Expr {
	switch p.tok {
	case tParent:
		return p.parent()
	case tThis:
		p.next()
		return &expr.AccessThis{}
	case tIdentifier:
		name := p.value.(string)
		p.next()
		if p.tok == tArrow {
			return p.arrowBody([]*expr.BindingIdentifier{{Name: name}}, false)
		}
		if expr.IsGlobal(name) {
			return &expr.AccessGlobal{Name: name}
		}
		return &expr.AccessScope{Name: name}
	case tString, tNumber:
		v := p.value
		p.next()
		return &expr.PrimitiveLiteral{Value: v}
	case tTrue:
		p.next()
		return expr.True
	case tFalse:
		p.next()
		return expr.False
	case tNull:
		p.next()
		return expr.Null
	case tUndefined:
		p.next()
		return expr.Undefined
	case tOpenParen:
		if params, rest, ok := p.arrowParams(); ok {
			return p.arrowBody(params, rest)
		}
		p.next()
		e := p.expr(levelAssign)
		p.expect(tCloseParen)
		return e
	case tOpenBracket:
		return p.arrayLiteral()
	case tOpenBrace:
		return p.objectLiteral()
	case tTemplateContinuation, tTemplateTail:
		return p.template(nil)
	case tEOF:
		p.fail(ErrUnexpectedEnd, "unexpected end of expression")
	case tOf:
		p.fail(ErrUnexpectedOf, "unexpected 'of' outside of an iterator expression")
	}
	p.fail(ErrInvalidStart, "unexpected %s at start of expression", p.tok)
	panic("unreachable")
}

// parent parses a chain of $parent, optionally followed by a name.
func (p *parser) parent() expr.Expr {
	ancestor := 0
	for p.tok == tParent {
		ancestor++
		p.next()
		switch {
		case p.tok == tDot:
			p.next()
			if p.tok == tParent {
				continue
			}
			if !p.tok.is(catIdentifierName) {
				p.fail(ErrExpectedIdentifier, "expected identifier after $parent., got %s", p.tok)
			}
			name := p.value.(string)
			p.next()
			return &expr.AccessScope{Name: name, Ancestor: ancestor}
		case p.tok == tDotDot || p.tok == tDotDotDot:
			p.fail(ErrDoubleDot, "unexpected %s after $parent", p.tok)
		case p.tok.is(catAccessScopeTerminal):
			return &expr.AccessThis{Ancestor: ancestor}
		default:
			p.fail(ErrInvalidMemberAccess, "unexpected %s after $parent", p.tok)
		}
	}
	p.fail(ErrExpectedIdentifier, "expected identifier after $parent., got %s", p.tok)
	panic("unreachable")
}

// leftHandSide parses member accesses, calls and tagged templates following
// result.
func (p *parser) leftHandSide(result expr.Expr) expr.Expr {
	for {
		switch p.tok {
		case tDot, tQuestionDot:
			optional := p.tok == tQuestionDot
			p.next()
			if optional {
				switch p.tok {
				case tOpenBracket:
					result = p.keyed(result, true)
					continue
				case tOpenParen:
					result = p.call(result, true)
					continue
				}
			}
			if !p.tok.is(catIdentifierName) {
				p.fail(ErrExpectedIdentifier, "expected member name, got %s", p.tok)
			}
			name := p.value.(string)
			p.next()
			result = &expr.AccessMember{Object: result, Name: name, Optional: optional}
		case tDotDot, tDotDotDot:
			p.fail(ErrDoubleDot, "unexpected %s", p.tok)
		case tOpenBracket:
			result = p.keyed(result, false)
		case tOpenParen:
			result = p.call(result, false)
		case tTemplateContinuation, tTemplateTail:
			result = p.template(result)
		default:
			return result
		}
	}
}

func (p *parser) keyed(object expr.Expr, optional bool) expr.Expr {
	p.next()
	key := p.expr(levelAssign)
	p.expect(tCloseBracket)
	return &expr.AccessKeyed{Object: object, Key: key, Optional: optional}
}

// call turns callee and the arguments that follow into the most specific
// kind of call.
func (p *parser) call(callee expr.Expr, optional bool) expr.Expr {
	args := p.arguments()
	switch c := callee.(type) {
	case *expr.AccessScope:
		return &expr.CallScope{Name: c.Name, Args: args, Ancestor: c.Ancestor, Optional: optional}
	case *expr.AccessMember:
		return &expr.CallMember{
			Object: c.Object, Name: c.Name, Args: args,
			OptionalMember: c.Optional, OptionalCall: optional}
	}
	return &expr.CallFunction{Func: callee, Args: args, Optional: optional}
}

func (p *parser) arguments() []expr.Expr {
	p.expect(tOpenParen)
	var args []expr.Expr
	for p.tok != tCloseParen {
		args = append(args, p.expr(levelAssign))
		if p.tok != tComma {
			break
		}
		p.next()
	}
	p.expect(tCloseParen)
	return args
}

// arrowParams tries to parse a parenthesized parameter list followed by =>.
// If the tokens do not form one, it restores the state and returns false.
func (p *parser) arrowParams() ([]*expr.BindingIdentifier, bool, bool) {
	saved := *p
	p.next()
	var params []*expr.BindingIdentifier
	rest := false
	for p.tok != tCloseParen {
		if p.tok == tDotDotDot {
			rest = true
			p.next()
		}
		if p.tok != tIdentifier {
			*p = saved
			return nil, false, false
		}
		params = append(params, &expr.BindingIdentifier{Name: p.value.(string)})
		p.next()
		if rest || p.tok != tComma {
			break
		}
		p.next()
	}
	if p.tok != tCloseParen {
		*p = saved
		return nil, false, false
	}
	p.next()
	if p.tok != tArrow {
		*p = saved
		return nil, false, false
	}
	return params, rest, true
}

// arrowBody parses the body after =>, which is the current token.
func (p *parser) arrowBody(params []*expr.BindingIdentifier, rest bool) expr.Expr {
	p.next()
	if p.tok == tOpenBrace {
		p.fail(ErrInvalidStart, "arrow functions with a block body are not supported")
	}
	return &expr.ArrowFunction{Params: params, Body: p.expr(levelAssign), Rest: rest}
}

func (p *parser) arrayLiteral() expr.Expr {
	p.next()
	var elements []expr.Expr
	for p.tok != tCloseBracket {
		if p.tok == tComma {
			elements = append(elements, expr.Undefined)
			p.next()
			continue
		}
		elements = append(elements, p.expr(levelAssign))
		switch p.tok {
		case tComma:
			p.next()
		case tCloseBracket:
		default:
			p.fail(ErrMissingToken, "expected , or ], got %s", p.tok)
		}
	}
	p.next()
	return &expr.ArrayLiteral{Elements: elements}
}

func (p *parser) objectLiteral() expr.Expr {
	p.next()
	var keys []string
	var values []expr.Expr
	for p.tok != tCloseBrace {
		var key string
		shorthand := p.tok == tIdentifier
		switch {
		case p.tok.is(catIdentifierName), p.tok == tString:
			key = p.value.(string)
		case p.tok == tNumber:
			key = vals.FormatNumber(p.value.(float64))
		default:
			p.fail(ErrInvalidObjectProperty, "unexpected %s in object literal", p.tok)
		}
		p.next()
		switch {
		case p.tok == tColon:
			p.next()
			values = append(values, p.expr(levelAssign))
		case shorthand:
			values = append(values, &expr.AccessScope{Name: key})
		default:
			p.fail(ErrInvalidObjectProperty, "expected : after property %q", key)
		}
		keys = append(keys, key)
		switch p.tok {
		case tComma:
			p.next()
		case tCloseBrace:
		default:
			p.fail(ErrMissingToken, "expected , or }, got %s", p.tok)
		}
	}
	p.next()
	return &expr.ObjectLiteral{Keys: keys, Values: values}
}

// template parses a template literal whose first part is the current token.
// If tag is not nil, the template is tagged with it.
func (p *parser) template(tag expr.Expr) expr.Expr {
	var cooked, raw []string
	var exprs []expr.Expr
	for {
		cooked = append(cooked, p.value.(string))
		raw = append(raw, p.raw)
		if p.tok == tTemplateTail {
			p.next()
			break
		}
		p.next()
		exprs = append(exprs, p.expr(levelAssign))
		if p.tok != tCloseBrace {
			p.fail(ErrUnterminatedTemplate, "expected } in template, got %s", p.tok)
		}
		p.start = p.pos
		p.tok = p.scanTemplatePart()
	}
	if tag == nil {
		return &expr.Template{Cooked: cooked, Exprs: exprs}
	}
	return &expr.TaggedTemplate{Cooked: cooked, Raw: raw, Func: tag, Exprs: exprs}
}

// forOf parses "declaration of iterable".
func (p *parser) forOf() *expr.ForOf {
	decl := p.declaration()
	if p.tok != tOf {
		p.fail(ErrMissingToken, "expected of, got %s", p.tok)
	}
	p.next()
	return &expr.ForOf{Declaration: decl, Iterable: p.expr(levelVariadic)}
}

func (p *parser) declaration() expr.Assignable {
	switch p.tok {
	case tIdentifier:
		name := p.value.(string)
		p.next()
		return &expr.BindingIdentifier{Name: name}
	case tOpenBracket:
		p.next()
		var elements []expr.Assignable
		for p.tok != tCloseBracket {
			elements = append(elements, p.declaration())
			if p.tok != tComma {
				break
			}
			p.next()
		}
		p.expect(tCloseBracket)
		return &expr.ArrayBindingPattern{Elements: elements}
	case tOpenBrace:
		p.next()
		var keys []string
		var values []expr.Assignable
		for p.tok != tCloseBrace {
			if p.tok != tIdentifier && p.tok != tString {
				p.fail(ErrInvalidForDeclaration, "unexpected %s in object pattern", p.tok)
			}
			key := p.value.(string)
			p.next()
			var value expr.Assignable = &expr.BindingIdentifier{Name: key}
			if p.tok == tColon {
				p.next()
				value = p.declaration()
			}
			keys = append(keys, key)
			values = append(values, value)
			if p.tok != tComma {
				break
			}
			p.next()
		}
		p.expect(tCloseBrace)
		return &expr.ObjectBindingPattern{Keys: keys, Values: values}
	case tEOF:
		p.fail(ErrUnexpectedEnd, "unexpected end of expression")
	}
	p.fail(ErrInvalidForDeclaration, "unexpected %s on the left of of", p.tok)
	panic("unreachable")
}
