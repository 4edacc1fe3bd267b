// Package parse implements the parser of binding expressions.
//
// The parser is a hand-written precedence climbing parser working on a
// stream of tokens from a table-driven scanner. Errors carry a diag.Code
// and the range of the offending token.
package parse

import (
	"strings"
	"sync"

	"github.com/aurelia/aurelia-sub054/pkg/expr"
	"github.com/aurelia/aurelia-sub054/pkg/logutil"
)

var logger = logutil.GetLogger("[parse] ")

// ExpressionType tells the parser what the source text is used for.
type ExpressionType uint8

// Expression types. They are flags, although only IsFunction and IsProperty
// are meaningfully combined.
const (
	// Plain is an ordinary expression.
	Plain ExpressionType = 0
	// Interpolation is text with embedded ${expressions}.
	Interpolation ExpressionType = 1 << (iota - 1)
	// IsIterator is "declaration of iterable", as used by repeaters.
	IsIterator
	// IsFunction is an expression used as an event handler.
	IsFunction
	// IsProperty is an expression bound to a property.
	IsProperty
	// IsCustom makes the parser wrap the source text in an expr.Custom
	// without parsing it.
	IsCustom
)

// The source name used in the context of errors.
const sourceName = "[expression]"

// Parse parses src as an expression of the given type.
//
// For Interpolation, it returns a nil expression and no error when src
// contains no ${. Empty sources of IsFunction and IsProperty parse to an
// empty string literal; other empty sources are an error.
func Parse(src string, t ExpressionType) (expr.Expr, error) {
	return parseWith(sourceName, src, t)
}

func parseWith(name, src string, t ExpressionType) (e expr.Expr, err error) {
	p := &parser{name: name, src: src}
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		if f, ok := r.(failure); ok {
			e, err = nil, f.err
			return
		}
		panic(r)
	}()

	switch {
	case t&IsCustom != 0:
		return &expr.Custom{Value: src}, nil
	case t&Interpolation != 0:
		if in := p.interpolation(); in != nil {
			return in, nil
		}
		return nil, nil
	case strings.TrimSpace(src) == "" && t&IsIterator == 0:
		if t&(IsFunction|IsProperty) != 0 {
			return expr.EmptyString, nil
		}
		p.failAt(0, len(src), ErrEmptyExpression, "empty expression")
	}

	p.next()
	if t&IsIterator != 0 {
		e = p.forOf()
	} else {
		e = p.expr(levelVariadic)
	}
	switch p.tok {
	case tEOF:
	case tOf:
		p.fail(ErrUnexpectedOf, "unexpected 'of' outside of an iterator expression")
	default:
		p.fail(ErrUnconsumedToken, "unconsumed token %s", p.tok)
	}
	return e, nil
}

// interpolation parses p.src as text with embedded ${expressions}. It
// returns nil if there are none.
func (p *parser) interpolation() *expr.Interpolation {
	var parts []string
	var exprs []expr.Expr
	var sb strings.Builder
	for i := 0; i < len(p.src); {
		switch c := p.src[i]; {
		case c == '$' && i+1 < len(p.src) && p.src[i+1] == '{':
			parts = append(parts, sb.String())
			sb.Reset()
			p.pos = i + 2
			p.next()
			exprs = append(exprs, p.expr(levelVariadic))
			switch p.tok {
			case tCloseBrace:
			case tEOF:
				p.failAt(i, len(p.src), ErrUnterminatedInterpolation, "unterminated interpolation")
			default:
				p.fail(ErrUnconsumedToken, "unconsumed token %s in interpolation", p.tok)
			}
			i = p.pos
		case c == '\\' && i+1 < len(p.src):
			r, next := p.unescape(i + 1)
			sb.WriteRune(r)
			i = next
		default:
			sb.WriteByte(c)
			i++
		}
	}
	if len(exprs) == 0 {
		return nil
	}
	return &expr.Interpolation{Parts: append(parts, sb.String()), Exprs: exprs}
}

// ExpressionParser parses expressions and caches the results, keyed by the
// source text. Since AST nodes are immutable, bindings created from the
// same source share one AST. Failed parses are not cached.
//
// An ExpressionParser is safe for concurrent use.
type ExpressionParser struct {
	mutex          sync.Mutex
	expressions    map[string]expr.Expr
	forOfs         map[string]*expr.ForOf
	interpolations map[string]*expr.Interpolation
}

// NewExpressionParser creates a new ExpressionParser with empty caches.
func NewExpressionParser() *ExpressionParser {
	return &ExpressionParser{
		expressions:    make(map[string]expr.Expr),
		forOfs:         make(map[string]*expr.ForOf),
		interpolations: make(map[string]*expr.Interpolation),
	}
}

// Parse is like the package-level Parse, but consults and fills the cache.
// Types other than Interpolation, IsIterator and IsCustom share the cache of
// plain expressions.
func (ep *ExpressionParser) Parse(src string, t ExpressionType) (expr.Expr, error) {
	switch {
	case t&IsCustom != 0:
		return &expr.Custom{Value: src}, nil
	case t&Interpolation != 0:
		in, err := ep.ParseInterpolation(src)
		if in == nil {
			return nil, err
		}
		return in, nil
	case t&IsIterator != 0:
		f, err := ep.ParseForOf(src)
		if f == nil {
			return nil, err
		}
		return f, nil
	}
	ep.mutex.Lock()
	defer ep.mutex.Unlock()
	if e, ok := ep.expressions[src]; ok {
		return e, nil
	}
	e, err := Parse(src, t)
	if err != nil {
		logger.Printf("parse %q: %v", src, err)
		return nil, err
	}
	ep.expressions[src] = e
	return e, nil
}

// ParseForOf parses src as "declaration of iterable".
func (ep *ExpressionParser) ParseForOf(src string) (*expr.ForOf, error) {
	ep.mutex.Lock()
	defer ep.mutex.Unlock()
	if f, ok := ep.forOfs[src]; ok {
		return f, nil
	}
	e, err := Parse(src, IsIterator)
	if err != nil {
		logger.Printf("parse iterator %q: %v", src, err)
		return nil, err
	}
	f := e.(*expr.ForOf)
	ep.forOfs[src] = f
	return f, nil
}

// ParseInterpolation parses src as an interpolation. It returns nil and no
// error if src has no ${.
func (ep *ExpressionParser) ParseInterpolation(src string) (*expr.Interpolation, error) {
	ep.mutex.Lock()
	defer ep.mutex.Unlock()
	if in, ok := ep.interpolations[src]; ok {
		return in, nil
	}
	e, err := Parse(src, Interpolation)
	if err != nil {
		logger.Printf("parse interpolation %q: %v", src, err)
		return nil, err
	}
	in, _ := e.(*expr.Interpolation)
	ep.interpolations[src] = in
	return in, nil
}
