package parse

import "fmt"

// token packs what the parser needs to know about a token into one integer:
//
//	bits 0-7    id, unique among tokens
//	bits 8-11   binary precedence, zero for non-binary tokens
//	bits 12-19  category flags
type token uint32

const (
	idMask         token = 0xff
	precedenceMask token = 0xf << 8
	precedenceBits       = 8
)

// Categories.
const (
	catBinary token = 1 << (12 + iota)
	catUnary
	catAssign
	// Keywords and identifiers; any of them can be a member name.
	catIdentifierName
	catLiteral
	// Tokens that may follow $parent without a member access.
	catAccessScopeTerminal
	catKeyword
)

func (t token) precedence() int { return int(t&precedenceMask) >> precedenceBits }

func (t token) is(cat token) bool { return t&cat != 0 }

func binary(id, prec int) token {
	return token(id) | token(prec)<<precedenceBits | catBinary | catAccessScopeTerminal
}

// Parsing levels, from the loosest binding to the tightest. A call to
// parser.expr with a minimal level parses the constructs at that level or
// tighter. Binary operators occupy levels between levelConditional and
// levelLeftHandSide.
const (
	levelVariadic = iota
	levelAssign
	levelConditional
	levelNullish
	levelOr
	levelAnd
	levelEquality
	levelRelational
	levelAdditive
	levelMultiplicative
	levelLeftHandSide
)

// Tokens.
const (
	tEOF        token = iota | catAccessScopeTerminal
	tIdentifier token = iota | catIdentifierName
	tString     token = iota | catLiteral
	tNumber     token = iota | catLiteral
	// A template part followed by ${.
	tTemplateContinuation token = iota
	// The last part of a template.
	tTemplateTail token = iota

	tTrue      token = iota | catIdentifierName | catKeyword | catLiteral
	tFalse     token = iota | catIdentifierName | catKeyword | catLiteral
	tNull      token = iota | catIdentifierName | catKeyword | catLiteral
	tUndefined token = iota | catIdentifierName | catKeyword | catLiteral
	tThis      token = iota | catIdentifierName | catKeyword
	tParent    token = iota | catIdentifierName | catKeyword
	tOf        token = iota | catIdentifierName | catKeyword
	tTypeof    token = iota | catIdentifierName | catKeyword | catUnary
	tVoid      token = iota | catIdentifierName | catKeyword | catUnary

	tOpenParen    token = iota
	tCloseParen   token = iota | catAccessScopeTerminal
	tOpenBrace    token = iota
	tCloseBrace   token = iota | catAccessScopeTerminal
	tOpenBracket  token = iota | catAccessScopeTerminal
	tCloseBracket token = iota | catAccessScopeTerminal
	tDot          token = iota
	tDotDot       token = iota
	tDotDotDot    token = iota
	tQuestionDot  token = iota
	tComma        token = iota | catAccessScopeTerminal
	tColon        token = iota | catAccessScopeTerminal
	tSemicolon    token = iota | catAccessScopeTerminal
	tQuestion     token = iota | catAccessScopeTerminal
	tArrow        token = iota
	tBacktick     token = iota
	tBar          token = iota | catAccessScopeTerminal
	tAmpersand    token = iota | catAccessScopeTerminal
	tExclamation  token = iota | catUnary

	tEquals         token = iota | catAssign | catAccessScopeTerminal
	tPlusEquals     token = iota | catAssign | catAccessScopeTerminal
	tMinusEquals    token = iota | catAssign | catAccessScopeTerminal
	tAsteriskEquals token = iota | catAssign | catAccessScopeTerminal
	tSlashEquals    token = iota | catAssign | catAccessScopeTerminal
)

// Binary operators. The ids continue after the last token above.
var (
	tQuestionQuestion        = binary(idBinaryBase+0, levelNullish)
	tBarBar                  = binary(idBinaryBase+1, levelOr)
	tAmpersandAmpersand      = binary(idBinaryBase+2, levelAnd)
	tEqualsEquals            = binary(idBinaryBase+3, levelEquality)
	tExclamationEquals       = binary(idBinaryBase+4, levelEquality)
	tEqualsEqualsEquals      = binary(idBinaryBase+5, levelEquality)
	tExclamationEqualsEquals = binary(idBinaryBase+6, levelEquality)
	tLessThan                = binary(idBinaryBase+7, levelRelational)
	tGreaterThan             = binary(idBinaryBase+8, levelRelational)
	tLessThanEquals          = binary(idBinaryBase+9, levelRelational)
	tGreaterThanEquals       = binary(idBinaryBase+10, levelRelational)
	tInstanceof              = binary(idBinaryBase+11, levelRelational) | catIdentifierName | catKeyword
	tIn                      = binary(idBinaryBase+12, levelRelational) | catIdentifierName | catKeyword
	tPlus                    = binary(idBinaryBase+13, levelAdditive) | catUnary
	tMinus                   = binary(idBinaryBase+14, levelAdditive) | catUnary
	tAsterisk                = binary(idBinaryBase+15, levelMultiplicative)
	tPercent                 = binary(idBinaryBase+16, levelMultiplicative)
	tSlash                   = binary(idBinaryBase+17, levelMultiplicative)
)

const idBinaryBase = int(tSlashEquals&idMask) + 1

var keywords = map[string]token{
	"true":       tTrue,
	"false":      tFalse,
	"null":       tNull,
	"undefined":  tUndefined,
	"$this":      tThis,
	"$parent":    tParent,
	"of":         tOf,
	"typeof":     tTypeof,
	"void":       tVoid,
	"instanceof": tInstanceof,
	"in":         tIn,
}

var tokenTexts = map[token]string{
	tEOF: "end of expression", tIdentifier: "identifier", tString: "string",
	tNumber: "number", tTemplateContinuation: "template", tTemplateTail: "template",

	tOpenParen: "(", tCloseParen: ")", tOpenBrace: "{", tCloseBrace: "}",
	tOpenBracket: "[", tCloseBracket: "]", tDot: ".", tDotDot: "..",
	tDotDotDot: "...", tQuestionDot: "?.", tComma: ",", tColon: ":",
	tSemicolon: ";", tQuestion: "?", tArrow: "=>", tBacktick: "`", tBar: "|",
	tAmpersand: "&", tExclamation: "!", tEquals: "=", tPlusEquals: "+=",
	tMinusEquals: "-=", tAsteriskEquals: "*=", tSlashEquals: "/=",

	tQuestionQuestion: "??", tBarBar: "||", tAmpersandAmpersand: "&&",
	tEqualsEquals: "==", tExclamationEquals: "!=", tEqualsEqualsEquals: "===",
	tExclamationEqualsEquals: "!==", tLessThan: "<", tGreaterThan: ">",
	tLessThanEquals: "<=", tGreaterThanEquals: ">=", tPlus: "+", tMinus: "-",
	tAsterisk: "*", tPercent: "%", tSlash: "/",
}

func init() {
	for text, t := range keywords {
		tokenTexts[t] = text
	}
}

func (t token) String() string {
	if s, ok := tokenTexts[t]; ok {
		return s
	}
	return fmt.Sprintf("!(bad token %#x)", uint32(t))
}
