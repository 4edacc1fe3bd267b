package expr

import "fmt"

// Kind identifies the type of an AST node.
type Kind uint8

// Node kinds.
const (
	KindAccessThis Kind = iota + 1
	KindAccessScope
	KindAccessGlobal
	KindAccessMember
	KindAccessKeyed
	KindCallScope
	KindCallMember
	KindCallFunction
	KindBinary
	KindUnary
	KindConditional
	KindAssign
	KindArrowFunction
	KindPrimitiveLiteral
	KindArrayLiteral
	KindObjectLiteral
	KindTemplate
	KindTaggedTemplate
	KindValueConverter
	KindBindingBehavior
	KindForOf
	KindInterpolation
	KindBindingIdentifier
	KindArrayBindingPattern
	KindObjectBindingPattern
	KindCustom
)

type capability uint16

const (
	capPrimary capability = 1 << iota
	capLeftHandSide
	capLiteral
	capAssignable
	capBind
	capUnbind
	capResource
	capCall
	capForDeclaration
)

var kindInfo = [...]struct {
	name string
	caps capability
}{
	KindAccessThis:           {"AccessThis", capPrimary | capLeftHandSide},
	KindAccessScope:          {"AccessScope", capPrimary | capLeftHandSide | capAssignable},
	KindAccessGlobal:         {"AccessGlobal", capPrimary | capLeftHandSide},
	KindAccessMember:         {"AccessMember", capLeftHandSide | capAssignable},
	KindAccessKeyed:          {"AccessKeyed", capLeftHandSide | capAssignable},
	KindCallScope:            {"CallScope", capLeftHandSide | capCall},
	KindCallMember:           {"CallMember", capLeftHandSide | capCall},
	KindCallFunction:         {"CallFunction", capLeftHandSide | capCall},
	KindBinary:               {"Binary", 0},
	KindUnary:                {"Unary", 0},
	KindConditional:          {"Conditional", 0},
	KindAssign:               {"Assign", capAssignable},
	KindArrowFunction:        {"ArrowFunction", 0},
	KindPrimitiveLiteral:     {"PrimitiveLiteral", capPrimary | capLeftHandSide | capLiteral},
	KindArrayLiteral:         {"ArrayLiteral", capPrimary | capLeftHandSide | capLiteral},
	KindObjectLiteral:        {"ObjectLiteral", capPrimary | capLeftHandSide | capLiteral},
	KindTemplate:             {"Template", capPrimary | capLeftHandSide | capLiteral},
	KindTaggedTemplate:       {"TaggedTemplate", capLeftHandSide | capCall},
	KindValueConverter:       {"ValueConverter", capAssignable | capBind | capUnbind | capResource},
	KindBindingBehavior:      {"BindingBehavior", capAssignable | capBind | capUnbind | capResource},
	KindForOf:                {"ForOf", capBind | capUnbind},
	KindInterpolation:        {"Interpolation", 0},
	KindBindingIdentifier:    {"BindingIdentifier", capAssignable | capForDeclaration},
	KindArrayBindingPattern:  {"ArrayBindingPattern", capAssignable | capForDeclaration},
	KindObjectBindingPattern: {"ObjectBindingPattern", capAssignable | capForDeclaration},
	KindCustom:               {"Custom", 0},
}

func (k Kind) has(c capability) bool {
	return int(k) < len(kindInfo) && kindInfo[k].caps&c != 0
}

// IsPrimary reports whether the kind is a primary expression.
func (k Kind) IsPrimary() bool { return k.has(capPrimary) }

// IsLeftHandSide reports whether the kind can be the object of a member
// access or call without parentheses.
func (k Kind) IsLeftHandSide() bool { return k.has(capLeftHandSide) }

// IsLiteral reports whether the kind is a literal.
func (k Kind) IsLiteral() bool { return k.has(capLiteral) }

// IsAssignable reports whether expressions of the kind can be assigned to.
func (k Kind) IsAssignable() bool { return k.has(capAssignable) }

// HasBind reports whether expressions of the kind must be bound.
func (k Kind) HasBind() bool { return k.has(capBind) }

// HasUnbind reports whether expressions of the kind must be unbound.
func (k Kind) HasUnbind() bool { return k.has(capUnbind) }

// IsResource reports whether the kind refers to a named resource.
func (k Kind) IsResource() bool { return k.has(capResource) }

// IsCall reports whether the kind is a function call.
func (k Kind) IsCall() bool { return k.has(capCall) }

// IsForDeclaration reports whether the kind can be the declaration of a
// for-of statement.
func (k Kind) IsForDeclaration() bool { return k.has(capForDeclaration) }

func (k Kind) String() string {
	if k > 0 && int(k) < len(kindInfo) {
		return kindInfo[k].name
	}
	return fmt.Sprintf("!(bad kind %d)", uint8(k))
}
