package expr

// Visitor has one method per node type. Expr.Accept calls the method for the
// node's type.
type Visitor interface {
	VisitAccessThis(*AccessThis) error
	VisitAccessScope(*AccessScope) error
	VisitAccessGlobal(*AccessGlobal) error
	VisitAccessMember(*AccessMember) error
	VisitAccessKeyed(*AccessKeyed) error
	VisitCallScope(*CallScope) error
	VisitCallMember(*CallMember) error
	VisitCallFunction(*CallFunction) error
	VisitBinary(*Binary) error
	VisitUnary(*Unary) error
	VisitConditional(*Conditional) error
	VisitAssignment(*Assignment) error
	VisitArrowFunction(*ArrowFunction) error
	VisitPrimitiveLiteral(*PrimitiveLiteral) error
	VisitArrayLiteral(*ArrayLiteral) error
	VisitObjectLiteral(*ObjectLiteral) error
	VisitTemplate(*Template) error
	VisitTaggedTemplate(*TaggedTemplate) error
	VisitValueConverter(*ValueConverter) error
	VisitBindingBehavior(*BindingBehavior) error
	VisitForOf(*ForOf) error
	VisitInterpolation(*Interpolation) error
	VisitBindingIdentifier(*BindingIdentifier) error
	VisitArrayBindingPattern(*ArrayBindingPattern) error
	VisitObjectBindingPattern(*ObjectBindingPattern) error
	VisitCustom(*Custom) error
}

func (e *AccessThis) Accept(v Visitor) error           { return v.VisitAccessThis(e) }
func (e *AccessScope) Accept(v Visitor) error          { return v.VisitAccessScope(e) }
func (e *AccessGlobal) Accept(v Visitor) error         { return v.VisitAccessGlobal(e) }
func (e *AccessMember) Accept(v Visitor) error         { return v.VisitAccessMember(e) }
func (e *AccessKeyed) Accept(v Visitor) error          { return v.VisitAccessKeyed(e) }
func (e *CallScope) Accept(v Visitor) error            { return v.VisitCallScope(e) }
func (e *CallMember) Accept(v Visitor) error           { return v.VisitCallMember(e) }
func (e *CallFunction) Accept(v Visitor) error         { return v.VisitCallFunction(e) }
func (e *Binary) Accept(v Visitor) error               { return v.VisitBinary(e) }
func (e *Unary) Accept(v Visitor) error                { return v.VisitUnary(e) }
func (e *Conditional) Accept(v Visitor) error          { return v.VisitConditional(e) }
func (e *Assignment) Accept(v Visitor) error           { return v.VisitAssignment(e) }
func (e *ArrowFunction) Accept(v Visitor) error        { return v.VisitArrowFunction(e) }
func (e *PrimitiveLiteral) Accept(v Visitor) error     { return v.VisitPrimitiveLiteral(e) }
func (e *ArrayLiteral) Accept(v Visitor) error         { return v.VisitArrayLiteral(e) }
func (e *ObjectLiteral) Accept(v Visitor) error        { return v.VisitObjectLiteral(e) }
func (e *Template) Accept(v Visitor) error             { return v.VisitTemplate(e) }
func (e *TaggedTemplate) Accept(v Visitor) error       { return v.VisitTaggedTemplate(e) }
func (e *ValueConverter) Accept(v Visitor) error       { return v.VisitValueConverter(e) }
func (e *BindingBehavior) Accept(v Visitor) error      { return v.VisitBindingBehavior(e) }
func (e *ForOf) Accept(v Visitor) error                { return v.VisitForOf(e) }
func (e *Interpolation) Accept(v Visitor) error        { return v.VisitInterpolation(e) }
func (e *BindingIdentifier) Accept(v Visitor) error    { return v.VisitBindingIdentifier(e) }
func (e *ArrayBindingPattern) Accept(v Visitor) error  { return v.VisitArrayBindingPattern(e) }
func (e *ObjectBindingPattern) Accept(v Visitor) error { return v.VisitObjectBindingPattern(e) }
func (e *Custom) Accept(v Visitor) error               { return v.VisitCustom(e) }
