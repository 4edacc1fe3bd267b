package binding

import (
	"strings"

	"github.com/aurelia/aurelia-sub054/pkg/expr"
	"github.com/aurelia/aurelia-sub054/pkg/observation"
	"github.com/aurelia/aurelia-sub054/pkg/scope"
	"github.com/aurelia/aurelia-sub054/pkg/vals"
)

var _ Bindable = (*InterpolationBinding)(nil)

// InterpolationBinding binds an interpolation to a target, which receives
// the text with every expression replaced by its value.
//
// Each expression is bound by its own InterpolationPart, so that binding
// behaviors apply to the part they follow.
type InterpolationBinding struct {
	Interpolation *expr.Interpolation
	Target        observation.Observer
	Parts         []*InterpolationPart

	bound bool
}

// NewInterpolationBinding creates an InterpolationBinding.
func NewInterpolationBinding(in *expr.Interpolation, target observation.Observer, opts Options) *InterpolationBinding {
	b := &InterpolationBinding{Interpolation: in, Target: target}
	for _, e := range in.Exprs {
		p := &InterpolationPart{owner: b}
		p.init(p, e, ToView, opts)
		b.Parts = append(b.Parts, p)
	}
	return b
}

// Bind binds every part, then writes the text to the target.
func (b *InterpolationBinding) Bind(s *scope.Scope) error {
	if b.bound {
		if err := b.Unbind(); err != nil {
			return err
		}
	}
	for i, p := range b.Parts {
		if err := p.Bind(s); err != nil {
			for _, bound := range b.Parts[:i] {
				if uerr := bound.Unbind(); uerr != nil {
					logger.Printf("rolling back %s: %v", expr.Unparse(bound.Expr), uerr)
				}
			}
			return err
		}
	}
	b.bound = true
	return b.render(observation.FlagFromBind)
}

// Unbind unbinds every part. It returns the first error.
func (b *InterpolationBinding) Unbind() error {
	var first error
	for _, p := range b.Parts {
		if err := p.Unbind(); err != nil && first == nil {
			first = err
		}
	}
	b.bound = false
	return first
}

// IsBound returns whether the binding is bound.
func (b *InterpolationBinding) IsBound() bool { return b.bound }

// Text returns the text made of the current values of the parts.
func (b *InterpolationBinding) Text() string {
	var sb strings.Builder
	parts := b.Interpolation.Parts
	for i, p := range b.Parts {
		sb.WriteString(parts[i])
		if !vals.IsNullish(p.value) {
			sb.WriteString(vals.ToString(p.value))
		}
	}
	sb.WriteString(parts[len(parts)-1])
	return sb.String()
}

func (b *InterpolationBinding) render(flags observation.Flags) error {
	if !b.bound {
		return nil
	}
	return b.Target.SetValue(b.Text(), flags)
}

// InterpolationPart is the binding of one expression of an interpolation.
type InterpolationPart struct {
	Core
	owner *InterpolationBinding
	value any
}

// Bind binds the expression and evaluates it. It does not write the
// target; the InterpolationBinding does when every part is bound. The part
// only follows changes if its mode includes ToView.
func (p *InterpolationPart) Bind(s *scope.Scope) error {
	if p.bound {
		if err := p.Unbind(); err != nil {
			return err
		}
	}
	if err := p.bindExpr(s); err != nil {
		return err
	}
	v, err := p.evaluate(p.mode&ToView != 0)
	if err != nil {
		p.unbindExpr()
		return err
	}
	p.value = v
	return nil
}

func (p *InterpolationPart) Unbind() error {
	if !p.bound {
		return nil
	}
	return p.unbindExpr()
}

// HandleChange re-evaluates the expression and updates the text of the
// target.
func (p *InterpolationPart) HandleChange(_, _ any, _ observation.Flags) {
	if !p.bound || p.mode&ToView == 0 {
		return
	}
	v, err := p.evaluate(true)
	if err == nil {
		err = p.UpdateTarget(v)
	}
	p.setErr(err)
}

func (p *InterpolationPart) HandleCollectionChange(vals.Collection, *observation.IndexMap, observation.Flags) {
	p.HandleChange(nil, nil, observation.FlagNone)
}

// UpdateTarget records v as the value of the part and updates the text of
// the target.
func (p *InterpolationPart) UpdateTarget(v any) error {
	p.value = v
	return p.owner.render(observation.FlagNone)
}

// UpdateSource always fails, since interpolations only flow to the view.
func (p *InterpolationPart) UpdateSource(any) error { return ErrNoSource }
