package observation

import "github.com/aurelia/aurelia-sub054/pkg/vals"

// change is a notification recorded by spy.
type change struct {
	New, Old any
}

// spy records the notifications it receives.
type spy struct {
	changes     []change
	collections []*IndexMap
}

func (s *spy) HandleChange(newValue, oldValue any, _ Flags) {
	s.changes = append(s.changes, change{newValue, oldValue})
}

func (s *spy) HandleCollectionChange(_ vals.Collection, m *IndexMap, _ Flags) {
	s.collections = append(s.collections, m.Clone())
}

// flushFunc adapts a function to Flushable. It is a pointer type so that it
// can be a map key.
type flushFunc struct{ f func() }

func (f *flushFunc) Flush() { f.f() }
