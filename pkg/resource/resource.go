// Package resource implements the registry through which expressions find
// value converters and binding behaviors by name.
//
// Registries form a hierarchy: a child registry sees the resources of its
// ancestors and may shadow them. All registries of one hierarchy share a
// Signaler.
package resource

import (
	"errors"
	"fmt"
	"sort"

	"github.com/aurelia/aurelia-sub054/pkg/logutil"
	"github.com/aurelia/aurelia-sub054/pkg/observation"
	"github.com/lithammer/fuzzysearch/fuzzy"
)

var logger = logutil.GetLogger("[resource] ")

// Kind is the kind of a resource.
type Kind uint8

// Resource kinds.
const (
	ValueConverter Kind = iota + 1
	BindingBehavior
)

func (k Kind) String() string {
	switch k {
	case ValueConverter:
		return "value converter"
	case BindingBehavior:
		return "binding behavior"
	default:
		return fmt.Sprintf("!(bad resource kind %d)", uint8(k))
	}
}

// Errors returned by Register.
var (
	ErrDuplicate = errors.New("resource already registered")
	ErrEmptyName = errors.New("resource name is empty")
	ErrNilValue  = errors.New("resource is nil")
)

// Registry maps names to resources.
type Registry struct {
	parent   *Registry
	entries  map[Kind]map[string]any
	signaler *observation.Signaler
}

// New creates a root registry with a new Signaler.
func New() *Registry {
	return &Registry{entries: make(map[Kind]map[string]any), signaler: observation.NewSignaler()}
}

// NewChild creates a registry that falls back to r for lookups.
func (r *Registry) NewChild() *Registry {
	return &Registry{parent: r, entries: make(map[Kind]map[string]any), signaler: r.signaler}
}

// Signaler returns the Signaler shared by the registry hierarchy.
func (r *Registry) Signaler() *observation.Signaler { return r.signaler }

// Register adds a resource. Registering a name that is already registered in
// r itself is an error; shadowing a resource of an ancestor is not.
func (r *Registry) Register(kind Kind, name string, v any) error {
	if name == "" {
		return ErrEmptyName
	}
	if v == nil {
		return ErrNilValue
	}
	m, ok := r.entries[kind]
	if !ok {
		m = make(map[string]any)
		r.entries[kind] = m
	}
	if _, exists := m[name]; exists {
		return fmt.Errorf("%w: %s %q", ErrDuplicate, kind, name)
	}
	m[name] = v
	logger.Printf("registered %s %q", kind, name)
	return nil
}

// Get finds a resource in r or its ancestors.
func (r *Registry) Get(kind Kind, name string) (any, bool) {
	for ; r != nil; r = r.parent {
		if v, ok := r.entries[kind][name]; ok {
			return v, true
		}
	}
	return nil, false
}

// Names returns the sorted names of all resources of a kind visible from r.
func (r *Registry) Names(kind Kind) []string {
	seen := make(map[string]bool)
	var names []string
	for ; r != nil; r = r.parent {
		for name := range r.entries[kind] {
			if !seen[name] {
				seen[name] = true
				names = append(names, name)
			}
		}
	}
	sort.Strings(names)
	return names
}

// Maximum edit distance of a suggestion that is not a fuzzy match.
const maxSuggestionDistance = 2

// Suggest returns the registered name of a kind that is most similar to
// name, or "" if none is similar enough.
//
// Names that contain the characters of name in order are preferred, closest
// first; otherwise the name within a small edit distance is used.
func (r *Registry) Suggest(kind Kind, name string) string {
	names := r.Names(kind)
	if ranks := fuzzy.RankFindFold(name, names); len(ranks) > 0 {
		sort.Sort(ranks)
		return ranks[0].Target
	}
	best, bestDistance := "", maxSuggestionDistance+1
	for _, candidate := range names {
		if d := fuzzy.LevenshteinDistance(name, candidate); d < bestDistance {
			best, bestDistance = candidate, d
		}
	}
	return best
}
