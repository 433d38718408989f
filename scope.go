package mixin

import "sync"

// memoState tracks where a binding's cached value stands within one
// Evaluator pass.
type memoState int

const (
	memoEmpty memoState = iota
	memoInProgress
	memoDone
	memoFailed
)

type memoEntry struct {
	state memoState
	value any
	err   error
}

// Scope is one node of the composed tree: the union-mount result of every
// declaration fragment offered at this position. A Scope with unfilled
// Extern or endomorphism-only parameters must be Called before its names
// can be read; Get forces and memoizes everything else lazily.
type Scope struct {
	name       string
	label      string
	path       []string
	parent     *Scope
	root       *Scope
	factory    bool
	children   map[string]*Scope
	childOrder []string
	bindings   map[string]*binding
	bindOrder  []string

	mu   sync.Mutex
	memo map[string]*memoEntry
	tags map[string]any

	extensions []Extension
}

// Name returns this scope's own name ("" for the composed root).
func (s *Scope) Name() string { return s.name }

// Path returns the sequence of names from the composed root down to this
// scope.
func (s *Scope) Path() []string { return append([]string{}, s.path...) }

// IsFactory reports whether this scope was declared with AsFactory or is
// named RequestScope: by
// convention it is meant to be surfaced as a Callable parameter rather than
// read directly.
func (s *Scope) IsFactory() bool { return s.factory }

// Child returns the named direct child scope, or nil if there is none.
func (s *Scope) Child(name string) *Scope { return s.children[name] }

// ChildNames returns direct child names in composer insertion order.
func (s *Scope) ChildNames() []string { return append([]string{}, s.childOrder...) }

// BindingNames returns every composed name at this scope, in composer
// insertion order.
func (s *Scope) BindingNames() []string { return append([]string{}, s.bindOrder...) }

// ParameterNames returns the names at this scope that must be supplied
// through Call before they can be read: Extern holes and endomorphism-only
// slots.
func (s *Scope) ParameterNames() []string {
	var out []string
	for _, name := range s.bindOrder {
		b := s.bindings[name]
		if b.kind == bindingExternSlot || b.kind == bindingEndoSlot {
			out = append(out, name)
		}
	}
	return out
}

// Get forces and returns the named binding's value, memoizing it for
// subsequent calls. It returns a MissingParameterError if name is an
// unfilled parameter slot — call Call first.
func (s *Scope) Get(name string) (any, error) {
	b, ok := s.bindings[name]
	if !ok {
		return nil, &UnresolvedNameError{Name: name, Origin: s.Path()}
	}
	if b.kind != bindingBase {
		if _, memoized := s.peekMemo(name); !memoized {
			return nil, &MissingParameterError{Name: name, Origin: s.Path()}
		}
	}
	ec := newEvalContext(s)
	return ec.evaluate(s, name)
}

func (s *Scope) peekMemo(name string) (*memoEntry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.memo[name]
	return e, ok && e.state == memoDone
}

// SetTag attaches debug/introspection metadata to this scope under key.
func (s *Scope) SetTag(key string, value any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.tags == nil {
		s.tags = map[string]any{}
	}
	s.tags[key] = value
}

// GetTag reads back metadata set with SetTag.
func (s *Scope) GetTag(key string) (any, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.tags[key]
	return v, ok
}
