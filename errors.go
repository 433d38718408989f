package mixin

import (
	"fmt"
	"strings"
)

func joinPath(p []string) string {
	return "/" + strings.Join(p, "/")
}

// CompositionError reports an arity-law violation discovered while
// union-mounting declarations at a single name.
type CompositionError struct {
	Path    []string
	Name    string
	Bases   int
	Patches int
	Holes   int
	Sources []string
}

func (e *CompositionError) Error() string {
	return fmt.Sprintf("mixin: composition error at %s/%s: %d base(s), %d patch(es), %d hole(s) from %v",
		joinPath(e.Path), e.Name, e.Bases, e.Patches, e.Holes, e.Sources)
}

// UnresolvedNameError reports a lexical or path lookup that found nothing.
type UnresolvedNameError struct {
	Name     string
	Origin   []string
	Searched []string
}

func (e *UnresolvedNameError) Error() string {
	if len(e.Searched) == 0 {
		return fmt.Sprintf("mixin: unresolved name %q from %s", e.Name, joinPath(e.Origin))
	}
	return fmt.Sprintf("mixin: unresolved name %q from %s (searched %v)", e.Name, joinPath(e.Origin), e.Searched)
}

// CyclicDependencyError reports a cycle discovered during evaluation.
type CyclicDependencyError struct {
	Names []string
}

func (e *CyclicDependencyError) Error() string {
	return fmt.Sprintf("mixin: cyclic dependency: %s", strings.Join(e.Names, " -> "))
}

// MissingParameterError reports a read of a parameter slot that has not yet
// been supplied by a Call.
type MissingParameterError struct {
	Name   string
	Origin []string
}

func (e *MissingParameterError) Error() string {
	return fmt.Sprintf("mixin: %s/%s has not been supplied; call the scope first", joinPath(e.Origin), e.Name)
}

// CallError reports a usage error made against a scope's call signature.
type CallError struct {
	Missing    []string
	Unexpected []string
}

func (e *CallError) Error() string {
	return fmt.Sprintf("mixin: call error: missing=%v unexpected=%v", e.Missing, e.Unexpected)
}

// BodyError wraps a panic or error surfaced by a Base or Patch body.
type BodyError struct {
	Name  string
	Path  []string
	Cause error
	Stack []byte
}

func (e *BodyError) Error() string {
	return fmt.Sprintf("mixin: %s/%s: %v", joinPath(e.Path), e.Name, e.Cause)
}

func (e *BodyError) Unwrap() error { return e.Cause }
