package mixin

import "fmt"

// Proxy is a deferred navigation handle into the composed tree (the
// "uncle search" rule only ever produces one over a child Scope). Bodies
// that request one via WantsProxy can step it further with Navigate before
// resolving it to a concrete value with Force.
type Proxy struct {
	root  *Scope
	scope *Scope
	name  string // non-empty once the proxy names a pending Contribution
}

func newScopeProxy(root, scope *Scope) *Proxy {
	return &Proxy{root: root, scope: scope}
}

func newNamedProxy(root, scope *Scope, name string) *Proxy {
	return &Proxy{root: root, scope: scope, name: name}
}

// Navigate steps the proxy into a child scope or a pending Contribution
// named name. Navigating through an already-named (but not yet forced)
// Contribution is an error: force it first.
func (p *Proxy) Navigate(name string) (*Proxy, error) {
	if p.name != "" {
		return nil, fmt.Errorf("mixin: cannot navigate %q through unforced resource %q", name, p.name)
	}
	if child, ok := p.scope.children[name]; ok {
		return newScopeProxy(p.root, child), nil
	}
	if _, ok := p.scope.bindings[name]; ok {
		return newNamedProxy(p.root, p.scope, name), nil
	}
	return nil, &UnresolvedNameError{Name: name, Origin: p.scope.Path()}
}

// Force resolves the proxy to its terminal value: the Scope itself if the
// proxy never named a Contribution, or that Contribution's forced value
// otherwise.
func (p *Proxy) Force(ec *EvalContext) (any, error) {
	if p.name == "" {
		return p.scope, nil
	}
	return ec.evaluate(p.scope, p.name)
}

// targetPath reconstructs the absolute Path a proxy names. The Evaluator
// does not call it: a Proxy returned by a body is chased directly by
// resolveIfProxy.
func (p *Proxy) targetPath() Path {
	names := append([]string{}, p.scope.path...)
	if p.name != "" {
		names = append(names, p.name)
	}
	return AbsolutePath(names...)
}
