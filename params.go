package mixin

import "fmt"

// Params is the named-argument bag a Body or ManyBody receives at
// invocation time. Each value is either a forced result or, for a
// WantsProxy parameter, a *Proxy.
type Params struct {
	values map[string]any
}

func newParams(values map[string]any) Params {
	return Params{values: values}
}

// Get returns the raw value bound to name, or nil if name was never
// declared as a parameter.
func (p Params) Get(name string) any {
	if p.values == nil {
		return nil
	}
	return p.values[name]
}

// Has reports whether name was declared as a parameter of this invocation.
func (p Params) Has(name string) bool {
	_, ok := p.values[name]
	return ok
}

// Proxy returns the named parameter as a *Proxy. It panics if the parameter
// wasn't declared with WantsProxy — a programming error, not a runtime
// condition callers should need to recover from.
func (p Params) Proxy(name string) *Proxy {
	v := p.Get(name)
	proxy, ok := v.(*Proxy)
	if !ok {
		panic(fmt.Sprintf("mixin: parameter %q was not injected as a proxy", name))
	}
	return proxy
}

// Arg type-asserts the named parameter to T, returning an error rather than
// panicking on mismatch.
func Arg[T any](p Params, name string) (T, error) {
	var zero T
	v := p.Get(name)
	if v == nil {
		return zero, fmt.Errorf("mixin: parameter %q was not supplied", name)
	}
	t, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("mixin: parameter %q is %T, not %T", name, v, zero)
	}
	return t, nil
}
