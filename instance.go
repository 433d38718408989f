package mixin

import "fmt"

// Call validates args against this scope's parameter names and produces an
// Instance Scope: a fresh scope sharing this one's children and bindings
// but with its own memo table, installed with args's values and with every
// endomorphism-only slot's Patches already applied to its supplied seed. The
// instance shares this scope's lexical parent, so ancestor lookups continue
// to see the outer composed tree exactly as they would through the factory
// scope itself.
func (factory *Scope) Call(args map[string]any) (*Scope, error) {
	required := map[string]bool{}
	for _, n := range factory.ParameterNames() {
		required[n] = true
	}

	var missing, unexpected []string
	for n := range required {
		if _, ok := args[n]; !ok {
			missing = append(missing, n)
		}
	}
	for n := range args {
		if !required[n] {
			unexpected = append(unexpected, n)
		}
	}
	if len(missing) > 0 || len(unexpected) > 0 {
		return nil, &CallError{Missing: missing, Unexpected: unexpected}
	}

	for name, v := range args {
		b := factory.bindings[name]
		if b.kind == bindingExternSlot && b.schema != nil {
			if _, err := b.schema.Validate(v); err != nil {
				return nil, fmt.Errorf("mixin: validating extern %q: %w", name, err)
			}
		}
	}

	instance := &Scope{
		name:       factory.name,
		label:      factory.label,
		path:       factory.path,
		parent:     factory.parent,
		root:       factory.root,
		factory:    factory.factory,
		children:   factory.children,
		childOrder: factory.childOrder,
		bindings:   factory.bindings,
		bindOrder:  factory.bindOrder,
		memo:       map[string]*memoEntry{},
	}

	ec := newEvalContext(instance)
	for name, v := range args {
		b := factory.bindings[name]
		if b.kind == bindingExternSlot {
			instance.memo[name] = &memoEntry{state: memoDone, value: v}
			continue
		}
		final, err := applyEndoPatches(ec, instance, name, b.patches, v)
		if err != nil {
			return nil, err
		}
		instance.memo[name] = &memoEntry{state: memoDone, value: final}
	}

	if err := forceEager(ec, instance); err != nil {
		return nil, err
	}
	return instance, nil
}

func applyEndoPatches(ec *EvalContext, scope *Scope, name string, patches []*Contribution, seed any) (any, error) {
	value := seed
	for _, patch := range patches {
		var err error
		value, err = ec.applyPatch(scope, name, patch, value)
		if err != nil {
			return nil, err
		}
	}
	return value, nil
}
