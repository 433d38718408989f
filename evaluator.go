package mixin

import (
	"fmt"
	"runtime/debug"
	"sort"
)

// EvalContext carries the state of one top-level Get/Call's worth of
// evaluation: the resolution-path stack used for cycle reporting, and the
// sorted extension chain every resolve is wrapped in.
type EvalContext struct {
	root       *Scope
	stack      []stackFrame
	extensions []Extension
}

type stackFrame struct {
	scope *Scope
	name  string
}

func newEvalContext(scope *Scope) *EvalContext {
	exts := append([]Extension{}, scope.root.extensions...)
	sort.SliceStable(exts, func(i, j int) bool { return exts[i].Order() < exts[j].Order() })
	return &EvalContext{root: scope.root, extensions: exts}
}

// evaluate forces scope's binding named name, memoizing the result and
// detecting cycles via an in-progress marker plus the resolution-path
// stack.
func (ec *EvalContext) evaluate(scope *Scope, name string) (any, error) {
	scope.mu.Lock()
	if entry, ok := scope.memo[name]; ok {
		switch entry.state {
		case memoDone:
			v := entry.value
			scope.mu.Unlock()
			return v, nil
		case memoFailed:
			err := entry.err
			scope.mu.Unlock()
			return nil, err
		case memoInProgress:
			scope.mu.Unlock()
			return nil, ec.cycleError(scope, name)
		}
	}
	entry := &memoEntry{state: memoInProgress}
	scope.memo[name] = entry
	scope.mu.Unlock()

	ec.stack = append(ec.stack, stackFrame{scope, name})
	value, err := ec.wrapAndCompute(scope, name)
	ec.stack = ec.stack[:len(ec.stack)-1]

	scope.mu.Lock()
	if err != nil {
		entry.state, entry.err = memoFailed, err
	} else {
		entry.state, entry.value = memoDone, value
	}
	scope.mu.Unlock()
	return value, err
}

func (ec *EvalContext) wrapAndCompute(scope *Scope, name string) (any, error) {
	op := Operation{Kind: OpResolve, Scope: scope, Name: name}
	next := func() (any, error) { return ec.computeBinding(scope, name) }
	for i := len(ec.extensions) - 1; i >= 0; i-- {
		ext := ec.extensions[i]
		prev := next
		next = func() (any, error) { return ext.Wrap(prev, op) }
	}
	value, err := next()
	if err != nil {
		for _, ext := range ec.extensions {
			ext.OnError(err, op)
		}
	}
	return value, err
}

func (ec *EvalContext) cycleError(scope *Scope, name string) error {
	var names []string
	start := -1
	for i, f := range ec.stack {
		if f.scope == scope && f.name == name {
			start = i
			break
		}
	}
	if start >= 0 {
		for _, f := range ec.stack[start:] {
			names = append(names, joinPath(f.scope.Path())+"/"+f.name)
		}
	}
	names = append(names, joinPath(scope.Path())+"/"+name)
	return &CyclicDependencyError{Names: names}
}

func (ec *EvalContext) computeBinding(scope *Scope, name string) (any, error) {
	b, ok := scope.bindings[name]
	if !ok {
		return nil, &UnresolvedNameError{Name: name, Origin: scope.Path()}
	}
	switch b.kind {
	case bindingExternSlot, bindingEndoSlot:
		return nil, &MissingParameterError{Name: name, Origin: scope.Path()}
	default:
		return ec.computeBase(scope, name, b)
	}
}

func (ec *EvalContext) computeBase(scope *Scope, name string, b *binding) (any, error) {
	switch b.base.Kind {
	case KindAggregate:
		elements, err := ec.collectElements(scope, name, b.patches)
		if err != nil {
			return nil, err
		}
		value, err := b.base.Reduce(elements)
		if err != nil {
			return nil, err
		}
		return ec.resolveIfProxy(value)
	default: // KindResource
		args, err := ec.injectParams(scope, name, b.base.Params)
		if err != nil {
			return nil, err
		}
		value, err := invokeBody(scope, name, b.base.Body, ec, args, nil)
		if err != nil {
			return nil, err
		}
		for _, patch := range b.patches {
			value, err = ec.applyPatch(scope, name, patch, value)
			if err != nil {
				return nil, err
			}
		}
		return ec.resolveIfProxy(value)
	}
}

// collectElements runs every Patch attached to an Aggregate base and
// flattens their contributed element(s) in declaration order.
func (ec *EvalContext) collectElements(scope *Scope, name string, patches []*Contribution) ([]any, error) {
	var out []any
	for _, patch := range patches {
		args, err := ec.injectParams(scope, name, patch.Params)
		if err != nil {
			return nil, err
		}
		if patch.Kind == KindPatchMany {
			values, err := invokeManyBody(scope, name, patch.Many, ec, args, nil)
			if err != nil {
				return nil, err
			}
			out = append(out, values...)
		} else {
			v, err := invokeBody(scope, name, patch.Body, ec, args, nil)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
	}
	return out, nil
}

// applyPatch runs one Patch attached to a Resource base, chaining previous
// through it.
func (ec *EvalContext) applyPatch(scope *Scope, name string, patch *Contribution, previous any) (any, error) {
	args, err := ec.injectParams(scope, name, patch.Params)
	if err != nil {
		return nil, err
	}
	if patch.Kind == KindPatchMany {
		values, err := invokeManyBody(scope, name, patch.Many, ec, args, previous)
		if err != nil {
			return nil, err
		}
		current := previous
		for _, v := range values {
			current = v
		}
		return ec.resolveIfProxy(current)
	}
	v, err := invokeBody(scope, name, patch.Body, ec, args, previous)
	if err != nil {
		return nil, err
	}
	return ec.resolveIfProxy(v)
}

func (ec *EvalContext) injectParams(owner *Scope, ownName string, specs []ParamSpec) (Params, error) {
	values := make(map[string]any, len(specs))
	for _, spec := range specs {
		v, err := ec.resolveParam(owner, ownName, spec)
		if err != nil {
			return Params{}, err
		}
		values[spec.Name] = v
	}
	return newParams(values), nil
}

func (ec *EvalContext) resolveParam(owner *Scope, ownName string, spec ParamSpec) (any, error) {
	start := selfShadowStart(owner, ownName, spec.Name)
	if start == nil {
		return nil, &UnresolvedNameError{Name: spec.Name, Origin: owner.Path()}
	}
	if spec.WantsProxy {
		child, err := resolveProxyChild(start, spec.Name)
		if err != nil {
			return nil, err
		}
		return newScopeProxy(ec.root, child), nil
	}
	target, err := resolveLexical(start, spec.Name)
	if err != nil {
		return nil, err
	}
	if target.isChild {
		return target.child, nil
	}
	return ec.evaluate(target.scope, spec.Name)
}

// resolveIfProxy implements the symlink rule: a non-Proxy value is returned
// as-is; a Proxy names a link, chased via the ordinary evaluate path so
// cross-link cycles are caught by the same in-progress marker.
func (ec *EvalContext) resolveIfProxy(value any) (any, error) {
	proxy, ok := value.(*Proxy)
	if !ok {
		return value, nil
	}
	if proxy.name == "" {
		return proxy.scope, nil
	}
	return ec.evaluate(proxy.scope, proxy.name)
}

func invokeBody(scope *Scope, name string, body Body, ec *EvalContext, args Params, previous any) (result any, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &BodyError{Name: name, Path: scope.Path(), Cause: fmt.Errorf("panic: %v", r), Stack: debug.Stack()}
		}
	}()
	return body(ec, args, previous)
}

func invokeManyBody(scope *Scope, name string, body ManyBody, ec *EvalContext, args Params, previous any) (result []any, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &BodyError{Name: name, Path: scope.Path(), Cause: fmt.Errorf("panic: %v", r), Stack: debug.Stack()}
		}
	}()
	return body(ec, args, previous)
}

// forceEager walks the scope tree depth-first, forcing every eager Base
// binding before descending into children. Dependencies a binding needs are
// forced transitively by evaluate, so an eager binding always sees its
// dependencies already resolved regardless of declaration order; among
// independent eager bindings, composer insertion order is preserved. A scope
// whose parameter slots have not all been supplied is skipped here (its
// children are still visited); Call forces its eager bindings on the instance.
func forceEager(ec *EvalContext, scope *Scope) error {
	ready := true
	for _, p := range scope.ParameterNames() {
		if _, ok := scope.peekMemo(p); !ok {
			ready = false
			break
		}
	}
	for _, name := range scope.bindOrder {
		b := scope.bindings[name]
		if ready && b.eager && b.kind == bindingBase {
			if _, err := ec.evaluate(scope, name); err != nil {
				return err
			}
		}
	}
	for _, childName := range scope.childOrder {
		if err := forceEager(ec, scope.children[childName]); err != nil {
			return err
		}
	}
	return nil
}

// EvaluateOptions configures Evaluate beyond the default no-extension pass.
type EvaluateOptions struct {
	Extensions []Extension
}

// Evaluate composes decls, installs no extensions, forces every eager
// binding of every scope that needs no Call, and returns the resulting root
// Scope.
func Evaluate(decls ...*ScopeDecl) (*Scope, error) {
	return EvaluateOpts(EvaluateOptions{}, decls...)
}

// EvaluateOpts is Evaluate with extensions installed.
func EvaluateOpts(opts EvaluateOptions, decls ...*ScopeDecl) (*Scope, error) {
	root, err := Compose(decls...)
	if err != nil {
		return nil, err
	}
	root.extensions = opts.Extensions
	for _, ext := range opts.Extensions {
		if err := ext.Init(root); err != nil {
			return nil, err
		}
	}
	ec := newEvalContext(root)
	if err := forceEager(ec, root); err != nil {
		return nil, err
	}
	return root, nil
}
