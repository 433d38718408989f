package mixin

// resolveTarget describes what a lexical lookup landed on.
type resolveTarget struct {
	scope   *Scope
	isChild bool
	child   *Scope
}

// resolveLexical walks ancestors from start upward, inclusive, returning the
// first scope that has a child or a binding named name. A child shadows a
// binding of the same name at the same ancestor.
func resolveLexical(start *Scope, name string) (resolveTarget, error) {
	var searched []string
	for a := start; a != nil; a = a.parent {
		searched = append(searched, joinPath(a.Path()))
		if c, ok := a.children[name]; ok {
			return resolveTarget{scope: a, isChild: true, child: c}, nil
		}
		if _, ok := a.bindings[name]; ok {
			return resolveTarget{scope: a}, nil
		}
	}
	origin := []string{}
	if start != nil {
		origin = start.Path()
	}
	return resolveTarget{}, &UnresolvedNameError{Name: name, Origin: origin, Searched: searched}
}

// resolveProxyChild implements the "uncle search": it only ever matches a
// child scope, never a binding, walking ancestors from start upward.
func resolveProxyChild(start *Scope, name string) (*Scope, error) {
	var searched []string
	for a := start; a != nil; a = a.parent {
		searched = append(searched, joinPath(a.Path()))
		if c, ok := a.children[name]; ok {
			return c, nil
		}
	}
	origin := []string{}
	if start != nil {
		origin = start.Path()
	}
	return nil, &UnresolvedNameError{Name: name, Origin: origin, Searched: searched}
}

// selfShadowStart implements the self-shadow rule: a parameter sharing its
// own binding's name skips the owning scope entirely and starts searching
// one level higher than usual, at the owner's parent.
func selfShadowStart(owner *Scope, ownName, paramName string) *Scope {
	if paramName == ownName {
		return owner.parent
	}
	return owner
}
