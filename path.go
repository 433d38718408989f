package mixin

import "strings"

// Path is an absolute or relative navigation path into the composed tree,
// bypassing lexical search. Navigating a Path (navigatePath, unexported and
// not called by the Evaluator) only ever steps into direct children or
// bindings — it never climbs beyond its own Up count.
type Path struct {
	Absolute bool
	Up       int
	Names    []string
}

// AbsolutePath builds a Path rooted at the composed tree's root.
func AbsolutePath(names ...string) Path {
	return Path{Absolute: true, Names: names}
}

// RelativePath builds a Path starting up levels above the scope doing the
// navigating, then stepping into names.
func RelativePath(up int, names ...string) Path {
	return Path{Up: up, Names: names}
}

func (p Path) String() string {
	if p.Absolute {
		return "/" + strings.Join(p.Names, "/")
	}
	return strings.Repeat("../", p.Up) + strings.Join(p.Names, "/")
}

// navigatePath walks p from scope from, returning the scope a Contribution
// named at the final step lives in, and that Contribution's name — or an
// empty name if p resolves to a scope itself.
func navigatePath(from *Scope, p Path) (*Scope, string, error) {
	cur := from
	if p.Absolute {
		cur = from.root
	} else {
		for i := 0; i < p.Up; i++ {
			if cur.parent == nil {
				return nil, "", &UnresolvedNameError{Name: p.String(), Origin: from.Path()}
			}
			cur = cur.parent
		}
	}
	if len(p.Names) == 0 {
		return cur, "", nil
	}
	for _, n := range p.Names[:len(p.Names)-1] {
		child, ok := cur.children[n]
		if !ok {
			return nil, "", &UnresolvedNameError{Name: n, Origin: cur.Path()}
		}
		cur = child
	}
	last := p.Names[len(p.Names)-1]
	if child, ok := cur.children[last]; ok {
		return child, "", nil
	}
	if _, ok := cur.bindings[last]; ok {
		return cur, last, nil
	}
	return nil, "", &UnresolvedNameError{Name: last, Origin: cur.Path()}
}
