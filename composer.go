package mixin

// Compose union-mounts decls at the tree root and returns the resulting
// Scope tree, without forcing any eager binding — use Evaluate for that.
func Compose(decls ...*ScopeDecl) (*Scope, error) {
	sources := flattenAll(decls)
	root := &Scope{}
	if err := populateNode(root, root, nil, "", sources); err != nil {
		return nil, err
	}
	return root, nil
}

// flattenOne expands decl's extends depth-first ahead of decl itself, per
// the extends flattening order: each extended fragment (and everything it
// in turn extends) appears before the fragment that extends it.
func flattenOne(d *ScopeDecl, seen map[*ScopeDecl]bool, out []*ScopeDecl) []*ScopeDecl {
	if d == nil || seen[d] {
		return out
	}
	seen[d] = true
	for _, e := range d.Extends {
		out = flattenOne(e, seen, out)
	}
	return append(out, d)
}

func flattenAll(decls []*ScopeDecl) []*ScopeDecl {
	seen := map[*ScopeDecl]bool{}
	var out []*ScopeDecl
	for _, d := range decls {
		out = flattenOne(d, seen, out)
	}
	return out
}

func populateNode(node, root *Scope, parent *Scope, name string, sources []*ScopeDecl) error {
	node.name = name
	node.parent = parent
	node.root = root
	node.children = map[string]*Scope{}
	node.bindings = map[string]*binding{}
	node.memo = map[string]*memoEntry{}
	if parent != nil {
		node.path = append(append([]string{}, parent.path...), name)
	}
	for _, s := range sources {
		if s.Factory || s.Name == "RequestScope" {
			node.factory = true
		}
		if node.label == "" {
			node.label = s.Label
		}
	}

	// Same-declaration collision check: a single fragment may not declare
	// both a child and a contribution sharing one name.
	for _, s := range sources {
		seen := map[string]bool{}
		for _, c := range s.Contributions {
			seen[c.Name] = true
		}
		for _, ch := range s.Children {
			if seen[ch.Name] {
				return &CompositionError{
					Path:    node.Path(),
					Name:    ch.Name,
					Sources: []string{s.Label},
				}
			}
		}
	}

	// Union children by first-appearance order, gathering every source
	// fragment's matching child before recursing.
	var childOrder []string
	childSeen := map[string]bool{}
	childFragments := map[string][]*ScopeDecl{}
	for _, s := range sources {
		for _, ch := range s.Children {
			if !childSeen[ch.Name] {
				childSeen[ch.Name] = true
				childOrder = append(childOrder, ch.Name)
			}
			childFragments[ch.Name] = append(childFragments[ch.Name], ch)
		}
	}
	for _, childName := range childOrder {
		child := &Scope{}
		flattened := flattenAll(childFragments[childName])
		if err := populateNode(child, root, node, childName, flattened); err != nil {
			return err
		}
		node.children[childName] = child
		node.childOrder = append(node.childOrder, childName)
	}

	// Union contributions by first-appearance order; names shadowed by a
	// composed child are dropped silently (children win over resources
	// contributed by a different source).
	var contribOrder []string
	contribSeen := map[string]bool{}
	contribsByName := map[string][]*Contribution{}
	labelsByName := map[string][]string{}
	for _, s := range sources {
		for i := range s.Contributions {
			c := &s.Contributions[i]
			if !contribSeen[c.Name] {
				contribSeen[c.Name] = true
				contribOrder = append(contribOrder, c.Name)
			}
			contribsByName[c.Name] = append(contribsByName[c.Name], c)
			labelsByName[c.Name] = append(labelsByName[c.Name], s.Label)
		}
	}
	for _, bindName := range contribOrder {
		if childSeen[bindName] {
			continue
		}
		b, err := mergeBinding(node.Path(), bindName, contribsByName[bindName], labelsByName[bindName])
		if err != nil {
			return err
		}
		node.bindings[bindName] = b
		node.bindOrder = append(node.bindOrder, bindName)
	}

	return nil
}
