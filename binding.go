package mixin

import "github.com/go-mixin/mixin/schema"

// bindingKind classifies a composed name by which arm of the arity law it
// satisfied (§ Composer).
type bindingKind int

const (
	// bindingBase holds exactly one Base contribution plus its Patches.
	bindingBase bindingKind = iota
	// bindingExternSlot holds one or more Extern holes and no Base, no
	// Patches: a pure parameter, filled in only by a Call.
	bindingExternSlot
	// bindingEndoSlot holds one or more endomorphism Patches and no Base,
	// no Extern: a parameter whose seed value a Call supplies, transformed
	// by the Patches before being cached.
	bindingEndoSlot
)

// binding is the result of union-mounting every Contribution sharing one
// name at one tree position.
type binding struct {
	name      string
	kind      bindingKind
	base      *Contribution
	patches   []*Contribution
	eager     bool
	published bool
	schema    schema.Schema
}

// mergeBinding applies the arity law to every Contribution sharing name at
// one tree position, in source order, returning the composed binding or a
// CompositionError.
func mergeBinding(path []string, name string, contribs []*Contribution, sourceLabels []string) (*binding, error) {
	b := &binding{name: name}
	var bases, externs, patches []*Contribution
	for _, c := range contribs {
		switch {
		case c.Kind.isBase():
			bases = append(bases, c)
		case c.Kind == KindExtern:
			externs = append(externs, c)
		case c.Kind.isPatch():
			patches = append(patches, c)
		}
		if c.Eager {
			b.eager = true
		}
		if c.Published {
			b.published = true
		}
		if c.Schema != nil {
			b.schema = c.Schema
		}
	}

	switch {
	case len(bases) == 1 && len(externs) == 0:
		b.kind = bindingBase
		b.base = bases[0]
		b.patches = patches
	case len(bases) == 0 && len(externs) >= 1 && len(patches) == 0:
		b.kind = bindingExternSlot
	case len(bases) == 0 && len(externs) == 0 && len(patches) >= 1 && allEndomorphism(patches):
		b.kind = bindingEndoSlot
		b.patches = patches
	default:
		return nil, &CompositionError{
			Path:    path,
			Name:    name,
			Bases:   len(bases),
			Patches: len(patches),
			Holes:   len(externs),
			Sources: sourceLabels,
		}
	}
	return b, nil
}

func allEndomorphism(patches []*Contribution) bool {
	for _, p := range patches {
		if !p.Endomorphism {
			return false
		}
	}
	return true
}

// paramNames reports the parameter names this binding's base and patches
// depend on.
func (b *binding) paramNames() []string {
	var out []string
	if b.base != nil {
		for _, p := range b.base.Params {
			out = append(out, p.Name)
		}
	}
	for _, p := range b.patches {
		for _, spec := range p.Params {
			out = append(out, spec.Name)
		}
	}
	return out
}
