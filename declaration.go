package mixin

import "github.com/go-mixin/mixin/schema"

// ContributionKind distinguishes the five shapes a Contribution can take.
type ContributionKind int

const (
	// KindResource is a Base that produces a single value, threading a
	// previous value through any attached Patches in declaration order.
	KindResource ContributionKind = iota
	// KindAggregate is a Base that reduces every attached Patch's element(s)
	// in one call, via Reduce.
	KindAggregate
	// KindPatch transforms (Resource base) or contributes one element
	// (Aggregate base).
	KindPatch
	// KindPatchMany is the patch_many variant: one invocation yields an
	// ordered sequence of replacements or elements.
	KindPatchMany
	// KindExtern is a pure hole: a parameter only a Call can fill.
	KindExtern
)

func (k ContributionKind) String() string {
	switch k {
	case KindResource:
		return "resource"
	case KindAggregate:
		return "aggregate"
	case KindPatch:
		return "patch"
	case KindPatchMany:
		return "patch_many"
	case KindExtern:
		return "extern"
	default:
		return "unknown"
	}
}

func (k ContributionKind) isBase() bool {
	return k == KindResource || k == KindAggregate
}

func (k ContributionKind) isPatch() bool {
	return k == KindPatch || k == KindPatchMany
}

// ParamSpec names one formal parameter of a Contribution body. Go erases a
// function's argument names at compile time, so unlike the language this
// framework was distilled from, names must be declared explicitly here
// rather than recovered by reflecting over the body's signature.
type ParamSpec struct {
	Name       string
	WantsProxy bool
}

// Body produces a Base's value, or a Patch's replacement. previous carries
// the accumulated value for a Patch attached to a Resource base or to an
// endomorphism-only slot (where the chain starts from the Call's seed), and
// is nil for every other case.
type Body func(ctx *EvalContext, args Params, previous any) (any, error)

// ManyBody is the patch_many variant of Body: one call yields an ordered
// sequence of elements (Aggregate base) or successive replacements
// (Resource base), applied atomically.
type ManyBody func(ctx *EvalContext, args Params, previous any) ([]any, error)

// Reducer merges every Patch's contributed element(s) into an Aggregate
// base's final value.
type Reducer func(elements []any) (any, error)

// Contribution is one fragment a declaration source offers for a name.
// Several Contributions sharing a name across union-mounted sources are
// merged by the Composer under the arity law (§ Composer).
type Contribution struct {
	Name         string
	Kind         ContributionKind
	Params       []ParamSpec
	Body         Body
	Many         ManyBody
	Reduce       Reducer
	Eager        bool
	Published    bool
	Endomorphism bool
	Schema       schema.Schema // only meaningful on an Extern contribution
}

// ContribOption adjusts flags on a Contribution built by one of the
// constructors below.
type ContribOption func(*Contribution)

// Eager marks a Base contribution to be forced as soon as its owning scope
// is materialized, rather than on first read.
func Eager() ContribOption { return func(c *Contribution) { c.Eager = true } }

// Published marks a name as part of its scope's public surface. Unpublished
// names are still resolvable lexically by descendants, but callers outside
// the tree should prefer published names.
func Published() ContribOption { return func(c *Contribution) { c.Published = true } }

// AsEndomorphism marks a Patch as same-type-preserving, making it eligible
// to stand alone (no Base, no Extern) in a binding whose parameter value is
// supplied only once the enclosing scope is called.
func AsEndomorphism() ContribOption { return func(c *Contribution) { c.Endomorphism = true } }

// WithValueSchema attaches a validation Schema to an Extern contribution,
// checked against whatever value a Call supplies for it.
func WithValueSchema(s schema.Schema) ContribOption {
	return func(c *Contribution) { c.Schema = s }
}

func paramSpecs(names []string) []ParamSpec {
	specs := make([]ParamSpec, len(names))
	for i, n := range names {
		specs[i] = ParamSpec{Name: n}
	}
	return specs
}

// Resource declares a Base contribution producing one value from its named
// parameters.
func Resource(name string, params []string, body Body, opts ...ContribOption) Contribution {
	c := Contribution{Name: name, Kind: KindResource, Params: paramSpecs(params), Body: body}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// Aggregate declares a Base contribution that reduces every attached
// Patch's element(s) via reduce.
func Aggregate(name string, reduce Reducer, opts ...ContribOption) Contribution {
	c := Contribution{Name: name, Kind: KindAggregate, Reduce: reduce}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// Patch declares a single-value transform (against a Resource base) or
// element contribution (against an Aggregate base).
func Patch(name string, params []string, body Body, opts ...ContribOption) Contribution {
	c := Contribution{Name: name, Kind: KindPatch, Params: paramSpecs(params), Body: body}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// PatchMany declares the patch_many variant of Patch.
func PatchMany(name string, params []string, body ManyBody, opts ...ContribOption) Contribution {
	c := Contribution{Name: name, Kind: KindPatchMany, Params: paramSpecs(params), Many: body}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// Extern declares a pure hole: a parameter with no Base, filled in only by
// the Call that materializes an Instance Scope over this name's owning
// scope.
func Extern(name string, opts ...ContribOption) Contribution {
	c := Contribution{Name: name, Kind: KindExtern}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// WantsProxy marks one of a Contribution's parameters to receive a Proxy
// over the resolved child scope instead of a forced value. It returns a copy
// of spec with WantsProxy set, for use in a Contribution's Params literal,
// e.g. mixin.WantsProxy(mixin.ParamSpec{Name: "siblings"}).
func WantsProxy(spec ParamSpec) ParamSpec {
	spec.WantsProxy = true
	return spec
}

// ScopeDecl is one declaration fragment for a tree position: a name, its own
// Contributions, its Children by name, and any other ScopeDecls it extends.
// Several fragments union-mount at the same position when passed together
// to Compose or Evaluate, or when one extends another.
type ScopeDecl struct {
	Name          string
	Label         string
	Contributions []Contribution
	Children      []*ScopeDecl
	Extends       []*ScopeDecl
	Factory       bool
}

// ScopeDeclOption configures a ScopeDecl built by NewScope.
type ScopeDeclOption func(*ScopeDecl)

// NewScope builds a declaration fragment named name.
func NewScope(name string, opts ...ScopeDeclOption) *ScopeDecl {
	d := &ScopeDecl{Name: name, Label: name}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// WithContribution adds one Contribution to the fragment.
func WithContribution(c Contribution) ScopeDeclOption {
	return func(d *ScopeDecl) { d.Contributions = append(d.Contributions, c) }
}

// WithChild adds one nested fragment.
func WithChild(child *ScopeDecl) ScopeDeclOption {
	return func(d *ScopeDecl) { d.Children = append(d.Children, child) }
}

// WithExtends has this fragment inherit one or more other fragments,
// flattened depth-first ahead of it at composition time (§ Composer,
// extends flattening).
func WithExtends(bases ...*ScopeDecl) ScopeDeclOption {
	return func(d *ScopeDecl) { d.Extends = append(d.Extends, bases...) }
}

// AsFactory marks this fragment's composed scope as a factory: a scope
// ordinarily surfaced as a Callable parameter to whichever ancestor
// resource names it, rather than read for its own value.
func AsFactory() ScopeDeclOption {
	return func(d *ScopeDecl) { d.Factory = true }
}

// WithLabel overrides the diagnostic label used to identify this fragment in
// CompositionError messages, useful when several same-named fragments are
// union-mounted together.
func WithLabel(label string) ScopeDeclOption {
	return func(d *ScopeDecl) { d.Label = label }
}
