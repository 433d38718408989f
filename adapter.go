package mixin

import (
	"reflect"
	"strings"

	"github.com/go-mixin/mixin/schema"
)

// SourceContribution is the shape a Declaration Source Adapter offers
// FromSource for one Contribution.
type SourceContribution struct {
	Name         string
	Kind         ContributionKind
	ParamNames   []string
	ProxyParams  map[string]bool
	Body         Body
	Many         ManyBody
	Reduce       Reducer
	Eager        bool
	Published    bool
	Endomorphism bool
	Schema       schema.Schema
}

func (sc SourceContribution) toContribution() Contribution {
	specs := make([]ParamSpec, len(sc.ParamNames))
	for i, n := range sc.ParamNames {
		specs[i] = ParamSpec{Name: n, WantsProxy: sc.ProxyParams[n]}
	}
	return Contribution{
		Name:         sc.Name,
		Kind:         sc.Kind,
		Params:       specs,
		Body:         sc.Body,
		Many:         sc.Many,
		Reduce:       sc.Reduce,
		Eager:        sc.Eager,
		Published:    sc.Published,
		Endomorphism: sc.Endomorphism,
		Schema:       sc.Schema,
	}
}

// Source is the uniform interface a Declaration Source Adapter implements:
// it need only describe its own Contributions, Children, and Extends —
// never perform resolution or evaluation itself. Both class-shaped sources
// (one struct, fields as Contributions) and module-shaped sources (one
// package, subpackages as Children) satisfy this one interface.
type Source interface {
	Name() string
	Contributions() []SourceContribution
	Children() []Source
	Extends() []Source
}

// FromSource lifts a Source into a *ScopeDecl the Composer can union-mount.
func FromSource(s Source) *ScopeDecl {
	decl := NewScope(s.Name())
	for _, c := range s.Contributions() {
		decl.Contributions = append(decl.Contributions, c.toContribution())
	}
	for _, child := range s.Children() {
		decl.Children = append(decl.Children, FromSource(child))
	}
	for _, e := range s.Extends() {
		decl.Extends = append(decl.Extends, FromSource(e))
	}
	return decl
}

// StructSource is a minimal reflect-based Declaration Source Adapter: a
// class-shaped source built over one Go struct whose fields carry `mixin:"`
// tags describing what each field contributes. It is not meant to be a
// general-purpose framework — it exists to exercise the Source interface
// concretely, the way a hand-built one would.
//
// Recognized tag keys: name (defaults to the field name), kind (resource,
// aggregate, patch, patch_many, extern — default resource), params
// (|-separated parameter names), proxy (|-separated subset of params
// wanting a Proxy), plus the bare flags eager, published, endo. Keys and
// flags are separated by commas.
//
// Example:
//
//	type DB struct {
//		DatabasePath func() `mixin:"name=database_path,kind=extern"`
//		Connection   mixin.Body `mixin:"params=database_path,eager"`
//	}
type StructSource struct {
	name     string
	value    any
	children []Source
	extends  []Source
}

// StructSourceOption configures a StructSource built by NewStructSource.
type StructSourceOption func(*StructSource)

// WithStructChild adds a nested Source.
func WithStructChild(child Source) StructSourceOption {
	return func(s *StructSource) { s.children = append(s.children, child) }
}

// WithStructExtends has this source extend another.
func WithStructExtends(base Source) StructSourceOption {
	return func(s *StructSource) { s.extends = append(s.extends, base) }
}

// NewStructSource builds a StructSource named name over a pointer to a
// tagged struct value.
func NewStructSource(name string, value any, opts ...StructSourceOption) *StructSource {
	s := &StructSource{name: name, value: value}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *StructSource) Name() string      { return s.name }
func (s *StructSource) Children() []Source { return s.children }
func (s *StructSource) Extends() []Source  { return s.extends }

func (s *StructSource) Contributions() []SourceContribution {
	v := reflect.ValueOf(s.value)
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}
	t := v.Type()
	var out []SourceContribution
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag, ok := field.Tag.Lookup("mixin")
		if !ok {
			continue
		}
		sc := parseStructTag(field.Name, tag)
		fv := v.Field(i).Interface()
		switch sc.Kind {
		case KindPatchMany:
			sc.Many, _ = fv.(ManyBody)
		case KindAggregate:
			sc.Reduce, _ = fv.(Reducer)
		case KindExtern:
			// no body: a pure hole.
		default:
			sc.Body, _ = fv.(Body)
		}
		out = append(out, sc)
	}
	return out
}

func parseStructTag(fieldName, tag string) SourceContribution {
	sc := SourceContribution{Name: fieldName, Kind: KindResource, ProxyParams: map[string]bool{}}
	var proxyNames []string
	for _, part := range strings.Split(tag, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		key, value, _ := strings.Cut(part, "=")
		switch key {
		case "name":
			sc.Name = value
		case "kind":
			sc.Kind = parseKind(value)
		case "params":
			if value != "" {
				sc.ParamNames = strings.Split(value, "|")
			}
		case "proxy":
			if value != "" {
				proxyNames = strings.Split(value, "|")
			}
		case "eager":
			sc.Eager = true
		case "published":
			sc.Published = true
		case "endo":
			sc.Endomorphism = true
		}
	}
	for _, n := range proxyNames {
		sc.ProxyParams[n] = true
	}
	return sc
}

func parseKind(s string) ContributionKind {
	switch s {
	case "resource":
		return KindResource
	case "aggregate":
		return KindAggregate
	case "patch":
		return KindPatch
	case "patch_many":
		return KindPatchMany
	case "extern":
		return KindExtern
	default:
		return KindResource
	}
}

