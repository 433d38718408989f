package mixin

// OperationKind names the action an Extension is wrapping.
type OperationKind string

const (
	OpResolve OperationKind = "resolve"
	OpCall    OperationKind = "call"
)

// Operation describes what an Extension's Wrap is wrapping. The Evaluator
// issues only OpResolve operations; Call is not wrapped.
type Operation struct {
	Kind  OperationKind
	Scope *Scope
	Name  string
}

// Extension hooks into every name resolution, mirroring a middleware chain.
// Implementations usually embed BaseExtension and override only what they
// need.
type Extension interface {
	Name() string
	Order() int
	Init(root *Scope) error
	Wrap(next func() (any, error), op Operation) (any, error)
	OnError(err error, op Operation)
	Dispose(root *Scope) error
}

// BaseExtension supplies no-op defaults for every Extension method.
type BaseExtension struct {
	name string
}

// NewBaseExtension returns a BaseExtension identifying itself as name.
func NewBaseExtension(name string) BaseExtension { return BaseExtension{name: name} }

func (b *BaseExtension) Name() string                                         { return b.name }
func (b *BaseExtension) Order() int                                           { return 100 }
func (b *BaseExtension) Init(root *Scope) error                               { return nil }
func (b *BaseExtension) Wrap(next func() (any, error), op Operation) (any, error) { return next() }
func (b *BaseExtension) OnError(err error, op Operation)                      {}
func (b *BaseExtension) Dispose(root *Scope) error                            { return nil }
