package mixin

// Tag is a type-safe metadata key attachable to a Scope, letting callers
// stash their own state on a Scope without reaching into its internals.
type Tag[T any] struct{ key string }

// NewTag creates a Tag identified by key.
func NewTag[T any](key string) Tag[T] { return Tag[T]{key: key} }

// Get reads the tagged value off scope.
func (t Tag[T]) Get(scope *Scope) (T, bool) {
	v, ok := scope.GetTag(t.key)
	if !ok {
		var zero T
		return zero, false
	}
	return v.(T), true
}

// Set attaches value to scope under this tag.
func (t Tag[T]) Set(scope *Scope, value T) {
	scope.SetTag(t.key, value)
}
