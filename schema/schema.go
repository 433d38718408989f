// Package schema provides lightweight value validation for Extern
// parameters, adapted from a generic metadata/validation layer the teacher
// repo kept as a separate subpackage.
package schema

import "fmt"

// ValidationError reports a value that failed a Schema's Validate.
type ValidationError struct {
	Message string
	Path    []string
}

func (e *ValidationError) Error() string {
	if len(e.Path) == 0 {
		return e.Message
	}
	return fmt.Sprintf("%v: %s", e.Path, e.Message)
}

// Schema validates and optionally coerces a value, returning the
// (possibly coerced) value or a *ValidationError.
type Schema interface {
	Validate(value any) (any, error)
}

// String validates string-typed values.
type String struct {
	MinLength int
	MaxLength int
}

func (s *String) Validate(value any) (any, error) {
	str, ok := value.(string)
	if !ok {
		return nil, &ValidationError{Message: fmt.Sprintf("expected string, got %T", value)}
	}
	if s.MinLength > 0 && len(str) < s.MinLength {
		return nil, &ValidationError{Message: fmt.Sprintf("length %d below minimum %d", len(str), s.MinLength)}
	}
	if s.MaxLength > 0 && len(str) > s.MaxLength {
		return nil, &ValidationError{Message: fmt.Sprintf("length %d exceeds maximum %d", len(str), s.MaxLength)}
	}
	return str, nil
}

// Number validates numeric values of type int, int32, int64, float32 or
// float64, checking them as float64; a valid value is returned unchanged.
type Number struct {
	Min, Max     float64
	HasMin       bool
	HasMax       bool
	Integer      bool
}

func (n *Number) Validate(value any) (any, error) {
	f, ok := toFloat64(value)
	if !ok {
		return nil, &ValidationError{Message: fmt.Sprintf("expected a number, got %T", value)}
	}
	if n.Integer && f != float64(int64(f)) {
		return nil, &ValidationError{Message: fmt.Sprintf("%v is not an integer", f)}
	}
	if n.HasMin && f < n.Min {
		return nil, &ValidationError{Message: fmt.Sprintf("%v below minimum %v", f, n.Min)}
	}
	if n.HasMax && f > n.Max {
		return nil, &ValidationError{Message: fmt.Sprintf("%v exceeds maximum %v", f, n.Max)}
	}
	return value, nil
}

func toFloat64(value any) (float64, bool) {
	switch v := value.(type) {
	case int:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case float32:
		return float64(v), true
	case float64:
		return v, true
	default:
		return 0, false
	}
}

// Func adapts an arbitrary function into a Schema.
type Func struct {
	Fn func(value any) (any, error)
}

func (f *Func) Validate(value any) (any, error) { return f.Fn(value) }
