package mixin

import "testing"

func TestCyclicDependencyIsDetected(t *testing.T) {
	root := NewScope("",
		WithContribution(Resource("a", []string{"b"}, func(ctx *EvalContext, args Params, previous any) (any, error) {
			return args.Get("b"), nil
		})),
		WithContribution(Resource("b", []string{"a"}, func(ctx *EvalContext, args Params, previous any) (any, error) {
			return args.Get("a"), nil
		})),
	)

	scope, err := Evaluate(root)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	_, err = scope.Get("a")
	if err == nil {
		t.Fatal("expected a CyclicDependencyError")
	}
	if _, ok := err.(*CyclicDependencyError); !ok {
		t.Fatalf("got %T: %v", err, err)
	}
}

func TestEagerForcesAtMaterialization(t *testing.T) {
	forced := false
	root := NewScope("",
		WithContribution(Resource("warm", nil, func(ctx *EvalContext, args Params, previous any) (any, error) {
			forced = true
			return "warm", nil
		}, Eager())),
	)

	if _, err := Evaluate(root); err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if !forced {
		t.Fatal("expected eager binding to be forced during Evaluate")
	}
}

func TestEagerBindingFailurePropagatesFromEvaluate(t *testing.T) {
	root := NewScope("",
		WithContribution(Resource("broken", nil, func(ctx *EvalContext, args Params, previous any) (any, error) {
			return nil, &BodyError{Name: "broken", Cause: errBoom}
		}, Eager())),
	)

	_, err := Evaluate(root)
	if err == nil {
		t.Fatal("expected Evaluate to surface the eager binding's error")
	}
}

func TestBodyPanicBecomesBodyError(t *testing.T) {
	root := NewScope("",
		WithContribution(Resource("boom", nil, func(ctx *EvalContext, args Params, previous any) (any, error) {
			panic("kaboom")
		})),
	)
	scope, err := Evaluate(root)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	_, err = scope.Get("boom")
	if err == nil {
		t.Fatal("expected an error")
	}
	if _, ok := err.(*BodyError); !ok {
		t.Fatalf("got %T: %v", err, err)
	}
}

var errBoom = simpleErr("boom")

type simpleErr string

func (e simpleErr) Error() string { return string(e) }
