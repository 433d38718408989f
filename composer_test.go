package mixin

import "testing"

func TestComposeArityErrorOnTwoBases(t *testing.T) {
	root := NewScope("",
		WithContribution(Resource("x", nil, func(ctx *EvalContext, args Params, previous any) (any, error) { return 1, nil })),
		WithContribution(Resource("x", nil, func(ctx *EvalContext, args Params, previous any) (any, error) { return 2, nil })),
	)

	_, err := Compose(root)
	if err == nil {
		t.Fatal("expected a CompositionError")
	}
	var compErr *CompositionError
	if !asError(err, &compErr) {
		t.Fatalf("got %T: %v", err, err)
	}
	if compErr.Bases != 2 {
		t.Fatalf("got Bases=%d, want 2", compErr.Bases)
	}
}

func TestComposeArityErrorOnMixedPatchEndomorphism(t *testing.T) {
	root := NewScope("",
		WithContribution(Patch("x", nil, func(ctx *EvalContext, args Params, previous any) (any, error) { return previous, nil }, AsEndomorphism())),
		WithContribution(Patch("x", nil, func(ctx *EvalContext, args Params, previous any) (any, error) { return previous, nil })),
	)

	_, err := Compose(root)
	if err == nil {
		t.Fatal("expected a CompositionError: not every patch is an endomorphism")
	}
}

func TestUnionMountMergesContributionsAcrossFragments(t *testing.T) {
	base := NewScope("",
		WithContribution(Resource("greeting", nil, func(ctx *EvalContext, args Params, previous any) (any, error) {
			return "hi", nil
		})),
	)
	mixinFragment := NewScope("",
		WithContribution(Patch("greeting", nil, func(ctx *EvalContext, args Params, previous any) (any, error) {
			return previous.(string) + "!", nil
		})),
	)

	scope, err := Evaluate(base, mixinFragment)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	got, err := scope.Get("greeting")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got != "hi!" {
		t.Fatalf("got %q", got)
	}
}

func TestChildShadowsResourceFromSiblingFragment(t *testing.T) {
	declaresResource := NewScope("",
		WithContribution(Resource("db", nil, func(ctx *EvalContext, args Params, previous any) (any, error) {
			return "resource-db", nil
		})),
	)
	declaresChild := NewScope("",
		WithChild(NewScope("db",
			WithContribution(Resource("marker", nil, func(ctx *EvalContext, args Params, previous any) (any, error) {
				return "child-db", nil
			})),
		)),
	)

	scope, err := Evaluate(declaresResource, declaresChild)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if scope.Child("db") == nil {
		t.Fatal("expected child scope db to win over sibling resource")
	}
	if _, ok := scope.bindings["db"]; ok {
		t.Fatal("expected resource db to be shadowed out of bindings")
	}
}

func TestSameFragmentChildAndResourceCollisionIsAnError(t *testing.T) {
	bad := NewScope("",
		WithContribution(Resource("db", nil, func(ctx *EvalContext, args Params, previous any) (any, error) { return nil, nil })),
		WithChild(NewScope("db")),
	)

	_, err := Compose(bad)
	if err == nil {
		t.Fatal("expected a CompositionError for self-collision")
	}
}

func TestExtendsFlattensDepthFirst(t *testing.T) {
	grandparent := NewScope("", WithContribution(Resource("a", nil, func(ctx *EvalContext, args Params, previous any) (any, error) { return "a", nil })))
	parent := NewScope("", WithExtends(grandparent), WithContribution(Patch("a", nil, func(ctx *EvalContext, args Params, previous any) (any, error) {
		return previous.(string) + "-parent", nil
	})))
	child := NewScope("", WithExtends(parent), WithContribution(Patch("a", nil, func(ctx *EvalContext, args Params, previous any) (any, error) {
		return previous.(string) + "-child", nil
	})))

	scope, err := Evaluate(child)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	got, err := scope.Get("a")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got != "a-parent-child" {
		t.Fatalf("got %q", got)
	}
}

func asError(err error, target **CompositionError) bool {
	e, ok := err.(*CompositionError)
	if ok {
		*target = e
	}
	return ok
}
