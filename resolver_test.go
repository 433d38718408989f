package mixin

import "testing"

// TestSelfShadowSkipsOwnScope exercises the self-shadow rule: a parameter
// named the same as its own Contribution skips straight to the parent scope
// rather than re-resolving itself or sibling children first.
func TestSelfShadowSkipsOwnScope(t *testing.T) {
	root := NewScope("",
		WithContribution(Resource("timeout", []string{}, func(ctx *EvalContext, args Params, previous any) (any, error) {
			return 30, nil
		})),
		WithChild(NewScope("inner",
			WithContribution(Resource("timeout", []string{"timeout"}, func(ctx *EvalContext, args Params, previous any) (any, error) {
				outer, _ := Arg[int](args, "timeout")
				return outer * 2, nil
			})),
		)),
	)

	scope, err := Evaluate(root)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	got, err := scope.Child("inner").Get("timeout")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got != 60 {
		t.Fatalf("got %v, want 60 (outer timeout doubled)", got)
	}
}

// TestUncleSearchFindsNearestAncestorChild exercises Proxy resolution: a
// WantsProxy parameter is resolved by walking ancestors for the first one
// holding a matching child scope, never a resource.
func TestUncleSearchFindsNearestAncestorChild(t *testing.T) {
	consumerValue := Contribution{
		Name:   "value",
		Kind:   KindResource,
		Params: []ParamSpec{WantsProxy(ParamSpec{Name: "siblings"})},
		Body: func(ctx *EvalContext, args Params, previous any) (any, error) {
			proxy := args.Proxy("siblings")
			target, err := proxy.Navigate("marker")
			if err != nil {
				return nil, err
			}
			return target.Force(ctx)
		},
	}

	root := NewScope("",
		WithChild(NewScope("siblings",
			WithContribution(Resource("marker", nil, func(ctx *EvalContext, args Params, previous any) (any, error) {
				return "sibling-value", nil
			})),
		)),
		WithChild(NewScope("consumer",
			WithContribution(consumerValue),
		)),
	)

	scope, err := Evaluate(root)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	got, err := scope.Child("consumer").Get("value")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got != "sibling-value" {
		t.Fatalf("got %v", got)
	}
}

func TestUnresolvedNameClimbsToRootThenFails(t *testing.T) {
	root := NewScope("",
		WithChild(NewScope("inner",
			WithContribution(Resource("needs", []string{"missing"}, func(ctx *EvalContext, args Params, previous any) (any, error) {
				return nil, nil
			})),
		)),
	)

	scope, err := Evaluate(root)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	_, err = scope.Child("inner").Get("needs")
	if err == nil {
		t.Fatal("expected an UnresolvedNameError")
	}
	if _, ok := err.(*UnresolvedNameError); !ok {
		t.Fatalf("got %T: %v", err, err)
	}
}
