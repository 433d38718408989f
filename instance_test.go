package mixin

import "testing"

func TestCallFillsExternSlot(t *testing.T) {
	root := NewScope("",
		WithContribution(Extern("database_path")),
		WithContribution(Resource("connection", []string{"database_path"}, func(ctx *EvalContext, args Params, previous any) (any, error) {
			path, _ := Arg[string](args, "database_path")
			return "conn:" + path, nil
		})),
	)

	factory, err := Evaluate(root)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}

	instance, err := factory.Call(map[string]any{"database_path": "/tmp/db.sqlite"})
	if err != nil {
		t.Fatalf("Call: %v", err)
	}
	got, err := instance.Get("connection")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got != "conn:/tmp/db.sqlite" {
		t.Fatalf("got %v", got)
	}
}

func TestCallReportsMissingAndUnexpectedParameters(t *testing.T) {
	root := NewScope("", WithContribution(Extern("request_id")))
	factory, err := Evaluate(root)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}

	_, err = factory.Call(map[string]any{"unexpected": 1})
	callErr, ok := err.(*CallError)
	if !ok {
		t.Fatalf("got %T: %v", err, err)
	}
	if len(callErr.Missing) != 1 || callErr.Missing[0] != "request_id" {
		t.Fatalf("got Missing=%v", callErr.Missing)
	}
	if len(callErr.Unexpected) != 1 || callErr.Unexpected[0] != "unexpected" {
		t.Fatalf("got Unexpected=%v", callErr.Unexpected)
	}
}

func TestCallAppliesEndomorphismPatchesToSeed(t *testing.T) {
	root := NewScope("",
		WithContribution(Patch("headers", nil, func(ctx *EvalContext, args Params, previous any) (any, error) {
			m := previous.(map[string]string)
			m["x-request-source"] = "mixin"
			return m, nil
		}, AsEndomorphism())),
	)

	factory, err := Evaluate(root)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	instance, err := factory.Call(map[string]any{"headers": map[string]string{"accept": "*/*"}})
	if err != nil {
		t.Fatalf("Call: %v", err)
	}
	got, err := instance.Get("headers")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	headers := got.(map[string]string)
	if headers["x-request-source"] != "mixin" || headers["accept"] != "*/*" {
		t.Fatalf("got %v", headers)
	}
}

func TestReadingUnfilledSlotIsMissingParameterError(t *testing.T) {
	root := NewScope("", WithContribution(Extern("request_id")))
	factory, err := Evaluate(root)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	_, err = factory.Get("request_id")
	if _, ok := err.(*MissingParameterError); !ok {
		t.Fatalf("got %T: %v", err, err)
	}
}

func TestFactoryScopeSurfacedAsCallableParameter(t *testing.T) {
	requestScope := NewScope("RequestScope",
		AsFactory(),
		WithContribution(Extern("request_id")),
		WithContribution(Resource("summary", []string{"request_id"}, func(ctx *EvalContext, args Params, previous any) (any, error) {
			id, _ := Arg[string](args, "request_id")
			return "request:" + id, nil
		})),
	)
	root := NewScope("",
		WithChild(requestScope),
		WithContribution(Contribution{
			Name:   "handler",
			Kind:   KindResource,
			Params: []ParamSpec{{Name: "RequestScope"}},
			Body: func(ctx *EvalContext, args Params, previous any) (any, error) {
				factoryScope := args.Get("RequestScope").(*Scope)
				instance, err := factoryScope.Call(map[string]any{"request_id": "r-1"})
				if err != nil {
					return nil, err
				}
				return instance.Get("summary")
			},
		}),
	)

	scope, err := Evaluate(root)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	got, err := scope.Get("handler")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got != "request:r-1" {
		t.Fatalf("got %v", got)
	}
}
