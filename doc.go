// Package mixin implements a dependency-injection framework built around
// mixin composition rather than constructor wiring.
//
// Declarations are organized into a tree of named Scopes. Each Scope holds
// Contributions: Resources and Aggregates (the "Base" of a name), and Patches
// that transform or extend a Base. Multiple declaration fragments can be
// union-mounted at the same tree position — this is the mixin step — and the
// Composer enforces an arity law on every resulting name: exactly one Base,
// or all-holes (an Extern parameter), or all-endomorphism-Patches (a
// parameter filled in only once the scope is called).
//
// # Composing
//
// A declaration tree is built with ScopeDecl and Contribution values:
//
//	root := mixin.NewScope("",
//		mixin.WithChild(mixin.NewScope("db",
//			mixin.WithContribution(mixin.Extern("database_path")),
//			mixin.WithContribution(mixin.Resource("connection", []string{"database_path"},
//				func(ctx *mixin.EvalContext, args mixin.Params, _ any) (any, error) {
//					path, _ := mixin.Arg[string](args, "database_path")
//					return openConnection(path)
//				})),
//		)),
//	)
//
//	scope, err := mixin.Evaluate(root)
//
// Evaluate composes the declaration tree (§ Composer), forces every eager
// binding of the scopes that need no Call (§ Evaluator), and returns the
// resulting root Scope. Reading a name forces it lazily on first access and
// memoizes the result; a scope with Extern parameters, like db above, is
// called first:
//
//	db, err := scope.Child("db").Call(map[string]any{"database_path": "app.sqlite"})
//	conn, err := db.Get("connection")
//
// # Name resolution
//
// Parameter names are resolved lexically: a Contribution's parameter is
// looked up first among its own Scope's children and bindings, then its
// parent's, and so on up to the root. A parameter sharing its own
// Contribution's name skips straight to the parent — this is the
// self-shadow rule, and it applies one extra level up, not to the
// Contribution's own Scope. A parameter declared to want a Proxy is resolved
// differently: the lookup only ever matches a child Scope (never a
// Contribution), walking ancestors until one is found — the "uncle search".
//
// # Proxies and links
//
// A Proxy is a deferred navigation handle into the composed tree. Bodies
// that receive one (via WantsProxy) can walk it further with Navigate before
// forcing it to a concrete value with Force. If a Contribution's body
// returns a Proxy instead of a concrete value, the binding becomes a
// symbolic link: reads of that name are redirected to the Proxy's target
// and the forced target's value is cached, never the Proxy itself.
//
// # Calling a scope
//
// A composed Scope with unfilled Extern or endomorphism-only parameters must
// be called before it can be read. Call validates the supplied names against
// the scope's parameter list, installs them into a fresh Instance Scope that
// shares the outer lexical chain, and forces that instance's own eager
// bindings:
//
//	instance, err := requestScopeValue.(*mixin.Scope).Call(map[string]any{
//		"request": incomingRequest,
//	})
//
// # Extensions
//
// Extension implementations wrap every resolve operation, mirroring a
// middleware chain. They are installed via EvaluateOptions and are useful
// for logging, tracing, or rendering the composed tree for debugging — see
// the extensions subpackage.
package mixin
