package extensions

import (
	"fmt"
	"strings"

	"github.com/go-mixin/mixin"
	"github.com/m1gwings/treedrawer/tree"
)

// GraphDebug records every binding whose resolve fails and, when Render is
// called, draws the composed scope tree as ASCII art via treedrawer with
// those bindings marked.
type GraphDebug struct {
	mixin.BaseExtension
	root   *mixin.Scope
	failed map[string]bool
}

// NewGraphDebug builds a GraphDebug extension.
func NewGraphDebug() *GraphDebug {
	return &GraphDebug{BaseExtension: mixin.NewBaseExtension("graph-debug"), failed: map[string]bool{}}
}

func (g *GraphDebug) Init(root *mixin.Scope) error {
	g.root = root
	return nil
}

func (g *GraphDebug) OnError(err error, op mixin.Operation) {
	g.failed[strings.Join(append(op.Scope.Path(), op.Name), "/")] = true
}

// Render draws the composed tree rooted at g.root, marking any binding name
// that has previously failed to resolve.
func (g *GraphDebug) Render() (string, error) {
	if g.root == nil {
		return "", fmt.Errorf("mixin: graph-debug extension not initialized")
	}
	t := tree.NewTree(tree.NodeString(label(g.root)))
	g.addChildren(t, g.root)
	return t.String(), nil
}

func (g *GraphDebug) addChildren(t *tree.Tree, scope *mixin.Scope) {
	for _, name := range scope.BindingNames() {
		mark := ""
		if g.failed[strings.Join(append(scope.Path(), name), "/")] {
			mark = " !"
		}
		t.AddChild(tree.NodeString(name + mark))
	}
	for _, name := range scope.ChildNames() {
		child := scope.Child(name)
		childNode := t.AddChild(tree.NodeString(label(child)))
		g.addChildren(childNode, child)
	}
}

func label(s *mixin.Scope) string {
	name := s.Name()
	if name == "" {
		name = "<root>"
	}
	if s.IsFactory() {
		name += " (factory)"
	}
	return name
}
