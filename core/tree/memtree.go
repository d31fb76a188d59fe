package tree

import (
	"context"
	"fmt"

	"leap-bridge/core/branch"
)

// MemTree is an in-memory Adapter implementation that simulates the
// external application's branch tree. It backs tests and the CLI's
// dry-run planning mode.
type MemTree struct {
	root *memNode
	// created records full paths in creation order.
	created []string
}

type memNode struct {
	name     string
	path     string
	children map[string]*memNode
	order    []string
	// expressions is keyed by variable + "\x00" + scenario.
	expressions map[string]string
	units       string
}

func newMemNode(name, path string) *memNode {
	return &memNode{
		name:        name,
		path:        path,
		children:    make(map[string]*memNode),
		expressions: make(map[string]string),
	}
}

// NewMemTree returns an empty in-memory tree.
func NewMemTree() *MemTree {
	return &MemTree{root: newMemNode("", "")}
}

// NewMemTreeWithPaths returns a tree pre-populated with the given branch
// paths (intermediate segments included).
func NewMemTreeWithPaths(paths ...string) (*MemTree, error) {
	t := NewMemTree()
	ctx := context.Background()
	for _, path := range paths {
		segments, err := branch.Resolve(path)
		if err != nil {
			return nil, err
		}
		for i, segment := range segments {
			parent := branch.Join(segments[:i]...)
			if _, err := t.GetOrCreateChild(ctx, parent, segment); err != nil {
				return nil, err
			}
		}
	}
	return t, nil
}

// Exists reports whether a branch exists at the given path.
func (t *MemTree) Exists(_ context.Context, path string) (bool, error) {
	_, ok := t.lookup(path)
	return ok, nil
}

// GetOrCreateChild returns the named child of parentPath, creating it when
// absent. The parent must exist; an empty parentPath addresses the root.
func (t *MemTree) GetOrCreateChild(_ context.Context, parentPath, name string) (Handle, error) {
	parent, ok := t.lookup(parentPath)
	if !ok {
		return nil, fmt.Errorf("parent branch %q does not exist", parentPath)
	}
	if child, ok := parent.children[name]; ok {
		return child, nil
	}

	path := name
	if parent.path != "" {
		path = branch.Join(parent.path, name)
	}
	child := newMemNode(name, path)
	parent.children[name] = child
	parent.order = append(parent.order, name)
	t.created = append(t.created, path)
	return child, nil
}

// SetExpression assigns the expression held by the node's variable under
// the given scenario.
func (t *MemTree) SetExpression(_ context.Context, h Handle, variable, scenario, expression string) error {
	node, err := asNode(h)
	if err != nil {
		return err
	}
	node.expressions[variable+"\x00"+scenario] = expression
	return nil
}

// SetUnits assigns the node's data unit.
func (t *MemTree) SetUnits(_ context.Context, h Handle, units string) error {
	node, err := asNode(h)
	if err != nil {
		return err
	}
	node.units = units
	return nil
}

// Expression returns the expression stored for a branch variable under a
// scenario, if any. Inspection helper for tests and dry-run reporting.
func (t *MemTree) Expression(path, variable, scenario string) (string, bool) {
	node, ok := t.lookup(path)
	if !ok {
		return "", false
	}
	expr, ok := node.expressions[variable+"\x00"+scenario]
	return expr, ok
}

// Units returns the units stored for a branch, if any.
func (t *MemTree) Units(path string) (string, bool) {
	node, ok := t.lookup(path)
	if !ok || node.units == "" {
		return "", false
	}
	return node.units, true
}

// Children returns the child names of a branch in creation order.
func (t *MemTree) Children(path string) []string {
	node, ok := t.lookup(path)
	if !ok {
		return nil
	}
	out := make([]string, len(node.order))
	copy(out, node.order)
	return out
}

// CreatedPaths returns every branch path in creation order.
func (t *MemTree) CreatedPaths() []string {
	out := make([]string, len(t.created))
	copy(out, t.created)
	return out
}

func (t *MemTree) lookup(path string) (*memNode, bool) {
	if path == "" {
		return t.root, true
	}
	segments, err := branch.Resolve(path)
	if err != nil {
		return nil, false
	}
	node := t.root
	for _, segment := range segments {
		child, ok := node.children[segment]
		if !ok {
			return nil, false
		}
		node = child
	}
	return node, true
}

func asNode(h Handle) (*memNode, error) {
	node, ok := h.(*memNode)
	if !ok {
		return nil, fmt.Errorf("handle %T does not belong to this tree", h)
	}
	return node, nil
}
