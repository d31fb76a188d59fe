package tree

import (
	"context"
	"fmt"
)

// Handle is an opaque reference to a branch node owned by the external
// application. Adapters define the concrete type; engines only pass it
// back into the adapter that produced it.
type Handle any

// Adapter is the capability set this core requires from the external
// modeling application's branch tree. It is consumed, never implemented,
// by the engines; the live connection lives behind it.
//
// Calls are synchronous and potentially slow. The external tree is a
// single stateful instance: adapters are not safe for concurrent use, and
// callers must not cache existence results across invocations because the
// tree can change between calls (e.g. manual GUI edits).
type Adapter interface {
	// Exists reports whether a branch exists at the given path.
	Exists(ctx context.Context, path string) (bool, error)

	// GetOrCreateChild returns the child of parentPath named name,
	// creating it when absent. An empty parentPath addresses the root.
	GetOrCreateChild(ctx context.Context, parentPath, name string) (Handle, error)

	// SetExpression assigns the expression held by the node's variable
	// under the given scenario.
	SetExpression(ctx context.Context, h Handle, variable, scenario, expression string) error

	// SetUnits assigns the node's data unit.
	SetUnits(ctx context.Context, h Handle, units string) error
}

// AdapterError wraps a failed external call. Adapter failures are always
// surfaced and never retried: the external application has no defined
// transient-failure semantics.
type AdapterError struct {
	// Op names the failed capability (e.g. "exists", "set_expression").
	Op string

	// Path is the branch path the call addressed.
	Path string

	// Err is the underlying adapter failure.
	Err error
}

func (e *AdapterError) Error() string {
	return fmt.Sprintf("adapter %s failed for %q: %v", e.Op, e.Path, e.Err)
}

func (e *AdapterError) Unwrap() error {
	return e.Err
}
