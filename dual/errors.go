package dual

import "errors"

// Sentinel errors returned by Unit's operations. All are usage errors per
// spec.md §7.2: the caller violated a documented precondition, not a
// configuration or algorithmic-outcome condition.
var (
	// ErrGrowExceedsBound indicates a grow/shrink request exceeded the last
	// reported slack bound for the node.
	ErrGrowExceedsBound = errors.New("dual: grow length exceeds last reported bound")

	// ErrNodeNotFound indicates an operation referenced a dual node that was
	// never registered with this unit via AddDualNode.
	ErrNodeNotFound = errors.New("dual: dual node not registered with this unit")

	// ErrVertexOutOfRange indicates a node's representative or covered vertex
	// is not known to this unit's local graph.
	ErrVertexOutOfRange = errors.New("dual: representative vertex outside unit range")
)
