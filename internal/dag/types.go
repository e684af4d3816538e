package dag

// Graph is a collection of nodes and their dependencies, representing a DAG.
// It is not safe for concurrent use.
type Graph struct {
	// nodes stores all nodes in the graph, keyed by their unique ID.
	nodes map[string]*node
	// order records node IDs in insertion order.
	order []string
}

// node represents a single vertex in the graph. It is un-exported to
// enforce interaction with the graph via the public API (using string IDs),
// not by direct struct manipulation.
type node struct {
	// id is the unique identifier for the node.
	id string
	// dependents holds the IDs of nodes that depend on this node, in the
	// order the edges were added.
	dependents []string
}
