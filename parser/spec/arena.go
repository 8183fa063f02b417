package spec

import "fmt"

// NodeArena owns every node of a document exclusively. Nothing outside
// the arena holds a node across mutations except by NodeID. Ids advance
// monotonically and are never reused, including after deletion.
type NodeArena struct {
	nodes  map[NodeID]*Node
	nextID NodeID
}

func NewNodeArena() *NodeArena {
	return &NodeArena{nodes: map[NodeID]*Node{}}
}

// RegisterNode assigns the next id to the node and stores it. Registering
// a node twice is a programming error and panics.
func (a *NodeArena) RegisterNode(node *Node) NodeID {
	if node.registered {
		panic(fmt.Sprintf("node %d is already registered", node.ID))
	}
	node.registered = true
	node.ID = a.nextID
	a.nodes[node.ID] = node
	a.nextID++
	return node.ID
}

// Node returns the node for the id, or nil when the id was never
// registered or has been deleted.
func (a *NodeArena) Node(nodeID NodeID) *Node {
	return a.nodes[nodeID]
}

// DeleteNode removes the node from the arena. Parent and child
// bookkeeping is the document's job, not the arena's.
func (a *NodeArena) DeleteNode(nodeID NodeID) {
	delete(a.nodes, nodeID)
}

// NodeCount returns the number of live nodes.
func (a *NodeArena) NodeCount() int {
	return len(a.nodes)
}

// PeekNextID returns the id the next registration will assign, without
// allocating it. Callers that queue work against nodes created later can
// predict ids this way.
func (a *NodeArena) PeekNextID() NodeID {
	return a.nextID
}

// NodeIDs returns the ids of all live nodes in unspecified order.
func (a *NodeArena) NodeIDs() []NodeID {
	ids := make([]NodeID, 0, len(a.nodes))
	for id := range a.nodes {
		ids = append(ids, id)
	}
	return ids
}
