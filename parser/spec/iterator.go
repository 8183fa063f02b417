package spec

// TreeIterator walks a document in tree order: parent before children,
// children before the next sibling. It uses an explicit stack rather
// than recursion, so mutations performed between Next calls are
// reflected in the walk. That is a documented hazard, not a bug:
// structural mutation during iteration can re-visit or skip nodes. The
// iterator is not a snapshot; consume it before mutating, or accept
// re-ordering.
type TreeIterator struct {
	handle DocumentHandle
	stack  []NodeID
}

func NewTreeIterator(handle DocumentHandle) *TreeIterator {
	return &TreeIterator{
		handle: handle,
		stack:  []NodeID{handle.Doc().Root().ID},
	}
}

// Next returns the next node id in tree order, or false when the walk is
// done.
func (t *TreeIterator) Next() (NodeID, bool) {
	if len(t.stack) == 0 {
		return 0, false
	}
	currentID := t.stack[len(t.stack)-1]
	t.stack = t.stack[:len(t.stack)-1]

	doc := t.handle.Doc()
	if siblingID, ok := doc.NextSibling(currentID); ok {
		t.stack = append(t.stack, siblingID)
	}
	if current := doc.NodeByID(currentID); current != nil && len(current.Children) > 0 {
		t.stack = append(t.stack, current.Children[0])
	}
	return currentID, true
}
