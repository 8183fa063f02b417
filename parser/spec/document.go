package spec

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/pkg/errors"
)

// https://html.spec.whatwg.org/multipage/dom.html#global-attributes
// id attribute values must be non-empty and free of ASCII whitespace.
func isValidIDAttributeValue(value string) bool {
	if value == "" {
		return false
	}
	return !strings.ContainsAny(value, " \t\n\f\r")
}

// Document wraps a node arena and guards its structural integrity: cycle
// checks on attach, parent/children symmetry, and the named-id index.
// All structural change flows through this API, never through the arena
// directly.
//
// Access is single-writer, many-reader. Every exported method takes the
// document lock for the duration of one operation; no two structural
// mutations ever interleave.
type Document struct {
	mu sync.RWMutex

	// URL of the document, if any
	URL string

	arena           *NodeArena
	namedIDElements map[string]NodeID
	stylesheets     []*Stylesheet
}

func newDocument(url string) *Document {
	return &Document{
		URL:             url,
		arena:           NewNodeArena(),
		namedIDElements: map[string]NodeID{},
	}
}

// NodeByID fetches a node by id, or nil when no node with this id exists.
// The returned pointer is live: structural mutations performed through
// the document are visible through it.
func (d *Document) NodeByID(nodeID NodeID) *Node {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.arena.Node(nodeID)
}

// Root returns the document root node. Panics when the tree was never
// initialized, which is an engine bug and not an input condition.
func (d *Document) Root() *Node {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.root()
}

func (d *Document) root() *Node {
	root := d.arena.Node(RootNodeID)
	if root == nil {
		panic("root node not found")
	}
	return root
}

// QuirksMode returns the quirks mode carried by the document root.
func (d *Document) QuirksMode() QuirksMode {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if data := d.root().DocumentData(); data != nil {
		return data.QuirksMode
	}
	return NoQuirks
}

func (d *Document) SetQuirksMode(mode QuirksMode) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if data := d.root().DocumentData(); data != nil {
		data.QuirksMode = mode
	}
}

// RegisterNode registers the node into the arena and returns its new id.
// The node is not attached anywhere. Panics on double registration.
func (d *Document) RegisterNode(node *Node) NodeID {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.arena.RegisterNode(node)
}

// RegisterNodeAt registers the node and attaches it to the parent at the
// given position in one step.
func (d *Document) RegisterNodeAt(node *Node, parentID NodeID, position int) NodeID {
	d.mu.Lock()
	defer d.mu.Unlock()
	nodeID := d.arena.RegisterNode(node)
	d.attachNode(nodeID, parentID, position)
	return nodeID
}

// AttachNode inserts the node into the parent's children at the given
// position, clamped to the current length, or at the end when position is
// AppendPosition. Attaching a node to itself or to one of its own
// descendants would create a cycle and is silently ignored. The node must
// not currently be attached elsewhere.
func (d *Document) AttachNode(nodeID, parentID NodeID, position int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.attachNode(nodeID, parentID, position)
}

func (d *Document) attachNode(nodeID, parentID NodeID, position int) {
	if parentID == nodeID || d.hasNodeIDRecursive(nodeID, parentID) {
		return
	}

	parent := d.arena.Node(parentID)
	if parent == nil {
		return
	}
	if position == AppendPosition || position >= len(parent.Children) {
		parent.push(nodeID)
	} else {
		if position < 0 {
			position = 0
		}
		parent.insert(nodeID, position)
	}

	node := d.arena.Node(nodeID)
	pid := parentID
	node.Parent = &pid
}

// hasNodeIDRecursive reports whether targetID occurs anywhere in the
// subtree below parentID.
func (d *Document) hasNodeIDRecursive(parentID, targetID NodeID) bool {
	parent := d.arena.Node(parentID)
	if parent == nil {
		return false
	}
	for _, childID := range parent.Children {
		if childID == targetID {
			return true
		}
		if d.hasNodeIDRecursive(childID, targetID) {
			return true
		}
	}
	return false
}

// DetachNode removes the node from its parent's children and clears its
// parent link. The node must currently have a parent; detaching the root
// or an already detached node is a contract violation and panics.
func (d *Document) DetachNode(nodeID NodeID) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.detachNode(nodeID)
}

func (d *Document) detachNode(nodeID NodeID) {
	node := d.arena.Node(nodeID)
	if node == nil {
		panic(fmt.Sprintf("node %d not found", nodeID))
	}
	parentID, ok := node.ParentID()
	if !ok {
		panic(fmt.Sprintf("node %d has no parent to detach from", nodeID))
	}

	parent := d.arena.Node(parentID)
	if parent == nil {
		panic(fmt.Sprintf("parent node %d not found", parentID))
	}
	parent.remove(nodeID)
	node.Parent = nil
}

// RelocateNode moves the node under a new parent, appended at the end of
// the new parent's children. Relocating to the current parent is a no-op.
// The node must already be registered; it may be detached.
func (d *Document) RelocateNode(nodeID, parentID NodeID) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.relocateNode(nodeID, parentID)
}

func (d *Document) relocateNode(nodeID, parentID NodeID) {
	node := d.arena.Node(nodeID)
	if node == nil || !node.registered {
		panic(fmt.Sprintf("node %d is not registered to the arena", nodeID))
	}

	if current, ok := node.ParentID(); ok {
		if current == parentID {
			return
		}
		d.detachNode(nodeID)
	}
	d.attachNode(nodeID, parentID, AppendPosition)
}

// DeleteNodeByID detaches the node from its parent, if any, and removes
// it from the arena. Children of the deleted node are not recursively
// deleted: they stay registered, reachable by id, as an orphaned subtree.
// Reaping orphans is the caller's responsibility. The id is removed from
// the named-id index when present.
func (d *Document) DeleteNodeByID(nodeID NodeID) {
	d.mu.Lock()
	defer d.mu.Unlock()

	node := d.arena.Node(nodeID)
	if node == nil {
		return
	}
	if parentID, ok := node.ParentID(); ok {
		if parent := d.arena.Node(parentID); parent != nil {
			parent.remove(nodeID)
		}
		node.Parent = nil
	}
	if data := node.ElementData(); data != nil {
		if id, ok := data.Attributes["id"]; ok {
			if d.namedIDElements[id] == nodeID {
				delete(d.namedIDElements, id)
			}
		}
	}
	d.arena.DeleteNode(nodeID)
}

// NextSibling returns the id of the sibling immediately after the
// reference node, or false when the node is last, detached or unknown.
func (d *Document) NextSibling(referenceID NodeID) (NodeID, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.nextSibling(referenceID)
}

func (d *Document) nextSibling(referenceID NodeID) (NodeID, bool) {
	node := d.arena.Node(referenceID)
	if node == nil {
		return 0, false
	}
	parentID, ok := node.ParentID()
	if !ok {
		return 0, false
	}
	parent := d.arena.Node(parentID)
	if parent == nil {
		return 0, false
	}
	for i, childID := range parent.Children {
		if childID == referenceID && i+1 < len(parent.Children) {
			return parent.Children[i+1], true
		}
	}
	return 0, false
}

// NodeByNamedID fetches the element indexed under the given id attribute
// value, or nil when no element carries that id.
func (d *Document) NodeByNamedID(namedID string) *Node {
	d.mu.RLock()
	defer d.mu.RUnlock()
	nodeID, ok := d.namedIDElements[namedID]
	if !ok {
		return nil
	}
	return d.arena.Node(nodeID)
}

// SetAttribute sets an attribute on an element node, keeping the
// document's indexes in sync. Setting "id" re-indexes the named-id table
// after validating the value for emptiness, whitespace and uniqueness.
// Setting "class" re-seeds the element's class set. Failures leave the
// document untouched.
func (d *Document) SetAttribute(nodeID NodeID, name, value string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	node := d.arena.Node(nodeID)
	if node == nil {
		return errors.Errorf("Node ID %d not found", nodeID)
	}
	data := node.ElementData()
	if data == nil {
		return errors.Errorf("Node ID %d is not an element", nodeID)
	}

	switch name {
	case "id":
		if !isValidIDAttributeValue(value) {
			return errors.Errorf("Attribute value '%s' did not pass validation", value)
		}
		if _, ok := d.namedIDElements[value]; ok {
			return errors.Errorf("ID '%s' already exists in DOM", value)
		}
		if old, ok := data.Attributes["id"]; ok && d.namedIDElements[old] == nodeID {
			delete(d.namedIDElements, old)
		}
		d.namedIDElements[value] = nodeID
	case "class":
		data.Classes = NewElementClassFromString(value)
	}
	data.Attributes[name] = value
	return nil
}

// AddStylesheet attaches a parsed stylesheet to the document. Stylesheet
// content is opaque to the document model.
func (d *Document) AddStylesheet(sheet *Stylesheet) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stylesheets = append(d.stylesheets, sheet)
}

// Stylesheets returns the stylesheets attached so far, in order.
func (d *Document) Stylesheets() []*Stylesheet {
	d.mu.RLock()
	defer d.mu.RUnlock()
	sheets := make([]*Stylesheet, len(d.stylesheets))
	copy(sheets, d.stylesheets)
	return sheets
}

// NodeCount returns the number of live nodes in the arena.
func (d *Document) NodeCount() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.arena.NodeCount()
}

// PeekNextID returns the id the next registration will assign.
func (d *Document) PeekNextID() NodeID {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.arena.PeekNextID()
}

// String renders the tree as an indented dump, one node per line, for
// debugging and golden-file comparison.
func (d *Document) String() string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	var sb strings.Builder
	d.printTree(d.root(), "", true, &sb)
	return sb.String()
}

func (d *Document) printTree(node *Node, prefix string, last bool, sb *strings.Builder) {
	buffer := prefix
	if last {
		buffer += "└─ "
	} else {
		buffer += "├─ "
	}

	switch data := node.Data.(type) {
	case *DocumentData:
		fmt.Fprintf(sb, "%sDocument\n", buffer)
	case *DocTypeData:
		fmt.Fprintf(sb, "%s<!DOCTYPE %s %q %q>\n", buffer, data.Name, data.PublicID, data.SystemID)
	case *TextData:
		fmt.Fprintf(sb, "%s%q\n", buffer, data.Value)
	case *CommentData:
		fmt.Fprintf(sb, "%s<!-- %s -->\n", buffer, data.Value)
	case *ElementData:
		fmt.Fprintf(sb, "%s<%s", buffer, data.Name)
		keys := make([]string, 0, len(data.Attributes))
		for key := range data.Attributes {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			fmt.Fprintf(sb, " %s=%s", key, data.Attributes[key])
		}
		sb.WriteString(">\n")
	}

	// guard against runaway nesting in the dump, not in the tree
	if len(prefix) > 40 {
		sb.WriteString("...\n")
		return
	}

	buffer = prefix
	if last {
		buffer += "   "
	} else {
		buffer += "│  "
	}

	for i, childID := range node.Children {
		child := d.arena.Node(childID)
		if child == nil {
			continue
		}
		d.printTree(child, buffer, i == len(node.Children)-1, sb)
	}
}
