package spec

// NodeID is a stable, densely assigned handle into a node arena. IDs are
// monotonically increasing and are never reused, even after deletion.
type NodeID uint64

// RootNodeID is the id of the document root. It always resolves to a
// document node once the tree is initialized.
const RootNodeID NodeID = 0

// AppendPosition can be passed wherever a child position is expected to
// append at the end of the children list.
const AppendPosition = -1

type NodeType uint16

const (
	DocumentNode NodeType = iota + 1
	DocTypeNode
	TextNode
	CommentNode
	ElementNode
)

type QuirksMode uint16

const (
	NoQuirks QuirksMode = iota
	LimitedQuirks
	Quirks
)

// NodeData is the closed set of per-kind node payloads. Exactly one of
// DocumentData, DocTypeData, TextData, CommentData or ElementData backs
// every node; call sites switch on Node.Type and use the typed accessors.
type NodeData interface {
	nodeType() NodeType
}

// DocumentData is the payload of the document root node.
type DocumentData struct {
	QuirksMode QuirksMode
}

// DocTypeData is the payload of a doctype node.
type DocTypeData struct {
	Name     string
	PublicID string
	SystemID string
}

// TextData is the payload of a text node. Adjacent text runs are coalesced
// into a single value by the tree constructor.
type TextData struct {
	Value string
}

// CommentData is the payload of a comment node.
type CommentData struct {
	Value string
}

func (d *DocumentData) nodeType() NodeType { return DocumentNode }
func (d *DocTypeData) nodeType() NodeType  { return DocTypeNode }
func (d *TextData) nodeType() NodeType     { return TextNode }
func (d *CommentData) nodeType() NodeType  { return CommentNode }
func (d *ElementData) nodeType() NodeType  { return ElementNode }

// Node is a single node in the document tree. Parent and children are
// held as arena ids, never as direct references, so that the tree can be
// relocated and detached without dangling pointers.
type Node struct {
	// ID of the node, 0 is always the root / document node.
	ID NodeID
	// Parent of the node, nil when detached or the root.
	Parent *NodeID
	// Children of the node, in tree order.
	Children []NodeID
	// Data holds the kind-specific payload.
	Data NodeData

	// set when the node has been registered into an arena
	registered bool
}

func newNode(data NodeData) *Node {
	return &Node{Data: data}
}

// NewDocumentNode creates an unregistered document node.
func NewDocumentNode(quirksMode QuirksMode) *Node {
	return newNode(&DocumentData{QuirksMode: quirksMode})
}

// NewDocTypeNode creates an unregistered doctype node.
func NewDocTypeNode(name, publicID, systemID string) *Node {
	return newNode(&DocTypeData{Name: name, PublicID: publicID, SystemID: systemID})
}

// NewTextNode creates an unregistered text node.
func NewTextNode(value string) *Node {
	return newNode(&TextData{Value: value})
}

// NewCommentNode creates an unregistered comment node.
func NewCommentNode(value string) *Node {
	return newNode(&CommentData{Value: value})
}

// NewElementNode creates an unregistered element node. An empty namespace
// defaults to the HTML namespace. The attribute map is taken over by the
// node, not copied.
func NewElementNode(name, namespace string, attributes map[string]string) *Node {
	if namespace == "" {
		namespace = HTMLNamespace
	}
	if attributes == nil {
		attributes = map[string]string{}
	}
	return newNode(&ElementData{
		Name:       name,
		Namespace:  namespace,
		Attributes: attributes,
		Classes:    NewElementClass(),
	})
}

func (n *Node) Type() NodeType {
	return n.Data.nodeType()
}

func (n *Node) IsRegistered() bool {
	return n.registered
}

// ParentID returns the parent id, or false when the node has no parent.
func (n *Node) ParentID() (NodeID, bool) {
	if n.Parent == nil {
		return 0, false
	}
	return *n.Parent, true
}

func (n *Node) IsElementNode() bool {
	return n.Type() == ElementNode
}

func (n *Node) IsTextNode() bool {
	return n.Type() == TextNode
}

// ElementData returns the element payload, or nil for non-element nodes.
func (n *Node) ElementData() *ElementData {
	if d, ok := n.Data.(*ElementData); ok {
		return d
	}
	return nil
}

// TextData returns the text payload, or nil for non-text nodes.
func (n *Node) TextData() *TextData {
	if d, ok := n.Data.(*TextData); ok {
		return d
	}
	return nil
}

// CommentData returns the comment payload, or nil for non-comment nodes.
func (n *Node) CommentData() *CommentData {
	if d, ok := n.Data.(*CommentData); ok {
		return d
	}
	return nil
}

// DocTypeData returns the doctype payload, or nil for non-doctype nodes.
func (n *Node) DocTypeData() *DocTypeData {
	if d, ok := n.Data.(*DocTypeData); ok {
		return d
	}
	return nil
}

// DocumentData returns the document payload, or nil for non-document nodes.
func (n *Node) DocumentData() *DocumentData {
	if d, ok := n.Data.(*DocumentData); ok {
		return d
	}
	return nil
}

// insert places a child id at the given index in the children list.
func (n *Node) insert(nodeID NodeID, idx int) {
	n.Children = append(n.Children, 0)
	copy(n.Children[idx+1:], n.Children[idx:])
	n.Children[idx] = nodeID
}

// push appends a child id to the children list.
func (n *Node) push(nodeID NodeID) {
	n.Children = append(n.Children, nodeID)
}

// remove drops a child id from the children list.
func (n *Node) remove(nodeID NodeID) {
	for i, id := range n.Children {
		if id == nodeID {
			n.Children = append(n.Children[:i], n.Children[i+1:]...)
			return
		}
	}
}
