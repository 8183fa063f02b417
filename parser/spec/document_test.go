package spec

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func addElement(t *testing.T, handle DocumentHandle, name string, parentID NodeID) NodeID {
	t.Helper()
	return handle.Doc().RegisterNodeAt(NewElementNode(name, "", nil), parentID, AppendPosition)
}

func TestRelocateNode(t *testing.T) {
	handle := NewDocument("")

	parent := addElement(t, handle, "parent", RootNodeID)
	div1 := addElement(t, handle, "div1", parent)
	div2 := addElement(t, handle, "div2", parent)
	div3 := addElement(t, handle, "div3", parent)
	div31 := addElement(t, handle, "div3_1", div3)

	assert.Equal(t, `└─ Document
   └─ <parent>
      ├─ <div1>
      ├─ <div2>
      └─ <div3>
         └─ <div3_1>
`, handle.Doc().String())

	handle.Doc().RelocateNode(div31, div1)
	assert.Equal(t, `└─ Document
   └─ <parent>
      ├─ <div1>
      │  └─ <div3_1>
      ├─ <div2>
      └─ <div3>
`, handle.Doc().String())

	handle.Doc().RelocateNode(div1, div2)
	assert.Equal(t, `└─ Document
   └─ <parent>
      ├─ <div2>
      │  └─ <div1>
      │     └─ <div3_1>
      └─ <div3>
`, handle.Doc().String())
}

func TestRelocateToCurrentParentIsNoop(t *testing.T) {
	handle := NewDocument("")
	parent := addElement(t, handle, "parent", RootNodeID)
	child := addElement(t, handle, "child", parent)

	before := handle.Doc().String()
	handle.Doc().RelocateNode(child, parent)
	assert.Equal(t, before, handle.Doc().String())
}

func TestAttachCycleGuard(t *testing.T) {
	handle := NewDocument("")
	doc := handle.Doc()

	a := addElement(t, handle, "a", RootNodeID)
	b := addElement(t, handle, "b", a)

	// attaching an ancestor under its own descendant must not corrupt
	// the tree
	doc.AttachNode(a, b, AppendPosition)
	doc.AttachNode(a, a, AppendPosition)

	nodeA := doc.NodeByID(a)
	nodeB := doc.NodeByID(b)
	parentA, ok := nodeA.ParentID()
	require.True(t, ok)
	assert.Equal(t, RootNodeID, parentA)
	assert.Equal(t, []NodeID{b}, nodeA.Children)
	assert.Empty(t, nodeB.Children)
}

func TestAttachPositionIsClamped(t *testing.T) {
	handle := NewDocument("")
	doc := handle.Doc()
	parent := addElement(t, handle, "parent", RootNodeID)
	first := addElement(t, handle, "first", parent)

	beyond := doc.RegisterNode(NewElementNode("beyond", "", nil))
	doc.AttachNode(beyond, parent, 99)

	front := doc.RegisterNode(NewElementNode("front", "", nil))
	doc.AttachNode(front, parent, 0)

	assert.Equal(t, []NodeID{front, first, beyond}, doc.NodeByID(parent).Children)
}

func TestDetachPanicsOnUnparentedNode(t *testing.T) {
	handle := NewDocument("")
	doc := handle.Doc()
	loose := doc.RegisterNode(NewElementNode("loose", "", nil))

	require.Panics(t, func() { doc.DetachNode(loose) })
	require.Panics(t, func() { doc.DetachNode(RootNodeID) })
}

func TestDeleteNodeLeavesOrphanedChildren(t *testing.T) {
	handle := NewDocument("")
	doc := handle.Doc()
	parent := addElement(t, handle, "parent", RootNodeID)
	child := addElement(t, handle, "child", parent)
	grandchild := addElement(t, handle, "grandchild", child)

	require.NoError(t, doc.SetAttribute(child, "id", "gone"))
	doc.DeleteNodeByID(child)

	assert.Nil(t, doc.NodeByID(child))
	assert.Empty(t, doc.NodeByID(parent).Children)
	assert.Nil(t, doc.NodeByNamedID("gone"))

	// the subtree below the deleted node is orphaned, not reaped
	orphan := doc.NodeByID(grandchild)
	require.NotNil(t, orphan)
	parentID, ok := orphan.ParentID()
	assert.True(t, ok)
	assert.Equal(t, child, parentID)
}

func TestNextSibling(t *testing.T) {
	handle := NewDocument("")
	doc := handle.Doc()
	parent := addElement(t, handle, "parent", RootNodeID)
	a := addElement(t, handle, "a", parent)
	b := addElement(t, handle, "b", parent)

	next, ok := doc.NextSibling(a)
	require.True(t, ok)
	assert.Equal(t, b, next)

	_, ok = doc.NextSibling(b)
	assert.False(t, ok)
	_, ok = doc.NextSibling(RootNodeID)
	assert.False(t, ok)
}

func TestNamedIDUniqueness(t *testing.T) {
	handle := NewDocument("")
	doc := handle.Doc()
	a := addElement(t, handle, "div", RootNodeID)
	b := addElement(t, handle, "div", RootNodeID)

	require.NoError(t, doc.SetAttribute(a, "id", "myid"))

	err := doc.SetAttribute(b, "id", "myid")
	require.Error(t, err)
	assert.Equal(t, "ID 'myid' already exists in DOM", err.Error())
	assert.Equal(t, a, doc.NodeByNamedID("myid").ID)

	require.NoError(t, doc.SetAttribute(a, "id", "newid"))
	assert.Nil(t, doc.NodeByNamedID("myid"))
	assert.Equal(t, a, doc.NodeByNamedID("newid").ID)
}

func TestSetAttributeValidation(t *testing.T) {
	handle := NewDocument("")
	doc := handle.Doc()
	div := addElement(t, handle, "div", RootNodeID)
	comment := doc.RegisterNodeAt(NewCommentNode("not an element"), RootNodeID, AppendPosition)

	err := doc.SetAttribute(div, "id", "my id")
	require.Error(t, err)
	assert.Equal(t, "Attribute value 'my id' did not pass validation", err.Error())

	err = doc.SetAttribute(div, "id", "")
	require.Error(t, err)

	err = doc.SetAttribute(comment, "id", "nope")
	require.Error(t, err)
	assert.Equal(t, "Node ID 2 is not an element", err.Error())

	err = doc.SetAttribute(NodeID(42), "id", "nope")
	require.Error(t, err)
	assert.Equal(t, "Node ID 42 not found", err.Error())

	assert.Nil(t, doc.NodeByNamedID("my id"))
	assert.Nil(t, doc.NodeByNamedID(""))
}

func TestSetAttributeClassSeedsClassSet(t *testing.T) {
	handle := NewDocument("")
	doc := handle.Doc()
	div := addElement(t, handle, "div", RootNodeID)

	require.NoError(t, doc.SetAttribute(div, "class", "one two"))

	data := doc.NodeByID(div).ElementData()
	assert.Equal(t, "one two", data.Attributes["class"])
	assert.True(t, data.Classes.IsActive("one"))
	assert.True(t, data.Classes.IsActive("two"))
	assert.Equal(t, 2, data.Classes.Len())
}

func TestQuirksMode(t *testing.T) {
	handle := NewDocument("")
	assert.Equal(t, NoQuirks, handle.Doc().QuirksMode())

	handle.Doc().SetQuirksMode(Quirks)
	assert.Equal(t, Quirks, handle.Doc().QuirksMode())
}

func TestStylesheets(t *testing.T) {
	handle := NewDocument("https://example.test/")
	doc := handle.Doc()
	assert.Empty(t, doc.Stylesheets())

	doc.AddStylesheet(&Stylesheet{Location: "https://example.test/a.css", Source: "p{}"})
	doc.AddStylesheet(&Stylesheet{Source: "div{}"})

	sheets := doc.Stylesheets()
	require.Len(t, sheets, 2)
	assert.Equal(t, "https://example.test/a.css", sheets[0].Location)
}

func TestTreeIteratorOrder(t *testing.T) {
	handle := NewDocument("")

	parent := addElement(t, handle, "parent", RootNodeID)
	div1 := addElement(t, handle, "div1", parent)
	div11 := addElement(t, handle, "div1_1", div1)
	div12 := addElement(t, handle, "div1_2", div1)
	div2 := addElement(t, handle, "div2", parent)

	var order []NodeID
	it := NewTreeIterator(handle)
	for {
		id, ok := it.Next()
		if !ok {
			break
		}
		order = append(order, id)
	}

	expected := []NodeID{RootNodeID, parent, div1, div11, div12, div2}
	if diff := cmp.Diff(expected, order); diff != "" {
		t.Fatalf("tree order mismatch (-want +got):\n%s", diff)
	}
}

func TestFragmentDocumentInheritsQuirksMode(t *testing.T) {
	context := NewDocument("")
	context.Doc().SetQuirksMode(Quirks)

	fragment := NewFragmentDocument(context)
	assert.Equal(t, Quirks, fragment.Doc().QuirksMode())

	// root stays a document node, with the html element as its child
	root := fragment.Doc().Root()
	assert.Equal(t, DocumentNode, root.Type())
	require.Len(t, root.Children, 1)
	html := fragment.Doc().NodeByID(root.Children[0])
	assert.Equal(t, "html", html.ElementData().Name)
}
