package spec

// NewDocument builds a fresh document with a registered root node. The
// root always gets id 0.
func NewDocument(url string) DocumentHandle {
	doc := newDocument(url)
	doc.RegisterNode(NewDocumentNode(NoQuirks))
	return NewDocumentHandle(doc)
}

// NewFragmentDocument builds a document for fragment parsing: a root
// document node with a single html element child, quirks mode inherited
// from the context document.
func NewFragmentDocument(context DocumentHandle) DocumentHandle {
	handle := NewDocument("")
	handle.Doc().SetQuirksMode(context.Doc().QuirksMode())

	html := NewElementNode("html", HTMLNamespace, nil)
	handle.Doc().RegisterNodeAt(html, RootNodeID, AppendPosition)
	return handle
}
