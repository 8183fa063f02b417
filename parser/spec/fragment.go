package spec

// DocumentFragment is a secondary, smaller document rooted at a host
// node in an owning document. Template contents and fragment parsing
// build into a fragment rather than into the main tree.
type DocumentFragment struct {
	// handle to the fragment's own document, with its own arena
	handle DocumentHandle
	// owner is the document holding the host node
	owner DocumentHandle
	// host node id inside the owning document
	host NodeID
}

// NewDocumentFragment creates a fragment owned by the given host node.
// The fragment gets its own arena and root; the quirks mode is inherited
// from the owning document.
func NewDocumentFragment(owner DocumentHandle, host NodeID) *DocumentFragment {
	doc := newDocument("")
	doc.RegisterNode(NewDocumentNode(owner.Doc().QuirksMode()))
	return &DocumentFragment{
		handle: NewDocumentHandle(doc),
		owner:  owner,
		host:   host,
	}
}

// Handle returns the fragment's own document handle.
func (f *DocumentFragment) Handle() DocumentHandle {
	return f.handle
}

// Owner returns the handle of the document holding the host node.
func (f *DocumentFragment) Owner() DocumentHandle {
	return f.owner
}

// HostID returns the id of the host node in the owning document.
func (f *DocumentFragment) HostID() NodeID {
	return f.host
}
