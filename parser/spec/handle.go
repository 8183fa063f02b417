package spec

// DocumentHandle is a cheap, copyable reference to a shared document.
// The parser, later pipeline stages and debugging tools all hold clones
// of the same handle; the document itself serializes access internally.
type DocumentHandle struct {
	doc *Document
}

// NewDocumentHandle wraps an existing document.
func NewDocumentHandle(doc *Document) DocumentHandle {
	return DocumentHandle{doc: doc}
}

// Doc returns the underlying document.
func (h DocumentHandle) Doc() *Document {
	return h.doc
}

// IsValid reports whether the handle points at a document.
func (h DocumentHandle) IsValid() bool {
	return h.doc != nil
}
