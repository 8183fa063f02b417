package spec

// Stylesheet is a parsed stylesheet attached to a document. Parsing and
// matching happen in the CSS layer; the document model only stores the
// sheet and where it came from.
type Stylesheet struct {
	// Location the sheet was loaded from (inline sheets leave this empty)
	Location string
	// Source text of the sheet
	Source string
}
