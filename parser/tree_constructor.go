package parser

import (
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/jaytaph/gosub-engine/parser/spec"
)

// https://html.spec.whatwg.org/multipage/parsing.html#adoption-agency-algorithm
const (
	adoptionAgencyOuterLoopDepth = 8
	adoptionAgencyInnerLoopDepth = 3
)

// nodeRef names a node together with the document that owns it. Nodes
// inserted into a template's content fragment live in the fragment's
// arena, so an id alone does not identify a node to the engine.
type nodeRef struct {
	id     spec.NodeID
	handle spec.DocumentHandle
}

func (r nodeRef) node() *spec.Node {
	return r.handle.Doc().NodeByID(r.id)
}

// formattingEntry is one entry of the active formatting elements list:
// either an element reference or a scope boundary marker.
type formattingEntry struct {
	ref    nodeRef
	marker bool
}

type insertionPositionMode uint

const (
	// insert as the last child of parent
	lastChildMode insertionPositionMode = iota
	// insert as a sibling immediately before the "before" node
	siblingMode
)

// insertionPosition is a resolved "appropriate place for inserting a
// node": a parent in a specific document, optionally with a sibling to
// insert before.
type insertionPosition struct {
	mode   insertionPositionMode
	handle spec.DocumentHandle
	parent spec.NodeID
	before spec.NodeID
}

var tableContextElements = map[string]bool{
	"table": true, "tbody": true, "thead": true, "tfoot": true, "tr": true,
}

// children a table-ish element can legitimately receive; anything else
// triggers foster parenting
var tableAllowedChildren = map[string]bool{
	"caption": true, "colgroup": true, "col": true, "tbody": true,
	"thead": true, "tfoot": true, "tr": true, "td": true, "th": true,
	"script": true, "style": true, "template": true, "form": true,
}

// https://html.spec.whatwg.org/multipage/syntax.html#void-elements
var voidElements = map[string]bool{
	"area": true, "base": true, "br": true, "col": true, "embed": true,
	"hr": true, "img": true, "input": true, "link": true, "meta": true,
	"param": true, "source": true, "track": true, "wbr": true,
}

// start tags that push a marker onto the active formatting list
var markerInsertingElements = map[string]bool{
	"applet": true, "caption": true, "marquee": true, "object": true,
	"td": true, "th": true, "template": true,
}

// HTMLTreeConstructor holds the state of the tree construction phase:
// the document under construction, the stack of open elements and the
// list of active formatting elements.
type HTMLTreeConstructor struct {
	HTMLDocument spec.DocumentHandle

	fosterParenting          bool
	openElements             []nodeRef
	activeFormattingElements []formattingEntry
	parseErrors              []ParseError
}

// NewHTMLTreeConstructor creates a tree constructor building into a
// fresh document.
func NewHTMLTreeConstructor() *HTMLTreeConstructor {
	return NewHTMLTreeConstructorFor(spec.NewDocument(""))
}

// NewHTMLTreeConstructorFor creates a tree constructor building into an
// existing document, e.g. a fragment document.
func NewHTMLTreeConstructorFor(handle spec.DocumentHandle) *HTMLTreeConstructor {
	c := &HTMLTreeConstructor{HTMLDocument: handle}

	// a fragment document already carries its html element; adopt it as
	// the open context
	root := handle.Doc().Root()
	for _, childID := range root.Children {
		child := handle.Doc().NodeByID(childID)
		if data := child.ElementData(); data != nil && data.Name == "html" {
			c.openElements = append(c.openElements, nodeRef{id: childID, handle: handle})
			break
		}
	}
	return c
}

// ParseErrors returns the diagnostics collected so far. Parse errors
// never interrupt parsing.
func (c *HTMLTreeConstructor) ParseErrors() []ParseError {
	return c.parseErrors
}

func (c *HTMLTreeConstructor) recordError(message string) {
	log.Debugf("parse error: %s", message)
	c.parseErrors = append(c.parseErrors, ParseError{Message: message})
}

func (c *HTMLTreeConstructor) currentNode() (nodeRef, bool) {
	if len(c.openElements) == 0 {
		return nodeRef{}, false
	}
	return c.openElements[len(c.openElements)-1], true
}

func (c *HTMLTreeConstructor) openElementIndex(ref nodeRef) int {
	for i, entry := range c.openElements {
		if entry == ref {
			return i
		}
	}
	return -1
}

func (c *HTMLTreeConstructor) removeOpenElement(ref nodeRef) {
	if i := c.openElementIndex(ref); i >= 0 {
		c.openElements = append(c.openElements[:i], c.openElements[i+1:]...)
	}
}

// elementInScope walks the open elements top-down looking for the tag
// name, stopping at the regular scope boundaries.
// https://html.spec.whatwg.org/multipage/parsing.html#has-an-element-in-scope
func (c *HTMLTreeConstructor) elementInScope(target string) bool {
	for i := len(c.openElements) - 1; i >= 0; i-- {
		data := c.openElements[i].node().ElementData()
		if data == nil {
			continue
		}
		if data.Name == target && data.IsNamespace(spec.HTMLNamespace) {
			return true
		}
		if isScopeBoundary(data) {
			return false
		}
	}
	return false
}

func isScopeBoundary(data *spec.ElementData) bool {
	switch data.Namespace {
	case spec.HTMLNamespace:
		switch data.Name {
		case "applet", "caption", "html", "table", "td", "th", "marquee", "object", "template":
			return true
		}
	case spec.MathMLNamespace:
		switch data.Name {
		case "mi", "mo", "mn", "ms", "mtext", "annotation-xml":
			return true
		}
	case spec.SVGNamespace:
		switch data.Name {
		case "foreignObject", "desc", "title":
			return true
		}
	}
	return false
}

// appropriatePlaceForInsertion resolves where a new node lands, honoring
// foster parenting and template content redirection.
// https://html.spec.whatwg.org/multipage/parsing.html#appropriate-place-for-inserting-a-node
func (c *HTMLTreeConstructor) appropriatePlaceForInsertion(override *nodeRef) insertionPosition {
	if len(c.openElements) == 0 {
		return insertionPosition{mode: lastChildMode, handle: c.HTMLDocument, parent: spec.RootNodeID}
	}
	current := c.openElements[len(c.openElements)-1]
	target := current
	if override != nil {
		target = *override
	}

	currentData := current.node().ElementData()
	fostering := c.fosterParenting && currentData != nil && tableContextElements[currentData.Name]
	if !fostering {
		if data := target.node().ElementData(); data != nil &&
			data.Name == "template" && data.IsNamespace(spec.HTMLNamespace) && data.TemplateContents != nil {
			return insertionPosition{
				mode:   lastChildMode,
				handle: data.TemplateContents.Handle(),
				parent: spec.RootNodeID,
			}
		}
		return insertionPosition{mode: lastChildMode, handle: target.handle, parent: target.id}
	}

	for i := len(c.openElements) - 1; i >= 0; i-- {
		entry := c.openElements[i]
		node := entry.node()
		data := node.ElementData()
		if data == nil {
			continue
		}
		if data.Name == "template" && data.TemplateContents != nil {
			return insertionPosition{
				mode:   lastChildMode,
				handle: data.TemplateContents.Handle(),
				parent: spec.RootNodeID,
			}
		}
		if data.Name == "table" {
			if parentID, ok := node.ParentID(); ok {
				return insertionPosition{
					mode:   siblingMode,
					handle: entry.handle,
					parent: parentID,
					before: entry.id,
				}
			}
			// unattached table on the stack: land in the element just
			// below it instead
			if i > 0 {
				below := c.openElements[i-1]
				return insertionPosition{mode: lastChildMode, handle: below.handle, parent: below.id}
			}
		}
	}
	first := c.openElements[0]
	return insertionPosition{mode: lastChildMode, handle: first.handle, parent: first.id}
}

// insertNewNode registers and attaches an unregistered node at the
// resolved position, returning a reference to it.
func (c *HTMLTreeConstructor) insertNewNode(node *spec.Node, position insertionPosition) nodeRef {
	doc := position.handle.Doc()
	idx := spec.AppendPosition
	if position.mode == siblingMode {
		idx = childIndex(doc, position.parent, position.before)
	}
	doc.RegisterNodeAt(node, position.parent, idx)
	return nodeRef{id: node.ID, handle: position.handle}
}

// moveNodeToPosition detaches a registered node from wherever it is and
// reattaches it at the resolved position.
func (c *HTMLTreeConstructor) moveNodeToPosition(ref nodeRef, position insertionPosition) {
	doc := position.handle.Doc()
	if _, ok := ref.node().ParentID(); ok {
		ref.handle.Doc().DetachNode(ref.id)
	}
	idx := spec.AppendPosition
	if position.mode == siblingMode {
		idx = childIndex(doc, position.parent, position.before)
	}
	doc.AttachNode(ref.id, position.parent, idx)
}

func childIndex(doc *spec.Document, parentID, childID spec.NodeID) int {
	parent := doc.NodeByID(parentID)
	if parent == nil {
		return spec.AppendPosition
	}
	for i, id := range parent.Children {
		if id == childID {
			return i
		}
	}
	return spec.AppendPosition
}

// insertText coalesces the text run into the sibling immediately before
// the insertion point when that sibling is a text node, and creates a
// new text node otherwise. Empty text never mutates the tree.
func (c *HTMLTreeConstructor) insertText(t *Token) {
	if t.Data == "" {
		return
	}
	position := c.appropriatePlaceForInsertion(nil)
	doc := position.handle.Doc()
	parent := doc.NodeByID(position.parent)

	precedingID := spec.NodeID(0)
	hasPreceding := false
	insertIdx := spec.AppendPosition
	if position.mode == siblingMode {
		idx := childIndex(doc, position.parent, position.before)
		if idx > 0 {
			precedingID = parent.Children[idx-1]
			hasPreceding = true
		}
		insertIdx = idx
	} else if len(parent.Children) > 0 {
		precedingID = parent.Children[len(parent.Children)-1]
		hasPreceding = true
	}

	if hasPreceding {
		if preceding := doc.NodeByID(precedingID); preceding != nil && preceding.IsTextNode() {
			preceding.TextData().Value += t.Data
			return
		}
	}
	doc.RegisterNodeAt(spec.NewTextNode(t.Data), position.parent, insertIdx)
}

// createElementForToken builds an element node from a start tag token,
// seeding the class set from the class attribute.
func createElementForToken(t *Token, namespace string) *spec.Node {
	attributes := make(map[string]string, len(t.Attributes))
	for k, v := range t.Attributes {
		attributes[k] = v
	}
	node := spec.NewElementNode(t.TagName, namespace, attributes)
	if classString, ok := attributes["class"]; ok {
		node.ElementData().Classes = spec.NewElementClassFromString(classString)
	}
	return node
}

func cloneElementNode(node *spec.Node) *spec.Node {
	data := node.ElementData()
	attributes := make(map[string]string, len(data.Attributes))
	for k, v := range data.Attributes {
		attributes[k] = v
	}
	clone := spec.NewElementNode(data.Name, data.Namespace, attributes)
	if classString, ok := attributes["class"]; ok {
		clone.ElementData().Classes = spec.NewElementClassFromString(classString)
	}
	return clone
}

// insertHTMLElement inserts an element for the token in the HTML
// namespace and pushes it onto the open elements stack.
func (c *HTMLTreeConstructor) insertHTMLElement(t *Token) nodeRef {
	return c.insertElementForToken(t, spec.HTMLNamespace, nil)
}

func (c *HTMLTreeConstructor) insertElementForToken(t *Token, namespace string, override *nodeRef) nodeRef {
	node := createElementForToken(t, namespace)
	position := c.appropriatePlaceForInsertion(override)
	ref := c.insertNewNode(node, position)
	c.openElements = append(c.openElements, ref)

	// keep the named-id index consistent with id attributes as elements
	// enter the tree; malformed or duplicate ids are parse errors
	if id, ok := t.Attributes["id"]; ok {
		if err := ref.handle.Doc().SetAttribute(ref.id, "id", id); err != nil {
			c.recordError(err.Error())
		}
	}
	return ref
}

// insertElementFromNode clones an existing element, inserts the clone at
// the appropriate place and pushes it onto the open elements stack. Used
// when reconstructing active formatting elements.
func (c *HTMLTreeConstructor) insertElementFromNode(node *spec.Node) nodeRef {
	clone := cloneElementNode(node)
	position := c.appropriatePlaceForInsertion(nil)
	ref := c.insertNewNode(clone, position)
	c.openElements = append(c.openElements, ref)
	return ref
}

// insertDocTypeElement attaches a doctype node directly under the root.
func (c *HTMLTreeConstructor) insertDocTypeElement(t *Token) {
	node := spec.NewDocTypeNode(t.TagName, t.PublicIdentifier, t.SystemIdentifier)
	c.HTMLDocument.Doc().RegisterNodeAt(node, spec.RootNodeID, spec.AppendPosition)
}

// insertDocumentElement attaches the document element under the root and
// opens it.
func (c *HTMLTreeConstructor) insertDocumentElement(t *Token) nodeRef {
	node := createElementForToken(t, spec.HTMLNamespace)
	c.HTMLDocument.Doc().RegisterNodeAt(node, spec.RootNodeID, spec.AppendPosition)
	ref := nodeRef{id: node.ID, handle: c.HTMLDocument}
	c.openElements = append(c.openElements, ref)
	return ref
}

// insertComment honors an explicit override parent, used for comments
// before and after the document element, and otherwise follows the
// standard insertion point.
func (c *HTMLTreeConstructor) insertComment(t *Token, overrideParent *spec.NodeID) {
	node := spec.NewCommentNode(t.Data)
	if overrideParent != nil {
		c.HTMLDocument.Doc().RegisterNodeAt(node, *overrideParent, spec.AppendPosition)
		return
	}
	c.insertNewNode(node, c.appropriatePlaceForInsertion(nil))
}

func (c *HTMLTreeConstructor) formattingEntryIndex(ref nodeRef) int {
	for i, entry := range c.activeFormattingElements {
		if !entry.marker && entry.ref == ref {
			return i
		}
	}
	return -1
}

func (c *HTMLTreeConstructor) removeFormattingEntryAt(idx int) {
	c.activeFormattingElements = append(c.activeFormattingElements[:idx], c.activeFormattingElements[idx+1:]...)
}

// findFormattingElement scans the active formatting list back-to-front
// for the most recent entry with the given tag name, stopping at the
// last marker.
func (c *HTMLTreeConstructor) findFormattingElement(name string) (int, nodeRef, bool) {
	for i := len(c.activeFormattingElements) - 1; i >= 0; i-- {
		entry := c.activeFormattingElements[i]
		if entry.marker {
			break
		}
		if data := entry.ref.node().ElementData(); data != nil && data.Name == name {
			return i, entry.ref, true
		}
	}
	return 0, nodeRef{}, false
}

// pushActiveFormattingElement appends an element entry, enforcing the
// Noah's Ark clause: at most three entries with the same tag name,
// namespace and attributes between the last marker and the new entry;
// the earliest is evicted.
// https://html.spec.whatwg.org/multipage/parsing.html#push-onto-the-list-of-active-formatting-elements
func (c *HTMLTreeConstructor) pushActiveFormattingElement(ref nodeRef) {
	data := ref.node().ElementData()

	matches := []int{}
	start := 0
	for i := len(c.activeFormattingElements) - 1; i >= 0; i-- {
		if c.activeFormattingElements[i].marker {
			start = i + 1
			break
		}
	}
	for i := start; i < len(c.activeFormattingElements); i++ {
		entryData := c.activeFormattingElements[i].ref.node().ElementData()
		if entryData != nil && entryData.MatchesTagAndAttributes(data) {
			matches = append(matches, i)
		}
	}
	if len(matches) >= 3 {
		c.removeFormattingEntryAt(matches[0])
	}
	c.activeFormattingElements = append(c.activeFormattingElements, formattingEntry{ref: ref})
}

func (c *HTMLTreeConstructor) insertMarker() {
	c.activeFormattingElements = append(c.activeFormattingElements, formattingEntry{marker: true})
}

// clearActiveFormattingUpToLastMarker pops entries up to and including
// the last marker.
func (c *HTMLTreeConstructor) clearActiveFormattingUpToLastMarker() {
	for len(c.activeFormattingElements) > 0 {
		last := c.activeFormattingElements[len(c.activeFormattingElements)-1]
		c.activeFormattingElements = c.activeFormattingElements[:len(c.activeFormattingElements)-1]
		if last.marker {
			return
		}
	}
}

// reconstructActiveFormattingElements re-opens formatting elements that
// are still active but no longer on the open elements stack, cloning
// them in list order.
// https://html.spec.whatwg.org/multipage/parsing.html#reconstruct-the-active-formatting-elements
func (c *HTMLTreeConstructor) reconstructActiveFormattingElements() {
	if len(c.activeFormattingElements) == 0 {
		return
	}
	last := c.activeFormattingElements[len(c.activeFormattingElements)-1]
	if last.marker || c.openElementIndex(last.ref) >= 0 {
		return
	}

	i := len(c.activeFormattingElements) - 1
	for i > 0 {
		prev := c.activeFormattingElements[i-1]
		if prev.marker || c.openElementIndex(prev.ref) >= 0 {
			break
		}
		i--
	}

	for ; i < len(c.activeFormattingElements); i++ {
		entry := c.activeFormattingElements[i]
		ref := c.insertElementFromNode(entry.ref.node())
		c.activeFormattingElements[i] = formattingEntry{ref: ref}
	}
}

// handleAnyOtherEndTag pops open elements until one matching the tag
// name has been popped. Crossing a special element instead is a parse
// error and the end tag is ignored.
func (c *HTMLTreeConstructor) handleAnyOtherEndTag(name string) {
	for i := len(c.openElements) - 1; i >= 0; i-- {
		data := c.openElements[i].node().ElementData()
		if data == nil {
			continue
		}
		if data.Name == name && data.IsNamespace(spec.HTMLNamespace) {
			c.openElements = c.openElements[:i]
			return
		}
		if data.IsSpecial() {
			c.recordError("unexpected end tag: " + name)
			return
		}
	}
	c.recordError("unexpected end tag: " + name)
}

// adoptionAgencyAlgorithm repairs mis-nested formatting elements by
// cloning and reparenting. Every branch either makes forward progress or
// returns; the loop bounds guarantee termination on pathological input.
// https://html.spec.whatwg.org/multipage/parsing.html#adoption-agency-algorithm
func (c *HTMLTreeConstructor) adoptionAgencyAlgorithm(t *Token) {
	subject := t.TagName

	// fast path: a well nested formatting element sitting on top of the
	// stack that is not tracked by the active formatting list
	if current, ok := c.currentNode(); ok {
		if data := current.node().ElementData(); data != nil &&
			data.Name == subject && data.IsNamespace(spec.HTMLNamespace) &&
			c.formattingEntryIndex(current) < 0 {
			c.openElements = c.openElements[:len(c.openElements)-1]
			return
		}
	}

	for outerLoopCounter := 0; outerLoopCounter < adoptionAgencyOuterLoopDepth; outerLoopCounter++ {
		formatIdx, formatRef, ok := c.findFormattingElement(subject)
		if !ok {
			c.handleAnyOtherEndTag(subject)
			return
		}

		formatStackIdx := c.openElementIndex(formatRef)
		if formatStackIdx < 0 {
			// the formatting element came loose from the open stack
			c.recordError("formatting element no longer open: " + subject)
			c.removeFormattingEntryAt(formatIdx)
			return
		}

		if !c.elementInScope(subject) {
			c.recordError("formatting element not in scope: " + subject)
			return
		}

		if formatStackIdx != len(c.openElements)-1 {
			c.recordError("formatting element not the current node: " + subject)
		}

		furtherBlockIdx := -1
		for i := formatStackIdx + 1; i < len(c.openElements); i++ {
			if data := c.openElements[i].node().ElementData(); data != nil && data.IsSpecial() {
				furtherBlockIdx = i
				break
			}
		}
		if furtherBlockIdx < 0 {
			// no special element above: pop everything down to and
			// including the formatting element
			c.openElements = c.openElements[:formatStackIdx]
			c.removeFormattingEntryAt(formatIdx)
			return
		}
		furtherBlock := c.openElements[furtherBlockIdx]
		commonAncestor := c.openElements[formatStackIdx-1]

		// bookmark: where the clone's formatting entry will land
		bookmarkAfter := nodeRef{}
		useInsertAfter := false

		lastNode := furtherBlock
		nodeIdx := furtherBlockIdx

		for innerLoopCounter := 1; ; innerLoopCounter++ {
			nodeIdx--
			node := c.openElements[nodeIdx]

			if node == formatRef {
				break
			}

			if innerLoopCounter > adoptionAgencyInnerLoopDepth {
				if idx := c.formattingEntryIndex(node); idx >= 0 {
					c.removeFormattingEntryAt(idx)
				}
				c.openElements = append(c.openElements[:nodeIdx], c.openElements[nodeIdx+1:]...)
				continue
			}

			activeIdx := c.formattingEntryIndex(node)
			if activeIdx < 0 {
				c.openElements = append(c.openElements[:nodeIdx], c.openElements[nodeIdx+1:]...)
				continue
			}

			// clone the intermediate formatting element and let the
			// clone take over its list entry and stack slot
			replacement := cloneElementNode(node.node())
			node.handle.Doc().RegisterNode(replacement)
			replaceRef := nodeRef{id: replacement.ID, handle: node.handle}

			c.activeFormattingElements[activeIdx] = formattingEntry{ref: replaceRef}
			c.openElements[nodeIdx] = replaceRef

			if lastNode == furtherBlock {
				useInsertAfter = true
				bookmarkAfter = replaceRef
			}

			replaceRef.handle.Doc().RelocateNode(lastNode.id, replaceRef.id)
			lastNode = replaceRef
		}

		// reinsert the head of the rebuilt chain next to the common
		// ancestor
		c.moveNodeToPosition(lastNode, c.appropriatePlaceForInsertion(&commonAncestor))

		// a fresh clone of the formatting element adopts all of the
		// further block's children
		newFormat := cloneElementNode(formatRef.node())
		formatRef.handle.Doc().RegisterNode(newFormat)
		newFormatRef := nodeRef{id: newFormat.ID, handle: formatRef.handle}

		fbNode := furtherBlock.node()
		children := make([]spec.NodeID, len(fbNode.Children))
		copy(children, fbNode.Children)
		for _, childID := range children {
			furtherBlock.handle.Doc().RelocateNode(childID, newFormatRef.id)
		}
		furtherBlock.handle.Doc().AttachNode(newFormatRef.id, furtherBlock.id, spec.AppendPosition)

		if useInsertAfter {
			idx := c.formattingEntryIndex(bookmarkAfter) + 1
			c.activeFormattingElements = append(c.activeFormattingElements, formattingEntry{})
			copy(c.activeFormattingElements[idx+1:], c.activeFormattingElements[idx:])
			c.activeFormattingElements[idx] = formattingEntry{ref: newFormatRef}
			if orig := c.formattingEntryIndex(formatRef); orig >= 0 {
				c.removeFormattingEntryAt(orig)
			}
		} else {
			idx := c.formattingEntryIndex(formatRef)
			c.activeFormattingElements[idx] = formattingEntry{ref: newFormatRef}
		}

		c.removeOpenElement(formatRef)
		pos := c.openElementIndex(furtherBlock)
		c.openElements = append(c.openElements, nodeRef{})
		copy(c.openElements[pos+2:], c.openElements[pos+1:])
		c.openElements[pos+1] = newFormatRef
	}
}

// ensureDocumentElement synthesizes the html document element when
// content arrives before any start tag opened one.
func (c *HTMLTreeConstructor) ensureDocumentElement() {
	if len(c.openElements) > 0 {
		return
	}
	c.insertDocumentElement(&Token{TokenType: startTagToken, TagName: "html"})
}

// enableFosterParentingIfMisplaced arms the foster parenting flag when
// the current node is table-ish and the incoming content does not belong
// in a table. The flag covers a single insertion.
func (c *HTMLTreeConstructor) enableFosterParentingIfMisplaced(tag string) {
	current, ok := c.currentNode()
	if !ok {
		return
	}
	data := current.node().ElementData()
	if data == nil {
		return
	}
	if tableContextElements[data.Name] && !tableAllowedChildren[tag] {
		c.fosterParenting = true
	}
}

// ProcessToken runs one token through tree construction.
func (c *HTMLTreeConstructor) ProcessToken(t *Token) {
	switch t.TokenType {
	case docTypeToken:
		c.processDocType(t)
	case commentToken:
		if len(c.openElements) == 0 {
			rootID := spec.RootNodeID
			c.insertComment(t, &rootID)
			return
		}
		c.insertComment(t, nil)
	case characterToken:
		c.processText(t)
	case startTagToken:
		c.processStartTag(t)
	case endTagToken:
		c.processEndTag(t)
	case endOfFileToken:
		// construction is done; the open elements stack is implicitly
		// closed
	}
}

func (c *HTMLTreeConstructor) processDocType(t *Token) {
	if len(c.openElements) > 0 {
		c.recordError("doctype after document element")
		return
	}
	c.insertDocTypeElement(t)
	c.HTMLDocument.Doc().SetQuirksMode(quirksModeForDocType(t))
}

// https://html.spec.whatwg.org/multipage/parsing.html#the-initial-insertion-mode
// Identifiers match ASCII case-insensitively; the tables are stored
// lowercased.
var quirkyPublicIDs = []string{
	"-//w3o//dtd w3 html strict 3.0//en//",
	"-/w3c/dtd html 4.0 transitional/en",
	"html",
}

var quirkyPublicIDPrefixes = []string{
	"+//silmaril//dtd html pro v0r11 19970101//",
	"-//as//dtd html 3.0 aswedit + extensions//",
	"-//advasoft ltd//dtd html 3.0 aswedit + extensions//",
	"-//ietf//dtd html 2.0 level 1//",
	"-//ietf//dtd html 2.0 level 2//",
	"-//ietf//dtd html 2.0 strict level 1//",
	"-//ietf//dtd html 2.0 strict level 2//",
	"-//ietf//dtd html 2.0 strict//",
	"-//ietf//dtd html 2.0//",
	"-//ietf//dtd html 2.1e//",
	"-//ietf//dtd html 3.0//",
	"-//ietf//dtd html 3.2 final//",
	"-//ietf//dtd html 3.2//",
	"-//ietf//dtd html 3//",
	"-//ietf//dtd html level 0//",
	"-//ietf//dtd html level 1//",
	"-//ietf//dtd html level 2//",
	"-//ietf//dtd html level 3//",
	"-//ietf//dtd html strict level 0//",
	"-//ietf//dtd html strict level 1//",
	"-//ietf//dtd html strict level 2//",
	"-//ietf//dtd html strict level 3//",
	"-//ietf//dtd html strict//",
	"-//ietf//dtd html//",
	"-//metrius//dtd metrius presentational//",
	"-//microsoft//dtd internet explorer 2.0 html strict//",
	"-//microsoft//dtd internet explorer 2.0 html//",
	"-//microsoft//dtd internet explorer 2.0 tables//",
	"-//microsoft//dtd internet explorer 3.0 html strict//",
	"-//microsoft//dtd internet explorer 3.0 html//",
	"-//microsoft//dtd internet explorer 3.0 tables//",
	"-//netscape comm. corp.//dtd html//",
	"-//netscape comm. corp.//dtd strict html//",
	"-//o'reilly and associates//dtd html 2.0//",
	"-//o'reilly and associates//dtd html extended 1.0//",
	"-//o'reilly and associates//dtd html extended relaxed 1.0//",
	"-//sq//dtd html 2.0 hotmetal + extensions//",
	"-//softquad software//dtd hotmetal pro 6.0::19990601::extensions to html 4.0//",
	"-//softquad//dtd hotmetal pro 4.0::19971010::extensions to html 4.0//",
	"-//spyglass//dtd html 2.0 extended//",
	"-//sun microsystems corp.//dtd hotjava html//",
	"-//sun microsystems corp.//dtd hotjava strict html//",
	"-//w3c//dtd html 3 1995-03-24//",
	"-//w3c//dtd html 3.2 draft//",
	"-//w3c//dtd html 3.2 final//",
	"-//w3c//dtd html 3.2//",
	"-//w3c//dtd html 3.2s draft//",
	"-//w3c//dtd html 4.0 frameset//",
	"-//w3c//dtd html 4.0 transitional//",
	"-//w3c//dtd html experimental 19960712//",
	"-//w3c//dtd html experimental 970421//",
	"-//w3c//dtd w3 html//",
	"-//w3o//dtd w3 html 3.0//",
	"-//webtechs//dtd mozilla html 2.0//",
	"-//webtechs//dtd mozilla html//",
}

// full quirks when the system identifier is missing, limited quirks when
// it is present
var html401PublicIDPrefixes = []string{
	"-//w3c//dtd html 4.01 frameset//",
	"-//w3c//dtd html 4.01 transitional//",
}

var limitedQuirksPublicIDPrefixes = []string{
	"-//w3c//dtd xhtml 1.0 frameset//",
	"-//w3c//dtd xhtml 1.0 transitional//",
}

const quirkySystemID = "http://www.ibm.com/data/dtd/v11/ibmxhtml1-transitional.dtd"

func quirksModeForDocType(t *Token) spec.QuirksMode {
	if t.ForceQuirks || !strings.EqualFold(t.TagName, "html") {
		return spec.Quirks
	}
	public := strings.ToLower(t.PublicIdentifier)
	system := strings.ToLower(t.SystemIdentifier)

	for _, id := range quirkyPublicIDs {
		if public == id {
			return spec.Quirks
		}
	}
	for _, prefix := range quirkyPublicIDPrefixes {
		if strings.HasPrefix(public, prefix) {
			return spec.Quirks
		}
	}
	if system == quirkySystemID {
		return spec.Quirks
	}
	for _, prefix := range html401PublicIDPrefixes {
		if strings.HasPrefix(public, prefix) {
			if system == "" {
				return spec.Quirks
			}
			return spec.LimitedQuirks
		}
	}
	for _, prefix := range limitedQuirksPublicIDPrefixes {
		if strings.HasPrefix(public, prefix) {
			return spec.LimitedQuirks
		}
	}
	return spec.NoQuirks
}

func (c *HTMLTreeConstructor) processText(t *Token) {
	if t.Data == "" {
		return
	}
	if len(c.openElements) == 0 {
		// whitespace before the document element is dropped
		if strings.TrimSpace(t.Data) == "" {
			return
		}
		c.ensureDocumentElement()
	}
	c.reconstructActiveFormattingElements()
	c.enableFosterParentingIfMisplaced("")
	c.insertText(t)
	c.fosterParenting = false
}

func (c *HTMLTreeConstructor) processStartTag(t *Token) {
	if t.TagName == "html" {
		if len(c.openElements) == 0 {
			c.insertDocumentElement(t)
		} else {
			c.recordError("unexpected html start tag")
		}
		return
	}
	c.ensureDocumentElement()

	if spec.IsFormattingElementName(t.TagName) {
		if t.TagName == "a" {
			// a nested <a> implies the previous one was never closed
			if _, ref, ok := c.findFormattingElement("a"); ok {
				c.recordError("nested a element")
				c.adoptionAgencyAlgorithm(&Token{TokenType: endTagToken, TagName: "a"})
				// the agency can bail out early, e.g. when the anchor is
				// out of scope; the stale entry goes regardless
				if idx := c.formattingEntryIndex(ref); idx >= 0 {
					c.removeFormattingEntryAt(idx)
				}
				c.removeOpenElement(ref)
			}
		}
		c.reconstructActiveFormattingElements()
		ref := c.insertHTMLElement(t)
		c.pushActiveFormattingElement(ref)
		return
	}

	c.enableFosterParentingIfMisplaced(t.TagName)
	ref := c.insertHTMLElement(t)
	c.fosterParenting = false

	if t.TagName == "template" {
		data := ref.node().ElementData()
		data.TemplateContents = spec.NewDocumentFragment(ref.handle, ref.id)
	}
	if markerInsertingElements[t.TagName] {
		c.insertMarker()
	}

	if voidElements[t.TagName] || t.SelfClosing {
		c.openElements = c.openElements[:len(c.openElements)-1]
	}
}

func (c *HTMLTreeConstructor) processEndTag(t *Token) {
	name := t.TagName

	if spec.IsFormattingElementName(name) {
		c.adoptionAgencyAlgorithm(t)
		return
	}

	switch name {
	case "template", "applet", "caption", "marquee", "object", "td", "th":
		if !c.elementInScope(name) {
			c.recordError("unexpected end tag: " + name)
			return
		}
		for len(c.openElements) > 0 {
			top := c.openElements[len(c.openElements)-1]
			c.openElements = c.openElements[:len(c.openElements)-1]
			if data := top.node().ElementData(); data != nil && data.Name == name {
				break
			}
		}
		c.clearActiveFormattingUpToLastMarker()
	default:
		c.handleAnyOtherEndTag(name)
	}
}
