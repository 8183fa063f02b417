package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jaytaph/gosub-engine/parser/spec"
)

func TestParseFullDocument(t *testing.T) {
	handle, parseErrors := parseString(t,
		`<!DOCTYPE html><html><div class="one two"><p id="para">Hello<!-- note --></p></div></html>`)

	assert.Empty(t, parseErrors)
	assertTree(t, `└─ Document
   ├─ <!DOCTYPE html "" "">
   └─ <html>
      └─ <div class=one two>
         └─ <p id=para>
            ├─ "Hello"
            └─ <!--  note  -->
`, handle)

	// class attributes seed the class set during construction
	doc := handle.Doc()
	div := doc.NodeByID(doc.NodeByID(doc.Root().Children[1]).Children[0])
	assert.True(t, div.ElementData().Classes.IsActive("one"))
	assert.True(t, div.ElementData().Classes.IsActive("two"))

	// id attributes are indexed during construction
	p := doc.NodeByNamedID("para")
	require.NotNil(t, p)
	assert.Equal(t, "p", p.ElementData().Name)
}

func TestParseDuplicateNamedIDIsParseError(t *testing.T) {
	handle, parseErrors := parseString(t, `<div id="x"></div><span id="x"></span>`)

	require.NotEmpty(t, parseErrors)
	assert.Contains(t, parseErrors[0].Message, "already exists in DOM")
	assert.Equal(t, "div", handle.Doc().NodeByNamedID("x").ElementData().Name)
}

func TestParseFragment(t *testing.T) {
	context := spec.NewDocument("")
	context.Doc().SetQuirksMode(spec.Quirks)

	handle, parseErrors, err := ParseFragment(context, `<div>frag</div>`)
	require.NoError(t, err)
	assert.Empty(t, parseErrors)

	assertTree(t, `└─ Document
   └─ <html>
      └─ <div>
         └─ "frag"
`, handle)
	assert.Equal(t, spec.Quirks, handle.Doc().QuirksMode())
}

func TestParserReturnsSameDocumentHandle(t *testing.T) {
	p := NewParserString(`<div></div>`)
	handle, _, err := p.Start()
	require.NoError(t, err)
	assert.Equal(t, p.TreeConstructor.HTMLDocument, handle)
}
