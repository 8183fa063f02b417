package parser

import (
	"github.com/jaytaph/gosub-engine/parser/spec"
)

// ParseFragment parses markup in the context of an existing document,
// the way innerHTML does: the result is a fragment document with its own
// html element, quirks mode inherited from the context.
// https://html.spec.whatwg.org/multipage/parsing.html#parsing-html-fragments
func ParseFragment(context spec.DocumentHandle, input string) (spec.DocumentHandle, []ParseError, error) {
	handle := spec.NewFragmentDocument(context)
	p := &Parser{
		Tokenizer:       NewHTMLTokenizerString(input),
		TreeConstructor: NewHTMLTreeConstructorFor(handle),
	}
	return p.Start()
}
