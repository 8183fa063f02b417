package parser

import (
	"io"

	"github.com/jaytaph/gosub-engine/parser/spec"
)

// Parser wires the tokenizer to the tree constructor: one token at a
// time, synchronously, until EOF.
type Parser struct {
	Tokenizer       *HTMLTokenizer
	TreeConstructor *HTMLTreeConstructor
}

func NewParser(htmlIn io.Reader) *Parser {
	return &Parser{
		Tokenizer:       NewHTMLTokenizer(htmlIn),
		TreeConstructor: NewHTMLTreeConstructor(),
	}
}

func NewParserString(s string) *Parser {
	return &Parser{
		Tokenizer:       NewHTMLTokenizerString(s),
		TreeConstructor: NewHTMLTreeConstructor(),
	}
}

// Start runs the parse to completion and returns the document handle
// together with the parse errors collected along the way. The error
// return is reserved for reader failures; malformed markup never fails
// a parse.
func (p *Parser) Start() (spec.DocumentHandle, []ParseError, error) {
	for p.Tokenizer.Next() {
		p.TreeConstructor.ProcessToken(p.Tokenizer.Token())
	}
	if err := p.Tokenizer.Err(); err != nil {
		return spec.DocumentHandle{}, nil, err
	}
	return p.TreeConstructor.HTMLDocument, p.TreeConstructor.ParseErrors(), nil
}
