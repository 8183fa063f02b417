package parser

import (
	"io"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/net/html"
)

// HTMLTokenizer adapts golang.org/x/net/html's tokenizer to the token
// kind set the tree constructor consumes. The lexical state machine
// itself is external; this layer only converts token shapes.
type HTMLTokenizer struct {
	z     *html.Tokenizer
	token *Token
	err   error
	done  bool
}

func NewHTMLTokenizer(htmlIn io.Reader) *HTMLTokenizer {
	return &HTMLTokenizer{z: html.NewTokenizer(htmlIn)}
}

func NewHTMLTokenizerString(s string) *HTMLTokenizer {
	return NewHTMLTokenizer(strings.NewReader(s))
}

// Next advances to the next token. It returns false after the EOF token
// has been produced or when the underlying reader failed.
func (t *HTMLTokenizer) Next() bool {
	if t.err != nil || t.done {
		return false
	}

	switch tt := t.z.Next(); tt {
	case html.ErrorToken:
		if err := t.z.Err(); err != io.EOF {
			t.err = errors.Wrap(err, "tokenizer read failed")
			return false
		}
		t.token = &Token{TokenType: endOfFileToken}
		t.done = true
	case html.TextToken:
		t.token = &Token{TokenType: characterToken, Data: string(t.z.Text())}
	case html.StartTagToken, html.SelfClosingTagToken:
		tok := t.z.Token()
		attributes := make(map[string]string, len(tok.Attr))
		for _, attr := range tok.Attr {
			// first occurrence wins on duplicate attribute names
			if _, ok := attributes[attr.Key]; !ok {
				attributes[attr.Key] = attr.Val
			}
		}
		t.token = &Token{
			TokenType:   startTagToken,
			TagName:     tok.Data,
			Attributes:  attributes,
			SelfClosing: tt == html.SelfClosingTagToken,
		}
	case html.EndTagToken:
		name, _ := t.z.TagName()
		t.token = &Token{TokenType: endTagToken, TagName: string(name)}
	case html.CommentToken:
		t.token = &Token{TokenType: commentToken, Data: string(t.z.Text())}
	case html.DoctypeToken:
		t.token = parseDoctype(string(t.z.Text()))
	}
	return true
}

// Token returns the token staged by the last successful Next call.
func (t *HTMLTokenizer) Token() *Token {
	return t.token
}

// Err returns the reader error that stopped tokenization, or nil on a
// clean EOF.
func (t *HTMLTokenizer) Err() error {
	return t.err
}

// parseDoctype splits the raw doctype text (everything after
// "<!DOCTYPE ") into name, public identifier and system identifier.
// https://html.spec.whatwg.org/multipage/syntax.html#the-doctype
func parseDoctype(raw string) *Token {
	token := &Token{TokenType: docTypeToken}
	rest := strings.TrimSpace(raw)

	idx := strings.IndexAny(rest, " \t\n\f\r")
	if idx < 0 {
		token.TagName = rest
		return token
	}
	token.TagName = rest[:idx]
	rest = strings.TrimSpace(rest[idx:])

	if len(rest) >= 6 {
		switch strings.ToUpper(rest[:6]) {
		case "PUBLIC":
			var ok bool
			token.PublicIdentifier, rest, ok = readQuoted(rest[6:])
			if !ok {
				token.ForceQuirks = true
				return token
			}
			token.SystemIdentifier, _, _ = readQuoted(rest)
		case "SYSTEM":
			var ok bool
			token.SystemIdentifier, _, ok = readQuoted(rest[6:])
			if !ok {
				token.ForceQuirks = true
			}
		default:
			token.ForceQuirks = true
		}
	} else if rest != "" {
		token.ForceQuirks = true
	}
	return token
}

// readQuoted reads one single- or double-quoted string and returns the
// value plus the remaining text.
func readQuoted(s string) (value, rest string, ok bool) {
	s = strings.TrimSpace(s)
	if s == "" || (s[0] != '"' && s[0] != '\'') {
		return "", s, false
	}
	quote := s[0]
	end := strings.IndexByte(s[1:], quote)
	if end < 0 {
		return "", "", false
	}
	return s[1 : 1+end], s[2+end:], true
}
